package needs

import (
	"log/slog"

	"github.com/google/uuid"
)

// XPSink applies skill experience. Fire-and-forget.
type XPSink interface {
	ApplyXP(skill string, amount int)
}

// GoldLedger mutates the player's purse.
type GoldLedger interface {
	Gold() int
	AddGold(delta int)
}

// ConditionSink applies a named condition to the player.
type ConditionSink interface {
	ApplyCondition(id string)
}

// ReputationLedger tracks the player's standing with the company officers.
type ReputationLedger interface {
	Reputation() int
	AddReputation(delta int)
}

// MemoryReputation is an in-memory ReputationLedger.
type MemoryReputation struct {
	Standing int
}

func (r *MemoryReputation) Reputation() int         { return r.Standing }
func (r *MemoryReputation) AddReputation(delta int) { r.Standing += delta }

// QueuedEvent is a deliverable narrative event.
type QueuedEvent struct {
	ID         string // Assigned on queue.
	DecisionID string // Target inquiry/decision in the content system.
	Title      string
	Body       string
}

// DeliveryQueue receives events for later presentation to the player.
type DeliveryQueue interface {
	Queue(ev QueuedEvent)
}

// Notifier emits a single colored line to the combat log.
type Notifier interface {
	Notify(text, color string)
}

// NewsSeverity grades a news entry.
type NewsSeverity uint8

const (
	NewsInfo NewsSeverity = iota
	NewsWarning
	NewsCritical
)

// NewsEntry is a structured camp news item.
type NewsEntry struct {
	ID       string
	Day      int
	Severity NewsSeverity
	Category string
	Text     string
}

// NewsFeed receives structured news, capped per day to avoid flooding.
type NewsFeed interface {
	Publish(entry NewsEntry)
}

// MaxNewsPerDay caps how many entries the feed accepts for one day.
const MaxNewsPerDay = 5

// MemoryNews buffers news entries, enforcing the daily cap.
type MemoryNews struct {
	Entries []NewsEntry
	perDay  map[int]int
}

// NewMemoryNews creates an empty feed.
func NewMemoryNews() *MemoryNews {
	return &MemoryNews{perDay: make(map[int]int)}
}

func (n *MemoryNews) Publish(entry NewsEntry) {
	if n.perDay[entry.Day] >= MaxNewsPerDay {
		slog.Debug("news cap reached, entry dropped", "day", entry.Day, "text", entry.Text)
		return
	}
	n.perDay[entry.Day]++
	entry.ID = uuid.NewString()
	n.Entries = append(n.Entries, entry)
}

// Recent returns up to limit most recent entries.
func (n *MemoryNews) Recent(limit int) []NewsEntry {
	if len(n.Entries) <= limit {
		return n.Entries
	}
	return n.Entries[len(n.Entries)-limit:]
}

// MemoryQueue buffers queued events.
type MemoryQueue struct {
	Events []QueuedEvent
}

func (q *MemoryQueue) Queue(ev QueuedEvent) {
	ev.ID = uuid.NewString()
	q.Events = append(q.Events, ev)
}

// LogNotifier writes notifications to the structured log. Used by the demo
// binary in place of a real combat log.
type LogNotifier struct{}

func (LogNotifier) Notify(text, color string) {
	slog.Info("camp log", "color", color, "text", text)
}

// MemoryLedger is an in-memory gold ledger.
type MemoryLedger struct {
	Balance int
}

func (l *MemoryLedger) Gold() int         { return l.Balance }
func (l *MemoryLedger) AddGold(delta int) { l.Balance += delta }

// MemoryXP accumulates XP per skill.
type MemoryXP struct {
	Totals map[string]int
}

func NewMemoryXP() *MemoryXP {
	return &MemoryXP{Totals: make(map[string]int)}
}

func (x *MemoryXP) ApplyXP(skill string, amount int) {
	if skill == "" || amount == 0 {
		return
	}
	x.Totals[skill] += amount
}

// MemoryConditions records applied conditions in order.
type MemoryConditions struct {
	Applied []string
}

func (c *MemoryConditions) ApplyCondition(id string) {
	c.Applied = append(c.Applied, id)
}
