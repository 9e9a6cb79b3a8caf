// Package persistence provides SQLite-backed storage for the camp session:
// roster overlay, pressure counters, incident flags and cooldowns,
// opportunity history and active commitments.
package persistence

import (
	"fmt"
	"log/slog"
	"strconv"
	"strings"

	"github.com/jmoiron/sqlx"
	_ "modernc.org/sqlite"

	"github.com/talgya/camplife/internal/clock"
	"github.com/talgya/camplife/internal/company"
	"github.com/talgya/camplife/internal/defs"
	"github.com/talgya/camplife/internal/opportunity"
)

// DB wraps a SQLite connection for camp session persistence.
type DB struct {
	conn *sqlx.DB
}

// Open opens or creates a SQLite database at the given path.
func Open(path string) (*DB, error) {
	conn, err := sqlx.Open("sqlite", path+"?_journal_mode=WAL&_busy_timeout=5000")
	if err != nil {
		return nil, fmt.Errorf("open db: %w", err)
	}

	db := &DB{conn: conn}
	if err := db.migrate(); err != nil {
		conn.Close()
		return nil, fmt.Errorf("migrate: %w", err)
	}
	return db, nil
}

// Close closes the database connection.
func (db *DB) Close() error {
	return db.conn.Close()
}

func (db *DB) migrate() error {
	schema := `
	CREATE TABLE IF NOT EXISTS session_meta (
		key TEXT PRIMARY KEY,
		value TEXT NOT NULL
	);

	CREATE TABLE IF NOT EXISTS opportunity_history (
		id TEXT PRIMARY KEY,
		last_day INTEGER NOT NULL,
		last_hour INTEGER NOT NULL,
		seen INTEGER NOT NULL,
		engaged INTEGER NOT NULL,
		ignored INTEGER NOT NULL
	);

	CREATE TABLE IF NOT EXISTS type_history (
		type INTEGER PRIMARY KEY,
		last_day INTEGER NOT NULL,
		last_hour INTEGER NOT NULL,
		seen INTEGER NOT NULL,
		engaged INTEGER NOT NULL
	);

	CREATE TABLE IF NOT EXISTS commitments (
		opportunity_id TEXT PRIMARY KEY,
		decision_id TEXT NOT NULL,
		title TEXT NOT NULL,
		phase INTEGER NOT NULL,
		day INTEGER NOT NULL,
		committed_day INTEGER NOT NULL,
		committed_hour INTEGER NOT NULL,
		display_text TEXT NOT NULL
	);
	`
	_, err := db.conn.Exec(schema)
	return err
}

// SetMeta stores a key-value pair in session metadata.
func (db *DB) SetMeta(key, value string) error {
	_, err := db.conn.Exec(
		"INSERT OR REPLACE INTO session_meta (key, value) VALUES (?, ?)",
		key, value,
	)
	return err
}

// Meta retrieves a metadata value, or fallback when the key is absent.
func (db *DB) Meta(key, fallback string) string {
	var value string
	if err := db.conn.Get(&value, "SELECT value FROM session_meta WHERE key = ?", key); err != nil {
		return fallback
	}
	return value
}

func (db *DB) metaInt(key string, fallback int) int {
	v, err := strconv.Atoi(db.Meta(key, strconv.Itoa(fallback)))
	if err != nil {
		return fallback
	}
	return v
}

// SessionState is the full persisted camp session.
type SessionState struct {
	Day              int
	LastProcessedDay int
	Lord             string
	LastMusterDay    int

	Roster   company.Roster
	Pressure company.Pressure

	IncidentFlags     map[string]bool
	IncidentCooldowns map[string]int

	Player opportunity.PlayerState

	History     *opportunity.History
	Commitments []opportunity.Commitment

	Needs      map[string]int
	Gold       int
	Reputation int
}

// SaveSession writes the full session state in one transaction.
func (db *DB) SaveSession(st *SessionState) error {
	tx, err := db.conn.Beginx()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	meta := map[string]string{
		"day":                  strconv.Itoa(st.Day),
		"last_processed_day":   strconv.Itoa(st.LastProcessedDay),
		"lord":                 st.Lord,
		"last_muster_day":      strconv.Itoa(st.LastMusterDay),
		"roster_total":         strconv.Itoa(st.Roster.Total),
		"roster_sick":          strconv.Itoa(st.Roster.Sick),
		"roster_wounded":       strconv.Itoa(st.Roster.Wounded),
		"roster_dead":          strconv.Itoa(st.Roster.Dead),
		"roster_deserted":      strconv.Itoa(st.Roster.Deserted),
		"roster_missing":       joinInts(st.Roster.MissingDays),
		"press_low_supplies":   strconv.Itoa(st.Pressure.DaysLowSupplies),
		"press_crit_supplies":  strconv.Itoa(st.Pressure.DaysCriticalSupplies),
		"press_low_discipline": strconv.Itoa(st.Pressure.DaysLowDiscipline),
		"press_high_sickness":  strconv.Itoa(st.Pressure.DaysHighSickness),
		"press_desertions":     strconv.Itoa(st.Pressure.RecentDesertions),
		"press_crit_pulsed":    boolStr(st.Pressure.CriticalSupplyPulsed),
		"press_supply_crisis":  boolStr(st.Pressure.SupplyCrisisFired),
		"press_sick_crisis":    boolStr(st.Pressure.SicknessCrisisFired),
		"press_desert_crisis":  boolStr(st.Pressure.DesertionCrisisFired),
		"incident_flags":       joinFlags(st.IncidentFlags),
		"incident_cooldowns":   joinCooldowns(st.IncidentCooldowns),
		"player_tier":          strconv.Itoa(st.Player.Tier),
		"player_stamina":       strconv.Itoa(st.Player.Stamina),
		"player_injured":       boolStr(st.Player.Injured),
		"player_on_duty":       boolStr(st.Player.OnDuty),
		"player_duty_kind":     st.Player.DutyKind,
		"player_probation":     boolStr(st.Player.OnProbation),
		"player_grace_days":    strconv.Itoa(st.Player.GraceDaysLeft),
		"gold":                 strconv.Itoa(st.Gold),
		"reputation":           strconv.Itoa(st.Reputation),
	}
	for res, v := range st.Needs {
		meta["needs_"+res] = strconv.Itoa(v)
	}
	for k, v := range meta {
		if _, err := tx.Exec(
			"INSERT OR REPLACE INTO session_meta (key, value) VALUES (?, ?)", k, v,
		); err != nil {
			return fmt.Errorf("meta %s: %w", k, err)
		}
	}

	if _, err := tx.Exec("DELETE FROM opportunity_history"); err != nil {
		return err
	}
	if st.History != nil {
		for id, rec := range st.History.ByID {
			if _, err := tx.Exec(`INSERT INTO opportunity_history
				(id, last_day, last_hour, seen, engaged, ignored)
				VALUES (?, ?, ?, ?, ?, ?)`,
				id, rec.LastShown.Day, rec.LastShown.Hour, rec.Seen, rec.Engaged, rec.Ignored,
			); err != nil {
				return fmt.Errorf("history %s: %w", id, err)
			}
		}
	}

	if _, err := tx.Exec("DELETE FROM type_history"); err != nil {
		return err
	}
	if st.History != nil {
		for t, rec := range st.History.ByType {
			if _, err := tx.Exec(`INSERT INTO type_history
				(type, last_day, last_hour, seen, engaged)
				VALUES (?, ?, ?, ?, ?)`,
				int(t), rec.LastShown.Day, rec.LastShown.Hour, rec.Seen, rec.Engaged,
			); err != nil {
				return fmt.Errorf("type history %d: %w", t, err)
			}
		}
	}

	if _, err := tx.Exec("DELETE FROM commitments"); err != nil {
		return err
	}
	for _, c := range st.Commitments {
		if _, err := tx.Exec(`INSERT INTO commitments
			(opportunity_id, decision_id, title, phase, day, committed_day, committed_hour, display_text)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
			c.OpportunityID, c.TargetDecisionID, c.Title, int(c.Phase), c.Day,
			c.CommittedAt.Day, c.CommittedAt.Hour, c.DisplayText,
		); err != nil {
			return fmt.Errorf("commitment %s: %w", c.OpportunityID, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return err
	}
	slog.Info("session saved", "day", st.Day, "commitments", len(st.Commitments))
	return nil
}

// LoadSession reads the persisted state. Absent keys and empty tables load
// as safe zero values, so a fresh database yields a fresh session.
func (db *DB) LoadSession() (*SessionState, error) {
	st := &SessionState{
		Day:              db.metaInt("day", 0),
		LastProcessedDay: db.metaInt("last_processed_day", 0),
		Lord:             db.Meta("lord", ""),
		LastMusterDay:    db.metaInt("last_muster_day", 0),
		Roster: company.Roster{
			Total:       db.metaInt("roster_total", 0),
			Sick:        db.metaInt("roster_sick", 0),
			Wounded:     db.metaInt("roster_wounded", 0),
			Dead:        db.metaInt("roster_dead", 0),
			Deserted:    db.metaInt("roster_deserted", 0),
			MissingDays: splitInts(db.Meta("roster_missing", "")),
		},
		Pressure: company.Pressure{
			DaysLowSupplies:      db.metaInt("press_low_supplies", 0),
			DaysCriticalSupplies: db.metaInt("press_crit_supplies", 0),
			DaysLowDiscipline:    db.metaInt("press_low_discipline", 0),
			DaysHighSickness:     db.metaInt("press_high_sickness", 0),
			RecentDesertions:     db.metaInt("press_desertions", 0),
			CriticalSupplyPulsed: db.metaInt("press_crit_pulsed", 0) == 1,
			SupplyCrisisFired:    db.metaInt("press_supply_crisis", 0) == 1,
			SicknessCrisisFired:  db.metaInt("press_sick_crisis", 0) == 1,
			DesertionCrisisFired: db.metaInt("press_desert_crisis", 0) == 1,
		},
		IncidentFlags:     splitFlags(db.Meta("incident_flags", "")),
		IncidentCooldowns: splitCooldowns(db.Meta("incident_cooldowns", "")),
		Player: opportunity.PlayerState{
			Tier:          db.metaInt("player_tier", 0),
			Stamina:       db.metaInt("player_stamina", 0),
			Injured:       db.metaInt("player_injured", 0) == 1,
			OnDuty:        db.metaInt("player_on_duty", 0) == 1,
			DutyKind:      db.Meta("player_duty_kind", ""),
			OnProbation:   db.metaInt("player_probation", 0) == 1,
			GraceDaysLeft: db.metaInt("player_grace_days", 0),
		},
		History:    opportunity.NewHistory(),
		Needs:      make(map[string]int),
		Gold:       db.metaInt("gold", 0),
		Reputation: db.metaInt("reputation", 0),
	}

	for _, res := range []string{"supplies", "morale", "rest", "discipline"} {
		if v := db.Meta("needs_"+res, ""); v != "" {
			if n, err := strconv.Atoi(v); err == nil {
				st.Needs[res] = n
			}
		}
	}

	var idRows []struct {
		ID       string `db:"id"`
		LastDay  int    `db:"last_day"`
		LastHour int    `db:"last_hour"`
		Seen     int    `db:"seen"`
		Engaged  int    `db:"engaged"`
		Ignored  int    `db:"ignored"`
	}
	if err := db.conn.Select(&idRows, "SELECT * FROM opportunity_history"); err != nil {
		return nil, fmt.Errorf("load history: %w", err)
	}
	for _, row := range idRows {
		st.History.ByID[row.ID] = &opportunity.IDRecord{
			LastShown: clock.CampTime{Day: row.LastDay, Hour: row.LastHour},
			Seen:      row.Seen,
			Engaged:   row.Engaged,
			Ignored:   row.Ignored,
		}
	}

	var typeRows []struct {
		Type     int `db:"type"`
		LastDay  int `db:"last_day"`
		LastHour int `db:"last_hour"`
		Seen     int `db:"seen"`
		Engaged  int `db:"engaged"`
	}
	if err := db.conn.Select(&typeRows, "SELECT * FROM type_history"); err != nil {
		return nil, fmt.Errorf("load type history: %w", err)
	}
	for _, row := range typeRows {
		st.History.ByType[defs.OpportunityType(row.Type)] = &opportunity.TypeRecord{
			LastShown: clock.CampTime{Day: row.LastDay, Hour: row.LastHour},
			Seen:      row.Seen,
			Engaged:   row.Engaged,
		}
	}

	var commitRows []struct {
		OpportunityID string `db:"opportunity_id"`
		DecisionID    string `db:"decision_id"`
		Title         string `db:"title"`
		Phase         int    `db:"phase"`
		Day           int    `db:"day"`
		CommittedDay  int    `db:"committed_day"`
		CommittedHour int    `db:"committed_hour"`
		DisplayText   string `db:"display_text"`
	}
	if err := db.conn.Select(&commitRows, "SELECT * FROM commitments"); err != nil {
		return nil, fmt.Errorf("load commitments: %w", err)
	}
	for _, row := range commitRows {
		st.Commitments = append(st.Commitments, opportunity.Commitment{
			OpportunityID:    row.OpportunityID,
			TargetDecisionID: row.DecisionID,
			Title:            row.Title,
			Phase:            clock.DayPhase(row.Phase),
			Day:              row.Day,
			CommittedAt:      clock.CampTime{Day: row.CommittedDay, Hour: row.CommittedHour},
			DisplayText:      row.DisplayText,
		})
	}

	return st, nil
}

// HasSession reports whether a previous session exists in this database.
func (db *DB) HasSession() bool {
	return db.Meta("day", "") != ""
}

// Delimited-string codecs for the small overlay collections.

func boolStr(b bool) string {
	if b {
		return "1"
	}
	return "0"
}

func joinInts(vals []int) string {
	parts := make([]string, len(vals))
	for i, v := range vals {
		parts[i] = strconv.Itoa(v)
	}
	return strings.Join(parts, ",")
}

func splitInts(s string) []int {
	if s == "" {
		return nil
	}
	var out []int
	for _, part := range strings.Split(s, ",") {
		if v, err := strconv.Atoi(part); err == nil {
			out = append(out, v)
		}
	}
	return out
}

func joinFlags(flags map[string]bool) string {
	var parts []string
	for name, on := range flags {
		if on {
			parts = append(parts, name)
		}
	}
	return strings.Join(parts, "|")
}

func splitFlags(s string) map[string]bool {
	out := make(map[string]bool)
	if s == "" {
		return out
	}
	for _, name := range strings.Split(s, "|") {
		if name != "" {
			out[name] = true
		}
	}
	return out
}

func joinCooldowns(cds map[string]int) string {
	var parts []string
	for id, days := range cds {
		if days > 0 {
			parts = append(parts, fmt.Sprintf("%s:%d", id, days))
		}
	}
	return strings.Join(parts, "|")
}

func splitCooldowns(s string) map[string]int {
	out := make(map[string]int)
	if s == "" {
		return out
	}
	for _, part := range strings.Split(s, "|") {
		id, daysStr, ok := strings.Cut(part, ":")
		if !ok {
			continue
		}
		if days, err := strconv.Atoi(daysStr); err == nil && days > 0 {
			out[id] = days
		}
	}
	return out
}
