package defs

// Compiled-in fallback content. Loaded whenever a definition file is
// missing or fails to parse, so the camp never goes silent over a bad
// content drop.

const defaultOpportunitiesYAML = `# camplife opportunity definitions (built-in fallback)
generator:
  default_budget: 2
  max_per_phase: 3
  score_threshold: 40
  schedule_boost: 1.3
  budget_table:
    PeacetimeGarrison: {Dawn: 3, Midday: 2, Dusk: 3, Night: 1}
    Resting:           {Dawn: 3, Midday: 3, Dusk: 3, Night: 2}
    Marching:          {Dawn: 1, Midday: 1, Dusk: 2, Night: 1}
    Raiding:           {Dawn: 1, Midday: 1, Dusk: 1, Night: 1}
    SiegeAttacker:     {Dawn: 2, Midday: 1, Dusk: 2, Night: 1}
    SiegeDefender:     {Dawn: 2, Midday: 1, Dusk: 2, Night: 1}
    Battle:            {Dawn: 0, Midday: 0, Dusk: 0, Night: 0}

opportunities:
  - id: extra-drill
    title: Extra weapons drill
    type: training
    tier_min: 1
    tier_max: 7
    cooldown_hours: 24
    base_fitness: 55
    valid_phases: [dawn, midday]
    land_only: true
    order_compat: {default: open, sentry: blocked}
    target_decision: inquiry_extra_drill

  - id: sparring-circle
    title: Join the sparring circle
    type: training
    tier_min: 2
    tier_max: 7
    cooldown_hours: 36
    base_fitness: 50
    valid_phases: [dusk]
    order_compat: {default: risky}
    detection: {base_chance: 0.15, night_modifier: 0.1, high_rep_modifier: 0.1}
    caught: {reputation_delta: -4, discipline_delta: -2, order_failure_risk: 0.2}
    target_decision: inquiry_sparring

  - id: fireside-stories
    title: Stories at the cookfire
    type: social
    tier_min: 1
    tier_max: 7
    cooldown_hours: 18
    base_fitness: 45
    valid_phases: [dusk, night]
    target_decision: inquiry_fireside

  - id: dice-game
    title: Dice behind the baggage train
    type: economic
    tier_min: 1
    tier_max: 7
    cooldown_hours: 24
    base_fitness: 40
    valid_phases: [dusk, night]
    tags: [gambling]
    order_compat: {default: risky}
    detection: {base_chance: 0.25, night_modifier: 0.2, high_rep_modifier: 0.15}
    caught: {reputation_delta: -6, discipline_delta: -4, order_failure_risk: 0.3}
    target_decision: inquiry_dice

  - id: sutler-errand
    title: Run an errand for the sutler
    type: economic
    tier_min: 1
    tier_max: 5
    cooldown_hours: 30
    base_fitness: 42
    target_decision: inquiry_sutler

  - id: bathhouse-rest
    title: An hour at the bathhouse
    type: recovery
    tier_min: 1
    tier_max: 7
    cooldown_hours: 24
    base_fitness: 48
    land_only: true
    target_decision: inquiry_bathhouse

  - id: surgeon-tent
    title: Visit the surgeon's tent
    type: recovery
    tier_min: 1
    tier_max: 7
    cooldown_hours: 12
    base_fitness: 44
    target_decision: inquiry_surgeon

  - id: deck-watch-trade
    title: Trade watches with a deckhand
    type: social
    tier_min: 2
    tier_max: 7
    cooldown_hours: 24
    base_fitness: 46
    sea_only: true
    target_decision: inquiry_deck_watch

  - id: quartermaster-audience
    title: An audience with the quartermaster
    type: special
    tier_min: 4
    tier_max: 7
    cooldown_hours: 72
    base_fitness: 58
    requires_flag: quartermaster_favor
    fixed_hour: 12
    target_decision: inquiry_quartermaster
`

const defaultIncidentsYAML = `# camplife incident definitions (built-in fallback)
incidents:
  - id: rations-spoiled
    category: problems
    severity: 2
    weight: 3
    cooldown_days: 4
    text: A crate of rations has spoiled in the damp.
    effects: {supplies: -8, morale: -2}

  - id: cart-axle-broken
    category: problems
    severity: 1
    weight: 3
    cooldown_days: 3
    text: A baggage cart axle snapped on the track.
    effects: {supplies: -4}

  - id: brawl-in-lines
    category: problems
    severity: 2
    weight: 2.5
    cooldown_days: 5
    sets_flag: brawl_recently
    text: Two squads came to blows over a card debt.
    effects: {morale: -4, discipline: -3}

  - id: brawl-reprisal
    category: problems
    severity: 3
    weight: 2
    cooldown_days: 7
    requires_flag: brawl_recently
    text: The losers of last week's brawl took their revenge after dark.
    effects: {morale: -6, discipline: -5}

  - id: forage-windfall
    category: fortune
    severity: 1
    weight: 2
    cooldown_days: 3
    text: A foraging party found an abandoned orchard.
    effects: {supplies: 10, morale: 3}

  - id: visiting-minstrel
    category: fortune
    severity: 1
    weight: 1.5
    cooldown_days: 6
    text: A travelling minstrel played for the camp past curfew.
    effects: {morale: 6}

  - id: latrine-flooded
    category: camp
    severity: 1
    weight: 2.5
    cooldown_days: 2
    text: Overnight rain flooded the latrine trenches.
    effects: {morale: -3}

  - id: kit-inspection
    category: camp
    severity: 1
    weight: 2
    cooldown_days: 4
    text: A surprise kit inspection swept through the tents.
    effects: {discipline: 3, morale: -1}
`

const defaultScheduleYAML = `# camplife schedule baseline (built-in fallback)
boost_factor: 1.3

phases:
  dawn:
    flavor: The camp stirs under grey light; sergeants are already shouting.
    slots:
      - {category: formation, description: Morning formation and inspection, weight: 1.0}
      - {category: training, description: Weapons drill, weight: 0.8}
  midday:
    flavor: The sun is high and the work details are out.
    slots:
      - {category: labor, description: Camp labor and fortification work, weight: 1.0}
      - {category: foraging, description: Foraging and supply detail, weight: 0.7}
  dusk:
    flavor: Cookfires are lit and the day's orders wind down.
    slots:
      - {category: maintenance, description: Kit maintenance and mending, weight: 0.9}
      - {category: leisure, description: Free time around the fires, weight: 0.8}
  night:
    flavor: The camp is quiet but for the watch rotation.
    slots:
      - {category: watch, description: Sentry and picket rotation, weight: 1.0}
      - {category: rest, description: Sleep, weight: 1.0}

activity_multipliers:
  quiet:
    formation: 0.8
    labor: 0.6
    leisure: 1.2
  routine: {}
  intense:
    leisure: 0
    rest: 0.7
    training: 1.2

blanked_by:
  Battle: the army is forming for battle

boost_category:
  Marching: labor
  SiegeAttacker: labor
  SiegeDefender: watch
  Raiding: foraging
`

const defaultOutcomesYAML = `# camplife routine outcome tables (built-in fallback)
weight_sets:
  default:   [10, 25, 45, 15, 5]
  fatigued:  [4, 15, 41, 27, 13]
  lowMorale: [5, 18, 42, 23, 12]

activities:
  - category: formation
    skill: discipline
    xp: {min: 5, max: 12}
    fatigue_delta: 4
    mishap_chance: 0.1
    mishap_condition: reprimanded
    morale_deltas:
      excellent: {min: 1, max: 2}
      mishap: {min: -2, max: -1}
    flavor_land:
      excellent: ["Your file stood sharpest on the line; the sergeant said nothing, which is high praise."]
      good: ["A clean muster, boots passable, nobody singled out."]
      normal: ["Another morning formation like a hundred before it."]
      poor: ["You fumbled the dressing of the line and earned a long stare."]
      mishap: ["You were called out by name in front of the company."]
    flavor_sea:
      normal: ["Muster on a rolling deck, shoulder to shoulder along the rail."]

  - category: training
    skill: weapon
    xp: {min: 10, max: 25}
    fatigue_delta: 8
    mishap_chance: 0.15
    mishap_condition: training_strain
    morale_deltas:
      excellent: {min: 1, max: 3}
    flavor_land:
      excellent: ["The drillmaster used your form to correct the others."]
      good: ["Solid work at the posts; your arms ache in the good way."]
      normal: ["Drill, strike, recover. Again. Again."]
      poor: ["Your timing was off all morning."]
      mishap: ["A training partner's blunt caught you badly."]

  - category: labor
    skill: athletics
    xp: {min: 6, max: 15}
    fatigue_delta: 10
    gold_chance: 0.1
    gold: {min: 2, max: 6}
    mishap_chance: 0.12
    mishap_condition: pulled_muscle
    supply_deltas:
      excellent: {min: 2, max: 4}
      good: {min: 1, max: 2}
    flavor_land:
      excellent: ["The earthworks went up faster than the engineer believed possible."]
      good: ["A long day of honest digging."]
      normal: ["Timber, mud, and rope until dusk."]
      poor: ["Half the day lost to a collapsed trench wall."]
      mishap: ["A load shifted and came down on your shoulder."]

  - category: foraging
    skill: scouting
    xp: {min: 6, max: 14}
    fatigue_delta: 7
    gold_chance: 0.15
    gold: {min: 1, max: 5}
    mishap_chance: 0.1
    mishap_condition: twisted_ankle
    supply_deltas:
      excellent: {min: 4, max: 8}
      good: {min: 2, max: 4}
      normal: {min: 0, max: 2}
      mishap: {min: -2, max: 0}
    flavor_land:
      excellent: ["You came back with full sacks and a goose nobody asked about."]
      good: ["The hedgerows gave up enough to matter."]
      normal: ["Slim pickings, but pickings."]
      poor: ["Picked-over fields and sour looks from the locals."]
      mishap: ["You lost the trail and half the detail's haul with it."]

  - category: maintenance
    skill: crafting
    xp: {min: 5, max: 12}
    fatigue_delta: 3
    mishap_chance: 0.08
    mishap_condition: cut_hand
    flavor_land:
      excellent: ["Your kit would pass a royal inspection."]
      good: ["Oiled, stitched, and squared away."]
      normal: ["An evening of small repairs."]
      poor: ["The stitching came apart as fast as you sewed it."]
      mishap: ["The awl slipped and bit deep."]

  - category: leisure
    skill: ""
    xp: {min: 0, max: 4}
    fatigue_delta: -6
    gold_chance: 0.05
    gold: {min: 1, max: 4}
    gold_loss_chance: 0.3
    gold_loss: {min: 2, max: 8}
    mishap_chance: 0.06
    mishap_condition: hungover
    morale_deltas:
      excellent: {min: 2, max: 4}
      good: {min: 1, max: 2}
      mishap: {min: -3, max: -1}
    flavor_land:
      excellent: ["Songs, a full cup, and for one evening no war at all."]
      good: ["Good company around the fire."]
      normal: ["A quiet evening off your feet."]
      poor: ["The card game turned sour early."]
      mishap: ["You remember very little, and owe money to men you do."]
    flavor_sea:
      good: ["Dice on a hatch cover under a swinging lantern."]

  - category: watch
    skill: scouting
    xp: {min: 4, max: 10}
    fatigue_delta: 6
    mishap_chance: 0.1
    mishap_condition: caught_chill
    flavor_land:
      excellent: ["You spotted movement on the treeline before anyone else."]
      good: ["A cold, uneventful watch, which is the best kind."]
      normal: ["Four hours of dark and wind."]
      poor: ["You nearly nodded off against the palisade."]
      mishap: ["The sergeant of the watch found you asleep."]
    flavor_sea:
      normal: ["Watch at the bow, salt spray freezing on your collar."]

  - category: rest
    skill: ""
    xp: {min: 0, max: 0}
    fatigue_delta: -12
    mishap_chance: 0.05
    mishap_condition: bad_dreams
    flavor_land:
      excellent: ["Deep, dreamless sleep; the first in weeks."]
      good: ["A full night under dry canvas."]
      normal: ["Sleep, of a kind."]
      poor: ["Rain through the tent seam all night."]
      mishap: ["You woke shouting from dreams of the last battle."]
`
