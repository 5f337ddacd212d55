package game

import (
	"fmt"
	"math"
)

// CrowdMode selects how enemy-enemy overlap is corrected.
type CrowdMode int

const (
	// CrowdSymmetric visits every ordered pair, so both members of an
	// overlapping pair are pushed apart by half the penetration each.
	CrowdSymmetric CrowdMode = iota
	// CrowdAsymmetric visits each unordered pair once and pushes only the
	// lower-indexed member. Crowds drift toward higher indices.
	CrowdAsymmetric
)

func (m CrowdMode) String() string {
	switch m {
	case CrowdSymmetric:
		return "symmetric"
	case CrowdAsymmetric:
		return "asymmetric"
	default:
		return "unknown"
	}
}

// MarshalText lets tuning files spell the mode as a word.
func (m CrowdMode) MarshalText() ([]byte, error) { return []byte(m.String()), nil }

// UnmarshalText parses "symmetric" or "asymmetric".
func (m *CrowdMode) UnmarshalText(b []byte) error {
	switch string(b) {
	case "symmetric":
		*m = CrowdSymmetric
	case "asymmetric":
		*m = CrowdAsymmetric
	default:
		return fmt.Errorf("unknown crowd mode %q", string(b))
	}
	return nil
}

// SurvivalTuning holds the constants of the arena-clearing mode. Distances
// are in arena units (the arena is 2 units wide), times in seconds.
type SurvivalTuning struct {
	PlayerSpeed  float64 `json:"player_speed"`
	PlayerAccel  float64 `json:"player_accel"` // momentum blend rate, 1/s
	PlayerRadius float64 `json:"player_radius"`
	PlayerRegen  float64 `json:"player_regen"` // health per second while alive

	EnemySpeed  float64 `json:"enemy_speed"`
	EnemySteer  float64 `json:"enemy_steer"`
	EnemyRadius float64 `json:"enemy_radius"`

	SpawnInterval       float64 `json:"spawn_interval"`
	SpawnChanceBase     float64 `json:"spawn_chance_base"`
	SpawnChancePerLevel float64 `json:"spawn_chance_per_level"`

	FireballSpeed     float64 `json:"fireball_speed"`
	FireballRadius    float64 `json:"fireball_radius"`
	ExplodeRadius     float64 `json:"explode_radius"`
	SelfDamage        float64 `json:"self_damage"`
	ExplosionDuration float64 `json:"explosion_duration"`

	ContactDamage float64   `json:"contact_damage"`
	CullDistance  float64   `json:"cull_distance"`
	Crowd         CrowdMode `json:"crowd"`
}

// DefaultSurvivalTuning returns the stock arena constants.
func DefaultSurvivalTuning() SurvivalTuning {
	return SurvivalTuning{
		PlayerSpeed:  0.55,
		PlayerAccel:  36,
		PlayerRadius: 0.05,
		PlayerRegen:  0.1,

		EnemySpeed:  0.45,
		EnemySteer:  9,
		EnemyRadius: 0.025,

		SpawnInterval:       0.1,
		SpawnChanceBase:     0.02,
		SpawnChancePerLevel: 0.01,

		FireballSpeed:     2.0,
		FireballRadius:    0.025,
		ExplodeRadius:     0.35,
		SelfDamage:        0.4,
		ExplosionDuration: 0.05,

		ContactDamage: 0.2,
		CullDistance:  4,
		Crowd:         CrowdSymmetric,
	}
}

// LooterTuning holds the constants of the open-world scavenging mode.
// Distances are in world units (one building cell is CellSize units).
type LooterTuning struct {
	WorldHalfSize float64 `json:"world_half_size"`
	CameraSize    float64 `json:"camera_size"`
	DayLength     float64 `json:"day_length"`

	PlayerSpeed  float64 `json:"player_speed"`
	PlayerAccel  float64 `json:"player_accel"`
	PlayerRadius float64 `json:"player_radius"`
	PlayerRegen  float64 `json:"player_regen"`

	EnemySpeed    float64 `json:"enemy_speed"`
	EnemySteer    float64 `json:"enemy_steer"`
	EnemyRadius   float64 `json:"enemy_radius"`
	EnemyHealth   float64 `json:"enemy_health"`
	AcquireRange  float64 `json:"acquire_range"`
	ContactDamage float64 `json:"contact_damage"` // per overlapping enemy per tick

	SpawnInterval    float64 `json:"spawn_interval"`
	SpawnChanceDay   float64 `json:"spawn_chance_day"`
	SpawnChanceNight float64 `json:"spawn_chance_night"`
	PopulationDay    int     `json:"population_day"`
	PopulationNight  int     `json:"population_night"`
	SpawnDistance    float64 `json:"spawn_distance"`
	MaxSpawnAttempts int     `json:"max_spawn_attempts"`
	CullDistance     float64 `json:"cull_distance"`

	MeleeRadius   float64 `json:"melee_radius"`
	MeleeArc      float64 `json:"melee_arc"` // full arc width, radians
	MeleeDamage   float64 `json:"melee_damage"`
	MeleeNudge    float64 `json:"melee_nudge"`
	MeleeCooldown float64 `json:"melee_cooldown"`
	MeleeVisual   float64 `json:"melee_visual"`

	ScrapRadius   float64 `json:"scrap_radius"`
	AttractRadius float64 `json:"attract_radius"`
	AttractAccel  float64 `json:"attract_accel"`
	CollectRadius float64 `json:"collect_radius"`
	ScrapFriction float64 `json:"scrap_friction"`
	DropScatter   float64 `json:"drop_scatter"`

	CellSize     float64 `json:"cell_size"`
	WallCost     int     `json:"wall_cost"`
	TurretCost   int     `json:"turret_cost"`
	WallHealth   float64 `json:"wall_health"`
	TurretHealth float64 `json:"turret_health"`
	GnawDamage   float64 `json:"gnaw_damage"` // structure health per second per touching enemy

	TurretRange    float64 `json:"turret_range"`
	TurretCooldown float64 `json:"turret_cooldown"`
	BoltSpeed      float64 `json:"bolt_speed"`
	BoltRadius     float64 `json:"bolt_radius"`
	BoltDamage     float64 `json:"bolt_damage"`

	DetailCell    float64   `json:"detail_cell"`
	DetailDensity float64   `json:"detail_density"`
	WorldSeed     uint32    `json:"world_seed"` // ground detail layout
	Crowd         CrowdMode `json:"crowd"`
}

// DefaultLooterTuning returns the stock open-world constants.
func DefaultLooterTuning() LooterTuning {
	return LooterTuning{
		WorldHalfSize: 40,
		CameraSize:    4,
		DayLength:     120,

		PlayerSpeed:  1.1,
		PlayerAccel:  12,
		PlayerRadius: 0.1,
		PlayerRegen:  0.02,

		EnemySpeed:    0.8,
		EnemySteer:    6,
		EnemyRadius:   0.08,
		EnemyHealth:   1,
		AcquireRange:  3,
		ContactDamage: 0.008,

		SpawnInterval:    0.5,
		SpawnChanceDay:   0.05,
		SpawnChanceNight: 0.3,
		PopulationDay:    6,
		PopulationNight:  30,
		SpawnDistance:    3.2,
		MaxSpawnAttempts: 8,
		CullDistance:     6,

		MeleeRadius:   0.35,
		MeleeArc:      math.Pi / 2,
		MeleeDamage:   0.5,
		MeleeNudge:    0.08,
		MeleeCooldown: 0.35,
		MeleeVisual:   0.1,

		ScrapRadius:   0.04,
		AttractRadius: 0.8,
		AttractAccel:  8,
		CollectRadius: 0.12,
		ScrapFriction: 3,
		DropScatter:   0.1,

		CellSize:     0.25,
		WallCost:     2,
		TurretCost:   5,
		WallHealth:   3,
		TurretHealth: 2,
		GnawDamage:   0.5,

		TurretRange:    1.6,
		TurretCooldown: 0.6,
		BoltSpeed:      4,
		BoltRadius:     0.03,
		BoltDamage:     0.5,

		DetailCell:    0.5,
		DetailDensity: 0.35,
		WorldSeed:     0x5c4a9,
		Crowd:         CrowdSymmetric,
	}
}

// Tuning groups the constants of every mode.
type Tuning struct {
	Survival SurvivalTuning `json:"survival"`
	Looter   LooterTuning   `json:"looter"`
}

// DefaultTuning returns the stock constants for both modes.
func DefaultTuning() Tuning {
	return Tuning{Survival: DefaultSurvivalTuning(), Looter: DefaultLooterTuning()}
}
