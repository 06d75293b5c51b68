package config

import "time"

// Battle holds combat tunables shared by every battle on the server.
// Durations are YAML strings ("10s", "500ms").
type Battle struct {
	MaxPeople int `yaml:"max_people"`

	// Lifecycle
	RestartDelay      time.Duration `yaml:"restart_delay"`
	SelfDestructDelay time.Duration `yaml:"self_destruct_delay"`
	FallMargin        float64       `yaml:"fall_margin"`

	// Spawn / ghost state
	GhostDuration        time.Duration `yaml:"ghost_duration"`
	GhostPollInterval    time.Duration `yaml:"ghost_poll_interval"`
	SpawnOverlapDistance float64       `yaml:"spawn_overlap_distance"`
	SpawnHeightOffset    float64       `yaml:"spawn_height_offset"`

	// CTF
	FlagReturnDelay  time.Duration `yaml:"flag_return_delay"`
	FlagHeightOffset float64       `yaml:"flag_height_offset"`

	// Status effects
	EffectTick          time.Duration `yaml:"effect_tick"`
	BurnDamagePerSecond float64       `yaml:"burn_damage_per_second"`
	FreezeStep          float64       `yaml:"freeze_step"`
	FreezeDecay         float64       `yaml:"freeze_decay"`
	FreezeMax           float64       `yaml:"freeze_max"`

	RepairKit    RepairKit `yaml:"repair_kit"`
	DoubleDamage Supply    `yaml:"double_damage"`
	DoubleArmor  Supply    `yaml:"double_armor"`

	Mine          Mine          `yaml:"mine"`
	ControlPoints ControlPoints `yaml:"control_points"`
}

// RepairKit: лечение по тикам: первая половина тиков лечит FirstPercent
// от максимума здоровья, вторая RestPercent.
type RepairKit struct {
	Ticks        int           `yaml:"ticks"`
	Interval     time.Duration `yaml:"interval"`
	FirstPercent float64       `yaml:"first_percent"`
	RestPercent  float64       `yaml:"rest_percent"`
	Cooldown     time.Duration `yaml:"cooldown"`
}

// Supply is a timed multiplier effect (double damage, double armor).
type Supply struct {
	Duration   time.Duration `yaml:"duration"`
	Multiplier float64       `yaml:"multiplier"`
	Cooldown   time.Duration `yaml:"cooldown"`
}

// Mine configures mine explosions.
type Mine struct {
	Damage  float64 `yaml:"damage"`
	PerUser int     `yaml:"per_user"`
}

// ControlPoints configures capture zones.
type ControlPoints struct {
	Tick          time.Duration `yaml:"tick"`
	CaptureSpeed  float64       `yaml:"capture_speed"`
	ScoreInterval time.Duration `yaml:"score_interval"`
}

// DefaultBattle returns the stock combat tunables.
func DefaultBattle() Battle {
	return Battle{
		MaxPeople:            8,
		RestartDelay:         10 * time.Second,
		SelfDestructDelay:    10 * time.Second,
		FallMargin:           600,
		GhostDuration:        3 * time.Second,
		GhostPollInterval:    100 * time.Millisecond,
		SpawnOverlapDistance: 800,
		SpawnHeightOffset:    200,
		FlagReturnDelay:      30 * time.Second,
		FlagHeightOffset:     80,
		EffectTick:           500 * time.Millisecond,
		BurnDamagePerSecond:  100,
		FreezeStep:           0.25,
		FreezeDecay:          0.20,
		FreezeMax:            0.7,
		RepairKit: RepairKit{
			Ticks:        20,
			Interval:     500 * time.Millisecond,
			FirstPercent: 10,
			RestPercent:  5,
			Cooldown:     20 * time.Second,
		},
		DoubleDamage: Supply{Duration: 60 * time.Second, Multiplier: 2, Cooldown: 30 * time.Second},
		DoubleArmor:  Supply{Duration: 60 * time.Second, Multiplier: 2, Cooldown: 30 * time.Second},
		Mine:         Mine{Damage: 250, PerUser: 3},
		ControlPoints: ControlPoints{
			Tick:          time.Second,
			CaptureSpeed:  10,
			ScoreInterval: 5 * time.Second,
		},
	}
}
