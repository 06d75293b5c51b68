package weapon

import (
	"github.com/udisondev/tankarena/internal/model"
)

// FireStarted tells other clients a stream weapon started firing.
type FireStarted struct {
	Tank string
}

type FireStopped struct {
	Tank string
}

// Shot is a shot that hit nothing.
type Shot struct {
	Tank     string
	HitPoint *model.Vector3
}

// ShotTarget is a shot that hit tanks. Weakening is the distance multiplier
// of the first target.
type ShotTarget struct {
	Tank      string
	Targets   []string
	HitPoint  *model.Vector3
	Weakening float64
	Critical  bool
}

type AimingStarted struct {
	Tank string
}

type AimingStopped struct {
	Tank string
}

// HealTargetSet tells clients where an isida beam points and whether it heals.
type HealTargetSet struct {
	Tank   string
	Target string
	Heal   bool
}

func (FireStarted) EventName() string   { return "start_fire" }
func (FireStopped) EventName() string   { return "stop_fire" }
func (Shot) EventName() string          { return "shot" }
func (ShotTarget) EventName() string    { return "shot_target" }
func (AimingStarted) EventName() string { return "enter_sniping_mode" }
func (AimingStopped) EventName() string { return "exit_sniping_mode" }
func (HealTargetSet) EventName() string { return "set_target" }
