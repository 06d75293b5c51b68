package weapon

import (
	"fmt"
	"log/slog"

	"github.com/udisondev/tankarena/internal/game/battle"
	"github.com/udisondev/tankarena/internal/garage"
	"github.com/udisondev/tankarena/internal/model"
)

// Command is an inbound fire request decoded by the protocol layer.
type Command interface {
	commandName() string
}

// StartFire begins a stream (freeze, flamethrower, isida). Target is used by isida.
type StartFire struct {
	Target string
}

// StopFire ends a stream.
type StopFire struct{}

// Fire is a shot that hit nothing (visual only).
type Fire struct {
	HitPoint *model.Vector3
}

// FireTarget reports the tanks hit by a shot or a stream tick, in hit order.
// Splash lists tanks caught by the explosion at HitPoint (thunder).
type FireTarget struct {
	Targets  []string
	HitPoint *model.Vector3
	Splash   []string
}

// StartCharge marks the start of a charged (aimed) shot. Time is the client physics time in ms.
type StartCharge struct {
	Time int
}

// FireCharged releases a charged shot at Time.
type FireCharged struct {
	Target string
	Time   int
}

// FireArcade is an uncharged shot.
type FireArcade struct {
	Target string
}

// StartAiming and StopAiming toggle the sniper view.
type StartAiming struct{}
type StopAiming struct{}

func (StartFire) commandName() string   { return "start_fire" }
func (StopFire) commandName() string    { return "stop_fire" }
func (Fire) commandName() string        { return "fire" }
func (FireTarget) commandName() string  { return "fire_target" }
func (StartCharge) commandName() string { return "start_charge" }
func (FireCharged) commandName() string { return "fire_charged" }
func (FireArcade) commandName() string  { return "fire_arcade" }
func (StartAiming) commandName() string { return "start_aiming" }
func (StopAiming) commandName() string  { return "stop_aiming" }

type (
	streamer interface {
		StartFire(StartFire)
		StopFire()
	}
	shooter interface {
		Fire(Fire)
	}
	targetShooter interface {
		FireTarget(FireTarget)
	}
	charger interface {
		StartCharge(StartCharge)
		FireCharged(FireCharged)
		FireArcade(FireArcade)
		StartAiming()
		StopAiming()
	}
)

// Dispatch routes cmd for weapon to the user's tank. Commands for a weapon the
// tank does not carry, or that the weapon does not support, are dropped silently.
func Dispatch(b *battle.Battle, user string, weapon garage.WeaponKind, cmd Command) error {
	err := b.WithTank(user, func(t *battle.Tank) error {
		h := t.Handler()
		if !t.IsAlive() || h == nil || h.Kind() != weapon {
			slog.Debug("fire command dropped",
				"battle", b.ID(),
				"user", user,
				"weapon", weapon,
				"command", cmd.commandName())
			return nil
		}
		if !dispatch(h, cmd) {
			slog.Debug("unsupported fire command",
				"battle", b.ID(),
				"user", user,
				"weapon", weapon,
				"command", cmd.commandName())
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("dispatching %s: %w", cmd.commandName(), err)
	}
	return nil
}

func dispatch(h battle.WeaponHandler, cmd Command) bool {
	switch c := cmd.(type) {
	case StartFire:
		s, ok := h.(streamer)
		if ok {
			s.StartFire(c)
		}
		return ok
	case StopFire:
		s, ok := h.(streamer)
		if ok {
			s.StopFire()
		}
		return ok
	case Fire:
		s, ok := h.(shooter)
		if ok {
			s.Fire(c)
		}
		return ok
	case FireTarget:
		s, ok := h.(targetShooter)
		if ok {
			s.FireTarget(c)
		}
		return ok
	case StartCharge:
		s, ok := h.(charger)
		if ok {
			s.StartCharge(c)
		}
		return ok
	case FireCharged:
		s, ok := h.(charger)
		if ok {
			s.FireCharged(c)
		}
		return ok
	case FireArcade:
		s, ok := h.(charger)
		if ok {
			s.FireArcade(c)
		}
		return ok
	case StartAiming:
		s, ok := h.(charger)
		if ok {
			s.StartAiming()
		}
		return ok
	case StopAiming:
		s, ok := h.(charger)
		if ok {
			s.StopAiming()
		}
		return ok
	default:
		return false
	}
}
