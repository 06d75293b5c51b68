package weapon

import (
	"math"

	"github.com/udisondev/tankarena/internal/game/battle"
	"github.com/udisondev/tankarena/internal/garage"
)

const (
	propAimingMaxDamage = "SHAFT_AIMING_MODE_MAX_DAMAGE"
	propReloadTime      = "WEAPON_RELOAD_TIME"

	// Fallbacks for shaft modifications without damage tables.
	defaultAimedDamage  = 150.0
	defaultArcadeDamage = 75.0
	defaultChargeTime   = 3.0 // seconds
)

// shaft fires either arcade shots or charged shots from the sniper view.
// Charged damage grows linearly with charge time up to the aiming maximum.
type shaft struct {
	handler

	charging    bool
	chargeStart int // client physics time, ms
	aiming      bool
}

func newShaft(t *battle.Tank) *shaft {
	return &shaft{handler: newHandler(t)}
}

func (h *shaft) StartAiming() {
	h.aiming = true
	h.broadcast(AimingStarted{Tank: h.tank.ID()})
}

func (h *shaft) StopAiming() {
	if !h.aiming {
		return
	}
	h.aiming = false
	h.charging = false
	h.broadcast(AimingStopped{Tank: h.tank.ID()})
}

func (h *shaft) StartCharge(c StartCharge) {
	h.charging = true
	h.chargeStart = c.Time
}

// ChargedDamage returns the damage of a shot charged for elapsed seconds.
func ChargedDamage(w *garage.WeaponModification, elapsed float64) float64 {
	maxDamage := defaultAimedDamage
	full := defaultChargeTime
	if w != nil {
		maxDamage = w.Properties.Float(propAimingMaxDamage, maxDamage)
		full = w.Properties.Float(propReloadTime, full)
	}
	if full <= 0 {
		return maxDamage
	}
	return maxDamage * math.Min(1, math.Max(0, elapsed/full))
}

func (h *shaft) FireCharged(c FireCharged) {
	if !h.charging {
		return
	}
	h.charging = false
	elapsed := float64(c.Time-h.chargeStart) / 1000

	target := h.target(c.Target)
	if target == nil {
		h.broadcast(Shot{Tank: h.tank.ID()})
		return
	}
	res := h.calculate(target)
	h.broadcast(ShotTarget{
		Tank:      h.tank.ID(),
		Targets:   []string{target.ID()},
		Weakening: res.Weakening,
	})
	h.hit(target, ChargedDamage(h.modification(), elapsed), false)
}

func (h *shaft) FireArcade(c FireArcade) {
	target := h.target(c.Target)
	if target == nil {
		h.broadcast(Shot{Tank: h.tank.ID()})
		return
	}

	amount := defaultArcadeDamage
	w := h.modification()
	if w != nil && w.Damage.Range != nil {
		amount = h.calculator().Uniform(*w.Damage.Range)
	}
	h.broadcast(ShotTarget{
		Tank:      h.tank.ID(),
		Targets:   []string{target.ID()},
		Weakening: 1,
	})
	h.hit(target, amount, false)
}

func (h *shaft) target(id string) *battle.Tank {
	if id == "" {
		return nil
	}
	return h.activeTarget(id)
}

func (h *shaft) Deactivate() {
	h.charging = false
	h.aiming = false
}
