package weapon

import (
	"github.com/udisondev/tankarena/internal/game/battle"
)

// instant handles projectile weapons whose every hit is independent (twins, ricochet).
type instant struct {
	handler
}

func newInstant(t *battle.Tank) *instant {
	return &instant{handler: newHandler(t)}
}

func (h *instant) Fire(c Fire) {
	h.broadcast(Shot{Tank: h.tank.ID(), HitPoint: c.HitPoint})
}

func (h *instant) FireTarget(c FireTarget) {
	if len(c.Targets) == 0 {
		h.Fire(Fire{HitPoint: c.HitPoint})
		return
	}
	target := h.activeTarget(c.Targets[0])
	if target == nil {
		return
	}
	res := h.calculate(target)
	h.broadcast(ShotTarget{
		Tank:      h.tank.ID(),
		Targets:   []string{target.ID()},
		HitPoint:  c.HitPoint,
		Weakening: res.Weakening,
	})
	h.hit(target, res.Damage, false)
}

const (
	propCriticalChance = "CRITICAL_HIT_CHANCE"
	propCriticalDamage = "CRITICAL_HIT_DAMAGE"
)

// smoky rolls a critical hit per shot; a critical replaces the damage roll.
type smoky struct {
	handler
}

func newSmoky(t *battle.Tank) *smoky {
	return &smoky{handler: newHandler(t)}
}

func (h *smoky) Fire(c Fire) {
	h.broadcast(Shot{Tank: h.tank.ID(), HitPoint: c.HitPoint})
}

func (h *smoky) FireTarget(c FireTarget) {
	if len(c.Targets) == 0 {
		h.Fire(Fire{HitPoint: c.HitPoint})
		return
	}
	target := h.activeTarget(c.Targets[0])
	if target == nil {
		return
	}

	res := h.calculate(target)
	props := h.properties()
	critical := h.calculator().Chance(props.Float(propCriticalChance, 0))
	amount := res.Damage
	if critical {
		amount = props.Float(propCriticalDamage, amount)
	}

	h.broadcast(ShotTarget{
		Tank:      h.tank.ID(),
		Targets:   []string{target.ID()},
		HitPoint:  c.HitPoint,
		Weakening: res.Weakening,
		Critical:  critical,
	})
	h.hit(target, amount, critical)
}
