package weapon

import (
	"github.com/udisondev/tankarena/internal/game/battle"
)

const propPenetrationFactor = "PENETRATION_FACTOR"

// penetrationByLevel is the share of the previous hit's damage that passes
// to the next target, by modification index.
var penetrationByLevel = [...]float64{0.10, 0.25, 0.50, 1.0}

// PenetrationFactor returns the damage carry-over between consecutive railgun targets.
func PenetrationFactor(index int) float64 {
	index = max(0, min(index, len(penetrationByLevel)-1))
	return penetrationByLevel[index]
}

// railgun pierces every enemy on the ray. Each next target takes the
// previous target's damage times the penetration factor.
type railgun struct {
	handler
}

func newRailgun(t *battle.Tank) *railgun {
	return &railgun{handler: newHandler(t)}
}

func (h *railgun) factor() float64 {
	w := h.modification()
	if w == nil {
		return PenetrationFactor(0)
	}
	return w.Properties.Float(propPenetrationFactor, PenetrationFactor(w.Index))
}

func (h *railgun) Fire(c Fire) {
	h.broadcast(Shot{Tank: h.tank.ID(), HitPoint: c.HitPoint})
}

func (h *railgun) FireTarget(c FireTarget) {
	var targets []*battle.Tank
	for _, id := range c.Targets {
		t := h.activeTarget(id)
		if t == nil || !h.tank.IsEnemy(t) {
			continue
		}
		targets = append(targets, t)
	}
	if len(targets) == 0 {
		h.Fire(Fire{HitPoint: c.HitPoint})
		return
	}

	first := h.calculate(targets[0])
	ids := make([]string, len(targets))
	for i, t := range targets {
		ids[i] = t.ID()
	}
	h.broadcast(ShotTarget{
		Tank:      h.tank.ID(),
		Targets:   ids,
		HitPoint:  c.HitPoint,
		Weakening: first.Weakening,
	})

	factor := h.factor()
	amount := first.Damage
	for i, t := range targets {
		if i > 0 {
			amount *= factor
		}
		h.hit(t, amount, false)
	}
}
