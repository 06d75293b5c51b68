package weapon

import (
	"github.com/udisondev/tankarena/internal/game/battle"
	"github.com/udisondev/tankarena/internal/model"
)

// thunder deals full damage to the tank it hits and shockwave damage to
// tanks around the hit point.
type thunder struct {
	handler
}

func newThunder(t *battle.Tank) *thunder {
	return &thunder{handler: newHandler(t)}
}

func (h *thunder) Fire(c Fire) {
	h.broadcast(Shot{Tank: h.tank.ID(), HitPoint: c.HitPoint})
	h.splash(c.HitPoint, "", nil)
}

func (h *thunder) FireTarget(c FireTarget) {
	var direct *battle.Tank
	if len(c.Targets) > 0 {
		direct = h.activeTarget(c.Targets[0])
	}
	if direct == nil {
		h.Fire(Fire{HitPoint: c.HitPoint})
		return
	}

	res := h.calculate(direct)
	h.broadcast(ShotTarget{
		Tank:      h.tank.ID(),
		Targets:   []string{direct.ID()},
		HitPoint:  c.HitPoint,
		Weakening: res.Weakening,
	})
	h.hit(direct, res.Damage, false)
	h.splash(c.HitPoint, direct.ID(), c.Splash)
}

// splash damages the listed tanks by their distance to the hit point.
// Tanks outside the shockwave radius are left alone.
func (h *thunder) splash(center *model.Vector3, skip string, ids []string) {
	if center == nil || len(ids) == 0 {
		return
	}
	w := h.modification()
	for _, id := range ids {
		if id == skip {
			continue
		}
		t := h.activeTarget(id)
		if t == nil {
			continue
		}
		res := h.calculator().SplashDamage(w, center.DistanceMeters(t.Position()))
		if !res.Hit || res.Damage <= 0 {
			continue
		}
		h.hit(t, res.Damage, false)
	}
}
