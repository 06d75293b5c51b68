package weapon

import (
	"time"

	"github.com/udisondev/tankarena/internal/game/battle"
)

const (
	propFreezeStep     = "FREEZE_STEP"
	propBurnDuration   = "BURN_DURATION_SEC"
	propBurnDamageRate = "BURN_DAMAGE_PER_SECOND"
)

// stream is the firing state shared by cone weapons: ticks arrive as
// FireTarget while the trigger is held.
type stream struct {
	handler

	firing bool
	// onHit runs after damage landed on target.
	onHit func(target *battle.Tank)
}

func (h *stream) StartFire(StartFire) {
	if h.firing {
		return
	}
	h.firing = true
	h.broadcast(FireStarted{Tank: h.tank.ID()})
}

func (h *stream) StopFire() {
	if !h.firing {
		return
	}
	h.firing = false
	h.broadcast(FireStopped{Tank: h.tank.ID()})
}

func (h *stream) FireTarget(c FireTarget) {
	if !h.firing {
		return
	}
	for _, id := range c.Targets {
		target := h.activeTarget(id)
		if target == nil {
			continue
		}
		res := h.calculate(target)
		if _, ok := h.hit(target, res.Damage, false); !ok {
			continue
		}
		if h.onHit != nil && target.IsActive() {
			h.onHit(target)
		}
	}
}

func (h *stream) Deactivate() {
	h.firing = false
}

type freeze struct {
	stream
}

func newFreeze(t *battle.Tank) *freeze {
	h := &freeze{stream: stream{handler: newHandler(t)}}
	h.onHit = func(target *battle.Tank) {
		target.Effects().ApplyFreeze(h.properties().Float(propFreezeStep, 0))
	}
	return h
}

type flamethrower struct {
	stream
}

func newFlamethrower(t *battle.Tank) *flamethrower {
	h := &flamethrower{stream: stream{handler: newHandler(t)}}
	h.onHit = func(target *battle.Tank) {
		props := h.properties()
		duration := time.Duration(props.Float(propBurnDuration, 0) * float64(time.Second))
		target.Effects().Ignite(h.tank, duration, props.Float(propBurnDamageRate, 0))
	}
	return h
}
