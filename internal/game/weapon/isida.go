package weapon

import (
	"github.com/udisondev/tankarena/internal/game/battle"
	"github.com/udisondev/tankarena/internal/garage"
)

const propSelfHealPercent = "ISIS_SELF_HEALING_PERCENT"

// isida drains enemies and heals allies. Draining an enemy also heals
// the shooter by a share of the damage.
type isida struct {
	handler

	firing bool
	target string
}

func newIsida(t *battle.Tank) *isida {
	return &isida{handler: newHandler(t)}
}

// HealRatio is the share of beam damage restored to an ally.
func HealRatio(w *garage.WeaponModification) float64 {
	if w == nil || w.Damage.Heal == nil || w.Damage.Fixed == nil || *w.Damage.Fixed == 0 {
		return 1
	}
	return *w.Damage.Heal / *w.Damage.Fixed
}

func (h *isida) StartFire(c StartFire) {
	h.firing = true
	h.target = c.Target

	heal := false
	if t := h.battle().Tank(c.Target); t != nil {
		heal = h.tank.IsAlly(t)
	}
	h.broadcast(HealTargetSet{Tank: h.tank.ID(), Target: c.Target, Heal: heal})
}

func (h *isida) StopFire() {
	h.firing = false
	h.target = ""
	h.broadcast(FireStopped{Tank: h.tank.ID()})
}

// FireTarget applies one beam tick to the first target.
func (h *isida) FireTarget(c FireTarget) {
	if !h.firing || len(c.Targets) == 0 {
		return
	}
	target := h.activeTarget(c.Targets[0])
	if target == nil || target == h.tank {
		return
	}

	res := h.calculate(target)
	dp := h.damageProcessor()
	if h.tank.IsAlly(target) {
		dp.Heal(h.tank, target, res.Damage*HealRatio(h.modification()))
		return
	}

	if _, ok := dp.DealDamage(h.tank, target, res.Damage, false, battle.DamageOptions{}); !ok {
		return
	}
	selfHeal := h.properties().Float(propSelfHealPercent, 0) / 100
	if selfHeal > 0 && h.tank.IsAlive() {
		dp.HealSelf(h.tank, res.Damage*selfHeal)
	}
}

func (h *isida) Deactivate() {
	h.firing = false
	h.target = ""
}
