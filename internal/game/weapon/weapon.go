// Package weapon implements the firing logic of every turret archetype.
// Handlers are attached to tanks through battle.RegisterWeapon; inbound fire
// commands reach them through Dispatch.
package weapon

import (
	"log/slog"

	"github.com/udisondev/tankarena/internal/game/battle"
	"github.com/udisondev/tankarena/internal/game/damage"
	"github.com/udisondev/tankarena/internal/garage"
)

func init() {
	battle.RegisterWeapon(garage.Smoky, func(t *battle.Tank) battle.WeaponHandler { return newSmoky(t) })
	battle.RegisterWeapon(garage.Twins, func(t *battle.Tank) battle.WeaponHandler { return newInstant(t) })
	battle.RegisterWeapon(garage.Ricochet, func(t *battle.Tank) battle.WeaponHandler { return newInstant(t) })
	battle.RegisterWeapon(garage.Railgun, func(t *battle.Tank) battle.WeaponHandler { return newRailgun(t) })
	battle.RegisterWeapon(garage.Shaft, func(t *battle.Tank) battle.WeaponHandler { return newShaft(t) })
	battle.RegisterWeapon(garage.Thunder, func(t *battle.Tank) battle.WeaponHandler { return newThunder(t) })
	battle.RegisterWeapon(garage.Isida, func(t *battle.Tank) battle.WeaponHandler { return newIsida(t) })
	battle.RegisterWeapon(garage.Freeze, func(t *battle.Tank) battle.WeaponHandler { return newFreeze(t) })
	battle.RegisterWeapon(garage.Flamethrower, func(t *battle.Tank) battle.WeaponHandler { return newFlamethrower(t) })
}

// handler carries what every weapon handler needs. Methods run with the battle lock held.
type handler struct {
	tank *battle.Tank
	kind garage.WeaponKind
}

func newHandler(t *battle.Tank) handler {
	h := handler{tank: t}
	if w := t.Weapon(); w != nil {
		h.kind = w.Kind
	}
	return h
}

func (h *handler) Kind() garage.WeaponKind { return h.kind }

func (h *handler) battle() *battle.Battle { return h.tank.Battle() }

func (h *handler) modification() *garage.WeaponModification { return h.tank.Weapon() }

func (h *handler) properties() garage.Properties {
	if w := h.modification(); w != nil {
		return w.Properties
	}
	return nil
}

func (h *handler) calculator() *damage.Calculator { return h.battle().Calculator() }

func (h *handler) damageProcessor() *battle.DamageProcessor { return h.battle().DamageProcessor() }

// broadcast sends ev to everybody except the shooter.
func (h *handler) broadcast(ev battle.Event) {
	h.battle().Broadcast(ev, h.tank)
}

// calculate computes the direct-hit damage against target.
func (h *handler) calculate(target *battle.Tank) damage.Result {
	return h.calculator().CalculateBetween(h.modification(), h.tank.Position(), target.Position())
}

// activeTarget resolves a tank id to an active tank. Unknown or inactive
// targets are dropped.
func (h *handler) activeTarget(id string) *battle.Tank {
	t := h.battle().Tank(id)
	if t == nil || !t.IsActive() {
		slog.Debug("shot at inactive target dropped",
			"battle", h.battle().ID(),
			"source", h.tank.ID(),
			"target", id)
		return nil
	}
	return t
}

// hit applies damage from the shooter to target.
func (h *handler) hit(target *battle.Tank, amount float64, critical bool) (battle.DamageType, bool) {
	return h.damageProcessor().DealDamage(h.tank, target, amount, critical, battle.DamageOptions{})
}
