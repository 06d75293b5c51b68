package battle

import (
	"log/slog"
)

// DamageType classifies the outcome of one damage application.
type DamageType uint8

const (
	DamageNormal DamageType = iota
	DamageCritical
	DamageKill
	DamageHeal
)

// Key is the client key of the damage indicator.
func (t DamageType) Key() string {
	switch t {
	case DamageCritical:
		return "CRITICAL"
	case DamageKill:
		return "FATAL"
	case DamageHeal:
		return "HEAL"
	default:
		return "NORMAL"
	}
}

func (t DamageType) String() string { return t.Key() }

// DamageOptions alter the damage pipeline.
type DamageOptions struct {
	// IgnoreSourceEffects skips the attacker's damage multiplier (burn ticks).
	IgnoreSourceEffects bool
	// DamageSource overrides the weapon id for the paint resistance lookup ("mine").
	DamageSource string
}

// DamageProcessor applies damage and heal to tanks. All methods expect the
// battle lock to be held.
type DamageProcessor struct {
	battle *Battle
}

// CanDamage reports whether source is allowed to damage target under the
// battle's friendly-fire and self-damage rules.
func (d *DamageProcessor) CanDamage(source, target *Tank) bool {
	props := d.battle.props
	if !props.DamageEnabled {
		return false
	}
	if source == target {
		return props.SelfDamageEnabled
	}
	if source.IsAlly(target) {
		return props.FriendlyFireEnabled
	}
	return true
}

// DealDamage subtracts damage from target's health. It reports the outcome and
// false when the hit was suppressed (damage disabled, friendly fire, target not active).
func (d *DamageProcessor) DealDamage(source, target *Tank, amount float64, critical bool, opts DamageOptions) (DamageType, bool) {
	b := d.battle
	if !b.props.DamageEnabled {
		return DamageNormal, false
	}
	if target.state != TankActive {
		return DamageNormal, false
	}
	if !d.CanDamage(source, target) {
		return DamageNormal, false
	}

	if !opts.IgnoreSourceEffects {
		amount *= source.effects.DamageMultiplier()
	}
	amount /= target.effects.ArmorMultiplier()

	resistSource := opts.DamageSource
	if resistSource == "" && source.equipment.Weapon != nil {
		resistSource = source.equipment.Weapon.WeaponID
	}
	amount *= target.equipment.Paint.ResistanceMultiplier(resistSource)

	if amount < 0 {
		amount = 0
	}
	before := target.health
	target.setHealth(target.health - amount)

	kind := DamageNormal
	switch {
	case target.health <= 0:
		kind = DamageKill
	case critical:
		kind = DamageCritical
	}

	b.metrics.Damage(b.mode.Mode().String(), before-target.health)

	slog.Debug("damage dealt",
		"battle", b.id,
		"source", source.id,
		"target", target.id,
		"damage", amount,
		"health", target.health,
		"type", kind)

	if kind == DamageKill {
		target.KillBy(source)
	} else {
		target.updateHealth()
	}
	if b.player(source.player.user) == source.player {
		b.send(source.player, DamageTank{Target: target.id, Damage: amount, Type: kind})
	}
	return kind, true
}

// Heal restores health of target, boosted by the source's damage multiplier.
func (d *DamageProcessor) Heal(source, target *Tank, amount float64) bool {
	return d.heal(source, target, amount*source.effects.DamageMultiplier())
}

// HealSelf restores health of target without any multiplier.
func (d *DamageProcessor) HealSelf(target *Tank, amount float64) bool {
	return d.heal(target, target, amount)
}

func (d *DamageProcessor) heal(source, target *Tank, amount float64) bool {
	if !target.IsAlive() || amount <= 0 {
		return false
	}
	target.setHealth(target.health + amount)
	target.updateHealth()
	d.battle.send(source.player, DamageTank{Target: target.id, Damage: amount, Type: DamageHeal})
	return true
}
