package battle

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/udisondev/tankarena/internal/config"
)

// multiplierEffect is a timed damage or armor multiplier.
type multiplierEffect struct {
	effectBase
	multiplier float64
}

func newMultiplierEffect(t *Tank, kind EffectKind, s config.Supply) *multiplierEffect {
	return &multiplierEffect{
		effectBase: newEffectBase(t, kind, s.Duration),
		multiplier: s.Multiplier,
	}
}

// repairKit heals the tank over time. The first half of the ticks heal
// FirstPercent of max health each, the rest RestPercent.
type repairKit struct {
	effectBase
	cfg  config.RepairKit
	tick int
}

func newRepairKit(t *Tank, cfg config.RepairKit) *repairKit {
	return &repairKit{
		effectBase: newEffectBase(t, EffectRepairKit, time.Duration(cfg.Ticks)*cfg.Interval),
		cfg:        cfg,
	}
}

func (r *repairKit) start() {
	r.tank.battle.every(r.ctx, r.cfg.Interval, r.heal)
}

func (r *repairKit) heal() bool {
	t := r.tank
	if t.health <= 0 || !t.IsAlive() {
		r.Deactivate()
		return false
	}

	r.tick++
	percent := r.cfg.RestPercent
	if r.tick <= r.cfg.Ticks/2 {
		percent = r.cfg.FirstPercent
	}
	if t.health < t.maxHealth {
		t.battle.damage.HealSelf(t, t.maxHealth*percent/100)
	}

	if r.tick >= r.cfg.Ticks {
		r.Deactivate()
		return false
	}
	return true
}

// ActivateSupply uses one of the player's supplies on their tank.
func (b *Battle) ActivateSupply(user string, kind EffectKind) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.closed {
		return ErrBattleClosed
	}
	p := b.player(user)
	if p == nil {
		return ErrPlayerNotFound
	}
	if !b.props.SuppliesEnabled {
		return ErrSuppliesDisabled
	}
	t := p.tank
	if t == nil || !t.IsActive() {
		return fmt.Errorf("activating %s: %w", kind, ErrNoTank)
	}

	now := time.Now()
	if until, ok := p.cooldowns[kind]; ok && now.Before(until) {
		return fmt.Errorf("activating %s: %w", kind, ErrSupplyCooldown)
	}

	var cooldown time.Duration
	switch kind {
	case EffectRepairKit:
		t.effects.CancelFreeze()
		t.effects.CancelBurn()
		t.effects.add(newRepairKit(t, b.cfg.RepairKit))
		cooldown = b.cfg.RepairKit.Cooldown
	case EffectDoubleDamage:
		t.effects.add(newMultiplierEffect(t, kind, b.cfg.DoubleDamage))
		cooldown = b.cfg.DoubleDamage.Cooldown
	case EffectDoubleArmor:
		t.effects.add(newMultiplierEffect(t, kind, b.cfg.DoubleArmor))
		cooldown = b.cfg.DoubleArmor.Cooldown
	case EffectMine:
		b.mines.PlaceMine(t)
	default:
		return fmt.Errorf("activating supply: unknown kind %q", kind)
	}
	p.cooldowns[kind] = now.Add(cooldown)

	slog.Debug("supply activated",
		"battle", b.id,
		"user", user,
		"supply", kind)
	return nil
}
