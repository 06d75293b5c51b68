package battle

import (
	"math"
	"time"
)

// MaxFreeze caps the freeze accumulator; the speed factor never drops below 1-MaxFreeze.
const MaxFreeze = 0.7

// DefaultBurnDuration is used when a flamethrower has no burn duration configured.
const DefaultBurnDuration = 3 * time.Second

// freezeEffect slows the tank by its accumulated power. Hits raise the power,
// every tick without a recent hit lowers it; at zero the base parameters return.
type freezeEffect struct {
	effectBase
	power   float64
	lastHit time.Time
}

func newFreezeEffect(t *Tank) *freezeEffect {
	f := &freezeEffect{effectBase: newEffectBase(t, EffectFreeze, 0)}
	f.stop = func() {
		f.power = 0
		t.applySpecification(t.baseSpec)
	}
	return f
}

func (f *freezeEffect) start() {
	f.tank.battle.every(f.ctx, f.tank.battle.cfg.EffectTick, f.tick)
}

func (f *freezeEffect) limit() float64 {
	return math.Min(MaxFreeze, math.Max(0, f.tank.battle.cfg.FreezeMax))
}

func (f *freezeEffect) hit(step float64) {
	f.power = math.Min(f.limit(), f.power+step)
	f.lastHit = time.Now()
	f.apply()
}

func (f *freezeEffect) tick() bool {
	cfg := f.tank.battle.cfg
	if time.Since(f.lastHit) < cfg.EffectTick {
		return true
	}
	f.power = math.Max(0, f.power-cfg.FreezeDecay)
	if f.power == 0 {
		f.Deactivate()
		return false
	}
	f.apply()
	return true
}

func (f *freezeEffect) apply() {
	t := f.tank
	t.applySpecification(t.baseSpec.Scaled(1 - f.power))
}

// burnEffect deals damage every tick for a fixed number of ticks. Ticks
// ignore the attacker's damage multiplier.
type burnEffect struct {
	effectBase
	source    *Tank
	remaining int
	perTick   float64
}

func (b *burnEffect) start() {
	b.tank.battle.every(b.ctx, b.tank.battle.cfg.EffectTick, b.tick)
}

func (b *burnEffect) tick() bool {
	t := b.tank
	if !t.IsActive() {
		b.Deactivate()
		return false
	}
	t.battle.damage.DealDamage(b.source, t, b.perTick, false, DamageOptions{IgnoreSourceEffects: true})
	if b.done {
		return false
	}
	b.remaining--
	if b.remaining <= 0 {
		b.Deactivate()
		return false
	}
	return true
}

// ApplyFreeze adds step to the freeze accumulator (the configured step when
// step <= 0), extinguishing any burn first. Returns the new freeze power.
func (m *EffectManager) ApplyFreeze(step float64) float64 {
	t := m.tank
	if !t.IsActive() {
		return m.FreezePower()
	}
	if step <= 0 {
		step = t.battle.cfg.FreezeStep
	}
	m.CancelBurn()

	f, ok := m.effects[EffectFreeze].(*freezeEffect)
	if !ok {
		f = newFreezeEffect(t)
		m.add(f)
	}
	f.hit(step)
	return f.power
}

// Ignite (re)starts burning: damagePerSecond for duration, thawing the tank first.
// A new burn replaces the running one.
func (m *EffectManager) Ignite(source *Tank, duration time.Duration, damagePerSecond float64) {
	t := m.tank
	if !t.IsActive() {
		return
	}
	cfg := t.battle.cfg
	if duration <= 0 {
		duration = DefaultBurnDuration
	}
	if damagePerSecond <= 0 {
		damagePerSecond = cfg.BurnDamagePerSecond
	}
	m.CancelFreeze()

	ticks := max(1, int(duration/cfg.EffectTick))
	m.add(&burnEffect{
		effectBase: newEffectBase(t, EffectBurn, duration),
		source:     source,
		remaining:  ticks,
		perTick:    damagePerSecond * cfg.EffectTick.Seconds(),
	})
}

// CancelFreeze thaws the tank, restoring its base parameters.
func (m *EffectManager) CancelFreeze() { m.Remove(EffectFreeze) }

// CancelBurn extinguishes the tank.
func (m *EffectManager) CancelBurn() { m.Remove(EffectBurn) }

// FreezePower returns the freeze accumulator in [0, MaxFreeze].
func (m *EffectManager) FreezePower() float64 {
	if f, ok := m.effects[EffectFreeze].(*freezeEffect); ok {
		return f.power
	}
	return 0
}

// SpeedFactor is the movement multiplier caused by freeze.
func (m *EffectManager) SpeedFactor() float64 {
	return 1 - m.FreezePower()
}

// Burning reports whether the tank is on fire.
func (m *EffectManager) Burning() bool { return m.Has(EffectBurn) }
