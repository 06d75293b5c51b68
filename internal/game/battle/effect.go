package battle

import (
	"context"
	"log/slog"
	"time"
)

// EffectKind identifies a tank effect (and the supply that grants it).
type EffectKind string

const (
	EffectRepairKit    EffectKind = "health"
	EffectDoubleDamage EffectKind = "double_damage"
	EffectDoubleArmor  EffectKind = "double_armor"
	EffectFreeze       EffectKind = "freeze"
	EffectBurn         EffectKind = "burn"
	// EffectMine is a supply only; placing a mine attaches no effect.
	EffectMine EffectKind = "mine"
)

// TankEffect is a timed modifier attached to one tank.
type TankEffect interface {
	Kind() EffectKind
	ActivatedAt() time.Time
	// Duration is zero for effects without a fixed lifetime.
	Duration() time.Duration
	// Deactivate ends the effect. Calling it more than once is a no-op.
	Deactivate()

	base() *effectBase
}

// tickingEffect runs its own tick loop and decides when it ends.
type tickingEffect interface {
	start()
}

// effectBase carries the lifecycle shared by every effect. The concrete
// effect sets stop to restore whatever it changed.
type effectBase struct {
	kind        EffectKind
	tank        *Tank
	ctx         context.Context
	cancel      context.CancelFunc
	activatedAt time.Time
	duration    time.Duration
	done        bool
	stop        func()
}

func newEffectBase(t *Tank, kind EffectKind, duration time.Duration) effectBase {
	ctx, cancel := context.WithCancel(t.ctx)
	return effectBase{
		kind:        kind,
		tank:        t,
		ctx:         ctx,
		cancel:      cancel,
		activatedAt: time.Now(),
		duration:    duration,
	}
}

func (e *effectBase) Kind() EffectKind        { return e.kind }
func (e *effectBase) ActivatedAt() time.Time  { return e.activatedAt }
func (e *effectBase) Duration() time.Duration { return e.duration }
func (e *effectBase) base() *effectBase       { return e }

func (e *effectBase) Deactivate() {
	if e.done {
		return
	}
	e.done = true
	e.cancel()
	if e.stop != nil {
		e.stop()
	}

	m := e.tank.effects
	if cur, ok := m.effects[e.kind]; ok && cur.base() == e {
		delete(m.effects, e.kind)
	}
	e.tank.battle.broadcast(EffectDeactivated{Tank: e.tank.id, Effect: e.kind})
}

// discard ends the effect without restoring state or notifying anybody.
func (e *effectBase) discard() {
	e.done = true
	e.cancel()
}

// EffectManager owns the effects of one tank incarnation, including its
// freeze and burn state. Methods expect the battle lock to be held.
type EffectManager struct {
	tank    *Tank
	effects map[EffectKind]TankEffect
}

func newEffectManager(t *Tank) *EffectManager {
	return &EffectManager{
		tank:    t,
		effects: make(map[EffectKind]TankEffect),
	}
}

// add attaches e, replacing an effect of the same kind.
func (m *EffectManager) add(e TankEffect) {
	if prev, ok := m.effects[e.Kind()]; ok {
		prev.Deactivate()
	}
	m.effects[e.Kind()] = e

	t := m.tank
	t.battle.broadcast(EffectActivated{Tank: t.id, Effect: e.Kind(), Duration: e.Duration()})
	if s, ok := e.(tickingEffect); ok {
		s.start()
	} else if d := e.Duration(); d > 0 {
		t.battle.after(e.base().ctx, d, e.Deactivate)
	}

	slog.Debug("effect activated",
		"battle", t.battle.id,
		"tank", t.id,
		"effect", e.Kind(),
		"duration", e.Duration())
}

// Get returns the active effect of the given kind.
func (m *EffectManager) Get(kind EffectKind) (TankEffect, bool) {
	e, ok := m.effects[kind]
	return e, ok
}

// Has reports whether an effect of the given kind is active.
func (m *EffectManager) Has(kind EffectKind) bool {
	_, ok := m.effects[kind]
	return ok
}

// Remove deactivates the effect of the given kind if present.
func (m *EffectManager) Remove(kind EffectKind) {
	if e, ok := m.effects[kind]; ok {
		e.Deactivate()
	}
}

// Len returns the number of active effects.
func (m *EffectManager) Len() int { return len(m.effects) }

func (m *EffectManager) deactivateAll() {
	for _, e := range m.effects {
		e.Deactivate()
	}
}

func (m *EffectManager) clear() {
	for kind, e := range m.effects {
		e.base().discard()
		delete(m.effects, kind)
	}
}

// DamageMultiplier is the outgoing damage (and heal) multiplier.
func (m *EffectManager) DamageMultiplier() float64 {
	if e, ok := m.effects[EffectDoubleDamage].(*multiplierEffect); ok {
		return e.multiplier
	}
	return 1
}

// ArmorMultiplier divides incoming damage.
func (m *EffectManager) ArmorMultiplier() float64 {
	if e, ok := m.effects[EffectDoubleArmor].(*multiplierEffect); ok && e.multiplier > 0 {
		return e.multiplier
	}
	return 1
}
