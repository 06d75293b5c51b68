package battle

import (
	"fmt"

	"github.com/udisondev/tankarena/internal/garage"
)

// WeaponHandler owns the weapon-specific state of one tank incarnation.
// Concrete handlers live in the weapon package and are attached through RegisterWeapon.
type WeaponHandler interface {
	Kind() garage.WeaponKind
}

// weaponDeactivator is implemented by handlers that keep firing state
// (stream weapons, charge timers) to reset when the tank is deactivated.
type weaponDeactivator interface {
	Deactivate()
}

// WeaponFactory builds a handler for a freshly spawned tank.
type WeaponFactory func(t *Tank) WeaponHandler

// weaponRegistry maps weapon kind → factory.
// Populated by init() in the weapon package.
var weaponRegistry = map[garage.WeaponKind]WeaponFactory{}

// RegisterWeapon registers a handler factory for a weapon kind.
func RegisterWeapon(kind garage.WeaponKind, factory WeaponFactory) {
	weaponRegistry[kind] = factory
}

// inertWeapon is used for weapons without a registered handler; it fires nothing.
type inertWeapon struct {
	kind garage.WeaponKind
}

func (w inertWeapon) Kind() garage.WeaponKind { return w.kind }

func newWeaponHandler(t *Tank) WeaponHandler {
	w := t.equipment.Weapon
	if w == nil {
		return inertWeapon{}
	}
	factory, ok := weaponRegistry[w.Kind]
	if !ok {
		return inertWeapon{kind: w.Kind}
	}
	return factory(t)
}

// WithTank runs fn with the battle locked and the user's current tank.
// It returns ErrPlayerNotFound or ErrNoTank when there is nothing to act on.
func (b *Battle) WithTank(user string, fn func(t *Tank) error) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.closed {
		return ErrBattleClosed
	}
	p := b.player(user)
	if p == nil {
		return ErrPlayerNotFound
	}
	if p.tank == nil {
		return fmt.Errorf("%s: %w", user, ErrNoTank)
	}
	return fn(p.tank)
}
