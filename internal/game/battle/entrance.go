package battle

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/udisondev/tankarena/internal/garage"
	"github.com/udisondev/tankarena/internal/model"
)

// ErrBattleNotFound is returned when a battle id is not registered.
var ErrBattleNotFound = errors.New("battle not found")

// LoadoutStore returns and stores the mounted items of a player.
type LoadoutStore interface {
	Get(ctx context.Context, user string) (garage.Loadout, error)
	Save(ctx context.Context, user string, l garage.Loadout) error
}

// FixedLoadout hands every player the same loadout and discards saves.
type FixedLoadout garage.Loadout

func (f FixedLoadout) Get(context.Context, string) (garage.Loadout, error) {
	return garage.Loadout(f), nil
}

func (FixedLoadout) Save(context.Context, string, garage.Loadout) error { return nil }

// Entrance admits players into registered battles with their stored loadout.
type Entrance struct {
	registry *Registry
	catalog  *garage.Catalog
	store    LoadoutStore
}

// NewEntrance creates an Entrance.
func NewEntrance(registry *Registry, catalog *garage.Catalog, store LoadoutStore) *Entrance {
	return &Entrance{registry: registry, catalog: catalog, store: store}
}

func (e *Entrance) battle(id string) (*Battle, error) {
	b, ok := e.registry.Get(id)
	if !ok {
		return nil, fmt.Errorf("battle %s: %w", id, ErrBattleNotFound)
	}
	return b, nil
}

func (e *Entrance) equipment(ctx context.Context, user string) (garage.Equipment, error) {
	l, err := e.store.Get(ctx, user)
	if err != nil {
		return garage.Equipment{}, fmt.Errorf("loading loadout of %s: %w", user, err)
	}
	eq, err := e.catalog.Resolve(l)
	if err != nil {
		return garage.Equipment{}, fmt.Errorf("resolving loadout of %s: %w", user, err)
	}
	return eq, nil
}

// Enter joins user to battle id as a fighter.
func (e *Entrance) Enter(ctx context.Context, id, user string, team model.Team) error {
	b, err := e.battle(id)
	if err != nil {
		return err
	}
	eq, err := e.equipment(ctx, user)
	if err != nil {
		return err
	}
	if err := b.Join(user, eq, team, false); err != nil {
		return fmt.Errorf("joining battle %s: %w", id, err)
	}
	slog.Info("player entered battle", "battle", id, "user", user, "team", team)
	return nil
}

// Watch joins user to battle id as a spectator.
func (e *Entrance) Watch(id, user string) error {
	b, err := e.battle(id)
	if err != nil {
		return err
	}
	if err := b.Join(user, garage.Equipment{}, model.TeamNone, true); err != nil {
		return fmt.Errorf("watching battle %s: %w", id, err)
	}
	return nil
}

// Rearm mounts l on user's tank in battle id and stores it once accepted.
func (e *Entrance) Rearm(ctx context.Context, id, user string, l garage.Loadout) error {
	b, err := e.battle(id)
	if err != nil {
		return err
	}
	err = b.Mount(ctx, user, func(garage.Equipment) (garage.Equipment, error) {
		return e.catalog.Resolve(l)
	})
	if err != nil {
		return err
	}
	if err := e.store.Save(ctx, user, l); err != nil {
		return fmt.Errorf("saving loadout of %s: %w", user, err)
	}
	return nil
}
