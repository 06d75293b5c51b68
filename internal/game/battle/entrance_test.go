package battle

import (
	"context"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/udisondev/tankarena/internal/garage"
	"github.com/udisondev/tankarena/internal/model"
	"github.com/udisondev/tankarena/internal/testutil"
)

type memoryLoadouts struct {
	mu    sync.Mutex
	saved map[string]garage.Loadout
}

func (m *memoryLoadouts) Get(_ context.Context, user string) (garage.Loadout, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	l, ok := m.saved[user]
	if !ok {
		return garage.Loadout{}, testutil.ErrSimulated
	}
	return l, nil
}

func (m *memoryLoadouts) Save(_ context.Context, user string, l garage.Loadout) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.saved[user] = l
	return nil
}

func entranceCatalog() *garage.Catalog {
	return garage.NewCatalog(
		[]*garage.Weapon{
			{ID: "smoky", Modifications: []garage.WeaponModification{{Index: 0}}},
			{ID: "railgun", Modifications: []garage.WeaponModification{{Index: 0}, {Index: 1}}},
		},
		[]*garage.Hull{{ID: "hunter", Modifications: []garage.HullModification{{Index: 0}}}},
		[]*garage.Paint{{ID: "green"}},
	)
}

func newEntrance(t *testing.T, store LoadoutStore) (*Entrance, *Battle) {
	t.Helper()
	r := NewRegistry()
	t.Cleanup(r.CloseAll)
	b, err := r.Create(registryOptions("Sandbox"))
	require.NoError(t, err)
	return NewEntrance(r, entranceCatalog(), store), b
}

func TestEntranceEnterResolvesStoredLoadout(t *testing.T) {
	store := &memoryLoadouts{saved: map[string]garage.Loadout{
		"alice": {HullID: "hunter", WeaponID: "railgun", WeaponMod: 1, PaintID: "green"},
	}}
	e, b := newEntrance(t, store)

	require.NoError(t, e.Enter(context.Background(), b.ID(), "alice", model.TeamNone))

	b.mu.Lock()
	defer b.mu.Unlock()
	p := b.player("alice")
	require.NotNil(t, p)
	assert.Equal(t, garage.Railgun, p.equipment.Weapon.Kind)
	assert.Equal(t, 1, p.equipment.Weapon.Index)
}

func TestEntranceEnterErrors(t *testing.T) {
	store := &memoryLoadouts{saved: map[string]garage.Loadout{
		"bob": {HullID: "hunter", WeaponID: "railgun", WeaponMod: 7, PaintID: "green"},
	}}
	e, b := newEntrance(t, store)
	ctx := context.Background()

	err := e.Enter(ctx, "missing", "alice", model.TeamNone)
	assert.ErrorIs(t, err, ErrBattleNotFound)

	err = e.Enter(ctx, b.ID(), "alice", model.TeamNone)
	assert.ErrorIs(t, err, testutil.ErrSimulated)

	err = e.Enter(ctx, b.ID(), "bob", model.TeamNone)
	assert.ErrorIs(t, err, garage.ErrUnknownItem)
	assert.True(t, b.Empty())
}

func TestEntranceRearmSavesLoadout(t *testing.T) {
	store := &memoryLoadouts{saved: map[string]garage.Loadout{
		"alice": {HullID: "hunter", WeaponID: "smoky", PaintID: "green"},
	}}
	e, b := newEntrance(t, store)
	ctx := context.Background()
	require.NoError(t, e.Enter(ctx, b.ID(), "alice", model.TeamNone))

	next := garage.Loadout{HullID: "hunter", WeaponID: "railgun", PaintID: "green"}
	require.NoError(t, e.Rearm(ctx, b.ID(), "alice", next))

	got, err := store.Get(ctx, "alice")
	require.NoError(t, err)
	assert.Equal(t, next, got)

	b.mu.Lock()
	kind := b.player("alice").equipment.Weapon.Kind
	b.mu.Unlock()
	assert.Equal(t, garage.Railgun, kind, "no tank yet, applied immediately")

	bad := garage.Loadout{HullID: "hunter", WeaponID: "thunder", PaintID: "green"}
	assert.ErrorIs(t, e.Rearm(ctx, b.ID(), "alice", bad), garage.ErrUnknownItem)
	got, _ = store.Get(ctx, "alice")
	assert.Equal(t, next, got, "rejected loadout is not stored")
}

func TestEntranceWatchAndFixedLoadout(t *testing.T) {
	e, b := newEntrance(t, FixedLoadout{HullID: "hunter", WeaponID: "smoky", PaintID: "green"})
	ctx := context.Background()

	require.NoError(t, e.Watch(b.ID(), "carol"))
	require.NoError(t, e.Enter(ctx, b.ID(), "dave", model.TeamNone))
	assert.ErrorIs(t, e.Enter(ctx, b.ID(), "dave", model.TeamNone), ErrAlreadyInBattle)
}
