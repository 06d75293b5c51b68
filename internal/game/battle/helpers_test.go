package battle

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/udisondev/tankarena/internal/config"
	"github.com/udisondev/tankarena/internal/data"
	"github.com/udisondev/tankarena/internal/garage"
	"github.com/udisondev/tankarena/internal/model"
	"github.com/udisondev/tankarena/internal/testutil"
)

func vec(x, y, z float64) *model.Vector3 {
	return &model.Vector3{X: x, Y: y, Z: z}
}

// testTunables keeps every timer short enough for unit tests.
func testTunables() config.Battle {
	cfg := config.DefaultBattle()
	cfg.RestartDelay = 20 * time.Millisecond
	cfg.SelfDestructDelay = 20 * time.Millisecond
	cfg.GhostDuration = 0
	cfg.GhostPollInterval = time.Millisecond
	cfg.SpawnOverlapDistance = 0
	cfg.SpawnHeightOffset = 0
	cfg.FlagReturnDelay = 30 * time.Millisecond
	cfg.EffectTick = 10 * time.Millisecond
	cfg.ControlPoints.Tick = 5 * time.Millisecond
	cfg.ControlPoints.CaptureSpeed = 50
	cfg.ControlPoints.ScoreInterval = 10 * time.Millisecond
	return cfg
}

func testMap() *data.MapInfo {
	return &data.MapInfo{
		ID:        "sandbox",
		Name:      "Sandbox",
		MaxPeople: 8,
		SpawnPoints: []data.SpawnPoint{
			{Position: model.Vector3{X: 0, Y: 0, Z: 100}},
		},
		Flags: data.FlagPedestals{
			Red:  vec(-1000, 0, 100),
			Blue: vec(1000, 0, 100),
		},
		ControlPoints: []data.ControlPointInfo{
			{Name: "A", Position: model.Vector3{X: 0, Y: 0, Z: 100}, Radius: 500},
		},
	}
}

func testEquipment(armor float64) garage.Equipment {
	return garage.Equipment{
		Hull: &garage.HullModification{
			HullID:     "hornet",
			Properties: garage.Properties{{Name: "HULL_ARMOR", Value: armor}},
		},
		Weapon: &garage.WeaponModification{
			WeaponID: "smoky",
			Kind:     garage.Smoky,
		},
	}
}

type fixture struct {
	t      *testing.T
	b      *Battle
	events *testutil.Recorder[Event]
}

type fixtureOption func(*Options)

func withProperties(fn func(*Properties)) fixtureOption {
	return func(o *Options) { fn(&o.Properties) }
}

func withTunables(fn func(*config.Battle)) fixtureOption {
	return func(o *Options) { fn(&o.Tunables) }
}

func newFixture(t *testing.T, mode model.Mode, opts ...fixtureOption) *fixture {
	t.Helper()
	rec := testutil.NewRecorder[Event]()
	o := Options{
		Map:        testMap(),
		Mode:       mode,
		Properties: DefaultProperties(),
		Tunables:   testTunables(),
		Notifier:   rec,
	}
	for _, opt := range opts {
		opt(&o)
	}
	b, err := New(o)
	require.NoError(t, err)
	t.Cleanup(b.Close)
	return &fixture{t: t, b: b, events: rec}
}

// join adds a ready player without spawning a tank.
func (f *fixture) join(user string, team model.Team) {
	f.t.Helper()
	require.NoError(f.t, f.b.Join(user, testEquipment(1000), team, false))
	require.NoError(f.t, f.b.Ready(user))
}

// spawn joins user (if needed) and waits for an active tank.
func (f *fixture) spawn(user string, team model.Team) *Tank {
	f.t.Helper()
	if f.player(user) == nil {
		f.join(user, team)
	}
	require.NoError(f.t, f.b.ReadyToSpawn(user))
	return f.waitActive(user)
}

// respawn brings a dead player's tank back.
func (f *fixture) respawn(user string) *Tank {
	f.t.Helper()
	require.NoError(f.t, f.b.ReadyToRespawn(user))
	require.NoError(f.t, f.b.ReadyToSpawn(user))
	return f.waitActive(user)
}

func (f *fixture) waitActive(user string) *Tank {
	f.t.Helper()
	var tank *Tank
	testutil.WaitFor(f.t, time.Second, func() bool {
		f.b.mu.Lock()
		defer f.b.mu.Unlock()
		p := f.b.player(user)
		if p == nil || p.tank == nil || p.tank.state != TankActive {
			return false
		}
		tank = p.tank
		return true
	})
	return tank
}

func (f *fixture) player(user string) *Player {
	f.b.mu.Lock()
	defer f.b.mu.Unlock()
	return f.b.player(user)
}

// locked runs fn under the battle lock.
func (f *fixture) locked(fn func(b *Battle)) {
	f.b.mu.Lock()
	defer f.b.mu.Unlock()
	fn(f.b)
}

func (f *fixture) tank(user string) *Tank {
	var t *Tank
	f.locked(func(b *Battle) {
		if p := b.player(user); p != nil {
			t = p.tank
		}
	})
	return t
}

func (f *fixture) health(user string) float64 {
	var h float64
	f.locked(func(b *Battle) { h = b.player(user).tank.health })
	return h
}

func (f *fixture) state(user string) TankState {
	var s TankState
	f.locked(func(b *Battle) { s = b.player(user).tank.state })
	return s
}

// kill makes killer destroy victim's tank.
func (f *fixture) kill(killer, victim string) {
	f.t.Helper()
	f.locked(func(b *Battle) {
		src, dst := b.player(killer).tank, b.player(victim).tank
		_, ok := b.damage.DealDamage(src, dst, 1e9, false, DamageOptions{})
		require.True(f.t, ok, "kill %s -> %s suppressed", killer, victim)
	})
}

func (f *fixture) stat(user string) (kills, deaths, score int) {
	f.locked(func(b *Battle) {
		p := b.player(user)
		kills, deaths, score = p.kills, p.deaths, p.score
	})
	return
}

// waitRestarted waits for the restart sequence to complete.
func (f *fixture) waitRestarted(n int) {
	f.t.Helper()
	testutil.WaitFor(f.t, time.Second, func() bool {
		return testutil.Count[RestartBattle](f.events, "") >= n && !f.b.Restarting()
	})
}
