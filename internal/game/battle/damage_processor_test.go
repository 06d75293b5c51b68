package battle

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/udisondev/tankarena/internal/config"
	"github.com/udisondev/tankarena/internal/garage"
	"github.com/udisondev/tankarena/internal/model"
	"github.com/udisondev/tankarena/internal/testutil"
)

func TestDamageTypeKey(t *testing.T) {
	tests := []struct {
		kind DamageType
		want string
	}{
		{DamageNormal, "NORMAL"},
		{DamageCritical, "CRITICAL"},
		{DamageKill, "FATAL"},
		{DamageHeal, "HEAL"},
	}
	for _, tt := range tests {
		if got := tt.kind.Key(); got != tt.want {
			t.Errorf("DamageType(%d).Key() = %q; want %q", tt.kind, got, tt.want)
		}
	}
}

func TestDealDamageRequiresActiveTarget(t *testing.T) {
	f := newFixture(t, model.ModeDeathmatch,
		withTunables(func(c *config.Battle) { c.GhostDuration = time.Hour }))
	f.join("alice", model.TeamNone)
	f.join("bob", model.TeamNone)
	require.NoError(t, f.b.ReadyToSpawn("alice"))
	require.NoError(t, f.b.ReadyToSpawn("bob"))

	f.locked(func(b *Battle) {
		src, dst := b.player("alice").tank, b.player("bob").tank
		require.Equal(t, TankSemiActive, dst.state)
		_, ok := b.damage.DealDamage(src, dst, 100, false, DamageOptions{})
		assert.False(t, ok, "ghosts take no damage")
		assert.Equal(t, 1000.0, dst.health)
	})
}

func TestDealDamageRules(t *testing.T) {
	tests := []struct {
		name   string
		mode   model.Mode
		props  func(*Properties)
		source string
		target string
		dealt  bool
	}{
		{"enemy", model.ModeTeamDeathmatch, func(*Properties) {}, "red1", "blue", true},
		{"ally without friendly fire", model.ModeTeamDeathmatch, func(*Properties) {}, "red1", "red2", false},
		{"ally with friendly fire", model.ModeTeamDeathmatch, func(p *Properties) { p.FriendlyFireEnabled = true }, "red1", "red2", true},
		{"self without self damage", model.ModeTeamDeathmatch, func(*Properties) {}, "red1", "red1", false},
		{"self with self damage", model.ModeTeamDeathmatch, func(p *Properties) { p.SelfDamageEnabled = true }, "red1", "red1", true},
		{"damage disabled", model.ModeTeamDeathmatch, func(p *Properties) { p.DamageEnabled = false }, "red1", "blue", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t, tt.mode, withProperties(tt.props))
			f.spawn("red1", model.TeamRed)
			f.spawn("red2", model.TeamRed)
			f.spawn("blue", model.TeamBlue)

			f.locked(func(b *Battle) {
				src, dst := b.player(tt.source).tank, b.player(tt.target).tank
				_, ok := b.damage.DealDamage(src, dst, 100, false, DamageOptions{})
				assert.Equal(t, tt.dealt, ok)
				want := 1000.0
				if tt.dealt {
					want = 900
				}
				assert.Equal(t, want, dst.health)
			})
		})
	}
}

func TestKillCreditsKiller(t *testing.T) {
	f := newFixture(t, model.ModeTeamDeathmatch)
	f.spawn("red", model.TeamRed)
	f.spawn("blue", model.TeamBlue)

	f.kill("red", "blue")

	kills, deaths, score := f.stat("red")
	assert.Equal(t, 1, kills)
	assert.Zero(t, deaths)
	assert.Equal(t, killScore, score)

	_, deaths, _ = f.stat("blue")
	assert.Equal(t, 1, deaths)
	assert.Equal(t, TankDead, f.state("blue"))

	assert.Equal(t, 1, f.b.TeamScore(model.TeamRed))
	assert.Zero(t, f.b.TeamScore(model.TeamBlue))

	hits := testutil.Of[DamageTank](f.events, "red")
	require.Len(t, hits, 1)
	assert.Equal(t, DamageKill, hits[0].Type)
	assert.Equal(t, 1, testutil.Count[KillLocalTank](f.events, "blue"))
	assert.Equal(t, 1, testutil.Count[KillTank](f.events, "red"))
}

type staticLobby []string

func (l staticLobby) BattleSelectUsers() []string { return l }

func TestKillNotifiesLobby(t *testing.T) {
	f := newFixture(t, model.ModeDeathmatch, func(o *Options) {
		o.Lobby = staticLobby{"browser"}
	})
	f.spawn("alice", model.TeamNone)
	f.spawn("bob", model.TeamNone)

	f.kill("alice", "bob")

	updates := testutil.Of[UpdatePlayerKills](f.events, "browser")
	require.Len(t, updates, 1)
	assert.Equal(t, UpdatePlayerKills{BattleID: f.b.ID(), User: "alice", Kills: 1}, updates[0])
}

func TestSelfKillGivesNoCredit(t *testing.T) {
	f := newFixture(t, model.ModeTeamDeathmatch,
		withProperties(func(p *Properties) { p.SelfDamageEnabled = true }))
	f.spawn("red", model.TeamRed)

	f.kill("red", "red")

	kills, deaths, score := f.stat("red")
	assert.Zero(t, kills)
	assert.Equal(t, 1, deaths)
	assert.Zero(t, score)
	assert.Zero(t, f.b.TeamScore(model.TeamRed))
}

func TestDeadTankCannotDieTwice(t *testing.T) {
	f := newFixture(t, model.ModeDeathmatch)
	f.spawn("alice", model.TeamNone)
	f.spawn("bob", model.TeamNone)
	f.kill("alice", "bob")

	f.locked(func(b *Battle) {
		_, ok := b.damage.DealDamage(b.player("alice").tank, b.player("bob").tank, 1e9, false, DamageOptions{})
		assert.False(t, ok)
	})
	kills, _, _ := f.stat("alice")
	assert.Equal(t, 1, kills)
}

func TestSupplyMultipliers(t *testing.T) {
	f := newFixture(t, model.ModeDeathmatch)
	f.spawn("alice", model.TeamNone)
	f.spawn("bob", model.TeamNone)

	require.NoError(t, f.b.ActivateSupply("alice", EffectDoubleDamage))
	f.locked(func(b *Battle) {
		b.damage.DealDamage(b.player("alice").tank, b.player("bob").tank, 100, false, DamageOptions{})
	})
	assert.Equal(t, 800.0, f.health("bob"))

	require.NoError(t, f.b.ActivateSupply("bob", EffectDoubleArmor))
	f.locked(func(b *Battle) {
		b.damage.DealDamage(b.player("alice").tank, b.player("bob").tank, 100, false, DamageOptions{})
	})
	assert.Equal(t, 700.0, f.health("bob"), "double damage against double armor cancels out")

	f.locked(func(b *Battle) {
		b.damage.DealDamage(b.player("alice").tank, b.player("bob").tank, 100, false, DamageOptions{IgnoreSourceEffects: true})
	})
	assert.Equal(t, 650.0, f.health("bob"))
}

func TestPaintResistance(t *testing.T) {
	f := newFixture(t, model.ModeDeathmatch)
	f.spawn("alice", model.TeamNone)

	eq := testEquipment(1000)
	eq.Paint = &garage.Paint{
		ID:         "zeus",
		Properties: garage.Properties{{Name: "SMOKY_RESISTANCE", Value: "25%"}},
	}
	require.NoError(t, f.b.Join("bob", eq, model.TeamNone, false))
	require.NoError(t, f.b.Ready("bob"))
	f.spawn("bob", model.TeamNone)

	f.locked(func(b *Battle) {
		b.damage.DealDamage(b.player("alice").tank, b.player("bob").tank, 100, false, DamageOptions{})
	})
	assert.Equal(t, 925.0, f.health("bob"))
}

func TestHeal(t *testing.T) {
	f := newFixture(t, model.ModeTeamDeathmatch)
	f.spawn("medic", model.TeamRed)
	f.spawn("ally", model.TeamRed)

	f.locked(func(b *Battle) {
		medic, ally := b.player("medic").tank, b.player("ally").tank
		ally.setHealth(500)
		assert.True(t, b.damage.Heal(medic, ally, 100))
		assert.Equal(t, 600.0, ally.health)

		assert.True(t, b.damage.HealSelf(ally, 1e6))
		assert.Equal(t, ally.maxHealth, ally.health, "heal never exceeds max health")
	})

	heals := testutil.Of[DamageTank](f.events, "medic")
	require.NotEmpty(t, heals)
	assert.Equal(t, DamageHeal, heals[0].Type)
}

func TestClientHealth(t *testing.T) {
	tank := &Tank{health: 333, maxHealth: 1000}
	if got := tank.ClientHealth(); got != 3330 {
		t.Errorf("ClientHealth() = %d; want 3330", got)
	}
	tank.maxHealth = 0
	if got := tank.ClientHealth(); got != 0 {
		t.Errorf("ClientHealth() with zero max = %d; want 0", got)
	}
}
