package db_test

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/udisondev/tankarena/internal/db"
	"github.com/udisondev/tankarena/internal/game/battle"
	"github.com/udisondev/tankarena/internal/garage"
	"github.com/udisondev/tankarena/internal/model"
	"github.com/udisondev/tankarena/internal/testutil"
)

func TestLoadoutRepository(t *testing.T) {
	pool := testutil.SetupTestDB(t)
	ctx := testutil.ContextWithTimeout(t, 30*time.Second)
	repo := db.NewLoadoutRepository(pool)

	_, err := repo.Get(ctx, "alice")
	require.Error(t, err)
	assert.True(t, errors.Is(err, db.ErrLoadoutNotFound))

	want := garage.Loadout{HullID: "hunter", HullMod: 1, WeaponID: "railgun", WeaponMod: 2, PaintID: "green"}
	require.NoError(t, repo.Save(ctx, "alice", want))

	got, err := repo.Get(ctx, "alice")
	require.NoError(t, err)
	assert.Equal(t, want, got)

	want.WeaponID = "smoky"
	want.WeaponMod = 0
	require.NoError(t, repo.Save(ctx, "alice", want))

	got, err = repo.Get(ctx, "alice")
	require.NoError(t, err)
	assert.Equal(t, "smoky", got.WeaponID)
	assert.Equal(t, 0, got.WeaponMod)
}

func TestResultRepository(t *testing.T) {
	pool := testutil.SetupTestDB(t)
	ctx := testutil.ContextWithTimeout(t, 30*time.Second)
	repo := db.NewResultRepository(pool)

	first := battle.FinishedRound{
		BattleID:   "b1",
		MapID:      "sandbox",
		Mode:       model.ModeTeamDeathmatch,
		Reason:     "score limit",
		FinishedAt: time.Now().Add(-time.Minute).UTC().Truncate(time.Millisecond),
		RedScore:   10,
		BlueScore:  7,
		Standings: []battle.UserStat{
			{User: "alice", Team: model.TeamRed, Score: 60, Kills: 6, Deaths: 1},
			{User: "bob", Team: model.TeamBlue, Score: 40, Kills: 4, Deaths: 6},
		},
	}
	second := first
	second.Reason = "time limit"
	second.FinishedAt = time.Now().UTC().Truncate(time.Millisecond)
	second.Standings = nil

	require.NoError(t, repo.RecordResult(ctx, first))
	require.NoError(t, repo.RecordResult(ctx, second))

	rounds, err := repo.Recent(ctx, "b1", 10)
	require.NoError(t, err)
	require.Len(t, rounds, 2)

	assert.Equal(t, "time limit", rounds[0].Reason)
	assert.Empty(t, rounds[0].Standings)

	got := rounds[1]
	assert.Equal(t, model.ModeTeamDeathmatch, got.Mode)
	assert.Equal(t, 10, got.RedScore)
	assert.Equal(t, 7, got.BlueScore)
	assert.True(t, first.FinishedAt.Equal(got.FinishedAt))
	assert.Equal(t, first.Standings, got.Standings)

	rounds, err = repo.Recent(ctx, "b1", 1)
	require.NoError(t, err)
	assert.Len(t, rounds, 1)

	rounds, err = repo.Recent(ctx, "unknown", 10)
	require.NoError(t, err)
	assert.Empty(t, rounds)
}

func TestRunMigrationsIdempotent(t *testing.T) {
	pool := testutil.SetupTestDB(t)
	ctx := testutil.ContextWithTimeout(t, 30*time.Second)

	dsn := pool.Config().ConnString()
	require.NoError(t, db.RunMigrations(ctx, dsn))
}
