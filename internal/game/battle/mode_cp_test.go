package battle

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/udisondev/tankarena/internal/model"
	"github.com/udisondev/tankarena/internal/testutil"
)

func TestControlPointCapturedAndScored(t *testing.T) {
	f := newFixture(t, model.ModeControlPoints)
	f.spawn("red", model.TeamRed)

	testutil.WaitFor(t, time.Second, func() bool {
		for _, ev := range testutil.Of[ControlPointCaptured](f.events, "red") {
			if ev.Point == "A" && ev.Team == model.TeamRed {
				return true
			}
		}
		return false
	})
	testutil.WaitFor(t, time.Second, func() bool {
		return f.b.TeamScore(model.TeamRed) >= 1
	})

	points := f.b.ControlPoints()
	require.Len(t, points, 1)
	assert.Equal(t, model.TeamRed, points[0].Owner)
	assert.Equal(t, captureFull, points[0].Progress)
	assert.Zero(t, f.b.TeamScore(model.TeamBlue))
}

func TestControlPointProgressIsClamped(t *testing.T) {
	f := newFixture(t, model.ModeControlPoints)
	f.join("watcher", model.TeamBlue)

	f.locked(func(b *Battle) {
		h := b.mode.(*controlPointsHandler)
		z := h.points[0]

		h.advance(z, 250)
		assert.Equal(t, captureFull, z.progress)
		assert.Equal(t, model.TeamRed, z.owner)

		h.advance(z, -150)
		assert.Equal(t, -50.0, z.progress)
		assert.Equal(t, model.TeamNone, z.owner, "crossing zero loses the point")

		h.advance(z, -500)
		assert.Equal(t, -captureFull, z.progress)
		assert.Equal(t, model.TeamBlue, z.owner)
	})

	assert.Equal(t, 1, testutil.Count[ControlPointLost](f.events, "watcher"))
	assert.Equal(t, 2, testutil.Count[ControlPointCaptured](f.events, "watcher"))
}

func TestControlPointsResetOnRestart(t *testing.T) {
	f := newFixture(t, model.ModeControlPoints)
	f.join("watcher", model.TeamBlue)

	f.locked(func(b *Battle) {
		h := b.mode.(*controlPointsHandler)
		h.advance(h.points[0], captureFull)
	})
	f.b.FinishRound()
	f.waitRestarted(1)

	points := f.b.ControlPoints()
	require.Len(t, points, 1)
	assert.Equal(t, model.TeamNone, points[0].Owner)
	assert.Zero(t, points[0].Progress)
}

func TestControlPointsOnlyInCPMode(t *testing.T) {
	f := newFixture(t, model.ModeTeamDeathmatch)
	assert.Nil(t, f.b.ControlPoints())
}
