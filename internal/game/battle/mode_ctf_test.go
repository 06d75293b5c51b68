package battle

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/udisondev/tankarena/internal/config"
	"github.com/udisondev/tankarena/internal/data"
	"github.com/udisondev/tankarena/internal/model"
	"github.com/udisondev/tankarena/internal/testutil"
)

func flagKind(t *testing.T, b *Battle, team model.Team) FlagStateKind {
	t.Helper()
	st, ok := b.FlagState(team)
	require.True(t, ok)
	return st.Kind
}

func TestFlagCaptureAndDeliver(t *testing.T) {
	f := newFixture(t, model.ModeCaptureTheFlag)
	f.spawn("red", model.TeamRed)
	f.spawn("blue", model.TeamBlue)

	require.NoError(t, f.b.CaptureFlag("red", model.TeamBlue))
	st, _ := f.b.FlagState(model.TeamBlue)
	assert.Equal(t, FlagStateCarrying, st.Kind)
	assert.Equal(t, "red", st.Carrier)

	require.NoError(t, f.b.DeliverFlag("red"))
	assert.Equal(t, FlagStateOnPedestal, flagKind(t, f.b, model.TeamBlue))
	assert.Equal(t, 1, f.b.TeamScore(model.TeamRed))

	// the second delivery finds the flag on its pedestal
	require.NoError(t, f.b.DeliverFlag("red"))
	assert.Equal(t, 1, f.b.TeamScore(model.TeamRed))
	assert.Equal(t, 1, testutil.Count[FlagDelivered](f.events, "blue"))
}

func TestOwnFlagCannotBeCaptured(t *testing.T) {
	f := newFixture(t, model.ModeCaptureTheFlag)
	f.spawn("red", model.TeamRed)

	require.NoError(t, f.b.CaptureFlag("red", model.TeamRed))
	assert.Equal(t, FlagStateOnPedestal, flagKind(t, f.b, model.TeamRed))
	assert.Zero(t, testutil.Count[FlagReturned](f.events, ""))
}

func TestDroppedFlagAutoReturns(t *testing.T) {
	f := newFixture(t, model.ModeCaptureTheFlag)
	f.spawn("red", model.TeamRed)
	f.spawn("blue", model.TeamBlue)

	require.NoError(t, f.b.CaptureFlag("red", model.TeamBlue))
	require.NoError(t, f.b.DropFlag("red"))
	assert.Equal(t, FlagStateDropped, flagKind(t, f.b, model.TeamBlue))

	testutil.WaitFor(t, time.Second, func() bool {
		return testutil.Count[FlagReturned](f.events, "blue") > 0
	})
	time.Sleep(3 * f.b.Tunables().FlagReturnDelay)

	returned := testutil.Of[FlagReturned](f.events, "blue")
	require.Len(t, returned, 1)
	assert.Equal(t, model.TeamBlue, returned[0].Team)
	assert.Empty(t, returned[0].By)
	assert.Equal(t, FlagStateOnPedestal, flagKind(t, f.b, model.TeamBlue))
}

func TestRecaptureCancelsAutoReturn(t *testing.T) {
	f := newFixture(t, model.ModeCaptureTheFlag)
	f.spawn("red", model.TeamRed)
	f.spawn("blue", model.TeamBlue)

	require.NoError(t, f.b.CaptureFlag("red", model.TeamBlue))
	require.NoError(t, f.b.DropFlag("red"))
	require.NoError(t, f.b.CaptureFlag("red", model.TeamBlue))

	time.Sleep(3 * f.b.Tunables().FlagReturnDelay)
	assert.Equal(t, FlagStateCarrying, flagKind(t, f.b, model.TeamBlue))
	assert.Zero(t, testutil.Count[FlagReturned](f.events, ""))
}

func TestOwnerReturnsDroppedFlag(t *testing.T) {
	f := newFixture(t, model.ModeCaptureTheFlag,
		withTunables(func(c *config.Battle) { c.FlagReturnDelay = time.Hour }))
	f.spawn("red", model.TeamRed)
	f.spawn("blue", model.TeamBlue)

	require.NoError(t, f.b.CaptureFlag("red", model.TeamBlue))
	require.NoError(t, f.b.DropFlag("red"))
	require.NoError(t, f.b.CaptureFlag("blue", model.TeamBlue))

	returned := testutil.Of[FlagReturned](f.events, "red")
	require.Len(t, returned, 1)
	assert.Equal(t, "blue", returned[0].By)
	assert.Equal(t, FlagStateOnPedestal, flagKind(t, f.b, model.TeamBlue))
}

func TestCarrierDeathDropsFlag(t *testing.T) {
	f := newFixture(t, model.ModeCaptureTheFlag,
		withTunables(func(c *config.Battle) { c.FlagReturnDelay = time.Hour }))
	f.spawn("red", model.TeamRed)
	f.spawn("blue", model.TeamBlue)

	require.NoError(t, f.b.CaptureFlag("red", model.TeamBlue))
	f.kill("blue", "red")

	st, _ := f.b.FlagState(model.TeamBlue)
	assert.Equal(t, FlagStateDropped, st.Kind)
	assert.Empty(t, st.Carrier)

	// the new incarnation does not inherit the flag
	f.respawn("red")
	require.NoError(t, f.b.DeliverFlag("red"))
	assert.Zero(t, f.b.TeamScore(model.TeamRed))
}

func TestCarrierLeaveDropsFlag(t *testing.T) {
	f := newFixture(t, model.ModeCaptureTheFlag,
		withTunables(func(c *config.Battle) { c.FlagReturnDelay = time.Hour }))
	f.spawn("red", model.TeamRed)
	f.spawn("blue", model.TeamBlue)

	require.NoError(t, f.b.CaptureFlag("red", model.TeamBlue))
	require.NoError(t, f.b.Leave("red"))

	assert.Equal(t, FlagStateDropped, flagKind(t, f.b, model.TeamBlue))
	assert.Equal(t, 1, testutil.Count[FlagDropped](f.events, "blue"))
}

func TestFlagScoreLimitRestartsAndResetsFlags(t *testing.T) {
	f := newFixture(t, model.ModeCaptureTheFlag,
		withProperties(func(p *Properties) { p.ScoreLimit = 1 }))
	f.spawn("red", model.TeamRed)
	f.spawn("blue", model.TeamBlue)

	require.NoError(t, f.b.CaptureFlag("blue", model.TeamRed))
	require.NoError(t, f.b.CaptureFlag("red", model.TeamBlue))
	require.NoError(t, f.b.DeliverFlag("red"))
	require.True(t, f.b.Restarting())

	f.waitRestarted(1)
	assert.Equal(t, FlagStateOnPedestal, flagKind(t, f.b, model.TeamRed))
	assert.Zero(t, f.b.TeamScore(model.TeamRed))
}

func TestMissingPedestal(t *testing.T) {
	f := newFixture(t, model.ModeCaptureTheFlag, func(o *Options) {
		o.Map.Flags = data.FlagPedestals{Red: vec(0, 0, 0)}
	})
	f.spawn("red", model.TeamRed)

	_, ok := f.b.FlagState(model.TeamBlue)
	assert.False(t, ok)
	assert.NoError(t, f.b.CaptureFlag("red", model.TeamBlue))
}
