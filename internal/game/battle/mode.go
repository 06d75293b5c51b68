package battle

import (
	"fmt"

	"github.com/udisondev/tankarena/internal/model"
)

// ModeHandler implements the rules of one battle mode. Methods expect the
// battle lock to be held.
type ModeHandler interface {
	Mode() model.Mode

	// PlayerJoin syncs the roster to the joiner and announces the joiner to others.
	PlayerJoin(p *Player)
	// PlayerLeave runs before the leaving player's tank is terminated.
	PlayerLeave(p *Player)
	// InitModeModel sends the mode state (scores, flags, points) to one participant.
	InitModeModel(p *Player)

	// OnKill is called after killer is credited for killing victim.
	OnKill(killer, victim *Player)
	// OnTankKilled is called for every death, including self-destruct.
	OnTankKilled(t *Tank)

	// TeamScore returns the score of team; always 0 without teams.
	TeamScore(team model.Team) int
	// Reset restores objectives and team scores for a new round.
	Reset()
}

func newModeHandler(b *Battle, mode model.Mode) ModeHandler {
	switch mode {
	case model.ModeDeathmatch:
		return &deathmatchHandler{battle: b}
	case model.ModeTeamDeathmatch:
		return newTeamDeathmatchHandler(b)
	case model.ModeCaptureTheFlag:
		return newCaptureTheFlagHandler(b)
	case model.ModeControlPoints:
		return newControlPointsHandler(b)
	default:
		panic(fmt.Sprintf("battle: no mode handler for %v", mode))
	}
}

// TeamScore returns the current score of team.
func (b *Battle) TeamScore(team model.Team) int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.mode.TeamScore(team)
}
