package battle

import (
	"log/slog"

	"github.com/udisondev/tankarena/internal/model"
)

// TeamScores is the scoring component shared by every team mode. All score
// changes go through AddTeamScore.
type TeamScores struct {
	battle *Battle
	scores map[model.Team]int
	// sent holds the values last pushed to clients.
	sent map[model.Team]int
}

func newTeamScores(b *Battle) *TeamScores {
	return &TeamScores{
		battle: b,
		scores: make(map[model.Team]int, len(model.Teams)),
		sent:   make(map[model.Team]int, len(model.Teams)),
	}
}

// AddTeamScore merges delta into team's score. The win condition is checked
// and clients are notified only when the value actually changed.
func (s *TeamScores) AddTeamScore(team model.Team, delta int) {
	if team == model.TeamNone {
		return
	}
	s.scores[team] += delta
	v := s.scores[team]
	if v == s.sent[team] {
		return
	}
	s.sent[team] = v

	b := s.battle
	slog.Debug("team score changed",
		"battle", b.id,
		"team", team,
		"score", v)
	b.onTeamScoreChanged(team, v)
	b.broadcast(TeamScoreChanged{Team: team, Score: v})
}

// Score returns the current score of team.
func (s *TeamScores) Score(team model.Team) int { return s.scores[team] }

func (s *TeamScores) reset() {
	for _, team := range model.Teams {
		s.scores[team] = 0
		if s.sent[team] != 0 {
			s.sent[team] = 0
			s.battle.broadcast(TeamScoreChanged{Team: team})
		}
	}
}

// teamMode carries the roster handling shared by TDM, CTF and CP.
type teamMode struct {
	battle *Battle
	scores *TeamScores
}

func newTeamMode(b *Battle) teamMode {
	return teamMode{battle: b, scores: newTeamScores(b)}
}

func (m *teamMode) PlayerJoin(p *Player) {
	b := m.battle
	b.send(p, m.statistics())
	if !p.spectator {
		b.sendTo(targetAll, PlayerJoined{Stat: p.stat()}, p)
	}
}

func (m *teamMode) PlayerLeave(p *Player) {
	if !p.spectator {
		m.battle.sendTo(targetAll, PlayerLeft{User: p.user, Team: p.team}, p)
	}
}

func (m *teamMode) InitModeModel(p *Player) {
	m.battle.send(p, m.statistics())
}

func (m *teamMode) statistics() InitTeamStatistics {
	return InitTeamStatistics{
		Red:   m.scores.Score(model.TeamRed),
		Blue:  m.scores.Score(model.TeamBlue),
		Users: m.battle.stats(),
	}
}

func (m *teamMode) TeamScore(team model.Team) int { return m.scores.Score(team) }
func (m *teamMode) OnKill(*Player, *Player)       {}
func (m *teamMode) OnTankKilled(*Tank)            {}
func (m *teamMode) Reset()                        { m.scores.reset() }

// teamDeathmatchHandler scores one team point per enemy kill.
type teamDeathmatchHandler struct {
	teamMode
}

func newTeamDeathmatchHandler(b *Battle) *teamDeathmatchHandler {
	return &teamDeathmatchHandler{teamMode: newTeamMode(b)}
}

func (h *teamDeathmatchHandler) Mode() model.Mode { return model.ModeTeamDeathmatch }

func (h *teamDeathmatchHandler) OnKill(killer, victim *Player) {
	if killer == victim || killer.team == victim.team {
		return
	}
	h.scores.AddTeamScore(killer.team, 1)
}
