package battle

import "github.com/udisondev/tankarena/internal/model"

// deathmatchHandler: everyone for themselves, the win condition is the kill count.
type deathmatchHandler struct {
	battle *Battle
}

func (h *deathmatchHandler) Mode() model.Mode { return model.ModeDeathmatch }

func (h *deathmatchHandler) PlayerJoin(p *Player) {
	b := h.battle
	b.send(p, InitStatistics{Users: b.stats()})
	if !p.spectator {
		b.sendTo(targetAll, PlayerJoined{Stat: p.stat()}, p)
	}
}

func (h *deathmatchHandler) PlayerLeave(p *Player) {
	if !p.spectator {
		h.battle.sendTo(targetAll, PlayerLeft{User: p.user, Team: p.team}, p)
	}
}

func (h *deathmatchHandler) InitModeModel(p *Player) {
	b := h.battle
	b.send(p, InitStatistics{Users: b.stats()})
}

func (h *deathmatchHandler) OnKill(*Player, *Player)  {}
func (h *deathmatchHandler) OnTankKilled(*Tank)       {}
func (h *deathmatchHandler) TeamScore(model.Team) int { return 0 }
func (h *deathmatchHandler) Reset()                   {}
