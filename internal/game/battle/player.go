package battle

import (
	"context"
	"log/slog"
	"math/rand/v2"
	"sync"
	"time"

	"github.com/udisondev/tankarena/internal/garage"
	"github.com/udisondev/tankarena/internal/model"
)

// killScore is added to a player's score for every kill.
const killScore = 10

// Player is one participant of a battle: a fighter or a spectator.
type Player struct {
	battle    *Battle
	user      string
	team      model.Team
	spectator bool
	ready     bool

	score  int
	kills  int
	deaths int

	tank        *Tank
	incarnation int

	// equipMu serialises equipment changes of this player.
	equipMu          sync.Mutex
	equipment        garage.Equipment
	pending          garage.Equipment
	equipmentChanged bool

	cooldowns map[EffectKind]time.Time
}

func newPlayer(b *Battle, user string, team model.Team, spectator bool, eq garage.Equipment) *Player {
	return &Player{
		battle:    b,
		user:      user,
		team:      team,
		spectator: spectator,
		equipment: eq,
		cooldowns: make(map[EffectKind]time.Time),
	}
}

// User returns the player's username.
func (p *Player) User() string { return p.user }

// Team returns the team assignment.
func (p *Player) Team() model.Team { return p.team }

// Spectator reports whether the player only watches.
func (p *Player) Spectator() bool { return p.spectator }

// Kills returns the kill counter. Caller must hold the battle lock.
func (p *Player) Kills() int { return p.kills }

// Deaths returns the death counter. Caller must hold the battle lock.
func (p *Player) Deaths() int { return p.deaths }

// Score returns the personal score. Caller must hold the battle lock.
func (p *Player) Score() int { return p.score }

// Tank returns the current incarnation or nil. Caller must hold the battle lock.
func (p *Player) Tank() *Tank { return p.tank }

func (p *Player) stat() UserStat {
	return UserStat{
		User:   p.user,
		Team:   p.team,
		Score:  p.score,
		Kills:  p.kills,
		Deaths: p.deaths,
	}
}

// updateStats pushes the player's counters to everybody.
func (p *Player) updateStats() {
	p.battle.broadcast(UserStatChanged{Stat: p.stat()})
}

func (p *Player) resetStats() {
	p.score = 0
	p.kills = 0
	p.deaths = 0
}

// applyEquipmentChange swaps in equipment mounted while the tank was alive.
func (p *Player) applyEquipmentChange() {
	if !p.equipmentChanged {
		return
	}
	p.equipment = p.pending
	p.pending = garage.Equipment{}
	p.equipmentChanged = false
	slog.Debug("equipment change applied",
		"battle", p.battle.id,
		"user", p.user)
}

// newTank creates the next incarnation of the player's tank in the Dead state.
func (p *Player) newTank(position model.Vector3, orientation model.Orientation) *Tank {
	b := p.battle
	p.incarnation++

	ctx, cancel := context.WithCancel(b.ctx)
	t := &Tank{
		id:          p.user,
		incarnation: p.incarnation,
		player:      p,
		battle:      b,
		ctx:         ctx,
		cancel:      cancel,
		state:       TankDead,
		position:    position,
		orientation: orientation,
	}
	t.effects = newEffectManager(t)
	return t
}

// replaceTank installs t as the current incarnation, terminating the previous one.
func (p *Player) replaceTank(t *Tank) {
	if old := p.tank; old != nil && old != t {
		old.deactivate(false)
		old.state = TankDead
	}
	p.tank = t
}

// respawn creates a fresh tank at a spawn point and offers it to the owner.
func (p *Player) respawn() {
	if p.spectator {
		return
	}
	position, orientation := p.spawnPoint()
	t := p.newTank(position, orientation)
	t.state = TankRespawn
	p.replaceTank(t)

	p.battle.send(p, PrepareToSpawn{
		Tank:        t.id,
		Position:    position,
		Orientation: orientation,
	})
}

// spawnPoint picks a random spawn point for the player's team in the current mode.
func (p *Player) spawnPoint() (model.Vector3, model.Orientation) {
	b := p.battle
	points := b.mapInfo.SpawnPointsFor(b.mode.Mode(), p.team)
	if len(points) == 0 {
		slog.Warn("no spawn points for team, using any",
			"battle", b.id,
			"map", b.mapInfo.ID,
			"team", p.team)
		points = b.mapInfo.SpawnPoints
	}
	if len(points) == 0 {
		return model.Vector3{}, model.Orientation{}
	}
	sp := points[rand.IntN(len(points))]
	pos := sp.Position
	pos.Z += b.cfg.SpawnHeightOffset
	return pos, sp.Orientation
}
