// Package battle is the authoritative combat core: match lifecycle, tanks,
// damage application, status effects and the rules of every game mode.
//
// Concurrency: each Battle is guarded by one mutex. Exported Battle methods
// lock it; methods of Tank, Player, EffectManager, DamageProcessor,
// MineProcessor and the mode handlers expect the caller to hold it (they are
// reached from inside Battle methods, timer callbacks or WithTank callbacks).
// Timers run on a context per battle and a child context per tank.
package battle

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/udisondev/tankarena/internal/config"
	"github.com/udisondev/tankarena/internal/data"
	"github.com/udisondev/tankarena/internal/game/damage"
	"github.com/udisondev/tankarena/internal/garage"
	"github.com/udisondev/tankarena/internal/metrics"
	"github.com/udisondev/tankarena/internal/model"
)

// Options configure a new battle.
type Options struct {
	ID         string // generated when empty
	Title      string
	Map        *data.MapInfo
	Mode       model.Mode
	Properties Properties
	Tunables   config.Battle

	Notifier   Notifier
	Lobby      Lobby
	Results    ResultRecorder
	Metrics    *metrics.Recorder
	Calculator *damage.Calculator

	// Persistent battles are never reaped when empty.
	Persistent bool
}

// Battle is one match instance.
type Battle struct {
	mu sync.Mutex

	id      string
	title   string
	mapInfo *data.MapInfo
	props   Properties
	cfg     config.Battle

	notifier Notifier
	lobby    Lobby
	results  ResultRecorder
	metrics  *metrics.Recorder
	calc     *damage.Calculator
	damage   *DamageProcessor
	mines    *MineProcessor
	mode     ModeHandler

	players []*Player

	ctx    context.Context
	cancel context.CancelFunc
	wg     sync.WaitGroup

	persistent bool

	startTime  time.Time
	timeLimit  *timerToken
	restarting bool
	closed     bool
	fallDeathZ float64
}

// NewID generates a battle identifier.
func NewID() string {
	return uuid.NewString()
}

// New creates a battle. The match clock starts when the first fighter joins.
func New(opts Options) (*Battle, error) {
	if opts.Map == nil {
		return nil, fmt.Errorf("creating battle: map is required")
	}
	switch opts.Mode {
	case model.ModeDeathmatch, model.ModeTeamDeathmatch, model.ModeCaptureTheFlag, model.ModeControlPoints:
	default:
		return nil, fmt.Errorf("creating battle: unsupported mode %v", opts.Mode)
	}

	id := opts.ID
	if id == "" {
		id = NewID()
	}

	ctx, cancel := context.WithCancel(context.Background())
	b := &Battle{
		id:         id,
		title:      opts.Title,
		mapInfo:    opts.Map,
		props:      opts.Properties,
		cfg:        opts.Tunables,
		notifier:   opts.Notifier,
		lobby:      opts.Lobby,
		results:    opts.Results,
		metrics:    opts.Metrics,
		calc:       opts.Calculator,
		persistent: opts.Persistent,
		ctx:        ctx,
		cancel:     cancel,
	}
	if b.notifier == nil {
		b.notifier = noopNotifier{}
	}
	if b.lobby == nil {
		b.lobby = noLobby{}
	}
	if b.calc == nil {
		b.calc = damage.NewCalculator()
	}
	if b.title == "" {
		b.title = opts.Map.Name
	}

	b.fallDeathZ = opts.Map.MinSpawnZ() - b.cfg.FallMargin
	b.damage = &DamageProcessor{battle: b}
	b.mines = newMineProcessor(b)
	b.mode = newModeHandler(b, opts.Mode)

	b.metrics.BattleOpened(opts.Mode.String())
	slog.Info("battle created",
		"battle", b.id,
		"title", b.title,
		"mode", opts.Mode,
		"map", opts.Map.ID)
	return b, nil
}

// ID returns the battle identifier.
func (b *Battle) ID() string { return b.id }

// Title returns the display name.
func (b *Battle) Title() string { return b.title }

// Mode returns the battle mode.
func (b *Battle) Mode() model.Mode { return b.mode.Mode() }

// Map returns the static map data.
func (b *Battle) Map() *data.MapInfo { return b.mapInfo }

// Properties returns a copy of the rule switches.
func (b *Battle) Properties() Properties {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.props
}

// UpdateProperties mutates the rule switches. A changed time limit re-arms the match clock.
func (b *Battle) UpdateProperties(fn func(p *Properties)) {
	b.mu.Lock()
	defer b.mu.Unlock()

	prevLimit := b.props.TimeLimit
	fn(&b.props)
	if b.props.TimeLimit != prevLimit && !b.startTime.IsZero() {
		b.armTimeLimit()
	}
}

// Close terminates every tank and timer. Further operations return ErrBattleClosed.
func (b *Battle) Close() {
	b.mu.Lock()
	if b.closed {
		b.mu.Unlock()
		return
	}
	for _, p := range b.players {
		if p.tank != nil {
			p.tank.deactivate(true)
		}
	}
	b.closed = true
	b.cancel()
	b.mu.Unlock()

	b.wg.Wait()
	b.metrics.BattleClosed(b.mode.Mode().String())
	slog.Info("battle closed", "battle", b.id)
}

// Closed reports whether Close was called.
func (b *Battle) Closed() bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.closed
}

// Empty reports whether nobody is in the battle.
func (b *Battle) Empty() bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	return len(b.players) == 0
}

// --- helpers used with the lock held ---

// DamageProcessor returns the damage pipeline. Caller must hold the battle lock.
func (b *Battle) DamageProcessor() *DamageProcessor { return b.damage }

// Calculator returns the damage calculator.
func (b *Battle) Calculator() *damage.Calculator { return b.calc }

// Tunables returns the server-wide combat tunables.
func (b *Battle) Tunables() config.Battle { return b.cfg }

// IsTeamMode reports whether players are split into teams.
func (b *Battle) IsTeamMode() bool { return b.mode.Mode().IsTeam() }

// Tank returns the current tank of the player with the given tank id, if any.
// Caller must hold the battle lock.
func (b *Battle) Tank(id string) *Tank {
	p := b.player(id)
	if p == nil {
		return nil
	}
	return p.tank
}

func (b *Battle) player(user string) *Player {
	for _, p := range b.players {
		if p.user == user {
			return p
		}
	}
	return nil
}

func (b *Battle) fighters() []*Player {
	out := make([]*Player, 0, len(b.players))
	for _, p := range b.players {
		if !p.spectator {
			out = append(out, p)
		}
	}
	return out
}

func (b *Battle) maxPeople() int {
	switch {
	case b.props.MaxPeople > 0:
		return b.props.MaxPeople
	case b.mapInfo.MaxPeople > 0:
		return b.mapInfo.MaxPeople
	default:
		return b.cfg.MaxPeople
	}
}

type sendTarget uint8

const (
	targetPlayers sendTarget = 1 << iota
	targetSpectators

	targetAll = targetPlayers | targetSpectators
)

// sendTo delivers ev to ready players matching target and returns the number of recipients.
func (b *Battle) sendTo(target sendTarget, ev Event, exclude *Player) int {
	n := 0
	for _, p := range b.players {
		if !p.ready || p == exclude {
			continue
		}
		if p.spectator && target&targetSpectators == 0 {
			continue
		}
		if !p.spectator && target&targetPlayers == 0 {
			continue
		}
		b.notifier.Notify(p.user, ev)
		n++
	}
	return n
}

func (b *Battle) broadcast(ev Event) int {
	return b.sendTo(targetAll, ev, nil)
}

func (b *Battle) send(p *Player, ev Event) {
	b.notifier.Notify(p.user, ev)
}

// Broadcast sends ev to every ready participant except the owner of exclude.
// Caller must hold the battle lock.
func (b *Battle) Broadcast(ev Event, exclude *Tank) int {
	var p *Player
	if exclude != nil {
		p = exclude.player
	}
	return b.sendTo(targetAll, ev, p)
}

// Send delivers ev to the owner of t. Caller must hold the battle lock.
func (b *Battle) Send(t *Tank, ev Event) {
	b.send(t.player, ev)
}

// --- roster ---

// Join adds a user to the battle. Team is chosen automatically when TeamNone is
// passed in a team mode; it is forced to TeamNone in DM and for spectators.
func (b *Battle) Join(user string, eq garage.Equipment, team model.Team, spectator bool) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.closed {
		return ErrBattleClosed
	}
	if b.player(user) != nil {
		return ErrAlreadyInBattle
	}

	switch {
	case spectator, !b.IsTeamMode():
		team = model.TeamNone
	case team == model.TeamNone:
		team = b.balancedTeam()
	}

	if !spectator && b.countTeam(team) >= b.maxPeople() {
		return ErrBattleFull
	}

	p := newPlayer(b, user, team, spectator, eq)
	b.players = append(b.players, p)

	if !spectator && b.startTime.IsZero() {
		b.startTime = time.Now()
		b.armTimeLimit()
	}

	b.mode.PlayerJoin(p)

	slog.Info("player joined battle",
		"battle", b.id,
		"user", user,
		"team", team,
		"spectator", spectator)
	return nil
}

func (b *Battle) balancedTeam() model.Team {
	red, blue := b.countTeam(model.TeamRed), b.countTeam(model.TeamBlue)
	if blue < red {
		return model.TeamBlue
	}
	return model.TeamRed
}

func (b *Battle) countTeam(team model.Team) int {
	n := 0
	for _, p := range b.players {
		if p.spectator {
			continue
		}
		if team == model.TeamNone || p.team == team {
			n++
		}
	}
	return n
}

// Ready marks the user's client as loaded: the local view is initialised and a
// fighter without a tank is offered a spawn point.
func (b *Battle) Ready(user string) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.closed {
		return ErrBattleClosed
	}
	p := b.player(user)
	if p == nil {
		return ErrPlayerNotFound
	}

	p.ready = true
	b.initLocal(p)
	if !p.spectator && p.tank == nil {
		p.respawn()
	}
	return nil
}

// Leave removes the user (battle-exit request). The tank is terminated permanently.
func (b *Battle) Leave(user string) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	p := b.player(user)
	if p == nil {
		return ErrPlayerNotFound
	}
	b.removePlayer(p)
	return nil
}

func (b *Battle) removePlayer(p *Player) {
	// Mode handlers see the tank before it is terminated (CTF drops the carried flag).
	b.mode.PlayerLeave(p)

	if p.tank != nil {
		p.tank.deactivate(true)
		p.tank.state = TankDead
		p.tank = nil
	}

	for i, other := range b.players {
		if other == p {
			b.players = append(b.players[:i], b.players[i+1:]...)
			break
		}
	}

	slog.Info("player left battle",
		"battle", b.id,
		"user", p.user,
		"players", len(b.players))
}

// initLocal sends the full battle state to one participant.
func (b *Battle) initLocal(p *Player) {
	left, _ := b.timeLeft()
	b.send(p, InitBattle{
		BattleID:   b.id,
		Mode:       b.mode.Mode(),
		MapID:      b.mapInfo.ID,
		ScoreLimit: b.props.ScoreLimit,
		TimeLimit:  b.props.TimeLimit,
		TimeLeft:   left,
		Spectator:  p.spectator,
	})
	b.mode.InitModeModel(p)

	for _, other := range b.players {
		t := other.tank
		if other == p || t == nil {
			continue
		}
		if t.state != TankSemiActive && t.state != TankActive {
			continue
		}
		b.send(p, t.spawnEvent())
		if t.state == TankActive {
			b.send(p, ActivateTank{Tank: t.id})
		}
	}
}

func (b *Battle) stats() []UserStat {
	out := make([]UserStat, 0, len(b.players))
	for _, p := range b.players {
		if !p.spectator {
			out = append(out, p.stat())
		}
	}
	return out
}

// timeLeft returns the remaining match time, clamped at zero.
func (b *Battle) timeLeft() (time.Duration, bool) {
	if b.startTime.IsZero() || b.props.TimeLimit <= 0 {
		return 0, false
	}
	left := time.Until(b.startTime.Add(b.props.TimeLimit))
	return max(left, 0), true
}
