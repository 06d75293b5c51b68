package battle

import (
	"context"
	"log/slog"
	"math"
	"time"

	"github.com/udisondev/tankarena/internal/garage"
	"github.com/udisondev/tankarena/internal/model"
)

// HealthScale is the client-visible health range.
const HealthScale = 10000

// TankState is the activation state of a tank incarnation.
type TankState uint8

const (
	TankDead TankState = iota
	// TankRespawn is Dead while the owner is offered a spawn point.
	TankRespawn
	// TankSemiActive is the ghost state after spawn: visible, not vulnerable.
	TankSemiActive
	TankActive
)

func (s TankState) String() string {
	switch s {
	case TankDead:
		return "dead"
	case TankRespawn:
		return "respawn"
	case TankSemiActive:
		return "semi_active"
	case TankActive:
		return "active"
	default:
		return "unknown"
	}
}

// InitKey is the state key clients expect in tank init data.
func (s TankState) InitKey() string {
	switch s {
	case TankSemiActive:
		return "newcome"
	case TankActive:
		return "active"
	default:
		return "suicide"
	}
}

// Tank is one incarnation of a player's vehicle.
type Tank struct {
	id          string
	incarnation int
	player      *Player
	battle      *Battle

	// ctx is cancelled when the incarnation is deactivated; every tank timer runs on it.
	ctx    context.Context
	cancel context.CancelFunc

	state       TankState
	position    model.Vector3
	orientation model.Orientation
	turretAngle float64
	control     int

	health    float64
	maxHealth float64

	equipment garage.Equipment
	baseSpec  garage.Specification
	weapon    WeaponHandler
	effects   *EffectManager

	selfDestructing bool
	spawnedAt       time.Time
}

func (t *Tank) ID() string                     { return t.id }
func (t *Tank) Incarnation() int               { return t.incarnation }
func (t *Tank) Player() *Player                { return t.player }
func (t *Tank) Battle() *Battle                { return t.battle }
func (t *Tank) State() TankState               { return t.state }
func (t *Tank) Position() model.Vector3        { return t.position }
func (t *Tank) Orientation() model.Orientation { return t.orientation }
func (t *Tank) Health() float64                { return t.health }
func (t *Tank) MaxHealth() float64             { return t.maxHealth }
func (t *Tank) Equipment() garage.Equipment    { return t.equipment }
func (t *Tank) Handler() WeaponHandler         { return t.weapon }
func (t *Tank) Effects() *EffectManager        { return t.effects }
func (t *Tank) Team() model.Team               { return t.player.team }
func (t *Tank) Context() context.Context       { return t.ctx }

// Weapon returns the mounted weapon modification.
func (t *Tank) Weapon() *garage.WeaponModification { return t.equipment.Weapon }

// BaseSpecification returns the physical parameters without status effects.
func (t *Tank) BaseSpecification() garage.Specification { return t.baseSpec }

// IsActive reports whether the tank can take damage and score.
func (t *Tank) IsActive() bool { return t.state == TankActive }

// IsAlive reports whether the tank is spawned (ghost or active).
func (t *Tank) IsAlive() bool { return t.state == TankSemiActive || t.state == TankActive }

// IsAlly reports whether o is a different tank on the same team in a team mode.
func (t *Tank) IsAlly(o *Tank) bool {
	return o != t && t.battle.IsTeamMode() && t.player.team == o.player.team
}

// IsEnemy reports whether o is a different tank that is not an ally.
func (t *Tank) IsEnemy(o *Tank) bool {
	return o != t && !t.IsAlly(o)
}

// DistanceTo returns the distance to another tank in position units.
func (t *Tank) DistanceTo(o *Tank) float64 {
	return t.position.Distance(o.position)
}

// ClientHealth normalises health to HealthScale.
func (t *Tank) ClientHealth() int {
	if t.maxHealth <= 0 {
		return 0
	}
	return int(math.Floor(t.health / t.maxHealth * HealthScale))
}

func (t *Tank) setHealth(h float64) {
	t.health = math.Min(t.maxHealth, math.Max(0, h))
}

func (t *Tank) spawnEvent() SpawnTank {
	return SpawnTank{
		Tank:          t.id,
		Team:          t.player.team,
		Position:      t.position,
		Orientation:   t.orientation,
		Health:        t.ClientHealth(),
		Incarnation:   t.incarnation,
		Specification: t.baseSpec,
	}
}

// spawn moves the tank into the ghost state and starts polling for activation.
func (t *Tank) spawn() {
	b := t.battle
	p := t.player

	p.applyEquipmentChange()
	t.equipment = p.equipment
	t.maxHealth = garage.DefaultHullArmor
	if t.equipment.Hull != nil {
		t.maxHealth = t.equipment.Hull.MaxHealth()
	}
	t.health = t.maxHealth
	t.baseSpec = t.equipment.Specification()
	t.weapon = newWeaponHandler(t)

	t.state = TankSemiActive
	t.spawnedAt = time.Now()

	t.updateHealth()
	b.broadcast(t.spawnEvent())

	b.every(t.ctx, b.cfg.GhostPollInterval, t.tryActivate)

	slog.Debug("tank spawned",
		"battle", b.id,
		"tank", t.id,
		"incarnation", t.incarnation,
		"health", t.health)
}

// tryActivate promotes a ghost once the ghost duration has elapsed and no
// active tank overlaps it. Returns false when polling should stop.
func (t *Tank) tryActivate() bool {
	if t.player.tank != t || t.state != TankSemiActive {
		return false
	}
	if time.Since(t.spawnedAt) < t.battle.cfg.GhostDuration || t.overlapsActiveTank() {
		return true
	}
	t.activate()
	return false
}

func (t *Tank) overlapsActiveTank() bool {
	limit := t.battle.cfg.SpawnOverlapDistance
	for _, p := range t.battle.players {
		o := p.tank
		if o == nil || o == t || o.state != TankActive {
			continue
		}
		if t.DistanceTo(o) < limit {
			return true
		}
	}
	return false
}

func (t *Tank) activate() {
	if t.state == TankActive {
		return
	}
	t.state = TankActive

	b := t.battle
	for _, p := range b.players {
		o := p.tank
		if o != nil && o != t && o.state == TankActive {
			b.send(t.player, ActivateTank{Tank: o.id})
		}
	}
	b.broadcast(ActivateTank{Tank: t.id})
}

// deactivate cancels the tank scope, then tears down effects. A terminating
// tank (player leaving) skips graceful effect deactivation.
func (t *Tank) deactivate(terminate bool) {
	t.cancel()

	if !terminate {
		t.effects.deactivateAll()
	}
	t.effects.clear()

	if d, ok := t.weapon.(weaponDeactivator); ok {
		d.Deactivate()
	}

	b := t.battle
	if terminate || b.props.DeactivateMinesOnDeath {
		b.mines.removeOwner(t.player)
	}
}

// killSelf is the common part of every death. Returns false if the tank was already dead.
func (t *Tank) killSelf() bool {
	if !t.IsAlive() {
		return false
	}
	b := t.battle
	p := t.player

	t.deactivate(false)
	t.state = TankDead
	t.selfDestructing = false

	p.deaths++
	p.updateStats()

	b.mode.OnTankKilled(t)

	b.send(p, KillLocalTank{})
	return true
}

// KillBy destroys the tank and credits killer. Caller must hold the battle lock.
func (t *Tank) KillBy(killer *Tank) {
	if !t.killSelf() {
		return
	}
	b := t.battle
	b.broadcast(KillTank{Tank: t.id, Killer: killer.id})

	kp := killer.player
	if kp == t.player {
		return
	}
	// Burns and mines outlive their owner; a departed player is not credited.
	if b.player(kp.user) != kp {
		slog.Debug("kill by departed player not credited",
			"battle", b.id,
			"tank", t.id,
			"killer", killer.id)
		return
	}
	kp.kills++
	kp.score += killScore
	kp.updateStats()

	weapon := ""
	if killer.equipment.Weapon != nil {
		weapon = killer.equipment.Weapon.WeaponID
	}
	b.metrics.Kill(b.mode.Mode().String(), weapon)

	slog.Debug("tank killed",
		"battle", b.id,
		"tank", t.id,
		"killer", killer.id,
		"kills", kp.kills)

	b.onPlayerKill(kp)
	for _, u := range b.lobby.BattleSelectUsers() {
		b.notifier.Notify(u, UpdatePlayerKills{BattleID: b.id, User: kp.user, Kills: kp.kills})
	}
	b.mode.OnKill(kp, t.player)
}

// SelfDestruct destroys the tank without a killer.
func (t *Tank) SelfDestruct(silent bool) {
	if !t.killSelf() {
		return
	}
	t.battle.broadcast(SelfDestructTank{Tank: t.id, Silent: silent})
}

// updateHealth sends the normalised health to the owner, spectators and, in
// team modes, teammates.
func (t *Tank) updateHealth() {
	b := t.battle
	ev := ChangeHealth{Tank: t.id, Health: t.ClientHealth()}

	b.send(t.player, ev)
	b.sendTo(targetSpectators, ev, nil)
	if b.IsTeamMode() {
		for _, p := range b.players {
			if p == t.player || p.spectator || !p.ready || p.team != t.player.team {
				continue
			}
			b.send(p, ev)
		}
	}
}

// applySpecification broadcasts overridden physical parameters.
func (t *Tank) applySpecification(spec garage.Specification) {
	t.battle.broadcast(ChangeSpecification{Tank: t.id, Specification: spec})
}
