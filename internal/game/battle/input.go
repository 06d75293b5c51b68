package battle

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/udisondev/tankarena/internal/garage"
	"github.com/udisondev/tankarena/internal/model"
)

// withLiveTank runs fn for a spawned tank. Requests for a missing or dead
// tank (late packets) are dropped.
func (b *Battle) withLiveTank(user, op string, fn func(t *Tank)) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.closed {
		return
	}
	p := b.player(user)
	if p == nil || p.tank == nil || !p.tank.IsAlive() {
		slog.Debug("request for missing tank dropped",
			"battle", b.id,
			"user", user,
			"op", op)
		return
	}
	fn(p.tank)
}

// Move updates the tank's position. A tank below the map's death height self-destructs.
func (b *Battle) Move(user string, pos model.Vector3, orientation model.Orientation, control int) {
	b.withLiveTank(user, "move", func(t *Tank) {
		t.position = pos
		t.orientation = orientation
		t.control = control
		b.sendTo(targetAll, MoveTank{Tank: t.id, Position: pos, Orientation: orientation, Control: control}, t.player)

		if pos.Z < b.fallDeathZ && !t.selfDestructing {
			slog.Debug("tank fell out of map",
				"battle", b.id,
				"tank", t.id,
				"z", pos.Z)
			t.SelfDestruct(false)
		}
	})
}

// RotateTurret updates the turret angle.
func (b *Battle) RotateTurret(user string, angle float64, control int) {
	b.withLiveTank(user, "rotate_turret", func(t *Tank) {
		t.turretAngle = angle
		t.control = control
		b.sendTo(targetAll, RotateTurret{Tank: t.id, Angle: angle, Control: control}, t.player)
	})
}

// MovementControl updates the pressed movement keys.
func (b *Battle) MovementControl(user string, control int) {
	b.withLiveTank(user, "movement_control", func(t *Tank) {
		t.control = control
		b.sendTo(targetAll, MovementControl{Tank: t.id, Control: control}, t.player)
	})
}

// SelfDestruct destroys the user's tank, instantly or after the configured delay.
func (b *Battle) SelfDestruct(user string) {
	b.withLiveTank(user, "self_destruct", func(t *Tank) {
		if b.props.InstantSelfDestruct {
			t.SelfDestruct(false)
			return
		}
		if t.selfDestructing {
			return
		}
		t.selfDestructing = true
		b.after(t.ctx, b.cfg.SelfDestructDelay, func() {
			t.SelfDestruct(false)
		})
	})
}

// ReadyToRespawn offers a new spawn point to a player whose tank is dead.
func (b *Battle) ReadyToRespawn(user string) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.closed {
		return ErrBattleClosed
	}
	p := b.player(user)
	if p == nil {
		return ErrPlayerNotFound
	}
	if p.spectator || !p.ready {
		return nil
	}
	if t := p.tank; t != nil && t.state != TankDead {
		slog.Debug("respawn request ignored",
			"battle", b.id,
			"user", user,
			"state", t.state)
		return nil
	}
	p.respawn()
	return nil
}

// ReadyToSpawn spawns the tank prepared by the last respawn offer.
func (b *Battle) ReadyToSpawn(user string) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.closed {
		return ErrBattleClosed
	}
	p := b.player(user)
	if p == nil {
		return ErrPlayerNotFound
	}
	t := p.tank
	if t == nil || t.state != TankRespawn {
		slog.Debug("spawn request without prepared tank",
			"battle", b.id,
			"user", user)
		return nil
	}
	t.spawn()
	return nil
}

// TriggerMine explodes mine key under the user's tank.
func (b *Battle) TriggerMine(user, key string) {
	b.withLiveTank(user, "trigger_mine", func(t *Tank) {
		b.mines.TriggerMine(key, t)
	})
}

// Mount changes the user's equipment. change receives the current equipment
// and runs without the battle lock, so it may query the inventory store.
// Equipment changed while the tank is alive applies on the next spawn.
func (b *Battle) Mount(ctx context.Context, user string, change func(garage.Equipment) (garage.Equipment, error)) error {
	b.mu.Lock()
	p := b.player(user)
	closed := b.closed
	b.mu.Unlock()

	if closed {
		return ErrBattleClosed
	}
	if p == nil {
		return ErrPlayerNotFound
	}

	p.equipMu.Lock()
	defer p.equipMu.Unlock()

	b.mu.Lock()
	rearming := b.props.RearmingEnabled
	current := p.equipment
	if p.equipmentChanged {
		current = p.pending
	}
	b.mu.Unlock()

	if !rearming {
		return ErrRearmingDisabled
	}
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("mounting equipment: %w", err)
	}

	next, err := change(current)
	if err != nil {
		return fmt.Errorf("mounting equipment: %w", err)
	}

	b.mu.Lock()
	defer b.mu.Unlock()
	if b.player(user) != p {
		return ErrPlayerNotFound
	}
	if t := p.tank; t != nil && t.IsAlive() {
		p.pending = next
		p.equipmentChanged = true
	} else {
		p.equipment = next
		p.equipmentChanged = false
	}
	slog.Debug("equipment mounted",
		"battle", b.id,
		"user", user,
		"deferred", p.equipmentChanged)
	return nil
}
