package battle

import (
	"fmt"
	"log/slog"
	"slices"

	"github.com/udisondev/tankarena/internal/garage"
	"github.com/udisondev/tankarena/internal/model"
)

type mine struct {
	key      string
	owner    *Player
	position model.Vector3
}

// MineProcessor tracks the mines placed in one battle. Keys have the form
// "<user>_<n>". Methods expect the battle lock to be held.
type MineProcessor struct {
	battle *Battle
	mines  []*mine
	nextID int
}

func newMineProcessor(b *Battle) *MineProcessor {
	return &MineProcessor{battle: b}
}

// PlaceMine puts a mine under t. The owner's oldest mine is removed when the
// per-user limit is reached.
func (m *MineProcessor) PlaceMine(t *Tank) string {
	b := m.battle
	owner := t.player

	if limit := b.cfg.Mine.PerUser; limit > 0 {
		for m.count(owner) >= limit {
			m.remove(m.oldest(owner))
		}
	}

	m.nextID++
	mn := &mine{
		key:      fmt.Sprintf("%s_%d", owner.user, m.nextID),
		owner:    owner,
		position: t.position,
	}
	m.mines = append(m.mines, mn)

	b.broadcast(MinePlaced{Key: mn.key, Owner: owner.user, Position: mn.position})
	return mn.key
}

// TriggerMine explodes the mine under target. Mines the owner could not
// damage target with stay in place.
func (m *MineProcessor) TriggerMine(key string, target *Tank) bool {
	b := m.battle
	i := slices.IndexFunc(m.mines, func(mn *mine) bool { return mn.key == key })
	if i < 0 {
		slog.Debug("unknown mine triggered",
			"battle", b.id,
			"mine", key,
			"tank", target.id)
		return false
	}
	mn := m.mines[i]
	source := mn.owner.tank
	if source == nil || !target.IsActive() || !b.damage.CanDamage(source, target) {
		return false
	}

	m.mines = slices.Delete(m.mines, i, i+1)
	b.broadcast(MineTriggered{Key: key, Target: target.id})
	b.damage.DealDamage(source, target, b.cfg.Mine.Damage, false, DamageOptions{DamageSource: garage.DamageSourceMine})
	return true
}

// Count returns the number of live mines.
func (m *MineProcessor) Count() int { return len(m.mines) }

func (m *MineProcessor) count(owner *Player) int {
	n := 0
	for _, mn := range m.mines {
		if mn.owner == owner {
			n++
		}
	}
	return n
}

func (m *MineProcessor) oldest(owner *Player) *mine {
	for _, mn := range m.mines {
		if mn.owner == owner {
			return mn
		}
	}
	return nil
}

func (m *MineProcessor) remove(mn *mine) {
	m.mines = slices.DeleteFunc(m.mines, func(x *mine) bool { return x == mn })
}

func (m *MineProcessor) removeOwner(owner *Player) {
	before := len(m.mines)
	m.mines = slices.DeleteFunc(m.mines, func(mn *mine) bool { return mn.owner == owner })
	if len(m.mines) != before {
		m.battle.broadcast(MinesRemoved{Owner: owner.user})
	}
}

func (m *MineProcessor) reset() {
	owners := make(map[*Player]struct{})
	for _, mn := range m.mines {
		owners[mn.owner] = struct{}{}
	}
	for owner := range owners {
		m.removeOwner(owner)
	}
}
