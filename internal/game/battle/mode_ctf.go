package battle

import (
	"context"
	"log/slog"

	"github.com/udisondev/tankarena/internal/model"
)

// FlagStateKind is the position of a flag in its state graph:
// OnPedestal -> Carrying -> Dropped -> (Carrying | OnPedestal).
type FlagStateKind uint8

const (
	FlagStateOnPedestal FlagStateKind = iota
	FlagStateDropped
	FlagStateCarrying
)

func (k FlagStateKind) String() string {
	switch k {
	case FlagStateOnPedestal:
		return "on_pedestal"
	case FlagStateDropped:
		return "dropped"
	case FlagStateCarrying:
		return "carrying"
	default:
		return "unknown"
	}
}

// FlagState is the state of one team's flag. The carrier is referenced by
// tank id and incarnation so a dead tank never keeps a flag.
type FlagState struct {
	Kind     FlagStateKind
	Position model.Vector3 // Dropped only
	Carrier  string        // Carrying only
	Life     int           // incarnation of the carrier

	cancelReturn context.CancelFunc
}

func (f *FlagState) carriedBy(t *Tank) bool {
	return f.Kind == FlagStateCarrying && f.Carrier == t.id && f.Life == t.incarnation
}

func (f *FlagState) stopReturnTimer() {
	if f.cancelReturn != nil {
		f.cancelReturn()
		f.cancelReturn = nil
	}
}

// captureTheFlagHandler owns one flag per team. A team without a pedestal on
// the map has no flag state, and every flag operation for it is a no-op.
type captureTheFlagHandler struct {
	teamMode
	flags     map[model.Team]*FlagState
	pedestals map[model.Team]model.Vector3
}

func newCaptureTheFlagHandler(b *Battle) *captureTheFlagHandler {
	h := &captureTheFlagHandler{
		teamMode:  newTeamMode(b),
		flags:     make(map[model.Team]*FlagState, len(model.Teams)),
		pedestals: make(map[model.Team]model.Vector3, len(model.Teams)),
	}
	for _, team := range model.Teams {
		pos, ok := b.mapInfo.Flags.Pedestal(team)
		if !ok {
			slog.Warn("map has no flag pedestal",
				"map", b.mapInfo.ID,
				"team", team)
			continue
		}
		h.pedestals[team] = pos
		h.flags[team] = &FlagState{Kind: FlagStateOnPedestal}
	}
	return h
}

func (h *captureTheFlagHandler) Mode() model.Mode { return model.ModeCaptureTheFlag }

// PlayerLeave drops a carried flag before the generic leave notice.
func (h *captureTheFlagHandler) PlayerLeave(p *Player) {
	if p.tank != nil {
		h.dropCarried(p.tank)
	}
	h.teamMode.PlayerLeave(p)
}

func (h *captureTheFlagHandler) OnTankKilled(t *Tank) {
	h.dropCarried(t)
}

func (h *captureTheFlagHandler) InitModeModel(p *Player) {
	h.teamMode.InitModeModel(p)
	h.battle.send(p, InitFlags{
		Red:  h.view(model.TeamRed),
		Blue: h.view(model.TeamBlue),
	})
}

func (h *captureTheFlagHandler) view(team model.Team) FlagView {
	v := FlagView{Pedestal: h.raised(h.pedestals[team])}
	f, ok := h.flags[team]
	if !ok {
		return v
	}
	switch f.Kind {
	case FlagStateDropped:
		pos := h.raised(f.Position)
		v.Position = &pos
	case FlagStateCarrying:
		v.Carrier = f.Carrier
	}
	return v
}

// raised lifts a flag position above the ground for clients.
func (h *captureTheFlagHandler) raised(pos model.Vector3) model.Vector3 {
	pos.Z += h.battle.cfg.FlagHeightOffset
	return pos
}

// Flag returns the state of team's flag.
func (h *captureTheFlagHandler) Flag(team model.Team) (FlagState, bool) {
	f, ok := h.flags[team]
	if !ok {
		return FlagState{}, false
	}
	return *f, true
}

func (h *captureTheFlagHandler) dropCarried(t *Tank) {
	for _, team := range model.Teams {
		if f, ok := h.flags[team]; ok && f.carriedBy(t) {
			h.drop(team, t.position)
		}
	}
}

// capture: OnPedestal|Dropped -> Carrying by an active enemy tank.
func (h *captureTheFlagHandler) capture(team model.Team, t *Tank) bool {
	f, ok := h.flags[team]
	if !ok {
		return false
	}
	if f.Kind != FlagStateOnPedestal && f.Kind != FlagStateDropped {
		slog.Debug("flag capture ignored",
			"battle", h.battle.id,
			"team", team,
			"state", f.Kind,
			"tank", t.id)
		return false
	}
	if !t.IsActive() || t.player.team == team {
		return false
	}

	f.stopReturnTimer()
	f.Kind = FlagStateCarrying
	f.Carrier = t.id
	f.Life = t.incarnation
	f.Position = model.Vector3{}

	h.battle.broadcast(FlagCaptured{Team: team, Carrier: t.id})
	return true
}

// drop: Carrying -> Dropped at pos, arming the auto-return timer.
func (h *captureTheFlagHandler) drop(team model.Team, pos model.Vector3) {
	f, ok := h.flags[team]
	if !ok || f.Kind != FlagStateCarrying {
		return
	}
	b := h.battle

	f.Kind = FlagStateDropped
	f.Position = pos
	f.Carrier = ""
	f.Life = 0

	f.stopReturnTimer()
	ctx, cancel := context.WithCancel(b.ctx)
	f.cancelReturn = cancel
	b.after(ctx, b.cfg.FlagReturnDelay, func() {
		if f.Kind != FlagStateDropped {
			return
		}
		slog.Debug("dropped flag auto-returned",
			"battle", b.id,
			"team", team)
		h.returnFlag(team, "")
	})

	b.broadcast(FlagDropped{Team: team, Position: h.raised(pos)})
}

// deliver: the carrier of the enemy flag scores at its base; the enemy flag
// goes back to its pedestal.
func (h *captureTheFlagHandler) deliver(t *Tank) bool {
	b := h.battle
	team := t.player.team
	enemy := team.Opposite()

	f, ok := h.flags[enemy]
	if !ok {
		return false
	}
	if f.Kind == FlagStateOnPedestal {
		slog.Warn("duplicate flag delivery ignored",
			"battle", b.id,
			"flag", enemy,
			"tank", t.id)
		return false
	}
	if !f.carriedBy(t) {
		slog.Debug("flag delivery by non-carrier ignored",
			"battle", b.id,
			"flag", enemy,
			"tank", t.id)
		return false
	}

	f.stopReturnTimer()
	f.Kind = FlagStateOnPedestal
	f.Carrier = ""
	f.Life = 0

	b.metrics.FlagDelivered(team.String())
	h.scores.AddTeamScore(team, 1)
	b.broadcast(FlagDelivered{Team: team, Deliverer: t.id})
	return true
}

// returnFlag: Dropped -> OnPedestal. by is empty for the auto-return.
func (h *captureTheFlagHandler) returnFlag(team model.Team, by string) bool {
	f, ok := h.flags[team]
	if !ok || f.Kind != FlagStateDropped {
		return false
	}
	f.stopReturnTimer()
	f.Kind = FlagStateOnPedestal
	f.Position = model.Vector3{}

	h.battle.broadcast(FlagReturned{Team: team, By: by})
	return true
}

func (h *captureTheFlagHandler) Reset() {
	for _, f := range h.flags {
		f.stopReturnTimer()
		*f = FlagState{Kind: FlagStateOnPedestal}
	}
	h.teamMode.Reset()
}

func (b *Battle) ctf() (*captureTheFlagHandler, bool) {
	h, ok := b.mode.(*captureTheFlagHandler)
	return h, ok
}

// CaptureFlag handles a tank touching team's flag. Touching the own dropped
// flag returns it; touching an enemy flag captures it.
func (b *Battle) CaptureFlag(user string, team model.Team) error {
	return b.WithTank(user, func(t *Tank) error {
		h, ok := b.ctf()
		if !ok {
			return nil
		}
		if t.player.team == team {
			if t.IsActive() {
				h.returnFlag(team, t.id)
			}
			return nil
		}
		h.capture(team, t)
		return nil
	})
}

// DeliverFlag handles the carrier reaching its own base.
func (b *Battle) DeliverFlag(user string) error {
	return b.WithTank(user, func(t *Tank) error {
		if h, ok := b.ctf(); ok && t.IsActive() {
			h.deliver(t)
		}
		return nil
	})
}

// DropFlag drops whatever flag the user's tank carries (client-side drop request).
func (b *Battle) DropFlag(user string) error {
	return b.WithTank(user, func(t *Tank) error {
		if h, ok := b.ctf(); ok {
			h.dropCarried(t)
		}
		return nil
	})
}

// FlagState returns the state of team's flag in a CTF battle.
func (b *Battle) FlagState(team model.Team) (FlagState, bool) {
	b.mu.Lock()
	defer b.mu.Unlock()
	h, ok := b.ctf()
	if !ok {
		return FlagState{}, false
	}
	return h.Flag(team)
}
