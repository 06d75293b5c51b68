package battle

import (
	"math"

	"github.com/udisondev/tankarena/internal/model"
)

// captureFull bounds capture progress. Red pushes towards +100, Blue towards -100.
const captureFull = 100.0

// controlPoint is one capture zone.
type controlPoint struct {
	name     string
	position model.Vector3
	radius   float64
	owner    model.Team
	progress float64
}

func (z *controlPoint) view() ControlPointView {
	return ControlPointView{
		Name:     z.name,
		Position: z.position,
		Radius:   z.radius,
		Owner:    z.owner,
		Progress: z.progress,
	}
}

// controlPointsHandler: teams capture zones by standing in them; every owned
// zone adds a team point each score interval.
type controlPointsHandler struct {
	teamMode
	points  []*controlPoint
	started bool
}

func newControlPointsHandler(b *Battle) *controlPointsHandler {
	h := &controlPointsHandler{teamMode: newTeamMode(b)}
	for _, cp := range b.mapInfo.ControlPoints {
		h.points = append(h.points, &controlPoint{
			name:     cp.Name,
			position: cp.Position,
			radius:   cp.Radius,
		})
	}
	return h
}

func (h *controlPointsHandler) Mode() model.Mode { return model.ModeControlPoints }

func (h *controlPointsHandler) PlayerJoin(p *Player) {
	h.teamMode.PlayerJoin(p)
	if h.started || len(h.points) == 0 {
		return
	}
	h.started = true
	b := h.battle
	cfg := b.cfg.ControlPoints
	b.every(b.ctx, cfg.Tick, func() bool {
		h.tick()
		return true
	})
	b.every(b.ctx, cfg.ScoreInterval, func() bool {
		h.score()
		return true
	})
}

func (h *controlPointsHandler) InitModeModel(p *Player) {
	h.teamMode.InitModeModel(p)
	points := make([]ControlPointView, 0, len(h.points))
	for _, z := range h.points {
		points = append(points, z.view())
	}
	h.battle.send(p, InitControlPoints{Points: points})
}

// tick moves every zone's progress by capture speed × (red - blue) active
// tanks inside its radius.
func (h *controlPointsHandler) tick() {
	b := h.battle
	if b.restarting {
		return
	}
	speed := b.cfg.ControlPoints.CaptureSpeed

	for _, z := range h.points {
		var red, blue int
		for _, p := range b.players {
			t := p.tank
			if t == nil || !t.IsActive() || t.position.Distance(z.position) > z.radius {
				continue
			}
			switch p.team {
			case model.TeamRed:
				red++
			case model.TeamBlue:
				blue++
			}
		}
		if red == blue {
			continue
		}
		h.advance(z, speed*float64(red-blue))
	}
}

func (h *controlPointsHandler) advance(z *controlPoint, delta float64) {
	b := h.battle
	prev := z.progress
	z.progress = math.Max(-captureFull, math.Min(captureFull, z.progress+delta))
	if z.progress == prev {
		return
	}
	b.broadcast(ControlPointProgress{Point: z.name, Progress: z.progress})

	if (z.owner == model.TeamRed && z.progress <= 0) || (z.owner == model.TeamBlue && z.progress >= 0) {
		lost := z.owner
		z.owner = model.TeamNone
		b.broadcast(ControlPointLost{Point: z.name, Team: lost})
	}

	var owner model.Team
	switch z.progress {
	case captureFull:
		owner = model.TeamRed
	case -captureFull:
		owner = model.TeamBlue
	default:
		return
	}
	if z.owner != owner {
		z.owner = owner
		b.broadcast(ControlPointCaptured{Point: z.name, Team: owner})
	}
}

func (h *controlPointsHandler) score() {
	if h.battle.restarting {
		return
	}
	for _, z := range h.points {
		if z.owner != model.TeamNone {
			h.scores.AddTeamScore(z.owner, 1)
		}
	}
}

func (h *controlPointsHandler) Reset() {
	for _, z := range h.points {
		z.owner = model.TeamNone
		z.progress = 0
	}
	h.teamMode.Reset()
}

// ControlPoints returns the zones of a CP battle.
func (b *Battle) ControlPoints() []ControlPointView {
	b.mu.Lock()
	defer b.mu.Unlock()
	h, ok := b.mode.(*controlPointsHandler)
	if !ok {
		return nil
	}
	out := make([]ControlPointView, 0, len(h.points))
	for _, z := range h.points {
		out = append(out, z.view())
	}
	return out
}
