package battle

import (
	"cmp"
	"context"
	"log/slog"
	"slices"
	"time"

	"github.com/udisondev/tankarena/internal/model"
)

// resultTimeout bounds result recording during the settlement delay.
const resultTimeout = 5 * time.Second

// FinishedRound is the outcome of one round, handed to the ResultRecorder.
type FinishedRound struct {
	BattleID   string
	MapID      string
	Mode       model.Mode
	Reason     string
	FinishedAt time.Time
	RedScore   int
	BlueScore  int
	Standings  []UserStat
}

// ResultRecorder stores finished rounds. It is called without the battle lock.
type ResultRecorder interface {
	RecordResult(ctx context.Context, round FinishedRound) error
}

// armTimeLimit (re)starts the time-limit timer from the current match clock.
// Caller must hold the battle lock.
func (b *Battle) armTimeLimit() {
	if b.timeLimit != nil {
		b.timeLimit.cancel()
		b.timeLimit = nil
	}
	if b.props.TimeLimit <= 0 || b.startTime.IsZero() || b.closed {
		return
	}

	tok := b.newToken()
	b.timeLimit = tok
	left := max(time.Until(b.startTime.Add(b.props.TimeLimit)), 0)

	b.after(tok.ctx, left, func() {
		// The limit may have been disabled since the timer was armed.
		if b.props.TimeLimit <= 0 {
			slog.Debug("time limit disabled, timer ignored", "battle", b.id)
			return
		}
		b.triggerRestart(tok, "time limit")
	})
}

// onPlayerKill checks the DM kill limit.
func (b *Battle) onPlayerKill(p *Player) {
	if b.mode.Mode() != model.ModeDeathmatch || b.props.ScoreLimit <= 0 {
		return
	}
	if p.kills >= b.props.ScoreLimit {
		b.triggerRestart(nil, "score limit")
	}
}

// onTeamScoreChanged checks the team score limit.
func (b *Battle) onTeamScoreChanged(team model.Team, score int) {
	if !b.IsTeamMode() || b.props.ScoreLimit <= 0 {
		return
	}
	if score >= b.props.ScoreLimit {
		slog.Info("team reached score limit",
			"battle", b.id,
			"team", team,
			"score", score)
		b.triggerRestart(nil, "score limit")
	}
}

// Restarting reports whether a restart sequence is in progress.
func (b *Battle) Restarting() bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.restarting
}

// FinishRound ends the round now, as if a limit was reached.
func (b *Battle) FinishRound() {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.triggerRestart(nil, "forced")
}

// triggerRestart starts the restart sequence unless one is already running.
// tok is the time-limit timer that fired, if any; it is the only armed timer
// the sequence leaves alone. Caller must hold the battle lock.
func (b *Battle) triggerRestart(tok *timerToken, reason string) {
	if b.closed {
		return
	}
	if b.restarting {
		slog.Debug("restart already in progress",
			"battle", b.id,
			"reason", reason)
		return
	}
	b.restarting = true

	if b.timeLimit != nil && b.timeLimit != tok {
		b.timeLimit.cancel()
	}
	b.timeLimit = nil

	standings := b.standings()
	b.broadcast(FinishBattle{TimeToRestart: b.cfg.RestartDelay, Standings: standings})

	round := FinishedRound{
		BattleID:   b.id,
		MapID:      b.mapInfo.ID,
		Mode:       b.mode.Mode(),
		Reason:     reason,
		FinishedAt: time.Now(),
		RedScore:   b.mode.TeamScore(model.TeamRed),
		BlueScore:  b.mode.TeamScore(model.TeamBlue),
		Standings:  standings,
	}

	slog.Info("battle finished",
		"battle", b.id,
		"reason", reason,
		"red", round.RedScore,
		"blue", round.BlueScore)

	b.wg.Add(1)
	go b.runRestart(tok, round)
}

// runRestart performs the settlement delay and the reset. It runs on the
// battle context, so only Close can interrupt it.
func (b *Battle) runRestart(tok *timerToken, round FinishedRound) {
	defer b.wg.Done()
	if tok != nil {
		defer tok.cancel()
	}

	b.recordResult(round)

	if err := sleep(b.ctx, b.cfg.RestartDelay); err != nil {
		b.mu.Lock()
		b.restarting = false
		b.mu.Unlock()
		return
	}

	b.mu.Lock()
	defer b.mu.Unlock()
	defer func() { b.restarting = false }()

	if b.closed {
		return
	}

	if len(b.fighters()) > 0 {
		b.startTime = time.Now()
	} else {
		b.startTime = time.Time{}
	}
	b.armTimeLimit()

	b.mines.reset()
	for _, p := range b.players {
		p.resetStats()
		if p.tank != nil {
			p.tank.deactivate(false)
			p.tank.state = TankDead
			p.tank = nil
		}
		if p.ready && !p.spectator {
			p.respawn()
		}
	}

	b.mode.Reset()
	b.broadcast(RestartBattle{TimeLimit: b.props.TimeLimit})

	for _, p := range b.players {
		if p.ready {
			b.initLocal(p)
		}
	}

	b.metrics.Restart(b.mode.Mode().String())
	slog.Info("battle restarted",
		"battle", b.id,
		"players", len(b.players))
}

func (b *Battle) recordResult(round FinishedRound) {
	if b.results == nil {
		return
	}
	ctx, cancel := context.WithTimeout(b.ctx, resultTimeout)
	defer cancel()
	if err := b.results.RecordResult(ctx, round); err != nil {
		slog.Error("recording battle result",
			"battle", b.id,
			"error", err)
	}
}

// standings returns fighter stats ordered by score, then kills.
func (b *Battle) standings() []UserStat {
	out := b.stats()
	slices.SortStableFunc(out, func(a, c UserStat) int {
		if r := cmp.Compare(c.Score, a.Score); r != 0 {
			return r
		}
		return cmp.Compare(c.Kills, a.Kills)
	})
	return out
}
