package battle

import (
	"time"

	"github.com/udisondev/tankarena/internal/model"
)

// Summary is a read-only snapshot of a battle for lobby listings.
type Summary struct {
	ID         string
	Title      string
	Mode       model.Mode
	MapID      string
	Private    bool
	MinRank    int
	MaxRank    int
	MaxPeople  int
	ScoreLimit int
	TimeLimit  time.Duration
	// TimeLeft is zero when the match clock is not running.
	TimeLeft   time.Duration
	RedScore   int
	BlueScore  int
	Players    []UserStat
	Spectators int
	Restarting bool
}

// Summary returns the current status of the battle.
func (b *Battle) Summary() Summary {
	b.mu.Lock()
	defer b.mu.Unlock()

	left, _ := b.timeLeft()
	s := Summary{
		ID:         b.id,
		Title:      b.title,
		Mode:       b.mode.Mode(),
		MapID:      b.mapInfo.ID,
		Private:    b.props.Private,
		MinRank:    b.props.MinRank,
		MaxRank:    b.props.MaxRank,
		MaxPeople:  b.maxPeople(),
		ScoreLimit: b.props.ScoreLimit,
		TimeLimit:  b.props.TimeLimit,
		TimeLeft:   left,
		RedScore:   b.mode.TeamScore(model.TeamRed),
		BlueScore:  b.mode.TeamScore(model.TeamBlue),
		Players:    b.standings(),
		Restarting: b.restarting,
	}
	for _, p := range b.players {
		if p.spectator {
			s.Spectators++
		}
	}
	return s
}
