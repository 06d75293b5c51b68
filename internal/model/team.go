package model

import (
	"fmt"
	"strings"
)

// Team: командная принадлежность участника боя.
type Team int8

const (
	TeamNone Team = iota
	TeamRed
	TeamBlue
)

// Teams lists the playable teams in broadcast order.
var Teams = [...]Team{TeamRed, TeamBlue}

// Opposite returns the enemy team. TeamNone has no opposite.
func (t Team) Opposite() Team {
	switch t {
	case TeamRed:
		return TeamBlue
	case TeamBlue:
		return TeamRed
	default:
		return TeamNone
	}
}

func (t Team) String() string {
	switch t {
	case TeamRed:
		return "RED"
	case TeamBlue:
		return "BLUE"
	default:
		return "NONE"
	}
}

// ParseTeam parses a team key as used in map and battle configuration.
func ParseTeam(s string) (Team, error) {
	switch strings.ToUpper(s) {
	case "RED":
		return TeamRed, nil
	case "BLUE":
		return TeamBlue, nil
	case "NONE", "":
		return TeamNone, nil
	}
	return TeamNone, fmt.Errorf("unknown team %q", s)
}

// UnmarshalText implements encoding.TextUnmarshaler for YAML map data.
func (t *Team) UnmarshalText(b []byte) error {
	v, err := ParseTeam(string(b))
	if err != nil {
		return err
	}
	*t = v
	return nil
}
