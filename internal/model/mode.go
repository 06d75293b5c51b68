package model

import (
	"fmt"
	"strings"
)

// Mode: режим боя. Значения совпадают с идентификаторами клиента.
type Mode int8

const (
	ModeDeathmatch     Mode = 1
	ModeTeamDeathmatch Mode = 2
	ModeCaptureTheFlag Mode = 3
	ModeControlPoints  Mode = 4
)

// IsTeam reports whether the mode splits players into red and blue teams.
func (m Mode) IsTeam() bool {
	return m == ModeTeamDeathmatch || m == ModeCaptureTheFlag || m == ModeControlPoints
}

func (m Mode) String() string {
	switch m {
	case ModeDeathmatch:
		return "DM"
	case ModeTeamDeathmatch:
		return "TDM"
	case ModeCaptureTheFlag:
		return "CTF"
	case ModeControlPoints:
		return "CP"
	default:
		return fmt.Sprintf("Mode(%d)", int8(m))
	}
}

// ParseMode parses a mode key (DM, TDM, CTF, CP).
func ParseMode(s string) (Mode, error) {
	switch strings.ToUpper(s) {
	case "DM":
		return ModeDeathmatch, nil
	case "TDM":
		return ModeTeamDeathmatch, nil
	case "CTF":
		return ModeCaptureTheFlag, nil
	case "CP", "DOM":
		return ModeControlPoints, nil
	}
	return 0, fmt.Errorf("unknown battle mode %q", s)
}

// UnmarshalText implements encoding.TextUnmarshaler for YAML map data.
func (m *Mode) UnmarshalText(b []byte) error {
	v, err := ParseMode(string(b))
	if err != nil {
		return err
	}
	*m = v
	return nil
}
