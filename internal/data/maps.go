package data

import (
	"fmt"
	"log/slog"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/udisondev/tankarena/internal/model"
)

// SpawnPoint: точка появления танка. Mode == nil означает «для любого режима»,
// TeamNone: «для любой команды».
type SpawnPoint struct {
	Mode        *model.Mode       `yaml:"mode"`
	Team        model.Team        `yaml:"team"`
	Position    model.Vector3     `yaml:"position"`
	Orientation model.Orientation `yaml:"orientation"`
}

// FlagPedestals holds CTF flag base positions.
type FlagPedestals struct {
	Red  *model.Vector3 `yaml:"red"`
	Blue *model.Vector3 `yaml:"blue"`
}

// Pedestal returns the pedestal of team, if the map defines one.
func (f FlagPedestals) Pedestal(team model.Team) (model.Vector3, bool) {
	var p *model.Vector3
	switch team {
	case model.TeamRed:
		p = f.Red
	case model.TeamBlue:
		p = f.Blue
	}
	if p == nil {
		return model.Vector3{}, false
	}
	return *p, true
}

// ControlPointInfo describes a capture zone on a CP map.
type ControlPointInfo struct {
	Name     string        `yaml:"name"`
	Position model.Vector3 `yaml:"position"`
	Radius   float64       `yaml:"radius"`
}

// MapInfo is static map data consumed by battles.
type MapInfo struct {
	ID            string             `yaml:"id"`
	Name          string             `yaml:"name"`
	MaxPeople     int                `yaml:"max_people"`
	SpawnPoints   []SpawnPoint       `yaml:"spawn_points"`
	Flags         FlagPedestals      `yaml:"flags"`
	ControlPoints []ControlPointInfo `yaml:"control_points"`
}

// SpawnPointsFor returns spawn points usable by a team in mode.
func (m *MapInfo) SpawnPointsFor(mode model.Mode, team model.Team) []SpawnPoint {
	var out []SpawnPoint
	for _, sp := range m.SpawnPoints {
		if sp.Mode != nil && *sp.Mode != mode {
			continue
		}
		if sp.Team != model.TeamNone && sp.Team != team {
			continue
		}
		out = append(out, sp)
	}
	return out
}

// MinSpawnZ returns the lowest spawn height; the fall-out threshold is derived from it.
func (m *MapInfo) MinSpawnZ() float64 {
	if len(m.SpawnPoints) == 0 {
		return 0
	}
	z := m.SpawnPoints[0].Position.Z
	for _, sp := range m.SpawnPoints[1:] {
		z = min(z, sp.Position.Z)
	}
	return z
}

// MapCatalog indexes maps by id.
type MapCatalog struct {
	maps map[string]*MapInfo
}

// Get returns a map by id.
func (c *MapCatalog) Get(id string) (*MapInfo, bool) {
	m, ok := c.maps[id]
	return m, ok
}

// All returns every loaded map.
func (c *MapCatalog) All() []*MapInfo {
	out := make([]*MapInfo, 0, len(c.maps))
	for _, m := range c.maps {
		out = append(out, m)
	}
	return out
}

// LoadMaps reads map data from a YAML file.
func LoadMaps(path string) (*MapCatalog, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading maps %s: %w", path, err)
	}
	c, err := ParseMaps(raw)
	if err != nil {
		return nil, fmt.Errorf("parsing maps %s: %w", path, err)
	}
	return c, nil
}

// ParseMaps builds a map catalog from YAML bytes.
func ParseMaps(raw []byte) (*MapCatalog, error) {
	var f struct {
		Maps []*MapInfo `yaml:"maps"`
	}
	if err := yaml.Unmarshal(raw, &f); err != nil {
		return nil, err
	}

	c := &MapCatalog{maps: make(map[string]*MapInfo, len(f.Maps))}
	for _, m := range f.Maps {
		if m.ID == "" {
			return nil, fmt.Errorf("map without id")
		}
		if len(m.SpawnPoints) == 0 {
			return nil, fmt.Errorf("map %q has no spawn points", m.ID)
		}
		if m.MaxPeople <= 0 {
			m.MaxPeople = 8
		}
		c.maps[m.ID] = m
	}
	slog.Info("loaded maps", "count", len(c.maps))
	return c, nil
}
