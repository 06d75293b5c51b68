package data

import (
	"fmt"
	"log/slog"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/udisondev/tankarena/internal/garage"
)

// itemsFile is the on-disk layout of the garage item configuration.
type itemsFile struct {
	Weapons []*garage.Weapon `yaml:"weapons"`
	Hulls   []*garage.Hull   `yaml:"hulls"`
	Paints  []*garage.Paint  `yaml:"paints"`
}

// LoadItems reads the garage item catalog from a YAML file.
func LoadItems(path string) (*garage.Catalog, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading items %s: %w", path, err)
	}
	c, err := ParseItems(raw)
	if err != nil {
		return nil, fmt.Errorf("parsing items %s: %w", path, err)
	}
	return c, nil
}

// ParseItems builds a catalog from YAML bytes.
func ParseItems(raw []byte) (*garage.Catalog, error) {
	var f itemsFile
	if err := yaml.Unmarshal(raw, &f); err != nil {
		return nil, err
	}
	for _, w := range f.Weapons {
		if w.ID == "" {
			return nil, fmt.Errorf("weapon without id")
		}
		if len(w.Modifications) == 0 {
			return nil, fmt.Errorf("weapon %q has no modifications", w.ID)
		}
	}
	for _, h := range f.Hulls {
		if h.ID == "" {
			return nil, fmt.Errorf("hull without id")
		}
	}

	c := garage.NewCatalog(f.Weapons, f.Hulls, f.Paints)
	weapons, hulls, paints := c.Len()
	slog.Info("loaded garage items", "weapons", weapons, "hulls", hulls, "paints", paints)
	return c, nil
}
