package garage

import (
	"errors"
	"fmt"
)

// ErrUnknownItem is returned when an item id or modification is not in the catalog.
var ErrUnknownItem = errors.New("unknown item")

// Catalog indexes the static item configuration. Read-only after construction.
type Catalog struct {
	weapons map[string]*Weapon
	hulls   map[string]*Hull
	paints  map[string]*Paint
}

// NewCatalog builds a catalog and links modifications back to their items.
func NewCatalog(weapons []*Weapon, hulls []*Hull, paints []*Paint) *Catalog {
	c := &Catalog{
		weapons: make(map[string]*Weapon, len(weapons)),
		hulls:   make(map[string]*Hull, len(hulls)),
		paints:  make(map[string]*Paint, len(paints)),
	}
	for _, w := range weapons {
		if w.Kind == "" {
			w.Kind = WeaponKind(w.ID)
		}
		for i := range w.Modifications {
			w.Modifications[i].WeaponID = w.ID
			w.Modifications[i].Kind = w.Kind
		}
		c.weapons[w.ID] = w
	}
	for _, h := range hulls {
		for i := range h.Modifications {
			h.Modifications[i].HullID = h.ID
		}
		c.hulls[h.ID] = h
	}
	for _, p := range paints {
		c.paints[p.ID] = p
	}
	return c
}

// Weapon returns the modification of a turret.
func (c *Catalog) Weapon(id string, mod int) (*WeaponModification, error) {
	w, ok := c.weapons[id]
	if !ok {
		return nil, fmt.Errorf("weapon %q: %w", id, ErrUnknownItem)
	}
	for i := range w.Modifications {
		if w.Modifications[i].Index == mod {
			return &w.Modifications[i], nil
		}
	}
	return nil, fmt.Errorf("weapon %q modification %d: %w", id, mod, ErrUnknownItem)
}

// Hull returns the modification of a hull.
func (c *Catalog) Hull(id string, mod int) (*HullModification, error) {
	h, ok := c.hulls[id]
	if !ok {
		return nil, fmt.Errorf("hull %q: %w", id, ErrUnknownItem)
	}
	for i := range h.Modifications {
		if h.Modifications[i].Index == mod {
			return &h.Modifications[i], nil
		}
	}
	return nil, fmt.Errorf("hull %q modification %d: %w", id, mod, ErrUnknownItem)
}

// Paint returns a paint by id.
func (c *Catalog) Paint(id string) (*Paint, error) {
	p, ok := c.paints[id]
	if !ok {
		return nil, fmt.Errorf("paint %q: %w", id, ErrUnknownItem)
	}
	return p, nil
}

// Resolve turns stored item ids into configuration references.
func (c *Catalog) Resolve(l Loadout) (Equipment, error) {
	hull, err := c.Hull(l.HullID, l.HullMod)
	if err != nil {
		return Equipment{}, err
	}
	weapon, err := c.Weapon(l.WeaponID, l.WeaponMod)
	if err != nil {
		return Equipment{}, err
	}
	paint, err := c.Paint(l.PaintID)
	if err != nil {
		return Equipment{}, err
	}
	return Equipment{Hull: hull, Weapon: weapon, Paint: paint}, nil
}

// Len returns the number of weapons, hulls and paints.
func (c *Catalog) Len() (weapons, hulls, paints int) {
	return len(c.weapons), len(c.hulls), len(c.paints)
}
