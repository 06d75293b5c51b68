package db

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/udisondev/tankarena/internal/garage"
)

// ErrLoadoutNotFound is returned when a player has no stored loadout.
var ErrLoadoutNotFound = errors.New("loadout not found")

// LoadoutRepository stores the mounted items of every player.
type LoadoutRepository struct {
	db *pgxpool.Pool
}

// NewLoadoutRepository creates a LoadoutRepository.
func NewLoadoutRepository(db *pgxpool.Pool) *LoadoutRepository {
	return &LoadoutRepository{db: db}
}

// Get returns the loadout of user.
func (r *LoadoutRepository) Get(ctx context.Context, user string) (garage.Loadout, error) {
	var l garage.Loadout
	err := r.db.QueryRow(ctx,
		`SELECT hull_id, hull_mod, weapon_id, weapon_mod, paint_id
		 FROM player_loadouts WHERE username = $1`, user,
	).Scan(&l.HullID, &l.HullMod, &l.WeaponID, &l.WeaponMod, &l.PaintID)
	if errors.Is(err, pgx.ErrNoRows) {
		return garage.Loadout{}, fmt.Errorf("user %q: %w", user, ErrLoadoutNotFound)
	}
	if err != nil {
		return garage.Loadout{}, fmt.Errorf("query loadout %q: %w", user, err)
	}
	return l, nil
}

// Save inserts or replaces the loadout of user.
func (r *LoadoutRepository) Save(ctx context.Context, user string, l garage.Loadout) error {
	_, err := r.db.Exec(ctx,
		`INSERT INTO player_loadouts (username, hull_id, hull_mod, weapon_id, weapon_mod, paint_id, updated_at)
		 VALUES ($1, $2, $3, $4, $5, $6, now())
		 ON CONFLICT (username) DO UPDATE SET
		   hull_id = EXCLUDED.hull_id,
		   hull_mod = EXCLUDED.hull_mod,
		   weapon_id = EXCLUDED.weapon_id,
		   weapon_mod = EXCLUDED.weapon_mod,
		   paint_id = EXCLUDED.paint_id,
		   updated_at = EXCLUDED.updated_at`,
		user, l.HullID, l.HullMod, l.WeaponID, l.WeaponMod, l.PaintID,
	)
	if err != nil {
		return fmt.Errorf("save loadout %q: %w", user, err)
	}
	return nil
}

