package db

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/udisondev/tankarena/internal/game/battle"
	"github.com/udisondev/tankarena/internal/model"
)

// ResultRepository stores finished battle rounds.
type ResultRepository struct {
	db *pgxpool.Pool
}

var _ battle.ResultRecorder = (*ResultRepository)(nil)

// NewResultRepository creates a ResultRepository.
func NewResultRepository(db *pgxpool.Pool) *ResultRepository {
	return &ResultRepository{db: db}
}

// RecordResult stores a round and its standings in one transaction.
func (r *ResultRepository) RecordResult(ctx context.Context, round battle.FinishedRound) error {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction for battle %s: %w", round.BattleID, err)
	}
	defer func() {
		if err := tx.Rollback(ctx); err != nil && !errors.Is(err, pgx.ErrTxClosed) {
			slog.Error("rollback failed", "battle", round.BattleID, "error", err)
		}
	}()

	var id int64
	err = tx.QueryRow(ctx,
		`INSERT INTO battle_results (battle_id, map_id, mode, reason, red_score, blue_score, finished_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7)
		 RETURNING id`,
		round.BattleID, round.MapID, int16(round.Mode), round.Reason,
		round.RedScore, round.BlueScore, round.FinishedAt,
	).Scan(&id)
	if err != nil {
		return fmt.Errorf("insert result of battle %s: %w", round.BattleID, err)
	}

	batch := &pgx.Batch{}
	for i, s := range round.Standings {
		batch.Queue(
			`INSERT INTO battle_result_players (result_id, position, username, team, score, kills, deaths)
			 VALUES ($1, $2, $3, $4, $5, $6, $7)`,
			id, i+1, s.User, int16(s.Team), s.Score, s.Kills, s.Deaths,
		)
	}
	if batch.Len() > 0 {
		if err := tx.SendBatch(ctx, batch).Close(); err != nil {
			return fmt.Errorf("insert standings of battle %s: %w", round.BattleID, err)
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit result of battle %s: %w", round.BattleID, err)
	}
	return nil
}

// Recent returns up to limit latest rounds of a battle, newest first.
func (r *ResultRepository) Recent(ctx context.Context, battleID string, limit int) ([]battle.FinishedRound, error) {
	rows, err := r.db.Query(ctx,
		`SELECT id, battle_id, map_id, mode, reason, red_score, blue_score, finished_at
		 FROM battle_results
		 WHERE battle_id = $1
		 ORDER BY finished_at DESC, id DESC
		 LIMIT $2`, battleID, limit,
	)
	if err != nil {
		return nil, fmt.Errorf("query results of battle %s: %w", battleID, err)
	}

	var (
		ids    []int64
		rounds []battle.FinishedRound
	)
	for rows.Next() {
		var (
			id    int64
			mode  int16
			round battle.FinishedRound
		)
		if err := rows.Scan(&id, &round.BattleID, &round.MapID, &mode, &round.Reason,
			&round.RedScore, &round.BlueScore, &round.FinishedAt); err != nil {
			rows.Close()
			return nil, fmt.Errorf("scanning result row: %w", err)
		}
		round.Mode = model.Mode(mode)
		ids = append(ids, id)
		rounds = append(rounds, round)
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating result rows: %w", err)
	}

	for i, id := range ids {
		standings, err := r.standings(ctx, id)
		if err != nil {
			return nil, err
		}
		rounds[i].Standings = standings
	}
	return rounds, nil
}

func (r *ResultRepository) standings(ctx context.Context, resultID int64) ([]battle.UserStat, error) {
	rows, err := r.db.Query(ctx,
		`SELECT username, team, score, kills, deaths
		 FROM battle_result_players
		 WHERE result_id = $1
		 ORDER BY position`, resultID,
	)
	if err != nil {
		return nil, fmt.Errorf("query standings of result %d: %w", resultID, err)
	}
	defer rows.Close()

	var out []battle.UserStat
	for rows.Next() {
		var (
			s    battle.UserStat
			team int16
		)
		if err := rows.Scan(&s.User, &team, &s.Score, &s.Kills, &s.Deaths); err != nil {
			return nil, fmt.Errorf("scanning standing row: %w", err)
		}
		s.Team = model.Team(team)
		out = append(out, s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating standing rows: %w", err)
	}
	return out, nil
}
