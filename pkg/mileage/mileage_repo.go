package mileage

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	log "github.com/sirupsen/logrus"
)

var ErrEntryNotFound = errors.New("mileage entry not found")

type Repository interface {
	Store(ctx context.Context, userId int, entry Entry) (int, error)
	GetInRange(ctx context.Context, userId int, from, to time.Time) ([]Entry, error)
	Delete(ctx context.Context, userId int, id int) (bool, error)
}

type RepositoryImpl struct {
	db *pgxpool.Pool
}

func NewMileageRepo(db *pgxpool.Pool) *RepositoryImpl {
	return &RepositoryImpl{db: db}
}

func (r *RepositoryImpl) Store(ctx context.Context, userId int, entry Entry) (int, error) {
	query := `INSERT INTO mileage_entry (odometer, date, classification, user_id) VALUES ($1, $2, $3, $4) RETURNING id`
	var id int
	err := r.db.QueryRow(ctx, query, entry.Odometer, entry.Date, string(entry.Classification), userId).Scan(&id)
	if err != nil {
		err := fmt.Errorf("could not store mileage entry: %w", err)
		log.Error(err)
		return 0, err
	}
	return id, nil
}

func (r *RepositoryImpl) GetInRange(ctx context.Context, userId int, from, to time.Time) ([]Entry, error) {
	query := `SELECT id, odometer, date, classification FROM mileage_entry
				WHERE user_id = $1 AND date BETWEEN $2 AND $3 ORDER BY date, id`
	rows, err := r.db.Query(ctx, query, userId, from, to)
	if err != nil {
		err := fmt.Errorf("could not query mileage entries: %w", err)
		log.Error(err)
		return nil, err
	}
	entries, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (Entry, error) {
		var e Entry
		var classification string
		err := row.Scan(&e.Id, &e.Odometer, &e.Date, &classification)
		e.Classification = Classification(classification)
		return e, err
	})
	if err != nil {
		err := fmt.Errorf("could not scan mileage entries: %w", err)
		log.Error(err)
		return nil, err
	}
	return entries, nil
}

func (r *RepositoryImpl) Delete(ctx context.Context, userId int, id int) (bool, error) {
	result, err := r.db.Exec(ctx, "DELETE FROM mileage_entry WHERE id = $1 AND user_id = $2", id, userId)
	if err != nil {
		err := fmt.Errorf("could not delete mileage entry: %w", err)
		log.Error(err)
		return false, err
	}
	return result.RowsAffected() == 1, nil
}
