package settings

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	log "github.com/sirupsen/logrus"
)

var ErrSettingsNotFound = errors.New("settings not found")

type Repository interface {
	Get(ctx context.Context, userId int) (Settings, error)
	Store(ctx context.Context, userId int, settings Settings) error
}

type RepositoryImpl struct {
	db *pgxpool.Pool
}

func NewSettingsRepo(db *pgxpool.Pool) *RepositoryImpl {
	return &RepositoryImpl{db: db}
}

func (r *RepositoryImpl) Get(ctx context.Context, userId int) (Settings, error) {
	var settings Settings
	err := r.db.QueryRow(ctx, "SELECT irs_mileage_deduction FROM user_settings WHERE user_id = $1", userId).
		Scan(&settings.IrsMileageDeduction)
	if errors.Is(err, pgx.ErrNoRows) {
		return Settings{}, ErrSettingsNotFound
	}
	if err != nil {
		err := fmt.Errorf("could not get settings: %w", err)
		log.Error(err)
		return Settings{}, err
	}
	return settings, nil
}

func (r *RepositoryImpl) Store(ctx context.Context, userId int, settings Settings) error {
	query := `INSERT INTO user_settings (user_id, irs_mileage_deduction) VALUES ($1, $2)
				ON CONFLICT (user_id) DO UPDATE SET irs_mileage_deduction = EXCLUDED.irs_mileage_deduction`
	_, err := r.db.Exec(ctx, query, userId, settings.IrsMileageDeduction)
	if err != nil {
		err := fmt.Errorf("could not store settings: %w", err)
		log.Error(err)
		return err
	}
	return nil
}
