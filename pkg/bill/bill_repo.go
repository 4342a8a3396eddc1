package bill

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	log "github.com/sirupsen/logrus"
)

var ErrBillNotFound = errors.New("bill not found")

type Repository interface {
	Store(ctx context.Context, userId int, bill Bill) (int, error)
	GetAll(ctx context.Context, userId int, includeInactive bool) ([]Bill, error)
	Get(ctx context.Context, userId int, billId int) (Bill, error)
	Update(ctx context.Context, userId int, bill Bill) (bool, error)
	Delete(ctx context.Context, userId int, billId int) (bool, error)
}

type RepositoryImpl struct {
	db *pgxpool.Pool
}

func NewBillRepo(db *pgxpool.Pool) *RepositoryImpl {
	return &RepositoryImpl{db: db}
}

func (r *RepositoryImpl) Store(ctx context.Context, userId int, bill Bill) (int, error) {
	query := `INSERT INTO bill (
                    name,
                    amount,
                    due_date,
                    use_in_plan,
                    is_active,
                    user_id
				) VALUES ($1, $2, $3, $4, $5, $6) RETURNING id`

	var id int
	err := r.db.QueryRow(ctx, query,
		bill.Name,
		bill.Amount,
		bill.DueDate,
		bill.UseInPlan,
		bill.IsActive,
		userId,
	).Scan(&id)
	if err != nil {
		err := fmt.Errorf("could not store bill: %w", err)
		log.Error(err)
		return 0, err
	}
	return id, nil
}

func (r *RepositoryImpl) GetAll(ctx context.Context, userId int, includeInactive bool) ([]Bill, error) {
	query := `SELECT id, name, amount, due_date, use_in_plan, is_active
				FROM bill WHERE user_id = $1 AND (is_active OR $2) ORDER BY due_date, name`
	rows, err := r.db.Query(ctx, query, userId, includeInactive)
	if err != nil {
		err := fmt.Errorf("could not query bills: %w", err)
		log.Error(err)
		return nil, err
	}
	defer rows.Close()

	bills := make([]Bill, 0)
	for rows.Next() {
		var bill Bill
		if err := rows.Scan(
			&bill.Id,
			&bill.Name,
			&bill.Amount,
			&bill.DueDate,
			&bill.UseInPlan,
			&bill.IsActive,
		); err != nil {
			err := fmt.Errorf("could not scan bill: %w", err)
			log.Error(err)
			return nil, err
		}
		bills = append(bills, bill)
	}
	if err := rows.Err(); err != nil {
		err := fmt.Errorf("error iterating over rows: %w", err)
		log.Error(err)
		return nil, err
	}
	return bills, nil
}

func (r *RepositoryImpl) Get(ctx context.Context, userId int, billId int) (Bill, error) {
	query := `SELECT id, name, amount, due_date, use_in_plan, is_active FROM bill WHERE id = $1 AND user_id = $2`
	var bill Bill
	err := r.db.QueryRow(ctx, query, billId, userId).Scan(
		&bill.Id,
		&bill.Name,
		&bill.Amount,
		&bill.DueDate,
		&bill.UseInPlan,
		&bill.IsActive,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return Bill{}, ErrBillNotFound
	}
	if err != nil {
		err := fmt.Errorf("could not get bill: %w", err)
		log.Error(err)
		return Bill{}, err
	}
	return bill, nil
}

func (r *RepositoryImpl) Update(ctx context.Context, userId int, bill Bill) (bool, error) {
	query := `UPDATE bill SET
                  name = $1,
                  amount = $2,
                  due_date = $3,
                  use_in_plan = $4,
                  is_active = $5
              WHERE id = $6 AND user_id = $7`
	result, err := r.db.Exec(ctx, query,
		bill.Name,
		bill.Amount,
		bill.DueDate,
		bill.UseInPlan,
		bill.IsActive,
		bill.Id,
		userId,
	)
	if err != nil {
		err := fmt.Errorf("could not update bill: %w", err)
		log.Error(err)
		return false, err
	}
	return result.RowsAffected() == 1, nil
}

func (r *RepositoryImpl) Delete(ctx context.Context, userId int, billId int) (bool, error) {
	query := "DELETE FROM bill WHERE id = $1 AND user_id = $2"
	result, err := r.db.Exec(ctx, query, billId, userId)
	if err != nil {
		err := fmt.Errorf("could not delete bill: %w", err)
		log.Error(err)
		return false, err
	}
	return result.RowsAffected() == 1, nil
}
