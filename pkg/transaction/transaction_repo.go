package transaction

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	log "github.com/sirupsen/logrus"
)

var ErrTransactionNotFound = errors.New("transaction not found")

type Repository interface {
	Store(ctx context.Context, userId int, transaction Transaction) (int, error)
	Get(ctx context.Context, userId int, id int) (Transaction, error)
	GetInRange(ctx context.Context, userId int, from, to time.Time) ([]Transaction, error)
	Update(ctx context.Context, userId int, transaction Transaction) (bool, error)
	Delete(ctx context.Context, userId int, id int) (bool, error)
}

type RepositoryImpl struct {
	db *pgxpool.Pool
}

func NewTransactionRepo(db *pgxpool.Pool) *RepositoryImpl {
	return &RepositoryImpl{db: db}
}

func (r *RepositoryImpl) Store(ctx context.Context, userId int, transaction Transaction) (int, error) {
	query := `INSERT INTO transaction (amount, type, date, time, is_bill, tag, user_id)
				VALUES ($1, $2, $3, $4, $5, $6, $7) RETURNING id`
	var id int
	err := r.db.QueryRow(ctx, query,
		transaction.Amount,
		string(transaction.Type),
		transaction.Date,
		transaction.Time,
		transaction.IsBill,
		transaction.Tag,
		userId,
	).Scan(&id)
	if err != nil {
		err := fmt.Errorf("could not store transaction: %w", err)
		log.Error(err)
		return 0, err
	}
	return id, nil
}

func (r *RepositoryImpl) Get(ctx context.Context, userId int, id int) (Transaction, error) {
	query := `SELECT id, amount, type, date, time, is_bill, tag FROM transaction WHERE id = $1 AND user_id = $2`
	rows, err := r.db.Query(ctx, query, id, userId)
	if err != nil {
		err := fmt.Errorf("could not get transaction: %w", err)
		log.Error(err)
		return Transaction{}, err
	}
	transaction, err := pgx.CollectExactlyOneRow(rows, scanTransaction)
	if errors.Is(err, pgx.ErrNoRows) {
		return Transaction{}, ErrTransactionNotFound
	}
	if err != nil {
		err := fmt.Errorf("could not scan transaction: %w", err)
		log.Error(err)
		return Transaction{}, err
	}
	return transaction, nil
}

func (r *RepositoryImpl) GetInRange(ctx context.Context, userId int, from, to time.Time) ([]Transaction, error) {
	query := `SELECT id, amount, type, date, time, is_bill, tag FROM transaction
				WHERE user_id = $1 AND date BETWEEN $2 AND $3 ORDER BY date, time, id`
	rows, err := r.db.Query(ctx, query, userId, from, to)
	if err != nil {
		err := fmt.Errorf("could not query transactions: %w", err)
		log.Error(err)
		return nil, err
	}
	transactions, err := pgx.CollectRows(rows, scanTransaction)
	if err != nil {
		err := fmt.Errorf("could not scan transactions: %w", err)
		log.Error(err)
		return nil, err
	}
	return transactions, nil
}

func (r *RepositoryImpl) Update(ctx context.Context, userId int, transaction Transaction) (bool, error) {
	query := `UPDATE transaction SET
                  amount = $1,
                  type = $2,
                  date = $3,
                  time = $4,
                  is_bill = $5,
                  tag = $6
              WHERE id = $7 AND user_id = $8`
	result, err := r.db.Exec(ctx, query,
		transaction.Amount,
		string(transaction.Type),
		transaction.Date,
		transaction.Time,
		transaction.IsBill,
		transaction.Tag,
		transaction.Id,
		userId,
	)
	if err != nil {
		err := fmt.Errorf("could not update transaction: %w", err)
		log.Error(err)
		return false, err
	}
	return result.RowsAffected() == 1, nil
}

func (r *RepositoryImpl) Delete(ctx context.Context, userId int, id int) (bool, error) {
	result, err := r.db.Exec(ctx, "DELETE FROM transaction WHERE id = $1 AND user_id = $2", id, userId)
	if err != nil {
		err := fmt.Errorf("could not delete transaction: %w", err)
		log.Error(err)
		return false, err
	}
	return result.RowsAffected() == 1, nil
}

func scanTransaction(row pgx.CollectableRow) (Transaction, error) {
	var t Transaction
	var transactionType string
	err := row.Scan(&t.Id, &t.Amount, &transactionType, &t.Date, &t.Time, &t.IsBill, &t.Tag)
	t.Type = Type(transactionType)
	return t, err
}
