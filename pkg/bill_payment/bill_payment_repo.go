package bill_payment

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	log "github.com/sirupsen/logrus"
)

var ErrPaymentNotFound = errors.New("bill payment not found")

type Repository interface {
	Store(ctx context.Context, userId int, payment BillPayment) (int, error)
	GetForBill(ctx context.Context, userId int, billId int) ([]BillPayment, error)
	// GetInRange returns payments of all the user's bills dated within [from, to].
	GetInRange(ctx context.Context, userId int, from, to time.Time) ([]BillPayment, error)
	Delete(ctx context.Context, userId int, billId int, paymentId int) (bool, error)
}

type RepositoryImpl struct {
	db *pgxpool.Pool
}

func NewBillPaymentRepo(db *pgxpool.Pool) *RepositoryImpl {
	return &RepositoryImpl{db: db}
}

func (r *RepositoryImpl) Store(ctx context.Context, userId int, payment BillPayment) (int, error) {
	query := `INSERT INTO bill_payment (bill_id, amount, payment_date, notes, user_id)
				VALUES ($1, $2, $3, $4, $5) RETURNING id`
	var id int
	err := r.db.QueryRow(ctx, query,
		payment.BillId,
		payment.Amount,
		payment.PaymentDate,
		payment.Notes,
		userId,
	).Scan(&id)
	if err != nil {
		err := fmt.Errorf("could not store bill payment: %w", err)
		log.Error(err)
		return 0, err
	}
	return id, nil
}

func (r *RepositoryImpl) GetForBill(ctx context.Context, userId int, billId int) ([]BillPayment, error) {
	query := `SELECT id, bill_id, amount, payment_date, notes FROM bill_payment
				WHERE user_id = $1 AND bill_id = $2 ORDER BY payment_date DESC, id DESC`
	return r.query(ctx, query, userId, billId)
}

func (r *RepositoryImpl) GetInRange(ctx context.Context, userId int, from, to time.Time) ([]BillPayment, error) {
	query := `SELECT id, bill_id, amount, payment_date, notes FROM bill_payment
				WHERE user_id = $1 AND payment_date BETWEEN $2 AND $3 ORDER BY payment_date, id`
	return r.query(ctx, query, userId, from, to)
}

func (r *RepositoryImpl) query(ctx context.Context, query string, args ...any) ([]BillPayment, error) {
	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		err := fmt.Errorf("could not query bill payments: %w", err)
		log.Error(err)
		return nil, err
	}

	payments, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (BillPayment, error) {
		var p BillPayment
		err := row.Scan(&p.Id, &p.BillId, &p.Amount, &p.PaymentDate, &p.Notes)
		return p, err
	})
	if err != nil {
		err := fmt.Errorf("could not scan bill payments: %w", err)
		log.Error(err)
		return nil, err
	}
	return payments, nil
}

func (r *RepositoryImpl) Delete(ctx context.Context, userId int, billId int, paymentId int) (bool, error) {
	query := "DELETE FROM bill_payment WHERE id = $1 AND bill_id = $2 AND user_id = $3"
	result, err := r.db.Exec(ctx, query, paymentId, billId, userId)
	if err != nil {
		err := fmt.Errorf("could not delete bill payment: %w", err)
		log.Error(err)
		return false, err
	}
	return result.RowsAffected() == 1, nil
}
