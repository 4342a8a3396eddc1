package bill_payment

import (
	"context"
	"sort"
	"time"

	"github.com/RichardMcSorley/breather/internal/utils"
)

type StubBillPaymentRepo struct {
	nextId int
	data   map[int]BillPayment
}

func NewStubBillPaymentRepo() *StubBillPaymentRepo {
	return &StubBillPaymentRepo{data: map[int]BillPayment{}}
}

func (s *StubBillPaymentRepo) Store(ctx context.Context, userId int, payment BillPayment) (int, error) {
	s.nextId++
	payment.Id = s.nextId
	s.data[payment.Id] = payment
	return payment.Id, nil
}

func (s *StubBillPaymentRepo) GetForBill(ctx context.Context, userId int, billId int) ([]BillPayment, error) {
	return s.filter(func(p BillPayment) bool { return p.BillId == billId }), nil
}

func (s *StubBillPaymentRepo) GetInRange(ctx context.Context, userId int, from, to time.Time) ([]BillPayment, error) {
	return s.filter(func(p BillPayment) bool { return utils.InRange(p.PaymentDate, from, to) }), nil
}

func (s *StubBillPaymentRepo) Delete(ctx context.Context, userId int, billId int, paymentId int) (bool, error) {
	p, ok := s.data[paymentId]
	if !ok || p.BillId != billId {
		return false, nil
	}
	delete(s.data, paymentId)
	return true, nil
}

func (s *StubBillPaymentRepo) filter(keep func(BillPayment) bool) []BillPayment {
	payments := make([]BillPayment, 0)
	for _, p := range s.data {
		if keep(p) {
			payments = append(payments, p)
		}
	}
	sort.Slice(payments, func(i, j int) bool {
		return payments[i].Id < payments[j].Id
	})
	return payments
}

func (s *StubBillPaymentRepo) Cleanup() {
	s.data = map[int]BillPayment{}
}
