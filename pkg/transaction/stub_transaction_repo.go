package transaction

import (
	"context"
	"sort"
	"time"

	"github.com/RichardMcSorley/breather/internal/utils"
)

type StubTransactionRepo struct {
	nextId int
	data   map[int]Transaction
}

func NewStubTransactionRepo() *StubTransactionRepo {
	return &StubTransactionRepo{data: map[int]Transaction{}}
}

func (s *StubTransactionRepo) Store(ctx context.Context, userId int, transaction Transaction) (int, error) {
	s.nextId++
	transaction.Id = s.nextId
	s.data[transaction.Id] = transaction
	return transaction.Id, nil
}

func (s *StubTransactionRepo) Get(ctx context.Context, userId int, id int) (Transaction, error) {
	transaction, ok := s.data[id]
	if !ok {
		return Transaction{}, ErrTransactionNotFound
	}
	return transaction, nil
}

func (s *StubTransactionRepo) GetInRange(ctx context.Context, userId int, from, to time.Time) ([]Transaction, error) {
	transactions := make([]Transaction, 0)
	for _, t := range s.data {
		if utils.InRange(t.Date, from, to) {
			transactions = append(transactions, t)
		}
	}
	sort.Slice(transactions, func(i, j int) bool {
		return transactions[i].Id < transactions[j].Id
	})
	return transactions, nil
}

func (s *StubTransactionRepo) Update(ctx context.Context, userId int, transaction Transaction) (bool, error) {
	if _, ok := s.data[transaction.Id]; !ok {
		return false, nil
	}
	s.data[transaction.Id] = transaction
	return true, nil
}

func (s *StubTransactionRepo) Delete(ctx context.Context, userId int, id int) (bool, error) {
	if _, ok := s.data[id]; !ok {
		return false, nil
	}
	delete(s.data, id)
	return true, nil
}

func (s *StubTransactionRepo) Cleanup() {
	s.data = map[int]Transaction{}
}
