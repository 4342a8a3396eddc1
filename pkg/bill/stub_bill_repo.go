package bill

import (
	"context"
	"sort"
)

type StubBillRepo struct {
	nextId int
	data   map[int]Bill
	owners map[int]int
}

func NewStubBillRepo() *StubBillRepo {
	return &StubBillRepo{nextId: 2, data: map[int]Bill{}, owners: map[int]int{}}
}

func (s *StubBillRepo) Store(ctx context.Context, userId int, bill Bill) (int, error) {
	s.nextId++
	bill.Id = s.nextId
	s.data[bill.Id] = bill
	s.owners[bill.Id] = userId
	return bill.Id, nil
}

func (s *StubBillRepo) GetAll(ctx context.Context, userId int, includeInactive bool) ([]Bill, error) {
	bills := make([]Bill, 0, len(s.data))
	for id, bill := range s.data {
		if s.owners[id] == userId && (bill.IsActive || includeInactive) {
			bills = append(bills, bill)
		}
	}
	sort.Slice(bills, func(i, j int) bool {
		return bills[i].Id < bills[j].Id
	})
	return bills, nil
}

func (s *StubBillRepo) Get(ctx context.Context, userId int, billId int) (Bill, error) {
	bill, ok := s.data[billId]
	if !ok || s.owners[billId] != userId {
		return Bill{}, ErrBillNotFound
	}
	return bill, nil
}

func (s *StubBillRepo) Update(ctx context.Context, userId int, bill Bill) (bool, error) {
	if _, ok := s.data[bill.Id]; !ok || s.owners[bill.Id] != userId {
		return false, nil
	}
	s.data[bill.Id] = bill
	return true, nil
}

func (s *StubBillRepo) Delete(ctx context.Context, userId int, billId int) (bool, error) {
	if _, ok := s.data[billId]; !ok || s.owners[billId] != userId {
		return false, nil
	}
	delete(s.data, billId)
	delete(s.owners, billId)
	return true, nil
}

func (s *StubBillRepo) Cleanup() {
	s.data = map[int]Bill{}
	s.owners = map[int]int{}
}
