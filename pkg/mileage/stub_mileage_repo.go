package mileage

import (
	"context"
	"sort"
	"time"

	"github.com/RichardMcSorley/breather/internal/utils"
)

type StubMileageRepo struct {
	nextId int
	data   map[int]Entry
}

func NewStubMileageRepo() *StubMileageRepo {
	return &StubMileageRepo{data: map[int]Entry{}}
}

func (s *StubMileageRepo) Store(ctx context.Context, userId int, entry Entry) (int, error) {
	s.nextId++
	entry.Id = s.nextId
	s.data[entry.Id] = entry
	return entry.Id, nil
}

func (s *StubMileageRepo) GetInRange(ctx context.Context, userId int, from, to time.Time) ([]Entry, error) {
	entries := make([]Entry, 0)
	for _, e := range s.data {
		if utils.InRange(e.Date, from, to) {
			entries = append(entries, e)
		}
	}
	sort.Slice(entries, func(i, j int) bool {
		if !entries[i].Date.Equal(entries[j].Date) {
			return entries[i].Date.Before(entries[j].Date)
		}
		return entries[i].Id < entries[j].Id
	})
	return entries, nil
}

func (s *StubMileageRepo) Delete(ctx context.Context, userId int, id int) (bool, error) {
	if _, ok := s.data[id]; !ok {
		return false, nil
	}
	delete(s.data, id)
	return true, nil
}

func (s *StubMileageRepo) Cleanup() {
	s.data = map[int]Entry{}
}
