package settings

import "context"

type StubSettingsRepo struct {
	data map[int]Settings
}

func NewStubSettingsRepo() *StubSettingsRepo {
	return &StubSettingsRepo{data: map[int]Settings{}}
}

func (s *StubSettingsRepo) Get(ctx context.Context, userId int) (Settings, error) {
	settings, ok := s.data[userId]
	if !ok {
		return Settings{}, ErrSettingsNotFound
	}
	return settings, nil
}

func (s *StubSettingsRepo) Store(ctx context.Context, userId int, settings Settings) error {
	s.data[userId] = settings
	return nil
}

func (s *StubSettingsRepo) Cleanup() {
	s.data = map[int]Settings{}
}
