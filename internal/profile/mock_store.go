package profile

import (
	"context"

	"github.com/stretchr/testify/mock"
)

type MockStore struct {
	mock.Mock
}

func (m *MockStore) GetProfile(ctx context.Context, userID string) (*Profile, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*Profile), args.Error(1)
}

func (m *MockStore) CreateProfile(ctx context.Context, userID, username string) (*Profile, error) {
	args := m.Called(ctx, userID, username)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*Profile), args.Error(1)
}

func (m *MockStore) UpdateProfile(ctx context.Context, userID string, req UpdateProfileRequest) (*Profile, error) {
	args := m.Called(ctx, userID, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*Profile), args.Error(1)
}

func (m *MockStore) SetPreferences(ctx context.Context, userID, kind string, ids []string) error {
	args := m.Called(ctx, userID, kind, ids)
	return args.Error(0)
}

func (m *MockStore) GetGenreNames(ctx context.Context, userID string) ([]string, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]string), args.Error(1)
}

func (m *MockStore) ListGenres(ctx context.Context) ([]TaxonomyItem, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]TaxonomyItem), args.Error(1)
}

func (m *MockStore) ListVibes(ctx context.Context) ([]TaxonomyItem, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]TaxonomyItem), args.Error(1)
}

func (m *MockStore) ListSoundscapes(ctx context.Context) ([]TaxonomyItem, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]TaxonomyItem), args.Error(1)
}

func (m *MockStore) ListArtists(ctx context.Context) ([]Artist, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]Artist), args.Error(1)
}
