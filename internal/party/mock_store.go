package party

import (
	"context"
	"time"

	"github.com/stretchr/testify/mock"
)

type MockStore struct {
	mock.Mock
}

func (m *MockStore) CreateParty(ctx context.Context, hostID string) (*Party, error) {
	args := m.Called(ctx, hostID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*Party), args.Error(1)
}

func (m *MockStore) GetParty(ctx context.Context, partyID string) (*Party, error) {
	args := m.Called(ctx, partyID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*Party), args.Error(1)
}

func (m *MockStore) SetStatus(ctx context.Context, partyID, callerID, status string) (*Party, error) {
	args := m.Called(ctx, partyID, callerID, status)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*Party), args.Error(1)
}

func (m *MockStore) SetCurrentTrack(ctx context.Context, partyID, callerID string, track Track, playbackAt time.Time) (*Party, error) {
	args := m.Called(ctx, partyID, callerID, track, playbackAt)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*Party), args.Error(1)
}

func (m *MockStore) ListQueue(ctx context.Context, partyID string) ([]QueueEntry, error) {
	args := m.Called(ctx, partyID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]QueueEntry), args.Error(1)
}

func (m *MockStore) Enqueue(ctx context.Context, partyID string, track Track, addedBy *string) (*QueueEntry, error) {
	args := m.Called(ctx, partyID, track, addedBy)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*QueueEntry), args.Error(1)
}

func (m *MockStore) RemoveQueueEntry(ctx context.Context, partyID, entryID string) error {
	args := m.Called(ctx, partyID, entryID)
	return args.Error(0)
}

func (m *MockStore) VoteQueueEntry(ctx context.Context, partyID, entryID string) (*QueueEntry, error) {
	args := m.Called(ctx, partyID, entryID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*QueueEntry), args.Error(1)
}

func (m *MockStore) Join(ctx context.Context, partyID, userID string) (*Participant, error) {
	args := m.Called(ctx, partyID, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*Participant), args.Error(1)
}

func (m *MockStore) Leave(ctx context.Context, partyID, userID string) error {
	args := m.Called(ctx, partyID, userID)
	return args.Error(0)
}

func (m *MockStore) ListParticipants(ctx context.Context, partyID string) ([]Participant, error) {
	args := m.Called(ctx, partyID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]Participant), args.Error(1)
}
