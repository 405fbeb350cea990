package wall

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/heartmarshall/wall-backend/internal/domain"
)

var _ noteRepo = &noteRepoMock{}

type noteRepoMock struct {
	CreateFunc         func(ctx context.Context, draft domain.Draft) (domain.Note, error)
	ListFunc           func(ctx context.Context, cursor *time.Time, limit int) (domain.NotePage, error)
	UpdateLikesFunc    func(ctx context.Context, id uuid.UUID, likes int) (domain.Note, error)
	IncrementLikesFunc func(ctx context.Context, id uuid.UUID) (domain.Note, error)
	DeleteFunc         func(ctx context.Context, id uuid.UUID) error

	calls struct {
		Create []struct {
			Ctx   context.Context
			Draft domain.Draft
		}
		List []struct {
			Ctx    context.Context
			Cursor *time.Time
			Limit  int
		}
		UpdateLikes []struct {
			Ctx   context.Context
			ID    uuid.UUID
			Likes int
		}
		IncrementLikes []struct {
			Ctx context.Context
			ID  uuid.UUID
		}
		Delete []struct {
			Ctx context.Context
			ID  uuid.UUID
		}
	}
	lockCreate         sync.RWMutex
	lockList           sync.RWMutex
	lockUpdateLikes    sync.RWMutex
	lockIncrementLikes sync.RWMutex
	lockDelete         sync.RWMutex
}

func (mock *noteRepoMock) Create(ctx context.Context, draft domain.Draft) (domain.Note, error) {
	if mock.CreateFunc == nil {
		panic("noteRepoMock.CreateFunc: method is nil but noteRepo.Create was just called")
	}
	callInfo := struct {
		Ctx   context.Context
		Draft domain.Draft
	}{Ctx: ctx, Draft: draft}
	mock.lockCreate.Lock()
	mock.calls.Create = append(mock.calls.Create, callInfo)
	mock.lockCreate.Unlock()
	return mock.CreateFunc(ctx, draft)
}

func (mock *noteRepoMock) CreateCalls() []struct {
	Ctx   context.Context
	Draft domain.Draft
} {
	mock.lockCreate.RLock()
	calls := mock.calls.Create
	mock.lockCreate.RUnlock()
	return calls
}

func (mock *noteRepoMock) List(ctx context.Context, cursor *time.Time, limit int) (domain.NotePage, error) {
	if mock.ListFunc == nil {
		panic("noteRepoMock.ListFunc: method is nil but noteRepo.List was just called")
	}
	callInfo := struct {
		Ctx    context.Context
		Cursor *time.Time
		Limit  int
	}{Ctx: ctx, Cursor: cursor, Limit: limit}
	mock.lockList.Lock()
	mock.calls.List = append(mock.calls.List, callInfo)
	mock.lockList.Unlock()
	return mock.ListFunc(ctx, cursor, limit)
}

func (mock *noteRepoMock) ListCalls() []struct {
	Ctx    context.Context
	Cursor *time.Time
	Limit  int
} {
	mock.lockList.RLock()
	calls := mock.calls.List
	mock.lockList.RUnlock()
	return calls
}

func (mock *noteRepoMock) UpdateLikes(ctx context.Context, id uuid.UUID, likes int) (domain.Note, error) {
	if mock.UpdateLikesFunc == nil {
		panic("noteRepoMock.UpdateLikesFunc: method is nil but noteRepo.UpdateLikes was just called")
	}
	callInfo := struct {
		Ctx   context.Context
		ID    uuid.UUID
		Likes int
	}{Ctx: ctx, ID: id, Likes: likes}
	mock.lockUpdateLikes.Lock()
	mock.calls.UpdateLikes = append(mock.calls.UpdateLikes, callInfo)
	mock.lockUpdateLikes.Unlock()
	return mock.UpdateLikesFunc(ctx, id, likes)
}

func (mock *noteRepoMock) UpdateLikesCalls() []struct {
	Ctx   context.Context
	ID    uuid.UUID
	Likes int
} {
	mock.lockUpdateLikes.RLock()
	calls := mock.calls.UpdateLikes
	mock.lockUpdateLikes.RUnlock()
	return calls
}

func (mock *noteRepoMock) IncrementLikes(ctx context.Context, id uuid.UUID) (domain.Note, error) {
	if mock.IncrementLikesFunc == nil {
		panic("noteRepoMock.IncrementLikesFunc: method is nil but noteRepo.IncrementLikes was just called")
	}
	callInfo := struct {
		Ctx context.Context
		ID  uuid.UUID
	}{Ctx: ctx, ID: id}
	mock.lockIncrementLikes.Lock()
	mock.calls.IncrementLikes = append(mock.calls.IncrementLikes, callInfo)
	mock.lockIncrementLikes.Unlock()
	return mock.IncrementLikesFunc(ctx, id)
}

func (mock *noteRepoMock) IncrementLikesCalls() []struct {
	Ctx context.Context
	ID  uuid.UUID
} {
	mock.lockIncrementLikes.RLock()
	calls := mock.calls.IncrementLikes
	mock.lockIncrementLikes.RUnlock()
	return calls
}

func (mock *noteRepoMock) Delete(ctx context.Context, id uuid.UUID) error {
	if mock.DeleteFunc == nil {
		panic("noteRepoMock.DeleteFunc: method is nil but noteRepo.Delete was just called")
	}
	callInfo := struct {
		Ctx context.Context
		ID  uuid.UUID
	}{Ctx: ctx, ID: id}
	mock.lockDelete.Lock()
	mock.calls.Delete = append(mock.calls.Delete, callInfo)
	mock.lockDelete.Unlock()
	return mock.DeleteFunc(ctx, id)
}

func (mock *noteRepoMock) DeleteCalls() []struct {
	Ctx context.Context
	ID  uuid.UUID
} {
	mock.lockDelete.RLock()
	calls := mock.calls.Delete
	mock.lockDelete.RUnlock()
	return calls
}
