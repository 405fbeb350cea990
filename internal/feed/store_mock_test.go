package feed

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/heartmarshall/wall-backend/internal/domain"
)

var _ Store = &storeMock{}

type storeMock struct {
	CreateFunc      func(ctx context.Context, draft domain.Draft) (domain.Note, error)
	ListFunc        func(ctx context.Context, cursor *time.Time, limit int) (domain.NotePage, error)
	UpdateLikesFunc func(ctx context.Context, id uuid.UUID, likes int) (domain.Note, error)
	DeleteFunc      func(ctx context.Context, id uuid.UUID) error

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
		Delete []struct {
			Ctx context.Context
			ID  uuid.UUID
		}
	}
	lockCreate      sync.RWMutex
	lockList        sync.RWMutex
	lockUpdateLikes sync.RWMutex
	lockDelete      sync.RWMutex
}

func (mock *storeMock) Create(ctx context.Context, draft domain.Draft) (domain.Note, error) {
	if mock.CreateFunc == nil {
		panic("storeMock.CreateFunc: method is nil but Store.Create was just called")
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

func (mock *storeMock) CreateCalls() []struct {
	Ctx   context.Context
	Draft domain.Draft
} {
	mock.lockCreate.RLock()
	calls := mock.calls.Create
	mock.lockCreate.RUnlock()
	return calls
}

func (mock *storeMock) List(ctx context.Context, cursor *time.Time, limit int) (domain.NotePage, error) {
	if mock.ListFunc == nil {
		panic("storeMock.ListFunc: method is nil but Store.List was just called")
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

func (mock *storeMock) ListCalls() []struct {
	Ctx    context.Context
	Cursor *time.Time
	Limit  int
} {
	mock.lockList.RLock()
	calls := mock.calls.List
	mock.lockList.RUnlock()
	return calls
}

func (mock *storeMock) UpdateLikes(ctx context.Context, id uuid.UUID, likes int) (domain.Note, error) {
	if mock.UpdateLikesFunc == nil {
		panic("storeMock.UpdateLikesFunc: method is nil but Store.UpdateLikes was just called")
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

func (mock *storeMock) UpdateLikesCalls() []struct {
	Ctx   context.Context
	ID    uuid.UUID
	Likes int
} {
	mock.lockUpdateLikes.RLock()
	calls := mock.calls.UpdateLikes
	mock.lockUpdateLikes.RUnlock()
	return calls
}

func (mock *storeMock) Delete(ctx context.Context, id uuid.UUID) error {
	if mock.DeleteFunc == nil {
		panic("storeMock.DeleteFunc: method is nil but Store.Delete was just called")
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

func (mock *storeMock) DeleteCalls() []struct {
	Ctx context.Context
	ID  uuid.UUID
} {
	mock.lockDelete.RLock()
	calls := mock.calls.Delete
	mock.lockDelete.RUnlock()
	return calls
}
