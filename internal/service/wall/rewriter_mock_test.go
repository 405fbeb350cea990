package wall

import (
	"context"
	"sync"

	"github.com/heartmarshall/wall-backend/internal/domain"
)

var _ rewriter = &rewriterMock{}

type rewriterMock struct {
	RewriteFunc func(ctx context.Context, draft domain.Draft) (string, error)

	calls struct {
		Rewrite []struct {
			Ctx   context.Context
			Draft domain.Draft
		}
	}
	lockRewrite sync.RWMutex
}

func (mock *rewriterMock) Rewrite(ctx context.Context, draft domain.Draft) (string, error) {
	if mock.RewriteFunc == nil {
		panic("rewriterMock.RewriteFunc: method is nil but rewriter.Rewrite was just called")
	}
	callInfo := struct {
		Ctx   context.Context
		Draft domain.Draft
	}{Ctx: ctx, Draft: draft}
	mock.lockRewrite.Lock()
	mock.calls.Rewrite = append(mock.calls.Rewrite, callInfo)
	mock.lockRewrite.Unlock()
	return mock.RewriteFunc(ctx, draft)
}

func (mock *rewriterMock) RewriteCalls() []struct {
	Ctx   context.Context
	Draft domain.Draft
} {
	mock.lockRewrite.RLock()
	calls := mock.calls.Rewrite
	mock.lockRewrite.RUnlock()
	return calls
}
