package sideeffect

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"tailorshop/internal/domain"
	"tailorshop/internal/logger"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type mockStore struct {
	mock.Mock
	mu     sync.Mutex
	audits []domain.AuditLog
}

func (m *mockStore) InsertAudit(ctx context.Context, entry *domain.AuditLog) error {
	args := m.Called(ctx, entry)
	m.mu.Lock()
	m.audits = append(m.audits, *entry)
	m.mu.Unlock()
	return args.Error(0)
}

func (m *mockStore) InsertNotification(ctx context.Context, n *domain.Notification) error {
	args := m.Called(ctx, n)
	return args.Error(0)
}

func TestDispatcher_WritesAndDrains(t *testing.T) {
	store := new(mockStore)
	store.On("InsertAudit", mock.Anything, mock.Anything).Return(nil)
	store.On("InsertNotification", mock.Anything, mock.Anything).Return(errors.New("table missing"))

	d := NewDispatcher(store, 16)
	ctx, _ := logger.ContextWithLogger(context.Background(), "req-42")
	for i := 0; i < 5; i++ {
		d.Audit(ctx, domain.AuditLog{Action: "create", ResourceType: "orders"})
	}
	d.Notify(ctx, domain.Notification{UserID: 3, Type: "task_assigned", Title: "New task"})

	closeCtx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	require.NoError(t, d.Close(closeCtx))

	store.AssertNumberOfCalls(t, "InsertAudit", 5)
	store.AssertNumberOfCalls(t, "InsertNotification", 1)
	assert.Equal(t, "req-42", store.audits[0].RequestID)
	assert.False(t, store.audits[0].CreatedAt.IsZero())

	// after close entries are dropped, not panicking on a closed channel
	d.Audit(ctx, domain.AuditLog{Action: "late"})
	store.AssertNumberOfCalls(t, "InsertAudit", 5)
}

type blockingStore struct {
	release chan struct{}
}

func (b *blockingStore) InsertAudit(ctx context.Context, _ *domain.AuditLog) error {
	<-b.release
	return nil
}

func (b *blockingStore) InsertNotification(context.Context, *domain.Notification) error {
	return nil
}

func TestDispatcher_FullQueueDoesNotBlock(t *testing.T) {
	store := &blockingStore{release: make(chan struct{})}
	d := NewDispatcher(store, 1)

	done := make(chan struct{})
	go func() {
		for i := 0; i < 10; i++ {
			d.Audit(context.Background(), domain.AuditLog{Action: "create"})
		}
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("enqueue blocked on a full queue")
	}
	close(store.release)
	require.NoError(t, d.Close(context.Background()))
}

func TestInline_SwallowsErrors(t *testing.T) {
	store := new(mockStore)
	store.On("InsertAudit", mock.Anything, mock.Anything).Return(errors.New("boom"))

	assert.NotPanics(t, func() {
		Inline{Store: store}.Audit(context.Background(), domain.AuditLog{Action: "delete"})
	})
	store.AssertExpectations(t)
}
