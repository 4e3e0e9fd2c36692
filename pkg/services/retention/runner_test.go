package retention

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/unsovich/BBDashboard/pkg/models/store"
)

type mockSnapshots struct {
	mock.Mock
}

func (m *mockSnapshots) Save(ctx context.Context, records []store.ObservationRecord) (*store.Snapshot, error) {
	args := m.Called(ctx, records)
	return args.Get(0).(*store.Snapshot), args.Error(1)
}

func (m *mockSnapshots) Latest(ctx context.Context) (*store.Snapshot, error) {
	args := m.Called(ctx)
	return args.Get(0).(*store.Snapshot), args.Error(1)
}

func (m *mockSnapshots) Prune(ctx context.Context, keep int) (int64, error) {
	args := m.Called(ctx, keep)
	return args.Get(0).(int64), args.Error(1)
}

func TestNewRunner_Defaults(t *testing.T) {
	r := NewRunner(&mockSnapshots{}, RunnerConfig{})
	assert.Equal(t, DefaultRunnerConfig(), r.config)
}

func TestRunner_PrunesUntilCancelled(t *testing.T) {
	snapshots := &mockSnapshots{}
	snapshots.On("Prune", mock.Anything, 3).Return(int64(2), nil).Once()
	snapshots.On("Prune", mock.Anything, 3).Return(int64(0), errors.New("locked")).Maybe()

	r := NewRunner(snapshots, RunnerConfig{Keep: 3, Interval: 10 * time.Millisecond})
	ctx, cancel := context.WithCancel(context.Background())
	go r.Run(ctx)

	select {
	case p := <-r.Progress():
		assert.Equal(t, int64(2), p.Removed)
	case <-time.After(2 * time.Second):
		t.Fatal("no progress reported")
	}

	cancel()
	select {
	case <-r.Done():
	case <-time.After(2 * time.Second):
		t.Fatal("runner did not stop")
	}

	snapshots.AssertCalled(t, "Prune", mock.Anything, 3)
}

func TestRunner_StopsOnCancelledContext(t *testing.T) {
	snapshots := &mockSnapshots{}
	snapshots.On("Prune", mock.Anything, 20).Return(int64(0), nil)

	r := NewRunner(snapshots, RunnerConfig{})
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	r.Run(ctx)

	_, open := <-r.Progress()
	require.False(t, open)
	snapshots.AssertNumberOfCalls(t, "Prune", 1)
}
