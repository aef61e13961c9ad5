package worker

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/xavierca1/nhfg-leads/internal/mocks"
)

func TestSweepReportsMarkedRows(t *testing.T) {
	repo := new(mocks.IntegrationLogRepository)
	repo.On("FailStalePending", mock.Anything, 30*time.Minute, StaleReason).Return([]string{"a", "b"}, nil)

	core, logs := observer.New(zapcore.InfoLevel)
	w := NewStaleIngestionWorker(repo, 30*time.Minute, time.Minute, zap.New(core))

	assert.Equal(t, []string{"a", "b"}, w.Sweep(context.Background()))
	entries := logs.FilterMessage("marked stale ingestions as failed").All()
	if assert.Len(t, entries, 1) {
		assert.EqualValues(t, 2, entries[0].ContextMap()["count"])
	}
}

func TestSweepLogsStoreErrors(t *testing.T) {
	repo := new(mocks.IntegrationLogRepository)
	repo.On("FailStalePending", mock.Anything, mock.Anything, mock.Anything).Return(nil, errors.New("connection refused"))

	core, logs := observer.New(zapcore.InfoLevel)
	w := NewStaleIngestionWorker(repo, time.Minute, time.Minute, zap.New(core))

	assert.Empty(t, w.Sweep(context.Background()))
	assert.Equal(t, 1, logs.FilterMessage("stale ingestion sweep failed").Len())
}

func TestStartSweepsImmediatelyAndStops(t *testing.T) {
	repo := new(mocks.IntegrationLogRepository)
	swept := make(chan struct{}, 1)
	repo.On("FailStalePending", mock.Anything, mock.Anything, mock.Anything).
		Run(func(mock.Arguments) {
			select {
			case swept <- struct{}{}:
			default:
			}
		}).
		Return([]string{}, nil)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		NewStaleIngestionWorker(repo, time.Minute, time.Hour, nil).Start(ctx)
		close(done)
	}()

	select {
	case <-swept:
	case <-time.After(time.Second):
		t.Fatal("no sweep on start")
	}
	cancel()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("worker did not stop after cancel")
	}
}
