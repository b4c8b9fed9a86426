package cron

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestRunRecordsStatus(t *testing.T) {
	s := New(nil)
	var calls atomic.Int32
	s.Register(Job{Name: "ok", Interval: time.Hour, Fn: func(context.Context) error {
		calls.Add(1)
		return nil
	}})
	s.Register(Job{Name: "broken", Interval: time.Hour, Fn: func(context.Context) error {
		return errors.New("boom")
	}})

	require.NoError(t, s.Run(context.Background(), "ok"))
	require.EqualError(t, s.Run(context.Background(), "broken"), "boom")
	require.Error(t, s.Run(context.Background(), "missing"))

	states := s.List()
	require.Len(t, states, 2)
	require.Equal(t, "broken", states[0].Name)
	require.Equal(t, StatusReject, states[0].Status)
	require.Equal(t, "boom", states[0].Message)
	require.Equal(t, StatusFulfill, states[1].Status)
	require.NotNil(t, states[1].LastRunAt)
	require.Equal(t, int32(1), calls.Load())
}

func TestStartRunsOnInterval(t *testing.T) {
	s := New(nil)
	ran := make(chan struct{}, 4)
	s.Register(Job{Name: "tick", Interval: 10 * time.Millisecond, Fn: func(context.Context) error {
		select {
		case ran <- struct{}{}:
		default:
		}
		return nil
	}})

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	s.Start(ctx)

	for i := 0; i < 2; i++ {
		select {
		case <-ran:
		case <-time.After(2 * time.Second):
			t.Fatal("job did not run")
		}
	}
}
