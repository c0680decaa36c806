// SPDX-License-Identifier: MIT

package engine

import (
	"context"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
	"golang.org/x/sync/errgroup"

	"github.com/titanx/halo/internal/session/model"
	"github.com/titanx/halo/internal/session/store"
)

const tolerance = 1e-9

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

func newEngine() *Engine {
	return New(store.NewStore())
}

func TestStartCreatesActiveSession(t *testing.T) {
	e := newEngine()

	res, err := e.Start(context.Background(), StartParams{
		SessionID: "s1",
		UserID:    "u1",
		Metadata:  model.Metadata{"source": "test"},
	})
	require.NoError(t, err)
	assert.Equal(t, "s1", res.SessionID)
	assert.Equal(t, "u1", res.UserID)

	rec, err := e.Store().Get("s1")
	require.NoError(t, err)
	assert.Equal(t, model.StateActive, rec.State)
}

func TestStartDuplicateFails(t *testing.T) {
	e := newEngine()
	ctx := context.Background()

	_, err := e.Start(ctx, StartParams{SessionID: "s1", UserID: "u1"})
	require.NoError(t, err)

	_, err = e.Start(ctx, StartParams{SessionID: "s1", UserID: "u2"})
	require.ErrorIs(t, err, store.ErrDuplicateSession)

	// Ended ids are never reused either.
	_, err = e.End(ctx, "s1", false)
	require.NoError(t, err)
	_, err = e.Start(ctx, StartParams{SessionID: "s1"})
	require.ErrorIs(t, err, store.ErrDuplicateSession)
}

func TestStartRejectsMalformedMetadata(t *testing.T) {
	e := newEngine()

	_, err := e.Start(context.Background(), StartParams{
		SessionID: "s1",
		Metadata:  model.Metadata{"bad": make(chan int)},
	})

	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, "metadata", verr.Field)

	// Nothing was created.
	_, err = e.Store().Get("s1")
	assert.ErrorIs(t, err, store.ErrSessionNotFound)
}

func TestRecordEventUnknownSession(t *testing.T) {
	e := newEngine()
	_, err := e.RecordEvent(context.Background(), EventParams{SessionID: "ghost"})
	require.ErrorIs(t, err, store.ErrSessionNotFound)
}

func TestRecordEventRollingSnapshot(t *testing.T) {
	e := newEngine()
	ctx := context.Background()

	_, err := e.Start(ctx, StartParams{SessionID: "s1", UserID: "u1"})
	require.NoError(t, err)

	res, err := e.RecordEvent(ctx, EventParams{
		SessionID:  "s1",
		EventType:  "focus_shift",
		Timestamp:  1710000000,
		Friction:   0.3,
		Hesitation: 0.4,
		Pace:       0.8,
	})
	require.NoError(t, err)

	assert.Equal(t, "s1", res.SessionID)
	assert.Equal(t, "focus_shift", res.EventType)
	assert.Equal(t, int64(1), res.Rolling.EventsCount)
	assert.InDelta(t, 0.3, res.Rolling.AverageFriction, tolerance)
	assert.InDelta(t, 0.4, res.Rolling.AverageHesitation, tolerance)
	assert.InDelta(t, 0.8, res.Rolling.AveragePace, tolerance)

	end, err := e.End(ctx, "s1", true)
	require.NoError(t, err)
	require.NotNil(t, end.Summary)
	assert.Equal(t, res.Rolling, *end.Summary)
}

func TestRecordEventAverageOfTwo(t *testing.T) {
	e := newEngine()
	ctx := context.Background()

	_, err := e.Start(ctx, StartParams{SessionID: "s1"})
	require.NoError(t, err)

	_, err = e.RecordEvent(ctx, EventParams{SessionID: "s1", Friction: 0.2})
	require.NoError(t, err)
	res, err := e.RecordEvent(ctx, EventParams{SessionID: "s1", Friction: 0.4})
	require.NoError(t, err)

	assert.InDelta(t, 0.3, res.Rolling.AverageFriction, tolerance)
}

func TestRecordEventRejectsNonFinite(t *testing.T) {
	e := newEngine()
	ctx := context.Background()

	_, err := e.Start(ctx, StartParams{SessionID: "s1"})
	require.NoError(t, err)

	tests := []struct {
		name   string
		params EventParams
		field  string
	}{
		{"nan friction", EventParams{SessionID: "s1", Friction: math.NaN()}, "friction"},
		{"inf hesitation", EventParams{SessionID: "s1", Hesitation: math.Inf(1)}, "hesitation"},
		{"neg inf pace", EventParams{SessionID: "s1", Pace: math.Inf(-1)}, "pace"},
		{"nan timestamp", EventParams{SessionID: "s1", Timestamp: math.NaN()}, "timestamp"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := e.RecordEvent(ctx, tt.params)
			var verr *ValidationError
			require.ErrorAs(t, err, &verr)
			assert.Equal(t, tt.field, verr.Field)
		})
	}

	// No rejected event poisoned the accumulator.
	rec, err := e.Store().Get("s1")
	require.NoError(t, err)
	assert.Equal(t, int64(0), rec.Accumulator.Count)
}

func TestRecordEventAfterEndRejected(t *testing.T) {
	e := newEngine()
	ctx := context.Background()

	_, err := e.Start(ctx, StartParams{SessionID: "s1"})
	require.NoError(t, err)
	_, err = e.RecordEvent(ctx, EventParams{SessionID: "s1", Friction: 0.5})
	require.NoError(t, err)
	_, err = e.End(ctx, "s1", false)
	require.NoError(t, err)

	_, err = e.RecordEvent(ctx, EventParams{SessionID: "s1", Friction: 0.9})
	require.ErrorIs(t, err, ErrSessionClosed)

	// The rejected event did not alter the accumulator.
	rec, err := e.Store().Get("s1")
	require.NoError(t, err)
	assert.Equal(t, int64(1), rec.Accumulator.Count)
	assert.InDelta(t, 0.5, rec.Accumulator.SumFriction, tolerance)
}

func TestEndUnknownSession(t *testing.T) {
	e := newEngine()
	_, err := e.End(context.Background(), "ghost", true)
	require.ErrorIs(t, err, store.ErrSessionNotFound)
}

func TestEndTwiceIsStrict(t *testing.T) {
	e := newEngine()
	ctx := context.Background()

	_, err := e.Start(ctx, StartParams{SessionID: "s1"})
	require.NoError(t, err)
	_, err = e.RecordEvent(ctx, EventParams{SessionID: "s1", Friction: 0.6})
	require.NoError(t, err)

	first, err := e.End(ctx, "s1", true)
	require.NoError(t, err)
	require.NotNil(t, first.Summary)
	assert.Equal(t, int64(1), first.Summary.EventsCount)

	_, err = e.End(ctx, "s1", true)
	require.ErrorIs(t, err, ErrSessionAlreadyEnded)

	// The first summary is unaffected by the second call's failure.
	rec, err := e.Store().Get("s1")
	require.NoError(t, err)
	assert.Equal(t, model.StateEnded, rec.State)
	assert.Equal(t, int64(1), rec.Accumulator.Count)
}

func TestEndWithoutSummary(t *testing.T) {
	e := newEngine()
	ctx := context.Background()

	_, err := e.Start(ctx, StartParams{SessionID: "s1"})
	require.NoError(t, err)

	res, err := e.End(ctx, "s1", false)
	require.NoError(t, err)
	assert.Nil(t, res.Summary)
}

func TestConcurrentRecordEventsExactCount(t *testing.T) {
	e := newEngine()
	ctx := context.Background()

	_, err := e.Start(ctx, StartParams{SessionID: "s1"})
	require.NoError(t, err)

	const k = 500
	var g errgroup.Group
	for i := 0; i < k; i++ {
		v := float64(i%10) / 10.0
		g.Go(func() error {
			_, err := e.RecordEvent(ctx, EventParams{
				SessionID:  "s1",
				Friction:   v,
				Hesitation: v / 2,
				Pace:       v * 2,
			})
			return err
		})
	}
	require.NoError(t, g.Wait())

	var expected float64
	for i := 0; i < k; i++ {
		expected += float64(i%10) / 10.0
	}

	rec, err := e.Store().Get("s1")
	require.NoError(t, err)
	assert.Equal(t, int64(k), rec.Accumulator.Count)
	assert.InDelta(t, expected, rec.Accumulator.SumFriction, 1e-6)
	assert.InDelta(t, expected/2, rec.Accumulator.SumHesitation, 1e-6)
	assert.InDelta(t, expected*2, rec.Accumulator.SumPace, 1e-6)
}

func TestConcurrentEndWithEvents(t *testing.T) {
	e := newEngine()
	ctx := context.Background()

	_, err := e.Start(ctx, StartParams{SessionID: "s1"})
	require.NoError(t, err)

	var g errgroup.Group
	for i := 0; i < 50; i++ {
		g.Go(func() error {
			_, err := e.RecordEvent(ctx, EventParams{SessionID: "s1", Friction: 0.1})
			if isErr(err, ErrSessionClosed) {
				return nil // legal outcome while End races
			}
			return err
		})
	}
	g.Go(func() error {
		_, err := e.End(ctx, "s1", true)
		return err
	})
	require.NoError(t, g.Wait())

	// The record must be consistently Ended with exactly the accepted
	// events folded in, and nothing torn.
	rec, err := e.Store().Get("s1")
	require.NoError(t, err)
	assert.Equal(t, model.StateEnded, rec.State)
	assert.False(t, rec.EndedAt.IsZero())
	assert.InDelta(t, 0.1*float64(rec.Accumulator.Count), rec.Accumulator.SumFriction, 1e-6)
}

func TestOperationsOnDistinctSessionsIndependent(t *testing.T) {
	e := newEngine()
	ctx := context.Background()

	var g errgroup.Group
	for i := 0; i < 20; i++ {
		id := string(rune('a' + i))
		g.Go(func() error {
			if _, err := e.Start(ctx, StartParams{SessionID: id}); err != nil {
				return err
			}
			for j := 0; j < 25; j++ {
				if _, err := e.RecordEvent(ctx, EventParams{SessionID: id, Pace: 1.0}); err != nil {
					return err
				}
			}
			_, err := e.End(ctx, id, true)
			return err
		})
	}
	require.NoError(t, g.Wait())
	assert.Equal(t, 20, e.Store().Len())
}
