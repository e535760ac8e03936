package run_test

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/salvolabs/salvo/internal/run"
)

// captureSink collects published measurements; safe for concurrent use.
type captureSink struct {
	mu      sync.Mutex
	results []run.MeasurementResult
}

func (s *captureSink) Publish(m run.MeasurementResult) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.results = append(s.results, m)
}

func (s *captureSink) all() []run.MeasurementResult {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]run.MeasurementResult, len(s.results))
	copy(out, s.results)
	return out
}

func newTestContext(t *testing.T, ctx context.Context) (*run.Context, *captureSink, *observer.ObservedLogs) {
	t.Helper()
	core, logs := observer.New(zapcore.DebugLevel)
	sink := &captureSink{}
	info := run.NewScenarioInfo("checkout", 1, 60*time.Second, run.PhaseBombing)
	c := run.NewContext(ctx, run.NewClock(), sink, zap.New(core), info)
	return c, sink, logs
}

func TestMeasure_SuccessPassesResponseThrough(t *testing.T) {
	c, sink, logs := newTestContext(t, context.Background())

	result := run.Measure(c, func(_ *run.Context) (run.Response, error) {
		time.Sleep(15 * time.Millisecond)
		return run.Ok("body"), nil
	})

	results := sink.all()
	require.Len(t, results, 1, "exactly one measurement per invocation")
	assert.Equal(t, result, results[0])

	assert.Equal(t, run.OutcomeOK, result.Response.Kind)
	assert.Equal(t, "body", result.Response.Payload)
	assert.Equal(t, "checkout", result.StepName)
	assert.GreaterOrEqual(t, result.LatencyMillis, int64(10))
	assert.GreaterOrEqual(t, result.CompletionMillis, result.LatencyMillis)
	assert.Zero(t, logs.Len(), "success must not log")
}

func TestMeasure_OperationSignaledFailurePassesThrough(t *testing.T) {
	c, sink, logs := newTestContext(t, context.Background())

	result := run.Measure(c, func(_ *run.Context) (run.Response, error) {
		return run.Fail("status 503", 503), nil
	})

	require.Len(t, sink.all(), 1)
	assert.Equal(t, run.OutcomeFail, result.Response.Kind)
	assert.Equal(t, "status 503", result.Response.Message)
	assert.Equal(t, 503, result.Response.StatusCode)
	assert.Zero(t, logs.Len(), "caller-classified failures are the operation's contract, not logged")
}

func TestMeasure_ResetSignalBecomesEmptyFailure(t *testing.T) {
	c, sink, logs := newTestContext(t, context.Background())

	result := run.Measure(c, func(_ *run.Context) (run.Response, error) {
		time.Sleep(15 * time.Millisecond)
		return run.Response{}, fmt.Errorf("retrying iteration: %w", run.ErrResetIteration)
	})

	require.Len(t, sink.all(), 1)
	assert.Equal(t, run.OutcomeFail, result.Response.Kind)
	assert.Empty(t, result.Response.Message, "reset substitution carries no message")
	assert.Zero(t, result.Response.StatusCode, "reset substitution carries no status code")
	assert.NoError(t, result.Response.Err)
	// Latency is the wrapper's own measurement, not supplied by the op.
	assert.GreaterOrEqual(t, result.LatencyMillis, int64(10))
	assert.Zero(t, logs.Len(), "reset is a controlled signal, not logged")
}

func TestMeasure_CancellationBecomesTimeout(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()
	c, sink, logs := newTestContext(t, ctx)

	result := run.Measure(c, func(rc *run.Context) (run.Response, error) {
		<-rc.Context().Done()
		return run.Response{}, rc.Context().Err()
	})

	require.Len(t, sink.all(), 1)
	assert.Equal(t, run.OutcomeFail, result.Response.Kind)
	assert.Equal(t, run.TimeoutMessage, result.Response.Message)
	assert.Equal(t, run.StatusCodeTimeout, result.Response.StatusCode)
	// Latency reflects the wall time until cancellation, not zero.
	assert.GreaterOrEqual(t, result.LatencyMillis, int64(15))

	entries := logs.FilterMessage("operation timeout").All()
	require.Len(t, entries, 1)
	assert.Equal(t, zapcore.FatalLevel, entries[0].Level)
	assert.Equal(t, "checkout", entries[0].ContextMap()["scenario"])
}

func TestMeasure_UnhandledErrorBecomesFault(t *testing.T) {
	c, sink, logs := newTestContext(t, context.Background())

	opErr := errors.New("connection reset by peer")
	result := run.Measure(c, func(_ *run.Context) (run.Response, error) {
		return run.Response{}, opErr
	})

	require.Len(t, sink.all(), 1)
	assert.Equal(t, run.OutcomeFaulted, result.Response.Kind)
	assert.Equal(t, run.StatusCodeUnhandled, result.Response.StatusCode)
	assert.ErrorIs(t, result.Response.Err, opErr)

	entries := logs.FilterMessage("unhandled exception in run operation").All()
	require.Len(t, entries, 1)
	assert.Equal(t, zapcore.FatalLevel, entries[0].Level)
	assert.Equal(t, "checkout", entries[0].ContextMap()["scenario"])
}

func TestMeasure_PanicIsRecoveredAsFault(t *testing.T) {
	c, sink, logs := newTestContext(t, context.Background())

	var result run.MeasurementResult
	require.NotPanics(t, func() {
		result = run.Measure(c, func(_ *run.Context) (run.Response, error) {
			panic("index out of range")
		})
	})

	require.Len(t, sink.all(), 1)
	assert.Equal(t, run.OutcomeFaulted, result.Response.Kind)
	assert.Equal(t, run.StatusCodeUnhandled, result.Response.StatusCode)
	assert.ErrorContains(t, result.Response.Err, "index out of range")
	require.Equal(t, 1, logs.FilterMessage("unhandled exception in run operation").Len())
}

func TestMeasure_SharedClockAcrossInvocations(t *testing.T) {
	c, sink, _ := newTestContext(t, context.Background())

	first := run.Measure(c, func(_ *run.Context) (run.Response, error) {
		time.Sleep(10 * time.Millisecond)
		return run.Ok(""), nil
	})
	second := run.Measure(c, func(_ *run.Context) (run.Response, error) {
		return run.Ok(""), nil
	})

	// Sequential iterations on one virtual user publish in completion
	// order with timestamps on the same clock.
	results := sink.all()
	require.Len(t, results, 2)
	assert.Equal(t, first, results[0])
	assert.Equal(t, second, results[1])
	assert.GreaterOrEqual(t, second.CompletionMillis, first.CompletionMillis)
}

func TestMeasure_ConcurrentVirtualUsers(t *testing.T) {
	sink := &captureSink{}
	clock := run.NewClock()

	const users = 20
	const iterations = 10

	var wg sync.WaitGroup
	for u := 0; u < users; u++ {
		wg.Add(1)
		go func(n int) {
			defer wg.Done()
			info := run.NewScenarioInfo("browse", n, time.Minute, run.PhaseBombing)
			c := run.NewContext(context.Background(), clock, sink, zap.NewNop(), info)
			for i := 0; i < iterations; i++ {
				run.Measure(c, func(_ *run.Context) (run.Response, error) {
					return run.Ok(""), nil
				})
			}
		}(u)
	}
	wg.Wait()

	require.Len(t, sink.all(), users*iterations)
	for _, m := range sink.all() {
		assert.GreaterOrEqual(t, m.LatencyMillis, int64(0))
	}
}
