package run

import (
	"context"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// MeasurementResult is one timed outcome of a single run-operation
// invocation. Timestamps are milliseconds on the run clock.
type MeasurementResult struct {
	StepName         string
	Response         Response
	CompletionMillis int64
	LatencyMillis    int64
}

// Sink accepts measurement records from arbitrarily many concurrent
// producers. Implementations own any further ordering or aggregation
// discipline; the measurement wrapper never waits on an acknowledgment.
type Sink interface {
	Publish(MeasurementResult)
}

// RunFunc is a scenario's repeatable workload step. It may return a
// classified Response of its own, ErrResetIteration to request a retry,
// a context cancellation error on timeout, or any other error, which the
// measurement wrapper records as an unhandled fault.
type RunFunc func(c *Context) (Response, error)

// InitFunc runs once before a scenario's first iteration.
type InitFunc func(c *InitContext) error

// CleanFunc runs once after a scenario's last iteration.
type CleanFunc func(c *InitContext) error

// writeThenNoop is a fatal-level hook that writes the entry and lets
// execution continue. zap silently replaces the zapcore.WriteThenNoop
// constant with WriteThenFatal, so an equivalent custom hook is required
// to keep fatal entries from terminating the process.
type writeThenNoop struct{}

func (writeThenNoop) OnWrite(*zapcore.CheckedEntry, []zapcore.Field) {}

// Context is the execution context one virtual user sees during an
// iteration. Clock and Sink are shared by all concurrent virtual users of
// a run; Data is owned by this virtual user alone and carried across its
// sequential iterations.
type Context struct {
	ctx    context.Context
	Clock  *Clock
	Sink   Sink
	Logger *zap.Logger
	Info   ScenarioInfo

	// Data is the virtual user's scratch scope.
	Data map[string]any
}

// NewContext assembles the execution context for one virtual user. The
// logger is wrapped so fatal-level entries never terminate the process:
// a fault in one iteration must not take the whole phase down with it.
func NewContext(ctx context.Context, clock *Clock, sink Sink, logger *zap.Logger, info ScenarioInfo) *Context {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Context{
		ctx:    ctx,
		Clock:  clock,
		Sink:   sink,
		Logger: logger.WithOptions(zap.WithFatalHook(writeThenNoop{})),
		Info:   info,
		Data:   make(map[string]any),
	}
}

// Context returns the cancellation signal source for this execution.
func (c *Context) Context() context.Context {
	if c.ctx == nil {
		return context.Background()
	}
	return c.ctx
}
