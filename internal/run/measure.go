package run

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"
)

// Measure times a single invocation of a run operation, classifies the
// outcome and publishes exactly one MeasurementResult to the context's
// sink. The published record is also returned.
//
// Classification:
//   - a Response returned with a nil error passes through untouched;
//     whether it encodes success or failure is the operation's own contract
//   - ErrResetIteration becomes an empty failure (no message, no status
//     code) so the orchestrator can re-run the iteration without counting
//     a real error
//   - context cancellation becomes a failure with StatusCodeTimeout and
//     the fixed timeout message, plus a fatal log line naming the scenario
//   - anything else, including a panic inside the operation, becomes a
//     faulted response with StatusCodeUnhandled, plus a fatal log line
//
// A fault never propagates out of Measure: the virtual user's loop and the
// surrounding phase keep running.
func Measure(c *Context, op RunFunc) MeasurementResult {
	start := c.Clock.ElapsedMillis()

	resp, err := invoke(c, op)
	completion := c.Clock.ElapsedMillis()

	switch {
	case err == nil:
		// Pass the operation's own classification through.
	case errors.Is(err, ErrResetIteration):
		resp = emptyFail()
	case isCancellation(err):
		c.Logger.Fatal("operation timeout",
			zap.String("scenario", c.Info.ScenarioName))
		resp = Fail(TimeoutMessage, StatusCodeTimeout)
	default:
		c.Logger.Fatal("unhandled exception in run operation",
			zap.String("scenario", c.Info.ScenarioName),
			zap.Error(err))
		resp = Faulted(err)
	}

	result := MeasurementResult{
		StepName:         c.Info.ScenarioName,
		Response:         resp,
		CompletionMillis: completion,
		LatencyMillis:    completion - start,
	}
	c.Sink.Publish(result)
	return result
}

// invoke runs the operation, converting a panic into an error so a single
// iteration's fault cannot crash the virtual-user goroutine.
func invoke(c *Context, op RunFunc) (resp Response, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("run operation panicked: %v", r)
		}
	}()
	return op(c)
}

// isCancellation reports whether err is the run's cancellation signal.
func isCancellation(err error) bool {
	return errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded)
}
