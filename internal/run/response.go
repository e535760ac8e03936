package run

import "errors"

// Outcome tags the variant of a Response.
type Outcome int

const (
	// OutcomeOK is a successful invocation carrying a payload.
	OutcomeOK Outcome = iota
	// OutcomeFail is a failure, either signaled by the run operation
	// itself or substituted by the measurement wrapper.
	OutcomeFail
	// OutcomeFaulted is an unhandled fault captured by the wrapper.
	OutcomeFaulted
)

func (o Outcome) String() string {
	switch o {
	case OutcomeOK:
		return "ok"
	case OutcomeFail:
		return "fail"
	case OutcomeFaulted:
		return "faulted"
	default:
		return "unknown"
	}
}

// Status codes substituted by the measurement wrapper. Negative values
// keep them clear of any transport status space a run operation may use.
const (
	// StatusCodeTimeout marks an invocation that was cancelled mid-flight.
	StatusCodeTimeout = -100
	// StatusCodeUnhandled marks an invocation that raised an unclassified
	// fault.
	StatusCodeUnhandled = -101
)

// TimeoutMessage is the fixed failure message attached to cancelled
// invocations.
const TimeoutMessage = "operation timeout"

// ErrResetIteration is returned by a run operation to ask the orchestrator
// to re-run the current iteration. It is neither a success nor a hard
// failure: the wrapper records timing as usual but substitutes an empty
// failure response, so downstream statistics can tell a requested retry
// from a real error.
var ErrResetIteration = errors.New("reset iteration requested")

// Response is the classified result of one run-operation invocation:
// success with a payload, a failure with a message and status code, or a
// captured fault.
type Response struct {
	Kind       Outcome
	Payload    string
	Message    string
	StatusCode int
	Err        error
}

// Ok builds a success response.
func Ok(payload string) Response {
	return Response{Kind: OutcomeOK, Payload: payload}
}

// Fail builds a failure response with a message and status code.
func Fail(message string, statusCode int) Response {
	return Response{Kind: OutcomeFail, Message: message, StatusCode: statusCode}
}

// Faulted builds a response carrying a captured fault.
func Faulted(err error) Response {
	return Response{Kind: OutcomeFaulted, StatusCode: StatusCodeUnhandled, Err: err}
}

// emptyFail is the substitution for a reset-iteration signal: a failure
// with no message and no status code.
func emptyFail() Response {
	return Response{Kind: OutcomeFail}
}

// IsError reports whether the response is a failure or a fault.
func (r Response) IsError() bool {
	return r.Kind != OutcomeOK
}
