package answer

import (
	"errors"

	"github.com/bikeq/bikeq/pkg/errcode"
	"github.com/gnames/gn"
)

// Status tells the transport how a request ended.
type Status int

const (
	// StatusOK covers answers and friendly failures.
	StatusOK Status = iota
	// StatusBadRequest means the request itself is wrong.
	StatusBadRequest
	// StatusUnavailable means a dependency failed and a retry may help.
	StatusUnavailable
	// StatusInternal is an unexpected failure.
	StatusInternal
)

func (s Status) String() string {
	switch s {
	case StatusOK:
		return "ok"
	case StatusBadRequest:
		return "bad request"
	case StatusUnavailable:
		return "unavailable"
	default:
		return "internal"
	}
}

// User-facing messages. They never contain error details.
const (
	MsgQuestionRequired = "Question is required"
	MsgRequestJSON      = "Request must be JSON"

	MsgNotUnderstood = "I couldn't understand your question properly. " +
		"Try asking about bike trips, stations, or weather data."
	MsgTrouble = "I had trouble processing your question. Please try " +
		"rephrasing it or ask about specific bike share data like trip " +
		"counts or station usage."
	MsgNoColumn = "I couldn't find the data you're looking for. Try asking " +
		"about bike trips, station locations, or usage patterns."
	MsgCannotProcess = "I couldn't process your question. Please try " +
		"asking about bike share trips, stations, or usage data."
	MsgRejected = "Sorry, I couldn't process your question. Please try " +
		"asking about bike trips, station usage, or weather data."
	MsgModelFailed = "Sorry, I couldn't understand your question. Please " +
		"try asking about bike trips, stations, or weather data."
	MsgNoData = "No data found matching your criteria. Try asking about " +
		"available bikes, trips, or stations."
	MsgFallback = MsgRejected
)

type outcome struct {
	msg    string
	status Status
}

var outcomes = map[gn.ErrorCode]outcome{
	errcode.EmptyQuestionError:       {MsgQuestionRequired, StatusBadRequest},
	errcode.RequestDecodeError:       {MsgRequestJSON, StatusBadRequest},
	errcode.GenerationDomainError:    {MsgNotUnderstood, StatusOK},
	errcode.GenerationFailedError:    {MsgTrouble, StatusOK},
	errcode.GenerationEmptyError:     {MsgCannotProcess, StatusOK},
	errcode.GenerationTimeoutError:   {MsgTrouble, StatusUnavailable},
	errcode.SafetyRejectedError:      {MsgRejected, StatusOK},
	errcode.LLMConfigError:           {MsgModelFailed, StatusOK},
	errcode.LLMRequestError:          {MsgModelFailed, StatusOK},
	errcode.LLMResponseError:         {MsgModelFailed, StatusOK},
	errcode.UnknownColumnError:       {MsgNoColumn, StatusOK},
	errcode.ExecutionError:           {MsgCannotProcess, StatusOK},
	errcode.SchemaIntrospectionError: {MsgCannotProcess, StatusUnavailable},
	errcode.EmptyResultError:         {MsgNoData, StatusOK},
}

// Outcome returns the user message and the status for an error.
// Errors without a known code get the fallback message and
// StatusInternal.
func Outcome(err error) (string, Status) {
	var gnErr *gn.Error
	if errors.As(err, &gnErr) {
		if o, ok := outcomes[gnErr.Code]; ok {
			return o.msg, o.status
		}
	}
	return MsgFallback, StatusInternal
}
