package check

import (
	"errors"
	"fmt"
	"strconv"

	"github.com/slim-bean/check-fr24feed/pkg/fr24feed"
)

// Code identifies the step of a check that failed.
type Code string

const (
	CodeFetch     Code = "fetch"
	CodeFreshness Code = "freshness"
	CodeMetrics   Code = "metrics"
	CodeStatus    Code = "status"
)

// Diagnostic messages printed for failed extraction steps.
const (
	MsgFreshness = "ValueError: Last Status could not be parsed"
	MsgMetrics   = "ValueError: Metrics could not be parsed"
	MsgStatus    = "ValueError: Status could not be parsed"
)

// Error is returned by every failing step of a check. Msg is the text shown
// to the monitoring system, Err the underlying cause.
type Error struct {
	Code Code
	Msg  string
	Err  error
}

func (e *Error) Error() string {
	return e.Msg
}

func (e *Error) Unwrap() error {
	return e.Err
}

// IsCode reports whether err is a check Error with the given code.
func IsCode(err error, code Code) bool {
	var ce *Error
	return errors.As(err, &ce) && ce.Code == code
}

func fetchError(err error) *Error {
	kind, cause := "Error", err
	var fe *fr24feed.Error
	if errors.As(err, &fe) {
		kind, cause = fe.Kind, fe.Err
	}
	return &Error{Code: CodeFetch, Msg: exceptionMessage(kind, cause), Err: err}
}

func exceptionMessage(kind string, err error) string {
	return fmt.Sprintf("An exception of type %s occurred. Arguments:\n%s", kind, strconv.Quote(err.Error()))
}
