package ingest

import "fmt"

// ContentError reports manuscript XML that is well-formed but violates an
// ingestion expectation: a missing required element, an unparseable number
// or date, ambiguous or contradictory data. The manuscript has to be
// corrected before the same input can succeed, so callers surface these to
// a curator rather than retrying.
type ContentError struct {
	msg   string
	cause error
}

func (e *ContentError) Error() string {
	if e.cause != nil {
		return e.msg + ": " + e.cause.Error()
	}
	return e.msg
}

func (e *ContentError) Unwrap() error { return e.cause }

func contentErr(msg string) error {
	return &ContentError{msg: msg}
}

func contentErrf(format string, args ...interface{}) error {
	return &ContentError{msg: fmt.Sprintf(format, args...)}
}

func contentWrap(cause error, format string, args ...interface{}) error {
	return &ContentError{msg: fmt.Sprintf(format, args...), cause: cause}
}

// LogicError reports a defect in the ingestion rules themselves, e.g. an
// unrecognized node type reaching a resolver that should only ever see
// recognized types. Unlike a ContentError it is not the manuscript's fault;
// it means a bug, not bad input.
type LogicError struct {
	msg string
}

func (e *LogicError) Error() string { return e.msg }

func logicErrf(format string, args ...interface{}) error {
	return &LogicError{msg: fmt.Sprintf(format, args...)}
}
