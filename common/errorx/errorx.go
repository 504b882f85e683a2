package errorx

import (
	"fmt"
	"regexp"
	"strconv"
)

var errorCodeRegex = regexp.MustCompile(`^([A-Z]+-ERR)-(\d+)$`)

func IsValidErrorCode(code string) bool {
	return errorCodeRegex.MatchString(code)
}

// ParseErrorCode parses an error code string like "REL-ERR-3".
// Returns an unknown error if the code is malformed.
func ParseErrorCode(errorCode string) CustomError {
	errUnknown := CustomError{prefix: errUnknownPrefix}

	matches := errorCodeRegex.FindStringSubmatch(errorCode)
	if len(matches) != 3 {
		return errUnknown
	}
	codeNum, err := strconv.Atoi(matches[2])
	if err != nil {
		return errUnknown
	}
	return CustomError{prefix: matches[1], code: codeNum}
}

type CoreError interface {
	Error() string
	Code() string
	CustomError() CustomError
}

const errUnknownPrefix = "UNKNOWN-ERR"

// CustomError is the standard error of the release tool.
// Two CustomErrors match with errors.Is when prefix and code are equal,
// whatever the wrapped error and context are.
type CustomError struct {
	prefix  string
	code    int
	err     error
	context context
}

func (err CustomError) Error() string {
	if err.err != nil {
		return err.Code() + ": " + err.err.Error()
	}
	return err.Code()
}

func (err CustomError) Code() string {
	return err.prefix + "-" + strconv.Itoa(err.code)
}

func (err CustomError) CustomError() CustomError {
	return CustomError{prefix: err.prefix, code: err.code}
}

// Detail renders the code, the wrapped error and the context keys in a stable order.
func (err CustomError) Detail() string {
	msg := err.Error()
	if len(err.context) > 0 {
		msg += " [" + err.context.String() + "]"
	}
	return msg
}

func (err CustomError) Context() map[string]interface{} {
	return err.context
}

func (err CustomError) Unwrap() error {
	return err.err
}

func (err CustomError) Is(target error) bool {
	t, ok := target.(CustomError)
	if !ok {
		return false
	}
	return t.prefix == err.prefix && t.code == err.code
}

func newError(prefix string, code int, err error, ctx context) error {
	return CustomError{
		prefix:  prefix,
		code:    code,
		err:     err,
		context: ctx,
	}
}

type HTTPError struct {
	StatusCode int
	Message    any
}

func (e *HTTPError) Error() string {
	return fmt.Sprintf("StatusCode: %d, Message: %v", e.StatusCode, e.Message)
}
