package errorx

import "errors"

// UnwrapError recursively.
//
// If more than one error wrapped, use UnwrapAllError
func UnwrapError(err error) error {
	for err != nil {
		if wrappedErr, ok := err.(interface{ Unwrap() error }); ok {
			next := wrappedErr.Unwrap()
			if next == nil {
				break
			}
			err = next
		} else {
			break
		}
	}
	return err
}

func UnwrapAllError(err error) []error {
	if err == nil {
		return nil
	}

	var result []error
	result = append(result, err)

	if unwrapper, ok := err.(interface{ Unwrap() []error }); ok {
		for _, subErr := range unwrapper.Unwrap() {
			result = append(result, UnwrapAllError(subErr)...)
		}
		return result
	}

	if unwrapper, ok := err.(interface{ Unwrap() error }); ok {
		if subErr := unwrapper.Unwrap(); subErr != nil {
			result = append(result, UnwrapAllError(subErr)...)
		}
	}

	return result
}

func GetFirstCustomError(err error) (CustomError, bool) {
	var customErr CustomError
	if errors.As(err, &customErr) {
		return customErr, true
	}
	return CustomError{}, false
}

// IsHTTPStatus reports whether err wraps an HTTPError with the given status code.
func IsHTTPStatus(err error, statusCode int) bool {
	var httpErr *HTTPError
	if errors.As(err, &httpErr) {
		return httpErr.StatusCode == statusCode
	}
	return false
}
