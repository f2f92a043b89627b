package exceptions

import (
	"errors"
	"fmt"
	"runtime"

	"telehealth-service/internal/pkg/constvars"
)

type CustomError struct {
	StatusCode    int      `json:"status_code"`
	Success       bool     `json:"success"`
	ClientMessage string   `json:"message"`
	DevMessage    string   `json:"-"`
	Location      Location `json:"-"`
	// Retryable marks failures that should be attempted again later
	// instead of being treated as a final outcome.
	Retryable bool  `json:"-"`
	Err       error `json:"-"`
}

type Location struct {
	File         string
	Line         int
	FunctionName string
}

func (e *CustomError) Error() string {
	return fmt.Sprintf("%s (%s:%d %s)", e.DevMessage, e.Location.File, e.Location.Line, e.Location.FunctionName)
}

func (e *CustomError) Unwrap() error {
	return e.Err
}

func WrapWithoutError(statusCode int, clientMessage, devMessage string) *CustomError {
	return &CustomError{
		StatusCode:    statusCode,
		ClientMessage: clientMessage,
		DevMessage:    devMessage,
		Location:      getLocation(2),
	}
}

func WrapWithError(err error, statusCode int, clientMessage, devMessage string) *CustomError {
	return buildCustomError(err, statusCode, clientMessage, devMessage, 3)
}

func BuildNewCustomError(err error, statusCode int, clientMessage, devMessage string) *CustomError {
	return buildCustomError(err, statusCode, clientMessage, devMessage, 4)
}

func buildCustomError(err error, statusCode int, clientMessage, devMessage string, skip int) *CustomError {
	if err != nil {
		devMessage = fmt.Sprintf("%s: %s", devMessage, err.Error())
	}
	return &CustomError{
		StatusCode:    statusCode,
		ClientMessage: clientMessage,
		DevMessage:    devMessage,
		Location:      getLocation(skip),
		Err:           err,
	}
}

// AsRetryable flags err so callers schedule another attempt.
func AsRetryable(err *CustomError) *CustomError {
	err.Retryable = true
	return err
}

func IsRetryable(err error) bool {
	var customErr *CustomError
	if errors.As(err, &customErr) {
		return customErr.Retryable
	}
	return false
}

func StatusCodeOf(err error) int {
	var customErr *CustomError
	if errors.As(err, &customErr) {
		return customErr.StatusCode
	}
	return constvars.StatusInternalServerError
}

func getLocation(skip int) Location {
	pc, file, line, ok := runtime.Caller(skip)
	if !ok {
		return Location{
			File:         constvars.ResponseUnknown,
			Line:         0,
			FunctionName: constvars.ResponseUnknown,
		}
	}
	return Location{
		File:         file,
		Line:         line,
		FunctionName: runtime.FuncForPC(pc).Name(),
	}
}
