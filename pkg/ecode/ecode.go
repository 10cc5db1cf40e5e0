// Package ecode defines standardized business error codes for API responses.
//
// Codes follow the numbering scheme:
//   - 0: success
//   - -100 to -199: authentication / authorization errors
//   - -400 to -499: request and resource errors
//   - -500+: server errors
package ecode

import "fmt"

const (
	OK               = 0
	Unauthorized     = -101
	AccessDenied     = -103
	RequestErr       = -400
	ParamErr         = -401
	NothingFound     = -404
	MethodNotAllowed = -405
	Conflict         = -409
	ServerErr        = -500
)

var messages = map[int]string{
	OK:               "success",
	Unauthorized:     "account not logged in",
	AccessDenied:     "access denied",
	RequestErr:       "invalid request",
	ParamErr:         "invalid parameters",
	NothingFound:     "resource not found",
	MethodNotAllowed: "method not allowed",
	Conflict:         "resource conflict",
	ServerErr:        "internal server error",
}

// Text returns the human-readable message for a code.
func Text(code int) string {
	if msg, ok := messages[code]; ok {
		return msg
	}
	return fmt.Sprintf("unknown error (%d)", code)
}

// Register registers a custom error code with its message.
// Application-specific codes should live in the -1000+ range.
func Register(code int, message string) {
	messages[code] = message
}
