package pkgerror

import (
	"errors"
	"fmt"
)

var (
	// ErrUnsupportedFormat indicates an unrecognized file extension on read or write.
	ErrUnsupportedFormat = errors.New("unsupported data format")
	// ErrSchemaValidation indicates a required column is missing or mistyped.
	ErrSchemaValidation = errors.New("schema validation failed")
	// ErrConfiguration indicates an out-of-range configuration value.
	ErrConfiguration = errors.New("invalid configuration")
	// ErrPrecondition indicates an operation was invoked on a table that cannot serve it.
	ErrPrecondition = errors.New("precondition failed")
	// ErrStructureParse indicates a single structure could not be parsed or described.
	ErrStructureParse = errors.New("structure parse failure")
)

// Type classifies errors into high-level buckets used by the application.
type Type int

const (
	TypeServer        Type = iota // Internal errors (e.g., filesystem or encoder issues).
	TypeValidation                // Input data does not satisfy the expected schema or format.
	TypeConfiguration             // A configuration value is out of range.
	TypeItem                      // A per-item failure that never aborts a batch.
)

func (t Type) String() string {
	switch t {
	case TypeValidation:
		return "ERROR_TYPE_VALIDATION"
	case TypeConfiguration:
		return "ERROR_TYPE_CONFIGURATION"
	case TypeItem:
		return "ERROR_TYPE_ITEM"
	case TypeServer:
		return "ERROR_TYPE_SERVER"
	default:
		return "ERROR_TYPE_UNKNOWN"
	}
}

// Code is a stable identifier used for mapping errors to exit codes.
type Code int

const (
	CodeInternal          Code = iota // Internal or unspecified error.
	CodeUnsupportedFormat             // File extension is not a supported container.
	CodeSchemaValidation              // Required column missing or mistyped.
	CodeConfiguration                 // Configuration value out of range.
	CodePrecondition                  // Operation precondition not met.
	CodeStructureParse                // Structure string failed to parse or describe.
)

func (c Code) String() string {
	switch c {
	case CodeUnsupportedFormat:
		return "ERROR_CODE_UNSUPPORTED_FORMAT"
	case CodeSchemaValidation:
		return "ERROR_CODE_SCHEMA_VALIDATION"
	case CodeConfiguration:
		return "ERROR_CODE_CONFIGURATION"
	case CodePrecondition:
		return "ERROR_CODE_PRECONDITION"
	case CodeStructureParse:
		return "ERROR_CODE_STRUCTURE_PARSE"
	case CodeInternal:
		return "ERROR_CODE_INTERNAL"
	default:
		return "ERROR_CODE_INTERNAL"
	}
}

// Error is a structured error used across the application.
//
// It can wrap an underlying error while also carrying a user-facing message,
// a high-level type, a stable error code and the subject that caused it.
type Error struct {
	err     error
	msg     string
	subject string
	errType Type
	code    Code
}

// Error implements the error interface.
func (e *Error) Error() string {
	if e.msg != "" && e.err != nil {
		return e.msg + ": " + e.err.Error()
	}

	if e.msg != "" {
		return e.msg
	}

	if e.err != nil {
		return e.err.Error()
	}

	if e.errType == TypeValidation {
		return "Validation violation"
	}

	if e.errType == TypeConfiguration {
		return "Configuration violation"
	}

	if e.errType == TypeServer {
		return "Internal error"
	}

	return "Unknown error"
}

// String returns a verbose representation of the error for debugging/logging.
func (e *Error) String() string {
	return fmt.Sprintf(
		"Error Type: %s, Code: %s, Subject: %s, Message: %s, Underlying Error: %v",
		e.errType.String(),
		e.code.String(),
		e.subject,
		e.msg,
		e.err,
	)
}

// Msg returns the user-facing error message, if set.
func (e *Error) Msg() string {
	return e.msg
}

// Subject returns the offending column, extension, key or structure.
func (e *Error) Subject() string {
	return e.subject
}

// Type returns the high-level error type.
func (e *Error) Type() Type {
	return e.errType
}

// Code returns the stable error code.
func (e *Error) Code() Code {
	return e.code
}

// Unwrap returns the underlying error.
func (e *Error) Unwrap() error {
	return e.err
}

// Is reports whether target is the sentinel matching the error code.
func (e *Error) Is(target error) bool {
	switch e.code {
	case CodeUnsupportedFormat:
		return target == ErrUnsupportedFormat
	case CodeSchemaValidation:
		return target == ErrSchemaValidation
	case CodeConfiguration:
		return target == ErrConfiguration
	case CodePrecondition:
		return target == ErrPrecondition
	case CodeStructureParse:
		return target == ErrStructureParse
	default:
		return false
	}
}

// ExitCode maps the error code to a process exit code.
func (e *Error) ExitCode() int {
	switch e.code {
	case CodeConfiguration:
		return 2
	case CodeUnsupportedFormat:
		return 3
	case CodeSchemaValidation:
		return 4
	case CodePrecondition:
		return 5
	case CodeInternal:
		return 1
	default:
		return 1
	}
}

func new(err error, msg, subject string, et Type, code Code) error {
	return &Error{err: err, msg: msg, subject: subject, errType: et, code: code}
}

// NewServer creates a server-type error with the provided error.
func NewServer(err error) error {
	return new(err, "", "", TypeServer, CodeInternal)
}

// NewUnsupportedFormat reports an unrecognized file extension.
func NewUnsupportedFormat(extension string) error {
	return new(nil, fmt.Sprintf("%s is not a supported data format", extension), extension, TypeValidation, CodeUnsupportedFormat)
}

// NewSchemaValidation reports a missing or mistyped column.
// The message is prefixed with the column.
func NewSchemaValidation(column, reason string) error {
	return new(nil, column+": "+reason, column, TypeValidation, CodeSchemaValidation)
}

// NewConfiguration reports an out-of-range configuration value.
func NewConfiguration(key string, value any, reason string) error {
	return new(nil, fmt.Sprintf("%s=%v: %s", key, value, reason), key, TypeConfiguration, CodeConfiguration)
}

// NewPrecondition reports that an operation cannot run on the current input.
func NewPrecondition(subject, reason string) error {
	return new(nil, subject+": "+reason, subject, TypeValidation, CodePrecondition)
}

// NewStructureParse reports a per-structure failure, wrapping its cause.
func NewStructureParse(structure string, err error) error {
	return new(err, fmt.Sprintf("parsing structure %q failed", structure), structure, TypeItem, CodeStructureParse)
}

// ExitCode returns the exit code for err, falling back to 1 for foreign errors.
func ExitCode(err error) int {
	if err == nil {
		return 0
	}

	var perr *Error
	if errors.As(err, &perr) {
		return perr.ExitCode()
	}

	return 1
}
