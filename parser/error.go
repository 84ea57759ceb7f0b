package parser

import (
	"errors"
	"fmt"
	"strings"
)

// ErrorKind classifies a parse failure.
type ErrorKind int

const (
	// Empty means the document has no content at all.
	Empty ErrorKind = iota
	// Missing means a line was required but the document ended.
	Missing
	// LimitExceeded means a count went over a configured limit.
	LimitExceeded
	// InvalidHeader means the first line is not `OFF`.
	InvalidHeader
	// InvalidCounts means the counts line is malformed.
	InvalidCounts
	// InvalidVertexPosition means a vertex line has a malformed position.
	InvalidVertexPosition
	// InvalidColor means a vertex or face color is malformed.
	InvalidColor
	// InvalidFace means a face line is malformed.
	InvalidFace
	// InvalidFaceIndex means a face references vertices incorrectly.
	InvalidFaceIndex
)

// String returns the name of the error kind.
func (k ErrorKind) String() string {
	switch k {
	case Empty:
		return "Empty"
	case Missing:
		return "Missing"
	case LimitExceeded:
		return "LimitExceeded"
	case InvalidHeader:
		return "InvalidHeader"
	case InvalidCounts:
		return "InvalidCounts"
	case InvalidVertexPosition:
		return "InvalidVertexPosition"
	case InvalidColor:
		return "InvalidColor"
	case InvalidFace:
		return "InvalidFace"
	case InvalidFaceIndex:
		return "InvalidFaceIndex"
	default:
		return fmt.Sprintf("ErrorKind(%d)", int(k))
	}
}

// Sentinel errors, one per ErrorKind, matched by errors.Is on an *Error.
var (
	ErrEmpty                 = errors.New("empty document")
	ErrMissing               = errors.New("missing line")
	ErrLimitExceeded         = errors.New("limit exceeded")
	ErrInvalidHeader         = errors.New("invalid header")
	ErrInvalidCounts         = errors.New("invalid counts")
	ErrInvalidVertexPosition = errors.New("invalid vertex position")
	ErrInvalidColor          = errors.New("invalid color")
	ErrInvalidFace           = errors.New("invalid face")
	ErrInvalidFaceIndex      = errors.New("invalid face index")

	// ErrUnknownColorFormat is returned by ParseColorFormat.
	ErrUnknownColorFormat = errors.New("unknown color format")
)

var kindSentinels = map[ErrorKind]error{
	Empty:                 ErrEmpty,
	Missing:               ErrMissing,
	LimitExceeded:         ErrLimitExceeded,
	InvalidHeader:         ErrInvalidHeader,
	InvalidCounts:         ErrInvalidCounts,
	InvalidVertexPosition: ErrInvalidVertexPosition,
	InvalidColor:          ErrInvalidColor,
	InvalidFace:           ErrInvalidFace,
	InvalidFaceIndex:      ErrInvalidFaceIndex,
}

// Error is a parse failure located at a physical line of the document.
type Error struct {
	Kind ErrorKind
	// LineIndex is the zero-based index of the offending physical line.
	LineIndex int
	// Message is an optional explanation.
	Message string
	// Cause is the underlying conversion error, if any.
	Cause error
}

func newError(kind ErrorKind, lineIndex int, cause error, format string, args ...any) *Error {
	return &Error{
		Kind:      kind,
		LineIndex: lineIndex,
		Message:   fmt.Sprintf(format, args...),
		Cause:     cause,
	}
}

// Error formats the error as `<Kind> @ ln:<line number>[ - <message>]` with a one-based line number.
func (e *Error) Error() string {
	var sb strings.Builder

	fmt.Fprintf(&sb, "%s @ ln:%d", e.Kind, e.LineIndex+1)

	if e.Message != "" {
		sb.WriteString(" - " + e.Message)
	}

	return sb.String()
}

// Unwrap exposes the sentinel of the error kind and the cause.
func (e *Error) Unwrap() []error {
	errs := make([]error, 0, 2)
	if sentinel, ok := kindSentinels[e.Kind]; ok {
		errs = append(errs, sentinel)
	}

	if e.Cause != nil {
		errs = append(errs, e.Cause)
	}

	return errs
}

// AsError extracts an *Error from an error chain.
func AsError(err error) (*Error, bool) {
	var perr *Error
	if errors.As(err, &perr) {
		return perr, true
	}

	return nil, false
}

// Limit names one of the fields of Limits.
type Limit int

const (
	VertexCountLimit Limit = iota
	FaceCountLimit
	FaceVertexCountLimit
)

func (l Limit) String() string {
	switch l {
	case VertexCountLimit:
		return "vertex_count"
	case FaceCountLimit:
		return "face_count"
	case FaceVertexCountLimit:
		return "face_vertex_count"
	default:
		return fmt.Sprintf("Limit(%d)", int(l))
	}
}

// LimitError is the cause of a LimitExceeded error.
type LimitError struct {
	Limit      Limit
	Configured int
	Actual     int
}

func (e *LimitError) Error() string {
	return fmt.Sprintf("%s exceeds limit (limit: %d, actual: %d)", e.Limit, e.Configured, e.Actual)
}
