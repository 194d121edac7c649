package entity

import (
	"errors"
	"fmt"
)

// ErrorKind classifies the user-visible outcomes of a command.
type ErrorKind int

const (
	// KindNotFound means an identifier could not be resolved to an address.
	KindNotFound ErrorKind = iota + 1
	// KindUpstreamUnavailable means an upstream API answered with a non-success status.
	KindUpstreamUnavailable
	// KindNoData means the upstream succeeded but had nothing to report.
	KindNoData
	// KindPresentationOverflow means a rendered reply exceeded the platform size limit.
	KindPresentationOverflow
)

func (k ErrorKind) String() string {
	switch k {
	case KindNotFound:
		return "not_found"
	case KindUpstreamUnavailable:
		return "upstream_unavailable"
	case KindNoData:
		return "no_data"
	case KindPresentationOverflow:
		return "presentation_overflow"
	default:
		return "unknown"
	}
}

// ScanError is a command outcome whose Message is shown to the user verbatim.
type ScanError struct {
	Kind    ErrorKind
	Message string
	Err     error
}

func (e *ScanError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *ScanError) Unwrap() error { return e.Err }

// NewScanError creates a ScanError of the given kind.
func NewScanError(kind ErrorKind, message string) *ScanError {
	return &ScanError{Kind: kind, Message: message}
}

// AsScanError extracts a ScanError from err's chain.
func AsScanError(err error) (*ScanError, bool) {
	var se *ScanError
	if errors.As(err, &se) {
		return se, true
	}
	return nil, false
}

// IsKind reports whether err carries a ScanError of the given kind.
func IsKind(err error, kind ErrorKind) bool {
	se, ok := AsScanError(err)
	return ok && se.Kind == kind
}
