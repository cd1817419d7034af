package pipeline

import (
	"fmt"

	"etl-dashboard/internal/model"
)

// UnsupportedSourceError reports an extract call with a source type the
// engine does not implement.
type UnsupportedSourceError struct {
	Source model.SourceType
}

func (e *UnsupportedSourceError) Error() string {
	return fmt.Sprintf("unsupported source type: %q", string(e.Source))
}

// UnsupportedDestinationError reports a load call with a destination the
// engine does not implement.
type UnsupportedDestinationError struct {
	Destination model.Destination
}

func (e *UnsupportedDestinationError) Error() string {
	return fmt.Sprintf("unsupported destination: %q", string(e.Destination))
}

// StateError reports a stage called out of order, e.g. transform before any
// extract has produced a dataset.
type StateError struct {
	Op    string
	State State
}

func (e *StateError) Error() string {
	return fmt.Sprintf("cannot %s in state %q", e.Op, string(e.State))
}

// LoadError wraps an I/O failure during load. The transformed dataset is
// always preserved when a LoadError is returned.
type LoadError struct {
	Destination model.Destination
	Path        string
	Err         error
}

func (e *LoadError) Error() string {
	return fmt.Sprintf("load to %s (%s) failed: %v", e.Destination, e.Path, e.Err)
}

func (e *LoadError) Unwrap() error { return e.Err }

// ParseSourceType validates a source type string against the closed set of
// supported sources.
func ParseSourceType(s string) (model.SourceType, error) {
	switch src := model.SourceType(s); src {
	case model.SourceSample:
		return src, nil
	default:
		return "", &UnsupportedSourceError{Source: src}
	}
}

// ParseDestination validates a destination string against the closed set of
// supported destinations.
func ParseDestination(s string) (model.Destination, error) {
	switch dest := model.Destination(s); dest {
	case model.DestinationMemory, model.DestinationCSV:
		return dest, nil
	default:
		return "", &UnsupportedDestinationError{Destination: dest}
	}
}
