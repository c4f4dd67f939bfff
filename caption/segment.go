// Package caption parses YouTube caption tracks and reconstructs clean,
// non-redundant transcripts from their two-line rolling export format.
package caption

import (
	"errors"
	"fmt"
	"strings"
)

// Sentinel errors for caption processing.
var (
	// ErrReadFailure indicates the caption source could not be read.
	ErrReadFailure = errors.New("caption: caption source unreadable")
	// ErrInvalidSegment indicates a segment violates the caller contract.
	ErrInvalidSegment = errors.New("caption: invalid segment")
)

// Segment is a single timed caption cue.
type Segment struct {
	// Start is the display start time in seconds.
	Start float64 `json:"start"`
	// End is the display end time in seconds.
	End float64 `json:"end"`
	// Text is the cleaned cue text.
	Text string `json:"text"`
}

// Duration returns the display duration of the segment in seconds.
func (s Segment) Duration() float64 { return s.End - s.Start }

// ValidateSequence checks that every segment satisfies the caller contract:
// non-negative start, end strictly after start, non-empty text. Segments
// produced by ParseCues always satisfy it; sequences supplied directly by
// callers may not.
func ValidateSequence(segs []Segment) error {
	for i, seg := range segs {
		if seg.Start < 0 {
			return fmt.Errorf("segment %d: negative start %.3f: %w", i, seg.Start, ErrInvalidSegment)
		}
		if seg.End <= seg.Start {
			return fmt.Errorf("segment %d: end %.3f not after start %.3f: %w", i, seg.End, seg.Start, ErrInvalidSegment)
		}
		if strings.TrimSpace(seg.Text) == "" {
			return fmt.Errorf("segment %d: empty text: %w", i, ErrInvalidSegment)
		}
	}
	return nil
}

// ReadError wraps a failure to read a caption source. Use errors.Is with
// ErrReadFailure to detect it, or errors.As to recover the path:
//
//	var readErr *caption.ReadError
//	if errors.As(err, &readErr) {
//		log.Printf("skipping %s: %v", readErr.Path, readErr.Err)
//	}
type ReadError struct {
	// Path is the caption file that could not be read.
	Path string
	// Err is the underlying error.
	Err error
}

// Error returns a string representation of the read error.
func (e *ReadError) Error() string {
	return "caption: read " + e.Path + ": " + e.Err.Error()
}

// Unwrap returns the underlying error for use with errors.Is() and errors.As().
func (e *ReadError) Unwrap() error { return e.Err }

// Is reports ErrReadFailure so callers can match the sentinel.
func (e *ReadError) Is(target error) bool { return target == ErrReadFailure }
