package ccspell

import (
	"github.com/biofool/closedcaption-spellchecker/caption"
)

// Clean validates a cue sequence and collapses the rolling-caption
// redundancy out of it. The input is never modified.
func Clean(segs []caption.Segment) ([]caption.Segment, error) {
	if err := caption.ValidateSequence(segs); err != nil {
		return nil, err
	}
	return caption.Deduplicate(segs), nil
}

// CleanTrack parses raw caption content and deduplicates the cues.
func CleanTrack(content string) []caption.Segment {
	return caption.Deduplicate(caption.ParseCues(content))
}

// CleanFile reads a caption file, parses it, and deduplicates the cues.
// A read failure is reported as a *ReadError matching ErrReadFailure.
func CleanFile(path string) ([]caption.Segment, error) {
	segs, err := caption.ParseFile(path)
	if err != nil {
		return nil, err
	}
	return caption.Deduplicate(segs), nil
}
