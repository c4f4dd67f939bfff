package caption

import (
	"strings"
	"time"
)

// Watermark defaults. The hour-granular timestamp keeps every run within the
// same hour producing identical text, so re-runs can be compared byte for
// byte.
const (
	defaultWatermarkFormat   = "Closed Captions Updated on {timestamp}"
	defaultWatermarkLayout   = "2006-01-02-15"
	defaultWatermarkDuration = 3.0
	defaultWatermarkGap      = 2.0
)

// watermarkMarker identifies a previously appended watermark cue.
const watermarkMarker = "Closed Captions Updated on"

// WatermarkOptions controls the text and placement of the watermark cue
// appended after a track's last segment.
type WatermarkOptions struct {
	// Format is the watermark template. The literal "{timestamp}" is
	// replaced with the formatted time.
	Format string
	// TimestampLayout is the time.Format layout for the timestamp.
	TimestampLayout string
	// Duration is how long the watermark cue displays, in seconds.
	Duration float64
	// Gap is the pause between the last segment and the watermark, in
	// seconds.
	Gap float64
}

// DefaultWatermarkOptions returns the standard watermark settings: the
// "Closed Captions Updated on" template with an hourly timestamp, shown for
// three seconds two seconds after the last segment.
func DefaultWatermarkOptions() WatermarkOptions {
	return WatermarkOptions{
		Format:          defaultWatermarkFormat,
		TimestampLayout: defaultWatermarkLayout,
		Duration:        defaultWatermarkDuration,
		Gap:             defaultWatermarkGap,
	}
}

// WatermarkText renders the watermark text for the given time. A zero time
// means now.
func WatermarkText(opts WatermarkOptions, at time.Time) string {
	if at.IsZero() {
		at = time.Now()
	}
	return strings.ReplaceAll(opts.Format, "{timestamp}", at.Format(opts.TimestampLayout))
}

// AddWatermark returns a copy of segs with a watermark cue appended after
// the latest segment end. Empty input yields a single watermark cue starting
// at zero, with no gap. The input slice is never modified.
func AddWatermark(segs []Segment, opts WatermarkOptions, at time.Time) []Segment {
	result := make([]Segment, len(segs), len(segs)+1)
	copy(result, segs)

	var start float64
	if len(segs) > 0 {
		for _, seg := range segs {
			if seg.End > start {
				start = seg.End
			}
		}
		start += opts.Gap
	}

	return append(result, Segment{
		Start: start,
		End:   start + opts.Duration,
		Text:  WatermarkText(opts, at),
	})
}

// RemoveWatermark strips a trailing watermark cue if one is present, so
// watermarked tracks can be compared against freshly cleaned output. Tracks
// without a watermark pass through unchanged.
func RemoveWatermark(segs []Segment) []Segment {
	if len(segs) == 0 {
		return segs
	}
	if strings.Contains(segs[len(segs)-1].Text, watermarkMarker) {
		return segs[:len(segs)-1]
	}
	return segs
}
