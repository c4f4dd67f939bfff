package caption

import (
	"fmt"
	"os"
	"regexp"
	"strconv"
	"strings"
)

var (
	// markupTagRe matches inline markup tags embedded in cue text, such as
	// the <c> and <00:00:01.240> tags in YouTube's auto-caption exports.
	markupTagRe = regexp.MustCompile(`<[^>]*>`)
	// soundOnlyRe matches cues that consist of a single bracketed
	// non-speech annotation like [Music] or [Applause].
	soundOnlyRe = regexp.MustCompile(`^\s*\[[^\]]+\]\s*$`)
)

// ParseFile reads and parses a caption file. A read failure yields a
// *ReadError (matching ErrReadFailure) and no segments; callers processing a
// batch should skip the item rather than abort.
func ParseFile(path string) ([]Segment, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, &ReadError{Path: path, Err: err}
	}
	return ParseCues(string(data)), nil
}

// ParseCues parses raw subtitle-track text (WebVTT or SRT style cue blocks)
// into an ordered segment sequence. Markup tags are stripped, line breaks
// within a cue collapse to single spaces, and cues that are empty or carry
// only a bracketed sound annotation are dropped. A block with a malformed
// timestamp is skipped; parsing continues with the remaining blocks.
func ParseCues(content string) []Segment {
	content = strings.ReplaceAll(content, "\r\n", "\n")

	var segs []Segment
	for _, block := range strings.Split(content, "\n\n") {
		seg, ok := parseBlock(block)
		if !ok {
			continue
		}
		segs = append(segs, seg)
	}
	return segs
}

// parseBlock extracts one segment from a cue block. The block may carry an
// index or cue identifier line before the timing line; everything after the
// timing line is cue text.
func parseBlock(block string) (Segment, bool) {
	lines := strings.Split(block, "\n")

	timing := -1
	for i, line := range lines {
		if strings.Contains(line, "-->") {
			timing = i
			break
		}
	}
	if timing == -1 {
		return Segment{}, false
	}

	parts := strings.SplitN(lines[timing], "-->", 2)
	start, err := parseTimestamp(strings.TrimSpace(parts[0]))
	if err != nil {
		return Segment{}, false
	}

	// The end timestamp may be followed by cue settings ("align:start ...").
	endField := strings.TrimSpace(parts[1])
	if i := strings.IndexAny(endField, " \t"); i != -1 {
		endField = endField[:i]
	}
	end, err := parseTimestamp(endField)
	if err != nil {
		return Segment{}, false
	}

	text := strings.Join(lines[timing+1:], " ")
	text = strings.TrimSpace(markupTagRe.ReplaceAllString(text, ""))
	if text == "" || soundOnlyRe.MatchString(text) {
		return Segment{}, false
	}

	return Segment{Start: start, End: end, Text: text}, true
}

// parseTimestamp converts an HH:MM:SS.mmm timestamp to seconds. Both "." and
// "," are accepted as the decimal separator.
func parseTimestamp(ts string) (float64, error) {
	ts = strings.ReplaceAll(ts, ",", ".")
	parts := strings.Split(ts, ":")
	if len(parts) != 3 {
		return 0, fmt.Errorf("invalid timestamp %q", ts)
	}

	hours, err := strconv.Atoi(parts[0])
	if err != nil {
		return 0, fmt.Errorf("invalid hours in %q: %w", ts, err)
	}
	minutes, err := strconv.Atoi(parts[1])
	if err != nil {
		return 0, fmt.Errorf("invalid minutes in %q: %w", ts, err)
	}
	seconds, err := strconv.ParseFloat(parts[2], 64)
	if err != nil {
		return 0, fmt.Errorf("invalid seconds in %q: %w", ts, err)
	}
	if hours < 0 || minutes < 0 || seconds < 0 {
		return 0, fmt.Errorf("negative component in %q", ts)
	}

	return float64(hours)*3600 + float64(minutes)*60 + seconds, nil
}
