package caption

import "strings"

// Thresholds tuned against observed YouTube rolling-caption exports.
// Downstream tooling keys off the exact cleaned text, so these are fixed
// policy constants rather than per-call options.
const (
	// transitionMaxDuration is the duration in seconds below which a cue
	// can be a rolling-caption transition artifact.
	transitionMaxDuration = 0.25
	// minOverlapChars is the smallest boundary overlap worth detecting.
	minOverlapChars = 5
	// mergeOverlapChars is the overlap length above which adjacent
	// segments are merged into one.
	mergeOverlapChars = 10
	// maxRollingWindow is the largest word window checked for rolling
	// overlap between adjacent segments.
	maxRollingWindow = 4
)

// Deduplicate removes the redundancy introduced by YouTube's two-line
// rolling caption export, where each timing block repeats text from its
// neighbors:
//
//	"Okay. So, Shane,"
//	"Okay. So, Shane, um, push on me a little bit."
//	"um, push on me a little bit."
//
// Four stages run in order: transition-artifact removal, exact consecutive
// duplicate removal, neighbor-containment removal, and boundary-overlap
// merging. The input slice is never modified; sequences of length 0 or 1
// pass through every stage unchanged. The transformation is deterministic,
// single-pass per stage, and idempotent over the full pipeline.
func Deduplicate(segs []Segment) []Segment {
	segs = dropTransitionArtifacts(segs)
	if len(segs) <= 1 {
		return segs
	}

	segs = dropExactDuplicates(segs)
	if len(segs) <= 1 {
		return segs
	}

	segs = dropContainedSegments(segs)
	return mergeOverlapping(segs)
}

// dropTransitionArtifacts removes near-zero-duration cues that exist only to
// bridge a rolling-caption line transition. A cue is an artifact iff its
// duration is under transitionMaxDuration and the immediately following
// cue's lowercased text already contains its lowercased text. Comparison is
// forward-only and always against the original next cue.
func dropTransitionArtifacts(segs []Segment) []Segment {
	kept := make([]Segment, 0, len(segs))
	for i, seg := range segs {
		if seg.End-seg.Start < transitionMaxDuration && i+1 < len(segs) {
			cur := strings.ToLower(strings.TrimSpace(seg.Text))
			next := strings.ToLower(strings.TrimSpace(segs[i+1].Text))
			if strings.Contains(next, cur) {
				continue
			}
		}
		kept = append(kept, seg)
	}
	return kept
}

// dropExactDuplicates removes cues whose text is byte-identical to the last
// kept cue's text, so runs of duplicates collapse to a single cue.
func dropExactDuplicates(segs []Segment) []Segment {
	kept := make([]Segment, 0, len(segs))
	var prevText string
	for i, seg := range segs {
		if i == 0 || seg.Text != prevText {
			kept = append(kept, seg)
			prevText = seg.Text
		}
	}
	return kept
}

// dropContainedSegments removes cues wholly represented by a neighbor: an
// incomplete prefix of the next cue, a stray suffix of the previous kept
// cue, or a short fragment the previous cue already rolled through. The
// surviving neighbor absorbs the dropped cue's time span, so no display
// time is lost: a dropped prefix fragment donates its start to the cue that
// supersedes it, and a dropped tail fragment extends the previous cue's end.
func dropContainedSegments(segs []Segment) []Segment {
	kept := make([]Segment, 0, len(segs))
	pendingStart := -1.0

	for i, seg := range segs {
		cur := strings.ToLower(strings.TrimSpace(seg.Text))

		if i+1 < len(segs) {
			next := strings.ToLower(strings.TrimSpace(segs[i+1].Text))
			if len(next) > len(cur) && strings.HasPrefix(next, cur) {
				// The next cue is this line grown to completion.
				if pendingStart < 0 {
					pendingStart = seg.Start
				}
				continue
			}
		}

		if len(kept) > 0 {
			last := &kept[len(kept)-1]
			prev := strings.ToLower(strings.TrimSpace(last.Text))
			if (len(prev) > len(cur) && strings.HasSuffix(prev, cur)) ||
				(len(cur) < len(prev) && hasRollingOverlap(prev, cur)) {
				// Fragment already captured by the previous cue.
				if seg.End > last.End {
					last.End = seg.End
				}
				pendingStart = -1
				continue
			}
		}

		if pendingStart >= 0 {
			seg.Start = pendingStart
			pendingStart = -1
		}
		kept = append(kept, seg)
	}
	return kept
}

// mergeOverlapping merges adjacent cues whose boundary text overlaps by more
// than mergeOverlapChars, extending the earlier cue instead of emitting a
// second one. The merged cue keeps the earlier start, takes the later end,
// and preserves the original casing of whichever fragment contributed each
// part of the text.
func mergeOverlapping(segs []Segment) []Segment {
	result := make([]Segment, 0, len(segs))
	for _, seg := range segs {
		if len(result) == 0 {
			result = append(result, seg)
			continue
		}

		prev := result[len(result)-1]
		overlap := findTextOverlap(prev.Text, seg.Text)
		if len(overlap) > mergeOverlapChars {
			result[len(result)-1] = Segment{
				Start: prev.Start,
				End:   seg.End,
				Text:  prev.Text + seg.Text[len(overlap):],
			}
		} else {
			result = append(result, seg)
		}
	}
	return result
}

// hasRollingOverlap reports whether cur begins with the trailing words of
// prev, the signature of a rolling caption boundary. Word windows from
// min(maxRollingWindow, words(prev)) down to 2 are tried; both texts need
// at least two words.
func hasRollingOverlap(prev, cur string) bool {
	prevWords := strings.Fields(prev)
	curWords := strings.Fields(cur)
	if len(prevWords) < 2 || len(curWords) < 2 {
		return false
	}

	maxWindow := maxRollingWindow
	if len(prevWords) < maxWindow {
		maxWindow = len(prevWords)
	}

	for window := maxWindow; window >= 2; window-- {
		tail := strings.Join(prevWords[len(prevWords)-window:], " ")
		head := window
		if head > len(curWords) {
			head = len(curWords)
		}
		if strings.EqualFold(tail, strings.Join(curWords[:head], " ")) {
			return true
		}
	}
	return false
}

// findTextOverlap returns the suffix of prev that case-insensitively
// prefixes cur, or "" when no overlap of at least minOverlapChars exists.
// The scan starts at the shortest qualifying suffix and grows it until one
// matches; the returned string keeps prev's original casing.
func findTextOverlap(prev, cur string) string {
	lowerCur := strings.ToLower(cur)
	for i := len(prev) - minOverlapChars; i >= 0; i-- {
		suffix := prev[i:]
		if strings.HasPrefix(lowerCur, strings.ToLower(suffix)) {
			return suffix
		}
	}
	return ""
}
