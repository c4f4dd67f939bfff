package caption

import (
	"encoding/json"
	"fmt"
	"strings"
)

// Format represents a supported caption output format.
type Format string

const (
	// FormatVTT is the WebVTT format
	FormatVTT Format = "vtt"
	// FormatSRT is the SubRip format
	FormatSRT Format = "srt"
	// FormatJSON is standard JSON format
	FormatJSON Format = "json"
	// FormatPlainText is plain text format (one segment per line)
	FormatPlainText Format = "txt"
)

// Converter renders a segment sequence in the supported caption formats.
type Converter struct {
	segments []Segment
}

// NewConverter creates a converter over the given segments.
func NewConverter(segments []Segment) *Converter {
	return &Converter{segments: segments}
}

// ToFormat renders the segments in the specified format.
func (c *Converter) ToFormat(format Format) (string, error) {
	switch format {
	case FormatVTT:
		return c.toVTT(), nil
	case FormatSRT:
		return c.toSRT(), nil
	case FormatJSON:
		return c.toJSON(), nil
	case FormatPlainText:
		return c.toPlainText(), nil
	default:
		return "", fmt.Errorf("unknown format: %s", format)
	}
}

// toVTT renders WebVTT: the WEBVTT header, then numbered cue blocks.
func (c *Converter) toVTT() string {
	var sb strings.Builder
	sb.WriteString("WEBVTT\n\n")

	for i, seg := range c.segments {
		sb.WriteString(fmt.Sprintf("%d\n", i+1))
		sb.WriteString(fmt.Sprintf("%s --> %s\n", formatTimestamp(seg.Start, "."), formatTimestamp(seg.End, ".")))
		sb.WriteString(seg.Text)
		sb.WriteString("\n\n")
	}

	return sb.String()
}

// toSRT renders SubRip: the same numbered blocks, comma millis, no header.
func (c *Converter) toSRT() string {
	var sb strings.Builder

	for i, seg := range c.segments {
		sb.WriteString(fmt.Sprintf("%d\n", i+1))
		sb.WriteString(fmt.Sprintf("%s --> %s\n", formatTimestamp(seg.Start, ","), formatTimestamp(seg.End, ",")))
		sb.WriteString(seg.Text)
		sb.WriteString("\n\n")
	}

	return sb.String()
}

// toJSON renders an indented JSON document with a top-level segments array.
func (c *Converter) toJSON() string {
	response := map[string]interface{}{
		"segments": c.segments,
	}
	data, _ := json.MarshalIndent(response, "", "  ")
	return string(data)
}

// toPlainText renders one segment text per line, timing discarded.
func (c *Converter) toPlainText() string {
	var sb strings.Builder
	for _, seg := range c.segments {
		sb.WriteString(seg.Text)
		sb.WriteString("\n")
	}
	return sb.String()
}

// formatTimestamp renders seconds as HH:MM:SS<sep>mmm. Milliseconds are
// truncated, not rounded, so formatting then parsing never moves a cue later.
func formatTimestamp(seconds float64, sep string) string {
	total := int(seconds)
	millis := int((seconds - float64(total)) * 1000)
	hours := total / 3600
	minutes := (total % 3600) / 60
	secs := total % 60

	return fmt.Sprintf("%02d:%02d:%02d%s%03d", hours, minutes, secs, sep, millis)
}

// ParseFormat parses caption content in the specified format. This is the
// inverse of Converter.ToFormat. VTT and SRT share the cue-block scanner;
// plain text invents sequential one-second timings since the format carries
// none.
func ParseFormat(content string, format Format) ([]Segment, error) {
	switch format {
	case FormatVTT, FormatSRT:
		return ParseCues(content), nil
	case FormatJSON:
		return parseJSON(content)
	case FormatPlainText:
		return parsePlainText(content), nil
	default:
		return nil, fmt.Errorf("unknown format: %s", format)
	}
}

// parseJSON parses the JSON document form produced by toJSON.
func parseJSON(content string) ([]Segment, error) {
	var result struct {
		Segments []Segment `json:"segments"`
	}

	if err := json.Unmarshal([]byte(content), &result); err != nil {
		return nil, fmt.Errorf("parse JSON: %w", err)
	}

	return result.Segments, nil
}

// parsePlainText parses plain text, one segment per non-empty line.
func parsePlainText(content string) []Segment {
	var segs []Segment

	currentTime := 0.0
	for _, line := range strings.Split(content, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}

		segs = append(segs, Segment{
			Start: currentTime,
			End:   currentTime + 1.0,
			Text:  line,
		})
		currentTime += 1.0
	}

	return segs
}
