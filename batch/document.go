package batch

import (
	"fmt"
	"sort"
	"strings"
	"time"
)

// DocumentFormat selects the combined-document rendering.
type DocumentFormat string

const (
	// DocumentText renders a plain-text document with ruled headers.
	DocumentText DocumentFormat = "text"
	// DocumentMarkdown renders a markdown document with per-video sections.
	DocumentMarkdown DocumentFormat = "markdown"
)

const ruleWidth = 80

// DocumentOptions controls Concatenate output.
type DocumentOptions struct {
	// Format selects text or markdown rendering; defaults to text.
	Format DocumentFormat
	// IncludeMetadata adds title, date, and URL headers per video.
	IncludeMetadata bool
	// NewestFirst reverses the chronological ordering.
	NewestFirst bool
	// GeneratedAt stamps the document header; zero means time.Now().
	// Tests set it for deterministic output.
	GeneratedAt time.Time
}

// Concatenate joins the full text of all videos into one document, ordered
// by upload date. Videos without a parseable upload date always sort last.
func Concatenate(videos []Video, opts DocumentOptions) string {
	sorted := make([]Video, len(videos))
	copy(sorted, videos)

	sort.SliceStable(sorted, func(i, j int) bool {
		ti, iOK := parseUploadDate(sorted[i].UploadDate)
		tj, jOK := parseUploadDate(sorted[j].UploadDate)
		if iOK != jOK {
			return iOK
		}
		if !iOK {
			return false
		}
		if opts.NewestFirst {
			return ti.After(tj)
		}
		return ti.Before(tj)
	})

	generated := opts.GeneratedAt
	if generated.IsZero() {
		generated = time.Now()
	}

	if opts.Format == DocumentMarkdown {
		return renderMarkdown(sorted, opts, generated)
	}
	return renderText(sorted, opts, generated)
}

func renderMarkdown(videos []Video, opts DocumentOptions, generated time.Time) string {
	var lines []string
	lines = append(lines,
		"# Combined Captions",
		"",
		fmt.Sprintf("*Generated: %s*", generated.Format("2006-01-02 15:04")),
		fmt.Sprintf("*Total videos: %d*", len(videos)),
		"")

	for _, video := range videos {
		if opts.IncludeMetadata {
			lines = append(lines,
				fmt.Sprintf("## %s", video.Title),
				"",
				fmt.Sprintf("**Date:** %s  ", displayDate(video.UploadDate)),
				fmt.Sprintf("**URL:** %s", video.URL),
				"")
		}
		lines = append(lines, video.FullText, "", "---", "")
	}

	return strings.Join(lines, "\n")
}

func renderText(videos []Video, opts DocumentOptions, generated time.Time) string {
	rule := strings.Repeat("=", ruleWidth)

	var lines []string
	lines = append(lines,
		rule,
		"COMBINED CAPTIONS",
		fmt.Sprintf("Generated: %s", generated.Format("2006-01-02 15:04")),
		fmt.Sprintf("Total videos: %d", len(videos)),
		rule,
		"")

	for _, video := range videos {
		if opts.IncludeMetadata {
			lines = append(lines,
				rule,
				fmt.Sprintf("Video: %s", video.Title),
				fmt.Sprintf("Date: %s", displayDate(video.UploadDate)),
				fmt.Sprintf("URL: %s", video.URL),
				rule,
				"")
		}
		lines = append(lines, video.FullText, "", "")
	}

	return strings.Join(lines, "\n")
}

// parseUploadDate parses the YYYYMMDD upload date.
func parseUploadDate(s string) (time.Time, bool) {
	t, err := time.Parse("20060102", s)
	if err != nil {
		return time.Time{}, false
	}
	return t, true
}

// displayDate renders an upload date for headers.
func displayDate(s string) string {
	t, ok := parseUploadDate(s)
	if !ok {
		return "Unknown date"
	}
	return t.Format("2006-01-02")
}
