package storage

import (
	"time"

	"github.com/biofool/closedcaption-spellchecker/caption"
)

// Video represents a YouTube video whose captions are being spell-checked.
// It tracks where the raw caption file lives and how far the video has moved
// through the review workflow.
type Video struct {
	// ID is the internal unique identifier (UUID).
	ID string `json:"id"`
	// YouTubeID is the YouTube video ID (e.g., "dQw4w9WgXcQ").
	YouTubeID string `json:"youtube_id"`
	// Title is the video title.
	Title string `json:"title"`
	// URL is the full watch URL.
	URL string `json:"url,omitempty"`
	// UploadDate is the publish date in YYYYMMDD form, empty when unknown.
	UploadDate string `json:"upload_date,omitempty"`
	// OriginalCaptionPath is where the untouched caption download lives.
	OriginalCaptionPath string `json:"original_caption_path,omitempty"`
	// HasCaptions indicates a cleaned caption set has been stored.
	HasCaptions bool `json:"has_captions"`
	// SpellChecked indicates the corrected captions passed review.
	SpellChecked bool `json:"spell_checked"`
	// SpellCheckedAt is when the review was completed.
	SpellCheckedAt time.Time `json:"spell_checked_at,omitempty"`
	// LastUploadedAt is when corrected captions were last pushed back.
	LastUploadedAt time.Time `json:"last_uploaded_at,omitempty"`
	// CreatedAt is when this video was first tracked.
	CreatedAt time.Time `json:"created_at"`
	// UpdatedAt is when this record was last modified.
	UpdatedAt time.Time `json:"updated_at"`
}

// CaptionSet holds the cleaned caption track for a video in one language.
type CaptionSet struct {
	// VideoID is a foreign key reference to Video.ID.
	VideoID string `json:"video_id"`
	// Language is the ISO 639-1 language code (e.g., "en").
	Language string `json:"language"`
	// Segments are the cleaned, deduplicated cues.
	Segments []caption.Segment `json:"segments,omitempty"`
	// FullText is the space-joined segment text for review and search.
	FullText string `json:"full_text"`
	// Source indicates where the captions came from ("youtube", "manual").
	Source string `json:"source"`
	// CreatedAt is when this caption set was first stored.
	CreatedAt time.Time `json:"created_at"`
	// UpdatedAt is when this caption set was last modified.
	UpdatedAt time.Time `json:"updated_at"`
}
