// Package batch assembles cleaned caption tracks into review batches, the
// JSON documents a human (or an LLM) spell-checks in one sitting, and
// concatenates reviewed batches into combined transcript documents.
package batch

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/biofool/closedcaption-spellchecker/caption"
	"github.com/biofool/closedcaption-spellchecker/storage"
	"github.com/biofool/closedcaption-spellchecker/terminology"
)

// Video is one video's cleaned captions inside a batch.
type Video struct {
	// VideoID is the YouTube video ID.
	VideoID string `json:"video_id"`
	// Title is the video title.
	Title string `json:"title"`
	// URL is the watch URL.
	URL string `json:"url"`
	// UploadDate is the publish date in YYYYMMDD form, empty when unknown.
	UploadDate string `json:"upload_date,omitempty"`
	// Segments are the cleaned, deduplicated cues.
	Segments []caption.Segment `json:"segments"`
	// FullText is the space-joined segment text for whole-track review.
	FullText string `json:"full_text"`
}

// Batch is a numbered set of videos prepared for spell-check review.
type Batch struct {
	// Number identifies the batch within a run.
	Number int `json:"batch_number"`
	// Size is the count of videos that made it into the batch.
	Size int `json:"batch_size"`
	// CreatedAt is when the batch was assembled.
	CreatedAt time.Time `json:"created_at"`
	// MappingApplied indicates terminology corrections were applied.
	MappingApplied bool `json:"mapping_applied"`
	// MappingFile is the mapping file used, empty when none.
	MappingFile string `json:"mapping_file,omitempty"`
	// Videos are the batch contents.
	Videos []Video `json:"videos"`
}

// Builder assembles review batches, applying terminology corrections when a
// mapper is set.
type Builder struct {
	mapper      *terminology.Mapper
	mappingFile string
}

// NewBuilder creates a builder. mapper may be nil or empty, in which case no
// corrections are applied; mappingFile is recorded in the batch for
// traceability.
func NewBuilder(mapper *terminology.Mapper, mappingFile string) *Builder {
	return &Builder{mapper: mapper, mappingFile: mappingFile}
}

// Add appends a video's cleaned segments to the given batch, applying
// terminology corrections segment-wise and to the assembled full text.
func (b *Builder) Add(batch *Batch, videoID, title, url, uploadDate string, segs []caption.Segment) {
	if b.applyMapping() {
		segs = b.mapper.ApplySegments(segs)
	}

	texts := make([]string, len(segs))
	for i, seg := range segs {
		texts[i] = seg.Text
	}
	fullText := strings.Join(texts, " ")
	if b.applyMapping() {
		fullText = b.mapper.Apply(fullText)
	}

	batch.Videos = append(batch.Videos, Video{
		VideoID:    videoID,
		Title:      title,
		URL:        url,
		UploadDate: uploadDate,
		Segments:   segs,
		FullText:   fullText,
	})
	batch.Size = len(batch.Videos)
}

// Build creates an empty batch with bookkeeping filled in.
func (b *Builder) Build(number int) *Batch {
	return &Batch{
		Number:         number,
		CreatedAt:      time.Now(),
		MappingApplied: b.applyMapping(),
		MappingFile:    b.recordedMappingFile(),
	}
}

func (b *Builder) applyMapping() bool {
	return b.mapper != nil && !b.mapper.IsEmpty()
}

func (b *Builder) recordedMappingFile() string {
	if !b.applyMapping() {
		return ""
	}
	return b.mappingFile
}

// Watermark appends a timestamp watermark cue to every video in the batch
// and refreshes each video's FullText to include it. A zero time means now.
func Watermark(batch *Batch, opts caption.WatermarkOptions, at time.Time) {
	for i := range batch.Videos {
		v := &batch.Videos[i]
		v.Segments = caption.AddWatermark(v.Segments, opts, at)

		texts := make([]string, len(v.Segments))
		for j, seg := range v.Segments {
			texts[j] = seg.Text
		}
		v.FullText = strings.Join(texts, " ")
	}
}

// WriteJSON persists the batch as indented JSON, atomically.
func WriteJSON(batch *Batch, path string) error {
	writer, err := storage.NewAtomicWriter(path)
	if err != nil {
		return fmt.Errorf("write batch: %w", err)
	}

	encoder := json.NewEncoder(writer)
	encoder.SetIndent("", "  ")
	if err := encoder.Encode(batch); err != nil {
		writer.Abort()
		return fmt.Errorf("write batch: %w", err)
	}

	return writer.Commit()
}

// ReadJSON loads a batch previously written with WriteJSON.
func ReadJSON(path string) (*Batch, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read batch %s: %w", path, err)
	}

	var batch Batch
	if err := json.Unmarshal(data, &batch); err != nil {
		return nil, fmt.Errorf("parse batch %s: %w", path, err)
	}
	return &batch, nil
}
