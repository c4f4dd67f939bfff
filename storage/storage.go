// Package storage persists the spell-check workflow state: which videos are
// tracked, their cleaned caption sets, and how far each has moved through
// review and re-upload.
package storage

import (
	"context"
	"errors"
	"fmt"
)

// Sentinel errors for common storage conditions.
var (
	// ErrNotFound indicates the requested entity was not found.
	ErrNotFound = errors.New("storage: not found")
	// ErrAlreadyExists indicates the entity already exists in storage.
	ErrAlreadyExists = errors.New("storage: already exists")
	// ErrInvalidInput indicates invalid or malformed input was provided.
	ErrInvalidInput = errors.New("storage: invalid input")
	// ErrStorageCorrupt indicates data corruption was detected.
	ErrStorageCorrupt = errors.New("storage: data corruption detected")
	// ErrLockTimeout indicates a timeout acquiring a file lock.
	ErrLockTimeout = errors.New("storage: lock acquisition timeout")
)

// StorageError wraps storage errors with operation and entity context.
// Use errors.As() to extract this error type and get operation details:
//
//	var storErr *storage.StorageError
//	if errors.As(err, &storErr) {
//		fmt.Printf("Failed to %s %s %s: %v\n", storErr.Op, storErr.Entity, storErr.ID, storErr.Err)
//	}
type StorageError struct {
	// Op is the operation that failed ("create", "read", "update", "delete").
	Op string
	// Entity is the entity type ("video", "captions", etc.).
	Entity string
	// ID is the entity ID if applicable.
	ID string
	// Err is the underlying error that occurred.
	Err error
}

// Error returns a string representation of the storage error.
func (e *StorageError) Error() string {
	if e.ID != "" {
		return fmt.Sprintf("storage: %s %s %s: %v", e.Op, e.Entity, e.ID, e.Err)
	}
	return fmt.Sprintf("storage: %s %s: %v", e.Op, e.Entity, e.Err)
}

// Unwrap returns the underlying error for use with errors.Is() and errors.As().
func (e *StorageError) Unwrap() error { return e.Err }

// Store is the main storage interface for all spell-check tracking data.
// Implementations must be safe for concurrent use.
type Store interface {
	VideoStore
	CaptionStore

	// Close releases any resources held by the store.
	Close() error
}

// VideoStore handles video CRUD and workflow-state operations.
type VideoStore interface {
	// CreateVideo saves a new video to storage.
	CreateVideo(ctx context.Context, video *Video) error
	// GetVideo retrieves a video by its internal ID.
	GetVideo(ctx context.Context, id string) (*Video, error)
	// GetVideoByYouTubeID retrieves a video by its YouTube ID.
	GetVideoByYouTubeID(ctx context.Context, youtubeID string) (*Video, error)
	// UpdateVideo updates an existing video record.
	UpdateVideo(ctx context.Context, video *Video) error
	// DeleteVideo removes a video from storage.
	DeleteVideo(ctx context.Context, id string) error
	// ListVideos retrieves all tracked videos.
	ListVideos(ctx context.Context) ([]*Video, error)
	// ListVideosNeedingReview retrieves videos not yet marked spell-checked.
	ListVideosNeedingReview(ctx context.Context) ([]*Video, error)
	// MarkSpellChecked records that a video's captions passed review.
	MarkSpellChecked(ctx context.Context, id string) error
	// MarkUploaded records that corrected captions were pushed back.
	MarkUploaded(ctx context.Context, id string) error
}

// CaptionStore handles cleaned caption set CRUD operations.
type CaptionStore interface {
	// CreateCaptions saves a new caption set for a video.
	CreateCaptions(ctx context.Context, captions *CaptionSet) error
	// GetCaptions retrieves the caption set for a specific video.
	GetCaptions(ctx context.Context, videoID string) (*CaptionSet, error)
	// UpdateCaptions updates an existing caption set.
	UpdateCaptions(ctx context.Context, captions *CaptionSet) error
	// DeleteCaptions removes the caption set for a video.
	DeleteCaptions(ctx context.Context, videoID string) error
}
