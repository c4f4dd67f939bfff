package storage

import (
	"context"
	"encoding/json"
	"errors"
	"os"
	"sync"
	"time"

	"github.com/google/uuid"
)

const (
	schemaVersion = "1.0"
	lockTimeout   = 5 * time.Second
)

// JSONStore implements Store using a single JSON file.
type JSONStore struct {
	path string
	lock *FileLock
	data *storeData
	mu   sync.RWMutex
}

// storeData is the top-level JSON structure.
type storeData struct {
	Version   string                 `json:"version"`
	UpdatedAt time.Time              `json:"updated_at"`
	Videos    map[string]*Video      `json:"videos"`
	Captions  map[string]*CaptionSet `json:"captions"`
	Indexes   *indexes               `json:"indexes"`
}

// indexes maintains lookup tables for efficient queries.
type indexes struct {
	YouTubeVideoID map[string]string `json:"youtube_video_id"` // youtube_id -> internal_id
}

// NewJSONStore creates a new JSON file store at the given path.
// If the file exists, it is loaded; otherwise an empty store is created.
func NewJSONStore(path string) (*JSONStore, error) {
	s := &JSONStore{
		path: path,
		lock: NewFileLock(path),
	}

	if err := s.lock.Lock(lockTimeout); err != nil {
		return nil, err
	}

	if err := s.load(); err != nil {
		s.lock.Unlock()
		return nil, err
	}

	return s, nil
}

// load reads the JSON file into memory. Creates empty data if file doesn't exist.
func (s *JSONStore) load() error {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			s.data = newStoreData()
			// Save immediately to catch permission errors early
			return s.save()
		}
		return &StorageError{Op: "read", Entity: "store", Err: err}
	}

	s.data = &storeData{}
	if err := json.Unmarshal(data, s.data); err != nil {
		return &StorageError{Op: "read", Entity: "store", Err: ErrStorageCorrupt}
	}

	// Ensure indexes exist
	if s.data.Indexes == nil {
		s.data.Indexes = newIndexes()
	}
	if s.data.Videos == nil {
		s.data.Videos = make(map[string]*Video)
	}
	if s.data.Captions == nil {
		s.data.Captions = make(map[string]*CaptionSet)
	}

	return nil
}

// save persists the data to disk atomically.
func (s *JSONStore) save() error {
	s.data.UpdatedAt = time.Now()

	writer, err := NewAtomicWriter(s.path)
	if err != nil {
		return &StorageError{Op: "write", Entity: "store", Err: err}
	}

	encoder := json.NewEncoder(writer)
	encoder.SetIndent("", "  ")
	if err := encoder.Encode(s.data); err != nil {
		writer.Abort()
		return &StorageError{Op: "write", Entity: "store", Err: err}
	}

	if err := writer.Commit(); err != nil {
		return &StorageError{Op: "write", Entity: "store", Err: err}
	}

	return nil
}

// Close releases resources held by the store.
func (s *JSONStore) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lock.Unlock()
}

func newStoreData() *storeData {
	return &storeData{
		Version:   schemaVersion,
		UpdatedAt: time.Now(),
		Videos:    make(map[string]*Video),
		Captions:  make(map[string]*CaptionSet),
		Indexes:   newIndexes(),
	}
}

func newIndexes() *indexes {
	return &indexes{
		YouTubeVideoID: make(map[string]string),
	}
}

// --- VideoStore implementation ---

func (s *JSONStore) CreateVideo(ctx context.Context, video *Video) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if video.YouTubeID == "" {
		return &StorageError{Op: "create", Entity: "video", Err: ErrInvalidInput}
	}

	if video.ID == "" {
		video.ID = uuid.NewString()
	}

	if _, exists := s.data.Videos[video.ID]; exists {
		return &StorageError{Op: "create", Entity: "video", ID: video.ID, Err: ErrAlreadyExists}
	}

	if _, exists := s.data.Indexes.YouTubeVideoID[video.YouTubeID]; exists {
		return &StorageError{Op: "create", Entity: "video", ID: video.YouTubeID, Err: ErrAlreadyExists}
	}

	now := time.Now()
	video.CreatedAt = now
	video.UpdatedAt = now

	s.data.Videos[video.ID] = video
	s.data.Indexes.YouTubeVideoID[video.YouTubeID] = video.ID

	return s.save()
}

func (s *JSONStore) GetVideo(ctx context.Context, id string) (*Video, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	video, exists := s.data.Videos[id]
	if !exists {
		return nil, &StorageError{Op: "read", Entity: "video", ID: id, Err: ErrNotFound}
	}
	return video, nil
}

func (s *JSONStore) GetVideoByYouTubeID(ctx context.Context, youtubeID string) (*Video, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	id, exists := s.data.Indexes.YouTubeVideoID[youtubeID]
	if !exists {
		return nil, &StorageError{Op: "read", Entity: "video", ID: youtubeID, Err: ErrNotFound}
	}

	video, exists := s.data.Videos[id]
	if !exists {
		return nil, &StorageError{Op: "read", Entity: "video", ID: id, Err: ErrStorageCorrupt}
	}
	return video, nil
}

func (s *JSONStore) UpdateVideo(ctx context.Context, video *Video) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	existing, exists := s.data.Videos[video.ID]
	if !exists {
		return &StorageError{Op: "update", Entity: "video", ID: video.ID, Err: ErrNotFound}
	}

	// Update YouTube ID index if changed
	if existing.YouTubeID != video.YouTubeID {
		delete(s.data.Indexes.YouTubeVideoID, existing.YouTubeID)
		s.data.Indexes.YouTubeVideoID[video.YouTubeID] = video.ID
	}

	video.UpdatedAt = time.Now()
	s.data.Videos[video.ID] = video

	return s.save()
}

func (s *JSONStore) DeleteVideo(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	video, exists := s.data.Videos[id]
	if !exists {
		return &StorageError{Op: "delete", Entity: "video", ID: id, Err: ErrNotFound}
	}

	delete(s.data.Videos, id)
	delete(s.data.Indexes.YouTubeVideoID, video.YouTubeID)
	delete(s.data.Captions, id)

	return s.save()
}

func (s *JSONStore) ListVideos(ctx context.Context) ([]*Video, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	videos := make([]*Video, 0, len(s.data.Videos))
	for _, video := range s.data.Videos {
		videos = append(videos, video)
	}
	return videos, nil
}

func (s *JSONStore) ListVideosNeedingReview(ctx context.Context) ([]*Video, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var videos []*Video
	for _, video := range s.data.Videos {
		if !video.SpellChecked {
			videos = append(videos, video)
		}
	}
	return videos, nil
}

func (s *JSONStore) MarkSpellChecked(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	video, exists := s.data.Videos[id]
	if !exists {
		return &StorageError{Op: "update", Entity: "video", ID: id, Err: ErrNotFound}
	}

	now := time.Now()
	video.SpellChecked = true
	video.SpellCheckedAt = now
	video.UpdatedAt = now

	return s.save()
}

func (s *JSONStore) MarkUploaded(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	video, exists := s.data.Videos[id]
	if !exists {
		return &StorageError{Op: "update", Entity: "video", ID: id, Err: ErrNotFound}
	}

	now := time.Now()
	video.LastUploadedAt = now
	video.UpdatedAt = now

	return s.save()
}

// --- CaptionStore implementation ---

func (s *JSONStore) CreateCaptions(ctx context.Context, captions *CaptionSet) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if captions.VideoID == "" {
		return &StorageError{Op: "create", Entity: "captions", Err: ErrInvalidInput}
	}

	if _, exists := s.data.Captions[captions.VideoID]; exists {
		return &StorageError{Op: "create", Entity: "captions", ID: captions.VideoID, Err: ErrAlreadyExists}
	}

	now := time.Now()
	captions.CreatedAt = now
	captions.UpdatedAt = now

	s.data.Captions[captions.VideoID] = captions

	// Update video's HasCaptions flag
	if video, exists := s.data.Videos[captions.VideoID]; exists {
		video.HasCaptions = true
		video.UpdatedAt = now
	}

	return s.save()
}

func (s *JSONStore) GetCaptions(ctx context.Context, videoID string) (*CaptionSet, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	captions, exists := s.data.Captions[videoID]
	if !exists {
		return nil, &StorageError{Op: "read", Entity: "captions", ID: videoID, Err: ErrNotFound}
	}
	return captions, nil
}

func (s *JSONStore) UpdateCaptions(ctx context.Context, captions *CaptionSet) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.data.Captions[captions.VideoID]; !exists {
		return &StorageError{Op: "update", Entity: "captions", ID: captions.VideoID, Err: ErrNotFound}
	}

	captions.UpdatedAt = time.Now()
	s.data.Captions[captions.VideoID] = captions

	return s.save()
}

func (s *JSONStore) DeleteCaptions(ctx context.Context, videoID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.data.Captions[videoID]; !exists {
		return &StorageError{Op: "delete", Entity: "captions", ID: videoID, Err: ErrNotFound}
	}

	delete(s.data.Captions, videoID)

	// Update video's HasCaptions flag
	if video, exists := s.data.Videos[videoID]; exists {
		video.HasCaptions = false
		video.UpdatedAt = time.Now()
	}

	return s.save()
}
