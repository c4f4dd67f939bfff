package storage

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/biofool/closedcaption-spellchecker/caption"
)

func newTestStore(t *testing.T) *JSONStore {
	t.Helper()
	store, err := NewJSONStore(filepath.Join(t.TempDir(), "ccspell.json"))
	if err != nil {
		t.Fatalf("NewJSONStore() error = %v", err)
	}
	t.Cleanup(func() { store.Close() })
	return store
}

func testVideo() *Video {
	return &Video{
		YouTubeID:  "dQw4w9WgXcQ",
		Title:      "Aikido Basics",
		URL:        "https://www.youtube.com/watch?v=dQw4w9WgXcQ",
		UploadDate: "20260115",
	}
}

func TestNewJSONStore(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "ccspell.json")

	store, err := NewJSONStore(path)
	if err != nil {
		t.Fatalf("NewJSONStore() error = %v", err)
	}
	defer store.Close()

	// The empty store is written immediately so permission problems surface
	// at open time.
	if _, err := os.Stat(path); err != nil {
		t.Errorf("store file not created: %v", err)
	}
}

func TestNewJSONStoreCorruptFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "ccspell.json")
	if err := os.WriteFile(path, []byte("{broken"), 0o644); err != nil {
		t.Fatal(err)
	}

	_, err := NewJSONStore(path)
	if !errors.Is(err, ErrStorageCorrupt) {
		t.Errorf("error = %v, want ErrStorageCorrupt", err)
	}
}

func TestCreateAndGetVideo(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	video := testVideo()
	if err := store.CreateVideo(ctx, video); err != nil {
		t.Fatalf("CreateVideo() error = %v", err)
	}
	if video.ID == "" {
		t.Error("CreateVideo() did not assign an ID")
	}
	if video.CreatedAt.IsZero() {
		t.Error("CreateVideo() did not set CreatedAt")
	}

	got, err := store.GetVideo(ctx, video.ID)
	if err != nil {
		t.Fatalf("GetVideo() error = %v", err)
	}
	if got.Title != video.Title {
		t.Errorf("Title = %q, want %q", got.Title, video.Title)
	}

	byYT, err := store.GetVideoByYouTubeID(ctx, video.YouTubeID)
	if err != nil {
		t.Fatalf("GetVideoByYouTubeID() error = %v", err)
	}
	if byYT.ID != video.ID {
		t.Errorf("internal ID = %q, want %q", byYT.ID, video.ID)
	}
}

func TestCreateVideoDuplicateYouTubeID(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	if err := store.CreateVideo(ctx, testVideo()); err != nil {
		t.Fatal(err)
	}

	err := store.CreateVideo(ctx, testVideo())
	if !errors.Is(err, ErrAlreadyExists) {
		t.Errorf("error = %v, want ErrAlreadyExists", err)
	}
}

func TestCreateVideoMissingYouTubeID(t *testing.T) {
	store := newTestStore(t)

	err := store.CreateVideo(context.Background(), &Video{Title: "no id"})
	if !errors.Is(err, ErrInvalidInput) {
		t.Errorf("error = %v, want ErrInvalidInput", err)
	}
}

func TestGetVideoNotFound(t *testing.T) {
	store := newTestStore(t)

	_, err := store.GetVideo(context.Background(), "nope")
	if !errors.Is(err, ErrNotFound) {
		t.Errorf("error = %v, want ErrNotFound", err)
	}

	var storErr *StorageError
	if !errors.As(err, &storErr) {
		t.Fatalf("error = %T, want *StorageError", err)
	}
	if storErr.Op != "read" || storErr.Entity != "video" {
		t.Errorf("Op=%q Entity=%q, want read video", storErr.Op, storErr.Entity)
	}
}

func TestMarkSpellChecked(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	video := testVideo()
	if err := store.CreateVideo(ctx, video); err != nil {
		t.Fatal(err)
	}

	if err := store.MarkSpellChecked(ctx, video.ID); err != nil {
		t.Fatalf("MarkSpellChecked() error = %v", err)
	}

	got, err := store.GetVideo(ctx, video.ID)
	if err != nil {
		t.Fatal(err)
	}
	if !got.SpellChecked {
		t.Error("SpellChecked = false, want true")
	}
	if got.SpellCheckedAt.IsZero() {
		t.Error("SpellCheckedAt not set")
	}

	if err := store.MarkSpellChecked(ctx, "nope"); !errors.Is(err, ErrNotFound) {
		t.Errorf("error = %v, want ErrNotFound", err)
	}
}

func TestMarkUploaded(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	video := testVideo()
	if err := store.CreateVideo(ctx, video); err != nil {
		t.Fatal(err)
	}

	if err := store.MarkUploaded(ctx, video.ID); err != nil {
		t.Fatalf("MarkUploaded() error = %v", err)
	}

	got, err := store.GetVideo(ctx, video.ID)
	if err != nil {
		t.Fatal(err)
	}
	if got.LastUploadedAt.IsZero() {
		t.Error("LastUploadedAt not set")
	}
}

func TestListVideosNeedingReview(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	checked := &Video{YouTubeID: "aaaaaaaaaaa", Title: "done"}
	pending := &Video{YouTubeID: "bbbbbbbbbbb", Title: "pending"}
	for _, v := range []*Video{checked, pending} {
		if err := store.CreateVideo(ctx, v); err != nil {
			t.Fatal(err)
		}
	}
	if err := store.MarkSpellChecked(ctx, checked.ID); err != nil {
		t.Fatal(err)
	}

	videos, err := store.ListVideosNeedingReview(ctx)
	if err != nil {
		t.Fatalf("ListVideosNeedingReview() error = %v", err)
	}
	if len(videos) != 1 || videos[0].ID != pending.ID {
		t.Errorf("got %d videos, want only the pending one", len(videos))
	}
}

func TestCaptionLifecycle(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	video := testVideo()
	if err := store.CreateVideo(ctx, video); err != nil {
		t.Fatal(err)
	}

	captions := &CaptionSet{
		VideoID:  video.ID,
		Language: "en",
		Segments: []caption.Segment{
			{Start: 0, End: 2, Text: "welcome to the dojo"},
		},
		FullText: "welcome to the dojo",
		Source:   "youtube",
	}
	if err := store.CreateCaptions(ctx, captions); err != nil {
		t.Fatalf("CreateCaptions() error = %v", err)
	}

	got, err := store.GetVideo(ctx, video.ID)
	if err != nil {
		t.Fatal(err)
	}
	if !got.HasCaptions {
		t.Error("HasCaptions = false after CreateCaptions")
	}

	loaded, err := store.GetCaptions(ctx, video.ID)
	if err != nil {
		t.Fatalf("GetCaptions() error = %v", err)
	}
	if len(loaded.Segments) != 1 || loaded.Segments[0].Text != "welcome to the dojo" {
		t.Errorf("segments = %+v", loaded.Segments)
	}

	if err := store.CreateCaptions(ctx, captions); !errors.Is(err, ErrAlreadyExists) {
		t.Errorf("second create error = %v, want ErrAlreadyExists", err)
	}

	if err := store.DeleteCaptions(ctx, video.ID); err != nil {
		t.Fatalf("DeleteCaptions() error = %v", err)
	}
	got, err = store.GetVideo(ctx, video.ID)
	if err != nil {
		t.Fatal(err)
	}
	if got.HasCaptions {
		t.Error("HasCaptions = true after DeleteCaptions")
	}
}

func TestDeleteVideoRemovesCaptions(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	video := testVideo()
	if err := store.CreateVideo(ctx, video); err != nil {
		t.Fatal(err)
	}
	if err := store.CreateCaptions(ctx, &CaptionSet{VideoID: video.ID, Language: "en"}); err != nil {
		t.Fatal(err)
	}

	if err := store.DeleteVideo(ctx, video.ID); err != nil {
		t.Fatalf("DeleteVideo() error = %v", err)
	}
	if _, err := store.GetCaptions(ctx, video.ID); !errors.Is(err, ErrNotFound) {
		t.Errorf("captions error = %v, want ErrNotFound", err)
	}
	if _, err := store.GetVideoByYouTubeID(ctx, video.YouTubeID); !errors.Is(err, ErrNotFound) {
		t.Errorf("index lookup error = %v, want ErrNotFound", err)
	}
}

func TestPersistenceAcrossReopen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "ccspell.json")
	ctx := context.Background()

	store, err := NewJSONStore(path)
	if err != nil {
		t.Fatal(err)
	}
	video := testVideo()
	if err := store.CreateVideo(ctx, video); err != nil {
		t.Fatal(err)
	}
	if err := store.Close(); err != nil {
		t.Fatal(err)
	}

	reopened, err := NewJSONStore(path)
	if err != nil {
		t.Fatalf("reopen error = %v", err)
	}
	defer reopened.Close()

	got, err := reopened.GetVideoByYouTubeID(ctx, video.YouTubeID)
	if err != nil {
		t.Fatalf("GetVideoByYouTubeID() after reopen error = %v", err)
	}
	if got.Title != video.Title {
		t.Errorf("Title = %q, want %q", got.Title, video.Title)
	}
}

func TestBackupOriginal(t *testing.T) {
	dir := t.TempDir()
	originalsDir := filepath.Join(dir, "originals")
	captionPath := filepath.Join(dir, "track.vtt")
	if err := os.WriteFile(captionPath, []byte("WEBVTT\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	backupPath, err := BackupOriginal(originalsDir, "dQw4w9WgXcQ", captionPath)
	if err != nil {
		t.Fatalf("BackupOriginal() error = %v", err)
	}
	if filepath.Base(backupPath) != "dQw4w9WgXcQ.vtt" {
		t.Errorf("backup path = %q", backupPath)
	}

	// A second backup must not overwrite the first.
	if err := os.WriteFile(captionPath, []byte("WEBVTT\nchanged\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	again, err := BackupOriginal(originalsDir, "dQw4w9WgXcQ", captionPath)
	if err != nil {
		t.Fatalf("second BackupOriginal() error = %v", err)
	}
	if again != backupPath {
		t.Errorf("second backup path = %q, want %q", again, backupPath)
	}

	data, err := os.ReadFile(backupPath)
	if err != nil {
		t.Fatal(err)
	}
	if string(data) != "WEBVTT\n" {
		t.Errorf("backup content = %q, original was overwritten", data)
	}
}

func TestBackupOriginalMissingSource(t *testing.T) {
	dir := t.TempDir()
	_, err := BackupOriginal(filepath.Join(dir, "originals"), "vid", filepath.Join(dir, "absent.vtt"))
	if err == nil {
		t.Fatal("expected error for missing caption file")
	}
	var storErr *StorageError
	if !errors.As(err, &storErr) || storErr.Op != "backup" {
		t.Errorf("error = %v, want backup StorageError", err)
	}
}

func TestFileLockBlocksSecondOpen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "ccspell.json")

	store, err := NewJSONStore(path)
	if err != nil {
		t.Fatal(err)
	}
	defer store.Close()

	lock := NewFileLock(path)
	if err := lock.Lock(50 * time.Millisecond); !errors.Is(err, ErrLockTimeout) {
		t.Errorf("second lock error = %v, want ErrLockTimeout", err)
		lock.Unlock()
	}
}
