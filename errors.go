package ccspell

import (
	"github.com/biofool/closedcaption-spellchecker/caption"
	"github.com/biofool/closedcaption-spellchecker/storage"
	"github.com/biofool/closedcaption-spellchecker/youtube"
)

// Error handling types exported for library users.
//
// All error types support the standard error handling patterns:
//
// Using errors.Is() for sentinel errors:
//
//	if errors.Is(err, ccspell.ErrReadFailure) {
//		fmt.Println("caption file unreadable")
//	}
//
// Using errors.As() for wrapped errors:
//
//	var storErr *ccspell.StorageError
//	if errors.As(err, &storErr) {
//		fmt.Printf("Failed to %s %s: %v\n", storErr.Op, storErr.Entity, storErr.Err)
//	}

// Type aliases for convenient error handling.
type (
	// ReadError wraps failures reading a caption source.
	ReadError = caption.ReadError
	// StorageError wraps errors during storage operations.
	StorageError = storage.StorageError
)

// Sentinel errors exported from sub-packages.
var (
	// ErrReadFailure indicates a caption source could not be read.
	ErrReadFailure = caption.ErrReadFailure
	// ErrInvalidSegment indicates a segment violates the caller contract.
	ErrInvalidSegment = caption.ErrInvalidSegment
	// ErrInvalidURL indicates a URL does not carry the requested identifier.
	ErrInvalidURL = youtube.ErrInvalidURL

	// Storage errors
	// ErrNotFound indicates an entity was not found in storage.
	ErrNotFound = storage.ErrNotFound
	// ErrAlreadyExists indicates an entity already exists in storage.
	ErrAlreadyExists = storage.ErrAlreadyExists
	// ErrInvalidInput indicates invalid input was provided.
	ErrInvalidInput = storage.ErrInvalidInput
	// ErrStorageCorrupt indicates data corruption was detected.
	ErrStorageCorrupt = storage.ErrStorageCorrupt
	// ErrLockTimeout indicates a timeout acquiring a file lock.
	ErrLockTimeout = storage.ErrLockTimeout
)
