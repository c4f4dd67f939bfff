// Package ccspell reconstructs clean transcripts from YouTube's rolling
// caption exports and prepares them for spell-check review.
//
// YouTube exports auto-generated captions as overlapping two-line cues:
// every spoken line appears up to three times across neighboring cues.
// ccspell collapses that redundancy into a clean, correctly timed cue
// sequence that can be reviewed, corrected, and uploaded back.
//
// Overview
//
// ccspell provides high-level convenience functions for the most common
// operations:
//
//   - CleanFile: Parse a caption file and deduplicate its cues
//   - CleanTrack: Same, from caption content already in memory
//   - Clean: Deduplicate an already-parsed cue sequence
//
// Quick Start
//
// Clean a downloaded caption file:
//
//	segments, err := ccspell.CleanFile("dQw4w9WgXcQ.vtt")
//	if err != nil {
//		log.Fatal(err)
//	}
//	out, err := caption.NewConverter(segments).ToFormat(caption.FormatVTT)
//	if err != nil {
//		log.Fatal(err)
//	}
//	fmt.Print(out)
//
// Configuration
//
// ccspell uses a configuration system that loads settings from multiple
// sources:
//
//   1. Environment variables (highest priority)
//   2. Config file (ccspell.json or ~/.config/ccspell/ccspell.json)
//   3. Default values (lowest priority)
//
// Environment variables:
//
//   - CCSPELL_CACHE_DIR: Working directory for captions, batches, and the store
//   - CCSPELL_MAPPING_FILE: Terminology mapping JSON file
//   - CCSPELL_STORE_FILE: Spell-check tracking store
//   - CCSPELL_BATCH_SIZE: Videos per review batch
//   - CCSPELL_LANGUAGE: Caption language to process
//
// Error Handling
//
// All operations return errors that implement standard Go error handling:
//
// Checking for sentinel errors:
//
//	if errors.Is(err, ccspell.ErrReadFailure) {
//		fmt.Println("caption file unreadable, skipping")
//	}
//
// Extracting wrapped error details:
//
//	var readErr *ccspell.ReadError
//	if errors.As(err, &readErr) {
//		fmt.Printf("Reading %s failed: %v\n", readErr.Path, readErr.Err)
//	}
//
// Advanced Usage
//
// For more control, use the sub-packages directly:
//
//   - caption: Cue parsing, deduplication, and format conversion
//   - terminology: Domain-vocabulary corrections
//   - batch: Review batch assembly and combined documents
//   - storage: Persistent spell-check tracking
//   - youtube: URL classification and normalization
//   - config: Configuration management
package ccspell
