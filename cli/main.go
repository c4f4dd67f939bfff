package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"text/tabwriter"
	"time"

	"github.com/biofool/closedcaption-spellchecker/batch"
	"github.com/biofool/closedcaption-spellchecker/caption"
	"github.com/biofool/closedcaption-spellchecker/config"
	"github.com/biofool/closedcaption-spellchecker/storage"
	"github.com/biofool/closedcaption-spellchecker/terminology"
	"github.com/biofool/closedcaption-spellchecker/youtube"
)

func main() {
	log.SetPrefix("ccspell: ")
	log.SetFlags(0)

	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}

	command := os.Args[1]
	args := os.Args[2:]

	switch command {
	case "clean":
		cmdClean(args)
	case "batch":
		cmdBatch(args)
	case "concat":
		cmdConcat(args)
	case "watermark":
		cmdWatermark(args)
	case "status":
		cmdStatus(args)
	case "help", "-h", "--help":
		printUsage()
	default:
		fmt.Fprintf(os.Stderr, "Error: unknown command %q\n\n", command)
		printUsage()
		os.Exit(1)
	}
}

func printUsage() {
	fmt.Fprintf(os.Stderr, `ccspell - YouTube caption deduplication and spell-check prep

Usage:
  ccspell clean [flags] <caption-file>     Deduplicate a caption file
  ccspell batch [flags] <caption-file>...  Build a spell-check review batch
  ccspell concat [flags] <batch-json>...   Combine batches into one document
  ccspell watermark [flags] <batch-json>   Stamp batch captions with an update watermark
  ccspell status                           List tracked videos
  ccspell help                             Show this help message

Examples:
  ccspell clean dQw4w9WgXcQ.vtt                         # Cleaned VTT to stdout
  ccspell clean --format srt dQw4w9WgXcQ.vtt            # As SRT instead
  ccspell batch --number 2 captions/*.vtt               # Review batch JSON
  ccspell concat --format markdown batches/*.json       # Combined document
  ccspell watermark batches/captions_batch_1.json       # Stamp before upload
  ccspell status                                        # Review progress

For help on specific command: ccspell <command> -h
`)
}

func cmdClean(args []string) {
	fs := flag.NewFlagSet("clean", flag.ExitOnError)
	formatStr := fs.String("format", "vtt", "Output format: vtt, srt, json, or txt")
	mappingFile := fs.String("mapping", "", "Terminology mapping file (default from config)")
	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: ccspell clean [flags] <caption-file>\n\nFlags:\n")
		fs.PrintDefaults()
	}
	fs.Parse(args)

	argv := fs.Args()
	if len(argv) == 0 {
		fmt.Fprintf(os.Stderr, "Error: missing caption-file\n")
		fs.Usage()
		os.Exit(1)
	}

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
		os.Exit(1)
	}

	mapper := loadMapper(cfg, *mappingFile)

	segs, err := caption.ParseFile(argv[0])
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error reading captions: %v\n", err)
		os.Exit(1)
	}

	segs = caption.Deduplicate(segs)
	if !mapper.IsEmpty() {
		segs = mapper.ApplySegments(segs)
	}

	out, err := caption.NewConverter(segs).ToFormat(caption.Format(*formatStr))
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	fmt.Print(out)
	fmt.Fprintf(os.Stderr, "Cleaned %s: %d segments\n", argv[0], len(segs))
}

func cmdBatch(args []string) {
	fs := flag.NewFlagSet("batch", flag.ExitOnError)
	number := fs.Int("number", 1, "Batch number")
	mappingFile := fs.String("mapping", "", "Terminology mapping file (default from config)")
	output := fs.String("o", "", "Output file (default: <output-dir>/captions_batch_<n>.json)")
	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: ccspell batch [flags] <caption-file>...\n\nFlags:\n")
		fs.PrintDefaults()
	}
	fs.Parse(args)

	argv := fs.Args()
	if len(argv) == 0 {
		fmt.Fprintf(os.Stderr, "Error: missing caption files\n")
		fs.Usage()
		os.Exit(1)
	}

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
		os.Exit(1)
	}

	store, err := storage.NewJSONStore(cfg.StoreFile)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error opening store: %v\n", err)
		os.Exit(1)
	}
	defer store.Close()

	mapper := loadMapper(cfg, *mappingFile)
	recordedMapping := *mappingFile
	if recordedMapping == "" {
		recordedMapping = cfg.MappingFile
	}

	builder := batch.NewBuilder(mapper, recordedMapping)
	b := builder.Build(*number)

	ctx := context.Background()
	for _, path := range argv {
		videoID := youtube.VideoIDFromFilename(path)

		segs, err := caption.ParseFile(path)
		if err != nil {
			log.Printf("skipping %s: %v", path, err)
			continue
		}

		segs = caption.Deduplicate(segs)
		if len(segs) == 0 {
			log.Printf("skipping %s: no segments", path)
			continue
		}

		builder.Add(b, videoID, videoID, youtube.WatchURL(videoID), "", segs)

		registerVideo(ctx, store, cfg, videoID, path)
	}

	if b.Size == 0 {
		fmt.Fprintf(os.Stderr, "Error: no usable caption files\n")
		os.Exit(1)
	}

	outPath := *output
	if outPath == "" {
		outPath = filepath.Join(cfg.OutputDir(), fmt.Sprintf("captions_batch_%d.json", b.Number))
	}
	if err := batch.WriteJSON(b, outPath); err != nil {
		fmt.Fprintf(os.Stderr, "Error writing batch: %v\n", err)
		os.Exit(1)
	}

	fmt.Fprintf(os.Stderr, "Wrote batch %d (%d videos) to %s\n", b.Number, b.Size, outPath)
}

// registerVideo tracks a video in the store and backs up its raw caption
// file. Already-tracked videos are left alone.
func registerVideo(ctx context.Context, store *storage.JSONStore, cfg *config.Config, videoID, captionPath string) {
	backupPath, err := storage.BackupOriginal(cfg.OriginalsDir(), videoID, captionPath)
	if err != nil {
		log.Printf("backup failed for %s: %v", videoID, err)
	}

	video := &storage.Video{
		YouTubeID:           videoID,
		Title:               videoID,
		URL:                 youtube.WatchURL(videoID),
		OriginalCaptionPath: backupPath,
	}
	if err := store.CreateVideo(ctx, video); err != nil {
		if !errors.Is(err, storage.ErrAlreadyExists) {
			log.Printf("tracking failed for %s: %v", videoID, err)
		}
	}
}

func cmdConcat(args []string) {
	fs := flag.NewFlagSet("concat", flag.ExitOnError)
	formatStr := fs.String("format", "text", "Output format: text or markdown")
	newestFirst := fs.Bool("newest-first", false, "Order newest videos first")
	noMetadata := fs.Bool("no-metadata", false, "Skip per-video title/date/URL headers")
	output := fs.String("o", "", "Output file (default: stdout)")
	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: ccspell concat [flags] <batch-json>...\n\nFlags:\n")
		fs.PrintDefaults()
	}
	fs.Parse(args)

	argv := fs.Args()
	if len(argv) == 0 {
		fmt.Fprintf(os.Stderr, "Error: missing batch files\n")
		fs.Usage()
		os.Exit(1)
	}

	var format batch.DocumentFormat
	switch *formatStr {
	case "text":
		format = batch.DocumentText
	case "markdown":
		format = batch.DocumentMarkdown
	default:
		fmt.Fprintf(os.Stderr, "Error: invalid --format value %q (use text or markdown)\n", *formatStr)
		os.Exit(1)
	}

	var videos []batch.Video
	for _, path := range argv {
		b, err := batch.ReadJSON(path)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error reading batch: %v\n", err)
			os.Exit(1)
		}
		videos = append(videos, b.Videos...)
	}

	doc := batch.Concatenate(videos, batch.DocumentOptions{
		Format:          format,
		IncludeMetadata: !*noMetadata,
		NewestFirst:     *newestFirst,
	})

	if *output == "" {
		fmt.Print(doc)
	} else {
		if err := os.WriteFile(*output, []byte(doc), 0644); err != nil {
			fmt.Fprintf(os.Stderr, "Error writing document: %v\n", err)
			os.Exit(1)
		}
		fmt.Fprintf(os.Stderr, "Wrote %d videos to %s\n", len(videos), *output)
	}
}

func cmdWatermark(args []string) {
	fs := flag.NewFlagSet("watermark", flag.ExitOnError)
	formatStr := fs.String("format", "", "Watermark template, {timestamp} is replaced (default built-in)")
	timestampStr := fs.String("timestamp", "", "Override timestamp as YYYY-MM-DD-HH (default: now)")
	output := fs.String("o", "", "Output file (default: modify in place)")
	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: ccspell watermark [flags] <batch-json>\n\nFlags:\n")
		fs.PrintDefaults()
	}
	fs.Parse(args)

	argv := fs.Args()
	if len(argv) != 1 {
		fmt.Fprintf(os.Stderr, "Error: expected exactly one batch file\n")
		fs.Usage()
		os.Exit(1)
	}

	opts := caption.DefaultWatermarkOptions()
	if *formatStr != "" {
		opts.Format = *formatStr
	}

	var at time.Time
	if *timestampStr != "" {
		var err error
		at, err = time.Parse("2006-01-02-15", *timestampStr)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: invalid --timestamp value %q (use YYYY-MM-DD-HH)\n", *timestampStr)
			os.Exit(1)
		}
	}

	b, err := batch.ReadJSON(argv[0])
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error reading batch: %v\n", err)
		os.Exit(1)
	}

	batch.Watermark(b, opts, at)

	outPath := *output
	if outPath == "" {
		outPath = argv[0]
	}
	if err := batch.WriteJSON(b, outPath); err != nil {
		fmt.Fprintf(os.Stderr, "Error writing batch: %v\n", err)
		os.Exit(1)
	}

	fmt.Fprintf(os.Stderr, "Watermarked %d videos in %s\n", len(b.Videos), outPath)
}

func cmdStatus(args []string) {
	fs := flag.NewFlagSet("status", flag.ExitOnError)
	pendingOnly := fs.Bool("pending", false, "Only show videos not yet spell-checked")
	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: ccspell status [flags]\n\nFlags:\n")
		fs.PrintDefaults()
	}
	fs.Parse(args)

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
		os.Exit(1)
	}

	store, err := storage.NewJSONStore(cfg.StoreFile)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error opening store: %v\n", err)
		os.Exit(1)
	}
	defer store.Close()

	ctx := context.Background()
	var videos []*storage.Video
	if *pendingOnly {
		videos, err = store.ListVideosNeedingReview(ctx)
	} else {
		videos, err = store.ListVideos(ctx)
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error listing videos: %v\n", err)
		os.Exit(1)
	}

	if len(videos) == 0 {
		fmt.Println("No videos tracked.")
		return
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "VIDEO ID\tTITLE\tCAPTIONS\tCHECKED\tUPLOADED")

	for _, v := range videos {
		uploaded := ""
		if !v.LastUploadedAt.IsZero() {
			uploaded = v.LastUploadedAt.Format("2006-01-02")
		}

		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\n",
			v.YouTubeID,
			truncate(v.Title, 50),
			yesNo(v.HasCaptions),
			yesNo(v.SpellChecked),
			uploaded,
		)
	}
	w.Flush()

	fmt.Fprintf(os.Stderr, "\nTotal: %d videos\n", len(videos))
}

// loadMapper loads the terminology mapper, preferring the explicit flag over
// the configured file. A missing mapping file means no corrections.
func loadMapper(cfg *config.Config, override string) *terminology.Mapper {
	path := override
	if path == "" {
		path = cfg.MappingFile
	}

	mapper, err := terminology.LoadMapper(path)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading mapping file: %v\n", err)
		os.Exit(1)
	}
	if !mapper.IsEmpty() {
		log.Printf("loaded %d terminology mappings from %s", mapper.Len(), path)
	}
	return mapper
}

func truncate(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	return s[:maxLen-3] + "..."
}

func yesNo(b bool) string {
	if b {
		return "yes"
	}
	return "no"
}
