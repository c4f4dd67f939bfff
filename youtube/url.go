// Package youtube classifies and normalizes YouTube URLs. It is pure string
// parsing: nothing here talks to the network.
package youtube

import (
	"errors"
	"path/filepath"
	"regexp"
	"strings"
)

// ErrInvalidURL indicates the URL does not carry the requested identifier.
var ErrInvalidURL = errors.New("youtube: invalid URL")

// URLType classifies a YouTube URL.
type URLType string

const (
	// URLTypeChannel is a channel page URL (including YouTube Studio forms).
	URLTypeChannel URLType = "channel"
	// URLTypePlaylist is a playlist URL.
	URLTypePlaylist URLType = "playlist"
	// URLTypeVideo is a single video URL.
	URLTypeVideo URLType = "video"
	// URLTypeUnknown is anything else.
	URLTypeUnknown URLType = "unknown"
)

var (
	videoIDRe          = regexp.MustCompile(`(?:watch\?v=|youtu\.be/|/shorts/)([A-Za-z0-9_-]{11})`)
	playlistIDRe       = regexp.MustCompile(`list=([A-Za-z0-9_-]+)`)
	studioPlaylistIDRe = regexp.MustCompile(`studio\.youtube\.com/playlist/([A-Za-z0-9_-]+)`)
	bareVideoIDRe      = regexp.MustCompile(`^[A-Za-z0-9_-]{11}$`)
	languageTagRe      = regexp.MustCompile(`^[A-Za-z]{2,3}(?:-[A-Za-z0-9]{2,8})*$`)
)

// DetectURLType classifies a YouTube URL. A watch URL that also carries a
// list parameter counts as a video; a list parameter without watch?v= counts
// as a playlist.
func DetectURLType(url string) URLType {
	url = strings.TrimSpace(url)

	// Channel patterns, including YouTube Studio
	if strings.Contains(url, "/@") || strings.Contains(url, "/channel/") ||
		strings.Contains(url, "/c/") || strings.Contains(url, "/user/") {
		return URLTypeChannel
	}

	// Playlist patterns come before video since URLs can carry both
	if strings.Contains(url, "playlist?list=") {
		return URLTypePlaylist
	}
	if strings.Contains(url, "studio.youtube.com") && strings.Contains(url, "playlist/") {
		return URLTypePlaylist
	}
	if strings.Contains(url, "list=") && !strings.Contains(url, "watch?v=") {
		return URLTypePlaylist
	}

	if strings.Contains(url, "watch?v=") || strings.Contains(url, "youtu.be/") ||
		strings.Contains(url, "/shorts/") {
		return URLTypeVideo
	}

	return URLTypeUnknown
}

// ExtractVideoID pulls the 11-character video ID out of a watch, youtu.be,
// or shorts URL. A bare 11-character ID is returned as-is.
func ExtractVideoID(url string) (string, error) {
	url = strings.TrimSpace(url)

	if m := videoIDRe.FindStringSubmatch(url); m != nil {
		return m[1], nil
	}

	if bareVideoIDRe.MatchString(url) {
		return url, nil
	}

	return "", ErrInvalidURL
}

// ExtractPlaylistID pulls the playlist ID out of standard, watch, and
// YouTube Studio playlist URLs.
func ExtractPlaylistID(url string) (string, error) {
	url = strings.TrimSpace(url)

	if m := studioPlaylistIDRe.FindStringSubmatch(url); m != nil {
		return m[1], nil
	}
	if m := playlistIDRe.FindStringSubmatch(url); m != nil {
		return m[1], nil
	}

	return "", ErrInvalidURL
}

// StandardURL converts YouTube Studio playlist URLs to the standard watch
// form. Any other URL passes through unchanged.
func StandardURL(url string) string {
	url = strings.TrimSpace(url)

	if strings.Contains(url, "studio.youtube.com") && strings.Contains(url, "playlist/") {
		if id, err := ExtractPlaylistID(url); err == nil {
			return "https://www.youtube.com/playlist?list=" + id
		}
	}

	return url
}

// VideoIDFromFilename derives the video ID from a downloaded caption file
// path. Downloaded tracks are named "<video_id>.<lang>.vtt", so both the
// format extension and a trailing language tag (en, en-US) are stripped.
// Files named without a language tag lose only the format extension.
func VideoIDFromFilename(path string) string {
	base := filepath.Base(path)
	base = strings.TrimSuffix(base, filepath.Ext(base))

	if ext := filepath.Ext(base); ext != "" && languageTagRe.MatchString(ext[1:]) {
		base = strings.TrimSuffix(base, ext)
	}
	return base
}

// WatchURL returns the standard watch URL for a video ID.
func WatchURL(videoID string) string {
	return "https://www.youtube.com/watch?v=" + videoID
}
