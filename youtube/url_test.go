package youtube

import (
	"errors"
	"testing"
)

func TestDetectURLType(t *testing.T) {
	tests := []struct {
		url  string
		want URLType
	}{
		{"https://www.youtube.com/@somechannel", URLTypeChannel},
		{"https://www.youtube.com/channel/UCabcdefghijklmnop", URLTypeChannel},
		{"https://www.youtube.com/c/SomeChannel", URLTypeChannel},
		{"https://www.youtube.com/user/someone", URLTypeChannel},
		{"https://www.youtube.com/playlist?list=PLabc123", URLTypePlaylist},
		{"https://studio.youtube.com/playlist/PLabc123/videos", URLTypePlaylist},
		{"https://www.youtube.com/watch?list=PLabc123", URLTypePlaylist},
		{"https://www.youtube.com/watch?v=dQw4w9WgXcQ", URLTypeVideo},
		{"https://www.youtube.com/watch?v=dQw4w9WgXcQ&list=PLabc123", URLTypeVideo},
		{"https://youtu.be/dQw4w9WgXcQ", URLTypeVideo},
		{"https://www.youtube.com/shorts/dQw4w9WgXcQ", URLTypeVideo},
		{"  https://youtu.be/dQw4w9WgXcQ  ", URLTypeVideo},
		{"https://example.com/whatever", URLTypeUnknown},
		{"", URLTypeUnknown},
	}

	for _, tt := range tests {
		t.Run(tt.url, func(t *testing.T) {
			if got := DetectURLType(tt.url); got != tt.want {
				t.Errorf("DetectURLType(%q) = %q, want %q", tt.url, got, tt.want)
			}
		})
	}
}

func TestExtractVideoID(t *testing.T) {
	tests := []struct {
		name    string
		url     string
		want    string
		wantErr bool
	}{
		{name: "watch URL", url: "https://www.youtube.com/watch?v=dQw4w9WgXcQ", want: "dQw4w9WgXcQ"},
		{name: "short URL", url: "https://youtu.be/dQw4w9WgXcQ", want: "dQw4w9WgXcQ"},
		{name: "shorts URL", url: "https://www.youtube.com/shorts/dQw4w9WgXcQ", want: "dQw4w9WgXcQ"},
		{name: "watch URL with list", url: "https://www.youtube.com/watch?v=dQw4w9WgXcQ&list=PLabc", want: "dQw4w9WgXcQ"},
		{name: "bare ID", url: "dQw4w9WgXcQ", want: "dQw4w9WgXcQ"},
		{name: "channel URL", url: "https://www.youtube.com/@somechannel", wantErr: true},
		{name: "empty", url: "", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ExtractVideoID(tt.url)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ExtractVideoID(%q) error = %v, wantErr %v", tt.url, err, tt.wantErr)
			}
			if err != nil && !errors.Is(err, ErrInvalidURL) {
				t.Errorf("error = %v, want ErrInvalidURL", err)
			}
			if got != tt.want {
				t.Errorf("ExtractVideoID(%q) = %q, want %q", tt.url, got, tt.want)
			}
		})
	}
}

func TestExtractPlaylistID(t *testing.T) {
	tests := []struct {
		name    string
		url     string
		want    string
		wantErr bool
	}{
		{name: "playlist URL", url: "https://www.youtube.com/playlist?list=PLabc123", want: "PLabc123"},
		{name: "watch URL with list", url: "https://www.youtube.com/watch?v=dQw4w9WgXcQ&list=PLabc123", want: "PLabc123"},
		{name: "studio URL", url: "https://studio.youtube.com/playlist/PLabc123/videos", want: "PLabc123"},
		{name: "no list", url: "https://www.youtube.com/watch?v=dQw4w9WgXcQ", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ExtractPlaylistID(tt.url)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ExtractPlaylistID(%q) error = %v, wantErr %v", tt.url, err, tt.wantErr)
			}
			if got != tt.want {
				t.Errorf("ExtractPlaylistID(%q) = %q, want %q", tt.url, got, tt.want)
			}
		})
	}
}

func TestStandardURL(t *testing.T) {
	studio := "https://studio.youtube.com/playlist/PLabc123/videos"
	if got := StandardURL(studio); got != "https://www.youtube.com/playlist?list=PLabc123" {
		t.Errorf("StandardURL(%q) = %q", studio, got)
	}

	plain := "https://www.youtube.com/watch?v=dQw4w9WgXcQ"
	if got := StandardURL(plain); got != plain {
		t.Errorf("StandardURL(%q) = %q, want unchanged", plain, got)
	}
}

func TestVideoIDFromFilename(t *testing.T) {
	tests := []struct {
		name string
		path string
		want string
	}{
		{
			name: "language-tagged download",
			path: "captions/dQw4w9WgXcQ.en.vtt",
			want: "dQw4w9WgXcQ",
		},
		{
			name: "regional language tag",
			path: "dQw4w9WgXcQ.en-US.vtt",
			want: "dQw4w9WgXcQ",
		},
		{
			name: "three-letter language tag",
			path: "dQw4w9WgXcQ.fil.vtt",
			want: "dQw4w9WgXcQ",
		},
		{
			name: "no language tag",
			path: "dQw4w9WgXcQ.vtt",
			want: "dQw4w9WgXcQ",
		},
		{
			name: "srt extension",
			path: "dQw4w9WgXcQ.en.srt",
			want: "dQw4w9WgXcQ",
		},
		{
			name: "dotted name that is not a language tag",
			path: "my.video.vtt",
			want: "my.video",
		},
		{
			name: "bare name without extension",
			path: "dQw4w9WgXcQ",
			want: "dQw4w9WgXcQ",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := VideoIDFromFilename(tt.path); got != tt.want {
				t.Errorf("VideoIDFromFilename(%q) = %q, want %q", tt.path, got, tt.want)
			}
		})
	}
}

func TestWatchURL(t *testing.T) {
	if got := WatchURL("dQw4w9WgXcQ"); got != "https://www.youtube.com/watch?v=dQw4w9WgXcQ" {
		t.Errorf("WatchURL() = %q", got)
	}
}
