package ytdlp

import "testing"

func TestBestAvatarThumbnail(t *testing.T) {
	tests := []struct {
		name       string
		thumbnails []Thumbnail
		want       string
	}{
		{
			name: "highest resolution square wins",
			thumbnails: []Thumbnail{
				{URL: "small", Width: 100, Height: 100},
				{URL: "large", Width: 800, Height: 800},
				{URL: "wide", Width: 1920, Height: 1080},
			},
			want: "large",
		},
		{
			name: "banner crop excluded",
			thumbnails: []Thumbnail{
				{URL: "https://example.com/x=fcrop64=1", Width: 500, Height: 500},
				{URL: "clean", Width: 300, Height: 300},
			},
			want: "clean",
		},
		{
			name: "no square candidate falls back to smallest",
			thumbnails: []Thumbnail{
				{URL: "huge-banner", Width: 2560, Height: 423},
				{URL: "small-banner", Width: 640, Height: 106},
			},
			want: "small-banner",
		},
		{
			name:       "empty list",
			thumbnails: nil,
			want:       "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := bestAvatarThumbnail(tt.thumbnails); got != tt.want {
				t.Errorf("bestAvatarThumbnail() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestCleanPathComponent(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"Plain Name", "Plain Name"},
		{"AC/DC Covers", "AC-DC Covers"},
		{`back\slash`, "back-slash"},
		{"  padded  ", "padded"},
	}

	for _, tt := range tests {
		if got := CleanPathComponent(tt.in); got != tt.want {
			t.Errorf("CleanPathComponent(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
