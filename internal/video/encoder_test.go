package video

import (
	"errors"
	"testing"
)

func TestRegistry(t *testing.T) {
	r := NewRegistry()

	names := r.List()
	want := []string{"auto", "ffmpeg", "mjpeg"}
	if len(names) != len(want) {
		t.Fatalf("expected %v, got %v", want, names)
	}
	for i := range want {
		if names[i] != want[i] {
			t.Errorf("name %d: got %s, want %s", i, names[i], want[i])
		}
	}

	if _, err := r.Get("h264"); !errors.Is(err, ErrUnknownEncoder) {
		t.Errorf("expected ErrUnknownEncoder, got %v", err)
	}
}

func TestForPath(t *testing.T) {
	tests := []struct {
		path string
		want string
	}{
		{"video/out.avi", "mjpeg"},
		{"video/OUT.AVI", "mjpeg"},
		{"video/out.mp4", "ffmpeg"},
		{"video/out", "ffmpeg"},
	}
	for _, tt := range tests {
		if got := ForPath(tt.path); got != tt.want {
			t.Errorf("ForPath(%q) = %s, want %s", tt.path, got, tt.want)
		}
	}
}

func TestAutoDispatch(t *testing.T) {
	r := NewRegistry()
	var used string
	r.Register("mjpeg", func(string, int, int, float64) (Encoder, error) {
		used = "mjpeg"
		return &recorder{}, nil
	})
	r.Register("ffmpeg", func(string, int, int, float64) (Encoder, error) {
		used = "ffmpeg"
		return &recorder{}, nil
	})

	auto, err := r.Get("auto")
	if err != nil {
		t.Fatal(err)
	}
	auto("x.avi", 1, 1, 20)
	if used != "mjpeg" {
		t.Errorf("avi should use mjpeg, used %s", used)
	}
	auto("x.mp4", 1, 1, 20)
	if used != "ffmpeg" {
		t.Errorf("mp4 should use ffmpeg, used %s", used)
	}
}
