package convert

import (
	"time"

	"codeberg.org/taozui/vocaudio/internal/ffmpeg"
)

// Muxer synthesizes silent clips and concatenates audio fragments. The
// production implementation shells out to ffmpeg; tests substitute their own.
type Muxer interface {
	Silence(path string, duration time.Duration) error
	Concat(fragments []string, listDir, outputFile string) error
}

type ffmpegMuxer struct{}

// NewMuxer returns the ffmpeg-backed Muxer.
func NewMuxer() Muxer {
	return ffmpegMuxer{}
}

func (ffmpegMuxer) Silence(path string, duration time.Duration) error {
	return ffmpeg.Silence(path, duration)
}

func (ffmpegMuxer) Concat(fragments []string, listDir, outputFile string) error {
	return ffmpeg.Concat(fragments, listDir, outputFile)
}
