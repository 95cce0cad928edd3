// Package ffmpeg drives the external ffmpeg tool for the two audio
// operations the pipeline cannot do itself: synthesizing silent clips and
// concatenating fragments. Unlike word synthesis, failures here are fatal:
// without ffmpeg there is no output file to produce.
package ffmpeg

import (
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"time"
)

// sampleRate matches the synthesis backends' MP3 output.
const sampleRate = 24000

// Installed verifies that ffmpeg is available on the system.
func Installed() error {
	if err := exec.Command("ffmpeg", "-version").Run(); err != nil {
		return fmt.Errorf("ffmpeg is not installed or not in PATH: %w", err)
	}
	return nil
}

// Silence writes a mono silent MP3 clip of the given duration to path.
func Silence(path string, duration time.Duration) error {
	args := []string{
		"-y", "-f", "lavfi",
		"-i", fmt.Sprintf("anullsrc=r=%d:cl=mono", sampleRate),
		"-t", fmt.Sprintf("%.3f", duration.Seconds()),
		"-q:a", "9",
		path,
	}
	if err := run(args); err != nil {
		return fmt.Errorf("silence generation failed: %w", err)
	}
	return nil
}

// Concat merges the ordered fragment files into one MP3 using the concat
// demuxer. The file list is written into listDir, which must outlive the
// call (the job workspace).
func Concat(fragments []string, listDir, outputFile string) error {
	if len(fragments) == 0 {
		return fmt.Errorf("no fragments to concatenate")
	}

	list, err := concatList(fragments)
	if err != nil {
		return err
	}
	listFile := filepath.Join(listDir, "filelist.txt")
	if err := os.WriteFile(listFile, []byte(list), 0644); err != nil {
		return fmt.Errorf("failed to write concat list: %w", err)
	}

	args := []string{
		"-y", "-f", "concat", "-safe", "0",
		"-i", listFile,
		"-c:a", "libmp3lame", "-q:a", "2",
		outputFile,
	}
	if err := run(args); err != nil {
		return fmt.Errorf("audio merge failed: %w", err)
	}
	return nil
}

// concatList renders the concat demuxer's file list. Single quotes inside a
// quoted entry are closed, escaped and reopened.
func concatList(fragments []string) (string, error) {
	var b strings.Builder
	for _, f := range fragments {
		abs, err := filepath.Abs(f)
		if err != nil {
			return "", fmt.Errorf("failed to resolve fragment path: %w", err)
		}
		fmt.Fprintf(&b, "file '%s'\n", strings.ReplaceAll(abs, "'", `'\''`))
	}
	return b.String(), nil
}

// WAVToMP3 converts a WAV file to MP3.
func WAVToMP3(wavFile, mp3File string) error {
	if err := run([]string{"-i", wavFile, "-acodec", "mp3", "-y", mp3File}); err != nil {
		return fmt.Errorf("wav to mp3 conversion failed: %w", err)
	}
	return nil
}

func run(args []string) error {
	cmd := exec.Command("ffmpeg", args...)
	output, err := cmd.CombinedOutput()
	if err != nil {
		return fmt.Errorf("ffmpeg %s: %w\nOutput: %s",
			strings.Join(args, " "), err, string(output))
	}
	return nil
}
