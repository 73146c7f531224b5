package processor

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
)

var (
	audioExts = []string{".wav", ".mp3", ".m4a", ".ogg", ".flac", ".webm"}
	videoExts = []string{".mp4", ".mov", ".mkv"}
)

// IsAudio reports whether path has an extension the backend accepts directly
func IsAudio(path string) bool {
	return hasExt(path, audioExts)
}

// IsVideo reports whether path is a video container that needs audio extraction
func IsVideo(path string) bool {
	return hasExt(path, videoExts)
}

// IsMedia reports whether path is something the inbox should pick up
func IsMedia(path string) bool {
	return IsAudio(path) || IsVideo(path)
}

func hasExt(path string, exts []string) bool {
	ext := strings.ToLower(filepath.Ext(path))
	for _, e := range exts {
		if ext == e {
			return true
		}
	}
	return false
}

// extractAudio converts a video into a mono 16-bit WAV in the temp folder.
// The temp name is unique so sources sharing a base name never collide.
func (p *implProcessor) extractAudio(ctx context.Context, videoPath string) (string, error) {
	if err := os.MkdirAll(p.cfg.Paths.Temp, 0755); err != nil {
		return "", fmt.Errorf("create temp dir: %w", err)
	}

	base := strings.TrimSuffix(filepath.Base(videoPath), filepath.Ext(videoPath))
	tmp, err := os.CreateTemp(p.cfg.Paths.Temp, base+"_*.wav")
	if err != nil {
		return "", fmt.Errorf("create temp audio: %w", err)
	}
	audioPath := tmp.Name()
	tmp.Close()

	p.logger.Info(ctx, "Extracting audio: %s", videoPath)

	args := []string{
		"-i", videoPath,
		"-vn",
		"-ar", strconv.Itoa(p.cfg.FFmpeg.SampleRate),
		"-ac", "1",
		"-c:a", "pcm_s16le",
		"-y",
		audioPath,
	}

	if _, err := p.executor.Execute(ctx, p.cfg.FFmpeg.BinaryPath, args...); err != nil {
		p.cleanupTempFile(ctx, audioPath)
		return "", fmt.Errorf("ffmpeg extract audio: %w", err)
	}

	p.logger.Debug(ctx, "Audio extracted: %s", audioPath)
	return audioPath, nil
}
