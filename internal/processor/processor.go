package processor

import (
	"context"
	"fmt"
	"path/filepath"
	"time"
)

// Process uploads one recording, stores its transcript and archives the original
func (p *implProcessor) Process(ctx context.Context, mediaPath string) error {
	startTime := time.Now()
	// Outputs keep the source extension: review.mp4 and review.mov must not share review.txt.
	name := filepath.Base(mediaPath)
	uploadName := name

	p.logger.Info(ctx, "Processing recording: %s", mediaPath)

	// Video containers go through ffmpeg first
	audioPath := mediaPath
	if IsVideo(mediaPath) {
		extracted, err := p.extractAudio(ctx, mediaPath)
		if err != nil {
			return fmt.Errorf("extract audio: %w", err)
		}
		defer p.cleanupTempFile(ctx, extracted)
		audioPath = extracted
		uploadName = name + ".wav"
	}

	res, err := p.transcribe(ctx, audioPath, uploadName)
	if err != nil {
		return fmt.Errorf("transcribe: %w", err)
	}
	p.logger.Debug(ctx, "Transcript fetched from backend: %s", res.transcriptPath)

	txtPath, err := p.writeTranscript(ctx, name, res.transcript)
	if err != nil {
		return fmt.Errorf("write transcript: %w", err)
	}

	if p.cfg.Export.Docx {
		if err := p.exportDocx(ctx, name, res.transcript); err != nil {
			p.logger.Warn(ctx, "Failed to export docx for %s: %v", name, err)
		}
	}

	if err := p.moveToArchived(ctx, mediaPath); err != nil {
		p.logger.Warn(ctx, "Failed to move original to archived folder: %v", err)
	}

	p.logger.Info(ctx, "Done: %s -> %s (%s)", mediaPath, txtPath, time.Since(startTime).Round(time.Millisecond))
	return nil
}
