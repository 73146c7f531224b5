package processor

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/nguyentantai21042004/meeting-secretary/internal/export"
)

// writeTranscript stores the transcript as <name>.txt in the output folder, name being the source file name
func (p *implProcessor) writeTranscript(ctx context.Context, name, transcript string) (string, error) {
	if err := os.MkdirAll(p.cfg.Paths.Output, 0755); err != nil {
		return "", fmt.Errorf("create output dir: %w", err)
	}

	dest := filepath.Join(p.cfg.Paths.Output, name+".txt")
	if err := os.WriteFile(dest, []byte(transcript), 0644); err != nil {
		return "", err
	}

	p.logger.Debug(ctx, "Transcript written: %s", dest)
	return dest, nil
}

// exportDocx writes <name>.docx next to the transcript
func (p *implProcessor) exportDocx(ctx context.Context, name, transcript string) error {
	dest := filepath.Join(p.cfg.Paths.Output, name+".docx")
	if err := export.WriteDocx(export.Document{Title: name, Transcript: transcript}, dest); err != nil {
		return err
	}
	p.logger.Debug(ctx, "Docx written: %s", dest)
	return nil
}

// moveToArchived moves the original recording out of the inbox
func (p *implProcessor) moveToArchived(ctx context.Context, mediaPath string) error {
	if err := os.MkdirAll(p.cfg.Paths.Archived, 0755); err != nil {
		return fmt.Errorf("create archived dir: %w", err)
	}

	dest := filepath.Join(p.cfg.Paths.Archived, filepath.Base(mediaPath))
	p.logger.Info(ctx, "Archiving: %s -> %s", mediaPath, dest)

	if err := os.Rename(mediaPath, dest); err != nil {
		return fmt.Errorf("move to archived: %w", err)
	}
	return nil
}

// cleanupTempFile removes a temporary file, logs warning if fails
func (p *implProcessor) cleanupTempFile(ctx context.Context, filePath string) {
	if err := os.Remove(filePath); err != nil {
		p.logger.Warn(ctx, "Failed to cleanup temp file %s: %v", filePath, err)
	} else {
		p.logger.Debug(ctx, "Cleaned up temp file: %s", filePath)
	}
}
