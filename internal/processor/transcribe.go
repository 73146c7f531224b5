package processor

import (
	"context"
	"fmt"
	"os"
)

type transcription struct {
	transcriptPath string
	transcript     string
}

// transcribe uploads the audio file as uploadName and fetches the transcript the backend produced
func (p *implProcessor) transcribe(ctx context.Context, audioPath, uploadName string) (transcription, error) {
	f, err := os.Open(audioPath)
	if err != nil {
		return transcription{}, fmt.Errorf("open audio: %w", err)
	}
	defer f.Close()

	p.logger.Info(ctx, "Uploading for transcription: %s", audioPath)

	res, err := p.client.TranscribeFile(ctx, uploadName, f)
	if err != nil {
		return transcription{}, fmt.Errorf("upload: %w", err)
	}

	text, err := p.client.FetchText(ctx, res.TranscriptPath)
	if err != nil {
		return transcription{}, fmt.Errorf("fetch transcript %s: %w", res.TranscriptPath, err)
	}

	return transcription{transcriptPath: res.TranscriptPath, transcript: text}, nil
}
