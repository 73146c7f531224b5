package backend

import (
	"context"
	"io"
)

// Client talks to the recording/transcription backend.
type Client interface {
	StartRecording(ctx context.Context) (StartResult, error)
	StopRecording(ctx context.Context) (StopResult, error)
	Transcribe(ctx context.Context) (TranscribeResult, error)
	TranscribeAndSummarize(ctx context.Context) (TranscribeResult, error)
	TranscribeFile(ctx context.Context, name string, r io.Reader) (TranscribeResult, error)
	FetchText(ctx context.Context, artifactPath string) (string, error)
}

// Endpoint names, appended to the base URL.
const (
	EndpointStartRecording         = "start_recording"
	EndpointStopRecording          = "stop_recording"
	EndpointTranscribe             = "transcribe"
	EndpointTranscribeFile         = "transcribe_file"
	EndpointTranscribeAndSummarize = "transcribe_and_summarize"
)

type StartResult struct {
	Status string `json:"status"`
}

type StopResult struct {
	Status    string `json:"status"`
	AudioPath string `json:"audio_path"`
}

// TranscribeResult carries artifact paths relative to the backend origin.
// SummaryPath is empty unless the summarize endpoint was used.
type TranscribeResult struct {
	Status         string `json:"status,omitempty"`
	TranscriptPath string `json:"transcript_path"`
	SummaryPath    string `json:"summary_path,omitempty"`
}
