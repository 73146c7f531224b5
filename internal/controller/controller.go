package controller

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/nguyentantai21042004/meeting-secretary/internal/backend"
)

// Start asks the backend to begin recording.
func (c *implController) Start(ctx context.Context) error {
	return c.guard(ctx, "start", func() error {
		c.display.SetStatus(StatusStarting)

		res, err := c.client.StartRecording(ctx)
		if err != nil {
			return c.fail(ctx, "start", err)
		}

		c.display.SetStatus(res.Status)
		return nil
	})
}

// Stop ends the recording and shows where the backend saved it.
func (c *implController) Stop(ctx context.Context) error {
	return c.guard(ctx, "stop", func() error {
		c.display.SetStatus(StatusStopping)

		res, err := c.client.StopRecording(ctx)
		if err != nil {
			return c.fail(ctx, "stop", err)
		}

		c.display.SetStatus(fmt.Sprintf("%s: %s", res.Status, res.AudioPath))
		return nil
	})
}

// Run transcribes the last recording (and summarizes it when configured),
// then fetches and shows the resulting text files.
func (c *implController) Run(ctx context.Context) error {
	return c.guard(ctx, "run", func() error {
		c.display.SetStatus(StatusProcessing)
		c.display.SetTranscript("")
		if c.opts.Summarize {
			c.display.SetSummary("")
		}

		var (
			res backend.TranscribeResult
			err error
		)
		if c.opts.Summarize {
			res, err = c.client.TranscribeAndSummarize(ctx)
		} else {
			res, err = c.client.Transcribe(ctx)
		}
		if err != nil {
			return c.fail(ctx, "run", err)
		}

		return c.showResult(ctx, "run", res)
	})
}

// RunFile uploads a local audio file for transcription.
func (c *implController) RunFile(ctx context.Context, path string) error {
	return c.guard(ctx, "run-file", func() error {
		if path == "" {
			c.display.SetStatus(StatusSelectFile)
			return ErrNoFile
		}

		c.display.SetStatus(StatusUploading)
		c.display.SetTranscript("")

		f, err := os.Open(path)
		if err != nil {
			return c.fail(ctx, "run-file", err)
		}
		defer f.Close()

		res, err := c.client.TranscribeFile(ctx, filepath.Base(path), f)
		if err != nil {
			return c.fail(ctx, "run-file", err)
		}

		return c.showResult(ctx, "run-file", res)
	})
}

func (c *implController) Busy() bool {
	return c.busy.Load()
}

// showResult fetches the transcript and, if present, the summary concurrently.
// Regions are only written once every fetch has completed.
func (c *implController) showResult(ctx context.Context, action string, res backend.TranscribeResult) error {
	var (
		wg                  sync.WaitGroup
		transcript, summary string
		tErr, sErr          error
	)

	wg.Add(1)
	go func() {
		defer wg.Done()
		transcript, tErr = c.client.FetchText(ctx, res.TranscriptPath)
	}()

	if res.SummaryPath != "" {
		wg.Add(1)
		go func() {
			defer wg.Done()
			summary, sErr = c.client.FetchText(ctx, res.SummaryPath)
		}()
	}

	wg.Wait()

	if tErr != nil {
		return c.fail(ctx, action, tErr)
	}
	if sErr != nil {
		return c.fail(ctx, action, sErr)
	}

	c.display.SetTranscript(transcript)
	if res.SummaryPath != "" {
		c.display.SetSummary(summary)
	}
	c.display.SetStatus(StatusDone)

	c.logger.Info(ctx, "%s done: transcript %d chars, summary %d chars", action, len(transcript), len(summary))
	return nil
}

// guard runs fn unless another action is already in flight.
func (c *implController) guard(ctx context.Context, action string, fn func() error) error {
	if !c.busy.CompareAndSwap(false, true) {
		c.logger.Warn(ctx, "Ignoring %s: another action is in progress", action)
		return ErrBusy
	}
	defer c.busy.Store(false)

	return fn()
}

// fail renders err as the status text and returns it.
func (c *implController) fail(ctx context.Context, action string, err error) error {
	c.display.SetStatus(StatusText(err))
	c.logger.Error(ctx, "%s failed: %v", action, err)
	return err
}

// StatusText is the text shown for err: the backend message for HTTP failures, err.Error() otherwise.
func StatusText(err error) string {
	var apiErr *backend.Error
	if errors.As(err, &apiErr) {
		return apiErr.Message
	}
	return err.Error()
}
