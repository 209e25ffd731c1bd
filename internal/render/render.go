package render

import (
	"context"
	"errors"
	"fmt"
	"math"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/nguyentantai21042004/smart-cut/internal/smartcut"
)

// ErrNothingToRender is returned when a run kept no chunks
var ErrNothingToRender = errors.New("no chunks to render")

// durationTolerance is how far the probed length may drift before a warning, in seconds
const durationTolerance = 1.0

// Render encodes the chunks batch by batch and joins the batches with the concat demuxer
func (r *implRenderer) Render(ctx context.Context, chunks []smartcut.MergedSegment, videoPath, outputPath string) error {
	if len(chunks) == 0 {
		return ErrNothingToRender
	}

	absOutput, err := filepath.Abs(outputPath)
	if err != nil {
		return fmt.Errorf("resolve output path: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(absOutput), 0755); err != nil {
		return fmt.Errorf("create output dir: %w", err)
	}

	groups := batches(chunks, r.cfg.BatchSize)
	r.logger.Info(ctx, "Rendering %d chunks in %d batches: %s", len(chunks), len(groups), videoPath)

	// A single batch is encoded straight to the output
	if len(groups) == 1 {
		if err := r.encode(ctx, videoPath, groups[0], absOutput); err != nil {
			return fmt.Errorf("encode: %w", err)
		}
		r.verify(ctx, absOutput, ExpectedDuration(chunks))
		return nil
	}

	if err := os.MkdirAll(r.tempDir, 0755); err != nil {
		return fmt.Errorf("create temp dir: %w", err)
	}
	// Create isolated temp dir per render to avoid collisions between concurrent jobs
	workDir, err := os.MkdirTemp(r.tempDir, "render-*")
	if err != nil {
		return fmt.Errorf("create work dir: %w", err)
	}
	defer os.RemoveAll(workDir)

	var list strings.Builder
	for i, group := range groups {
		name := fmt.Sprintf("batch_%04d.mp4", i)
		r.logger.Info(ctx, "Encoding batch %d/%d", i+1, len(groups))

		if err := r.encode(ctx, videoPath, group, filepath.Join(workDir, name)); err != nil {
			return fmt.Errorf("encode batch %d: %w", i+1, err)
		}
		fmt.Fprintf(&list, "file '%s'\n", name)
	}

	listName := "concat_list.txt"
	if err := os.WriteFile(filepath.Join(workDir, listName), []byte(list.String()), 0644); err != nil {
		return fmt.Errorf("write concat list: %w", err)
	}

	args := []string{
		"-y", "-hide_banner",
		"-f", "concat", "-safe", "0",
		"-i", listName,
		"-c", "copy",
		absOutput,
	}
	if _, err := r.executor.ExecuteInDir(ctx, workDir, r.cfg.FFmpegPath, args...); err != nil {
		return fmt.Errorf("concat batches: %w", err)
	}

	r.verify(ctx, absOutput, ExpectedDuration(chunks))
	return nil
}

// Probe reads the container duration of path with ffprobe
func (r *implRenderer) Probe(ctx context.Context, path string) (float64, error) {
	out, err := r.executor.Execute(ctx, r.cfg.FFprobePath,
		"-v", "error",
		"-show_entries", "format=duration",
		"-of", "default=noprint_wrappers=1:nokey=1",
		path,
	)
	if err != nil {
		return 0, fmt.Errorf("probe duration: %w", err)
	}

	d, err := strconv.ParseFloat(strings.TrimSpace(out), 64)
	if err != nil {
		return 0, fmt.Errorf("parse duration %q: %w", strings.TrimSpace(out), err)
	}
	return d, nil
}

func (r *implRenderer) encode(ctx context.Context, videoPath string, chunks []smartcut.MergedSegment, outputPath string) error {
	args := []string{
		"-y", "-hide_banner",
		"-i", videoPath,
		"-filter_complex", BuildFilter(chunks),
		"-map", "[outv]", "-map", "[outa]",
		"-c:v", r.cfg.Encoder, "-preset", r.cfg.Preset, "-crf", strconv.Itoa(r.cfg.CRF),
		"-c:a", r.cfg.AudioCodec, "-b:a", r.cfg.AudioBitrate,
		outputPath,
	}

	_, err := r.executor.Execute(ctx, r.cfg.FFmpegPath, args...)
	return err
}

// verify compares the rendered length with the planned one, logging drift instead of failing
func (r *implRenderer) verify(ctx context.Context, path string, expected float64) {
	actual, err := r.Probe(ctx, path)
	if err != nil {
		r.logger.Warn(ctx, "Failed to verify rendered duration: %v", err)
		return
	}

	if math.Abs(actual-expected) > durationTolerance {
		r.logger.Warn(ctx, "Rendered duration %.2fs differs from planned %.2fs", actual, expected)
		return
	}
	r.logger.Info(ctx, "Rendered %s (%.2fs)", path, actual)
}
