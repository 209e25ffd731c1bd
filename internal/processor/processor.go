package processor

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"
	"gopkg.in/yaml.v3"

	"github.com/nguyentantai21042004/smart-cut/internal/report"
	"github.com/nguyentantai21042004/smart-cut/internal/smartcut"
	"github.com/nguyentantai21042004/smart-cut/internal/store"
	"github.com/nguyentantai21042004/smart-cut/internal/transcript"
)

// Analyze orchestrates the cut pipeline for one transcript
func (p *implProcessor) Analyze(ctx context.Context, transcriptPath string) (*report.Report, error) {
	startTime := time.Now()

	p.logger.Info(ctx, "========================================")
	p.logger.Info(ctx, "Analyzing transcript: %s", transcriptPath)
	p.logger.Info(ctx, "========================================")

	// Step 1: Fingerprint input together with the settings that shape the result
	hash, err := p.fingerprint(transcriptPath)
	if err != nil {
		return nil, fmt.Errorf("fingerprint: %w", err)
	}

	// Step 2: Reuse an earlier run of the same input and settings, or run the engine
	rep, cached := p.previousRun(ctx, hash)
	if cached {
		p.logger.Info(ctx, "Already processed (%s), reusing result: %s", hash[:12], transcriptPath)
		rep.Source = transcriptPath
	} else {
		rep, err = p.runEngine(ctx, transcriptPath, hash)
		if err != nil {
			return nil, err
		}
	}

	// Step 3: Write result, re-timed subtitles and document
	if err := p.writeOutputs(ctx, rep); err != nil {
		return nil, fmt.Errorf("write outputs: %w", err)
	}

	// Step 4: Record the run
	if !cached {
		if err := p.record(ctx, rep); err != nil {
			p.logger.Warn(ctx, "Failed to record run: %v", err)
		}
	}

	// Step 5: Render the sibling video if one exists
	if p.cfg.Render.Enabled && p.renderer != nil {
		if err := p.renderSibling(ctx, transcriptPath, rep); err != nil {
			return nil, fmt.Errorf("render: %w", err)
		}
	}

	m := rep.Metrics
	p.logger.Info(ctx, "========================================")
	p.logger.Info(ctx, "Analysis completed: %s", filepath.Base(transcriptPath))
	p.logger.Info(ctx, "Duration: %.1fs -> %.1fs (%.1f%% shorter, %s)", m.OriginalDuration, m.FinalDuration, m.CompressionRatio*100, rep.Mode)
	p.logger.Info(ctx, "Segments: %d kept of %d, %d chunks", m.KeptSegments, m.TotalSegments, m.MergedSegments)
	for _, s := range report.Summary(rep.Decisions, p.cfg.Report.TopN) {
		p.logger.Debug(ctx, "  [%d] %s", s.Importance, s.Text)
	}
	p.logger.Info(ctx, "Processing time: %s", time.Since(startTime))
	p.logger.Info(ctx, "========================================")

	return rep, nil
}

// Process analyzes the transcript and archives it once its outputs are written
func (p *implProcessor) Process(ctx context.Context, transcriptPath string) error {
	if _, err := p.Analyze(ctx, transcriptPath); err != nil {
		return err
	}

	if err := p.moveToArchived(ctx, transcriptPath); err != nil {
		p.logger.Warn(ctx, "Failed to move transcript to archived folder: %v", err)
	}
	return nil
}

// ProcessAll runs Process over paths with at most performance.max_concurrent at once.
// Every file is attempted; failures are joined into the returned error.
func (p *implProcessor) ProcessAll(ctx context.Context, paths []string) error {
	limit := p.cfg.Performance.MaxConcurrent
	if limit <= 0 {
		limit = 1
	}

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(limit)

	var mu sync.Mutex
	var errs []error

	for _, path := range paths {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			if err := p.Process(gctx, path); err != nil {
				p.logger.Error(gctx, "Failed to process %s: %v", path, err)
				mu.Lock()
				errs = append(errs, fmt.Errorf("%s: %w", path, err))
				mu.Unlock()
			}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return err
	}
	if len(errs) > 0 {
		return fmt.Errorf("%d of %d transcripts failed: %w", len(errs), len(paths), errors.Join(errs...))
	}
	return nil
}

// runEngine loads the transcript and runs the engine on it
func (p *implProcessor) runEngine(ctx context.Context, transcriptPath, hash string) (*report.Report, error) {
	cues, err := transcript.Load(transcriptPath)
	if err != nil {
		return nil, fmt.Errorf("load transcript: %w", err)
	}

	res, err := p.engine.Run(ctx, transcript.ToUtterances(cues), p.cfg.Options())
	if err != nil {
		return nil, fmt.Errorf("run engine: %w", err)
	}
	return report.New(transcriptPath, hash, res), nil
}

// runSettings is everything besides the transcript that shapes a result.
// The lexicon is included by content so edits to the lexicon file invalidate earlier runs.
type runSettings struct {
	Engine          smartcut.Config `yaml:"engine"`
	TargetReduction *float64        `yaml:"target_reduction"`
}

func (p *implProcessor) fingerprint(path string) (string, error) {
	settings, err := yaml.Marshal(runSettings{
		Engine:          p.engine.Settings(),
		TargetReduction: p.cfg.Engine.TargetReduction,
	})
	if err != nil {
		return "", fmt.Errorf("encode settings: %w", err)
	}
	return store.FingerprintFile(path, settings)
}

func (p *implProcessor) previousRun(ctx context.Context, hash string) (*report.Report, bool) {
	if p.store == nil {
		return nil, false
	}

	run, err := p.store.RunByHash(ctx, hash)
	if err != nil {
		if !errors.Is(err, store.ErrNotFound) {
			p.logger.Warn(ctx, "Failed to look up run history: %v", err)
		}
		return nil, false
	}

	var rep report.Report
	if err := json.Unmarshal([]byte(run.ResultJSON), &rep); err != nil {
		p.logger.Warn(ctx, "Stored result for %s is unreadable, reprocessing: %v", run.Source, err)
		return nil, false
	}
	return &rep, true
}

func (p *implProcessor) writeOutputs(ctx context.Context, rep *report.Report) error {
	outDir := p.cfg.Paths.Output
	if err := os.MkdirAll(outDir, 0755); err != nil {
		return fmt.Errorf("create output dir: %w", err)
	}

	resultPath := report.ResultPath(outDir, rep.Source)
	if err := report.Save(resultPath, rep); err != nil {
		return err
	}
	p.logger.Info(ctx, "Output result: %s", resultPath)

	srtPath := report.SubtitlePath(outDir, rep.Source)
	if err := p.writeSubtitles(srtPath, rep); err != nil {
		return err
	}
	p.logger.Info(ctx, "Output subtitle: %s", srtPath)

	if p.cfg.Report.Docx {
		docxPath := report.DocxPath(outDir, rep.Source)
		if err := report.WriteDocx(rep, docxPath); err != nil {
			// The document is a convenience copy; the result JSON is what matters
			p.logger.Warn(ctx, "Failed to write docx: %v", err)
		} else {
			p.logger.Info(ctx, "Output document: %s", docxPath)
		}
	}

	return nil
}

func (p *implProcessor) writeSubtitles(path string, rep *report.Report) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create subtitle: %w", err)
	}
	defer f.Close()

	if err := transcript.WriteSRT(f, transcript.Retime(rep.Merged)); err != nil {
		return fmt.Errorf("write subtitle: %w", err)
	}
	return f.Close()
}

func (p *implProcessor) record(ctx context.Context, rep *report.Report) error {
	if p.store == nil {
		return nil
	}

	data, err := json.Marshal(rep)
	if err != nil {
		return fmt.Errorf("encode result: %w", err)
	}

	m := rep.Metrics
	_, err = p.store.SaveRun(ctx, store.Run{
		Hash:             rep.Hash,
		Source:           rep.Source,
		CreatedAt:        rep.CreatedAt,
		OriginalDuration: m.OriginalDuration,
		FinalDuration:    m.FinalDuration,
		CompressionRatio: m.CompressionRatio,
		GlobalSpeed:      m.GlobalSpeed,
		TotalSegments:    m.TotalSegments,
		KeptSegments:     m.KeptSegments,
		MergedSegments:   m.MergedSegments,
		ResultJSON:       string(data),
	})
	return err
}

func (p *implProcessor) renderSibling(ctx context.Context, transcriptPath string, rep *report.Report) error {
	videoPath, ok := p.findVideo(transcriptPath)
	if !ok {
		p.logger.Warn(ctx, "No video found next to %s, skipping render", transcriptPath)
		return nil
	}
	if len(rep.Merged) == 0 {
		p.logger.Warn(ctx, "Nothing kept in %s, skipping render", transcriptPath)
		return nil
	}

	// Acquire render slot (ffmpeg jobs are bounded separately from analysis)
	if err := p.renderSlots.Acquire(ctx, 1); err != nil {
		return err
	}
	defer p.renderSlots.Release(1)

	outputPath := filepath.Join(p.cfg.Paths.Output, report.BaseName(videoPath)+"_cut"+filepath.Ext(videoPath))
	if err := p.renderer.Render(ctx, rep.Merged, videoPath, outputPath); err != nil {
		return err
	}
	p.logger.Info(ctx, "Output video: %s", outputPath)
	return nil
}
