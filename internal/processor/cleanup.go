package processor

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// moveToArchived moves a processed transcript out of the input folder
func (p *implProcessor) moveToArchived(ctx context.Context, transcriptPath string) error {
	if err := os.MkdirAll(p.cfg.Paths.Archived, 0755); err != nil {
		return fmt.Errorf("create archived dir: %w", err)
	}

	destPath := filepath.Join(p.cfg.Paths.Archived, filepath.Base(transcriptPath))
	p.logger.Info(ctx, "Moving to archived folder: %s -> %s", transcriptPath, destPath)

	if err := os.Rename(transcriptPath, destPath); err != nil {
		return fmt.Errorf("move to archived: %w", err)
	}

	return nil
}

// findVideo looks for a video with the transcript's base name next to it, then in the input folder
func (p *implProcessor) findVideo(transcriptPath string) (string, bool) {
	base := strings.TrimSuffix(filepath.Base(transcriptPath), filepath.Ext(transcriptPath))
	dirs := []string{filepath.Dir(transcriptPath)}
	if p.cfg.Paths.Input != "" && filepath.Clean(p.cfg.Paths.Input) != filepath.Clean(dirs[0]) {
		dirs = append(dirs, p.cfg.Paths.Input)
	}

	for _, dir := range dirs {
		for _, ext := range p.cfg.Render.VideoExtensions {
			candidate := filepath.Join(dir, base+ext)
			if info, err := os.Stat(candidate); err == nil && !info.IsDir() {
				return candidate, true
			}
		}
	}

	return "", false
}
