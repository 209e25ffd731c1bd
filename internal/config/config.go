package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/nguyentantai21042004/smart-cut/internal/lexicon"
	"github.com/nguyentantai21042004/smart-cut/internal/smartcut"
)

type Config struct {
	Engine      EngineConfig      `yaml:"engine"`
	Paths       PathsConfig       `yaml:"paths"`
	Logging     LoggingConfig     `yaml:"logging"`
	Performance PerformanceConfig `yaml:"performance"`
	Render      RenderConfig      `yaml:"render"`
	Report      ReportConfig      `yaml:"report"`
	Store       StoreConfig       `yaml:"store"`
}

// EngineConfig holds the cut thresholds. Zero values fall back to the engine defaults.
type EngineConfig struct {
	SimilarityThreshold float64  `yaml:"similarity_threshold"`
	NoveltyThreshold    float64  `yaml:"novelty_threshold"`
	MaxGap              float64  `yaml:"max_gap"`
	MaxSpeed            float64  `yaml:"max_speed"`
	ProtectFloor        int      `yaml:"protect_floor"`
	CorrectionMaxLen    int      `yaml:"correction_max_len"`
	TargetReduction     *float64 `yaml:"target_reduction"`
	LexiconPath         string   `yaml:"lexicon_path"`
}

type PathsConfig struct {
	Input    string `yaml:"input"`
	Output   string `yaml:"output"`
	Archived string `yaml:"archived"`
	Temp     string `yaml:"temp"`
}

type LoggingConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
}

type PerformanceConfig struct {
	MaxConcurrent int `yaml:"max_concurrent"`
}

type RenderConfig struct {
	Enabled         bool     `yaml:"enabled"`
	FFmpegPath      string   `yaml:"ffmpeg_path"`
	FFprobePath     string   `yaml:"ffprobe_path"`
	Encoder         string   `yaml:"encoder"`
	Preset          string   `yaml:"preset"`
	CRF             int      `yaml:"crf"`
	AudioCodec      string   `yaml:"audio_codec"`
	AudioBitrate    string   `yaml:"audio_bitrate"`
	BatchSize       int      `yaml:"batch_size"`
	MaxConcurrent   int      `yaml:"max_concurrent"`
	VideoExtensions []string `yaml:"video_extensions"`
}

type ReportConfig struct {
	Docx bool `yaml:"docx"`
	TopN int  `yaml:"top_n"`
}

type StoreConfig struct {
	Enabled bool   `yaml:"enabled"`
	Path    string `yaml:"path"`
}

// Load reads the YAML file at path and validates it
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("validate config: %w", err)
	}

	return &cfg, nil
}

// Default returns a validated configuration with every default applied
func Default() *Config {
	cfg := &Config{}
	_ = cfg.Validate()
	return cfg
}

func (c *Config) Validate() error {
	if t := c.Engine.TargetReduction; t != nil && !(*t >= 0 && *t < 1) {
		return fmt.Errorf("engine.target_reduction must be in [0,1), got %v", *t)
	}
	if c.Engine.SimilarityThreshold < 0 || c.Engine.SimilarityThreshold > 1 {
		return fmt.Errorf("engine.similarity_threshold must be in (0,1]")
	}
	if c.Engine.NoveltyThreshold < 0 || c.Engine.NoveltyThreshold > 1 {
		return fmt.Errorf("engine.novelty_threshold must be in [0,1]")
	}
	if c.Engine.MaxGap < 0 {
		return fmt.Errorf("engine.max_gap must not be negative")
	}
	if c.Engine.MaxSpeed != 0 && c.Engine.MaxSpeed < 1 {
		return fmt.Errorf("engine.max_speed must be at least 1.0")
	}
	if c.Engine.ProtectFloor < 0 {
		return fmt.Errorf("engine.protect_floor must not be negative")
	}
	if c.Engine.CorrectionMaxLen < 0 {
		return fmt.Errorf("engine.correction_max_len must not be negative")
	}
	if c.Performance.MaxConcurrent < 0 {
		return fmt.Errorf("performance.max_concurrent must not be negative")
	}
	if c.Render.BatchSize < 0 {
		return fmt.Errorf("render.batch_size must not be negative")
	}
	if c.Render.MaxConcurrent < 0 {
		return fmt.Errorf("render.max_concurrent must not be negative")
	}

	if c.Engine.SimilarityThreshold == 0 {
		c.Engine.SimilarityThreshold = smartcut.DefaultSimilarityThreshold
	}
	if c.Engine.NoveltyThreshold == 0 {
		c.Engine.NoveltyThreshold = smartcut.DefaultNoveltyThreshold
	}
	if c.Engine.MaxGap == 0 {
		c.Engine.MaxGap = smartcut.DefaultMaxGap
	}
	if c.Engine.MaxSpeed == 0 {
		c.Engine.MaxSpeed = smartcut.DefaultMaxSpeed
	}
	if c.Engine.ProtectFloor == 0 {
		c.Engine.ProtectFloor = smartcut.DefaultProtectFloor
	}
	if c.Engine.CorrectionMaxLen == 0 {
		c.Engine.CorrectionMaxLen = smartcut.DefaultCorrectionMaxLen
	}

	if c.Paths.Input == "" {
		c.Paths.Input = "data/input"
	}
	if c.Paths.Output == "" {
		c.Paths.Output = "data/output"
	}
	if c.Paths.Archived == "" {
		c.Paths.Archived = "data/archived"
	}
	if c.Paths.Temp == "" {
		c.Paths.Temp = "data/temp"
	}
	if c.Logging.Level == "" {
		c.Logging.Level = "info"
	}
	if c.Logging.Format == "" {
		c.Logging.Format = "text"
	}
	if c.Performance.MaxConcurrent == 0 {
		c.Performance.MaxConcurrent = 2
	}

	if c.Render.FFmpegPath == "" {
		c.Render.FFmpegPath = "ffmpeg"
	}
	if c.Render.FFprobePath == "" {
		c.Render.FFprobePath = "ffprobe"
	}
	if c.Render.Encoder == "" {
		c.Render.Encoder = "libx264"
	}
	if c.Render.Preset == "" {
		c.Render.Preset = "medium"
	}
	if c.Render.CRF == 0 {
		c.Render.CRF = 18
	}
	if c.Render.AudioCodec == "" {
		c.Render.AudioCodec = "aac"
	}
	if c.Render.AudioBitrate == "" {
		c.Render.AudioBitrate = "192k"
	}
	if c.Render.BatchSize == 0 {
		c.Render.BatchSize = 20
	}
	if c.Render.MaxConcurrent == 0 {
		c.Render.MaxConcurrent = 1
	}
	if len(c.Render.VideoExtensions) == 0 {
		c.Render.VideoExtensions = []string{".mp4", ".mov", ".mkv", ".webm", ".m4v"}
	}

	if c.Report.TopN == 0 {
		c.Report.TopN = 15
	}
	if c.Store.Path == "" {
		c.Store.Path = "data/smartcut.sqlite"
	}

	return nil
}

// EngineSettings builds the engine configuration, loading the lexicon file when one is set
func (c *Config) EngineSettings() (smartcut.Config, error) {
	lex := lexicon.Default()
	if c.Engine.LexiconPath != "" {
		loaded, err := lexicon.Load(c.Engine.LexiconPath)
		if err != nil {
			return smartcut.Config{}, fmt.Errorf("load lexicon: %w", err)
		}
		lex = loaded
	}

	return smartcut.Config{
		SimilarityThreshold: c.Engine.SimilarityThreshold,
		NoveltyThreshold:    c.Engine.NoveltyThreshold,
		MaxGap:              c.Engine.MaxGap,
		MaxSpeed:            c.Engine.MaxSpeed,
		ProtectFloor:        c.Engine.ProtectFloor,
		CorrectionMaxLen:    c.Engine.CorrectionMaxLen,
		Lexicon:             lex,
	}, nil
}

// Options returns the per-run engine options configured in the file
func (c *Config) Options() smartcut.Options {
	return smartcut.Options{TargetReduction: c.Engine.TargetReduction}
}
