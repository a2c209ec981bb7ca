package config

import (
	_ "embed"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/pelletier/go-toml/v2"
)

//go:embed sample_config.toml
var sampleConfig string

// Paths contains directory configuration.
type Paths struct {
	LogDir string `toml:"log_dir"`
}

// Tools names the external binaries autosplit delegates to.
type Tools struct {
	FFmpeg         string `toml:"ffmpeg"`
	FFprobe        string `toml:"ffprobe"`
	MKVExtract     string `toml:"mkvextract"`
	MKVMerge       string `toml:"mkvmerge"`
	TimeoutSeconds int    `toml:"timeout_seconds"`
}

// Audio contains configuration for PCM extraction and fingerprinting.
type Audio struct {
	SampleRate        int     `toml:"sample_rate"`
	SegmentSeconds    int     `toml:"segment_seconds"`
	SilenceFloor      float64 `toml:"silence_floor"`
	MinChapterSeconds float64 `toml:"min_chapter_seconds"`
	// ChapterSource selects the chapter dump tool: "mkvextract" or "ffprobe".
	ChapterSource string `toml:"chapter_source"`
}

// Matching contains thresholds for the audio similarity path.
type Matching struct {
	// DistanceThreshold is the cosine distance below which two fingerprints
	// match. 0.005 means at least 99.5% similarity.
	DistanceThreshold     float64 `toml:"distance_threshold"`
	ProvisionalMinGroup   int     `toml:"provisional_min_group"`
	ProvisionalSimilarity float64 `toml:"provisional_similarity"`
	FinalMinGroup         int     `toml:"final_min_group"`
	FinalSimilarity       float64 `toml:"final_similarity"`
	MaxResults            int     `toml:"max_results"`
}

// Length contains configuration for duration-based grouping.
type Length struct {
	ToleranceSeconds float64 `toml:"tolerance_seconds"`
}

// Split contains configuration for the generated mkvmerge command.
type Split struct {
	Suffix string `toml:"suffix"`
}

// Logging contains configuration for log output.
type Logging struct {
	Format string `toml:"format"`
	Level  string `toml:"level"`
}

// Config encapsulates all configuration values for autosplit.
//
// Configuration sections by subsystem:
//   - Paths: log directory
//   - Tools: ffmpeg, ffprobe and MKVToolNix binaries
//   - Audio: PCM sample rate, fingerprint window, silence floor
//   - Matching: similarity thresholds for intro detection
//   - Length: duration tolerance for chapter-length grouping
//   - Split: output naming for the split command
//   - Logging: log format and level
type Config struct {
	Paths    Paths    `toml:"paths"`
	Tools    Tools    `toml:"tools"`
	Audio    Audio    `toml:"audio"`
	Matching Matching `toml:"matching"`
	Length   Length   `toml:"length"`
	Split    Split    `toml:"split"`
	Logging  Logging  `toml:"logging"`
}

// DefaultConfigPath returns the absolute path to the default configuration file location.
func DefaultConfigPath() (string, error) {
	return expandPath(defaultConfigPath)
}

// Load locates, parses, and validates a configuration file. The returned config has all
// path fields expanded and normalized.
func Load(path string) (*Config, string, bool, error) {
	cfg := Default()

	resolvedPath, exists, err := resolveConfigPath(path)
	if err != nil {
		return nil, "", false, err
	}

	if exists {
		file, err := os.Open(resolvedPath)
		if err != nil {
			return nil, "", false, fmt.Errorf("open config: %w", err)
		}
		defer file.Close()

		decoder := toml.NewDecoder(file)
		if err := decoder.Decode(&cfg); err != nil {
			return nil, "", false, fmt.Errorf("parse config: %w", err)
		}
	}

	if err := cfg.normalize(); err != nil {
		return nil, "", false, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, "", false, err
	}

	return &cfg, resolvedPath, exists, nil
}

func resolveConfigPath(path string) (string, bool, error) {
	if path != "" {
		expanded, err := expandPath(path)
		if err != nil {
			return "", false, err
		}
		_, err = os.Stat(expanded)
		if err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				return expanded, false, nil
			}
			return "", false, fmt.Errorf("stat config: %w", err)
		}
		return expanded, true, nil
	}

	defaultPath, err := expandPath(defaultConfigPath)
	if err != nil {
		return "", false, err
	}

	projectPath, err := filepath.Abs("autosplit.toml")
	if err != nil {
		return "", false, err
	}

	if info, err := os.Stat(defaultPath); err == nil && !info.IsDir() {
		return defaultPath, true, nil
	}
	if info, err := os.Stat(projectPath); err == nil && !info.IsDir() {
		return projectPath, true, nil
	}

	return defaultPath, false, nil
}

// EnsureDirectories creates the log directory when one is configured.
func (c *Config) EnsureDirectories() error {
	if strings.TrimSpace(c.Paths.LogDir) == "" {
		return nil
	}
	if err := os.MkdirAll(c.Paths.LogDir, 0o755); err != nil {
		return fmt.Errorf("create directory %q: %w", c.Paths.LogDir, err)
	}
	return nil
}

// SegmentSamples returns the fingerprint window length in PCM samples.
func (c *Config) SegmentSamples() int {
	return c.Audio.SampleRate * c.Audio.SegmentSeconds
}

func expandPath(pathValue string) (string, error) {
	if pathValue == "" {
		return pathValue, nil
	}
	if strings.HasPrefix(pathValue, "~") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home directory: %w", err)
		}
		if pathValue == "~" {
			pathValue = home
		} else if len(pathValue) > 1 && (pathValue[1] == '/' || pathValue[1] == '\\') {
			pathValue = filepath.Join(home, pathValue[2:])
		}
	}
	cleaned := filepath.Clean(pathValue)
	absolute, err := filepath.Abs(cleaned)
	if err != nil {
		return "", fmt.Errorf("resolve absolute path for %q: %w", cleaned, err)
	}
	return absolute, nil
}

// ExpandPath exposes the repository path expansion rules for other packages.
func ExpandPath(pathValue string) (string, error) {
	return expandPath(pathValue)
}

// CreateSample writes a sample configuration file to the specified location.
func CreateSample(path string) error {
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create config directory: %w", err)
		}
	}

	if err := os.WriteFile(path, []byte(sampleConfig), 0o644); err != nil {
		return fmt.Errorf("write sample config: %w", err)
	}
	return nil
}
