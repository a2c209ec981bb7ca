package config

import (
	"errors"
	"fmt"
	"strings"
)

// Validate ensures the configuration is usable.
func (c *Config) Validate() error {
	if err := c.validateTools(); err != nil {
		return err
	}
	if err := c.validateAudio(); err != nil {
		return err
	}
	if err := c.validateMatching(); err != nil {
		return err
	}
	if err := c.validateLength(); err != nil {
		return err
	}
	if err := c.validateSplit(); err != nil {
		return err
	}
	return c.validateLogging()
}

func (c *Config) validateTools() error {
	if c.Tools.TimeoutSeconds <= 0 {
		return errors.New("tools.timeout_seconds must be positive")
	}
	return nil
}

func (c *Config) validateAudio() error {
	if err := ensurePositiveMap(map[string]int{
		"audio.sample_rate":     c.Audio.SampleRate,
		"audio.segment_seconds": c.Audio.SegmentSeconds,
	}); err != nil {
		return err
	}
	if c.Audio.SilenceFloor < 0 || c.Audio.SilenceFloor >= 1 {
		return errors.New("audio.silence_floor must be between 0 and 1")
	}
	if c.Audio.MinChapterSeconds < 0 {
		return errors.New("audio.min_chapter_seconds must be >= 0")
	}
	switch c.Audio.ChapterSource {
	case ChapterSourceMKVExtract, ChapterSourceFFprobe:
	default:
		return fmt.Errorf("audio.chapter_source: unsupported value %q (use %q or %q)", c.Audio.ChapterSource, ChapterSourceMKVExtract, ChapterSourceFFprobe)
	}
	return nil
}

// ValidateDistanceThreshold checks a cosine distance threshold, which must
// lie in the open interval (0, 1).
func ValidateDistanceThreshold(value float64) error {
	if value <= 0 || value >= 1 {
		return fmt.Errorf("must be between 0 and 1 (exclusive), got %v", value)
	}
	return nil
}

func (c *Config) validateMatching() error {
	m := c.Matching
	if err := ValidateDistanceThreshold(m.DistanceThreshold); err != nil {
		return fmt.Errorf("matching.distance_threshold: %w", err)
	}
	if m.ProvisionalMinGroup < 3 {
		return errors.New("matching.provisional_min_group must be >= 3")
	}
	if m.FinalMinGroup < m.ProvisionalMinGroup {
		return errors.New("matching.final_min_group must be >= matching.provisional_min_group")
	}
	for key, value := range map[string]float64{
		"matching.provisional_similarity": m.ProvisionalSimilarity,
		"matching.final_similarity":       m.FinalSimilarity,
	} {
		if value <= 0 || value > 100 {
			return fmt.Errorf("%s must be within (0, 100]", key)
		}
	}
	if m.MaxResults <= 0 {
		return errors.New("matching.max_results must be positive")
	}
	return nil
}

func (c *Config) validateLength() error {
	if c.Length.ToleranceSeconds < 0 {
		return errors.New("length.tolerance_seconds must be >= 0")
	}
	return nil
}

func (c *Config) validateSplit() error {
	if strings.ContainsAny(c.Split.Suffix, `/\`) {
		return errors.New("split.suffix must not contain path separators")
	}
	return nil
}

func (c *Config) validateLogging() error {
	switch c.Logging.Level {
	case "debug", "info", "warn", "error":
		return nil
	default:
		return fmt.Errorf("logging.level: unsupported value %q", c.Logging.Level)
	}
}

func ensurePositiveMap(values map[string]int) error {
	for key, value := range values {
		if value <= 0 {
			return fmt.Errorf("%s must be positive", key)
		}
	}
	return nil
}
