package config

import (
	"fmt"
	"os"
	"strings"
)

func (c *Config) normalize() error {
	if err := c.normalizePaths(); err != nil {
		return err
	}
	c.normalizeTools()
	c.normalizeAudio()
	c.normalizeMatching()
	c.normalizeSplit()
	c.normalizeLogging()
	return nil
}

func (c *Config) normalizePaths() error {
	var err error
	if c.Paths.LogDir, err = expandPath(strings.TrimSpace(c.Paths.LogDir)); err != nil {
		return fmt.Errorf("paths.log_dir: %w", err)
	}
	return nil
}

func (c *Config) normalizeTools() {
	c.Tools.FFmpeg = trimOr(c.Tools.FFmpeg, defaultFFmpegBinary)
	c.Tools.FFprobe = trimOr(c.Tools.FFprobe, defaultFFprobeBinary)
	c.Tools.MKVExtract = trimOr(c.Tools.MKVExtract, defaultMKVExtractBinary)
	c.Tools.MKVMerge = trimOr(c.Tools.MKVMerge, defaultMKVMergeBinary)
	if c.Tools.TimeoutSeconds == 0 {
		c.Tools.TimeoutSeconds = defaultToolTimeoutSeconds
	}
}

func (c *Config) normalizeAudio() {
	if c.Audio.SampleRate == 0 {
		c.Audio.SampleRate = defaultSampleRate
	}
	if c.Audio.SegmentSeconds == 0 {
		c.Audio.SegmentSeconds = defaultSegmentSeconds
	}
	c.Audio.ChapterSource = strings.ToLower(strings.TrimSpace(c.Audio.ChapterSource))
	if c.Audio.ChapterSource == "" {
		c.Audio.ChapterSource = defaultChapterSource
	}
}

func (c *Config) normalizeMatching() {
	if c.Matching.DistanceThreshold == 0 {
		c.Matching.DistanceThreshold = defaultDistanceThreshold
	}
	if c.Matching.ProvisionalMinGroup == 0 {
		c.Matching.ProvisionalMinGroup = defaultProvisionalMinGroup
	}
	if c.Matching.ProvisionalSimilarity == 0 {
		c.Matching.ProvisionalSimilarity = defaultProvisionalSimilarity
	}
	if c.Matching.FinalMinGroup == 0 {
		c.Matching.FinalMinGroup = defaultFinalMinGroup
	}
	if c.Matching.FinalSimilarity == 0 {
		c.Matching.FinalSimilarity = defaultFinalSimilarity
	}
	if c.Matching.MaxResults == 0 {
		c.Matching.MaxResults = defaultMaxResults
	}
}

func (c *Config) normalizeSplit() {
	c.Split.Suffix = strings.TrimSpace(c.Split.Suffix)
	if c.Split.Suffix == "" {
		c.Split.Suffix = defaultSplitSuffix
	}
}

func (c *Config) normalizeLogging() {
	c.Logging.Format = strings.ToLower(strings.TrimSpace(c.Logging.Format))
	switch c.Logging.Format {
	case "", "console":
		c.Logging.Format = "console"
	case "json":
	default:
		c.Logging.Format = "console"
	}
	c.Logging.Level = strings.ToLower(strings.TrimSpace(c.Logging.Level))
	if value, ok := os.LookupEnv("AUTOSPLIT_LOG_LEVEL"); ok && strings.TrimSpace(value) != "" {
		c.Logging.Level = strings.ToLower(strings.TrimSpace(value))
	}
	if c.Logging.Level == "" {
		c.Logging.Level = defaultLogLevel
	}
}

func trimOr(value, fallback string) string {
	value = strings.TrimSpace(value)
	if value == "" {
		return fallback
	}
	return value
}
