package config

const (
	defaultConfigPath            = "~/.config/autosplit/config.toml"
	defaultLogDir                = "~/.local/share/autosplit/logs"
	defaultFFmpegBinary          = "ffmpeg"
	defaultFFprobeBinary         = "ffprobe"
	defaultMKVExtractBinary      = "mkvextract"
	defaultMKVMergeBinary        = "mkvmerge"
	defaultToolTimeoutSeconds    = 3600
	defaultSampleRate            = 22050
	defaultSegmentSeconds        = 10
	defaultSilenceFloor          = 0.005
	defaultMinChapterSeconds     = 10
	defaultChapterSource         = ChapterSourceMKVExtract
	defaultDistanceThreshold     = 0.005
	defaultProvisionalMinGroup   = 3
	defaultProvisionalSimilarity = 99.9
	defaultFinalMinGroup         = 4
	defaultFinalSimilarity       = 99.95
	defaultMaxResults            = 10
	defaultToleranceSeconds      = 2.0
	defaultSplitSuffix           = "_episodes"
	defaultLogFormat             = "console"
	defaultLogLevel              = "info"
)

// Chapter sources accepted by audio.chapter_source.
const (
	ChapterSourceMKVExtract = "mkvextract"
	ChapterSourceFFprobe    = "ffprobe"
)

// Default returns a Config populated with repository defaults.
func Default() Config {
	return Config{
		Paths: Paths{
			LogDir: defaultLogDir,
		},
		Tools: Tools{
			FFmpeg:         defaultFFmpegBinary,
			FFprobe:        defaultFFprobeBinary,
			MKVExtract:     defaultMKVExtractBinary,
			MKVMerge:       defaultMKVMergeBinary,
			TimeoutSeconds: defaultToolTimeoutSeconds,
		},
		Audio: Audio{
			SampleRate:        defaultSampleRate,
			SegmentSeconds:    defaultSegmentSeconds,
			SilenceFloor:      defaultSilenceFloor,
			MinChapterSeconds: defaultMinChapterSeconds,
			ChapterSource:     defaultChapterSource,
		},
		Matching: Matching{
			DistanceThreshold:     defaultDistanceThreshold,
			ProvisionalMinGroup:   defaultProvisionalMinGroup,
			ProvisionalSimilarity: defaultProvisionalSimilarity,
			FinalMinGroup:         defaultFinalMinGroup,
			FinalSimilarity:       defaultFinalSimilarity,
			MaxResults:            defaultMaxResults,
		},
		Length: Length{
			ToleranceSeconds: defaultToleranceSeconds,
		},
		Split: Split{
			Suffix: defaultSplitSuffix,
		},
		Logging: Logging{
			Format: defaultLogFormat,
			Level:  defaultLogLevel,
		},
	}
}
