package main

import (
	"errors"

	"autosplit/internal/analysis"
	"autosplit/internal/chapters"
	"autosplit/internal/episodeplan"
	"autosplit/internal/media/pcm"
	"autosplit/internal/services"
)

// errorHint returns operator guidance for err, or "" when none applies.
func errorHint(err error) string {
	switch {
	case errors.Is(err, analysis.ErrAudioExtract):
		return pcm.ClassifyFailure(err).Hint
	case errors.Is(err, episodeplan.ErrAmbiguous):
		return "several groups fit; run interactively or pass --yes to take the best ranked one"
	case errors.Is(err, episodeplan.ErrInvalidRequest):
		return "--episodes must be a positive integer"
	case errors.Is(err, chapters.ErrNoChapters):
		return "the container has no chapter table; add chapters with mkvpropedit or split by time instead"
	case errors.Is(err, errInputClosed):
		return "pass --yes and the needed flags when running without a terminal"
	}
	return services.Hint(err)
}
