// Package analysis runs the two detection paths against one container.
//
// The audio path dumps chapters, decodes mono PCM through ffmpeg,
// fingerprints the opening of each chapter and clusters matching openings
// into an intro sequence. The length path groups chapters of near-equal
// duration. Both hand their groups to episodeplan, which turns them into
// episode start chapters. Every run is tagged with a run ID so its log
// lines can be correlated.
package analysis
