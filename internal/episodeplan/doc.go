// Package episodeplan turns chapter groups into an ordered list of episode
// start chapters.
//
// A group of k chapters can be read two ways: outro-style, where each member
// ends an episode and the following chapter starts the next (k episodes),
// or intro-style, where each member starts an episode (k+1 episodes counting
// the material before the first). Resolve picks a group against the expected
// episode count, falling back to a Decider when the choice is ambiguous, and
// then post-processes the start list. The optional first-episode inference
// lives in InferFirstEpisode and its output is flagged on the Plan.
package episodeplan
