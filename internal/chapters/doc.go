// Package chapters models the chapter list of a multi-episode container.
//
// Chapter dumps come from mkvextract (Matroska chapter XML) or ffprobe and are
// reduced to an ordered list of Markers. Build turns markers into Chapters
// with 1-based indices and next-start durations; the final chapter has no
// known duration and is never grouped by length. FilterShort drops chapters
// too short to hold a fingerprint window while keeping their original
// indices, which are the indices mkvmerge understands.
package chapters
