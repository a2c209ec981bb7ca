// Package pcm decodes the soundtrack of a container into a mono 16-bit PCM
// signal by streaming ffmpeg output, and exposes float windows of it for
// fingerprinting.
package pcm
