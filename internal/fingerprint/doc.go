// Package fingerprint turns the opening seconds of each chapter into a
// compact spectral fingerprint: the per-coefficient mean of a 13 band MFCC
// matrix.
//
// The MFCC front end follows the common music-analysis convention (centred
// 2048 point frames with a periodic Hann window, hop 512, 128 Slaney mel
// bands, power to dB with an 80 dB floor below the peak, orthonormal
// DCT-II). Segments that run past the end of the signal or whose RMS falls
// below the silence floor are skipped without error.
package fingerprint
