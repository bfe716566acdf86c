// Package analysis provides spectral analysis for rendered audio.
//
// Spectrum wraps a radix-2 FFT (github.com/ktye/fft) with a Hann window and
// amplitude-normalised magnitudes, so a sine of amplitude A reads close to A
// in its bin. Peaks finds the strongest partials with parabolic
// interpolation, which is how the additive voices of a rendered tone are
// identified.
package analysis
