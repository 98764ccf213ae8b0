package analysis

import (
	"math"
	"math/cmplx"

	"github.com/mjibson/go-dsp/fft"
)

// Bin is one frequency bin of a one-sided amplitude spectrum.
type Bin struct {
	Freq      float64
	Amplitude float64
}

// Spectrum returns the one-sided amplitude spectrum of a real signal sampled
// at rate hertz. The mean is removed and a Hann window applied first, so a
// constant signal has an all-zero spectrum.
func Spectrum(samples []float64, rate float64) []Bin {
	n := len(samples)
	if n < 2 || rate <= 0 {
		return nil
	}

	mean := 0.0
	for _, v := range samples {
		mean += v
	}
	mean /= float64(n)

	windowed := make([]float64, n)
	for i, v := range samples {
		w := 0.5 - 0.5*math.Cos(2*math.Pi*float64(i)/float64(n-1))
		windowed[i] = (v - mean) * w
	}

	coeffs := fft.FFTReal(windowed)
	half := n/2 + 1
	bins := make([]Bin, half)
	for k := 0; k < half; k++ {
		bins[k] = Bin{
			Freq:      float64(k) * rate / float64(n),
			Amplitude: 2 * cmplx.Abs(coeffs[k]) / float64(n),
		}
	}
	return bins
}

// DominantFrequency returns the non-DC bin with the largest amplitude.
func DominantFrequency(samples []float64, rate float64) (Bin, bool) {
	bins := Spectrum(samples, rate)
	if len(bins) < 2 {
		return Bin{}, false
	}
	best := bins[1]
	for _, b := range bins[2:] {
		if b.Amplitude > best.Amplitude {
			best = b
		}
	}
	return best, best.Amplitude > 0
}
