package audio

import "math"

// FadeIn returns a copy of samples with a linear fade-in ramp over the given
// duration in milliseconds. samples is not modified.
func FadeIn(samples []int16, sampleRate int, ms float64) []int16 {
	out := append([]int16(nil), samples...)
	n := rampLen(len(out), sampleRate, ms)
	for i := range n {
		out[i] = scale(out[i], float64(i)/float64(n))
	}
	return out
}

// FadeOut returns a copy of samples with a linear fade-out ramp over the given
// duration in milliseconds. samples is not modified.
func FadeOut(samples []int16, sampleRate int, ms float64) []int16 {
	out := append([]int16(nil), samples...)
	n := rampLen(len(out), sampleRate, ms)
	start := len(out) - n
	for i := range n {
		out[start+i] = scale(out[start+i], float64(n-1-i)/float64(n))
	}
	return out
}

func rampLen(total, sampleRate int, ms float64) int {
	if ms <= 0 || sampleRate < 1 {
		return 0
	}
	n := int(math.Round(float64(sampleRate) * ms / 1000))
	return min(n, total)
}

func scale(s int16, gain float64) int16 {
	return int16(math.Round(float64(s) * gain))
}
