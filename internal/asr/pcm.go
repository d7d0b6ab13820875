package asr

// Samples converts little-endian 16-bit PCM to float32 in [-1, 1), the
// input format whisper expects.
func Samples(pcm []byte) []float32 {
	n := len(pcm) / 2
	samples := make([]float32, n)
	for i := 0; i < n; i++ {
		sample := int16(pcm[i*2]) | int16(pcm[i*2+1])<<8
		samples[i] = float32(sample) / 32768.0
	}
	return samples
}
