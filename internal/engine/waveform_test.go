package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestResampleWaveform_Shrink(t *testing.T) {
	samples := make([]float64, 800)
	for i := range samples {
		samples[i] = float64(i)
	}

	out := ResampleWaveform(samples, 8, 4)

	assert.Len(t, out, 400, "halving the duration should halve the sample count")
	assert.Equal(t, 0.0, out[0], "first sample should be unchanged")
	assert.InDelta(t, samples[len(samples)-1], out[len(out)-1], 1e-9, "last sample should be unchanged")
}

func TestResampleWaveform_EmptyInput(t *testing.T) {
	assert.Nil(t, ResampleWaveform(nil, 8, 4), "no samples should resample to nil")
	assert.Nil(t, ResampleWaveform([]float64{1, 2, 3}, 0, 4), "zero original duration has nothing to scale from")
}

func TestResampleWaveform_Grow(t *testing.T) {
	samples := []float64{0, 10}

	out := ResampleWaveform(samples, 1, 2)

	assert.Len(t, out, 4)
	assert.Equal(t, 0.0, out[0])
	assert.InDelta(t, 10.0, out[len(out)-1], 1e-9)
}
