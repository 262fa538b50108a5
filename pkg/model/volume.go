package model

import (
	"errors"
	"fmt"
	"math"
)

// Displayed volume range. 100 is unity gain.
const (
	DisplayedMin = 0
	DisplayedMax = 140
)

// ErrVolumeRange is returned for a displayed volume outside [0, 140].
var ErrVolumeRange = errors.New("model: displayed volume out of range")

// DisplayedVolume maps a linear gain to the slider scale.
func DisplayedVolume(volume float32) float64 {
	if volume <= 0 {
		return 0
	}
	return math.Sqrt(float64(volume)) * 100
}

// VolumeFromDisplayed maps a slider value back to linear gain.
func VolumeFromDisplayed(displayed float64) (float32, error) {
	if math.IsNaN(displayed) || displayed < DisplayedMin || displayed > DisplayedMax {
		return 0, fmt.Errorf("%w: %v", ErrVolumeRange, displayed)
	}
	v := displayed / 100
	return float32(v * v), nil
}

// VolumeDecibels returns the gain in dB. Silence is -Inf.
func VolumeDecibels(volume float32) float64 {
	if volume <= 0 {
		return math.Inf(-1)
	}
	return 20 * math.Log10(float64(volume))
}
