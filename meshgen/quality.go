package meshgen

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// Quality is the curve flattening tolerance in em units: the maximum
// distance between a glyph curve and its polyline. Smaller is finer.
type Quality float32

// Preset qualities.
const (
	QualityLow    Quality = 1.0 / 64
	QualityMedium Quality = 1.0 / 256
	QualityHigh   Quality = 1.0 / 1024
)

// Tolerance returns the effective tolerance. Zero, negative and NaN values
// mean QualityMedium.
func (q Quality) Tolerance() float32 {
	t := float32(q)
	if !(t > 0) || math.IsInf(float64(t), 0) {
		return float32(QualityMedium)
	}
	return t
}

// String returns the preset name or the tolerance.
func (q Quality) String() string {
	switch q {
	case QualityLow:
		return "low"
	case QualityMedium:
		return "medium"
	case QualityHigh:
		return "high"
	default:
		return strconv.FormatFloat(float64(q), 'g', -1, 32)
	}
}

// ParseQuality parses a preset name or a tolerance in em units.
// An empty string yields QualityMedium.
func ParseQuality(s string) (Quality, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "medium":
		return QualityMedium, nil
	case "low":
		return QualityLow, nil
	case "high":
		return QualityHigh, nil
	}
	v, err := strconv.ParseFloat(s, 32)
	if err != nil || !(v > 0) || math.IsInf(v, 0) {
		return 0, fmt.Errorf("meshgen: invalid quality %q", s)
	}
	return Quality(v), nil
}
