package score

import "math"

// Significance is the presentation band of a p-value.
type Significance int

const (
	NotSignificant Significance = iota
	Moderate                    // p < 0.05
	Strong                      // p < 0.01
)

// Band thresholds a p-value. NaN is not significant.
func Band(p float64) Significance {
	switch {
	case math.IsNaN(p):
		return NotSignificant
	case p < 0.01:
		return Strong
	case p < 0.05:
		return Moderate
	}
	return NotSignificant
}

// Marker is the annotation appended to a heatmap cell or bar label.
func (s Significance) Marker() string {
	switch s {
	case Strong:
		return "**"
	case Moderate:
		return "*"
	}
	return ""
}

func (s Significance) String() string {
	switch s {
	case Strong:
		return "strong"
	case Moderate:
		return "moderate"
	}
	return "not significant"
}

// Color is the bar color used by the single-sample barplots.
func (s Significance) Color() string {
	switch s {
	case Strong:
		return "#ff4d4d"
	case Moderate:
		return "#ffb3b3"
	}
	return "#b3b3b3"
}
