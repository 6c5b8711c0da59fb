// Package score implements the kinase scoring strategies: the weighted
// intensity ratio (K-score), the one-sample z-test and the two-sample
// Kolmogorov-Smirnov test.
package score

import (
	"fmt"
	"math"
	"strings"

	"github.com/ChrisMcGann/KSEA/pkg/aggregate"
)

// Method names a scoring strategy.
type Method string

const (
	WeightedRatio Method = "karp"
	ZTest         Method = "ztest"
	KSTest        Method = "ks"
)

// Methods lists the supported methods.
var Methods = []Method{KSTest, WeightedRatio, ZTest}

// ParseMethod resolves a method name, accepting a few aliases.
func ParseMethod(name string) (Method, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "karp", "kscore", "k-score", "weighted-ratio":
		return WeightedRatio, nil
	case "ztest", "z-test", "z":
		return ZTest, nil
	case "ks", "kstest", "ks-test", "kolmogorov-smirnov":
		return KSTest, nil
	}
	return "", fmt.Errorf("unknown scoring method '%s', must be karp, ztest or ks", name)
}

// Intensity reports whether the method expects non-negative intensities
// rather than log2 fold-changes.
func (m Method) Intensity() bool {
	return m == WeightedRatio
}

// HasPValue reports whether the method yields a significance test.
func (m Method) HasPValue() bool {
	return m == ZTest || m == KSTest
}

// Input is one kinase's data in one sample column.
type Input struct {
	Kinase          string
	Column          int
	Values          []float64 // substrate values
	NonSubstrates   []float64 // non-substrate values, KS test only
	TotalSubstrates int       // database substrate count
}

// Column carries the column-wide statistics shared by all kinases.
type Column struct {
	Index  int
	Sum    float64
	Mean   float64
	StdDev float64 // population standard deviation
}

// ColumnStats summarizes an aggregated column.
func ColumnStats(c *aggregate.Column) Column {
	return Column{
		Index:  c.Index,
		Sum:    c.Sum(),
		Mean:   c.Mean(),
		StdDev: c.PopStdDev(),
	}
}

// Stat is the result for one kinase in one column. Fields a method does not
// produce are NaN.
type Stat struct {
	Sum    float64 // substrate value sum (K-score)
	Mean   float64 // substrate mean (z-test, KS test)
	Score  float64 // K-score, z-score or signed KS statistic
	PValue float64
	LogP   float64 // signed log10(1/p), KS test only
}

// Band returns the significance band of the statistic's p-value.
func (s Stat) Band() Significance {
	return Band(s.PValue)
}

// HeatValue is the value a heatmap or barplot shows for this statistic.
func (s Stat) HeatValue(m Method) float64 {
	if m == KSTest {
		return s.LogP
	}
	return s.Score
}

func emptyStat() Stat {
	nan := math.NaN()
	return Stat{Sum: nan, Mean: nan, Score: nan, PValue: nan, LogP: nan}
}

// Strategy scores one kinase in one column.
type Strategy interface {
	Method() Method
	Score(in Input, col Column) (Stat, error)
}

// New returns the strategy for m.
func New(m Method) (Strategy, error) {
	switch m {
	case WeightedRatio:
		return weightedRatio{}, nil
	case ZTest:
		return zTest{}, nil
	case KSTest:
		return ksTest{}, nil
	}
	return nil, fmt.Errorf("unknown scoring method '%s'", m)
}

func mean(x []float64) float64 {
	sum := 0.0
	for _, v := range x {
		sum += v
	}
	return sum / float64(len(x))
}
