package score

import (
	"math"

	"github.com/ChrisMcGann/KSEA/pkg/core"
)

type weightedRatio struct{}

func (weightedRatio) Method() Method { return WeightedRatio }

// Score computes (kinaseSum/allSum) * sqrt(subNum/totalSub) * 1e6.
func (weightedRatio) Score(in Input, col Column) (Stat, error) {
	st := emptyStat()

	kinSum := 0.0
	for _, v := range in.Values {
		kinSum += v
	}
	st.Sum = kinSum

	ks, err := KScore(kinSum, col.Sum, len(in.Values), in.TotalSubstrates)
	if err != nil {
		return st, &core.DegenerateStatisticError{
			Method:  string(WeightedRatio),
			Kinase:  in.Kinase,
			Column:  in.Column,
			Message: err.Error(),
		}
	}
	st.Score = ks
	return st, nil
}

// KScore evaluates the weighted intensity ratio. A zero database substrate
// count or a zero column sum is an error.
func KScore(kinaseSum, allSum float64, subNum, totalSub int) (float64, error) {
	if totalSub <= 0 {
		return math.NaN(), errMsg("kinase has no substrates in the reference database")
	}
	if allSum == 0 {
		return math.NaN(), errMsg("sum of all intensities in the column is zero")
	}
	return (kinaseSum / allSum) * math.Sqrt(float64(subNum)/float64(totalSub)) * 1e6, nil
}

type errMsg string

func (e errMsg) Error() string { return string(e) }
