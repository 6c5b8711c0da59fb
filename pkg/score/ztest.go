package score

import (
	"math"

	"github.com/ChrisMcGann/KSEA/pkg/core"
	"gonum.org/v1/gonum/stat/distuv"
)

type zTest struct{}

func (zTest) Method() Method { return ZTest }

func (zTest) Score(in Input, col Column) (Stat, error) {
	st := emptyStat()
	st.Mean = mean(in.Values)

	z, err := ZScore(st.Mean, col.Mean, len(in.Values), col.StdDev)
	if err != nil {
		return st, &core.DegenerateStatisticError{
			Method:  string(ZTest),
			Kinase:  in.Kinase,
			Column:  in.Column,
			Message: err.Error(),
		}
	}
	st.Score = z
	st.PValue = ZPValue(z)
	return st, nil
}

// ZScore computes (kinaseMean - globalMean) * sqrt(subNum) / sd.
func ZScore(kinaseMean, globalMean float64, subNum int, sd float64) (float64, error) {
	if sd == 0 || math.IsNaN(sd) {
		return math.NaN(), errMsg("column values have zero variance")
	}
	return (kinaseMean - globalMean) * math.Sqrt(float64(subNum)) / sd, nil
}

// ZPValue is the one-sided p-value of z: the lower tail for negative z and
// the upper tail otherwise.
func ZPValue(z float64) float64 {
	if z < 0 {
		return distuv.UnitNormal.CDF(z)
	}
	return 1.0 - distuv.UnitNormal.CDF(z)
}
