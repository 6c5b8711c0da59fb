package score

import (
	"math"
	"sort"

	"github.com/ChrisMcGann/KSEA/pkg/core"
	"gonum.org/v1/gonum/stat"
)

// maxExactN bounds the larger sample size for which the exact two-sample
// distribution is used.
const maxExactN = 10000

type ksTest struct{}

func (ksTest) Method() Method { return KSTest }

// Score compares the substrate values with the non-substrate values. The
// statistic and log10(1/p) carry the sign of the substrate mean.
func (ksTest) Score(in Input, col Column) (Stat, error) {
	st := emptyStat()
	if len(in.Values) == 0 || len(in.NonSubstrates) == 0 {
		return st, &core.DegenerateStatisticError{
			Method:  string(KSTest),
			Kinase:  in.Kinase,
			Column:  in.Column,
			Message: "kinase has no non-substrate sites to compare against",
		}
	}

	st.Mean = mean(in.Values)
	d, p := KolmogorovSmirnov(in.Values, in.NonSubstrates)
	logP := math.Log10(1 / p)
	if st.Mean < 0 {
		d, logP = -d, -logP
	}

	st.Score = d
	st.PValue = p
	st.LogP = logP
	return st, nil
}

// KolmogorovSmirnov runs the two-sided two-sample KS test and returns the
// statistic D and its p-value. Both samples must be non-empty.
func KolmogorovSmirnov(x, y []float64) (d, p float64) {
	xs := append([]float64(nil), x...)
	ys := append([]float64(nil), y...)
	sort.Float64s(xs)
	sort.Float64s(ys)

	d = stat.KolmogorovSmirnov(xs, nil, ys, nil)

	m, n := len(xs), len(ys)
	if max(m, n) <= maxExactN {
		p = exactPValue(m, n, d)
	} else {
		p = asymptoticPValue(m, n, d)
	}
	return d, math.Min(math.Max(p, 0), 1)
}

// exactPValue returns P(D >= d) for samples of size m and n under the null
// hypothesis. Every ordering of the pooled samples is a monotone lattice
// path from (0,0) to (m,n); the walk below carries the probability of
// reaching each point without leaving the band |i/m - j/n| <= d and sums
// the probability mass that steps out of it.
func exactPValue(m, n int, d float64) float64 {
	if m > n {
		m, n = n, m
	}
	md, nd := float64(m), float64(n)
	q := (0.5 + math.Floor(d*md*nd-1e-7)) / (md * nd)
	outside := func(i, j int) bool {
		return math.Abs(float64(i)/md-float64(j)/nd) > q
	}

	total := float64(m + n)
	f := make([]float64, n+1)
	f[0] = 1
	exit := 0.0

	for j := 1; j <= n; j++ {
		flow := f[j-1] * float64(n-j+1) / (total - float64(j-1))
		if outside(0, j) {
			exit += flow
			f[j] = 0
		} else {
			f[j] = flow
		}
	}

	for i := 1; i <= m; i++ {
		flow := f[0] * float64(m-i+1) / (total - float64(i-1))
		if outside(i, 0) {
			exit += flow
			f[0] = 0
		} else {
			f[0] = flow
		}

		for j := 1; j <= n; j++ {
			rem := total - float64(i+j-1)
			flow := f[j]*float64(m-i+1)/rem + f[j-1]*float64(n-j+1)/rem
			if outside(i, j) {
				exit += flow
				f[j] = 0
			} else {
				f[j] = flow
			}
		}
	}

	return exit
}

// asymptoticPValue uses the limiting Kolmogorov distribution with the usual
// small-sample correction of the effective size.
func asymptoticPValue(m, n int, d float64) float64 {
	en := math.Sqrt(float64(m) * float64(n) / float64(m+n))
	return kolmogorovQ((en + 0.12 + 0.11/en) * d)
}

// kolmogorovQ is the survival function of the Kolmogorov distribution.
func kolmogorovQ(lambda float64) float64 {
	if lambda < 0.2 {
		return 1
	}
	const eps1, eps2 = 1e-6, 1e-16
	a2 := -2 * lambda * lambda
	sum, sign, prev := 0.0, 2.0, 0.0
	for j := 1; j <= 100; j++ {
		term := sign * math.Exp(a2*float64(j*j))
		sum += term
		if math.Abs(term) <= eps1*prev || math.Abs(term) <= eps2*sum {
			return sum
		}
		sign = -sign
		prev = math.Abs(term)
	}
	return 1
}
