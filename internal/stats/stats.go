package stats

import "math"

// GrowthRate returns the compound per-period growth rate between the first
// and last element of series. Returns 0 when fewer than two points exist or
// the series starts at zero.
func GrowthRate(series []float64) float64 {
	if len(series) < 2 || series[0] == 0 {
		return 0
	}
	periods := float64(len(series) - 1)
	return math.Pow(series[len(series)-1]/series[0], 1/periods) - 1
}

// Stability returns the coefficient of variation (stddev / |mean|). Lower is
// more stable. Returns the 1.0 "maximally unstable" sentinel for series with
// fewer than two points, all zeros, or a zero mean; callers must not read
// that as perfectly stable.
func Stability(series []float64) float64 {
	if len(series) < 2 || allZero(series) {
		return 1.0
	}
	m := Mean(series)
	if m == 0 {
		return 1.0
	}
	return StdDev(series) / math.Abs(m)
}

// LinearTrend fits y = a*x + b by ordinary least squares over index
// positions 0..n-1 and extrapolates horizon future points. With fewer than
// two points it repeats the single known value (or 0) horizon times.
func LinearTrend(series []float64, horizon int) []float64 {
	if horizon <= 0 {
		return nil
	}
	out := make([]float64, horizon)
	n := len(series)
	if n < 2 {
		base := 0.0
		if n == 1 {
			base = series[0]
		}
		for i := range out {
			out[i] = base
		}
		return out
	}

	xMean := float64(n-1) / 2
	yMean := Mean(series)
	var num, denom float64
	for i, y := range series {
		dx := float64(i) - xMean
		num += dx * (y - yMean)
		denom += dx * dx
	}
	a := 0.0
	if denom != 0 {
		a = num / denom
	}
	b := yMean - a*xMean

	for i := range out {
		out[i] = a*float64(n+i) + b
	}
	return out
}

// Mean returns the arithmetic mean, 0 for an empty series.
func Mean(series []float64) float64 {
	if len(series) == 0 {
		return 0
	}
	sum := 0.0
	for _, v := range series {
		sum += v
	}
	return sum / float64(len(series))
}

// StdDev returns the population standard deviation.
func StdDev(series []float64) float64 {
	if len(series) == 0 {
		return 0
	}
	m := Mean(series)
	s := 0.0
	for _, v := range series {
		d := v - m
		s += d * d
	}
	return math.Sqrt(s / float64(len(series)))
}

func allZero(series []float64) bool {
	for _, v := range series {
		if v != 0 {
			return false
		}
	}
	return true
}
