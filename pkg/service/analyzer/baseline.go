package analyzer

import "math"

// baselineAverage returns the arithmetic mean over the full baseline
// month series. Months with no records count as zero; there is no
// smoothing or outlier rejection.
func baselineAverage(counts map[monthKey]int, months []monthKey) float64 {
	if len(months) == 0 {
		return 0
	}
	var sum int
	for _, month := range months {
		sum += counts[month]
	}
	return float64(sum) / float64(len(months))
}

// baselineStdDev returns the sample standard deviation of the baseline
// month series. The value is a legacy diagnostic carried in the report
// for the dashboard; classification never uses it (see the ratio
// policy in classify.go).
func baselineStdDev(counts map[monthKey]int, months []monthKey) float64 {
	if len(months) < 2 {
		return 0
	}
	mean := baselineAverage(counts, months)
	var sum float64
	for _, month := range months {
		d := float64(counts[month]) - mean
		sum += d * d
	}
	return math.Sqrt(sum / float64(len(months)-1))
}
