package reid

// AveragePrecision scores one ranked retrieval list. yTrue marks relevant
// items and yScore holds their similarity, both already ordered best first.
// It returns 0 when no item is relevant.
func AveragePrecision(yTrue []bool, yScore []float64, method APMethod) float64 {
	switch method {
	case APMethodTrapezoid:
		return trapezoidAveragePrecision(yTrue, yScore)
	default:
		return stepAveragePrecision(yTrue)
	}
}

// stepAveragePrecision is the mean of precision@k over the ranks k that hold
// a relevant item.
func stepAveragePrecision(yTrue []bool) float64 {
	relevant := 0
	sumPrecision := 0.0

	for k, ok := range yTrue {
		if ok {
			relevant++
			sumPrecision += float64(relevant) / float64(k+1)
		}
	}

	if relevant == 0 {
		return 0
	}
	return sumPrecision / float64(relevant)
}

// trapezoidAveragePrecision integrates precision over recall with the
// trapezoid rule. Points are taken at distinct score thresholds, the curve
// starts at (recall 0, precision 1) and stops at the first full-recall point.
func trapezoidAveragePrecision(yTrue []bool, yScore []float64) float64 {
	total := 0
	for _, ok := range yTrue {
		if ok {
			total++
		}
	}
	if total == 0 {
		return 0
	}

	area := 0.0
	prevRecall, prevPrecision := 0.0, 1.0
	tp := 0
	for k, ok := range yTrue {
		if ok {
			tp++
		}
		// tied with the next item: same threshold
		if k+1 < len(yScore) && yScore[k] == yScore[k+1] {
			continue
		}

		recall := float64(tp) / float64(total)
		precision := float64(tp) / float64(k+1)
		area += (recall - prevRecall) * (precision + prevPrecision) / 2
		prevRecall, prevPrecision = recall, precision

		if tp == total {
			break
		}
	}
	return area
}
