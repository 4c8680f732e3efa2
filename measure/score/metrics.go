package score

import "fmt"

// Metrics holds detection counts and the derived quality ratios.
type Metrics struct {
	TruePositive  int `json:"true_positive"`
	FalsePositive int `json:"false_positive"`
	FalseNegative int `json:"false_negative"`

	// Precision is TP/(TP+FP) and Recall is TP/(TP+FN). Both are 0 when
	// their denominator is 0.
	Precision float64 `json:"precision"`
	Recall    float64 `json:"recall"`
}

// Add returns the element-wise sum of the counts with ratios recomputed.
func (m Metrics) Add(o Metrics) Metrics {
	return newMetrics(
		m.TruePositive+o.TruePositive,
		m.FalsePositive+o.FalsePositive,
		m.FalseNegative+o.FalseNegative,
	)
}

func (m Metrics) String() string {
	return fmt.Sprintf("TP=%d FP=%d FN=%d precision=%.4f recall=%.4f",
		m.TruePositive, m.FalsePositive, m.FalseNegative, m.Precision, m.Recall)
}

func newMetrics(tp, fp, fn int) Metrics {
	return Metrics{
		TruePositive:  tp,
		FalsePositive: fp,
		FalseNegative: fn,
		Precision:     ratio(tp, tp+fp),
		Recall:        ratio(tp, tp+fn),
	}
}

func ratio(num, den int) float64 {
	if den == 0 {
		return 0
	}
	return float64(num) / float64(den)
}
