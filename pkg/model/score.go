package model

// Score is the outcome of one model prediction. It is produced once per
// distinct input and cached thereafter, so it must never be mutated after
// construction.
type Score struct {
	// Probability that the content is AI-generated, in [0,1].
	Probability float64 `json:"probability"`

	// IsPositive is true when Probability meets the decision threshold.
	IsPositive bool `json:"is_positive"`

	// Confidence in the emitted decision, in [0,1]: the probability of the
	// chosen side.
	Confidence float64 `json:"confidence"`
}

// NewScore derives the decision and confidence from a raw probability and the
// configured decision threshold.
func NewScore(probability, threshold float64) Score {
	s := Score{Probability: probability}
	s.IsPositive = probability >= threshold
	if s.IsPositive {
		s.Confidence = probability
	} else {
		s.Confidence = 1 - probability
	}
	return s
}
