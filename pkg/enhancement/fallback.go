package enhancement

import (
	"fmt"

	"github.com/CodeWithSiya/Detective-AI-sub000/pkg/model"
)

// FallbackReasons synthesizes an explanation purely from the detection score.
// It is deterministic: the same score always yields the same reasons, so
// degraded responses stay reproducible.
func FallbackReasons(score model.Score) []Reason {
	verdict := "likely human-written"
	if score.IsPositive {
		verdict = "likely AI-generated"
	}

	reasons := []Reason{
		{
			Category:    "statistical",
			Title:       "Detector verdict",
			Description: fmt.Sprintf("The detection model scored this content as %s with a probability of %.1f%%.", verdict, score.Probability*100),
			Severity:    severityFor(score.Confidence),
		},
		{
			Category:    "confidence",
			Title:       "Model confidence",
			Description: fmt.Sprintf("The model reports %.1f%% confidence in this verdict. Detailed reasoning was unavailable for this analysis.", score.Confidence*100),
			Severity:    "low",
		},
	}
	return reasons
}

func severityFor(confidence float64) string {
	switch {
	case confidence >= 0.9:
		return "high"
	case confidence >= 0.7:
		return "medium"
	default:
		return "low"
	}
}
