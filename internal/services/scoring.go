package services

type ScoringService struct{}

func NewScoringService() *ScoringService {
	return &ScoringService{}
}

// PointsFor converts an outcome into a signed point delta. A late answer
// earns nothing and loses nothing regardless of correctness. On time:
// correct earns positivePoints, incorrect earns negativePoints, which is
// stored as <= 0 and applied as-is.
func (s *ScoringService) PointsFor(isCorrect, isLate bool, positivePoints, negativePoints int) int {
	if isLate {
		return 0
	}
	if isCorrect {
		return positivePoints
	}
	return negativePoints
}
