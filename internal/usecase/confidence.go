package usecase

import "math"

// SignalWeights weight the three signals of the composite confidence
type SignalWeights struct {
	Structural   float64
	Keyword      float64
	Completeness float64
}

// DetectionConfig holds the routing thresholds. They are tunable and are
// loaded from configuration in cmd/server.
type DetectionConfig struct {
	MinKeywordMatches int
	MinConfidence     float64

	// Saturation points for the structural and keyword signals
	BlockSaturation   int
	LengthSaturation  int
	KeywordSaturation int

	NutritionWeights SignalWeights
	WorkoutWeights   SignalWeights
}

// DefaultDetectionConfig returns the standard thresholds
func DefaultDetectionConfig() DetectionConfig {
	return DetectionConfig{
		MinKeywordMatches: 2,
		MinConfidence:     0.5,
		BlockSaturation:   8,
		LengthSaturation:  200,
		KeywordSaturation: 5,
		NutritionWeights:  SignalWeights{Structural: 0.3, Keyword: 0.4, Completeness: 0.3},
		WorkoutWeights:    SignalWeights{Structural: 0.3, Keyword: 0.3, Completeness: 0.4},
	}
}

// Signals are the raw inputs to the composite confidence
type Signals struct {
	BlockCount     int
	TextLength     int
	KeywordMatches int
	// Completeness is the parser's own confidence in [0,1]
	Completeness float64
}

// ConfidenceAggregator turns recognition signals into a routing decision
type ConfidenceAggregator struct {
	config DetectionConfig
}

// NewConfidenceAggregator creates an aggregator. Zero saturation values
// fall back to the defaults.
func NewConfidenceAggregator(config DetectionConfig) *ConfidenceAggregator {
	defaults := DefaultDetectionConfig()
	if config.BlockSaturation <= 0 {
		config.BlockSaturation = defaults.BlockSaturation
	}
	if config.LengthSaturation <= 0 {
		config.LengthSaturation = defaults.LengthSaturation
	}
	if config.KeywordSaturation <= 0 {
		config.KeywordSaturation = defaults.KeywordSaturation
	}
	if config.MinKeywordMatches <= 0 {
		config.MinKeywordMatches = defaults.MinKeywordMatches
	}
	return &ConfidenceAggregator{config: config}
}

// Composite combines structural, keyword and completeness signals
func (a *ConfidenceAggregator) Composite(s Signals, w SignalWeights) float64 {
	structural := 0.5*ratio(s.BlockCount, a.config.BlockSaturation) +
		0.5*ratio(s.TextLength, a.config.LengthSaturation)
	keyword := ratio(s.KeywordMatches, a.config.KeywordSaturation)
	completeness := clamp01(s.Completeness)

	score := w.Structural*structural + w.Keyword*keyword + w.Completeness*completeness
	if math.IsNaN(score) {
		return 0
	}
	return clamp01(score)
}

// DomainPresent reports whether enough keywords matched
func (a *ConfidenceAggregator) DomainPresent(keywordMatches int) bool {
	return keywordMatches >= a.config.MinKeywordMatches
}

// Trustworthy reports whether local parsing can be used without escalation
func (a *ConfidenceAggregator) Trustworthy(keywordMatches int, composite float64) bool {
	return a.DomainPresent(keywordMatches) && composite >= a.config.MinConfidence
}

// Config returns the thresholds in use
func (a *ConfidenceAggregator) Config() DetectionConfig {
	return a.config
}

func ratio(n, saturation int) float64 {
	if n <= 0 || saturation <= 0 {
		return 0
	}
	return math.Min(float64(n)/float64(saturation), 1)
}
