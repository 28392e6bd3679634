package domain

// WodType is the format of a workout
type WodType string

const (
	WodAMRAP   WodType = "amrap"
	WodForTime WodType = "for_time"
	WodEMOM    WodType = "emom"
	WodTabata  WodType = "tabata"
	WodRounds  WodType = "rounds"
	WodUnknown WodType = "unknown"
)

// Label returns the display form used in generated workout names
func (w WodType) Label() string {
	switch w {
	case WodAMRAP:
		return "AMRAP"
	case WodForTime:
		return "For Time"
	case WodEMOM:
		return "EMOM"
	case WodTabata:
		return "Tabata"
	case WodRounds:
		return "Rounds"
	default:
		return "WOD"
	}
}

// ScoringType is how a workout result is recorded
type ScoringType string

const (
	ScoreRoundsReps ScoringType = "rounds_reps"
	ScoreTime       ScoringType = "time"
	ScorePassFail   ScoringType = "pass_fail"
	ScoreReps       ScoringType = "reps"
	ScoreNone       ScoringType = "none"
)

// Scoring returns the usual scoring for the workout format
func (w WodType) Scoring() ScoringType {
	switch w {
	case WodAMRAP:
		return ScoreRoundsReps
	case WodEMOM:
		return ScorePassFail
	case WodForTime, WodRounds:
		return ScoreTime
	case WodTabata:
		return ScoreReps
	default:
		return ScoreNone
	}
}

// Difficulty is the inferred workout difficulty
type Difficulty string

const (
	DifficultyBeginner     Difficulty = "beginner"
	DifficultyIntermediate Difficulty = "intermediate"
	DifficultyAdvanced     Difficulty = "advanced"
)

// FocusTag is a primary training focus
type FocusTag string

const (
	FocusCardio     FocusTag = "cardio"
	FocusStrength   FocusTag = "strength"
	FocusGymnastics FocusTag = "gymnastics"
	FocusMixed      FocusTag = "mixed"
)

// RepType says how a movement is counted
type RepType string

const (
	RepTypeReps     RepType = "reps"
	RepTypeCalories RepType = "calories"
	RepTypeDistance RepType = "distance"
)

// WeightType is the load implement used for a movement
type WeightType string

const (
	WeightBodyweight WeightType = "bodyweight"
	WeightBarbell    WeightType = "barbell"
	WeightDumbbell   WeightType = "dumbbell"
	WeightKettlebell WeightType = "kettlebell"
)

// Movement is one exercise prescription within a workout
type Movement struct {
	Name           string     `json:"name"`
	Reps           *int       `json:"reps,omitempty"`
	RepType        RepType    `json:"repType"`
	DistanceMeters *int       `json:"distanceMeters,omitempty"`
	Calories       *int       `json:"calories,omitempty"`
	WeightKgMale   *float64   `json:"weightKgMale,omitempty"`
	WeightKgFemale *float64   `json:"weightKgFemale,omitempty"`
	WeightType     WeightType `json:"weightType"`
}

// ParsedWorkout is a structured workout prescription
type ParsedWorkout struct {
	Name            string      `json:"name"`
	WodType         WodType     `json:"wodType"`
	ScoringType     ScoringType `json:"scoringType"`
	TimeCapSeconds  *int        `json:"timeCapSeconds,omitempty"`
	TargetRounds    *int        `json:"targetRounds,omitempty"`
	RepScheme       []int       `json:"repScheme,omitempty"`
	Movements       []Movement  `json:"movements"`
	Difficulty      Difficulty  `json:"difficulty"`
	PrimaryFocus    []FocusTag  `json:"primaryFocus"`
	EquipmentNeeded []string    `json:"equipmentNeeded"`
}

// WorkoutParseResult is the outcome of parsing workout text
type WorkoutParseResult struct {
	Workout          ParsedWorkout `json:"workout"`
	Confidence       float64       `json:"confidence"`
	Warnings         []string      `json:"warnings"`
	RequiresAIReview bool          `json:"requiresAIReview"`
}

// WorkoutSignal is the cheap live-preview result for workout capture
type WorkoutSignal struct {
	HasWodText bool    `json:"hasWodText"`
	Confidence float64 `json:"confidence"`
}
