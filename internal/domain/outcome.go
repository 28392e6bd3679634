package domain

// OutcomeKind discriminates detection outcome variants
type OutcomeKind string

const (
	KindBarcode          OutcomeKind = "barcode"
	KindNutritionLabel   OutcomeKind = "nutrition_label"
	KindPreparedFood     OutcomeKind = "prepared_food"
	KindUnknown          OutcomeKind = "unknown"
	KindTextExtracted    OutcomeKind = "text_extracted"
	KindFileParsed       OutcomeKind = "file_parsed"
	KindRequiresVisionAI OutcomeKind = "requires_vision_ai"
	KindError            OutcomeKind = "error"
)

// NutritionOutcome is the result of analyzing a nutrition capture. The set
// of implementations is closed: BarcodeDetected, NutritionLabel,
// PreparedFood and UnknownInput.
type NutritionOutcome interface {
	Kind() OutcomeKind
	nutritionOutcome()
}

// BarcodeDetected means a product barcode was found
type BarcodeDetected struct {
	Code       string    `json:"code"`
	Symbology  Symbology `json:"symbology"`
	Confidence float64   `json:"confidence"`
}

// NutritionLabel means the image carries a readable nutrition label
type NutritionLabel struct {
	RawText    string           `json:"rawText"`
	Parsed     *ParsedNutrition `json:"parsed,omitempty"`
	Confidence float64          `json:"confidence"`
}

// PreparedFood means no usable label was found and the image needs a vision pass
type PreparedFood struct {
	Confidence float64 `json:"confidence"`
}

// UnknownInput means recognition failed
type UnknownInput struct{}

func (BarcodeDetected) Kind() OutcomeKind { return KindBarcode }
func (NutritionLabel) Kind() OutcomeKind  { return KindNutritionLabel }
func (PreparedFood) Kind() OutcomeKind    { return KindPreparedFood }
func (UnknownInput) Kind() OutcomeKind    { return KindUnknown }

func (BarcodeDetected) nutritionOutcome() {}
func (NutritionLabel) nutritionOutcome()  {}
func (PreparedFood) nutritionOutcome()    {}
func (UnknownInput) nutritionOutcome()    {}

// WorkoutOutcome is the result of analyzing a workout capture. The set of
// implementations is closed: TextExtracted, FileParsed, RequiresVisionAI
// and ExtractionFailed.
type WorkoutOutcome interface {
	Kind() OutcomeKind
	workoutOutcome()
}

// TextExtracted means local recognition produced usable workout text
type TextExtracted struct {
	RawText     string    `json:"rawText"`
	Confidence  float64   `json:"confidence"`
	Source      InputType `json:"source"`
	RecommendAI bool      `json:"recommendAI"`
	Patterns    []string  `json:"patterns"`
}

// FileParsed carries text read from an uploaded spreadsheet or document
type FileParsed struct {
	RawText string     `json:"rawText"`
	Rows    [][]string `json:"rows,omitempty"`
}

// RequiresVisionAI means the input must be escalated to an external vision model
type RequiresVisionAI struct {
	Reason string `json:"reason"`
}

// ExtractionFailed reports an unsupported or unreadable input
type ExtractionFailed struct {
	Message string `json:"message"`
}

func (TextExtracted) Kind() OutcomeKind    { return KindTextExtracted }
func (FileParsed) Kind() OutcomeKind       { return KindFileParsed }
func (RequiresVisionAI) Kind() OutcomeKind { return KindRequiresVisionAI }
func (ExtractionFailed) Kind() OutcomeKind { return KindError }

func (TextExtracted) workoutOutcome()    {}
func (FileParsed) workoutOutcome()       {}
func (RequiresVisionAI) workoutOutcome() {}
func (ExtractionFailed) workoutOutcome() {}
