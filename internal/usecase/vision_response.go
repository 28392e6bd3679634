package usecase

import (
	"bytes"
	"encoding/json"
	"fmt"
	"math"
	"regexp"
	"sort"
	"strings"

	"github.com/santhosh-tekuri/jsonschema/v5"

	"github.com/macrolens/capture/internal/domain"
)

// visionResponseSchema is the contract for workout JSON returned by the
// external vision model
var visionResponseSchema = map[string]any{
	"type": "object",
	"properties": map[string]any{
		"name":             map[string]any{"type": []any{"string", "null"}},
		"wod_type":         map[string]any{"type": []any{"string", "null"}},
		"time_cap_seconds": map[string]any{"type": []any{"number", "null"}, "minimum": 0},
		"target_rounds":    map[string]any{"type": []any{"number", "null"}, "minimum": 0},
		"rep_scheme": map[string]any{
			"type":  []any{"array", "null"},
			"items": map[string]any{"type": "number", "minimum": 0},
		},
		"difficulty":       map[string]any{"type": []any{"string", "null"}},
		"primary_focus":    map[string]any{"type": []any{"array", "null"}, "items": map[string]any{"type": "string"}},
		"equipment_needed": map[string]any{"type": []any{"array", "null"}, "items": map[string]any{"type": "string"}},
		"confidence":       map[string]any{"type": []any{"number", "null"}},
		"error":            map[string]any{"type": "string"},
		"movements": map[string]any{
			"type": []any{"array", "null"},
			"items": map[string]any{
				"type":     "object",
				"required": []any{"movement_name"},
				"properties": map[string]any{
					"movement_name":    map[string]any{"type": "string"},
					"rep_type":         map[string]any{"type": []any{"string", "null"}},
					"reps":             map[string]any{"type": []any{"number", "null"}},
					"distance_meters":  map[string]any{"type": []any{"number", "null"}},
					"calories":         map[string]any{"type": []any{"number", "null"}},
					"weight_type":      map[string]any{"type": []any{"string", "null"}},
					"weight_kg_male":   map[string]any{"type": []any{"number", "null"}},
					"weight_kg_female": map[string]any{"type": []any{"number", "null"}},
				},
			},
		},
	},
}

// Compiled regex patterns for locating JSON in a model reply
var (
	jsonFencePattern    = regexp.MustCompile("(?s)```json\\s*(.*?)\\s*```")
	genericFencePattern = regexp.MustCompile("(?s)```\\s*(.*?)\\s*```")
)

// wodTypeSynonyms maps the model's format names onto supported formats
var wodTypeSynonyms = map[string]domain.WodType{
	"amrap":                      domain.WodAMRAP,
	"as many rounds as possible": domain.WodAMRAP,
	"emom":                       domain.WodEMOM,
	"every minute on the minute": domain.WodEMOM,
	"for time":                   domain.WodForTime,
	"for_time":                   domain.WodForTime,
	"fortime":                    domain.WodForTime,
	"chipper":                    domain.WodForTime,
	"ladder":                     domain.WodForTime,
	"rft":                        domain.WodRounds,
	"rounds for time":            domain.WodRounds,
	"rounds":                     domain.WodRounds,
	"tabata":                     domain.WodTabata,
}

type visionWorkout struct {
	Name            *string          `json:"name"`
	WodType         *string          `json:"wod_type"`
	TimeCapSeconds  *float64         `json:"time_cap_seconds"`
	TargetRounds    *float64         `json:"target_rounds"`
	RepScheme       []float64        `json:"rep_scheme"`
	Difficulty      *string          `json:"difficulty"`
	PrimaryFocus    []string         `json:"primary_focus"`
	EquipmentNeeded []string         `json:"equipment_needed"`
	Movements       []visionMovement `json:"movements"`
	Confidence      *float64         `json:"confidence"`
	Error           string           `json:"error"`
}

type visionMovement struct {
	MovementName   string   `json:"movement_name"`
	RepType        *string  `json:"rep_type"`
	Reps           *float64 `json:"reps"`
	DistanceMeters *float64 `json:"distance_meters"`
	Calories       *float64 `json:"calories"`
	WeightType     *string  `json:"weight_type"`
	WeightKgMale   *float64 `json:"weight_kg_male"`
	WeightKgFemale *float64 `json:"weight_kg_female"`
}

// VisionDecoder turns an external vision model's reply into a workout
type VisionDecoder struct {
	schema  *jsonschema.Schema
	catalog *MovementCatalog
}

// NewVisionDecoder compiles the response schema
func NewVisionDecoder(catalog *MovementCatalog) (*VisionDecoder, error) {
	b, err := json.Marshal(visionResponseSchema)
	if err != nil {
		return nil, fmt.Errorf("marshal schema: %w", err)
	}
	compiler := jsonschema.NewCompiler()
	if err := compiler.AddResource("vision_workout.json", bytes.NewReader(b)); err != nil {
		return nil, fmt.Errorf("add schema: %w", err)
	}
	schema, err := compiler.Compile("vision_workout.json")
	if err != nil {
		return nil, fmt.Errorf("compile schema: %w", err)
	}
	if catalog == nil {
		catalog = NewMovementCatalog()
	}
	return &VisionDecoder{schema: schema, catalog: catalog}, nil
}

// Decode extracts, validates and normalizes a workout from a model reply
func (d *VisionDecoder) Decode(reply string) (domain.WorkoutParseResult, error) {
	raw, ok := extractJSON(reply)
	if !ok {
		return domain.WorkoutParseResult{}, fmt.Errorf("%w: no JSON object in reply", domain.ErrInvalidVisionResponse)
	}

	var generic any
	if err := json.Unmarshal(raw, &generic); err != nil {
		return domain.WorkoutParseResult{}, fmt.Errorf("%w: %v", domain.ErrInvalidVisionResponse, err)
	}
	if err := d.schema.Validate(generic); err != nil {
		return domain.WorkoutParseResult{}, fmt.Errorf("%w: json does not match schema: %v", domain.ErrInvalidVisionResponse, err)
	}

	var vw visionWorkout
	if err := json.Unmarshal(raw, &vw); err != nil {
		return domain.WorkoutParseResult{}, fmt.Errorf("%w: %v", domain.ErrInvalidVisionResponse, err)
	}
	if vw.Error != "" {
		return domain.WorkoutParseResult{}, fmt.Errorf("%w: %s", domain.ErrNoWorkoutFound, vw.Error)
	}

	return d.normalize(vw), nil
}

func (d *VisionDecoder) normalize(vw visionWorkout) domain.WorkoutParseResult {
	var warnings []string

	wodType := domain.WodUnknown
	if vw.WodType != nil {
		key := strings.ToLower(strings.TrimSpace(*vw.WodType))
		if t, ok := wodTypeSynonyms[key]; ok {
			wodType = t
		} else if key != "" {
			warnings = append(warnings, fmt.Sprintf("unsupported wod_type %q", key))
		}
	}

	var (
		movements []domain.Movement
		seen      = make(map[string]bool)
		known     bool
	)
	for i, vm := range vw.Movements {
		mv, isKnown := d.movement(vm, i)
		key := strings.ToLower(mv.Name)
		if seen[key] {
			continue
		}
		seen[key] = true
		known = known || isKnown
		movements = append(movements, mv)
	}

	var scheme []int
	for _, n := range vw.RepScheme {
		scheme = append(scheme, int(math.Round(n)))
	}
	if len(scheme) < 2 {
		scheme = nil
	}

	workout := domain.ParsedWorkout{
		WodType:         wodType,
		ScoringType:     wodType.Scoring(),
		TimeCapSeconds:  roundedInt(vw.TimeCapSeconds),
		TargetRounds:    roundedInt(vw.TargetRounds),
		RepScheme:       scheme,
		Movements:       movements,
		PrimaryFocus:    normalizeFocus(vw.PrimaryFocus),
		EquipmentNeeded: normalizeEquipment(vw.EquipmentNeeded),
	}
	workout.Difficulty = visionDifficulty(vw.Difficulty, workout)
	if vw.Name != nil && strings.TrimSpace(*vw.Name) != "" {
		workout.Name = strings.TrimSpace(*vw.Name)
	} else {
		workout.Name = generateWorkoutName(workout)
	}

	confidence := workoutConfidence(wodType, len(movements), len(scheme) > 0, known)
	if vw.Confidence != nil {
		confidence = clamp01(*vw.Confidence)
	}

	return domain.WorkoutParseResult{
		Workout:          workout,
		Confidence:       confidence,
		Warnings:         warnings,
		RequiresAIReview: confidence < 0.5 || len(movements) == 0,
	}
}

func (d *VisionDecoder) movement(vm visionMovement, index int) (domain.Movement, bool) {
	name := strings.TrimSpace(vm.MovementName)
	known := false
	if def, ok := d.catalog.Lookup(name); ok {
		name, known = def.Name, true
	} else if words := strings.Fields(movementKey(name)); len(words) > 0 {
		name = titleCase(words)
	} else {
		name = fmt.Sprintf("Movement %d", index+1)
	}

	mv := domain.Movement{
		Name:           name,
		Reps:           roundedInt(vm.Reps),
		DistanceMeters: roundedInt(vm.DistanceMeters),
		Calories:       roundedInt(vm.Calories),
		WeightKgMale:   vm.WeightKgMale,
		WeightKgFemale: vm.WeightKgFemale,
	}

	repType := ""
	if vm.RepType != nil {
		repType = strings.ToLower(*vm.RepType)
	}
	switch {
	case repType == "calories" || (repType == "" && mv.Calories != nil):
		mv.RepType = domain.RepTypeCalories
	case repType == "distance" || (repType == "" && mv.DistanceMeters != nil):
		mv.RepType = domain.RepTypeDistance
	default:
		mv.RepType = domain.RepTypeReps
	}

	weighted := mv.WeightKgMale != nil || mv.WeightKgFemale != nil
	switch {
	case vm.WeightType != nil && strings.EqualFold(*vm.WeightType, "bodyweight") && !weighted:
		mv.WeightType = domain.WeightBodyweight
	case known:
		def, _ := d.catalog.Lookup(name)
		mv.WeightType = def.Implement
		if weighted && mv.WeightType == domain.WeightBodyweight {
			mv.WeightType = domain.WeightBarbell
		}
	case weighted:
		mv.WeightType = domain.WeightBarbell
	default:
		mv.WeightType = domain.WeightBodyweight
	}

	return mv, known
}

// visionDifficulty maps the model's difficulty, estimating it from time
// cap and movement count when absent
func visionDifficulty(raw *string, w domain.ParsedWorkout) domain.Difficulty {
	if raw != nil {
		switch strings.ToLower(strings.TrimSpace(*raw)) {
		case "beginner":
			return domain.DifficultyBeginner
		case "intermediate":
			return domain.DifficultyIntermediate
		case "advanced", "elite":
			return domain.DifficultyAdvanced
		}
	}

	timeCap := 0
	if w.TimeCapSeconds != nil {
		timeCap = *w.TimeCapSeconds
	}
	switch {
	case timeCap > 1200 || len(w.Movements) > 6:
		return domain.DifficultyAdvanced
	case timeCap > 600 || len(w.Movements) > 4:
		return domain.DifficultyIntermediate
	default:
		return domain.DifficultyBeginner
	}
}

func normalizeFocus(raw []string) []domain.FocusTag {
	set := make(map[domain.FocusTag]bool)
	for _, f := range raw {
		switch strings.ToLower(strings.TrimSpace(f)) {
		case "cardio", "conditioning", "endurance":
			set[domain.FocusCardio] = true
		case "strength", "weightlifting", "powerlifting":
			set[domain.FocusStrength] = true
		case "gymnastics", "bodyweight":
			set[domain.FocusGymnastics] = true
		}
	}
	var tags []domain.FocusTag
	for _, tag := range []domain.FocusTag{domain.FocusCardio, domain.FocusGymnastics, domain.FocusStrength} {
		if set[tag] {
			tags = append(tags, tag)
		}
	}
	if len(tags) == 0 {
		return []domain.FocusTag{domain.FocusMixed}
	}
	return tags
}

func normalizeEquipment(raw []string) []string {
	set := make(map[string]bool)
	for _, e := range raw {
		name := strings.Join(strings.Fields(strings.ToLower(strings.ReplaceAll(e, "_", " "))), " ")
		if name == "pullup bar" {
			name = "pull-up bar"
		}
		if name != "" {
			set[name] = true
		}
	}
	out := make([]string, 0, len(set))
	for name := range set {
		out = append(out, name)
	}
	sort.Strings(out)
	return out
}

// extractJSON finds the JSON object in a reply: the whole reply, a fenced
// block, or the outermost braces
func extractJSON(reply string) ([]byte, bool) {
	trimmed := strings.TrimSpace(reply)
	if json.Valid([]byte(trimmed)) {
		return []byte(trimmed), true
	}

	for _, pattern := range []*regexp.Regexp{jsonFencePattern, genericFencePattern} {
		if m := pattern.FindStringSubmatch(reply); m != nil && json.Valid([]byte(m[1])) {
			return []byte(m[1]), true
		}
	}

	start := strings.Index(reply, "{")
	end := strings.LastIndex(reply, "}")
	if start >= 0 && end > start {
		candidate := reply[start : end+1]
		if json.Valid([]byte(candidate)) {
			return []byte(candidate), true
		}
	}

	return nil, false
}

func roundedInt(v *float64) *int {
	if v == nil {
		return nil
	}
	n := int(math.Round(*v))
	return &n
}
