package usecase

import (
	"fmt"
	"math"
	"regexp"
	"sort"
	"strconv"
	"strings"
	"unicode"

	"github.com/macrolens/capture/internal/domain"
)

// Compiled regex patterns for workout type detection
var (
	amrapPattern       = regexp.MustCompile(`\bamrap\b|\bas many rounds as possible\b`)
	amrapBeforePattern = regexp.MustCompile(`(\d+)\s*-?\s*(?:min(?:ute)?s?\.?|'|’)?\s*-?\s*(?:amrap|as many rounds)`)
	amrapAfterPattern  = regexp.MustCompile(`\bamrap\s*(?:in|of|for|x)?\s*(\d+)\s*(?:min(?:ute)?s?|'|’)?(?:\s*$|\s*[:,.)-])`)

	emomPattern         = regexp.MustCompile(`\be(\d+)?mom\b|\bevery\s+(\d+)?\s*(?:min(?:ute)?s?)\b|\bevery minute on the minute\b`)
	emomBeforePattern   = regexp.MustCompile(`(\d+)\s*-?\s*(?:min(?:ute)?s?\.?|'|’)?\s*-?\s*e\d*mom\b`)
	emomAfterPattern    = regexp.MustCompile(`\be\d*mom\s*(?:x|for)?\s*(\d+)\s*(?:min(?:ute)?s?|'|’)?(?:\s*$|\s*[:,.)-])`)
	emomDurationPattern = regexp.MustCompile(`\bfor\s+(\d+)\s*(?:min(?:ute)?s?|')`)
	// "every 2 min x 5" counts rounds, not minutes
	emomRoundsPattern = regexp.MustCompile(`\bevery\s+(?:\d+\s*)?min(?:ute)?s?\s*x\s*(\d+)\b`)

	tabataPattern = regexp.MustCompile(`\btabata\b`)

	forTimePattern = regexp.MustCompile(`\bfor\s+time\b|\brft\b`)
	timeCapPattern = regexp.MustCompile(`(?:\btime\s*cap|\bcap|\btc)\s*[:=]?\s*(\d+)\s*(?:min(?:ute)?s?|'|’)?|(\d+)\s*(?:min(?:ute)?s?|'|’)\s*(?:time\s*)?cap\b`)

	roundsPattern  = regexp.MustCompile(`\b(\d+)\s*(?:rounds?|rds?|rft)\b`)
	minutesPattern = regexp.MustCompile(`\b(\d+)\s*(?:min(?:ute)?s?|')`)
)

// Compiled regex patterns for rep schemes and movement lines
var (
	// 3-5 integers joined by hyphens or en dashes, e.g. "21-15-9"
	repSchemePattern = regexp.MustCompile(`(?:^|[^\d\-–])(\d{1,3}(?:\s*[-–]\s*\d{1,3}){2,4})(?:[^\d\-–]|$)`)
	integerPattern   = regexp.MustCompile(`\d+`)

	// "60/40 kg", "95/65 lb", "@ 43/30"
	weightPairPattern = regexp.MustCompile(`(@\s*)?(\d+(?:\.\d+)?)\s*/\s*(\d+(?:\.\d+)?)\s*(kgs|kg|lbs|lb|pounds|#)?`)
	// "60 kg", "@95#"
	weightSinglePattern = regexp.MustCompile(`(@\s*)?(\d+(?:\.\d+)?)\s*(kgs|kg|lbs|lb|pounds|#)`)

	// "Buy-in:", "Part A:", EMOM labels such as "Min 1:" or "2nd minute:"
	leadingLabelPattern = regexp.MustCompile(`^(?:buy[\s-]?in|cash[\s-]?out|then|and|part\s+[a-z0-9]|min(?:ute)?\s*\d+\s*[:.)-]|e?\d+(?:st|nd|rd|th)?\s*min(?:ute)?\s*:)\s*:?\s*`)
	bulletPattern       = regexp.MustCompile(`^(?:[-*•·]+|\d+[.)]\s+|[a-z][.)]\s+)\s*`)

	calorieLinePattern    = regexp.MustCompile(`^(\d+)\s*(?:cals?|calories|calorie)\.?\s+([a-z][a-z .'-]*)$`)
	distanceLinePattern   = regexp.MustCompile(`^(\d+(?:\.\d+)?)\s*(km|m|meters?|metres?|mi|miles?)\s+([a-z][a-z .'-]*)$`)
	distanceAfterPattern  = regexp.MustCompile(`^([a-z][a-z .'-]*?)\s+(\d+(?:\.\d+)?)\s*(km|m|meters?|metres?|mi|miles?)$`)
	repsLinePattern       = regexp.MustCompile(`^(\d+)\s*(?:x\s*)?([a-z][a-z0-9 .'&/-]*?)$`)
	colonLinePattern      = regexp.MustCompile(`^([a-z][a-z0-9 .'&/-]*?)\s*[:=]\s*(\d+)\s*(?:reps?|x)?$`)
	trailingCountPattern  = regexp.MustCompile(`^([a-z][a-z .'&/-]*?)\s*x\s*(\d+)$`)
	controlTokenPattern   = regexp.MustCompile(`\b(?:amrap|as many rounds as possible|e\d*mom|every|minute|minutes|min|mins|on the|for time|for|time cap|cap|tc|tabata|rounds?|rds?|rft|rest|of|in|then|sec|secs|seconds?|wod|metcon|score|rx|scaled|x|reps?)\b`)
	controlResiduePattern = regexp.MustCompile(`[\d\s\p{P}\p{S}]+`)
)

const poundsToKg = 0.453592

// equipmentKeywords maps a keyword found in workout text to equipment
var equipmentKeywords = map[string][]string{
	"barbell":       {"barbell", "thruster", "thrusters", "deadlift", "deadlifts", "clean", "cleans", "snatch", "snatches", "jerk", "front squat", "back squat", "overhead squat", "push press", "bench press", "sdhp", "ohs"},
	"dumbbell":      {"dumbbell", "dumbbells", "db", "devil press"},
	"kettlebell":    {"kettlebell", "kettlebells", "kb", "kbs", "goblet", "turkish get"},
	"pull-up bar":   {"pull-up", "pull-ups", "pull up", "pull ups", "pullups", "chest to bar", "c2b", "toes to bar", "t2b", "bar muscle-up", "bar muscle-ups", "knees to elbows"},
	"rings":         {"ring", "rings", "ring muscle-up", "ring muscle-ups", "ring dips", "muscle-up", "muscle-ups"},
	"box":           {"box jump", "box jumps", "box step", "bbjo", "box jump over", "box jump overs"},
	"rower":         {"row", "rowing", "rower", "cal row"},
	"bike":          {"bike", "assault bike", "echo bike", "air bike", "cal bike"},
	"ski erg":       {"ski", "ski erg", "skierg"},
	"jump rope":     {"double unders", "double-unders", "double under", "du", "single unders", "jump rope"},
	"medicine ball": {"wall ball", "wall balls", "medicine ball", "med ball", "wb"},
	"rope":          {"rope climb", "rope climbs"},
	"ghd":           {"ghd"},
	"sandbag":       {"sandbag"},
}

// Movement-name keywords used for difficulty and focus inference
var (
	advancedMovementKeywords = []string{
		"muscle up", "muscle ups", "handstand push up", "handstand push ups", "handstand walk",
		"rope climb", "rope climbs", "snatch", "snatches", "pistol", "pistols", "ring dip", "ring dips",
		"overhead squat", "overhead squats", "chest to bar",
	}
	intermediateMovementKeywords = []string{
		"toes to bar", "pull ups", "pull up", "clean", "cleans", "jerk", "jerks", "thruster", "thrusters",
		"double unders", "box jump", "box jumps", "wall balls", "kettlebell swings", "deadlifts",
		"front squats", "push press", "dips", "knees to elbows", "clean and jerk", "power cleans",
		"devil press", "burpee box jump overs", "ghd sit ups",
	}
	focusKeywords = map[domain.FocusTag][]string{
		domain.FocusCardio: {
			"row", "bike", "run", "ski", "swim", "double unders", "single unders", "burpees",
			"mountain climbers", "box jumps", "burpee box jump overs",
		},
		domain.FocusStrength: {
			"thrusters", "deadlifts", "cleans", "clean", "snatches", "squats", "press", "jerks",
			"swings", "lunges", "carry", "rows", "overhead", "get ups", "wall balls", "sumo deadlift high pull",
		},
		domain.FocusGymnastics: {
			"pull ups", "muscle ups", "toes to bar", "handstand", "rope climbs", "dips", "push ups",
			"sit ups", "pistols", "knees to elbows", "chest to bar", "plank",
		},
	}
)

// WorkoutParser turns recognized workout text into a structured workout.
// It is read-only after construction and safe for concurrent use.
type WorkoutParser struct {
	catalog      *MovementCatalog
	equipment    map[string]*KeywordSet
	equipmentIDs []string
	advanced     *KeywordSet
	intermediate *KeywordSet
	focus        map[domain.FocusTag]*KeywordSet
}

// NewWorkoutParser creates a parser that canonicalizes movements with catalog
func NewWorkoutParser(catalog *MovementCatalog) *WorkoutParser {
	p := &WorkoutParser{
		catalog:      catalog,
		equipment:    make(map[string]*KeywordSet, len(equipmentKeywords)),
		advanced:     movementKeywordSet(advancedMovementKeywords),
		intermediate: movementKeywordSet(intermediateMovementKeywords),
		focus:        make(map[domain.FocusTag]*KeywordSet, len(focusKeywords)),
	}
	for id, keywords := range equipmentKeywords {
		p.equipment[id] = movementKeywordSet(keywords)
		p.equipmentIDs = append(p.equipmentIDs, id)
	}
	sort.Strings(p.equipmentIDs)
	for tag, keywords := range focusKeywords {
		p.focus[tag] = movementKeywordSet(keywords)
	}
	return p
}

// movementKeywordSet keys keywords the same way movement names are keyed
func movementKeywordSet(keywords []string) *KeywordSet {
	keys := make([]string, len(keywords))
	for i, kw := range keywords {
		keys[i] = movementKey(kw)
	}
	return NewKeywordSet(keys)
}

// workoutType is the result of type detection
type workoutType struct {
	wodType  domain.WodType
	timeCap  *int // seconds
	rounds   *int
	interval int // EMOM interval in minutes
}

// Parse parses workout text. It never fails; unusable input yields an
// unknown workout that requires AI review.
func (p *WorkoutParser) Parse(raw string) domain.WorkoutParseResult {
	text := Prepare(raw)
	var warnings []string

	// Step 1: Detect the workout format
	wt := detectWorkoutType(text.Lines)
	if wt.wodType == domain.WodUnknown {
		warnings = append(warnings, "workout type not recognized")
	}

	// Step 2: Detect a rep scheme such as 21-15-9
	scheme := detectRepScheme(text.Flat)

	// Step 3: Extract movements line by line
	movements, knownMovement, movementWarnings := p.extractMovements(text.Lines)
	warnings = append(warnings, movementWarnings...)
	if len(movements) == 0 {
		warnings = append(warnings, "no movements recognized")
	}

	// Step 4: Score the parse
	confidence := workoutConfidence(wt.wodType, len(movements), len(scheme) > 0, knownMovement)

	workout := domain.ParsedWorkout{
		WodType:         wt.wodType,
		ScoringType:     wt.wodType.Scoring(),
		TimeCapSeconds:  wt.timeCap,
		TargetRounds:    wt.rounds,
		RepScheme:       scheme,
		Movements:       movements,
		Difficulty:      p.inferDifficulty(movements),
		PrimaryFocus:    p.inferFocus(movements),
		EquipmentNeeded: p.inferEquipment(text.Flat),
	}
	workout.Name = generateWorkoutName(workout)

	return domain.WorkoutParseResult{
		Workout:          workout,
		Confidence:       confidence,
		Warnings:         warnings,
		RequiresAIReview: confidence < 0.5 || len(movements) == 0,
	}
}

// workoutConfidence scores how complete a parse is
func workoutConfidence(wodType domain.WodType, movementCount int, hasScheme, knownMovement bool) float64 {
	score := 0.0
	if wodType != domain.WodUnknown {
		score += 0.3
	}
	switch {
	case movementCount >= 4:
		score += 0.4
	case movementCount >= 2:
		score += 0.3
	case movementCount >= 1:
		score += 0.2
	}
	if hasScheme {
		score += 0.15
	}
	if knownMovement {
		score += 0.15
	}
	return clamp01(score)
}

// detectWorkoutType tests each format in priority order across all lines.
// Numbers are only read from the line that names the format.
func detectWorkoutType(lines []string) workoutType {
	for _, line := range lines {
		if !amrapPattern.MatchString(line) {
			continue
		}
		wt := workoutType{wodType: domain.WodAMRAP}
		if minutes, ok := firstInt(line, amrapBeforePattern, amrapAfterPattern); ok {
			wt.timeCap = intPtr(minutes * 60)
		}
		return wt
	}

	for _, line := range lines {
		m := emomPattern.FindStringSubmatch(line)
		if m == nil {
			continue
		}
		wt := workoutType{wodType: domain.WodEMOM, interval: 1}
		if iv, ok := atoiPositive(m[1]); ok {
			wt.interval = iv
		} else if iv, ok := atoiPositive(m[2]); ok {
			wt.interval = iv
		}
		if rounds, ok := firstInt(line, emomRoundsPattern); ok {
			wt.rounds = intPtr(rounds)
			wt.timeCap = intPtr(rounds * wt.interval * 60)
		} else if minutes, ok := firstInt(line, emomBeforePattern, emomAfterPattern, emomDurationPattern); ok {
			wt.timeCap = intPtr(minutes * 60)
			if minutes >= wt.interval {
				wt.rounds = intPtr(minutes / wt.interval)
			}
		}
		return wt
	}

	for _, line := range lines {
		if !tabataPattern.MatchString(line) {
			continue
		}
		wt := workoutType{wodType: domain.WodTabata, timeCap: intPtr(240), rounds: intPtr(8)}
		if minutes, ok := firstInt(line, minutesPattern); ok {
			wt.timeCap = intPtr(minutes * 60)
		}
		if rounds, ok := firstInt(line, roundsPattern); ok {
			wt.rounds = intPtr(rounds)
		}
		return wt
	}

	for _, line := range lines {
		if !forTimePattern.MatchString(line) {
			continue
		}
		wt := workoutType{wodType: domain.WodForTime}
		if rounds, ok := firstInt(line, roundsPattern); ok {
			wt.rounds = intPtr(rounds)
		}
		for _, capLine := range lines {
			if minutes, ok := firstInt(capLine, timeCapPattern); ok {
				wt.timeCap = intPtr(minutes * 60)
				break
			}
		}
		return wt
	}

	for _, line := range lines {
		if rounds, ok := firstInt(line, roundsPattern); ok {
			return workoutType{wodType: domain.WodRounds, rounds: intPtr(rounds)}
		}
	}

	return workoutType{wodType: domain.WodUnknown}
}

// detectRepScheme finds a sequence like 21-15-9 and returns its integers
func detectRepScheme(flat string) []int {
	m := repSchemePattern.FindStringSubmatch(flat)
	if m == nil {
		return nil
	}
	var scheme []int
	for _, raw := range integerPattern.FindAllString(m[1], -1) {
		if n, err := strconv.Atoi(raw); err == nil {
			scheme = append(scheme, n)
		}
	}
	if len(scheme) < 2 {
		return nil
	}
	return scheme
}

// parsedWeight is a weight found on a line, already in kg
type parsedWeight struct {
	male   *float64
	female *float64
	// span is the matched text, removed before movement matching
	span    [2]int
	assumed bool
}

func (w parsedWeight) empty() bool {
	return w.male == nil && w.female == nil
}

// extractMovements applies the line patterns in priority order and
// de-duplicates by canonical name.
func (p *WorkoutParser) extractMovements(lines []string) ([]domain.Movement, bool, []string) {
	var (
		movements []domain.Movement
		warnings  []string
		seen      = make(map[string]int)
		known     bool
		pending   parsedWeight
	)

	for _, rawLine := range lines {
		line := strings.TrimSpace(bulletPattern.ReplaceAllString(rawLine, ""))
		line = leadingLabelPattern.ReplaceAllString(line, "")
		if line == "" {
			continue
		}

		weight := parseWeight(line)
		if !weight.empty() {
			line = strings.TrimSpace(line[:weight.span[0]] + " " + line[weight.span[1]:])
			line = strings.TrimRight(strings.TrimSpace(line), "@,;(")
			line = strings.TrimSpace(strings.Trim(line, "()[] "))
		}

		// A line holding only a weight belongs to the adjacent movement
		if !weight.empty() && isResidue(line) {
			if n := len(movements); n > 0 && movements[n-1].WeightKgMale == nil && movements[n-1].WeightKgFemale == nil {
				applyWeight(&movements[n-1], weight)
			} else {
				pending = weight
			}
			continue
		}

		if isControlLine(line) {
			continue
		}

		mv, isKnown, ok := p.matchMovementLine(line)
		if !ok {
			continue
		}
		if weight.assumed {
			warnings = append(warnings, fmt.Sprintf("weight unit for %s assumed to be kg", mv.Name))
		}
		if !weight.empty() {
			applyWeight(&mv, weight)
		} else if !pending.empty() {
			applyWeight(&mv, pending)
			pending = parsedWeight{}
		}
		mv.WeightType = resolveWeightType(mv, line, isKnown, p.catalog)
		if !isKnown {
			warnings = append(warnings, fmt.Sprintf("movement %q not in catalog", mv.Name))
		}

		key := strings.ToLower(mv.Name)
		if i, dup := seen[key]; dup {
			mergeMovement(&movements[i], mv)
			continue
		}
		seen[key] = len(movements)
		movements = append(movements, mv)
		known = known || isKnown
	}

	return movements, known, warnings
}

// matchMovementLine tries each line pattern in priority order
func (p *WorkoutParser) matchMovementLine(line string) (domain.Movement, bool, bool) {
	// 1. Calorie line: "15 cal row"
	if m := calorieLinePattern.FindStringSubmatch(line); m != nil {
		name, known := p.resolveName(m[2])
		if name != "" {
			return domain.Movement{Name: name, RepType: domain.RepTypeCalories, Calories: atoiPtr(m[1])}, known, true
		}
	}

	// 2. Distance line: "400m run" or "run 400m"
	if m := distanceLinePattern.FindStringSubmatch(line); m != nil {
		if mv, known, ok := p.distanceMovement(m[3], m[1], m[2]); ok {
			return mv, known, true
		}
	}
	if m := distanceAfterPattern.FindStringSubmatch(line); m != nil {
		if mv, known, ok := p.distanceMovement(m[1], m[2], m[3]); ok {
			return mv, known, true
		}
	}

	// 3. Counted movement: "10 burpees"
	if m := repsLinePattern.FindStringSubmatch(line); m != nil {
		if name, known := p.resolveName(m[2]); name != "" {
			return domain.Movement{Name: name, RepType: domain.RepTypeReps, Reps: atoiPtr(m[1])}, known, true
		}
	}

	// 4. Labelled count: "burpees: 10", "burpees x 10"
	for _, pattern := range []*regexp.Regexp{colonLinePattern, trailingCountPattern} {
		if m := pattern.FindStringSubmatch(line); m != nil {
			if name, known := p.resolveName(m[1]); name != "" {
				return domain.Movement{Name: name, RepType: domain.RepTypeReps, Reps: atoiPtr(m[2])}, known, true
			}
		}
	}

	// 5. Bare mention of a known movement
	if def, ok := p.catalog.FindMention(line); ok {
		return domain.Movement{Name: def.Name, RepType: domain.RepTypeReps}, true, true
	}

	return domain.Movement{}, false, false
}

func (p *WorkoutParser) distanceMovement(name, amount, unit string) (domain.Movement, bool, bool) {
	resolved, known := p.resolveName(name)
	if resolved == "" {
		return domain.Movement{}, false, false
	}
	v, err := strconv.ParseFloat(amount, 64)
	if err != nil {
		return domain.Movement{}, false, false
	}
	switch {
	case unit == "km":
		v *= 1000
	case strings.HasPrefix(unit, "mi"):
		v *= 1609.344
	}
	meters := int(math.Round(v))
	return domain.Movement{Name: resolved, RepType: domain.RepTypeDistance, DistanceMeters: &meters}, known, true
}

// resolveName canonicalizes a written name. Unknown names are kept in
// title case when they look like a movement; otherwise "" is returned.
func (p *WorkoutParser) resolveName(raw string) (string, bool) {
	if def, ok := p.catalog.Lookup(raw); ok {
		return def.Name, true
	}
	if def, ok := p.catalog.FindMention(raw); ok {
		return def.Name, true
	}

	key := movementKey(raw)
	words := strings.Fields(key)
	if len(words) == 0 || len(words) > 5 || isControlLine(key) {
		return "", false
	}
	letters := 0
	for _, r := range key {
		if unicode.IsLetter(r) {
			letters++
		}
	}
	if letters < 3 {
		return "", false
	}
	return titleCase(words), false
}

// parseWeight finds a male/female pair or a single weight on the line
func parseWeight(line string) parsedWeight {
	if loc := weightPairPattern.FindStringSubmatchIndex(line); loc != nil {
		at := loc[2] >= 0
		unit := ""
		if loc[8] >= 0 {
			unit = line[loc[8]:loc[9]]
		}
		if unit != "" || at {
			male, _ := strconv.ParseFloat(line[loc[4]:loc[5]], 64)
			female, _ := strconv.ParseFloat(line[loc[6]:loc[7]], 64)
			male, female = toKg(male, unit), toKg(female, unit)
			return parsedWeight{male: &male, female: &female, span: [2]int{loc[0], loc[1]}, assumed: unit == ""}
		}
	}
	if loc := weightSinglePattern.FindStringSubmatchIndex(line); loc != nil {
		v, _ := strconv.ParseFloat(line[loc[4]:loc[5]], 64)
		v = toKg(v, line[loc[6]:loc[7]])
		return parsedWeight{male: &v, span: [2]int{loc[0], loc[1]}}
	}
	return parsedWeight{}
}

func toKg(v float64, unit string) float64 {
	switch unit {
	case "lb", "lbs", "pounds", "#":
		return math.Round(v*poundsToKg*10) / 10
	}
	return v
}

func applyWeight(mv *domain.Movement, w parsedWeight) {
	mv.WeightKgMale = w.male
	mv.WeightKgFemale = w.female
}

// mergeMovement fills fields missing on the first occurrence
func mergeMovement(dst *domain.Movement, src domain.Movement) {
	if dst.Reps == nil {
		dst.Reps = src.Reps
	}
	if dst.Calories == nil {
		dst.Calories = src.Calories
	}
	if dst.DistanceMeters == nil {
		dst.DistanceMeters = src.DistanceMeters
	}
	if dst.WeightKgMale == nil && dst.WeightKgFemale == nil {
		dst.WeightKgMale = src.WeightKgMale
		dst.WeightKgFemale = src.WeightKgFemale
	}
}

func resolveWeightType(mv domain.Movement, line string, known bool, catalog *MovementCatalog) domain.WeightType {
	key := " " + movementKey(line) + " "
	switch {
	case strings.Contains(key, " dumbbell") || strings.Contains(key, " db "):
		return domain.WeightDumbbell
	case strings.Contains(key, " kettlebell") || strings.Contains(key, " kb "):
		return domain.WeightKettlebell
	}
	weighted := mv.WeightKgMale != nil || mv.WeightKgFemale != nil
	if known {
		if def, ok := catalog.Lookup(mv.Name); ok && (def.Implement != domain.WeightBodyweight || !weighted) {
			return def.Implement
		}
	}
	if weighted {
		return domain.WeightBarbell
	}
	return domain.WeightBodyweight
}

// isControlLine reports whether a line only carries format instructions
// such as "12 min AMRAP", "21-15-9" or "Rest 2 min"
func isControlLine(line string) bool {
	stripped := controlTokenPattern.ReplaceAllString(line, " ")
	return isResidue(stripped)
}

// isResidue reports whether s holds no letters
func isResidue(s string) bool {
	return strings.TrimSpace(controlResiduePattern.ReplaceAllString(s, "")) == ""
}

func (p *WorkoutParser) inferDifficulty(movements []domain.Movement) domain.Difficulty {
	advanced, intermediate := 0, 0
	for _, mv := range movements {
		key := movementKey(mv.Name)
		switch {
		case p.advanced.CountMatches(key) > 0:
			advanced++
		case p.intermediate.CountMatches(key) > 0:
			intermediate++
		}
	}
	switch {
	case advanced >= 2:
		return domain.DifficultyAdvanced
	case advanced >= 1 || intermediate >= 3:
		return domain.DifficultyIntermediate
	default:
		return domain.DifficultyBeginner
	}
}

func (p *WorkoutParser) inferFocus(movements []domain.Movement) []domain.FocusTag {
	var tags []domain.FocusTag
	for _, tag := range []domain.FocusTag{domain.FocusCardio, domain.FocusGymnastics, domain.FocusStrength} {
		for _, mv := range movements {
			if p.focus[tag].CountMatches(movementKey(mv.Name)) > 0 {
				tags = append(tags, tag)
				break
			}
		}
	}
	if len(tags) == 0 {
		return []domain.FocusTag{domain.FocusMixed}
	}
	return tags
}

func (p *WorkoutParser) inferEquipment(flat string) []string {
	key := movementKey(flat)
	var equipment []string
	for _, id := range p.equipmentIDs {
		if p.equipment[id].CountMatches(key) > 0 {
			equipment = append(equipment, id)
		}
	}
	return equipment
}

// generateWorkoutName builds e.g. "21-15-9 For Time: Thrusters & Pull-ups"
func generateWorkoutName(w domain.ParsedWorkout) string {
	var parts []string
	if len(w.RepScheme) > 0 {
		nums := make([]string, len(w.RepScheme))
		for i, n := range w.RepScheme {
			nums[i] = strconv.Itoa(n)
		}
		parts = append(parts, strings.Join(nums, "-"))
	}

	label := w.WodType.Label()
	switch w.WodType {
	case domain.WodAMRAP, domain.WodEMOM:
		if w.TimeCapSeconds != nil {
			label = fmt.Sprintf("%d Min %s", *w.TimeCapSeconds/60, label)
		}
	case domain.WodRounds:
		if w.TargetRounds != nil {
			label = fmt.Sprintf("%d Rounds", *w.TargetRounds)
		}
	case domain.WodForTime:
		if w.TargetRounds != nil {
			label = fmt.Sprintf("%d Rounds For Time", *w.TargetRounds)
		}
	}
	parts = append(parts, label)
	name := strings.Join(parts, " ")

	var names []string
	for i := 0; i < len(w.Movements) && i < 2; i++ {
		names = append(names, w.Movements[i].Name)
	}
	if len(names) > 0 {
		name += ": " + strings.Join(names, " & ")
	}
	return name
}

func firstInt(line string, patterns ...*regexp.Regexp) (int, bool) {
	for _, pattern := range patterns {
		m := pattern.FindStringSubmatch(line)
		if m == nil {
			continue
		}
		for _, group := range m[1:] {
			if n, ok := atoiPositive(group); ok {
				return n, true
			}
		}
	}
	return 0, false
}

func atoiPositive(s string) (int, bool) {
	if s == "" {
		return 0, false
	}
	n, err := strconv.Atoi(s)
	if err != nil || n <= 0 {
		return 0, false
	}
	return n, true
}

func atoiPtr(s string) *int {
	n, err := strconv.Atoi(s)
	if err != nil {
		return nil
	}
	return &n
}

func intPtr(n int) *int {
	return &n
}

func titleCase(words []string) string {
	out := make([]string, len(words))
	for i, w := range words {
		r := []rune(w)
		r[0] = unicode.ToUpper(r[0])
		out[i] = string(r)
	}
	return strings.Join(out, " ")
}
