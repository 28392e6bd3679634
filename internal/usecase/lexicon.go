package usecase

// Lexicon holds the keyword sets used to detect each capture domain.
// Build it once with NewLexicon and share it; it is read-only.
type Lexicon struct {
	Nutrition *KeywordSet
	Workout   *KeywordSet
}

// NewLexicon builds the default multilingual lexicon
func NewLexicon() *Lexicon {
	return &Lexicon{
		Nutrition: NewKeywordSet(nutritionKeywords),
		Workout:   NewKeywordSet(workoutKeywords),
	}
}

// nutritionKeywords covers English, German, French, Italian and Spanish labels
var nutritionKeywords = []string{
	// English
	"nutrition facts", "nutrition information", "nutritional information",
	"calories", "energy", "kcal", "kj", "protein", "total carbohydrate",
	"carbohydrate", "carbohydrates", "total fat", "fat", "saturated fat",
	"saturates", "trans fat", "sugars", "sugar", "dietary fiber", "fibre",
	"fiber", "sodium", "salt", "serving size", "servings per container",
	"per 100 g", "daily value", "cholesterol",

	// German
	"naehrwerte", "naehrwertangaben", "naehrwertinformationen", "brennwert",
	"energie", "eiweiss", "kohlenhydrate", "fett", "gesaettigte fettsaeuren",
	"davon gesaettigte", "zucker", "davon zucker", "ballaststoffe", "salz",
	"natrium", "pro 100 g", "je 100 g",

	// French
	"valeurs nutritionnelles", "valeur energetique", "proteines", "glucides",
	"matieres grasses", "lipides", "acides gras satures", "sucres", "fibres",
	"sel", "pour 100 g",

	// Italian
	"valori nutrizionali", "energia", "proteine", "carboidrati", "grassi",
	"acidi grassi saturi", "zuccheri", "fibre alimentari", "sale",

	// Spanish
	"informacion nutricional", "valor energetico", "proteinas",
	"hidratos de carbono", "grasas", "grasas saturadas", "azucares", "sal",
	"fibra alimentaria",
}

// workoutKeywords covers workout formats, common movements and whiteboard shorthand
var workoutKeywords = []string{
	// Formats
	"amrap", "emom", "e2mom", "e3mom", "every minute on the minute",
	"for time", "rounds for time", "rft", "tabata", "rounds", "round",
	"time cap", "wod", "metcon", "chipper", "ladder", "rest", "reps",
	"rx", "scaled", "buy in", "cash out", "as many rounds as possible",

	// Barbell
	"thrusters", "thruster", "deadlifts", "deadlift", "clean and jerk",
	"power clean", "squat clean", "hang clean", "cleans", "snatch",
	"power snatch", "snatches", "front squat", "back squat", "overhead squat",
	"push press", "push jerk", "shoulder press", "bench press",
	"sumo deadlift high pull",

	// Gymnastics
	"pull-ups", "pull ups", "pullups", "pull-up", "chest to bar", "c2b",
	"muscle-ups", "muscle ups", "bar muscle-ups", "ring muscle-ups",
	"toes to bar", "t2b", "handstand push-ups", "hspu", "handstand walk",
	"rope climbs", "rope climb", "ring dips", "dips", "pistols",
	"push-ups", "push ups", "burpees", "burpee", "sit-ups", "sit ups",
	"air squats", "lunges", "walking lunges", "box jumps", "box jump",
	"burpee box jump overs", "double unders", "double-unders", "du",
	"single unders", "k2e", "knees to elbows", "ghd",

	// Weighted implements
	"wall balls", "wall ball", "kettlebell swings", "kb swings",
	"kettlebell", "dumbbell", "db snatch", "goblet squats", "turkish get-up",
	"farmers carry", "sandbag",

	// Monostructural
	"row", "rowing", "bike", "assault bike", "echo bike", "ski erg",
	"skierg", "run", "running", "cal row", "cal bike",
}
