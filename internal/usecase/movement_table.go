package usecase

import "github.com/macrolens/capture/internal/domain"

// movementTable lists the canonical movements known to the parser
var movementTable = []MovementDefinition{
	// Barbell
	{Name: "Thrusters", Aliases: []string{"thruster", "barbell thrusters"}, Implement: domain.WeightBarbell},
	{Name: "Deadlifts", Aliases: []string{"deadlift", "dl", "dead lift"}, Implement: domain.WeightBarbell},
	{Name: "Sumo Deadlift High Pull", Aliases: []string{"sdhp", "sumo deadlift high pulls"}, Implement: domain.WeightBarbell},
	{Name: "Romanian Deadlifts", Aliases: []string{"romanian deadlift", "rdl", "rdls"}, Implement: domain.WeightBarbell},
	{Name: "Cleans", Aliases: []string{"clean", "squat clean", "squat cleans"}, Implement: domain.WeightBarbell},
	{Name: "Power Cleans", Aliases: []string{"power clean", "pc"}, Implement: domain.WeightBarbell},
	{Name: "Hang Power Cleans", Aliases: []string{"hang power clean", "hpc", "hang clean", "hang cleans"}, Implement: domain.WeightBarbell},
	{Name: "Clean and Jerk", Aliases: []string{"clean and jerks", "clean & jerk", "c&j", "cj"}, Implement: domain.WeightBarbell},
	{Name: "Snatches", Aliases: []string{"snatch", "squat snatch", "full snatch"}, Implement: domain.WeightBarbell},
	{Name: "Power Snatches", Aliases: []string{"power snatch"}, Implement: domain.WeightBarbell},
	{Name: "Hang Power Snatches", Aliases: []string{"hang power snatch", "hps"}, Implement: domain.WeightBarbell},
	{Name: "Front Squats", Aliases: []string{"front squat", "fs"}, Implement: domain.WeightBarbell},
	{Name: "Back Squats", Aliases: []string{"back squat", "bs"}, Implement: domain.WeightBarbell},
	{Name: "Overhead Squats", Aliases: []string{"overhead squat", "ohs"}, Implement: domain.WeightBarbell},
	{Name: "Push Press", Aliases: []string{"push presses"}, Implement: domain.WeightBarbell},
	{Name: "Push Jerks", Aliases: []string{"push jerk", "jerk", "jerks", "split jerk"}, Implement: domain.WeightBarbell},
	{Name: "Shoulder Press", Aliases: []string{"strict press", "overhead press", "ohp", "press"}, Implement: domain.WeightBarbell},
	{Name: "Shoulder to Overhead", Aliases: []string{"s2oh", "stoh", "shoulder to overheads"}, Implement: domain.WeightBarbell},
	{Name: "Ground to Overhead", Aliases: []string{"g2oh", "gtoh"}, Implement: domain.WeightBarbell},
	{Name: "Bench Press", Aliases: []string{"bench", "bench presses"}, Implement: domain.WeightBarbell},
	{Name: "Barbell Rows", Aliases: []string{"barbell row", "bent over row", "bent over rows"}, Implement: domain.WeightBarbell},

	// Dumbbell and kettlebell
	{Name: "Dumbbell Snatches", Aliases: []string{"dumbbell snatch", "db snatch", "db snatches"}, Implement: domain.WeightDumbbell},
	{Name: "Dumbbell Thrusters", Aliases: []string{"dumbbell thruster", "db thruster", "db thrusters"}, Implement: domain.WeightDumbbell},
	{Name: "Devil Press", Aliases: []string{"devils press", "devil presses"}, Implement: domain.WeightDumbbell},
	{Name: "Dumbbell Lunges", Aliases: []string{"db lunges", "db lunge", "dumbbell lunge"}, Implement: domain.WeightDumbbell},
	{Name: "Kettlebell Swings", Aliases: []string{"kettlebell swing", "kb swing", "kb swings", "kbs", "american swings", "russian swings"}, Implement: domain.WeightKettlebell},
	{Name: "Goblet Squats", Aliases: []string{"goblet squat"}, Implement: domain.WeightKettlebell},
	{Name: "Turkish Get-ups", Aliases: []string{"turkish get up", "turkish getups", "tgu"}, Implement: domain.WeightKettlebell},
	{Name: "Farmers Carry", Aliases: []string{"farmer carry", "farmers walk", "farmer's carry"}, Implement: domain.WeightKettlebell},

	// Gymnastics
	{Name: "Pull-ups", Aliases: []string{"pull-up", "pull ups", "pullups", "pullup", "kipping pull-ups", "strict pull-ups"}, Implement: domain.WeightBodyweight},
	{Name: "Chest-to-Bar Pull-ups", Aliases: []string{"chest to bar", "chest to bar pull ups", "c2b", "ctb"}, Implement: domain.WeightBodyweight},
	{Name: "Toes-to-Bar", Aliases: []string{"toes to bar", "t2b", "ttb"}, Implement: domain.WeightBodyweight},
	{Name: "Knees-to-Elbows", Aliases: []string{"knees to elbows", "k2e"}, Implement: domain.WeightBodyweight},
	{Name: "Bar Muscle-ups", Aliases: []string{"bar muscle up", "bar muscle-up", "bmu"}, Implement: domain.WeightBodyweight},
	{Name: "Ring Muscle-ups", Aliases: []string{"ring muscle up", "ring muscle-up", "rmu", "muscle-ups", "muscle ups", "muscle-up"}, Implement: domain.WeightBodyweight},
	{Name: "Handstand Push-ups", Aliases: []string{"handstand push up", "handstand push-up", "hspu", "hspus"}, Implement: domain.WeightBodyweight},
	{Name: "Handstand Walk", Aliases: []string{"handstand walking", "hs walk"}, Implement: domain.WeightBodyweight},
	{Name: "Rope Climbs", Aliases: []string{"rope climb", "legless rope climb"}, Implement: domain.WeightBodyweight},
	{Name: "Ring Dips", Aliases: []string{"ring dip"}, Implement: domain.WeightBodyweight},
	{Name: "Dips", Aliases: []string{"dip", "bar dips"}, Implement: domain.WeightBodyweight},
	{Name: "Pistols", Aliases: []string{"pistol", "pistol squats", "pistol squat"}, Implement: domain.WeightBodyweight},
	{Name: "GHD Sit-ups", Aliases: []string{"ghd sit up", "ghd", "ghd situps"}, Implement: domain.WeightBodyweight},

	// Bodyweight
	{Name: "Burpees", Aliases: []string{"burpee", "bar facing burpees", "bar-facing burpees"}, Implement: domain.WeightBodyweight},
	{Name: "Burpee Box Jump Overs", Aliases: []string{"burpee box jump over", "bbjo"}, Implement: domain.WeightBodyweight},
	{Name: "Air Squats", Aliases: []string{"air squat", "squats", "squat", "bodyweight squats"}, Implement: domain.WeightBodyweight},
	{Name: "Push-ups", Aliases: []string{"push-up", "push ups", "pushups", "pushup", "hand release push-ups"}, Implement: domain.WeightBodyweight},
	{Name: "Sit-ups", Aliases: []string{"sit-up", "sit ups", "situps", "abmat sit-ups"}, Implement: domain.WeightBodyweight},
	{Name: "Lunges", Aliases: []string{"lunge", "walking lunges", "walking lunge"}, Implement: domain.WeightBodyweight},
	{Name: "Box Jumps", Aliases: []string{"box jump", "bj", "box jump overs", "box step ups"}, Implement: domain.WeightBodyweight},
	{Name: "Double-unders", Aliases: []string{"double unders", "double under", "du", "dus"}, Implement: domain.WeightBodyweight},
	{Name: "Single-unders", Aliases: []string{"single unders", "single under", "jump rope"}, Implement: domain.WeightBodyweight},
	{Name: "Mountain Climbers", Aliases: []string{"mountain climber"}, Implement: domain.WeightBodyweight},
	{Name: "Plank", Aliases: []string{"planks", "plank hold"}, Implement: domain.WeightBodyweight},

	// Medicine ball
	{Name: "Wall Balls", Aliases: []string{"wall ball", "wall ball shots", "wb", "wbs"}, Implement: domain.WeightBodyweight},
	{Name: "Medicine Ball Cleans", Aliases: []string{"med ball cleans", "medicine ball clean"}, Implement: domain.WeightBodyweight},

	// Monostructural
	{Name: "Row", Aliases: []string{"rowing", "rower", "row erg", "cal row", "calorie row"}, Implement: domain.WeightBodyweight},
	{Name: "Bike", Aliases: []string{"assault bike", "echo bike", "air bike", "bike erg", "cal bike", "calorie bike"}, Implement: domain.WeightBodyweight},
	{Name: "Ski Erg", Aliases: []string{"skierg", "ski", "cal ski"}, Implement: domain.WeightBodyweight},
	{Name: "Run", Aliases: []string{"running", "runs", "sprint", "shuttle run"}, Implement: domain.WeightBodyweight},
	{Name: "Swim", Aliases: []string{"swimming"}, Implement: domain.WeightBodyweight},
}
