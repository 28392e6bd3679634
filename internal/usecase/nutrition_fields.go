package usecase

// Field specs for nutrition labels. Keywords are matched against folded
// text, so "Eiweiß" is written "eiweiss". Ranges are per 100 g.
var (
	caloriesSpec = FieldSpec{
		Keywords:    []string{"energy", "energie", "brennwert", "calories", "kalorien", "valeur energetique", "energia", "valor energetico"},
		Unit:        "kcal",
		RequireUnit: true,
		Min:         10,
		Max:         900,
	}

	proteinSpec = FieldSpec{
		Keywords: []string{"protein", "proteins", "eiweiss", "proteines", "proteine", "proteinas", "proteina"},
		Unit:     "g",
		Min:      0,
		Max:      100,
	}

	carbsSpec = FieldSpec{
		Keywords: []string{"total carbohydrate", "carbohydrates", "carbohydrate", "carbs", "kohlenhydrate", "glucides", "carboidrati", "hidratos de carbono"},
		Unit:     "g",
		Exclude:  []string{"sugar", "sugars", "zucker", "sucres", "zuccheri", "azucares", "fiber", "fibre", "fibres", "ballaststoffe", "fibra"},
		Min:      0,
		Max:      100,
	}

	fatSpec = FieldSpec{
		Keywords: []string{"total fat", "fat", "fett", "matieres grasses", "lipides", "grassi", "grasas"},
		Unit:     "g",
		Exclude: []string{
			"saturated", "saturates", "unsaturated", "monounsaturated", "polyunsaturated", "trans",
			"davon", "gesaettigte", "ungesaettigte", "satures", "saturi", "saturadas",
		},
		Min: 0,
		Max: 100,
	}

	saturatedFatSpec = FieldSpec{
		Keywords: []string{
			"saturated fat", "saturated", "saturates", "gesaettigte fettsaeuren", "gesaettigte",
			"acides gras satures", "satures", "acidi grassi saturi", "grasas saturadas",
		},
		Unit:    "g",
		Exclude: []string{"unsaturated", "monounsaturated", "polyunsaturated", "trans", "ungesaettigte", "insatures"},
		Min:     0,
		Max:     100,
	}

	sugarSpec = FieldSpec{
		Keywords: []string{"sugars", "sugar", "zucker", "sucres", "zuccheri", "azucares"},
		Unit:     "g",
		Exclude:  []string{"added", "alcohol", "alcohols", "zuckeralkohole", "polyols", "mehrwertige"},
		Min:      0,
		Max:      100,
	}

	fiberSpec = FieldSpec{
		Keywords: []string{"dietary fiber", "fiber", "fibre", "fibres", "ballaststoffe", "fibra alimentaria", "fibra", "fibre alimentari"},
		Unit:     "g",
		Min:      0,
		Max:      100,
	}

	sodiumMgSpec = FieldSpec{
		Keywords:    []string{"sodium", "natrium", "sodio"},
		Unit:        "mg",
		RequireUnit: true,
		Min:         0,
		Max:         5000,
	}

	sodiumGSpec = FieldSpec{
		Keywords:    []string{"sodium", "natrium", "sodio"},
		Unit:        "g",
		RequireUnit: true,
		Min:         0,
		Max:         5,
	}

	saltSpec = FieldSpec{
		Keywords: []string{"salt", "salz", "sel", "sale", "sal"},
		Unit:     "g",
		Min:      0,
		Max:      12.5,
	}
)
