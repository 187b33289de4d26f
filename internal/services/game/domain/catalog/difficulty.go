package catalog

// DifficultyLevel identifies a difficulty tier.
type DifficultyLevel string

const (
	DifficultyEasy   DifficultyLevel = "easy"
	DifficultyMedium DifficultyLevel = "medium"
	DifficultyHard   DifficultyLevel = "hard"
)

// DefaultDifficulty is used when a requested tier is unknown.
const DefaultDifficulty = DifficultyMedium

// DifficultyConfig sets the starting economics of a game.
type DifficultyConfig struct {
	ID                DifficultyLevel
	Name              string
	Description       string
	MonthlyIncome     int64
	ExpenseMultiplier float64
	Emoji             string
}

var difficulties = []DifficultyConfig{
	{
		ID:                DifficultyEasy,
		Name:              "Beginner Farmer",
		Description:       "Higher income, lower expenses",
		MonthlyIncome:     200000,
		ExpenseMultiplier: 0.8,
		Emoji:             "🌱",
	},
	{
		ID:                DifficultyMedium,
		Name:              "Experienced Farmer",
		Description:       "Balanced income and expenses",
		MonthlyIncome:     150000,
		ExpenseMultiplier: 1.0,
		Emoji:             "🌾",
	},
	{
		ID:                DifficultyHard,
		Name:              "Struggling Farmer",
		Description:       "Lower income, higher expenses",
		MonthlyIncome:     100000,
		ExpenseMultiplier: 1.3,
		Emoji:             "🥵",
	},
}

// Valid reports whether level names a known tier.
func (level DifficultyLevel) Valid() bool {
	_, ok := Difficulty(level)
	return ok
}

// Difficulties returns the tiers in display order.
func Difficulties() []DifficultyConfig {
	return append([]DifficultyConfig(nil), difficulties...)
}

// Difficulty looks up a tier by id.
func Difficulty(level DifficultyLevel) (DifficultyConfig, bool) {
	for _, d := range difficulties {
		if d.ID == level {
			return d, true
		}
	}
	return DifficultyConfig{}, false
}

// DifficultyOrDefault returns the tier for level, falling back to
// DefaultDifficulty. The boolean reports whether level itself matched.
func DifficultyOrDefault(level DifficultyLevel) (DifficultyConfig, bool) {
	if d, ok := Difficulty(level); ok {
		return d, true
	}
	d, _ := Difficulty(DefaultDifficulty)
	return d, false
}
