package catalog

// GoalID identifies a purchasable goal.
type GoalID string

const (
	GoalCycle     GoalID = "cycle"
	GoalMotorbike GoalID = "motorbike"
	GoalCar       GoalID = "car"
	GoalHouse     GoalID = "house"
)

// Goal is the item a player saves toward. Cost is the purchase price; the
// copy held in game state is re-valued once it is bought.
type Goal struct {
	ID    GoalID `json:"id"`
	Name  string `json:"name"`
	Cost  int64  `json:"cost"`
	Emoji string `json:"emoji"`
}

var goals = []Goal{
	{ID: GoalCycle, Name: "Cycle", Cost: 7000, Emoji: "🚲"},
	{ID: GoalMotorbike, Name: "Motorbike", Cost: 300000, Emoji: "🏍️"},
	{ID: GoalCar, Name: "Car", Cost: 1200000, Emoji: "🚗"},
	{ID: GoalHouse, Name: "New House", Cost: 2000000, Emoji: "🏠"},
}

// Goals returns the goals in display order.
func Goals() []Goal {
	return append([]Goal(nil), goals...)
}

// LookupGoal finds a goal by id.
func LookupGoal(id GoalID) (Goal, bool) {
	for _, g := range goals {
		if g.ID == id {
			return g, true
		}
	}
	return Goal{}, false
}
