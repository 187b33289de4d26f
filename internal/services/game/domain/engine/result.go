package engine

import (
	"fmt"

	"github.com/louisbranch/krishicash/internal/platform/currency"
	"github.com/louisbranch/krishicash/internal/services/game/domain/catalog"
	"github.com/louisbranch/krishicash/internal/services/game/domain/state"
)

// Tone classifies an outcome for presentation.
type Tone string

const (
	ToneSuccess Tone = "success"
	ToneWarning Tone = "warning"
	ToneFailure Tone = "failure"
)

// Outcome is the end-of-game verdict.
type Outcome struct {
	Tone        Tone
	Title       string
	Description string
}

// GameResult classifies s. Checks run in priority order: confiscation, a
// purchased goal, an affordable goal, then the stability tier.
func GameResult(s state.GameState) Outcome {
	goal := s.SelectedGoal
	switch {
	case s.PropertyConfiscated:
		return Outcome{
			Tone:        ToneFailure,
			Title:       "Property Confiscated! 💔",
			Description: "You couldn't repay your loan before the grace period ran out. Your property has been seized.",
		}
	case s.GoalAchieved && goal != nil:
		return Outcome{
			Tone:        ToneSuccess,
			Title:       fmt.Sprintf("Congratulations! You bought a %s! %s", goal.Name, goal.Emoji),
			Description: fmt.Sprintf("Amazing! Your %s is now worth %s after appreciation!", goal.Name, currency.FormatINR(goal.Cost)),
		}
	case goal != nil && s.Savings >= goal.Cost:
		return Outcome{
			Tone:        ToneSuccess,
			Title:       fmt.Sprintf("Goal Achieved! %s", goal.Emoji),
			Description: fmt.Sprintf("You saved enough to buy a %s! You can now purchase it.", goal.Name),
		}
	case s.StabilityScore > 80:
		desc := "Excellent! You managed your finances wisely and built a stable future."
		if goal != nil {
			desc = fmt.Sprintf("Great progress! You need %s more for your %s.", currency.FormatINR(goal.Cost-s.Savings), goal.Name)
		}
		return Outcome{Tone: ToneSuccess, Title: "Financially Secure Farmer! 🌟", Description: desc}
	case s.StabilityScore > 50:
		return Outcome{
			Tone:        ToneWarning,
			Title:       "Stable but Needs Improvement 📊",
			Description: "You did okay, but there's room to improve your financial habits.",
		}
	default:
		return Outcome{
			Tone:        ToneFailure,
			Title:       "Financially Vulnerable ⚠️",
			Description: "Your finances need attention. Try saving more and avoiding debt.",
		}
	}
}

// Lesson is one line of end-of-game feedback.
type Lesson struct {
	Positive bool
	Text     string
}

// Lessons returns the feedback that applies to s, in display order.
func Lessons(s state.GameState) []Lesson {
	candidates := []struct {
		when bool
		Lesson
	}{
		{s.Savings >= 200000, Lesson{true, "Excellent savings! You built a strong financial cushion."}},
		{s.Savings < 100000, Lesson{false, "Try to save more regularly to build emergency funds."}},
		{s.MonthlyIncome > startingIncome(s), Lesson{true, "Your consistent saving unlocked income growth!"}},
		{s.Debt == 0 && s.HistoryHasEventType(catalog.EventLoanOffer), Lesson{true, "You avoided or paid off debt - excellent discipline!"}},
		{s.Debt > 0, Lesson{false, "High-interest loans hurt your finances. Avoid when possible."}},
		{s.StabilityScore >= 80, Lesson{true, "You maintained excellent financial stability throughout!"}},
		{s.PropertyConfiscated, Lesson{false, "Always repay loans within the grace period to avoid losing your property."}},
	}
	var out []Lesson
	for _, c := range candidates {
		if c.when {
			out = append(out, c.Lesson)
		}
	}
	return out
}

// startingIncome is the tier income the game began with, so income growth is
// judged against the player's own tier rather than a fixed figure.
func startingIncome(s state.GameState) int64 {
	tier, _ := catalog.DifficultyOrDefault(s.Difficulty)
	return tier.MonthlyIncome
}

// Review summarises the last completed month.
type Review struct {
	Month         int
	BalanceChange int64
	SavingsChange int64
	Tip           string
}

// MonthReview compares the last two month records. The first month is
// compared against zero. It reports false when no month has completed.
func MonthReview(s state.GameState) (Review, bool) {
	n := len(s.MonthHistory)
	if n == 0 {
		return Review{}, false
	}
	last := s.MonthHistory[n-1]
	r := Review{
		Month:         last.Month,
		BalanceChange: last.Balance,
		SavingsChange: last.Savings,
		Tip:           savingsTip(s),
	}
	if n > 1 {
		prev := s.MonthHistory[n-2]
		r.BalanceChange = last.Balance - prev.Balance
		r.SavingsChange = last.Savings - prev.Savings
	}
	return r, true
}

func savingsTip(s state.GameState) string {
	var tip string
	switch {
	case s.Savings < 100000:
		tip = "Try to save at least " + currency.FormatINR(25000) + " each month to build your emergency fund!"
	case s.Savings < 500000:
		tip = "Great savings! Keep going to reach " + currency.FormatINR(500000) + " for extra stability."
	default:
		tip = "Excellent savings! You're building a strong financial cushion."
	}
	if s.Debt > 0 {
		tip += " Remember to pay off your debt to avoid property confiscation."
	}
	return tip
}

// StreakBonusPending reports whether the next rollover will raise income.
func StreakBonusPending(s state.GameState, rules Rules) bool {
	return rules.StreakBonusPercent > 0 &&
		s.ConsecutiveSavingMonths >= rules.StreakBonusMonths &&
		s.TotalSavedThisStreak >= rules.StreakBonusThreshold
}

// DebtShortfall reports how much more than the balance the debt needs, and
// how much of it savings can cover. Both are zero when the balance clears the
// debt or there is nothing saved.
func DebtShortfall(s state.GameState) (shortfall, fromSavings int64) {
	if s.Debt <= s.Balance || s.Savings <= 0 {
		return 0, 0
	}
	shortfall = s.Debt - s.Balance
	return shortfall, min(shortfall, s.Savings)
}
