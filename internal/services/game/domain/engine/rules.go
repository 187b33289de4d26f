package engine

import (
	"errors"
	"fmt"
)

// Rules holds the tunable numbers of a game.
type Rules struct {
	// LoanInterestRate is applied to outstanding debt at every rollover.
	LoanInterestRate float64
	// LoanGraceMonths is the countdown a new loan starts with.
	LoanGraceMonths int
	// LoanWarningMonths raises a deadline advisory when the countdown
	// reaches it.
	LoanWarningMonths int
	// CropLossCopay caps crop-loss costs while insured.
	CropLossCopay int64
	// GoalAppreciation is the fraction added to a goal's value on purchase.
	GoalAppreciation float64
	// MonthsPerGame is the length of a game.
	MonthsPerGame int
	// StreakBonusMonths and StreakBonusThreshold gate the income boost.
	StreakBonusMonths    int
	StreakBonusThreshold int64
	// StreakBonusPercent is the income increase; zero disables the boost.
	StreakBonusPercent int
}

// DefaultRules returns the standard game.
func DefaultRules() Rules {
	return Rules{
		LoanInterestRate:     0.05,
		LoanGraceMonths:      6,
		LoanWarningMonths:    2,
		CropLossCopay:        5000,
		GoalAppreciation:     0.10,
		MonthsPerGame:        12,
		StreakBonusMonths:    3,
		StreakBonusThreshold: 75000,
		StreakBonusPercent:   10,
	}
}

// Validate reports rules that would make the game unplayable.
func (r Rules) Validate() error {
	var errs []error
	if r.LoanInterestRate < 0 {
		errs = append(errs, fmt.Errorf("loan interest rate %v is negative", r.LoanInterestRate))
	}
	if r.LoanGraceMonths <= 0 {
		errs = append(errs, fmt.Errorf("loan grace months %d must be positive", r.LoanGraceMonths))
	}
	if r.CropLossCopay < 0 {
		errs = append(errs, fmt.Errorf("crop loss co-pay %d is negative", r.CropLossCopay))
	}
	if r.GoalAppreciation < 0 {
		errs = append(errs, fmt.Errorf("goal appreciation %v is negative", r.GoalAppreciation))
	}
	if r.MonthsPerGame <= 0 {
		errs = append(errs, fmt.Errorf("months per game %d must be positive", r.MonthsPerGame))
	}
	if r.StreakBonusPercent < 0 {
		errs = append(errs, fmt.Errorf("streak bonus percent %d is negative", r.StreakBonusPercent))
	}
	return errors.Join(errs...)
}
