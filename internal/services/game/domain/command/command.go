package command

import "github.com/louisbranch/krishicash/internal/services/game/domain/catalog"

// Type identifies a command.
type Type string

const (
	TypeStartGame       Type = "start_game"
	TypeSelectGoal      Type = "select_goal"
	TypeStartNewMonth   Type = "start_new_month"
	TypeHandleEvent     Type = "handle_event"
	TypeSaveMoney       Type = "save_money"
	TypeBuyInsurance    Type = "buy_insurance"
	TypeUpdateInsurance Type = "update_insurance"
	TypeStopInsurance   Type = "stop_insurance"
	TypeTakeLoan        Type = "take_loan"
	TypeRepayLoan       Type = "repay_loan"
	TypeWithdrawSavings Type = "withdraw_savings"
	TypePurchaseGoal    Type = "purchase_goal"
	TypeEndMonth        Type = "end_month"
	TypeContinueMonth   Type = "continue_month"
)

// Command is implemented by every action value.
type Command interface {
	Type() Type
}

// StartGame picks a difficulty tier. Unknown tiers fall back to the default.
type StartGame struct {
	Difficulty catalog.DifficultyLevel
}

// SelectGoal picks the goal to save toward.
type SelectGoal struct {
	Goal catalog.Goal
}

// StartNewMonth credits income, debits expenses and draws an event.
type StartNewMonth struct{}

// HandleEvent applies an event's cost and reward. A nil Event resolves the
// state's current event.
type HandleEvent struct {
	Event *catalog.Event
}

// SaveMoney moves Amount from balance into savings.
type SaveMoney struct {
	Amount int64
}

// BuyInsurance pays the first premium and activates cover.
type BuyInsurance struct {
	Amount int64
}

// UpdateInsurance changes the monthly premium from the next rollover.
type UpdateInsurance struct {
	Amount int64
}

// StopInsurance cancels cover.
type StopInsurance struct{}

// TakeLoan borrows Amount. Only one loan may be open.
type TakeLoan struct {
	Amount int64
}

// RepayLoan pays down up to Amount of the open loan.
type RepayLoan struct {
	Amount int64
}

// WithdrawSavings moves Amount from savings back to balance.
type WithdrawSavings struct {
	Amount int64
}

// PurchaseGoal buys the selected goal out of savings.
type PurchaseGoal struct{}

// EndMonth records the month and advances the calendar.
type EndMonth struct{}

// ContinueMonth leaves the summary screen.
type ContinueMonth struct{}

func (StartGame) Type() Type       { return TypeStartGame }
func (SelectGoal) Type() Type      { return TypeSelectGoal }
func (StartNewMonth) Type() Type   { return TypeStartNewMonth }
func (HandleEvent) Type() Type     { return TypeHandleEvent }
func (SaveMoney) Type() Type       { return TypeSaveMoney }
func (BuyInsurance) Type() Type    { return TypeBuyInsurance }
func (UpdateInsurance) Type() Type { return TypeUpdateInsurance }
func (StopInsurance) Type() Type   { return TypeStopInsurance }
func (TakeLoan) Type() Type        { return TypeTakeLoan }
func (RepayLoan) Type() Type       { return TypeRepayLoan }
func (WithdrawSavings) Type() Type { return TypeWithdrawSavings }
func (PurchaseGoal) Type() Type    { return TypePurchaseGoal }
func (EndMonth) Type() Type        { return TypeEndMonth }
func (ContinueMonth) Type() Type   { return TypeContinueMonth }
