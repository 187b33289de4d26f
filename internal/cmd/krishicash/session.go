package krishicash

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/louisbranch/krishicash/internal/platform/currency"
	"github.com/louisbranch/krishicash/internal/services/game/app"
	"github.com/louisbranch/krishicash/internal/services/game/domain/catalog"
	"github.com/louisbranch/krishicash/internal/services/game/domain/command"
	"github.com/louisbranch/krishicash/internal/services/game/domain/engine"
	"github.com/louisbranch/krishicash/internal/services/game/domain/state"
	"github.com/louisbranch/krishicash/internal/services/game/storage"
)

const prompt = "> "

var errQuit = errors.New("quit")

type saveLister interface {
	List(ctx context.Context) ([]storage.Record, error)
}

// session reads one action per line and prints what happened.
type session struct {
	ctrl  *app.Controller
	saves saveLister
	out   io.Writer
}

func newSession(ctrl *app.Controller, saves saveLister, out io.Writer) *session {
	return &session{ctrl: ctrl, saves: saves, out: out}
}

// run processes lines from in until quit, EOF or ctx ends.
func (s *session) run(ctx context.Context, in io.Reader) error {
	s.printf("KrishiCash: 12 months to reach your goal. Type \"help\" for actions.\n")
	s.printStatus(s.ctrl.Snapshot())

	scanner := bufio.NewScanner(in)
	for {
		if err := ctx.Err(); err != nil {
			return nil
		}
		s.printf(prompt)
		if !scanner.Scan() {
			s.printf("\n")
			return scanner.Err()
		}
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		if err := s.handle(ctx, line); err != nil {
			if errors.Is(err, errQuit) {
				return nil
			}
			s.printf("error: %v\n", err)
		}
	}
}

// handle runs one input line.
func (s *session) handle(ctx context.Context, line string) error {
	fields := strings.Fields(line)
	verb, args := strings.ToLower(fields[0]), fields[1:]

	switch verb {
	case "quit", "exit":
		return errQuit
	case "help":
		s.printHelp()
		return nil
	case "status":
		s.printStatus(s.ctrl.Snapshot())
		return nil
	case "result":
		s.printResult(s.ctrl.Snapshot())
		return nil
	case "goals":
		for _, g := range catalog.Goals() {
			s.printf("  %-10s %s %s (%s)\n", g.ID, g.Emoji, g.Name, currency.FormatINR(g.Cost))
		}
		return nil
	case "levels":
		for _, d := range catalog.Difficulties() {
			s.printf("  %-7s %s %s: income %s, expenses x%g\n", d.ID, d.Emoji, d.Name,
				currency.FormatINR(d.MonthlyIncome), d.ExpenseMultiplier)
		}
		return nil
	case "expenses":
		s.printExpenses(s.ctrl.Snapshot())
		return nil
	case "saves":
		return s.printSaves(ctx)
	case "reset":
		err := s.ctrl.Reset(ctx)
		s.printf("Game reset.\n")
		s.printStatus(s.ctrl.Snapshot())
		return err
	}

	cmd, err := parseCommand(verb, args)
	if err != nil {
		return err
	}
	decision, err := s.ctrl.Dispatch(ctx, cmd)
	if r, rejected := decision.FirstRejection(); rejected {
		s.printf("Not allowed: %s\n", r.Message)
		return nil
	}
	s.report(decision)
	return err
}

// parseCommand maps a verb and its arguments to an engine command.
func parseCommand(verb string, args []string) (command.Command, error) {
	switch verb {
	case "start":
		level := catalog.DefaultDifficulty
		if len(args) > 0 {
			level = catalog.DifficultyLevel(strings.ToLower(args[0]))
		}
		return command.StartGame{Difficulty: level}, nil
	case "goal":
		if len(args) == 0 {
			return nil, errors.New("usage: goal <cycle|motorbike|car|house>")
		}
		goal, ok := catalog.LookupGoal(catalog.GoalID(strings.ToLower(args[0])))
		if !ok {
			return nil, fmt.Errorf("unknown goal %q", args[0])
		}
		return command.SelectGoal{Goal: goal}, nil
	case "month":
		return command.StartNewMonth{}, nil
	case "event":
		if len(args) == 0 {
			return command.HandleEvent{}, nil
		}
		ev, ok := catalog.EventByID(args[0])
		if !ok {
			return nil, fmt.Errorf("unknown event %q", args[0])
		}
		return command.HandleEvent{Event: &ev}, nil
	case "insure-stop":
		return command.StopInsurance{}, nil
	case "buy":
		return command.PurchaseGoal{}, nil
	case "end":
		return command.EndMonth{}, nil
	case "continue":
		return command.ContinueMonth{}, nil
	}

	amountCommands := map[string]func(int64) command.Command{
		"save":          func(n int64) command.Command { return command.SaveMoney{Amount: n} },
		"insure":        func(n int64) command.Command { return command.BuyInsurance{Amount: n} },
		"insure-update": func(n int64) command.Command { return command.UpdateInsurance{Amount: n} },
		"loan":          func(n int64) command.Command { return command.TakeLoan{Amount: n} },
		"repay":         func(n int64) command.Command { return command.RepayLoan{Amount: n} },
		"withdraw":      func(n int64) command.Command { return command.WithdrawSavings{Amount: n} },
	}
	build, ok := amountCommands[verb]
	if !ok {
		return nil, fmt.Errorf("unknown action %q (try \"help\")", verb)
	}
	if len(args) == 0 {
		return nil, fmt.Errorf("usage: %s <amount>", verb)
	}
	amount, err := parseAmount(args[0])
	if err != nil {
		return nil, err
	}
	return build(amount), nil
}

// parseAmount accepts plain or grouped rupee amounts: 25000, 25,000, ₹25,000.
func parseAmount(raw string) (int64, error) {
	cleaned := strings.NewReplacer(",", "", currency.Symbol, "", "_", "").Replace(raw)
	n, err := strconv.ParseInt(cleaned, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid amount %q", raw)
	}
	return n, nil
}

func (s *session) report(d command.Decision) {
	for _, adv := range d.Advisories {
		s.printf("[%s] %s: %s\n", adv.Kind, adv.Title, adv.Message)
	}
	next := d.State
	switch next.Phase {
	case state.PhaseEvent:
		if ev := next.CurrentEvent; ev != nil {
			s.printf("Event: %s. %s\n", ev.Title, ev.Description)
			switch {
			case ev.Cost > 0:
				s.printf("  Cost: %s\n", currency.FormatINR(engine.EffectiveCost(next, *ev, s.ctrl.Rules())))
			case ev.Reward > 0:
				s.printf("  Reward: %s\n", currency.FormatINR(ev.Reward))
			case ev.Interest > 0:
				s.printf("  Interest: %g%% per month\n", ev.Interest)
			}
		}
	case state.PhaseSummary:
		if review, ok := engine.MonthReview(next); ok {
			s.printf("Month %d review: balance %s, savings %s\n", review.Month,
				signedINR(review.BalanceChange), signedINR(review.SavingsChange))
			s.printf("  Tip: %s\n", review.Tip)
		}
		if engine.StreakBonusPending(next, s.ctrl.Rules()) {
			s.printf("  Saving streak! Income boost coming next month.\n")
		}
	case state.PhaseEnded:
		s.printStatus(next)
		s.printResult(next)
		return
	}
	s.printStatus(next)
}

func (s *session) printStatus(st state.GameState) {
	months := s.ctrl.Rules().MonthsPerGame
	s.printf("Month %d/%d [%s] balance %s | savings %s | debt %s | stability %d/100\n",
		st.Month, months, st.Phase, currency.FormatINR(st.Balance),
		currency.FormatINR(st.Savings), currency.FormatINR(st.Debt), st.StabilityScore)
	if st.SelectedGoal != nil {
		status := "saving"
		switch {
		case st.GoalAchieved:
			status = "purchased"
		case st.PropertyConfiscated:
			status = "confiscated"
		}
		s.printf("  Goal: %s %s (%s, %s)\n", st.SelectedGoal.Emoji, st.SelectedGoal.Name,
			currency.FormatINR(st.SelectedGoal.Cost), status)
	}
	if st.HasInsurance {
		s.printf("  Insurance: %s/month\n", currency.FormatINR(st.InsuranceAmount))
	}
	if st.Debt > 0 {
		s.printf("  Loan: %d months left\n", st.LoanMonthsRemaining)
		if shortfall, fromSavings := engine.DebtShortfall(st); shortfall > 0 {
			s.printf("  Balance is %s short of the debt; %s would come from savings\n",
				currency.FormatINR(shortfall), currency.FormatINR(fromSavings))
		}
	}
}

func (s *session) printExpenses(st state.GameState) {
	e := engine.ExpenseBreakdown(st.ExpenseMultiplier)
	s.printf("  Household %s | Farming %s | Education %s\n",
		currency.FormatINR(e.Household), currency.FormatINR(e.Farming), currency.FormatINR(e.Education))
	s.printf("  Total %s per month\n", currency.FormatINR(engine.TotalExpenses(st.ExpenseMultiplier)))
}

func (s *session) printResult(st state.GameState) {
	outcome := engine.GameResult(st)
	s.printf("%s\n  %s\n", outcome.Title, outcome.Description)
	for _, lesson := range engine.Lessons(st) {
		mark := "-"
		if lesson.Positive {
			mark = "+"
		}
		s.printf("  %s %s\n", mark, lesson.Text)
	}
}

func (s *session) printSaves(ctx context.Context) error {
	if s.saves == nil {
		return errors.New("no save store configured")
	}
	records, err := s.saves.List(ctx)
	if err != nil {
		return err
	}
	if len(records) == 0 {
		s.printf("No saves.\n")
		return nil
	}
	for _, rec := range records {
		goal := rec.Summary.GoalName
		if goal == "" {
			goal = "-"
		}
		s.printf("  %-16s month %2d  %-6s %-10s savings %s  stability %d  %s\n",
			rec.AccountID, rec.Summary.Month, rec.Summary.Difficulty, goal,
			currency.FormatINR(rec.Summary.Savings), rec.Summary.StabilityScore,
			rec.SavedAt.Format("2006-01-02 15:04"))
	}
	return nil
}

func (s *session) printHelp() {
	s.printf(`Actions:
  start [easy|medium|hard]   begin a game
  goal <id>                  pick a goal (see "goals")
  month                      start the next month
  event [id]                 resolve the month's event
  save <amount>              move money into savings
  withdraw <amount>          move savings back to balance
  insure <amount>            buy crop insurance
  insure-update <amount>     change the premium
  insure-stop                cancel insurance
  loan <amount>              borrow at monthly interest
  repay <amount>             pay down the loan
  buy                        purchase your goal
  end                        close the month
  continue                   leave the month summary
  status | result | expenses | reset | quit
  goals | levels | saves      list goals, difficulties, stored games
`)
}

func (s *session) printf(format string, args ...any) {
	fmt.Fprintf(s.out, format, args...)
}

func signedINR(n int64) string {
	if n > 0 {
		return "+" + currency.FormatINR(n)
	}
	return currency.FormatINR(n)
}
