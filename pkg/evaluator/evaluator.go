// Package evaluator implements a chained four-function calculator as an
// explicit state machine. Each action maps a State to a new State; a failed
// action returns the input state unchanged together with the error.
package evaluator

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/iwvelando/fincalc/pkg/calcerr"
	"github.com/iwvelando/fincalc/pkg/constants"
)

// Operator is a binary calculator operation. The zero value means no
// operation is pending.
type Operator string

// Supported operators.
const (
	OpNone     Operator = ""
	OpAdd      Operator = "+"
	OpSubtract Operator = "-"
	OpMultiply Operator = "×"
	OpDivide   Operator = "÷"
)

// Valid reports whether op is one of the four supported operators.
func (op Operator) Valid() bool {
	switch op {
	case OpAdd, OpSubtract, OpMultiply, OpDivide:
		return true
	}
	return false
}

// Apply evaluates a op b.
func (op Operator) Apply(a, b float64) (float64, error) {
	var result float64
	switch op {
	case OpAdd:
		result = a + b
	case OpSubtract:
		result = a - b
	case OpMultiply:
		result = a * b
	case OpDivide:
		if b == 0 {
			return 0, calcerr.ErrDivisionByZero
		}
		result = a / b
	default:
		return 0, fmt.Errorf("%w: unknown operator %q", calcerr.ErrInvalidInput, string(op))
	}
	if math.IsInf(result, 0) || math.IsNaN(result) {
		return 0, fmt.Errorf("%w: %v %s %v", calcerr.ErrOverflow, a, op, b)
	}
	return result, nil
}

// State is the calculator state between actions.
type State struct {
	Display            string   `json:"display" yaml:"display"`
	PendingValue       *float64 `json:"pendingValue,omitempty" yaml:"pendingValue,omitempty"`
	PendingOperator    Operator `json:"pendingOperator,omitempty" yaml:"pendingOperator,omitempty"`
	AwaitingNewOperand bool     `json:"awaitingNewOperand" yaml:"awaitingNewOperand"`
}

// Initial returns the state of a fresh calculator.
func Initial() State {
	return State{Display: "0"}
}

// Value parses the display.
func (s State) Value() (float64, error) {
	v, err := strconv.ParseFloat(s.Display, 64)
	if err != nil {
		return 0, fmt.Errorf("%w: display %q is not a number", calcerr.ErrInvalidInput, s.Display)
	}
	return v, nil
}

// Equal reports whether two states are identical.
func (s State) Equal(other State) bool {
	if s.Display != other.Display || s.PendingOperator != other.PendingOperator ||
		s.AwaitingNewOperand != other.AwaitingNewOperand {
		return false
	}
	if s.PendingValue == nil || other.PendingValue == nil {
		return s.PendingValue == nil && other.PendingValue == nil
	}
	return *s.PendingValue == *other.PendingValue
}

// FormatNumber renders a result for the display. Integers round-trip exactly
// and other values use plain decimal notation.
func FormatNumber(v float64) string {
	if v == 0 {
		// Avoid "-0" from negative underflow.
		return "0"
	}
	return strconv.FormatFloat(v, 'f', -1, 64)
}

// Evaluate applies a to s.
func Evaluate(s State, a Action) (State, error) {
	switch a.Kind {
	case ActionDigit:
		return inputDigit(s, a.Digit)
	case ActionDecimal:
		return inputDecimal(s), nil
	case ActionClear:
		return Initial(), nil
	case ActionToggleSign:
		return toggleSign(s), nil
	case ActionPercent:
		return percent(s)
	case ActionOperator:
		return operator(s, a.Operator)
	case ActionEquals:
		return equals(s)
	}
	return s, fmt.Errorf("%w: unknown action %d", calcerr.ErrInvalidInput, a.Kind)
}

// Run applies actions in order and stops at the first failure, returning the
// last good state with the error.
func Run(s State, actions ...Action) (State, error) {
	for _, a := range actions {
		next, err := Evaluate(s, a)
		if err != nil {
			return s, err
		}
		s = next
	}
	return s, nil
}

func inputDigit(s State, d byte) (State, error) {
	if d < '0' || d > '9' {
		return s, fmt.Errorf("%w: %q is not a digit", calcerr.ErrInvalidInput, d)
	}

	next := s
	switch {
	case s.AwaitingNewOperand:
		next.Display = string(d)
		next.AwaitingNewOperand = false
	case s.Display == "0":
		next.Display = string(d)
	case s.Display == "-0":
		next.Display = "-" + string(d)
	default:
		next.Display = s.Display + string(d)
	}

	if v, err := strconv.ParseFloat(next.Display, 64); err != nil || math.IsInf(v, 0) {
		return s, fmt.Errorf("%w: %s", calcerr.ErrOverflow, next.Display)
	}
	return next, nil
}

func inputDecimal(s State) State {
	next := s
	if s.AwaitingNewOperand {
		next.Display = "0."
		next.AwaitingNewOperand = false
	} else if !strings.Contains(s.Display, ".") {
		next.Display = s.Display + "."
	}
	return next
}

func toggleSign(s State) State {
	next := s
	if strings.HasPrefix(s.Display, "-") {
		next.Display = s.Display[1:]
	} else {
		next.Display = "-" + s.Display
	}
	return next
}

func percent(s State) (State, error) {
	v, err := s.Value()
	if err != nil {
		return s, err
	}
	return State{Display: FormatNumber(v / constants.PercentageMultiplier)}, nil
}

func operator(s State, op Operator) (State, error) {
	if !op.Valid() {
		return s, fmt.Errorf("%w: unknown operator %q", calcerr.ErrInvalidInput, string(op))
	}
	operand, err := s.Value()
	if err != nil {
		return s, err
	}

	next := s
	if s.PendingValue != nil && s.PendingOperator != OpNone {
		folded, err := s.PendingOperator.Apply(*s.PendingValue, operand)
		if err != nil {
			return s, err
		}
		operand = folded
		next.Display = FormatNumber(folded)
	}

	next.PendingValue = &operand
	next.PendingOperator = op
	next.AwaitingNewOperand = true
	return next, nil
}

func equals(s State) (State, error) {
	if s.PendingValue == nil || s.PendingOperator == OpNone {
		return s, nil
	}
	operand, err := s.Value()
	if err != nil {
		return s, err
	}
	result, err := s.PendingOperator.Apply(*s.PendingValue, operand)
	if err != nil {
		return s, err
	}
	return State{Display: FormatNumber(result), AwaitingNewOperand: true}, nil
}
