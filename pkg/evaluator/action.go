package evaluator

import (
	"fmt"
	"strings"

	"github.com/iwvelando/fincalc/pkg/calcerr"
)

// ActionKind identifies a calculator input.
type ActionKind int

// Action kinds.
const (
	ActionDigit ActionKind = iota + 1
	ActionDecimal
	ActionClear
	ActionToggleSign
	ActionPercent
	ActionOperator
	ActionEquals
)

// Action is a single calculator input. Digit is set for ActionDigit and
// Operator for ActionOperator.
type Action struct {
	Kind     ActionKind
	Digit    byte
	Operator Operator
}

// Digit enters a single digit '0'..'9'.
func Digit(d byte) Action { return Action{Kind: ActionDigit, Digit: d} }

// Decimal enters a decimal point.
func Decimal() Action { return Action{Kind: ActionDecimal} }

// Clear resets the calculator.
func Clear() Action { return Action{Kind: ActionClear} }

// ToggleSign flips the sign of the display.
func ToggleSign() Action { return Action{Kind: ActionToggleSign} }

// Percent divides the display by 100 and drops any pending operation.
func Percent() Action { return Action{Kind: ActionPercent} }

// Op selects a binary operator, folding any pending operation first.
func Op(op Operator) Action { return Action{Kind: ActionOperator, Operator: op} }

// Equals completes the pending operation.
func Equals() Action { return Action{Kind: ActionEquals} }

// String renders the action as its key label.
func (a Action) String() string {
	switch a.Kind {
	case ActionDigit:
		return string(a.Digit)
	case ActionDecimal:
		return "."
	case ActionClear:
		return "C"
	case ActionToggleSign:
		return "±"
	case ActionPercent:
		return "%"
	case ActionOperator:
		return string(a.Operator)
	case ActionEquals:
		return "="
	}
	return fmt.Sprintf("Action(%d)", int(a.Kind))
}

// ParseAction maps a key label or keyboard key to an action. Keyboard
// aliases such as "*", "/", "Enter" and "Escape" are accepted.
func ParseAction(token string) (Action, error) {
	token = strings.TrimSpace(token)
	if len(token) == 1 && token[0] >= '0' && token[0] <= '9' {
		return Digit(token[0]), nil
	}

	switch token {
	case ".", ",":
		return Decimal(), nil
	case "C", "c", "AC", "Escape", "clear":
		return Clear(), nil
	case "±", "+/-", "neg":
		return ToggleSign(), nil
	case "%":
		return Percent(), nil
	case "+":
		return Op(OpAdd), nil
	case "-", "−":
		return Op(OpSubtract), nil
	case "×", "*", "x", "X":
		return Op(OpMultiply), nil
	case "÷", "/":
		return Op(OpDivide), nil
	case "=", "Enter":
		return Equals(), nil
	}
	return Action{}, fmt.Errorf("%w: unrecognized key %q", calcerr.ErrInvalidInput, token)
}

// ParseActions parses a sequence of tokens. Multi-digit tokens such as "42"
// or "3.5" expand into one action per character.
func ParseActions(tokens []string) ([]Action, error) {
	var actions []Action
	for _, token := range tokens {
		token = strings.TrimSpace(token)
		if token == "" {
			continue
		}
		if isNumberToken(token) {
			for i := 0; i < len(token); i++ {
				a, err := ParseAction(token[i : i+1])
				if err != nil {
					return nil, err
				}
				actions = append(actions, a)
			}
			continue
		}
		a, err := ParseAction(token)
		if err != nil {
			return nil, err
		}
		actions = append(actions, a)
	}
	return actions, nil
}

func isNumberToken(token string) bool {
	if len(token) < 2 {
		return false
	}
	for i := 0; i < len(token); i++ {
		c := token[i]
		if (c < '0' || c > '9') && c != '.' {
			return false
		}
	}
	return true
}
