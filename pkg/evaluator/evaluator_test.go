package evaluator

import (
	"errors"
	"math"
	"strconv"
	"testing"

	"github.com/iwvelando/fincalc/pkg/calcerr"
)

func mustRun(t *testing.T, tokens ...string) State {
	t.Helper()
	actions, err := ParseActions(tokens)
	if err != nil {
		t.Fatalf("ParseActions(%v) error = %v", tokens, err)
	}
	s, err := Run(Initial(), actions...)
	if err != nil {
		t.Fatalf("Run(%v) error = %v", tokens, err)
	}
	return s
}

func TestEvaluateSequences(t *testing.T) {
	tests := []struct {
		name     string
		tokens   []string
		expected string
	}{
		{"Single digit", []string{"7"}, "7"},
		{"Leading zero replaced", []string{"0", "5"}, "5"},
		{"Multi digit", []string{"1", "2", "3"}, "123"},
		{"Addition", []string{"2", "+", "3", "="}, "5"},
		{"Subtraction below zero", []string{"2", "-", "9", "="}, "-7"},
		{"Multiplication", []string{"6", "×", "7", "="}, "42"},
		{"Division", []string{"1", "÷", "4", "="}, "0.25"},
		{"Left to right without precedence", []string{"3", "+", "4", "×", "2", "="}, "14"},
		{"Chain shows intermediate result", []string{"3", "+", "4", "×"}, "7"},
		{"Decimal entry", []string{"1", ".", "5", "+", "1", "="}, "2.5"},
		{"Second decimal point ignored", []string{"1", ".", ".", "5"}, "1.5"},
		{"Decimal starts new operand", []string{"2", "+", ".", "5", "="}, "2.5"},
		{"Percent", []string{"5", "0", "%"}, "0.5"},
		{"Toggle sign", []string{"8", "±"}, "-8"},
		{"Toggle sign twice", []string{"8", "±", "±"}, "8"},
		{"Toggle then digit", []string{"±", "4"}, "-4"},
		{"Keyboard aliases", []string{"9", "*", "3", "/", "2", "Enter"}, "13.5"},
		{"Number tokens", []string{"12", "+", "0.5", "="}, "12.5"},
		{"Equals without operator", []string{"4", "2", "="}, "42"},
		{"New digit after equals", []string{"2", "+", "2", "=", "9"}, "9"},
		{"Large integer round trip", []string{"9", "0", "0", "7", "1", "9", "9", "2", "5", "4", "7", "4", "0", "9", "9", "1"}, "9007199254740991"},
		{"Float noise kept in decimal notation", []string{"0.1", "+", "0.2", "="}, "0.30000000000000004"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := mustRun(t, tt.tokens...)
			if s.Display != tt.expected {
				t.Errorf("Display = %q, expected %q", s.Display, tt.expected)
			}
		})
	}
}

func TestClearOnInitialIsIdentity(t *testing.T) {
	s, err := Evaluate(Initial(), Clear())
	if err != nil {
		t.Fatalf("Evaluate() error = %v", err)
	}
	if !s.Equal(Initial()) {
		t.Errorf("Clear on initial = %+v, expected %+v", s, Initial())
	}
}

func TestClearResetsEverything(t *testing.T) {
	s := mustRun(t, "5", "+", "3", "C")
	if !s.Equal(Initial()) {
		t.Errorf("state after clear = %+v, expected initial", s)
	}
}

func TestOperatorStoresPendingState(t *testing.T) {
	s := mustRun(t, "1", "2", "+")

	if s.PendingValue == nil || *s.PendingValue != 12 {
		t.Fatalf("PendingValue = %v, expected 12", s.PendingValue)
	}
	if s.PendingOperator != OpAdd {
		t.Errorf("PendingOperator = %q, expected %q", s.PendingOperator, OpAdd)
	}
	if !s.AwaitingNewOperand {
		t.Error("AwaitingNewOperand should be set after an operator")
	}
	if s.Display != "12" {
		t.Errorf("Display = %q, expected 12", s.Display)
	}
}

func TestEqualsClearsPendingState(t *testing.T) {
	s := mustRun(t, "4", "÷", "2", "=")

	if s.PendingValue != nil || s.PendingOperator != OpNone {
		t.Errorf("pending state not cleared: %+v", s)
	}
	if !s.AwaitingNewOperand {
		t.Error("AwaitingNewOperand should be set after equals")
	}
}

func TestPercentResetsChain(t *testing.T) {
	s := mustRun(t, "2", "0", "0", "+", "5", "%")

	if s.Display != "0.05" {
		t.Errorf("Display = %q, expected 0.05", s.Display)
	}
	if s.PendingValue != nil || s.PendingOperator != OpNone {
		t.Errorf("percent should drop the pending operation: %+v", s)
	}

	// Equals after percent is a no-op.
	after, err := Evaluate(s, Equals())
	if err != nil {
		t.Fatalf("Evaluate() error = %v", err)
	}
	if !after.Equal(s) {
		t.Errorf("Equals after percent changed state: %+v", after)
	}
}

func TestDivisionByZeroPreservesState(t *testing.T) {
	tests := []struct {
		name   string
		tokens []string
		final  Action
	}{
		{"Equals", []string{"8", "÷", "0"}, Equals()},
		{"Chained operator", []string{"8", "÷", "0"}, Op(OpAdd)},
		{"Zero from decimal entry", []string{"8", "÷", "0", ".", "0"}, Equals()},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			before := mustRun(t, tt.tokens...)
			after, err := Evaluate(before, tt.final)
			if !errors.Is(err, calcerr.ErrDivisionByZero) {
				t.Fatalf("Evaluate() error = %v, expected ErrDivisionByZero", err)
			}
			if !after.Equal(before) {
				t.Errorf("state changed on failure: before %+v, after %+v", before, after)
			}

			// The calculator keeps working after the error.
			recovered, err := Run(after, Clear(), Digit('3'))
			if err != nil || recovered.Display != "3" {
				t.Errorf("recovery = %+v, %v", recovered, err)
			}
		})
	}
}

func TestRunStopsAtFirstError(t *testing.T) {
	actions := []Action{Digit('1'), Op(OpDivide), Digit('0'), Equals(), Digit('5')}
	s, err := Run(Initial(), actions...)
	if !errors.Is(err, calcerr.ErrDivisionByZero) {
		t.Fatalf("Run() error = %v, expected ErrDivisionByZero", err)
	}
	if s.Display != "0" || s.PendingOperator != OpDivide {
		t.Errorf("Run() returned %+v, expected the state before equals", s)
	}
}

func TestOverflowIsRejected(t *testing.T) {
	s := Initial()
	var err error
	for i := 0; i < 400 && err == nil; i++ {
		var next State
		next, err = Evaluate(s, Digit('9'))
		if err == nil {
			s = next
		}
	}
	if !errors.Is(err, calcerr.ErrOverflow) {
		t.Fatalf("expected ErrOverflow when entering too many digits, got %v", err)
	}
	if v, perr := strconv.ParseFloat(s.Display, 64); perr != nil || math.IsInf(v, 0) {
		t.Errorf("display %q is not finite after overflow", s.Display)
	}

	before, err := Run(s, Op(OpMultiply), Digit('9'))
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	after, err := Evaluate(before, Equals())
	if !errors.Is(err, calcerr.ErrOverflow) {
		t.Fatalf("expected ErrOverflow on multiply, got %v", err)
	}
	if !after.Equal(before) {
		t.Errorf("state changed on overflow: %+v", after)
	}
}

func TestDisplayAlwaysFinite(t *testing.T) {
	keys := []string{"7", "0", ".", "±", "%", "+", "-", "×", "÷", "=", "C", "3"}
	s := Initial()
	// Deterministic pseudo-random walk over the keypad.
	seed := uint32(2463534242)
	for i := 0; i < 5000; i++ {
		seed ^= seed << 13
		seed ^= seed >> 17
		seed ^= seed << 5
		a, err := ParseAction(keys[seed%uint32(len(keys))])
		if err != nil {
			t.Fatalf("ParseAction() error = %v", err)
		}
		next, err := Evaluate(s, a)
		if err != nil {
			if !next.Equal(s) {
				t.Fatalf("step %d: failed action %s changed state", i, a)
			}
			continue
		}
		s = next

		v, perr := strconv.ParseFloat(s.Display, 64)
		if perr != nil || math.IsInf(v, 0) || math.IsNaN(v) {
			t.Fatalf("step %d: display %q is not a finite number", i, s.Display)
		}
		if s.PendingOperator != OpNone && s.PendingValue == nil {
			t.Fatalf("step %d: pending operator without pending value", i)
		}
	}
}

func TestParseAction(t *testing.T) {
	tests := []struct {
		token    string
		expected Action
	}{
		{"0", Digit('0')},
		{"9", Digit('9')},
		{".", Decimal()},
		{"C", Clear()},
		{"Escape", Clear()},
		{"±", ToggleSign()},
		{"%", Percent()},
		{"+", Op(OpAdd)},
		{"-", Op(OpSubtract)},
		{"*", Op(OpMultiply)},
		{"×", Op(OpMultiply)},
		{"/", Op(OpDivide)},
		{"÷", Op(OpDivide)},
		{"=", Equals()},
		{"Enter", Equals()},
	}

	for _, tt := range tests {
		t.Run(tt.token, func(t *testing.T) {
			got, err := ParseAction(tt.token)
			if err != nil {
				t.Fatalf("ParseAction(%q) error = %v", tt.token, err)
			}
			if got != tt.expected {
				t.Errorf("ParseAction(%q) = %+v, expected %+v", tt.token, got, tt.expected)
			}
		})
	}

	if _, err := ParseAction("sqrt"); !errors.Is(err, calcerr.ErrInvalidInput) {
		t.Errorf("ParseAction(sqrt) error = %v, expected ErrInvalidInput", err)
	}
}

func TestInvalidActions(t *testing.T) {
	s := Initial()
	if _, err := Evaluate(s, Digit('a')); !errors.Is(err, calcerr.ErrInvalidInput) {
		t.Errorf("Digit('a') error = %v, expected ErrInvalidInput", err)
	}
	if _, err := Evaluate(s, Op(Operator("^"))); !errors.Is(err, calcerr.ErrInvalidInput) {
		t.Errorf("Op(^) error = %v, expected ErrInvalidInput", err)
	}
	if _, err := Evaluate(s, Action{}); !errors.Is(err, calcerr.ErrInvalidInput) {
		t.Errorf("zero Action error = %v, expected ErrInvalidInput", err)
	}
}

func TestFormatNumber(t *testing.T) {
	tests := []struct {
		input    float64
		expected string
	}{
		{0, "0"},
		{math.Copysign(0, -1), "0"},
		{14, "14"},
		{-7, "-7"},
		{0.25, "0.25"},
		{1e21, "1000000000000000000000"},
		{1.5e-7, "0.00000015"},
	}

	for _, tt := range tests {
		if got := FormatNumber(tt.input); got != tt.expected {
			t.Errorf("FormatNumber(%v) = %q, expected %q", tt.input, got, tt.expected)
		}
	}
}
