package main

import (
	"strings"

	"github.com/iwvelando/fincalc/pkg/evaluator"
	"github.com/spf13/cobra"
)

func (a *app) calcCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "calc <keys>...",
		Short: "Evaluate a calculator key sequence",
		Long: `Evaluate a sequence of calculator keys from left to right without operator
precedence. Keys are digits or numbers, ".", "+", "-", "*" or "×", "/" or "÷",
"%", "neg" or "±", "C" and "=". A single quoted argument is split on spaces.`,
		Example: `  fincalc calc 3 + 4 x 2 =
  fincalc calc "100 / 8 ="`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var tokens []string
			for _, arg := range args {
				tokens = append(tokens, strings.Fields(arg)...)
			}
			state, err := a.service.Evaluate(evaluator.Initial(), tokens)
			if err != nil {
				return err
			}
			return a.write(state)
		},
	}
}
