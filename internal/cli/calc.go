package cli

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/Davincible/gf256/internal/validation"
	"github.com/Davincible/gf256/pkg/gf256"
	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

// CalcResult is the --json output of calc.
type CalcResult struct {
	Op         string `json:"op"`
	A          int    `json:"a"`
	B          *int   `json:"b,omitempty"`
	Result     int    `json:"result"`
	Hex        string `json:"hex"`
	Polynomial string `json:"polynomial"`
}

type calcOp struct {
	symbol string
	binary bool
	// run gets b already parsed as an element, or as an exponent for pow.
	// exp receives its only operand, an exponent, in b.
	run func(f *gf256.Field, a byte, b int) (int, error)
}

var calcOps = map[string]calcOp{
	"add": {"+", true, func(f *gf256.Field, a byte, b int) (int, error) {
		return int(f.Add(a, byte(b))), nil
	}},
	"sub": {"-", true, func(f *gf256.Field, a byte, b int) (int, error) {
		return int(f.Sub(a, byte(b))), nil
	}},
	"mul": {"*", true, func(f *gf256.Field, a byte, b int) (int, error) {
		return int(f.Mul(a, byte(b))), nil
	}},
	"div": {"/", true, func(f *gf256.Field, a byte, b int) (int, error) {
		r, err := f.Div(a, byte(b))
		return int(r), err
	}},
	"pow": {"^", true, func(f *gf256.Field, a byte, n int) (int, error) {
		r, err := f.Pow(a, n)
		return int(r), err
	}},
	"inv": {"inv", false, func(f *gf256.Field, a byte, _ int) (int, error) {
		r, err := f.Inverse(a)
		return int(r), err
	}},
	"log": {"log", false, func(f *gf256.Field, a byte, _ int) (int, error) {
		return f.Log(a)
	}},
	"exp": {"exp", false, func(f *gf256.Field, _ byte, n int) (int, error) {
		return int(f.Exp(n)), nil
	}},
}

func NewCalcCommand() *cobra.Command {
	var ff fieldFlags

	cmd := &cobra.Command{
		Use:   "calc <op> <a> [b]",
		Short: "Evaluate a single field operation",
		Long: `Evaluate one field operation. Binary operations: add, sub, mul, div,
pow (b is a signed exponent, put -- before a negative one). Unary
operations: inv, log, exp (a is a signed exponent for exp and is
reduced modulo 255).

Operands accept decimal, 0x hex, 0b binary or 0o octal.`,
		Example: `  gf256 calc mul 0x53 0xca
  gf256 calc pow 2 -- -1
  gf256 calc inv 0x8e --json
  gf256 calc exp -- -1`,
		Args: cobra.RangeArgs(2, 3),
		RunE: func(cmd *cobra.Command, args []string) error {
			f, err := resolveField(&ff)
			if err != nil {
				return err
			}

			res, err := runCalc(f, args)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if jsonFlag(cmd) {
				enc := json.NewEncoder(out)
				enc.SetIndent("", "  ")
				return enc.Encode(res)
			}

			green := color.New(color.FgGreen, color.Bold)
			op := calcOps[res.Op]
			if res.B != nil {
				fmt.Fprintf(out, "0x%02x %s %s = ", res.A, op.symbol, formatOperand(res.Op, *res.B))
			} else {
				fmt.Fprintf(out, "%s(%s) = ", op.symbol, formatOperand(res.Op, res.A))
			}
			green.Fprintf(out, "%s", res.Hex)
			fmt.Fprintf(out, " (%d)\n", res.Result)
			return nil
		},
	}

	addFieldFlags(cmd, &ff)
	return cmd
}

func runCalc(f *gf256.Field, args []string) (*CalcResult, error) {
	name := strings.ToLower(args[0])
	op, ok := calcOps[name]
	if !ok {
		return nil, fmt.Errorf("unknown operation %q", args[0])
	}

	if op.binary && len(args) != 3 {
		return nil, fmt.Errorf("%s takes two operands", name)
	}
	if !op.binary && len(args) != 2 {
		return nil, fmt.Errorf("%s takes one operand", name)
	}

	res := &CalcResult{
		Op:         name,
		Polynomial: fmt.Sprintf("0x%x", f.Polynomial()),
	}

	var (
		a   byte
		b   int
		err error
	)
	if name == "exp" {
		if b, err = validation.ParseExponent(args[1]); err != nil {
			return nil, err
		}
		res.A = b
	} else {
		if a, err = validation.ParseElement(args[1]); err != nil {
			return nil, err
		}
		res.A = int(a)
	}

	if op.binary {
		if name == "pow" {
			b, err = validation.ParseExponent(args[2])
		} else {
			var e byte
			e, err = validation.ParseElement(args[2])
			b = int(e)
		}
		if err != nil {
			return nil, err
		}
		res.B = &b
	}

	r, err := op.run(f, a, b)
	if err != nil {
		return nil, fmt.Errorf("%s failed: %w", name, err)
	}

	res.Result = r
	res.Hex = fmt.Sprintf("0x%02x", r)
	return res, nil
}

func formatOperand(op string, b int) string {
	if op == "pow" || op == "exp" {
		return fmt.Sprintf("%d", b)
	}
	return fmt.Sprintf("0x%02x", b)
}
