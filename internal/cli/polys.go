package cli

import (
	"encoding/json"
	"fmt"

	"github.com/Davincible/gf256/internal/validation"
	"github.com/Davincible/gf256/pkg/gf256"
	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

func NewPolysCommand() *cobra.Command {
	var generator string

	cmd := &cobra.Command{
		Use:   "polys",
		Short: "List the primitive polynomials for a generator",
		Long: `Search every degree-8 polynomial and list those under which the
generator reaches all 255 nonzero elements.`,
		Example: `  gf256 polys
  gf256 polys --generator 3 --json`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			gen, err := validation.ParseGenerator(generator)
			if err != nil {
				return err
			}

			polys := gf256.PrimitivePolynomials(gen)
			out := cmd.OutOrStdout()

			if jsonFlag(cmd) {
				hexes := make([]string, len(polys))
				for i, p := range polys {
					hexes[i] = fmt.Sprintf("0x%x", p)
				}
				return json.NewEncoder(out).Encode(hexes)
			}

			cyan := color.New(color.FgCyan, color.Bold)
			cyan.Fprintf(out, "%d primitive polynomials for generator 0x%02x\n\n", len(polys), gen)
			for _, p := range polys {
				fmt.Fprintf(out, "  0x%x  %09b  %s\n", p, p, formatPolynomial(p))
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&generator, "generator", "g", "2", "Generator element")
	return cmd
}
