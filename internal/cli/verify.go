package cli

import (
	"fmt"

	"github.com/Davincible/gf256/pkg/storage"
	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

func NewVerifyCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "verify [file]",
		Short: "Verify a stored table file",
		Long: `Check the checksum of a table file written by 'gf256 tables --out'
and confirm that its tables match a freshly built field.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			store := storage.NewTableStore(args[0])
			if !store.Exists() {
				return fmt.Errorf("table file %s does not exist", args[0])
			}

			f, err := store.Load()
			if err != nil {
				return fmt.Errorf("verification failed: %w", err)
			}

			green := color.New(color.FgGreen, color.Bold)
			yellow := color.New(color.FgYellow)
			out := cmd.OutOrStdout()

			green.Fprintln(out, "✓ Table file is valid")
			fmt.Fprintln(out)
			yellow.Fprintln(out, "Field details:")
			fmt.Fprintf(out, "  Polynomial: 0x%x (%s)\n", f.Polynomial(), formatPolynomial(f.Polynomial()))
			fmt.Fprintf(out, "  Generator:  0x%02x\n", f.Generator())
			fmt.Fprintf(out, "  Digest:     %s\n", storage.Fingerprint(f))

			return nil
		},
	}

	return cmd
}
