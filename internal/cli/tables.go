package cli

import (
	"encoding/hex"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/Davincible/gf256/internal/validation"
	"github.com/Davincible/gf256/pkg/config"
	"github.com/Davincible/gf256/pkg/gf256"
	"github.com/Davincible/gf256/pkg/storage"
	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

func NewTablesCommand() *cobra.Command {
	var (
		ff     fieldFlags
		format string
		out    string
		save   bool
		digest bool
	)

	cmd := &cobra.Command{
		Use:   "tables",
		Short: "Print or store the exp and log tables",
		Long: `Print the exp and log tables of the field as hex, Go source or JSON.

With --out (or --save, which uses the configured default path) the
tables are written to a checksummed JSON file that 'gf256 verify' can
check later.`,
		Example: `  gf256 tables --format go
  gf256 tables --digest
  gf256 tables --poly 0x11b --generator 3 --out aes.json`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			if !cmd.Flags().Changed("format") {
				format = cfg.Tables.Format
			}
			if err := validation.ValidateTableFormat(format); err != nil {
				return err
			}

			f, err := resolveField(&ff)
			if err != nil {
				return err
			}

			w := cmd.OutOrStdout()

			if digest {
				fmt.Fprintln(w, storage.Fingerprint(f))
				return nil
			}

			if save && out == "" {
				out = cfg.Tables.DefaultOut
			}
			if out != "" {
				path, err := config.ExpandHome(out)
				if err != nil {
					return err
				}
				if err := storage.NewTableStore(path).Save(f); err != nil {
					return fmt.Errorf("failed to save tables: %w", err)
				}
				slog.Debug("Saved tables", "path", path)

				green := color.New(color.FgGreen, color.Bold)
				green.Fprintf(w, "✓ Tables written to %s\n", path)
				fmt.Fprintf(w, "  Digest: %s\n", storage.Fingerprint(f))
				return nil
			}

			return writeTables(w, f, format)
		},
	}

	addFieldFlags(cmd, &ff)
	cmd.Flags().StringVarP(&format, "format", "f", "hex", "Output format: hex, go, json")
	cmd.Flags().StringVarP(&out, "out", "o", "", "Write a checksummed table file to this path")
	cmd.Flags().BoolVar(&save, "save", false, "Write the table file to the configured default path")
	cmd.Flags().BoolVar(&digest, "digest", false, "Print only the BLAKE2b-256 digest of the tables")

	return cmd
}

func writeTables(w io.Writer, f *gf256.Field, format string) error {
	exp := f.ExpTable()
	log := f.LogTable()

	switch format {
	case "hex":
		_, err := fmt.Fprintf(w, "exp: %s\nlog: %s\n", hex.EncodeToString(exp[:]), hex.EncodeToString(log[:]))
		return err

	case "json":
		// Encode as int arrays; []byte would marshal as base64.
		e := make([]int, len(exp))
		for i, v := range exp {
			e[i] = int(v)
		}
		l := make([]int, len(log))
		for i, v := range log {
			l[i] = int(v)
		}
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(map[string]any{
			"polynomial": f.Polynomial(),
			"generator":  f.Generator(),
			"exp":        e,
			"log":        l,
		})

	case "go":
		var b strings.Builder
		fmt.Fprintf(&b, "// Tables for %s (%s).\n", formatPolynomial(f.Polynomial()), f)
		b.WriteString("var (\n")
		writeGoArray(&b, "expTable", exp[:])
		writeGoArray(&b, "logTable", log[:])
		b.WriteString(")\n")
		_, err := io.WriteString(w, b.String())
		return err
	}

	return fmt.Errorf("unknown format %q", format)
}

func writeGoArray(b *strings.Builder, name string, table []byte) {
	fmt.Fprintf(b, "\t%s = [%d]byte{\n", name, len(table))
	for i := 0; i < len(table); i += 16 {
		b.WriteString("\t\t")
		end := min(i+16, len(table))
		for j := i; j < end; j++ {
			fmt.Fprintf(b, "0x%02x,", table[j])
			if j < end-1 {
				b.WriteByte(' ')
			}
		}
		b.WriteByte('\n')
	}
	b.WriteString("\t}\n")
}
