package cli

import (
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/Davincible/gf256/internal/validation"
	"github.com/Davincible/gf256/pkg/config"
	"github.com/Davincible/gf256/pkg/gf256"
	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"golang.org/x/term"
)

// fieldFlags holds the --poly and --generator values shared by commands
// that operate on a field.
type fieldFlags struct {
	poly      string
	generator string
}

func addFieldFlags(cmd *cobra.Command, ff *fieldFlags) {
	cmd.Flags().StringVarP(&ff.poly, "poly", "p", "", "Reduction polynomial (e.g. 0x11d, 285, 0x1d)")
	cmd.Flags().StringVarP(&ff.generator, "generator", "g", "", "Generator element (default from config, usually 2)")
}

// loadConfig reads the user's config file and applies its UI settings.
func loadConfig() (*config.Config, error) {
	cm, err := config.NewConfigManager()
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	cfg := cm.GetConfig()
	setupColor(cfg)
	return cfg, nil
}

func setupColor(cfg *config.Config) {
	if !cfg.UI.UseColor || !term.IsTerminal(int(os.Stdout.Fd())) {
		color.NoColor = true
	}
}

// resolveField builds the field named by the flags, falling back to the
// configured defaults for anything not given.
func resolveField(ff *fieldFlags) (*gf256.Field, error) {
	poly, gen, err := fieldParams(ff)
	if err != nil {
		return nil, err
	}

	f, err := gf256.New(gf256.WithPolynomial(poly), gf256.WithGenerator(gen))
	if err != nil {
		return nil, err
	}

	slog.Debug("Built field", "polynomial", fmt.Sprintf("0x%x", poly), "generator", gen)
	return f, nil
}

// fieldParams resolves the polynomial and generator without building the
// field.
func fieldParams(ff *fieldFlags) (uint16, byte, error) {
	cfg, err := loadConfig()
	if err != nil {
		return 0, 0, err
	}

	poly, gen := cfg.Field.Polynomial, cfg.Field.Generator
	if ff.poly != "" {
		if poly, err = validation.ParsePolynomial(ff.poly); err != nil {
			return 0, 0, err
		}
	}
	if ff.generator != "" {
		if gen, err = validation.ParseGenerator(ff.generator); err != nil {
			return 0, 0, err
		}
	}
	return poly, gen, nil
}

// formatPolynomial renders p in x^n notation, highest degree first.
func formatPolynomial(p uint16) string {
	var terms []string
	for deg := 8; deg >= 0; deg-- {
		if p&(1<<deg) == 0 {
			continue
		}
		switch deg {
		case 0:
			terms = append(terms, "1")
		case 1:
			terms = append(terms, "x")
		default:
			terms = append(terms, fmt.Sprintf("x^%d", deg))
		}
	}
	if len(terms) == 0 {
		return "0"
	}
	return strings.Join(terms, " + ")
}

func jsonFlag(cmd *cobra.Command) bool {
	v, err := cmd.Flags().GetBool("json")
	return err == nil && v
}
