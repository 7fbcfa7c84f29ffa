package cli

import (
	"log/slog"
	"os"

	"github.com/Davincible/gf256/pkg/config"
	"github.com/spf13/cobra"
)

// NewRootCommand assembles the gf256 command tree.
func NewRootCommand(version string) *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "gf256",
		Short: "GF(2^8) field arithmetic for Reed-Solomon style codecs",
		Long: `gf256 builds exp/log tables for GF(2^8) under a primitive polynomial
and exposes the field operations on the command line.

Features:
- Configurable reduction polynomial and generator (default 0x11d, 2)
- Primitivity checking and primitive polynomial search
- Add, multiply, divide, inverse, power, log and exp
- Table export as hex, Go source or a checksummed JSON file`,
		Version:      version,
		SilenceUsage: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			verbose, _ := cmd.Flags().GetBool("verbose")
			if level, ok := logLevel(verbose); ok {
				slog.SetDefault(slog.New(slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{
					Level: level,
				})))
			}
		},
	}

	rootCmd.AddCommand(
		NewDumpCommand(),
		NewCalcCommand(),
		NewCheckCommand(),
		NewPolysCommand(),
		NewTablesCommand(),
		NewVerifyCommand(),
		NewConfigCommand(),
	)

	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "Enable verbose logging")
	rootCmd.PersistentFlags().BoolP("json", "j", false, "Output in JSON format")

	return rootCmd
}

// logLevel picks the slog level from --verbose and the configured
// verbosity. ok is false when the default handler should stay in place.
func logLevel(verbose bool) (level slog.Level, ok bool) {
	if verbose {
		return slog.LevelDebug, true
	}

	cm, err := config.NewConfigManager()
	if err != nil {
		// The command itself reports a broken config.
		return 0, false
	}

	switch cm.GetConfig().UI.Verbosity {
	case "verbose":
		return slog.LevelDebug, true
	case "quiet":
		return slog.LevelError, true
	}
	return 0, false
}
