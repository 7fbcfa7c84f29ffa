package cli

import (
	"github.com/spf13/cobra"
)

func NewDumpCommand() *cobra.Command {
	var ff fieldFlags

	cmd := &cobra.Command{
		Use:   "dump",
		Short: "Print every power of the generator",
		Long: `Walk the powers of the generator from 1, printing the index, the
binary form and the hex value of each of the 256 steps. Step 255
wraps back to 1.`,
		Example: `  gf256 dump
  gf256 dump --poly 0x11b --generator 3`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			f, err := resolveField(&ff)
			if err != nil {
				return err
			}
			return f.Dump(cmd.OutOrStdout())
		},
	}

	addFieldFlags(cmd, &ff)
	return cmd
}
