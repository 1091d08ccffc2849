package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

// Version is the adminctl release, overridden at build time with -ldflags.
var Version = "0.1.0"

const modulePath = "github.com/simp-lee/storeadmin"

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the adminctl version",
		RunE: func(cmd *cobra.Command, args []string) error {
			fmt.Fprintf(cmd.OutOrStdout(), "adminctl v%s\nmodule: %s\n", Version, modulePath)
			return nil
		},
	}
}
