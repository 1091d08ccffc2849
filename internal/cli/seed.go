package cli

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/simp-lee/storeadmin/internal/seed"
)

func newSeedCmd(s *session) *cobra.Command {
	return &cobra.Command{
		Use:   "seed",
		Short: "Write default data into empty collections",
		Long: `Seed writes the default records into every collection that is empty and
the default settings when none exist. Collections that already hold records
are left untouched.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			res, err := seed.Run(cmd.Context(), s.backend, time.Now(), s.log)
			if err != nil {
				return err
			}
			if s.jsonMode {
				return writeJSON(cmd.OutOrStdout(), res)
			}
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "seeded:  %s\n", joinOrNone(res.Seeded))
			fmt.Fprintf(out, "skipped: %s\n", joinOrNone(res.Skipped))
			return nil
		},
	}
}

func joinOrNone(names []string) string {
	if len(names) == 0 {
		return "(none)"
	}
	return strings.Join(names, ", ")
}
