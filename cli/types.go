package cli

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/flowlens/flowlens/flow"
	"github.com/flowlens/flowlens/report"
)

func typesCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "types <flow.json>",
		Short: "List the distinct processor types in a flow export",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if _, _, err := opts.setup(); err != nil {
				return err
			}
			result, err := flow.ExtractFile(args[0])
			if err != nil {
				return err
			}
			if !result.Recognized() {
				report.PrintSummary(os.Stdout, result)
				return nil
			}
			report.PrintTypes(os.Stdout, result)
			return nil
		},
	}
}
