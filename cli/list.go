package cli

import (
	"fmt"
	"regexp"

	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"

	"dispatch-cost/suite"
)

func newListCommand() *cobra.Command {
	var filter string

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List the probes",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			var re *regexp.Regexp
			if filter != "" {
				var err error
				if re, err = regexp.Compile(filter); err != nil {
					return fmt.Errorf("bad filter %q: %w", filter, err)
				}
			}
			probes, err := suite.Select(suite.Probes(), re)
			if err != nil {
				return err
			}

			table := tablewriter.NewWriter(cmd.OutOrStdout())
			table.SetHeader([]string{"Probe", "Group", "Description"})
			table.SetAutoFormatHeaders(false)
			table.SetAutoWrapText(false)
			table.SetBorder(false)
			for _, p := range probes {
				table.Append([]string{p.Name, p.Group, p.Description})
			}
			table.Render()
			return nil
		},
	}

	cmd.Flags().StringVar(&filter, "filter", "", "regular expression selecting probes by name")
	return cmd
}
