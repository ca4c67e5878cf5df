package cli

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/JonMunkholm/tabconv/internal/host"
)

func (a *App) newFunctionsCmd() *cobra.Command {
	var noHeader bool

	cmd := &cobra.Command{
		Use:   "functions",
		Short: "List the host functions",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			w := tabwriter.NewWriter(a.OutWriter, 0, 0, 2, ' ', 0)
			if !noHeader {
				fmt.Fprintln(w, "NAME\tSIGNATURE\tDESCRIPTION")
			}
			for _, f := range host.Describe() {
				fmt.Fprintf(w, "%s\t%s\t%s\n", f.Name, f.Signature, f.Doc)
			}
			return w.Flush()
		},
	}

	cmd.Flags().BoolVar(&noHeader, "no-headers", false, "Hide table headers")
	return cmd
}
