package cli

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"
)

// newListCommand creates the "list" subcommand that prints user-defined attributes in order.
func newListCommand(opts *Options) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "list [OBJECT...]",
		Short: "List user-defined attributes of objects (all objects by default)",
		RunE: func(cmd *cobra.Command, args []string) error {
			logger := LoggerFromContext(cmd.Context())

			_, sc, err := openScene(opts, logger)
			if err != nil {
				return err
			}

			objects := args
			if len(objects) == 0 {
				objects = sc.Objects()
			}

			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(w, "OBJECT\tINDEX\tATTRIBUTE\tLOCKED\tVALUE")
			for _, object := range objects {
				elems, err := sc.ListUserDefined(object)
				if err != nil {
					return err
				}
				for _, e := range elems {
					attr, _ := sc.Attribute(object, e.Name)
					value := "-"
					if attr.Value != nil {
						value = fmt.Sprint(attr.Value)
					}
					fmt.Fprintf(w, "%s\t%d\t%s\t%t\t%s\n", object, e.Index, e.Name, e.Locked, value)
				}
			}
			return w.Flush()
		},
	}

	return cmd
}
