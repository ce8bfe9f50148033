package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

// newSelectCommand creates the "select" subcommand that replaces the current selection.
func newSelectCommand(opts *Options) *cobra.Command {
	var objects, attrs string

	cmd := &cobra.Command{
		Use:   "select",
		Short: "Set the selected objects and attributes used by up/down",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			logger := LoggerFromContext(cmd.Context())

			st, sc, err := openScene(opts, logger)
			if err != nil {
				return err
			}

			objList := parseNameList(objects)
			known := map[string]struct{}{}
			for _, name := range sc.Objects() {
				known[name] = struct{}{}
			}
			for _, name := range objList {
				if _, ok := known[name]; !ok {
					logger.Warn("selected object does not exist", "object", name)
				}
			}

			attrList := parseNameList(attrs)
			sc.Select(objList, attrList)
			if err := st.Save(sc); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "selected objects: %s; attributes: %s\n",
				strings.Join(objList, ","), strings.Join(attrList, ","))
			return nil
		},
	}

	cmd.Flags().StringVar(&objects, "objects", "", "Selected objects (comma-separated, in order)")
	cmd.Flags().StringVar(&attrs, "attrs", "", "Selected attributes (comma-separated, in selection order)")

	return cmd
}
