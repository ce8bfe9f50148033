package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/codex-k8s/attrorder/internal/engine"
	"github.com/codex-k8s/attrorder/internal/report"
)

// newMoveCommand creates the "up" or "down" subcommand that moves the current selection.
func newMoveCommand(opts *Options, dir engine.Direction) *cobra.Command {
	var reportPath string

	cmd := &cobra.Command{
		Use:   dir.String(),
		Short: fmt.Sprintf("Move the selected attributes %s one position", dir),
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			logger := LoggerFromContext(cmd.Context())

			st, sc, err := openScene(opts, logger)
			if err != nil {
				return err
			}
			eng, err := newEngineFromOpts(opts, logger)
			if err != nil {
				return err
			}

			results, err := eng.MoveSelection(cmd.Context(), hostFor(sc, opts.Strategy), dir)
			if err != nil {
				if engine.IsHostPrimitiveFailure(err) {
					// Leave the scene file untouched after a fatal host failure.
					return err
				}
				logger.Debug("selection not fully moved", "error", err)
			}
			if len(results) == 0 {
				return nil
			}

			if err := st.Save(sc); err != nil {
				return err
			}
			orderings := make(map[string]string, len(results))
			for _, res := range results {
				logger.Info("attributes moved", "object", res.Object, "direction", dir.String(), "strategy", string(res.Strategy))
				fmt.Fprintf(cmd.OutOrStdout(), "%s: %s\n", res.Object, strings.Join(res.Ordering, " "))
				orderings[res.Object] = strings.Join(res.Ordering, ",")
			}

			if reportPath == "" {
				reportPath = opts.ReportPath
			}
			return report.Write(reportPath, orderings)
		},
	}

	cmd.Flags().StringVar(&reportPath, "report", "", "Append object=ordering lines to this file")
	return cmd
}
