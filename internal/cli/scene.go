package cli

import (
	"fmt"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/codex-k8s/attrorder/internal/scene"
	"github.com/codex-k8s/attrorder/internal/state"
)

// newSceneCommand groups the commands that author the scene file.
func newSceneCommand(opts *Options) *cobra.Command {
	return newGroupCommand("scene", "Create and edit the scene file",
		newSceneInitCommand(opts),
		newAddObjectCommand(opts),
		newAddAttrCommand(opts),
		newLockCommand(opts, true),
		newLockCommand(opts, false),
	)
}

func newSceneInitCommand(opts *Options) *cobra.Command {
	var force bool

	cmd := &cobra.Command{
		Use:   "init",
		Short: "Create an empty scene file",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			logger := LoggerFromContext(cmd.Context())

			st, err := state.NewStore(opts.ScenePath, logger)
			if err != nil {
				return err
			}
			exists, err := st.Exists()
			if err != nil {
				return err
			}
			if exists && !force {
				return fmt.Errorf("scene file %q already exists, use --force to overwrite", st.Path())
			}
			if err := st.Save(scene.New(sceneOptions(logger))); err != nil {
				return err
			}
			logger.Info("scene initialized", "path", st.Path())
			return nil
		},
	}

	cmd.Flags().BoolVar(&force, "force", false, "Overwrite an existing scene file")
	return cmd
}

func newAddObjectCommand(opts *Options) *cobra.Command {
	var builtin string

	cmd := &cobra.Command{
		Use:   "add-object NAME",
		Short: "Add an object to the scene",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return editScene(cmd, opts, func(sc *scene.Scene) error {
				return sc.AddObject(args[0], parseNameList(builtin)...)
			})
		},
	}

	cmd.Flags().StringVar(&builtin, "builtin", "", "Built-in attribute names (comma-separated)")
	return cmd
}

func newAddAttrCommand(opts *Options) *cobra.Command {
	var (
		value  string
		locked bool
	)

	cmd := &cobra.Command{
		Use:   "add-attr OBJECT NAME",
		Short: "Append a user-defined attribute to an object",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			attr := scene.Attribute{Name: args[1], Locked: locked}
			if cmd.Flags().Changed("value") {
				// Scalars keep their YAML type so numbers stay numbers in the scene file.
				var v any
				if err := yaml.Unmarshal([]byte(value), &v); err != nil {
					return fmt.Errorf("parse --value: %w", err)
				}
				attr.Value = v
			}
			return editScene(cmd, opts, func(sc *scene.Scene) error {
				return sc.AddAttribute(args[0], attr)
			})
		},
	}

	cmd.Flags().StringVar(&value, "value", "", "Attribute value (YAML scalar)")
	cmd.Flags().BoolVar(&locked, "locked", false, "Create the attribute locked")
	return cmd
}

func newLockCommand(opts *Options, lock bool) *cobra.Command {
	use, short := "lock", "Lock a user-defined attribute"
	if !lock {
		use, short = "unlock", "Unlock a user-defined attribute"
	}

	return &cobra.Command{
		Use:   use + " OBJECT ATTRIBUTE",
		Short: short,
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return editScene(cmd, opts, func(sc *scene.Scene) error {
				if _, ok := sc.Attribute(args[0], args[1]); !ok {
					return fmt.Errorf("%s.%s: %w", args[0], args[1], scene.ErrNotFound)
				}
				return sc.SetLocked(args[0], args[1], lock)
			})
		},
	}
}

// editScene loads the scene, applies fn and saves the result.
func editScene(cmd *cobra.Command, opts *Options, fn func(*scene.Scene) error) error {
	logger := LoggerFromContext(cmd.Context())

	st, sc, err := openScene(opts, logger)
	if err != nil {
		return err
	}
	if err := fn(sc); err != nil {
		return err
	}
	return st.Save(sc)
}
