package cli

import (
	stderrors "errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/sherif414/floattree/pkg/errors"
	"github.com/sherif414/floattree/pkg/floating"
	"github.com/sherif414/floattree/pkg/snapshot"
	"github.com/sherif414/floattree/pkg/store"
	"github.com/sherif414/floattree/pkg/tree"
)

// initCommand creates the "init" command for starting a new hierarchy.
func (c *CLI) initCommand() *cobra.Command {
	var rootLabel, rootID string

	cmd := &cobra.Command{
		Use:   "init <snapshot>",
		Short: "Create a new hierarchy with a root element",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id := args[0]
			if err := errors.ValidateSnapshotID(id); err != nil {
				return err
			}

			cfg, err := c.loadConfig()
			if err != nil {
				return err
			}

			coord := floating.New(&floating.Config{
				RootID:    rootID,
				RootLabel: rootLabel,
				Strategy:  cfg.DeleteStrategy(),
				Logger:    c.Logger,
			})

			st, err := c.newStore(cmd)
			if err != nil {
				return err
			}
			defer st.Close()

			snap := snapshot.FromCoordinator(coord)
			if err := st.Save(cmd.Context(), id, snap); err != nil {
				return err
			}

			printSuccess("Created hierarchy %q", id)
			printDetail("Root: %s", coord.Tree().Root().ID())
			printNextStep("Add elements", fmt.Sprintf("%s add %s <label> --parent %s", appName, id, coord.Tree().Root().ID()))
			return nil
		},
	}

	cmd.Flags().StringVar(&rootLabel, "label", "", "root element label")
	cmd.Flags().StringVar(&rootID, "root-id", "", "explicit root element ID (default generated)")
	return cmd
}

// addCommand creates the "add" command for registering an element.
func (c *CLI) addCommand() *cobra.Command {
	var parentID, nodeID string

	cmd := &cobra.Command{
		Use:   "add <snapshot> <label>",
		Short: "Add an element to a hierarchy",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, label := args[0], args[1]
			if err := errors.ValidateLabel(label); err != nil {
				return err
			}
			if nodeID != "" {
				if err := errors.ValidateNodeID(nodeID); err != nil {
					return err
				}
			}

			return c.updateSnapshot(cmd, id, func(coord *floating.Coordinator) error {
				parent := parentID
				if parent == "" {
					parent = coord.Tree().Root().ID()
				}

				var node *tree.Node[*floating.Panel]
				if nodeID != "" {
					node = coord.RegisterWithID(nodeID, label, parent)
				} else {
					node = coord.Register(label, parent)
				}
				if node == nil {
					return errors.New(errors.ErrCodeNodeNotFound, "parent %q does not exist", parent)
				}

				printSuccess("Added %q", label)
				printDetail("ID: %s", node.ID())
				return nil
			})
		},
	}

	cmd.Flags().StringVarP(&parentID, "parent", "p", "", "parent element ID (default root)")
	cmd.Flags().StringVar(&nodeID, "id", "", "explicit element ID (default generated)")
	return cmd
}

// removeCommand creates the "remove" command for unregistering an element.
func (c *CLI) removeCommand() *cobra.Command {
	var strategyFlag string

	cmd := &cobra.Command{
		Use:   "remove <snapshot> <node>",
		Short: "Remove an element from a hierarchy",
		Long: `Remove an element from a hierarchy.

With the "recursive" strategy (default) the element's entire subtree is
removed. With "orphan" the element's children are promoted to roots of
their own detached branches.`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, nodeID := args[0], args[1]

			return c.updateSnapshot(cmd, id, func(coord *floating.Coordinator) error {
				if strategyFlag != "" {
					strategy, ok := tree.ParseStrategy(strategyFlag)
					if !ok {
						return errors.New(errors.ErrCodeInvalidStrategy, "unknown strategy %q", strategyFlag)
					}
					if !coord.Tree().RemoveNodeWithStrategy(nodeID, strategy) {
						return errors.New(errors.ErrCodeNodeNotFound, "node %q does not exist or is the root", nodeID)
					}
				} else if !coord.Unregister(nodeID) {
					return errors.New(errors.ErrCodeNodeNotFound, "node %q does not exist or is the root", nodeID)
				}

				printSuccess("Removed %q", nodeID)
				return nil
			})
		},
	}

	cmd.Flags().StringVar(&strategyFlag, "strategy", "", "deletion strategy: recursive or orphan (default from config)")
	return cmd
}

// moveCommand creates the "move" command for reparenting an element.
func (c *CLI) moveCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "move <snapshot> <node> <new-parent>",
		Short: "Move an element under a new parent",
		Args:  cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, nodeID, parentID := args[0], args[1], args[2]

			return c.updateSnapshot(cmd, id, func(coord *floating.Coordinator) error {
				if !coord.Tree().MoveNode(nodeID, parentID) {
					return errors.New(errors.ErrCodeInvalidInput,
						"cannot move %q under %q (unknown node, unknown parent, or the move would create a cycle)", nodeID, parentID)
				}
				printSuccess("Moved %q under %q", nodeID, parentID)
				return nil
			})
		},
	}
}

// listCommand creates the "list" command for stored hierarchies.
func (c *CLI) listCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List stored hierarchies",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			st, err := c.newStore(cmd)
			if err != nil {
				return err
			}
			defer st.Close()

			ids, err := st.List(cmd.Context())
			if err != nil {
				return err
			}
			if len(ids) == 0 {
				printInfo("No hierarchies stored")
				printNextStep("Create one", fmt.Sprintf("%s init <name>", appName))
				return nil
			}
			for _, id := range ids {
				fmt.Println(id)
			}
			return nil
		},
	}
}

// deleteCommand creates the "delete" command for removing a stored hierarchy.
func (c *CLI) deleteCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "delete <snapshot>",
		Short: "Delete a stored hierarchy",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id := args[0]

			st, err := c.newStore(cmd)
			if err != nil {
				return err
			}
			defer st.Close()

			if _, err := st.Load(cmd.Context(), id); err != nil {
				return translateStoreErr(err, id)
			}
			if err := st.Delete(cmd.Context(), id); err != nil {
				return err
			}
			printSuccess("Deleted %q", id)
			return nil
		},
	}
}

// updateSnapshot loads a hierarchy, rebuilds its coordinator, applies fn,
// and persists the result. The coordinator restores open state without
// firing cascades, so edits never disturb stored visibility.
func (c *CLI) updateSnapshot(cmd *cobra.Command, id string, fn func(*floating.Coordinator) error) error {
	st, err := c.newStore(cmd)
	if err != nil {
		return err
	}
	defer st.Close()

	snap, err := st.Load(cmd.Context(), id)
	if err != nil {
		return translateStoreErr(err, id)
	}

	cfg, err := c.loadConfig()
	if err != nil {
		return err
	}
	coord, err := snapshot.ToCoordinator(snap, &floating.Config{
		Strategy: cfg.DeleteStrategy(),
		Logger:   c.Logger,
	})
	if err != nil {
		return errors.Wrap(errors.ErrCodeInvalidSnapshot, err, "stored hierarchy %q is invalid", id)
	}

	if err := fn(coord); err != nil {
		return err
	}

	loggerFromContext(cmd.Context()).Debug("Saving hierarchy", "id", id, "elements", coord.Tree().Size())
	return st.Save(cmd.Context(), id, snapshot.FromCoordinator(coord))
}

// translateStoreErr converts store sentinels into user-facing errors.
func translateStoreErr(err error, id string) error {
	if stderrors.Is(err, store.ErrNotFound) {
		return errors.New(errors.ErrCodeSnapshotNotFound, "hierarchy %q does not exist", id)
	}
	if stderrors.Is(err, store.ErrInvalidID) {
		return errors.New(errors.ErrCodeInvalidInput, "invalid hierarchy name %q", id)
	}
	return err
}
