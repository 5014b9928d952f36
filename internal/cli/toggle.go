package cli

import (
	"github.com/spf13/cobra"

	"github.com/sherif414/floattree/pkg/errors"
	"github.com/sherif414/floattree/pkg/floating"
)

// openCommand creates the "open" command.
func (c *CLI) openCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "open <snapshot> <node>",
		Short: "Open an element",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.toggle(cmd, args[0], args[1], true)
		},
	}
}

// closeCommand creates the "close" command.
func (c *CLI) closeCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "close <snapshot> <node>",
		Short: "Close an element and cascade to its open descendants",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.toggle(cmd, args[0], args[1], false)
		},
	}
}

// toggle applies an open state change with full cascade semantics and
// reports every element whose state changed.
func (c *CLI) toggle(cmd *cobra.Command, id, nodeID string, open bool) error {
	return c.updateSnapshot(cmd, id, func(coord *floating.Coordinator) error {
		// Watch every element so cascade closes are visible in the output.
		var changed []string
		for _, n := range coord.Tree().Nodes() {
			watchedID := n.ID()
			coord.Subscribe(watchedID, func(bool) {
				changed = append(changed, watchedID)
			})
		}

		if !coord.SetOpen(nodeID, open) {
			return errors.New(errors.ErrCodeNodeNotFound, "node %q does not exist", nodeID)
		}

		if len(changed) == 0 {
			printInfo("No change: %q was already in that state", nodeID)
			return nil
		}

		verb := "Opened"
		if !open {
			verb = "Closed"
		}
		printSuccess("%s %q", verb, nodeID)
		for _, cid := range changed[1:] {
			printDetail("cascade closed %s", cid)
		}
		return nil
	})
}
