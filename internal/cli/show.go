package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

// showCommand creates the "show" command for printing a hierarchy.
func (c *CLI) showCommand() *cobra.Command {
	var idsOnly bool

	cmd := &cobra.Command{
		Use:   "show <snapshot>",
		Short: "Print a hierarchy with its open state",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id := args[0]

			st, err := c.newStore(cmd)
			if err != nil {
				return err
			}
			defer st.Close()

			snap, err := st.Load(cmd.Context(), id)
			if err != nil {
				return translateStoreErr(err, id)
			}

			if idsOnly {
				for _, n := range snap.Nodes {
					fmt.Println(n.ID)
				}
				return nil
			}

			fmt.Println(StyleTitle.Render(id))
			fmt.Print(formatTree(snap))

			open := snap.OpenIDs()
			topmost := snap.TopmostIDs()
			printDetail("%d elements · %d open · topmost: %s",
				snap.NodeCount(), len(open), formatIDList(topmost))
			return nil
		},
	}

	cmd.Flags().BoolVar(&idsOnly, "ids", false, "print element IDs only")
	return cmd
}

func formatIDList(ids []string) string {
	if len(ids) == 0 {
		return "none"
	}
	return strings.Join(ids, ", ")
}
