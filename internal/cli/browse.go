package cli

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/sherif414/floattree/pkg/floating"
	"github.com/sherif414/floattree/pkg/snapshot"
	"github.com/sherif414/floattree/pkg/tree"
)

// browseCommand creates the "browse" command for interactive exploration.
func (c *CLI) browseCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "browse <snapshot>",
		Short: "Interactively explore and toggle a hierarchy",
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
			coord, err := snapshot.ToCoordinator(snap, &floating.Config{Logger: c.Logger})
			if err != nil {
				return err
			}

			model := NewBrowseModel(id, coord)
			final, err := tea.NewProgram(model).Run()
			if err != nil {
				return err
			}

			m, ok := final.(BrowseModel)
			if !ok || !m.Dirty {
				return nil
			}
			if err := st.Save(cmd.Context(), id, snapshot.FromCoordinator(coord)); err != nil {
				return err
			}
			printSuccess("Saved %q", id)
			return nil
		},
	}
}

// =============================================================================
// BrowseModel - Interactive hierarchy browser
// =============================================================================

// BrowseModel is the bubbletea model for browsing and toggling a hierarchy.
// Toggles run through the coordinator, so cascades apply live.
type BrowseModel struct {
	Name   string
	Cursor int
	Dirty  bool

	coord *floating.Coordinator
	rows  []*tree.Node[*floating.Panel]
}

// NewBrowseModel creates a browse model over a coordinator.
func NewBrowseModel(name string, coord *floating.Coordinator) BrowseModel {
	m := BrowseModel{Name: name, coord: coord}
	m.rows = coord.Tree().Traverse(tree.OrderDFS, nil)
	return m
}

func (m BrowseModel) Init() tea.Cmd {
	return nil
}

func (m BrowseModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			return m, tea.Quit
		case "up", "k":
			if m.Cursor > 0 {
				m.Cursor--
			}
		case "down", "j":
			if m.Cursor < len(m.rows)-1 {
				m.Cursor++
			}
		case " ", "enter":
			node := m.rows[m.Cursor]
			id := node.ID()
			if m.coord.SetOpen(id, !m.coord.IsOpen(id)) {
				m.Dirty = true
			}
		}
	}
	return m, nil
}

func (m BrowseModel) View() string {
	var b strings.Builder

	b.WriteString(StyleTitle.Render(m.Name))
	b.WriteString("\n")
	b.WriteString(StyleDim.Render("↑/↓ navigate  ␣ toggle  q quit"))
	b.WriteString("\n\n")

	for i, node := range m.rows {
		cursor := "  "
		if i == m.Cursor {
			cursor = "▸ "
		}
		b.WriteString(cursor + m.renderRow(node) + "\n")
	}

	if m.Dirty {
		b.WriteString("\n" + StyleWarning.Render("unsaved changes; quitting saves them"))
	}
	return b.String()
}

// renderRow draws one hierarchy line with depth indentation and open state.
func (m BrowseModel) renderRow(node *tree.Node[*floating.Panel]) string {
	depth := 0
	for p := node.Parent(); p != nil; p = p.Parent() {
		depth++
	}
	indent := strings.Repeat("  ", depth)

	label := node.Data().Label
	if label == "" {
		label = node.ID()
	}

	id := node.ID()
	switch {
	case m.coord.IsTopmost(id):
		return indent + styleTopmost.Render(iconOpen+" "+label) + " " + StyleDim.Render("(topmost)")
	case m.coord.IsOpen(id):
		return indent + styleOpen.Render(iconOpen + " " + label)
	default:
		return indent + styleClosed.Render(fmt.Sprintf("%s %s", iconClosed, label))
	}
}
