package cli

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/sherif414/floattree/pkg/snapshot"
)

// =============================================================================
// Color Palette
// =============================================================================

var (
	colorCyan   = lipgloss.Color("36")  // Teal - primary actions
	colorGreen  = lipgloss.Color("35")  // Green - success
	colorYellow = lipgloss.Color("220") // Amber - warnings
	colorRed    = lipgloss.Color("167") // Soft red - errors
	colorBlue   = lipgloss.Color("75")  // Light blue - links
	colorWhite  = lipgloss.Color("255") // Bright white - values
	colorGray   = lipgloss.Color("245") // Gray - secondary text
	colorDim    = lipgloss.Color("240") // Dim gray - muted text
)

// =============================================================================
// Public Styles
// =============================================================================

var (
	// StyleTitle for main headings.
	StyleTitle = lipgloss.NewStyle().Bold(true).Foreground(colorCyan)

	// StyleHighlight for emphasized values.
	StyleHighlight = lipgloss.NewStyle().Foreground(colorCyan)

	// StyleDim for secondary/muted text.
	StyleDim = lipgloss.NewStyle().Foreground(colorDim)

	// StyleValue for data values.
	StyleValue = lipgloss.NewStyle().Foreground(colorWhite)

	// StyleSuccess for success messages.
	StyleSuccess = lipgloss.NewStyle().Foreground(colorGreen)

	// StyleWarning for warning messages.
	StyleWarning = lipgloss.NewStyle().Foreground(colorYellow)
)

// =============================================================================
// Internal Styles
// =============================================================================

var (
	styleIconSuccess = lipgloss.NewStyle().Foreground(colorGreen)
	styleIconError   = lipgloss.NewStyle().Foreground(colorRed)
	styleIconWarning = lipgloss.NewStyle().Foreground(colorYellow)
	styleIconInfo    = lipgloss.NewStyle().Foreground(colorGray)

	styleOpen    = lipgloss.NewStyle().Bold(true).Foreground(colorGreen)
	styleTopmost = lipgloss.NewStyle().Bold(true).Foreground(colorCyan)
	styleClosed  = lipgloss.NewStyle().Foreground(colorDim)

	styleCommand = lipgloss.NewStyle().Foreground(colorBlue)
)

// =============================================================================
// Icons
// =============================================================================

const (
	iconSuccess = "✓"
	iconError   = "✗"
	iconWarning = "!"
	iconInfo    = "›"
	iconArrow   = "→"
	iconOpen    = "◉"
	iconClosed  = "○"
)

// =============================================================================
// Status Output
// =============================================================================

// printSuccess prints a success message.
func printSuccess(format string, args ...any) {
	msg := fmt.Sprintf(format, args...)
	fmt.Println(styleIconSuccess.Render(iconSuccess) + " " + msg)
}

// printError prints an error message.
func printError(format string, args ...any) {
	msg := fmt.Sprintf(format, args...)
	fmt.Println(styleIconError.Render(iconError) + " " + msg)
}

// printWarning prints a warning message.
func printWarning(format string, args ...any) {
	msg := fmt.Sprintf(format, args...)
	fmt.Println(styleIconWarning.Render(iconWarning) + " " + StyleWarning.Render(msg))
}

// printInfo prints an info/status message.
func printInfo(format string, args ...any) {
	msg := fmt.Sprintf(format, args...)
	fmt.Println(styleIconInfo.Render(iconInfo) + " " + msg)
}

// printDetail prints a detail line (indented).
func printDetail(format string, args ...any) {
	msg := fmt.Sprintf(format, args...)
	fmt.Println("  " + StyleDim.Render(msg))
}

// printFile prints a file output line.
func printFile(path string) {
	fmt.Println("  " + StyleDim.Render(iconArrow) + " " + StyleValue.Render(path))
}

// printNextStep prints a suggested next command.
func printNextStep(description, cmd string) {
	fmt.Println(StyleDim.Render(description+":") + " " + styleCommand.Render(cmd))
}

// =============================================================================
// Tree Display
// =============================================================================

// formatTree renders a snapshot as an indented tree with open state markers.
// Open nodes get a filled marker, topmost nodes are additionally highlighted,
// closed nodes stay dim.
func formatTree(s snapshot.Snapshot) string {
	children := make(map[string][]snapshot.Node)
	var root *snapshot.Node
	for i, n := range s.Nodes {
		if n.IsRoot() {
			root = &s.Nodes[i]
			continue
		}
		children[n.ParentID] = append(children[n.ParentID], n)
	}
	if root == nil {
		return ""
	}

	topmost := make(map[string]bool)
	for _, id := range s.TopmostIDs() {
		topmost[id] = true
	}

	var b strings.Builder
	var walk func(n snapshot.Node, prefix string, last bool)
	walk = func(n snapshot.Node, prefix string, last bool) {
		branch, childPrefix := "", ""
		if !n.IsRoot() {
			if last {
				branch, childPrefix = prefix+"└─ ", prefix+"   "
			} else {
				branch, childPrefix = prefix+"├─ ", prefix+"│  "
			}
		}

		b.WriteString(branch + formatNode(n, topmost[n.ID]) + "\n")
		kids := children[n.ID]
		for i, child := range kids {
			walk(child, childPrefix, i == len(kids)-1)
		}
	}
	walk(*root, "", true)
	return b.String()
}

// formatNode renders one tree line with its state marker.
func formatNode(n snapshot.Node, topmost bool) string {
	label := n.DisplayLabel()
	switch {
	case topmost:
		return styleTopmost.Render(iconOpen+" "+label) + " " + StyleDim.Render("(topmost)")
	case n.Open:
		return styleOpen.Render(iconOpen + " " + label)
	default:
		return styleClosed.Render(iconClosed + " " + label)
	}
}
