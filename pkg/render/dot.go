// Package render exports coordinated hierarchies as Graphviz diagrams.
//
// The hierarchy is drawn top-down with visibility state baked into the
// node styling: open elements are filled, the topmost elements get a
// double border, closed elements stay dim. This makes cascade and z-order
// behavior visible at a glance when debugging nested menu trees.
//
// Common operations:
//
//	dot := render.ToDOT(snap, render.Options{})
//	svg, err := render.SVG(dot)
//	png, err := render.PNG(dot)
package render

import (
	"bytes"
	"fmt"
	"maps"
	"slices"
	"strings"

	"github.com/sherif414/floattree/pkg/snapshot"
)

// Options configures diagram generation.
type Options struct {
	// Detailed includes node IDs and metadata in labels.
	// When false, only the display label is shown.
	Detailed bool
}

// ToDOT converts a snapshot to Graphviz DOT format.
// The resulting DOT string can be rendered with [SVG] or [PNG].
func ToDOT(s snapshot.Snapshot, opts Options) string {
	topmost := make(map[string]bool)
	for _, id := range s.TopmostIDs() {
		topmost[id] = true
	}

	var buf bytes.Buffer
	buf.WriteString("digraph floattree {\n")
	buf.WriteString("  rankdir=TB;\n")
	buf.WriteString("  bgcolor=\"transparent\";\n")
	buf.WriteString("  node [shape=box, style=\"rounded,filled\", fillcolor=white, fontsize=14, margin=\"0.2,0.1\"];\n")
	buf.WriteString("  ranksep=0.5;\n")
	buf.WriteString("  nodesep=0.3;\n")
	buf.WriteString("\n")

	for _, n := range s.Nodes {
		attrs := fmtAttrs(n, fmtLabel(n, opts.Detailed), topmost[n.ID])
		fmt.Fprintf(&buf, "  %q [%s];\n", n.ID, strings.Join(attrs, ", "))
	}

	buf.WriteString("\n")
	for _, n := range s.Nodes {
		if n.ParentID != "" {
			fmt.Fprintf(&buf, "  %q -> %q;\n", n.ParentID, n.ID)
		}
	}

	buf.WriteString("}\n")
	return buf.String()
}

func fmtLabel(n snapshot.Node, detailed bool) string {
	if !detailed {
		return n.DisplayLabel()
	}

	parts := []string{fmt.Sprintf("id: %s", n.ID)}
	for _, k := range slices.Sorted(maps.Keys(n.Meta)) {
		parts = append(parts, fmt.Sprintf("%s: %v", k, n.Meta[k]))
	}
	return n.DisplayLabel() + "\n" + strings.Join(parts, "\n")
}

func fmtAttrs(n snapshot.Node, label string, topmost bool) []string {
	attrs := []string{fmt.Sprintf("label=%q", label)}
	switch {
	case topmost:
		attrs = append(attrs, "peripheries=2", "fillcolor=lightgoldenrod1")
	case n.Open:
		attrs = append(attrs, "fillcolor=lightgoldenrod1")
	default:
		attrs = append(attrs, "fontcolor=grey40", "color=grey60")
	}
	return attrs
}
