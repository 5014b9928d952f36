package cli

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/sherif414/floattree/pkg/cache"
	"github.com/sherif414/floattree/pkg/errors"
	"github.com/sherif414/floattree/pkg/render"
	"github.com/sherif414/floattree/pkg/snapshot"
)

// artifactTTL bounds how long rendered diagrams stay cached.
const artifactTTL = 7 * 24 * time.Hour

// renderOpts holds the command-line flags for the render command.
type renderOpts struct {
	output   string // output file path (or base path for multiple formats)
	formats  []string
	detailed bool // include IDs and metadata in node labels
	noCache  bool // bypass the artifact cache
}

// renderCommand creates the render command for generating diagrams.
//
// Default settings:
//   - format: svg
//   - caching: enabled, keyed by DOT content
func (c *CLI) renderCommand() *cobra.Command {
	var formatsStr string
	var opts renderOpts

	cmd := &cobra.Command{
		Use:   "render <snapshot>",
		Short: "Render a hierarchy to DOT, SVG, or PNG",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts.formats = parseFormats(formatsStr)
			for _, f := range opts.formats {
				if err := errors.ValidateFormat(f); err != nil {
					return err
				}
			}
			return c.runRender(cmd, args[0], &opts)
		},
	}

	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "output file (single format) or base path (multiple)")
	cmd.Flags().StringVarP(&formatsStr, "format", "f", "", "output format(s): svg (default), dot, png, json (comma-separated)")
	cmd.Flags().BoolVar(&opts.detailed, "detailed", false, "include element IDs and metadata in labels")
	cmd.Flags().BoolVar(&opts.noCache, "no-cache", false, "bypass the artifact cache")
	return cmd
}

func (c *CLI) runRender(cmd *cobra.Command, id string, opts *renderOpts) error {
	st, err := c.newStore(cmd)
	if err != nil {
		return err
	}
	defer st.Close()

	snap, err := st.Load(cmd.Context(), id)
	if err != nil {
		return translateStoreErr(err, id)
	}

	artifacts, err := newCache(opts.noCache)
	if err != nil {
		return err
	}
	defer artifacts.Close()

	dot := render.ToDOT(snap, render.Options{Detailed: opts.detailed})
	prog := newProgress(c.Logger)

	for _, format := range opts.formats {
		data, cached, err := c.renderArtifact(cmd, artifacts, snap, dot, format)
		if err != nil {
			return err
		}

		path := outputPath(opts.output, id, format, len(opts.formats) > 1)
		if err := os.WriteFile(path, data, 0644); err != nil {
			return fmt.Errorf("write %s: %w", path, err)
		}
		if cached {
			c.Logger.Debug("Served from cache", "format", format)
		}
		printFile(path)
	}

	prog.done(fmt.Sprintf("Rendered %d elements", snap.NodeCount()))
	return nil
}

// renderArtifact produces one output format, consulting the cache for the
// expensive formats. DOT and JSON are cheap enough to build every time.
func (c *CLI) renderArtifact(cmd *cobra.Command, artifacts cache.Cache, snap snapshot.Snapshot, dot, format string) (data []byte, cached bool, err error) {
	switch format {
	case "dot":
		return []byte(dot), false, nil
	case "json":
		data, err := snapshot.Marshal(snap)
		return data, false, err
	}

	key := cache.ArtifactKey(dot, format)
	if data, hit, err := artifacts.Get(cmd.Context(), key); err == nil && hit {
		return data, true, nil
	}

	switch format {
	case "svg":
		data, err = render.SVG(dot)
	case "png":
		data, err = render.PNG(dot)
	}
	if err != nil {
		return nil, false, errors.Wrap(errors.ErrCodeRender, err, "failed to render %s", format)
	}

	if err := artifacts.Set(cmd.Context(), key, data, artifactTTL); err != nil {
		c.Logger.Warn("Failed to cache artifact", "error", err)
	}
	return data, false, nil
}

// outputPath determines the output file path for a rendered artifact.
// With multiple formats, the format extension is always appended to the base.
func outputPath(output, id, format string, multi bool) string {
	if output == "" {
		return id + "." + format
	}
	if multi {
		ext := filepath.Ext(output)
		return strings.TrimSuffix(output, ext) + "." + format
	}
	return output
}

// parseFormats parses a comma-separated format string into a slice.
func parseFormats(s string) []string {
	if s == "" {
		return []string{"svg"}
	}
	return strings.Split(s, ",")
}
