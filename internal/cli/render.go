package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/matzehuels/pageview/pkg/errors"
	"github.com/matzehuels/pageview/pkg/geom"
	"github.com/matzehuels/pageview/pkg/layout"
	"github.com/matzehuels/pageview/pkg/manifest"
	"github.com/matzehuels/pageview/pkg/render"
)

// cacheTTL is how long rendered artifacts stay valid. Renders are fully
// determined by the cache key, so the TTL only bounds disk usage.
const cacheTTL = 7 * 24 * time.Hour

// renderOpts holds the command-line flags for the render command.
type renderOpts struct {
	output   string // output file path (or base path for multiple formats)
	formats  []string
	fitMode  string // fit the layout to the viewport before rendering
	width    int    // viewport width for --fit
	height   int    // viewport height for --fit
	zoom     float64
	labels   bool // draw page numbers in SVG output
	grid     int  // grid line step in layout pixels (SVG only)
	scale    float64
	noCache  bool
	docTitle string
}

// newRenderCmd creates the render command for generating document previews.
func newRenderCmd() *cobra.Command {
	var formatsStr string
	opts := renderOpts{zoom: 1.0}

	cmd := &cobra.Command{
		Use:   "render [manifest]",
		Short: "Render a document to SVG, PNG, or JSON",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts.formats = parseFormats(formatsStr)
			if err := validateFormats(opts.formats); err != nil {
				return err
			}
			return runRender(cmd.Context(), args[0], &opts)
		},
	}

	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "output file (default: manifest name with format extension)")
	cmd.Flags().StringVarP(&formatsStr, "formats", "f", render.FormatSVG, "comma-separated output formats (svg, png, json)")
	cmd.Flags().StringVar(&opts.fitMode, "fit", "", "fit the layout to the viewport first (width, height, both)")
	cmd.Flags().IntVar(&opts.width, "width", 800, "viewport width for --fit")
	cmd.Flags().IntVar(&opts.height, "height", 600, "viewport height for --fit")
	cmd.Flags().Float64Var(&opts.zoom, "zoom", 1.0, "zoom factor")
	cmd.Flags().BoolVar(&opts.labels, "labels", false, "draw page numbers (svg only)")
	cmd.Flags().IntVar(&opts.grid, "grid", 0, "overlay grid lines every N layout pixels (svg only)")
	cmd.Flags().Float64Var(&opts.scale, "scale", 1.0, "output pixel scale (svg only)")
	cmd.Flags().BoolVar(&opts.noCache, "no-cache", false, "bypass the render cache")

	return cmd
}

func runRender(ctx context.Context, path string, opts *renderOpts) error {
	logger := loggerFromContext(ctx)
	prog := newProgress(logger)

	doc, err := manifest.Load(path)
	if err != nil {
		return err
	}
	l := doc.Layout
	l.SetZoomFactor(opts.zoom)
	if opts.fitMode != "" {
		mode, err := layout.ParseFitMode(opts.fitMode)
		if err != nil {
			return err
		}
		l.Update()
		l.Fit(geom.Size{Width: opts.width, Height: opts.height}, mode)
	}
	l.Update()
	logger.Debug("layout computed", "pages", l.Len(), "width", l.Width(), "height", l.Height())

	c, err := configFromContext(ctx).newCache(ctx, opts.noCache)
	if err != nil {
		return err
	}
	defer c.Close()
	renderer := render.NewRenderer(c, nil, cacheTTL)

	for _, format := range opts.formats {
		data, err := renderData(ctx, renderer, doc, format, opts)
		if err != nil {
			return err
		}
		out := outputPath(path, opts.output, format, len(opts.formats) > 1)
		if err := os.WriteFile(out, data, 0644); err != nil {
			return err
		}
		logger.Info("wrote output", "file", out, "bytes", len(data))
	}

	prog.done(fmt.Sprintf("Rendered %d pages", l.Len()))
	return nil
}

// renderData produces one format. SVG with presentation options set
// bypasses the cached renderer, whose keys do not cover them.
func renderData(ctx context.Context, renderer *render.Renderer, doc *manifest.Document, format string, opts *renderOpts) ([]byte, error) {
	if format == render.FormatSVG && (opts.labels || opts.grid > 0 || opts.scale != 1.0) {
		var svgOpts []render.SVGOption
		if opts.labels {
			svgOpts = append(svgOpts, render.WithLabels())
		}
		if opts.grid > 0 {
			svgOpts = append(svgOpts, render.WithGrid(opts.grid))
		}
		if opts.scale != 1.0 {
			svgOpts = append(svgOpts, render.WithScale(opts.scale))
		}
		return render.RenderSVG(doc.Layout, svgOpts...), nil
	}
	return renderer.Render(ctx, doc.Hash, doc.Layout, format)
}

// outputPath derives the output file name. With multiple formats the
// format extension is always appended so the files don't collide.
func outputPath(manifestPath, output, format string, multi bool) string {
	if output != "" {
		if !multi {
			return output
		}
		return strings.TrimSuffix(output, filepath.Ext(output)) + "." + format
	}
	base := strings.TrimSuffix(manifestPath, filepath.Ext(manifestPath))
	return base + "." + format
}

// parseFormats parses a comma-separated format string into a slice.
func parseFormats(s string) []string {
	if s == "" {
		return []string{render.FormatSVG}
	}
	return strings.Split(s, ",")
}

func validateFormats(formats []string) error {
	for _, f := range formats {
		switch f {
		case render.FormatSVG, render.FormatPNG, render.FormatJSON:
		default:
			return errors.New(errors.ErrCodeInvalidFormat, "unknown format %q (want svg, png, or json)", f)
		}
	}
	return nil
}
