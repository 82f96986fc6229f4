package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/matzehuels/pageview/pkg/geom"
	"github.com/matzehuels/pageview/pkg/layout"
	"github.com/matzehuels/pageview/pkg/manifest"
)

// newFitCmd creates the fit command computing viewport zoom factors.
func newFitCmd() *cobra.Command {
	var width, height int
	var mode string

	cmd := &cobra.Command{
		Use:   "fit [manifest]",
		Short: "Compute the zoom factor that fits a document into a viewport",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			fitMode, err := layout.ParseFitMode(mode)
			if err != nil {
				return err
			}

			doc, err := manifest.Load(args[0])
			if err != nil {
				return err
			}
			l := doc.Layout
			l.Update()
			l.Fit(geom.Size{Width: width, Height: height}, fitMode)
			l.Update()

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "%s %s\n", StyleLabel.Render("zoom:"),
				StyleNumber.Render(fmt.Sprintf("%.4f", l.ZoomFactor())))
			fmt.Fprintf(out, "%s %s\n", StyleLabel.Render("size:"),
				StyleValue.Render(fmt.Sprintf("%d x %d", l.Width(), l.Height())))
			return nil
		},
	}

	cmd.Flags().IntVar(&width, "width", 800, "viewport width in pixels")
	cmd.Flags().IntVar(&height, "height", 600, "viewport height in pixels")
	cmd.Flags().StringVar(&mode, "mode", "both", "fit mode (width, height, both)")

	return cmd
}
