package cli

import (
	"fmt"
	"strconv"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"

	"github.com/matzehuels/pageview/pkg/manifest"
)

// newInfoCmd creates the info command showing a document's computed layout.
func newInfoCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "info [manifest]",
		Short: "Show the computed layout of a document",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			doc, err := manifest.Load(args[0])
			if err != nil {
				return err
			}
			doc.Layout.Update()
			fmt.Fprint(cmd.OutOrStdout(), formatInfo(doc))
			return nil
		},
	}
}

func formatInfo(doc *manifest.Document) string {
	l := doc.Layout

	title := doc.Title
	if title == "" {
		title = "(untitled)"
	}
	out := StyleTitle.Render(title) + "\n"
	out += fmt.Sprintf("%s %s\n", StyleLabel.Render("size:"),
		StyleNumber.Render(fmt.Sprintf("%d x %d", l.Width(), l.Height())))
	out += fmt.Sprintf("%s margin %s  spacing %s  zoom %s  rotation %s\n\n",
		StyleLabel.Render("params:"),
		StyleValue.Render(strconv.Itoa(l.Margin())),
		StyleValue.Render(strconv.Itoa(l.Spacing())),
		StyleValue.Render(fmt.Sprintf("%.2f", l.ZoomFactor())),
		StyleValue.Render(l.Rotation().String()))

	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(StyleDim).
		StyleFunc(func(row, _ int) lipgloss.Style {
			if row == table.HeaderRow {
				return StyleLabel
			}
			return StyleValue
		}).
		Headers("#", "POSITION", "SIZE", "NATURAL", "ROTATION")

	i := 0
	for p := range l.All() {
		rect := p.Rect()
		natural := p.PageSizeF()
		t.Row(
			strconv.Itoa(i+1),
			fmt.Sprintf("%d, %d", rect.X, rect.Y),
			fmt.Sprintf("%d x %d", rect.Width, rect.Height),
			fmt.Sprintf("%.0f x %.0f pt", natural.Width, natural.Height),
			p.Rotation().String(),
		)
		i++
	}

	return out + t.Render() + "\n"
}
