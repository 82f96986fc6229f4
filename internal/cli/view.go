package cli

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/matzehuels/pageview/pkg/geom"
	"github.com/matzehuels/pageview/pkg/layout"
	"github.com/matzehuels/pageview/pkg/manifest"
)

// newViewCmd creates the view command, an interactive terminal browser
// for a document's layout.
func newViewCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "view [manifest]",
		Short: "Browse a document interactively in the terminal",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			doc, err := manifest.Load(args[0])
			if err != nil {
				return err
			}
			doc.Layout.Update()

			p := tea.NewProgram(newViewModel(doc),
				tea.WithAltScreen(),
				tea.WithContext(cmd.Context()))
			_, err = p.Run()
			return err
		},
	}
}

// cellWidth and cellHeight map one terminal cell to layout pixels.
// Terminal cells are roughly twice as tall as wide, so the vertical
// step is doubled to keep pages proportioned.
const (
	cellWidth  = 8
	cellHeight = 16
)

// scrollStep is the scroll distance per keypress in layout pixels.
const scrollStep = 32

// Shading per page index so adjacent pages stay distinguishable.
var pageShades = []string{"█", "▓", "▒"}

// viewModel is the bubbletea model for the document browser.
type viewModel struct {
	doc    *manifest.Document
	offset geom.Point // top-left of the viewport in layout coordinates
	width  int        // terminal columns
	height int        // terminal rows
}

func newViewModel(doc *manifest.Document) viewModel {
	return viewModel{doc: doc, width: 80, height: 24}
}

func (m viewModel) Init() tea.Cmd {
	return nil
}

// viewport returns the visible region in layout coordinates.
func (m viewModel) viewport() geom.Rect {
	return geom.Rect{
		X:      m.offset.X,
		Y:      m.offset.Y,
		Width:  m.width * cellWidth,
		Height: m.canvasRows() * cellHeight,
	}
}

// canvasRows is the terminal height minus the header and status lines.
func (m viewModel) canvasRows() int {
	rows := m.height - 4
	if rows < 1 {
		rows = 1
	}
	return rows
}

func (m viewModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	l := m.doc.Layout
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			return m, tea.Quit
		case "up", "k":
			m.offset.Y -= scrollStep
		case "down", "j":
			m.offset.Y += scrollStep
		case "left", "h":
			m.offset.X -= scrollStep
		case "right", "l":
			m.offset.X += scrollStep
		case "pgup":
			m.offset.Y -= m.viewport().Height
		case "pgdown", " ":
			m.offset.Y += m.viewport().Height
		case "g":
			m.offset = geom.Point{}
		case "+", "=":
			l.SetZoomFactor(l.ZoomFactor() * 1.25)
			l.Update()
		case "-":
			l.SetZoomFactor(l.ZoomFactor() / 1.25)
			l.Update()
		case "w":
			l.Fit(m.viewport().Size(), layout.FitWidth)
			l.Update()
		case "b":
			l.Fit(m.viewport().Size(), layout.FitBoth)
			l.Update()
			m.offset = geom.Point{}
		case "r":
			l.SetRotation(l.Rotation().Plus(geom.Rotate90))
			l.Update()
		case "o":
			if lin, ok := l.Strategy().(*layout.Linear); ok {
				if lin.Orientation() == layout.Vertical {
					lin.SetOrientation(layout.Horizontal)
				} else {
					lin.SetOrientation(layout.Vertical)
				}
				l.Update()
			}
		}
		m.clampOffset()
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.clampOffset()
	}
	return m, nil
}

// clampOffset keeps the viewport inside the layout, snapping to the
// origin when the layout is smaller than the viewport.
func (m *viewModel) clampOffset() {
	l := m.doc.Layout
	vp := m.viewport()
	maxX := l.Width() - vp.Width
	maxY := l.Height() - vp.Height
	if m.offset.X > maxX {
		m.offset.X = maxX
	}
	if m.offset.Y > maxY {
		m.offset.Y = maxY
	}
	if m.offset.X < 0 {
		m.offset.X = 0
	}
	if m.offset.Y < 0 {
		m.offset.Y = 0
	}
}

func (m viewModel) View() string {
	l := m.doc.Layout
	var b strings.Builder

	title := m.doc.Title
	if title == "" {
		title = "(untitled)"
	}
	b.WriteString(StyleTitle.Render(title))
	b.WriteString(StyleDim.Render(fmt.Sprintf("  %d pages  %d x %d  zoom %.2f  %s",
		l.Len(), l.Width(), l.Height(), l.ZoomFactor(), l.Rotation())))
	b.WriteString("\n")
	b.WriteString(StyleDim.Render("↑/↓/←/→ scroll  +/- zoom  w/b fit  r rotate  o orientation  g top  q quit"))
	b.WriteString("\n\n")

	b.WriteString(m.renderCanvas())
	b.WriteString("\n")
	b.WriteString(m.statusLine())
	return b.String()
}

// renderCanvas draws the visible region, one sample per terminal cell.
func (m viewModel) renderCanvas() string {
	l := m.doc.Layout
	rows := m.canvasRows()
	var b strings.Builder
	for row := range rows {
		for col := range m.width {
			pt := geom.Point{
				X: m.offset.X + col*cellWidth,
				Y: m.offset.Y + row*cellHeight,
			}
			p := l.PageAt(pt)
			if p == nil {
				b.WriteString(" ")
				continue
			}
			index, _ := l.Index(p)
			b.WriteString(pageShades[index%len(pageShades)])
		}
		if row < rows-1 {
			b.WriteString("\n")
		}
	}
	return lipgloss.NewStyle().Foreground(colorGray).Render(b.String())
}

// statusLine names the pages currently visible.
func (m viewModel) statusLine() string {
	l := m.doc.Layout
	var visible []string
	for p := range l.PagesAt(m.viewport()) {
		index, _ := l.Index(p)
		visible = append(visible, fmt.Sprintf("%d", index+1))
	}
	if len(visible) == 0 {
		return StyleDim.Render("no pages in view")
	}
	return StyleLabel.Render("pages in view: ") + StyleNumber.Render(strings.Join(visible, ", "))
}
