package cli

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/matzehuels/pageview/pkg/manifest"
)

func testViewModel(t *testing.T) viewModel {
	t.Helper()
	doc, err := manifest.Parse([]byte(testManifest), ".")
	if err != nil {
		t.Fatal(err)
	}
	doc.Layout.Update()
	return newViewModel(doc)
}

func TestViewScrollClamping(t *testing.T) {
	m := testViewModel(t)

	// Scrolling up from the origin stays at the origin.
	next, _ := m.Update(tea.KeyMsg{Type: tea.KeyUp})
	m = next.(viewModel)
	if m.offset.Y != 0 {
		t.Errorf("offset.Y = %d after scrolling past the top", m.offset.Y)
	}

	// Scrolling down advances until the bottom edge.
	for range 100 {
		next, _ = m.Update(tea.KeyMsg{Type: tea.KeyDown})
		m = next.(viewModel)
	}
	vp := m.viewport()
	if m.offset.Y+vp.Height > m.doc.Layout.Height() && m.offset.Y != 0 {
		t.Errorf("offset.Y = %d overshoots the layout", m.offset.Y)
	}
}

func TestViewZoomKeys(t *testing.T) {
	m := testViewModel(t)
	before := m.doc.Layout.ZoomFactor()

	next, _ := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'+'}})
	m = next.(viewModel)
	if got := m.doc.Layout.ZoomFactor(); got <= before {
		t.Errorf("zoom after + = %v, want > %v", got, before)
	}

	next, _ = m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'-'}})
	m = next.(viewModel)
	if got := m.doc.Layout.ZoomFactor(); got != before {
		t.Errorf("zoom after +,- = %v, want %v", got, before)
	}
}

func TestViewRotateAndOrientation(t *testing.T) {
	m := testViewModel(t)

	next, _ := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'r'}})
	m = next.(viewModel)
	if m.doc.Layout.Rotation().Degrees() != 90 {
		t.Errorf("rotation = %v after r", m.doc.Layout.Rotation())
	}

	widthBefore := m.doc.Layout.Width()
	next, _ = m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'o'}})
	m = next.(viewModel)
	if m.doc.Layout.Width() == widthBefore {
		t.Error("orientation toggle should restack the pages")
	}
}

func TestViewRendersStatus(t *testing.T) {
	m := testViewModel(t)
	m.width = 40
	m.height = 20

	view := m.View()
	if !strings.Contains(view, "test document") {
		t.Error("view should show the document title")
	}
	if !strings.Contains(view, "pages in view") {
		t.Error("view should list visible pages")
	}
}
