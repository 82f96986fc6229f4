package store

import (
	"context"
	"testing"
	"time"

	"github.com/matzehuels/pageview/pkg/errors"
	"github.com/matzehuels/pageview/pkg/geom"
	"github.com/matzehuels/pageview/pkg/layout"
	"github.com/matzehuels/pageview/pkg/page"
)

func sampleLayout() *layout.Layout {
	l := layout.New()
	l.Extend(
		page.NewFixedPage(100, 200),
		page.NewFixedPage(150, 150),
		page.NewFixedPage(100, 100),
	)
	l.Update()
	return l
}

func TestCaptureRestoreRoundTrip(t *testing.T) {
	l := sampleLayout()
	s := Capture("sample", l)

	if s.ID == "" {
		t.Error("Capture should assign an ID")
	}
	if s.Title != "sample" {
		t.Errorf("Title = %q", s.Title)
	}
	if s.Width != 158 || s.Height != 474 {
		t.Errorf("captured size = %dx%d, want 158x474", s.Width, s.Height)
	}
	if len(s.Pages) != 3 {
		t.Fatalf("captured %d pages, want 3", len(s.Pages))
	}
	if s.Pages[1].X != 4 || s.Pages[1].Y != 212 {
		t.Errorf("page 1 position = (%d, %d), want (4, 212)", s.Pages[1].X, s.Pages[1].Y)
	}

	restored, err := s.Restore()
	if err != nil {
		t.Fatalf("Restore: %v", err)
	}
	if got, want := restored.Size(), l.Size(); got != want {
		t.Errorf("restored size = %v, want %v", got, want)
	}
	for i := range 3 {
		a, _ := l.At(i)
		b, _ := restored.At(i)
		if a.Rect() != b.Rect() {
			t.Errorf("page %d rect = %v, want %v", i, b.Rect(), a.Rect())
		}
	}
}

func TestCaptureRecordsParameters(t *testing.T) {
	l := layout.NewWithStrategy(layout.NewLinear(layout.Horizontal))
	l.SetMargin(10)
	l.SetSpacing(2)
	l.SetZoomFactor(1.5)
	l.SetRotation(geom.Rotate90)
	p := page.NewFixedPage(100, 200)
	p.SetRotation(geom.Rotate180)
	p.SetScale(geom.PointF{X: 2, Y: 1})
	l.Append(p)
	l.Update()

	s := Capture("params", l)
	if s.Margin != 10 || s.Spacing != 2 || s.Zoom != 1.5 {
		t.Errorf("captured params = %d/%d/%v", s.Margin, s.Spacing, s.Zoom)
	}
	if s.Rotation != 90 || s.Orientation != "horizontal" {
		t.Errorf("captured rotation/orientation = %d/%q", s.Rotation, s.Orientation)
	}
	if s.Pages[0].Rotation != 180 || s.Pages[0].ScaleX != 2 {
		t.Errorf("captured page state = %+v", s.Pages[0])
	}

	restored, err := s.Restore()
	if err != nil {
		t.Fatalf("Restore: %v", err)
	}
	if restored.Rotation() != geom.Rotate90 {
		t.Errorf("restored rotation = %v", restored.Rotation())
	}
	if got, want := restored.Size(), l.Size(); got != want {
		t.Errorf("restored size = %v, want %v", got, want)
	}
}

func TestCaptureRecordsPageDPI(t *testing.T) {
	l := layout.New()
	p := page.NewFixedPage(144, 72)
	p.SetDPI(144)
	l.Append(p)
	l.Update()

	s := Capture("dpi", l)
	if s.Pages[0].DPI != 144 {
		t.Errorf("captured page DPI = %v, want 144", s.Pages[0].DPI)
	}

	restored, err := s.Restore()
	if err != nil {
		t.Fatalf("Restore: %v", err)
	}
	rp, _ := restored.At(0)
	if fp, ok := rp.(page.DPIProvider); !ok || fp.DPI() != 144 {
		t.Error("restored page should keep its source resolution")
	}
	if got, want := restored.Size(), l.Size(); got != want {
		t.Errorf("restored size = %v, want %v", got, want)
	}
}

func TestRestoreRejectsBadSnapshots(t *testing.T) {
	tests := []struct {
		name string
		s    Snapshot
	}{
		{"bad orientation", Snapshot{Orientation: "diagonal"}},
		{"bad rotation", Snapshot{Rotation: 45}},
		{"non-positive page", Snapshot{Pages: []PageState{{NaturalWidth: 0, NaturalHeight: 10}}}},
		{"bad page rotation", Snapshot{Pages: []PageState{{NaturalWidth: 10, NaturalHeight: 10, Rotation: 30}}}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := tt.s.Restore(); errors.GetCode(err) != errors.ErrCodeInvalidSnapshot {
				t.Errorf("Restore error = %v, want INVALID_SNAPSHOT", err)
			}
		})
	}
}

func TestSnapshotJSONRoundTrip(t *testing.T) {
	s := Capture("json", sampleLayout())
	data, err := s.Marshal()
	if err != nil {
		t.Fatalf("Marshal: %v", err)
	}

	decoded, err := Unmarshal(data)
	if err != nil {
		t.Fatalf("Unmarshal: %v", err)
	}
	if decoded.ID != s.ID || decoded.Width != s.Width || len(decoded.Pages) != len(s.Pages) {
		t.Error("decoded snapshot does not match")
	}

	if _, err := Unmarshal([]byte("{")); errors.GetCode(err) != errors.ErrCodeInvalidSnapshot {
		t.Error("Unmarshal of malformed data should fail with INVALID_SNAPSHOT")
	}
	if _, err := Unmarshal([]byte("{}")); errors.GetCode(err) != errors.ErrCodeInvalidSnapshot {
		t.Error("Unmarshal without an id should fail with INVALID_SNAPSHOT")
	}
}

func TestFileStore(t *testing.T) {
	ctx := context.Background()
	st, err := NewFileStore(t.TempDir())
	if err != nil {
		t.Fatalf("NewFileStore: %v", err)
	}
	defer st.Close(ctx)

	first := Capture("first", sampleLayout())
	second := Capture("second", sampleLayout())
	second.CreatedAt = first.CreatedAt.Add(time.Second)

	if err := st.Save(ctx, first); err != nil {
		t.Fatalf("Save: %v", err)
	}
	if err := st.Save(ctx, second); err != nil {
		t.Fatalf("Save: %v", err)
	}

	loaded, err := st.Load(ctx, first.ID)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if loaded.Title != "first" {
		t.Errorf("loaded title = %q", loaded.Title)
	}

	list, err := st.List(ctx)
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(list) != 2 || list[0].ID != first.ID || list[1].ID != second.ID {
		t.Error("List should return snapshots oldest first")
	}

	// Saving again replaces
	first.Title = "renamed"
	if err := st.Save(ctx, first); err != nil {
		t.Fatal(err)
	}
	loaded, _ = st.Load(ctx, first.ID)
	if loaded.Title != "renamed" {
		t.Error("Save should replace an existing snapshot")
	}

	if err := st.Delete(ctx, first.ID); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if _, err := st.Load(ctx, first.ID); errors.GetCode(err) != errors.ErrCodeSnapshotNotFound {
		t.Errorf("Load after Delete: code = %v, want SNAPSHOT_NOT_FOUND", errors.GetCode(err))
	}
	if err := st.Delete(ctx, first.ID); errors.GetCode(err) != errors.ErrCodeSnapshotNotFound {
		t.Errorf("Delete of absent snapshot: code = %v, want SNAPSHOT_NOT_FOUND", errors.GetCode(err))
	}

	if err := st.Save(ctx, &Snapshot{}); errors.GetCode(err) != errors.ErrCodeInvalidSnapshot {
		t.Error("Save without an id should fail with INVALID_SNAPSHOT")
	}
}

func TestFileStoreRejectsPathIDs(t *testing.T) {
	ctx := context.Background()
	st, err := NewFileStore(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	defer st.Close(ctx)

	for _, id := range []string{"../escape", "a/b", ".hidden", `a\b`} {
		if _, err := st.Load(ctx, id); errors.GetCode(err) != errors.ErrCodeInvalidPath {
			t.Errorf("Load(%q) code = %v, want INVALID_PATH", id, errors.GetCode(err))
		}
		if err := st.Delete(ctx, id); errors.GetCode(err) != errors.ErrCodeInvalidPath {
			t.Errorf("Delete(%q) code = %v, want INVALID_PATH", id, errors.GetCode(err))
		}
		s := Capture("bad", sampleLayout())
		s.ID = id
		if err := st.Save(ctx, s); errors.GetCode(err) != errors.ErrCodeInvalidPath {
			t.Errorf("Save(%q) code = %v, want INVALID_PATH", id, errors.GetCode(err))
		}
	}
}
