package layout

import (
	"testing"

	"github.com/matzehuels/pageview/pkg/errors"
	"github.com/matzehuels/pageview/pkg/page"
)

func TestAppendInsertExtend(t *testing.T) {
	l := New()
	a := page.NewFixedPage(10, 10)
	b := page.NewFixedPage(20, 20)
	c := page.NewFixedPage(30, 30)

	l.Append(a)
	l.Append(c)
	l.Insert(1, b)

	for i, want := range []page.Page{a, b, c} {
		got, err := l.At(i)
		if err != nil {
			t.Fatalf("At(%d): %v", i, err)
		}
		if got != want {
			t.Errorf("At(%d) returned wrong page", i)
		}
	}

	d := page.NewFixedPage(40, 40)
	e := page.NewFixedPage(50, 50)
	l.Extend(d, e)
	if l.Len() != 5 {
		t.Errorf("Len() = %d, want 5", l.Len())
	}
}

func TestInsertClampsIndex(t *testing.T) {
	l := New()
	a := page.NewFixedPage(10, 10)
	b := page.NewFixedPage(20, 20)
	c := page.NewFixedPage(30, 30)

	l.Append(b)
	l.Insert(-5, a)  // clamps to front
	l.Insert(100, c) // clamps to back

	for i, want := range []page.Page{a, b, c} {
		got, _ := l.At(i)
		if got != want {
			t.Errorf("At(%d) returned wrong page after clamped inserts", i)
		}
	}
}

func TestRemoveAndIndex(t *testing.T) {
	l := New()
	a := page.NewFixedPage(10, 10)
	b := page.NewFixedPage(20, 20)
	l.Extend(a, b)

	i, err := l.Index(b)
	if err != nil || i != 1 {
		t.Errorf("Index(b) = %d, %v, want 1, nil", i, err)
	}
	if !l.Contains(a) {
		t.Error("Contains(a) = false, want true")
	}

	if err := l.Remove(a); err != nil {
		t.Fatalf("Remove(a): %v", err)
	}
	if l.Contains(a) {
		t.Error("Contains(a) = true after Remove")
	}

	err = l.Remove(a)
	if errors.GetCode(err) != errors.ErrCodePageNotFound {
		t.Errorf("Remove of absent page: code = %v, want %v", errors.GetCode(err), errors.ErrCodePageNotFound)
	}
}

func TestRemoveIdentityNotEquality(t *testing.T) {
	l := New()
	a := page.NewFixedPage(10, 10)
	twin := page.NewFixedPage(10, 10)
	l.Append(a)

	if err := l.Remove(twin); errors.GetCode(err) != errors.ErrCodePageNotFound {
		t.Error("Remove should compare by identity, not by value")
	}
	if l.Len() != 1 {
		t.Errorf("Len() = %d, want 1", l.Len())
	}
}

func TestPop(t *testing.T) {
	l := New()
	a := page.NewFixedPage(10, 10)
	b := page.NewFixedPage(20, 20)
	l.Extend(a, b)

	got, err := l.Pop(0)
	if err != nil || got != a {
		t.Errorf("Pop(0) = %v, %v, want a, nil", got, err)
	}

	got, err = l.PopLast()
	if err != nil || got != b {
		t.Errorf("PopLast() = %v, %v, want b, nil", got, err)
	}

	if _, err := l.PopLast(); errors.GetCode(err) != errors.ErrCodeOutOfRange {
		t.Errorf("PopLast on empty: code = %v, want %v", errors.GetCode(err), errors.ErrCodeOutOfRange)
	}
}

func TestAtSetAtBounds(t *testing.T) {
	l := New()
	l.Append(page.NewFixedPage(10, 10))

	for _, index := range []int{-1, 1, 99} {
		if _, err := l.At(index); errors.GetCode(err) != errors.ErrCodeOutOfRange {
			t.Errorf("At(%d): code = %v, want %v", index, errors.GetCode(err), errors.ErrCodeOutOfRange)
		}
		if err := l.SetAt(index, page.NewFixedPage(1, 1)); errors.GetCode(err) != errors.ErrCodeOutOfRange {
			t.Errorf("SetAt(%d): code = %v, want %v", index, errors.GetCode(err), errors.ErrCodeOutOfRange)
		}
	}

	replacement := page.NewFixedPage(99, 99)
	if err := l.SetAt(0, replacement); err != nil {
		t.Fatalf("SetAt(0): %v", err)
	}
	got, _ := l.At(0)
	if got != replacement {
		t.Error("SetAt did not replace the page")
	}
}

func TestRangeAndRemoveRange(t *testing.T) {
	l := New()
	pages := make([]page.Page, 5)
	for i := range pages {
		pages[i] = page.NewFixedPage(float64(i+1)*10, 10)
		l.Append(pages[i])
	}

	sub, err := l.Range(1, 4)
	if err != nil {
		t.Fatalf("Range(1, 4): %v", err)
	}
	if len(sub) != 3 || sub[0] != pages[1] || sub[2] != pages[3] {
		t.Error("Range(1, 4) returned wrong pages")
	}

	if _, err := l.Range(3, 2); errors.GetCode(err) != errors.ErrCodeOutOfRange {
		t.Error("Range with from > to should fail with OUT_OF_RANGE")
	}
	if _, err := l.Range(0, 6); errors.GetCode(err) != errors.ErrCodeOutOfRange {
		t.Error("Range past the end should fail with OUT_OF_RANGE")
	}

	if err := l.RemoveRange(1, 4); err != nil {
		t.Fatalf("RemoveRange(1, 4): %v", err)
	}
	if l.Len() != 2 {
		t.Errorf("Len() = %d after RemoveRange, want 2", l.Len())
	}
	first, _ := l.At(0)
	last, _ := l.At(1)
	if first != pages[0] || last != pages[4] {
		t.Error("RemoveRange removed the wrong pages")
	}
}

func TestClear(t *testing.T) {
	l := threePages()
	l.Update()
	l.Clear()
	if l.Len() != 0 {
		t.Errorf("Len() = %d after Clear, want 0", l.Len())
	}
	l.Update()
	if got := l.Size(); got.Width != 8 || got.Height != 8 {
		t.Errorf("Size() after Clear+Update = %v, want {8 8}", got)
	}
}

func TestPagesReturnsCopy(t *testing.T) {
	l := threePages()
	pages := l.Pages()
	pages[0] = nil
	if got, _ := l.At(0); got == nil {
		t.Error("mutating the Pages() slice must not affect the layout")
	}
}

func TestAllIteratesInOrder(t *testing.T) {
	l := threePages()
	want := l.Pages()
	i := 0
	for p := range l.All() {
		if p != want[i] {
			t.Errorf("All() yielded wrong page at %d", i)
		}
		i++
	}
	if i != 3 {
		t.Errorf("All() yielded %d pages, want 3", i)
	}

	// Early break must not panic or overrun.
	n := 0
	for range l.All() {
		n++
		break
	}
	if n != 1 {
		t.Errorf("All() with break yielded %d pages, want 1", n)
	}
}
