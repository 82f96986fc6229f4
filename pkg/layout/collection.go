package layout

import (
	"iter"
	"slices"

	"github.com/matzehuels/pageview/pkg/errors"
	"github.com/matzehuels/pageview/pkg/page"
)

// Append adds a page at the end of the collection.
func (l *Layout) Append(p page.Page) {
	l.pages = append(l.pages, p)
}

// Insert inserts a page at the given index. Indexes outside [0, Len()]
// are clamped, so Insert never fails.
func (l *Layout) Insert(index int, p page.Page) {
	if index < 0 {
		index = 0
	}
	if index > len(l.pages) {
		index = len(l.pages)
	}
	l.pages = slices.Insert(l.pages, index, p)
}

// Extend appends each of the given pages, preserving their order.
func (l *Layout) Extend(pages ...page.Page) {
	l.pages = append(l.pages, pages...)
}

// Remove removes the first occurrence of the given page, compared by
// identity. It fails with PAGE_NOT_FOUND if the page is absent.
func (l *Layout) Remove(p page.Page) error {
	i, err := l.Index(p)
	if err != nil {
		return err
	}
	l.pages = slices.Delete(l.pages, i, i+1)
	return nil
}

// Pop removes and returns the page at the given index.
// It fails with OUT_OF_RANGE on a bad index.
func (l *Layout) Pop(index int) (page.Page, error) {
	if index < 0 || index >= len(l.pages) {
		return nil, errors.New(errors.ErrCodeOutOfRange, "pop index %d out of range (len %d)", index, len(l.pages))
	}
	p := l.pages[index]
	l.pages = slices.Delete(l.pages, index, index+1)
	return p, nil
}

// PopLast removes and returns the last page.
// It fails with OUT_OF_RANGE on an empty collection.
func (l *Layout) PopLast() (page.Page, error) {
	return l.Pop(len(l.pages) - 1)
}

// Clear removes all pages.
func (l *Layout) Clear() {
	l.pages = nil
}

// Len returns the number of pages.
func (l *Layout) Len() int {
	return len(l.pages)
}

// Contains reports whether the given page is in the collection,
// compared by identity.
func (l *Layout) Contains(p page.Page) bool {
	_, err := l.Index(p)
	return err == nil
}

// Index returns the index at which the given page can be found.
// It fails with PAGE_NOT_FOUND if the page is absent.
func (l *Layout) Index(p page.Page) (int, error) {
	for i, q := range l.pages {
		if q == p {
			return i, nil
		}
	}
	return 0, errors.New(errors.ErrCodePageNotFound, "page not in layout")
}

// At returns the page at the given index.
// It fails with OUT_OF_RANGE on a bad index.
func (l *Layout) At(index int) (page.Page, error) {
	if index < 0 || index >= len(l.pages) {
		return nil, errors.New(errors.ErrCodeOutOfRange, "index %d out of range (len %d)", index, len(l.pages))
	}
	return l.pages[index], nil
}

// SetAt replaces the page at the given index.
// It fails with OUT_OF_RANGE on a bad index.
func (l *Layout) SetAt(index int, p page.Page) error {
	if index < 0 || index >= len(l.pages) {
		return errors.New(errors.ErrCodeOutOfRange, "index %d out of range (len %d)", index, len(l.pages))
	}
	l.pages[index] = p
	return nil
}

// RemoveAt removes the page at the given index.
// It fails with OUT_OF_RANGE on a bad index.
func (l *Layout) RemoveAt(index int) error {
	_, err := l.Pop(index)
	return err
}

// Range returns the pages in [from, to), like a slice expression.
// It fails with OUT_OF_RANGE if the bounds are invalid.
func (l *Layout) Range(from, to int) ([]page.Page, error) {
	if from < 0 || to > len(l.pages) || from > to {
		return nil, errors.New(errors.ErrCodeOutOfRange, "range [%d:%d) out of range (len %d)", from, to, len(l.pages))
	}
	return slices.Clone(l.pages[from:to]), nil
}

// RemoveRange removes the pages in [from, to).
// It fails with OUT_OF_RANGE if the bounds are invalid.
func (l *Layout) RemoveRange(from, to int) error {
	if from < 0 || to > len(l.pages) || from > to {
		return errors.New(errors.ErrCodeOutOfRange, "range [%d:%d) out of range (len %d)", from, to, len(l.pages))
	}
	l.pages = slices.Delete(l.pages, from, to)
	return nil
}

// Pages returns a copy of the page sequence in collection order.
func (l *Layout) Pages() []page.Page {
	return slices.Clone(l.pages)
}

// All returns an iterator over the pages in collection order.
func (l *Layout) All() iter.Seq[page.Page] {
	return func(yield func(page.Page) bool) {
		for _, p := range l.pages {
			if !yield(p) {
				return
			}
		}
	}
}
