// Package pagination implements the page arithmetic shared by every
// paginated menu surface: starter lists, combo lists, player lists and
// resource lists.
package pagination

// Paginator tracks a zero-based page over a fixed item count. A collection
// with zero items still has one (empty) page, so navigation controls always
// have a valid page to render.
type Paginator struct {
	count   int
	perPage int
	page    int
}

// New builds a paginator over count items with perPage items per page.
// Non-positive perPage values clamp to one.
func New(count, perPage int) *Paginator {
	if count < 0 {
		count = 0
	}
	if perPage < 1 {
		perPage = 1
	}
	return &Paginator{count: count, perPage: perPage}
}

func (p *Paginator) Count() int   { return p.count }
func (p *Paginator) PerPage() int { return p.perPage }
func (p *Paginator) Page() int    { return p.page }

// PageCount is ceil(count/perPage), never less than one.
func (p *Paginator) PageCount() int {
	pages := (p.count + p.perPage - 1) / p.perPage
	if pages < 1 {
		pages = 1
	}
	return pages
}

// Bounds returns the half-open [start, end) index range of the current page.
// The end bound is trimmed to the item count; the start is not clamped, so a
// stale page past the end yields an empty range rather than a panic.
func (p *Paginator) Bounds() (start, end int) {
	start = p.page * p.perPage
	end = start + p.perPage
	if end > p.count {
		end = p.count
	}
	if start > end {
		start = end
	}
	return start, end
}

// SetPage moves to the given page, clamping into [0, PageCount()-1].
func (p *Paginator) SetPage(page int) {
	last := p.PageCount() - 1
	if page < 0 {
		page = 0
	}
	if page > last {
		page = last
	}
	p.page = page
}

// Next advances one page and reports whether the page actually changed.
func (p *Paginator) Next() bool {
	if p.page >= p.PageCount()-1 {
		return false
	}
	p.page++
	return true
}

// Prev steps back one page and reports whether the page actually changed.
func (p *Paginator) Prev() bool {
	if p.page <= 0 {
		return false
	}
	p.page--
	return true
}

// HasPrev reports whether a previous page exists.
func (p *Paginator) HasPrev() bool { return p.page > 0 }

// HasNext reports whether a following page exists.
func (p *Paginator) HasNext() bool { return p.page < p.PageCount()-1 }

// Resize updates the item count in place, clamping the current page back
// into range when items were removed.
func (p *Paginator) Resize(count int) {
	if count < 0 {
		count = 0
	}
	p.count = count
	p.SetPage(p.page)
}

// PageFor returns the page number that contains the item at index.
func (p *Paginator) PageFor(index int) int {
	if index < 0 {
		return 0
	}
	page := index / p.perPage
	last := p.PageCount() - 1
	if page > last {
		page = last
	}
	return page
}

// Slice returns the sub-slice of items covered by the current page.
func Slice[T any](p *Paginator, items []T) []T {
	start, end := p.Bounds()
	if start >= len(items) {
		return nil
	}
	if end > len(items) {
		end = len(items)
	}
	return items[start:end]
}
