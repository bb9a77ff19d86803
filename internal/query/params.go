// Package query models the combined page/size/sort/search descriptor that
// drives an order list read. It is a pure state container: no network or
// rendering side effects.
package query

import (
	"fmt"
	"net/url"
	"strconv"
)

// SortField is a sortable column of the order list.
type SortField string

const (
	SortByCustomerName SortField = "customerName"
	SortByOrderDate    SortField = "orderDate"
	SortByFinalAmount  SortField = "finalAmount"
)

// SortDirection is the direction of a sort.
type SortDirection string

const (
	Asc  SortDirection = "asc"
	Desc SortDirection = "desc"
)

// Params holds the current list query state. Any change to search, sort, or
// page size resets the page to 0; only SetPage leaves the rest untouched.
type Params struct {
	page          int
	pageSize      int
	sortField     SortField
	sortDirection SortDirection
	searchTerm    string

	allowedPageSizes []int
}

// New creates Params with the default sort (order date, newest first) and
// the given initial page size. Sizes not in allowedSizes are rejected later
// by SetPageSize; the initial size is trusted, config validates it.
func New(pageSize int, allowedSizes []int) *Params {
	return &Params{
		pageSize:         pageSize,
		sortField:        SortByOrderDate,
		sortDirection:    Desc,
		allowedPageSizes: allowedSizes,
	}
}

// Page returns the 0-based page index.
func (p *Params) Page() int { return p.page }

// PageSize returns the current page size.
func (p *Params) PageSize() int { return p.pageSize }

// SortField returns the active sort column.
func (p *Params) SortField() SortField { return p.sortField }

// SortDirection returns the active sort direction.
func (p *Params) SortDirection() SortDirection { return p.sortDirection }

// SearchTerm returns the current search string, possibly empty.
func (p *Params) SearchTerm() string { return p.searchTerm }

// SetPage moves to another page without touching any other field.
func (p *Params) SetPage(page int) {
	if page < 0 {
		page = 0
	}
	p.page = page
}

// SetPageSize changes the page size and resets to the first page.
// Sizes outside the allowed set are ignored.
func (p *Params) SetPageSize(size int) {
	for _, allowed := range p.allowedPageSizes {
		if size == allowed {
			p.pageSize = size
			p.page = 0
			return
		}
	}
}

// ToggleSort selects a sort column. Selecting the already-active ascending
// field flips it to descending; selecting a new field defaults to
// ascending. Either way the page resets to 0.
func (p *Params) ToggleSort(field SortField) {
	if p.sortField == field && p.sortDirection == Asc {
		p.sortDirection = Desc
	} else {
		p.sortField = field
		p.sortDirection = Asc
	}
	p.page = 0
}

// SetSearchTerm replaces the search string and resets to the first page.
// Callers are expected to debounce raw keystrokes before reaching this.
func (p *Params) SetSearchTerm(term string) {
	p.searchTerm = term
	p.page = 0
}

// Descriptor is the serialized request form of the query state.
type Descriptor struct {
	Page  int
	Size  int
	Query string
	Sort  string // "<field>,<direction>"
}

// Descriptor serializes the current state into a request descriptor.
func (p *Params) Descriptor() Descriptor {
	return Descriptor{
		Page:  p.page,
		Size:  p.pageSize,
		Query: p.searchTerm,
		Sort:  fmt.Sprintf("%s,%s", p.sortField, p.sortDirection),
	}
}

// Encode renders the descriptor as a URL query string. The query parameter
// is always present, even when empty.
func (d Descriptor) Encode() string {
	values := url.Values{}
	values.Set("page", strconv.Itoa(d.Page))
	values.Set("size", strconv.Itoa(d.Size))
	values.Set("query", d.Query)
	values.Set("sort", d.Sort)
	return values.Encode()
}
