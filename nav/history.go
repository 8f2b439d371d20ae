// Package nav keeps the shareable page state: a URL whose "category"
// query parameter names the active category.
package nav

import (
	"fmt"
	"net/url"

	"github.com/qyinm/pullshop/types"
)

// QueryKey is the query parameter carrying the category.
const QueryKey = "category"

// History records category switches as URL entries without reloading
// anything. It satisfies view.Router.
type History struct {
	current url.URL
	entries []string
}

// Parse builds a History from raw. A missing or unparsable URL starts from
// an empty relative URL.
func Parse(raw string) *History {
	h := &History{}
	if u, err := url.Parse(raw); err == nil {
		h.current = *u
	}
	h.entries = append(h.entries, h.current.String())
	return h
}

// Category returns the category named by the URL, or the default.
func (h *History) Category() types.Category {
	return types.ParseCategory(h.current.Query().Get(QueryKey))
}

// CategoryChanged rewrites the query parameter and pushes a new entry.
func (h *History) CategoryChanged(c types.Category) {
	q := h.current.Query()
	q.Set(QueryKey, string(c))
	h.current.RawQuery = q.Encode()
	h.entries = append(h.entries, h.current.String())
}

// URL returns the current shareable URL.
func (h *History) URL() string {
	return h.current.String()
}

// Entries returns every URL pushed so far, oldest first.
func (h *History) Entries() []string {
	return append([]string(nil), h.entries...)
}

// String implements fmt.Stringer.
func (h *History) String() string {
	return fmt.Sprintf("%s (%d entries)", h.URL(), len(h.entries))
}
