// package paging drains paginated Spotify Web API endpoints into complete item slices.
//
// The API paginates collections two ways: most library endpoints use
// limit/offset paging objects, while followed artists uses an opaque
// "after" cursor. Both drainers return the full ordered item sequence or
// nothing: any page fetch error aborts the drain and discards items
// accumulated so far.
package paging

import "context"

// MaxPageSize is the documented maximum page size accepted by the API.
const MaxPageSize = 50

// Page represents an offset-based paging object.
type Page[T any] struct {
	Href     string  `json:"href"`
	Items    []T     `json:"items"`
	Limit    int     `json:"limit"`
	Next     *string `json:"next"`
	Offset   int     `json:"offset"`
	Previous *string `json:"previous"`
	Total    int     `json:"total"`
}

// Cursors holds the opaque continuation cursor of a cursor-based paging object.
type Cursors struct {
	After *string `json:"after"`
}

// CursorPage represents a cursor-based paging object.
type CursorPage[T any] struct {
	Href    string  `json:"href"`
	Items   []T     `json:"items"`
	Limit   int     `json:"limit"`
	Next    *string `json:"next"`
	Cursors Cursors `json:"cursors"`
	Total   int     `json:"total"`
}

// PageFunc fetches one offset page. Implementations clamp limit to the
// endpoint's maximum themselves.
type PageFunc[T any] func(ctx context.Context, limit, offset int) (*Page[T], error)

// CursorFunc fetches one cursor page. An empty after string requests the first page.
type CursorFunc[T any] func(ctx context.Context, limit int, after string) (*CursorPage[T], error)

// DrainPages fetches offset pages of size limit until the response carries no
// next page, concatenating items in page order.
//
// The offset advances by limit each iteration regardless of how many items the
// page actually returned, mirroring how the API computes its next URL.
func DrainPages[T any](ctx context.Context, limit int, fetch PageFunc[T]) ([]T, error) {
	if limit <= 0 || limit > MaxPageSize {
		limit = MaxPageSize
	}

	var items []T
	offset := 0

	for {
		page, err := fetch(ctx, limit, offset)
		if err != nil {
			return nil, err
		}

		items = append(items, page.Items...)

		if page.Next == nil || *page.Next == "" {
			return items, nil
		}
		offset += limit
	}
}

// DrainCursor fetches cursor pages of size limit, threading the returned
// after cursor until the response no longer carries one.
func DrainCursor[T any](ctx context.Context, limit int, fetch CursorFunc[T]) ([]T, error) {
	if limit <= 0 || limit > MaxPageSize {
		limit = MaxPageSize
	}

	var items []T
	after := ""

	for {
		page, err := fetch(ctx, limit, after)
		if err != nil {
			return nil, err
		}

		items = append(items, page.Items...)

		if page.Cursors.After == nil || *page.Cursors.After == "" {
			return items, nil
		}
		after = *page.Cursors.After
	}
}
