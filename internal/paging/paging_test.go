package paging

import (
	"context"
	"errors"
	"fmt"
	"testing"
)

func strPtr(s string) *string { return &s }

func TestDrainPages(t *testing.T) {
	t.Run("Concatenates Pages In Order", func(t *testing.T) {
		sizes := []int{50, 50, 23}
		calls := 0

		fetch := func(ctx context.Context, limit, offset int) (*Page[int], error) {
			if limit != 50 {
				t.Errorf("expected limit 50, got %d", limit)
			}
			if offset != calls*50 {
				t.Errorf("expected offset %d, got %d", calls*50, offset)
			}

			size := sizes[calls]
			items := make([]int, size)
			for i := range items {
				items[i] = calls*50 + i
			}

			page := &Page[int]{Items: items, Limit: limit, Offset: offset}
			if calls < len(sizes)-1 {
				page.Next = strPtr("https://api.spotify.com/v1/me/tracks?offset=" + fmt.Sprint(offset+limit))
			}
			calls++
			return page, nil
		}

		items, err := DrainPages(context.Background(), 50, fetch)
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if len(items) != 123 {
			t.Fatalf("expected 123 items, got %d", len(items))
		}
		for i, v := range items {
			if v != i {
				t.Fatalf("expected item %d at index %d, got %d", i, i, v)
			}
		}
		if calls != 3 {
			t.Errorf("expected 3 fetches, got %d", calls)
		}
	})

	t.Run("Single Page Without Next", func(t *testing.T) {
		fetch := func(ctx context.Context, limit, offset int) (*Page[string], error) {
			return &Page[string]{Items: []string{"a", "b"}}, nil
		}

		items, err := DrainPages(context.Background(), 50, fetch)
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if len(items) != 2 {
			t.Errorf("expected 2 items, got %d", len(items))
		}
	})

	t.Run("Empty Page Without Next Terminates", func(t *testing.T) {
		fetch := func(ctx context.Context, limit, offset int) (*Page[string], error) {
			return &Page[string]{Items: nil, Next: nil}, nil
		}

		items, err := DrainPages(context.Background(), 50, fetch)
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if len(items) != 0 {
			t.Errorf("expected no items, got %d", len(items))
		}
	})

	t.Run("Fetch Error Aborts And Discards", func(t *testing.T) {
		boom := errors.New("boom")
		calls := 0
		fetch := func(ctx context.Context, limit, offset int) (*Page[int], error) {
			calls++
			if calls == 2 {
				return nil, boom
			}
			return &Page[int]{Items: []int{1, 2, 3}, Next: strPtr("next")}, nil
		}

		items, err := DrainPages(context.Background(), 50, fetch)
		if !errors.Is(err, boom) {
			t.Fatalf("expected boom error, got %v", err)
		}
		if items != nil {
			t.Errorf("expected discarded items, got %v", items)
		}
	})

	t.Run("Clamps Invalid Limit", func(t *testing.T) {
		fetch := func(ctx context.Context, limit, offset int) (*Page[int], error) {
			if limit != MaxPageSize {
				t.Errorf("expected limit clamped to %d, got %d", MaxPageSize, limit)
			}
			return &Page[int]{}, nil
		}

		if _, err := DrainPages(context.Background(), 0, fetch); err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if _, err := DrainPages(context.Background(), 500, fetch); err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
	})
}

func TestDrainCursor(t *testing.T) {
	t.Run("Threads After Cursor Until Nil", func(t *testing.T) {
		cursors := []*string{strPtr("c1"), strPtr("c2"), nil}
		var seen []string
		calls := 0

		fetch := func(ctx context.Context, limit int, after string) (*CursorPage[string], error) {
			seen = append(seen, after)
			page := &CursorPage[string]{
				Items:   []string{fmt.Sprintf("artist-%d", calls)},
				Cursors: Cursors{After: cursors[calls]},
			}
			calls++
			return page, nil
		}

		items, err := DrainCursor(context.Background(), 50, fetch)
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}

		// one initial fetch plus one per non-nil cursor
		if calls != 3 {
			t.Fatalf("expected 3 fetches, got %d", calls)
		}
		if seen[0] != "" || seen[1] != "c1" || seen[2] != "c2" {
			t.Errorf("unexpected cursor sequence: %v", seen)
		}
		if len(items) != 3 {
			t.Errorf("expected 3 items, got %d", len(items))
		}
	})

	t.Run("Empty After String Terminates", func(t *testing.T) {
		fetch := func(ctx context.Context, limit int, after string) (*CursorPage[int], error) {
			return &CursorPage[int]{Items: []int{1}, Cursors: Cursors{After: strPtr("")}}, nil
		}

		items, err := DrainCursor(context.Background(), 50, fetch)
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if len(items) != 1 {
			t.Errorf("expected 1 item, got %d", len(items))
		}
	})

	t.Run("Fetch Error Aborts", func(t *testing.T) {
		boom := errors.New("boom")
		fetch := func(ctx context.Context, limit int, after string) (*CursorPage[int], error) {
			return nil, boom
		}

		if _, err := DrainCursor(context.Background(), 50, fetch); !errors.Is(err, boom) {
			t.Fatalf("expected boom error, got %v", err)
		}
	})
}
