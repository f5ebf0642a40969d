package pagination

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"

	"dancerfit/admin-dashboard/internal/domain"
)

// pagedFetcher serves lastPage pages holding a single item equal to the page number.
func pagedFetcher(lastPage int) Fetcher[int] {
	return func(ctx context.Context, page int) (domain.Envelope[int], error) {
		env := domain.Envelope[int]{CurrentPage: page, LastPage: lastPage, Data: []int{page}}
		if page < lastPage {
			u := fmt.Sprintf("/items?page=%d", page+1)
			env.NextPageURL = &u
		}
		if page > 1 {
			u := fmt.Sprintf("/items?page=%d", page-1)
			env.PrevPageURL = &u
		}
		return env, nil
	}
}

func TestCursorNavigationFollowsLinks(t *testing.T) {
	ctx := context.Background()
	c := New("items", pagedFetcher(2))

	if c.CanPrevious() || c.CanNext() {
		t.Fatal("fresh cursor must not allow navigation")
	}
	if _, err := c.Previous(ctx); !errors.Is(err, ErrNoPreviousPage) {
		t.Fatalf("Previous on page 1: %v", err)
	}

	if _, err := c.Fetch(ctx, 1); err != nil {
		t.Fatal(err)
	}
	if !c.CanNext() || c.CanPrevious() {
		t.Fatalf("page 1: next=%v prev=%v", c.CanNext(), c.CanPrevious())
	}

	env, err := c.Next(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if env.CurrentPage != 2 || env.Data[0] != 2 {
		t.Fatalf("unexpected page: %+v", env)
	}
	if c.CanNext() {
		t.Fatal("last page must not allow next")
	}
	if _, err := c.Next(ctx); !errors.Is(err, ErrNoNextPage) {
		t.Fatalf("Next on last page: %v", err)
	}
	if c.CurrentPage() != 2 {
		t.Fatalf("refused Next must not move the cursor, page=%d", c.CurrentPage())
	}
}

func TestCursorRejectsPageBelowOne(t *testing.T) {
	c := New("items", pagedFetcher(3))
	for _, page := range []int{0, -1} {
		if _, err := c.Fetch(context.Background(), page); !errors.Is(err, ErrInvalidPage) {
			t.Fatalf("Fetch(%d): %v", page, err)
		}
	}
}

func TestCursorTrustsServerLinksOverPageCount(t *testing.T) {
	// Server says last_page is 3 but sends no next link.
	c := New("items", func(ctx context.Context, page int) (domain.Envelope[int], error) {
		return domain.Envelope[int]{CurrentPage: 1, LastPage: 3, Data: []int{1}}, nil
	})
	if _, err := c.Fetch(context.Background(), 1); err != nil {
		t.Fatal(err)
	}
	if c.CanNext() {
		t.Fatal("next must follow next_page_url, not last_page")
	}
}

func TestCursorFailureLeavesStateUnchanged(t *testing.T) {
	ctx := context.Background()
	fail := false
	good := pagedFetcher(3)
	c := New("items", func(ctx context.Context, page int) (domain.Envelope[int], error) {
		if fail {
			return domain.Envelope[int]{}, errors.New("boom")
		}
		return good(ctx, page)
	})
	if _, err := c.Fetch(ctx, 2); err != nil {
		t.Fatal(err)
	}
	fail = true
	if _, err := c.Fetch(ctx, 3); err == nil {
		t.Fatal("expected error")
	}
	snap := c.Snapshot()
	if snap.CurrentPage != 2 || snap.Data[0] != 2 {
		t.Fatalf("state changed after failure: %+v", snap)
	}
}

func TestCursorDiscardsStaleResponse(t *testing.T) {
	ctx := context.Background()
	release := make(chan struct{})
	started := make(chan struct{})
	good := pagedFetcher(3)

	c := New("items", func(ctx context.Context, page int) (domain.Envelope[int], error) {
		if page == 1 {
			close(started)
			<-release // page 1 is slow
		}
		return good(ctx, page)
	})

	var wg sync.WaitGroup
	var slowErr error
	wg.Add(1)
	go func() {
		defer wg.Done()
		_, slowErr = c.Fetch(ctx, 1)
	}()
	<-started

	if _, err := c.Fetch(ctx, 2); err != nil {
		t.Fatalf("fast fetch: %v", err)
	}
	close(release)
	wg.Wait()

	if !errors.Is(slowErr, ErrStale) {
		t.Fatalf("slow fetch err = %v, want ErrStale", slowErr)
	}
	if got := c.Snapshot(); got.CurrentPage != 2 || got.Data[0] != 2 {
		t.Fatalf("stale response overwrote newer page: %+v", got)
	}
}

func TestCursorRefreshUsesLastKnownPage(t *testing.T) {
	ctx := context.Background()
	var requested []int
	good := pagedFetcher(3)
	c := New("items", func(ctx context.Context, page int) (domain.Envelope[int], error) {
		requested = append(requested, page)
		return good(ctx, page)
	})
	_, _ = c.Fetch(ctx, 3)
	if _, err := c.Refresh(ctx); err != nil {
		t.Fatal(err)
	}
	if requested[len(requested)-1] != 3 {
		t.Fatalf("refresh requested page %d, want 3", requested[len(requested)-1])
	}
}

func TestCursorUpdateAndSnapshotIsolation(t *testing.T) {
	c := New("items", pagedFetcher(1))
	_, _ = c.Fetch(context.Background(), 1)

	snap := c.Snapshot()
	snap.Data[0] = 99
	if c.Snapshot().Data[0] != 1 {
		t.Fatal("snapshot must not alias cursor state")
	}

	c.Update(func(env *domain.Envelope[int]) {
		env.Data = env.Data[:0]
	})
	if n := len(c.Snapshot().Data); n != 0 {
		t.Fatalf("update not applied, len=%d", n)
	}
}
