package services

import (
	"testing"
	"time"

	"github.com/diirtv/stations/pkg/internal/database"
	"github.com/diirtv/stations/pkg/internal/models"
	"github.com/samber/lo"
)

func TestPaginateCompleteness(t *testing.T) {
	setupTestDB(t)
	account := seedAccount(t, "0xaaaa", lo.ToPtr("uid-a"), models.AccountTypeTraditional)
	station := seedStation(t, account, "alice")

	// Pairs of publishes share a timestamp so the id tiebreaker matters.
	for i := 0; i < 25; i++ {
		seedPublish(t, station, i/2)
	}

	var seen []string
	var sizes []int
	var hasNext []bool
	var cursor *string
	for {
		page, err := Paginate[models.Publish](database.C.Model(&models.Publish{}), nil, PageOptions{
			Take:   10,
			Cursor: cursor,
		})
		if err != nil {
			t.Fatalf("Paginate failed: %v", err)
		}
		sizes = append(sizes, len(page.Edges))
		hasNext = append(hasNext, page.PageInfo.HasNextPage)
		for _, edge := range page.Edges {
			seen = append(seen, edge.Node.ID)
		}

		if page.PageInfo.HasNextPage {
			last := page.Edges[len(page.Edges)-1].Node.ID
			if page.PageInfo.EndCursor == nil || *page.PageInfo.EndCursor != last {
				t.Fatalf("end cursor must be the last returned id")
			}
		} else if page.PageInfo.EndCursor != nil {
			t.Fatalf("end cursor must be nil on the last page")
		}

		if !page.PageInfo.HasNextPage {
			break
		}
		cursor = page.PageInfo.EndCursor
	}

	if len(sizes) != 3 || sizes[0] != 10 || sizes[1] != 10 || sizes[2] != 5 {
		t.Fatalf("expected page sizes [10 10 5], got %v", sizes)
	}
	if !hasNext[0] || !hasNext[1] || hasNext[2] {
		t.Errorf("expected hasNextPage [true true false], got %v", hasNext)
	}
	if len(lo.Uniq(seen)) != 25 {
		t.Errorf("expected 25 unique items, got %d", len(lo.Uniq(seen)))
	}

	var expected []string
	database.C.Model(&models.Publish{}).Order("created_at DESC, id DESC").Pluck("id", &expected)
	for i := range expected {
		if expected[i] != seen[i] {
			t.Fatalf("item %d out of order: expected %s, got %s", i, expected[i], seen[i])
		}
	}
}

func TestPaginateExactMultiple(t *testing.T) {
	setupTestDB(t)
	account := seedAccount(t, "0xaaaa", lo.ToPtr("uid-a"), models.AccountTypeTraditional)
	station := seedStation(t, account, "alice")
	for i := 0; i < 10; i++ {
		seedPublish(t, station, i)
	}

	page, err := Paginate[models.Publish](database.C.Model(&models.Publish{}), nil, PageOptions{Take: 10})
	if err != nil {
		t.Fatalf("Paginate failed: %v", err)
	}
	if len(page.Edges) != 10 {
		t.Fatalf("expected 10 items, got %d", len(page.Edges))
	}
	if page.PageInfo.HasNextPage || page.PageInfo.EndCursor != nil {
		t.Errorf("expected a final page, got %+v", page.PageInfo)
	}
}

func TestPaginateUnknownCursor(t *testing.T) {
	setupTestDB(t)
	account := seedAccount(t, "0xaaaa", lo.ToPtr("uid-a"), models.AccountTypeTraditional)
	station := seedStation(t, account, "alice")
	seedPublish(t, station, 0)

	page, err := Paginate[models.Publish](database.C.Model(&models.Publish{}), nil, PageOptions{
		Take:   10,
		Cursor: lo.ToPtr("missing"),
	})
	if err != nil {
		t.Fatalf("Paginate failed: %v", err)
	}
	if len(page.Edges) != 0 || page.PageInfo.HasNextPage {
		t.Errorf("expected an empty final page, got %d items", len(page.Edges))
	}
}

func TestPaginateCustomOrder(t *testing.T) {
	setupTestDB(t)
	account := seedAccount(t, "0xaaaa", lo.ToPtr("uid-a"), models.AccountTypeTraditional)
	station := seedStation(t, account, "alice")
	publish := seedPublish(t, station, 0)

	counts := []int64{3, 0, 5, 3, 1, 0}
	for i, count := range counts {
		comment := models.Comment{
			CreatorID:     station.ID,
			PublishID:     publish.ID,
			CommentType:   models.CommentTypePublish,
			Content:       "hi",
			CommentsCount: count,
		}
		comment.CreatedAt = baseTime.Add(time.Duration(i) * time.Minute)
		mustCreate(t, &comment)
	}

	order := []SortKey{{Column: "comments_count", Desc: true}, {Column: "created_at", Desc: true}}
	var got []int64
	var cursor *string
	for {
		page, err := Paginate[models.Comment](database.C.Model(&models.Comment{}), nil, PageOptions{
			Take:   4,
			Cursor: cursor,
			Order:  order,
		})
		if err != nil {
			t.Fatalf("Paginate failed: %v", err)
		}
		for _, edge := range page.Edges {
			got = append(got, edge.Node.CommentsCount)
		}
		if !page.PageInfo.HasNextPage {
			break
		}
		cursor = page.PageInfo.EndCursor
	}

	want := []int64{5, 3, 3, 1, 0, 0}
	if len(got) != len(want) {
		t.Fatalf("expected %v, got %v", want, got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("expected %v, got %v", want, got)
		}
	}
}
