package services

import (
	"fmt"
	"slices"
	"strings"

	"github.com/samber/lo"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

const DefaultPageSize = 10

type Identifiable interface {
	GetID() string
}

type SortKey struct {
	Column string
	Desc   bool
}

var OrderNewest = []SortKey{{Column: "created_at", Desc: true}}

type PageOptions struct {
	Take   int
	Cursor *string
	// Order defaults to newest first. The id is always appended as the final tiebreaker.
	Order []SortKey
}

type Edge[T any] struct {
	Cursor string `json:"cursor"`
	Node   T      `json:"node"`
}

type PageInfo struct {
	EndCursor   *string `json:"endCursor"`
	HasNextPage bool    `json:"hasNextPage"`
}

type Page[T any] struct {
	Edges    []Edge[T] `json:"edges"`
	PageInfo PageInfo  `json:"pageInfo"`
}

func (v Page[T]) Nodes() []T {
	return lo.Map(v.Edges, func(item Edge[T], _ int) T {
		return item.Node
	})
}

// Paginate runs a keyset paginated read of query. When a full page comes back the
// lookahead query (query itself when nil) decides whether anything follows the last row.
func Paginate[T Identifiable](query, lookahead *gorm.DB, opts PageOptions) (Page[T], error) {
	page := Page[T]{Edges: []Edge[T]{}}

	take := opts.Take
	if take <= 0 {
		take = DefaultPageSize
	}
	order := withTiebreaker(opts.Order)
	if lookahead == nil {
		lookahead = query
	}

	tx := query.Session(&gorm.Session{})
	if opts.Cursor != nil && len(*opts.Cursor) > 0 {
		var found bool
		var err error
		if tx, found, err = afterRow[T](tx, order, *opts.Cursor); err != nil {
			return page, err
		} else if !found {
			return page, nil
		}
	}

	var items []T
	if err := applyOrder(tx, order).Limit(take).Find(&items).Error; err != nil {
		return page, fmt.Errorf("unable to list page: %v", err)
	}
	page.Edges = lo.Map(items, func(item T, _ int) Edge[T] {
		return Edge[T]{Cursor: item.GetID(), Node: item}
	})
	if len(items) < take {
		return page, nil
	}

	last := items[len(items)-1].GetID()
	next, found, err := afterRow[T](lookahead.Session(&gorm.Session{}), order, last)
	if err != nil {
		return page, err
	} else if !found {
		return page, nil
	}

	var more []string
	if err := applyOrder(next.Model(new(T)), order).Limit(take).Pluck("id", &more).Error; err != nil {
		return page, fmt.Errorf("unable to look ahead: %v", err)
	}
	if len(more) > 0 {
		page.PageInfo = PageInfo{EndCursor: &last, HasNextPage: true}
	}

	return page, nil
}

func withTiebreaker(order []SortKey) []SortKey {
	if len(order) == 0 {
		order = OrderNewest
	}
	order = slices.Clone(order)
	if order[len(order)-1].Column != "id" {
		order = append(order, SortKey{Column: "id", Desc: true})
	}
	return order
}

func applyOrder(tx *gorm.DB, order []SortKey) *gorm.DB {
	for _, key := range order {
		tx = tx.Order(clause.OrderByColumn{Column: clause.Column{Name: key.Column}, Desc: key.Desc})
	}
	return tx
}

// afterRow restricts tx to rows strictly after the row with the given id. The second
// return is false when that row does not exist.
func afterRow[T any](tx *gorm.DB, order []SortKey, id string) (*gorm.DB, bool, error) {
	columns := lo.Map(order, func(item SortKey, _ int) string {
		return item.Column
	})

	values := map[string]any{}
	if err := tx.Session(&gorm.Session{NewDB: true}).
		Model(new(T)).
		Select(columns).
		Where("id = ?", id).
		Limit(1).
		Find(&values).Error; err != nil {
		return tx, false, fmt.Errorf("unable to load cursor: %v", err)
	}
	if len(values) == 0 {
		return tx, false, nil
	}

	var clauses []string
	var args []any
	for idx, key := range order {
		parts := make([]string, 0, idx+1)
		for _, prev := range order[:idx] {
			parts = append(parts, prev.Column+" = ?")
			args = append(args, values[prev.Column])
		}
		op := ">"
		if key.Desc {
			op = "<"
		}
		parts = append(parts, key.Column+" "+op+" ?")
		args = append(args, values[key.Column])
		clauses = append(clauses, "("+strings.Join(parts, " AND ")+")")
	}

	return tx.Where("("+strings.Join(clauses, " OR ")+")", args...), true, nil
}
