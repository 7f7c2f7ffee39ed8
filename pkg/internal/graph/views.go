package graph

import (
	"context"

	"github.com/diirtv/stations/pkg/internal/models"
	"github.com/diirtv/stations/pkg/internal/services"
	"github.com/diirtv/stations/pkg/internal/services/queries"
	"github.com/samber/lo"
)

// The views below remember who asked, so nested fields can answer per requestor.

type stationView struct {
	models.Station
	requestorID *string
}

type publishView struct {
	queries.PublishWithMeta
	requestorID *string
}

type commentView struct {
	queries.CommentWithMeta
	requestorID *string
}

func viewStation(station models.Station, requestorID *string) stationView {
	return stationView{Station: station, requestorID: requestorID}
}

func viewStations(stations []models.Station, requestorID *string) []stationView {
	return lo.Map(stations, func(item models.Station, _ int) stationView {
		return viewStation(item, requestorID)
	})
}

func viewPublishes(ctx context.Context, publishes []models.Publish, requestorID *string) ([]publishView, error) {
	items, err := queries.CompletePublishMeta(ctx, requestorID, publishes...)
	if err != nil {
		return nil, err
	}
	return lo.Map(items, func(item queries.PublishWithMeta, _ int) publishView {
		return publishView{PublishWithMeta: item, requestorID: requestorID}
	}), nil
}

func viewPublish(ctx context.Context, publish models.Publish, requestorID *string) (any, error) {
	views, err := viewPublishes(ctx, []models.Publish{publish}, requestorID)
	if err != nil {
		return nil, err
	}
	return views[0], nil
}

func viewComments(ctx context.Context, comments []models.Comment, requestorID *string) ([]commentView, error) {
	items, err := queries.CompleteCommentMeta(ctx, requestorID, comments...)
	if err != nil {
		return nil, err
	}
	return lo.Map(items, func(item queries.CommentWithMeta, _ int) commentView {
		return commentView{CommentWithMeta: item, requestorID: requestorID}
	}), nil
}

// connection shapes a page for the *Connection types. nodes lines up with the page edges.
func connection[T any, V any](page services.Page[T], nodes []V) map[string]any {
	edges := make([]map[string]any, len(page.Edges))
	for idx, edge := range page.Edges {
		edges[idx] = map[string]any{"cursor": edge.Cursor, "node": nodes[idx]}
	}
	return map[string]any{
		"pageInfo": page.PageInfo,
		"edges":    edges,
	}
}

func plainConnection[T any](page services.Page[T]) map[string]any {
	return connection(page, page.Nodes())
}

func publishConnection(ctx context.Context, page services.Page[models.Publish], requestorID *string) (any, error) {
	nodes, err := viewPublishes(ctx, page.Nodes(), requestorID)
	if err != nil {
		return nil, err
	}
	return connection(page, nodes), nil
}

func commentConnection(ctx context.Context, page services.Page[models.Comment], requestorID *string) (any, error) {
	nodes, err := viewComments(ctx, page.Nodes(), requestorID)
	if err != nil {
		return nil, err
	}
	return connection(page, nodes), nil
}

func writeResult() map[string]any {
	return map[string]any{"status": "Ok"}
}
