package graph

import (
	"context"

	"github.com/diirtv/stations/pkg/internal/metrics"
	"github.com/graphql-go/graphql"
)

type Config struct {
	// SignedMessage is the message wallet accounts sign when their signature carries none.
	SignedMessage string
	// APIKey gates createUser.
	APIKey string
}

type resolver struct {
	cfg Config
}

func NewSchema(cfg Config) (graphql.Schema, error) {
	v := &resolver{cfg: cfg}
	return graphql.NewSchema(graphql.SchemaConfig{
		Query: graphql.NewObject(graphql.ObjectConfig{
			Name:   "Query",
			Fields: v.queries(),
		}),
		Mutation: graphql.NewObject(graphql.ObjectConfig{
			Name:   "Mutation",
			Fields: v.mutations(),
		}),
	})
}

type Request struct {
	Query         string         `json:"query"`
	OperationName string         `json:"operationName"`
	Variables     map[string]any `json:"variables"`
}

// Execute runs one request against the schema with the session attached.
func Execute(ctx context.Context, schema graphql.Schema, session *Session, req Request) *graphql.Result {
	result := graphql.Do(graphql.Params{
		Schema:         schema,
		RequestString:  req.Query,
		OperationName:  req.OperationName,
		VariableValues: req.Variables,
		Context:        WithSession(ctx, session),
	})
	status := "ok"
	if result.HasErrors() {
		status = "error"
	}
	metrics.GraphqlOperationsTotal.WithLabelValues(status).Inc()
	return result
}
