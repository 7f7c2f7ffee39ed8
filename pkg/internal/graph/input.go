package graph

import (
	"github.com/diirtv/stations/pkg/internal/http/exts"
	"github.com/diirtv/stations/pkg/internal/services"
	"github.com/graphql-go/graphql"
	jsoniter "github.com/json-iterator/go"
	"github.com/samber/lo"
)

var jsonAPI = jsoniter.ConfigCompatibleWithStandardLibrary

// decodeInput copies the input argument into out and validates it.
func decodeInput(p graphql.ResolveParams, out any) error {
	raw, ok := p.Args["input"]
	if !ok || raw == nil {
		return services.ErrBadUserInput("input is required")
	}
	payload, err := jsonAPI.Marshal(raw)
	if err != nil {
		return services.ErrBadUserInput(err.Error())
	}
	if err := jsonAPI.Unmarshal(payload, out); err != nil {
		return services.ErrBadUserInput(err.Error())
	}
	if err := exts.ValidateStruct(out); err != nil {
		return services.ErrBadUserInput(err.Error())
	}
	return nil
}

func stringArg(p graphql.ResolveParams, name string) *string {
	if value, ok := p.Args[name].(string); ok && len(value) > 0 {
		return &value
	}
	return nil
}

// resolve turns failures into coded GraphQL errors.
func resolve(fn graphql.FieldResolveFn) graphql.FieldResolveFn {
	return func(p graphql.ResolveParams) (any, error) {
		out, err := fn(p)
		if err != nil {
			return nil, formatError(err)
		}
		return out, nil
	}
}

var (
	nonNullString = graphql.NewNonNull(graphql.String)
	nonNullInt    = graphql.NewNonNull(graphql.Int)
	nonNullFloat  = graphql.NewNonNull(graphql.Float)
	nonNullBool   = graphql.NewNonNull(graphql.Boolean)
	stringList    = graphql.NewList(nonNullString)
)

func newInput(name string, fields graphql.InputObjectConfigFieldMap) *graphql.InputObject {
	return graphql.NewInputObject(graphql.InputObjectConfig{Name: name, Fields: fields})
}

// withAuth adds the account id and owner every authenticated input carries.
func withAuth(fields graphql.InputObjectConfigFieldMap) graphql.InputObjectConfigFieldMap {
	return lo.Assign(graphql.InputObjectConfigFieldMap{
		"accountId": &graphql.InputObjectFieldConfig{Type: nonNullString},
		"owner":     &graphql.InputObjectFieldConfig{Type: nonNullString},
	}, fields)
}

func inputArg(input *graphql.InputObject) graphql.FieldConfigArgument {
	return graphql.FieldConfigArgument{
		"input": &graphql.ArgumentConfig{Type: graphql.NewNonNull(input)},
	}
}

func field(t graphql.Input) *graphql.InputObjectFieldConfig {
	return &graphql.InputObjectFieldConfig{Type: t}
}
