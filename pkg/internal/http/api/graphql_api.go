package api

import (
	"github.com/diirtv/stations/pkg/internal/gap"
	"github.com/diirtv/stations/pkg/internal/graph"
	"github.com/gofiber/fiber/v2"
	"github.com/graphql-go/graphql"
	jsoniter "github.com/json-iterator/go"
)

// sessionOf collects what the caller sent besides the GraphQL document.
func sessionOf(c *fiber.Ctx) *graph.Session {
	session := &graph.Session{
		IDToken:   c.Get("id-token"),
		Signature: c.Get("signature"),
		APIKey:    c.Get("api-key"),
	}
	if gap.Wallet != nil {
		session.Wallet = gap.NewWalletAPI(gap.Wallet, session.IDToken)
	}
	if gap.Upload != nil {
		session.Upload = gap.NewUploadAPI(gap.Upload, session.IDToken)
	}
	return session
}

func graphqlQuery(schema graphql.Schema) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var req graph.Request
		if err := jsoniter.ConfigCompatibleWithStandardLibrary.Unmarshal(c.Body(), &req); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, err.Error())
		} else if len(req.Query) == 0 {
			return fiber.NewError(fiber.StatusBadRequest, "query is required")
		}

		result := graph.Execute(c.UserContext(), schema, sessionOf(c), req)
		return c.JSON(result)
	}
}
