package api

import (
	"time"

	"github.com/diirtv/stations/pkg/internal/http/exts"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/graphql-go/graphql"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

func MapAPIs(app *fiber.App, schema graphql.Schema, webhookSecret string) {
	app.Post("/graphql", graphqlQuery(schema))
	app.Get("/metrics", adaptor.HTTPHandler(promhttp.Handler()))

	webhooks := app.Group("/webhooks", exts.VerifyWebhook(webhookSecret, time.Now))
	{
		webhooks.Post("/address-updated", addressUpdated)
		webhooks.Post("/transcode-finished", transcodeFinished)
		webhooks.Post("/upload-failed", uploadFailed)
	}
}
