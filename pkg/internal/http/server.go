package http

import (
	"fmt"

	"github.com/diirtv/stations/pkg/internal/graph"
	"github.com/diirtv/stations/pkg/internal/http/api"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	jsoniter "github.com/json-iterator/go"
	"github.com/rs/zerolog/log"
	"github.com/spf13/viper"
)

type Config struct {
	Bind          string
	WebhookSecret string
	PrintRoutes   bool
	Graph         graph.Config
}

// ReadConfig copies the HTTP settings out of viper once at boot.
func ReadConfig() Config {
	return Config{
		Bind:          viper.GetString("bind"),
		WebhookSecret: viper.GetString("security.webhook_secret"),
		PrintRoutes:   viper.GetBool("debug.print_routes"),
		Graph: graph.Config{
			SignedMessage: viper.GetString("auth.signed_message"),
			APIKey:        viper.GetString("security.api_key"),
		},
	}
}

type HTTPApp struct {
	app  *fiber.App
	bind string
}

func NewServer(cfg Config) (*HTTPApp, error) {
	schema, err := graph.NewSchema(cfg.Graph)
	if err != nil {
		return nil, fmt.Errorf("unable to build graphql schema: %v", err)
	}

	app := fiber.New(fiber.Config{
		DisableStartupMessage: true,
		EnableIPValidation:    true,
		ServerHeader:          "Stations",
		AppName:               "Stations",
		ProxyHeader:           fiber.HeaderXForwardedFor,
		JSONEncoder:           jsoniter.ConfigCompatibleWithStandardLibrary.Marshal,
		JSONDecoder:           jsoniter.ConfigCompatibleWithStandardLibrary.Unmarshal,
		BodyLimit:             8 * 1024 * 1024,
		EnablePrintRoutes:     cfg.PrintRoutes,
	})

	app.Use(recover.New())
	app.Use(cors.New(cors.Config{
		AllowOrigins: "*",
		AllowMethods: "GET,POST,OPTIONS",
		AllowHeaders: "Content-Type,id-token,signature,api-key",
	}))
	app.Use(logger.New(logger.Config{
		Format: "${status} | ${latency} | ${method} ${path}\n",
		Output: log.Logger,
	}))

	api.MapAPIs(app, schema, cfg.WebhookSecret)

	return &HTTPApp{app: app, bind: cfg.Bind}, nil
}

func (v *HTTPApp) Listen() {
	if err := v.app.Listen(v.bind); err != nil {
		log.Fatal().Err(err).Msg("An error occurred when starting server...")
	}
}

func (v *HTTPApp) Shutdown() error {
	return v.app.Shutdown()
}
