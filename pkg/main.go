package main

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	pkg "github.com/diirtv/stations/pkg/internal"
	"github.com/diirtv/stations/pkg/internal/cache"
	"github.com/diirtv/stations/pkg/internal/database"
	"github.com/diirtv/stations/pkg/internal/gap"
	"github.com/diirtv/stations/pkg/internal/http"
	"github.com/diirtv/stations/pkg/internal/services"
	"github.com/fatih/color"
	"github.com/robfig/cron/v3"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/viper"
)

func init() {
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stdout})
}

func main() {
	// Booting screen
	fmt.Println(color.YellowString(" ____  _        _   _\n/ ___|| |_ __ _| |_(_) ___  _ __  ___\n\\___ \\| __/ _` | __| |/ _ \\| '_ \\/ __|\n ___) | || (_| | |_| | (_) | | | \\__ \\\n|____/ \\__\\__,_|\\__|_|\\___/|_| |_|___/"))
	fmt.Printf("%s v%s\n", color.New(color.FgHiYellow).Add(color.Bold).Sprintf("Stations"), pkg.AppVersion)
	fmt.Printf("The content service behind creator stations\n")
	color.HiBlack("=====================================================\n")

	// Configure settings
	viper.AddConfigPath(".")
	viper.AddConfigPath("..")
	viper.SetConfigName("settings")
	viper.SetConfigType("toml")

	// Load settings
	if err := viper.ReadInConfig(); err != nil {
		log.Panic().Err(err).Msg("An error occurred when loading settings.")
	}

	// Connect to sibling services
	gap.Initialize(gap.ReadConfig())

	// Connect to database
	if err := database.NewGorm(); err != nil {
		log.Fatal().Err(err).Msg("An error occurred when connect to database.")
	} else if err := database.RunMigration(database.C); err != nil {
		log.Fatal().Err(err).Msg("An error occurred when running database auto migration.")
	}

	// Connect to key-value store
	if err := database.NewRedis(); err != nil {
		log.Warn().Err(err).Msg("An error occurred when connecting to redis, last used stations will not be remembered.")
	}

	// Initialize cache
	if err := cache.NewStore(); err != nil {
		log.Fatal().Err(err).Msg("An error occurred when initializing cache.")
	}

	// Configure timed tasks
	grace := viper.GetDuration("publishes.purge_grace")
	if grace <= 0 {
		grace = services.DefaultPurgeGrace
	}
	quartz := cron.New(cron.WithLogger(cron.VerbosePrintfLogger(&log.Logger)))
	quartz.AddFunc("@every 1m", services.FlushPublishViews)
	quartz.AddFunc("@every 60m", func() { services.PurgeDeletedPublishes(grace) })
	quartz.Start()

	// Server
	server, err := http.NewServer(http.ReadConfig())
	if err != nil {
		log.Fatal().Err(err).Msg("An error occurred when building the http server.")
	}
	go server.Listen()

	// Messages
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	quartz.Stop()
	if err := server.Shutdown(); err != nil {
		log.Warn().Err(err).Msg("An error occurred when shutting down the http server...")
	}
	services.WaitBackgroundTasks()
	services.FlushPublishViews()
}
