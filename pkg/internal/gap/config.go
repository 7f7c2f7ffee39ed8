package gap

import (
	"time"

	"github.com/spf13/viper"
)

const (
	defaultWalletURL = "http://localhost:8000"
	defaultUploadURL = "http://localhost:4444"
)

type Config struct {
	Development   bool
	WalletURL     string
	UploadURL     string
	ServiceSecret string
	Timeout       time.Duration
}

// ReadConfig copies the sibling service settings out of viper once at boot.
func ReadConfig() Config {
	cfg := Config{
		Development:   viper.GetString("mode") != "production",
		WalletURL:     viper.GetString("services.wallet"),
		UploadURL:     viper.GetString("services.upload"),
		ServiceSecret: viper.GetString("security.service_secret"),
		Timeout:       viper.GetDuration("services.timeout"),
	}
	if cfg.Development || len(cfg.WalletURL) == 0 {
		cfg.WalletURL = defaultWalletURL
	}
	if cfg.Development || len(cfg.UploadURL) == 0 {
		cfg.UploadURL = defaultUploadURL
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = 15 * time.Second
	}
	return cfg
}
