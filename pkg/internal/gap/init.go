package gap

import "github.com/rs/zerolog/log"

var (
	Wallet *Conn
	Upload *Conn
)

func Initialize(cfg Config) {
	tokens := NewServiceTokenSource(cfg.ServiceSecret)
	Wallet = NewConn("wallet", cfg.WalletURL, cfg, tokens)
	Upload = NewConn("upload", cfg.UploadURL, cfg, tokens)

	log.Info().
		Str("wallet", cfg.WalletURL).
		Str("upload", cfg.UploadURL).
		Bool("development", cfg.Development).
		Msg("Sibling service connections configured.")
}
