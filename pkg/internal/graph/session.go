package graph

import (
	"context"
	"fmt"

	"github.com/diirtv/stations/pkg/internal/gap"
	"github.com/diirtv/stations/pkg/internal/services"
)

// Session is what one GraphQL request carries besides its arguments.
type Session struct {
	IDToken   string
	Signature string
	APIKey    string

	Wallet *gap.WalletAPI
	Upload *gap.UploadAPI
}

type sessionKey struct{}

func WithSession(ctx context.Context, session *Session) context.Context {
	return context.WithValue(ctx, sessionKey{}, session)
}

func sessionFrom(ctx context.Context) *Session {
	if session, ok := ctx.Value(sessionKey{}).(*Session); ok && session != nil {
		return session
	}
	return &Session{}
}

func (v *Session) credentials(signedMessage string) services.Credentials {
	cred := services.Credentials{
		Signature:     v.Signature,
		SignedMessage: signedMessage,
	}
	if v.Wallet != nil {
		cred.Identity = v.Wallet
	}
	return cred
}

func (v *Session) notifier() services.PublishNotifier {
	if v.Wallet == nil {
		return nil
	}
	return v.Wallet
}

func (v *Session) files() services.FileRemover {
	if v.Upload == nil {
		return nil
	}
	return v.Upload
}

// wallet is the wallet client of this request, operations that need it fail without one.
func (v *Session) wallet() (*gap.WalletAPI, error) {
	if v.Wallet == nil {
		return nil, services.ErrUnauthenticated(fmt.Errorf("wallet service is unavailable"))
	}
	return v.Wallet, nil
}
