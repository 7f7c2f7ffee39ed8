package gap

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strings"
)

type CreateWalletResult struct {
	Address string `json:"address"`
	UID     string `json:"uid"`
}

type SendTipsResult struct {
	From   string  `json:"from"`
	To     string  `json:"to"`
	Amount float64 `json:"amount"`
	Fee    float64 `json:"fee"`
}

type AuthUser struct {
	UID     string `json:"uid"`
	Address string `json:"address"`
}

// WalletAPI talks to the wallet service on behalf of one caller.
type WalletAPI struct {
	conn    *Conn
	idToken string
}

func NewWalletAPI(conn *Conn, idToken string) *WalletAPI {
	return &WalletAPI{conn: conn, idToken: idToken}
}

func (v *WalletAPI) VerifyUser(ctx context.Context) (string, error) {
	if len(v.idToken) == 0 {
		return "", fmt.Errorf("missing session token")
	}
	var resp struct {
		UID string `json:"uid"`
	}
	if err := v.conn.Do(ctx, http.MethodGet, "auth/verify", v.idToken, nil, &resp); err != nil {
		return "", err
	}
	if len(resp.UID) == 0 {
		return "", fmt.Errorf("wallet service returned an empty uid")
	}
	return resp.UID, nil
}

func (v *WalletAPI) CreateUser(ctx context.Context, address string) (AuthUser, error) {
	var resp struct {
		User AuthUser `json:"user"`
	}
	err := v.conn.Do(ctx, http.MethodPost, "auth/user/create", v.idToken, map[string]any{
		"address": address,
	}, &resp)
	return resp.User, err
}

func (v *WalletAPI) GetAuthProvider(ctx context.Context) (string, error) {
	var resp struct {
		Provider string `json:"provider"`
	}
	err := v.conn.Do(ctx, http.MethodGet, "auth/provider", v.idToken, nil, &resp)
	return resp.Provider, err
}

func (v *WalletAPI) GetWalletAddress(ctx context.Context) (string, error) {
	var resp struct {
		Address string `json:"address"`
	}
	err := v.conn.Do(ctx, http.MethodGet, "wallet/address", v.idToken, nil, &resp)
	return resp.Address, err
}

func (v *WalletAPI) CreateWallet(ctx context.Context) (CreateWalletResult, error) {
	var resp CreateWalletResult
	err := v.conn.Do(ctx, http.MethodPost, "wallet/create", v.idToken, nil, &resp)
	return resp, err
}

func (v *WalletAPI) GetBalance(ctx context.Context, address string) (string, error) {
	var resp struct {
		Balance string `json:"balance"`
	}
	err := v.conn.Do(ctx, http.MethodGet, "wallet/balance/"+url.PathEscape(address), v.idToken, nil, &resp)
	return resp.Balance, err
}

func (v *WalletAPI) ValidateName(ctx context.Context, name string) (bool, error) {
	var resp struct {
		Valid bool `json:"valid"`
	}
	err := v.conn.Do(ctx, http.MethodPost, "station/validate", v.idToken, map[string]any{
		"name": name,
	}, &resp)
	return resp.Valid, err
}

func (v *WalletAPI) MintFirstStationNFT(ctx context.Context, to, name string) (int64, error) {
	return v.mint(ctx, "station/mint-first", to, name)
}

func (v *WalletAPI) MintStationNFT(ctx context.Context, to, name string) (int64, error) {
	return v.mint(ctx, "station/mint", to, name)
}

func (v *WalletAPI) mint(ctx context.Context, route, to, name string) (int64, error) {
	var resp struct {
		TokenID int64 `json:"tokenId"`
	}
	err := v.conn.Do(ctx, http.MethodPost, route, v.idToken, map[string]any{
		"to":   strings.ToLower(to),
		"name": name,
	}, &resp)
	return resp.TokenID, err
}

func (v *WalletAPI) CalculateTips(ctx context.Context, qty float64) (float64, error) {
	var resp struct {
		Tips float64 `json:"tips"`
	}
	err := v.conn.Do(ctx, http.MethodPost, "station/tips/check", v.idToken, map[string]any{
		"qty": qty,
	}, &resp)
	return resp.Tips, err
}

// SendTips sends qty usd worth of tips to the owner of the station named to.
func (v *WalletAPI) SendTips(ctx context.Context, to string, qty float64) (SendTipsResult, error) {
	var resp struct {
		Result SendTipsResult `json:"result"`
	}
	err := v.conn.Do(ctx, http.MethodPost, "station/tips/send", v.idToken, map[string]any{
		"to":  to,
		"qty": qty,
	}, &resp)
	return resp.Result, err
}

func (v *WalletAPI) PublishUpdated(ctx context.Context, publishID string) error {
	return v.conn.Do(ctx, http.MethodPost, "publishes/updated", v.idToken, map[string]any{
		"publishId": publishID,
	}, nil)
}

func (v *WalletAPI) AddressUpdated(ctx context.Context, payload map[string]any) error {
	return v.conn.Do(ctx, http.MethodPost, "activities/update", v.idToken, payload, nil)
}
