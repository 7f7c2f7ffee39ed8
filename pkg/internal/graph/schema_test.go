package graph

import (
	"context"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/diirtv/stations/pkg/internal/database"
	"github.com/diirtv/stations/pkg/internal/gap"
	"github.com/diirtv/stations/pkg/internal/models"
	"github.com/diirtv/stations/pkg/internal/services"
	"github.com/goccy/go-json"
	"github.com/graphql-go/graphql"
	"github.com/samber/lo"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func setupTestDB(t *testing.T) {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(filepath.Join(t.TempDir(), "graph.db")), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("failed to open test database: %v", err)
	}
	if err := database.RunMigration(db); err != nil {
		t.Fatalf("failed to migrate test database: %v", err)
	}
	previous := database.C
	database.C = db
	t.Cleanup(func() {
		services.WaitBackgroundTasks()
		database.C = previous
		if sqlDB, err := db.DB(); err == nil {
			_ = sqlDB.Close()
		}
	})
}

// fakeWalletService answers the wallet routes the resolvers use. Tokens look like
// "session-<name>" and verify as "uid-<name>".
type fakeWalletService struct {
	sync.Mutex
	updated []string
}

func (v *fakeWalletService) serve(t *testing.T) *gap.Conn {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		token := r.Header.Get("id-token")
		switch r.URL.Path {
		case "/auth/verify":
			if !strings.HasPrefix(token, "session-") {
				w.WriteHeader(http.StatusUnauthorized)
				return
			}
			_, _ = w.Write([]byte(`{"uid":"uid-` + strings.TrimPrefix(token, "session-") + `"}`))
		case "/station/validate":
			_, _ = w.Write([]byte(`{"valid":true}`))
		case "/station/tips/check":
			_, _ = w.Write([]byte(`{"tips":1.5}`))
		case "/publishes/updated":
			var body struct {
				PublishID string `json:"publishId"`
			}
			_ = json.NewDecoder(r.Body).Decode(&body)
			v.Lock()
			v.updated = append(v.updated, body.PublishID)
			v.Unlock()
			w.WriteHeader(http.StatusOK)
		default:
			w.WriteHeader(http.StatusNotFound)
		}
	}))
	t.Cleanup(srv.Close)
	return gap.NewConn("wallet", srv.URL, gap.Config{Development: true, Timeout: 5 * time.Second}, nil)
}

type testEnv struct {
	schema graphql.Schema
	conn   *gap.Conn
	wallet *fakeWalletService
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	setupTestDB(t)
	schema, err := NewSchema(Config{SignedMessage: "sign in", APIKey: "key"})
	if err != nil {
		t.Fatalf("NewSchema failed: %v", err)
	}
	wallet := &fakeWalletService{}
	return &testEnv{schema: schema, conn: wallet.serve(t), wallet: wallet}
}

func (v *testEnv) session(name string) *Session {
	token := lo.Ternary(len(name) > 0, "session-"+name, "")
	return &Session{IDToken: token, Wallet: gap.NewWalletAPI(v.conn, token)}
}

// run executes the request and returns its data re-encoded as a generic JSON tree.
func (v *testEnv) run(t *testing.T, session *Session, query string, variables map[string]any) (map[string]any, *graphql.Result) {
	t.Helper()
	result := Execute(context.Background(), v.schema, session, Request{Query: query, Variables: variables})
	raw, err := json.Marshal(result.Data)
	if err != nil {
		t.Fatalf("failed to encode result: %v", err)
	}
	var data map[string]any
	if err := json.Unmarshal(raw, &data); err != nil {
		t.Fatalf("failed to decode result: %v", err)
	}
	return data, result
}

func expectNoErrors(t *testing.T, result *graphql.Result) {
	t.Helper()
	if result.HasErrors() {
		t.Fatalf("unexpected errors: %v", result.Errors)
	}
}

func expectErrorCode(t *testing.T, result *graphql.Result, code string) {
	t.Helper()
	if !result.HasErrors() {
		t.Fatalf("expected an error with code %s", code)
	}
	if got := result.Errors[0].Extensions["code"]; got != code {
		t.Fatalf("expected code %s, got %v (%v)", code, got, result.Errors[0].Message)
	}
}

// seedMember creates a traditional account owned by name with one station.
func seedMember(t *testing.T, name string) (models.Account, models.Station) {
	t.Helper()
	uid := "uid-" + name
	account := models.Account{Owner: "0x" + name, AuthUID: &uid, Type: models.AccountTypeTraditional}
	if err := database.C.Create(&account).Error; err != nil {
		t.Fatalf("failed to seed account: %v", err)
	}
	station := models.Station{AccountID: account.ID, Owner: account.Owner, Name: name, DisplayName: name}
	if err := database.C.Create(&station).Error; err != nil {
		t.Fatalf("failed to seed station: %v", err)
	}
	return account, station
}

func seedPublish(t *testing.T, creator models.Station, minutes int) models.Publish {
	t.Helper()
	publish := models.Publish{
		CreatorID:  creator.ID,
		Title:      lo.ToPtr("publish"),
		Kind:       lo.ToPtr(models.PublishKindVideo),
		Visibility: models.PublishVisibilityPublic,
	}
	publish.CreatedAt = time.Date(2024, 3, 1, 12, minutes, 0, 0, time.UTC)
	if err := database.C.Create(&publish).Error; err != nil {
		t.Fatalf("failed to seed publish: %v", err)
	}
	return publish
}

func TestCreateStationAndLookup(t *testing.T) {
	env := newTestEnv(t)
	account, _ := seedMember(t, "alice")

	data, result := env.run(t, env.session("alice"), `
		mutation ($input: CreateStationInput!) {
			createStation(input: $input) { id name displayName accountId }
		}`, map[string]any{
		"input": map[string]any{"accountId": account.ID, "owner": account.Owner, "name": "Lofi"},
	})
	expectNoErrors(t, result)
	created := data["createStation"].(map[string]any)
	if created["name"] != "lofi" || created["displayName"] != "Lofi" {
		t.Errorf("unexpected station %v", created)
	}
	if created["accountId"] != account.ID {
		t.Errorf("expected the station to belong to the caller's account")
	}

	data, result = env.run(t, env.session(""), `
		query { getStationByName(input: {name: "lofi"}) { id followersCount publishesCount account { owner } } }`, nil)
	expectNoErrors(t, result)
	station := data["getStationByName"].(map[string]any)
	if station["id"] != created["id"] {
		t.Errorf("expected the created station, got %v", station)
	}
	if station["followersCount"].(float64) != 0 {
		t.Errorf("expected no followers")
	}
	if station["account"].(map[string]any)["owner"] != account.Owner {
		t.Errorf("expected the owner account to resolve")
	}
}

func TestErrorCodes(t *testing.T) {
	env := newTestEnv(t)
	account, _ := seedMember(t, "alice")

	t.Run("not found", func(t *testing.T) {
		_, result := env.run(t, env.session(""), `query { getPublishById(input: {publishId: "missing"}) { id } }`, nil)
		expectErrorCode(t, result, "NOT_FOUND")
	})

	t.Run("invalid input", func(t *testing.T) {
		_, result := env.run(t, env.session("alice"), `
			mutation ($input: CreateStationInput!) { createStation(input: $input) { id } }`, map[string]any{
			"input": map[string]any{"accountId": account.ID, "owner": account.Owner, "name": "ab"},
		})
		expectErrorCode(t, result, "BAD_USER_INPUT")
	})

	t.Run("expired session", func(t *testing.T) {
		_, result := env.run(t, env.session(""), `
			mutation ($input: CreateStationInput!) { createStation(input: $input) { id } }`, map[string]any{
			"input": map[string]any{"accountId": account.ID, "owner": account.Owner, "name": "lofi"},
		})
		expectErrorCode(t, result, "UN_AUTHENTICATED")
	})

	t.Run("someone else's account", func(t *testing.T) {
		seedMember(t, "mallory")
		_, result := env.run(t, env.session("mallory"), `
			mutation ($input: CreateStationInput!) { createStation(input: $input) { id } }`, map[string]any{
			"input": map[string]any{"accountId": account.ID, "owner": account.Owner, "name": "lofi"},
		})
		expectErrorCode(t, result, "UN_AUTHORIZED")
	})
}

func TestFeedWithReactions(t *testing.T) {
	env := newTestEnv(t)
	account, station := seedMember(t, "alice")
	_, creator := seedMember(t, "bob")
	for idx := 0; idx < 12; idx++ {
		seedPublish(t, creator, idx)
	}
	newest := seedPublish(t, creator, 30)

	_, result := env.run(t, env.session("alice"), `
		mutation ($input: PublishActionInput!) { likePublish(input: $input) { status } }`, map[string]any{
		"input": map[string]any{
			"accountId": account.ID, "owner": account.Owner,
			"stationId": station.ID, "publishId": newest.ID,
		},
	})
	expectNoErrors(t, result)

	query := `
		query ($input: FetchPublishesInput) {
			fetchAllVideos(input: $input) {
				pageInfo { endCursor hasNextPage }
				edges { cursor node { id likesCount liked creator { name } } }
			}
		}`
	data, result := env.run(t, env.session(""), query, map[string]any{
		"input": map[string]any{"requestorId": station.ID},
	})
	expectNoErrors(t, result)
	feed := data["fetchAllVideos"].(map[string]any)
	edges := feed["edges"].([]any)
	if len(edges) != services.DefaultPageSize {
		t.Fatalf("expected a full page, got %d", len(edges))
	}
	first := edges[0].(map[string]any)["node"].(map[string]any)
	if first["id"] != newest.ID || first["likesCount"].(float64) != 1 || first["liked"] != true {
		t.Errorf("unexpected first node %v", first)
	}
	if first["creator"].(map[string]any)["name"] != "bob" {
		t.Errorf("expected the creator to resolve")
	}
	pageInfo := feed["pageInfo"].(map[string]any)
	if pageInfo["hasNextPage"] != true {
		t.Fatalf("expected another page")
	}

	data, result = env.run(t, env.session(""), query, map[string]any{
		"input": map[string]any{"cursor": pageInfo["endCursor"]},
	})
	expectNoErrors(t, result)
	rest := data["fetchAllVideos"].(map[string]any)
	if got := len(rest["edges"].([]any)); got != 3 {
		t.Errorf("expected the 3 remaining publishes, got %d", got)
	}
	if second := rest["edges"].([]any)[0].(map[string]any)["node"].(map[string]any); second["liked"] != nil {
		t.Errorf("expected liked to be null without a requestor, got %v", second["liked"])
	}

	services.WaitBackgroundTasks()
	env.wallet.Lock()
	defer env.wallet.Unlock()
	if !lo.Contains(env.wallet.updated, newest.ID) {
		t.Errorf("expected the wallet service to be told about the updated publish")
	}
}

func TestCommentsThroughSchema(t *testing.T) {
	env := newTestEnv(t)
	account, station := seedMember(t, "alice")
	publish := seedPublish(t, station, 0)

	data, result := env.run(t, env.session("alice"), `
		mutation ($input: CommentInput!) { comment(input: $input) { id content commentType liked } }`, map[string]any{
		"input": map[string]any{
			"accountId": account.ID, "owner": account.Owner, "stationId": station.ID,
			"publishId": publish.ID, "content": "  first  ", "commentType": "PUBLISH",
		},
	})
	expectNoErrors(t, result)
	comment := data["comment"].(map[string]any)
	if comment["content"] != "first" || comment["liked"] != false {
		t.Errorf("unexpected comment %v", comment)
	}

	data, result = env.run(t, env.session(""), `
		query ($input: GetPublishByIdInput!) {
			getPublishById(input: $input) { commentsCount lastComment { id creator { name } } }
		}`, map[string]any{"input": map[string]any{"publishId": publish.ID}})
	expectNoErrors(t, result)
	got := data["getPublishById"].(map[string]any)
	if got["commentsCount"].(float64) != 1 {
		t.Errorf("expected 1 comment, got %v", got["commentsCount"])
	}
	if got["lastComment"].(map[string]any)["id"] != comment["id"] {
		t.Errorf("expected the new comment as last comment")
	}
}

func TestWalletBackedQueries(t *testing.T) {
	env := newTestEnv(t)

	data, result := env.run(t, env.session("alice"), `query { validateName(name: "lofi") calculateTips(qty: 3) { tips } }`, nil)
	expectNoErrors(t, result)
	if data["validateName"] != true {
		t.Errorf("expected the name to be valid")
	}
	if data["calculateTips"].(map[string]any)["tips"].(float64) != 1.5 {
		t.Errorf("unexpected tips %v", data["calculateTips"])
	}

	data, result = env.run(t, &Session{}, `query { validateName(name: "lofi") }`, nil)
	expectNoErrors(t, result)
	if data["validateName"] != false {
		t.Errorf("expected false without a wallet service")
	}

	_, result = env.run(t, env.session("alice"), `mutation { createUser(address: "0xabc") { uid } }`, nil)
	expectErrorCode(t, result, "UN_AUTHORIZED")
}
