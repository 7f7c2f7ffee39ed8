package services

import (
	"context"
	"errors"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/diirtv/stations/pkg/internal/database"
	"github.com/diirtv/stations/pkg/internal/models"
	"github.com/samber/lo"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(filepath.Join(t.TempDir(), "stations.db")), &gorm.Config{
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
		database.C = previous
		if sqlDB, err := db.DB(); err == nil {
			_ = sqlDB.Close()
		}
	})
	return db
}

type fakeIdentity struct {
	uid string
	err error
}

func (v fakeIdentity) VerifyUser(ctx context.Context) (string, error) {
	return v.uid, v.err
}

var errSessionExpired = errors.New("session expired")

var baseTime = time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)

func mustCreate(t *testing.T, value any) {
	t.Helper()
	if err := database.C.Create(value).Error; err != nil {
		t.Fatalf("failed to seed %T: %v", value, err)
	}
}

func seedAccount(t *testing.T, owner string, uid *string, kind string) models.Account {
	t.Helper()
	account := models.Account{Owner: owner, AuthUID: uid, Type: kind}
	mustCreate(t, &account)
	return account
}

func seedStation(t *testing.T, account models.Account, name string) models.Station {
	t.Helper()
	station := models.Station{AccountID: account.ID, Owner: account.Owner, Name: name, DisplayName: name}
	mustCreate(t, &station)
	return station
}

// seedPublish creates a public video created minutes after baseTime.
func seedPublish(t *testing.T, creator models.Station, minutes int, opts ...func(*models.Publish)) models.Publish {
	t.Helper()
	publish := models.Publish{
		CreatorID:  creator.ID,
		Title:      lo.ToPtr("publish"),
		Kind:       lo.ToPtr(models.PublishKindVideo),
		Visibility: models.PublishVisibilityPublic,
	}
	publish.CreatedAt = baseTime.Add(time.Duration(minutes) * time.Minute)
	for _, opt := range opts {
		opt(&publish)
	}
	mustCreate(t, &publish)
	return publish
}

func withCategory(primary string) func(*models.Publish) {
	return func(p *models.Publish) { p.PrimaryCategory = lo.ToPtr(primary) }
}

func withKind(kind string) func(*models.Publish) {
	return func(p *models.Publish) { p.Kind = lo.ToPtr(kind) }
}

func expectCode(t *testing.T, err error, code ErrorCode) {
	t.Helper()
	if got := CodeOf(err); got != code {
		t.Fatalf("expected error code %s, got %q (%v)", code, got, err)
	}
}

// seedMember creates a traditional account with one station and returns what that
// account sends on authenticated requests.
func seedMember(t *testing.T, name string) (models.Station, Credentials, AuthenticityInput) {
	t.Helper()
	uid := "uid-" + name
	account := seedAccount(t, "0x"+name, &uid, models.AccountTypeTraditional)
	station := seedStation(t, account, name)
	return station, Credentials{Identity: fakeIdentity{uid: uid}}, AuthenticityInput{AccountID: account.ID, Owner: account.Owner}
}

type recordingNotifier struct {
	sync.Mutex
	publishes []string
	removed   []string
	addresses []map[string]any
}

func (v *recordingNotifier) PublishUpdated(ctx context.Context, publishID string) error {
	v.Lock()
	defer v.Unlock()
	v.publishes = append(v.publishes, publishID)
	return nil
}

func (v *recordingNotifier) DeleteFiles(ctx context.Context, publishRef string) error {
	v.Lock()
	defer v.Unlock()
	v.removed = append(v.removed, publishRef)
	return nil
}

func (v *recordingNotifier) AddressUpdated(ctx context.Context, payload map[string]any) error {
	v.Lock()
	defer v.Unlock()
	v.addresses = append(v.addresses, payload)
	return nil
}

func countRows(t *testing.T, model any, query string, args ...any) int64 {
	t.Helper()
	var count int64
	if err := database.C.Model(model).Where(query, args...).Count(&count).Error; err != nil {
		t.Fatalf("failed to count %T: %v", model, err)
	}
	return count
}
