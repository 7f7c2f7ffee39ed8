package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/diirtv/stations/pkg/internal/database"
	"github.com/diirtv/stations/pkg/internal/models"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
)

const stationSessionPrefix = "station-session:"

func stationSessionKey(owner string) string {
	return stationSessionPrefix + strings.ToLower(owner)
}

// CacheStationSession remembers the station the owner used last.
func CacheStationSession(ctx context.Context, rdb *redis.Client, owner, stationID string) error {
	if rdb == nil {
		return fmt.Errorf("session cache is not configured")
	}
	if err := rdb.Set(ctx, stationSessionKey(owner), stationID, 0).Err(); err != nil {
		return fmt.Errorf("unable to cache station session: %v", err)
	}
	return nil
}

// PickDefaultStation returns the last used station when it is still among the owner's
// stations, otherwise the first one.
func PickDefaultStation(ctx context.Context, rdb *redis.Client, owner string, stations []models.Station) *models.Station {
	if len(stations) == 0 {
		return nil
	}
	fallback := &stations[0]
	if rdb == nil {
		return fallback
	}

	stationID, err := rdb.Get(ctx, stationSessionKey(owner)).Result()
	if err != nil {
		if !errors.Is(err, redis.Nil) {
			log.Warn().Err(err).Msg("An error occurred when reading station session cache...")
		}
		return fallback
	}
	for idx := range stations {
		if stations[idx].ID == stationID {
			return &stations[idx]
		}
	}
	return fallback
}

func CacheSession(ctx context.Context, cred Credentials, in AuthenticityInput, stationID string) error {
	if len(stationID) == 0 {
		return ErrBadUserInput("station id is required")
	}
	if _, _, err := AuthorizeStation(ctx, cred, in, stationID); err != nil {
		return err
	}
	return CacheStationSession(ctx, database.R, in.Owner, stationID)
}

func GetDefaultStation(ctx context.Context, owner string) (*models.Station, error) {
	stations, err := ListStationsByOwner(ctx, owner)
	if err != nil {
		return nil, err
	}
	return PickDefaultStation(ctx, database.R, owner, stations), nil
}
