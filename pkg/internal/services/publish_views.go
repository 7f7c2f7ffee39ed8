package services

import (
	"sync"

	"github.com/diirtv/stations/pkg/internal/database"
	"github.com/diirtv/stations/pkg/internal/models"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"
)

var (
	publishViewQueue []models.PublishView
	publishViewLock  sync.Mutex
)

func AddPublishView(publishID string, stationID string) {
	publishViewLock.Lock()
	defer publishViewLock.Unlock()
	publishViewQueue = append(publishViewQueue, models.PublishView{
		StationID: stationID,
		PublishID: publishID,
	})
}

func FlushPublishViews() {
	publishViewLock.Lock()
	if len(publishViewQueue) == 0 {
		publishViewLock.Unlock()
		return
	}
	workingQueue := publishViewQueue
	publishViewQueue = nil
	publishViewLock.Unlock()

	updateRequiredPublish := make(map[string]int64)
	for _, item := range workingQueue {
		updateRequiredPublish[item.PublishID]++
	}
	if err := database.C.CreateInBatches(workingQueue, 1000).Error; err != nil {
		log.Error().Err(err).Msg("An error occurred when flushing publish views...")
		return
	}
	for k, delta := range updateRequiredPublish {
		if err := database.C.Model(&models.Publish{}).Where("id = ?", k).
			Update("views", gorm.Expr("views + ?", delta)).Error; err != nil {
			log.Warn().Err(err).Str("publish", k).Msg("An error occurred when updating publish views...")
		}
	}
}
