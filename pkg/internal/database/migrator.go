package database

import (
	"github.com/diirtv/stations/pkg/internal/models"
	"gorm.io/gorm"
)

var AutoMaintainRange = []any{
	&models.Account{},
	&models.Station{},
	&models.Follow{},
	&models.DontRecommend{},
	&models.Publish{},
	&models.PlaybackLink{},
	&models.PublishView{},
	&models.Like{},
	&models.DisLike{},
	&models.Comment{},
	&models.CommentLike{},
	&models.CommentDisLike{},
	&models.ReadBookmark{},
	&models.Tip{},
	&models.Playlist{},
	&models.PlaylistItem{},
	&models.WatchLater{},
	&models.Report{},
}

func RunMigration(source *gorm.DB) error {
	if err := source.AutoMigrate(AutoMaintainRange...); err != nil {
		return err
	}

	return nil
}
