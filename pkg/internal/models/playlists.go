package models

type Playlist struct {
	BaseModel

	OwnerID     string  `json:"owner_id" gorm:"index;size:36"`
	Name        string  `json:"name"`
	Description *string `json:"description"`
	Thumbnail   *string `json:"thumbnail"`

	Items []PlaylistItem `json:"items" gorm:"foreignKey:PlaylistID"`
}

type PlaylistItem struct {
	BaseModel

	PlaylistID string  `json:"playlist_id" gorm:"uniqueIndex:idx_playlist_item_pair;size:36"`
	PublishID  string  `json:"publish_id" gorm:"uniqueIndex:idx_playlist_item_pair;size:36"`
	Publish    Publish `json:"publish" gorm:"foreignKey:PublishID"`
}

type WatchLater struct {
	BaseModel

	StationID string  `json:"station_id" gorm:"uniqueIndex:idx_watch_later_pair;size:36"`
	PublishID string  `json:"publish_id" gorm:"uniqueIndex:idx_watch_later_pair;size:36"`
	Publish   Publish `json:"publish" gorm:"foreignKey:PublishID"`
}
