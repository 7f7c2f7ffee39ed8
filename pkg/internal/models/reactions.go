package models

type Like struct {
	BaseModel

	StationID string `json:"station_id" gorm:"uniqueIndex:idx_like_pair;size:36"`
	PublishID string `json:"publish_id" gorm:"uniqueIndex:idx_like_pair;size:36"`
}

type DisLike struct {
	BaseModel

	StationID string `json:"station_id" gorm:"uniqueIndex:idx_dislike_pair;size:36"`
	PublishID string `json:"publish_id" gorm:"uniqueIndex:idx_dislike_pair;size:36"`
}

type CommentLike struct {
	BaseModel

	StationID string `json:"station_id" gorm:"uniqueIndex:idx_comment_like_pair;size:36"`
	CommentID string `json:"comment_id" gorm:"uniqueIndex:idx_comment_like_pair;size:36"`
}

type CommentDisLike struct {
	BaseModel

	StationID string `json:"station_id" gorm:"uniqueIndex:idx_comment_dislike_pair;size:36"`
	CommentID string `json:"comment_id" gorm:"uniqueIndex:idx_comment_dislike_pair;size:36"`
}

type ReadBookmark struct {
	BaseModel

	ProfileID string  `json:"profile_id" gorm:"uniqueIndex:idx_bookmark_pair;size:36"`
	PublishID string  `json:"publish_id" gorm:"uniqueIndex:idx_bookmark_pair;size:36"`
	Publish   Publish `json:"publish" gorm:"foreignKey:PublishID"`
}
