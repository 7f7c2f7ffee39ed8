package models

import (
	"time"

	"gorm.io/datatypes"
)

const (
	PublishKindAdds    = "Adds"
	PublishKindBlog    = "Blog"
	PublishKindPodcast = "Podcast"
	PublishKindShort   = "Short"
	PublishKindVideo   = "Video"
)

var PublishKinds = []string{
	PublishKindAdds, PublishKindBlog, PublishKindPodcast, PublishKindShort, PublishKindVideo,
}

const (
	PublishVisibilityDraft   = "draft"
	PublishVisibilityPrivate = "private"
	PublishVisibilityPublic  = "public"
)

const (
	ThumbSourceCustom    = "custom"
	ThumbSourceGenerated = "generated"
)

// ShortMaxDuration is the playback length in seconds under which a video is a short.
const ShortMaxDuration = 60

type Publish struct {
	BaseModel

	CreatorID         string                      `json:"creator_id" gorm:"index;size:36"`
	Creator           Station                     `json:"creator" gorm:"foreignKey:CreatorID"`
	Title             *string                     `json:"title"`
	Description       *string                     `json:"description"`
	Content           *string                     `json:"content"`
	Thumbnail         *string                     `json:"thumbnail"`
	ThumbnailRef      *string                     `json:"thumbnail_ref"`
	ThumbSource       string                      `json:"thumb_source"`
	PrimaryCategory   *string                     `json:"primary_category" gorm:"index"`
	SecondaryCategory *string                     `json:"secondary_category" gorm:"index"`
	Kind              *string                     `json:"kind" gorm:"index"`
	Visibility        string                      `json:"visibility" gorm:"index"`
	Tags              datatypes.JSONSlice[string] `json:"tags"`
	ContentRef        *string                     `json:"content_ref"`
	ContentURI        *string                     `json:"content_uri"`
	Filename          *string                     `json:"filename"`
	Language          string                      `json:"language"`
	Views             int64                       `json:"views"`

	Uploading      bool `json:"uploading"`
	UploadError    bool `json:"upload_error"`
	TranscodeError bool `json:"transcode_error"`
	Deleting       bool `json:"deleting" gorm:"index"`

	Playback *PlaybackLink `json:"playback" gorm:"foreignKey:PublishID"`

	DeletingAt *time.Time `json:"deleting_at"`
}

type PlaybackLink struct {
	BaseModel

	PublishID string  `json:"publish_id" gorm:"uniqueIndex;size:36"`
	VideoID   string  `json:"video_id"`
	Thumbnail string  `json:"thumbnail"`
	Preview   string  `json:"preview"`
	Duration  float64 `json:"duration"`
	HLS       string  `json:"hls"`
	DASH      string  `json:"dash"`
}

type PublishView struct {
	BaseModel

	StationID string `json:"station_id" gorm:"index;size:36"`
	PublishID string `json:"publish_id" gorm:"index;size:36"`
}
