package models

const (
	CommentTypePublish = "PUBLISH"
	CommentTypeComment = "COMMENT"
)

type Comment struct {
	BaseModel

	CreatorID     string  `json:"creator_id" gorm:"index;size:36"`
	Creator       Station `json:"creator" gorm:"foreignKey:CreatorID"`
	PublishID     string  `json:"publish_id" gorm:"index;size:36"`
	CommentID     *string `json:"comment_id" gorm:"index;size:36"`
	CommentType   string  `json:"comment_type"`
	Content       string  `json:"content"`
	CommentsCount int64   `json:"comments_count" gorm:"index"`
}
