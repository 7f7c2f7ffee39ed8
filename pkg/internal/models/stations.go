package models

import "gorm.io/datatypes"

type Station struct {
	BaseModel

	AccountID    string `json:"account_id" gorm:"index;size:36"`
	Owner        string `json:"owner" gorm:"index;size:64"`
	Name         string `json:"name" gorm:"uniqueIndex;size:64"`
	DisplayName  string `json:"display_name"`
	TokenID      *int64 `json:"token_id"`
	Image        string `json:"image"`
	BannerImage  string `json:"banner_image"`
	DefaultColor string `json:"default_color"`

	WatchPreferences datatypes.JSONSlice[string] `json:"watch_preferences"`
	ReadPreferences  datatypes.JSONSlice[string] `json:"read_preferences"`
}

type Follow struct {
	BaseModel

	FollowerID  string `json:"follower_id" gorm:"uniqueIndex:idx_follow_pair;size:36"`
	FollowingID string `json:"following_id" gorm:"uniqueIndex:idx_follow_pair;size:36"`
}

// DontRecommend removes the target station's content from the requestor's feeds.
type DontRecommend struct {
	BaseModel

	RequestorID string  `json:"requestor_id" gorm:"uniqueIndex:idx_dont_recommend_pair;size:36"`
	TargetID    string  `json:"target_id" gorm:"uniqueIndex:idx_dont_recommend_pair;size:36"`
	Target      Station `json:"target" gorm:"foreignKey:TargetID"`
}
