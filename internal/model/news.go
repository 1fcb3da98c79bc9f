package model

import (
	"time"

	"gorm.io/datatypes"
)

// NewsArticle caches the most recently fetched blockchain news so /news does
// not hit the upstream API on every request.
type NewsArticle struct {
	ID          uint           `gorm:"primaryKey" json:"id"`
	Title       string         `gorm:"type:text;not null" json:"title"`
	Summary     string         `gorm:"type:text" json:"summary"`
	URL         string         `gorm:"type:text;uniqueIndex" json:"url"`
	Source      string         `gorm:"type:varchar(255)" json:"source"`
	PublishedAt time.Time      `json:"published_at"`
	Raw         datatypes.JSON `gorm:"type:jsonb" json:"raw"`
	CreatedAt   time.Time      `gorm:"autoCreateTime" json:"created_at"`
}

func (NewsArticle) TableName() string {
	return "news_articles"
}
