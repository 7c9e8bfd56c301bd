package entity

import (
	"time"
)

// NewsItem is a globally shared archive entry. Link is the cross-agent dedup
// key: at most one item exists per distinct link. Content may stay empty
// until the article body is fetched on demand.
type NewsItem struct {
	ID          string `gorm:"primaryKey"`
	Title       string `gorm:"not null"`
	Summary     string
	Content     string
	Link        string `gorm:"uniqueIndex;not null"`
	Source      string
	PublishedAt string
	CreatedAt   time.Time
}

func (NewsItem) TableName() string {
	return "news_items"
}

// ProcessedNews marks that a given agent has already been shown a given news
// item. Insertion is idempotent on the composite key.
type ProcessedNews struct {
	AgentID     string    `gorm:"primaryKey"`
	NewsID      string    `gorm:"primaryKey"`
	ProcessedAt time.Time `gorm:"not null"`
}

func (ProcessedNews) TableName() string {
	return "agent_news_processed"
}
