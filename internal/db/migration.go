package db

import (
	"github.com/curio-chat/curio/entity"
	"github.com/curio-chat/curio/errors"
	"gorm.io/gorm"
)

func AutoMigrate(db *gorm.DB) error {
	return errors.WithStack(db.AutoMigrate(
		&entity.ConversationBuffer{},
		&entity.DialogueRecord{},
		&entity.UserProfile{},
		&entity.NewsItem{},
		&entity.ProcessedNews{},
		&entity.Persona{},
	))
}

func DropAll(db *gorm.DB) error {
	return errors.WithStack(db.Migrator().DropTable(
		&entity.Persona{},
		&entity.ProcessedNews{},
		&entity.NewsItem{},
		&entity.UserProfile{},
		&entity.DialogueRecord{},
		&entity.ConversationBuffer{},
	))
}
