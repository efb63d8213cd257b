package database

import (
	"github.com/kumalab/prompt-manager/pkg/internal/models"
	"gorm.io/gorm"
)

var AutoMaintainRange = []any{
	&models.Account{},
	&models.Category{},
	&models.Tag{},
	&models.Prompt{},
}

func RunMigration(source *gorm.DB) error {
	if err := source.AutoMigrate(
		append(
			AutoMaintainRange,
			&models.PromptLike{},
		)...,
	); err != nil {
		return err
	}

	return nil
}
