package services

import (
	"errors"
	"strings"

	"github.com/kumalab/prompt-manager/pkg/internal/database"
	"github.com/kumalab/prompt-manager/pkg/internal/models"
	"gorm.io/gorm"
)

func SearchCategories(take int, offset int, probe string) ([]models.Category, error) {
	probe = "%" + strings.ToLower(probe) + "%"

	var categories []models.Category
	err := database.C.Where("LOWER(name) LIKE ?", probe).Offset(offset).Limit(take).Find(&categories).Error

	return categories, err
}

func ListCategory(take int, offset int) ([]models.Category, error) {
	var categories []models.Category
	err := database.C.Offset(offset).Limit(take).Find(&categories).Error

	return categories, err
}

func GetCategory(name string) (models.Category, error) {
	var category models.Category
	if err := database.C.Where(models.Category{Name: name}).First(&category).Error; err != nil {
		return category, err
	}
	return category, nil
}

func GetCategoryWithID(tx *gorm.DB, id uint) (models.Category, error) {
	var category models.Category
	if err := tx.Where(models.Category{
		BaseModel: models.BaseModel{ID: id},
	}).First(&category).Error; err != nil {
		return category, err
	}
	return category, nil
}

func NewCategory(name, description string) (models.Category, error) {
	category := models.Category{
		Name:        name,
		Description: description,
	}

	err := database.C.Save(&category).Error

	return category, err
}

func EditCategory(category models.Category, name, description string) (models.Category, error) {
	category.Name = name
	category.Description = description

	err := database.C.Save(&category).Error

	return category, err
}

// DeleteCategory orphans the category's prompts instead of deleting them;
// only the category row itself goes away.
func DeleteCategory(category models.Category) error {
	return database.C.Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&models.Prompt{}).
			Where("category_id = ?", category.ID).
			Update("category_id", nil).Error; err != nil {
			return err
		}
		return tx.Delete(&category).Error
	})
}

func ListTag(take int, offset int) ([]models.Tag, error) {
	var tags []models.Tag
	err := database.C.Offset(offset).Limit(take).Find(&tags).Error

	return tags, err
}

func GetTagWithID(tx *gorm.DB, id uint) (models.Tag, error) {
	var tag models.Tag
	if err := tx.Where(models.Tag{
		BaseModel: models.BaseModel{ID: id},
	}).First(&tag).Error; err != nil {
		return tag, err
	}
	return tag, nil
}

// GetTagOrCreate resolves a tag by exact name, creating it when absent.
// A unique-constraint race with a concurrent writer is resolved by
// re-fetching the row the other writer inserted.
func GetTagOrCreate(tx *gorm.DB, name string) (models.Tag, error) {
	var tag models.Tag
	if err := tx.Where(models.Tag{Name: name}).First(&tag).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			tag = models.Tag{Name: name}
			if err := tx.Create(&tag).Error; err != nil {
				if refetch := tx.Where(models.Tag{Name: name}).First(&tag).Error; refetch == nil {
					return tag, nil
				}
				return tag, err
			}
			return tag, nil
		}
		return tag, err
	}
	return tag, nil
}

// DeleteTag unlinks the tag from every prompt and removes it; the prompts
// themselves are untouched.
func DeleteTag(tag models.Tag) error {
	return database.C.Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&tag).Association("Prompts").Clear(); err != nil {
			return err
		}
		return tx.Delete(&tag).Error
	})
}
