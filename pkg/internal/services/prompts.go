package services

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/kumalab/prompt-manager/pkg/internal/database"
	"github.com/kumalab/prompt-manager/pkg/internal/models"
	"github.com/rs/zerolog/log"
	"github.com/samber/lo"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

var (
	ErrCategoryNotFound = errors.New("category not found")
	ErrNotPromptOwner   = errors.New("only the prompt owner can modify it")
)

func FilterPromptWithCategory(tx *gorm.DB, id uint) *gorm.DB {
	return tx.Where("category_id = ?", id)
}

func FilterPromptWithTag(tx *gorm.DB, name string) *gorm.DB {
	names := strings.Split(name, ",")
	return tx.Joins("JOIN prompt_tags ON prompts.id = prompt_tags.prompt_id").
		Joins("JOIN tags ON tags.id = prompt_tags.tag_id").
		Where("tags.name IN ?", names).
		Group("prompts.id").
		Having("COUNT(DISTINCT tags.id) = ?", len(names))
}

func FilterPromptWithFuzzySearch(tx *gorm.DB, probe string) *gorm.DB {
	if len(probe) == 0 {
		return tx
	}

	probe = "%" + strings.ToLower(probe) + "%"
	return tx.Where("LOWER(title) LIKE ? OR LOWER(content) LIKE ?", probe, probe)
}

func FilterPromptWithAuthor(tx *gorm.DB, accountID uint) *gorm.DB {
	return tx.Where("account_id = ?", accountID)
}

func PreloadGeneral(tx *gorm.DB) *gorm.DB {
	return tx.
		Preload("Tags").
		Preload("Category")
}

func GetPrompt(tx *gorm.DB, id uint) (models.Prompt, error) {
	var item models.Prompt
	if err := PreloadGeneral(tx).
		Where("id = ?", id).
		First(&item).Error; err != nil {
		return item, err
	}

	return item, nil
}

func CountPrompt(tx *gorm.DB) (int64, error) {
	var count int64
	if err := tx.Model(&models.Prompt{}).Count(&count).Error; err != nil {
		return count, err
	}

	return count, nil
}

// ListPrompt pages through the given scope; when a viewer is present each
// item gets annotated with whether that account has liked it.
func ListPrompt(tx *gorm.DB, take int, offset int, order any, viewer *uint) ([]*models.Prompt, error) {
	if take > 100 || take <= 0 {
		take = 100
	}

	var items []*models.Prompt
	if err := PreloadGeneral(tx).
		Limit(take).Offset(offset).
		Order(order).
		Find(&items).Error; err != nil {
		return items, err
	}

	if viewer != nil {
		likedIdx, err := ListAccountLikedPromptIDs(*viewer)
		if err != nil {
			return items, err
		}
		for _, item := range items {
			item.IsLiked = lo.Contains(likedIdx, item.ID)
		}
	}

	return items, nil
}

// NewPrompt runs the whole create workflow inside one transaction:
// category validation, then the duplicate guard, then persistence and tag
// reconciliation.
func NewPrompt(item models.Prompt, tagNames []string, force bool) (models.Prompt, error) {
	item.Language = DetectLanguage(item.Content)

	start := time.Now()
	err := database.C.Transaction(func(tx *gorm.DB) error {
		if item.CategoryID != nil {
			if _, err := GetCategoryWithID(tx, *item.CategoryID); err != nil {
				return ErrCategoryNotFound
			}
		}

		if !force {
			match, err := CheckDuplicate(tx, item.Content, 0)
			if err != nil {
				return err
			}
			if match != nil {
				return &DuplicateError{Match: *match}
			}
		}

		if err := tx.Omit(clause.Associations).Create(&item).Error; err != nil {
			return err
		}

		return ReconcileTags(tx, &item, tagNames)
	})
	if err != nil {
		return item, err
	}

	log.Debug().Uint("id", item.ID).Dur("elapsed", time.Since(start)).Msg("A new prompt is created.")
	return item, nil
}

// EditPrompt mirrors NewPrompt for in-place updates; the duplicate guard
// skips the prompt's own row.
func EditPrompt(item models.Prompt, tagNames []string, force bool) (models.Prompt, error) {
	item.Language = DetectLanguage(item.Content)
	item.UpdatedAt = time.Now()

	err := database.C.Transaction(func(tx *gorm.DB) error {
		if item.CategoryID != nil {
			if _, err := GetCategoryWithID(tx, *item.CategoryID); err != nil {
				return ErrCategoryNotFound
			}
		}

		if !force {
			match, err := CheckDuplicate(tx, item.Content, item.ID)
			if err != nil {
				return err
			}
			if match != nil {
				return &DuplicateError{Match: *match}
			}
		}

		if err := tx.Omit(clause.Associations).Save(&item).Error; err != nil {
			return err
		}

		return ReconcileTags(tx, &item, tagNames)
	})

	return item, err
}

// DeletePrompt removes the prompt together with its tag associations and
// like rows; tags and categories stay.
func DeletePrompt(item models.Prompt) error {
	return database.C.Select(clause.Associations).Delete(&item).Error
}

// ReconcileTags brings the prompt's tag set to exactly the named tags.
// Additions and removals are computed as set differences so re-running with
// the same names writes nothing.
func ReconcileTags(tx *gorm.DB, item *models.Prompt, names []string) error {
	desired := make([]models.Tag, 0, len(names))
	seen := map[string]bool{}
	for _, name := range names {
		name = strings.TrimSpace(name)
		if len(name) == 0 || seen[name] {
			continue
		}
		seen[name] = true

		tag, err := GetTagOrCreate(tx, name)
		if err != nil {
			return fmt.Errorf("unable to resolve tag %s: %v", name, err)
		}
		desired = append(desired, tag)
	}

	var current []models.Tag
	if err := tx.Model(item).Association("Tags").Find(&current); err != nil {
		return err
	}

	desiredIdx := lo.SliceToMap(desired, func(tag models.Tag) (uint, models.Tag) {
		return tag.ID, tag
	})
	currentIdx := lo.SliceToMap(current, func(tag models.Tag) (uint, models.Tag) {
		return tag.ID, tag
	})

	removals := lo.Filter(current, func(tag models.Tag, _ int) bool {
		_, ok := desiredIdx[tag.ID]
		return !ok
	})
	additions := lo.Filter(desired, func(tag models.Tag, _ int) bool {
		_, ok := currentIdx[tag.ID]
		return !ok
	})

	if len(removals) > 0 {
		if err := tx.Model(item).Association("Tags").Delete(&removals); err != nil {
			return err
		}
	}
	if len(additions) > 0 {
		if err := tx.Model(item).Association("Tags").Append(&additions); err != nil {
			return err
		}
	}

	item.Tags = desired
	return nil
}
