package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/eko/gocache/lib/v4/cache"
	"github.com/eko/gocache/lib/v4/marshaler"
	"github.com/eko/gocache/lib/v4/store"
	localCache "github.com/kumalab/prompt-manager/pkg/internal/cache"
	"github.com/kumalab/prompt-manager/pkg/internal/database"
	"github.com/kumalab/prompt-manager/pkg/internal/models"
	"gorm.io/gorm"
)

func accountLikeCacheKey(accountID uint) string {
	return fmt.Sprintf("account-liked-prompts#%d", accountID)
}

// ToggleLikePrompt flips the (account, prompt) like membership and keeps
// the denormalized counter in step with it inside one transaction. The
// counter is adjusted in SQL so concurrent toggles never save each other's
// stale value. Returns the new count and whether the prompt is now liked.
func ToggleLikePrompt(promptID, accountID uint) (int, bool, error) {
	var item models.Prompt
	if err := database.C.Where("id = ?", promptID).First(&item).Error; err != nil {
		return 0, false, err
	}

	var liked bool
	err := database.C.Transaction(func(tx *gorm.DB) error {
		var counter any

		var like models.PromptLike
		err := tx.Where("account_id = ? AND prompt_id = ?", accountID, promptID).
			First(&like).Error
		if err != nil {
			if !errors.Is(err, gorm.ErrRecordNotFound) {
				return err
			}

			like = models.PromptLike{AccountID: accountID, PromptID: promptID}
			if err := tx.Create(&like).Error; err != nil {
				return err
			}
			counter = gorm.Expr("like_count + 1")
			liked = true
		} else {
			if err := tx.Delete(&like).Error; err != nil {
				return err
			}
			// Clamp at zero so counter drift can never push it negative.
			counter = gorm.Expr("CASE WHEN like_count > 0 THEN like_count - 1 ELSE 0 END")
			liked = false
		}

		if err := tx.Model(&models.Prompt{}).
			Where("id = ?", promptID).
			Updates(map[string]any{
				"like_count": counter,
				"updated_at": time.Now(),
			}).Error; err != nil {
			return err
		}

		return tx.Select("like_count").Where("id = ?", promptID).First(&item).Error
	})
	if err != nil {
		return item.LikeCount, liked, err
	}

	FlushAccountLikeCache(accountID)
	return item.LikeCount, liked, nil
}

func IsPromptLiked(promptID, accountID uint) bool {
	var count int64
	if err := database.C.Model(&models.PromptLike{}).
		Where("account_id = ? AND prompt_id = ?", accountID, promptID).
		Count(&count).Error; err != nil {
		return false
	}
	return count > 0
}

// ListAccountLikedPromptIDs returns every prompt id the account has liked,
// cached for a short while since list endpoints ask on every page.
func ListAccountLikedPromptIDs(accountID uint) ([]uint, error) {
	cacheManager := cache.New[any](localCache.S)
	marshal := marshaler.New(cacheManager)
	ctx := context.Background()

	statusCacheKey := accountLikeCacheKey(accountID)
	if statusCache, err := marshal.Get(ctx, statusCacheKey, new([]uint)); err == nil {
		return *statusCache.(*[]uint), nil
	}

	var idx []uint
	if err := database.C.Model(&models.PromptLike{}).
		Where("account_id = ?", accountID).
		Pluck("prompt_id", &idx).Error; err != nil {
		return idx, err
	}

	_ = marshal.Set(
		ctx,
		statusCacheKey,
		idx,
		store.WithExpiration(5*time.Minute),
		store.WithTags([]string{"account-liked-prompts", fmt.Sprintf("account#%d", accountID)}),
	)

	return idx, nil
}

func FlushAccountLikeCache(accountID uint) {
	cacheManager := cache.New[any](localCache.S)
	marshal := marshaler.New(cacheManager)
	_ = marshal.Delete(context.Background(), accountLikeCacheKey(accountID))
}

func ListAccountLikes(accountID uint) ([]models.PromptLike, error) {
	var likes []models.PromptLike
	if err := database.C.
		Where("account_id = ?", accountID).
		Order("created_at DESC").
		Find(&likes).Error; err != nil {
		return likes, err
	}
	return likes, nil
}
