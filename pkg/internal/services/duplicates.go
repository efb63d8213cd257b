package services

import (
	"fmt"

	"github.com/kumalab/prompt-manager/pkg/internal/models"
	"github.com/spf13/viper"
	"gorm.io/gorm"
)

// DefaultDuplicateThreshold is the similarity score at which a prompt
// counts as a near duplicate of an existing one.
const DefaultDuplicateThreshold = 80

type DuplicateMatch struct {
	PromptID   uint `json:"similar_prompt_id"`
	Similarity int  `json:"similarity"`
}

type DuplicateError struct {
	Match DuplicateMatch
}

func (v *DuplicateError) Error() string {
	return fmt.Sprintf(
		"a similar prompt already exists (#%d, similarity %d)",
		v.Match.PromptID,
		v.Match.Similarity,
	)
}

func DuplicateThreshold() int {
	if threshold := viper.GetInt("prompts.duplicate_threshold"); threshold > 0 {
		return threshold
	}
	return DefaultDuplicateThreshold
}

// CheckDuplicate scans the prompts in the given scope and returns the best
// match scoring at or above the threshold, ties broken by lowest id.
// Read-only; returns nil when nothing comes close enough.
func CheckDuplicate(tx *gorm.DB, content string, excludeID uint) (*DuplicateMatch, error) {
	var candidates []models.Prompt
	if err := tx.Model(&models.Prompt{}).
		Select("id", "content").
		Find(&candidates).Error; err != nil {
		return nil, err
	}

	threshold := DuplicateThreshold()

	var match *DuplicateMatch
	for _, item := range candidates {
		if item.ID == excludeID {
			continue
		}
		score := SimilarityScore(content, item.Content)
		if score < threshold {
			continue
		}
		if match == nil || score > match.Similarity ||
			(score == match.Similarity && item.ID < match.PromptID) {
			match = &DuplicateMatch{PromptID: item.ID, Similarity: score}
		}
	}

	return match, nil
}
