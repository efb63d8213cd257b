package services

import (
	"github.com/kumalab/prompt-manager/pkg/internal/database"
	"github.com/kumalab/prompt-manager/pkg/internal/models"
	"github.com/rs/zerolog/log"
)

// DoAutoDatabaseCleanup prunes tags nothing points at anymore and repairs
// like counters that drifted from the actual like rows.
func DoAutoDatabaseCleanup() {
	log.Debug().Msg("Now cleaning up database...")

	orphanTags := database.C.
		Where("id NOT IN (?)", database.C.Table("prompt_tags").Select("tag_id")).
		Delete(&models.Tag{})
	if orphanTags.Error != nil {
		log.Error().Err(orphanTags.Error).Msg("An error occurred when pruning orphan tags...")
	}

	drifted := database.C.Exec(`
		UPDATE prompts SET like_count = (
			SELECT COUNT(*) FROM prompt_likes WHERE prompt_likes.prompt_id = prompts.id
		) WHERE like_count != (
			SELECT COUNT(*) FROM prompt_likes WHERE prompt_likes.prompt_id = prompts.id
		)
	`)
	if drifted.Error != nil {
		log.Error().Err(drifted.Error).Msg("An error occurred when resyncing like counters...")
	}

	log.Debug().
		Int64("orphan_tags", orphanTags.RowsAffected).
		Int64("drifted_counters", drifted.RowsAffected).
		Msg("Database cleanup finished.")
}
