package services

import (
	"testing"

	"github.com/kumalab/prompt-manager/pkg/internal/database"
	"github.com/kumalab/prompt-manager/pkg/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDoAutoDatabaseCleanup(t *testing.T) {
	setupTestDatabase(t)

	account, err := NewAccount("pat", "pat@example.com", "super-secret-pw")
	require.NoError(t, err)

	item := mustCreatePrompt(t, "Kept", "Outline a product launch checklist", []string{"launch"}, nil)
	_, _, err = ToggleLikePrompt(item.ID, account.ID)
	require.NoError(t, err)

	// An orphan tag and a drifted counter, both waiting for maintenance.
	require.NoError(t, database.C.Create(&models.Tag{Name: "unused"}).Error)
	require.NoError(t, database.C.Model(&models.Prompt{}).
		Where("id = ?", item.ID).
		Update("like_count", 7).Error)

	DoAutoDatabaseCleanup()

	var tagCount int64
	require.NoError(t, database.C.Model(&models.Tag{}).Count(&tagCount).Error)
	assert.EqualValues(t, 1, tagCount, "only the referenced tag survives")

	refreshed, err := GetPrompt(database.C, item.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, refreshed.LikeCount, "counter resynced with the like rows")
}
