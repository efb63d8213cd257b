package services

import (
	"fmt"
	"strings"
	"testing"

	"github.com/glebarez/sqlite"
	"github.com/kumalab/prompt-manager/pkg/internal/cache"
	"github.com/kumalab/prompt-manager/pkg/internal/database"
	"github.com/spf13/viper"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// setupTestDatabase points database.C at a fresh in-memory store named
// after the test, so cases cannot bleed into each other.
func setupTestDatabase(t *testing.T) {
	t.Helper()

	// A fresh cache store per test keeps per-account cache keys from one
	// database leaking into the next.
	require.NoError(t, cache.NewStore())
	viper.Set("secret", "unit-test-secret")

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", strings.ReplaceAll(t.Name(), "/", "_"))
	source, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, database.RunMigration(source))

	database.C = source
}
