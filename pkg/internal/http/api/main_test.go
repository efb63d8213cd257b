package api

import (
	"bytes"
	"fmt"
	"io"
	"net/http"
	"strings"
	"testing"

	"github.com/glebarez/sqlite"
	"github.com/gofiber/fiber/v2"
	jsoniter "github.com/json-iterator/go"
	"github.com/kumalab/prompt-manager/pkg/internal/cache"
	"github.com/kumalab/prompt-manager/pkg/internal/database"
	"github.com/kumalab/prompt-manager/pkg/internal/http/exts"
	"github.com/spf13/viper"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func setupTestApp(t *testing.T) *fiber.App {
	t.Helper()

	require.NoError(t, cache.NewStore())
	viper.Set("secret", "api-test-secret")

	dsn := fmt.Sprintf("file:api_%s?mode=memory&cache=shared", strings.ReplaceAll(t.Name(), "/", "_"))
	source, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, database.RunMigration(source))
	database.C = source

	app := fiber.New(fiber.Config{
		DisableStartupMessage: true,
		JSONEncoder:           jsoniter.ConfigCompatibleWithStandardLibrary.Marshal,
		JSONDecoder:           jsoniter.ConfigCompatibleWithStandardLibrary.Unmarshal,
	})
	app.Use(exts.AuthMiddleware)
	MapAPIs(app, "/api")

	return app
}

func jsonRequest(t *testing.T, app *fiber.App, method, path string, body any, token string) *http.Response {
	t.Helper()

	var reader io.Reader
	if body != nil {
		raw, err := jsoniter.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	}

	req, err := http.NewRequest(method, path, reader)
	require.NoError(t, err)
	if body != nil {
		req.Header.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)
	}
	if len(token) > 0 {
		req.Header.Set(fiber.HeaderAuthorization, "Bearer "+token)
	}

	resp, err := app.Test(req, -1)
	require.NoError(t, err)

	return resp
}

func decodeBody(t *testing.T, resp *http.Response) map[string]any {
	t.Helper()

	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)

	var out map[string]any
	require.NoError(t, jsoniter.Unmarshal(raw, &out))

	return out
}

func decodeInto(t *testing.T, resp *http.Response, out any) {
	t.Helper()

	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	require.NoError(t, jsoniter.Unmarshal(raw, out))
}

func registerAndLogin(t *testing.T, app *fiber.App, name string) string {
	t.Helper()

	resp := jsonRequest(t, app, http.MethodPost, "/api/auth/register", fiber.Map{
		"name":     name,
		"email":    name + "@example.com",
		"password": "super-secret-pw",
	}, "")
	require.Equal(t, fiber.StatusCreated, resp.StatusCode)

	resp = jsonRequest(t, app, http.MethodPost, "/api/auth/login", fiber.Map{
		"name":     name,
		"password": "super-secret-pw",
	}, "")
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	token, _ := decodeBody(t, resp)["access_token"].(string)
	require.NotEmpty(t, token)

	return token
}
