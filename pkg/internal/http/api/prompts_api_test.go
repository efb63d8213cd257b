package api

import (
	"net/http"
	"strconv"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPromptLifecycle(t *testing.T) {
	app := setupTestApp(t)

	resp := jsonRequest(t, app, http.MethodPost, "/api/categories", fiber.Map{
		"name": "Productivity",
	}, "")
	require.Equal(t, fiber.StatusCreated, resp.StatusCode)
	categoryID := decodeBody(t, resp)["id"].(float64)

	// Anonymous creation is allowed.
	resp = jsonRequest(t, app, http.MethodPost, "/api/prompts", fiber.Map{
		"title":       "Morning routine",
		"content":     "What's your morning routine?",
		"category_id": categoryID,
		"tags":        []string{"morning", "routine"},
	}, "")
	require.Equal(t, fiber.StatusCreated, resp.StatusCode)
	created := decodeBody(t, resp)
	firstID := created["id"].(float64)
	assert.Len(t, created["tags"], 2)

	// Near-duplicate content comes back as a structured conflict.
	resp = jsonRequest(t, app, http.MethodPost, "/api/prompts", fiber.Map{
		"title":   "Routine v2",
		"content": "What's your morning routine for success?",
	}, "")
	require.Equal(t, fiber.StatusConflict, resp.StatusCode)
	conflict := decodeBody(t, resp)
	assert.Equal(t, firstID, conflict["similar_prompt_id"])
	assert.GreaterOrEqual(t, conflict["similarity"].(float64), float64(80))

	// The caller can override the guard on resubmit.
	resp = jsonRequest(t, app, http.MethodPost, "/api/prompts?force=true", fiber.Map{
		"title":   "Routine v2",
		"content": "What's your morning routine for success?",
	}, "")
	require.Equal(t, fiber.StatusCreated, resp.StatusCode)

	// Dissimilar content just works.
	resp = jsonRequest(t, app, http.MethodPost, "/api/prompts", fiber.Map{
		"title":   "Sea poem",
		"content": "Write a poem about the sea",
	}, "")
	require.Equal(t, fiber.StatusCreated, resp.StatusCode)

	resp = jsonRequest(t, app, http.MethodGet, "/api/prompts", nil, "")
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	listing := decodeBody(t, resp)
	assert.EqualValues(t, 3, listing["count"])
}

func TestPromptListFilters(t *testing.T) {
	app := setupTestApp(t)

	resp := jsonRequest(t, app, http.MethodPost, "/api/categories", fiber.Map{
		"name": "Coding",
	}, "")
	require.Equal(t, fiber.StatusCreated, resp.StatusCode)
	categoryID := decodeBody(t, resp)["id"].(float64)

	resp = jsonRequest(t, app, http.MethodPost, "/api/prompts", fiber.Map{
		"title":       "Reviewer",
		"content":     "Review this pull request for style issues",
		"category_id": categoryID,
		"tags":        []string{"go", "review"},
	}, "")
	require.Equal(t, fiber.StatusCreated, resp.StatusCode)
	taggedID := decodeBody(t, resp)["id"].(float64)

	resp = jsonRequest(t, app, http.MethodPost, "/api/prompts", fiber.Map{
		"title":   "Explainer",
		"content": "Explain what a goroutine is",
		"tags":    []string{"go"},
	}, "")
	require.Equal(t, fiber.StatusCreated, resp.StatusCode)

	resp = jsonRequest(t, app, http.MethodPost, "/api/prompts", fiber.Map{
		"title":   "Untagged",
		"content": "Suggest a title for a travel blog",
	}, "")
	require.Equal(t, fiber.StatusCreated, resp.StatusCode)

	resp = jsonRequest(t, app, http.MethodGet, "/api/prompts?tag=go", nil, "")
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	listing := decodeBody(t, resp)
	assert.EqualValues(t, 2, listing["count"])
	assert.Len(t, listing["data"], 2)

	// Multiple tags mean every named tag must be present.
	resp = jsonRequest(t, app, http.MethodGet, "/api/prompts?tag=go,review", nil, "")
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	listing = decodeBody(t, resp)
	assert.EqualValues(t, 1, listing["count"])
	data := listing["data"].([]any)
	require.Len(t, data, 1)
	assert.Equal(t, taggedID, data[0].(map[string]any)["id"])

	resp = jsonRequest(t, app, http.MethodGet, "/api/prompts?category="+itoa(categoryID), nil, "")
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	listing = decodeBody(t, resp)
	assert.EqualValues(t, 1, listing["count"])

	resp = jsonRequest(t, app, http.MethodGet, "/api/prompts?search=goroutine", nil, "")
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.EqualValues(t, 1, decodeBody(t, resp)["count"])
}

func TestPromptValidationAndMissingCategory(t *testing.T) {
	app := setupTestApp(t)

	resp := jsonRequest(t, app, http.MethodPost, "/api/prompts", fiber.Map{
		"title": "No content",
	}, "")
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)

	resp = jsonRequest(t, app, http.MethodPost, "/api/prompts", fiber.Map{
		"title":       "Stray",
		"content":     "Summarize this meeting transcript",
		"category_id": 999,
	}, "")
	assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)

	resp = jsonRequest(t, app, http.MethodGet, "/api/prompts/12345", nil, "")
	assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)
}

func TestPromptOwnership(t *testing.T) {
	app := setupTestApp(t)

	ownerToken := registerAndLogin(t, app, "owner")
	strangerToken := registerAndLogin(t, app, "stranger")

	resp := jsonRequest(t, app, http.MethodPost, "/api/prompts", fiber.Map{
		"title":   "Mine",
		"content": "Rewrite this paragraph in plain language",
	}, ownerToken)
	require.Equal(t, fiber.StatusCreated, resp.StatusCode)
	id := decodeBody(t, resp)["id"].(float64)
	path := "/api/prompts/" + itoa(id)

	update := fiber.Map{
		"title":   "Still mine",
		"content": "Rewrite this paragraph in plain language",
	}

	resp = jsonRequest(t, app, http.MethodPut, path, update, strangerToken)
	assert.Equal(t, fiber.StatusForbidden, resp.StatusCode)

	resp = jsonRequest(t, app, http.MethodPut, path, update, "")
	assert.Equal(t, fiber.StatusForbidden, resp.StatusCode)

	resp = jsonRequest(t, app, http.MethodPut, path, update, ownerToken)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	resp = jsonRequest(t, app, http.MethodDelete, path, nil, strangerToken)
	assert.Equal(t, fiber.StatusForbidden, resp.StatusCode)

	resp = jsonRequest(t, app, http.MethodDelete, path, nil, ownerToken)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	snapshot := decodeBody(t, resp)
	assert.Equal(t, "Still mine", snapshot["title"])

	resp = jsonRequest(t, app, http.MethodGet, path, nil, "")
	assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)
}

func TestPromptLikeToggleOverHTTP(t *testing.T) {
	app := setupTestApp(t)

	token := registerAndLogin(t, app, "fan")

	resp := jsonRequest(t, app, http.MethodPost, "/api/prompts", fiber.Map{
		"title":   "Likeable",
		"content": "Pitch a podcast episode about tides",
	}, "")
	require.Equal(t, fiber.StatusCreated, resp.StatusCode)
	id := decodeBody(t, resp)["id"].(float64)
	path := "/api/prompts/" + itoa(id) + "/like"

	// Likes require an authenticated caller.
	resp = jsonRequest(t, app, http.MethodPost, path, nil, "")
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)

	// A missing prompt is a 404, not a server error.
	resp = jsonRequest(t, app, http.MethodPost, "/api/prompts/9999/like", nil, token)
	assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)

	resp = jsonRequest(t, app, http.MethodPost, path, nil, token)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	state := decodeBody(t, resp)
	assert.EqualValues(t, 1, state["like_count"])
	assert.Equal(t, true, state["is_liked"])

	resp = jsonRequest(t, app, http.MethodGet, path, nil, token)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Equal(t, true, decodeBody(t, resp)["is_liked"])

	resp = jsonRequest(t, app, http.MethodPost, path, nil, token)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	state = decodeBody(t, resp)
	assert.EqualValues(t, 0, state["like_count"])
	assert.Equal(t, false, state["is_liked"])

	resp = jsonRequest(t, app, http.MethodGet, "/api/users/me/likes", nil, token)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
}

func itoa(id float64) string {
	return strconv.Itoa(int(id))
}
