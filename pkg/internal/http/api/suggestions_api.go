package api

import (
	"github.com/gofiber/fiber/v2"
	"github.com/kumalab/prompt-manager/pkg/internal/http/exts"
	"github.com/kumalab/prompt-manager/pkg/internal/services"
)

func getPromptSuggestions(c *fiber.Ctx) error {
	var data struct {
		Prompt string `json:"prompt" validate:"required"`
	}

	if err := exts.BindAndValidate(c, &data); err != nil {
		return err
	}

	suggestion, err := services.GeneratePromptSuggestion(c.UserContext(), data.Prompt)
	if err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, err.Error())
	}

	return c.JSON(suggestion)
}
