package api

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/kumalab/prompt-manager/pkg/internal/http/exts"
	"github.com/kumalab/prompt-manager/pkg/internal/models"
	"github.com/kumalab/prompt-manager/pkg/internal/services"
	"gorm.io/gorm"
)

// likePrompt is a toggle: the first call likes, the next one takes the
// like back.
func likePrompt(c *fiber.Ctx) error {
	if err := exts.EnsureAuthenticated(c); err != nil {
		return err
	}
	user := c.Locals("user").(models.Account)
	id, _ := c.ParamsInt("promptId", 0)

	count, liked, err := services.ToggleLikePrompt(uint(id), user.ID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fiber.NewError(fiber.StatusNotFound, err.Error())
		}
		return fiber.NewError(fiber.StatusInternalServerError, err.Error())
	}

	return c.JSON(fiber.Map{
		"like_count": count,
		"is_liked":   liked,
	})
}

func getPromptLikeStatus(c *fiber.Ctx) error {
	if err := exts.EnsureAuthenticated(c); err != nil {
		return err
	}
	user := c.Locals("user").(models.Account)
	id, _ := c.ParamsInt("promptId", 0)

	return c.JSON(fiber.Map{
		"is_liked": services.IsPromptLiked(uint(id), user.ID),
	})
}

func listMyLikes(c *fiber.Ctx) error {
	if err := exts.EnsureAuthenticated(c); err != nil {
		return err
	}
	user := c.Locals("user").(models.Account)

	likes, err := services.ListAccountLikes(user.ID)
	if err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, err.Error())
	}

	return c.JSON(likes)
}
