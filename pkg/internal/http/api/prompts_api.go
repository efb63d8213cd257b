package api

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/kumalab/prompt-manager/pkg/internal/database"
	"github.com/kumalab/prompt-manager/pkg/internal/http/exts"
	"github.com/kumalab/prompt-manager/pkg/internal/models"
	"github.com/kumalab/prompt-manager/pkg/internal/services"
	"gorm.io/gorm"
)

func universalPromptFilter(c *fiber.Ctx, tx *gorm.DB) (*gorm.DB, error) {
	if len(c.Query("search")) > 0 {
		tx = services.FilterPromptWithFuzzySearch(tx, c.Query("search"))
	}
	if categoryID := c.QueryInt("category", 0); categoryID > 0 {
		tx = services.FilterPromptWithCategory(tx, uint(categoryID))
	}
	if len(c.Query("tag")) > 0 {
		tx = services.FilterPromptWithTag(tx, c.Query("tag"))
	}
	if authorID := c.QueryInt("author", 0); authorID > 0 {
		tx = services.FilterPromptWithAuthor(tx, uint(authorID))
	}

	return tx, nil
}

func listPrompt(c *fiber.Ctx) error {
	take := c.QueryInt("take", 0)
	offset := c.QueryInt("offset", 0)

	tx := database.C.Model(&models.Prompt{})

	var err error
	if tx, err = universalPromptFilter(c, tx); err != nil {
		return err
	}

	count, err := services.CountPrompt(tx)
	if err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, err.Error())
	}

	var viewer *uint
	if user, authenticated := c.Locals("user").(models.Account); authenticated {
		viewer = &user.ID
	}

	items, err := services.ListPrompt(tx, take, offset, "prompts.created_at DESC", viewer)
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, err.Error())
	}

	return c.JSON(fiber.Map{
		"count": count,
		"data":  items,
	})
}

func getPrompt(c *fiber.Ctx) error {
	id, _ := c.ParamsInt("promptId", 0)

	item, err := services.GetPrompt(database.C, uint(id))
	if err != nil {
		return fiber.NewError(fiber.StatusNotFound, err.Error())
	}

	if user, authenticated := c.Locals("user").(models.Account); authenticated {
		item.IsLiked = services.IsPromptLiked(item.ID, user.ID)
	}

	return c.JSON(item)
}

func createPrompt(c *fiber.Ctx) error {
	var data struct {
		Title       string   `json:"title" validate:"required,max=1024"`
		Content     string   `json:"content" validate:"required"`
		Description *string  `json:"description"`
		CategoryID  *uint    `json:"category_id"`
		Tags        []string `json:"tags"`
	}

	if err := exts.BindAndValidate(c, &data); err != nil {
		return err
	}

	item := models.Prompt{
		Title:       data.Title,
		Content:     data.Content,
		Description: data.Description,
		CategoryID:  data.CategoryID,
	}

	// Prompts can be created anonymously; the owner is only recorded when
	// the caller is signed in.
	if user, authenticated := c.Locals("user").(models.Account); authenticated {
		item.AccountID = &user.ID
	}

	item, err := services.NewPrompt(item, data.Tags, c.QueryBool("force", false))
	if err != nil {
		return renderPromptWorkflowError(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(item)
}

func editPrompt(c *fiber.Ctx) error {
	id, _ := c.ParamsInt("promptId", 0)

	var data struct {
		Title       string   `json:"title" validate:"required,max=1024"`
		Content     string   `json:"content" validate:"required"`
		Description *string  `json:"description"`
		CategoryID  *uint    `json:"category_id"`
		Tags        []string `json:"tags"`
	}

	if err := exts.BindAndValidate(c, &data); err != nil {
		return err
	}

	item, err := services.GetPrompt(database.C, uint(id))
	if err != nil {
		return fiber.NewError(fiber.StatusNotFound, err.Error())
	}

	if item.AccountID != nil {
		user, authenticated := c.Locals("user").(models.Account)
		if !authenticated || user.ID != *item.AccountID {
			return fiber.NewError(fiber.StatusForbidden, services.ErrNotPromptOwner.Error())
		}
	}

	item.Title = data.Title
	item.Content = data.Content
	item.Description = data.Description
	item.CategoryID = data.CategoryID

	item, err = services.EditPrompt(item, data.Tags, c.QueryBool("force", false))
	if err != nil {
		return renderPromptWorkflowError(c, err)
	}

	return c.JSON(item)
}

func deletePrompt(c *fiber.Ctx) error {
	id, _ := c.ParamsInt("promptId", 0)

	item, err := services.GetPrompt(database.C, uint(id))
	if err != nil {
		return fiber.NewError(fiber.StatusNotFound, err.Error())
	}

	if item.AccountID != nil {
		user, authenticated := c.Locals("user").(models.Account)
		if !authenticated || user.ID != *item.AccountID {
			return fiber.NewError(fiber.StatusForbidden, services.ErrNotPromptOwner.Error())
		}
	}

	if err := services.DeletePrompt(item); err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, err.Error())
	}

	// Hand back the pre-deletion snapshot.
	return c.JSON(item)
}

func renderPromptWorkflowError(c *fiber.Ctx, err error) error {
	var duplicated *services.DuplicateError
	if errors.As(err, &duplicated) {
		return c.Status(fiber.StatusConflict).JSON(fiber.Map{
			"message":           "a similar prompt already exists",
			"similar_prompt_id": duplicated.Match.PromptID,
			"similarity":        duplicated.Match.Similarity,
		})
	}
	if errors.Is(err, services.ErrCategoryNotFound) {
		return fiber.NewError(fiber.StatusNotFound, err.Error())
	}
	return fiber.NewError(fiber.StatusBadRequest, err.Error())
}
