package api

import (
	"github.com/gofiber/fiber/v2"
	"github.com/kumalab/prompt-manager/pkg/internal/database"
	"github.com/kumalab/prompt-manager/pkg/internal/http/exts"
	"github.com/kumalab/prompt-manager/pkg/internal/services"
)

func listCategories(c *fiber.Ctx) error {
	take := c.QueryInt("take", 100)
	offset := c.QueryInt("offset", 0)

	var err error
	var categories any
	if probe := c.Query("probe"); len(probe) > 0 {
		categories, err = services.SearchCategories(take, offset, probe)
	} else {
		categories, err = services.ListCategory(take, offset)
	}
	if err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, err.Error())
	}

	return c.JSON(categories)
}

func getCategory(c *fiber.Ctx) error {
	id, _ := c.ParamsInt("categoryId", 0)

	category, err := services.GetCategoryWithID(database.C, uint(id))
	if err != nil {
		return fiber.NewError(fiber.StatusNotFound, err.Error())
	}

	return c.JSON(category)
}

func newCategory(c *fiber.Ctx) error {
	var data struct {
		Name        string `json:"name" validate:"required,max=50"`
		Description string `json:"description" validate:"max=200"`
	}

	if err := exts.BindAndValidate(c, &data); err != nil {
		return err
	}

	if _, err := services.GetCategory(data.Name); err == nil {
		return fiber.NewError(fiber.StatusBadRequest, "category name is already in use")
	}

	category, err := services.NewCategory(data.Name, data.Description)
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, err.Error())
	}

	return c.Status(fiber.StatusCreated).JSON(category)
}

func editCategory(c *fiber.Ctx) error {
	id, _ := c.ParamsInt("categoryId", 0)

	var data struct {
		Name        string `json:"name" validate:"required,max=50"`
		Description string `json:"description" validate:"max=200"`
	}

	if err := exts.BindAndValidate(c, &data); err != nil {
		return err
	}

	category, err := services.GetCategoryWithID(database.C, uint(id))
	if err != nil {
		return fiber.NewError(fiber.StatusNotFound, err.Error())
	}

	if category, err = services.EditCategory(category, data.Name, data.Description); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, err.Error())
	}

	return c.JSON(category)
}

func deleteCategory(c *fiber.Ctx) error {
	id, _ := c.ParamsInt("categoryId", 0)

	category, err := services.GetCategoryWithID(database.C, uint(id))
	if err != nil {
		return fiber.NewError(fiber.StatusNotFound, err.Error())
	}

	if err := services.DeleteCategory(category); err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, err.Error())
	}

	return c.SendStatus(fiber.StatusOK)
}
