package api

import "github.com/gofiber/fiber/v2"

func MapAPIs(app *fiber.App, baseURL string) {
	api := app.Group(baseURL).Name("API")
	{
		auth := api.Group("/auth").Name("Auth API")
		{
			auth.Post("/register", doRegister)
			auth.Post("/login", doLogin)
			auth.Get("/me", getMyself)
		}

		prompts := api.Group("/prompts").Name("Prompts API")
		{
			prompts.Get("/", listPrompt)
			prompts.Post("/", createPrompt)
			prompts.Get("/:promptId", getPrompt)
			prompts.Put("/:promptId", editPrompt)
			prompts.Delete("/:promptId", deletePrompt)
			prompts.Post("/:promptId/like", likePrompt)
			prompts.Get("/:promptId/like", getPromptLikeStatus)
		}

		categories := api.Group("/categories").Name("Categories API")
		{
			categories.Get("/", listCategories)
			categories.Get("/:categoryId", getCategory)
			categories.Post("/", newCategory)
			categories.Put("/:categoryId", editCategory)
			categories.Delete("/:categoryId", deleteCategory)
		}

		tags := api.Group("/tags").Name("Tags API")
		{
			tags.Get("/", listTags)
			tags.Get("/:tagId", getTag)
			tags.Delete("/:tagId", deleteTag)
		}

		ai := api.Group("/ai").Name("AI API")
		{
			ai.Post("/suggestions", getPromptSuggestions)
		}

		api.Get("/users/me/likes", listMyLikes)
	}
}
