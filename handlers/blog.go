package handlers

import (
	"blogify/errors"
	"blogify/models"
	"blogify/services/blog"

	"github.com/gofiber/fiber/v2"
)

type BlogHandler struct {
	service blog.Service
}

func NewBlogHandler(service blog.Service) *BlogHandler {
	return &BlogHandler{service: service}
}

// Generate is registered for all methods on its route so that non-POST
// requests get a 405 rather than fiber's default 404.
func (h *BlogHandler) Generate(c *fiber.Ctx) error {
	const op = "BlogHandler.Generate"

	if c.Method() != fiber.MethodPost {
		return errors.MethodNotAllowed(op, "Invalid request method")
	}

	var req models.GenerateRequest
	if err := c.BodyParser(&req); err != nil {
		return errors.InvalidInput(op, err, "Invalid data sent")
	}
	if req.Link == "" {
		return errors.InvalidInput(op, nil, "Invalid data sent")
	}

	post, err := h.service.Generate(c.Context(), currentUserID(c), req.Link)
	if err != nil {
		return err
	}

	return c.JSON(models.GenerateResponse{Content: post.GeneratedContent})
}

func (h *BlogHandler) ListPosts(c *fiber.Ctx) error {
	posts, err := h.service.List(c.Context(), currentUserID(c))
	if err != nil {
		return err
	}

	// Empty lists serialize as [] rather than null.
	if posts == nil {
		posts = []models.BlogPost{}
	}

	return c.JSON(models.PostListResponse{Posts: posts})
}

func (h *BlogHandler) GetPost(c *fiber.Ctx) error {
	post, err := h.service.Get(c.Context(), currentUserID(c), c.Params("id"))
	if err != nil {
		return err
	}

	return c.JSON(post)
}
