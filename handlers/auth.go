package handlers

import (
	"blogify/errors"
	"blogify/models"
	"blogify/services/auth"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/session"
)

const sessionUserKey = "user_id"

type AuthHandler struct {
	service auth.Service
	store   *session.Store
}

func NewAuthHandler(service auth.Service, store *session.Store) *AuthHandler {
	return &AuthHandler{service: service, store: store}
}

func (h *AuthHandler) Signup(c *fiber.Ctx) error {
	const op = "AuthHandler.Signup"

	var req models.SignupRequest
	if err := c.BodyParser(&req); err != nil {
		return errors.InvalidInput(op, err, "Invalid data sent")
	}

	user, err := h.service.Signup(c.Context(), &req)
	if err != nil {
		return err
	}

	if err := h.startSession(c, user.ID); err != nil {
		return errors.Internal(op, err, "Failed to start session")
	}

	return c.Status(fiber.StatusCreated).JSON(user)
}

func (h *AuthHandler) Login(c *fiber.Ctx) error {
	const op = "AuthHandler.Login"

	var req models.LoginRequest
	if err := c.BodyParser(&req); err != nil {
		return errors.InvalidInput(op, err, "Invalid data sent")
	}

	user, err := h.service.Login(c.Context(), &req)
	if err != nil {
		return err
	}

	if err := h.startSession(c, user.ID); err != nil {
		return errors.Internal(op, err, "Failed to start session")
	}

	return c.JSON(user)
}

func (h *AuthHandler) Logout(c *fiber.Ctx) error {
	const op = "AuthHandler.Logout"

	sess, err := h.store.Get(c)
	if err != nil {
		return errors.Internal(op, err, "Failed to read session")
	}
	if err := sess.Destroy(); err != nil {
		return errors.Internal(op, err, "Failed to end session")
	}

	return c.JSON(fiber.Map{"message": "Logged out"})
}

// RequireAuth resolves the session into a user id local for downstream
// handlers.
func (h *AuthHandler) RequireAuth(c *fiber.Ctx) error {
	const op = "AuthHandler.RequireAuth"

	sess, err := h.store.Get(c)
	if err != nil {
		return errors.Internal(op, err, "Failed to read session")
	}

	userID, ok := sess.Get(sessionUserKey).(int64)
	if !ok {
		return errors.Unauthorized(op, nil, "Authentication required")
	}

	c.Locals(sessionUserKey, userID)
	return c.Next()
}

func (h *AuthHandler) startSession(c *fiber.Ctx, userID int64) error {
	sess, err := h.store.Get(c)
	if err != nil {
		return err
	}
	// Fresh session id on login to avoid fixation.
	if err := sess.Regenerate(); err != nil {
		return err
	}
	sess.Set(sessionUserKey, userID)
	return sess.Save()
}

func currentUserID(c *fiber.Ctx) int64 {
	id, _ := c.Locals(sessionUserKey).(int64)
	return id
}
