package handlers

import (
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"

	"github.com/coursehaven/backend/internal/services"
)

// AuthHandler serves signup/login/logout for one role. Two instances are
// mounted, one per credential collection, differing only in the service they
// wrap and the label used in response bodies ("admin" or "user").
type AuthHandler struct {
	auth     *services.AuthService
	validate *validator.Validate
	label    string
}

func NewAuthHandler(auth *services.AuthService, validate *validator.Validate, label string) *AuthHandler {
	return &AuthHandler{auth: auth, validate: validate, label: label}
}

type signupRequest struct {
	FirstName string `json:"firstName" validate:"required,min=3"`
	LastName  string `json:"lastName" validate:"required,min=3"`
	Email     string `json:"email" validate:"required,email"`
	Password  string `json:"password" validate:"required,min=6"`
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (h *AuthHandler) Signup(c *fiber.Ctx) error {
	var req signupRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"errors": "Invalid request body"})
	}
	if err := h.validate.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"errors": validationMessages(err)})
	}

	account, err := h.auth.Signup(c.Context(), services.SignupInput{
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Email:     req.Email,
		Password:  req.Password,
	})
	if err != nil {
		return fail(c, err, "Error during "+h.label+" signup")
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"message": titled(h.label) + " registered successfully",
		h.label:   account.Public(),
	})
}

func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var req loginRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"errors": "Invalid request body"})
	}

	token, account, err := h.auth.Login(c.Context(), req.Email, req.Password)
	if err != nil {
		return fail(c, err, "Error during "+h.label+" login")
	}

	setAuthCookie(c, token)
	return c.JSON(fiber.Map{
		"message": "Login successful",
		h.label:   account.Public(),
		"token":   token,
	})
}

func (h *AuthHandler) Logout(c *fiber.Ctx) error {
	clearAuthCookie(c)
	return c.JSON(fiber.Map{"message": "Logged out successfully"})
}

// The token rides both ways: httpOnly cookie for browser sessions, bearer
// token in the body for API clients. The gates accept either.
func setAuthCookie(c *fiber.Ctx, token string) {
	c.Cookie(&fiber.Cookie{
		Name:     "jwt",
		Value:    token,
		Expires:  time.Now().Add(services.TokenTTL),
		HTTPOnly: true,
		SameSite: "Strict",
	})
}

func clearAuthCookie(c *fiber.Ctx) {
	c.Cookie(&fiber.Cookie{
		Name:     "jwt",
		Value:    "",
		Expires:  time.Now().Add(-time.Hour),
		HTTPOnly: true,
		SameSite: "Strict",
	})
}

func titled(label string) string {
	if label == "" {
		return label
	}
	return strings.ToUpper(label[:1]) + label[1:]
}
