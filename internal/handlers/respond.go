package handlers

import (
	"errors"
	"fmt"
	"log"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"

	"github.com/coursehaven/backend/internal/models"
)

func statusFor(err error) int {
	switch {
	case errors.Is(err, models.ErrCourseNotFound),
		errors.Is(err, models.ErrCourseNotOwned),
		errors.Is(err, models.ErrAccountNotFound):
		return fiber.StatusNotFound
	case errors.Is(err, models.ErrInvalidCredentials):
		return fiber.StatusForbidden
	case errors.Is(err, models.ErrEmailTaken),
		errors.Is(err, models.ErrAlreadyPurchased),
		errors.Is(err, models.ErrDuplicateOrder),
		errors.Is(err, models.ErrPaymentNotVerified),
		errors.Is(err, models.ErrInvalidImage),
		errors.Is(err, models.ErrMissingFields):
		return fiber.StatusBadRequest
	default:
		return fiber.StatusInternalServerError
	}
}

// fail maps a workflow error to its status and wire message. Unexpected
// errors are logged and replaced with the handler's generic message so no
// upstream detail leaks to the caller.
func fail(c *fiber.Ctx, err error, fallback string) error {
	status := statusFor(err)
	message := err.Error()
	if status == fiber.StatusInternalServerError {
		log.Printf("%s: %v", fallback, err)
		message = fallback
	}
	return c.Status(status).JSON(fiber.Map{"errors": message})
}

// validationMessages flattens validator output into the field-level message
// slice the API returns for 400s.
func validationMessages(err error) []string {
	var fieldErrors validator.ValidationErrors
	if !errors.As(err, &fieldErrors) {
		return []string{"Invalid request body"}
	}
	messages := make([]string, 0, len(fieldErrors))
	for _, fe := range fieldErrors {
		switch fe.Tag() {
		case "required":
			messages = append(messages, fmt.Sprintf("%s is required", fe.Field()))
		case "min":
			messages = append(messages, fmt.Sprintf("%s must be at least %s characters", fe.Field(), fe.Param()))
		case "email":
			messages = append(messages, "Invalid email address")
		case "gte":
			messages = append(messages, fmt.Sprintf("%s must be %s or more", fe.Field(), fe.Param()))
		default:
			messages = append(messages, fmt.Sprintf("%s is invalid", fe.Field()))
		}
	}
	return messages
}
