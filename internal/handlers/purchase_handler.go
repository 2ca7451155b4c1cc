package handlers

import (
	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/coursehaven/backend/internal/middleware"
	"github.com/coursehaven/backend/internal/models"
	"github.com/coursehaven/backend/internal/services"
)

// PurchaseHandler serves the buy workflow: Phase A initiation, Phase B
// finalization, and the purchased-courses read path.
type PurchaseHandler struct {
	purchases *services.PurchaseService
	validate  *validator.Validate
}

func NewPurchaseHandler(purchases *services.PurchaseService, validate *validator.Validate) *PurchaseHandler {
	return &PurchaseHandler{purchases: purchases, validate: validate}
}

func (h *PurchaseHandler) Buy(c *fiber.Ctx) error {
	userID, err := callerID(c, middleware.UserIDKey)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"errors": "Invalid or expired token"})
	}
	courseID, err := primitive.ObjectIDFromHex(c.Params("courseId"))
	if err != nil {
		return fail(c, models.ErrCourseNotFound, "")
	}

	clientSecret, err := h.purchases.Buy(c.Context(), userID, courseID)
	if err != nil {
		return fail(c, err, "Payment failed")
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"message":      "Payment initiated successfully",
		"clientSecret": clientSecret,
	})
}

type orderRequest struct {
	UserID    string  `json:"userId" validate:"required"`
	CourseID  string  `json:"courseId" validate:"required"`
	Email     string  `json:"email" validate:"required,email"`
	PaymentID string  `json:"paymentId" validate:"required"`
	Amount    float64 `json:"amount" validate:"gte=0"`
	// Status is accepted for compatibility but never trusted; the recorded
	// status comes from the gateway verification.
	Status string `json:"status"`
}

func (h *PurchaseHandler) PlaceOrder(c *fiber.Ctx) error {
	userID, err := callerID(c, middleware.UserIDKey)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"errors": "Invalid or expired token"})
	}

	var req orderRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"errors": "Invalid request body"})
	}
	if err := h.validate.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"errors": validationMessages(err)})
	}

	// The authenticated identity is authoritative; a payload naming someone
	// else is rejected outright.
	if req.UserID != userID.Hex() {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"errors": "UserId does not match the authenticated user"})
	}
	courseID, err := primitive.ObjectIDFromHex(req.CourseID)
	if err != nil {
		return fail(c, models.ErrCourseNotFound, "")
	}

	order, err := h.purchases.PlaceOrder(c.Context(), userID, services.OrderInput{
		CourseID:  courseID,
		Email:     req.Email,
		PaymentID: req.PaymentID,
		Amount:    req.Amount,
	})
	if err != nil {
		return fail(c, err, "Error while creating order")
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"message": "Order placed successfully",
		"order":   order,
	})
}

func (h *PurchaseHandler) Purchases(c *fiber.Ctx) error {
	userID, err := callerID(c, middleware.UserIDKey)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"errors": "Invalid or expired token"})
	}

	courses, err := h.purchases.Purchases(c.Context(), userID)
	if err != nil {
		return fail(c, err, "Error fetching purchases")
	}

	return c.JSON(fiber.Map{
		"message": "Purchased courses fetched successfully",
		"courses": courses,
	})
}
