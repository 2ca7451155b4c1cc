package handlers

import (
	"io"
	"strconv"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/coursehaven/backend/internal/middleware"
	"github.com/coursehaven/backend/internal/models"
	"github.com/coursehaven/backend/internal/services"
)

type CourseHandler struct {
	courses  *services.CourseService
	validate *validator.Validate
}

func NewCourseHandler(courses *services.CourseService, validate *validator.Validate) *CourseHandler {
	return &CourseHandler{courses: courses, validate: validate}
}

// Create takes a multipart form: title, description, price, image.
func (h *CourseHandler) Create(c *fiber.Ctx) error {
	adminID, err := callerID(c, middleware.AdminIDKey)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"errors": "Invalid or expired token"})
	}

	title := c.FormValue("title")
	description := c.FormValue("description")
	price, _ := strconv.ParseFloat(c.FormValue("price"), 64)

	fileHeader, err := c.FormFile("image")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"errors": "Course image is required"})
	}
	file, err := fileHeader.Open()
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"errors": "Course image is required"})
	}
	defer file.Close()
	imageData, err := io.ReadAll(file)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"errors": "Course image is required"})
	}

	course, err := h.courses.Create(c.Context(), adminID, services.CreateCourseInput{
		Title:       title,
		Description: description,
		Price:       price,
		ImageData:   imageData,
		ImageType:   fileHeader.Header.Get("Content-Type"),
	})
	if err != nil {
		return fail(c, err, "Error creating course")
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"message": "Course created successfully",
		"course":  course,
	})
}

type updateCourseRequest struct {
	Title       string              `json:"title" validate:"required"`
	Description string              `json:"description" validate:"required"`
	Price       float64             `json:"price" validate:"gte=0"`
	Image       *models.CourseImage `json:"image"`
}

func (h *CourseHandler) Update(c *fiber.Ctx) error {
	adminID, err := callerID(c, middleware.AdminIDKey)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"errors": "Invalid or expired token"})
	}
	courseID, err := primitive.ObjectIDFromHex(c.Params("courseId"))
	if err != nil {
		return fail(c, models.ErrCourseNotOwned, "")
	}

	var req updateCourseRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"errors": "Invalid request body"})
	}
	if err := h.validate.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"errors": validationMessages(err)})
	}

	course, err := h.courses.Update(c.Context(), courseID, adminID, models.CourseUpdate{
		Title:       req.Title,
		Description: req.Description,
		Price:       req.Price,
		Image:       req.Image,
	})
	if err != nil {
		return fail(c, err, "Error updating course")
	}

	return c.JSON(fiber.Map{
		"message": "Course updated successfully",
		"course":  course,
	})
}

func (h *CourseHandler) Delete(c *fiber.Ctx) error {
	adminID, err := callerID(c, middleware.AdminIDKey)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"errors": "Invalid or expired token"})
	}
	courseID, err := primitive.ObjectIDFromHex(c.Params("courseId"))
	if err != nil {
		return fail(c, models.ErrCourseNotOwned, "")
	}

	if err := h.courses.Delete(c.Context(), courseID, adminID); err != nil {
		return fail(c, err, "Error deleting course")
	}
	return c.JSON(fiber.Map{"message": "Course deleted successfully"})
}

func (h *CourseHandler) List(c *fiber.Ctx) error {
	courses, err := h.courses.List(c.Context())
	if err != nil {
		return fail(c, err, "Error fetching courses")
	}
	return c.JSON(fiber.Map{"courses": courses})
}

func (h *CourseHandler) Detail(c *fiber.Ctx) error {
	courseID, err := primitive.ObjectIDFromHex(c.Params("courseId"))
	if err != nil {
		return fail(c, models.ErrCourseNotFound, "")
	}

	course, err := h.courses.Detail(c.Context(), courseID)
	if err != nil {
		return fail(c, err, "Error fetching course details")
	}
	return c.JSON(fiber.Map{"course": course})
}

// callerID reads the identity a gate stored in locals.
func callerID(c *fiber.Ctx, key string) (primitive.ObjectID, error) {
	hex, _ := c.Locals(key).(string)
	return primitive.ObjectIDFromHex(hex)
}
