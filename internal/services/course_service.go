package services

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/coursehaven/backend/internal/models"
	"github.com/coursehaven/backend/internal/repository"
	"github.com/coursehaven/backend/internal/utils"
)

// ImageStorage is the slice of the object store the catalog needs.
type ImageStorage interface {
	Upload(ctx context.Context, data []byte, contentType string) (models.CourseImage, error)
	Remove(ctx context.Context, publicID string) error
}

var allowedImageTypes = map[string]bool{
	"image/png":  true,
	"image/jpeg": true,
}

// CourseService manages the catalog. Image bytes go to the object store
// before the record is written; if the record write then fails, the uploaded
// object is removed on the cleanup pool instead of being orphaned.
type CourseService struct {
	courses   repository.CourseRepository
	images    ImageStorage
	cleanup   *utils.WorkerPool
	createdBy string
}

func NewCourseService(courses repository.CourseRepository, images ImageStorage, cleanup *utils.WorkerPool, createdBy string) *CourseService {
	return &CourseService{
		courses:   courses,
		images:    images,
		cleanup:   cleanup,
		createdBy: createdBy,
	}
}

type CreateCourseInput struct {
	Title       string
	Description string
	Price       float64
	ImageData   []byte
	ImageType   string
}

func (s *CourseService) Create(ctx context.Context, creatorID primitive.ObjectID, input CreateCourseInput) (*models.Course, error) {
	if input.Title == "" || input.Description == "" || input.Price <= 0 || len(input.ImageData) == 0 {
		return nil, models.ErrMissingFields
	}
	if !allowedImageTypes[input.ImageType] {
		return nil, models.ErrInvalidImage
	}

	image, err := s.images.Upload(ctx, input.ImageData, input.ImageType)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	course := &models.Course{
		ID:          primitive.NewObjectID(),
		Title:       input.Title,
		Description: input.Description,
		Price:       input.Price,
		Image:       image,
		CreatorID:   creatorID,
		CreatedBy:   s.createdBy,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := s.courses.Insert(ctx, course); err != nil {
		s.removeLater(image.PublicID)
		return nil, err
	}
	return course, nil
}

// Update applies a conditional write keyed on (course, caller): a miss is
// reported as ErrCourseNotOwned without revealing whether the course exists.
// When the artwork is replaced, the old object is removed in the background.
func (s *CourseService) Update(ctx context.Context, courseID, creatorID primitive.ObjectID, update models.CourseUpdate) (*models.Course, error) {
	var previous models.CourseImage
	if update.Image != nil {
		existing, err := s.courses.FindByID(ctx, courseID)
		if err != nil {
			return nil, models.ErrCourseNotOwned
		}
		previous = existing.Image
	}

	course, err := s.courses.UpdateOwned(ctx, courseID, creatorID, update)
	if err != nil {
		return nil, err
	}

	if update.Image != nil && previous.PublicID != "" && previous.PublicID != course.Image.PublicID {
		s.removeLater(previous.PublicID)
	}
	return course, nil
}

func (s *CourseService) Delete(ctx context.Context, courseID, creatorID primitive.ObjectID) error {
	course, err := s.courses.DeleteOwned(ctx, courseID, creatorID)
	if err != nil {
		return err
	}
	if course.Image.PublicID != "" {
		s.removeLater(course.Image.PublicID)
	}
	return nil
}

func (s *CourseService) List(ctx context.Context) ([]models.Course, error) {
	return s.courses.FindAll(ctx)
}

func (s *CourseService) Detail(ctx context.Context, courseID primitive.ObjectID) (*models.Course, error) {
	return s.courses.FindByID(ctx, courseID)
}

func (s *CourseService) removeLater(publicID string) {
	s.cleanup.Submit(func() {
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		s.images.Remove(ctx, publicID)
	})
}
