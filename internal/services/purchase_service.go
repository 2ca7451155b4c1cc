package services

import (
	"context"
	"errors"
	"time"

	"github.com/shopspring/decimal"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/coursehaven/backend/internal/models"
	"github.com/coursehaven/backend/internal/payment"
	"github.com/coursehaven/backend/internal/repository"
	"github.com/coursehaven/backend/internal/utils"
)

const paymentCurrency = "usd"

// PurchaseService runs the two-phase buy workflow.
//
// Phase A (Buy) checks the catalog and the ledger, then asks the gateway for
// a payment authorization and hands the client secret back. Nothing durable
// is written; an abandoned session simply restarts Phase A.
//
// Phase B (PlaceOrder) verifies the client-reported confirmation against the
// gateway's own record of the charge, then records the Order and the ledger
// entry. The unique indexes on orders.payment_id and (user_id, course_id)
// make a retried Phase B converge on the single existing order instead of
// duplicating it.
type PurchaseService struct {
	courses   repository.CourseRepository
	purchases repository.PurchaseRepository
	orders    repository.OrderRepository
	gateway   payment.Gateway
	createdBy string
}

func NewPurchaseService(
	courses repository.CourseRepository,
	purchases repository.PurchaseRepository,
	orders repository.OrderRepository,
	gateway payment.Gateway,
	createdBy string,
) *PurchaseService {
	return &PurchaseService{
		courses:   courses,
		purchases: purchases,
		orders:    orders,
		gateway:   gateway,
		createdBy: createdBy,
	}
}

// Buy initiates a purchase and returns the gateway client secret the buyer
// confirms the charge with. The catalog lookup and the ledger check are
// independent reads and run concurrently.
func (s *PurchaseService) Buy(ctx context.Context, userID, courseID primitive.ObjectID) (string, error) {
	results, errs := utils.Gather(
		func() (interface{}, error) {
			return s.courses.FindByID(ctx, courseID)
		},
		func() (interface{}, error) {
			return s.purchases.Exists(ctx, userID, courseID)
		},
	)
	if errs[0] != nil {
		return "", errs[0]
	}
	if errs[1] != nil {
		return "", errs[1]
	}

	course := results[0].(*models.Course)
	if results[1].(bool) {
		return "", models.ErrAlreadyPurchased
	}

	intent, err := s.gateway.CreateIntent(ctx, minorUnits(course.Price), paymentCurrency)
	if err != nil {
		return "", err
	}
	return intent.ClientSecret, nil
}

type OrderInput struct {
	CourseID  primitive.ObjectID
	Email     string
	PaymentID string
	Amount    float64
}

// PlaceOrder finalizes a purchase. The payment intent is re-fetched from the
// gateway and must be succeeded with a matching amount before anything is
// written. Re-submitting a payment id that was already recorded returns the
// existing order unchanged.
func (s *PurchaseService) PlaceOrder(ctx context.Context, userID primitive.ObjectID, input OrderInput) (*models.Order, error) {
	if existing, err := s.orders.FindByPaymentID(ctx, input.PaymentID); err != nil {
		return nil, err
	} else if existing != nil {
		return existing, nil
	}

	intent, err := s.gateway.GetIntent(ctx, input.PaymentID)
	if err != nil {
		return nil, err
	}
	if intent.Status != payment.IntentSucceeded || intent.Amount != minorUnits(input.Amount) {
		return nil, models.ErrPaymentNotVerified
	}

	order := &models.Order{
		ID:        primitive.NewObjectID(),
		Email:     normalizeEmail(input.Email),
		UserID:    userID,
		CourseID:  input.CourseID,
		PaymentID: input.PaymentID,
		Amount:    input.Amount,
		Status:    models.OrderSuccess,
		CreatedBy: s.createdBy,
		CreatedAt: time.Now(),
	}
	if err := s.orders.Insert(ctx, order); err != nil {
		if errors.Is(err, models.ErrDuplicateOrder) {
			// Lost a race against a concurrent submission of the same payment.
			if existing, findErr := s.orders.FindByPaymentID(ctx, input.PaymentID); findErr == nil && existing != nil {
				return existing, nil
			}
		}
		return nil, err
	}

	purchase := &models.Purchase{
		ID:          primitive.NewObjectID(),
		UserID:      userID,
		CourseID:    input.CourseID,
		PurchasedBy: s.createdBy,
		CreatedAt:   time.Now(),
	}
	if err := s.purchases.Insert(ctx, purchase); err != nil && !errors.Is(err, models.ErrAlreadyPurchased) {
		return nil, err
	}
	return order, nil
}

// Purchases lists the courses a user owns, joining the ledger to the catalog
// by id set.
func (s *PurchaseService) Purchases(ctx context.Context, userID primitive.ObjectID) ([]models.Course, error) {
	records, err := s.purchases.FindByUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	ids := make([]primitive.ObjectID, 0, len(records))
	for _, record := range records {
		ids = append(ids, record.CourseID)
	}
	if len(ids) == 0 {
		return []models.Course{}, nil
	}
	return s.courses.FindByIDs(ctx, ids)
}

// minorUnits converts a price in dollars to cents without float drift.
func minorUnits(price float64) int64 {
	return decimal.NewFromFloat(price).Mul(decimal.NewFromInt(100)).Round(0).IntPart()
}
