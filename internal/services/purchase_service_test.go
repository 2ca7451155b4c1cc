package services

import (
	"context"
	"errors"
	"testing"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/coursehaven/backend/internal/models"
	"github.com/coursehaven/backend/internal/payment"
)

type purchaseFixture struct {
	courses   *FakeCourseStore
	purchases *FakePurchaseStore
	orders    *FakeOrderStore
	gateway   *FakeGateway
	service   *PurchaseService
	course    models.Course
	userID    primitive.ObjectID
}

func newPurchaseFixture(t *testing.T) *purchaseFixture {
	t.Helper()
	courses := NewFakeCourseStore()
	purchases := NewFakePurchaseStore()
	orders := NewFakeOrderStore()
	gateway := NewFakeGateway()

	course := models.Course{
		ID:    primitive.NewObjectID(),
		Title: "Intro to Go", Description: "Learn the basics", Price: 49.99,
		CreatorID: primitive.NewObjectID(),
	}
	if err := courses.Insert(context.Background(), &course); err != nil {
		t.Fatalf("seed course: %v", err)
	}

	return &purchaseFixture{
		courses:   courses,
		purchases: purchases,
		orders:    orders,
		gateway:   gateway,
		service:   NewPurchaseService(courses, purchases, orders, gateway, "test"),
		course:    course,
		userID:    primitive.NewObjectID(),
	}
}

func TestPurchaseService_Buy(t *testing.T) {
	t.Run("returns client secret for valid initiation", func(t *testing.T) {
		f := newPurchaseFixture(t)
		secret, err := f.service.Buy(context.Background(), f.userID, f.course.ID)
		if err != nil {
			t.Fatalf("Buy() error = %v", err)
		}
		if secret == "" {
			t.Error("Buy() returned empty client secret")
		}
		// 49.99 dollars -> 4999 cents, exactly.
		intent, _ := f.gateway.GetIntent(context.Background(), "pi_1")
		if intent.Amount != 4999 {
			t.Errorf("intent amount = %d, want 4999", intent.Amount)
		}
	})

	t.Run("missing course fails before touching the gateway", func(t *testing.T) {
		f := newPurchaseFixture(t)
		_, err := f.service.Buy(context.Background(), f.userID, primitive.NewObjectID())
		if !errors.Is(err, models.ErrCourseNotFound) {
			t.Fatalf("Buy() error = %v, want ErrCourseNotFound", err)
		}
		if f.gateway.CreatedCount() != 0 {
			t.Error("Buy() created an intent for a missing course")
		}
	})

	t.Run("existing purchase blocks a second initiation", func(t *testing.T) {
		f := newPurchaseFixture(t)
		if err := f.purchases.Insert(context.Background(), &models.Purchase{
			ID: primitive.NewObjectID(), UserID: f.userID, CourseID: f.course.ID,
		}); err != nil {
			t.Fatalf("seed purchase: %v", err)
		}

		_, err := f.service.Buy(context.Background(), f.userID, f.course.ID)
		if !errors.Is(err, models.ErrAlreadyPurchased) {
			t.Fatalf("Buy() error = %v, want ErrAlreadyPurchased", err)
		}
		if f.gateway.CreatedCount() != 0 {
			t.Error("Buy() created an intent for an owned course")
		}
	})

	t.Run("gateway failure surfaces as error", func(t *testing.T) {
		f := newPurchaseFixture(t)
		f.gateway.CreateErr = errors.New("gateway down")
		if _, err := f.service.Buy(context.Background(), f.userID, f.course.ID); err == nil {
			t.Fatal("Buy() expected error")
		}
	})
}

// buyAndConfirm runs Phase A and stands in for the client-side confirmation.
func (f *purchaseFixture) buyAndConfirm(t *testing.T) string {
	t.Helper()
	if _, err := f.service.Buy(context.Background(), f.userID, f.course.ID); err != nil {
		t.Fatalf("Buy() error = %v", err)
	}
	paymentID := "pi_1"
	f.gateway.Confirm(paymentID)
	return paymentID
}

func (f *purchaseFixture) orderInput(paymentID string) OrderInput {
	return OrderInput{
		CourseID:  f.course.ID,
		Email:     "alice@example.com",
		PaymentID: paymentID,
		Amount:    f.course.Price,
	}
}

func TestPurchaseService_PlaceOrder(t *testing.T) {
	t.Run("round trip records exactly one order and one purchase", func(t *testing.T) {
		f := newPurchaseFixture(t)
		paymentID := f.buyAndConfirm(t)

		order, err := f.service.PlaceOrder(context.Background(), f.userID, f.orderInput(paymentID))
		if err != nil {
			t.Fatalf("PlaceOrder() error = %v", err)
		}
		if order.Status != models.OrderSuccess {
			t.Errorf("order status = %q, want success", order.Status)
		}
		if f.orders.Len() != 1 || f.purchases.Len() != 1 {
			t.Fatalf("orders = %d, purchases = %d, want 1 and 1", f.orders.Len(), f.purchases.Len())
		}

		owned, err := f.service.Purchases(context.Background(), f.userID)
		if err != nil {
			t.Fatalf("Purchases() error = %v", err)
		}
		if len(owned) != 1 || owned[0].ID != f.course.ID {
			t.Errorf("Purchases() = %v, want the bought course", owned)
		}
	})

	t.Run("re-submitting the same payment id creates nothing new", func(t *testing.T) {
		f := newPurchaseFixture(t)
		paymentID := f.buyAndConfirm(t)

		first, err := f.service.PlaceOrder(context.Background(), f.userID, f.orderInput(paymentID))
		if err != nil {
			t.Fatalf("PlaceOrder() error = %v", err)
		}
		second, err := f.service.PlaceOrder(context.Background(), f.userID, f.orderInput(paymentID))
		if err != nil {
			t.Fatalf("retried PlaceOrder() error = %v", err)
		}
		if second.ID != first.ID {
			t.Error("retry returned a different order")
		}
		if f.orders.Len() != 1 || f.purchases.Len() != 1 {
			t.Errorf("orders = %d, purchases = %d after retry, want 1 and 1", f.orders.Len(), f.purchases.Len())
		}
	})

	t.Run("unconfirmed intent is rejected and nothing is written", func(t *testing.T) {
		f := newPurchaseFixture(t)
		if _, err := f.service.Buy(context.Background(), f.userID, f.course.ID); err != nil {
			t.Fatalf("Buy() error = %v", err)
		}
		// No Confirm: the intent is still requires_payment_method.
		_, err := f.service.PlaceOrder(context.Background(), f.userID, f.orderInput("pi_1"))
		if !errors.Is(err, models.ErrPaymentNotVerified) {
			t.Fatalf("PlaceOrder() error = %v, want ErrPaymentNotVerified", err)
		}
		if f.orders.Len() != 0 || f.purchases.Len() != 0 {
			t.Error("PlaceOrder() wrote records for an unverified payment")
		}
	})

	t.Run("amount mismatch against the gateway record is rejected", func(t *testing.T) {
		f := newPurchaseFixture(t)
		paymentID := f.buyAndConfirm(t)

		input := f.orderInput(paymentID)
		input.Amount = 0.01
		_, err := f.service.PlaceOrder(context.Background(), f.userID, input)
		if !errors.Is(err, models.ErrPaymentNotVerified) {
			t.Fatalf("PlaceOrder() error = %v, want ErrPaymentNotVerified", err)
		}
		if f.orders.Len() != 0 {
			t.Error("PlaceOrder() recorded an order with a mismatched amount")
		}
	})

	t.Run("unknown payment id is rejected", func(t *testing.T) {
		f := newPurchaseFixture(t)
		if _, err := f.service.PlaceOrder(context.Background(), f.userID, f.orderInput("pi_unknown")); err == nil {
			t.Fatal("PlaceOrder() expected error for unknown payment id")
		}
		if f.orders.Len() != 0 {
			t.Error("PlaceOrder() recorded an order for an unknown payment")
		}
	})

	t.Run("duplicate purchase after a second checkout converges on the ledger", func(t *testing.T) {
		// A user who somehow pays twice through two separate intents still ends
		// up with one ledger entry; the second order records the second charge.
		f := newPurchaseFixture(t)
		paymentID := f.buyAndConfirm(t)
		if _, err := f.service.PlaceOrder(context.Background(), f.userID, f.orderInput(paymentID)); err != nil {
			t.Fatalf("PlaceOrder() error = %v", err)
		}

		f.gateway.SetIntent(payment.Intent{
			ID: "pi_2", ClientSecret: "pi_2_secret",
			Amount: 4999, Currency: "usd", Status: payment.IntentSucceeded,
		})
		if _, err := f.service.PlaceOrder(context.Background(), f.userID, f.orderInput("pi_2")); err != nil {
			t.Fatalf("second PlaceOrder() error = %v", err)
		}
		if f.purchases.Len() != 1 {
			t.Errorf("purchases = %d, want the ledger to stay unique", f.purchases.Len())
		}
	})
}

func TestPurchaseService_Purchases_Empty(t *testing.T) {
	f := newPurchaseFixture(t)
	courses, err := f.service.Purchases(context.Background(), f.userID)
	if err != nil {
		t.Fatalf("Purchases() error = %v", err)
	}
	if courses == nil || len(courses) != 0 {
		t.Errorf("Purchases() = %v, want empty non-nil slice", courses)
	}
}
