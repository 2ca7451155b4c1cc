package services

import (
	"context"
	"fmt"
	"sync"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/coursehaven/backend/internal/models"
	"github.com/coursehaven/backend/internal/payment"
)

// Test-only fakes implementing the repository and gateway interfaces.
// They store records in maps and expose error fields for behavior injection.

type FakeAccountStore struct {
	mu        sync.RWMutex
	accounts  map[string]models.Account
	InsertErr error
}

func NewFakeAccountStore() *FakeAccountStore {
	return &FakeAccountStore{accounts: make(map[string]models.Account)}
}

func (f *FakeAccountStore) FindByEmail(_ context.Context, email string) (*models.Account, error) {
	f.mu.RLock()
	defer f.mu.RUnlock()
	account, ok := f.accounts[email]
	if !ok {
		return nil, models.ErrAccountNotFound
	}
	return &account, nil
}

func (f *FakeAccountStore) Insert(_ context.Context, account *models.Account) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.InsertErr != nil {
		return f.InsertErr
	}
	if _, ok := f.accounts[account.Email]; ok {
		return models.ErrEmailTaken
	}
	if account.ID.IsZero() {
		account.ID = primitive.NewObjectID()
	}
	f.accounts[account.Email] = *account
	return nil
}

func (f *FakeAccountStore) Len() int {
	f.mu.RLock()
	defer f.mu.RUnlock()
	return len(f.accounts)
}

type FakeCourseStore struct {
	mu        sync.RWMutex
	courses   map[primitive.ObjectID]models.Course
	InsertErr error
}

func NewFakeCourseStore() *FakeCourseStore {
	return &FakeCourseStore{courses: make(map[primitive.ObjectID]models.Course)}
}

func (f *FakeCourseStore) Insert(_ context.Context, course *models.Course) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.InsertErr != nil {
		return f.InsertErr
	}
	if course.ID.IsZero() {
		course.ID = primitive.NewObjectID()
	}
	f.courses[course.ID] = *course
	return nil
}

func (f *FakeCourseStore) FindByID(_ context.Context, id primitive.ObjectID) (*models.Course, error) {
	f.mu.RLock()
	defer f.mu.RUnlock()
	course, ok := f.courses[id]
	if !ok {
		return nil, models.ErrCourseNotFound
	}
	return &course, nil
}

func (f *FakeCourseStore) FindAll(_ context.Context) ([]models.Course, error) {
	f.mu.RLock()
	defer f.mu.RUnlock()
	courses := []models.Course{}
	for _, course := range f.courses {
		courses = append(courses, course)
	}
	return courses, nil
}

func (f *FakeCourseStore) FindByIDs(_ context.Context, ids []primitive.ObjectID) ([]models.Course, error) {
	f.mu.RLock()
	defer f.mu.RUnlock()
	courses := []models.Course{}
	for _, id := range ids {
		if course, ok := f.courses[id]; ok {
			courses = append(courses, course)
		}
	}
	return courses, nil
}

func (f *FakeCourseStore) UpdateOwned(_ context.Context, id, creatorID primitive.ObjectID, update models.CourseUpdate) (*models.Course, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	course, ok := f.courses[id]
	if !ok || course.CreatorID != creatorID {
		return nil, models.ErrCourseNotOwned
	}
	course.Title = update.Title
	course.Description = update.Description
	course.Price = update.Price
	if update.Image != nil {
		course.Image = *update.Image
	}
	f.courses[id] = course
	return &course, nil
}

func (f *FakeCourseStore) DeleteOwned(_ context.Context, id, creatorID primitive.ObjectID) (*models.Course, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	course, ok := f.courses[id]
	if !ok || course.CreatorID != creatorID {
		return nil, models.ErrCourseNotOwned
	}
	delete(f.courses, id)
	return &course, nil
}

func (f *FakeCourseStore) Len() int {
	f.mu.RLock()
	defer f.mu.RUnlock()
	return len(f.courses)
}

type FakePurchaseStore struct {
	mu        sync.RWMutex
	purchases map[string]models.Purchase
	InsertErr error
}

func NewFakePurchaseStore() *FakePurchaseStore {
	return &FakePurchaseStore{purchases: make(map[string]models.Purchase)}
}

func purchaseKey(userID, courseID primitive.ObjectID) string {
	return userID.Hex() + "/" + courseID.Hex()
}

func (f *FakePurchaseStore) Insert(_ context.Context, purchase *models.Purchase) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.InsertErr != nil {
		return f.InsertErr
	}
	key := purchaseKey(purchase.UserID, purchase.CourseID)
	if _, ok := f.purchases[key]; ok {
		return models.ErrAlreadyPurchased
	}
	f.purchases[key] = *purchase
	return nil
}

func (f *FakePurchaseStore) Exists(_ context.Context, userID, courseID primitive.ObjectID) (bool, error) {
	f.mu.RLock()
	defer f.mu.RUnlock()
	_, ok := f.purchases[purchaseKey(userID, courseID)]
	return ok, nil
}

func (f *FakePurchaseStore) FindByUser(_ context.Context, userID primitive.ObjectID) ([]models.Purchase, error) {
	f.mu.RLock()
	defer f.mu.RUnlock()
	purchases := []models.Purchase{}
	for _, purchase := range f.purchases {
		if purchase.UserID == userID {
			purchases = append(purchases, purchase)
		}
	}
	return purchases, nil
}

func (f *FakePurchaseStore) Len() int {
	f.mu.RLock()
	defer f.mu.RUnlock()
	return len(f.purchases)
}

type FakeOrderStore struct {
	mu        sync.RWMutex
	orders    map[string]models.Order
	InsertErr error
}

func NewFakeOrderStore() *FakeOrderStore {
	return &FakeOrderStore{orders: make(map[string]models.Order)}
}

func (f *FakeOrderStore) Insert(_ context.Context, order *models.Order) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.InsertErr != nil {
		return f.InsertErr
	}
	if _, ok := f.orders[order.PaymentID]; ok {
		return models.ErrDuplicateOrder
	}
	f.orders[order.PaymentID] = *order
	return nil
}

func (f *FakeOrderStore) FindByPaymentID(_ context.Context, paymentID string) (*models.Order, error) {
	f.mu.RLock()
	defer f.mu.RUnlock()
	order, ok := f.orders[paymentID]
	if !ok {
		return nil, nil
	}
	return &order, nil
}

func (f *FakeOrderStore) Len() int {
	f.mu.RLock()
	defer f.mu.RUnlock()
	return len(f.orders)
}

type FakeImageStorage struct {
	mu        sync.Mutex
	uploads   int
	Removed   []string
	UploadErr error
}

func NewFakeImageStorage() *FakeImageStorage {
	return &FakeImageStorage{}
}

func (f *FakeImageStorage) Upload(_ context.Context, _ []byte, _ string) (models.CourseImage, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.UploadErr != nil {
		return models.CourseImage{}, f.UploadErr
	}
	f.uploads++
	id := fmt.Sprintf("img-%d", f.uploads)
	return models.CourseImage{PublicID: id, URL: "http://images.test/" + id}, nil
}

func (f *FakeImageStorage) Remove(_ context.Context, publicID string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.Removed = append(f.Removed, publicID)
	return nil
}

func (f *FakeImageStorage) Uploads() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.uploads
}

type FakeGateway struct {
	mu        sync.Mutex
	intents   map[string]payment.Intent
	created   int
	CreateErr error
	GetErr    error
}

func NewFakeGateway() *FakeGateway {
	return &FakeGateway{intents: make(map[string]payment.Intent)}
}

func (f *FakeGateway) CreateIntent(_ context.Context, amount int64, currency string) (*payment.Intent, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.CreateErr != nil {
		return nil, f.CreateErr
	}
	f.created++
	intent := payment.Intent{
		ID:           fmt.Sprintf("pi_%d", f.created),
		ClientSecret: fmt.Sprintf("pi_%d_secret", f.created),
		Amount:       amount,
		Currency:     currency,
		Status:       "requires_payment_method",
	}
	f.intents[intent.ID] = intent
	return &intent, nil
}

func (f *FakeGateway) GetIntent(_ context.Context, id string) (*payment.Intent, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.GetErr != nil {
		return nil, f.GetErr
	}
	intent, ok := f.intents[id]
	if !ok {
		return nil, fmt.Errorf("no such payment_intent: %s", id)
	}
	return &intent, nil
}

// Confirm marks a held intent as succeeded, standing in for the client-side
// confirmation step.
func (f *FakeGateway) Confirm(id string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if intent, ok := f.intents[id]; ok {
		intent.Status = payment.IntentSucceeded
		f.intents[id] = intent
	}
}

// SetIntent seeds an intent directly.
func (f *FakeGateway) SetIntent(intent payment.Intent) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.intents[intent.ID] = intent
}

func (f *FakeGateway) CreatedCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.created
}
