package models

import "errors"

// Account errors
var (
	ErrEmailTaken         = errors.New("email already registered") // 400
	ErrAccountNotFound    = errors.New("account not found")        // 404
	ErrInvalidCredentials = errors.New("Invalid credentials")      // 403
)

// Course errors. ErrCourseNotOwned deliberately carries a message that does
// not reveal whether the course exists under another admin.
var (
	ErrCourseNotFound = errors.New("Course not found")                          // 404
	ErrCourseNotOwned = errors.New("Course not found or you are not the creator") // 404
	ErrMissingFields  = errors.New("All fields are required")                   // 400
	ErrInvalidImage   = errors.New("Only PNG and JPG images are allowed")       // 400
)

// Purchase/order errors
var (
	ErrAlreadyPurchased   = errors.New("You have already purchased this course") // 400
	ErrDuplicateOrder     = errors.New("order already recorded for this payment") // 400
	ErrPaymentNotVerified = errors.New("payment could not be verified")           // 400
)
