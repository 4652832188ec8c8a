package domain

import "errors"

var (
	ErrProductNotFound  = errors.New("productId is not registered")
	ErrUserNotFound     = errors.New("user is not registered")
	ErrPurchaseNotFound = errors.New("purchase not found")

	// ErrInsufficientStock is a validation failure, not a system error:
	// the reservation leaves the stock untouched.
	ErrInsufficientStock = errors.New("this product is out of stock")

	ErrPurchaseFinished   = errors.New("a finished purchase cannot be paid again")
	ErrPurchaseUnfinished = errors.New("an unfinished purchase does not have a payment confirmation timestamp")
)
