package domain

import "errors"

var (
	ErrCountryNotFound     = errors.New("country not found")
	ErrCityNotFound        = errors.New("city not found")
	ErrRateNotFound        = errors.New("rate not found")
	ErrCategoryNotFound    = errors.New("category not found")
	ErrCustomerNotFound    = errors.New("customer not found")
	ErrPhoneNumberNotFound = errors.New("phone number not found")
	ErrCallNotFound        = errors.New("call not found or already finished")
	ErrPaymentNotFound     = errors.New("payment not found")

	ErrDuplicatePassport    = errors.New("customer with such passport already exists")
	ErrDuplicatePhoneNumber = errors.New("phone number already exists")

	ErrPhoneNumberLimit = errors.New("customer has reached the limit of phone numbers")

	ErrSelfCall           = errors.New("cannot make a call with the same customer")
	ErrCustomerBusy       = errors.New("one of the customers is already in an active call")
	ErrMissingPhoneNumber = errors.New("customer must have at least one phone number")
)
