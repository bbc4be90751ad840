package domain

import "time"

// CallStatus is the lifecycle state of a call. The only legal transition is
// IN_PROGRESS -> FINISHED.
type CallStatus string

const (
	CallStatusInProgress CallStatus = "IN_PROGRESS"
	CallStatusFinished   CallStatus = "FINISHED"
)

// PaymentStatus is the processing state of a payment.
type PaymentStatus string

const (
	PaymentStatusPending PaymentStatus = "PENDING"
	PaymentStatusSuccess PaymentStatus = "SUCCESS"
)

// Country owns cities; MinuteCost is the per-minute call price for calls
// terminating in this country.
type Country struct {
	ID         int64
	Name       string
	MinuteCost float64
}

// City belongs to a country and owns customers.
type City struct {
	ID        int64
	Name      string
	ZipCode   string
	CountryID int64
}

// Rate is a base tariff; categories reference it.
type Rate struct {
	ID   int64
	Cost float64
}

// Category groups customers under a rate with a discount multiplier.
type Category struct {
	ID          int64
	Name        string
	DiscountMtp float64
	RateID      int64
}

// Customer is identified by a globally unique passport string.
type Customer struct {
	ID         int64
	FullName   string
	Passport   string
	CityID     int64
	CategoryID int64
}

// PhoneNumber belongs to a customer; the number string is globally unique.
type PhoneNumber struct {
	ID         int64
	Number     string
	CustomerID int64
}

// Call connects two distinct customers. Duration is in seconds; Charge is
// computed when the call finishes.
type Call struct {
	ID             int64
	FromCustomerID int64
	ToCustomerID   int64
	Duration       int64
	Charge         float64
	StartedAt      time.Time
	FinishedAt     *time.Time
	Status         CallStatus
}

// Payment records an amount owed by a customer.
type Payment struct {
	ID         int64
	Amount     float64
	CustomerID int64
	Status     PaymentStatus
	CreatedAt  time.Time
	UpdatedAt  *time.Time
}
