package domain

// TopCity is the city with the highest number of internal calls, attributed
// to the caller's city.
type TopCity struct {
	City          City
	InternalCalls int64
}

// CustomerCityPair pairs a customer with the city they call most often
// (the other party's city). Ties at rank 1 produce one pair per tied city.
type CustomerCityPair struct {
	Customer   Customer
	City       City
	TotalCalls int64
}

// MonthlyCallSum is the total charge of one caller's finished calls within
// a single calendar month.
type MonthlyCallSum struct {
	Month       int // 1..12
	TotalCharge float64
}

// AvgChargePerYear is the mean charge of a caller's finished calls in one
// calendar year.
type AvgChargePerYear struct {
	Customer  Customer
	Year      int
	AvgCharge float64
}

// InDebtCustomer is a customer whose total payment amount is within 70% of
// the maximum total across all customers.
type InDebtCustomer struct {
	Customer Customer
	Debt     float64
}
