package postgres

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"

	"github.com/altel/telebill/internal/billing/domain"
	"github.com/altel/telebill/internal/billing/repository"
)

type pgAnalyticsRepository struct {
	db repository.DB
}

func NewPgAnalyticsRepository(db repository.DB) repository.AnalyticsRepository {
	return &pgAnalyticsRepository{db: db}
}

// TopCity counts every call toward the caller's city and returns the city
// with the most calls, or nil when no calls exist. Ties resolve to whichever
// row the store yields first.
func (r *pgAnalyticsRepository) TopCity(ctx context.Context) (*domain.TopCity, error) {
	query := `
		SELECT ci.id, ci.name, ci.zip_code, ci.country_id, COUNT(*) AS internal_calls
		FROM cities AS ci
		JOIN customers AS caller ON caller.city_id = ci.id
		JOIN calls AS c ON c.from_customer_id = caller.id
		JOIN customers AS callee ON c.to_customer_id = callee.id
		GROUP BY ci.id
		ORDER BY COUNT(*) DESC
		LIMIT 1
	`
	top := &domain.TopCity{}
	err := r.db.QueryRow(ctx, query).Scan(
		&top.City.ID, &top.City.Name, &top.City.ZipCode, &top.City.CountryID, &top.InternalCalls,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return top, nil
}

// FavoriteCities attributes each call to the other party's city, sums call
// counts per (customer, city) across both directions and keeps the rank-1
// rows per customer. Ties at rank 1 all survive, so a customer may appear
// more than once.
func (r *pgAnalyticsRepository) FavoriteCities(ctx context.Context) ([]domain.CustomerCityPair, error) {
	query := `
		WITH calls_per_city AS (
			SELECT c.from_customer_id AS customer_id, callee.city_id, COUNT(c.id) AS call_count
			FROM calls AS c
			JOIN customers AS callee ON c.to_customer_id = callee.id
			GROUP BY c.from_customer_id, callee.city_id
			UNION ALL
			SELECT c.to_customer_id, caller.city_id, COUNT(c.id)
			FROM calls AS c
			JOIN customers AS caller ON c.from_customer_id = caller.id
			GROUP BY c.to_customer_id, caller.city_id
		), ranked AS (
			SELECT customer_id, city_id,
			       SUM(call_count) AS total_calls,
			       RANK() OVER (PARTITION BY customer_id ORDER BY SUM(call_count) DESC) AS rnk
			FROM calls_per_city
			GROUP BY customer_id, city_id
		)
		SELECT cu.id, cu.fullname, cu.passport, cu.city_id, cu.category_id,
		       ci.id, ci.name, ci.zip_code, ci.country_id,
		       r.total_calls
		FROM ranked AS r
		JOIN customers AS cu ON cu.id = r.customer_id
		JOIN cities AS ci ON ci.id = r.city_id
		WHERE r.rnk = 1
	`
	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	pairs := []domain.CustomerCityPair{}
	for rows.Next() {
		var p domain.CustomerCityPair
		err := rows.Scan(
			&p.Customer.ID, &p.Customer.FullName, &p.Customer.Passport, &p.Customer.CityID, &p.Customer.CategoryID,
			&p.City.ID, &p.City.Name, &p.City.ZipCode, &p.City.CountryID,
			&p.TotalCalls,
		)
		if err != nil {
			return nil, err
		}
		pairs = append(pairs, p)
	}
	return pairs, rows.Err()
}

// CustomersCallingAllCities returns the customers whose calls (either side,
// attributed to the other party's city) reached every city in the system.
func (r *pgAnalyticsRepository) CustomersCallingAllCities(ctx context.Context) ([]domain.Customer, error) {
	query := `
		WITH reached AS (
			SELECT c.from_customer_id AS customer_id, callee.city_id
			FROM calls AS c
			JOIN customers AS callee ON c.to_customer_id = callee.id
			UNION ALL
			SELECT c.to_customer_id, caller.city_id
			FROM calls AS c
			JOIN customers AS caller ON c.from_customer_id = caller.id
		), city_counts AS (
			SELECT customer_id, COUNT(DISTINCT city_id) AS city_count
			FROM reached
			GROUP BY customer_id
		)
		SELECT cu.id, cu.fullname, cu.passport, cu.city_id, cu.category_id
		FROM customers AS cu
		JOIN city_counts AS cc ON cc.customer_id = cu.id
		WHERE cc.city_count = (SELECT COUNT(*) FROM cities)
	`
	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	customers := []domain.Customer{}
	for rows.Next() {
		var c domain.Customer
		if err := rows.Scan(&c.ID, &c.FullName, &c.Passport, &c.CityID, &c.CategoryID); err != nil {
			return nil, err
		}
		customers = append(customers, c)
	}
	return customers, rows.Err()
}

// MonthlyCallSums sums the charge of one caller's finished calls for each
// month of the given year. Months without finished calls produce no row.
func (r *pgAnalyticsRepository) MonthlyCallSums(ctx context.Context, customerID int64, year int) ([]domain.MonthlyCallSum, error) {
	query := `
		SELECT EXTRACT(MONTH FROM started_at)::int AS month, SUM(charge) AS total_charge
		FROM calls
		WHERE from_customer_id = $1
		  AND status = $2
		  AND EXTRACT(YEAR FROM started_at) = $3
		GROUP BY month
		ORDER BY month
	`
	rows, err := r.db.Query(ctx, query, customerID, domain.CallStatusFinished, year)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	sums := []domain.MonthlyCallSum{}
	for rows.Next() {
		var s domain.MonthlyCallSum
		if err := rows.Scan(&s.Month, &s.TotalCharge); err != nil {
			return nil, err
		}
		sums = append(sums, s)
	}
	return sums, rows.Err()
}

// AvgChargePerYear computes the mean charge of finished calls grouped by
// (caller, calendar year), ordered by year ascending.
func (r *pgAnalyticsRepository) AvgChargePerYear(ctx context.Context) ([]domain.AvgChargePerYear, error) {
	query := `
		SELECT cu.id, cu.fullname, cu.passport, cu.city_id, cu.category_id,
		       EXTRACT(YEAR FROM c.started_at)::int AS year,
		       AVG(c.charge) AS avg_charge
		FROM customers AS cu
		JOIN calls AS c ON c.from_customer_id = cu.id
		WHERE c.status = $1
		GROUP BY cu.id, year
		ORDER BY year
	`
	rows, err := r.db.Query(ctx, query, domain.CallStatusFinished)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	averages := []domain.AvgChargePerYear{}
	for rows.Next() {
		var a domain.AvgChargePerYear
		err := rows.Scan(
			&a.Customer.ID, &a.Customer.FullName, &a.Customer.Passport, &a.Customer.CityID, &a.Customer.CategoryID,
			&a.Year, &a.AvgCharge,
		)
		if err != nil {
			return nil, err
		}
		averages = append(averages, a)
	}
	return averages, rows.Err()
}

// CustomersInDebt sums payment amounts per customer (0 for customers with
// no payments) and returns everyone at or above 70% of the maximum sum.
// When the maximum is 0, every customer ties at the threshold.
func (r *pgAnalyticsRepository) CustomersInDebt(ctx context.Context) ([]domain.InDebtCustomer, error) {
	query := `
		WITH debts AS (
			SELECT cu.id AS customer_id, COALESCE(SUM(p.amount), 0) AS debt
			FROM customers AS cu
			LEFT JOIN payments AS p ON p.customer_id = cu.id
			GROUP BY cu.id
		)
		SELECT cu.id, cu.fullname, cu.passport, cu.city_id, cu.category_id, d.debt
		FROM debts AS d
		JOIN customers AS cu ON cu.id = d.customer_id
		WHERE d.debt >= 0.7 * (SELECT MAX(debt) FROM debts)
	`
	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	debtors := []domain.InDebtCustomer{}
	for rows.Next() {
		var d domain.InDebtCustomer
		err := rows.Scan(
			&d.Customer.ID, &d.Customer.FullName, &d.Customer.Passport, &d.Customer.CityID, &d.Customer.CategoryID,
			&d.Debt,
		)
		if err != nil {
			return nil, err
		}
		debtors = append(debtors, d)
	}
	return debtors, rows.Err()
}
