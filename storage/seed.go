package storage

import "github.com/shopspring/decimal"

// SeedAccount describes one account as provided at process start. The
// username is not a source field; it is derived during directory
// construction.
type SeedAccount struct {
	Owner        string
	PIN          int
	InterestRate decimal.Decimal
	Movements    []decimal.Decimal
}

// Seed returns the fixed account set the process starts with.
func Seed() []SeedAccount {
	return []SeedAccount{
		{
			Owner:        "Jonas Schmedtmann",
			PIN:          1111,
			InterestRate: decimal.NewFromFloat(1.2),
			Movements:    movements(200, 450, -400, 3000, -650, -130, 70, 1300),
		},
		{
			Owner:        "Jessica Davis",
			PIN:          2222,
			InterestRate: decimal.NewFromFloat(1.5),
			Movements:    movements(5000, 3400, -150, -790, -3210, -1000, 8500, -30),
		},
		{
			Owner:        "Steven Thomas Williams",
			PIN:          3333,
			InterestRate: decimal.NewFromFloat(0.7),
			Movements:    movements(200, -200, 340, -300, -20, 50, 400, -460),
		},
		{
			Owner:        "Sarah Smith",
			PIN:          4444,
			InterestRate: decimal.NewFromInt(1),
			Movements:    movements(430, 1000, 700, 50, 90),
		},
	}
}

func movements(values ...int64) []decimal.Decimal {
	out := make([]decimal.Decimal, len(values))
	for i, v := range values {
		out[i] = decimal.NewFromInt(v)
	}
	return out
}
