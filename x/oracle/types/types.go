package types

import (
	"time"

	"cosmossdk.io/math"
)

const ModuleName = "oracle"

// PriceFeed is the last consensus price for a trading pair. Prices carry
// eight decimals, so 100 USD is stored as 100 * 1e8.
type PriceFeed struct {
	Pair      string    `json:"pair"`
	Price     math.Int  `json:"price"`
	UpdatedAt time.Time `json:"updated_at"`
	Round     uint64    `json:"round"`
}

// Validate checks feed invariants.
func (f PriceFeed) Validate() error {
	if f.Pair == "" {
		return ErrInvalidInput.Wrap("pair cannot be empty")
	}
	if f.Price.IsNil() || !f.Price.IsPositive() {
		return ErrInvalidInput.Wrapf("feed price must be positive, got %s", f.Price)
	}
	return nil
}

// Submission is a single reporter's price for the round in progress.
type Submission struct {
	Reporter    string    `json:"reporter"`
	Price       math.Int  `json:"price"`
	SubmittedAt time.Time `json:"submitted_at"`
}

// Reputation tracks a reporter's lifetime accuracy. Accurate counts
// submissions that landed within the accuracy band of the consensus median;
// Total counts every submission, including ones rejected for deviation.
type Reputation struct {
	Reporter string `json:"reporter"`
	Total    uint64 `json:"total"`
	Accurate uint64 `json:"accurate"`
	Banned   bool   `json:"banned"`
}

// Bannable reports whether the reputation has crossed the permanent ban
// threshold: at least minSubmissions lifetime submissions with an accuracy
// rate below minAccuracyPercent.
func (r Reputation) Bannable(minSubmissions uint64, minAccuracyPercent uint64) bool {
	if r.Total < minSubmissions {
		return false
	}
	return r.Accurate*100 < r.Total*minAccuracyPercent
}
