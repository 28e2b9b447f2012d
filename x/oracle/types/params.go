package types

import (
	"fmt"
	"time"
)

// Default oracle parameters.
const (
	DefaultMaxPriceAge        = time.Hour
	DefaultSubmissionWindow   = 5 * time.Minute
	DefaultMinSubmissions     = 3
	DefaultMaxDeviationBps    = 1000
	DefaultAccuracyBps        = 200
	DefaultBanMinSubmissions  = 20
	DefaultBanAccuracyPercent = 30
)

// Params holds the oracle module parameters.
type Params struct {
	// MaxPriceAge is how old a consensus price may be before reads flag it
	// as stale.
	MaxPriceAge time.Duration `json:"max_price_age"`
	// SubmissionWindow bounds a round: submissions older than this are
	// discarded before a new one is accepted.
	SubmissionWindow time.Duration `json:"submission_window"`
	// MinSubmissions is the round size that triggers consensus.
	MinSubmissions int `json:"min_submissions"`
	// MaxDeviationBps rejects submissions that stray too far from the
	// current consensus price.
	MaxDeviationBps int64 `json:"max_deviation_bps"`
	// AccuracyBps is the band around the consensus median that counts a
	// submission as accurate.
	AccuracyBps int64 `json:"accuracy_bps"`
	// BanMinSubmissions and BanAccuracyPercent define the permanent ban
	// threshold for chronically inaccurate reporters.
	BanMinSubmissions  uint64 `json:"ban_min_submissions"`
	BanAccuracyPercent uint64 `json:"ban_accuracy_percent"`
}

// DefaultParams returns the default oracle parameters.
func DefaultParams() Params {
	return Params{
		MaxPriceAge:        DefaultMaxPriceAge,
		SubmissionWindow:   DefaultSubmissionWindow,
		MinSubmissions:     DefaultMinSubmissions,
		MaxDeviationBps:    DefaultMaxDeviationBps,
		AccuracyBps:        DefaultAccuracyBps,
		BanMinSubmissions:  DefaultBanMinSubmissions,
		BanAccuracyPercent: DefaultBanAccuracyPercent,
	}
}

// Validate checks parameter sanity.
func (p Params) Validate() error {
	if p.MaxPriceAge <= 0 {
		return fmt.Errorf("max price age must be positive, got %s", p.MaxPriceAge)
	}
	if p.SubmissionWindow <= 0 {
		return fmt.Errorf("submission window must be positive, got %s", p.SubmissionWindow)
	}
	if p.MinSubmissions < 1 {
		return fmt.Errorf("min submissions must be at least 1, got %d", p.MinSubmissions)
	}
	if p.MaxDeviationBps <= 0 {
		return fmt.Errorf("max deviation bps must be positive, got %d", p.MaxDeviationBps)
	}
	if p.AccuracyBps <= 0 {
		return fmt.Errorf("accuracy bps must be positive, got %d", p.AccuracyBps)
	}
	if p.AccuracyBps > p.MaxDeviationBps {
		return fmt.Errorf("accuracy band %d cannot exceed deviation limit %d", p.AccuracyBps, p.MaxDeviationBps)
	}
	if p.BanAccuracyPercent > 100 {
		return fmt.Errorf("ban accuracy percent must be at most 100, got %d", p.BanAccuracyPercent)
	}
	return nil
}
