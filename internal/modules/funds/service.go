package funds

import (
	"context"
	"fmt"

	"github.com/aristath/zerocost/internal/domain"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
)

// CandidateSource lists the holdings eligible for allocation.
type CandidateSource interface {
	AllocationCandidates(ctx context.Context) ([]Candidate, error)
}

// Service exposes the fund account and allocation plan.
type Service struct {
	repo       *Repository
	candidates CandidateSource
	log        zerolog.Logger
}

// NewService creates a fund service.
func NewService(repo *Repository, candidates CandidateSource, log zerolog.Logger) *Service {
	return &Service{
		repo:       repo,
		candidates: candidates,
		log:        log.With().Str("service", "funds").Logger(),
	}
}

// Get returns the fund account.
func (s *Service) Get(ctx context.Context) (*Account, error) {
	return s.repo.Get(ctx)
}

// Update validates and stores new account values.
func (s *Service) Update(ctx context.Context, in UpdateInput) (*Account, error) {
	if in.TotalCapital.IsNegative() || in.AvailableFunds.IsNegative() {
		return nil, fmt.Errorf("%w: amounts must not be negative", domain.ErrInvalidFunds)
	}
	if in.ProfitReinvestRatio.IsNegative() || in.ProfitReinvestRatio.GreaterThan(decimal.NewFromInt(1)) {
		return nil, fmt.Errorf("%w: profit reinvest ratio must be within [0, 1]", domain.ErrInvalidFunds)
	}

	if err := s.repo.Update(ctx, in); err != nil {
		return nil, err
	}

	s.log.Info().
		Str("total_capital", in.TotalCapital.String()).
		Str("available_funds", in.AvailableFunds.String()).
		Msg("Fund account updated")
	return s.repo.Get(ctx)
}

// Allocation suggests how to spend the currently available funds.
func (s *Service) Allocation(ctx context.Context) ([]Suggestion, error) {
	account, err := s.repo.Get(ctx)
	if err != nil {
		return nil, err
	}

	candidates, err := s.candidates.AllocationCandidates(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load allocation candidates: %w", err)
	}

	return Allocate(account.AvailableFunds, candidates), nil
}
