package holdings

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/aristath/zerocost/internal/database"
	"github.com/aristath/zerocost/internal/domain"
	"github.com/aristath/zerocost/internal/modules/funds"
	"github.com/aristath/zerocost/internal/modules/strategy"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
)

// Service implements stock creation, editing and strategy-enriched views.
type Service struct {
	db    *sql.DB
	repo  *Repository
	funds *funds.Repository
	log   zerolog.Logger
}

// NewService creates a holdings service. db is the strategy.db connection
// used to open transactions spanning stocks and the fund account.
func NewService(db *sql.DB, repo *Repository, fundsRepo *funds.Repository, log zerolog.Logger) *Service {
	return &Service{
		db:    db,
		repo:  repo,
		funds: fundsRepo,
		log:   log.With().Str("service", "holdings").Logger(),
	}
}

// AddStock validates and stores a new stock. Opening shares are paid for
// from the fund account in the same transaction.
func (s *Service) AddStock(ctx context.Context, in AddStockInput) (*View, error) {
	stock, err := buildStock(in)
	if err != nil {
		return nil, err
	}

	var id int64
	err = database.WithTransaction(ctx, s.db, func(tx *sql.Tx) error {
		var err error
		id, err = s.repo.WithTx(tx).Create(ctx, stock)
		if err != nil {
			return err
		}

		if stock.CurrentShares > 0 {
			cost := decimal.NewFromInt(stock.CurrentShares).Mul(stock.AvgCost)
			if err := s.funds.WithTx(tx).Move(ctx, cost, cost.Neg()); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to add stock %s: %w", stock.Code, err)
	}

	s.log.Info().
		Str("code", stock.Code).
		Int64("shares", stock.CurrentShares).
		Str("avg_cost", stock.AvgCost.String()).
		Msg("Stock added")

	created, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return s.view(*created, true), nil
}

func buildStock(in AddStockInput) (Stock, error) {
	stock := Stock{
		Code:          NormalizeCode(in.Code),
		Name:          strings.TrimSpace(in.Name),
		Market:        strings.TrimSpace(in.Market),
		CurrentPrice:  in.CurrentPrice,
		CurrentShares: in.CurrentShares,
		TargetShares:  DefaultTargetShares,
		AvgCost:       in.CurrentPrice,
		TotalFees:     decimal.Zero,
	}

	switch {
	case stock.Code == "":
		return stock, fmt.Errorf("%w: code is required", domain.ErrInvalidStock)
	case stock.Name == "":
		return stock, fmt.Errorf("%w: name is required", domain.ErrInvalidStock)
	case stock.Market == "":
		return stock, fmt.Errorf("%w: market is required", domain.ErrInvalidStock)
	case !stock.CurrentPrice.IsPositive():
		return stock, fmt.Errorf("%w: current price must be positive", domain.ErrInvalidStock)
	case stock.CurrentShares < 0:
		return stock, fmt.Errorf("%w: current shares must not be negative", domain.ErrInvalidStock)
	}

	if in.TargetShares != nil {
		if *in.TargetShares < 0 {
			return stock, fmt.Errorf("%w: target shares must not be negative", domain.ErrInvalidStock)
		}
		stock.TargetShares = *in.TargetShares
	}
	if in.AvgCost != nil {
		if in.AvgCost.IsNegative() {
			return stock, fmt.Errorf("%w: average cost must not be negative", domain.ErrInvalidStock)
		}
		stock.AvgCost = *in.AvgCost
	}

	stock.InitialInvestment = decimal.NewFromInt(stock.CurrentShares).Mul(stock.AvgCost)
	if in.InitialInvestment != nil {
		stock.InitialInvestment = *in.InitialInvestment
	}
	return stock, nil
}

// EditStock changes the price and target of the stock with id.
func (s *Service) EditStock(ctx context.Context, id int64, in EditStockInput) (*View, error) {
	if !in.CurrentPrice.IsPositive() {
		return nil, fmt.Errorf("%w: current price must be positive", domain.ErrInvalidStock)
	}
	if in.TargetShares < 0 {
		return nil, fmt.Errorf("%w: target shares must not be negative", domain.ErrInvalidStock)
	}

	if err := s.repo.UpdateMarket(ctx, id, in.CurrentPrice, in.TargetShares); err != nil {
		return nil, err
	}

	updated, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	s.log.Info().Str("code", updated.Code).Str("price", in.CurrentPrice.String()).Msg("Stock updated")
	return s.view(*updated, true), nil
}

// List returns every stock as a view, newest first. withStrategy attaches
// the evaluated recommendation to each view.
func (s *Service) List(ctx context.Context, withStrategy bool) ([]View, error) {
	stocks, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}

	views := make([]View, 0, len(stocks))
	for _, stock := range stocks {
		views = append(views, *s.view(stock, withStrategy))
	}
	return views, nil
}

// Get returns the view of one stock including its recommendation.
func (s *Service) Get(ctx context.Context, code string) (*View, error) {
	stock, err := s.repo.GetByCode(ctx, code)
	if err != nil {
		return nil, err
	}
	return s.view(*stock, true), nil
}

// AllocationCandidates lists holdings for the fund allocation plan.
func (s *Service) AllocationCandidates(ctx context.Context) ([]funds.Candidate, error) {
	stocks, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}

	candidates := make([]funds.Candidate, 0, len(stocks))
	for _, stock := range stocks {
		candidates = append(candidates, funds.Candidate{
			Code:          stock.Code,
			Name:          stock.Name,
			CurrentShares: stock.CurrentShares,
			TargetShares:  stock.TargetShares,
			CurrentPrice:  stock.CurrentPrice,
		})
	}
	return candidates, nil
}

func (s *Service) view(stock Stock, withStrategy bool) *View {
	v := NewView(stock)
	if withStrategy {
		rec := strategy.EvaluateOrDegrade(stock.Position())
		if rec.Degraded() {
			s.log.Warn().Str("code", stock.Code).Str("error", rec.Error.Message).Msg("Strategy evaluation degraded")
		}
		v.Strategy = &rec
	}
	return &v
}
