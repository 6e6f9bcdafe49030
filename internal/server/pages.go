package server

import (
	"context"
	"errors"
	"fmt"
	"html/template"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/aristath/zerocost/internal/domain"
	"github.com/aristath/zerocost/internal/modules/funds"
	"github.com/aristath/zerocost/internal/modules/holdings"
	"github.com/aristath/zerocost/internal/modules/trading"
	"github.com/aristath/zerocost/pkg/embedded"
)

// HoldingViews reads holdings with their recommendations
type HoldingViews interface {
	List(ctx context.Context, withStrategy bool) ([]holdings.View, error)
	Get(ctx context.Context, code string) (*holdings.View, error)
}

// AccountReader reads the fund account
type AccountReader interface {
	Get(ctx context.Context) (*funds.Account, error)
}

// TradeLister lists trades of one stock
type TradeLister interface {
	List(ctx context.Context, code string) ([]trading.Trade, error)
}

var pageFuncs = template.FuncMap{
	"money": func(d decimal.Decimal) string { return d.StringFixed(2) },
}

type pages struct {
	holdings  HoldingViews
	accounts  AccountReader
	trades    TradeLister
	dashboard *template.Template
	strategy  *template.Template
	log       zerolog.Logger
}

type dashboardData struct {
	Title    string
	Account  *funds.Account
	Holdings []holdings.View
}

type strategyData struct {
	Title   string
	Holding *holdings.View
	Trades  []trading.Trade
}

func newPages(h HoldingViews, a AccountReader, t TradeLister, log zerolog.Logger) (*pages, error) {
	dashboard, err := parsePage("dashboard.html")
	if err != nil {
		return nil, err
	}
	strategy, err := parsePage("strategy.html")
	if err != nil {
		return nil, err
	}
	return &pages{
		holdings:  h,
		accounts:  a,
		trades:    t,
		dashboard: dashboard,
		strategy:  strategy,
		log:       log,
	}, nil
}

func parsePage(name string) (*template.Template, error) {
	tmpl, err := template.New(name).Funcs(pageFuncs).ParseFS(embedded.Templates, "templates/layout.html", "templates/"+name)
	if err != nil {
		return nil, fmt.Errorf("failed to parse template %s: %w", name, err)
	}
	return tmpl, nil
}

// handleDashboard serves GET /
func (p *pages) handleDashboard(w http.ResponseWriter, r *http.Request) {
	views, err := p.holdings.List(r.Context(), true)
	if err != nil {
		p.fail(w, err)
		return
	}
	account, err := p.accounts.Get(r.Context())
	if err != nil {
		p.fail(w, err)
		return
	}
	p.render(w, p.dashboard, dashboardData{Title: "Holdings", Account: account, Holdings: views})
}

// handleStrategy serves GET /strategy/{code}
func (p *pages) handleStrategy(w http.ResponseWriter, r *http.Request) {
	view, err := p.holdings.Get(r.Context(), chi.URLParam(r, "code"))
	if err != nil {
		p.fail(w, err)
		return
	}
	trades, err := p.trades.List(r.Context(), view.Code)
	if err != nil {
		p.fail(w, err)
		return
	}
	p.render(w, p.strategy, strategyData{Title: view.Code, Holding: view, Trades: trades})
}

func (p *pages) render(w http.ResponseWriter, tmpl *template.Template, data interface{}) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := tmpl.ExecuteTemplate(w, "layout", data); err != nil {
		p.log.Error().Err(err).Msg("Failed to render page")
	}
}

func (p *pages) fail(w http.ResponseWriter, err error) {
	status := domain.StatusCode(err)
	if !errors.Is(err, domain.ErrStockNotFound) {
		p.log.Error().Err(err).Msg("Page data unavailable")
	}
	http.Error(w, http.StatusText(status), status)
}
