package services

import (
	"context"
	"encoding/json"
	"log"
	"time"

	"github.com/shopspring/decimal"

	"temple-backend/internal/apperr"
	"temple-backend/internal/cache"
	"temple-backend/internal/metrics"
	"temple-backend/internal/models"
	"temple-backend/internal/repositories"
	"temple-backend/internal/timeutil"
)

// Root group codes seeded by migration. The balance sheet is built from the
// first three; the dashboard buckets by the first code digit.
const (
	rootAssets      = "1000"
	rootLiabilities = "2000"
	rootEquity      = "3000"
)

var (
	incomePrefixes  = []string{"4", "8"}
	expensePrefixes = []string{"5", "6", "9"}
)

// ReportGenerator builds the trial balance, balance sheet, general ledger
// and dashboard summary. All reports run against the active accounting year.
type ReportGenerator struct {
	GroupRepo  *repositories.GroupRepository
	LedgerRepo *repositories.LedgerRepository
	EntryRepo  *repositories.EntryRepository
	AcYears    *AcYearService
	Calculator *BalanceCalculator
}

func NewReportGenerator(groupRepo *repositories.GroupRepository, ledgerRepo *repositories.LedgerRepository, entryRepo *repositories.EntryRepository, acYears *AcYearService, calc *BalanceCalculator) *ReportGenerator {
	return &ReportGenerator{
		GroupRepo:  groupRepo,
		LedgerRepo: ledgerRepo,
		EntryRepo:  entryRepo,
		AcYears:    acYears,
		Calculator: calc,
	}
}

func (g *ReportGenerator) observe(report string, start time.Time) {
	metrics.ReportGenerations.WithLabelValues(report).Inc()
	metrics.ReportDuration.WithLabelValues(report).Observe(time.Since(start).Seconds())
}

// parseRange validates a from/to pair against the active year.
func (g *ReportGenerator) parseRange(ctx context.Context, from, to string) (*models.AcYear, time.Time, time.Time, error) {
	year, err := g.AcYears.Active(ctx)
	if err != nil {
		return nil, time.Time{}, time.Time{}, err
	}
	fromDate, err := timeutil.ParseDate(from)
	if err != nil {
		return nil, time.Time{}, time.Time{}, apperr.Validation("from", "invalid date %q, want YYYY-MM-DD", from)
	}
	toDate, err := timeutil.ParseDate(to)
	if err != nil {
		return nil, time.Time{}, time.Time{}, apperr.Validation("to", "invalid date %q, want YYYY-MM-DD", to)
	}
	if toDate.Before(fromDate) {
		return nil, time.Time{}, time.Time{}, apperr.Validation("to", "must not be before from")
	}
	if !year.Contains(fromDate) || !year.Contains(toDate) {
		return nil, time.Time{}, time.Time{}, apperr.Validation("range", "dates must fall inside the active accounting year")
	}
	return year, fromDate, toDate, nil
}

// TrialBalance builds the pruned group tree with opening and closing Dr/Cr
// columns for [from, to], plus grand totals and the balance check.
func (g *ReportGenerator) TrialBalance(ctx context.Context, from, to string) (*models.TrialBalanceReport, error) {
	defer g.observe("trial_balance", time.Now())

	year, fromDate, toDate, err := g.parseRange(ctx, from, to)
	if err != nil {
		return nil, err
	}

	groups, err := g.GroupRepo.GetAll(ctx)
	if err != nil {
		return nil, err
	}
	ledgers, err := g.LedgerRepo.GetAll(ctx)
	if err != nil {
		return nil, err
	}
	nets, err := g.Calculator.AllLedgerNets(ctx, year, fromDate, toDate)
	if err != nil {
		return nil, err
	}

	arena := newGroupArena(groups)
	rows, grand := buildTrialBalance(arena, ledgers, nets)

	report := &models.TrialBalanceReport{
		Rows:        rows,
		GrandTotals: grand,
		IsBalanced:  IsBalanced(grand.TotalClosingDebit, grand.TotalClosingCredit),
		Difference:  grand.TotalClosingDebit.Sub(grand.TotalClosingCredit).Abs(),
		From:        fromDate,
		To:          toDate,
	}
	return report, nil
}

// BalanceSheet builds the Assets/Liabilities/Equity sections as of a date.
// The year-to-date profit or loss is injected as a synthetic Equity line so
// the statement balances without a closing entry.
func (g *ReportGenerator) BalanceSheet(ctx context.Context, asOn string) (*models.BalanceSheetReport, error) {
	defer g.observe("balance_sheet", time.Now())

	year, err := g.AcYears.Active(ctx)
	if err != nil {
		return nil, err
	}
	asOnDate, err := timeutil.ParseDate(asOn)
	if err != nil {
		return nil, apperr.Validation("as_on", "invalid date %q, want YYYY-MM-DD", asOn)
	}
	if !year.Contains(asOnDate) {
		return nil, apperr.Validation("as_on", "date must fall inside the active accounting year")
	}

	groups, err := g.GroupRepo.GetAll(ctx)
	if err != nil {
		return nil, err
	}
	ledgers, err := g.LedgerRepo.GetAll(ctx)
	if err != nil {
		return nil, err
	}
	// One window [year.From, asOn]: the Opening side of the nets is the
	// year snapshot, the Closing side the as-on balance.
	nets, err := g.Calculator.AllLedgerNets(ctx, year, year.From, asOnDate)
	if err != nil {
		return nil, err
	}

	arena := newGroupArena(groups)
	byGroup := ledgersByGroup(ledgers)

	sections := make([]*models.BalanceSheetNode, 0, 3)
	var byCode = map[string]*models.BalanceSheetNode{}
	for _, rootID := range arena.roots {
		root := arena.byID[rootID]
		switch root.Code {
		case rootAssets, rootLiabilities, rootEquity:
		default:
			continue
		}
		node := buildBalanceSheetNode(arena, byGroup, nets, nets, rootID, 0)
		if node == nil {
			node = emptyBalanceSheetNode(root)
		}
		sections = append(sections, node)
		byCode[root.Code] = node
	}

	// Net result of the income and expense accounts, credit-positive.
	income, err := g.EntryRepo.SumSignedByRootPrefix(ctx, incomePrefixes, year.From, asOnDate)
	if err != nil {
		return nil, err
	}
	expense, err := g.EntryRepo.SumSignedByRootPrefix(ctx, expensePrefixes, year.From, asOnDate)
	if err != nil {
		return nil, err
	}
	pl := income.Neg().Sub(expense)

	if equity := byCode[rootEquity]; equity != nil && !pl.IsZero() {
		equity.Children = append(equity.Children, &models.BalanceSheetNode{
			Code:            rootEquity,
			Name:            "Profit / Loss (current year)",
			Level:           1,
			CurrentBalance:  pl.Neg(),
			PreviousBalance: decimal.Zero,
			Synthetic:       true,
		})
		equity.CurrentBalance = equity.CurrentBalance.Sub(pl)
	}

	totals := models.BalancePair{Debit: decimal.Zero, Credit: decimal.Zero}
	if assets := byCode[rootAssets]; assets != nil {
		totals.Debit = assets.CurrentBalance
	}
	if liab := byCode[rootLiabilities]; liab != nil {
		totals.Credit = totals.Credit.Sub(liab.CurrentBalance)
	}
	if equity := byCode[rootEquity]; equity != nil {
		totals.Credit = totals.Credit.Sub(equity.CurrentBalance)
	}

	return &models.BalanceSheetReport{
		Sections:   sections,
		Totals:     totals,
		ProfitLoss: pl,
		AsOn:       asOnDate,
	}, nil
}

// GeneralLedger builds per-ledger statements with running balances for
// [from, to]. invoiceType filters entries: "" keeps all, "manual" keeps
// entries posted without an invoice, anything else matches exactly.
func (g *ReportGenerator) GeneralLedger(ctx context.Context, ledgerIDs []int, from, to, invoiceType string) (*models.GeneralLedgerReport, error) {
	defer g.observe("general_ledger", time.Now())

	year, fromDate, toDate, err := g.parseRange(ctx, from, to)
	if err != nil {
		return nil, err
	}
	if len(ledgerIDs) == 0 {
		return nil, apperr.Validation("ledger_ids", "at least one ledger is required")
	}

	report := &models.GeneralLedgerReport{From: fromDate, To: toDate}
	for _, id := range ledgerIDs {
		l, err := g.LedgerRepo.Get(ctx, id)
		if err != nil {
			return nil, err
		}
		openingNet, err := g.Calculator.OpeningNet(ctx, year, id, fromDate)
		if err != nil {
			return nil, err
		}
		txns, err := g.EntryRepo.TransactionsForLedger(ctx, id, fromDate, toDate, invoiceType)
		if err != nil {
			return nil, err
		}

		opening := SplitNet(openingNet)
		report.LedgerReports = append(report.LedgerReports, models.LedgerReport{
			LedgerID:         l.ID,
			Name:             l.Name,
			Code:             l.FullCode(),
			Opening:          opening,
			Rows:             RunningRows(opening, txns),
			Closing:          SplitNet(openingNet.Add(SumSigned(txns))),
			TransactionCount: len(txns),
		})
	}
	return report, nil
}

// Summary computes the dashboard buckets as of a date. Results are cached
// in Redis for a few minutes and invalidated whenever an entry posts.
func (g *ReportGenerator) Summary(ctx context.Context, asOn string) (*models.SummaryTotals, error) {
	defer g.observe("summary", time.Now())

	year, err := g.AcYears.Active(ctx)
	if err != nil {
		return nil, err
	}
	asOnDate, err := timeutil.ParseDate(asOn)
	if err != nil {
		return nil, apperr.Validation("as_on", "invalid date %q, want YYYY-MM-DD", asOn)
	}
	if !year.Contains(asOnDate) {
		return nil, apperr.Validation("as_on", "date must fall inside the active accounting year")
	}

	cacheKey := timeutil.FormatDate(asOnDate)
	if data, ok := cache.GetCachedSummary(ctx, cacheKey); ok {
		var cached models.SummaryTotals
		if err := json.Unmarshal(data, &cached); err == nil {
			return &cached, nil
		}
		log.Printf("[ReportGenerator] Discarding bad cached summary for %s", cacheKey)
	}

	ledgers, err := g.LedgerRepo.GetAll(ctx)
	if err != nil {
		return nil, err
	}
	buckets := summaryBuckets(ledgers)

	assets, err := g.bucketNet(ctx, year, buckets.Assets, asOnDate)
	if err != nil {
		return nil, err
	}
	liabilities, err := g.bucketNet(ctx, year, buckets.Liabilities, asOnDate)
	if err != nil {
		return nil, err
	}
	income, err := g.bucketNet(ctx, year, buckets.Income, asOnDate)
	if err != nil {
		return nil, err
	}
	expense, err := g.bucketNet(ctx, year, buckets.Expense, asOnDate)
	if err != nil {
		return nil, err
	}

	// Display conventions: assets and expense are debit-positive,
	// liabilities and income credit-positive.
	liabilities = liabilities.Neg()
	income = income.Neg()
	pl := income.Sub(expense)
	liabilities = liabilities.Add(pl)

	whole := assets.Add(liabilities)
	summary := &models.SummaryTotals{
		Assets:         assets,
		Liabilities:    liabilities,
		Income:         income,
		Expense:        expense,
		ProfitLoss:     pl,
		AssetShare:     SafeRatio(assets, whole),
		LiabilityShare: SafeRatio(liabilities, whole),
		AsOn:           asOnDate,
	}

	if data, err := json.Marshal(summary); err == nil {
		cache.CacheSummary(ctx, cacheKey, data)
	}
	return summary, nil
}

// summaryBucketIDs holds the ledger IDs behind each dashboard figure.
type summaryBucketIDs struct {
	Assets      []int
	Liabilities []int
	Income      []int
	Expense     []int
}

// summaryBuckets assigns each ledger to a dashboard bucket by the first
// digit of its root code. Pass-through ledgers hold money owed onward, not
// the temple's own obligations, so the liability bucket skips them.
func summaryBuckets(ledgers []models.Ledger) summaryBucketIDs {
	var b summaryBucketIDs
	for _, l := range ledgers {
		if l.LeftCode == "" {
			continue
		}
		switch l.LeftCode[0] {
		case '1':
			b.Assets = append(b.Assets, l.ID)
		case '2', '3':
			if l.PA {
				continue
			}
			b.Liabilities = append(b.Liabilities, l.ID)
		case '4', '8':
			b.Income = append(b.Income, l.ID)
		case '5', '6', '9':
			b.Expense = append(b.Expense, l.ID)
		}
	}
	return b
}

// bucketNet is a bucket's signed balance as of a date: year opening
// snapshots plus postings from the year start.
func (g *ReportGenerator) bucketNet(ctx context.Context, year *models.AcYear, ledgerIDs []int, asOn time.Time) (decimal.Decimal, error) {
	if len(ledgerIDs) == 0 {
		return decimal.Zero, nil
	}
	opening, err := g.EntryRepo.SumOpeningForLedgerSet(ctx, year.ID, ledgerIDs)
	if err != nil {
		return decimal.Zero, err
	}
	posted, err := g.EntryRepo.SumSignedForLedgerSet(ctx, ledgerIDs, year.From, asOn)
	if err != nil {
		return decimal.Zero, err
	}
	return opening.Add(posted), nil
}
