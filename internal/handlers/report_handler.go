package handlers

import (
	"context"
	"net/http"
	"strconv"
	"strings"
	"time"

	"temple-backend/internal/services"
	"temple-backend/internal/timeutil"
)

// reportTimeout caps report generation; the aggregation queries can scan a
// full year of entry items.
const reportTimeout = 30 * time.Second

type ReportHandler struct {
	Generator *services.ReportGenerator
}

func NewReportHandler(g *services.ReportGenerator) *ReportHandler {
	return &ReportHandler{Generator: g}
}

// TrialBalance handles ?from=YYYY-MM-DD&to=YYYY-MM-DD.
func (h *ReportHandler) TrialBalance(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), reportTimeout)
	defer cancel()
	q := r.URL.Query()

	report, err := h.Generator.TrialBalance(ctx, q.Get("from"), q.Get("to"))
	if err != nil {
		respondError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, report)
}

// BalanceSheet handles ?as_on=YYYY-MM-DD, defaulting to today.
func (h *ReportHandler) BalanceSheet(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), reportTimeout)
	defer cancel()

	asOn := r.URL.Query().Get("as_on")
	if asOn == "" {
		asOn = timeutil.FormatDate(timeutil.Now())
	}

	report, err := h.Generator.BalanceSheet(ctx, asOn)
	if err != nil {
		respondError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, report)
}

// GeneralLedger handles ?ledger_ids=1,2,3&from=...&to=...&invoice_type=...
func (h *ReportHandler) GeneralLedger(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), reportTimeout)
	defer cancel()
	q := r.URL.Query()

	var ledgerIDs []int
	for _, part := range strings.Split(q.Get("ledger_ids"), ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		id, err := strconv.Atoi(part)
		if err != nil {
			http.Error(w, "ledger_ids must be comma-separated integers", http.StatusBadRequest)
			return
		}
		ledgerIDs = append(ledgerIDs, id)
	}

	report, err := h.Generator.GeneralLedger(ctx, ledgerIDs, q.Get("from"), q.Get("to"), q.Get("invoice_type"))
	if err != nil {
		respondError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, report)
}

// Summary handles ?as_on=YYYY-MM-DD, defaulting to today.
func (h *ReportHandler) Summary(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), reportTimeout)
	defer cancel()

	asOn := r.URL.Query().Get("as_on")
	if asOn == "" {
		asOn = timeutil.FormatDate(timeutil.Now())
	}

	summary, err := h.Generator.Summary(ctx, asOn)
	if err != nil {
		respondError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, summary)
}
