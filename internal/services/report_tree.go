package services

import (
	"sort"

	"github.com/shopspring/decimal"

	"temple-backend/internal/models"
)

// ledgersByGroup indexes ledgers under their group, sorted by right code.
func ledgersByGroup(ledgers []models.Ledger) map[int][]models.Ledger {
	byGroup := make(map[int][]models.Ledger)
	for _, l := range ledgers {
		byGroup[l.GroupID] = append(byGroup[l.GroupID], l)
	}
	for id := range byGroup {
		ls := byGroup[id]
		sort.Slice(ls, func(i, j int) bool { return ls[i].RightCode < ls[j].RightCode })
	}
	return byGroup
}

// buildTrialBalanceNode rolls one group subtree into a report node. Groups
// and ledgers without any figure in the period come back nil so callers can
// prune them; the returned totals still sum the full subtree.
func buildTrialBalanceNode(arena *groupArena, byGroup map[int][]models.Ledger, nets *LedgerNets, groupID, level int) *models.GroupNode {
	if level >= maxTreeDepth {
		return nil
	}
	g, ok := arena.byID[groupID]
	if !ok {
		return nil
	}

	node := &models.GroupNode{
		ID:    g.ID,
		Code:  g.Code,
		Name:  g.Name,
		Level: level,
	}

	for _, l := range byGroup[g.ID] {
		if !nets.HasActivity(l.ID) {
			continue
		}
		opening := SplitNet(nets.opening(l.ID))
		closing := SplitNet(nets.closing(l.ID))
		node.Ledgers = append(node.Ledgers, models.LedgerFigures{
			LedgerID: l.ID,
			Name:     l.Name,
			Code:     l.FullCode(),
			Opening:  opening,
			Closing:  closing,
		})
		node.TotalOpeningDebit = node.TotalOpeningDebit.Add(opening.Debit)
		node.TotalOpeningCredit = node.TotalOpeningCredit.Add(opening.Credit)
		node.TotalClosingDebit = node.TotalClosingDebit.Add(closing.Debit)
		node.TotalClosingCredit = node.TotalClosingCredit.Add(closing.Credit)
	}

	for _, childID := range arena.children[g.ID] {
		child := buildTrialBalanceNode(arena, byGroup, nets, childID, level+1)
		if child == nil {
			continue
		}
		node.Children = append(node.Children, child)
		node.TotalOpeningDebit = node.TotalOpeningDebit.Add(child.TotalOpeningDebit)
		node.TotalOpeningCredit = node.TotalOpeningCredit.Add(child.TotalOpeningCredit)
		node.TotalClosingDebit = node.TotalClosingDebit.Add(child.TotalClosingDebit)
		node.TotalClosingCredit = node.TotalClosingCredit.Add(child.TotalClosingCredit)
	}

	if len(node.Ledgers) == 0 && len(node.Children) == 0 {
		return nil
	}
	return node
}

// buildTrialBalance assembles pruned root subtrees and the grand totals row.
func buildTrialBalance(arena *groupArena, ledgers []models.Ledger, nets *LedgerNets) ([]*models.GroupNode, models.GroupNode) {
	byGroup := ledgersByGroup(ledgers)

	var rows []*models.GroupNode
	grand := models.GroupNode{Name: "Grand Total"}
	for _, rootID := range arena.roots {
		node := buildTrialBalanceNode(arena, byGroup, nets, rootID, 0)
		if node == nil {
			continue
		}
		rows = append(rows, node)
		grand.TotalOpeningDebit = grand.TotalOpeningDebit.Add(node.TotalOpeningDebit)
		grand.TotalOpeningCredit = grand.TotalOpeningCredit.Add(node.TotalOpeningCredit)
		grand.TotalClosingDebit = grand.TotalClosingDebit.Add(node.TotalClosingDebit)
		grand.TotalClosingCredit = grand.TotalClosingCredit.Add(node.TotalClosingCredit)
	}
	return rows, grand
}

// buildBalanceSheetNode rolls one subtree into signed net balances. Signs
// follow the posting convention: debit-positive. Presentation flips
// liability and equity sections at the handler level, not here.
func buildBalanceSheetNode(arena *groupArena, byGroup map[int][]models.Ledger, current, previous *LedgerNets, groupID, level int) *models.BalanceSheetNode {
	if level >= maxTreeDepth {
		return nil
	}
	g, ok := arena.byID[groupID]
	if !ok {
		return nil
	}

	node := &models.BalanceSheetNode{
		ID:              g.ID,
		Code:            g.Code,
		Name:            g.Name,
		Level:           level,
		CurrentBalance:  decimal.Zero,
		PreviousBalance: decimal.Zero,
	}

	for _, l := range byGroup[g.ID] {
		cur := current.closing(l.ID)
		prev := previous.opening(l.ID)
		if cur.IsZero() && prev.IsZero() {
			continue
		}
		node.Ledgers = append(node.Ledgers, models.BalanceSheetEntry{
			LedgerID:        l.ID,
			Name:            l.Name,
			Code:            l.FullCode(),
			CurrentBalance:  cur,
			PreviousBalance: prev,
		})
		node.CurrentBalance = node.CurrentBalance.Add(cur)
		node.PreviousBalance = node.PreviousBalance.Add(prev)
	}

	for _, childID := range arena.children[g.ID] {
		child := buildBalanceSheetNode(arena, byGroup, current, previous, childID, level+1)
		if child == nil {
			continue
		}
		node.Children = append(node.Children, child)
		node.CurrentBalance = node.CurrentBalance.Add(child.CurrentBalance)
		node.PreviousBalance = node.PreviousBalance.Add(child.PreviousBalance)
	}

	if len(node.Ledgers) == 0 && len(node.Children) == 0 && node.CurrentBalance.IsZero() && node.PreviousBalance.IsZero() {
		return nil
	}
	return node
}

// emptyBalanceSheetNode is the placeholder for a root with no figures, so
// the three balance sheet sections are always present.
func emptyBalanceSheetNode(g *models.Group) *models.BalanceSheetNode {
	return &models.BalanceSheetNode{
		ID:              g.ID,
		Code:            g.Code,
		Name:            g.Name,
		CurrentBalance:  decimal.Zero,
		PreviousBalance: decimal.Zero,
	}
}
