package ledger

import (
	"github.com/shopspring/decimal"
)

// ComputedResultLabel names the synthetic equity row that carries the
// result of the period ("beräknat resultat").
const ComputedResultLabel = "Beräknat resultat"

// BalanceSheetRow is one account on the balance sheet, in display sign.
type BalanceSheetRow struct {
	AccountNumber string          `json:"account_number,omitempty"`
	Description   string          `json:"description"`
	Opening       decimal.Decimal `json:"opening"`
	Change        decimal.Decimal `json:"change"`
	Closing       decimal.Decimal `json:"closing"`
	Synthetic     bool            `json:"synthetic,omitempty"`
	Postings      []Posting       `json:"postings,omitempty"`
}

// BalanceSheetSection groups rows under one statutory heading.
type BalanceSheetSection struct {
	Section      Section           `json:"section"`
	Label        string            `json:"label"`
	Accounts     []BalanceSheetRow `json:"accounts"`
	OpeningTotal decimal.Decimal   `json:"opening_total"`
	ChangeTotal  decimal.Decimal   `json:"change_total"`
	Total        decimal.Decimal   `json:"total"`
}

func (s *BalanceSheetSection) add(row BalanceSheetRow) {
	s.Accounts = append(s.Accounts, row)
	s.OpeningTotal = s.OpeningTotal.Add(row.Opening)
	s.ChangeTotal = s.ChangeTotal.Add(row.Change)
	s.Total = s.Total.Add(row.Closing)
}

// BalanceSheet is the statutory balance sheet ("balansräkning").
type BalanceSheet struct {
	Year   int    `json:"year,omitempty"`
	Period string `json:"period,omitempty"`

	Assets               []BalanceSheetSection `json:"assets"`
	LiabilitiesAndEquity []BalanceSheetSection `json:"liabilities_and_equity"`
	Other                BalanceSheetSection   `json:"other"`

	TotalOpeningAssets               decimal.Decimal `json:"total_opening_assets"`
	TotalAssets                      decimal.Decimal `json:"total_assets"`
	TotalOpeningLiabilitiesAndEquity decimal.Decimal `json:"total_opening_liabilities_and_equity"`
	TotalLiabilitiesAndEquity        decimal.Decimal `json:"total_liabilities_and_equity"`

	OpeningComputedResult decimal.Decimal `json:"opening_computed_result"`
	ComputedResult        decimal.Decimal `json:"computed_result"`
	ClosingComputedResult decimal.Decimal `json:"closing_computed_result"`

	Difference decimal.Decimal `json:"difference"`
	Balanced   bool            `json:"balanced"`

	UnbalancedTransactions []TransactionImbalance `json:"unbalanced_transactions,omitempty"`
}

var assetSections = []Section{SectionFixedAssets, SectionCurrentAssets}

var liabilitySections = []Section{
	SectionEquity,
	SectionProvisions,
	SectionLongTermLiabilities,
	SectionShortTermLiabilities,
}

// SectionLabel returns the Swedish statutory heading of a section.
func SectionLabel(s Section) string {
	for _, r := range classRules {
		if r.section == s {
			return r.label
		}
	}
	return otherClassification.Label
}

// BuildBalanceSheet groups aggregated accounts into the statutory sections
// and reconciles them. Result accounts are not listed; their period net is
// carried into equity as the computed result. The opening computed result
// is back-solved from the opening balances:
//
//	opening result = opening assets - opening liabilities and equity
//
// An unbalanced sheet is still returned, flagged with the difference.
func BuildBalanceSheet(agg Aggregation, classify Classifier) *BalanceSheet {
	classOf := func(a *AggregatedAccount) Classification {
		if classify != nil {
			return classify(a.AccountNumber)
		}
		return a.Classification
	}

	sections := make(map[Section]*BalanceSheetSection)
	for _, s := range append(append([]Section{}, assetSections...), liabilitySections...) {
		sections[s] = &BalanceSheetSection{Section: s, Label: SectionLabel(s)}
	}
	bs := &BalanceSheet{
		Other: BalanceSheetSection{Section: SectionOther, Label: otherClassification.Label},
	}

	var computedResult decimal.Decimal
	for _, acct := range agg.Sorted() {
		c := classOf(acct)
		if c.Class.IsResultAccount() {
			// negate: debit-minus-credit of result accounts is minus the result
			computedResult = computedResult.Sub(acct.PeriodNet)
			continue
		}

		row := BalanceSheetRow{
			AccountNumber: acct.AccountNumber,
			Description:   acct.Description,
			Opening:       DisplayAmount(c.Class, acct.OpeningBalance),
			Change:        DisplayAmount(c.Class, acct.PeriodNet),
			Closing:       DisplayAmount(c.Class, acct.ClosingBalance),
			Postings:      acct.Postings,
		}
		if c.Class == ClassOther {
			bs.Other.add(row)
			continue
		}
		sec, ok := sections[c.Section]
		if !ok {
			bs.Other.add(row)
			continue
		}
		sec.add(row)
	}

	var openingLE, closingLE decimal.Decimal
	for _, s := range assetSections {
		bs.TotalOpeningAssets = bs.TotalOpeningAssets.Add(sections[s].OpeningTotal)
		bs.TotalAssets = bs.TotalAssets.Add(sections[s].Total)
	}
	for _, s := range liabilitySections {
		openingLE = openingLE.Add(sections[s].OpeningTotal)
		closingLE = closingLE.Add(sections[s].Total)
	}

	// Other accounts keep the raw sign and sit on the debit side.
	debitOpening := bs.TotalOpeningAssets.Add(bs.Other.OpeningTotal)
	debitClosing := bs.TotalAssets.Add(bs.Other.Total)

	bs.OpeningComputedResult = debitOpening.Sub(openingLE)
	bs.ComputedResult = computedResult
	bs.ClosingComputedResult = bs.OpeningComputedResult.Add(computedResult)

	sections[SectionEquity].add(BalanceSheetRow{
		Description: ComputedResultLabel,
		Opening:     bs.OpeningComputedResult,
		Change:      bs.ComputedResult,
		Closing:     bs.ClosingComputedResult,
		Synthetic:   true,
	})

	bs.TotalOpeningLiabilitiesAndEquity = openingLE.Add(bs.OpeningComputedResult)
	bs.TotalLiabilitiesAndEquity = closingLE.Add(bs.ClosingComputedResult)

	bs.Difference = debitClosing.Sub(bs.TotalLiabilitiesAndEquity)
	bs.Balanced = IsZero(bs.Difference)

	for _, s := range assetSections {
		bs.Assets = append(bs.Assets, *sections[s])
	}
	for _, s := range liabilitySections {
		bs.LiabilitiesAndEquity = append(bs.LiabilitiesAndEquity, *sections[s])
	}
	return bs
}
