package ledger

import (
	"fmt"
	"sort"

	"github.com/shopspring/decimal"
)

// Comparison holds a figure for the report year, the year before and the
// change between them.
type Comparison struct {
	Current  decimal.Decimal `json:"current"`
	Previous decimal.Decimal `json:"previous"`
	Change   decimal.Decimal `json:"change"`
}

func newComparison(current, previous decimal.Decimal) Comparison {
	return Comparison{Current: current, Previous: previous, Change: current.Sub(previous)}
}

func (c Comparison) add(o Comparison) Comparison {
	return newComparison(c.Current.Add(o.Current), c.Previous.Add(o.Previous))
}

func (c Comparison) sub(o Comparison) Comparison {
	return newComparison(c.Current.Sub(o.Current), c.Previous.Sub(o.Previous))
}

// IncomeStatementRow is one account on the income statement, in display
// sign. Postings are the current year's source postings.
type IncomeStatementRow struct {
	AccountNumber string     `json:"account_number"`
	Description   string     `json:"description"`
	Amounts       Comparison `json:"amounts"`
	Postings      []Posting  `json:"postings,omitempty"`
}

// IncomeStatementSection groups rows under one heading.
type IncomeStatementSection struct {
	Section  Section              `json:"section"`
	Label    string               `json:"label"`
	Accounts []IncomeStatementRow `json:"accounts"`
	Total    Comparison           `json:"total"`
}

// IncomeStatement is the statutory income statement ("resultaträkning")
// with the preceding year as comparison column.
type IncomeStatement struct {
	Year         int `json:"year"`
	PreviousYear int `json:"previous_year"`

	Revenue            IncomeStatementSection   `json:"revenue"`
	OperatingCosts     []IncomeStatementSection `json:"operating_costs"`
	OperatingCostTotal Comparison               `json:"operating_cost_total"`
	OperatingResult    Comparison               `json:"operating_result"`

	FinancialIncome      IncomeStatementSection `json:"financial_income"`
	FinancialCost        IncomeStatementSection `json:"financial_cost"`
	ResultAfterFinancial Comparison             `json:"result_after_financial"`
	NetResult            Comparison             `json:"net_result"`

	// Other lists unclassifiable accounts in raw sign. They are not part of
	// any result line.
	Other IncomeStatementSection `json:"other"`
}

var costSections = []Section{
	SectionGoods,
	SectionPremises,
	SectionOtherExternal,
	SectionPersonnel,
	SectionDepreciation,
	SectionOtherOperating,
}

// BuildIncomeStatement reports the result accounts of year with year-1 as
// comparison. postings may span both years; anything else is ignored.
func BuildIncomeStatement(postings []Posting, year int) (*IncomeStatement, error) {
	current, err := FilterByPeriod(postings, year, PeriodAll)
	if err != nil {
		return nil, err
	}
	var previous []Posting
	if year > 1 {
		if previous, err = FilterByPeriod(postings, year-1, PeriodAll); err != nil {
			return nil, fmt.Errorf("comparison year: %w", err)
		}
	}

	cur := Aggregate(current, Classify)
	prev := Aggregate(previous, Classify)

	sections := make(map[Section]*IncomeStatementSection)
	for _, s := range append([]Section{SectionRevenue, SectionFinancialIncome, SectionFinancialCost, SectionOther}, costSections...) {
		sections[s] = &IncomeStatementSection{Section: s, Label: SectionLabel(s)}
	}

	seen := make(map[string]bool)
	var numbers []string
	for _, a := range []Aggregation{cur, prev} {
		for n := range a {
			if !seen[n] {
				seen[n] = true
				numbers = append(numbers, n)
			}
		}
	}
	sort.Strings(numbers)

	for _, n := range numbers {
		c := Classify(n)
		if !c.Class.IsResultAccount() && c.Class != ClassOther {
			continue
		}

		row := IncomeStatementRow{AccountNumber: n}
		var curAmt, prevAmt decimal.Decimal
		if acct, ok := cur[n]; ok {
			row.Description = acct.Description
			row.Postings = acct.Postings
			curAmt = DisplayAmount(c.Class, acct.ClosingBalance)
		}
		if acct, ok := prev[n]; ok {
			if row.Description == "" {
				row.Description = acct.Description
			}
			prevAmt = DisplayAmount(c.Class, acct.ClosingBalance)
		}
		row.Amounts = newComparison(curAmt, prevAmt)

		sec := sections[c.Section]
		sec.Accounts = append(sec.Accounts, row)
		sec.Total = sec.Total.add(row.Amounts)
	}

	is := &IncomeStatement{
		Year:            year,
		PreviousYear:    year - 1,
		Revenue:         *sections[SectionRevenue],
		FinancialIncome: *sections[SectionFinancialIncome],
		FinancialCost:   *sections[SectionFinancialCost],
		Other:           *sections[SectionOther],
	}
	for _, s := range costSections {
		is.OperatingCosts = append(is.OperatingCosts, *sections[s])
		is.OperatingCostTotal = is.OperatingCostTotal.add(sections[s].Total)
	}

	is.OperatingResult = is.Revenue.Total.sub(is.OperatingCostTotal)
	is.ResultAfterFinancial = is.OperatingResult.add(is.FinancialIncome.Total).sub(is.FinancialCost.Total)
	is.NetResult = is.ResultAfterFinancial
	return is, nil
}
