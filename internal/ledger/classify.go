package ledger

import (
	"strconv"

	"github.com/shopspring/decimal"
)

// AccountClass is the high-level BAS classification of an account.
type AccountClass string

const (
	ClassAsset           AccountClass = "asset"
	ClassLiabilityEquity AccountClass = "liability_equity"
	ClassRevenue         AccountClass = "revenue"
	ClassOperatingCost   AccountClass = "operating_cost"
	ClassFinancialIncome AccountClass = "financial_income"
	ClassFinancialCost   AccountClass = "financial_cost"
	ClassOther           AccountClass = "other"
)

// Section is the statutory sub-category an account is grouped under.
type Section string

const (
	SectionFixedAssets          Section = "fixed_assets"
	SectionCurrentAssets        Section = "current_assets"
	SectionEquity               Section = "equity"
	SectionProvisions           Section = "provisions"
	SectionLongTermLiabilities  Section = "long_term_liabilities"
	SectionShortTermLiabilities Section = "short_term_liabilities"
	SectionRevenue              Section = "revenue"
	SectionGoods                Section = "goods_and_materials"
	SectionPremises             Section = "premises"
	SectionOtherExternal        Section = "other_external_costs"
	SectionPersonnel            Section = "personnel"
	SectionDepreciation         Section = "depreciation"
	SectionOtherOperating       Section = "other_operating_costs"
	SectionFinancialIncome      Section = "financial_income"
	SectionFinancialCost        Section = "financial_cost"
	SectionOther                Section = "other"
)

// Classification is the result of classifying an account number.
type Classification struct {
	Class   AccountClass `json:"class"`
	Section Section      `json:"section"`
	Label   string       `json:"label"`
}

// Classifier maps an account number to its classification.
type Classifier func(accountNumber string) Classification

type classRule struct {
	from, to int
	class    AccountClass
	section  Section
	label    string
}

// classRules is the BAS range table. Ranges are inclusive and must not
// overlap; the first match wins.
var classRules = []classRule{
	{1000, 1599, ClassAsset, SectionFixedAssets, "Anläggningstillgångar"},
	{1600, 1999, ClassAsset, SectionCurrentAssets, "Omsättningstillgångar"},

	{2000, 2099, ClassLiabilityEquity, SectionEquity, "Eget kapital"},
	{2100, 2199, ClassLiabilityEquity, SectionProvisions, "Avsättningar"},
	{2200, 2399, ClassLiabilityEquity, SectionLongTermLiabilities, "Långfristiga skulder"},
	{2400, 2999, ClassLiabilityEquity, SectionShortTermLiabilities, "Kortfristiga skulder"},

	{3000, 3999, ClassRevenue, SectionRevenue, "Rörelseintäkter"},

	{4000, 4999, ClassOperatingCost, SectionGoods, "Varor, material och tjänster"},
	{5000, 5199, ClassOperatingCost, SectionPremises, "Lokalkostnader"},
	{5200, 6999, ClassOperatingCost, SectionOtherExternal, "Övriga externa kostnader"},
	{7000, 7699, ClassOperatingCost, SectionPersonnel, "Personalkostnader"},
	{7700, 7899, ClassOperatingCost, SectionDepreciation, "Avskrivningar"},
	{7900, 7999, ClassOperatingCost, SectionOtherOperating, "Övriga rörelsekostnader"},

	{8000, 8399, ClassFinancialIncome, SectionFinancialIncome, "Finansiella intäkter"},
	{8400, 8999, ClassFinancialCost, SectionFinancialCost, "Finansiella kostnader"},
}

var otherClassification = Classification{Class: ClassOther, Section: SectionOther, Label: "Övrigt"}

// Classify derives the classification of a BAS account number from its
// leading digits. Numbers that match no range, including malformed ones,
// classify as Other.
func Classify(accountNumber string) Classification {
	n, ok := accountNumberValue(accountNumber)
	if !ok {
		return otherClassification
	}
	for _, r := range classRules {
		if n >= r.from && n <= r.to {
			return Classification{Class: r.class, Section: r.section, Label: r.label}
		}
	}
	return otherClassification
}

// ValidAccountNumber reports whether s is a 4-digit account number.
func ValidAccountNumber(s string) bool {
	_, ok := accountNumberValue(s)
	return ok
}

func accountNumberValue(s string) (int, bool) {
	if len(s) != 4 {
		return 0, false
	}
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return 0, false
		}
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0, false
	}
	return n, true
}

// IsVATAccount reports whether the account is one of the 2610-2650 VAT
// accounts.
func IsVATAccount(accountNumber string) bool {
	n, ok := accountNumberValue(accountNumber)
	return ok && n >= 2610 && n <= 2650
}

// IsResultAccount reports whether the class belongs on the income statement.
func (c AccountClass) IsResultAccount() bool {
	switch c {
	case ClassRevenue, ClassOperatingCost, ClassFinancialIncome, ClassFinancialCost:
		return true
	}
	return false
}

// CreditNormal reports whether accounts of the class normally carry a
// credit balance. Liabilities, equity, revenue and financial income are
// credit-normal; assets and costs are debit-normal.
func (c AccountClass) CreditNormal() bool {
	switch c {
	case ClassLiabilityEquity, ClassRevenue, ClassFinancialIncome:
		return true
	}
	return false
}

// DisplayAmount converts a raw debit-minus-credit amount to the sign used
// on statutory reports.
func DisplayAmount(c AccountClass, raw decimal.Decimal) decimal.Decimal {
	if c.CreditNormal() {
		return raw.Neg()
	}
	return raw
}
