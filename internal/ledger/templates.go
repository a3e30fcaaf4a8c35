package ledger

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

// TemplateKind identifies a posting template (förval).
type TemplateKind int

const (
	TemplateSale25 TemplateKind = iota + 1
	TemplatePurchase25
	TemplateEUGoodsPurchase
	TemplateOwnerDeposit
	TemplateBankFee
)

var templateKeys = map[TemplateKind]string{
	TemplateSale25:          "sale-25",
	TemplatePurchase25:      "purchase-25",
	TemplateEUGoodsPurchase: "eu-goods-purchase",
	TemplateOwnerDeposit:    "owner-deposit",
	TemplateBankFee:         "bank-fee",
}

func (k TemplateKind) String() string {
	if s, ok := templateKeys[k]; ok {
		return s
	}
	return fmt.Sprintf("TemplateKind(%d)", int(k))
}

// ParseTemplateKind resolves a template key such as "sale-25".
func ParseTemplateKind(s string) (TemplateKind, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	for k, key := range templateKeys {
		if key == s {
			return k, nil
		}
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownTemplate, s)
}

// TemplateParams are the user inputs to a template. Amount is the gross
// amount including VAT where the template splits out VAT. Account replaces
// the template's default for its variable account.
type TemplateParams struct {
	Amount      decimal.Decimal `json:"amount"`
	Account     string          `json:"account,omitempty"`
	Date        string          `json:"date"`
	Description string          `json:"description"`
}

// Template is a reusable verification pattern.
type Template struct {
	Kind           TemplateKind `json:"-"`
	Key            string       `json:"key"`
	Name           string       `json:"name"`
	Description    string       `json:"description"`
	AccountRole    string       `json:"account_role"`
	DefaultAccount string       `json:"default_account"`

	build func(account string, amount decimal.Decimal) []Posting
}

var (
	vatRate25   = decimal.New(25, -2)
	grossRate25 = decimal.New(125, -2)
)

// splitVAT25 splits a gross amount into net and 25 % VAT, rounding the
// net to öre and giving the remainder to VAT.
func splitVAT25(gross decimal.Decimal) (net, vat decimal.Decimal) {
	net = gross.Div(grossRate25).Round(2)
	return net, gross.Sub(net)
}

func debitLine(account string, amount decimal.Decimal) Posting {
	return Posting{AccountNumber: account, Debit: amount}
}

func creditLine(account string, amount decimal.Decimal) Posting {
	return Posting{AccountNumber: account, Credit: amount}
}

var templates = []Template{
	{
		Kind:           TemplateSale25,
		Name:           "Försäljning 25 % moms",
		Description:    "Sale paid to the bank account. Gross to 1930, net to the revenue account, VAT to 2611.",
		AccountRole:    "revenue account",
		DefaultAccount: "3001",
		build: func(account string, gross decimal.Decimal) []Posting {
			net, vat := splitVAT25(gross)
			return []Posting{debitLine("1930", gross), creditLine(account, net), creditLine("2611", vat)}
		},
	},
	{
		Kind:           TemplatePurchase25,
		Name:           "Inköp 25 % moms",
		Description:    "Purchase paid from the bank account. Net to the cost account, input VAT to 2640.",
		AccountRole:    "cost account",
		DefaultAccount: "4010",
		build: func(account string, gross decimal.Decimal) []Posting {
			net, vat := splitVAT25(gross)
			return []Posting{debitLine(account, net), debitLine("2640", vat), creditLine("1930", gross)}
		},
	},
	{
		Kind:           TemplateEUGoodsPurchase,
		Name:           "Inköp av varor från EU",
		Description:    "Goods bought from another EU country on supplier credit. Reverse-charge VAT is booked both ways on 2645 and 2614.",
		AccountRole:    "purchase account",
		DefaultAccount: "4515",
		build: func(account string, amount decimal.Decimal) []Posting {
			vat := amount.Mul(vatRate25).Round(2)
			return []Posting{
				debitLine(account, amount), creditLine("2440", amount),
				debitLine("2645", vat), creditLine("2614", vat),
			}
		},
	},
	{
		Kind:           TemplateOwnerDeposit,
		Name:           "Egen insättning",
		Description:    "Owner deposits private money into the business bank account.",
		AccountRole:    "bank account",
		DefaultAccount: "1930",
		build: func(account string, amount decimal.Decimal) []Posting {
			return []Posting{debitLine(account, amount), creditLine("2018", amount)}
		},
	},
	{
		Kind:           TemplateBankFee,
		Name:           "Bankavgift",
		Description:    "Bank charges drawn from the bank account.",
		AccountRole:    "bank account",
		DefaultAccount: "1930",
		build: func(account string, amount decimal.Decimal) []Posting {
			return []Posting{debitLine("6570", amount), creditLine(account, amount)}
		},
	},
}

func init() {
	for i := range templates {
		templates[i].Key = templates[i].Kind.String()
	}
}

// Templates returns every registered template in kind order.
func Templates() []Template {
	out := make([]Template, len(templates))
	copy(out, templates)
	return out
}

// LookupTemplate returns the template for kind.
func LookupTemplate(kind TemplateKind) (Template, error) {
	for _, t := range templates {
		if t.Kind == kind {
			return t, nil
		}
	}
	return Template{}, fmt.Errorf("%w: %s", ErrUnknownTemplate, kind)
}

// ApplyTemplate builds a validated, unsaved transaction from a template.
func ApplyTemplate(kind TemplateKind, params TemplateParams) (*Transaction, error) {
	t, err := LookupTemplate(kind)
	if err != nil {
		return nil, err
	}
	if !params.Amount.IsPositive() {
		return nil, fmt.Errorf("%w: template amount must be positive", ErrInvalidAmount)
	}

	account := params.Account
	if account == "" {
		account = t.DefaultAccount
	}
	desc := params.Description
	if desc == "" {
		desc = t.Name
	}

	txn := &Transaction{
		Description: desc,
		Date:        params.Date,
		Postings:    t.build(account, params.Amount),
	}
	for i := range txn.Postings {
		if entry, ok := LookupChartEntry(txn.Postings[i].AccountNumber); ok {
			txn.Postings[i].AccountDescription = entry.Name
		}
	}
	if err := txn.Validate(); err != nil {
		return nil, err
	}
	return txn, nil
}
