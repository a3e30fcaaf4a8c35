package ledger

import (
	"sort"

	"github.com/shopspring/decimal"
)

// VatSide says which column of a posting a VAT box accumulates.
type VatSide int

const (
	SideCredit VatSide = iota
	SideDebit
)

// AccountRange is an inclusive range of four-digit account numbers.
type AccountRange struct {
	From int `json:"from"`
	To   int `json:"to"`
}

func (r AccountRange) contains(n int) bool { return n >= r.From && n <= r.To }

// VatBoxDefinition is one row of the momsdeklaration mapping.
type VatBoxDefinition struct {
	Code        string
	Description string
	Side        VatSide
	Ranges      []AccountRange
	Outgoing    bool // counted in the outgoing VAT sum for box 49
}

func one(n int) AccountRange { return AccountRange{From: n, To: n} }
func span(from, to int) AccountRange { return AccountRange{From: from, To: to} }

// vatBoxes is ordered by box code. Box 49 has no accounts of its own here;
// it is derived from the other boxes.
var vatBoxes = []VatBoxDefinition{
	{Code: "05", Description: "Momspliktig försäljning som inte ingår i ruta 06, 07 eller 08", Side: SideCredit,
		Ranges: []AccountRange{span(3000, 3003), span(3040, 3043), span(3050, 3053)}},
	{Code: "06", Description: "Momspliktiga uttag", Side: SideCredit, Ranges: []AccountRange{span(3401, 3403)}},
	{Code: "07", Description: "Beskattningsunderlag vid vinstmarginalbeskattning", Side: SideCredit, Ranges: []AccountRange{span(3200, 3209)}},
	{Code: "08", Description: "Hyresinkomster vid frivillig skattskyldighet", Side: SideCredit, Ranges: []AccountRange{one(3913)}},
	{Code: "10", Description: "Utgående moms 25 %", Side: SideCredit, Outgoing: true, Ranges: []AccountRange{span(2610, 2613)}},
	{Code: "11", Description: "Utgående moms 12 %", Side: SideCredit, Outgoing: true, Ranges: []AccountRange{span(2620, 2623)}},
	{Code: "12", Description: "Utgående moms 6 %", Side: SideCredit, Outgoing: true, Ranges: []AccountRange{span(2630, 2633)}},
	{Code: "20", Description: "Inköp av varor från ett annat EU-land", Side: SideDebit, Ranges: []AccountRange{span(4515, 4517)}},
	{Code: "21", Description: "Inköp av tjänster från ett annat EU-land", Side: SideDebit, Ranges: []AccountRange{span(4535, 4537)}},
	{Code: "22", Description: "Inköp av tjänster från ett land utanför EU", Side: SideDebit, Ranges: []AccountRange{span(4531, 4533)}},
	{Code: "23", Description: "Inköp av varor i Sverige som köparen är skattskyldig för", Side: SideDebit, Ranges: []AccountRange{span(4415, 4417)}},
	{Code: "24", Description: "Övriga inköp av tjänster i Sverige som köparen är skattskyldig för", Side: SideDebit, Ranges: []AccountRange{span(4425, 4427)}},
	{Code: "30", Description: "Utgående moms 25 % på inköp", Side: SideCredit, Outgoing: true, Ranges: []AccountRange{one(2614)}},
	{Code: "31", Description: "Utgående moms 12 % på inköp", Side: SideCredit, Outgoing: true, Ranges: []AccountRange{one(2624)}},
	{Code: "32", Description: "Utgående moms 6 % på inköp", Side: SideCredit, Outgoing: true, Ranges: []AccountRange{one(2634)}},
	{Code: "35", Description: "Försäljning av varor till ett annat EU-land", Side: SideCredit, Ranges: []AccountRange{one(3106), one(3108)}},
	{Code: "36", Description: "Försäljning av varor utanför EU", Side: SideCredit, Ranges: []AccountRange{one(3105)}},
	{Code: "37", Description: "Mellanmans inköp av varor vid trepartshandel", Side: SideDebit, Ranges: []AccountRange{one(4512)}},
	{Code: "38", Description: "Mellanmans försäljning av varor vid trepartshandel", Side: SideCredit, Ranges: []AccountRange{one(3107)}},
	{Code: "39", Description: "Försäljning av tjänster till annat EU-land", Side: SideCredit, Ranges: []AccountRange{one(3308)}},
	{Code: "40", Description: "Övrig försäljning av tjänster omsatta utomlands", Side: SideCredit, Ranges: []AccountRange{one(3305)}},
	{Code: "41", Description: "Försäljning när köparen är skattskyldig i Sverige", Side: SideCredit, Ranges: []AccountRange{one(3231)}},
	{Code: "42", Description: "Övrig försäljning m.m.", Side: SideCredit, Ranges: []AccountRange{one(3004), one(3044), one(3054)}},
	{Code: "48", Description: "Ingående moms att dra av", Side: SideDebit, Ranges: []AccountRange{span(2640, 2649)}},
	{Code: "49", Description: "Moms att betala eller få tillbaka"},
	{Code: "50", Description: "Beskattningsunderlag vid import", Side: SideDebit, Ranges: []AccountRange{span(4545, 4547)}},
	{Code: "60", Description: "Utgående moms 25 % på import", Side: SideCredit, Outgoing: true, Ranges: []AccountRange{one(2615)}},
	{Code: "61", Description: "Utgående moms 12 % på import", Side: SideCredit, Outgoing: true, Ranges: []AccountRange{one(2625)}},
	{Code: "62", Description: "Utgående moms 6 % på import", Side: SideCredit, Outgoing: true, Ranges: []AccountRange{one(2635)}},
}

const (
	boxInputVAT = "48"
	boxPayable  = "49"
)


// sideAmount is what a posting contributes to the box: the credit for
// credit-side boxes and the debit for debit-side boxes. The opposite side,
// such as the debit on 2611 when VAT is settled, is not turnover.
func (b VatBoxDefinition) sideAmount(p Posting) decimal.Decimal {
	if b.Side == SideDebit {
		return p.Debit
	}
	return p.Credit
}

// VatBoxes returns the box definitions in code order.
func VatBoxes() []VatBoxDefinition {
	out := make([]VatBoxDefinition, len(vatBoxes))
	copy(out, vatBoxes)
	return out
}

// VatBoxFor returns the box an account reports into, if any.
func VatBoxFor(accountNumber string) (VatBoxDefinition, bool) {
	n, ok := accountNumberValue(accountNumber)
	if !ok {
		return VatBoxDefinition{}, false
	}
	for _, b := range vatBoxes {
		for _, r := range b.Ranges {
			if r.contains(n) {
				return b, true
			}
		}
	}
	return VatBoxDefinition{}, false
}

// VatBox is one non-zero field of the VAT return.
type VatBox struct {
	Code        string          `json:"code"`
	Description string          `json:"description"`
	Amount      decimal.Decimal `json:"amount"`
	Accounts    []string        `json:"accounts,omitempty"`
}

// VatReport is the momsdeklaration for a period. Box49Computed is derived
// from the outgoing boxes less box 48; Box49Direct is summed straight from
// the postings on the outgoing and input VAT accounts. The settlement
// account 2650 is in neither. Correct is false when they differ by a whole unit or
// more.
type VatReport struct {
	Year          int             `json:"year"`
	Period        string          `json:"period"`
	Boxes         []VatBox        `json:"boxes"`
	Box49Computed decimal.Decimal `json:"box49_computed"`
	Box49Direct   decimal.Decimal `json:"box49_direct"`
	Difference    decimal.Decimal `json:"difference"`
	Correct       bool            `json:"correct"`
}

// Box returns the box with the given code, or false if it was zero.
func (r *VatReport) Box(code string) (VatBox, bool) {
	for _, b := range r.Boxes {
		if b.Code == code {
			return b, true
		}
	}
	return VatBox{}, false
}

// BuildVatReport sums postings of the period into VAT boxes. Opening
// balance postings are carried balances, not period turnover, and are
// skipped.
func BuildVatReport(postings []Posting, year int, period string) (*VatReport, error) {
	filtered, err := FilterByPeriod(postings, year, period)
	if err != nil {
		return nil, err
	}

	amounts := make(map[string]decimal.Decimal, len(vatBoxes))
	accounts := make(map[string]map[string]bool)
	var direct decimal.Decimal

	for _, p := range filtered {
		if p.IsOpeningBalance {
			continue
		}
		box, ok := VatBoxFor(p.AccountNumber)
		if !ok {
			continue
		}
		amt := box.sideAmount(p)
		if amt.IsZero() {
			continue
		}
		amounts[box.Code] = amounts[box.Code].Add(amt)
		switch {
		case box.Outgoing:
			direct = direct.Add(amt)
		case box.Code == boxInputVAT:
			direct = direct.Sub(amt)
		}
		if accounts[box.Code] == nil {
			accounts[box.Code] = make(map[string]bool)
		}
		accounts[box.Code][p.AccountNumber] = true
	}

	var outgoing decimal.Decimal
	for _, b := range vatBoxes {
		if b.Outgoing {
			outgoing = outgoing.Add(amounts[b.Code])
		}
	}
	computed := outgoing.Sub(amounts[boxInputVAT])
	amounts[boxPayable] = computed

	report := &VatReport{
		Year:          year,
		Period:        period,
		Boxes:         []VatBox{},
		Box49Computed: computed,
		Box49Direct:   direct,
		Difference:    computed.Sub(direct),
	}
	report.Correct = report.Difference.Abs().LessThan(decimal.NewFromInt(1))

	for _, b := range vatBoxes {
		amt := amounts[b.Code]
		if amt.IsZero() {
			continue
		}
		box := VatBox{Code: b.Code, Description: b.Description, Amount: amt}
		for acct := range accounts[b.Code] {
			box.Accounts = append(box.Accounts, acct)
		}
		sort.Strings(box.Accounts)
		report.Boxes = append(report.Boxes, box)
	}
	return report, nil
}
