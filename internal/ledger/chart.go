package ledger

import "sort"

// ChartEntry is a reference entry in the BAS chart of accounts.
type ChartEntry struct {
	Number         string         `json:"number"`
	Name           string         `json:"name"`
	Classification Classification `json:"classification"`
}

// basNames holds the BAS accounts a small business commonly uses. Postings
// on accounts outside this list are still accepted and classified by range.
var basNames = map[string]string{
	"1010": "Utvecklingsutgifter",
	"1110": "Byggnader",
	"1220": "Inventarier och verktyg",
	"1229": "Ackumulerade avskrivningar på inventarier och verktyg",
	"1240": "Bilar och andra transportmedel",
	"1380": "Andra långfristiga fordringar",
	"1460": "Lager av handelsvaror",
	"1510": "Kundfordringar",
	"1630": "Avräkning för skatter och avgifter (skattekonto)",
	"1650": "Momsfordran",
	"1710": "Förutbetalda hyreskostnader",
	"1790": "Övriga förutbetalda kostnader och upplupna intäkter",
	"1910": "Kassa",
	"1930": "Företagskonto / checkkonto / affärskonto",
	"2010": "Eget kapital",
	"2013": "Övriga egna uttag",
	"2018": "Övriga egna insättningar",
	"2081": "Aktiekapital",
	"2091": "Balanserad vinst eller förlust",
	"2099": "Årets resultat",
	"2110": "Periodiseringsfonder",
	"2150": "Ackumulerade överavskrivningar",
	"2350": "Andra långfristiga skulder till kreditinstitut",
	"2393": "Lån från närstående personer",
	"2440": "Leverantörsskulder",
	"2510": "Skatteskulder",
	"2611": "Utgående moms på försäljning inom Sverige, 25 %",
	"2614": "Utgående moms omvänd skattskyldighet, 25 %",
	"2615": "Utgående moms import av varor, 25 %",
	"2621": "Utgående moms på försäljning inom Sverige, 12 %",
	"2631": "Utgående moms på försäljning inom Sverige, 6 %",
	"2640": "Ingående moms",
	"2641": "Debiterad ingående moms",
	"2645": "Beräknad ingående moms på förvärv från utlandet",
	"2650": "Redovisningskonto för moms",
	"2710": "Personalens källskatt",
	"2731": "Avräkning lagstadgade sociala avgifter",
	"2890": "Övriga kortfristiga skulder",
	"2990": "Övriga upplupna kostnader och förutbetalda intäkter",
	"3001": "Försäljning inom Sverige, 25 % moms",
	"3002": "Försäljning inom Sverige, 12 % moms",
	"3003": "Försäljning inom Sverige, 6 % moms",
	"3004": "Försäljning inom Sverige, momsfri",
	"3105": "Försäljning varor till land utanför EU",
	"3106": "Försäljning varor till annat EU-land, momspliktig",
	"3108": "Försäljning varor till annat EU-land, momsfri",
	"3305": "Försäljning tjänster till land utanför EU",
	"3308": "Försäljning tjänster till annat EU-land",
	"3740": "Öres- och kronutjämning",
	"3913": "Frivilligt momspliktiga hyresintäkter",
	"4010": "Inköp material och varor",
	"4515": "Inköp av varor från annat EU-land, 25 %",
	"4535": "Inköp av tjänster från annat EU-land, 25 %",
	"4545": "Import av varor, 25 % moms",
	"5010": "Lokalhyra",
	"5410": "Förbrukningsinventarier",
	"5460": "Förbrukningsmaterial",
	"5611": "Drivmedel för personbilar",
	"5800": "Resekostnader",
	"6071": "Representation, avdragsgill",
	"6072": "Representation, ej avdragsgill",
	"6110": "Kontorsmateriel",
	"6212": "Mobiltelefon",
	"6230": "Datakommunikation",
	"6540": "IT-tjänster",
	"6570": "Bankkostnader",
	"7010": "Löner till kollektivanställda",
	"7210": "Löner till tjänstemän",
	"7510": "Arbetsgivaravgifter 31,42 %",
	"7832": "Avskrivningar på inventarier och verktyg",
	"7970": "Förlust vid avyttring av immateriella och materiella anläggningstillgångar",
	"8310": "Ränteintäkter från omsättningstillgångar",
	"8410": "Räntekostnader för långfristiga skulder",
	"8423": "Räntekostnader för skatter och avgifter",
	"8910": "Skatt som belastar årets resultat",
	"8999": "Årets resultat",
}

// LookupChartEntry finds a reference entry by account number.
func LookupChartEntry(number string) (ChartEntry, bool) {
	name, ok := basNames[number]
	if !ok {
		return ChartEntry{}, false
	}
	return ChartEntry{Number: number, Name: name, Classification: Classify(number)}, true
}

// AllChartEntries returns the reference chart ordered by account number.
func AllChartEntries() []ChartEntry {
	all := make([]ChartEntry, 0, len(basNames))
	for number, name := range basNames {
		all = append(all, ChartEntry{Number: number, Name: name, Classification: Classify(number)})
	}
	sort.Slice(all, func(i, j int) bool { return all[i].Number < all[j].Number })
	return all
}
