package importer

// Built-in reconciliation tables. Entries are literal historical corrections
// taken from catalog diffs; keep them exactly as recorded.

// misfiledPromos: the export reused one code for unrelated promo drops.
var misfiledPromos = []MisfiledPromoRule{
	{Code: "pmei", CardName: "Arena", SetName: "HarperPrism Book Promos"},
	{Code: "pmei", CardName: "Sewers of Estark", SetName: "HarperPrism Book Promos"},
	{Code: "pmei", CardName: "Windseeker Centaur", SetName: "HarperPrism Book Promos"},
	{Code: "pmei", CardName: "Giant Badger", SetName: "HarperPrism Book Promos"},
	{Code: "pmei", CardName: "Mana Crypt", SetName: "HarperPrism Book Promos"},
	{Code: "pmei", CardName: "Nalathni Dragon", SetName: "Dragon Con"},
	{Code: "pdrc", CardName: "Nalathni Dragon", SetName: "Dragon Con"},
}

// noteEditionCodes store the real set name in the printing note.
var noteEditionCodes = []string{
	"pmsc",
	"pwpn",
	"pmei",
}

// seasonalCodes rewrite a "Month Year" printing note into a yearly product.
var seasonalCodes = []SeasonalRule{
	{Code: "fnm", Template: "Friday Night Magic %d"},
}

var editionPrefixes = []PrefixRule{
	{Prefix: "Prerelease Events: ", Promo: true, Prerelease: true},
	{Prefix: "Promo Pack: ", Promo: true, PromoStamp: true},
	{Prefix: "Release Events: ", Promo: true},
	{Prefix: "Launch Parties: ", Promo: true},
	{Prefix: "Store Championships: ", Promo: true},
	{Prefix: "Extras: ", Token: true},
	{Prefix: "Tokens: ", Token: true},
}

var editionSuffixes = []SuffixRule{
	{Suffix: " Prerelease Promos", Promo: true, Prerelease: true},
	{Suffix: " Promos", Promo: true},
	{Suffix: " Promo", Promo: true},
	{Suffix: " Tokens", Token: true},
}

// dedicatedPromoCodes name promo-only products; their names already denote
// the promo set, so no " Promos" suffix is added.
var dedicatedPromoCodes = []string{
	"fnm",
	"pmei",
	"pmsc",
	"pwpn",
	"pdrc",
	"pjgp",
	"mpr",
	"parl",
	"pgtw",
	"pdci",
}

const substituteCardName = "Substitute Card"

// scanningSets are routed by code alone; the catalog name of these products
// cannot be derived from the export's edition text.
var scanningSets = map[string]string{
	"plist": "plst",
}

// cardSetOverrides split ambiguous legacy promo codes by card name.
var cardSetOverrides = []CardSetRule{
	{Code: "pdci", CardName: "Lightning Bolt", SetCode: "jgp"},
	{Code: "pdci", CardName: "Stroke of Genius", SetCode: "jgp"},
	{Code: "pdci", CardName: "Gaea's Cradle", SetCode: "g99"},
	{Code: "parl", CardName: "Forest", SetCode: "pal99"},
	{Code: "parl", CardName: "Island", SetCode: "pal99"},
	{Code: "pgtw", CardName: "Wood Elves", SetCode: "pg07"},
}

// setCodeAliases maps legacy two-letter edition codes to catalog codes.
var setCodeAliases = map[string]string{
	"1e": "lea",
	"2e": "leb",
	"2u": "2ed",
	"3e": "3ed",
	"4e": "4ed",
	"5e": "5ed",
	"6e": "6ed",
	"7e": "7ed",
	"8e": "8ed",
	"9e": "9ed",
	"an": "arn",
	"aq": "atq",
	"lg": "leg",
	"dk": "drk",
	"fe": "fem",
	"hm": "hml",
	"ia": "ice",
	"al": "all",
	"mi": "mir",
	"vi": "vis",
	"wl": "wth",
	"te": "tmp",
	"st": "sth",
	"ex": "exo",
	"uz": "usg",
	"gu": "ulg",
	"cg": "uds",
	"mm": "mmq",
	"ne": "nem",
	"pr": "pcy",
	"in": "inv",
	"ps": "pls",
	"ap": "apc",
	"od": "ody",
	"tr": "tor",
	"ju": "jud",
	"on": "ons",
	"le": "lgn",
	"sc": "scg",
	"mr": "mrd",
	"ds": "dst",
	"fd": "5dn",
	"po": "por",
	"p2": "p02",
	"pk": "ptk",
	"ch": "chr",
	"cs": "csp",
	"ptc": "p02",
}

// numberOverrides are reprint anomalies no formula can derive.
var numberOverrides = []NumberOverride{
	{CardName: "Anaconda", Number: "41", Replacement: "41†"},
	{CardName: "Blaze", Number: "118", Replacement: "118†"},
	{CardName: "Warrior's Charge", Number: "38", Replacement: "38†"},
	{CardName: "Hand of Death", Number: "96", Replacement: "96†"},
	{CardName: "Hall of Gemstone", Number: "263", Replacement: "263a"},
}

// offsetTables are keyed by the export's set display name. Ranges are
// half-open and must not overlap within a set.
var offsetTables = map[string][]OffsetRange{
	"Fifth Edition": {
		{From: 1, To: 70, Offset: 138},
		{From: 70, To: 139, Offset: -69},
		{From: 139, To: 208, Offset: -69},
	},
	"Portal": {
		{From: 21, To: 41, Offset: 1},
		{From: 42, To: 62, Offset: 2},
		{From: 120, To: 141, Offset: -1},
		{From: 160, To: 181, Offset: -2},
	},
	"Portal Second Age": {
		{From: 1, To: 31, Offset: 30},
		{From: 31, To: 61, Offset: -30},
	},
	"Revised Edition": {
		{From: 286, To: 296, Offset: 10},
	},
}
