package tariff

import (
	"cmp"
	"slices"
	"strings"
	"unicode"

	"github.com/shopspring/decimal"
)

// RateTable maps HS code prefixes to percentage rates.
//
// Lookup order for duty rates:
//  1. the first two digits of the code as an exact key
//  2. the first four digits, matched against every key as a prefix (longest
//     key first, so a four-digit key beats a two-digit one)
//  3. the table default
type RateTable struct {
	rates      map[string]decimal.Decimal
	keys       []string
	defaultPct decimal.Decimal
}

// NewRateTable copies rates and orders its keys for deterministic prefix matching.
func NewRateTable(rates map[string]decimal.Decimal, defaultPct decimal.Decimal) RateTable {
	copied := make(map[string]decimal.Decimal, len(rates))
	keys := make([]string, 0, len(rates))
	for k, v := range rates {
		copied[k] = v
		keys = append(keys, k)
	}
	slices.SortFunc(keys, func(a, b string) int {
		if c := cmp.Compare(len(b), len(a)); c != 0 {
			return c
		}
		return strings.Compare(a, b)
	})

	return RateTable{rates: copied, keys: keys, defaultPct: defaultPct}
}

// Default is the rate returned when no key matches.
func (t RateTable) Default() decimal.Decimal {
	return t.defaultPct
}

// DutyRate resolves the duty percentage for hsCode. It never fails: codes that
// are too short or match nothing get the default rate.
func (t RateTable) DutyRate(hsCode string) decimal.Decimal {
	code := NormalizeHSCode(hsCode)
	if len(code) < 2 {
		return t.defaultPct
	}

	if rate, ok := t.rates[code[:2]]; ok {
		return rate
	}

	if len(code) >= 4 {
		prefix4 := code[:4]
		for _, key := range t.keys {
			if strings.HasPrefix(prefix4, key) {
				return t.rates[key]
			}
		}
	}

	return t.defaultPct
}

// ExactRate resolves a rate keyed by the first four digits of hsCode, falling
// back to the default. Special excise taxes are looked up this way.
func (t RateTable) ExactRate(hsCode string) decimal.Decimal {
	code := NormalizeHSCode(hsCode)
	if len(code) < 4 {
		return t.defaultPct
	}
	if rate, ok := t.rates[code[:4]]; ok {
		return rate
	}
	return t.defaultPct
}

// NormalizeHSCode drops separators such as dots, dashes and spaces so that
// "6109.10" and "610910" resolve the same way.
func NormalizeHSCode(hsCode string) string {
	return strings.Map(func(r rune) rune {
		if unicode.IsDigit(r) {
			return r
		}
		return -1
	}, hsCode)
}

// DefaultDutyTable is the duty rate table by HS chapter.
func DefaultDutyTable() RateTable {
	return NewRateTable(map[string]decimal.Decimal{
		"61": decimal.RequireFromString("13.0"), // knitted apparel
		"62": decimal.RequireFromString("13.0"), // woven apparel
		"84": decimal.RequireFromString("8.0"),
		"85": decimal.RequireFromString("8.0"),
		"33": decimal.RequireFromString("8.0"),
		"95": decimal.RequireFromString("8.0"),
		"19": decimal.RequireFromString("8.0"),
		"39": decimal.RequireFromString("6.5"),
		"48": decimal.Zero,
		"49": decimal.Zero,
	}, decimal.RequireFromString("8.0"))
}

// DefaultSpecialTaxTable is the special excise tax table by HS heading.
func DefaultSpecialTaxTable() RateTable {
	return NewRateTable(map[string]decimal.Decimal{
		"3303": decimal.RequireFromString("7.0"),  // perfumes
		"3304": decimal.RequireFromString("7.0"),  // cosmetics
		"2203": decimal.RequireFromString("30.0"), // beer
		"2204": decimal.RequireFromString("30.0"), // wine
	}, decimal.Zero)
}
