package milling

import (
	"regexp"
	"strings"

	"github.com/shopspring/decimal"
)

// CodeRegistry resolves product abbreviations for product codes. The
// conventional rice-variety and byproduct tables are injected so new paddy
// varieties are configuration, not code changes.
type CodeRegistry struct {
	rice       map[string]string
	byproducts map[string]string
}

// NewCodeRegistry builds a registry from explicit tables. Lookup by rice
// variety is case-insensitive.
func NewCodeRegistry(rice, byproducts map[string]string) *CodeRegistry {
	r := &CodeRegistry{
		rice:       make(map[string]string, len(rice)),
		byproducts: make(map[string]string, len(byproducts)),
	}
	for k, v := range rice {
		r.rice[strings.ToLower(k)] = v
	}
	for k, v := range byproducts {
		r.byproducts[k] = v
	}
	return r
}

// DefaultCodeRegistry returns the registry with the conventional tables.
func DefaultCodeRegistry() *CodeRegistry {
	return NewCodeRegistry(
		map[string]string{
			"Sudu Kakulu":  "SK",
			"Rathu Kakulu": "RK",
			"Samba":        "SA",
			"Keeri Samba":  "KS",
			"Nadu":         "ND",
			"Basmathi":     "BM",
		},
		map[string]string{
			ProductHunuSahal:   "HS",
			ProductKadunuSahal: "KD",
			ProductRicePolish:  "RP",
			ProductDahaiyya:    "DH",
			ProductFlour:       "FL",
		},
	)
}

// Abbreviation resolves the short code for a product. Rice uses the variety
// table; byproducts use the byproduct table. Unknown names fall back to the
// first two characters of the type name, uppercased.
func (r *CodeRegistry) Abbreviation(productType, riceType string) string {
	if productType == ProductRice {
		if abbr, ok := r.rice[strings.ToLower(riceType)]; ok {
			return abbr
		}
		return fallbackAbbreviation(riceType)
	}
	if abbr, ok := r.byproducts[productType]; ok {
		return abbr
	}
	return fallbackAbbreviation(productType)
}

// ProductCode builds the code stamped on a bagged-stock line:
// <Abbrev><BagSizeKg>-<3-digit-BatchRef>, e.g. SK5-003.
func (r *CodeRegistry) ProductCode(productType, riceType string, bagSizeKg decimal.Decimal, batchNumber string) string {
	return r.Abbreviation(productType, riceType) + bagSizeKg.String() + "-" + BatchReference(batchNumber)
}

var trailingDigits = regexp.MustCompile(`(\d{3})$`)

// BatchReference extracts the three-character reference from a batch number:
// the trailing three digits when present, otherwise the last three characters
// left-padded with zeros.
func BatchReference(batchNumber string) string {
	if m := trailingDigits.FindStringSubmatch(batchNumber); m != nil {
		return m[1]
	}
	ref := batchNumber
	if len(ref) > 3 {
		ref = ref[len(ref)-3:]
	}
	for len(ref) < 3 {
		ref = "0" + ref
	}
	return ref
}

func fallbackAbbreviation(name string) string {
	name = strings.TrimSpace(name)
	if name == "" {
		return "XX"
	}
	runes := []rune(strings.ToUpper(name))
	if len(runes) < 2 {
		return string(runes) + "X"
	}
	return string(runes[:2])
}
