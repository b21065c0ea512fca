package milling

// Product keys of one milling run: rice plus the five byproduct streams.
const (
	ProductRice        = "rice"
	ProductHunuSahal   = "hunuSahal"
	ProductKadunuSahal = "kadunuSahal"
	ProductRicePolish  = "ricePolish"
	ProductDahaiyya    = "dahaiyya"
	ProductFlour       = "flour"
)

// ProductTypes lists every product key of a conversion, rice first.
var ProductTypes = []string{
	ProductRice,
	ProductHunuSahal,
	ProductKadunuSahal,
	ProductRicePolish,
	ProductDahaiyya,
	ProductFlour,
}

// ByproductTypes lists the five secondary outputs.
var ByproductTypes = []string{
	ProductHunuSahal,
	ProductKadunuSahal,
	ProductRicePolish,
	ProductDahaiyya,
	ProductFlour,
}

// byproductSlugs maps each byproduct key to its fixed inventory document id.
var byproductSlugs = map[string]string{
	ProductHunuSahal:   "hunu_sahal",
	ProductKadunuSahal: "kadunu_sahal",
	ProductRicePolish:  "rice_polish",
	ProductDahaiyya:    "dahaiyya",
	ProductFlour:       "flour",
}

// byproductDisplayNames maps byproduct keys to their display names.
var byproductDisplayNames = map[string]string{
	ProductHunuSahal:   "Hunu Sahal",
	ProductKadunuSahal: "Kadunu Sahal",
	ProductRicePolish:  "Rice Polish",
	ProductDahaiyya:    "Dahaiyya",
	ProductFlour:       "Flour",
}

// IsProductType reports whether t is one of the six product keys.
func IsProductType(t string) bool {
	for _, p := range ProductTypes {
		if p == t {
			return true
		}
	}
	return false
}

// ByproductSlug returns the fixed inventory id for a byproduct key
// (hunuSahal -> hunu_sahal). Unknown keys fall back to Slugify.
func ByproductSlug(productType string) string {
	if s, ok := byproductSlugs[productType]; ok {
		return s
	}
	return Slugify(productType)
}

// ByproductDisplayName returns the display name for a byproduct key,
// or the key itself when unknown.
func ByproductDisplayName(productType string) string {
	if n, ok := byproductDisplayNames[productType]; ok {
		return n
	}
	return productType
}

// RiceInventoryID derives the product-inventory id for a paddy variety,
// e.g. "Sudu Kakulu" -> "rice_sudu_kakulu".
func RiceInventoryID(paddyType string) string {
	return "rice_" + Slugify(paddyType)
}
