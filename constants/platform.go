package constants

import "strings"

// Platform is the marketplace a lot was purchased from or sold on.
type Platform string

const (
	EBay        Platform = "eBay"
	Poshmark    Platform = "Poshmark"
	Mercari     Platform = "Mercari"
	Depop       Platform = "Depop"
	Grailed     Platform = "Grailed"
	Etsy        Platform = "Etsy"
	Facebook    Platform = "Facebook Marketplace"
	OfferUp     Platform = "OfferUp"
	ThriftStore Platform = "Thrift Store"
	Other       Platform = "Other"
)

var allPlatforms = []Platform{
	EBay,
	Poshmark,
	Mercari,
	Depop,
	Grailed,
	Etsy,
	Facebook,
	OfferUp,
	ThriftStore,
	Other,
}

func Platforms() []string {
	result := make([]string, len(allPlatforms))
	for i, p := range allPlatforms {
		result[i] = string(p)
	}
	return result
}

// CanonicalizePlatform maps free-form user input onto a known platform.
// Returns Other and false when the input is empty or unrecognized.
func CanonicalizePlatform(input string) (Platform, bool) {
	if input == "" {
		return Other, false
	}

	normalized := strings.ToLower(strings.TrimSpace(input))

	synonyms := map[string]Platform{
		"ebay.com":    EBay,
		"posh":        Poshmark,
		"fb":          Facebook,
		"fbmp":        Facebook,
		"marketplace": Facebook,
		"goodwill":    ThriftStore,
		"thrift":      ThriftStore,
		"garage sale": Other,
		"yard sale":   Other,
	}

	if p, ok := synonyms[normalized]; ok {
		return p, true
	}

	for _, p := range allPlatforms {
		if normalized == strings.ToLower(string(p)) {
			return p, true
		}
	}

	return Other, false
}
