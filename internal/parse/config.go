package parse

// Config holds the vocabulary tables and thresholds the heuristic parser
// scores against. The zero value is not usable; start from DefaultConfig and
// override individual tables when tuning.
type Config struct {
	// Brands are known brand names. A case-insensitive substring hit is the
	// strongest single naming signal.
	Brands []string

	// ProductTerms are material/category/size words that suggest a line is a
	// product title rather than chrome or metadata.
	ProductTerms []string

	// RegionCodes are two-letter codes matched on word boundaries when
	// testing a line for address-likeness.
	RegionCodes []string

	// ChromeStrings are storefront navigation/UI fragments matched as
	// case-insensitive substrings. First hit excludes the line.
	ChromeStrings []string

	// MinScore is the acceptance threshold a candidate must reach to be
	// selected as the product name.
	MinScore int

	// MaxNameLen caps the accepted name length.
	MaxNameLen int
}

// DefaultConfig returns the built-in vocabulary tables. The slices are
// freshly allocated on each call so callers can append without aliasing.
func DefaultConfig() Config {
	return Config{
		Brands:       append([]string(nil), defaultBrands...),
		ProductTerms: append([]string(nil), defaultProductTerms...),
		RegionCodes:  append([]string(nil), defaultRegionCodes...),
		ChromeStrings: append(
			[]string(nil), defaultChromeStrings...),
		MinScore:   50,
		MaxNameLen: 100,
	}
}

var defaultBrands = []string{
	"nike", "adidas", "new balance", "under armour", "puma", "reebok",
	"asics", "brooks", "vans", "converse", "jordan",
	"cole haan", "timberland", "dr. martens", "clarks", "ugg", "birkenstock",
	"levi", "wrangler", "carhartt", "patagonia", "north face", "columbia",
	"ralph lauren", "tommy hilfiger", "calvin klein", "lacoste", "lululemon",
	"eddie bauer", "ll bean", "pendleton", "filson",
	"coach", "kate spade", "michael kors", "dooney", "vera bradley",
	"apple", "sony", "nintendo", "bose", "jbl", "garmin",
	"lego", "supreme", "stussy", "champion",
}

var defaultProductTerms = []string{
	"leather", "suede", "cotton", "wool", "cashmere", "denim", "canvas",
	"silk", "linen", "fleece", "flannel", "polyester", "nylon",
	"jacket", "coat", "parka", "vest", "hoodie", "sweater", "sweatshirt",
	"shirt", "tee", "polo", "blouse", "dress", "skirt",
	"jeans", "pants", "trousers", "shorts", "chinos", "joggers", "leggings",
	"sneaker", "shoe", "boot", "loafer", "sandal", "heel",
	"bag", "backpack", "tote", "purse", "wallet", "belt", "hat", "scarf",
	"watch", "vintage", "men's", "mens", "women's", "womens",
	"size", "small", "medium", "large",
}

// defaultRegionCodes are the US state and territory postal abbreviations.
var defaultRegionCodes = []string{
	"AL", "AK", "AZ", "AR", "CA", "CO", "CT", "DE", "FL", "GA",
	"HI", "ID", "IL", "IN", "IA", "KS", "KY", "LA", "ME", "MD",
	"MA", "MI", "MN", "MS", "MO", "MT", "NE", "NV", "NH", "NJ",
	"NM", "NY", "NC", "ND", "OH", "OK", "OR", "PA", "RI", "SC",
	"SD", "TN", "TX", "UT", "VT", "VA", "WA", "WV", "WI", "WY",
	"DC", "PR",
}

var defaultChromeStrings = []string{
	"sign in", "sign out", "log in", "log out", "create account",
	"your account", "my account", "your orders", "order history",
	"wish list", "saved items", "shopping cart", "view cart", "checkout",
	"add to cart", "buy it again", "buy now", "proceed to",
	"customer service", "help center", "contact us", "return policy",
	"free shipping", "free returns", "track package", "view order details",
	"search results", "browse categories", "all departments", "menu",
	"see more like this", "recommended for you", "sponsored",
	"thank you for your purchase", "leave feedback", "write a review",
}
