package tier

// Tier classifies how offers on an item are handled. Only standard-tier
// items are eligible for automatic acceptance; premium and white-glove
// items always go through staff review.
type Tier string

const (
	Standard   Tier = "standard"
	Premium    Tier = "premium"
	WhiteGlove Tier = "white_glove"
)

// Reserve-price thresholds for inferring a tier when none is set explicitly.
const (
	premiumReserve    = 5000
	whiteGloveReserve = 25000
)

func IsValid(s string) bool {
	switch Tier(s) {
	case Standard, Premium, WhiteGlove:
		return true
	default:
		return false
	}
}

// Resolve returns the effective tier for an item. An explicit tier always
// wins; otherwise the tier is inferred from the reserve price. Items
// without a reserve price resolve to standard.
func Resolve(explicit *string, reservePrice *float64) Tier {
	if explicit != nil && *explicit != "" {
		return Tier(*explicit)
	}
	if reservePrice != nil {
		if *reservePrice >= whiteGloveReserve {
			return WhiteGlove
		}
		if *reservePrice >= premiumReserve {
			return Premium
		}
	}
	return Standard
}

// MeetsReserve reports whether amount clears the reserve price. Items with
// no reserve price never meet it.
func MeetsReserve(reservePrice *float64, amount float64) bool {
	return reservePrice != nil && amount >= *reservePrice
}
