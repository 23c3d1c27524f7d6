package domain

// TokenState tells whether a token's metadata has been resolved
type TokenState string

const (
	TokenStatePlaceholder TokenState = "placeholder"
	TokenStateResolved    TokenState = "resolved"
)

// Token is the metadata for one contract on one network.
// A placeholder token exists as soon as a balance references the contract and is
// upgraded in place to a resolved token once metadata is fetched.
type Token struct {
	Contract    string
	NetworkID   NetworkID
	Symbol      string
	Name        string
	Decimals    int
	Logo        *string
	PriceFeedID *string
	State       TokenState
}

// PlaceholderToken returns the placeholder shape for a contract
func PlaceholderToken(contract string, networkID NetworkID) Token {
	return Token{
		Contract:  NormalizeContract(contract),
		NetworkID: networkID,
		Symbol:    PLACEHOLDER_SYMBOL,
		Name:      PLACEHOLDER_NAME,
		Decimals:  PLACEHOLDER_DECIMALS,
		State:     TokenStatePlaceholder,
	}
}

// TokenMetadata is resolved metadata as reported by the price provider
type TokenMetadata struct {
	PriceFeedID *string
	Symbol      string
	Name        string
	Decimals    int
	Logo        *string
}

// ResolvedToken returns the resolved token for a contract
func ResolvedToken(contract string, networkID NetworkID, meta TokenMetadata) Token {
	return Token{
		Contract:    NormalizeContract(contract),
		NetworkID:   networkID,
		Symbol:      meta.Symbol,
		Name:        meta.Name,
		Decimals:    meta.Decimals,
		Logo:        meta.Logo,
		PriceFeedID: meta.PriceFeedID,
		State:       TokenStateResolved,
	}
}

// IsPlaceholder reports whether metadata is still unresolved
func (t Token) IsPlaceholder() bool {
	return t.State != TokenStateResolved
}

// HasPriceFeed reports whether the token can be priced
func (t Token) HasPriceFeed() bool {
	return t.PriceFeedID != nil && *t.PriceFeedID != ""
}
