package domain

const (
	// Placeholder token shape written before metadata resolves
	PLACEHOLDER_SYMBOL   = "UNK"
	PLACEHOLDER_NAME     = "Unknown"
	PLACEHOLDER_DECIMALS = 18

	// Defaults applied to partially populated provider metadata
	DEFAULT_TOKEN_SYMBOL = "TKN"
	DEFAULT_TOKEN_NAME   = "Unknown"

	// Currency prices are quoted in
	CURRENCY_USD = "usd"

	// DEFAULT_MAX_TOKENS caps the balances stored per network per ingest call
	DEFAULT_MAX_TOKENS = 200
)
