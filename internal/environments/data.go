package environments

var defaultRegistry = &Registry{
	envs: []Environment{
		{
			Key:  Dev,
			Name: "Development",
			markets: []marketEntry{
				{USA, MarketConfig{BaseURL: "https://www.usa-dev.thehorecastore.com", Currency: "USD", Region: "US"}},
				{UAE, MarketConfig{BaseURL: "https://www.uae-dev.thehorecastore.co", Currency: "AED", Region: "AE"}},
			},
		},
		{
			Key:  Test,
			Name: "Testing",
			markets: []marketEntry{
				{USA, MarketConfig{BaseURL: "https://development.d28qosi1cuigvb.amplifyapp.com", Currency: "USD", Region: "US"}},
				{UAE, MarketConfig{BaseURL: "https://uae.thehorecastore.co/", Currency: "AED", Region: "AE"}},
			},
		},
		{
			Key:  Prod,
			Name: "Production",
			markets: []marketEntry{
				{USA, MarketConfig{BaseURL: "https://www.thehorecastore.com", Currency: "USD", Region: "US"}},
				{UAE, MarketConfig{BaseURL: "https://horecastore.ae", Currency: "AED", Region: "AE"}},
			},
		},
	},
}

// Default returns the storefront registry.
func Default() *Registry {
	return defaultRegistry
}

// Get resolves env and market against the default registry.
func Get(env, market string) (Resolved, error) {
	return defaultRegistry.Get(env, market)
}

// BaseURL resolves the base URL against the default registry.
func BaseURL(env, market string) (string, error) {
	return defaultRegistry.BaseURL(env, market)
}

// Available lists the default registry's environments.
func Available() []string {
	return defaultRegistry.Available()
}

// AvailableMarkets lists env's markets in the default registry.
func AvailableMarkets(env string) ([]string, error) {
	return defaultRegistry.AvailableMarkets(env)
}
