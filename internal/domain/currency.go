package domain

// ExchangeRates es la tabla estática de cambio contra el EUR (unidad de
// referencia). rate = unidades de la divisa por 1 EUR.
var ExchangeRates = map[string]float64{
	"EUR": 1,
	"USD": 1.08,
	"GBP": 0.83,
	"SAR": 4.05,
}

// CurrencySymbols mapea códigos (divisas y unidades simbólicas) a su símbolo.
var CurrencySymbols = map[string]string{
	"EUR":       "€",
	"USD":       "$",
	"GBP":       "£",
	"SAR":       "﷼",
	"KEBAB":     "🌯",
	"DROMEDARY": "🐪",
	"BACTRIAN":  "🐫",
}

// IsFiat devuelve true si el id corresponde a una divisa de la tabla.
func IsFiat(id string) bool {
	_, ok := ExchangeRates[id]
	return ok
}

// FiatRate devuelve el tipo de cambio de una divisa y true si existe.
func FiatRate(code string) (float64, bool) {
	r, ok := ExchangeRates[code]
	return r, ok
}
