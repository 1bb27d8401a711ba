package domain

// Specs es la selección actual de factores por dimensión (origen UI).
// Una dimensión ausente equivale a multiplicador 1.0.
type Specs map[Dimension]Factor

// EffectivePrice calcula el precio efectivo de un asset a partir de su precio
// base. Función pura: sin estado, sin efectos, segura a cualquier frecuencia.
//
//	precio = base × locación × Π(dimensiones aplicables de specs)
//
// La locación aplica de forma uniforme a todas las categorías cuando viene
// informada (loc.ID != ""). Las demás dimensiones solo aplican a kebab y
// livestock; los ingredientes las ignoran.
func EffectivePrice(base float64, cat Category, loc Factor, specs Specs) float64 {
	price := base
	if loc.ID != "" {
		price *= loc.Multiplier
	}
	for dim := range DimensionsFor(cat) {
		if f, ok := specs[dim]; ok && f.ID != "" {
			price *= f.Multiplier
		}
	}
	return price
}

// InverseFiat devuelve el precio en EUR de una unidad de la divisa dada
// (la inversa de su tipo de cambio fijo). Devuelve 0 si la divisa no existe
// o su rate es 0 — nunca propaga Inf.
func InverseFiat(code string) float64 {
	rate, ok := FiatRate(code)
	if !ok || rate == 0 {
		return 0
	}
	return 1 / rate
}
