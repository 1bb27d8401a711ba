package domain

// Factor es un ajuste multiplicativo del precio base a lo largo de una
// dimensión (proteína, formato, ubicación, género, uso). Las dimensiones son
// ortogonales y se combinan multiplicándose.
type Factor struct {
	ID         string
	Name       string
	Multiplier float64 // siempre >= 0
	Icon       string
}

// Dimension identifica una tabla de factores seleccionables por specs.
// La ubicación no es una dimensión: viaja como argumento propio del pricing
// (ver EffectivePrice) y sus tablas se consultan vía LocationsFor.
type Dimension string

const (
	DimProtein Dimension = "protein"
	DimFormat  Dimension = "format"
	DimGender  Dimension = "gender"
	DimUse     Dimension = "use"
)

// Dimensiones del mercado kebab.
var (
	KebabProtein = []Factor{
		{ID: "chicken", Name: "Pollo", Multiplier: 1.0, Icon: "🍗"},
		{ID: "beef", Name: "Manzo", Multiplier: 1.25, Icon: "🐄"},
		{ID: "lamb", Name: "Agnello", Multiplier: 1.6, Icon: "🐑"},
		{ID: "seitan", Name: "Seitan", Multiplier: 1.35, Icon: "🌿"},
	}
	KebabFormat = []Factor{
		{ID: "bread", Name: "Pita", Multiplier: 1.0, Icon: "🍞"},
		{ID: "wrap", Name: "Wrap", Multiplier: 1.2, Icon: "🌯"},
		{ID: "plate", Name: "Piatto", Multiplier: 1.5, Icon: "🍽️"},
	}
	KebabLocation = []Factor{
		{ID: "berlin", Name: "Berlino", Multiplier: 1.0, Icon: "🇩🇪"},
		{ID: "istanbul", Name: "Istanbul", Multiplier: 0.55, Icon: "🇹🇷"},
		{ID: "rome", Name: "Roma", Multiplier: 1.3, Icon: "🇮🇹"},
		{ID: "london", Name: "Londra", Multiplier: 1.75, Icon: "🇬🇧"},
		{ID: "ny", Name: "New York", Multiplier: 2.1, Icon: "🇺🇸"},
		{ID: "cairo", Name: "Il Cairo", Multiplier: 0.45, Icon: "🇪🇬"},
	}
)

// Dimensiones del mercado livestock.
var (
	CamelGender = []Factor{
		{ID: "male", Name: "Maschio", Multiplier: 1.0, Icon: "♂️"},
		{ID: "female", Name: "Femmina", Multiplier: 1.5, Icon: "♀️"},
	}
	CamelUse = []Factor{
		{ID: "work", Name: "Lavoro", Multiplier: 1.0, Icon: "📦"},
		{ID: "racing", Name: "Corsa", Multiplier: 4.5, Icon: "🏁"},
		{ID: "beauty", Name: "Bellezza", Multiplier: 6.0, Icon: "✨"},
	}
	CamelLocation = []Factor{
		{ID: "somalia", Name: "Somalia", Multiplier: 0.65, Icon: "🇸🇴"},
		{ID: "saudi", Name: "Riyadh", Multiplier: 1.4, Icon: "🇸🇦"},
		{ID: "uae", Name: "Dubai", Multiplier: 1.9, Icon: "🇦🇪"},
	}
)

// DimensionsFor devuelve las dimensiones no-ubicación aplicables a una
// categoría. Los ingredientes no tienen dimensiones propias: solo les aplica
// la ubicación, de forma uniforme, cuando el caller la suministra.
func DimensionsFor(cat Category) map[Dimension][]Factor {
	switch cat {
	case CategoryKebab:
		return map[Dimension][]Factor{DimProtein: KebabProtein, DimFormat: KebabFormat}
	case CategoryLivestock:
		return map[Dimension][]Factor{DimGender: CamelGender, DimUse: CamelUse}
	default:
		return nil
	}
}

// LocationsFor devuelve la tabla de ubicaciones de una categoría. Los
// ingredientes comparten las ubicaciones kebab (se compran en el mismo sitio).
func LocationsFor(cat Category) []Factor {
	if cat == CategoryLivestock {
		return CamelLocation
	}
	return KebabLocation
}

// FindFactor busca un factor por id dentro de una tabla.
func FindFactor(table []Factor, id string) (Factor, bool) {
	for _, f := range table {
		if f.ID == id {
			return f, true
		}
	}
	return Factor{}, false
}
