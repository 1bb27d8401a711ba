package domain

// Category clasifica los assets del mercado.
type Category string

const (
	CategoryKebab      Category = "kebab"
	CategoryLivestock  Category = "livestock"
	CategoryIngredient Category = "ingredient"
	CategoryFiat       Category = "fiat"
)

// Portion es un recurso intermedio de crafting: se obtiene comprando
// ingredientes de rendimiento y se consume al ensamblar kebabs.
type Portion string

const (
	PortionMeat  Portion = "meat"
	PortionBread Portion = "bread"
	PortionWrap  Portion = "wrap"
)

// Portions lista los tres tipos de porción en orden estable.
var Portions = []Portion{PortionMeat, PortionBread, PortionWrap}

// AssetDefinition es la definición estática e inmutable de un asset.
type AssetDefinition struct {
	ID        string
	Name      string
	BasePrice float64 // precio de referencia en EUR, siempre > 0
	Icon      string
	Category  Category

	// Solo para ingredientes de rendimiento: comprar el asset acredita
	// YieldQuantity porciones de YieldPortion en vez de entrar al inventario.
	YieldQuantity int
	YieldPortion  Portion
}

// Yields devuelve true si comprar el asset acredita porciones.
func (a AssetDefinition) Yields() bool {
	return a.YieldQuantity > 0 && a.YieldPortion != ""
}

// KebabAssets es el listado base del mercado kebab. El primero (doner) es el
// asset canónico: su precio seed ancla el ratio del Oracle Sync y el índice
// del histórico.
var KebabAssets = []AssetDefinition{
	{ID: "doner", Name: "Döner Kebab", BasePrice: 5.00, Icon: "🌯", Category: CategoryKebab},
	{ID: "shish", Name: "Shish Kebab", BasePrice: 9.50, Icon: "🍢", Category: CategoryKebab},
	{ID: "adana", Name: "Adana Kebab", BasePrice: 10.50, Icon: "🌶️", Category: CategoryKebab},
	{ID: "durum", Name: "Dürüm (Wrap)", BasePrice: 6.50, Icon: "🌯", Category: CategoryKebab},
	{ID: "iskender", Name: "Iskender Kebab", BasePrice: 12.00, Icon: "🍱", Category: CategoryKebab},
	{ID: "lahmacun", Name: "Lahmacun", BasePrice: 4.50, Icon: "🍕", Category: CategoryKebab},
	{ID: "kofte", Name: "Köfte Bowl", BasePrice: 8.00, Icon: "🧆", Category: CategoryKebab},
	{ID: "premium_angus", Name: "Gourmet Angus", BasePrice: 18.00, Icon: "🥩", Category: CategoryKebab},
}

// IngredientAssets son las materias primas. Los sacos (cono de carne, pita,
// dürüm) son ingredientes de rendimiento: acreditan porciones.
var IngredientAssets = []AssetDefinition{
	{ID: "onion", Name: "Cipolla Oro", BasePrice: 0.50, Icon: "🧅", Category: CategoryIngredient},
	{ID: "tomato", Name: "Pomodoro Rosso", BasePrice: 0.80, Icon: "🍅", Category: CategoryIngredient},
	{ID: "sauce_garlic", Name: "Salsa Bianca", BasePrice: 1.20, Icon: "🍶", Category: CategoryIngredient},
	{ID: "sauce_harissa", Name: "Harissa Piccante", BasePrice: 1.50, Icon: "🔥", Category: CategoryIngredient},
	{ID: "meat_cone", Name: "Cono Carne (10kg)", BasePrice: 85.00, Icon: "🍖", Category: CategoryIngredient, YieldQuantity: 25, YieldPortion: PortionMeat},
	{ID: "pita_pack", Name: "Sacco Pita (x50)", BasePrice: 12.00, Icon: "🍞", Category: CategoryIngredient, YieldQuantity: 50, YieldPortion: PortionBread},
	{ID: "durum_pack", Name: "Sacco Dürüm (x40)", BasePrice: 14.00, Icon: "🫓", Category: CategoryIngredient, YieldQuantity: 40, YieldPortion: PortionWrap},
	{ID: "lettuce", Name: "Lattuga Bio", BasePrice: 0.60, Icon: "🥬", Category: CategoryIngredient},
	{ID: "spices", Name: "Spezie Segrete", BasePrice: 5.50, Icon: "🧪", Category: CategoryIngredient},
}

// LivestockAssets es el listado base de ganado. El tercero (dromedary) es el
// asset canónico del eje livestock para el Oracle Sync; el primero (majaheem)
// es el índice del histórico.
var LivestockAssets = []AssetDefinition{
	{ID: "majaheem", Name: "Al-Majaheem", BasePrice: 4800.00, Icon: "🐪", Category: CategoryLivestock},
	{ID: "wadhah", Name: "Al-Wadhah", BasePrice: 6500.00, Icon: "🐫", Category: CategoryLivestock},
	{ID: "dromedary", Name: "Dromedario", BasePrice: 2200.00, Icon: "🐪", Category: CategoryLivestock},
	{ID: "bactrian", Name: "Bactriano", BasePrice: 3500.00, Icon: "🐫", Category: CategoryLivestock},
	{ID: "somali", Name: "Somalo", BasePrice: 1400.00, Icon: "🐪", Category: CategoryLivestock},
	{ID: "mahari", Name: "Mahari Racing", BasePrice: 12000.00, Icon: "🏁", Category: CategoryLivestock},
}

// Black market: catálogo extendido con descuento, visible solo cuando el
// bazar está desbloqueado. Mismas reglas de pricing que el catálogo base.
var (
	BlackMarketKebabs = []AssetDefinition{
		{ID: "golden_doner", Name: "Döner d'Oro", BasePrice: 45.00, Icon: "👑", Category: CategoryKebab},
		{ID: "ghost_durum", Name: "Dürüm Fantasma", BasePrice: 3.00, Icon: "👻", Category: CategoryKebab},
		{ID: "tokyo_fusion", Name: "Tokyo Fusion", BasePrice: 22.00, Icon: "🗼", Category: CategoryKebab},
	}
	BlackMarketLivestock = []AssetDefinition{
		{ID: "shadow_mahari", Name: "Mahari Ombra", BasePrice: 8500.00, Icon: "🌑", Category: CategoryLivestock},
		{ID: "clone_dromedary", Name: "Dromedario Clonato", BasePrice: 900.00, Icon: "🧬", Category: CategoryLivestock},
	}
	BlackMarketIngredients = []AssetDefinition{
		{ID: "saffron_contraband", Name: "Zafferano di Contrabbando", BasePrice: 30.00, Icon: "🌸", Category: CategoryIngredient},
		{ID: "night_meat_cone", Name: "Cono Notturno (10kg)", BasePrice: 40.00, Icon: "🌙", Category: CategoryIngredient, YieldQuantity: 25, YieldPortion: PortionMeat},
	}
)

// Canonical anchor assets for oracle reconciliation (see engine.SyncWithReality).
const (
	CanonicalKebabID     = "doner"
	CanonicalLivestockID = "dromedary"
)

// AllAssets devuelve el catálogo completo de una categoría, incluyendo
// siempre los assets del black market: sus precios viven en MarketState
// desde el arranque aunque el bazar esté cerrado.
func AllAssets(cat Category) []AssetDefinition {
	switch cat {
	case CategoryKebab:
		return concat(KebabAssets, BlackMarketKebabs)
	case CategoryLivestock:
		return concat(LivestockAssets, BlackMarketLivestock)
	case CategoryIngredient:
		return concat(IngredientAssets, BlackMarketIngredients)
	default:
		return nil
	}
}

// VisibleAssets devuelve los assets de una categoría que el caller puede
// mostrar: el catálogo base, más la extensión si el bazar está abierto.
func VisibleAssets(cat Category, blackMarket bool) []AssetDefinition {
	if blackMarket {
		return AllAssets(cat)
	}
	switch cat {
	case CategoryKebab:
		return KebabAssets
	case CategoryLivestock:
		return LivestockAssets
	case CategoryIngredient:
		return IngredientAssets
	default:
		return nil
	}
}

// FindAsset busca un asset por id en todo el catálogo (black market incluido).
// Devuelve el asset y true si existe.
func FindAsset(id string) (AssetDefinition, bool) {
	for _, cat := range []Category{CategoryKebab, CategoryLivestock, CategoryIngredient} {
		for _, a := range AllAssets(cat) {
			if a.ID == id {
				return a, true
			}
		}
	}
	return AssetDefinition{}, false
}

func concat(base, extra []AssetDefinition) []AssetDefinition {
	out := make([]AssetDefinition, 0, len(base)+len(extra))
	out = append(out, base...)
	out = append(out, extra...)
	return out
}
