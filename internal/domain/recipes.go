package domain

// CraftingRecipes mapea un kebab terminado a sus insumos requeridos.
// Las claves de insumo son porciones (meat/bread/wrap) o ids de ingrediente;
// las cantidades son enteros >= 1.
var CraftingRecipes = map[string]map[string]int{
	"doner": {
		"meat": 1, "bread": 1,
		"onion": 1, "tomato": 1, "lettuce": 1, "sauce_garlic": 1,
	},
	"durum": {
		"meat": 1, "wrap": 1,
		"onion": 1, "tomato": 1, "sauce_harissa": 1,
	},
	"adana": {
		"meat": 2, "bread": 1,
		"spices": 1, "sauce_harissa": 1,
	},
	"shish": {
		"meat": 2, "bread": 1,
		"onion": 1, "spices": 1,
	},
	"kofte": {
		"meat": 2,
		"onion": 1, "spices": 1, "sauce_garlic": 1,
	},
}

// IsPortion devuelve true si el id de insumo es una porción y no un asset.
func IsPortion(id string) bool {
	switch Portion(id) {
	case PortionMeat, PortionBread, PortionWrap:
		return true
	}
	return false
}
