package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestEffectivePrice_BaseOnly(t *testing.T) {
	assert.InDelta(t, 5.0, EffectivePrice(5.0, CategoryKebab, Factor{}, nil), 0.0001)
}

func TestEffectivePrice_LocationApplies(t *testing.T) {
	berlin, _ := FindFactor(KebabLocation, "berlin")
	istanbul, _ := FindFactor(KebabLocation, "istanbul")

	assert.InDelta(t, 5.0, EffectivePrice(5.0, CategoryKebab, berlin, nil), 0.0001)
	assert.InDelta(t, 2.75, EffectivePrice(5.0, CategoryKebab, istanbul, nil), 0.0001)
}

func TestEffectivePrice_DimensionsCombineMultiplicatively(t *testing.T) {
	lamb, _ := FindFactor(KebabProtein, "lamb")
	plate, _ := FindFactor(KebabFormat, "plate")
	rome, _ := FindFactor(KebabLocation, "rome")

	specs := Specs{DimProtein: lamb, DimFormat: plate}
	// 5.00 × 1.3 × 1.6 × 1.5
	assert.InDelta(t, 15.6, EffectivePrice(5.0, CategoryKebab, rome, specs), 0.0001)
}

func TestEffectivePrice_IngredientsIgnoreNonLocationSpecs(t *testing.T) {
	lamb, _ := FindFactor(KebabProtein, "lamb")
	rome, _ := FindFactor(KebabLocation, "rome")

	specs := Specs{DimProtein: lamb}
	// solo locación: 0.50 × 1.3
	assert.InDelta(t, 0.65, EffectivePrice(0.50, CategoryIngredient, rome, specs), 0.0001)
}

func TestEffectivePrice_LivestockSpecs(t *testing.T) {
	female, _ := FindFactor(CamelGender, "female")
	beauty, _ := FindFactor(CamelUse, "beauty")
	dubai, _ := FindFactor(CamelLocation, "uae")

	specs := Specs{DimGender: female, DimUse: beauty}
	// 2200 × 1.9 × 1.5 × 6.0
	assert.InDelta(t, 37620.0, EffectivePrice(2200, CategoryLivestock, dubai, specs), 0.01)
}

func TestEffectivePrice_PositiveWhenInputsPositive(t *testing.T) {
	for _, cat := range []Category{CategoryKebab, CategoryLivestock, CategoryIngredient} {
		for _, a := range AllAssets(cat) {
			assert.Greater(t, EffectivePrice(a.BasePrice, cat, Factor{}, nil), 0.0, a.ID)
		}
	}
}

func TestInverseFiat(t *testing.T) {
	assert.InDelta(t, 1.0, InverseFiat("EUR"), 0.0001)
	assert.InDelta(t, 1/1.08, InverseFiat("USD"), 0.0001)
	assert.Equal(t, 0.0, InverseFiat("XXX"))
}

func TestFindAsset_AcrossCatalogs(t *testing.T) {
	doner, ok := FindAsset("doner")
	assert.True(t, ok)
	assert.Equal(t, CategoryKebab, doner.Category)
	assert.InDelta(t, 5.00, doner.BasePrice, 0.0001)

	ghost, ok := FindAsset("ghost_durum")
	assert.True(t, ok)
	assert.Equal(t, CategoryKebab, ghost.Category)

	_, ok = FindAsset("nope")
	assert.False(t, ok)
}

func TestVisibleAssets_BlackMarketGate(t *testing.T) {
	base := VisibleAssets(CategoryKebab, false)
	full := VisibleAssets(CategoryKebab, true)
	assert.Len(t, base, len(KebabAssets))
	assert.Len(t, full, len(KebabAssets)+len(BlackMarketKebabs))
}

func TestLocationsFor(t *testing.T) {
	// Kebab e ingredientes comparten ubicaciones; livestock tiene las suyas.
	assert.Equal(t, KebabLocation, LocationsFor(CategoryKebab))
	assert.Equal(t, KebabLocation, LocationsFor(CategoryIngredient))
	assert.Equal(t, CamelLocation, LocationsFor(CategoryLivestock))
}

func TestYieldIngredients(t *testing.T) {
	cone, _ := FindAsset("meat_cone")
	assert.True(t, cone.Yields())
	assert.Equal(t, 25, cone.YieldQuantity)
	assert.Equal(t, PortionMeat, cone.YieldPortion)

	onion, _ := FindAsset("onion")
	assert.False(t, onion.Yields())
}

func TestCraftingRecipes_InputsExist(t *testing.T) {
	for kebabID, recipe := range CraftingRecipes {
		_, ok := FindAsset(kebabID)
		assert.True(t, ok, kebabID)
		for input, qty := range recipe {
			assert.GreaterOrEqual(t, qty, 1, input)
			if !IsPortion(input) {
				_, ok := FindAsset(input)
				assert.True(t, ok, input)
			}
		}
	}
}
