// Package food holds the canteen catalog and meal-log records shared by the
// scoring, recommendation and badge packages, plus the menu health score.
package food

import "time"

// Canteen locations.
const (
	LocationCentral     = "central"
	LocationEngineering = "engineering"
	LocationScience     = "science"
	LocationDormitory   = "dormitory"
)

// Menu categories. Categories lists them in a fixed order; the "lazy" mood
// draws from it.
const (
	CategoryRice    = "rice"
	CategoryNoodle  = "noodle"
	CategorySoup    = "soup"
	CategorySnack   = "snack"
	CategoryDessert = "dessert"
)

var Categories = []string{CategoryRice, CategoryNoodle, CategorySoup, CategorySnack, CategoryDessert}

// Cooking methods.
const (
	CookingFry   = "fry"
	CookingStir  = "stir"
	CookingBoil  = "boil"
	CookingSteam = "steam"
	CookingGrill = "grill"
	CookingRaw   = "raw"
)

// Taste tags.
const (
	TasteSweet  = "sweet"
	TasteSalty  = "salty"
	TasteSour   = "sour"
	TasteSpicy  = "spicy"
	TasteSavory = "savory"
	TasteBland  = "bland"
)

// ValidLocations, ValidCategories, ValidCookingMethods and ValidTastes are the
// single source of truth for enum checks at the API and seed boundaries.
var (
	ValidLocations = map[string]bool{
		LocationCentral: true, LocationEngineering: true, LocationScience: true, LocationDormitory: true,
	}
	ValidCategories = map[string]bool{
		CategoryRice: true, CategoryNoodle: true, CategorySoup: true, CategorySnack: true, CategoryDessert: true,
	}
	ValidCookingMethods = map[string]bool{
		CookingFry: true, CookingStir: true, CookingBoil: true, CookingSteam: true, CookingGrill: true, CookingRaw: true,
	}
	ValidTastes = map[string]bool{
		TasteSweet: true, TasteSalty: true, TasteSour: true, TasteSpicy: true, TasteSavory: true, TasteBland: true,
	}
)

// Menu maps to the menus table. Nutrition facts, the cached health score and
// the price are nullable; nil means "unknown", never zero.
type Menu struct {
	ID            string     `json:"id"             db:"id"`
	Name          string     `json:"name"           db:"name"`
	Vendor        string     `json:"vendor"         db:"vendor"`
	Location      string     `json:"location"       db:"location"`
	Category      string     `json:"category"       db:"category"`
	Tastes        []string   `json:"tastes"         db:"tastes"`
	Vegetables    []string   `json:"vegetables"     db:"vegetables"`
	Proteins      []string   `json:"proteins"       db:"proteins"`
	CookingMethod string     `json:"cooking_method" db:"cooking_method"`
	Calories      *float64   `json:"calories"       db:"calories"`
	FatG          *float64   `json:"fat_g"          db:"fat_g"`
	SugarG        *float64   `json:"sugar_g"        db:"sugar_g"`
	SodiumMg      *float64   `json:"sodium_mg"      db:"sodium_mg"`
	HealthScore   *int       `json:"health_score"   db:"health_score"`
	Price         *float64   `json:"price"          db:"price"`
	CreatedAt     *time.Time `json:"created_at"     db:"created_at"`
	UpdatedAt     *time.Time `json:"updated_at"     db:"updated_at"`
}

// HasNutrition reports whether any nutrition fact is known.
func (m Menu) HasNutrition() bool {
	return m.Calories != nil || m.FatG != nil || m.SugarG != nil || m.SodiumMg != nil
}

// HasTaste reports whether t is one of the menu's taste tags.
func (m Menu) HasTaste(t string) bool {
	for _, mt := range m.Tastes {
		if mt == t {
			return true
		}
	}
	return false
}

// Score returns the cached health score when present and computes it otherwise.
func (m Menu) Score() int {
	if m.HealthScore != nil {
		return *m.HealthScore
	}
	return HealthScore(m)
}

// Index builds an id -> menu lookup. Later duplicates win.
func Index(menus []Menu) map[string]Menu {
	idx := make(map[string]Menu, len(menus))
	for _, m := range menus {
		idx[m.ID] = m
	}
	return idx
}
