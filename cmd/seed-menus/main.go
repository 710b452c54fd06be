// CLI tool to load the menu catalog from a JSON file. Each menu is validated,
// its health score computed and cached, and the row upserted by id. The whole
// file is applied in one transaction.
// Usage: go run ./cmd/seed-menus -file menus.json
package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"os"

	"github.com/jackc/pgx/v5"
	"github.com/joho/godotenv"

	"lg/canteen-go-api/internal/food"
)

func main() {
	path := flag.String("file", "menus.json", "JSON array of menus")
	dryRun := flag.Bool("dry-run", false, "validate and print scores without writing")
	flag.Parse()

	raw, err := os.ReadFile(*path)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error reading %s: %v\n", *path, err)
		os.Exit(1)
	}
	menus, err := parseMenus(raw)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Invalid catalog: %v\n", err)
		os.Exit(1)
	}

	if *dryRun {
		for _, m := range menus {
			fmt.Printf("  %-24s %3d %s\n", m.ID, *m.HealthScore, food.ScoreLabel(*m.HealthScore).EN)
		}
		fmt.Printf("\n%d menu(s) valid.\n", len(menus))
		return
	}

	if err := godotenv.Load(); err != nil {
		fmt.Fprintf(os.Stderr, "Error loading .env: %v\n", err)
		os.Exit(1)
	}

	ctx := context.Background()
	conn, err := pgx.Connect(ctx, os.Getenv("DB_URL"))
	if err != nil {
		fmt.Fprintf(os.Stderr, "Unable to connect to database: %v\n", err)
		os.Exit(1)
	}
	defer conn.Close(ctx)

	if err := upsertMenus(ctx, conn, menus); err != nil {
		fmt.Fprintf(os.Stderr, "Error seeding menus: %v\n", err)
		os.Exit(1)
	}
	fmt.Printf("%d menu(s) upserted.\n", len(menus))
}

// parseMenus decodes and validates a catalog file and caches each menu's
// health score. Ids must be unique and enum fields known.
func parseMenus(raw []byte) ([]food.Menu, error) {
	var menus []food.Menu
	if err := json.Unmarshal(raw, &menus); err != nil {
		return nil, fmt.Errorf("decode: %w", err)
	}

	seen := make(map[string]bool, len(menus))
	for i := range menus {
		m := &menus[i]
		if m.ID == "" || m.Name == "" {
			return nil, fmt.Errorf("menu %d: id and name are required", i)
		}
		if seen[m.ID] {
			return nil, fmt.Errorf("menu %s: duplicate id", m.ID)
		}
		seen[m.ID] = true

		if !food.ValidLocations[m.Location] {
			return nil, fmt.Errorf("menu %s: unknown location %q", m.ID, m.Location)
		}
		if !food.ValidCategories[m.Category] {
			return nil, fmt.Errorf("menu %s: unknown category %q", m.ID, m.Category)
		}
		if !food.ValidCookingMethods[m.CookingMethod] {
			return nil, fmt.Errorf("menu %s: unknown cooking method %q", m.ID, m.CookingMethod)
		}
		for _, t := range m.Tastes {
			if !food.ValidTastes[t] {
				return nil, fmt.Errorf("menu %s: unknown taste %q", m.ID, t)
			}
		}
		if m.Tastes == nil {
			m.Tastes = []string{}
		}
		if m.Vegetables == nil {
			m.Vegetables = []string{}
		}
		if m.Proteins == nil {
			m.Proteins = []string{}
		}

		// The file's own health_score is ignored; the cached value always
		// matches the scoring rules.
		score := food.HealthScore(*m)
		m.HealthScore = &score
	}
	return menus, nil
}

func upsertMenus(ctx context.Context, conn *pgx.Conn, menus []food.Menu) error {
	tx, err := conn.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	for _, m := range menus {
		_, err := tx.Exec(ctx,
			`INSERT INTO menus (id, name, vendor, location, category, tastes, vegetables, proteins,
				cooking_method, calories, fat_g, sugar_g, sodium_mg, health_score, price)
			 VALUES (@id, @name, @vendor, @location, @category, @tastes, @vegetables, @proteins,
				@cookingMethod, @calories, @fatG, @sugarG, @sodiumMg, @healthScore, @price)
			 ON CONFLICT (id) DO UPDATE SET
				name = EXCLUDED.name, vendor = EXCLUDED.vendor, location = EXCLUDED.location,
				category = EXCLUDED.category, tastes = EXCLUDED.tastes, vegetables = EXCLUDED.vegetables,
				proteins = EXCLUDED.proteins, cooking_method = EXCLUDED.cooking_method,
				calories = EXCLUDED.calories, fat_g = EXCLUDED.fat_g, sugar_g = EXCLUDED.sugar_g,
				sodium_mg = EXCLUDED.sodium_mg, health_score = EXCLUDED.health_score,
				price = EXCLUDED.price, updated_at = now()`,
			pgx.NamedArgs{
				"id": m.ID, "name": m.Name, "vendor": m.Vendor, "location": m.Location,
				"category": m.Category, "tastes": m.Tastes, "vegetables": m.Vegetables,
				"proteins": m.Proteins, "cookingMethod": m.CookingMethod,
				"calories": m.Calories, "fatG": m.FatG, "sugarG": m.SugarG,
				"sodiumMg": m.SodiumMg, "healthScore": m.HealthScore, "price": m.Price,
			})
		if err != nil {
			return fmt.Errorf("menu %s: %w", m.ID, err)
		}
		fmt.Printf("  upserted: %s (score %d)\n", m.ID, *m.HealthScore)
	}
	return tx.Commit(ctx)
}
