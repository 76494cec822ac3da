package migrations

import (
	"context"
	"fmt"

	"catering_manager/internal/database"
	"catering_manager/internal/services"

	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

// RunMigrations creates the kv_records table used by the postgres store driver.
func RunMigrations(db *gorm.DB, logger *logrus.Logger) error {
	logger.Info("running database migrations")
	if err := database.AutoMigrate(db); err != nil {
		return fmt.Errorf("failed to migrate kv_records: %w", err)
	}
	logger.Info("database migrations completed")
	return nil
}

type demoMenu struct {
	name  string
	price string
	items []string
}

var (
	demoItems = []string{
		"Idli", "Vada", "Pongal", "Coconut Chutney", "Sambar",
		"Paneer Tikka", "Veg Biryani", "Curd Rice", "Gulab Jamun", "Payasam",
	}
	demoMenus = []demoMenu{
		{name: "South Indian Breakfast", price: "120", items: []string{"Idli", "Vada", "Pongal", "Coconut Chutney", "Sambar"}},
		{name: "Veg Combo", price: "250", items: []string{"Paneer Tikka", "Veg Biryani", "Curd Rice", "Gulab Jamun"}},
		{name: "Wedding Feast", price: "450", items: []string{"Vada", "Paneer Tikka", "Veg Biryani", "Sambar", "Curd Rice", "Payasam", "Gulab Jamun"}},
	}
)

// SeedCatalog adds a starter set of items and menus. It does nothing when the
// catalog already holds items or menus.
func SeedCatalog(ctx context.Context, catalog services.CatalogService, menus services.MenuService, logger *logrus.Logger) error {
	if len(catalog.ListItems()) > 0 || len(menus.ListMenus()) > 0 {
		logger.Info("catalog already populated, skipping demo data")
		return nil
	}

	ids := make(map[string]string, len(demoItems))
	for _, name := range demoItems {
		item, err := catalog.AddItem(ctx, name)
		if err != nil {
			return fmt.Errorf("failed to seed item %s: %w", name, err)
		}
		ids[name] = item.ID
	}

	for _, dm := range demoMenus {
		refs := make([]string, 0, len(dm.items))
		for _, name := range dm.items {
			refs = append(refs, ids[name])
		}
		if _, err := menus.SaveMenu(ctx, services.MenuInput{Name: dm.name, Price: dm.price, Items: refs}); err != nil {
			return fmt.Errorf("failed to seed menu %s: %w", dm.name, err)
		}
	}

	logger.WithFields(logrus.Fields{
		"items": len(demoItems),
		"menus": len(demoMenus),
	}).Info("demo catalog created")
	return nil
}
