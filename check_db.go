package main

import (
	"fmt"
	"log"

	"github.com/Synapsr/Louez-sub011/internal/app/ds"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func main() {
	dsn := "host=localhost user=postgres password=password dbname=louez_db port=5432 sslmode=disable TimeZone=Europe/Paris"
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		log.Fatal("Failed to connect to database:", err)
	}

	var products []ds.Product
	err = db.Find(&products).Error
	if err != nil {
		log.Fatal("Failed to query products:", err)
	}

	fmt.Printf("Found %d products:\n", len(products))
	for _, p := range products {
		fmt.Printf("ID: %d, StoreID: %d, Name: %s, Mode: %s, BaseRate: %.2f, Stock: %d, Deleted: %t\n",
			p.ID, p.StoreID, p.Name, p.PricingMode, p.BaseRate, p.Stock, p.IsDeleted)
	}

	var tiers []ds.PricingTier
	err = db.Find(&tiers).Error
	if err != nil {
		log.Fatal("Failed to query pricing tiers:", err)
	}

	fmt.Printf("\nFound %d pricing tiers:\n", len(tiers))
	for _, t := range tiers {
		fmt.Printf("ID: %d, ProductID: %d, MinPeriods: %d, Discount: %.1f%%\n",
			t.ID, t.ProductID, t.MinPeriods, t.DiscountPercent)
	}
}
