package main

import (
	"context"
	"flag"
	"log/slog"
	"os"

	"github.com/poiesic/matchit"
	"github.com/poiesic/matchit/core"
)

// Fixture catalog around the default origin in north Bangalore.
// Coordinates matter for shops, events and jobs; the rest match on
// attributes alone.
var items = []*core.CatalogItem{
	{
		Collection:  core.CollectionShops,
		Attributes:  core.Attributes{"name": "Lakshmi General Stores", "type": "grocery", "category": "daily needs"},
		Latitude:    13.0456,
		Longitude:   77.5312,
		HasLocation: true,
	},
	{
		Collection:  core.CollectionShops,
		Attributes:  core.Attributes{"name": "Trendy Threads", "type": "clothing", "color": "red", "category": "fashion"},
		Latitude:    13.0621,
		Longitude:   77.5129,
		HasLocation: true,
	},
	{
		Collection:  core.CollectionShops,
		Attributes:  core.Attributes{"name": "Pedal Power", "type": "bicycle shop", "category": "sports"},
		Latitude:    12.9810,
		Longitude:   77.6040,
		HasLocation: true,
	},
	{
		Collection: core.CollectionItems,
		Attributes: core.Attributes{"name": "mountain bicycle", "type": "bicycle", "color": "blue", "condition": "used", "size": "medium"},
	},
	{
		Collection: core.CollectionItems,
		Attributes: core.Attributes{"name": "cotton shirt", "type": "shirt", "color": "red", "size": "xl", "material": "cotton"},
	},
	{
		Collection: core.CollectionItems,
		Attributes: core.Attributes{"name": "wooden dining table", "type": "table", "material": "teak", "condition": "new"},
	},
	{
		Collection:  core.CollectionEvents,
		Attributes:  core.Attributes{"name": "weekend farmers market", "type": "market", "category": "food"},
		Latitude:    13.0298,
		Longitude:   77.5401,
		HasLocation: true,
	},
	{
		Collection:  core.CollectionEvents,
		Attributes:  core.Attributes{"name": "open air music festival", "type": "concert", "category": "music"},
		Latitude:    12.9141,
		Longitude:   77.6411,
		HasLocation: true,
	},
	{
		Collection:  core.CollectionJobs,
		Attributes:  core.Attributes{"name": "delivery rider", "type": "delivery", "category": "logistics"},
		Latitude:    13.0505,
		Longitude:   77.5200,
		HasLocation: true,
	},
	{
		Collection:  core.CollectionJobs,
		Attributes:  core.Attributes{"name": "tailor for boutique", "type": "tailoring", "category": "fashion"},
		Latitude:    13.0112,
		Longitude:   77.5555,
		HasLocation: true,
	},
	{
		Collection: core.CollectionServices,
		Attributes: core.Attributes{"name": "plumbing repairs", "type": "plumber", "category": "home services"},
	},
	{
		Collection: core.CollectionServices,
		Attributes: core.Attributes{"name": "bicycle servicing at home", "type": "bicycle repair", "category": "sports"},
	},
}

func main() {
	dbPath := flag.String("db", "./catalog_db", "Path to BadgerDB catalog directory")
	flag.Parse()

	service, err := matchit.NewService(*dbPath)
	if err != nil {
		slog.Error("failed to open catalog", "err", err)
		os.Exit(1)
	}
	defer service.Close()

	stored, err := service.Repository().AddItems(context.Background(), items...)
	if err != nil {
		slog.Error("failed to seed catalog", "err", err)
		os.Exit(1)
	}

	slog.Info("catalog seeded", "items", len(stored), "path", *dbPath)
}
