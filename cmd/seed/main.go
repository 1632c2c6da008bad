package main

import (
	"context"
	"fmt"
	"log"
	"os"

	"github.com/joho/godotenv"
	"github.com/urfave/cli/v2"

	"github.com/smartstock/backend-go/internal/config"
	"github.com/smartstock/backend-go/internal/domain"
	"github.com/smartstock/backend-go/internal/repository/postgres"
)

func newOwnerFlag() *cli.StringFlag {
	return &cli.StringFlag{
		Name:     "owner",
		Usage:    "Owner identity the seeded rows belong to",
		Required: true,
		EnvVars:  []string{"SEED_OWNER_ID"},
	}
}

func main() {
	if err := godotenv.Load(".env"); err != nil {
		log.Printf("warning: could not load .env file: %v", err)
	}

	app := &cli.App{
		Name:  "seed",
		Usage: "Seed the database with initial data",
		Commands: []*cli.Command{
			{
				Name:   "demo",
				Usage:  "Seed the demo catalog and a default business profile",
				Flags:  []cli.Flag{newOwnerFlag()},
				Action: runDemoSeeder,
			},
			{
				Name:   "profile",
				Usage:  "Seed only the default business profile",
				Flags:  []cli.Flag{newOwnerFlag()},
				Action: runProfileSeeder,
			},
		},
	}

	if err := app.Run(os.Args); err != nil {
		log.Fatal(err)
	}
}

func runDemoSeeder(c *cli.Context) error {
	cfg := config.Load()
	db, err := postgres.NewDB(&cfg.Database)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	defer db.Close()

	owner := c.String("owner")
	products := postgres.NewProductRepository(db)
	for _, p := range domain.DemoInventory() {
		if err := products.Upsert(context.Background(), owner, p); err != nil {
			return fmt.Errorf("failed to seed product %s: %w", p.ID, err)
		}
		log.Printf("seeded product %s (%s)", p.ID, p.Name)
	}

	return seedProfile(c.Context, db, owner)
}

func runProfileSeeder(c *cli.Context) error {
	cfg := config.Load()
	db, err := postgres.NewDB(&cfg.Database)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	defer db.Close()

	return seedProfile(c.Context, db, c.String("owner"))
}

func seedProfile(ctx context.Context, db *postgres.DB, owner string) error {
	configs := postgres.NewBusinessConfigRepository(db)
	profile := domain.DefaultBusinessConfig(owner)
	if err := configs.Upsert(ctx, owner, profile); err != nil {
		return fmt.Errorf("failed to seed business profile: %w", err)
	}
	log.Printf("seeded business profile for %s", owner)
	return nil
}
