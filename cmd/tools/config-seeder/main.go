// cmd/tools/config-seeder/main.go

// config-seeder loads carrier configurations for a customer into the carrier
// config store. The production store is written by the carrier configuration
// screen; this tool covers local development, demos, and migrations.
package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"time"

	"rate-engine/internal/common/config"
	"rate-engine/internal/common/database"
	"rate-engine/internal/configstore"
	"rate-engine/internal/models"
)

func main() {
	seedCmd := flag.NewFlagSet("seed", flag.ExitOnError)
	listCmd := flag.NewFlagSet("list", flag.ExitOnError)

	// Seed command flags
	seedCustomer := seedCmd.String("customer", "", "Customer ID to seed configs for")
	seedFile := seedCmd.String("file", "", "Path to a JSON array of carrier configs")

	// List command flags
	listCustomer := listCmd.String("customer", "", "Customer ID to list configs for")

	if len(os.Args) < 2 {
		help()
		os.Exit(1)
	}

	switch os.Args[1] {
	case "seed":
		seedCmd.Parse(os.Args[2:])
		if *seedCustomer == "" || *seedFile == "" {
			fmt.Println("Error: customer and file are required for seed.")
			seedCmd.Usage()
			os.Exit(1)
		}
		if err := seed(*seedCustomer, *seedFile); err != nil {
			fmt.Printf("Error seeding configs: %v\n", err)
			os.Exit(1)
		}

	case "list":
		listCmd.Parse(os.Args[2:])
		if *listCustomer == "" {
			fmt.Println("Error: customer is required for list.")
			listCmd.Usage()
			os.Exit(1)
		}
		if err := list(*listCustomer); err != nil {
			fmt.Printf("Error listing configs: %v\n", err)
			os.Exit(1)
		}

	case "help":
		fallthrough
	default:
		help()
	}
}

// openStore builds the same carrier config store backend the server uses.
func openStore() (configstore.Store, func(), error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load config: %w", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	switch cfg.Store.CarrierConfigs {
	case "postgres":
		pg, err := database.NewPostgres(cfg.Database.Postgres)
		if err != nil {
			return nil, nil, fmt.Errorf("postgres connection failed: %w", err)
		}
		if err := pg.Ping(ctx); err != nil {
			pg.Close()
			return nil, nil, fmt.Errorf("postgres ping failed: %w", err)
		}
		return configstore.NewPostgresStore(pg.DB), func() { pg.Close() }, nil
	case "redis":
		redis, err := database.NewRedis(cfg.Database.Redis)
		if err != nil {
			return nil, nil, fmt.Errorf("redis connection failed: %w", err)
		}
		if err := redis.Ping(ctx); err != nil {
			redis.Close()
			return nil, nil, fmt.Errorf("redis ping failed: %w", err)
		}
		return configstore.NewRedisStore(redis.Client), func() { redis.Close() }, nil
	default:
		return nil, nil, fmt.Errorf("store.carrier_configs is %q; seeding requires redis or postgres", cfg.Store.CarrierConfigs)
	}
}

func seed(customerID, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read %s: %w", path, err)
	}

	var configs []models.CarrierConfig
	if err := json.Unmarshal(data, &configs); err != nil {
		return fmt.Errorf("failed to parse %s: %w", path, err)
	}
	if len(configs) == 0 {
		return fmt.Errorf("%s contains no carrier configs", path)
	}

	for i, c := range configs {
		if c.CarrierID == "" {
			return fmt.Errorf("config %d is missing carrierId", i)
		}
		if c.MarkupPercent < 0 {
			return fmt.Errorf("config %s has a negative markupPercent", c.CarrierID)
		}
	}

	store, closeStore, err := openStore()
	if err != nil {
		return err
	}
	defer closeStore()

	ctx := context.Background()
	for _, c := range configs {
		cfg := c
		if err := store.Set(ctx, customerID, cfg.CarrierID, &cfg); err != nil {
			return fmt.Errorf("failed to store config for %s: %w", cfg.CarrierID, err)
		}
		fmt.Printf("Seeded %s for customer %s (enabled=%v, markup=%.1f%%)\n",
			cfg.CarrierID, customerID, cfg.Enabled, cfg.MarkupPercent)
	}

	fmt.Printf("Seeded %d carrier configs.\n", len(configs))
	return nil
}

func list(customerID string) error {
	store, closeStore, err := openStore()
	if err != nil {
		return err
	}
	defer closeStore()

	configs, err := store.Get(context.Background(), customerID)
	if err != nil {
		return fmt.Errorf("failed to read configs: %w", err)
	}
	if len(configs) == 0 {
		fmt.Printf("No carrier configs for customer %s.\n", customerID)
		return nil
	}

	out, err := json.MarshalIndent(configs, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal configs: %w", err)
	}
	fmt.Println(string(out))
	return nil
}

func help() {
	fmt.Print(`
Usage: config-seeder <command> [flags]

Commands:
  seed  Load carrier configs for a customer from a JSON file
  list  Print the stored carrier configs for a customer
  help  Show this help message

Examples:
  config-seeder seed -customer cust-123 -file configs/carriers.json
  config-seeder list -customer cust-123

Use 'config-seeder <command> -h' for more information about a command.
` + "\n")
}
