package main

import (
	"log"

	"benches/config"
	"benches/internal/db"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config load failed: %v", err)
	}

	gormDB, err := db.NewDB(cfg.DSN)
	if err != nil {
		log.Fatalf("db connect failed: %v", err)
	}
	if err := db.Migrate(gormDB); err != nil {
		log.Fatalf("migrate failed: %v", err)
	}

	admin, err := db.SeedSuperuser(gormDB, cfg.SuperuserEmail, cfg.SuperuserUsername, cfg.SuperuserPassword)
	if err != nil {
		log.Fatalf("seed superuser failed: %v", err)
	}
	if err := db.SeedBenches(gormDB, admin.ID); err != nil {
		log.Fatalf("seed benches failed: %v", err)
	}

	log.Printf("seeded superuser %s and demo benches", admin.Email)
}
