package main

import (
	"context"
	"fmt"

	"anilhas-backend/internal/app"
	"anilhas-backend/internal/config"
	"anilhas-backend/internal/database"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("config load: " + err.Error())
	}

	fiberApp, db, rdb, err := app.CreateApp(cfg)
	if err != nil {
		panic("app create: " + err.Error())
	}

	// Verify connections before printing startup logs
	if db != nil {
		sqlDB, err := db.DB()
		if err != nil {
			panic("Supabase (Postgres): get DB: " + err.Error())
		}
		if err := sqlDB.Ping(); err != nil {
			panic("Supabase (Postgres) connection failed: " + err.Error())
		}
		if err := database.AutoMigrate(db); err != nil {
			panic("migrate: " + err.Error())
		}
		fmt.Println("Supabase (Postgres) connected")
	}
	if rdb != nil {
		if err := rdb.Ping(context.Background()).Err(); err != nil {
			panic("Redis connection failed: " + err.Error())
		}
		fmt.Println("Redis connected")
	}
	fmt.Printf("Server running at http://localhost:%s\n", cfg.Port)
	fmt.Printf("Health check: http://localhost:%s/health/json\n", cfg.Port)
	fmt.Println("---")

	if err := fiberApp.Listen(":" + cfg.Port); err != nil {
		panic(err)
	}
}
