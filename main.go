package main

import (
	"log"
	"os"

	"github.com/urfave/cli/v2"
	"gorm.io/gorm"

	"github.com/talentstack/cvintake/config"
	"github.com/talentstack/cvintake/internal/database"
	"github.com/talentstack/cvintake/internal/logger"
	"github.com/talentstack/cvintake/internal/repository"
	"github.com/talentstack/cvintake/server"
	"github.com/talentstack/cvintake/services"
)

func main() {
	app := &cli.App{
		Name:  "cvintake",
		Usage: "CV intake pipeline: ingest application emails, extract and parse attachments, persist candidates",
		Commands: []*cli.Command{
			{
				Name:  "migrate",
				Usage: "Run database migrations",
				Action: func(c *cli.Context) error {
					_, db := mustInit()
					if err := repository.MigrateDB(db); err != nil {
						log.Fatalf("Database migration failed: %v", err)
					}
					log.Println("Database migration completed successfully")
					return nil
				},
			},
			{
				Name:  "server",
				Usage: "Start the application server",
				Action: func(c *cli.Context) error {
					cfg, db := mustInit()

					log.SetFlags(log.Ldate | log.Ltime | log.Lshortfile)
					log.Println("CV intake starting up...")

					srv, err := server.NewServer(cfg, db)
					if err != nil {
						log.Fatalf("Server setup failed: %v", err)
					}

					if err := srv.Run(); err != nil {
						log.Fatalf("Server startup failed: %v", err)
					}

					log.Println("Shutdown complete")
					return nil
				},
			},
			{
				Name:  "ingest",
				Usage: "Run one ingestion sweep over the inbox and exit",
				Action: func(c *cli.Context) error {
					cfg, db := mustInit()

					appLogger := logger.NewAppLogger(cfg.Logger)
					appLogger.InitLogger()

					repos := repository.InitRepositories(db)
					svcs, err := services.InitServices(c.Context, cfg, appLogger, repos)
					if err != nil {
						log.Fatalf("Service initialization failed: %v", err)
					}

					processed, err := svcs.IngestionService.RunOnce(c.Context)
					if err != nil {
						log.Fatalf("Ingestion sweep failed after %d messages: %v", processed, err)
					}
					log.Printf("Ingestion sweep done, %d messages handled", processed)
					return nil
				},
			},
		},
	}

	if err := app.Run(os.Args); err != nil {
		log.Fatal(err)
	}
}

func mustInit() (*config.Config, *gorm.DB) {
	cfg, err := config.InitConfig()
	if err != nil {
		log.Fatalf("Config initialization failed: %v", err)
	}
	if cfg == nil {
		log.Fatalf("config is empty")
	}

	db, err := database.InitDatabase(&database.DatabaseConfig{
		DBName:          cfg.DatabaseConfig.DBName,
		Host:            cfg.DatabaseConfig.Host,
		Port:            cfg.DatabaseConfig.Port,
		User:            cfg.DatabaseConfig.User,
		Password:        cfg.DatabaseConfig.Password,
		MaxConn:         cfg.DatabaseConfig.MaxConn,
		MaxIdleConn:     cfg.DatabaseConfig.MaxIdleConn,
		ConnMaxLifetime: cfg.DatabaseConfig.ConnMaxLifetime,
		LogLevel:        cfg.DatabaseConfig.LogLevel,
		SSLMode:         cfg.DatabaseConfig.SSLMode,
	})
	if err != nil {
		log.Fatalf("Database initialization failed: %v", err)
	}

	return cfg, db
}
