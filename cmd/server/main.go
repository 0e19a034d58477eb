package main

import (
	"fmt"
	"net/http"
	"os"

	"joshemfoods/config"
	httpapi "joshemfoods/internal/api/http"
	"joshemfoods/internal/service"
	"joshemfoods/internal/storage"

	log "github.com/sirupsen/logrus"
	"github.com/urfave/cli/v2"
)

func main() {
	app := &cli.App{
		Name:   "joshem-server",
		Usage:  "authoritative store for the JoShem Foods site",
		Action: runServe,
		Commands: []*cli.Command{
			{
				Name:   "serve",
				Usage:  "run the HTTP store service",
				Action: runServe,
			},
			{
				Name:   "seed",
				Usage:  "write the initial site document if none exists, then exit",
				Action: runSeed,
			},
		},
	}

	if err := app.Run(os.Args); err != nil {
		log.WithError(err).Fatal("Server exited")
	}
}

func runServe(c *cli.Context) error {
	cfg := config.MustLoad()

	driver, err := newDriver(cfg)
	if err != nil {
		return err
	}

	var publisher service.UpdatePublisher
	if writer := config.NewKafkaWriter(cfg); writer != nil {
		publisher = storage.NewKafkaPublisher(writer)
		log.Printf("Publishing collection updates to %s", cfg.KafkaTopic)
	}

	site := service.NewSiteService(driver, publisher)
	handler := httpapi.NewRouter(httpapi.NewHandler(site))

	log.Printf("JoShem store server starting on %s (storage: %s)", cfg.ServerAddr, cfg.StorageDriver)
	if err := http.ListenAndServe(cfg.ServerAddr, handler); err != nil {
		return err
	}
	return nil
}

func runSeed(c *cli.Context) error {
	cfg := config.MustLoad()

	driver, err := newDriver(cfg)
	if err != nil {
		return err
	}

	// Load seeds the store when it is empty.
	doc, err := driver.Load()
	if err != nil {
		return err
	}
	log.Printf("Store ready: %d menu items, %d testimonials, %d orders",
		len(doc.Menu), len(doc.Testimonials), len(doc.Orders))
	return nil
}

func newDriver(cfg config.Config) (storage.Driver, error) {
	switch cfg.StorageDriver {
	case "file":
		return storage.NewFileDriver(cfg.DataFile)
	case "postgres":
		return storage.NewPostgresDriver(config.MustOpenPostgres(cfg))
	default:
		return nil, fmt.Errorf("unknown storage driver %q", cfg.StorageDriver)
	}
}
