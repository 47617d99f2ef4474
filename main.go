package main

import (
	"log"

	"storefront-service/config"
	"storefront-service/consumers"
	"storefront-service/database"
	"storefront-service/mailer"
	"storefront-service/rabbitmq"
	"storefront-service/routes"
	"storefront-service/storage"
)

func main() {
	cfg := config.LoadConfig()

	db, err := database.Connect(cfg)
	if err != nil {
		log.Fatalf("Database initialization failed: %v", err)
	}
	defer database.Close(db)

	uploads, err := storage.NewLocal(cfg.UploadDir, cfg.UploadURLPrefix)
	if err != nil {
		log.Fatalf("Upload storage initialization failed: %v", err)
	}

	smtp := mailer.NewSMTPMailer(cfg)

	deps := routes.Dependencies{
		DB:      db,
		Storage: uploads,
		Mailer:  smtp,
	}

	if cfg.RabbitMQURL != "" {
		rmq, err := rabbitmq.NewRabbitMQ(cfg)
		if err != nil {
			log.Fatalf("RabbitMQ initialization failed: %v", err)
		}
		defer rmq.Close()

		if err := rmq.SetupQueues(); err != nil {
			log.Fatalf("Failed to setup RabbitMQ queues: %v", err)
		}

		if err := consumers.NewOrderConsumer(db, smtp).Start(rmq.Channel, cfg); err != nil {
			log.Fatalf("Failed to start order consumer: %v", err)
		}

		deps.Events = rmq
	} else {
		log.Printf("RABBITMQ_URL not set, order events disabled")
	}

	router := routes.NewRouter(cfg, deps)

	addr := ":" + cfg.Port
	log.Printf("Storefront service starting on port %s", addr)
	if err := router.Run(addr); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}
