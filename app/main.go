package main

import (
	"flag"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/sushihentaime/bloglist/internal/blogservice"
	"github.com/sushihentaime/bloglist/internal/common"
	"github.com/sushihentaime/bloglist/internal/mailservice"
	"github.com/sushihentaime/bloglist/internal/userservice"
)

type application struct {
	config      *Config
	logger      *slog.Logger
	metrics     *metrics
	userService *userservice.UserService
	blogService *blogservice.BlogService
	mailService *mailservice.MailService
}

func main() {
	configPath := flag.String("config", ".env", "path to the env file")
	flag.Parse()

	logger := slog.New(slog.NewTextHandler(os.Stdout, nil))

	err := run(*configPath, logger)
	if err != nil {
		logger.Error("bloglist stopped", slog.String("error", err.Error()))
		os.Exit(1)
	}
}

func run(configPath string, logger *slog.Logger) error {
	cfg, err := loadConfig(configPath)
	if err != nil {
		return fmt.Errorf("load configuration: %w", err)
	}

	dsn, err := common.MigrationDSN(cfg.MongoURI, cfg.MongoDB)
	if err != nil {
		return err
	}

	err = common.MigrateDB(cfg.MigrationsPath, dsn)
	if err != nil {
		return fmt.Errorf("run migrations: %w", err)
	}

	db, err := common.NewDB(cfg.MongoURI, cfg.MongoDB, 100, 15*time.Minute)
	if err != nil {
		return fmt.Errorf("connect to the database: %w", err)
	}
	defer common.CloseDB(db)

	logger.Info("database connection established", slog.String("db", cfg.MongoDB))

	cache := common.NewCache(cfg.CacheTTL, 2*cfg.CacheTTL)

	// the broker is optional; without it no welcome emails are sent
	var (
		producer    common.MessageProducer
		mailService *mailservice.MailService
	)

	if uri := cfg.brokerURI(); uri != "" {
		broker, err := common.NewMessageBroker(uri)
		if err != nil {
			return fmt.Errorf("connect to the message broker: %w", err)
		}
		defer broker.Close()

		err = common.SetupUserExchange(broker)
		if err != nil {
			return fmt.Errorf("setup the user exchange: %w", err)
		}

		producer = broker

		if cfg.MailHost != "" {
			mailService = mailservice.NewMailService(broker, cfg.MailHost, cfg.MailUser, cfg.MailPassword, cfg.MailSender, cfg.MailPort, logger)

			err = mailService.SendWelcomeEmail()
			if err != nil {
				return fmt.Errorf("start the mail consumer: %w", err)
			}
		}
	}

	userService := userservice.NewUserService(userservice.NewUserModel(db), producer, cache, userservice.NewTokenMaker(cfg.JWTSecret, cfg.JWTTTL))

	app := &application{
		config:      cfg,
		logger:      logger,
		metrics:     newMetrics(),
		userService: userService,
		blogService: blogservice.NewBlogService(blogservice.NewBlogModel(db), userService, cache),
		mailService: mailService,
	}

	return app.serve()
}
