package main

import (
	"goblog/internal/config"
	"goblog/internal/pkg"
	"goblog/internal/repository/inmemory"
	"goblog/internal/repository/mysql"
	"goblog/internal/repository/redis"
	"goblog/internal/router"
	"goblog/internal/service"

	"go.uber.org/zap"
)

func main() {
	logger, err := zap.NewProduction()
	if err != nil {
		panic(err)
	}
	defer logger.Sync()

	cfg, err := config.Load()
	if err != nil {
		logger.Fatal("config", zap.Error(err))
	}

	db, err := mysql.Open(cfg.MySQLDSN)
	if err != nil {
		logger.Fatal("mysql connect", zap.Error(err))
	}
	if err := mysql.AutoMigrate(db); err != nil {
		logger.Fatal("auto migrate", zap.Error(err))
	}

	var sessions service.SessionStore
	var flashes service.FlashStore
	if cfg.Redis.Addr != "" {
		client, err := redis.New(cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB)
		if err != nil {
			logger.Fatal("redis connect", zap.Error(err))
		}
		sessions = &redis.SessionRepository{Client: client}
		flashes = &redis.FlashRepository{Client: client}
	} else {
		store := inmemory.New()
		sessions, flashes = store, store
		logger.Warn("redis not configured, sessions and flashes held in memory")
	}

	var events *pkg.EventProducer
	if len(cfg.Kafka.Brokers) > 0 {
		events = pkg.NewEventProducer(pkg.KafkaConfig{Brokers: cfg.Kafka.Brokers, Topic: cfg.Kafka.Topic})
		defer events.Close()
	}

	mailer := pkg.NewSMTPMailer(pkg.SMTPConfig{
		Host:     cfg.SMTP.Host,
		Port:     cfg.SMTP.Port,
		Sender:   cfg.SMTP.Sender,
		Password: cfg.SMTP.Password,
	})

	users := service.NewUserService(&mysql.UserRepository{DB: db}, sessions, []byte(cfg.SessionSecret))
	posts := service.NewPostService(&mysql.PostRepository{DB: db}, events, logger)
	comments := service.NewCommentService(&mysql.CommentRepository{DB: db})
	contact := service.NewContactService(mailer, cfg.SMTP.Recipient)

	r := router.New(router.Deps{
		Users:        users,
		Posts:        posts,
		Comments:     comments,
		Contact:      contact,
		Flashes:      flashes,
		TemplateGlob: cfg.TemplateGlob,
	})

	logger.Info("starting server", zap.String("addr", cfg.Addr))
	if err := r.Run(cfg.Addr); err != nil {
		logger.Fatal("server", zap.Error(err))
	}
}
