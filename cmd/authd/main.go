// Command authd serves the credential lifecycle API for the course catalog.
package main

import (
	"context"
	"log"
	"net/http"
	"time"

	"github.com/redis/go-redis/v9"

	courseauth "github.com/coursebook/courseauth"
	"github.com/coursebook/courseauth/internal/config"
	"github.com/coursebook/courseauth/internal/httpapi"
	"github.com/coursebook/courseauth/mailer"
)

func main() {
	cfg := config.Load()

	if cfg.JWTSecret == "" {
		log.Fatal("courseauth: JWT_SECRET is required")
	}

	rdb := redis.NewClient(&redis.Options{
		Addr:     cfg.RedisAddr,
		Password: cfg.RedisPass,
		DB:       cfg.RedisDB,
	})

	pingCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := rdb.Ping(pingCtx).Err(); err != nil {
		log.Fatalf("courseauth: redis unreachable at %s: %v", cfg.RedisAddr, err)
	}

	engineCfg := courseauth.DefaultConfig()
	engineCfg.OTP.Digits = cfg.OTPDigits
	engineCfg.OTP.TTL = cfg.OTPTTL
	engineCfg.Token.TTL = cfg.TokenTTL
	engineCfg.Token.PrivateKey = []byte(cfg.JWTSecret)
	if cfg.TestAccountEnabled {
		engineCfg.TestAccount = courseauth.TestAccountConfig{
			Enabled:  true,
			Name:     cfg.TestAccountName,
			Email:    cfg.TestAccountEmail,
			Password: cfg.TestAccountPassword,
		}
	}

	var notifier courseauth.Notifier
	if cfg.EmailHost != "" {
		notifier = mailer.NewSender(mailer.Config{
			Host:     cfg.EmailHost,
			Port:     cfg.EmailPort,
			Username: cfg.EmailUser,
			Password: cfg.EmailPass,
			From:     cfg.EmailFrom,
			CodeTTL:  cfg.OTPTTL,
		})
	} else {
		log.Println("courseauth: EMAIL_HOST not set, code delivery disabled")
	}

	engine, err := courseauth.New().
		WithConfig(engineCfg).
		WithStore(courseauth.NewRedisAccountStore(rdb)).
		WithNotifier(notifier).
		Build()
	if err != nil {
		log.Fatalf("courseauth: engine init failed: %v", err)
	}

	log.Printf("courseauth: listening on %s", cfg.HTTPAddr)
	if err := http.ListenAndServe(cfg.HTTPAddr, httpapi.NewRouter(engine)); err != nil {
		log.Fatalf("courseauth: server stopped: %v", err)
	}
}
