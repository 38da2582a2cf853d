package main

import (
	"context"
	"errors"
	"log"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/fitapp/fitapp/internal/api"
	"github.com/fitapp/fitapp/internal/cli"
	"github.com/fitapp/fitapp/internal/config"
	"github.com/fitapp/fitapp/internal/db"
	"github.com/fitapp/fitapp/internal/i18n"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/compress"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
)

const usage = "usage: fitapp [reset-password <email> [--prompt]]"

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config init failed: %v", err)
	}
	time.Local = cfg.Location

	if len(os.Args) > 1 {
		if err := runCommand(cfg, os.Args[1:]); err != nil {
			log.Fatal(err)
		}
		return
	}

	if err := serve(cfg); err != nil {
		log.Fatalf("server exited: %v", err)
	}
}

func runCommand(cfg config.Config, args []string) error {
	switch args[0] {
	case "reset-password":
		email, prompt, err := parseResetPasswordArgs(args[1:])
		if err != nil {
			return err
		}
		return cli.RunResetPasswordCommand(email, cli.ResetPasswordOptions{
			Driver:       cfg.DBDriver,
			Source:       cfg.DatabaseSource(),
			PasswordCost: cfg.BcryptCost,
			Prompt:       prompt,
		})
	default:
		return errors.New(usage)
	}
}

func parseResetPasswordArgs(args []string) (string, bool, error) {
	email := ""
	prompt := false
	for _, arg := range args {
		switch {
		case arg == "--prompt":
			prompt = true
		case strings.HasPrefix(arg, "-"):
			return "", false, errors.New(usage)
		case email == "":
			email = arg
		default:
			return "", false, errors.New(usage)
		}
	}
	if strings.TrimSpace(email) == "" {
		return "", false, errors.New(usage)
	}
	return email, prompt, nil
}

func serve(cfg config.Config) error {
	database, err := db.Open(cfg.DBDriver, cfg.DatabaseSource())
	if err != nil {
		return err
	}

	i18nManager, err := i18n.NewManager(cfg.DefaultLanguage)
	if err != nil {
		return err
	}

	handler, err := api.NewHandler(database, i18nManager, api.HandlerOptions{
		Location:           cfg.Location,
		PasswordCost:       cfg.BcryptCost,
		LoginAttemptLimit:  cfg.LoginAttemptLimit,
		LoginAttemptWindow: cfg.LoginAttemptWindow,
	})
	if err != nil {
		return err
	}

	app := newApp(handler)

	sigCtx, stopSignals := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stopSignals()

	go func() {
		<-sigCtx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := app.ShutdownWithContext(shutdownCtx); err != nil {
			log.Printf("server shutdown failed: %v", err)
		}
		if sqlDB, err := database.DB(); err == nil {
			_ = sqlDB.Close()
		}
	}()

	log.Printf("FitApp listening on http://0.0.0.0:%s (db: %s, tz: %s)", cfg.Port, cfg.DBDriver, cfg.Location.String())
	return app.Listen(":" + cfg.Port)
}

func newApp(handler *api.Handler) *fiber.App {
	app := fiber.New(fiber.Config{
		AppName:               "FitApp",
		DisableStartupMessage: true,
		ErrorHandler:          api.ErrorHandler,
	})

	app.Use(recover.New())
	app.Use(api.RequestID)
	app.Use(logger.New(logger.Config{
		Format: "${time} ${locals:requestid} ${status} - ${latency} ${method} ${path}\n",
	}))
	app.Use(compress.New())
	api.RegisterRoutes(app, handler)

	return app
}
