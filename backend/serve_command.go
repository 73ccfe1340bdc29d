package main

import (
	"fmt"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/spf13/cobra"

	"signlearn/backend/database"
	"signlearn/backend/routes"
	"signlearn/backend/seed"
	"signlearn/backend/session"
)

const shutdownTimeout = 10 * time.Second

func newServeCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API",
		RunE: func(cmd *cobra.Command, args []string) error {
			rt, err := loadRuntime()
			if err != nil {
				return err
			}
			defer rt.close()

			if err := database.Migrate(rt.db); err != nil {
				return err
			}
			if rt.cfg.AutoSeed {
				res, err := seed.Populate(cmd.Context(), rt.db)
				if err != nil {
					return err
				}
				rt.log.Info("auto seed finished", "seeded", res.Seeded)
			}

			var storage fiber.Storage
			if rt.cfg.RedisAddr != "" {
				redisStorage, err := session.NewRedisStorage(rt.cfg)
				if err != nil {
					return err
				}
				defer redisStorage.Close()
				storage = redisStorage
				rt.log.Info("sessions stored in redis", "addr", rt.cfg.RedisAddr)
			}
			sessions := session.NewManager(rt.cfg, storage)

			app := routes.NewApp(rt.db, rt.cfg, sessions, rt.log)

			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			errCh := make(chan error, 1)
			go func() {
				rt.log.Info("server starting", "port", rt.cfg.ServerPort, "env", rt.cfg.AppEnv, "db", rt.cfg.DBDriver)
				errCh <- app.Listen(":" + rt.cfg.ServerPort)
			}()

			select {
			case err := <-errCh:
				if err != nil {
					return fmt.Errorf("listen: %w", err)
				}
				return nil
			case <-ctx.Done():
			}

			rt.log.Info("shutting down")
			if err := app.ShutdownWithTimeout(shutdownTimeout); err != nil {
				return fmt.Errorf("shutdown: %w", err)
			}
			return nil
		},
	}
}
