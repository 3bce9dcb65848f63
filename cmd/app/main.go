package main

import (
	"FaceVerify/internal/config"
	"FaceVerify/pkg/log"
	"context"
	"os"
	"os/signal"
	"syscall"
)

func main() {
	if err := config.LoadDotEnv(); err != nil {
		log.Warn(log.Fields{"error": err.Error()}, "No .env file loaded, using process environment")
	}

	env, err := config.LoadEnv()
	if err != nil {
		log.Fatal(log.Fields{"error": err.Error()}, "Invalid configuration")
	}

	logger := log.NewLogger(log.Options{
		Level:  env.LogLevel,
		Dir:    env.LogDir,
		AppEnv: env.AppEnv,
	})

	ctx := context.Background()

	fiberApp := config.NewFiber(logger, config.FiberOptions{BodyLimitMB: env.BodyLimitMB})
	validator := config.NewValidator()

	server, err := config.NewServer(
		config.WithFiber(fiberApp),
		config.WithLogger(logger),
		config.WithEnv(env),
		config.WithValidator(validator),
		config.WithMiddleware(),
		config.WithUtils(),
		config.WithComparator(),
		config.WithFaceStore(ctx),
		config.WithFaceEncoder(),
	)
	if err != nil {
		logger.Fatal(err)
	}

	server.RegisterHandler()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		if err := server.Run(); err != nil {
			logger.Fatalf("Error starting server: %v", err)
		}
	}()

	logger.WithFields(log.Fields{
		"port":    env.Port,
		"store":   env.FaceStoreDriver,
		"encoder": env.FaceEncoder,
	}).Info("Server started successfully")

	<-sigChan
	logger.Info("Shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(ctx, env.ShutdownTimeout)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Errorf("Shutdown finished with errors: %v", err)
		return
	}
	logger.Info("Server stopped")
}
