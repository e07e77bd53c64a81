package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/daniel1002-jpg/medication-management-api/pkg/api/http/server"
)

const (
	defaultReadTimeout  = 15 * time.Second
	defaultWriteTimeout = 15 * time.Second
	defaultIdleTimeout  = 60 * time.Second

	shutdownTimeout = 30 * time.Second
)

func main() {
	if err := server.LoadConfig(); err != nil {
		panic(err)
	}

	logger := newLogger()
	defer logger.Sync()

	db, err := server.ConnectDB()
	if err != nil {
		logger.Fatal("error al conectar a la base de datos", zap.Error(err))
	}
	defer db.Close()
	logger.Info("conexión a base de datos establecida")

	patientHandler := server.InitializeHandler(db, logger)
	router := server.SetupRouter(patientHandler, logger)

	port := viper.GetString("server.port")
	httpServer := &http.Server{
		Addr:         ":" + port,
		Handler:      router,
		ReadTimeout:  defaultReadTimeout,
		WriteTimeout: defaultWriteTimeout,
		IdleTimeout:  defaultIdleTimeout,
	}

	shutdownChan := make(chan os.Signal, 1)
	signal.Notify(shutdownChan, syscall.SIGINT, syscall.SIGTERM)

	serverErrors := make(chan error, 1)
	go func() {
		logger.Info("servidor escuchando", zap.String("port", port))
		if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			serverErrors <- err
		}
	}()

	select {
	case err := <-serverErrors:
		logger.Fatal("error crítico del servidor", zap.Error(err))
	case sig := <-shutdownChan:
		logger.Info("señal de terminación recibida", zap.String("signal", sig.String()))

		ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := httpServer.Shutdown(ctx); err != nil {
			logger.Error("error durante el apagado", zap.Error(err))
		}
	}

	logger.Info("servidor terminado correctamente")
}

func newLogger() *zap.Logger {
	if viper.GetString("server.env") == "production" {
		logger, err := zap.NewProduction()
		if err != nil {
			panic(err)
		}
		return logger
	}
	logger, err := zap.NewDevelopment()
	if err != nil {
		panic(err)
	}
	return logger
}
