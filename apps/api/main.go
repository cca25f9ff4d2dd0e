package main

import (
	"context"
	"flag"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	echoapi "github.com/trezcool/asistencia/apps/api/echo"
	"github.com/trezcool/asistencia/core"
	"github.com/trezcool/asistencia/core/register"
	logsvc "github.com/trezcool/asistencia/services/logger"
	dummystore "github.com/trezcool/asistencia/storage/dummy"
	filestore "github.com/trezcool/asistencia/storage/file"
)

const shutdownTimeout = 5 * time.Second

func main() {
	demo := flag.Bool("demo", false, "Keep the register in memory only; nothing is written to disk.")
	flag.Parse()

	// =========================================================================
	// Set up Dependencies

	logger := logsvc.NewFromConf(os.Stdout)

	var store register.Store
	if *demo {
		store = dummystore.Open(nil, logger)
	} else {
		fs, err := filestore.Open(core.Conf.GetString("storePath"), logger)
		if err != nil {
			logger.Fatal("opening store", err)
		}
		store = fs
	}
	svc, err := register.Open(context.Background(), store, logger)
	if err != nil {
		logger.Fatal("loading register", err)
	}

	// =========================================================================
	// Start API Service

	addr := core.Conf.GetString("serverAddress")
	server := echoapi.NewServer(&echoapi.Options{
		Address: addr,
		Svc:     svc,
		Logger:  logger,
	})

	serverErrors := make(chan error, 1)
	go func() {
		logger.Info("server listening", map[string]interface{}{"address": addr, "demo": *demo})
		serverErrors <- server.Start()
	}()

	// =========================================================================
	// Shutdown

	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, os.Interrupt, syscall.SIGTERM)

	select {
	case err := <-serverErrors:
		if err != nil && err != http.ErrServerClosed {
			logger.Fatal("server error", err)
		}

	case sig := <-shutdown:
		logger.Info("start shutdown", map[string]interface{}{"signal": sig.String()})

		// give outstanding requests a deadline for completion
		ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()

		if err := server.Stop(ctx); err != nil {
			logger.Error("could not stop server gracefully", err)
		}
	}
}
