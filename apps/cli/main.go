package main

import (
	"context"
	"os"

	"github.com/trezcool/asistencia/core"
	"github.com/trezcool/asistencia/core/register"
	logsvc "github.com/trezcool/asistencia/services/logger"
	filestore "github.com/trezcool/asistencia/storage/file"
)

func main() {
	logger := logsvc.NewFromConf(os.Stderr)

	store, err := filestore.Open(core.Conf.GetString("storePath"), logger)
	if err != nil {
		logger.Fatal("opening store", err)
	}
	svc, err := register.Open(context.Background(), store, logger)
	if err != nil {
		logger.Fatal("loading register", err)
	}

	cli := commandLine{svc: svc, out: os.Stdout}
	if err := cli.run(os.Args); err != nil {
		if err != errHelp {
			logger.Error("command failed", err)
			os.Stderr.WriteString("error: " + register.Describe(err) + "\n")
		}
		os.Exit(1)
	}
}
