package main

import (
	"sync"

	"github.com/sirupsen/logrus"

	"github.com/banlak-networks/balance-server/api"
	"github.com/banlak-networks/balance-server/internal/config"
	"github.com/banlak-networks/balance-server/internal/logging"
	"github.com/banlak-networks/balance-server/internal/operator"
	"github.com/banlak-networks/balance-server/internal/service"
	"github.com/banlak-networks/balance-server/internal/storage"
)

func main() {
	logger := logging.SetupLogging()
	logrus.Info("balance-server starting")

	envConfig, err := config.ProcessEnvironmentVariables()
	if err != nil {
		logrus.WithError(err).Fatal("config.ProcessEnvironmentVariables")
		return
	}

	dbStorage := storage.NewStorage(envConfig)
	svc := service.NewService(dbStorage, envConfig)

	delegator := operator.NewOperatorDelegator(dbStorage, 4)
	delegator.Start()
	defer delegator.Stop()

	wg := sync.WaitGroup{}
	wg.Add(1)

	go func() {
		httpRest := api.Rest{
			Logger:   logger,
			Port:     envConfig.HTTPPort,
			Service:  svc,
			Operator: delegator,
		}
		httpRest.Serve()
	}()

	wg.Wait()
}
