package api

import (
	"net/http"
	"time"

	"github.com/danielgtaylor/huma/v2"
	"github.com/danielgtaylor/huma/v2/adapters/humago"
	"github.com/sirupsen/logrus"

	"github.com/banlak-networks/balance-server/internal/handlers/status"
	"github.com/banlak-networks/balance-server/internal/handlers/team"
	"github.com/banlak-networks/balance-server/internal/handlers/transaction"
	"github.com/banlak-networks/balance-server/internal/logging"
	"github.com/banlak-networks/balance-server/internal/operator"
	"github.com/banlak-networks/balance-server/internal/service"
)

type Rest struct {
	Logger   *logrus.Logger
	Port     string
	Service  *service.Service
	Operator *operator.OperatorDelegator
}

func (r *Rest) Serve() {
	mux := http.NewServeMux()

	statusHandler := status.NewHandler()
	mux.HandleFunc("/status", logging.LoggingWrapper("Status", r.Logger, statusHandler.Handler))

	humaAPI := humago.New(mux, huma.DefaultConfig("balance-server", "1.0.0"))
	humaAPI.UseMiddleware(r.logDataMiddleware)

	team.NewClaimPendingHandler(r.Service.Transaction).Register(humaAPI)
	team.NewGetTeamHandler(r.Service.Website).Register(humaAPI)
	team.NewListWebsitesHandler(r.Service.Website).Register(humaAPI)
	transaction.NewUpdateStatusHandler(r.Service.Team, r.Operator).Register(humaAPI)

	server := http.Server{
		Addr:              ":" + r.Port,
		Handler:           mux,
		ReadTimeout:       time.Duration(30) * time.Second,
		WriteTimeout:      time.Duration(30) * time.Second,
		IdleTimeout:       time.Duration(10) * time.Second,
		ReadHeaderTimeout: time.Duration(10) * time.Second,
	}

	r.Logger.Info("HttpServer.Serve.listening")
	err := server.ListenAndServe()
	if err != nil {
		r.Logger.WithError(err).Error("HttpServer.Serve.listen error")
	}
	r.Logger.Info("HttpServer.Serve.shutting down")
}

// logDataMiddleware attaches a request-scoped LogData so handlers can record
// fields and timings, and emits one completion log line per request.
func (r *Rest) logDataMiddleware(ctx huma.Context, next func(huma.Context)) {
	logData := logging.NewLogData(r.Logger)
	endTimer := logData.AddTiming("duration")

	ctx = huma.WithValue(ctx, logging.LogDataKey, logData)
	next(ctx)

	endTimer()
	logData.Log().Infof("Handler.%v.Complete", ctx.Operation().OperationID)
}
