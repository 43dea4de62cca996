package main

import (
	"log/slog"
	"net/http"
	"os"

	"hermannm.dev/bookinganalysis/api"
	"hermannm.dev/bookinganalysis/config"
	"hermannm.dev/devlog"
	"hermannm.dev/devlog/log"
)

func main() {
	logHandler := devlog.NewHandler(os.Stdout, &devlog.Options{Level: slog.LevelDebug})
	slog.SetDefault(slog.New(logHandler))

	conf, err := config.ReadFromEnv()
	if err != nil {
		log.ErrorCause(err, "failed to read config from env")
		os.Exit(1)
	}

	analysisAPI := api.NewAnalysisAPI(http.DefaultServeMux, conf.API)

	log.Infof("Listening on port %s...", conf.API.Port)
	if err := analysisAPI.ListenAndServe(); err != nil {
		log.ErrorCause(err, "server stopped")
		os.Exit(1)
	}
}
