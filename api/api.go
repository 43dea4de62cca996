package api

import (
	"fmt"
	"net/http"

	"hermannm.dev/bookinganalysis/config"
)

type AnalysisAPI struct {
	router *http.ServeMux
	config config.API
}

func NewAnalysisAPI(router *http.ServeMux, config config.API) AnalysisAPI {
	api := AnalysisAPI{router: router, config: config}

	api.router.HandleFunc("/transform", api.TransformRecords)
	api.router.HandleFunc("/transform-csv", api.TransformRecordsFromCSV)

	return api
}

func (api AnalysisAPI) ListenAndServe() error {
	return http.ListenAndServe(fmt.Sprintf(":%s", api.config.Port), api.router)
}
