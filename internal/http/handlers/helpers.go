package handlers

import (
	"encoding/json"
	"net/http"

	"chargepulse/internal/repository"
	"chargepulse/internal/service"
	"chargepulse/internal/stats"
)

func writeJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if payload == nil {
		return
	}
	_ = json.NewEncoder(w).Encode(payload)
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]string{"error": message})
}

func datasetParam(r *http.Request) (repository.Dataset, bool, string) {
	ds, err := repository.ParseDataset(r.URL.Query().Get("dataset"))
	if err != nil {
		return "", false, err.Error()
	}
	return ds, true, ""
}

func cohortParam(r *http.Request) (service.Cohort, bool, string) {
	cohort, err := service.ParseCohort(r.URL.Query().Get("cohort"))
	if err != nil {
		return "", false, err.Error()
	}
	return cohort, true, ""
}

func metricParam(r *http.Request) (stats.Metric, bool, string) {
	metric, err := stats.ParseMetric(r.URL.Query().Get("metric"))
	if err != nil {
		return "", false, err.Error()
	}
	return metric, true, ""
}
