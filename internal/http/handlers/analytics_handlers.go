package handlers

import (
	"net/http"

	"chargepulse/internal/service"
)

// NewDistributionHandler returns GET /analytics/distribution handler.
func NewDistributionHandler(svc *service.AnalyticsService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ds, ok, msg := datasetParam(r)
		if !ok {
			writeError(w, http.StatusBadRequest, msg)
			return
		}
		metric, ok, msg := metricParam(r)
		if !ok {
			writeError(w, http.StatusBadRequest, msg)
			return
		}
		cohort, ok, msg := cohortParam(r)
		if !ok {
			writeError(w, http.StatusBadRequest, msg)
			return
		}

		buckets, err := svc.Distribution(r.Context(), ds, metric, cohort)
		if err != nil {
			writeError(w, http.StatusInternalServerError, "failed to compute distribution")
			return
		}
		writeJSON(w, http.StatusOK, map[string]interface{}{"buckets": buckets})
	}
}

// NewBoxPlotHandler returns GET /analytics/boxplot handler. An empty cohort
// yields a null summary, distinguishable from a store failure.
func NewBoxPlotHandler(svc *service.AnalyticsService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ds, ok, msg := datasetParam(r)
		if !ok {
			writeError(w, http.StatusBadRequest, msg)
			return
		}
		metric, ok, msg := metricParam(r)
		if !ok {
			writeError(w, http.StatusBadRequest, msg)
			return
		}
		cohort, ok, msg := cohortParam(r)
		if !ok {
			writeError(w, http.StatusBadRequest, msg)
			return
		}

		summary, err := svc.BoxPlot(r.Context(), ds, metric, cohort)
		if err != nil {
			writeError(w, http.StatusInternalServerError, "failed to compute box plot")
			return
		}
		writeJSON(w, http.StatusOK, map[string]interface{}{"summary": summary})
	}
}

// NewCDFHandler returns GET /analytics/cdf handler.
func NewCDFHandler(svc *service.AnalyticsService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ds, ok, msg := datasetParam(r)
		if !ok {
			writeError(w, http.StatusBadRequest, msg)
			return
		}
		metric, ok, msg := metricParam(r)
		if !ok {
			writeError(w, http.StatusBadRequest, msg)
			return
		}
		cohort, ok, msg := cohortParam(r)
		if !ok {
			writeError(w, http.StatusBadRequest, msg)
			return
		}

		points, err := svc.CDF(r.Context(), ds, metric, cohort)
		if err != nil {
			writeError(w, http.StatusInternalServerError, "failed to compute cdf")
			return
		}
		writeJSON(w, http.StatusOK, map[string]interface{}{"points": points})
	}
}

// NewTimePatternsHandler returns GET /analytics/time-patterns handler.
func NewTimePatternsHandler(svc *service.AnalyticsService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ds, ok, msg := datasetParam(r)
		if !ok {
			writeError(w, http.StatusBadRequest, msg)
			return
		}
		cohort, ok, msg := cohortParam(r)
		if !ok {
			writeError(w, http.StatusBadRequest, msg)
			return
		}

		patterns, err := svc.TimePatterns(r.Context(), ds, cohort)
		if err != nil {
			writeError(w, http.StatusInternalServerError, "failed to compute time patterns")
			return
		}
		writeJSON(w, http.StatusOK, patterns)
	}
}

// NewComparisonHandler returns GET /analytics/comparison handler.
func NewComparisonHandler(svc *service.AnalyticsService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ds, ok, msg := datasetParam(r)
		if !ok {
			writeError(w, http.StatusBadRequest, msg)
			return
		}

		comparison, err := svc.Comparison(r.Context(), ds)
		if err != nil {
			writeError(w, http.StatusInternalServerError, "failed to compute comparison")
			return
		}
		writeJSON(w, http.StatusOK, comparison)
	}
}

// NewGapsHandler returns GET /analytics/gaps handler.
func NewGapsHandler(svc *service.AnalyticsService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ds, ok, msg := datasetParam(r)
		if !ok {
			writeError(w, http.StatusBadRequest, msg)
			return
		}
		cohort, ok, msg := cohortParam(r)
		if !ok {
			writeError(w, http.StatusBadRequest, msg)
			return
		}

		gaps, err := svc.GapAnalysis(r.Context(), ds, cohort)
		if err != nil {
			writeError(w, http.StatusInternalServerError, "failed to compute gap analysis")
			return
		}
		writeJSON(w, http.StatusOK, gaps)
	}
}

// NewCarbonHandler returns GET /analytics/carbon handler.
func NewCarbonHandler(svc *service.AnalyticsService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ds, ok, msg := datasetParam(r)
		if !ok {
			writeError(w, http.StatusBadRequest, msg)
			return
		}

		report, err := svc.Carbon(r.Context(), ds)
		if err != nil {
			writeError(w, http.StatusInternalServerError, "failed to compute carbon estimate")
			return
		}
		writeJSON(w, http.StatusOK, report)
	}
}
