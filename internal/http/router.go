package httpserver

import "net/http"

// Routes groups handlers.
type Routes struct {
	Distribution   http.HandlerFunc
	BoxPlot        http.HandlerFunc
	CDF            http.HandlerFunc
	TimePatterns   http.HandlerFunc
	Comparison     http.HandlerFunc
	Gaps           http.HandlerFunc
	Carbon         http.HandlerFunc
	UserProfile    http.HandlerFunc
	AnomalousUsers http.HandlerFunc
	Health         http.HandlerFunc
}

// NewRouter registers endpoints. The optional middleware wraps every
// analytics route but not /health.
func NewRouter(routes Routes, middleware func(http.Handler) http.Handler) http.Handler {
	mux := http.NewServeMux()

	register := func(path string, handler http.HandlerFunc) {
		if handler == nil {
			return
		}
		var h http.Handler = method(http.MethodGet, handler)
		if middleware != nil {
			h = middleware(h)
		}
		mux.Handle(path, h)
	}

	register("/analytics/distribution", routes.Distribution)
	register("/analytics/boxplot", routes.BoxPlot)
	register("/analytics/cdf", routes.CDF)
	register("/analytics/time-patterns", routes.TimePatterns)
	register("/analytics/comparison", routes.Comparison)
	register("/analytics/gaps", routes.Gaps)
	register("/analytics/carbon", routes.Carbon)
	register("/users/profile", routes.UserProfile)
	register("/users/anomalous", routes.AnomalousUsers)

	if routes.Health != nil {
		mux.Handle("/health", method(http.MethodGet, routes.Health))
	}
	return mux
}

func method(expected string, handler http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != expected {
			w.Header().Set("Allow", expected)
			w.WriteHeader(http.StatusMethodNotAllowed)
			return
		}
		handler(w, r)
	}
}
