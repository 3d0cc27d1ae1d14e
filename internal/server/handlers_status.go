package server

import (
	"context"
	"net/http"
	"time"

	"ecogenius/internal/api"
	"ecogenius/internal/logging"
)

const healthCheckTimeout = 5 * time.Second

func (s *Server) handleTrends(w http.ResponseWriter, r *http.Request) {
	if s.deps.Analytics == nil {
		s.writeUnavailable(w)
		return
	}
	report := s.deps.Analytics.Load(r.Context())
	api.WriteJSON(w, s.logger, http.StatusOK, TrendsResponse{
		Trends:   report.Trends,
		Summary:  report.Summary,
		Fallback: report.Fallback,
		Warning:  report.Warning,
	})
}

func (s *Server) handleMaterials(w http.ResponseWriter, r *http.Request) {
	if s.deps.Analytics == nil {
		s.writeUnavailable(w)
		return
	}
	report := s.deps.Analytics.Load(r.Context())
	api.WriteJSON(w, s.logger, http.StatusOK, MaterialsResponse{
		Year:      report.MaterialYear,
		Materials: report.Materials,
		Fallback:  report.Fallback,
		Warning:   report.Warning,
	})
}

// handleHealth reports "ok" when every required check passes and "degraded"
// otherwise. The status code is always 200 so load balancers see a live process.
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), healthCheckTimeout)
	defer cancel()

	status := "ok"
	deps := make([]api.DependencyStatus, 0, len(s.deps.Checks))
	for _, check := range s.deps.Checks {
		dep := api.DependencyStatus{
			Name:        check.Name,
			Description: check.Description,
			Optional:    check.Optional,
			Available:   true,
		}
		if check.Check != nil {
			if err := check.Check(ctx); err != nil {
				dep.Available = false
				dep.Detail = err.Error()
				if !check.Optional {
					status = "degraded"
				}
				logging.WithContext(ctx, s.logger).Debug("health check failed",
					logging.String("dependency", check.Name),
					logging.Error(err),
				)
			}
		}
		deps = append(deps, dep)
	}
	api.WriteJSON(w, s.logger, http.StatusOK, api.HealthResponse{
		Status:       status,
		Version:      s.deps.Version,
		Time:         api.FormatTime(time.Now()),
		Dependencies: deps,
	})
}
