package handlers

import (
	"context"
	"net/http"
	"sort"
	"time"

	"novusarc/placement/internal/utils"
)

type ReadinessCheck struct {
	Status  string `json:"status"` // "ok" | "failed"
	Message string `json:"message,omitempty"`
}

type ReadinessResponse struct {
	Status  string                    `json:"status"` // "ready" | "not_ready"
	Service string                    `json:"service"`
	Checks  map[string]ReadinessCheck `json:"checks"`
}

// DependencyCheck reports whether a dependency is reachable.
type DependencyCheck func(ctx context.Context) error

type HealthHandler struct {
	service string
	deps    map[string]DependencyCheck
	timeout time.Duration
}

func NewHealthHandler(service string, deps map[string]DependencyCheck) *HealthHandler {
	return &HealthHandler{service: service, deps: deps, timeout: 2 * time.Second}
}

func (handler *HealthHandler) HealthzHandler(writer http.ResponseWriter, request *http.Request) {
	utils.JSON(writer, http.StatusOK, map[string]string{
		"status":  "ok",
		"service": handler.service,
	})
}

func (handler *HealthHandler) ReadyzHandler(writer http.ResponseWriter, request *http.Request) {
	ctx, cancel := context.WithTimeout(request.Context(), handler.timeout)
	defer cancel()

	names := make([]string, 0, len(handler.deps))
	for name := range handler.deps {
		names = append(names, name)
	}
	sort.Strings(names)

	checks := make(map[string]ReadinessCheck, len(names))
	allChecksPass := true
	for _, name := range names {
		check := handler.deps[name]
		if check == nil {
			checks[name] = ReadinessCheck{Status: "failed", Message: name + " not initialized"}
			allChecksPass = false
			continue
		}
		if err := check(ctx); err != nil {
			checks[name] = ReadinessCheck{Status: "failed", Message: err.Error()}
			allChecksPass = false
			continue
		}
		checks[name] = ReadinessCheck{Status: "ok"}
	}

	response := ReadinessResponse{Service: handler.service, Checks: checks}
	if allChecksPass {
		response.Status = "ready"
		utils.JSON(writer, http.StatusOK, response)
	} else {
		response.Status = "not_ready"
		utils.JSON(writer, http.StatusServiceUnavailable, response)
	}
}
