package httpapi

import (
	"net/http"
	"time"

	"github.com/youthscout/talent-tracker/internal/platform/logging"
	"github.com/youthscout/talent-tracker/internal/scheduler"
)

type Handler struct {
	jobs   *scheduler.Scheduler
	logger *logging.Logger
}

func NewHandler(jobs *scheduler.Scheduler, logger *logging.Logger) *Handler {
	if logger == nil {
		logger = logging.Default()
	}

	return &Handler{
		jobs:   jobs,
		logger: logger,
	}
}

func (h *Handler) Healthz(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.Healthz")
	defer span.End()

	writeSuccess(ctx, w, http.StatusOK, map[string]string{"status": "ok"})
}

type jobTriggerDTO struct {
	Accepted    bool      `json:"accepted"`
	TriggeredAt time.Time `json:"triggeredAt"`
}

func (h *Handler) TriggerPopulation(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.TriggerPopulation")
	defer span.End()

	if !h.jobs.Trigger(ctx) {
		h.logger.InfoContext(ctx, "population trigger rejected, run already in progress")
		writeJSON(ctx, w, http.StatusConflict, googleResponseEnvelope{
			APIVersion: googleAPIVersion,
			Error: &googleErrorBody{
				Code:    http.StatusConflict,
				Message: "a population run is already in progress",
				Status:  "ABORTED",
				Errors: []googleErrorItem{
					{
						Domain:  errorDomain,
						Reason:  "runInProgress",
						Message: "a population run is already in progress",
					},
				},
			},
		})
		return
	}

	h.logger.InfoContext(ctx, "population run triggered manually")
	writeSuccess(ctx, w, http.StatusAccepted, jobTriggerDTO{
		Accepted:    true,
		TriggeredAt: time.Now().UTC(),
	})
}

func (h *Handler) PopulationStatus(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.PopulationStatus")
	defer span.End()

	writeSuccess(ctx, w, http.StatusOK, h.jobs.Status())
}
