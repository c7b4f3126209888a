package httpapi

import (
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"

	"zoocore/internal/core"
)

// reportBody is a constraint report with its rendered views.
type reportBody struct {
	core.ConstraintReport
	AllSatisfied bool     `json:"all_satisfied"`
	Narrative    []string `json:"narrative"`
	Passed       []string `json:"satisfied"`
	NotSatisfied []string `json:"not_satisfied"`
}

func newReportBody(report core.ConstraintReport) reportBody {
	passed, failed := report.Split()
	return reportBody{
		ConstraintReport: report,
		AllSatisfied:     report.Satisfied(),
		Narrative:        report.Narrative(),
		Passed:           passed,
		NotSatisfied:     failed,
	}
}

type feedingBody struct {
	core.FeedingResult
	Message string `json:"message"`
}

type activityBody struct {
	core.ActivityResult
	Message string `json:"message"`
}

type dayCycleBody struct {
	At         time.Time     `json:"at"`
	OccurredAt time.Time     `json:"occurred_at"`
	Cycle      core.DayCycle `json:"cycle"`
}

func (h *Handler) zooDayCycle(w http.ResponseWriter, r *http.Request) {
	if h.sun == nil {
		h.writeError(w, r, badRequest("location is not configured"))
		return
	}
	at := h.now()
	if raw := strings.TrimSpace(r.URL.Query().Get("at")); raw != "" {
		parsed, err := time.Parse(time.RFC3339, raw)
		if err != nil {
			h.writeError(w, r, badRequest("at must be an RFC3339 timestamp"))
			return
		}
		at = parsed
	}
	transition, occurred, err := h.sun.LastTransition(at)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	cycle, err := h.svc.ZooDayCycle(r.Context(), chi.URLParam(r, "id"), transition)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, dayCycleBody{At: at, OccurredAt: occurred, Cycle: cycle})
}

func (h *Handler) archiveReport(w http.ResponseWriter, r *http.Request) {
	if h.archive == nil {
		h.writeError(w, r, badRequest("report archive is not configured"))
		return
	}
	report, err := h.svc.ZooReport(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	info, err := h.archive.Save(r.Context(), report.ZooID, report.GeneratedAt, report)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, info)
}

func (h *Handler) listReports(w http.ResponseWriter, r *http.Request) {
	if h.archive == nil {
		h.writeError(w, r, badRequest("report archive is not configured"))
		return
	}
	id := chi.URLParam(r, "id")
	if _, err := h.svc.GetZoo(r.Context(), id); err != nil {
		h.writeError(w, r, err)
		return
	}
	infos, err := h.archive.List(r.Context(), id)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, infos)
}

func (h *Handler) getReport(w http.ResponseWriter, r *http.Request) {
	if h.archive == nil {
		h.writeError(w, r, badRequest("report archive is not configured"))
		return
	}
	key := "reports/" + chi.URLParam(r, "*")
	var report core.ZooReport
	if _, err := h.archive.Load(r.Context(), key, &report); err != nil {
		h.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, report)
}
