package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/saiteja-29/V-Hire/internal/lifecycle"
	"github.com/saiteja-29/V-Hire/internal/models"
	"github.com/saiteja-29/V-Hire/internal/repositories"
	"github.com/saiteja-29/V-Hire/internal/sandbox"
	"github.com/saiteja-29/V-Hire/internal/session"
	"github.com/saiteja-29/V-Hire/internal/settlement"
	"github.com/saiteja-29/V-Hire/internal/utils"
)

type Handlers struct {
	Log        *zap.Logger
	Manager    *lifecycle.Manager
	Reconciler *settlement.Reconciler
	Hub        *session.Hub
	Runner     *sandbox.Runner
	JWTSecret  []byte
}

func (h *Handlers) Health(w http.ResponseWriter, _ *http.Request) {
	_, _ = w.Write([]byte("ok"))
}

// CreateBatch handles a company posting a recruitment batch.
func (h *Handlers) CreateBatch(w http.ResponseWriter, r *http.Request) {
	var req models.CreateBatchRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.JSONError(w, http.StatusBadRequest, "invalid_request", "Invalid request payload")
		return
	}

	resp, err := h.Manager.CreateBatch(r.Context(), req)
	if err != nil {
		if errors.Is(err, lifecycle.ErrValidation) {
			utils.JSONError(w, http.StatusBadRequest, "invalid_request", err.Error())
			return
		}
		h.Log.Error("create batch failed", zap.Error(err))
		utils.JSONError(w, http.StatusInternalServerError, "internal_error", "Failed to create batch")
		return
	}
	utils.JSON(w, http.StatusCreated, resp)
}

// Suggestions returns skill-matched unscheduled requests for an interviewer.
func (h *Handlers) Suggestions(w http.ResponseWriter, r *http.Request) {
	email := r.URL.Query().Get("interviewer")
	if email == "" {
		utils.JSONError(w, http.StatusBadRequest, "invalid_request", "interviewer query parameter is required")
		return
	}

	groups, err := h.Manager.Suggestions(r.Context(), email)
	if err != nil {
		if errors.Is(err, repositories.ErrProfileNotFound) {
			utils.JSONError(w, http.StatusNotFound, "profile_not_found", "Interviewer profile not found")
			return
		}
		h.Log.Error("suggestions failed", zap.Error(err))
		utils.JSONError(w, http.StatusInternalServerError, "internal_error", "Failed to fetch suggestions")
		return
	}
	utils.JSON(w, http.StatusOK, groups)
}

// Schedule transitions selected requests to scheduled; results are
// per-item so one invalid item does not fail the rest.
func (h *Handlers) Schedule(w http.ResponseWriter, r *http.Request) {
	var req models.ScheduleRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.JSONError(w, http.StatusBadRequest, "invalid_request", "Invalid request payload")
		return
	}
	if req.InterviewerEmail == "" || len(req.Items) == 0 {
		utils.JSONError(w, http.StatusBadRequest, "invalid_request", "interviewerEmail and items are required")
		return
	}

	results := h.Manager.Schedule(r.Context(), req.InterviewerEmail, req.Items)
	utils.JSON(w, http.StatusOK, results)
}

// SubmitReport completes an interview from the interviewer's closing flow.
func (h *Handlers) SubmitReport(w http.ResponseWriter, r *http.Request) {
	var req models.SubmitReportRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.JSONError(w, http.StatusBadRequest, "invalid_request", "Invalid request payload")
		return
	}

	if err := h.Manager.SubmitReport(r.Context(), req); err != nil {
		switch {
		case errors.Is(err, lifecycle.ErrValidation):
			utils.JSONError(w, http.StatusBadRequest, "invalid_request", err.Error())
		case errors.Is(err, repositories.ErrReportNotFound),
			errors.Is(err, repositories.ErrInterviewNotFound):
			utils.JSONError(w, http.StatusNotFound, "not_found", "No interview matches this room")
		default:
			h.Log.Error("report submission failed", zap.Error(err))
			utils.JSONError(w, http.StatusInternalServerError, "internal_error", "Failed to submit report")
		}
		return
	}
	utils.JSON(w, http.StatusOK, map[string]string{"status": "completed"})
}

// CreateSettlement mints a payment link for a completed interview.
func (h *Handlers) CreateSettlement(w http.ResponseWriter, r *http.Request) {
	var req models.CreateSettlementRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.JSONError(w, http.StatusBadRequest, "invalid_request", "Invalid request payload")
		return
	}

	rec, err := h.Reconciler.Settlements.GetByInterviewID(req.InterviewID)
	if err != nil {
		if errors.Is(err, repositories.ErrSettlementNotFound) {
			utils.JSONError(w, http.StatusNotFound, "settlement_not_found", "No settlement record for this interview")
			return
		}
		h.Log.Error("settlement lookup failed", zap.Error(err))
		utils.JSONError(w, http.StatusInternalServerError, "internal_error", "Failed to look up settlement")
		return
	}

	updated, err := h.Reconciler.CreateLink(r.Context(), req.InterviewID,
		rec.InterviewerEmail, rec.PayoutDestination, req.Amount)
	if err != nil {
		if errors.Is(err, settlement.ErrValidation) {
			utils.JSONError(w, http.StatusBadRequest, "invalid_request", err.Error())
			return
		}
		h.Log.Error("payment link creation failed",
			zap.String("interviewId", req.InterviewID), zap.Error(err))
		utils.JSONError(w, http.StatusBadGateway, "provider_error", "Failed to create payment link")
		return
	}
	utils.JSON(w, http.StatusOK, updated)
}

// CheckSettlement polls the provider for a settlement's payment status.
func (h *Handlers) CheckSettlement(w http.ResponseWriter, r *http.Request) {
	interviewID := chi.URLParam(r, "interviewId")

	status, err := h.Reconciler.CheckStatus(r.Context(), interviewID)
	if err != nil {
		if errors.Is(err, repositories.ErrSettlementNotFound) {
			utils.JSONError(w, http.StatusNotFound, "settlement_not_found", "No settlement record for this interview")
			return
		}
		h.Log.Error("settlement status check failed", zap.Error(err))
		utils.JSONError(w, http.StatusInternalServerError, "internal_error", "Failed to check settlement")
		return
	}
	utils.JSON(w, http.StatusOK, map[string]models.SettlementStatus{"settlementStatus": status})
}

// PendingSettlements sweeps invalid records and lists the payout queue.
func (h *Handlers) PendingSettlements(w http.ResponseWriter, r *http.Request) {
	queue, err := h.Reconciler.PendingQueue(r.Context())
	if err != nil {
		h.Log.Error("payout queue failed", zap.Error(err))
		utils.JSONError(w, http.StatusInternalServerError, "internal_error", "Failed to list settlements")
		return
	}
	utils.JSON(w, http.StatusOK, queue)
}

// UpsertProfile stores an interviewer's declared skills and payout handle.
func (h *Handlers) UpsertProfile(w http.ResponseWriter, r *http.Request) {
	var profile models.InterviewerProfile
	if err := json.NewDecoder(r.Body).Decode(&profile); err != nil || profile.Email == "" {
		utils.JSONError(w, http.StatusBadRequest, "invalid_request", "Invalid request payload")
		return
	}
	if err := h.Manager.Profiles.Upsert(&profile); err != nil {
		h.Log.Error("profile upsert failed", zap.Error(err))
		utils.JSONError(w, http.StatusInternalServerError, "internal_error", "Failed to save profile")
		return
	}
	utils.JSON(w, http.StatusOK, profile)
}

// RunCode forwards the room's editor contents to the external sandbox.
func (h *Handlers) RunCode(w http.ResponseWriter, r *http.Request) {
	var req models.RunRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.JSONError(w, http.StatusBadRequest, "invalid_request", "Invalid request payload")
		return
	}
	if !models.ValidLanguage(req.Language) {
		utils.JSONError(w, http.StatusBadRequest, "unsupported_language", "Unsupported language")
		return
	}

	output, err := h.Runner.Execute(r.Context(), req.Language, req.Code)
	if err != nil {
		h.Log.Error("code execution failed", zap.Error(err))
		utils.JSONError(w, http.StatusInternalServerError, "execution_error", "Error executing code")
		return
	}
	utils.JSON(w, http.StatusOK, models.RunResponse{Output: output})
}

// RoomToken mints the JWT a participant presents on the room websocket.
func (h *Handlers) RoomToken(w http.ResponseWriter, r *http.Request) {
	var req models.RoomTokenRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.JSONError(w, http.StatusBadRequest, "invalid_request", "Invalid request payload")
		return
	}
	if req.RoomID == "" || req.Email == "" ||
		(req.Role != models.RoleInterviewer && req.Role != models.RoleCandidate) {
		utils.JSONError(w, http.StatusBadRequest, "invalid_request", "roomId, email and a valid role are required")
		return
	}

	token, err := utils.GenerateRoomToken(req.RoomID, req.Email, req.Role, h.JWTSecret)
	if err != nil {
		h.Log.Error("room token generation failed", zap.Error(err))
		utils.JSONError(w, http.StatusInternalServerError, "internal_error", "Failed to generate token")
		return
	}
	utils.JSON(w, http.StatusOK, map[string]string{"token": token})
}
