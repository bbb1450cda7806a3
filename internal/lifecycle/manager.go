package lifecycle

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/saiteja-29/V-Hire/internal/events"
	"github.com/saiteja-29/V-Hire/internal/matcher"
	"github.com/saiteja-29/V-Hire/internal/models"
	"github.com/saiteja-29/V-Hire/internal/notify"
	"github.com/saiteja-29/V-Hire/internal/repositories"
	"github.com/saiteja-29/V-Hire/internal/utils"
)

var (
	ErrValidation       = errors.New("validation failed")
	ErrPastDeadline     = fmt.Errorf("%w: scheduled time not before deadline", ErrValidation)
	ErrAlreadyScheduled = fmt.Errorf("%w: interview is not unscheduled", ErrValidation)
	ErrBadRating        = fmt.Errorf("%w: rating must be between 1 and 5", ErrValidation)
)

// Destinations returned to the UI layer after a participant exits a room.
const (
	DestDashboard = "dashboard"
	DestReport    = "report"
)

// Manager owns the interview state machine: unscheduled → scheduled →
// (implicit) ongoing → completed, plus the verified-identity stamping the
// settlement sweep relies on.
type Manager struct {
	Interviews  *repositories.InterviewRepository
	Reports     *repositories.ReportRepository
	Settlements *repositories.SettlementRepository
	Profiles    *repositories.ProfileRepository

	Notifier  notify.Notifier
	Publisher *events.Publisher
	Log       *zap.Logger
}

// CreateBatch records one unscheduled request per candidate of a job
// posting and fires welcome mail. Mail failure is logged, not returned.
func (m *Manager) CreateBatch(ctx context.Context, req models.CreateBatchRequest) (*models.CreateBatchResponse, error) {
	if req.CompanyName == "" || req.Role == "" || req.JobDescription == "" ||
		len(req.Skills) == 0 || len(req.CandidateEmails) == 0 {
		return nil, fmt.Errorf("%w: all batch fields are required", ErrValidation)
	}
	deadline, err := time.Parse(time.RFC3339, req.Deadline)
	if err != nil {
		return nil, fmt.Errorf("%w: deadline must be RFC 3339", ErrValidation)
	}
	if !deadline.After(time.Now()) {
		return nil, fmt.Errorf("%w: deadline must be in the future", ErrValidation)
	}

	recruitmentID := utils.NewRecruitmentID()
	ids := make([]string, 0, len(req.CandidateEmails))
	for _, email := range req.CandidateEmails {
		interview := &models.InterviewRequest{
			InterviewID:    utils.NewInterviewID(),
			RecruitmentID:  recruitmentID,
			CompanyName:    req.CompanyName,
			Role:           req.Role,
			JobDescription: req.JobDescription,
			Pointers:       req.Pointers,
			RequiredSkills: req.Skills,
			CandidateEmail: email,
			Deadline:       deadline,
			Status:         models.StatusUnscheduled,
		}
		if err := m.Interviews.Create(interview); err != nil {
			return nil, err
		}
		ids = append(ids, interview.InterviewID)
	}

	if m.Notifier != nil {
		if err := m.Notifier.SendWelcome(req.CandidateEmails); err != nil {
			m.Log.Warn("welcome mail failed", zap.Error(err))
		}
	}
	return &models.CreateBatchResponse{RecruitmentID: recruitmentID, InterviewIDs: ids}, nil
}

// Suggestions returns the unscheduled requests relevant to an
// interviewer's declared skills, grouped by recruitment batch.
func (m *Manager) Suggestions(ctx context.Context, interviewerEmail string) ([]models.SuggestionGroup, error) {
	profile, err := m.Profiles.GetByEmail(interviewerEmail)
	if err != nil {
		return nil, err
	}
	pool, err := m.Interviews.ListByStatus(models.StatusUnscheduled)
	if err != nil {
		return nil, err
	}
	return matcher.Suggest(profile.Skills, pool), nil
}

// Schedule transitions each selected request to scheduled. Items are
// independent: one failing validation does not block the others.
func (m *Manager) Schedule(ctx context.Context, interviewerEmail string, items []models.ScheduleItem) []models.ScheduleResult {
	results := make([]models.ScheduleResult, 0, len(items))
	for _, item := range items {
		roomID, err := m.scheduleOne(ctx, interviewerEmail, item)
		res := models.ScheduleResult{InterviewID: item.InterviewID, RoomID: roomID}
		if err != nil {
			res.RoomID = ""
			res.Error = err.Error()
		}
		results = append(results, res)
	}
	return results
}

func (m *Manager) scheduleOne(ctx context.Context, interviewerEmail string, item models.ScheduleItem) (string, error) {
	scheduledAt, err := time.Parse(time.RFC3339, item.ScheduledAt)
	if err != nil {
		return "", fmt.Errorf("%w: scheduledAt must be RFC 3339", ErrValidation)
	}

	interview, err := m.Interviews.GetByInterviewID(item.InterviewID)
	if err != nil {
		return "", err
	}
	if interview.Status != models.StatusUnscheduled {
		return "", ErrAlreadyScheduled
	}
	if !scheduledAt.Before(interview.Deadline) {
		return "", ErrPastDeadline
	}

	roomID := utils.NewRoomID()
	err = m.Interviews.Updates(item.InterviewID, map[string]any{
		"status":            models.StatusScheduled,
		"interviewer_email": interviewerEmail,
		"room_id":           roomID,
		"scheduled_at":      scheduledAt,
	})
	if err != nil {
		return "", err
	}

	if m.Notifier != nil {
		date := scheduledAt.Format("2006-01-02")
		timeOfDay := scheduledAt.Format("15:04")
		if nerr := m.Notifier.SendScheduled(interview.CandidateEmail, date, timeOfDay, interviewerEmail); nerr != nil {
			m.Log.Warn("scheduled mail failed",
				zap.String("interviewId", item.InterviewID), zap.Error(nerr))
		}
	}
	m.Publisher.Publish(ctx, events.Event{
		Type:        events.TypeScheduled,
		InterviewID: item.InterviewID,
		RoomID:      roomID,
		Email:       interview.CandidateEmail,
	})
	return roomID, nil
}

// RoomJoin reacts to a participant connecting to a room. The first
// interviewer join writes the report shell so a report stays creatable
// even if the interviewer drops before the candidate arrives.
func (m *Manager) RoomJoin(ctx context.Context, roomID, email string, role models.Role) error {
	if role != models.RoleInterviewer {
		return nil
	}

	shell := &models.InterviewReport{
		RoomID:           roomID,
		InterviewerEmail: email,
		Status:           "ongoing",
		StartedAt:        time.Now().UTC(),
	}
	if interview, err := m.Interviews.GetByRoomID(roomID); err == nil {
		shell.InterviewID = interview.InterviewID
	}
	return m.Reports.UpsertShell(shell)
}

// RoomExit stamps the departing participant's authenticated email on the
// matching request and returns where to route them. Re-running the stamp
// with the same email is a no-op.
func (m *Manager) RoomExit(ctx context.Context, roomID, email string, role models.Role) (string, error) {
	var field string
	dest := DestDashboard
	switch role {
	case models.RoleInterviewer:
		field = "verified_interviewer_email"
		dest = DestReport
	case models.RoleCandidate:
		field = "verified_candidate_email"
	default:
		return DestDashboard, nil
	}

	err := m.Interviews.UpdatesByRoomID(roomID, map[string]any{field: email})
	if err != nil {
		if errors.Is(err, repositories.ErrInterviewNotFound) {
			m.Log.Warn("no interview matches room on exit", zap.String("roomId", roomID))
			return DestDashboard, err
		}
		return DestDashboard, err
	}

	m.Publisher.Publish(ctx, events.Event{
		Type:   events.TypeSessionEnded,
		RoomID: roomID,
		Email:  email,
	})
	return dest, nil
}

// SubmitReport completes an interview: it fills in the report shell,
// flips the request to completed and, when the interviewer's payout
// destination resolves, records exactly one pending settlement. A
// missing destination skips the settlement without failing the report.
func (m *Manager) SubmitReport(ctx context.Context, req models.SubmitReportRequest) error {
	if req.Rating < 1 || req.Rating > 5 {
		return ErrBadRating
	}
	if req.Verdict == "" {
		return fmt.Errorf("%w: verdict is required", ErrValidation)
	}

	shell, err := m.Reports.GetByRoomID(req.RoomID)
	if err != nil {
		return err
	}
	interview, err := m.Interviews.GetByRoomID(req.RoomID)
	if err != nil {
		return err
	}

	now := time.Now().UTC()
	err = m.Reports.Complete(req.RoomID, map[string]any{
		"rating":       req.Rating,
		"verdict":      req.Verdict,
		"status":       req.Status,
		"completed_at": now,
		"interview_id": interview.InterviewID,
	})
	if err != nil {
		return err
	}
	if err := m.Interviews.Updates(interview.InterviewID, map[string]any{
		"status": models.StatusCompleted,
	}); err != nil {
		return err
	}

	if interview.VerifiedCandidateEmail == "" {
		m.Log.Warn("report submitted for room with unverified candidate",
			zap.String("roomId", req.RoomID))
	}

	m.createSettlement(interview, shell.InterviewerEmail)

	m.Publisher.Publish(ctx, events.Event{
		Type:        events.TypeCompleted,
		InterviewID: interview.InterviewID,
		RoomID:      req.RoomID,
		Email:       shell.InterviewerEmail,
	})
	return nil
}

func (m *Manager) createSettlement(interview *models.InterviewRequest, interviewerEmail string) {
	profile, err := m.Profiles.GetByEmail(interviewerEmail)
	if err != nil || profile.PayoutDestination == "" {
		m.Log.Warn("payout destination unresolved, settlement skipped",
			zap.String("interviewId", interview.InterviewID),
			zap.String("interviewer", interviewerEmail))
		return
	}
	err = m.Settlements.CreateIfAbsent(&models.SettlementRecord{
		InterviewID:       interview.InterviewID,
		InterviewerEmail:  interviewerEmail,
		PayoutDestination: profile.PayoutDestination,
		SettlementStatus:  models.SettlementPending,
	})
	if err != nil {
		m.Log.Error("settlement record write failed",
			zap.String("interviewId", interview.InterviewID), zap.Error(err))
	}
}
