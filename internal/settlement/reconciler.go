package settlement

import (
	"context"
	"errors"
	"fmt"
	"sort"

	"go.uber.org/zap"

	"github.com/saiteja-29/V-Hire/internal/models"
	"github.com/saiteja-29/V-Hire/internal/payment"
	"github.com/saiteja-29/V-Hire/internal/repositories"
	"github.com/saiteja-29/V-Hire/internal/utils"
)

var ErrValidation = errors.New("validation failed")

// Reconciler keeps the settlement ledger consistent with verified
// interview completion. It only ever mutates derived settlement rows;
// interview and report records are read-only to it.
type Reconciler struct {
	Settlements *repositories.SettlementRepository
	Interviews  *repositories.InterviewRepository
	Provider    payment.LinkProvider
	Log         *zap.Logger
}

// CreateLink mints a provider payment link and merges it into the
// record for the interview. No record is written when the provider call
// fails. Idempotent per interview id.
func (r *Reconciler) CreateLink(ctx context.Context, interviewID, interviewerEmail, payoutDestination string, amountMinor int64) (*models.SettlementRecord, error) {
	if interviewID == "" || interviewerEmail == "" {
		return nil, fmt.Errorf("%w: interviewId and interviewerEmail are required", ErrValidation)
	}
	if amountMinor <= 0 {
		return nil, fmt.Errorf("%w: amount must be positive", ErrValidation)
	}

	description := fmt.Sprintf("Payment for Interview - %s", interviewID)
	link, err := r.Provider.CreateLink(ctx, amountMinor, "INR", description, interviewerEmail)
	if err != nil {
		return nil, err
	}

	rec := &models.SettlementRecord{
		InterviewID:       interviewID,
		InterviewerEmail:  interviewerEmail,
		PayoutDestination: payoutDestination,
		ProviderLinkID:    link.ID,
		ProviderLinkURL:   link.ShortURL,
		SettlementStatus:  models.SettlementPending,
	}
	if err := r.Settlements.Upsert(rec); err != nil {
		return nil, err
	}
	return r.Settlements.GetByInterviewID(interviewID)
}

// CheckStatus polls the provider and flips the record to received when
// the provider reports paid. This is the only path out of pending; a
// provider timeout leaves the record pending rather than erroring the
// ledger.
func (r *Reconciler) CheckStatus(ctx context.Context, interviewID string) (models.SettlementStatus, error) {
	rec, err := r.Settlements.GetByInterviewID(interviewID)
	if err != nil {
		return "", err
	}
	if rec.SettlementStatus == models.SettlementReceived {
		return models.SettlementReceived, nil
	}
	if rec.ProviderLinkID == "" {
		return models.SettlementPending, nil
	}

	status, err := r.Provider.FetchLinkStatus(ctx, rec.ProviderLinkID)
	if err != nil {
		r.Log.Warn("provider status fetch failed",
			zap.String("interviewId", interviewID), zap.Error(err))
		return models.SettlementPending, nil
	}
	if status != payment.LinkStatusPaid {
		return models.SettlementPending, nil
	}

	if err := r.Settlements.MarkReceived(interviewID); err != nil {
		return models.SettlementPending, err
	}
	return models.SettlementReceived, nil
}

// SweepInvalid deletes every unresolved settlement whose owning request
// is missing, not completed, or whose verified participant identities do
// not match the declared ones. Received records are left alone. Running
// the sweep twice with no intervening change deletes nothing new.
func (r *Reconciler) SweepInvalid(ctx context.Context) (int, error) {
	records, err := r.Settlements.ListAll()
	if err != nil {
		return 0, err
	}
	interviews, err := r.Interviews.ListAll()
	if err != nil {
		return 0, err
	}
	byID := make(map[string]models.InterviewRequest, len(interviews))
	for _, iv := range interviews {
		byID[iv.InterviewID] = iv
	}

	deleted := 0
	for _, rec := range records {
		if rec.SettlementStatus == models.SettlementReceived {
			continue
		}
		if settlementValid(rec, byID) {
			continue
		}
		if err := r.Settlements.DeleteByInterviewID(rec.InterviewID); err != nil {
			r.Log.Error("sweep delete failed",
				zap.String("interviewId", rec.InterviewID), zap.Error(err))
			continue
		}
		r.Log.Info("swept invalid settlement", zap.String("interviewId", rec.InterviewID))
		deleted++
	}
	return deleted, nil
}

func settlementValid(rec models.SettlementRecord, interviews map[string]models.InterviewRequest) bool {
	iv, ok := interviews[rec.InterviewID]
	if !ok {
		return false
	}
	return iv.Status == models.StatusCompleted &&
		iv.VerifiedCandidateEmail == iv.CandidateEmail &&
		iv.VerifiedInterviewerEmail == iv.InterviewerEmail
}

// PendingQueue sweeps, then lists the surviving pending records newest
// first by the timestamp suffix embedded in the interview id.
func (r *Reconciler) PendingQueue(ctx context.Context) ([]models.SettlementRecord, error) {
	if _, err := r.SweepInvalid(ctx); err != nil {
		return nil, err
	}
	records, err := r.Settlements.ListAll()
	if err != nil {
		return nil, err
	}
	pending := records[:0]
	for _, rec := range records {
		if rec.SettlementStatus == models.SettlementPending {
			pending = append(pending, rec)
		}
	}
	sort.SliceStable(pending, func(i, j int) bool {
		return utils.InterviewIDTimestamp(pending[i].InterviewID) >
			utils.InterviewIDTimestamp(pending[j].InterviewID)
	})
	return pending, nil
}
