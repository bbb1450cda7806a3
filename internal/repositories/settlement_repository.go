package repositories

import (
	"errors"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/saiteja-29/V-Hire/internal/models"
)

var ErrSettlementNotFound = errors.New("settlement not found")

type SettlementRepository struct {
	DB *gorm.DB
}

// Upsert merges the record keyed by interviewId. At most one settlement
// row may exist per interview.
func (r *SettlementRepository) Upsert(rec *models.SettlementRecord) error {
	return r.DB.Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "interview_id"}},
		DoUpdates: clause.AssignmentColumns([]string{
			"interviewer_email", "payout_destination",
			"provider_link_id", "provider_link_url", "settlement_status",
		}),
	}).Create(rec).Error
}

// CreateIfAbsent writes the record only when no settlement exists for
// the interview yet, so a report retry cannot clobber provider fields.
func (r *SettlementRepository) CreateIfAbsent(rec *models.SettlementRecord) error {
	return r.DB.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "interview_id"}},
		DoNothing: true,
	}).Create(rec).Error
}

func (r *SettlementRepository) GetByInterviewID(interviewID string) (*models.SettlementRecord, error) {
	var rec models.SettlementRecord
	err := r.DB.First(&rec, "interview_id = ?", interviewID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrSettlementNotFound
	}
	return &rec, err
}

func (r *SettlementRepository) ListAll() ([]models.SettlementRecord, error) {
	var recs []models.SettlementRecord
	err := r.DB.Order("id").Find(&recs).Error
	return recs, err
}

func (r *SettlementRepository) MarkReceived(interviewID string) error {
	res := r.DB.Model(&models.SettlementRecord{}).
		Where("interview_id = ?", interviewID).
		Update("settlement_status", models.SettlementReceived)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrSettlementNotFound
	}
	return nil
}

func (r *SettlementRepository) DeleteByInterviewID(interviewID string) error {
	return r.DB.Delete(&models.SettlementRecord{}, "interview_id = ?", interviewID).Error
}
