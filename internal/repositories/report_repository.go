package repositories

import (
	"errors"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/saiteja-29/V-Hire/internal/models"
)

var ErrReportNotFound = errors.New("report not found")

type ReportRepository struct {
	DB *gorm.DB
}

// UpsertShell writes the ongoing-report row for a room if none exists
// yet. Re-joins by the interviewer keep the original start timestamp.
func (r *ReportRepository) UpsertShell(report *models.InterviewReport) error {
	return r.DB.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "room_id"}},
		DoNothing: true,
	}).Create(report).Error
}

func (r *ReportRepository) GetByRoomID(roomID string) (*models.InterviewReport, error) {
	var report models.InterviewReport
	err := r.DB.First(&report, "room_id = ?", roomID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrReportNotFound
	}
	return &report, err
}

func (r *ReportRepository) GetByInterviewID(interviewID string) (*models.InterviewReport, error) {
	var report models.InterviewReport
	err := r.DB.First(&report, "interview_id = ?", interviewID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrReportNotFound
	}
	return &report, err
}

// Complete fills in the report body for a room. Retries overwrite the
// same keyed row rather than duplicating it.
func (r *ReportRepository) Complete(roomID string, fields map[string]any) error {
	res := r.DB.Model(&models.InterviewReport{}).Where("room_id = ?", roomID).Updates(fields)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrReportNotFound
	}
	return nil
}
