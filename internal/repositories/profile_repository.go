package repositories

import (
	"errors"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/saiteja-29/V-Hire/internal/models"
)

var ErrProfileNotFound = errors.New("interviewer profile not found")

type ProfileRepository struct {
	DB *gorm.DB
}

func (r *ProfileRepository) Upsert(profile *models.InterviewerProfile) error {
	return r.DB.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "email"}},
		DoUpdates: clause.AssignmentColumns([]string{"payout_destination", "skills"}),
	}).Create(profile).Error
}

func (r *ProfileRepository) GetByEmail(email string) (*models.InterviewerProfile, error) {
	var profile models.InterviewerProfile
	err := r.DB.First(&profile, "email = ?", email).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrProfileNotFound
	}
	return &profile, err
}
