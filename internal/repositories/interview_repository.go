package repositories

import (
	"errors"

	"gorm.io/gorm"

	"github.com/saiteja-29/V-Hire/internal/models"
)

var ErrInterviewNotFound = errors.New("interview not found")

type InterviewRepository struct {
	DB *gorm.DB
}

func (r *InterviewRepository) Create(req *models.InterviewRequest) error {
	return r.DB.Create(req).Error
}

func (r *InterviewRepository) GetByInterviewID(interviewID string) (*models.InterviewRequest, error) {
	var req models.InterviewRequest
	err := r.DB.First(&req, "interview_id = ?", interviewID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrInterviewNotFound
	}
	return &req, err
}

func (r *InterviewRepository) GetByRoomID(roomID string) (*models.InterviewRequest, error) {
	var req models.InterviewRequest
	err := r.DB.First(&req, "room_id = ?", roomID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrInterviewNotFound
	}
	return &req, err
}

// ListByStatus returns requests in creation order, the order the matcher
// treats as stable.
func (r *InterviewRepository) ListByStatus(status models.InterviewStatus) ([]models.InterviewRequest, error) {
	var reqs []models.InterviewRequest
	err := r.DB.Order("id").Find(&reqs, "status = ?", status).Error
	return reqs, err
}

func (r *InterviewRepository) ListAll() ([]models.InterviewRequest, error) {
	var reqs []models.InterviewRequest
	err := r.DB.Order("id").Find(&reqs).Error
	return reqs, err
}

// Updates merge-updates the request matched by interviewId.
func (r *InterviewRepository) Updates(interviewID string, fields map[string]any) error {
	res := r.DB.Model(&models.InterviewRequest{}).Where("interview_id = ?", interviewID).Updates(fields)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrInterviewNotFound
	}
	return nil
}

// UpdatesByRoomID merge-updates the request matched by roomId. Room is
// the only identifier known client-side during a live session.
func (r *InterviewRepository) UpdatesByRoomID(roomID string, fields map[string]any) error {
	res := r.DB.Model(&models.InterviewRequest{}).Where("room_id = ?", roomID).Updates(fields)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrInterviewNotFound
	}
	return nil
}
