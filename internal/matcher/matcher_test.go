package matcher

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/saiteja-29/V-Hire/internal/models"
)

func request(id, recruitment string, skills []string, status models.InterviewStatus) models.InterviewRequest {
	return models.InterviewRequest{
		InterviewID:    id,
		RecruitmentID:  recruitment,
		CompanyName:    "Acme",
		Role:           "Backend Engineer",
		RequiredSkills: skills,
		Status:         status,
	}
}

func TestSuggestRequiresTwoOverlappingSkills(t *testing.T) {
	pool := []models.InterviewRequest{
		request("iv-1", "rec-1", []string{"React", "Node.js", "AWS"}, models.StatusUnscheduled),
	}

	groups := Suggest([]string{"React", "Node.js", "Docker"}, pool)
	assert.Len(t, groups, 1, "two overlapping skills must match")

	groups = Suggest([]string{"React", "Docker"}, pool)
	assert.Empty(t, groups, "one overlapping skill must not match")
}

func TestSuggestSingleSkillInterviewerNeverMatches(t *testing.T) {
	pool := []models.InterviewRequest{
		request("iv-1", "rec-1", []string{"Go"}, models.StatusUnscheduled),
		request("iv-2", "rec-2", []string{"Go", "Redis"}, models.StatusUnscheduled),
	}
	assert.Empty(t, Suggest([]string{"Go"}, pool))
}

func TestSuggestSkipsScheduledRequests(t *testing.T) {
	pool := []models.InterviewRequest{
		request("iv-1", "rec-1", []string{"Go", "Redis"}, models.StatusScheduled),
		request("iv-2", "rec-1", []string{"Go", "Redis"}, models.StatusUnscheduled),
		request("iv-3", "rec-1", []string{"Go", "Redis"}, models.StatusCompleted),
	}

	groups := Suggest([]string{"Go", "Redis"}, pool)
	assert.Len(t, groups, 1)
	assert.Len(t, groups[0].Interviews, 1)
	assert.Equal(t, "iv-2", groups[0].Interviews[0].InterviewID)
}

func TestSuggestGroupsByRecruitment(t *testing.T) {
	pool := []models.InterviewRequest{
		request("iv-1", "rec-a", []string{"Go", "Redis"}, models.StatusUnscheduled),
		request("iv-2", "rec-b", []string{"Go", "Redis", "AWS"}, models.StatusUnscheduled),
		request("iv-3", "rec-a", []string{"Go", "Redis"}, models.StatusUnscheduled),
	}

	groups := Suggest([]string{"Go", "Redis"}, pool)
	assert.Len(t, groups, 2)
	assert.Equal(t, "rec-a", groups[0].RecruitmentID)
	assert.Len(t, groups[0].Interviews, 2)
	assert.Equal(t, "rec-b", groups[1].RecruitmentID)
	assert.Len(t, groups[1].Interviews, 1)
}

func TestSuggestPreservesPoolOrder(t *testing.T) {
	pool := []models.InterviewRequest{
		request("iv-1", "rec-a", []string{"Go", "Redis"}, models.StatusUnscheduled),
		request("iv-2", "rec-a", []string{"Go", "Redis"}, models.StatusUnscheduled),
		request("iv-3", "rec-a", []string{"Go", "Redis"}, models.StatusUnscheduled),
	}

	groups := Suggest([]string{"Go", "Redis"}, pool)
	assert.Len(t, groups, 1)
	ids := make([]string, 0, 3)
	for _, iv := range groups[0].Interviews {
		ids = append(ids, iv.InterviewID)
	}
	assert.Equal(t, []string{"iv-1", "iv-2", "iv-3"}, ids)
}

func TestSuggestMoreSkillsNeverShrinksResults(t *testing.T) {
	pool := []models.InterviewRequest{
		request("iv-1", "rec-a", []string{"Go", "Redis"}, models.StatusUnscheduled),
		request("iv-2", "rec-b", []string{"AWS", "Docker"}, models.StatusUnscheduled),
	}

	narrow := Suggest([]string{"Go", "Redis"}, pool)
	wide := Suggest([]string{"Go", "Redis", "AWS", "Docker"}, pool)

	assert.GreaterOrEqual(t, len(wide), len(narrow))
	assert.Len(t, wide, 2)
}

func TestSuggestEmptyPool(t *testing.T) {
	assert.Empty(t, Suggest([]string{"Go", "Redis"}, nil))
}
