package matcher

import "github.com/saiteja-29/V-Hire/internal/models"

// MinSkillOverlap is the fixed threshold for surfacing a request to an
// interviewer. An interviewer declaring fewer than 2 skills never
// matches anything.
const MinSkillOverlap = 2

// Suggest returns the unscheduled requests relevant to an interviewer,
// grouped by recruitment batch. Group order and the order of requests
// within a group follow the insertion order of the pool; no further
// ranking is applied.
func Suggest(interviewerSkills []string, pool []models.InterviewRequest) []models.SuggestionGroup {
	declared := make(map[string]struct{}, len(interviewerSkills))
	for _, s := range interviewerSkills {
		declared[s] = struct{}{}
	}

	byRecruitment := make(map[string]int)
	groups := make([]models.SuggestionGroup, 0)

	for _, req := range pool {
		if req.Status != models.StatusUnscheduled {
			continue
		}
		if overlap(req.RequiredSkills, declared) < MinSkillOverlap {
			continue
		}

		idx, ok := byRecruitment[req.RecruitmentID]
		if !ok {
			idx = len(groups)
			byRecruitment[req.RecruitmentID] = idx
			groups = append(groups, models.SuggestionGroup{
				RecruitmentID:  req.RecruitmentID,
				CompanyName:    req.CompanyName,
				Role:           req.Role,
				JobDescription: req.JobDescription,
				Deadline:       req.Deadline,
				Skills:         req.RequiredSkills,
			})
		}
		groups[idx].Interviews = append(groups[idx].Interviews, req)
	}
	return groups
}

func overlap(required []string, declared map[string]struct{}) int {
	n := 0
	for _, s := range required {
		if _, ok := declared[s]; ok {
			n++
		}
	}
	return n
}
