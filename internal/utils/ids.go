package utils

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
)

// NewRecruitmentID identifies one job posting's batch of requests.
func NewRecruitmentID() string { return uuid.New().String() }

// NewInterviewID embeds a unix-millisecond suffix so the payout queue
// can order records newest-first without a separate column.
func NewInterviewID() string {
	return fmt.Sprintf("%s-%d", uuid.New().String()[:8], time.Now().UnixMilli())
}

// InterviewIDTimestamp extracts the numeric suffix of an interview id.
// Returns 0 for ids without one; ordering treats those as oldest.
func InterviewIDTimestamp(interviewID string) int64 {
	idx := strings.LastIndex(interviewID, "-")
	if idx < 0 || idx == len(interviewID)-1 {
		return 0
	}
	ts, err := strconv.ParseInt(interviewID[idx+1:], 10, 64)
	if err != nil {
		return 0
	}
	return ts
}

// NewRoomID mints a collision-resistant room token.
func NewRoomID() string { return uuid.New().String() }
