package models

import "time"

type Language string

const (
	LangCPP        Language = "cpp"
	LangPython     Language = "python"
	LangJava       Language = "java"
	LangJavaScript Language = "javascript"
)

// ValidLanguage reports whether l is one of the supported editor languages.
func ValidLanguage(l Language) bool {
	switch l {
	case LangCPP, LangPython, LangJava, LangJavaScript:
		return true
	}
	return false
}

type InterviewStatus string

const (
	StatusUnscheduled InterviewStatus = "unscheduled"
	StatusScheduled   InterviewStatus = "scheduled"
	StatusCompleted   InterviewStatus = "completed"
)

type SettlementStatus string

const (
	SettlementPending  SettlementStatus = "pending"
	SettlementReceived SettlementStatus = "received"
)

type Role string

const (
	RoleInterviewer Role = "interviewer"
	RoleCandidate   Role = "candidate"
)

// InterviewRequest is one candidate's slot within a recruitment batch.
// Requests are never deleted; they are the audit trail the settlement
// sweep reconciles against.
type InterviewRequest struct {
	ID                       uint            `gorm:"primarykey" json:"-"`
	InterviewID              string          `gorm:"uniqueIndex;not null" json:"interviewId"`
	RecruitmentID            string          `gorm:"index;not null" json:"recruitmentId"`
	CompanyName              string          `json:"companyName"`
	Role                     string          `json:"role"`
	JobDescription           string          `json:"jobDescription"`
	Pointers                 string          `json:"pointers"`
	RequiredSkills           []string        `gorm:"serializer:json" json:"requiredSkills"`
	CandidateEmail           string          `gorm:"index" json:"candidateEmail"`
	InterviewerEmail         string          `gorm:"index" json:"interviewerEmail"`
	Deadline                 time.Time       `json:"deadline"`
	Status                   InterviewStatus `gorm:"index;default:unscheduled" json:"status"`
	RoomID                   string          `gorm:"index" json:"roomId"`
	ScheduledAt              *time.Time      `json:"scheduledAt"`
	VerifiedCandidateEmail   string          `json:"verifiedCandidateEmail"`
	VerifiedInterviewerEmail string          `json:"verifiedInterviewerEmail"`
	CreatedAt                time.Time       `json:"-"`
	UpdatedAt                time.Time       `json:"-"`
}

// InterviewReport is keyed by room, one per completed interview. A shell
// row (status ongoing) is written when the interviewer first joins the
// room; the closing flow fills in the rest.
type InterviewReport struct {
	ID               uint       `gorm:"primarykey" json:"-"`
	RoomID           string     `gorm:"uniqueIndex;not null" json:"roomId"`
	InterviewID      string     `gorm:"index" json:"interviewId"`
	InterviewerEmail string     `json:"interviewerEmail"`
	Rating           int        `json:"rating"`
	Verdict          string     `json:"verdict"`
	Status           string     `json:"status"`
	StartedAt        time.Time  `json:"startedAt"`
	CompletedAt      *time.Time `json:"completedAt"`
}

// SettlementRecord tracks the payout for one completed interview.
type SettlementRecord struct {
	ID                uint             `gorm:"primarykey" json:"-"`
	InterviewID       string           `gorm:"uniqueIndex;not null" json:"interviewId"`
	InterviewerEmail  string           `gorm:"index" json:"interviewerEmail"`
	PayoutDestination string           `json:"payoutDestination"`
	ProviderLinkID    string           `json:"providerLinkId"`
	ProviderLinkURL   string           `json:"providerLinkUrl"`
	SettlementStatus  SettlementStatus `gorm:"default:pending" json:"settlementStatus"`
	CreatedAt         time.Time        `json:"-"`
	UpdatedAt         time.Time        `json:"-"`
}

// InterviewerProfile holds an interviewer's declared skills and payout
// destination (a UPI handle).
type InterviewerProfile struct {
	ID                uint     `gorm:"primarykey" json:"-"`
	Email             string   `gorm:"uniqueIndex;not null" json:"email"`
	PayoutDestination string   `json:"payoutDestination"`
	Skills            []string `gorm:"serializer:json" json:"skills"`
}

/*** WebSocket frames ***/

type WSFrame struct {
	Type string `json:"type"` // "init","edit","language","error"
	Data any    `json:"data"`
}

type InitPayload struct {
	RoomID   string   `json:"roomId"`
	Text     string   `json:"text"`
	Language Language `json:"language"`
}

type EditPayload struct {
	Text string `json:"text"`
}

type LanguagePayload struct {
	Language Language `json:"language"`
}

/*** Request/response DTOs ***/

type CreateBatchRequest struct {
	CompanyName     string   `json:"companyName"`
	Role            string   `json:"role"`
	JobDescription  string   `json:"jobDescription"`
	Pointers        string   `json:"pointers"`
	Skills          []string `json:"skills"`
	Deadline        string   `json:"deadline"` // RFC 3339
	CandidateEmails []string `json:"candidateEmails"`
}

type CreateBatchResponse struct {
	RecruitmentID string   `json:"recruitmentId"`
	InterviewIDs  []string `json:"interviewIds"`
}

type ScheduleItem struct {
	InterviewID string `json:"interviewId"`
	ScheduledAt string `json:"scheduledAt"` // RFC 3339
}

type ScheduleRequest struct {
	InterviewerEmail string         `json:"interviewerEmail"`
	Items            []ScheduleItem `json:"items"`
}

type ScheduleResult struct {
	InterviewID string `json:"interviewId"`
	RoomID      string `json:"roomId,omitempty"`
	Error       string `json:"error,omitempty"`
}

type SubmitReportRequest struct {
	RoomID  string `json:"roomId"`
	Rating  int    `json:"rating"`
	Verdict string `json:"verdict"`
	Status  string `json:"status"`
}

type CreateSettlementRequest struct {
	InterviewID string `json:"interviewId"`
	Amount      int64  `json:"amount"` // minor units
}

type RunRequest struct {
	Language Language `json:"language"`
	Code     string   `json:"code"`
}

type RunResponse struct {
	Output string `json:"output"`
}

type RoomTokenRequest struct {
	RoomID string `json:"roomId"`
	Email  string `json:"email"`
	Role   Role   `json:"role"`
}

type ErrorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// SuggestionGroup is one recruitment batch in the matcher output. The
// descriptive fields come from a single representative request so a batch
// of identical postings renders once.
type SuggestionGroup struct {
	RecruitmentID string             `json:"recruitmentId"`
	CompanyName   string             `json:"companyName"`
	Role          string             `json:"role"`
	JobDescription string            `json:"jobDescription"`
	Deadline      time.Time          `json:"deadline"`
	Skills        []string           `json:"skills"`
	Interviews    []InterviewRequest `json:"interviews"`
}
