package dto

import "time"

// FilePayload is one uploaded document: a file name plus base64-encoded
// content (optionally a data URI).
type FilePayload struct {
	Name string `json:"name"`
	Data string `json:"data"`
}

// Customization carries caller-selected generation parameters.
type Customization struct {
	NumQuestions int    `json:"numQuestions"`
	Model        string `json:"model"`
	Difficulty   string `json:"difficulty"`
}

// GenerateQuizRequest is the body of POST /api/generate-quiz.
type GenerateQuizRequest struct {
	Files         []FilePayload  `json:"files"`
	Customization *Customization `json:"customization"`
}

// QuestionResponse represents one question in the API response
type QuestionResponse struct {
	Question      string   `json:"question"`
	Options       []string `json:"options"`
	CorrectAnswer int      `json:"correctAnswer"`
	Explanation   string   `json:"explanation,omitempty"`
}

// GenerateQuizResponse is the success envelope of POST /api/generate-quiz.
// DegradedReason is set when the quiz came from a fallback path; the quiz is
// schema-valid either way.
type GenerateQuizResponse struct {
	Success        bool               `json:"success"`
	ID             string             `json:"id"`
	Title          string             `json:"title"`
	Questions      []QuestionResponse `json:"questions"`
	CreatedAt      time.Time          `json:"createdAt"`
	PDFName        string             `json:"pdfName"`
	DegradedReason string             `json:"degraded_reason,omitempty"`
}

// ArchivedQuiz represents one quiz in the archive endpoints.
type ArchivedQuiz struct {
	ID         string             `json:"id"`
	Title      string             `json:"title"`
	Questions  []QuestionResponse `json:"questions"`
	CreatedAt  time.Time          `json:"createdAt"`
	SourceName string             `json:"pdfName"`
}

// BackupRequest is the body of POST /api/quizzes/backup.
type BackupRequest struct {
	Quizzes []ArchivedQuiz `json:"quizzes"`
}

// BackupResponse reports the archive size after a merge.
type BackupResponse struct {
	Success bool  `json:"success"`
	Count   int64 `json:"count"`
}

// AnalyticsRequest is the body of POST /api/analytics.
type AnalyticsRequest struct {
	Event string                 `json:"event"`
	Data  map[string]interface{} `json:"data"`
}

// SuccessResponse is the minimal acknowledgment envelope.
type SuccessResponse struct {
	Success bool `json:"success"`
}

// HealthResponse is the body of GET /api/health.
type HealthResponse struct {
	Status    string    `json:"status"`
	Timestamp time.Time `json:"timestamp"`
}

// ErrorResponse represents an error in the API response
type ErrorResponse struct {
	Error string `json:"error"`
	Code  string `json:"code,omitempty"`
}
