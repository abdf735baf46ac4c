package constants

import "time"

// Session and context keys
const (
	SessionCookieName = "study_session"
	ContextKeyUserID  = "user_id"
	ContextKeyTaskID  = "task_id"
	ContextKeyRequest = "request_id"
	HeaderRequestID   = "X-Request-ID"
)

// Session lifetime
const SessionMaxAge = 86400 * 7

// DefaultSessionSecret is only acceptable outside release mode.
const DefaultSessionSecret = "dev-secret"

// DateLayout is the wire and CSV format for task dates.
const DateLayout = "2006-01-02"

// Validation bounds
const (
	MinPasswordLength = 6
	MaxUsernameLength = 80
	MaxEmailLength    = 120
	MaxTaskNameLength = 200
	MaxTaskTypeLength = 50
	MaxKeyPointLength = 500
	MinDifficulty     = 1
	MaxDifficulty     = 5
	MinEstimatedHours = 0
	MaxEstimatedHours = 1000
)

// Study bot
const (
	DefaultChatBaseURL = "https://api.groq.com/openai/v1"
	DefaultChatModel   = "meta-llama/llama-4-scout-17b-16e-instruct"
	DefaultChatTimeout = 30 * time.Second
	ChatFallbackReply  = "StudyBot is facing issues. Please try again shortly."
	ChatEmptyReply     = "Please provide a message."
	ChatRateWindow     = time.Minute
	ChatRateKeyPrefix  = "studybot:rate:"
)
