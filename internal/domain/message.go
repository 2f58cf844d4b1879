package domain

// Role identifies who authored a message.
type Role string

const (
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

// GeneralThread is the thread key used when no section is active.
const GeneralThread = "general"

// Message is a single entry in a conversation thread. Messages are
// append-only; once created they are never modified.
type Message struct {
	Role Role   `json:"role"`
	Text string `json:"text"`
}
