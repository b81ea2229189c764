package model

// Role is the speaker of a conversation turn.
type Role string

const (
	RoleSystem    Role = "system"
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

// Valid reports whether the role is one of the known roles.
func (r Role) Valid() bool {
	switch r {
	case RoleSystem, RoleUser, RoleAssistant:
		return true
	}
	return false
}

// Message is one conversation turn.
type Message struct {
	Role    Role
	Content string
}

// IncomingMessage is a user message with the prior conversation. It is not
// modified while being routed.
type IncomingMessage struct {
	Text    string
	History []Message
}

// Conversation returns a new slice holding the history followed by the
// current user turn.
func (m IncomingMessage) Conversation() []Message {
	out := make([]Message, 0, len(m.History)+1)
	out = append(out, m.History...)
	return append(out, Message{Role: RoleUser, Content: m.Text})
}

// Intent is the handling path a message was routed to.
type Intent string

const (
	IntentMemory Intent = "memory"
	IntentPlan   Intent = "plan"
	IntentChat   Intent = "chat"
)

// RoutedReply is the result of routing one message.
type RoutedReply struct {
	Reply  string
	Intent Intent

	// Set only when a plan was generated.
	Parameters *StudyParameters
}
