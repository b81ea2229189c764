package model

// ModelRole selects which configured model serves a completion.
type ModelRole string

const (
	ModelRoleExtractor ModelRole = "extractor"
	ModelRolePlanner   ModelRole = "planner"
	ModelRoleChat      ModelRole = "chat"
	ModelRoleSummary   ModelRole = "summary"
)

// CompletionRequest is one text completion call.
type CompletionRequest struct {
	// Model is the provider model identifier. Empty means the backend default.
	Model       string
	Messages    []Message
	Temperature float64
}
