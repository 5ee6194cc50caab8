package components

// request payload for React component generation
type GenerateRequest struct {
	Description string `json:"description" example:"A pricing card with three tiers and a highlighted plan"`
	Provider    string `json:"provider" example:"openai"`
}
