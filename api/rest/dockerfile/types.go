package dockerfile

// request payload for Dockerfile generation
type GenerateRequest struct {
	Description string `json:"description" example:"Node.js 20 Express API listening on port 3000"`
	Provider    string `json:"provider" example:"openai"`
}
