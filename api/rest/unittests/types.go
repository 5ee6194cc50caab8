package unittests

// request payload for unit-test generation
type GenerateRequest struct {
	Code     string `json:"code" example:"def add(a, b):\n    return a + b"`
	Provider string `json:"provider" example:"gemini"`
}
