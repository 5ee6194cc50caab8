package sql

const (
	ModeOptimize = "optimize"
	ModeExplain  = "explain"
)

// request payload for the SQL optimizer; optimize needs Query, explain needs both original and optimized
type OptimizeRequest struct {
	Query          string `json:"query,omitempty" example:"SELECT * FROM orders WHERE YEAR(created_at) = 2024"`
	OriginalQuery  string `json:"originalQuery,omitempty"`
	OptimizedQuery string `json:"optimizedQuery,omitempty"`
	Provider       string `json:"provider" example:"openai"`
	Mode           string `json:"mode" enums:"optimize,explain"`
}
