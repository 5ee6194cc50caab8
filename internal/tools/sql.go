package tools

import (
	"fmt"

	"codeberg.org/devassist/server/internal/budget"
	"codeberg.org/devassist/server/internal/llm"
	"codeberg.org/devassist/server/internal/validator"
)

const (
	sqlThreshold        = 70
	sqlMaxTokens        = 1500
	explanationMaxToken = 1500
	sqlReject           = "I can only optimize SQL queries. Please paste the SQL query you'd like me to improve."
)

var SQL = Tool{
	Name: "sql",
	Policy: validator.Policy{
		Tool:          "sql",
		Threshold:     sqlThreshold,
		RejectMessage: sqlReject,
		BuildPrompt: func(input string) string {
			return validationPrompt("SQL Query Optimizer", "a SQL query to optimize", sqlThreshold, []string{
				"Answer general questions",
				"Design whole database schemas from scratch",
				"Write application code",
			}, sqlReject, input)
		},
	},
	Budget:        budget.Options{MaxTokens: sqlMaxTokens, StripFences: true},
	LimitMessage:  limitMessage(sqlMaxTokens),
	FailurePrefix: processFailurePrefix,
	Generate: func(query string) llm.Request {
		return llm.Request{
			System: `You are a database performance expert. Rewrite the given SQL query so it returns the same result faster.
Avoid SELECT *, prefer joins over correlated subqueries, make predicates sargable, and keep the query portable unless the dialect is obvious.
Return ONLY the optimized SQL query, no explanations, no markdown code blocks, no additional text.`,
			Prompt:          fmt.Sprintf("Optimize this SQL query:\n\n%s", query),
			Temperature:     0.3,
			MaxOutputTokens: 2500,
		}
	},
	Helpful: func(query string) llm.Request {
		return helpfulRequest("SQL query optimization", "paste the SQL query they'd like optimized", query)
	},
}

// explains what changed between the original and optimized query
func SQLExplanation(original, optimized string) Task {
	return Task{
		Name: "sql-explain",
		Request: llm.Request{
			System: `You are a database performance expert explaining an optimization to a developer.
Use Markdown. List each change, why it is faster, and any index that would help further. Be concise.`,
			Prompt:          fmt.Sprintf("Original query:\n%s\n\nOptimized query:\n%s\n\nExplain the optimizations.", original, optimized),
			Temperature:     0.5,
			MaxOutputTokens: 2000,
		},
		Budget:        budget.Options{MaxTokens: explanationMaxToken},
		LimitMessage:  "Token limit reached. Explanation truncated.",
		FailurePrefix: processFailurePrefix,
	}
}
