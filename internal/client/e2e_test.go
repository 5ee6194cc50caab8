package client

import (
	"context"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"codeberg.org/devassist/server/api/rest/shared/resttest"
	"codeberg.org/devassist/server/api/rest/sql"
	"codeberg.org/devassist/server/internal/llm"
	"codeberg.org/devassist/server/internal/llm/llmtest"
)

func TestOptimizeSQL_AgainstServer(t *testing.T) {
	provider := llmtest.New(llm.OpenAI).
		QueueCompletion(`{"isValid": true, "relevance": 97}`, nil).
		QueueStream([]string{"```sql\n", "SELECT id, email\nFROM users\nWHERE active;\n", "```"}, nil).
		QueueStream([]string{"- **Projection**: only the needed columns are read.\n"}, nil)

	srv := httptest.NewServer(resttest.Router(llmtest.Source{llm.OpenAI: provider}, sql.RegisterRoutes))
	defer srv.Close()

	out, err := New(srv.URL).OptimizeSQL(context.Background(), "openai", "SELECT * FROM users WHERE active = true", nil)
	require.NoError(t, err)

	assert.Equal(t, "SELECT id, email\nFROM users\nWHERE active;\n", out.Query.Artifact)
	require.NotNil(t, out.Explanation)
	assert.Equal(t, "- **Projection**: only the needed columns are read.\n", out.Explanation.Artifact)

	reqs := provider.Requests()
	require.Len(t, reqs, 3)
	assert.Contains(t, reqs[2].Prompt, "Original query:\nSELECT * FROM users WHERE active = true")
	assert.Contains(t, reqs[2].Prompt, "Optimized query:\nSELECT id, email\nFROM users\nWHERE active;")
}
