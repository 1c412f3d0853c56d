package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Queries under two characters must short-circuit before any database access;
// no collection handles are wired in these tests, so reaching the database
// would panic.
func TestSearchSuggestionsShortQuery(t *testing.T) {
	gin.SetMode(gin.TestMode)

	for _, q := range []string{"", "a"} {
		w := httptest.NewRecorder()
		c, _ := gin.CreateTestContext(w)
		c.Request = httptest.NewRequest(http.MethodGet, "/api/search-suggestions?q="+q, nil)

		SearchSuggestions(c)

		require.Equal(t, http.StatusOK, w.Code)

		var body struct {
			Suggestions []SuggestionGroup `json:"suggestions"`
		}
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
		assert.Empty(t, body.Suggestions)
	}
}
