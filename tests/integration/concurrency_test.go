package integration

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestConcurrentExpenseCreation fires many expense creations at the same pair
// of users in parallel and verifies the resulting ledger is consistent: every
// accepted expense is visible in the listing and the two viewpoints stay
// exact mirrors of each other.
func TestConcurrentExpenseCreation(t *testing.T) {
	app := newTestApp(t)
	defer app.close()

	anaID := registerUser(t, app, "Ana", "ana@example.com")
	boID := registerUser(t, app, "Bo", "bo@example.com")
	anaToken, _ := login(t, app, "ana@example.com")
	boToken, _ := login(t, app, "bo@example.com")

	concurrency := 50
	amount := int64(200) // each expense puts Bo 100 in Ana's debt

	var wg sync.WaitGroup
	var created int64
	errors := make(chan string, concurrency)

	for i := 0; i < concurrency; i++ {
		wg.Add(1)
		go func(n int) {
			defer wg.Done()

			payload, _ := json.Marshal(map[string]any{
				"description":  fmt.Sprintf("Round %d", n),
				"amount":       amount,
				"split_method": "equal",
				"participants": []map[string]any{
					{"user_id": anaID},
					{"user_id": boID},
				},
			})

			req, err := http.NewRequest(http.MethodPost, app.server.URL+"/api/v1/expenses", bytes.NewReader(payload))
			if err != nil {
				errors <- err.Error()
				return
			}
			req.Header.Set("Content-Type", "application/json")
			req.Header.Set("Authorization", "Bearer "+anaToken)

			resp, err := http.DefaultClient.Do(req)
			if err != nil {
				errors <- err.Error()
				return
			}
			resp.Body.Close()

			if resp.StatusCode != http.StatusCreated {
				errors <- fmt.Sprintf("round %d: status %d", n, resp.StatusCode)
				return
			}
			atomic.AddInt64(&created, 1)
		}(i)
	}

	wg.Wait()
	close(errors)
	for e := range errors {
		t.Errorf("concurrent create failed: %s", e)
	}
	require.Equal(t, int64(concurrency), created, "all creations should succeed")

	// Every expense is visible.
	resp, body := getJSON(t, app.server.URL+"/api/v1/expenses?page=1&page_size=100", anaToken)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, float64(concurrency), body["data"].(map[string]interface{})["total"])

	// The ledger reflects every accepted expense, and both viewpoints agree.
	expected := float64(concurrency) * float64(amount/2)

	resp2, body2 := getJSON(t, app.server.URL+"/api/v1/balances", anaToken)
	require.Equal(t, http.StatusOK, resp2.StatusCode)
	anaBalances := body2["data"].(map[string]interface{})["balances"].([]interface{})
	require.Len(t, anaBalances, 1)
	assert.Equal(t, expected, anaBalances[0].(map[string]interface{})["net"])

	resp3, body3 := getJSON(t, app.server.URL+"/api/v1/balances", boToken)
	require.Equal(t, http.StatusOK, resp3.StatusCode)
	boBalances := body3["data"].(map[string]interface{})["balances"].([]interface{})
	require.Len(t, boBalances, 1)
	assert.Equal(t, -expected, boBalances[0].(map[string]interface{})["net"])
}
