package testutil

import (
	"encoding/json"
	"io"
	"net/http"
	"testing"

	"github.com/podcastsite/backend/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// AssertStatusCode verifies the HTTP response status code
func AssertStatusCode(t *testing.T, resp *http.Response, expected int) {
	t.Helper()
	assert.Equal(t, expected, resp.StatusCode, "unexpected status code")
}

// AssertJSONResponse decodes JSON response into v and verifies success
func AssertJSONResponse(t *testing.T, resp *http.Response, v interface{}) {
	t.Helper()

	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err, "failed to read response body")

	err = json.Unmarshal(body, v)
	require.NoError(t, err, "failed to unmarshal response: %s", string(body))
}

// AssertErrorResponse verifies status and the "error" field of a JSON body
func AssertErrorResponse(t *testing.T, resp *http.Response, expectedStatus int, expectedMessage string) {
	t.Helper()

	assert.Equal(t, expectedStatus, resp.StatusCode, "unexpected status code")

	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err, "failed to read response body")

	var payload struct {
		Error string `json:"error"`
	}
	require.NoError(t, json.Unmarshal(body, &payload), "error body is not JSON: %s", string(body))
	assert.Equal(t, expectedMessage, payload.Error, "error message mismatch")
}

// AssertSlotBindings verifies slots has nine entries in position order with
// exactly the given video bindings; every other position must be empty.
func AssertSlotBindings(t *testing.T, slots []*domain.Slot, bindings map[int]string) {
	t.Helper()

	require.Len(t, slots, domain.SlotCount, "unexpected slot count")
	for i, slot := range slots {
		assert.Equal(t, i+1, slot.Position, "slots out of order")
		want, bound := bindings[slot.Position]
		if !bound {
			assert.Nil(t, slot.VideoID, "position %d should be empty", slot.Position)
			continue
		}
		if assert.NotNil(t, slot.VideoID, "position %d should be bound", slot.Position) {
			assert.Equal(t, want, *slot.VideoID, "position %d bound to wrong video", slot.Position)
		}
	}
}
