package dispatch_test

import (
	"context"
	"testing"

	"hushh-site-backend/pkg/dispatch"

	"github.com/jarcoal/httpmock"
	"github.com/stretchr/testify/assert"
)

const testURL = "https://dispatch.example.com/send-email"

func TestDispatch(t *testing.T) {
	cl := dispatch.New(testURL, true)
	defer httpmock.DeactivateAndReset()

	payload := map[string]string{"name": "Ada", "email": "ada@example.com"}

	t.Run("Should succeed on 2xx", func(t *testing.T) {
		httpmock.Reset()
		httpmock.RegisterResponder("POST", testURL,
			httpmock.NewStringResponder(200, `{"status":"ok"}`))

		err := cl.Dispatch(context.Background(), payload)
		assert.NoError(t, err)
		assert.Equal(t, 1, httpmock.GetTotalCallCount())
	})

	t.Run("Should fail on server error without retrying", func(t *testing.T) {
		httpmock.Reset()
		httpmock.RegisterResponder("POST", testURL,
			httpmock.NewStringResponder(500, `{"status":"error"}`))

		err := cl.Dispatch(context.Background(), payload)
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "status 500")
		assert.Equal(t, 1, httpmock.GetTotalCallCount())
	})

	t.Run("Should surface transport errors", func(t *testing.T) {
		httpmock.Reset()
		httpmock.RegisterResponder("POST", testURL,
			httpmock.NewErrorResponder(assert.AnError))

		err := cl.Dispatch(context.Background(), payload)
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "dispatch request failed")
	})
}

func TestURL(t *testing.T) {
	cl := dispatch.New(testURL, true)
	assert.Equal(t, testURL, cl.URL())
}
