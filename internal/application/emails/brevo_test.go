package emails

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBrevoClient_EmptyKeyIsNoOp(t *testing.T) {
	called := false
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		called = true
	}))
	defer srv.Close()

	c := &BrevoClient{Endpoint: srv.URL}
	err := c.SendContactNotification(context.Background(), ContactNotification{
		Name: "Jordan", Email: "jordan@example.com", Message: "hello",
	})
	require.NoError(t, err)
	assert.False(t, called)
}

func TestBrevoClient_SendsContactNotification(t *testing.T) {
	var got BrevoSendRequest
	var apiKey string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		apiKey = r.Header.Get("api-key")
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		w.WriteHeader(http.StatusCreated)
	}))
	defer srv.Close()

	c := &BrevoClient{
		APIKey:       "key-123",
		MailFrom:     "noreply@bmsacademy.com",
		ContactEmail: "info@bmsacademy.com",
		Endpoint:     srv.URL,
	}
	err := c.SendContactNotification(context.Background(), ContactNotification{
		Name:    "Jordan <script>",
		Email:   "jordan@example.com",
		Message: "line one\nline two",
	})
	require.NoError(t, err)

	assert.Equal(t, "key-123", apiKey)
	assert.Equal(t, "noreply@bmsacademy.com", got.Sender.Email)
	require.Len(t, got.To, 1)
	assert.Equal(t, "info@bmsacademy.com", got.To[0].Email)
	require.NotNil(t, got.ReplyTo)
	assert.Equal(t, "jordan@example.com", got.ReplyTo.Email)
	assert.Contains(t, got.Subject, "Jordan")
	assert.Contains(t, got.HTMLContent, "Jordan &lt;script&gt;")
	assert.Contains(t, got.HTMLContent, "line one<br>line two")
	assert.NotContains(t, got.HTMLContent, "<script>")
}

func TestBrevoClient_SendsEnrollmentNotification(t *testing.T) {
	var got BrevoSendRequest
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		w.WriteHeader(http.StatusCreated)
	}))
	defer srv.Close()

	c := &BrevoClient{APIKey: "key-123", Endpoint: srv.URL}
	err := c.SendEnrollmentNotification(context.Background(), EnrollmentNotification{
		FirstName: "Asha", LastName: "Nair",
		Email: "asha@example.com", Phone: "123",
		Course: "Full Stack Development", StartDate: "2026-09-15",
	})
	require.NoError(t, err)

	assert.Equal(t, "New Course Enrollment: Asha Nair", got.Subject)
	assert.Contains(t, got.HTMLContent, "Full Stack Development")
}

// Two public submissions can dispatch sends on the same client at once; this
// fails under the race detector if send mutates shared state.
func TestBrevoClient_ConcurrentSends(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		w.WriteHeader(http.StatusCreated)
	}))
	defer srv.Close()

	c := &BrevoClient{APIKey: "key-123", Endpoint: srv.URL}

	const sends = 8
	errs := make(chan error, sends)
	var wg sync.WaitGroup
	for i := 0; i < sends; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			errs <- c.SendContactNotification(context.Background(), ContactNotification{
				Name: "Jordan", Email: "jordan@example.com", Message: "hello",
			})
		}()
	}
	wg.Wait()
	close(errs)

	for err := range errs {
		require.NoError(t, err)
	}
	assert.EqualValues(t, sends, calls.Load())
}

func TestBrevoClient_NonSuccessStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	}))
	defer srv.Close()

	c := &BrevoClient{APIKey: "bad-key", Endpoint: srv.URL}
	err := c.SendContactNotification(context.Background(), ContactNotification{
		Name: "Jordan", Email: "jordan@example.com", Message: "hello",
	})
	assert.Error(t, err)
}
