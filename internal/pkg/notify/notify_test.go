package notify

import (
	"io"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNtfyNotifierDelivers(t *testing.T) {
	var mu sync.Mutex
	var titles []string
	var bodies []string

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, _ := io.ReadAll(r.Body)
		mu.Lock()
		titles = append(titles, r.Header.Get("Title"))
		bodies = append(bodies, string(body))
		mu.Unlock()
	}))
	defer srv.Close()

	n := NewNtfyNotifier(srv.URL, "notestack", 8)
	n.Publish(Message{Title: "Note approved", Body: "Sorting lecture is now public"})
	n.Publish(Message{Title: "Note denied", Body: "Low quality scan removed"})
	n.Close()

	mu.Lock()
	defer mu.Unlock()
	require.Len(t, titles, 2)
	assert.Equal(t, "Note approved", titles[0])
	assert.Equal(t, "Sorting lecture is now public", bodies[0])
	assert.Equal(t, "Note denied", titles[1])
}

func TestNtfyNotifierEndpointFailureDoesNotPanic(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	n := NewNtfyNotifier(srv.URL, "notestack", 1)
	n.Publish(Message{Title: "x", Body: "y"})
	n.Close()
}

func TestNoopNotifier(t *testing.T) {
	var n Notifier = Noop{}
	n.Publish(Message{Title: "ignored"})
}
