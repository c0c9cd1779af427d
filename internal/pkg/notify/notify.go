// Package notify pushes best-effort notifications to an ntfy-style
// pub/sub endpoint on mutating admin actions. Delivery is decoupled from
// the request lifecycle: callers enqueue and return immediately, a
// single worker drains the queue, and failures are logged, never
// propagated.
package notify

import (
	"context"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/nucesstack/notestack/internal/pkg/logger"
)

// Message is a single notification.
type Message struct {
	Title string
	Body  string
}

// Notifier accepts fire-and-forget notifications.
type Notifier interface {
	Publish(msg Message)
}

// Noop discards every message. Used when no topic is configured.
type Noop struct{}

// Publish implements Notifier.
func (Noop) Publish(Message) {}

// NtfyNotifier posts messages to <baseURL>/<topic> through a background
// worker. Close drains the queue and stops the worker.
type NtfyNotifier struct {
	endpoint string
	http     *http.Client
	queue    chan Message
	done     chan struct{}
	once     sync.Once
}

// NewNtfyNotifier creates a notifier and starts its worker. queueSize
// bounds the number of pending messages; when the queue is full new
// messages are dropped (and the drop is logged) rather than blocking
// the request that produced them.
func NewNtfyNotifier(baseURL, topic string, queueSize int) *NtfyNotifier {
	if queueSize <= 0 {
		queueSize = 64
	}
	n := &NtfyNotifier{
		endpoint: strings.TrimRight(baseURL, "/") + "/" + topic,
		http:     &http.Client{Timeout: 10 * time.Second},
		queue:    make(chan Message, queueSize),
		done:     make(chan struct{}),
	}
	go n.run()
	return n
}

// Publish enqueues a message without blocking.
func (n *NtfyNotifier) Publish(msg Message) {
	select {
	case n.queue <- msg:
	default:
		logger.Warn().Str("title", msg.Title).Msg("Notification queue full, dropping message")
	}
}

// Close stops accepting messages, delivers what is already queued, and
// waits for the worker to exit.
func (n *NtfyNotifier) Close() {
	n.once.Do(func() {
		close(n.queue)
		<-n.done
	})
}

func (n *NtfyNotifier) run() {
	defer close(n.done)
	for msg := range n.queue {
		n.send(msg)
	}
}

func (n *NtfyNotifier) send(msg Message) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, n.endpoint, strings.NewReader(msg.Body))
	if err != nil {
		logger.Error().Err(err).Msg("Error building ntfy request")
		return
	}
	req.Header.Set("Title", msg.Title)
	req.Header.Set("Content-Type", "text/plain")

	resp, err := n.http.Do(req)
	if err != nil {
		logger.Error().Err(err).Str("title", msg.Title).Msg("Error sending notification to ntfy")
		return
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		logger.Error().Int("status", resp.StatusCode).Str("title", msg.Title).Msg("ntfy rejected notification")
	}
}
