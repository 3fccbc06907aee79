// Package errclass classifies failures from the trial registry into
// stable error kinds with user-facing messages and retry hints, and
// supplies representative fallback trials so the UI always has something
// to show.
package errclass

import (
	"context"
	"errors"
	"fmt"
	"net"
	"strings"

	"github.com/unitytrials/trialmatch/internal/registry"
)

const (
	KindNetwork    = "NETWORK_ERROR"
	KindRateLimit  = "RATE_LIMIT"
	KindTimeout    = "TIMEOUT"
	KindBadRequest = "BAD_REQUEST"
	KindNotFound   = "NOT_FOUND"
	KindServer     = "SERVER_ERROR"
	KindUnknown    = "UNKNOWN_ERROR"
)

// Classified is a registry failure reduced to a stable kind plus
// everything an HTTP handler needs to answer the user.
type Classified struct {
	Kind        string
	Status      int
	UserMessage string
	RetryAfter  int
	Retryable   bool
}

func (c *Classified) Error() string {
	return c.Kind + ": " + c.UserMessage
}

// Classify maps an error from the registry client onto a Classified.
// searchContext is the user's search text, used only to pick fallback
// trials elsewhere; it does not affect the kind.
func Classify(err error) *Classified {
	if err == nil {
		return nil
	}
	if errors.Is(err, registry.ErrRateLimited) {
		return &Classified{
			Kind:        KindRateLimit,
			Status:      429,
			UserMessage: "We're receiving a lot of requests right now. Please wait a minute and try again.",
			RetryAfter:  60,
			Retryable:   true,
		}
	}
	if errors.Is(err, context.DeadlineExceeded) {
		return timeoutClassified()
	}
	var ne net.Error
	if errors.As(err, &ne) {
		if ne.Timeout() {
			return timeoutClassified()
		}
		return networkClassified()
	}
	var se *registry.StatusError
	if errors.As(err, &se) {
		switch {
		case se.Code == 400:
			return &Classified{
				Kind:        KindBadRequest,
				Status:      400,
				UserMessage: "We couldn't understand that search. Try simpler terms like a condition name or location.",
				Retryable:   false,
			}
		case se.Code == 404:
			return &Classified{
				Kind:        KindNotFound,
				Status:      404,
				UserMessage: "We couldn't find that trial. It may have been removed or the ID may be incorrect.",
				Retryable:   false,
			}
		case se.Code == 429:
			return &Classified{
				Kind:        KindRateLimit,
				Status:      429,
				UserMessage: "The trial registry is limiting requests. Please wait a minute and try again.",
				RetryAfter:  60,
				Retryable:   true,
			}
		case se.Code >= 500:
			return &Classified{
				Kind:        KindServer,
				Status:      502,
				UserMessage: "The trial registry is having trouble right now. Please try again in a couple of minutes.",
				RetryAfter:  120,
				Retryable:   true,
			}
		}
	}
	msg := strings.ToLower(err.Error())
	switch {
	case strings.Contains(msg, "timeout"), strings.Contains(msg, "deadline"):
		return timeoutClassified()
	case strings.Contains(msg, "connection refused"), strings.Contains(msg, "no such host"),
		strings.Contains(msg, "network"), strings.Contains(msg, "dial"):
		return networkClassified()
	}
	return &Classified{
		Kind:        KindUnknown,
		Status:      500,
		UserMessage: "Something unexpected went wrong. Please try again.",
		RetryAfter:  30,
		Retryable:   true,
	}
}

// RetryMessage formats a retry-after interval in seconds as a sentence,
// rounding up to whole minutes or hours for longer waits.
func RetryMessage(retryAfter int) string {
	if retryAfter < 60 {
		return fmt.Sprintf("Please try again in %d seconds.", retryAfter)
	}
	if retryAfter < 3600 {
		minutes := (retryAfter + 59) / 60
		return fmt.Sprintf("Please try again in %d minute%s.", minutes, pluralSuffix(minutes))
	}
	hours := (retryAfter + 3599) / 3600
	return fmt.Sprintf("Please try again in %d hour%s.", hours, pluralSuffix(hours))
}

func pluralSuffix(n int) string {
	if n > 1 {
		return "s"
	}
	return ""
}

func timeoutClassified() *Classified {
	return &Classified{
		Kind:        KindTimeout,
		Status:      504,
		UserMessage: "The trial registry took too long to respond. Please try again.",
		RetryAfter:  10,
		Retryable:   true,
	}
}

func networkClassified() *Classified {
	return &Classified{
		Kind:        KindNetwork,
		Status:      503,
		UserMessage: "We couldn't reach the trial registry. Check your connection and try again shortly.",
		RetryAfter:  30,
		Retryable:   true,
	}
}
