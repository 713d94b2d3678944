package conversation

import (
	"context"
	"slices"
	"strings"
	"sync"

	"github.com/abhisek/studyos/internal/library"
	"github.com/abhisek/studyos/internal/logging"
)

// Session is one topic-study conversation. At most one request is in
// flight; the log only grows until Close.
type Session struct {
	ctrl    *Controller
	id      string
	topicID string

	mu       sync.Mutex
	topic    library.Topic
	view     library.View
	log      []Message
	pending  bool
	closed   bool
	inflight chan struct{} // closed when the current request resolves
	changes  chan struct{}
}

func (s *Session) ID() string {
	return s.id
}

func (s *Session) Topic() library.Topic {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.topic
}

// SetTopic refreshes the topic, e.g. after a document was attached.
// The ID must not change.
func (s *Session) SetTopic(t library.Topic) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed || t.ID != s.topicID {
		return
	}
	s.topic = t
	s.notify()
}

func (s *Session) View() library.View {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.view
}

// SetView switches the content tab. The next Submit resolves its context
// from the new view.
func (s *Session) SetView(v library.View) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed || s.view == v {
		return
	}
	s.view = v
	s.notify()
}

// Messages returns a copy of the log in insertion order.
func (s *Session) Messages() []Message {
	s.mu.Lock()
	defer s.mu.Unlock()
	return slices.Clone(s.log)
}

func (s *Session) Pending() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.pending
}

// Changes delivers a coalesced signal after every mutation. It is closed
// by Close.
func (s *Session) Changes() <-chan struct{} {
	return s.changes
}

// Submit appends text as a user message and asks for a reply in the
// background. It returns false, appending nothing, when text is blank, a
// request is already in flight, or the session is closed.
func (s *Session) Submit(text string) bool {
	query := strings.TrimSpace(text)
	if query == "" {
		return false
	}

	s.mu.Lock()
	if s.closed || s.pending {
		s.mu.Unlock()
		return false
	}
	s.append(RoleUser, query)
	s.pending = true
	done := make(chan struct{})
	s.inflight = done
	view, topic := s.view, s.topic
	s.notify()
	s.mu.Unlock()

	contextText := s.ctrl.resolve(view, topic)
	go s.await(contextText, query, done)
	return true
}

func (s *Session) await(contextText, query string, done chan struct{}) {
	defer close(done)

	ctx := s.logContext()
	reply := s.ctrl.asker.Ask(ctx, contextText, query)

	s.mu.Lock()
	defer s.mu.Unlock()

	s.pending = false
	if s.closed {
		s.ctrl.logger.DebugContext(ctx, "discarding reply for closed session",
			"reply", logging.Truncate(reply, 80))
		return
	}
	s.append(RoleAssistant, reply)
	s.notify()
}

// Wait blocks until no request is in flight.
func (s *Session) Wait() {
	s.mu.Lock()
	done := s.inflight
	s.mu.Unlock()
	if done != nil {
		<-done
	}
}

// Close tears the session down. An in-flight request still runs to
// completion but its reply is dropped.
func (s *Session) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return
	}
	s.closed = true
	close(s.changes)
	s.ctrl.logger.DebugContext(s.logContext(), "session closed", "messages", len(s.log))
}

// append and notify require s.mu.
func (s *Session) append(role Role, text string) {
	s.log = append(s.log, Message{
		ID:        s.ctrl.newID(),
		Role:      role,
		Text:      text,
		CreatedAt: s.ctrl.now(),
	})
}

func (s *Session) notify() {
	select {
	case s.changes <- struct{}{}:
	default:
	}
}

func (s *Session) logContext() context.Context {
	return logging.WithFields(s.ctrl.baseCtx, logging.Fields{
		Component: "studyos.conversation",
		SessionID: s.id,
		TopicID:   s.topicID,
	})
}
