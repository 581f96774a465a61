// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: assistant/session.go
// Summary: Chat transcript with a single outstanding request.

package assistant

import (
	"context"
	"strings"
	"sync"
)

// Greeting opens every session.
const Greeting = "Hello! I am your personal AI dashboard assistant. How can I help you today?"

// Chatter produces a reply for a conversation.
type Chatter interface {
	Chat(ctx context.Context, history []Message, message string) string
}

// Session holds the chat transcript. It is safe for use from the UI loop and
// the request goroutine.
type Session struct {
	mu       sync.Mutex
	messages []Message
	pending  bool
}

// NewSession starts a transcript with the greeting.
func NewSession() *Session {
	return &Session{messages: []Message{{Role: RoleModel, Text: Greeting}}}
}

// Messages returns a copy of the transcript.
func (s *Session) Messages() []Message {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]Message(nil), s.messages...)
}

// Pending reports whether a reply is outstanding.
func (s *Session) Pending() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.pending
}

// Begin records a user message and marks the session pending. It returns
// the transcript preceding the message. Blank input and input sent while a
// reply is outstanding are rejected.
func (s *Session) Begin(text string) ([]Message, string, bool) {
	text = strings.TrimSpace(text)
	s.mu.Lock()
	defer s.mu.Unlock()
	if text == "" || s.pending {
		return nil, "", false
	}
	history := append([]Message(nil), s.messages...)
	s.messages = append(s.messages, Message{Role: RoleUser, Text: text})
	s.pending = true
	return history, text, true
}

// Complete appends the reply and clears the pending flag.
func (s *Session) Complete(reply string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.messages = append(s.messages, Message{Role: RoleModel, Text: reply})
	s.pending = false
}

// Send starts a request in the background. done runs after the reply has
// been recorded. It returns false when Begin rejects the message.
func (s *Session) Send(ctx context.Context, c Chatter, text string, done func()) bool {
	history, msg, ok := s.Begin(text)
	if !ok {
		return false
	}
	go func() {
		s.Complete(c.Chat(ctx, history, msg))
		if done != nil {
			done()
		}
	}()
	return true
}
