// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: desk/events.go
// Summary: Change notifications broadcast by the shell to front ends.

package desk

import "sync"

// EventType defines the type of an event.
type EventType int

const (
	EventDesktopSwitched EventType = iota
	EventDesktopsChanged
	EventWidgetsChanged
	EventWindowsChanged
	EventMenuChanged
	EventChatToggled
	EventModalChanged
	EventEngineChanged
)

func (t EventType) String() string {
	switch t {
	case EventDesktopSwitched:
		return "desktop.switched"
	case EventDesktopsChanged:
		return "desktops.changed"
	case EventWidgetsChanged:
		return "widgets.changed"
	case EventWindowsChanged:
		return "windows.changed"
	case EventMenuChanged:
		return "menu.changed"
	case EventChatToggled:
		return "chat.toggled"
	case EventModalChanged:
		return "modal.changed"
	case EventEngineChanged:
		return "engine.changed"
	default:
		return "unknown"
	}
}

// Event is a shell notification. Payload carries the affected id when there
// is one.
type Event struct {
	Type    EventType
	Payload interface{}
}

// Listener receives shell events.
type Listener interface {
	OnEvent(event Event)
}

// ListenerFunc adapts a function to Listener.
type ListenerFunc func(Event)

// OnEvent calls f.
func (f ListenerFunc) OnEvent(event Event) { f(event) }

// EventDispatcher manages a list of listeners and broadcasts events to them.
type EventDispatcher struct {
	mu        sync.RWMutex
	listeners []Listener
}

// NewEventDispatcher creates a new dispatcher.
func NewEventDispatcher() *EventDispatcher {
	return &EventDispatcher{listeners: make([]Listener, 0)}
}

// Subscribe adds a new listener to receive events.
func (d *EventDispatcher) Subscribe(listener Listener) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.listeners = append(d.listeners, listener)
}

// Broadcast sends an event to all subscribed listeners.
func (d *EventDispatcher) Broadcast(event Event) {
	d.mu.RLock()
	listeners := append([]Listener(nil), d.listeners...)
	d.mu.RUnlock()
	for _, l := range listeners {
		l.OnEvent(event)
	}
}
