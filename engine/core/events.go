package core

import (
	"reflect"
	"sync"
)

// EventContext carries the payload of a fired event. Listeners type-assert
// Data according to the event code documentation.
type EventContext struct {
	Type SystemEventCode
	Data interface{}
}

// System internal event codes. Application should use codes beyond 255.
type SystemEventCode int

const (
	// Shuts the application down on the next frame.
	EVENT_CODE_APPLICATION_QUIT SystemEventCode = 0x01

	// Render settings were reloaded.
	/* Context usage:
	 * settings := data.Data.(*config.Settings)
	 */
	EVENT_CODE_RENDER_SETTINGS_CHANGED SystemEventCode = 0x11

	// Debug view mode changed.
	/* Context usage:
	 * mode := data.Data.(metadata.RendererDebugViewMode)
	 */
	EVENT_CODE_SET_RENDER_MODE SystemEventCode = 0x12

	MAX_EVENT_CODE SystemEventCode = 0xFF
)

// This should be more than enough codes...
const MAX_MESSAGE_CODES = 16384

type registeredEvent struct {
	listener interface{}
	callback FnOnEvent
}

type eventCodeEntry struct {
	events []*registeredEvent
}

// State structure.
type eventSystemState struct {
	mu sync.RWMutex
	// Lookup table for event codes.
	registered [MAX_MESSAGE_CODES]eventCodeEntry
}

var eventState = &eventSystemState{}

// Should return true if handled.
type FnOnEvent func(code SystemEventCode, sender interface{}, listener_inst interface{}, data EventContext) bool

/**
 * Register to listen for when events are sent with the provided code. Events with duplicate
 * listener/callback combos will not be registered again and will cause this to return false.
 * @param code The event code to listen for.
 * @param listener A pointer to a listener instance. Can be nil.
 * @param on_event The callback function to be invoked when the event code is fired.
 * @returns true if the event is successfully registered; otherwise false.
 */
func EventRegister(code SystemEventCode, listener interface{}, onEvent FnOnEvent) bool {
	if code < 0 || int(code) >= MAX_MESSAGE_CODES || onEvent == nil {
		return false
	}
	eventState.mu.Lock()
	defer eventState.mu.Unlock()

	entry := &eventState.registered[code]
	for _, e := range entry.events {
		if e.listener == listener && sameCallback(e.callback, onEvent) {
			LogWarn("event %d already has this listener registered", code)
			return false
		}
	}
	entry.events = append(entry.events, &registeredEvent{
		listener: listener,
		callback: onEvent,
	})
	return true
}

/**
 * Unregister from listening for when events are sent with the provided code. If no matching
 * registration is found, this function returns false.
 */
func EventUnregister(code SystemEventCode, listener interface{}, onEvent FnOnEvent) bool {
	if code < 0 || int(code) >= MAX_MESSAGE_CODES {
		return false
	}
	eventState.mu.Lock()
	defer eventState.mu.Unlock()

	entry := &eventState.registered[code]
	for i, e := range entry.events {
		if e.listener == listener && sameCallback(e.callback, onEvent) {
			entry.events = append(entry.events[:i], entry.events[i+1:]...)
			return true
		}
	}
	// Not found.
	return false
}

/**
 * Fires an event to listeners of the given code. If an event handler returns
 * true, the event is considered handled and is not passed on to any more listeners.
 * @returns true if handled, otherwise false.
 */
func EventFire(code SystemEventCode, sender interface{}, context EventContext) bool {
	if code < 0 || int(code) >= MAX_MESSAGE_CODES {
		return false
	}
	eventState.mu.RLock()
	events := append([]*registeredEvent(nil), eventState.registered[code].events...)
	eventState.mu.RUnlock()

	context.Type = code
	for _, e := range events {
		if e.callback(code, sender, e.listener, context) {
			// Message has been handled, do not send to other listeners.
			return true
		}
	}
	return false
}

// EventShutdown drops every registration.
func EventShutdown() error {
	eventState.mu.Lock()
	defer eventState.mu.Unlock()
	for i := range eventState.registered {
		eventState.registered[i].events = nil
	}
	return nil
}

// funcs are not comparable, compare their code pointers instead.
func sameCallback(a, b FnOnEvent) bool {
	return reflect.ValueOf(a).Pointer() == reflect.ValueOf(b).Pointer()
}
