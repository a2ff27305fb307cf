package core

import (
	"sync"

	"github.com/spaghettifunk/quadrant/engine/containers"
)

// System internal event codes. Application should use codes beyond 255.
type EventCode uint16

const (
	// Shuts the application down on the next frame.
	EVENT_CODE_APPLICATION_QUIT EventCode = 0x01

	// Keyboard key pressed. Data is *KeyEvent.
	EVENT_CODE_KEY_PRESSED EventCode = 0x02

	// Keyboard key released. Data is *KeyEvent.
	EVENT_CODE_KEY_RELEASED EventCode = 0x03

	// Resized/resolution changed from the OS. Data is *ResizeEvent.
	EVENT_CODE_RESIZED EventCode = 0x08

	// A scene or asset file changed on disk. Data is *FileEvent.
	EVENT_CODE_SCENE_CHANGED EventCode = 0x10

	MAX_EVENT_CODE EventCode = 0xFF
)

type KeyEvent struct {
	KeyCode KeyCode
}

type ResizeEvent struct {
	Width  int
	Height int
}

type FileEvent struct {
	Path string
}

type EventContext struct {
	Type EventCode
	Data interface{}
}

// Should return true if handled.
type FnOnEvent func(context EventContext) bool

// Capacity of the queue of events posted from other goroutines.
const eventQueueSize = 64

// EventSystem dispatches events to registered listeners. Fire delivers
// immediately on the calling goroutine; Post queues an event from any
// goroutine until the frame loop calls Dispatch.
type EventSystem struct {
	registered map[EventCode][]FnOnEvent

	mutex sync.Mutex
	queue *containers.RingQueue[EventContext]
}

func NewEventSystem() *EventSystem {
	return &EventSystem{
		registered: make(map[EventCode][]FnOnEvent),
		queue:      containers.NewRingQueue[EventContext](eventQueueSize),
	}
}

// Register to listen for when events are sent with the provided code.
func (es *EventSystem) Register(code EventCode, onEvent FnOnEvent) {
	es.registered[code] = append(es.registered[code], onEvent)
}

// Clear removes every listener of code.
func (es *EventSystem) Clear(code EventCode) {
	delete(es.registered, code)
}

/**
 * Fires an event to listeners of the given code. If an event handler returns
 * TRUE, the event is considered handled and is not passed on to any more listeners.
 * @returns TRUE if handled, otherwise FALSE.
 */
func (es *EventSystem) Fire(context EventContext) bool {
	for _, onEvent := range es.registered[context.Type] {
		if onEvent(context) {
			return true
		}
	}
	return false
}

// Post queues an event for the next Dispatch. Events posted while the
// queue is full are dropped with a warning.
func (es *EventSystem) Post(context EventContext) {
	es.mutex.Lock()
	defer es.mutex.Unlock()
	if err := es.queue.Enqueue(context); err != nil {
		LogWarn("dropping event %d: %s", context.Type, err)
	}
}

// Dispatch fires every queued event in order and returns how many there were.
func (es *EventSystem) Dispatch() int {
	n := 0
	for {
		es.mutex.Lock()
		context, err := es.queue.Dequeue()
		es.mutex.Unlock()
		if err != nil {
			return n
		}
		es.Fire(context)
		n++
	}
}
