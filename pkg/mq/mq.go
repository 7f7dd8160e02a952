package mq

import (
	"sync"
)

// TopicTaskAppended carries the JSON of every task accepted by POST /tasks.
const TopicTaskAppended = "tasks.appended"

type Publisher interface {
	Publish(topic string, payload []byte) error
}

type Subscriber interface {
	Subscribe(topic string, handler func([]byte) error) error
}

type Noop struct{}

func (Noop) Publish(topic string, payload []byte) error               { return nil }
func (Noop) Subscribe(topic string, handler func([]byte) error) error { return nil }

// Memory delivers messages synchronously to in-process subscribers.
type Memory struct {
	mu       sync.RWMutex
	handlers map[string][]func([]byte) error
}

func NewMemory() *Memory {
	return &Memory{handlers: make(map[string][]func([]byte) error)}
}

func (m *Memory) Subscribe(topic string, handler func([]byte) error) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.handlers[topic] = append(m.handlers[topic], handler)
	return nil
}

// Publish runs every handler for topic and returns the first error. Later
// handlers still run when an earlier one fails.
func (m *Memory) Publish(topic string, payload []byte) error {
	m.mu.RLock()
	hs := m.handlers[topic]
	m.mu.RUnlock()
	var first error
	for _, h := range hs {
		if err := h(payload); err != nil && first == nil {
			first = err
		}
	}
	return first
}
