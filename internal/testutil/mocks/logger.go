package mocks

import (
	"sync"

	"github.com/kevin07696/card-wallet/internal/adapters/ports"
)

// MockLogger records calls made through the ports.Logger interface
type MockLogger struct {
	mu         sync.Mutex
	InfoCalls  []LogCall
	ErrorCalls []LogCall
	WarnCalls  []LogCall
	DebugCalls []LogCall
}

// LogCall represents a captured log call
type LogCall struct {
	Message string
	Fields  []ports.Field
}

var _ ports.Logger = (*MockLogger)(nil)

// NewMockLogger creates a new mock logger
func NewMockLogger() *MockLogger {
	return &MockLogger{}
}

func (m *MockLogger) Info(msg string, fields ...ports.Field) {
	m.record(&m.InfoCalls, msg, fields)
}

func (m *MockLogger) Error(msg string, fields ...ports.Field) {
	m.record(&m.ErrorCalls, msg, fields)
}

func (m *MockLogger) Warn(msg string, fields ...ports.Field) {
	m.record(&m.WarnCalls, msg, fields)
}

func (m *MockLogger) Debug(msg string, fields ...ports.Field) {
	m.record(&m.DebugCalls, msg, fields)
}

func (m *MockLogger) record(calls *[]LogCall, msg string, fields []ports.Field) {
	m.mu.Lock()
	defer m.mu.Unlock()
	*calls = append(*calls, LogCall{Message: msg, Fields: fields})
}
