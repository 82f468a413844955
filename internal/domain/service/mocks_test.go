package service

import (
	"context"
	"errors"
	"home-panel/internal/domain/model"
	"home-panel/internal/ports"
	"io"
	"sync"

	"github.com/stretchr/testify/mock"
)

type MockController struct {
	mock.Mock
}

func (m *MockController) FetchSensors(ctx context.Context) (model.DHTReading, error) {
	args := m.Called(ctx)
	return args.Get(0).(model.DHTReading), args.Error(1)
}

func (m *MockController) SendCommand(ctx context.Context, device model.Device, on bool) error {
	args := m.Called(ctx, device, on)
	return args.Error(0)
}

type MockPrompter struct {
	mock.Mock
}

func (m *MockPrompter) Present(ctx context.Context, prompt model.Prompt) {
	m.Called(ctx, prompt)
}

type MockConfigRepo struct {
	mock.Mock
}

func (m *MockConfigRepo) Get(ctx context.Context) (*model.Config, error) {
	args := m.Called(ctx)
	cfg, _ := args.Get(0).(*model.Config)
	return cfg, args.Error(1)
}

func (m *MockConfigRepo) Save(ctx context.Context, cfg *model.Config) error {
	args := m.Called(ctx, cfg)
	return args.Error(0)
}

var errStreamClosed = errors.New("stream closed")

type fakeStream struct {
	msgs   chan []byte
	closed chan struct{}
	once   sync.Once
}

func newFakeStream() *fakeStream {
	return &fakeStream{msgs: make(chan []byte, 16), closed: make(chan struct{})}
}

func (s *fakeStream) ReadMessage() ([]byte, error) {
	select {
	case msg, ok := <-s.msgs:
		if !ok {
			return nil, io.EOF
		}
		return msg, nil
	case <-s.closed:
		return nil, errStreamClosed
	}
}

func (s *fakeStream) Close() error {
	s.once.Do(func() { close(s.closed) })
	return nil
}

func (s *fakeStream) isClosed() bool {
	select {
	case <-s.closed:
		return true
	default:
		return false
	}
}

type fakeSource struct {
	stream *fakeStream
	err    error
	dials  int
	mu     sync.Mutex
}

func (f *fakeSource) Dial(ctx context.Context) (ports.EventStream, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.dials++
	if f.err != nil {
		return nil, f.err
	}
	return f.stream, nil
}

func (f *fakeSource) dialCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.dials
}

// recordingAlerter keeps every alert raised.
type recordingAlerter struct {
	mu     sync.Mutex
	alerts []model.Alert
}

func (r *recordingAlerter) Alert(title, message string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.alerts = append(r.alerts, model.Alert{Title: title, Message: message})
}

func (r *recordingAlerter) all() []model.Alert {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]model.Alert(nil), r.alerts...)
}

// recordingPrompter is a lock-safe prompter for tests that only count prompts.
type recordingPrompter struct {
	mu      sync.Mutex
	prompts []model.Prompt
}

func (r *recordingPrompter) Present(_ context.Context, p model.Prompt) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.prompts = append(r.prompts, p)
}

func (r *recordingPrompter) count() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.prompts)
}
