package transport

import (
	"errors"
	"sync"
	"time"

	"github.com/jonboulle/clockwork"
)

var errMock = errors.New("mock failure")

type write struct {
	b  byte
	at time.Time
}

type mockPort struct {
	clock    clockwork.Clock
	failAt   int // index of the write that fails, -1 for none
	failErr  error
	shortAt  int
	closeErr error

	mu     sync.Mutex
	writes []write
	closed int
}

func newMockPort(clock clockwork.Clock) *mockPort {
	return &mockPort{clock: clock, failAt: -1, shortAt: -1}
}

func (p *mockPort) Write(b []byte) (int, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	i := len(p.writes)
	if i == p.failAt {
		return 0, p.failErr
	}
	if i == p.shortAt {
		return 0, nil
	}
	for _, c := range b {
		p.writes = append(p.writes, write{b: c, at: p.clock.Now()})
	}
	return len(b), nil
}

func (p *mockPort) Close() error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.closed++
	return p.closeErr
}

func (p *mockPort) written() []byte {
	p.mu.Lock()
	defer p.mu.Unlock()
	out := make([]byte, len(p.writes))
	for i, w := range p.writes {
		out[i] = w.b
	}
	return out
}

type mockRate struct {
	err   error
	calls int
	baud  int
}

func (r *mockRate) ProgramRate(_ string, _ Port, baud int) error {
	r.calls++
	r.baud = baud
	return r.err
}

type mockOpener struct {
	port  Port
	err   error
	calls int
	baud  int
}

func (o *mockOpener) open(_ string, baud int) (Port, error) {
	o.calls++
	o.baud = baud
	if o.err != nil {
		return nil, o.err
	}
	return o.port, nil
}

func mockCapability(o *mockOpener, r *mockRate) Capability {
	return Capability{Name: "mock", Open: o.open, Rate: r}
}
