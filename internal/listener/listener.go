// Package listener owns the UDP socket and the receive goroutine that
// feeds the monitor core. Malformed datagrams and transient socket
// errors are reported to the error observer and never stop ingestion;
// only an invalidated socket terminates the loop.
package listener

import (
	"errors"
	"fmt"
	"log"
	"net"
	"sync"
	"syscall"

	"github.com/ime-grupo10/vibration-monitor/internal/model"
	"github.com/ime-grupo10/vibration-monitor/internal/monitor"
	"github.com/ime-grupo10/vibration-monitor/internal/parser"
)

const (
	DefaultHost = "192.168.42.10"
	DefaultPort = 5000

	// one reading per datagram, well under this
	maxDatagram = 1024
)

var (
	ErrInvalidAddress = errors.New("invalid bind address")
	ErrAddressInUse   = errors.New("address already in use")
	ErrAlreadyRunning = errors.New("listener already running")
)

// DataFunc receives every successfully parsed reading together with the
// alert transition it caused (TransitionNone when the state held).
type DataFunc func(r model.Reading, tr model.Transition)

// ErrorFunc receives parse and socket errors. fatal is true only when
// the receive loop is terminating because the socket was invalidated.
type ErrorFunc func(err error, fatal bool)

type Listener struct {
	core *monitor.Core

	onData  DataFunc
	onError ErrorFunc

	mu       sync.Mutex
	conn     *net.UDPConn
	running  bool
	stopping bool
	wg       sync.WaitGroup
}

func New(core *monitor.Core) *Listener {
	return &Listener{core: core}
}

// SetCallbacks registers the observers. Must be called before Start;
// either callback may be nil.
func (l *Listener) SetCallbacks(onData DataFunc, onError ErrorFunc) {
	l.onData = onData
	l.onError = onError
}

// Start binds host:port and launches the receive goroutine. Bind
// failures are returned to the caller with a distinct category and no
// goroutine is started; there is no automatic retry, the operator has
// to free the port or pick another.
func (l *Listener) Start(host string, port int) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.running {
		return ErrAlreadyRunning
	}

	addr := &net.UDPAddr{Port: port}
	if host != "" {
		ip := net.ParseIP(host)
		if ip == nil {
			return fmt.Errorf("%w: %q", ErrInvalidAddress, host)
		}
		addr.IP = ip
	}

	conn, err := net.ListenUDP("udp", addr)
	if err != nil {
		if errors.Is(err, syscall.EADDRINUSE) {
			return fmt.Errorf("%w: %s:%d", ErrAddressInUse, host, port)
		}
		if errors.Is(err, syscall.EADDRNOTAVAIL) {
			return fmt.Errorf("%w: %q", ErrInvalidAddress, host)
		}
		return err
	}

	l.conn = conn
	l.running = true
	l.stopping = false
	l.wg.Add(1)
	go l.receiveLoop(conn)

	log.Printf("listener: bound on %s", conn.LocalAddr())
	return nil
}

// Addr returns the bound address, useful when port 0 was requested.
func (l *Listener) Addr() net.Addr {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.conn == nil {
		return nil
	}
	return l.conn.LocalAddr()
}

func (l *Listener) receiveLoop(conn *net.UDPConn) {
	defer l.wg.Done()

	buf := make([]byte, maxDatagram)
	for {
		n, _, err := conn.ReadFromUDP(buf)
		if err != nil {
			if errors.Is(err, net.ErrClosed) {
				if l.isStopping() {
					return
				}
				// socket invalidated outside Stop: terminal, reported
				// exactly once, and the listener may be started again
				l.reportError(fmt.Errorf("receive: socket closed: %w", err), true)
				l.mu.Lock()
				l.running = false
				l.mu.Unlock()
				return
			}
			// transient receive error, keep the loop alive
			l.reportError(fmt.Errorf("receive: %w", err), false)
			continue
		}

		r, err := parser.Parse(buf[:n])
		if err != nil {
			l.reportError(err, false)
			continue
		}
		if !parser.InRange(r.Value) {
			log.Printf("listener: value %d outside ADC range [0,%d], keeping reading", r.Value, parser.MaxValue)
		}

		tr := l.core.Ingest(r)
		if l.onData != nil {
			l.onData(r, tr)
		}
	}
}

func (l *Listener) isStopping() bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.stopping
}

func (l *Listener) reportError(err error, fatal bool) {
	if l.onError != nil {
		l.onError(err, fatal)
	} else {
		log.Printf("listener: %v (fatal=%v)", err, fatal)
	}
}

// Stop closes the socket to unblock the pending receive and joins the
// goroutine. When it returns no further callback will fire. Idempotent
// and safe from any goroutine.
func (l *Listener) Stop() {
	l.mu.Lock()
	if !l.running {
		l.mu.Unlock()
		return
	}
	l.running = false
	l.stopping = true
	conn := l.conn
	l.mu.Unlock()

	if conn != nil {
		_ = conn.Close()
	}
	l.wg.Wait()
	log.Printf("listener: stopped")
}
