// Package capture listens for mDNS traffic on a multicast UDP socket and
// feeds captured packets into storage and metrics.
package capture

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"sync"
	"time"

	"github.com/mdnsexplorer/mdnsexplorer/internal/mdns"
	"github.com/mdnsexplorer/mdnsexplorer/internal/metrics"
	"github.com/mdnsexplorer/mdnsexplorer/internal/pool"
	"github.com/mdnsexplorer/mdnsexplorer/internal/store"
)

// DefaultWorkers is the number of worker goroutines draining the packet channel
// when the configuration does not specify one.
const DefaultWorkers = 4

// maxDatagramSize bounds the buffer used to read a single mDNS packet.
// RFC 6762 does not raise the practical UDP datagram ceiling; 9000 covers
// jumbo-frame mDNS responses with room to spare.
const maxDatagramSize = 9000

var bufferPool = pool.New(func() *[]byte {
	buf := make([]byte, maxDatagramSize)
	return &buf
})

// Sink receives captured observations. *store.Store satisfies this.
type Sink interface {
	Insert(obs store.Observation) (int64, error)
}

// packet is a received datagram pending processing.
type packet struct {
	bufPtr *[]byte
	n      int
	peer   *net.UDPAddr
	readAt time.Time
}

// Listener joins an mDNS multicast group and dispatches received packets
// to a fixed worker pool for decoding and storage.
type Listener struct {
	Logger     *slog.Logger
	Sink       Sink
	Metrics    *metrics.Metrics
	Stats      *Stats
	Interface  string // empty selects the default multicast-capable interface
	Group      string
	Port       int
	ReadBuffer int
	Workers    int

	conn *net.UDPConn
	wg   sync.WaitGroup
}

// Run joins the configured multicast group and processes packets until ctx
// is cancelled. It blocks until shutdown completes.
func (l *Listener) Run(ctx context.Context) error {
	if l.Workers <= 0 {
		l.Workers = DefaultWorkers
	}
	if l.Group == "" {
		l.Group = "224.0.0.251"
	}
	if l.Port == 0 {
		l.Port = 5353
	}

	conn, err := l.listen()
	if err != nil {
		return err
	}
	l.conn = conn

	if l.ReadBuffer > 0 {
		_ = conn.SetReadBuffer(l.ReadBuffer)
	}

	if l.Logger != nil {
		l.Logger.Info("mdns listener started",
			"group", l.Group, "port", l.Port, "interface", l.Interface, "workers", l.Workers)
	}

	packetCh := make(chan packet, l.Workers*2)

	l.wg.Add(1)
	go func() {
		defer l.wg.Done()
		l.recvLoop(ctx, conn, packetCh)
	}()

	for range l.Workers {
		l.wg.Add(1)
		go func() {
			defer l.wg.Done()
			l.workerLoop(ctx, packetCh)
		}()
	}

	<-ctx.Done()
	return l.Stop(5 * time.Second)
}

func (l *Listener) listen() (*net.UDPConn, error) {
	addr, err := net.ResolveUDPAddr("udp4", fmt.Sprintf("%s:%d", l.Group, l.Port))
	if err != nil {
		return nil, fmt.Errorf("failed to resolve multicast address: %w", err)
	}

	var iface *net.Interface
	if l.Interface != "" {
		iface, err = net.InterfaceByName(l.Interface)
		if err != nil {
			return nil, fmt.Errorf("failed to find interface %q: %w", l.Interface, err)
		}
	}

	conn, err := net.ListenMulticastUDP("udp4", iface, addr)
	if err != nil {
		return nil, fmt.Errorf("failed to join multicast group %s:%d: %w", l.Group, l.Port, err)
	}
	return conn, nil
}

// recvLoop reads datagrams and hands them to the worker pool. It never
// blocks on a full channel; a busy worker pool means the packet is dropped
// rather than stalling the receive path.
func (l *Listener) recvLoop(ctx context.Context, conn *net.UDPConn, out chan<- packet) {
	for {
		bufPtr := bufferPool.Get()
		buf := *bufPtr

		n, peer, err := conn.ReadFromUDP(buf)
		if err != nil {
			bufferPool.Put(bufPtr)
			if ctx.Err() != nil {
				return
			}
			return
		}

		select {
		case out <- packet{bufPtr: bufPtr, n: n, peer: peer, readAt: time.Now()}:
		default:
			bufferPool.Put(bufPtr)
			if l.Logger != nil {
				l.Logger.Warn("dropped mdns packet, worker pool busy")
			}
		}
	}
}

func (l *Listener) workerLoop(ctx context.Context, in <-chan packet) {
	for {
		select {
		case <-ctx.Done():
			return
		case p, ok := <-in:
			if !ok {
				return
			}
			l.handlePacket(ctx, p)
		}
	}
}

func (l *Listener) handlePacket(ctx context.Context, p packet) {
	defer bufferPool.Put(p.bufPtr)

	raw := make([]byte, p.n)
	copy(raw, (*p.bufPtr)[:p.n])

	iface := l.Interface
	obs := store.Observation{
		CapturedAt: p.readAt,
		SourceAddr: p.peer.String(),
		DestAddr:   fmt.Sprintf("%s:%d", l.Group, l.Port),
		Interface:  iface,
		Raw:        raw,
	}

	if l.Sink != nil {
		if _, err := l.Sink.Insert(obs); err != nil && l.Logger != nil {
			l.Logger.Warn("failed to store captured packet", "err", err)
		}
	}

	if l.Metrics != nil {
		l.Metrics.RecordCapture(ctx, iface)
		l.Metrics.RecordLatency(ctx, time.Since(p.readAt))
	}

	if l.Stats != nil {
		l.Stats.RecordCapture(p.readAt.UnixNano())
	}

	l.recordDecodeOutcome(ctx, iface, raw)
}

// recordDecodeOutcome re-derives decode success/failure for metrics purposes.
// The store performs its own decode on insert; this duplicate pass keeps the
// metrics and stats paths independent of storage succeeding.
func (l *Listener) recordDecodeOutcome(ctx context.Context, iface string, raw []byte) {
	msg, err := mdns.DecodeMessage(raw)
	if err != nil {
		if l.Metrics != nil {
			l.Metrics.RecordDecodeError(ctx, iface)
		}
		if l.Stats != nil {
			l.Stats.RecordDecodeError()
		}
		return
	}
	if l.Metrics == nil {
		return
	}
	for _, a := range msg.Answers {
		l.Metrics.RecordRecordType(ctx, a.AType.String())
	}
}

// Stop closes the multicast socket and waits up to timeout for goroutines
// to exit.
func (l *Listener) Stop(timeout time.Duration) error {
	if l.conn != nil {
		_ = l.conn.Close()
	}

	if timeout <= 0 {
		l.wg.Wait()
		return nil
	}

	done := make(chan struct{})
	go func() {
		l.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
		return nil
	case <-time.After(timeout):
		return errors.New("mdns listener: timeout waiting for goroutines to exit")
	}
}
