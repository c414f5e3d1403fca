package sensorproto

import (
	"context"
	"errors"
	"fmt"
	"log"
	"math/rand"
	"net"
	"sync"
	"time"

	"github.com/GoAethereal/cancel"
)

// ClientOptions configures a single request/response transaction against a
// remote device. Zero-value fields are filled in by Defaults.
type ClientOptions struct {
	// LocalIP is the address to bind the outgoing socket to. The zero
	// value lets the kernel choose.
	LocalIP net.IP
	// LocalPort is the local port to bind to. Zero lets the kernel choose.
	LocalPort uint16
	// RemoteIP is the device's address. Required.
	RemoteIP net.IP
	// RemotePort is the device's UDP port. Defaults to 51.
	RemotePort uint16
	// Timeout bounds each individual attempt's wait for a reply. Defaults
	// to 2 seconds.
	Timeout time.Duration
	// ResendAttempts is the total number of send attempts (must be >= 1).
	// Defaults to 3.
	ResendAttempts int
	// RxBufferSize sizes the receive buffer. Defaults to 1024 bytes.
	RxBufferSize int
}

// Defaults returns a copy of o with unset fields filled in.
func (o ClientOptions) Defaults() ClientOptions {
	if o.RemotePort == 0 {
		o.RemotePort = 51
	}
	if o.Timeout == 0 {
		o.Timeout = 2 * time.Second
	}
	if o.ResendAttempts < 1 {
		o.ResendAttempts = 3
	}
	if o.RxBufferSize == 0 {
		o.RxBufferSize = 1024
	}
	return o
}

// WithRemoteHost resolves host (a literal IP or a hostname) synchronously
// and sets RemoteIP to the first address returned. A literal IP is used
// directly without touching the resolver.
func (o ClientOptions) WithRemoteHost(host string) (ClientOptions, error) {
	if ip := net.ParseIP(host); ip != nil {
		o.RemoteIP = ip
		return o, nil
	}
	addrs, err := net.LookupIP(host)
	if err != nil {
		return o, fmt.Errorf("sensorproto: resolving %q: %w", host, err)
	}
	if len(addrs) == 0 {
		return o, fmt.Errorf("sensorproto: %q resolved to no addresses", host)
	}
	o.RemoteIP = addrs[0]
	return o, nil
}

// WithRemoteHostContext is the async variant of WithRemoteHost, driving the
// lookup through ctx so it can be cancelled or bounded by a deadline.
func (o ClientOptions) WithRemoteHostContext(ctx context.Context, host string) (ClientOptions, error) {
	if ip := net.ParseIP(host); ip != nil {
		o.RemoteIP = ip
		return o, nil
	}
	addrs, err := net.DefaultResolver.LookupIPAddr(ctx, host)
	if err != nil {
		return o, fmt.Errorf("sensorproto: resolving %q: %w", host, err)
	}
	if len(addrs) == 0 {
		return o, fmt.Errorf("sensorproto: %q resolved to no addresses", host)
	}
	o.RemoteIP = addrs[0].IP
	return o, nil
}

func (o ClientOptions) localAddr() *net.UDPAddr {
	return &net.UDPAddr{IP: o.LocalIP, Port: int(o.LocalPort)}
}

func (o ClientOptions) remoteAddr() *net.UDPAddr {
	return &net.UDPAddr{IP: o.RemoteIP, Port: int(o.RemotePort)}
}

// PreparedRequest is a Request that has already been serialized against a
// set of ClientOptions and is ready to dispatch. Requests are serialized
// immediately on construction and owned by the transaction.
type PreparedRequest struct {
	Options    ClientOptions
	Request    Request
	Serialized []byte
}

// Prepare serializes req against o, applying o's defaults.
func (o ClientOptions) Prepare(req Request) (PreparedRequest, error) {
	o = o.Defaults()
	buf := NewBuffer()
	if _, err := req.Write(buf); err != nil {
		return PreparedRequest{}, err
	}
	return PreparedRequest{Options: o, Request: req, Serialized: buf.Bytes()}, nil
}

// NewOneWireRead builds a ReadSpecified/OneWire request for the given
// 1-Wire device addresses, appending the raw 8-byte address of each device
// directly after the frame header with no separator. The I2C bus has no
// equivalent helper here.
func (o ClientOptions) NewOneWireRead(devices [][8]byte) (PreparedRequest, error) {
	o = o.Defaults()
	req := ReadSpecified(byte(rand.Intn(256)), OneWire)
	buf := NewBuffer()
	if _, err := req.Write(buf); err != nil {
		return PreparedRequest{}, err
	}
	serialized := buf.Bytes()
	for _, d := range devices {
		serialized = append(serialized, d[:]...)
	}
	return PreparedRequest{Options: o, Request: req, Serialized: serialized}, nil
}

// DispatchErrorKind identifies which of the three dispatch failure modes
// occurred.
type DispatchErrorKind int

const (
	// DispatchIo signals a socket bind/send/recv failure.
	DispatchIo DispatchErrorKind = iota
	// DispatchTimeout signals that every attempt elapsed without a
	// correctly-sourced reply.
	DispatchTimeout
	// DispatchProtocolError signals a reply was received but failed codec
	// validation.
	DispatchProtocolError
)

// DispatchError reports a failed dispatch. Request carries the request
// that failed so a caller can inspect or rebuild it; it is unset for
// DispatchTimeout.
type DispatchError struct {
	Kind    DispatchErrorKind
	Request PreparedRequest
	Cause   error
}

func (e *DispatchError) Error() string {
	switch e.Kind {
	case DispatchIo:
		return fmt.Sprintf("sensorproto: io error: %v", e.Cause)
	case DispatchTimeout:
		return "sensorproto: all requests remained unanswered"
	case DispatchProtocolError:
		return fmt.Sprintf("sensorproto: protocol error: %v", e.Cause)
	default:
		return "sensorproto: dispatch error"
	}
}

func (e *DispatchError) Unwrap() error {
	return e.Cause
}

// DispatchResult is the outcome of a successful dispatch: the parsed
// response header, the payload bytes that followed it in the datagram, and
// how many send attempts were required.
type DispatchResult struct {
	Response     Response
	Payload      []byte
	RequestsSent int
}

// Dispatch runs the transaction synchronously with no externally supplied
// cancellation, driving DispatchContext on a fresh root context.
func (req PreparedRequest) Dispatch() (DispatchResult, error) {
	return req.DispatchContext(cancel.New())
}

// DispatchContext runs the transaction: bind a socket, then for each of
// Options.ResendAttempts attempts, send the serialized request and await a
// reply within Options.Timeout. A reply from any source other than
// Options.RemoteIP/RemotePort is logged and discarded; this consumes the
// current attempt rather than continuing to wait out its remaining
// timeout. Cancelling ctx unblocks a pending receive immediately. The
// response's RequestID is never compared against the outgoing request's
// id; correlation within a dispatch is positional.
func (req PreparedRequest) DispatchContext(ctx cancel.Context) (DispatchResult, error) {
	opts := req.Options.Defaults()

	conn, err := net.ListenUDP("udp", opts.localAddr())
	if err != nil {
		return DispatchResult{}, &DispatchError{Kind: DispatchIo, Request: req, Cause: err}
	}
	defer conn.Close()

	remote := opts.remoteAddr()
	buf := make([]byte, opts.RxBufferSize)

	for attempt := 0; attempt < opts.ResendAttempts; attempt++ {
		if _, err := conn.WriteToUDP(req.Serialized, remote); err != nil {
			return DispatchResult{}, &DispatchError{Kind: DispatchIo, Request: req, Cause: err}
		}

		n, from, err := readWithDeadline(ctx, conn, buf, opts.Timeout)
		switch {
		case errors.Is(err, errReadTimeout):
			continue
		case errors.Is(err, errReadCancelled):
			return DispatchResult{}, &DispatchError{Kind: DispatchIo, Request: req, Cause: err}
		case err != nil:
			return DispatchResult{}, &DispatchError{Kind: DispatchIo, Request: req, Cause: err}
		}

		if !sameAddr(from, remote) {
			log.Printf("sensorproto: dropping %d bytes from unexpected source %s (want %s)", n, from, remote)
			continue
		}

		reader := NewSliceReader(buf[:n])
		response, err := ReadResponse(reader)
		if err != nil {
			return DispatchResult{}, &DispatchError{Kind: DispatchProtocolError, Request: req, Cause: err}
		}
		payloadSize := reader.Available()

		return DispatchResult{
			Response:     response,
			Payload:      buf[n-payloadSize : n],
			RequestsSent: attempt + 1,
		}, nil
	}

	return DispatchResult{}, &DispatchError{Kind: DispatchTimeout}
}

var (
	errReadTimeout   = errors.New("sensorproto: read timeout")
	errReadCancelled = errors.New("sensorproto: read cancelled")
)

// readWithDeadline reads one datagram from conn, bounded by timeout and by
// ctx's cancellation, whichever comes first. Cancelling ctx forces the
// blocking read to return by yanking the deadline into the past.
func readWithDeadline(ctx cancel.Context, conn *net.UDPConn, buf []byte, timeout time.Duration) (int, *net.UDPAddr, error) {
	if err := conn.SetReadDeadline(time.Now().Add(timeout)); err != nil {
		return 0, nil, err
	}

	done := make(chan struct{})
	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		select {
		case <-done:
		case <-ctx.Done():
			conn.SetReadDeadline(time.Unix(1, 0))
		}
	}()

	n, from, err := conn.ReadFromUDP(buf)
	close(done)
	wg.Wait()

	if err != nil {
		if ne, ok := err.(net.Error); ok && ne.Timeout() {
			select {
			case <-ctx.Done():
				return 0, nil, errReadCancelled
			default:
				return 0, nil, errReadTimeout
			}
		}
		return 0, nil, err
	}
	return n, from, nil
}

func sameAddr(a, b *net.UDPAddr) bool {
	return a.IP.Equal(b.IP) && a.Port == b.Port
}
