package publish

import (
	"context"
	"crypto/tls"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/url"
	"time"

	"github.com/specialistvlad/neuron/internal/ctxlog"
	"github.com/specialistvlad/neuron/internal/export"
	"github.com/zishang520/engine.io-client-go/transports"
	"github.com/zishang520/engine.io/v2/types"
	"github.com/zishang520/socket.io-client-go/socket"
)

const (
	// DefaultEvent is the event a snapshot is emitted under.
	DefaultEvent = "graph"
	// DefaultTimeout bounds both the connection and the acknowledgement wait.
	DefaultTimeout = 15 * time.Second
)

// Options configures a Publisher.
type Options struct {
	URL                string
	Namespace          string
	Event              string
	AckEvent           string
	InsecureSkipVerify bool
	Timeout            time.Duration
}

// withDefaults fills in the zero fields.
func (o Options) withDefaults() Options {
	if o.Namespace == "" {
		o.Namespace = "/"
	}
	if o.Event == "" {
		o.Event = DefaultEvent
	}
	if o.Timeout <= 0 {
		o.Timeout = DefaultTimeout
	}
	return o
}

// Publisher is a connected socket.io client.
type Publisher struct {
	io     *socket.Socket
	opts   Options
	logger *slog.Logger
}

// Connect dials the server and waits for the namespace to connect.
func Connect(ctx context.Context, opts Options) (*Publisher, error) {
	opts = opts.withDefaults()
	if opts.URL == "" {
		return nil, errors.New("publish URL is required")
	}

	parsedURL, err := url.Parse(opts.URL)
	if err != nil {
		return nil, fmt.Errorf("failed to parse URL: %w", err)
	}
	if parsedURL.Scheme == "" || parsedURL.Host == "" {
		return nil, fmt.Errorf("failed to parse URL: %q needs a scheme and a host", opts.URL)
	}

	logger := ctxlog.FromContext(ctx).With("component", "publisher", "url", opts.URL, "namespace", opts.Namespace)
	logger.Info("Connecting to visualization server...")

	ioOpts := socket.DefaultOptions()
	if parsedURL.Path != "" {
		ioOpts.SetPath(parsedURL.Path)
	}
	if opts.InsecureSkipVerify {
		logger.Warn("Skipping TLS certificate verification")
		ioOpts.SetTLSClientConfig(&tls.Config{InsecureSkipVerify: true})
	}
	ioOpts.SetTransports(types.NewSet(transports.WebSocket))
	ioOpts.SetReconnection(false)
	ioOpts.SetTimeout(opts.Timeout)

	// Only the first outcome is read; later events must not block the
	// client's event loop.
	connectChan := make(chan error, 1)
	signal := func(err error) {
		select {
		case connectChan <- err:
		default:
		}
	}

	baseURL := fmt.Sprintf("%s://%s", parsedURL.Scheme, parsedURL.Host)
	manager := socket.NewManager(baseURL, ioOpts)
	io := manager.Socket(opts.Namespace, ioOpts)

	io.Once(types.EventName("connect"), func(...any) {
		logger.Debug("Connect event received.", "sid", io.Id())
		signal(nil)
	})
	io.Once(types.EventName("connect_error"), func(errs ...any) {
		err := errors.New("unknown connection error")
		if len(errs) > 0 {
			if e, ok := errs[0].(error); ok {
				err = e
			}
		}
		logger.Debug("Connect error event received.", "error", err)
		signal(err)
	})

	io.Connect()

	select {
	case err := <-connectChan:
		if err != nil {
			io.Disconnect()
			return nil, fmt.Errorf("socket.io connection failed: %w", err)
		}
	case <-ctx.Done():
		io.Disconnect()
		return nil, fmt.Errorf("context cancelled while waiting for socket.io connection: %w", ctx.Err())
	case <-time.After(opts.Timeout):
		io.Disconnect()
		return nil, fmt.Errorf("timed out after %v waiting for socket.io connection", opts.Timeout)
	}

	logger.Info("Connected to visualization server.", "sid", io.Id())
	return &Publisher{io: io, opts: opts, logger: logger}, nil
}

// Publish emits snap. If an acknowledgement event is configured, it waits
// for that event before returning.
func (p *Publisher) Publish(ctx context.Context, snap export.Snapshot) error {
	if !p.io.Connected() {
		return errors.New("socket.io client is not connected")
	}

	payload, err := payloadOf(snap)
	if err != nil {
		return err
	}

	var acked chan struct{}
	if p.opts.AckEvent != "" {
		acked = make(chan struct{}, 1)
		p.io.Once(types.EventName(p.opts.AckEvent), func(...any) {
			select {
			case acked <- struct{}{}:
			default:
			}
		})
	}

	p.logger.Debug("Emitting snapshot.", "event", p.opts.Event, "nodes", len(snap.Nodes), "edges", len(snap.Edges))
	if err := p.io.Emit(p.opts.Event, payload); err != nil {
		return fmt.Errorf("failed to emit event '%s': %w", p.opts.Event, err)
	}
	if acked == nil {
		return nil
	}

	opCtx, cancel := context.WithTimeout(ctx, p.opts.Timeout)
	defer cancel()

	select {
	case <-acked:
		p.logger.Info("Snapshot acknowledged.", "event", p.opts.AckEvent)
		return nil
	case <-opCtx.Done():
		return fmt.Errorf("timed out after %v waiting for event '%s'", p.opts.Timeout, p.opts.AckEvent)
	}
}

// Close disconnects the socket.
func (p *Publisher) Close() error {
	p.logger.Info("Disconnecting from visualization server.", "sid", p.io.Id())
	p.io.Disconnect()
	return nil
}

// payloadOf converts snap into plain maps and slices so the socket.io
// encoder sees the same document WriteJSON produces.
func payloadOf(snap export.Snapshot) (map[string]any, error) {
	raw, err := json.Marshal(snap)
	if err != nil {
		return nil, fmt.Errorf("failed to encode snapshot: %w", err)
	}
	var payload map[string]any
	if err := json.Unmarshal(raw, &payload); err != nil {
		return nil, fmt.Errorf("failed to decode snapshot: %w", err)
	}
	return payload, nil
}
