/**
 * Copyright 2025-present Coinbase Global, Inc.
 *
 * Licensed under the Apache License, Version 2.0 (the "License");
 * you may not use this file except in compliance with the License.
 * You may obtain a copy of the License at
 *
 *  http://www.apache.org/licenses/LICENSE-2.0
 *
 * Unless required by applicable law or agreed to in writing, software
 * distributed under the License is distributed on an "AS IS" BASIS,
 * WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
 * See the License for the specific language governing permissions and
 * limitations under the License.
 */

/*
HOT PATH - Control Socket Request/Response Flow

┌───────────────────────────────────────────────────────────────────────────┐
│                          NETWORK LAYER (net.Conn)                          │
└───────────────────────────────────────────────────────────────────────────┘
                                     │
                                     ▼
┌───────────────────────────────────────────────────────────────────────────┐
│ [1] Client.roundTrip() - client.go                              ENTRY POINT │
│     • Writes an ASCII "MSG_CODE=...&...\n" request line                    │
│     • One goroutine at a time: the control socket is request/response,     │
│       not pipelined, so callers serialize through Client.mu                │
└───────────────────────────────────────────────────────────────────────────┘
                                     │
                                     ▼
┌───────────────────────────────────────────────────────────────────────────┐
│ [2] wire.ReadHeader() - wire/header.go                         FRAMING     │
│     • Reads the fixed 20-byte header, resolves MessageType                 │
│     • ERROR message type short-circuits to classifyErrorBody               │
└───────────────────────────────────────────────────────────────────────────┘
                                     │
                                     ▼
┌───────────────────────────────────────────────────────────────────────────┐
│ [3] wire.ReadBody() + decode.DecodeTickTable/DecodeList        DECODING    │
│     • Reads header.BodySize bytes, interprets per response shape           │
└───────────────────────────────────────────────────────────────────────────┘

Package theta implements the blocking client: it owns the connect/retry
lifecycle for both sockets, issues the ASCII request lines built by package
builder, and decodes responses with packages wire and decode.
*/
package theta

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"log"
	"net"
	"sync"
	"sync/atomic"
	"time"

	"thetadata-go/builder"
	"thetadata-go/constants"
	"thetadata-go/decode"
	"thetadata-go/enums"
	"thetadata-go/wire"
)

// DialOptions configures a Client's connection to the Terminal.
type DialOptions struct {
	Host        string
	ControlPort int
	StreamPort  int
	// Username and Passwd are carried through for parity with the upstream
	// client's constructor but are not sent over the wire by this package:
	// credential handling and Terminal process launching are out of scope
	// here (the Terminal is assumed already running).
	Username           string
	Passwd             string
	RequestTimeout     time.Duration
	StreamReadTimeout  time.Duration
	EventStoreCapacity int
}

// defaults fills zero-valued fields with the package defaults.
func (o DialOptions) defaults() DialOptions {
	if o.Host == "" {
		o.Host = constants.DefaultHost
	}
	if o.ControlPort == 0 {
		o.ControlPort = constants.DefaultControlPort
	}
	if o.StreamPort == 0 {
		o.StreamPort = constants.DefaultStreamPort
	}
	if o.Username == "" {
		o.Username = "default"
	}
	if o.Passwd == "" {
		o.Passwd = "default"
	}
	if o.RequestTimeout == 0 {
		o.RequestTimeout = constants.DefaultRequestTimeout
	}
	if o.StreamReadTimeout == 0 {
		o.StreamReadTimeout = constants.DefaultStreamReadTimeout
	}
	if o.EventStoreCapacity == 0 {
		o.EventStoreCapacity = constants.DefaultEventStoreCapacity
	}
	return o
}

// Client is a blocking client for a locally running Theta Terminal process.
// A Client owns two long-lived TCP connections: the control socket for
// request/response calls, and the stream socket for subscribed push updates.
type Client struct {
	opts DialOptions

	mu      sync.Mutex // serializes control-socket request/response pairs
	control net.Conn

	streamMu sync.Mutex
	stream   net.Conn

	Events *EventStore
	subs   *subscriptionRegistry

	nextLocalID uint64 // last stream request id handed out; sent as id= on STREAM_REQ and matched against REQ_RESPONSE

	closed int32
}

// Dial connects to both the control and stream sockets of a running
// Terminal, retrying each up to constants.ConnectRetries times with
// constants.ConnectRetryDelay between attempts, then sends the version
// handshake on the control socket.
func Dial(opts DialOptions) (*Client, error) {
	opts = opts.defaults()

	controlAddr := fmt.Sprintf("%s:%d", opts.Host, opts.ControlPort)
	control, err := dialRetry(controlAddr)
	if err != nil {
		log.Printf("Failed to connect control socket %s: %v", controlAddr, err)
		return nil, err
	}
	log.Println("Connected control socket", controlAddr)

	streamAddr := fmt.Sprintf("%s:%d", opts.Host, opts.StreamPort)
	stream, err := dialRetry(streamAddr)
	if err != nil {
		log.Printf("Failed to connect stream socket %s: %v", streamAddr, err)
		control.Close()
		return nil, err
	}
	log.Println("Connected stream socket", streamAddr)

	c := &Client{
		opts:    opts,
		control: control,
		stream:  stream,
		Events:  NewEventStore(opts.EventStoreCapacity),
		subs:    newSubscriptionRegistry(),
	}

	if _, err := control.Write([]byte(builder.BuildVersion(constants.ClientVersion))); err != nil {
		c.Close()
		return nil, fmt.Errorf("theta: send version handshake: %w", err)
	}

	go c.receiveLoop()
	return c, nil
}

// dialRetry attempts to open a TCP connection constants.ConnectRetries
// times, sleeping constants.ConnectRetryDelay between failures.
func dialRetry(addr string) (net.Conn, error) {
	var lastErr error
	for i := 0; i < constants.ConnectRetries; i++ {
		conn, err := net.DialTimeout("tcp", addr, 1*time.Second)
		if err == nil {
			return conn, nil
		}
		lastErr = err
		if i < constants.ConnectRetries-1 {
			log.Printf("Connect attempt %d/%d to %s failed: %v, retrying in %s",
				i+1, constants.ConnectRetries, addr, err, constants.ConnectRetryDelay)
			time.Sleep(constants.ConnectRetryDelay)
		}
	}
	return nil, &ConnectionError{Addr: addr, Err: lastErr}
}

// Close shuts down both sockets. Safe to call more than once.
func (c *Client) Close() error {
	if !atomic.CompareAndSwapInt32(&c.closed, 0, 1) {
		return nil
	}
	var errs []error
	if c.control != nil {
		if err := c.control.Close(); err != nil {
			errs = append(errs, err)
		}
	}
	if c.stream != nil {
		if err := c.stream.Close(); err != nil {
			errs = append(errs, err)
		}
	}
	if len(errs) > 0 {
		return fmt.Errorf("theta: close: %v", errs)
	}
	return nil
}

// Kill remotely shuts down the Terminal process. Every subsequent request on
// this Client (or any other client of the same Terminal) will time out.
func (c *Client) Kill() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	_, err := c.control.Write([]byte(builder.BuildKill()))
	if err != nil {
		log.Printf("Error sending kill request: %v", err)
		return err
	}
	log.Println("Kill request sent")
	return nil
}

// roundTrip sends a request line on the control socket and reads back one
// framed response, classifying ERROR-type responses per classifyErrorBody.
// HOT PATH: every blocking data call in this file funnels through here.
func (c *Client) roundTrip(request string) (wire.Header, []byte, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.control == nil {
		return wire.Header{}, nil, &ConnectionError{Addr: "control", Err: fmt.Errorf("not connected")}
	}
	_ = c.control.SetDeadline(time.Now().Add(c.opts.RequestTimeout))

	if _, err := c.control.Write([]byte(request)); err != nil {
		if isTimeout(err) {
			return wire.Header{}, nil, &TimeoutError{Op: "write request"}
		}
		return wire.Header{}, nil, &ConnectionError{Addr: "control", Err: err}
	}

	header, err := wire.ReadHeader(c.control)
	if err != nil {
		if isTimeout(err) {
			return wire.Header{}, nil, &TimeoutError{Op: "read header"}
		}
		return wire.Header{}, nil, &ParseError{Request: request, Err: err}
	}

	body, err := wire.ReadBody(c.control, header.BodySize)
	if err != nil {
		if isTimeout(err) {
			return wire.Header{}, nil, &TimeoutError{Op: "read body"}
		}
		return wire.Header{}, nil, &ParseError{Request: request, Err: err}
	}

	if header.MessageType == enums.MsgError {
		return header, nil, classifyErrorBody(string(body))
	}
	return header, body, nil
}

func isTimeout(err error) bool {
	var ne net.Error
	return errors.As(err, &ne) && ne.Timeout()
}

// GetHistOption retrieves historical tick data for a single option contract.
func (c *Client) GetHistOption(r builder.HistOptionRequest) (decode.TickTable, error) {
	header, body, err := c.roundTrip(builder.BuildHistOption(r))
	if err != nil {
		return decode.TickTable{}, err
	}
	return decode.DecodeTickTable(body, header.FormatLen)
}

// GetHistStock retrieves historical tick data for a single stock.
func (c *Client) GetHistStock(r builder.HistStockRequest) (decode.TickTable, error) {
	header, body, err := c.roundTrip(builder.BuildHistStock(r))
	if err != nil {
		return decode.TickTable{}, err
	}
	return decode.DecodeTickTable(body, header.FormatLen)
}

// GetOptAtTime retrieves an intraday snapshot at a fixed time-of-day for an option contract.
func (c *Client) GetOptAtTime(r builder.AtTimeOptionRequest) (decode.TickTable, error) {
	header, body, err := c.roundTrip(builder.BuildOptAtTime(r))
	if err != nil {
		return decode.TickTable{}, err
	}
	return decode.DecodeTickTable(body, header.FormatLen)
}

// GetStkAtTime retrieves an intraday snapshot at a fixed time-of-day for a stock.
func (c *Client) GetStkAtTime(r builder.AtTimeStockRequest) (decode.TickTable, error) {
	header, body, err := c.roundTrip(builder.BuildStkAtTime(r))
	if err != nil {
		return decode.TickTable{}, err
	}
	return decode.DecodeTickTable(body, header.FormatLen)
}

// GetLastOption retrieves the most recent tick for an option contract.
func (c *Client) GetLastOption(root string, exp time.Time, strike decode.StrikeMilliUSD, right enums.OptionRight, req enums.OptionReqType) (decode.TickTable, error) {
	header, body, err := c.roundTrip(builder.BuildLastOption(root, exp, strike, right, req))
	if err != nil {
		return decode.TickTable{}, err
	}
	return decode.DecodeTickTable(body, header.FormatLen)
}

// GetLastStock retrieves the most recent tick for a stock.
func (c *Client) GetLastStock(root string, req enums.StockReqType) (decode.TickTable, error) {
	header, body, err := c.roundTrip(builder.BuildLastStock(root, req))
	if err != nil {
		return decode.TickTable{}, err
	}
	return decode.DecodeTickTable(body, header.FormatLen)
}

// GetExpirations lists every expiration date on file for a root symbol.
func (c *Client) GetExpirations(root string) ([]time.Time, error) {
	_, body, err := c.roundTrip(builder.BuildExpirations(root))
	if err != nil {
		return nil, err
	}
	return decode.DecodeDateList(body)
}

// GetStrikes lists every strike on file for a root/expiration pair, optionally
// narrowed to a trade-date range.
func (c *Client) GetStrikes(root string, exp time.Time, start, end time.Time) ([]decode.StrikeMilliUSD, error) {
	_, body, err := c.roundTrip(builder.BuildStrikes(root, exp, start, end))
	if err != nil {
		return nil, err
	}
	return decode.DecodeStrikeList(body)
}

// GetRoots lists every root symbol on file for a security type.
func (c *Client) GetRoots(sec enums.SecType) ([]string, error) {
	_, body, err := c.roundTrip(builder.BuildRoots(sec))
	if err != nil {
		return nil, err
	}
	return decode.DecodeList(body), nil
}

// GetDatesStock lists every date on file for a stock/request-type pair.
func (c *Client) GetDatesStock(root string, req enums.StockReqType) ([]time.Time, error) {
	_, body, err := c.roundTrip(builder.BuildDatesStock(root, req))
	if err != nil {
		return nil, err
	}
	return decode.DecodeDateList(body)
}

// GetDatesOption lists every date on file for a single option contract.
func (c *Client) GetDatesOption(root string, exp time.Time, strike decode.StrikeMilliUSD, right enums.OptionRight, req enums.OptionReqType) ([]time.Time, error) {
	_, body, err := c.roundTrip(builder.BuildDatesOption(root, exp, strike, right, req))
	if err != nil {
		return nil, err
	}
	return decode.DecodeDateList(body)
}

// GetDatesOptionBulk lists every date on file for every contract in an
// expiration at once, avoiding one ALL_DATES round trip per strike/right.
func (c *Client) GetDatesOptionBulk(root string, exp time.Time, req enums.OptionReqType) ([]time.Time, error) {
	_, body, err := c.roundTrip(builder.BuildDatesOptionBulk(root, exp, req))
	if err != nil {
		return nil, err
	}
	return decode.DecodeDateList(body)
}

// GetRaw sends an arbitrary pre-built request line and returns the decoded
// header plus the raw, undecoded response body. Escape hatch for request
// shapes this client does not model with a dedicated method.
func (c *Client) GetRaw(request string) (wire.Header, []byte, error) {
	return c.roundTrip(request)
}

// Subscribe sends a STREAM_REQ for a single option contract and blocks until
// the Terminal acknowledges it (or constants.DefaultSubscribeTimeout elapses).
func (c *Client) Subscribe(root string, exp time.Time, strike decode.StrikeMilliUSD, right enums.OptionRight, req enums.OptionReqType) (uint64, error) {
	id := atomic.AddUint64(&c.nextLocalID, 1)
	c.subs.register(id, streamSubscription{
		Contract: Contract{Root: root, IsOption: true, Exp: exp, IsCall: right == enums.RightCall, Strike: strike}.String(),
		root:     root,
		exp:      exp,
		strike:   strike,
		right:    right,
		req:      req,
	})

	c.streamMu.Lock()
	_, err := c.stream.Write([]byte(builder.StreamReqOption(root, exp, strike, right, req, id)))
	c.streamMu.Unlock()
	if err != nil {
		c.subs.remove(id)
		return 0, &ConnectionError{Addr: "stream", Err: err}
	}

	if _, err := c.subs.verify(id, constants.DefaultSubscribeTimeout); err != nil {
		return id, err
	}
	return id, nil
}

// SubscribeFullOptionTrades subscribes to the full option-trade tape across
// every root, rather than a single contract.
func (c *Client) SubscribeFullOptionTrades() (uint64, error) {
	id := atomic.AddUint64(&c.nextLocalID, 1)
	c.subs.register(id, streamSubscription{Contract: "*", full: true, req: enums.OptTrade})

	c.streamMu.Lock()
	_, err := c.stream.Write([]byte(builder.StreamReqFullOptionTrades(id)))
	c.streamMu.Unlock()
	if err != nil {
		c.subs.remove(id)
		return 0, &ConnectionError{Addr: "stream", Err: err}
	}

	if _, err := c.subs.verify(id, constants.DefaultSubscribeTimeout); err != nil {
		return id, err
	}
	return id, nil
}

// SubscribeFullOpenInterest subscribes to the firehose open-interest tape
// across every root, rather than a single contract.
func (c *Client) SubscribeFullOpenInterest() (uint64, error) {
	id := atomic.AddUint64(&c.nextLocalID, 1)
	c.subs.register(id, streamSubscription{Contract: "*", full: true, req: enums.OptOpenInterest})

	c.streamMu.Lock()
	_, err := c.stream.Write([]byte(builder.StreamReqOpenInterest(id)))
	c.streamMu.Unlock()
	if err != nil {
		c.subs.remove(id)
		return 0, &ConnectionError{Addr: "stream", Err: err}
	}

	if _, err := c.subs.verify(id, constants.DefaultSubscribeTimeout); err != nil {
		return id, err
	}
	return id, nil
}

// ActiveSubscriptions returns every subscription the Terminal has confirmed.
func (c *Client) ActiveSubscriptions() map[uint64]streamSubscription {
	return c.subs.active()
}

// Unsubscribe sends a STREAM_REMOVE for a previously subscribed id and drops
// it from local bookkeeping. If id is not (or no longer) registered, nothing
// is written to the wire; there is nothing to target a removal at.
func (c *Client) Unsubscribe(id uint64) error {
	sub, ok := c.subs.lookup(id)
	if !ok {
		return nil
	}

	var line string
	if sub.full {
		if sub.req == enums.OptOpenInterest {
			line = builder.StreamRemoveOpenInterest(int64(id))
		} else {
			line = builder.StreamRemoveFullOptionTrades(int64(id))
		}
	} else {
		line = builder.StreamRemoveOption(sub.root, sub.exp, sub.strike, sub.right, sub.req, int64(id))
	}

	c.streamMu.Lock()
	_, err := c.stream.Write([]byte(line))
	c.streamMu.Unlock()
	c.subs.remove(id)
	if err != nil {
		return &ConnectionError{Addr: "stream", Err: err}
	}
	return nil
}

// receiveLoop continuously reads frames off the stream socket and files them
// into c.Events. Runs for the lifetime of the Client; exits when the stream
// socket is closed by Close() or a read fails. Every exit path files exactly
// one synthetic STREAM_DEAD event before returning, per spec: closing
// deliberately or losing the socket both leave the caller with no further
// deliveries, and the caller must be told so rather than left to notice a
// silence.
func (c *Client) receiveLoop() {
	r := bufio.NewReaderSize(c.stream, constants.ReadChunkSize)
	for {
		_ = c.stream.SetReadDeadline(time.Now().Add(c.opts.StreamReadTimeout))
		ev, err := readStreamFrame(r)
		if err != nil {
			if err == errDropEvent {
				// PING: discarded by design, no user-visible event.
				continue
			}
			if atomic.LoadInt32(&c.closed) == 1 {
				c.Events.Add(StreamEvent{Dead: true})
				return
			}
			if err == io.EOF {
				c.Events.Add(StreamEvent{Dead: true, Err: io.EOF})
				return
			}
			// A parse failure on the stream socket means framing is lost and
			// cannot be recovered mid-stream; stop rather than risk
			// misinterpreting every subsequent frame as garbage shifts in.
			c.Events.Add(StreamEvent{Dead: true, Err: err})
			return
		}
		if ev.Type == enums.StreamReqResponse {
			if ev.Resp != nil {
				c.subs.resolve(ev.Resp.ReqID, ev.Resp.Type)
			}
			continue
		}
		c.Events.Add(ev)
	}
}
