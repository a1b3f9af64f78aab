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

package theta

import (
	"bufio"
	"encoding/binary"
	"net"
	"strconv"
	"strings"
	"testing"
	"time"

	"thetadata-go/builder"
	"thetadata-go/enums"
)

// parseReqID extracts the id=<n> field from a STREAM_REQ/STREAM_REMOVE line,
// the way the fake Terminal correlates the ack it sends back to the request.
func parseReqID(t *testing.T, line string) uint32 {
	t.Helper()
	for _, field := range strings.Split(strings.TrimSpace(line), "&") {
		k, v, ok := strings.Cut(field, "=")
		if ok && k == "id" {
			n, err := strconv.ParseUint(v, 10, 32)
			if err != nil {
				t.Fatalf("bad id field %q: %v", v, err)
			}
			return uint32(n)
		}
	}
	t.Fatalf("no id field in request line: %q", line)
	return 0
}

// fakeTerminal is an in-process stand-in for the Theta Terminal: a
// net.Listener accepting exactly one control connection and one stream
// connection, driven by test-supplied handler functions.
type fakeTerminal struct {
	controlLn net.Listener
	streamLn  net.Listener
}

func newFakeTerminal(t *testing.T) (*fakeTerminal, int, int) {
	t.Helper()
	cl, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		t.Fatalf("listen control: %v", err)
	}
	sl, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		t.Fatalf("listen stream: %v", err)
	}
	ft := &fakeTerminal{controlLn: cl, streamLn: sl}
	t.Cleanup(func() {
		cl.Close()
		sl.Close()
	})
	return ft, cl.Addr().(*net.TCPAddr).Port, sl.Addr().(*net.TCPAddr).Port
}

// writeHeader encodes a 20-byte response header.
func writeHeader(conn net.Conn, msgType enums.MessageType, id uint64, formatLen uint8, bodySize uint32) {
	var buf [20]byte
	binary.BigEndian.PutUint16(buf[0:2], uint16(msgType))
	binary.BigEndian.PutUint64(buf[2:10], id)
	binary.BigEndian.PutUint16(buf[10:12], 0)
	binary.BigEndian.PutUint16(buf[12:14], 0)
	buf[15] = formatLen
	binary.BigEndian.PutUint32(buf[16:20], bodySize)
	conn.Write(buf[:])
}

func encodeRow(vals []int32) []byte {
	out := make([]byte, len(vals)*4)
	for i, v := range vals {
		binary.BigEndian.PutUint32(out[i*4:i*4+4], uint32(v))
	}
	return out
}

// acceptControlAndVersion accepts the control connection and reads (but does
// not validate beyond presence) the version handshake line every Dial sends.
func acceptControlAndVersion(t *testing.T, ln net.Listener) net.Conn {
	t.Helper()
	conn, err := ln.Accept()
	if err != nil {
		t.Fatalf("accept control: %v", err)
	}
	// Read byte by byte so nothing past the newline is consumed: callers read
	// the next request line off the same conn.
	var sb strings.Builder
	var b [1]byte
	for {
		if _, err := conn.Read(b[:]); err != nil {
			t.Fatalf("read version line: %v", err)
		}
		sb.WriteByte(b[0])
		if b[0] == '\n' {
			break
		}
	}
	line := sb.String()
	if !strings.HasPrefix(line, "MSG_CODE=200&version=") {
		t.Fatalf("unexpected version line: %q", line)
	}
	return conn
}

func TestDialRetriesThenConnects(t *testing.T) {
	ft, controlPort, streamPort := newFakeTerminal(t)

	done := make(chan struct{})
	go func() {
		defer close(done)
		conn := acceptControlAndVersion(t, ft.controlLn)
		defer conn.Close()
		sconn, err := ft.streamLn.Accept()
		if err != nil {
			return
		}
		defer sconn.Close()
		time.Sleep(50 * time.Millisecond)
	}()

	c, err := Dial(DialOptions{Host: "127.0.0.1", ControlPort: controlPort, StreamPort: streamPort})
	if err != nil {
		t.Fatalf("Dial: %v", err)
	}
	defer c.Close()
	<-done
}

func TestDialFailsAfterRetriesExhausted(t *testing.T) {
	// Nothing is listening on this port.
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		t.Fatalf("listen: %v", err)
	}
	port := ln.Addr().(*net.TCPAddr).Port
	ln.Close()

	_, err = Dial(DialOptions{Host: "127.0.0.1", ControlPort: port, StreamPort: port})
	if err == nil {
		t.Fatal("expected connection error")
	}
	if _, ok := err.(*ConnectionError); !ok {
		t.Errorf("expected *ConnectionError, got %T", err)
	}
}

func TestGetHistStockRoundTrip(t *testing.T) {
	ft, controlPort, streamPort := newFakeTerminal(t)

	go func() {
		conn := acceptControlAndVersion(t, ft.controlLn)
		defer conn.Close()
		sconn, err := ft.streamLn.Accept()
		if err != nil {
			return
		}
		defer sconn.Close()

		r := bufio.NewReader(conn)
		line, _ := r.ReadString('\n')
		if !strings.Contains(line, "MSG_CODE=200") || !strings.Contains(line, "sec=STOCK") {
			t.Errorf("unexpected HIST request: %q", line)
		}

		format := []int32{int32(enums.DTPrice.Code), int32(enums.DTPriceType.Code)}
		body := append([]byte{}, encodeRow(format)...)
		body = append(body, encodeRow([]int32{150000, 7})...)
		body = append(body, encodeRow([]int32{0, 0})...)

		writeHeader(conn, enums.MsgHist, 1, uint8(len(format)), uint32(len(body)))
		conn.Write(body)
	}()

	c, err := Dial(DialOptions{Host: "127.0.0.1", ControlPort: controlPort, StreamPort: streamPort})
	if err != nil {
		t.Fatalf("Dial: %v", err)
	}
	defer c.Close()

	table, err := c.GetHistStock(hsr("AAPL"))
	if err != nil {
		t.Fatalf("GetHistStock: %v", err)
	}
	if len(table.Rows) != 1 {
		t.Fatalf("expected 1 row after sentinel trim, got %d", len(table.Rows))
	}
	if len(table.Format) != 1 {
		t.Fatalf("expected PRICE_TYPE column dropped, got format %v", table.Format)
	}
	if got := table.Rows[0][0]; got != 150.0 {
		t.Errorf("price = %v, want 150.0 (150000 * 0.001)", got)
	}
}

func TestGetHistStockErrorResponse(t *testing.T) {
	ft, controlPort, streamPort := newFakeTerminal(t)

	go func() {
		conn := acceptControlAndVersion(t, ft.controlLn)
		defer conn.Close()
		sconn, err := ft.streamLn.Accept()
		if err != nil {
			return
		}
		defer sconn.Close()

		r := bufio.NewReader(conn)
		r.ReadString('\n')

		body := []byte("no data for contract")
		writeHeader(conn, enums.MsgError, 1, 0, uint32(len(body)))
		conn.Write(body)
	}()

	c, err := Dial(DialOptions{Host: "127.0.0.1", ControlPort: controlPort, StreamPort: streamPort})
	if err != nil {
		t.Fatalf("Dial: %v", err)
	}
	defer c.Close()

	_, err = c.GetHistStock(hsr("AAPL"))
	if err == nil {
		t.Fatal("expected error")
	}
	if _, ok := err.(*NoDataError); !ok {
		t.Errorf("expected *NoDataError, got %T: %v", err, err)
	}
}

func TestGetExpirationsRoundTrip(t *testing.T) {
	ft, controlPort, streamPort := newFakeTerminal(t)

	go func() {
		conn := acceptControlAndVersion(t, ft.controlLn)
		defer conn.Close()
		sconn, err := ft.streamLn.Accept()
		if err != nil {
			return
		}
		defer sconn.Close()
		r := bufio.NewReader(conn)
		r.ReadString('\n')

		body := []byte("20240101,20240621")
		writeHeader(conn, enums.MsgAllExpirations, 1, 0, uint32(len(body)))
		conn.Write(body)
	}()

	c, err := Dial(DialOptions{Host: "127.0.0.1", ControlPort: controlPort, StreamPort: streamPort})
	if err != nil {
		t.Fatalf("Dial: %v", err)
	}
	defer c.Close()

	dates, err := c.GetExpirations("AAPL")
	if err != nil {
		t.Fatalf("GetExpirations: %v", err)
	}
	if len(dates) != 2 {
		t.Fatalf("expected 2 dates, got %d", len(dates))
	}
}

func TestSubscribeAndReceiveTrade(t *testing.T) {
	ft, controlPort, streamPort := newFakeTerminal(t)

	streamReady := make(chan net.Conn, 1)
	go func() {
		conn := acceptControlAndVersion(t, ft.controlLn)
		defer conn.Close()
		sconn, err := ft.streamLn.Accept()
		if err != nil {
			return
		}
		streamReady <- sconn
	}()

	c, err := Dial(DialOptions{Host: "127.0.0.1", ControlPort: controlPort, StreamPort: streamPort})
	if err != nil {
		t.Fatalf("Dial: %v", err)
	}
	defer c.Close()

	sconn := <-streamReady
	defer sconn.Close()

	go func() {
		r := bufio.NewReader(sconn)
		line, _ := r.ReadString('\n')
		if !strings.Contains(line, "MSG_CODE=210") {
			t.Errorf("unexpected STREAM_REQ: %q", line)
			return
		}
		reqID := parseReqID(t, line)

		// Ack: tag=REQ_RESPONSE(40), contract_len=0, req_id:u32, response_code:u32=SUBSCRIBED(0)
		ack := []byte{40, 0, 0, 0, 0, 0, 0, 0, 0, 0}
		binary.BigEndian.PutUint32(ack[2:6], reqID)
		sconn.Write(ack)

		// Then a TRADE frame for a bare-root contract "AAPL".
		contract := []byte{0, 4, 'A', 'A', 'P', 'L', 0}
		sconn.Write([]byte{22, byte(len(contract))})
		sconn.Write(contract)
		payload := encodeRow([]int32{0, 100, 50, 1, 150000, 10, 7, 20240115})
		sconn.Write(payload)
	}()

	id, err := c.Subscribe("AAPL", time.Time{}, 0, enums.RightCall, enums.OptTrade)
	if err != nil {
		t.Fatalf("Subscribe: %v", err)
	}
	if id == 0 {
		t.Fatal("expected non-zero subscription id")
	}

	active := c.ActiveSubscriptions()
	if len(active) != 1 {
		t.Fatalf("expected 1 active subscription, got %d", len(active))
	}

	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		if c.Events.Seen() > 0 {
			break
		}
		time.Sleep(10 * time.Millisecond)
	}
	events := c.Events.Recent("AAPL", 10)
	if len(events) != 1 {
		t.Fatalf("expected 1 trade event, got %d", len(events))
	}
	if events[0].Trade == nil {
		t.Fatal("expected Trade payload")
	}
}

func TestUnsubscribeSendsStreamRemove(t *testing.T) {
	ft, controlPort, streamPort := newFakeTerminal(t)

	streamReady := make(chan net.Conn, 1)
	go func() {
		conn := acceptControlAndVersion(t, ft.controlLn)
		defer conn.Close()
		sconn, err := ft.streamLn.Accept()
		if err != nil {
			return
		}
		streamReady <- sconn
	}()

	c, err := Dial(DialOptions{Host: "127.0.0.1", ControlPort: controlPort, StreamPort: streamPort})
	if err != nil {
		t.Fatalf("Dial: %v", err)
	}
	defer c.Close()

	sconn := <-streamReady
	defer sconn.Close()

	removeLineCh := make(chan string, 1)
	go func() {
		r := bufio.NewReader(sconn)
		reqLine, _ := r.ReadString('\n')
		reqID := parseReqID(t, reqLine)

		ack := []byte{40, 0, 0, 0, 0, 0, 0, 0, 0, 0}
		binary.BigEndian.PutUint32(ack[2:6], reqID)
		sconn.Write(ack)

		removeLine, _ := r.ReadString('\n')
		removeLineCh <- removeLine
	}()

	id, err := c.Subscribe("AAPL", time.Time{}, 0, enums.RightCall, enums.OptTrade)
	if err != nil {
		t.Fatalf("Subscribe: %v", err)
	}
	if err := c.Unsubscribe(id); err != nil {
		t.Fatalf("Unsubscribe: %v", err)
	}

	select {
	case removeLine := <-removeLineCh:
		if !strings.Contains(removeLine, "MSG_CODE=212") {
			t.Errorf("unexpected STREAM_REMOVE line: %q", removeLine)
		}
		if !strings.Contains(removeLine, strconv.FormatUint(id, 10)) {
			t.Errorf("STREAM_REMOVE line missing id=%d: %q", id, removeLine)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for STREAM_REMOVE line")
	}
	if len(c.ActiveSubscriptions()) != 0 {
		t.Error("expected subscription removed from local bookkeeping")
	}
}

func TestSubscribeFullOpenInterestSendsOpenInterestReq(t *testing.T) {
	ft, controlPort, streamPort := newFakeTerminal(t)

	streamReady := make(chan net.Conn, 1)
	go func() {
		conn := acceptControlAndVersion(t, ft.controlLn)
		defer conn.Close()
		sconn, err := ft.streamLn.Accept()
		if err != nil {
			return
		}
		streamReady <- sconn
	}()

	c, err := Dial(DialOptions{Host: "127.0.0.1", ControlPort: controlPort, StreamPort: streamPort})
	if err != nil {
		t.Fatalf("Dial: %v", err)
	}
	defer c.Close()

	sconn := <-streamReady
	defer sconn.Close()

	removeLineCh := make(chan string, 1)
	go func() {
		r := bufio.NewReader(sconn)
		reqLine, _ := r.ReadString('\n')
		if !strings.Contains(reqLine, "req=103") {
			t.Errorf("unexpected STREAM_REQ for open interest: %q", reqLine)
		}
		reqID := parseReqID(t, reqLine)

		ack := []byte{40, 0, 0, 0, 0, 0, 0, 0, 0, 0}
		binary.BigEndian.PutUint32(ack[2:6], reqID)
		sconn.Write(ack)

		removeLine, _ := r.ReadString('\n')
		removeLineCh <- removeLine
	}()

	id, err := c.SubscribeFullOpenInterest()
	if err != nil {
		t.Fatalf("SubscribeFullOpenInterest: %v", err)
	}
	if id == 0 {
		t.Fatal("expected non-zero subscription id")
	}
	if err := c.Unsubscribe(id); err != nil {
		t.Fatalf("Unsubscribe: %v", err)
	}

	select {
	case removeLine := <-removeLineCh:
		if !strings.Contains(removeLine, "MSG_CODE=212") || !strings.Contains(removeLine, "req=103") {
			t.Errorf("unexpected STREAM_REMOVE line: %q", removeLine)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for STREAM_REMOVE line")
	}
}

func TestReceiveLoopEmitsStreamDeadOnClose(t *testing.T) {
	ft, controlPort, streamPort := newFakeTerminal(t)

	streamReady := make(chan net.Conn, 1)
	go func() {
		conn := acceptControlAndVersion(t, ft.controlLn)
		defer conn.Close()
		sconn, err := ft.streamLn.Accept()
		if err != nil {
			return
		}
		streamReady <- sconn
	}()

	c, err := Dial(DialOptions{Host: "127.0.0.1", ControlPort: controlPort, StreamPort: streamPort})
	if err != nil {
		t.Fatalf("Dial: %v", err)
	}

	sconn := <-streamReady
	sconn.Close()

	deadline := time.Now().Add(2 * time.Second)
	var dead StreamEvent
	found := false
	for time.Now().Before(deadline) {
		if c.Events.Seen() > 0 {
			for _, ev := range c.Events.All() {
				if ev.Dead {
					dead = ev
					found = true
					break
				}
			}
		}
		if found {
			break
		}
		time.Sleep(10 * time.Millisecond)
	}
	c.Close()
	if !found {
		t.Fatal("expected a STREAM_DEAD event after the stream socket closed")
	}
	if dead.Err == nil {
		t.Error("expected STREAM_DEAD event to carry the triggering error")
	}
}

func hsr(root string) builder.HistStockRequest {
	return builder.HistStockRequest{
		Root:  root,
		Req:   enums.StkQuote,
		Start: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
		End:   time.Date(2024, 1, 2, 0, 0, 0, 0, time.UTC),
	}
}
