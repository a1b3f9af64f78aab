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
	"bytes"
	"encoding/binary"
	"testing"

	"thetadata-go/enums"
)

func row32(vals ...int32) []byte {
	out := make([]byte, len(vals)*4)
	for i, v := range vals {
		binary.BigEndian.PutUint32(out[i*4:i*4+4], uint32(v))
	}
	return out
}

func TestDecodeQuote(t *testing.T) {
	payload := row32(34200000, 10, 11, 150000, 0, 20, 68, 150500, 0, 7, 20240115)
	q, err := decodeQuote(payload)
	if err != nil {
		t.Fatalf("decodeQuote: %v", err)
	}
	if q.BidSize != 10 || q.AskSize != 20 {
		t.Errorf("sizes = %d/%d, want 10/20", q.BidSize, q.AskSize)
	}
	if got := q.BidPrice; got != 150.0 {
		t.Errorf("BidPrice = %v, want 150.0", got)
	}
	if got := q.AskPrice; got != 150.5 {
		t.Errorf("AskPrice = %v, want 150.5", got)
	}
	if q.BidExchange.Code != 11 || q.AskExchange.Code != 68 {
		t.Errorf("exchanges = %d/%d, want 11/68", q.BidExchange.Code, q.AskExchange.Code)
	}
	if q.Date.Year() != 2024 || q.Date.Month() != 1 || q.Date.Day() != 15 {
		t.Errorf("date = %v, want 2024-01-15", q.Date)
	}
}

func TestDecodeQuoteWrongLength(t *testing.T) {
	if _, err := decodeQuote(make([]byte, 40)); err == nil {
		t.Fatal("expected error for short quote payload")
	}
}

func TestDecodeQuoteUnknownExchange(t *testing.T) {
	payload := row32(0, 1, 9999, 0, 0, 1, 68, 0, 0, 7, 20240115)
	if _, err := decodeQuote(payload); err == nil {
		t.Fatal("expected EnumParseError for unknown bid exchange")
	}
}

func TestDecodeTrade(t *testing.T) {
	payload := row32(0, 100, 50, 1, 150000, 10, 7, 20240115)
	tr, err := decodeTrade(payload)
	if err != nil {
		t.Fatalf("decodeTrade: %v", err)
	}
	if tr.Sequence != 100 {
		t.Errorf("Sequence = %d, want 100", tr.Sequence)
	}
	if tr.Size != 50 {
		t.Errorf("Size = %d, want 50", tr.Size)
	}
	if tr.Price != 150.0 {
		t.Errorf("Price = %v, want 150.0", tr.Price)
	}
	if tr.Exchange.Code != 10 {
		t.Errorf("Exchange code = %d, want 10", tr.Exchange.Code)
	}
}

func TestDecodeTradeWrongLength(t *testing.T) {
	if _, err := decodeTrade(make([]byte, 31)); err == nil {
		t.Fatal("expected error for short trade payload")
	}
}

func TestDecodeOHLCVC(t *testing.T) {
	payload := row32(34200000, 150000, 151000, 149000, 150500, 1000, 42, 7, 20240115)
	bar, err := decodeOHLCVC(payload)
	if err != nil {
		t.Fatalf("decodeOHLCVC: %v", err)
	}
	if bar.Open != 150.0 || bar.High != 151.0 || bar.Low != 149.0 || bar.Close != 150.5 {
		t.Errorf("OHLC = %v/%v/%v/%v, want 150.0/151.0/149.0/150.5", bar.Open, bar.High, bar.Low, bar.Close)
	}
	if bar.Volume != 1000 || bar.Count != 42 {
		t.Errorf("Volume/Count = %d/%d, want 1000/42", bar.Volume, bar.Count)
	}
}

func TestDecodeOHLCVCWrongLength(t *testing.T) {
	if _, err := decodeOHLCVC(make([]byte, 35)); err == nil {
		t.Fatal("expected error for short ohlcvc payload")
	}
}

func TestDecodeOpenInterest(t *testing.T) {
	payload := row32(5000, 20240115)
	oi, err := decodeOpenInterest(payload)
	if err != nil {
		t.Fatalf("decodeOpenInterest: %v", err)
	}
	if oi.OpenInterest != 5000 {
		t.Errorf("OpenInterest = %d, want 5000", oi.OpenInterest)
	}
	if oi.Date.Day() != 15 {
		t.Errorf("Date = %v, want day 15", oi.Date)
	}
}

func TestDecodeOpenInterestWrongLength(t *testing.T) {
	if _, err := decodeOpenInterest(make([]byte, 7)); err == nil {
		t.Fatal("expected error for short open_interest payload")
	}
}

func TestReadStreamFrameTapeStatus(t *testing.T) {
	for _, tag := range []byte{byte(enums.StreamStart), byte(enums.StreamRestart), byte(enums.StreamStop)} {
		var buf bytes.Buffer
		buf.WriteByte(tag)
		buf.WriteByte(0)
		buf.Write(row32(20240115))
		ev, err := readStreamFrame(&buf)
		if err != nil {
			t.Fatalf("tag %d: readStreamFrame: %v", tag, err)
		}
		if ev.Tape == nil {
			t.Fatalf("tag %d: expected Tape payload", tag)
		}
		wantRunning := tag != byte(enums.StreamStop)
		if ev.Tape.Running != wantRunning {
			t.Errorf("tag %d: Running = %v, want %v", tag, ev.Tape.Running, wantRunning)
		}
		if ev.Tape.Date.Day() != 15 {
			t.Errorf("tag %d: Date = %v, want day 15", tag, ev.Tape.Date)
		}
	}
}

func TestReadStreamFramePing(t *testing.T) {
	var buf bytes.Buffer
	buf.WriteByte(byte(enums.StreamPing))
	buf.WriteByte(0)
	buf.Write([]byte{0, 0, 0, 0})
	ev, err := readStreamFrame(&buf)
	if err != errDropEvent {
		t.Fatalf("readStreamFrame: err = %v, want errDropEvent", err)
	}
	if (ev != StreamEvent{}) {
		t.Errorf("expected zero-value event on PING, got %+v", ev)
	}
}

func TestReadStreamFrameReqResponse(t *testing.T) {
	var buf bytes.Buffer
	buf.WriteByte(byte(enums.StreamReqResponse))
	buf.WriteByte(0)
	buf.Write(row32(42, int32(enums.StreamRespMaxStreamsReached)))
	ev, err := readStreamFrame(&buf)
	if err != nil {
		t.Fatalf("readStreamFrame: %v", err)
	}
	if ev.RespType == nil || *ev.RespType != enums.StreamRespMaxStreamsReached {
		t.Fatalf("RespType = %v, want MAX_STREAMS_REACHED", ev.RespType)
	}
	if ev.Resp == nil || ev.Resp.ReqID != 42 {
		t.Fatalf("Resp = %+v, want ReqID 42", ev.Resp)
	}
}

func TestReadStreamFrameConnectivity(t *testing.T) {
	for _, tc := range []struct {
		tag  enums.StreamMsgType
		want bool
	}{
		{enums.StreamDisconnected, false},
		{enums.StreamReconnected, true},
	} {
		var buf bytes.Buffer
		buf.WriteByte(byte(tc.tag))
		buf.WriteByte(0)
		buf.Write([]byte{0, 0, 0, 0})
		ev, err := readStreamFrame(&buf)
		if err != nil {
			t.Fatalf("tag %v: readStreamFrame: %v", tc.tag, err)
		}
		if ev.Conn == nil || ev.Conn.Connected != tc.want {
			t.Fatalf("tag %v: Conn = %+v, want Connected=%v", tc.tag, ev.Conn, tc.want)
		}
	}
}

func TestReadStreamFrameUnknownTag(t *testing.T) {
	buf := bytes.NewBuffer([]byte{250})
	if _, err := readStreamFrame(buf); err == nil {
		t.Fatal("expected EnumParseError for unknown stream tag")
	}
}

func TestReadStreamFrameWithContract(t *testing.T) {
	contract := []byte{0, 4, 'A', 'A', 'P', 'L', 0}
	var buf bytes.Buffer
	buf.WriteByte(byte(enums.StreamTrade))
	buf.WriteByte(byte(len(contract)))
	buf.Write(contract)
	buf.Write(row32(0, 1, 10, 1, 150000, 10, 7, 20240115))

	ev, err := readStreamFrame(&buf)
	if err != nil {
		t.Fatalf("readStreamFrame: %v", err)
	}
	if ev.Contract.Root != "AAPL" {
		t.Errorf("Contract.Root = %q, want AAPL", ev.Contract.Root)
	}
	if ev.Trade == nil {
		t.Fatal("expected Trade payload")
	}
}

func TestReadStreamFrameTruncated(t *testing.T) {
	buf := bytes.NewBuffer([]byte{byte(enums.StreamTrade), 0, 1, 2, 3})
	if _, err := readStreamFrame(buf); err == nil {
		t.Fatal("expected error reading truncated trade payload")
	}
}
