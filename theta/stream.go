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
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"time"

	"thetadata-go/decode"
	"thetadata-go/enums"
)

// Quote is a top-of-book update: 44 bytes on the wire.
type Quote struct {
	MsOfDay     int
	BidSize     int
	BidExchange enums.Exchange
	BidPrice    float64
	BidCond     enums.QuoteCondition
	AskSize     int
	AskExchange enums.Exchange
	AskPrice    float64
	AskCond     enums.QuoteCondition
	Date        time.Time
}

// Trade is a single print: 32 bytes on the wire.
type Trade struct {
	MsOfDay   int
	Sequence  uint64
	Size      int
	Condition enums.TradeCondition
	Price     float64
	Exchange  enums.Exchange
	Date      time.Time
}

// OHLCVC is a bar update: 36 bytes on the wire.
type OHLCVC struct {
	MsOfDay int
	Open    float64
	High    float64
	Low     float64
	Close   float64
	Volume  int
	Count   int
	Date    time.Time
}

// OpenInterest is an open-interest update: 8 bytes on the wire.
type OpenInterest struct {
	OpenInterest int
	Date         time.Time
}

// TapeStatus reports a START/RESTART/STOP tape-command frame, carrying the
// YYYYMMDD date the Terminal sends as the frame's payload. RESTART is folded
// into the same event shape as START.
type TapeStatus struct {
	Running bool
	Date    time.Time
}

// Connectivity reports a DISCONNECTED/RECONNECTED frame from the Terminal's
// upstream data feed. The 4 payload bytes are reserved and carry no decodable
// value; only the direction (Connected) is meaningful.
type Connectivity struct {
	Connected bool
}

// ReqResponse reports a REQ_RESPONSE ack frame, correlating a prior
// STREAM_REQ/STREAM_REMOVE by the id the caller supplied on that request.
type ReqResponse struct {
	ReqID int64
	Type  enums.StreamResponseType
}

// StreamEvent is a tagged union over every frame the stream socket can
// deliver once framed and contract-resolved. Exactly one of the payload
// fields is non-nil/non-zero, selected by Type — except Dead, which is a
// synthetic, Terminal-independent signal receiveLoop emits exactly once when
// it gives up on the socket (not a wire tag at all, since the wire has no
// STREAM_DEAD code of its own).
type StreamEvent struct {
	Type         enums.StreamMsgType
	Contract     Contract
	Quote        *Quote
	Trade        *Trade
	OHLCVC       *OHLCVC
	OpenInterest *OpenInterest
	Tape         *TapeStatus
	Conn         *Connectivity
	Resp         *ReqResponse

	// RespType is retained for callers matching only on ack code; Resp
	// carries the full correlation id alongside the same value.
	RespType *enums.StreamResponseType

	// Dead marks the terminal STREAM_DEAD event: the receive loop has exited
	// and will deliver nothing further. Err is the cause, nil if the loop
	// exited because the caller closed the stream deliberately.
	Dead bool
	Err  error
}

func be32(b []byte) int32 { return int32(binary.BigEndian.Uint32(b)) }

// errDropEvent signals a frame that decoded successfully but carries nothing
// for the caller (PING keepalives); readStreamFrame returns it instead of a
// zero-value StreamEvent so receiveLoop can distinguish "nothing to deliver"
// from a real decode failure.
var errDropEvent = errors.New("theta: stream frame dropped")

func decodeQuote(b []byte) (Quote, error) {
	if len(b) != 44 {
		return Quote{}, fmt.Errorf("theta: quote payload must be 44 bytes, got %d", len(b))
	}
	mult := priceMultiplierAt(b[36:40])
	bidEx, err := enums.ExchangeFromCode(be32(b[8:12]))
	if err != nil {
		return Quote{}, err
	}
	askEx, err := enums.ExchangeFromCode(be32(b[24:28]))
	if err != nil {
		return Quote{}, err
	}
	d, err := decode.DecodeDate(float64(be32(b[40:44])))
	if err != nil {
		return Quote{}, err
	}
	return Quote{
		MsOfDay:     int(be32(b[0:4])),
		BidSize:     int(be32(b[4:8])),
		BidExchange: bidEx,
		BidPrice:    float64(be32(b[12:16])) * mult,
		BidCond:     enums.QuoteConditionFromCode(be32(b[16:20])),
		AskSize:     int(be32(b[20:24])),
		AskExchange: askEx,
		AskPrice:    float64(be32(b[28:32])) * mult,
		AskCond:     enums.QuoteConditionFromCode(be32(b[32:36])),
		Date:        d,
	}, nil
}

func decodeTrade(b []byte) (Trade, error) {
	if len(b) != 32 {
		return Trade{}, fmt.Errorf("theta: trade payload must be 32 bytes, got %d", len(b))
	}
	mult := priceMultiplierAt(b[24:28])
	ex, err := enums.ExchangeFromCode(be32(b[20:24]))
	if err != nil {
		return Trade{}, err
	}
	d, err := decode.DecodeDate(float64(be32(b[28:32])))
	if err != nil {
		return Trade{}, err
	}
	return Trade{
		MsOfDay:   int(be32(b[0:4])),
		Sequence:  uint64(binary.BigEndian.Uint32(b[4:8])),
		Size:      int(be32(b[8:12])),
		Condition: enums.TradeConditionFromCode(be32(b[12:16])),
		Price:     float64(be32(b[16:20])) * mult,
		Exchange:  ex,
		Date:      d,
	}, nil
}

func decodeOHLCVC(b []byte) (OHLCVC, error) {
	if len(b) != 36 {
		return OHLCVC{}, fmt.Errorf("theta: ohlcvc payload must be 36 bytes, got %d", len(b))
	}
	mult := priceMultiplierAt(b[28:32])
	d, err := decode.DecodeDate(float64(be32(b[32:36])))
	if err != nil {
		return OHLCVC{}, err
	}
	return OHLCVC{
		MsOfDay: int(be32(b[0:4])),
		Open:    float64(be32(b[4:8])) * mult,
		High:    float64(be32(b[8:12])) * mult,
		Low:     float64(be32(b[12:16])) * mult,
		Close:   float64(be32(b[16:20])) * mult,
		Volume:  int(be32(b[20:24])),
		Count:   int(be32(b[24:28])),
		Date:    d,
	}, nil
}

func decodeOpenInterest(b []byte) (OpenInterest, error) {
	if len(b) != 8 {
		return OpenInterest{}, fmt.Errorf("theta: open_interest payload must be 8 bytes, got %d", len(b))
	}
	d, err := decode.DecodeDate(float64(be32(b[4:8])))
	if err != nil {
		return OpenInterest{}, err
	}
	return OpenInterest{OpenInterest: int(be32(b[0:4])), Date: d}, nil
}

func priceMultiplierAt(ptField []byte) float64 {
	return decode.PriceMultiplier(int(be32(ptField)))
}

// readStreamFrame reads exactly one frame from the stream socket and decodes
// it into a StreamEvent. Every frame carries a contract-length byte plus
// contract blob immediately after the tag, whether or not the tag's payload
// actually uses it (PING/START/RESTART/STOP/DISCONNECTED/RECONNECTED send a
// zero-length contract); this mirrors the unconditional contract read in the
// upstream receive loop rather than special-casing tags that happen not to
// need one. A PING frame decodes successfully but returns errDropEvent
// instead of a StreamEvent: the caller has nothing to deliver.
func readStreamFrame(r io.Reader) (StreamEvent, error) {
	var tagBuf [1]byte
	if _, err := io.ReadFull(r, tagBuf[:]); err != nil {
		return StreamEvent{}, fmt.Errorf("theta: read stream tag: %w", err)
	}
	tag, err := enums.StreamMsgTypeFromCode(tagBuf[0])
	if err != nil {
		return StreamEvent{}, err
	}

	var lenBuf [1]byte
	if _, err := io.ReadFull(r, lenBuf[:]); err != nil {
		return StreamEvent{}, fmt.Errorf("theta: read contract length: %w", err)
	}
	var contract Contract
	if lenBuf[0] > 0 {
		contractBuf := make([]byte, lenBuf[0])
		if _, err := io.ReadFull(r, contractBuf); err != nil {
			return StreamEvent{}, fmt.Errorf("theta: read contract: %w", err)
		}
		contract, err = decodeContract(contractBuf)
		if err != nil {
			return StreamEvent{}, err
		}
	}

	ev := StreamEvent{Type: tag, Contract: contract}
	switch tag {
	case enums.StreamStart, enums.StreamRestart, enums.StreamStop:
		payload := make([]byte, 4)
		if _, err := io.ReadFull(r, payload); err != nil {
			return StreamEvent{}, fmt.Errorf("theta: read tape-status date: %w", err)
		}
		d, err := decode.DecodeDate(float64(be32(payload)))
		if err != nil {
			return StreamEvent{}, err
		}
		ev.Tape = &TapeStatus{Running: tag != enums.StreamStop, Date: d}
	case enums.StreamPing:
		var discard [4]byte
		if _, err := io.ReadFull(r, discard[:]); err != nil {
			return StreamEvent{}, fmt.Errorf("theta: read ping payload: %w", err)
		}
		return StreamEvent{}, errDropEvent
	case enums.StreamDisconnected, enums.StreamReconnected:
		var reserved [4]byte
		if _, err := io.ReadFull(r, reserved[:]); err != nil {
			return StreamEvent{}, fmt.Errorf("theta: read connectivity payload: %w", err)
		}
		ev.Conn = &Connectivity{Connected: tag == enums.StreamReconnected}
	case enums.StreamQuote:
		payload := make([]byte, 44)
		if _, err := io.ReadFull(r, payload); err != nil {
			return StreamEvent{}, fmt.Errorf("theta: read quote payload: %w", err)
		}
		q, err := decodeQuote(payload)
		if err != nil {
			return StreamEvent{}, err
		}
		ev.Quote = &q
	case enums.StreamTrade:
		payload := make([]byte, 32)
		if _, err := io.ReadFull(r, payload); err != nil {
			return StreamEvent{}, fmt.Errorf("theta: read trade payload: %w", err)
		}
		tr, err := decodeTrade(payload)
		if err != nil {
			return StreamEvent{}, err
		}
		ev.Trade = &tr
	case enums.StreamOHLCVC:
		payload := make([]byte, 36)
		if _, err := io.ReadFull(r, payload); err != nil {
			return StreamEvent{}, fmt.Errorf("theta: read ohlcvc payload: %w", err)
		}
		o, err := decodeOHLCVC(payload)
		if err != nil {
			return StreamEvent{}, err
		}
		ev.OHLCVC = &o
	case enums.StreamOpenInterest:
		payload := make([]byte, 8)
		if _, err := io.ReadFull(r, payload); err != nil {
			return StreamEvent{}, fmt.Errorf("theta: read open_interest payload: %w", err)
		}
		oi, err := decodeOpenInterest(payload)
		if err != nil {
			return StreamEvent{}, err
		}
		ev.OpenInterest = &oi
	case enums.StreamReqResponse:
		payload := make([]byte, 8)
		if _, err := io.ReadFull(r, payload); err != nil {
			return StreamEvent{}, fmt.Errorf("theta: read req_response payload: %w", err)
		}
		resp, err := enums.StreamResponseTypeFromCode(uint8(be32(payload[4:8])))
		if err != nil {
			return StreamEvent{}, err
		}
		reqID := int64(be32(payload[0:4]))
		ev.RespType = &resp
		ev.Resp = &ReqResponse{ReqID: reqID, Type: resp}
	default:
		// CREDENTIALS/SESSION_TOKEN/INFO/METADATA/CONNECTED/ERROR/CONTRACT
		// carry no payload beyond the tag and (possibly empty) contract
		// already consumed above.
	}
	return ev, nil
}
