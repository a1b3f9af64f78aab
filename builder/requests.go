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

// Package builder assembles the ASCII key/value request lines the control
// and stream sockets expect: "MSG_CODE=<int>&field=value&...\n". Every
// exported Build function here returns the exact line to write to the
// socket; none of them touch the network themselves.
package builder

import (
	"fmt"
	"strings"
	"time"

	"thetadata-go/decode"
	"thetadata-go/enums"
)

const dateLayout = "20060102"

// fieldSetter accumulates key=value pairs in request order, joined with "&"
// and terminated with a single trailing newline, mirroring the fixed field
// order the Terminal's parser expects.
type fieldSetter struct {
	b strings.Builder
}

func (f *fieldSetter) set(key, value string) *fieldSetter {
	if f.b.Len() > 0 {
		f.b.WriteByte('&')
	}
	f.b.WriteString(key)
	f.b.WriteByte('=')
	f.b.WriteString(value)
	return f
}

func (f *fieldSetter) setIfNotEmpty(key, value string) *fieldSetter {
	if value == "" {
		return f
	}
	return f.set(key, value)
}

func (f *fieldSetter) line() string {
	return f.b.String() + "\n"
}

func formatStrike(s decode.StrikeMilliUSD) string {
	return fmt.Sprintf("%d", int64(s))
}

func formatDate(t time.Time) string {
	return t.Format(dateLayout)
}

// BuildVersion sends the client's protocol version. Deliberately reuses
// MessageType HIST (200) rather than a dedicated version code; an oddity of
// the wire protocol preserved exactly rather than corrected.
func BuildVersion(version string) string {
	f := &fieldSetter{}
	f.set("MSG_CODE", fmt.Sprintf("%d", enums.MsgHist))
	f.set("version", version)
	return f.line()
}

// BuildKill sends the Terminal a shutdown request.
func BuildKill() string {
	f := &fieldSetter{}
	f.set("MSG_CODE", fmt.Sprintf("%d", enums.MsgKill))
	return f.line()
}

// HistOptionRequest carries every parameter of a historical option query.
type HistOptionRequest struct {
	Root       string
	Exp        time.Time
	Strike     decode.StrikeMilliUSD
	Right      enums.OptionRight
	Req        enums.OptionReqType
	Start, End time.Time
	IntervalMS int
	UseRTH     bool
}

// BuildHistOption builds the HIST request line for an option contract.
func BuildHistOption(r HistOptionRequest) string {
	f := &fieldSetter{}
	f.set("MSG_CODE", fmt.Sprintf("%d", enums.MsgHist))
	f.set("START_DATE", formatDate(r.Start))
	f.set("END_DATE", formatDate(r.End))
	f.set("root", r.Root)
	f.set("exp", formatDate(r.Exp))
	f.set("strike", formatStrike(r.Strike))
	f.set("right", string(r.Right))
	f.set("sec", string(enums.SecOption))
	f.set("req", fmt.Sprintf("%d", r.Req))
	f.set("rth", boolFlag(r.UseRTH))
	f.set("IVL", fmt.Sprintf("%d", r.IntervalMS))
	return f.line()
}

// HistStockRequest carries every parameter of a historical stock query.
type HistStockRequest struct {
	Root       string
	Req        enums.StockReqType
	Start, End time.Time
	IntervalMS int
	UseRTH     bool
}

// BuildHistStock builds the HIST request line for a stock.
func BuildHistStock(r HistStockRequest) string {
	f := &fieldSetter{}
	f.set("MSG_CODE", fmt.Sprintf("%d", enums.MsgHist))
	f.set("START_DATE", formatDate(r.Start))
	f.set("END_DATE", formatDate(r.End))
	f.set("root", r.Root)
	f.set("sec", string(enums.SecStock))
	f.set("req", fmt.Sprintf("%d", r.Req))
	f.set("rth", boolFlag(r.UseRTH))
	f.set("IVL", fmt.Sprintf("%d", r.IntervalMS))
	return f.line()
}

// AtTimeOptionRequest carries the parameters for an intraday-snapshot option query.
type AtTimeOptionRequest struct {
	Root       string
	Exp        time.Time
	Strike     decode.StrikeMilliUSD
	Right      enums.OptionRight
	Req        enums.OptionReqType
	Start, End time.Time
	MsOfDay    int
}

// BuildOptAtTime builds the AT_TIME request line for an option contract.
func BuildOptAtTime(r AtTimeOptionRequest) string {
	f := &fieldSetter{}
	f.set("MSG_CODE", fmt.Sprintf("%d", enums.MsgAtTime))
	f.set("START_DATE", formatDate(r.Start))
	f.set("END_DATE", formatDate(r.End))
	f.set("root", r.Root)
	f.set("exp", formatDate(r.Exp))
	f.set("strike", formatStrike(r.Strike))
	f.set("right", string(r.Right))
	f.set("sec", string(enums.SecOption))
	f.set("req", fmt.Sprintf("%d", r.Req))
	f.set("IVL", fmt.Sprintf("%d", r.MsOfDay))
	return f.line()
}

// AtTimeStockRequest carries the parameters for an intraday-snapshot stock query.
type AtTimeStockRequest struct {
	Root       string
	Req        enums.StockReqType
	Start, End time.Time
	MsOfDay    int
}

// BuildStkAtTime builds the AT_TIME request line for a stock.
func BuildStkAtTime(r AtTimeStockRequest) string {
	f := &fieldSetter{}
	f.set("MSG_CODE", fmt.Sprintf("%d", enums.MsgAtTime))
	f.set("START_DATE", formatDate(r.Start))
	f.set("END_DATE", formatDate(r.End))
	f.set("root", r.Root)
	f.set("sec", string(enums.SecStock))
	f.set("req", fmt.Sprintf("%d", r.Req))
	f.set("IVL", fmt.Sprintf("%d", r.MsOfDay))
	return f.line()
}

// BuildLastOption builds the LAST (most recent tick) request line for an option.
func BuildLastOption(root string, exp time.Time, strike decode.StrikeMilliUSD, right enums.OptionRight, req enums.OptionReqType) string {
	f := &fieldSetter{}
	f.set("MSG_CODE", fmt.Sprintf("%d", enums.MsgLast))
	f.set("root", root)
	f.set("exp", formatDate(exp))
	f.set("strike", formatStrike(strike))
	f.set("right", string(right))
	f.set("sec", string(enums.SecOption))
	f.set("req", fmt.Sprintf("%d", req))
	return f.line()
}

// BuildLastStock builds the LAST (most recent tick) request line for a stock.
func BuildLastStock(root string, req enums.StockReqType) string {
	f := &fieldSetter{}
	f.set("MSG_CODE", fmt.Sprintf("%d", enums.MsgLast))
	f.set("root", root)
	f.set("sec", string(enums.SecStock))
	f.set("req", fmt.Sprintf("%d", req))
	return f.line()
}

// BuildExpirations builds the ALL_EXPIRATIONS request line for a root symbol.
func BuildExpirations(root string) string {
	f := &fieldSetter{}
	f.set("MSG_CODE", fmt.Sprintf("%d", enums.MsgAllExpirations))
	f.set("root", root)
	return f.line()
}

// BuildStrikes builds the ALL_STRIKES request line, optionally narrowed to a
// date range (zero Start/End means unrestricted).
func BuildStrikes(root string, exp time.Time, start, end time.Time) string {
	f := &fieldSetter{}
	f.set("MSG_CODE", fmt.Sprintf("%d", enums.MsgAllStrikes))
	f.set("root", root)
	f.set("exp", formatDate(exp))
	if !start.IsZero() && !end.IsZero() {
		f.set("START_DATE", formatDate(start))
		f.set("END_DATE", formatDate(end))
	}
	return f.line()
}

// BuildRoots builds the ALL_ROOTS request line for a security type.
func BuildRoots(sec enums.SecType) string {
	f := &fieldSetter{}
	f.set("MSG_CODE", fmt.Sprintf("%d", enums.MsgAllRoots))
	f.set("sec", string(sec))
	return f.line()
}

// BuildDatesStock builds the ALL_DATES request line for a stock.
func BuildDatesStock(root string, req enums.StockReqType) string {
	f := &fieldSetter{}
	f.set("MSG_CODE", fmt.Sprintf("%d", enums.MsgAllDates))
	f.set("root", root)
	f.set("sec", string(enums.SecStock))
	f.set("req", fmt.Sprintf("%d", req))
	return f.line()
}

// BuildDatesOption builds the ALL_DATES request line for a single option contract.
func BuildDatesOption(root string, exp time.Time, strike decode.StrikeMilliUSD, right enums.OptionRight, req enums.OptionReqType) string {
	f := &fieldSetter{}
	f.set("MSG_CODE", fmt.Sprintf("%d", enums.MsgAllDates))
	f.set("root", root)
	f.set("exp", formatDate(exp))
	f.set("strike", formatStrike(strike))
	f.set("right", string(right))
	f.set("sec", string(enums.SecOption))
	f.set("req", fmt.Sprintf("%d", req))
	return f.line()
}

// BuildDatesOptionBulk builds the ALL_DATES_BULK request line: every
// contract's trade dates for an entire expiration at once, rather than one
// request per strike/right.
func BuildDatesOptionBulk(root string, exp time.Time, req enums.OptionReqType) string {
	f := &fieldSetter{}
	f.set("MSG_CODE", fmt.Sprintf("%d", enums.MsgAllDatesBulk))
	f.set("root", root)
	f.set("exp", formatDate(exp))
	f.set("sec", string(enums.SecOption))
	f.set("req", fmt.Sprintf("%d", req))
	return f.line()
}

// StreamReqOption builds a STREAM_REQ line subscribing to a single option
// contract. id is the client-local request id the caller later passes to
// verify() and matches against the REQ_RESPONSE frame's req_id.
func StreamReqOption(root string, exp time.Time, strike decode.StrikeMilliUSD, right enums.OptionRight, req enums.OptionReqType, id uint64) string {
	f := &fieldSetter{}
	f.set("MSG_CODE", fmt.Sprintf("%d", enums.MsgStreamReq))
	f.set("root", root)
	f.set("exp", formatDate(exp))
	f.set("strike", formatStrike(strike))
	f.set("right", string(right))
	f.set("sec", string(enums.SecOption))
	f.set("req", fmt.Sprintf("%d", req))
	f.set("id", fmt.Sprintf("%d", id))
	return f.line()
}

// StreamReqFullOptionTrades builds a STREAM_REQ line subscribing to the full
// option trade tape (every root, every contract).
func StreamReqFullOptionTrades(id uint64) string {
	f := &fieldSetter{}
	f.set("MSG_CODE", fmt.Sprintf("%d", enums.MsgStreamReq))
	f.set("sec", string(enums.SecOption))
	f.set("req", fmt.Sprintf("%d", enums.OptTrade))
	f.set("id", fmt.Sprintf("%d", id))
	return f.line()
}

// StreamReqOpenInterest builds a STREAM_REQ line subscribing to the full
// open-interest tape (every root, every contract).
func StreamReqOpenInterest(id uint64) string {
	f := &fieldSetter{}
	f.set("MSG_CODE", fmt.Sprintf("%d", enums.MsgStreamReq))
	f.set("sec", string(enums.SecOption))
	f.set("req", fmt.Sprintf("%d", enums.OptOpenInterest))
	f.set("id", fmt.Sprintf("%d", id))
	return f.line()
}

// StreamRemoveOpenInterest builds a STREAM_REMOVE line unsubscribing the
// full open-interest tape previously requested with StreamReqOpenInterest.
func StreamRemoveOpenInterest(id int64) string {
	f := &fieldSetter{}
	f.set("MSG_CODE", fmt.Sprintf("%d", enums.MsgStreamRemove))
	f.set("sec", string(enums.SecOption))
	f.set("req", fmt.Sprintf("%d", enums.OptOpenInterest))
	f.set("id", fmt.Sprintf("%d", id))
	return f.line()
}

// StreamRemoveOption builds a STREAM_REMOVE line unsubscribing a single
// option contract previously requested with StreamReqOption. id is the
// original subscription's request id, or -1 to ask the Terminal to remove
// by contract match alone ("targeted remove") rather than by id.
func StreamRemoveOption(root string, exp time.Time, strike decode.StrikeMilliUSD, right enums.OptionRight, req enums.OptionReqType, id int64) string {
	f := &fieldSetter{}
	f.set("MSG_CODE", fmt.Sprintf("%d", enums.MsgStreamRemove))
	f.set("root", root)
	f.set("exp", formatDate(exp))
	f.set("strike", formatStrike(strike))
	f.set("right", string(right))
	f.set("sec", string(enums.SecOption))
	f.set("req", fmt.Sprintf("%d", req))
	f.set("id", fmt.Sprintf("%d", id))
	return f.line()
}

// StreamRemoveFullOptionTrades builds a STREAM_REMOVE line unsubscribing the
// full option trade tape previously requested with StreamReqFullOptionTrades.
func StreamRemoveFullOptionTrades(id int64) string {
	f := &fieldSetter{}
	f.set("MSG_CODE", fmt.Sprintf("%d", enums.MsgStreamRemove))
	f.set("sec", string(enums.SecOption))
	f.set("req", fmt.Sprintf("%d", enums.OptTrade))
	f.set("id", fmt.Sprintf("%d", id))
	return f.line()
}

// boolFlag renders a boolean the way the Terminal's parser expects: the
// literal words True/False, not 1/0.
func boolFlag(b bool) string {
	if b {
		return "True"
	}
	return "False"
}
