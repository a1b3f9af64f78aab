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

// Package wire implements the length-prefixed binary framing used on the
// Terminal's control socket: a fixed 20-byte Header followed by a
// header.BodySize-byte body. Every control-socket response starts with a
// Header; this package owns reading it and the raw body bytes off the wire
// and nothing else — body interpretation (tick tables, ASCII lists) lives in
// package decode.
package wire

import (
	"encoding/binary"
	"fmt"
	"io"

	"thetadata-go/enums"
)

// HeaderSize is the fixed length, in bytes, of every response header.
//
//	bytes | field
//	    2 | message type
//	    8 | id
//	    2 | latency
//	    2 | error
//	    1 | reserved
//	    1 | format length
//	    4 | body size
const HeaderSize = 20

// Header is the fixed-size preamble of every Terminal response.
type Header struct {
	MessageType enums.MessageType
	ID          uint64
	LatencyMS   uint16
	ErrorCode   uint16
	FormatLen   uint8
	BodySize    uint32
}

// ReadHeader reads and parses exactly HeaderSize bytes from r.
func ReadHeader(r io.Reader) (Header, error) {
	var buf [HeaderSize]byte
	if _, err := io.ReadFull(r, buf[:]); err != nil {
		return Header{}, fmt.Errorf("read header: %w", err)
	}
	return ParseHeader(buf[:])
}

// ParseHeader decodes a 20-byte header buffer. Byte 14 is reserved/unused by
// the Terminal and is skipped rather than validated.
func ParseHeader(data []byte) (Header, error) {
	if len(data) != HeaderSize {
		return Header{}, fmt.Errorf("wire: header must be %d bytes, got %d", HeaderSize, len(data))
	}
	msgCode := int32(binary.BigEndian.Uint16(data[0:2]))
	mt, err := enums.MessageTypeFromCode(msgCode)
	if err != nil {
		return Header{}, err
	}
	return Header{
		MessageType: mt,
		ID:          binary.BigEndian.Uint64(data[2:10]),
		LatencyMS:   binary.BigEndian.Uint16(data[10:12]),
		ErrorCode:   binary.BigEndian.Uint16(data[12:14]),
		FormatLen:   data[15],
		BodySize:    binary.BigEndian.Uint32(data[16:20]),
	}, nil
}

// ReadBody reads exactly n bytes, looping over short reads the way the
// Terminal's chunked delivery requires.
func ReadBody(r io.Reader, n uint32) ([]byte, error) {
	buf := make([]byte, n)
	if _, err := io.ReadFull(r, buf); err != nil {
		return nil, fmt.Errorf("read body: %w", err)
	}
	return buf, nil
}
