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
	"fmt"
	"time"

	"thetadata-go/decode"
)

// Contract identifies the security a stream frame belongs to: a bare root
// for stocks, or root+expiration+strike+right for options.
type Contract struct {
	Root     string
	IsOption bool
	Exp      time.Time
	IsCall   bool
	Strike   decode.StrikeMilliUSD
}

func (c Contract) String() string {
	if !c.IsOption {
		return c.Root
	}
	right := "P"
	if c.IsCall {
		right = "C"
	}
	return fmt.Sprintf("%s %s %s %s", c.Root, c.Exp.Format("20060102"), right, c.Strike.DecimalString())
}

// decodeContract parses the variable-length contract blob that follows the
// tag and contract-length byte on the stream socket.
//
//	byte 0      | reserved (legacy length echo, unused)
//	byte 1      | root_len
//	bytes 2..N+2| root (ascii, N=root_len)
//	byte N+2    | isOption flag (1 = option, 0 = stock)
//	-- if option --
//	bytes N+3..N+7 | expiration, YYYYMMDD big-endian int32
//	byte N+7       | isCall flag
//	bytes N+9..N+13| strike, big-endian int32, milli-USD
func decodeContract(data []byte) (Contract, error) {
	if len(data) < 3 {
		return Contract{}, fmt.Errorf("theta: contract blob too short: %d bytes", len(data))
	}
	rootLen := int(data[1])
	if len(data) < 2+rootLen+1 {
		return Contract{}, fmt.Errorf("theta: contract blob too short for root of length %d", rootLen)
	}
	c := Contract{
		Root:     string(data[2 : 2+rootLen]),
		IsOption: data[rootLen+2] == 1,
	}
	if !c.IsOption {
		return c, nil
	}
	if len(data) < rootLen+13 {
		return Contract{}, fmt.Errorf("theta: contract blob too short for option fields")
	}
	expCode := int32(binary.BigEndian.Uint32(data[rootLen+3 : rootLen+7]))
	exp, err := decode.DecodeDate(float64(expCode))
	if err != nil {
		return Contract{}, fmt.Errorf("theta: contract expiration: %w", err)
	}
	c.Exp = exp
	c.IsCall = data[rootLen+7] == 1
	c.Strike = decode.StrikeMilliUSD(int32(binary.BigEndian.Uint32(data[rootLen+9 : rootLen+13])))
	return c, nil
}
