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

package decode

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// DecodeList splits an ALL_ROOTS/ALL_EXPIRATIONS/ALL_STRIKES/ALL_DATES-style
// body: a comma-separated ASCII string with no trailing newline.
func DecodeList(body []byte) []string {
	s := string(body)
	if s == "" {
		return nil
	}
	return strings.Split(s, ",")
}

// DecodeDateList parses a list body whose entries are YYYYMMDD integers,
// used by ALL_DATES, ALL_DATES_BULK, and ALL_EXPIRATIONS responses.
func DecodeDateList(body []byte) ([]time.Time, error) {
	entries := DecodeList(body)
	out := make([]time.Time, 0, len(entries))
	for _, e := range entries {
		n, err := strconv.Atoi(strings.TrimSpace(e))
		if err != nil {
			return nil, fmt.Errorf("decode: invalid date entry %q: %w", e, err)
		}
		d, err := DecodeDate(float64(n))
		if err != nil {
			return nil, err
		}
		out = append(out, d)
	}
	return out, nil
}

// StrikeMilliUSD is a strike price in integer thousandths of a US dollar
// (so $123.45 is represented as 123450). Keeping strikes as integers avoids
// the float round-trip drift that a naive float64 dollar representation
// would introduce; convert to a decimal string or float64 only at the
// boundary with DecimalString/Float64.
type StrikeMilliUSD int64

// Float64 converts to a floating point dollar amount. Prefer DecimalString
// for display, since this conversion can reintroduce binary float error.
func (s StrikeMilliUSD) Float64() float64 {
	return float64(s) / 1000.0
}

// DecimalString renders the exact decimal dollar value with three fractional
// digits, e.g. 123450 -> "123.450".
func (s StrikeMilliUSD) DecimalString() string {
	neg := s < 0
	v := int64(s)
	if neg {
		v = -v
	}
	whole := v / 1000
	frac := v % 1000
	sign := ""
	if neg {
		sign = "-"
	}
	return fmt.Sprintf("%s%d.%03d", sign, whole, frac)
}

// DecodeStrikeList parses an ALL_STRIKES body, whose entries are integers in
// US tenths-of-a-cent (i.e. already milli-USD) per the wire contract.
func DecodeStrikeList(body []byte) ([]StrikeMilliUSD, error) {
	entries := DecodeList(body)
	out := make([]StrikeMilliUSD, 0, len(entries))
	for _, e := range entries {
		n, err := strconv.ParseInt(strings.TrimSpace(e), 10, 64)
		if err != nil {
			return nil, fmt.Errorf("decode: invalid strike entry %q: %w", e, err)
		}
		out = append(out, StrikeMilliUSD(n))
	}
	return out, nil
}
