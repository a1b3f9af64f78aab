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

// Package decode turns a wire.Header plus its raw body bytes into usable Go
// values: self-describing tick tables (format tick + row matrix) and
// comma-separated ASCII lists.
//
// HOT PATH: DecodeTickTable runs once per response and is the single
// biggest allocator in the client; see benchmarks in tick_benchmark_test.go.
package decode

import (
	"encoding/binary"
	"fmt"
	"time"

	"thetadata-go/enums"
)

// priceMultipliers maps a PRICE_TYPE column value (0-19) to the float64
// multiplier every is_price column in the same row must be scaled by.
// Index 0 means "not a price" and multiplies to zero, matching the upstream
// client exactly rather than guessing at a more defensive value.
var priceMultipliers = [20]float64{
	0,
	0.000000001, 0.00000001, 0.0000001, 0.000001, 0.00001, 0.0001, 0.001, 0.01, 0.1,
	1,
	10, 100, 1000, 10000, 100000, 1000000, 10000000, 100000000, 1000000000,
}

// TickTable is a decoded HIST/LAST/AT_TIME response body: a column schema
// (Format) and the row matrix (Rows), one float64 per cell post price-scaling.
// Columns whose DataType is not a price are still stored as float64 for a
// uniform Rows matrix; callers needing the raw integer read Format to know
// which interpretation applies.
type TickTable struct {
	Format []enums.DataType
	Rows   [][]float64
}

// PriceMultiplier returns the float64 multiplier for a PRICE_TYPE column
// value, or 0 if pt is out of range. Exposed for callers outside this
// package that decode fixed-layout price fields directly, such as the
// stream socket's Quote/Trade/OHLCVC frames.
func PriceMultiplier(pt int) float64 {
	if pt < 0 || pt >= len(priceMultipliers) {
		return 0
	}
	return priceMultipliers[pt]
}

// Column returns every value in the named column, or nil if the column is
// not present in this table's format.
func (t TickTable) Column(dt enums.DataType) []float64 {
	idx := -1
	for i, f := range t.Format {
		if f.Code == dt.Code {
			idx = i
			break
		}
	}
	if idx == -1 {
		return nil
	}
	out := make([]float64, len(t.Rows))
	for i, row := range t.Rows {
		out[i] = row[idx]
	}
	return out
}

// DecodeTickTable parses a HIST/LAST/AT_TIME/STREAM_CALLBACK-style body:
// formatLen big-endian int32 DataType codes, followed by an (n-1)-row matrix
// of formatLen big-endian int32s per row (the first "row" consumed above is
// the format tick itself, the last is a zero sentinel that is trimmed).
func DecodeTickTable(body []byte, formatLen uint8) (TickTable, error) {
	nCols := int(formatLen)
	if nCols == 0 {
		return TickTable{}, fmt.Errorf("decode: format length is zero")
	}
	cellBytes := nCols * 4
	if len(body) < cellBytes {
		return TickTable{}, fmt.Errorf("decode: body too short for format tick: got %d bytes, need %d", len(body), cellBytes)
	}
	if len(body)%cellBytes != 0 {
		return TickTable{}, fmt.Errorf("decode: body size %d is not a multiple of row width %d", len(body), cellBytes)
	}

	format := make([]enums.DataType, nCols)
	priceTypeIdx := -1
	for c := 0; c < nCols; c++ {
		code := int32(binary.BigEndian.Uint32(body[c*4 : c*4+4]))
		dt, err := enums.DataTypeFromCode(code)
		if err != nil {
			return TickTable{}, fmt.Errorf("decode: format tick column %d: %w", c, err)
		}
		format[c] = dt
		if dt.Code == enums.DTPriceType.Code {
			priceTypeIdx = c
		}
	}

	nRows := len(body)/cellBytes - 1
	if nRows < 0 {
		nRows = 0
	}
	rows := make([][]float64, 0, nRows)
	for r := 0; r < nRows; r++ {
		offset := cellBytes * (r + 1)
		row := make([]float64, nCols)
		for c := 0; c < nCols; c++ {
			iv := int32(binary.BigEndian.Uint32(body[offset+c*4 : offset+c*4+4]))
			row[c] = float64(iv)
		}
		rows = append(rows, row)
	}

	// Drop a trailing all-zero sentinel row, matching upstream's tail check.
	if n := len(rows); n > 0 && isZeroRow(rows[n-1]) {
		rows = rows[:n-1]
	}

	if priceTypeIdx >= 0 {
		for _, row := range rows {
			pt := int(row[priceTypeIdx])
			mult := 0.0
			if pt >= 0 && pt < len(priceMultipliers) {
				mult = priceMultipliers[pt]
			}
			for c, dt := range format {
				if dt.IsPrice {
					row[c] *= mult
				}
			}
		}
		format, rows = dropColumn(format, rows, priceTypeIdx)
	}

	return TickTable{Format: format, Rows: rows}, nil
}

func isZeroRow(row []float64) bool {
	for _, v := range row {
		if v != 0 {
			return false
		}
	}
	return true
}

// DecodeDate converts a DATE column cell (an integer in YYYYMMDD form) into
// a calendar date, matching the wire's date encoding used for both DATE and
// the various expiration/dividend-date columns.
func DecodeDate(cell float64) (time.Time, error) {
	raw := int(cell)
	if raw < 10000101 || raw > 99991231 {
		return time.Time{}, fmt.Errorf("decode: %d is not a valid YYYYMMDD date", raw)
	}
	year, month, day := raw/10000, (raw/100)%100, raw%100
	return time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC), nil
}

func dropColumn(format []enums.DataType, rows [][]float64, idx int) ([]enums.DataType, [][]float64) {
	newFormat := make([]enums.DataType, 0, len(format)-1)
	newFormat = append(newFormat, format[:idx]...)
	newFormat = append(newFormat, format[idx+1:]...)

	newRows := make([][]float64, len(rows))
	for i, row := range rows {
		nr := make([]float64, 0, len(row)-1)
		nr = append(nr, row[:idx]...)
		nr = append(nr, row[idx+1:]...)
		newRows[i] = nr
	}
	return newFormat, newRows
}
