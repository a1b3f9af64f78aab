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

package main

import (
	"fmt"
	"strings"

	"thetadata-go/decode"
)

func displayHelp() {
	fmt.Print(`Commands:
  hist option <root> <exp> <strike> <C|P> <reqtype> <start> <end>  - Historical option ticks
  hist stock <root> <reqtype> <start> <end>                        - Historical stock ticks
  last option <root> <exp> <strike> <C|P> <reqtype>                - Most recent option tick
  last stock <root> <reqtype>                                      - Most recent stock tick
  roots option|stock                                                - List root symbols
  expirations <root>                                                - List expirations for a root
  strikes <root> <exp> [start end]                                  - List strikes for a contract
  stream option <root> <exp> <strike> <C|P> <reqtype>               - Subscribe to a contract
  stream trades                                                     - Subscribe to the full option trade tape
  stream open-interest                                              - Subscribe to the full open-interest tape
  unsubscribe <id>                                                  - Stop filing events for a subscription
  status                                                            - Show active subscriptions and event count
  help                                                              - Show this help message
  exit

Dates are YYYYMMDD. Strikes are dollar amounts, e.g. 150.25.
`)
}

// displayTickTable renders a decoded tick table as a box-drawn column grid,
// one row per line, column headers taken from the format's DataType names.
func displayTickTable(t decode.TickTable) {
	if len(t.Rows) == 0 {
		fmt.Println("No data")
		return
	}

	headers := make([]string, len(t.Format))
	widths := make([]int, len(t.Format))
	for i, dt := range t.Format {
		headers[i] = dt.Name
		widths[i] = len(headers[i])
	}

	cells := make([][]string, len(t.Rows))
	for r, row := range t.Rows {
		cells[r] = make([]string, len(row))
		for c, v := range row {
			s := fmt.Sprintf("%v", v)
			cells[r][c] = s
			if len(s) > widths[c] {
				widths[c] = len(s)
			}
		}
	}

	printRule(widths, "┌", "┬", "┐")
	printRow(headers, widths)
	printRule(widths, "├", "┼", "┤")
	for _, row := range cells {
		printRow(row, widths)
	}
	printRule(widths, "└", "┴", "┘")
}

func printRule(widths []int, left, mid, right string) {
	var b strings.Builder
	b.WriteString(left)
	for i, w := range widths {
		b.WriteString(strings.Repeat("─", w+2))
		if i < len(widths)-1 {
			b.WriteString(mid)
		}
	}
	b.WriteString(right)
	fmt.Println(b.String())
}

func printRow(cells []string, widths []int) {
	var b strings.Builder
	b.WriteString("│")
	for i, c := range cells {
		fmt.Fprintf(&b, " %-*s │", widths[i], c)
	}
	fmt.Println(b.String())
}
