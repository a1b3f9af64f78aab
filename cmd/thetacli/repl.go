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
	"log"
	"strconv"
	"strings"
	"time"

	"thetadata-go/builder"
	"thetadata-go/decode"
	"thetadata-go/enums"
	"thetadata-go/theta"

	"github.com/chzyer/readline"
)

func Repl(c *theta.Client) {
	completer := readline.NewPrefixCompleter(
		readline.PcItem("hist",
			readline.PcItem("option"),
			readline.PcItem("stock"),
		),
		readline.PcItem("last",
			readline.PcItem("option"),
			readline.PcItem("stock"),
		),
		readline.PcItem("roots",
			readline.PcItem("option"),
			readline.PcItem("stock"),
		),
		readline.PcItem("expirations"),
		readline.PcItem("strikes"),
		readline.PcItem("stream",
			readline.PcItem("option"),
			readline.PcItem("trades"),
			readline.PcItem("open-interest"),
		),
		readline.PcItem("unsubscribe"),
		readline.PcItem("status"),
		readline.PcItem("help"),
		readline.PcItem("exit"),
	)

	rl, err := readline.NewEx(&readline.Config{
		Prompt:          "theta> ",
		HistoryFile:     "/tmp/thetacli_history",
		AutoComplete:    completer,
		InterruptPrompt: "^C",
		EOFPrompt:       "exit",
	})
	if err != nil {
		log.Printf("failed to create readline: %v", err)
		return
	}
	defer rl.Close()

	for {
		line, err := rl.Readline()
		if err != nil {
			break
		}

		parts := strings.Fields(strings.TrimSpace(line))
		if len(parts) == 0 {
			continue
		}

		switch strings.ToLower(parts[0]) {
		case "hist":
			handleHist(c, parts)
		case "last":
			handleLast(c, parts)
		case "roots":
			handleRoots(c, parts)
		case "expirations":
			handleExpirations(c, parts)
		case "strikes":
			handleStrikes(c, parts)
		case "stream":
			handleStream(c, parts)
		case "unsubscribe":
			handleUnsubscribe(c, parts)
		case "status":
			handleStatus(c)
		case "help":
			displayHelp()
		case "exit":
			return
		default:
			fmt.Println("Unknown command. Type 'help' for available commands.")
		}
	}
}

func parseDate(s string) (time.Time, error) {
	return time.Parse("20060102", s)
}

// parseStrike accepts a dollar-denominated string, e.g. "150.25", and
// converts it to milli-USD, e.g. 150250.
func parseStrike(s string) (decode.StrikeMilliUSD, error) {
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, err
	}
	return decode.StrikeMilliUSD(int64(v*1000 + 0.5)), nil
}

func parseRight(s string) (enums.OptionRight, error) {
	switch strings.ToUpper(s) {
	case "C":
		return enums.RightCall, nil
	case "P":
		return enums.RightPut, nil
	default:
		return "", fmt.Errorf("right must be C or P, got %q", s)
	}
}

func handleHist(c *theta.Client, parts []string) {
	if len(parts) < 2 {
		fmt.Println("Usage: hist option|stock ...")
		return
	}
	switch parts[1] {
	case "option":
		if len(parts) < 9 {
			fmt.Println("Usage: hist option <root> <exp YYYYMMDD> <strike> <C|P> <reqtype> <start YYYYMMDD> <end YYYYMMDD>")
			return
		}
		exp, err := parseDate(parts[3])
		if err != nil {
			fmt.Println("bad expiration:", err)
			return
		}
		strike, err := parseStrike(parts[4])
		if err != nil {
			fmt.Println("bad strike:", err)
			return
		}
		right, err := parseRight(parts[5])
		if err != nil {
			fmt.Println(err)
			return
		}
		req, err := strconv.Atoi(parts[6])
		if err != nil {
			fmt.Println("bad reqtype:", err)
			return
		}
		start, err := parseDate(parts[7])
		if err != nil {
			fmt.Println("bad start date:", err)
			return
		}
		end, err := parseDate(parts[8])
		if err != nil {
			fmt.Println("bad end date:", err)
			return
		}
		table, err := c.GetHistOption(builder.HistOptionRequest{
			Root:   parts[2],
			Exp:    exp,
			Strike: strike,
			Right:  right,
			Req:    enums.OptionReqType(req),
			Start:  start,
			End:    end,
		})
		if err != nil {
			fmt.Println("error:", err)
			return
		}
		displayTickTable(table)
	case "stock":
		if len(parts) < 6 {
			fmt.Println("Usage: hist stock <root> <reqtype> <start YYYYMMDD> <end YYYYMMDD>")
			return
		}
		req, err := strconv.Atoi(parts[3])
		if err != nil {
			fmt.Println("bad reqtype:", err)
			return
		}
		start, err := parseDate(parts[4])
		if err != nil {
			fmt.Println("bad start date:", err)
			return
		}
		end, err := parseDate(parts[5])
		if err != nil {
			fmt.Println("bad end date:", err)
			return
		}
		table, err := c.GetHistStock(builder.HistStockRequest{
			Root:  parts[2],
			Req:   enums.StockReqType(req),
			Start: start,
			End:   end,
		})
		if err != nil {
			fmt.Println("error:", err)
			return
		}
		displayTickTable(table)
	default:
		fmt.Println("Usage: hist option|stock ...")
	}
}

func handleLast(c *theta.Client, parts []string) {
	if len(parts) < 2 {
		fmt.Println("Usage: last option|stock ...")
		return
	}
	switch parts[1] {
	case "option":
		if len(parts) < 7 {
			fmt.Println("Usage: last option <root> <exp YYYYMMDD> <strike> <C|P> <reqtype>")
			return
		}
		exp, err := parseDate(parts[3])
		if err != nil {
			fmt.Println("bad expiration:", err)
			return
		}
		strike, err := parseStrike(parts[4])
		if err != nil {
			fmt.Println("bad strike:", err)
			return
		}
		right, err := parseRight(parts[5])
		if err != nil {
			fmt.Println(err)
			return
		}
		req, err := strconv.Atoi(parts[6])
		if err != nil {
			fmt.Println("bad reqtype:", err)
			return
		}
		table, err := c.GetLastOption(parts[2], exp, strike, right, enums.OptionReqType(req))
		if err != nil {
			fmt.Println("error:", err)
			return
		}
		displayTickTable(table)
	case "stock":
		if len(parts) < 4 {
			fmt.Println("Usage: last stock <root> <reqtype>")
			return
		}
		req, err := strconv.Atoi(parts[3])
		if err != nil {
			fmt.Println("bad reqtype:", err)
			return
		}
		table, err := c.GetLastStock(parts[2], enums.StockReqType(req))
		if err != nil {
			fmt.Println("error:", err)
			return
		}
		displayTickTable(table)
	default:
		fmt.Println("Usage: last option|stock ...")
	}
}

func handleRoots(c *theta.Client, parts []string) {
	if len(parts) < 2 {
		fmt.Println("Usage: roots option|stock")
		return
	}
	var sec enums.SecType
	switch parts[1] {
	case "option":
		sec = enums.SecOption
	case "stock":
		sec = enums.SecStock
	default:
		fmt.Println("Usage: roots option|stock")
		return
	}
	roots, err := c.GetRoots(sec)
	if err != nil {
		fmt.Println("error:", err)
		return
	}
	for _, r := range roots {
		fmt.Println(r)
	}
}

func handleExpirations(c *theta.Client, parts []string) {
	if len(parts) < 2 {
		fmt.Println("Usage: expirations <root>")
		return
	}
	dates, err := c.GetExpirations(parts[1])
	if err != nil {
		fmt.Println("error:", err)
		return
	}
	for _, d := range dates {
		fmt.Println(d.Format("20060102"))
	}
}

func handleStrikes(c *theta.Client, parts []string) {
	if len(parts) < 3 {
		fmt.Println("Usage: strikes <root> <exp YYYYMMDD> [start YYYYMMDD] [end YYYYMMDD]")
		return
	}
	exp, err := parseDate(parts[2])
	if err != nil {
		fmt.Println("bad expiration:", err)
		return
	}
	var start, end time.Time
	if len(parts) >= 5 {
		start, err = parseDate(parts[3])
		if err != nil {
			fmt.Println("bad start date:", err)
			return
		}
		end, err = parseDate(parts[4])
		if err != nil {
			fmt.Println("bad end date:", err)
			return
		}
	}
	strikes, err := c.GetStrikes(parts[1], exp, start, end)
	if err != nil {
		fmt.Println("error:", err)
		return
	}
	for _, s := range strikes {
		fmt.Println(s.DecimalString())
	}
}

func handleStream(c *theta.Client, parts []string) {
	if len(parts) < 2 {
		fmt.Println("Usage: stream option <root> <exp YYYYMMDD> <strike> <C|P> <reqtype> | stream trades | stream open-interest")
		return
	}
	switch parts[1] {
	case "option":
		if len(parts) < 7 {
			fmt.Println("Usage: stream option <root> <exp YYYYMMDD> <strike> <C|P> <reqtype>")
			return
		}
		exp, err := parseDate(parts[3])
		if err != nil {
			fmt.Println("bad expiration:", err)
			return
		}
		strike, err := parseStrike(parts[4])
		if err != nil {
			fmt.Println("bad strike:", err)
			return
		}
		right, err := parseRight(parts[5])
		if err != nil {
			fmt.Println(err)
			return
		}
		req, err := strconv.Atoi(parts[6])
		if err != nil {
			fmt.Println("bad reqtype:", err)
			return
		}
		id, err := c.Subscribe(parts[2], exp, strike, right, enums.OptionReqType(req))
		if err != nil {
			fmt.Println("subscribe failed:", err)
			return
		}
		fmt.Printf("subscribed, id=%d\n", id)
	case "trades":
		id, err := c.SubscribeFullOptionTrades()
		if err != nil {
			fmt.Println("subscribe failed:", err)
			return
		}
		fmt.Printf("subscribed to full option trade tape, id=%d\n", id)
	case "open-interest":
		id, err := c.SubscribeFullOpenInterest()
		if err != nil {
			fmt.Println("subscribe failed:", err)
			return
		}
		fmt.Printf("subscribed to full open-interest tape, id=%d\n", id)
	default:
		fmt.Println("Usage: stream option <root> <exp YYYYMMDD> <strike> <C|P> <reqtype> | stream trades | stream open-interest")
	}
}

func handleUnsubscribe(c *theta.Client, parts []string) {
	if len(parts) < 2 {
		fmt.Println("Usage: unsubscribe <id>")
		return
	}
	id, err := strconv.ParseUint(parts[1], 10, 64)
	if err != nil {
		fmt.Println("bad id:", err)
		return
	}
	if err := c.Unsubscribe(id); err != nil {
		fmt.Println("unsubscribe failed:", err)
		return
	}
	fmt.Printf("unsubscribed id=%d\n", id)
}

func handleStatus(c *theta.Client) {
	active := c.ActiveSubscriptions()
	if len(active) == 0 {
		fmt.Println("No active subscriptions")
	} else {
		fmt.Println("Active subscriptions:")
		for id, sub := range active {
			fmt.Printf("  id=%-6d contract=%-20s state=%s last_update=%s\n",
				id, sub.Contract, sub.State, sub.LastUpdate.Format("15:04:05"))
		}
	}
	fmt.Printf("Stream events seen: %d\n", c.Events.Seen())
}
