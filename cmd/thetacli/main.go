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

// Command thetacli is an interactive REPL over a running Theta Terminal,
// exercising the theta.Client the way fixclient.Repl exercises a FIX session.
package main

import (
	"flag"
	"log"

	"thetadata-go/constants"
	"thetadata-go/theta"
)

func main() {
	host := flag.String("host", constants.DefaultHost, "Terminal host")
	controlPort := flag.Int("control-port", constants.DefaultControlPort, "Terminal control socket port")
	streamPort := flag.Int("stream-port", constants.DefaultStreamPort, "Terminal stream socket port")
	username := flag.String("username", "", "optional credential pass-through")
	passwd := flag.String("passwd", "", "optional credential pass-through")
	flag.Parse()

	c, err := theta.Dial(theta.DialOptions{
		Host:        *host,
		ControlPort: *controlPort,
		StreamPort:  *streamPort,
		Username:    *username,
		Passwd:      *passwd,
	})
	if err != nil {
		log.Fatalf("dial Terminal: %v", err)
	}
	defer c.Close()

	log.Printf("connected to Terminal at %s:%d (stream %d)", *host, *controlPort, *streamPort)
	Repl(c)
}
