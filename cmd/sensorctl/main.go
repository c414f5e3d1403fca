// Command sensorctl dispatches a single request against a sensor-hub device
// and prints the decoded reply. It exists to exercise the host API surface,
// not as a product CLI.
package main

import (
	"encoding/hex"
	"flag"
	"fmt"
	"log"
	"os"
	"strings"
	"time"

	"github.com/fenwick-iot/sensorproto"
)

func init() {
	log.SetFlags(log.LstdFlags | log.Lshortfile)
}

var logFatal = log.Fatal

func main() {
	var (
		host     = flag.String("host", "", "device hostname or IP (required)")
		port     = flag.Uint("port", 51, "device UDP port")
		timeout  = flag.Duration("timeout", 2*time.Second, "per-attempt reply timeout")
		attempts = flag.Int("attempts", 3, "number of send attempts")
		oneWire  = flag.String("onewire", "", "comma-separated 1-Wire device addresses, 16 hex chars each")
	)
	flag.Parse()

	if *host == "" {
		logFatal("sensorctl: -host is required")
	}

	opts := sensorproto.ClientOptions{
		RemotePort:     uint16(*port),
		Timeout:        *timeout,
		ResendAttempts: *attempts,
	}
	opts, err := opts.WithRemoteHost(*host)
	if err != nil {
		logFatal(err)
	}

	prepared, err := prepareRequest(opts, *oneWire)
	if err != nil {
		logFatal(err)
	}

	result, err := prepared.Dispatch()
	if err != nil {
		logFatal(err)
	}

	fmt.Printf("requests sent: %d\n", result.RequestsSent)
	fmt.Printf("response: kind=%#x format=%#x\n", result.Response.Kind, result.Response.Format.Kind)

	if values, ok := sensorproto.DecodeResponseF32(result.Response, result.Payload); ok {
		fmt.Printf("values: %v\n", values)
		return
	}
	fmt.Printf("payload: %s\n", hex.EncodeToString(result.Payload))
}

func prepareRequest(opts sensorproto.ClientOptions, oneWireList string) (sensorproto.PreparedRequest, error) {
	if oneWireList == "" {
		return opts.Prepare(sensorproto.ReadAllRequest(byte(os.Getpid())))
	}

	var devices [][8]byte
	for _, field := range strings.Split(oneWireList, ",") {
		raw, err := hex.DecodeString(strings.TrimSpace(field))
		if err != nil {
			return sensorproto.PreparedRequest{}, fmt.Errorf("sensorctl: decoding device address %q: %w", field, err)
		}
		if len(raw) != 8 {
			return sensorproto.PreparedRequest{}, fmt.Errorf("sensorctl: device address %q is not 8 bytes", field)
		}
		var addr [8]byte
		copy(addr[:], raw)
		devices = append(devices, addr)
	}
	return opts.NewOneWireRead(devices)
}
