// Command mdnsdecode decodes a single captured mDNS packet from a file and
// prints its header, questions, and answers.
package main

import (
	"encoding/base64"
	"flag"
	"fmt"
	"os"
	"sort"
	"strings"

	"github.com/mdnsexplorer/mdnsexplorer/internal/mdns"
)

func main() {
	var (
		path   = flag.String("file", "", "path to a raw mDNS packet, or '-' for stdin")
		base64In = flag.Bool("base64", false, "treat input as base64-encoded rather than raw bytes")
		quiet  = flag.Bool("quiet", false, "suppress output (exit status indicates success)")
	)
	flag.Parse()

	raw, err := readInput(*path)
	if err != nil {
		if !*quiet {
			fmt.Fprintf(os.Stderr, "mdnsdecode: %v\n", err)
		}
		os.Exit(1)
	}

	if *base64In {
		decoded, err := base64.StdEncoding.DecodeString(strings.TrimSpace(string(raw)))
		if err != nil {
			if !*quiet {
				fmt.Fprintf(os.Stderr, "mdnsdecode: invalid base64 input: %v\n", err)
			}
			os.Exit(1)
		}
		raw = decoded
	}

	msg, err := mdns.DecodeMessage(raw)
	if err != nil {
		if !*quiet {
			fmt.Fprintf(os.Stderr, "mdnsdecode: decode failed: %v\n", err)
		}
		os.Exit(1)
	}
	if *quiet {
		return
	}

	fmt.Printf("id=%d flags=0x%04x questions=%d answers=%d\n",
		msg.Header.ID, msg.Header.Flags, len(msg.Questions), len(msg.Answers))

	for _, q := range msg.Questions {
		fmt.Printf("Q %s %s %s\n", q.Name, q.QClass, q.QType)
	}

	rows := make([]string, 0, len(msg.Answers))
	for _, a := range msg.Answers {
		rows = append(rows, formatAnswer(a))
	}
	sort.Strings(rows)
	for _, s := range rows {
		fmt.Println(s)
	}
}

func readInput(path string) ([]byte, error) {
	if path == "" {
		return nil, fmt.Errorf("-file is required")
	}
	if path == "-" {
		return os.ReadFile("/dev/stdin")
	}
	return os.ReadFile(path)
}

func formatAnswer(a mdns.Answer) string {
	name := a.Name
	if name == "" {
		name = "."
	}

	switch rdata := a.RData.(type) {
	case mdns.ARData:
		return fmt.Sprintf("%s %d %s %s %s", name, a.TTL, a.AClass, a.AType, rdata.IP())
	case mdns.AAAARData:
		return fmt.Sprintf("%s %d %s %s %s", name, a.TTL, a.AClass, a.AType, rdata.IP())
	case mdns.PTRData:
		return fmt.Sprintf("%s %d %s %s %s", name, a.TTL, a.AClass, a.AType, rdata.Name)
	case mdns.CNAMEData:
		return fmt.Sprintf("%s %d %s %s %s", name, a.TTL, a.AClass, a.AType, rdata.Name)
	case mdns.SRVData:
		return fmt.Sprintf("%s %d %s %s %d %d %d %s", name, a.TTL, a.AClass, a.AType, rdata.Priority, rdata.Weight, rdata.Port, rdata.Target)
	case mdns.TXTData:
		return fmt.Sprintf("%s %d %s %s %q", name, a.TTL, a.AClass, a.AType, rdata.Raw)
	default:
		return fmt.Sprintf("%s %d %s %s (unparsed, %d bytes)", name, a.TTL, a.AClass, a.AType, a.RDLength)
	}
}
