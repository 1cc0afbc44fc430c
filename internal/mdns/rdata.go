package mdns

import (
	"fmt"
	"net"
)

// RData is the resource-data payload of an Answer, shaped per record
// type. It is a sealed interface rather than a subclass hierarchy: the
// concrete types below are its only implementations, and
// callers recover the concrete shape with a type switch on the
// RecordType returned alongside it, or directly against RData.
type RData interface {
	isRData()
}

// ARData is the RDATA of an A record: an IPv4 address in network byte order.
type ARData struct {
	IPv4 [4]byte
}

func (ARData) isRData() {}

// IP returns the decoded address as a net.IP.
func (r ARData) IP() net.IP { return net.IP(r.IPv4[:]) }

// AAAARData is the RDATA of an AAAA record: an IPv6 address.
type AAAARData struct {
	IPv6 [16]byte
}

func (AAAARData) isRData() {}

// IP returns the decoded address as a net.IP.
func (r AAAARData) IP() net.IP { return net.IP(r.IPv6[:]) }

// PTRData is the RDATA of a PTR record: a single domain name.
type PTRData struct {
	Name string
}

func (PTRData) isRData() {}

// CNAMEData is the RDATA of a CNAME record: a single domain name.
type CNAMEData struct {
	Name string
}

func (CNAMEData) isRData() {}

// SRVData is the RDATA of an SRV record (RFC 2782).
type SRVData struct {
	Priority uint16
	Weight   uint16
	Port     uint16
	Target   string
}

func (SRVData) isRData() {}

// TXTData is the RDATA of a TXT record, kept as an opaque blob. Parsing
// it into its length-prefixed character-strings (RFC 1035 §3.3.14) is
// left to a future layer.
type TXTData struct {
	Raw []byte
}

func (TXTData) isRData() {}

// OtherData is the RDATA fallback for any record type this decoder does
// not give a dedicated shape to (NS, SOA, MX, NSEC, OPT). Numeric type
// codes outside the known set fail decoding entirely rather than
// landing here; see parseRecordType.
type OtherData struct {
	Raw []byte
}

func (OtherData) isRData() {}

// parseRData decodes the rdlen-byte RDATA region starting at c's current
// position, dispatching on atype. dict backs name decompression for
// name-bearing types.
//
// The caller is responsible for the "cursor sits at rdata_start +
// rdlength afterward" rule (RFC 1035 §4.1.4): parseAnswer snapshots the
// start position before calling this function and restores the cursor
// to start+rdlen afterward, so a name decoder that stops short (or, in
// a misbehaving buffer, reads past rdlen via nested pointers into
// earlier data) can never desynchronize the outer answer loop.
func parseRData(c *Cursor, dict *Cursor, atype RecordType, rdlen int) (RData, error) {
	switch atype {
	case TypeA:
		if rdlen != 4 {
			return nil, fmt.Errorf("%w: A record rdlength %d != 4", ErrRDataLengthMismatch, rdlen)
		}
		b, err := c.ReadBytes(4)
		if err != nil {
			return nil, err
		}
		var out ARData
		copy(out.IPv4[:], b)
		return out, nil

	case TypeAAAA:
		if rdlen != 16 {
			return nil, fmt.Errorf("%w: AAAA record rdlength %d != 16", ErrRDataLengthMismatch, rdlen)
		}
		b, err := c.ReadBytes(16)
		if err != nil {
			return nil, err
		}
		var out AAAARData
		copy(out.IPv6[:], b)
		return out, nil

	case TypePTR:
		name, err := decodeName(c, dict)
		if err != nil {
			return nil, err
		}
		return PTRData{Name: name}, nil

	case TypeCNAME:
		name, err := decodeName(c, dict)
		if err != nil {
			return nil, err
		}
		return CNAMEData{Name: name}, nil

	case TypeSRV:
		priority, err := c.ReadU16()
		if err != nil {
			return nil, err
		}
		weight, err := c.ReadU16()
		if err != nil {
			return nil, err
		}
		port, err := c.ReadU16()
		if err != nil {
			return nil, err
		}
		target, err := decodeName(c, dict)
		if err != nil {
			return nil, err
		}
		return SRVData{Priority: priority, Weight: weight, Port: port, Target: target}, nil

	case TypeTXT:
		b, err := c.ReadBytes(rdlen)
		if err != nil {
			return nil, err
		}
		return TXTData{Raw: b}, nil

	default:
		b, err := c.ReadBytes(rdlen)
		if err != nil {
			return nil, err
		}
		return OtherData{Raw: b}, nil
	}
}
