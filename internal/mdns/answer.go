package mdns

import "fmt"

// Answer is one entry of the answer section (RFC 1035 §4.1.3). RDLength
// is retained exactly as declared on the wire.
type Answer struct {
	Name     string
	AType    RecordType
	AClass   QueryClass
	TTL      uint32
	RDLength uint16
	RData    RData
}

// parseAnswer decodes one answer record at c's current position. dict
// backs name decompression for the whole message.
//
// After the RDATA decode, c is unconditionally repositioned to
// rdataStart + rdlength, regardless of how many bytes the per-type
// decoder actually consumed. This is the single place that rule lives:
// name-bearing RDATA may legally consume fewer bytes than rdlength
// declares per RFC 1035 §4.1.4 (the rest lives elsewhere in the packet
// via a compression pointer), and without this reposition every
// subsequent answer in the message would desynchronize.
func parseAnswer(c *Cursor, dict *Cursor) (Answer, error) {
	name, err := decodeName(c, dict)
	if err != nil {
		return Answer{}, err
	}
	typeCode, err := c.ReadU16()
	if err != nil {
		return Answer{}, err
	}
	classCode, err := c.ReadU16()
	if err != nil {
		return Answer{}, err
	}
	ttl, err := c.ReadU32()
	if err != nil {
		return Answer{}, err
	}
	rdlen, err := c.ReadU16()
	if err != nil {
		return Answer{}, err
	}

	atype, err := parseRecordType(typeCode)
	if err != nil {
		return Answer{}, err
	}
	aclass, err := parseQueryClass(classCode)
	if err != nil {
		return Answer{}, err
	}

	rdataStart := c.Offset()
	rdataEnd := rdataStart + int(rdlen)
	if rdataEnd > c.Len() {
		return Answer{}, fmt.Errorf("%w: rdata of length %d at offset %d exceeds buffer", ErrTruncated, rdlen, rdataStart)
	}

	rdata, err := parseRData(c, dict, atype, int(rdlen))
	if err != nil {
		return Answer{}, err
	}
	if err := c.SeekTo(rdataEnd); err != nil {
		return Answer{}, err
	}

	return Answer{
		Name:     name,
		AType:    atype,
		AClass:   aclass,
		TTL:      ttl,
		RDLength: rdlen,
		RData:    rdata,
	}, nil
}
