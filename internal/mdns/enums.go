package mdns

import "fmt"

// RecordType is a closed enumeration of the record types this decoder
// understands (RFC 1035, RFC 3596, RFC 2782, RFC 6762). A numeric type
// code outside this set fails decoding with ErrUnknownRecordType rather
// than falling back to an opaque record; widening the set means adding
// a variant here and a matching arm in rdata.go's dispatch.
type RecordType uint16

const (
	TypeA     RecordType = 1   // IPv4 address
	TypeNS    RecordType = 2   // Authoritative name server
	TypeCNAME RecordType = 5   // Canonical name (alias)
	TypeSOA   RecordType = 6   // Start of authority
	TypePTR   RecordType = 12  // Domain name pointer
	TypeMX    RecordType = 15  // Mail exchange
	TypeTXT   RecordType = 16  // Text strings
	TypeAAAA  RecordType = 28  // IPv6 address (RFC 3596)
	TypeSRV   RecordType = 33  // Service locator (RFC 2782)
	TypeOPT   RecordType = 41  // EDNS pseudo-record (RFC 6891)
	TypeNSEC  RecordType = 47  // Next secure record (RFC 4034)
	TypeMAILB RecordType = 253 // Mailbox-related records (obsolete query type)
	TypeMAILA RecordType = 254 // Mail agent records (obsolete query type)
	TypeAXFR  RecordType = 252 // Zone transfer (query type only)
	TypeANY   RecordType = 255 // Wildcard query type
)

var recordTypeNames = map[RecordType]string{
	TypeA:     "A",
	TypeNS:    "NS",
	TypeCNAME: "CNAME",
	TypeSOA:   "SOA",
	TypePTR:   "PTR",
	TypeMX:    "MX",
	TypeTXT:   "TXT",
	TypeAAAA:  "AAAA",
	TypeSRV:   "SRV",
	TypeOPT:   "OPT",
	TypeNSEC:  "NSEC",
	TypeMAILB: "MAILB",
	TypeMAILA: "MAILA",
	TypeAXFR:  "AXFR",
	TypeANY:   "ANY",
}

// String returns the record type's mnemonic, or its numeric value if unknown.
func (t RecordType) String() string {
	if name, ok := recordTypeNames[t]; ok {
		return name
	}
	return fmt.Sprintf("TYPE%d", uint16(t))
}

// parseRecordType maps a wire-format numeric type code to a RecordType.
// Unknown codes fail decoding rather than falling back to an opaque type.
func parseRecordType(code uint16) (RecordType, error) {
	rt := RecordType(code)
	if _, ok := recordTypeNames[rt]; !ok {
		return 0, fmt.Errorf("%w: record type code %d", ErrUnknownRecordType, code)
	}
	return rt, nil
}

// QueryClass is a closed enumeration of the record classes this decoder
// understands. The mDNS cache-flush / unicast-response bit (the high bit
// of the wire class field) is masked off by the caller before this
// conversion runs; this type only ever sees the remaining 15 bits.
type QueryClass uint16

const (
	ClassIN  QueryClass = 1   // Internet
	ClassANY QueryClass = 255 // Any class (query only)
)

// classMask masks off the mDNS cache-flush / unicast-response bit
// (RFC 6762 §10.2, §18.12) from a wire-format class field.
const classMask uint16 = 0x7FFF

// parseQueryClass masks the cache-flush bit and maps the remainder to a
// QueryClass. Any value other than IN or ANY fails decoding.
func parseQueryClass(raw uint16) (QueryClass, error) {
	masked := raw & classMask
	switch QueryClass(masked) {
	case ClassIN:
		return ClassIN, nil
	case ClassANY:
		return ClassANY, nil
	default:
		return 0, fmt.Errorf("%w: class value %d", ErrUnknownClass, masked)
	}
}

func (c QueryClass) String() string {
	switch c {
	case ClassIN:
		return "IN"
	case ClassANY:
		return "ANY"
	default:
		return fmt.Sprintf("CLASS%d", uint16(c))
	}
}
