package mdns

// Header is the fixed 12-byte prefix of every DNS/mDNS message (RFC 1035
// §4.1.1). Flags is carried as-is; the core does not decompose it.
type Header struct {
	ID      uint16
	Flags   uint16
	QDCount uint16
	ANCount uint16
	NSCount uint16
	ARCount uint16
}

// HeaderSize is the wire size of a DNS header in bytes.
const HeaderSize = 12

// parseHeader reads the six big-endian uint16 fields of the header from c.
func parseHeader(c *Cursor) (Header, error) {
	var h Header
	var err error
	if h.ID, err = c.ReadU16(); err != nil {
		return Header{}, err
	}
	if h.Flags, err = c.ReadU16(); err != nil {
		return Header{}, err
	}
	if h.QDCount, err = c.ReadU16(); err != nil {
		return Header{}, err
	}
	if h.ANCount, err = c.ReadU16(); err != nil {
		return Header{}, err
	}
	if h.NSCount, err = c.ReadU16(); err != nil {
		return Header{}, err
	}
	if h.ARCount, err = c.ReadU16(); err != nil {
		return Header{}, err
	}
	return h, nil
}
