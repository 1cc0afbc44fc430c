package mdns

// Question is one entry of the question section (RFC 1035 §4.1.2). Name
// is the dotted concatenation of its labels, e.g.
// "_spotify-connect._tcp.local".
type Question struct {
	Name   string
	QType  RecordType
	QClass QueryClass
}

// parseQuestion decodes a question at c's current position. dict backs
// name compression for the whole message. The mDNS unicast-response bit
// (the high bit of the wire class field) is masked off before the class
// is interpreted.
func parseQuestion(c *Cursor, dict *Cursor) (Question, error) {
	name, err := decodeName(c, dict)
	if err != nil {
		return Question{}, err
	}
	typeCode, err := c.ReadU16()
	if err != nil {
		return Question{}, err
	}
	classCode, err := c.ReadU16()
	if err != nil {
		return Question{}, err
	}

	qtype, err := parseRecordType(typeCode)
	if err != nil {
		return Question{}, err
	}
	qclass, err := parseQueryClass(classCode)
	if err != nil {
		return Question{}, err
	}

	return Question{Name: name, QType: qtype, QClass: qclass}, nil
}
