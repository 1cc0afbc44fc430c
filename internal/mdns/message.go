package mdns

// Message is the fully decoded representation of one mDNS/DNS datagram:
// a header, its questions, and its answers. Authority and additional
// records are not decoded — NSCount and ARCount are retained on Header
// for callers that want the raw counts, but DecodeMessage never walks
// those sections.
//
// A Message does not retain any reference into the buffer it was
// decoded from; every string and byte slice it carries is materialized
// independently, so the source buffer may be freed immediately after
// DecodeMessage returns.
type Message struct {
	Header    Header
	Questions []Question
	Answers   []Answer
}

// DecodeMessage decodes the UDP payload of an mDNS datagram (or any
// well-formed DNS message buffer) starting at byte 0 of buf, which is
// also the compression dictionary for every name in the message.
//
// DecodeMessage is a pure, synchronous function: deterministic, free of
// I/O, and safe to call concurrently from multiple goroutines against
// independent buffers. A failure at any step aborts the whole decode —
// DecodeMessage never returns a partially populated Message.
func DecodeMessage(buf []byte) (Message, error) {
	primary := newCursor(buf)
	dict := newCursor(buf)

	header, err := parseHeader(primary)
	if err != nil {
		return Message{}, err
	}

	questions := make([]Question, 0, header.QDCount)
	for i := uint16(0); i < header.QDCount; i++ {
		q, err := parseQuestion(primary, dict)
		if err != nil {
			return Message{}, err
		}
		questions = append(questions, q)
	}

	answers := make([]Answer, 0, header.ANCount)
	for i := uint16(0); i < header.ANCount; i++ {
		a, err := parseAnswer(primary, dict)
		if err != nil {
			return Message{}, err
		}
		answers = append(answers, a)
	}

	return Message{Header: header, Questions: questions, Answers: answers}, nil
}
