package mdns

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// mkHeader builds a 12-byte DNS/mDNS header.
func mkHeader(id, flags, qd, an, ns, ar uint16) []byte {
	put16 := func(v uint16) []byte { return []byte{byte(v >> 8), byte(v)} }
	buf := append([]byte{}, put16(id)...)
	buf = append(buf, put16(flags)...)
	buf = append(buf, put16(qd)...)
	buf = append(buf, put16(an)...)
	buf = append(buf, put16(ns)...)
	buf = append(buf, put16(ar)...)
	return buf
}

func TestDecodeMessage_SimpleQuery(t *testing.T) {
	buf := mkHeader(0, 0, 1, 0, 0, 0)
	buf = append(buf,
		0x10, '_', 's', 'p', 'o', 't', 'i', 'f', 'y', '-', 'c', 'o', 'n', 'n', 'e', 'c', 't',
		0x04, '_', 't', 'c', 'p',
		0x05, 'l', 'o', 'c', 'a', 'l',
		0x00,
		0x00, 0x0C, // qtype PTR
		0x00, 0x01, // qclass IN
	)

	m, err := DecodeMessage(buf)
	require.NoError(t, err)
	assert.Equal(t, uint16(0), m.Header.ID)
	require.Len(t, m.Questions, 1)
	assert.Equal(t, "_spotify-connect._tcp.local", m.Questions[0].Name)
	assert.Equal(t, TypePTR, m.Questions[0].QType)
	assert.Equal(t, ClassIN, m.Questions[0].QClass)
	assert.Empty(t, m.Answers)
}

func TestDecodeMessage_SingleLabelQuestionName(t *testing.T) {
	buf := mkHeader(0, 0, 1, 0, 0, 0)
	buf = append(buf,
		0x10, '_', 's', 'p', 'o', 't', 'i', 'f', 'y', '-', 'c', 'o', 'n', 'n', 'e', 'c', 't',
		0x00,
		0x00, 0x0C,
		0x00, 0x01,
	)
	m, err := DecodeMessage(buf)
	require.NoError(t, err)
	assert.Equal(t, "_spotify-connect", m.Questions[0].Name)
}

func TestDecodeMessage_CompressionPointerReusesOwnerName(t *testing.T) {
	name := []byte{
		0x10, '_', 's', 'p', 'o', 't', 'i', 'f', 'y', '-', 'c', 'o', 'n', 'n', 'e', 'c', 't',
		0x04, '_', 't', 'c', 'p',
		0x05, 'l', 'o', 'c', 'a', 'l',
		0x00,
	} // 29 bytes, at offset 12..40

	buf := mkHeader(0, 0, 1, 1, 0, 0)
	buf = append(buf, name...)
	buf = append(buf, 0x00, 0x0C, 0x00, 0x01) // question: PTR, IN

	// answer owner name: pointer to offset 12 (start of name above)
	buf = append(buf, 0xC0, 0x0C)
	buf = append(buf, 0x00, 0x0C) // type PTR
	buf = append(buf, 0x00, 0x01) // class IN
	buf = append(buf, 0x00, 0x00, 0x11, 0x94) // ttl 4500
	buf = append(buf, 0x00, 0x02)             // rdlength 2
	buf = append(buf, 0xC0, 0x0C)             // rdata: pointer to same name

	m, err := DecodeMessage(buf)
	require.NoError(t, err)
	require.Len(t, m.Answers, 1)
	assert.Equal(t, "_spotify-connect._tcp.local", m.Answers[0].Name)
	ptr, ok := m.Answers[0].RData.(PTRData)
	require.True(t, ok)
	assert.Equal(t, "_spotify-connect._tcp.local", ptr.Name)
}

func TestDecodeMessage_PTRAnswerWithCompressedRDataAdvancesExactlyRDLength(t *testing.T) {
	// owner name "_http._tcp.local" at offset 12.
	owner := []byte{
		0x05, '_', 'h', 't', 't', 'p',
		0x04, '_', 't', 'c', 'p',
		0x05, 'l', 'o', 'c', 'a', 'l',
		0x00,
	}
	buf := mkHeader(0, 0, 0, 2, 0, 0)
	ownerOffset := len(buf)
	buf = append(buf, owner...)
	buf = append(buf, 0x00, 0x0C) // type PTR
	buf = append(buf, 0x00, 0x01) // class IN
	buf = append(buf, 0x00, 0x00, 0x11, 0x94) // ttl 4500
	buf = append(buf, 0x00, 0x06)             // rdlength 6
	// rdata: "hub" + pointer to ownerOffset (6 bytes total, fewer than the
	// logical "hub._http._tcp.local" name they decode to)
	buf = append(buf, 0x03, 'h', 'u', 'b', byte(0xC0|(ownerOffset>>8)), byte(ownerOffset))

	// a second answer immediately after: if the cursor had desynced by
	// trusting the name decoder's own consumption instead of rdlength,
	// this record would be misparsed or fail outright.
	buf = append(buf, byte(0xC0|(ownerOffset>>8)), byte(ownerOffset))
	buf = append(buf, 0x00, 0x01) // type A
	buf = append(buf, 0x00, 0x01) // class IN
	buf = append(buf, 0x00, 0x00, 0x00, 0x78) // ttl 120
	buf = append(buf, 0x00, 0x04)             // rdlength 4
	buf = append(buf, 10, 0, 0, 1)

	m, err := DecodeMessage(buf)
	require.NoError(t, err)
	require.Len(t, m.Answers, 2)

	ptr, ok := m.Answers[0].RData.(PTRData)
	require.True(t, ok)
	assert.Equal(t, "hub._http._tcp.local", ptr.Name)

	assert.Equal(t, "_http._tcp.local", m.Answers[1].Name)
	a, ok := m.Answers[1].RData.(ARData)
	require.True(t, ok)
	assert.Equal(t, "10.0.0.1", a.IP().String())
}

func TestDecodeMessage_SRVRecord(t *testing.T) {
	owner := []byte{
		0x05, '_', 'h', 't', 't', 'p',
		0x04, '_', 't', 'c', 'p',
		0x05, 'l', 'o', 'c', 'a', 'l',
		0x00,
	}
	buf := mkHeader(0, 0, 1, 1, 0, 0)
	ownerOffset := len(buf)
	buf = append(buf, owner...)
	buf = append(buf, 0x00, 0x21, 0x00, 0x01) // question: SRV, IN

	hubName := []byte{0x03, 'h', 'u', 'b'}
	hubOffset := len(buf)
	buf = append(buf, hubName...)
	buf = append(buf, byte(0xC0|(ownerOffset>>8)), byte(ownerOffset)) // "hub" + pointer to owner

	buf = append(buf, 0x00, 0x21) // type SRV
	buf = append(buf, 0x00, 0x01) // class IN
	buf = append(buf, 0x00, 0x00, 0x11, 0x94) // ttl
	buf = append(buf, 0x00, 0x08)             // rdlength 8
	buf = append(buf, 0x00, 0x00) // priority 0
	buf = append(buf, 0x00, 0x00) // weight 0
	buf = append(buf, 0xD8, 0x47) // port 55367
	buf = append(buf, byte(0xC0|(hubOffset>>8)), byte(hubOffset)) // target pointer to "hub"+owner

	m, err := DecodeMessage(buf)
	require.NoError(t, err)
	require.Len(t, m.Answers, 1)
	srv, ok := m.Answers[0].RData.(SRVData)
	require.True(t, ok)
	assert.Equal(t, uint16(0), srv.Priority)
	assert.Equal(t, uint16(0), srv.Weight)
	assert.Equal(t, uint16(55367), srv.Port)
	assert.Equal(t, "hub._http._tcp.local", srv.Target)
}

func TestDecodeMessage_CacheFlushBitMasked(t *testing.T) {
	mkQuestion := func(classCode uint16) []byte {
		buf := mkHeader(0, 0, 1, 0, 0, 0)
		buf = append(buf, 0x04, 't', 'e', 's', 't', 0x00)
		buf = append(buf, 0x00, 0x01) // type A
		buf = append(buf, byte(classCode>>8), byte(classCode))
		return buf
	}

	m, err := DecodeMessage(mkQuestion(0x8001))
	require.NoError(t, err)
	assert.Equal(t, ClassIN, m.Questions[0].QClass)

	m, err = DecodeMessage(mkQuestion(0x80FF))
	require.NoError(t, err)
	assert.Equal(t, ClassANY, m.Questions[0].QClass)

	_, err = DecodeMessage(mkQuestion(0x8002))
	assert.ErrorIs(t, err, ErrUnknownClass)
}

func TestDecodeMessage_TruncatedHeader(t *testing.T) {
	_, err := DecodeMessage(make([]byte, 11))
	assert.ErrorIs(t, err, ErrTruncated)
	assert.ErrorIs(t, err, ErrDecode)
}

func TestDecodeMessage_AllZeroHeaderYieldsEmptySections(t *testing.T) {
	m, err := DecodeMessage(make([]byte, 12))
	require.NoError(t, err)
	assert.Equal(t, Header{}, m.Header)
	assert.Empty(t, m.Questions)
	assert.Empty(t, m.Answers)
}

func TestDecodeMessage_PointerCycleFails(t *testing.T) {
	buf := mkHeader(0, 0, 1, 0, 0, 0)
	// question name at offset 12: pointer to itself.
	buf = append(buf, 0xC0, 0x0C)
	buf = append(buf, 0x00, 0x0C, 0x00, 0x01)

	_, err := DecodeMessage(buf)
	assert.ErrorIs(t, err, ErrBadPointer)
}

func TestDecodeMessage_ARecordRDLengthMismatchFails(t *testing.T) {
	buf := mkHeader(0, 0, 0, 1, 0, 0)
	buf = append(buf, 0x04, 't', 'e', 's', 't', 0x00)
	buf = append(buf, 0x00, 0x01) // type A
	buf = append(buf, 0x00, 0x01) // class IN
	buf = append(buf, 0x00, 0x00, 0x00, 0x78)
	buf = append(buf, 0x00, 0x05) // rdlength 5 (invalid for A)
	buf = append(buf, 10, 0, 0, 1, 0)

	_, err := DecodeMessage(buf)
	assert.ErrorIs(t, err, ErrRDataLengthMismatch)
}

func TestDecodeMessage_UnknownRecordTypeFails(t *testing.T) {
	buf := mkHeader(0, 0, 1, 0, 0, 0)
	buf = append(buf, 0x04, 't', 'e', 's', 't', 0x00)
	buf = append(buf, 0x00, 0x64) // type 100, unknown
	buf = append(buf, 0x00, 0x01)

	_, err := DecodeMessage(buf)
	assert.ErrorIs(t, err, ErrUnknownRecordType)
}

func TestDecodeMessage_QuestionAnswerCountsMatchHeader(t *testing.T) {
	buf := mkHeader(0, 0, 1, 1, 0, 0)
	buf = append(buf, 0x04, 't', 'e', 's', 't', 0x00)
	buf = append(buf, 0x00, 0x01, 0x00, 0x01)
	buf = append(buf, 0x04, 't', 'e', 's', 't', 0x00)
	buf = append(buf, 0x00, 0x01, 0x00, 0x01, 0x00, 0x00, 0x00, 0x78, 0x00, 0x04, 10, 0, 0, 1)

	m, err := DecodeMessage(buf)
	require.NoError(t, err)
	assert.Len(t, m.Questions, int(m.Header.QDCount))
	assert.Len(t, m.Answers, int(m.Header.ANCount))
}

func TestDecodeMessage_NoNameHasEmptySegment(t *testing.T) {
	buf := mkHeader(0, 0, 1, 0, 0, 0)
	buf = append(buf, 0x04, 't', 'e', 's', 't', 0x03, 'f', 'o', 'o', 0x00)
	buf = append(buf, 0x00, 0x01, 0x00, 0x01)

	m, err := DecodeMessage(buf)
	require.NoError(t, err)
	for _, part := range []string{m.Questions[0].Name} {
		for _, seg := range splitDot(part) {
			assert.NotEmpty(t, seg)
		}
	}
}

func splitDot(s string) []string {
	var out []string
	start := 0
	for i := 0; i < len(s); i++ {
		if s[i] == '.' {
			out = append(out, s[start:i])
			start = i + 1
		}
	}
	out = append(out, s[start:])
	return out
}
