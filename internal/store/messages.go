package store

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/mdnsexplorer/mdnsexplorer/internal/mdns"
)

// ErrNotFound is returned when a requested message does not exist.
var ErrNotFound = errors.New("store: message not found")

// Observation is a single mDNS capture pending or already persisted.
type Observation struct {
	CapturedAt time.Time
	SourceAddr string
	DestAddr   string
	Interface  string
	Raw        []byte
}

// Message is a captured mDNS packet as returned from the store.
type Message struct {
	ID           int64
	CapturedAt   time.Time
	SourceAddr   string
	DestAddr     string
	Interface    string
	NumQuestions int
	NumAnswers   int
	PrimaryName  string
	DecodeError  string
	Raw          []byte
}

// Decoded re-parses the stored raw payload into a mdns.Message.
// If decoding fails it returns the decoder's error, computed afresh; the
// text recorded at insert time is in DecodeError, which callers should
// prefer checking first.
func (m Message) Decoded() (mdns.Message, error) {
	return mdns.DecodeMessage(m.Raw)
}

// Insert decodes obs.Raw, persists the observation, and returns the new row's ID.
// A decode failure does not prevent the raw bytes from being stored; it is
// recorded in DecodeError so malformed captures remain inspectable.
func (s *Store) Insert(obs Observation) (int64, error) {
	var numQ, numA int
	var primaryName, decodeErr string

	msg, err := mdns.DecodeMessage(obs.Raw)
	if err != nil {
		decodeErr = err.Error()
	} else {
		numQ = len(msg.Questions)
		numA = len(msg.Answers)
		switch {
		case len(msg.Questions) > 0:
			primaryName = msg.Questions[0].Name
		case len(msg.Answers) > 0:
			primaryName = msg.Answers[0].Name
		}
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	res, err := s.conn.Exec(
		`INSERT INTO messages (captured_at, source_addr, dest_addr, interface, num_questions, num_answers, primary_name, decode_error, raw)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		obs.CapturedAt, obs.SourceAddr, obs.DestAddr, obs.Interface, numQ, numA, primaryName, decodeErr, obs.Raw,
	)
	if err != nil {
		return 0, fmt.Errorf("failed to insert message: %w", err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("failed to read inserted id: %w", err)
	}
	return id, nil
}

// List returns the most recently captured messages, newest first, bounded by limit.
func (s *Store) List(limit int) ([]Message, error) {
	if limit <= 0 {
		limit = 100
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	rows, err := s.conn.Query(
		`SELECT id, captured_at, source_addr, dest_addr, interface, num_questions, num_answers, primary_name, decode_error, raw
		 FROM messages ORDER BY id DESC LIMIT ?`, limit,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list messages: %w", err)
	}
	defer rows.Close()

	var out []Message
	for rows.Next() {
		m, err := scanMessage(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, m)
	}
	return out, rows.Err()
}

// Get fetches a single message by ID.
func (s *Store) Get(id int64) (Message, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	row := s.conn.QueryRow(
		`SELECT id, captured_at, source_addr, dest_addr, interface, num_questions, num_answers, primary_name, decode_error, raw
		 FROM messages WHERE id = ?`, id,
	)
	m, err := scanMessage(row)
	if errors.Is(err, sql.ErrNoRows) {
		return Message{}, ErrNotFound
	}
	if err != nil {
		return Message{}, err
	}
	return m, nil
}

// Prune deletes messages beyond maxCount (oldest first) and older than maxAge.
// Either bound can be disabled by passing <= 0.
func (s *Store) Prune(maxCount int, maxAge time.Duration) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if maxAge > 0 {
		cutoff := time.Now().Add(-maxAge)
		if _, err := s.conn.Exec(`DELETE FROM messages WHERE captured_at < ?`, cutoff); err != nil {
			return fmt.Errorf("failed to prune by age: %w", err)
		}
	}

	if maxCount > 0 {
		_, err := s.conn.Exec(
			`DELETE FROM messages WHERE id NOT IN (SELECT id FROM messages ORDER BY id DESC LIMIT ?)`,
			maxCount,
		)
		if err != nil {
			return fmt.Errorf("failed to prune by count: %w", err)
		}
	}

	return nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanMessage(row rowScanner) (Message, error) {
	var m Message
	err := row.Scan(
		&m.ID, &m.CapturedAt, &m.SourceAddr, &m.DestAddr, &m.Interface,
		&m.NumQuestions, &m.NumAnswers, &m.PrimaryName, &m.DecodeError, &m.Raw,
	)
	if err != nil {
		return Message{}, err
	}
	return m, nil
}
