package chunked

import "io"

// Static streams one fixed payload in chunks of any size.
type Static struct {
	payload  string
	sent     int
	released bool
}

// NewStatic starts a stream over payload.
func NewStatic(payload string) *Static {
	return &Static{payload: payload}
}

func (s *Static) Len() int       { return len(s.payload) }
func (s *Static) Released() bool { return s.released }
func (s *Static) Release()       { s.released = true }

// Fill copies the next slice of the payload into buf. Exhaustion yields a
// zero-length chunk and releases the stream.
func (s *Static) Fill(buf []byte, index int) (int, error) {
	if s.released {
		return 0, ErrReleased
	}
	remaining := s.payload[s.sent:]
	if remaining == "" {
		s.Release()
		return 0, nil
	}
	if len(buf) == 0 {
		return 0, ErrBufferTooSmall
	}
	n := copy(buf, remaining)
	s.sent += n
	return n, nil
}

// Read implements io.Reader.
func (s *Static) Read(p []byte) (int, error) {
	if s.released && s.sent == len(s.payload) {
		return 0, io.EOF
	}
	if len(p) == 0 {
		return 0, nil
	}
	n, err := s.Fill(p, s.sent)
	if err != nil {
		return n, err
	}
	if n == 0 {
		return 0, io.EOF
	}
	return n, nil
}
