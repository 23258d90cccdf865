package chunked

import (
	"errors"
	"io"
	"strings"
	"testing"
)

func TestStaticStreamsInSlices(t *testing.T) {
	payload := "body { color: red; } .tab { overflow: hidden; }"
	stream := NewStatic(payload)
	buf := make([]byte, 7)

	var out strings.Builder
	for {
		n, err := stream.Fill(buf, out.Len())
		if err != nil {
			t.Fatalf("fill: %v", err)
		}
		if n == 0 {
			break
		}
		out.Write(buf[:n])
	}

	if out.String() != payload {
		t.Fatalf("expected payload %q, got %q", payload, out.String())
	}
	if !stream.Released() {
		t.Fatalf("expected stream released after exhaustion")
	}
	if _, err := stream.Fill(buf, 0); !errors.Is(err, ErrReleased) {
		t.Fatalf("expected ErrReleased, got %v", err)
	}
}

func TestStaticEmptyPayload(t *testing.T) {
	stream := NewStatic("")
	n, err := stream.Fill(make([]byte, 8), 0)
	if n != 0 || err != nil {
		t.Fatalf("expected immediate completion, got n=%d err=%v", n, err)
	}
	if !stream.Released() {
		t.Fatalf("expected release on empty payload")
	}
}

func TestStaticRead(t *testing.T) {
	payload := strings.Repeat("0123456789", 100)
	got, err := io.ReadAll(NewStatic(payload))
	if err != nil {
		t.Fatalf("read all: %v", err)
	}
	if string(got) != payload {
		t.Fatalf("payload mismatch")
	}
}

func TestStaticZeroBuffer(t *testing.T) {
	if _, err := NewStatic("x").Fill(nil, 0); !errors.Is(err, ErrBufferTooSmall) {
		t.Fatalf("expected ErrBufferTooSmall, got %v", err)
	}
}
