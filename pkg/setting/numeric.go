package setting

import (
	"math"
	"strconv"
	"strings"
)

// Int is a signed 32-bit integer setting.
type Int struct {
	base
	value int32
}

// NewInt constructs a signed integer setting with value 0.
func NewInt(description, name string) *Int {
	return &Int{base: base{description: description, name: name}}
}

func (s *Int) Get() int32           { return s.value }
func (s *Int) Set(value int32)      { s.value = value }
func (s *Int) String() string       { return strconv.FormatInt(int64(s.value), 10) }
func (s *Int) SetFromPost(v string) { s.SetFromString(v) }
func (s *Int) SetDefault()          { s.value = 0 }
func (s *Int) Kind() Kind           { return KindInt }

// SetFromString parses a base-10 integer. Malformed or out-of-range input
// stores 0.
func (s *Int) SetFromString(v string) {
	parsed, err := strconv.ParseInt(strings.TrimSpace(v), 10, 32)
	if err != nil {
		parsed = 0
	}
	s.value = int32(parsed)
}

func (s *Int) HTML(panelID string) string {
	return s.input("number", panelID, ` value="`+s.String()+`" step="1"`)
}

// Uint is an unsigned 32-bit integer setting.
type Uint struct {
	base
	value uint32
}

// NewUint constructs an unsigned integer setting with value 0.
func NewUint(description, name string) *Uint {
	return &Uint{base: base{description: description, name: name}}
}

func (s *Uint) Get() uint32          { return s.value }
func (s *Uint) Set(value uint32)     { s.value = value }
func (s *Uint) String() string       { return strconv.FormatUint(uint64(s.value), 10) }
func (s *Uint) SetFromPost(v string) { s.SetFromString(v) }
func (s *Uint) SetDefault()          { s.value = 0 }
func (s *Uint) Kind() Kind           { return KindUint }

// SetFromString parses a base-10 unsigned integer. Negative, malformed or
// out-of-range input stores 0.
func (s *Uint) SetFromString(v string) {
	parsed, err := strconv.ParseUint(strings.TrimSpace(v), 10, 32)
	if err != nil {
		parsed = 0
	}
	s.value = uint32(parsed)
}

func (s *Uint) HTML(panelID string) string {
	return s.input("number", panelID, ` value="`+s.String()+`" min="0" step="1"`)
}

// Float is a 32-bit floating point setting.
type Float struct {
	base
	value float32
}

// NewFloat constructs a float setting with value 0.
func NewFloat(description, name string) *Float {
	return &Float{base: base{description: description, name: name}}
}

func (s *Float) Get() float32         { return s.value }
func (s *Float) Set(value float32)    { s.value = value }
func (s *Float) SetFromPost(v string) { s.SetFromString(v) }
func (s *Float) SetDefault()          { s.value = 0 }
func (s *Float) Kind() Kind           { return KindFloat }

// String uses the shortest decimal form that parses back to the same float32,
// independent of locale.
func (s *Float) String() string {
	return strconv.FormatFloat(float64(s.value), 'g', -1, 32)
}

// SetFromString parses a decimal or exponent float. Malformed, out-of-range
// and non-finite input stores 0.
func (s *Float) SetFromString(v string) {
	parsed, err := strconv.ParseFloat(strings.TrimSpace(v), 32)
	if err != nil || math.IsNaN(parsed) || math.IsInf(parsed, 0) {
		parsed = 0
	}
	s.value = float32(parsed)
}

func (s *Float) HTML(panelID string) string {
	return s.input("number", panelID, ` value="`+s.String()+`" step="any"`)
}
