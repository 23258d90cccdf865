package setting

import (
	"strconv"
	"strings"
)

// Option selects one label out of a fixed list. The list is borrowed: the
// caller keeps ownership and must not mutate it while the setting is in use.
type Option struct {
	base
	labels []string
	index  int
}

// NewOption constructs an exclusive option setting selecting the first label.
func NewOption(description, name string, labels []string) *Option {
	return &Option{base: base{description: description, name: name}, labels: labels}
}

// Get returns the stored index, which may be out of range if Set was given
// one; String and HTML clamp it.
func (s *Option) Get() int             { return s.index }
func (s *Option) Set(index int)        { s.index = index }
func (s *Option) Labels() []string     { return s.labels }
func (s *Option) SetFromPost(v string) { s.SetFromString(v) }
func (s *Option) SetDefault()          { s.index = 0 }
func (s *Option) Kind() Kind           { return KindOption }

// SetFromString selects the label that matches exactly; no match selects
// index 0.
func (s *Option) SetFromString(v string) {
	s.index = 0
	for i, label := range s.labels {
		if label == v {
			s.index = i
			return
		}
	}
}

// String returns the selected label. An empty label list yields "".
func (s *Option) String() string {
	if len(s.labels) == 0 {
		return ""
	}
	return s.labels[s.clamped()]
}

func (s *Option) clamped() int {
	switch {
	case s.index < 0:
		return 0
	case s.index >= len(s.labels):
		return len(s.labels) - 1
	default:
		return s.index
	}
}

// HTML renders a SELECT list. Option values are escaped; option text is
// emitted as markup.
func (s *Option) HTML(panelID string) string {
	id := FieldID(panelID, s.name)
	selected := s.clamped()

	var builder strings.Builder
	builder.Grow(64 + 2*len(id) + len(s.description) + 48*len(s.labels))
	builder.WriteString(`<select `)
	builder.WriteString(s.idName(panelID))
	builder.WriteString(`>`)
	for i, label := range s.labels {
		builder.WriteString(`<option id="`)
		builder.WriteString(id)
		builder.WriteByte('_')
		builder.WriteString(strconv.Itoa(i + 1))
		builder.WriteString(`" value="`)
		builder.WriteString(Escape(label))
		builder.WriteByte('"')
		if i == selected {
			builder.WriteString(` selected`)
		}
		builder.WriteByte('>')
		builder.WriteString(label)
		builder.WriteString(`</option>`)
	}
	builder.WriteString(`</select>`)
	builder.WriteString(s.label(panelID))
	return builder.String()
}

// Toggle is a boolean setting rendered as a checkbox.
type Toggle struct {
	base
	value bool
}

// NewToggle constructs a toggle that starts off.
func NewToggle(description, name string) *Toggle {
	return &Toggle{base: base{description: description, name: name}}
}

func (s *Toggle) Get() bool      { return s.value }
func (s *Toggle) Set(value bool) { s.value = value }
func (s *Toggle) SetDefault()    { s.value = false }
func (s *Toggle) Kind() Kind     { return KindToggle }

func (s *Toggle) String() string {
	if s.value {
		return "1"
	}
	return "0"
}

// SetFromString treats "1", "true" and "on" (any case) as true.
func (s *Toggle) SetFromString(v string) {
	v = strings.TrimSpace(v)
	s.value = v == "1" || strings.EqualFold(v, "true") || strings.EqualFold(v, "on")
}

// SetFromPost sets the toggle: browsers only post a checkbox when it is
// checked, whatever its value.
func (s *Toggle) SetFromPost(string) { s.value = true }

func (s *Toggle) HTML(panelID string) string {
	extra := ""
	if s.value {
		extra = ` checked`
	}
	return s.input("checkbox", panelID, extra)
}
