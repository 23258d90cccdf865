package setting

import "strings"

// Kind identifies the control a setting renders as.
type Kind int

const (
	KindText Kind = iota
	KindPassword
	KindInt
	KindUint
	KindFloat
	KindOption
	KindToggle
	KindNote
	KindInfo
)

// String returns the lowercase kind name used in logs and the prompt editor.
func (k Kind) String() string {
	switch k {
	case KindText:
		return "text"
	case KindPassword:
		return "password"
	case KindInt:
		return "int"
	case KindUint:
		return "uint"
	case KindFloat:
		return "float"
	case KindOption:
		return "option"
	case KindToggle:
		return "toggle"
	case KindNote:
		return "note"
	case KindInfo:
		return "info"
	default:
		return "unknown"
	}
}

// Setting is one typed, named value plus the metadata needed to render it as a
// form control. Implementations are not safe for concurrent use; callers that
// share settings between goroutines serialise access themselves.
type Setting interface {
	// Name is unique within a panel. It is empty only for notes.
	Name() string
	// Description is displayed as the control label and may contain markup.
	Description() string
	// String renders the current value canonically.
	String() string
	// SetFromString parses text into the value. Malformed input never fails;
	// it coerces to the kind's default.
	SetFromString(value string)
	// SetFromPost applies a value received from a form post.
	SetFromPost(value string)
	// SetDefault resets the value to the kind's zero value.
	SetDefault()
	// HTML renders the control and its label for the given panel identifier.
	HTML(panelID string) string
	// Persistable reports whether the value belongs in durable storage.
	Persistable() bool
	// Visible reports whether the value may be transmitted to the client.
	Visible() bool
	Kind() Kind
}

// FieldID returns the element identifier and posted field name for a setting
// inside a panel.
func FieldID(panelID, name string) string {
	return panelID + "$" + name
}

// Escape replaces the characters that would break out of a double-quoted
// attribute value. Only <, >, " and & are rewritten.
func Escape(value string) string {
	if !strings.ContainsAny(value, `<>"&`) {
		return value
	}
	var builder strings.Builder
	builder.Grow(len(value) + 16)
	for i := 0; i < len(value); i++ {
		switch ch := value[i]; ch {
		case '<':
			builder.WriteString("&lt;")
		case '>':
			builder.WriteString("&gt;")
		case '"':
			builder.WriteString("&quot;")
		case '&':
			builder.WriteString("&amp;")
		default:
			builder.WriteByte(ch)
		}
	}
	return builder.String()
}

// base carries the identity shared by every setting kind.
type base struct {
	description string
	name        string
}

func (b *base) Name() string        { return b.name }
func (b *base) Description() string { return b.description }
func (b *base) Persistable() bool   { return true }
func (b *base) Visible() bool       { return true }

func (b *base) label(panelID string) string {
	var builder strings.Builder
	builder.Grow(len(panelID) + len(b.name) + len(b.description) + 24)
	builder.WriteString(`<label for="`)
	builder.WriteString(FieldID(panelID, b.name))
	builder.WriteString(`">`)
	builder.WriteString(b.description)
	builder.WriteString(`</label>`)
	return builder.String()
}

// idName renders the id and name attributes shared by every interactive
// control.
func (b *base) idName(panelID string) string {
	id := FieldID(panelID, b.name)
	return `id="` + id + `" name="` + id + `"`
}

// input renders an INPUT element followed by the label. extra is appended
// verbatim inside the element.
func (b *base) input(inputType, panelID, extra string) string {
	var builder strings.Builder
	builder.Grow(64 + 2*len(panelID) + 2*len(b.name) + len(extra) + len(b.description))
	builder.WriteString(`<input type="`)
	builder.WriteString(inputType)
	builder.WriteString(`" `)
	builder.WriteString(b.idName(panelID))
	builder.WriteString(extra)
	builder.WriteString(` />`)
	builder.WriteString(b.label(panelID))
	return builder.String()
}
