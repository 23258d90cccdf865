package setting

import "strings"

// Text is a free-form string setting rendered as a text input.
type Text struct {
	base
	value string
}

// NewText constructs a text setting with an empty value.
func NewText(description, name string) *Text {
	return &Text{base: base{description: description, name: name}}
}

func (s *Text) Get() string            { return s.value }
func (s *Text) Set(value string)       { s.value = value }
func (s *Text) String() string         { return s.value }
func (s *Text) SetFromString(v string) { s.value = v }
func (s *Text) SetFromPost(v string)   { s.value = v }
func (s *Text) SetDefault()            { s.value = "" }
func (s *Text) Kind() Kind             { return KindText }
func (s *Text) HTML(panelID string) string {
	return s.input("text", panelID, ` value="`+Escape(s.value)+`"`)
}

// Password is a text setting whose value never leaves the device. The form
// renders a disabled password input gated by a checkbox, so an untouched
// password is not posted and survives a save.
type Password struct {
	Text
}

// NewPassword constructs a password setting with an empty value.
func NewPassword(description, name string) *Password {
	return &Password{Text: Text{base: base{description: description, name: name}}}
}

func (p *Password) Visible() bool { return false }
func (p *Password) Kind() Kind    { return KindPassword }

func (p *Password) HTML(panelID string) string {
	id := FieldID(panelID, p.name)
	var builder strings.Builder
	builder.Grow(256 + 4*len(id) + len(p.description))
	builder.WriteString(`<span class="password_group"><input type="checkbox" id="`)
	builder.WriteString(panelID)
	builder.WriteString(`$pw$`)
	builder.WriteString(p.name)
	builder.WriteString(`" onchange='document.getElementById("`)
	builder.WriteString(id)
	builder.WriteString(`").disabled = !event.target.checked;'><input type="password" `)
	builder.WriteString(p.idName(panelID))
	builder.WriteString(` disabled="true"></span>`)
	builder.WriteString(p.label(panelID))
	return builder.String()
}

// Note is a read-only block of markup spanning the form. It has no name, is
// not addressable, and ignores every attempt to change it through the form.
type Note struct {
	base
	value string
}

// NewNote constructs a note. The text is emitted verbatim and may contain
// markup, including script.
func NewNote(text string) *Note {
	return &Note{value: text}
}

func (n *Note) Get() string     { return n.value }
func (n *Note) Set(text string) { n.value = text }
func (n *Note) String() string  { return n.value }
func (n *Note) SetFromString(string) {}
func (n *Note) SetFromPost(string) {}
func (n *Note) SetDefault() {}
func (n *Note) Persistable() bool { return false }
func (n *Note) Kind() Kind        { return KindNote }

func (n *Note) HTML(string) string {
	return `<div class="note">` + n.value + `</div>`
}

// InfoFunc refreshes an Info setting from live device state.
type InfoFunc func(info *Info)

// Info is a read-only value computed on demand. The refresh callback runs
// immediately before String is read, so snapshots reflect the state at
// serialisation time.
type Info struct {
	base
	value   string
	refresh InfoFunc
}

// NewInfo constructs a computed setting. refresh may be nil.
func NewInfo(description, name string, refresh InfoFunc) *Info {
	return &Info{base: base{description: description, name: name}, refresh: refresh}
}

// Set stores the displayed value; refresh callbacks use it.
func (i *Info) Set(value string) { i.value = value }
func (i *Info) Get() string      { return i.value }
func (i *Info) SetFromString(string) {}
func (i *Info) SetFromPost(string) {}
func (i *Info) SetDefault() {}
func (i *Info) Persistable() bool { return false }
func (i *Info) Kind() Kind        { return KindInfo }

func (i *Info) String() string {
	if i.refresh != nil {
		i.refresh(i)
	}
	return i.value
}

func (i *Info) HTML(panelID string) string {
	return `<span class="info" ` + i.idName(panelID) + `></span>` + i.label(panelID)
}
