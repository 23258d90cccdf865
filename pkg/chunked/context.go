package chunked

import (
	"io"

	"github.com/goliatone/go-websettings/pkg/assets"
)

// Context is the resumable cursor of one document generation. It is not
// safe for concurrent use; callers serialise Fill against setting changes.
type Context struct {
	page *Page

	state       State
	staticSent  int
	panel       int
	setting     int
	startingTab bool

	read     int
	released bool
}

// State reports the current generator state.
func (c *Context) State() State { return c.state }

// Released reports whether the context has been released.
func (c *Context) Released() bool { return c.released }

// Release frees the context. It is idempotent.
func (c *Context) Release() {
	c.released = true
}

// Fill writes the next chunk of the document into buf and returns the number
// of bytes written. index is the total already delivered and is informational
// only. Atomic units (a tab button, a tab wrapper, one setting's markup, the
// footer) are never split; static payloads stream in slices of any size. A
// zero-length result means the document is complete, and releases the
// context.
func (c *Context) Fill(buf []byte, index int) (int, error) {
	if c.released {
		return 0, ErrReleased
	}
	if len(buf) == 0 && c.state != StateDone {
		return 0, ErrBufferTooSmall
	}

	w := writer{buf: buf}
	for {
		switch c.state {
		case StateBeginPage:
			if !c.static(&w, assets.PageBegin) {
				return w.n, nil
			}
			c.advance(StateStyleSheet)
		case StateStyleSheet:
			if !c.static(&w, c.page.bundle.Stylesheet()) {
				return w.n, nil
			}
			c.advance(StatePreScript)
		case StatePreScript:
			if !c.static(&w, assets.StyleToScript) {
				return w.n, nil
			}
			c.advance(StateScript)
		case StateScript:
			if !c.static(&w, c.page.bundle.Script()) {
				return w.n, nil
			}
			c.advance(StatePostScript)
		case StatePostScript:
			if !c.static(&w, assets.ScriptToBody) {
				return w.n, nil
			}
			c.advance(StateTabButtonHeader)
			c.panel = 0
		case StateTabButtonHeader:
			if done, err := c.tabButtons(&w); !done {
				return w.n, err
			}
			c.advance(StateTabBody)
			c.panel, c.setting, c.startingTab = 0, 0, true
		case StateTabBody:
			if done, err := c.tabBodies(&w); !done {
				return w.n, err
			}
			c.advance(StateFooter)
		case StateFooter:
			if ok, err := unit(&w, c.page.footerMarkup()); !ok {
				return w.n, err
			}
			c.advance(StateDone)
		case StateDone:
			if w.n == 0 {
				c.Release()
			}
			return w.n, nil
		default:
			w.writeSome(FailureMarker)
			c.state = StateDone
			return w.n, ErrInvalidState
		}
	}
}

// Read implements io.Reader. A p smaller than the next atomic unit yields
// ErrBufferTooSmall.
func (c *Context) Read(p []byte) (int, error) {
	if c.released && c.state == StateDone {
		return 0, io.EOF
	}
	if len(p) == 0 {
		return 0, nil
	}
	n, err := c.Fill(p, c.read)
	c.read += n
	if err != nil {
		return n, err
	}
	if n == 0 {
		return 0, io.EOF
	}
	return n, nil
}

func (c *Context) advance(next State) {
	c.state = next
	c.staticSent = 0
}

// static streams payload from the saved offset and reports whether it has
// been fully written.
func (c *Context) static(w *writer, payload string) bool {
	c.staticSent += w.writeSome(payload[c.staticSent:])
	return c.staticSent == len(payload)
}

// unit writes s whole or not at all. A unit that cannot fit even into an
// empty buffer is an error; one that merely does not fit in the remaining
// space ends the chunk.
func unit(w *writer, s string) (bool, error) {
	if w.fits(s) {
		w.write(s)
		return true, nil
	}
	if w.n == 0 {
		return false, ErrBufferTooSmall
	}
	return false, nil
}

func (c *Context) tabButtons(w *writer) (bool, error) {
	for c.panel < len(c.page.panels) {
		if ok, err := unit(w, c.page.tabButton(c.panel)); !ok {
			return false, err
		}
		c.panel++
	}
	return true, nil
}

func (c *Context) tabBodies(w *writer) (bool, error) {
	for c.panel < len(c.page.panels) {
		pn := c.page.panels[c.panel]
		if c.startingTab {
			if ok, err := unit(w, c.page.tabOpen(c.panel)); !ok {
				return false, err
			}
			c.startingTab = false
			c.setting = 0
		}

		settings := pn.Settings()
		for c.setting < len(settings) {
			if ok, err := unit(w, settings[c.setting].HTML(pn.Identifier())); !ok {
				return false, err
			}
			c.setting++
		}

		if ok, err := unit(w, tabClose); !ok {
			return false, err
		}
		c.panel++
		c.setting = 0
		c.startingTab = true
	}
	return true, nil
}

type writer struct {
	buf []byte
	n   int
}

func (w *writer) fits(s string) bool { return len(s) <= len(w.buf)-w.n }

func (w *writer) write(s string) { w.n += copy(w.buf[w.n:], s) }

func (w *writer) writeSome(s string) int {
	written := copy(w.buf[w.n:], s)
	w.n += written
	return written
}
