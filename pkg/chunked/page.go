package chunked

import (
	"iter"
	"strings"

	"github.com/goliatone/go-websettings/pkg/assets"
	"github.com/goliatone/go-websettings/pkg/panel"
)

const (
	formOpen     = `<form method="post" id="settings_form" action="/settings/set">`
	firstTabOpen = `</div>` + formOpen
	tabClose     = `<div style="clear: both"></div></div>`
	buttonClass  = `md_button ripple`
	dangerClass  = `md_button ripple red`
)

// Footer selects the optional controls rendered below the panels.
type Footer struct {
	Reboot       bool
	FactoryReset bool
	Upload       bool
}

// Page describes one settings document: the panels in tab order, the static
// payloads and the footer controls. A Page is immutable; the panels it
// references are not.
type Page struct {
	panels []*panel.Panel
	bundle *assets.Bundle
	footer Footer
}

// NewPage builds a page. A nil bundle uses assets.Default().
func NewPage(panels []*panel.Panel, bundle *assets.Bundle, footer Footer) *Page {
	if bundle == nil {
		bundle = assets.Default()
	}
	return &Page{
		panels: append([]*panel.Panel(nil), panels...),
		bundle: bundle,
		footer: footer,
	}
}

// Panels returns the panels in tab order.
func (p *Page) Panels() []*panel.Panel {
	return append([]*panel.Panel(nil), p.panels...)
}

// NewContext starts a fresh generation.
func (p *Page) NewContext() *Context {
	return &Context{page: p, state: StateBeginPage, startingTab: true}
}

// MinBufferSize reports the largest atomic unit the page currently produces.
// Any buffer at least this large completes the document. The value depends on
// the current setting values, so it is only valid until they change.
func (p *Page) MinBufferSize() int {
	size := len(p.footerMarkup())
	for i, pn := range p.panels {
		size = max(size, len(p.tabButton(i)), len(p.tabOpen(i)), len(tabClose))
		for _, s := range pn.Settings() {
			size = max(size, len(s.HTML(pn.Identifier())))
		}
	}
	return size
}

// Chunks yields the document as a sequence of chunks produced through one
// buffer of the given size. Each chunk is only valid until the next
// iteration. The sequence stops after the first error.
func (p *Page) Chunks(size int) iter.Seq2[[]byte, error] {
	return func(yield func([]byte, error) bool) {
		ctx := p.NewContext()
		defer ctx.Release()

		buf := make([]byte, max(size, 0))
		index := 0
		for {
			n, err := ctx.Fill(buf, index)
			if err != nil {
				yield(buf[:n], err)
				return
			}
			if n == 0 {
				return
			}
			index += n
			if !yield(buf[:n], nil) {
				return
			}
		}
	}
}

// String renders the complete document in one pass.
func (p *Page) String() string {
	var builder strings.Builder
	for chunk, err := range p.Chunks(max(p.MinBufferSize(), 4096)) {
		if err != nil {
			break
		}
		builder.Write(chunk)
	}
	return builder.String()
}

func (p *Page) tabButton(i int) string {
	pn := p.panels[i]
	var builder strings.Builder
	builder.WriteString(`<button class="tablinks`)
	if i == 0 {
		builder.WriteString(` active`)
	}
	builder.WriteString(`" onclick="openTab(event, '`)
	builder.WriteString(pn.Identifier())
	builder.WriteString(`')">`)
	builder.WriteString(pn.Name())
	builder.WriteString(`</button>`)
	return builder.String()
}

func (p *Page) tabOpen(i int) string {
	var builder strings.Builder
	if i == 0 {
		builder.WriteString(firstTabOpen)
	}
	builder.WriteString(`<div id="`)
	builder.WriteString(p.panels[i].Identifier())
	builder.WriteString(`" class="tabcontent`)
	if i == 0 {
		builder.WriteString(` active`)
	}
	builder.WriteString(`">`)
	return builder.String()
}

func (p *Page) footerMarkup() string {
	var builder strings.Builder
	if len(p.panels) == 0 {
		builder.WriteString(firstTabOpen)
	}
	builder.WriteString(`<input class="` + buttonClass + `" type="submit" value="Save">`)
	builder.WriteString(`<a class="` + buttonClass + `" onclick="reloadAllTabs()">Reset Form</a>`)
	if p.footer.Reboot || p.footer.FactoryReset {
		builder.WriteString(`<hr>`)
		if p.footer.Reboot {
			builder.WriteString(`<a class="` + dangerClass + `" href="/reboot">Reboot</a>`)
		}
		if p.footer.FactoryReset {
			builder.WriteString(`<a class="` + dangerClass + `" onclick="factoryReset()">Factory Defaults</a>`)
		}
	}
	if p.footer.Upload {
		builder.WriteString(`<hr>`)
		builder.WriteString(`<a class="` + dangerClass + `" href="/upload">Upload Firmware</a>`)
	}
	builder.WriteString(`</form>`)
	builder.WriteString(`<script>`)
	builder.WriteString(`var form = document.getElementById("settings_form");`)
	builder.WriteString(`form.addEventListener("submit", function (event) {`)
	builder.WriteString(`event.preventDefault();`)
	builder.WriteString(`sendData("settings");`)
	builder.WriteString(`})`)
	builder.WriteString(`</script>`)
	builder.WriteString(`</body></html>`)
	return builder.String()
}
