package templates

import (
	"context"
	"html"
	"io"
	"strconv"

	"github.com/a-h/templ"
)

// markup writes HTML fragments and keeps the first write error.
type markup struct {
	w   io.Writer
	err error
}

func (m *markup) raw(s string) {
	if m.err != nil {
		return
	}
	_, m.err = io.WriteString(m.w, s)
}

func (m *markup) text(s string) {
	m.raw(html.EscapeString(s))
}

func (m *markup) attr(name, value string) {
	m.raw(" " + name + "=\"" + html.EscapeString(value) + "\"")
}

func (m *markup) href(name, value string) {
	m.attr(name, string(templ.URL(value)))
}

func (m *markup) open(tag string, attrs ...string) {
	m.raw("<" + tag)
	for i := 0; i+1 < len(attrs); i += 2 {
		m.attr(attrs[i], attrs[i+1])
	}
	m.raw(">")
}

func (m *markup) close(tag string) {
	m.raw("</" + tag + ">")
}

func (m *markup) element(tag, content string, attrs ...string) {
	m.open(tag, attrs...)
	m.text(content)
	m.close(tag)
}

func (m *markup) hidden(name, value string) {
	m.raw("<input type=\"hidden\"")
	m.attr("name", name)
	m.attr("value", value)
	m.raw(">")
}

func (m *markup) input(kind, name, label, value string, required bool, extra ...string) {
	id := "field-" + name
	m.open("label", "for", id)
	m.text(label)
	m.close("label")
	m.raw("<input")
	m.attr("type", kind)
	m.attr("id", id)
	m.attr("name", name)
	if value != "" {
		m.attr("value", value)
	}
	for i := 0; i+1 < len(extra); i += 2 {
		m.attr(extra[i], extra[i+1])
	}
	if required {
		m.raw(" required")
	}
	m.raw(">")
}

func (m *markup) postForm(action string, class string) {
	m.raw("<form method=\"post\"")
	m.href("action", action)
	if class != "" {
		m.attr("class", class)
	}
	m.raw(">")
}

func (m *markup) render(ctx context.Context, c templ.Component) {
	if m.err != nil || c == nil {
		return
	}
	m.err = c.Render(ctx, m.w)
}

func itoa(v int) string {
	return strconv.Itoa(v)
}

// component adapts a markup writer function to templ.Component.
func component(fn func(ctx context.Context, m *markup)) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		m := &markup{w: w}
		fn(ctx, m)
		return m.err
	})
}
