package views

import (
	"bytes"
	"context"
	"html"
	"io"
	"strconv"

	"github.com/a-h/templ"

	"github.com/Phonesis/personal-work-site/markdown"
	"github.com/Phonesis/personal-work-site/render"
)

const linkClass = "text-emerald-400 hover:text-emerald-300 underline underline-offset-4 decoration-emerald-500/30 font-medium transition-colors"

// Inline writes inline nodes as HTML. Links open in a new browsing context
// without a referrer; links with an unsafe scheme are written as their label.
func Inline(nodes []markdown.Node) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		var buf bytes.Buffer
		writeInline(&buf, nodes)
		_, err := w.Write(buf.Bytes())
		return err
	})
}

// Body writes a rendered post body as HTML.
func Body(nodes []render.DisplayNode) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		var buf bytes.Buffer
		writeBody(&buf, nodes)
		_, err := w.Write(buf.Bytes())
		return err
	})
}

func writeInline(buf *bytes.Buffer, nodes []markdown.Node) {
	for _, n := range nodes {
		switch n := n.(type) {
		case markdown.Text:
			buf.WriteString(html.EscapeString(string(n)))
		case markdown.Bold:
			buf.WriteString(`<strong class="text-white">`)
			writeInline(buf, n.Children)
			buf.WriteString("</strong>")
		case markdown.Link:
			href := safeURL(n.Href)
			if href == "" {
				writeInline(buf, n.Label)
				continue
			}
			buf.WriteString(`<a href="` + href + `" target="_blank" rel="noopener noreferrer" class="` + linkClass + `">`)
			writeInline(buf, n.Label)
			buf.WriteString("</a>")
		}
	}
}

func writeBody(buf *bytes.Buffer, nodes []render.DisplayNode) {
	for _, n := range nodes {
		switch n := n.(type) {
		case render.Paragraph:
			buf.WriteString(`<p class="text-gray-300 mb-6 leading-relaxed">`)
			writeInline(buf, n.Inline)
			buf.WriteString("</p>")
		case render.Heading:
			buf.WriteString(`<h2 class="text-2xl font-bold mt-10 mb-4 text-white">`)
			writeInline(buf, n.Inline)
			buf.WriteString("</h2>")
		case render.Callout:
			buf.WriteString(`<aside class="callout border-l-4 border-emerald-400 bg-gray-800 p-4 my-6 text-gray-200">`)
			writeInline(buf, n.Inline)
			buf.WriteString("</aside>")
		case render.Image:
			buf.WriteString(`<figure class="my-8">`)
			if src := safeURL(n.Src); src != "" {
				buf.WriteString(`<img src="` + src + `" alt="` + html.EscapeString(n.Alt) + `" loading="lazy" decoding="async" class="rounded-lg w-full"/>`)
			}
			if n.Caption != "" {
				buf.WriteString(`<figcaption class="text-center text-gray-400 mt-3 text-sm">`)
				buf.WriteString(html.EscapeString(n.Caption))
				buf.WriteString("</figcaption>")
			}
			buf.WriteString("</figure>")
		case render.Code:
			buf.WriteString(`<pre class="bg-gray-800 rounded-lg p-4 overflow-x-auto my-6 max-w-full"><code class="text-sm text-gray-300 whitespace-pre-wrap break-words">`)
			buf.WriteString(html.EscapeString(n.Text))
			buf.WriteString("</code></pre>")
		case render.List:
			buf.WriteString(`<ul class="list-disc list-inside text-gray-300 mb-6 space-y-2">`)
			for _, item := range n.Items {
				buf.WriteString("<li>")
				writeInline(buf, item)
				buf.WriteString("</li>")
			}
			buf.WriteString("</ul>")
		case render.Embed:
			src := safeURL(n.URL)
			if src == "" {
				continue
			}
			buf.WriteString(`<figure class="my-8 embed">`)
			buf.WriteString(`<iframe src="` + src + `" height="` + strconv.Itoa(n.Height) + `" width="100%" frameborder="0" allowfullscreen title="Embedded post" class="rounded-lg bg-white"></iframe>`)
			if n.Caption != "" {
				buf.WriteString(`<figcaption class="text-center text-gray-400 mt-3 text-sm">`)
				buf.WriteString(html.EscapeString(n.Caption))
				buf.WriteString("</figcaption>")
			}
			buf.WriteString("</figure>")
		}
	}
}
