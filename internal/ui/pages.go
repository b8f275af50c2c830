// Package ui provides the Datastar-based contact page.
package ui

import (
	"github.com/joeblew999/plat-contact/pkg/contact"
	g "maragu.dev/gomponents"
	h "maragu.dev/gomponents/html"

	data "maragu.dev/gomponents-datastar"
)

// Layout wraps content in the base HTML layout.
func Layout(title string, content ...g.Node) g.Node {
	return h.HTML(
		h.Lang("en"),
		h.Head(
			h.Meta(h.Charset("utf-8")),
			h.Meta(h.Name("viewport"), h.Content("width=device-width, initial-scale=1")),
			h.TitleEl(g.Text(title)),
			h.Script(h.Type("module"), h.Src("https://cdn.jsdelivr.net/gh/starfederation/datastar@1.0.0-RC.7/bundles/datastar.js")),
			h.StyleEl(h.Type("text/css"), g.Raw(styles)),
		),
		h.Body(
			h.Nav(h.Class("navbar"),
				h.Div(h.Class("nav-brand"), g.Text("Portfolio")),
				h.Div(h.Class("nav-links"),
					h.A(h.Href("/contact"), g.Text("Contact")),
				),
			),
			h.Main(h.Class("container"), g.Group(content)),
		),
	)
}

// submitExpr checks presence locally and posts the signals once.
const submitExpr = `
	event.preventDefault();
	if ($sending) { $result = '` + contact.NoticeBusy + `'; return }
	if (!$name.trim() || !$email.trim() || !$message.trim()) {
		$result = '` + contact.NoticeMissingFields + `';
		return
	}
	$sending = true;
	$result = '';
	@post('/ui/contact', {retry: 'never', retryMaxCount: 0})
`

// fetchErrorExpr releases the form when the request never completes.
// Retries are off, so the first error is final.
const fetchErrorExpr = `
	if (evt.detail.type === 'error') {
		$sending = false;
		$result = '` + contact.NoticeNetwork + `'
	}
`

// ContactPage renders the contact form.
func ContactPage() g.Node {
	return Layout("Contact",
		data.Signals(map[string]any{
			"name":    "",
			"email":   "",
			"subject": "",
			"message": "",
			"sending": false,
			"result":  "",
		}),

		h.H1(g.Text("Get in touch")),

		h.Form(h.Class("contact-form"),
			data.On("submit", submitExpr),
			data.On("datastar-fetch", fetchErrorExpr),

			h.Div(h.Class("form-group"),
				h.Label(h.For("name"), g.Text("Name")),
				h.Input(h.ID("name"), h.Name("name"), h.Type("text"), data.Bind("name"),
					h.Placeholder("Your name"),
				),
			),

			h.Div(h.Class("form-group"),
				h.Label(h.For("email"), g.Text("Email")),
				h.Input(h.ID("email"), h.Name("email"), h.Type("email"), data.Bind("email"),
					h.Placeholder("you@example.com"),
				),
			),

			h.Div(h.Class("form-group"),
				h.Label(h.For("subject"), g.Text("Subject (optional)")),
				h.Input(h.ID("subject"), h.Name("subject"), h.Type("text"), data.Bind("subject")),
			),

			h.Div(h.Class("form-group"),
				h.Label(h.For("message"), g.Text("Message")),
				h.Textarea(h.ID("message"), h.Name("message"), data.Bind("message"),
					h.Rows("6"),
				),
			),

			h.Button(h.Type("submit"), h.Class("submit-btn"),
				data.Attr("disabled", "$sending"),
				h.Span(data.Show("!$sending"), g.Text("Send Message")),
				h.Span(data.Show("$sending"),
					h.Span(h.Class("loading-spinner")),
					g.Text(" Sending..."),
				),
			),

			h.Div(h.Class("form-note"),
				data.Show("$result"),
				data.Text("$result"),
			),
		),
	)
}

const styles = `
:root {
	--primary: #6366f1;
	--primary-dark: #4f46e5;
	--bg: #f8fafc;
	--card-bg: #ffffff;
	--text: #1e293b;
	--text-muted: #64748b;
	--border: #e2e8f0;
}

* {
	box-sizing: border-box;
	margin: 0;
	padding: 0;
}

body {
	font-family: -apple-system, BlinkMacSystemFont, 'Segoe UI', Roboto, sans-serif;
	background: var(--bg);
	color: var(--text);
	line-height: 1.6;
}

.navbar {
	background: var(--primary);
	color: white;
	padding: 1rem 2rem;
	display: flex;
	justify-content: space-between;
	align-items: center;
}

.nav-brand {
	font-size: 1.5rem;
	font-weight: bold;
}

.nav-links a {
	color: white;
	text-decoration: none;
	margin-left: 2rem;
}

.container {
	max-width: 720px;
	margin: 0 auto;
	padding: 2rem;
}

h1 {
	margin-bottom: 1.5rem;
}

.contact-form {
	background: var(--card-bg);
	border-radius: 12px;
	padding: 2rem;
	border: 1px solid var(--border);
}

.form-group {
	margin-bottom: 1.5rem;
}

.form-group label {
	display: block;
	margin-bottom: 0.5rem;
	font-weight: 500;
}

.form-group input,
.form-group textarea {
	width: 100%;
	padding: 0.75rem;
	border: 1px solid var(--border);
	border-radius: 8px;
	font-size: 1rem;
}

.form-group input:focus,
.form-group textarea:focus {
	outline: none;
	border-color: var(--primary);
}

button {
	background: var(--primary);
	color: white;
	border: none;
	padding: 0.75rem 1.5rem;
	border-radius: 8px;
	cursor: pointer;
	font-size: 1rem;
}

button:disabled {
	background: var(--text-muted);
	cursor: not-allowed;
}

.loading-spinner {
	display: inline-block;
	width: 16px;
	height: 16px;
	border: 2px solid var(--border);
	border-top-color: white;
	border-radius: 50%;
	animation: spin 1s linear infinite;
}

@keyframes spin {
	to { transform: rotate(360deg); }
}

.form-note {
	margin-top: 1rem;
	padding: 1rem;
	border-radius: 8px;
	background: var(--bg);
}
`
