package templates

import (
	"bytes"
	"fmt"
	"html/template"
)

var listShared = template.Must(template.New("list_shared").Parse(`<!doctype html>
<html>
  <body style="font-family:Arial,Helvetica,sans-serif;color:#222">
    <h2>A list was shared with you</h2>
    <p>{{.SharedBy}} added you to the list <strong>{{.ListTitle}}</strong>.</p>
    <p>Sign in to see its items and start checking things off.</p>
  </body>
</html>`))

// Render returns subject, text and HTML bodies for a named template.
func Render(name string, data map[string]any) (subject, text, html string, err error) {
	switch name {
	case "list_shared":
		var buf bytes.Buffer
		if err = listShared.Execute(&buf, data); err != nil {
			return "", "", "", err
		}
		subject = fmt.Sprintf("%v shared a list with you", data["SharedBy"])
		text = fmt.Sprintf("%v added you to the list %q.", data["SharedBy"], data["ListTitle"])
		return subject, text, buf.String(), nil
	default:
		return "", "", "", fmt.Errorf("unknown email template %q", name)
	}
}
