package mailer

import (
	"fmt"
	"html/template"
	"strings"
)

const verificationSubject = "Verify your email address"
const passwordResetSubject = "Reset your password"

var verificationTemplate = template.Must(template.New("verification").Parse(`
<p>Hi {{.Name}},</p>
<p>Thanks for signing up. Please confirm your email address by clicking the link below.</p>
<p><a href="{{.Link}}">Verify my email</a></p>
<p>If you did not create this account, you can ignore this message.</p>
`))

var passwordResetTemplate = template.Must(template.New("password_reset").Parse(`
<p>Hi {{.Name}},</p>
<p>We received a request to reset your password. Click the link below to choose a new one.</p>
<p><a href="{{.Link}}">Reset my password</a></p>
<p>If you did not request this, no action is needed.</p>
`))

type templateData struct {
	Name string
	Link string
}

func renderTemplate(tmpl *template.Template, data templateData) (string, error) {
	var sb strings.Builder
	if err := tmpl.Execute(&sb, data); err != nil {
		return "", fmt.Errorf("rendering %s template: %w", tmpl.Name(), err)
	}
	return sb.String(), nil
}

func verificationLink(baseURL, token string) string {
	return fmt.Sprintf("%s/account/verify-email/%s/", strings.TrimRight(baseURL, "/"), token)
}

func passwordResetLink(baseURL, token string) string {
	return fmt.Sprintf("%s/account/reset-password/%s", strings.TrimRight(baseURL, "/"), token)
}
