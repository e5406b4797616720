package notification

import (
	"bytes"
	"fmt"
	"html/template"
	"net/url"
	"strings"
)

const emailLayout = `<div style="font-family: 'Helvetica Neue', Helvetica, Arial, sans-serif; border: 1px solid #e2e2e2; max-width: 600px; margin: 40px auto; padding: 30px; box-shadow: 0 4px 8px rgba(0,0,0,0.05); border-radius: 8px;">
    <h1 style="color: #0264d6; font-size: 24px;">{{.Heading}}</h1>
    <p style="color: #626262; font-size: 16px;">{{.Intro}}</p>
    <p style="margin: 30px 0; text-align: center;">
        <a href="{{.Link}}" style="background-color: #0264d6; color: #ffffff; padding: 12px 24px; text-decoration: none; border-radius: 6px; font-weight: bold; font-size: 16px;">{{.Action}}</a>
    </p>
    <p style="color: #626262; font-size: 14px;"><strong>Note:</strong> {{.Note}}</p>
    <p style="color: #626262; font-size: 14px;">{{.Disclaimer}}</p>
    <p style="color: #626262; font-size: 14px;">Thank you,<br>{{.Signature}}</p>
</div>`

var layout = template.Must(template.New("email").Parse(emailLayout))

type emailContent struct {
	Heading    string
	Intro      string
	Link       string
	Action     string
	Note       string
	Disclaimer string
	Signature  string
}

// Templates renders the account emails. Links point at the frontend.
type Templates struct {
	FrontendURL string
	Signature   string
}

// tokenPath escapes a token for use as a single path segment. Dots are
// encoded too so frontends that treat them as extensions keep the token intact.
func tokenPath(token string) string {
	return strings.ReplaceAll(url.PathEscape(token), ".", "%2E")
}

func (t Templates) render(c emailContent) (string, error) {
	c.Signature = t.Signature
	var buf bytes.Buffer
	if err := layout.Execute(&buf, c); err != nil {
		return "", fmt.Errorf("failed to render email: %w", err)
	}
	return buf.String(), nil
}

func (t Templates) link(path, token string) string {
	return strings.TrimRight(t.FrontendURL, "/") + path + tokenPath(token)
}

// Welcome is sent after signup.
func (t Templates) Welcome(token string) (subject, html string, err error) {
	html, err = t.render(emailContent{
		Heading:    "Welcome to HALO!",
		Intro:      "We are delighted to welcome you to our community. To begin, please confirm your email address by clicking the link below.",
		Link:       t.link("/verify/", token),
		Action:     "Verify Email",
		Note:       "This verification link will expire in 1 hour.",
		Disclaimer: "If you did not request an account with HALO, please disregard this message.",
	})
	return "Welcome to HALO! Please Verify Your Email Address", html, err
}

// Verification is sent when a user asks for a new verification link.
func (t Templates) Verification(token string) (subject, html string, err error) {
	html, err = t.render(emailContent{
		Heading:    "Verify Your Email",
		Intro:      "Please confirm your email address by clicking the link below.",
		Link:       t.link("/verify/", token),
		Action:     "Verify Email",
		Note:       "This verification link will expire in 1 hour.",
		Disclaimer: "If you did not request this, please disregard this message.",
	})
	return "Please Verify Your Email Address", html, err
}

// PasswordReset carries the single-use reset link.
func (t Templates) PasswordReset(token string) (subject, html string, err error) {
	html, err = t.render(emailContent{
		Heading:    "Reset Your Password for HALO",
		Intro:      "You recently requested to reset your password for your HALO account. Please click the link below to reset your password.",
		Link:       t.link("/resetpassword/", token),
		Action:     "Reset Your Password",
		Note:       "This link will expire in 5 minutes.",
		Disclaimer: "If you did not request this email, please ignore it.",
	})
	return "Reset Your Password for HALO", html, err
}
