package notification

import (
	"fmt"
	"html/template"
	"strings"
)

const invitationSubject = "Welcome to Work Nest! Complete Your Registration"
const passwordResetSubject = "Reset Your Work Nest Password"

var invitationTmpl = template.Must(template.New("invitation").Parse(`
<div style="font-family: Arial, sans-serif; color: #1f2937; max-width: 600px; margin: 0 auto; padding: 20px;">
  <h2 style="color: #4f46e5;">Welcome to Work Nest!</h2>
  <p>Hello {{.FirstName}} {{.LastName}},</p>
  <p>You have been invited to join <strong>Work Nest</strong>. Please click the button below to complete your registration:</p>
  <p style="text-align: center; margin: 30px 0;">
    <a href="{{.AcceptURL}}" style="display: inline-block; padding: 14px 28px; font-weight: bold; color: #ffffff; background-color: #4f46e5; text-decoration: none; border-radius: 6px;">Complete Registration</a>
  </p>
  <p style="font-size: 14px; color: #6b7280;">
    This link will expire in <strong>7 days</strong>.<br/>
    If you did not expect this invitation, please ignore this email.
  </p>
  <p>Best regards,<br/>The Work Nest Team</p>
</div>`))

var passwordResetTmpl = template.Must(template.New("reset").Parse(`
<div style="font-family: Arial, sans-serif; color: #1f2937; max-width: 600px; margin: 0 auto; padding: 20px;">
  <h2 style="color: #4f46e5;">Password Reset</h2>
  <p>Hello {{.FirstName}},</p>
  <p>We received a request to reset your password. Click the link below to choose a new one:</p>
  <p style="text-align: center; margin: 30px 0;">
    <a href="{{.ResetURL}}" style="display: inline-block; padding: 14px 28px; font-weight: bold; color: #ffffff; background-color: #4f46e5; text-decoration: none; border-radius: 6px;">Reset Password</a>
  </p>
  <p style="font-size: 14px; color: #6b7280;">
    This link will expire in <strong>1 hour</strong>.<br/>
    If you did not request a reset, you can safely ignore this email.
  </p>
  <p>Best regards,<br/>The Work Nest Team</p>
</div>`))

type invitationData struct {
	FirstName string
	LastName  string
	AcceptURL string
}

type passwordResetData struct {
	FirstName string
	ResetURL  string
}

// RenderInvitation builds the invitation email for a signed token.
func RenderInvitation(frontendURL, to, firstName, lastName, token string) (Message, error) {
	if firstName == "" {
		firstName = "User"
	}
	var buf strings.Builder
	err := invitationTmpl.Execute(&buf, invitationData{
		FirstName: firstName,
		LastName:  lastName,
		AcceptURL: fmt.Sprintf("%s/register?token=%s", strings.TrimRight(frontendURL, "/"), token),
	})
	if err != nil {
		return Message{}, err
	}
	return Message{To: to, Subject: invitationSubject, HTML: buf.String()}, nil
}

// RenderPasswordReset builds the reset email containing the raw opaque token.
func RenderPasswordReset(frontendURL, to, firstName, rawToken string) (Message, error) {
	var buf strings.Builder
	err := passwordResetTmpl.Execute(&buf, passwordResetData{
		FirstName: firstName,
		ResetURL:  fmt.Sprintf("%s/reset-password?token=%s", strings.TrimRight(frontendURL, "/"), rawToken),
	})
	if err != nil {
		return Message{}, err
	}
	return Message{To: to, Subject: passwordResetSubject, HTML: buf.String()}, nil
}
