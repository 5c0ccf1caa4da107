package services

import "fmt"

// emailTemplates maps a template name to its HTML content generator.
// Data keys are documented per template.
var emailTemplates = map[string]func(data map[string]string) string{
	// handle, activationLink
	"accountVerification": func(d map[string]string) string {
		return fmt.Sprintf(`
			<h2>Welcome to SoccerMASS, %s!</h2>
			<p>Verify your email address to activate your account:</p>
			<p><a href="%s">Activate my account</a></p>
			<p>If the button does not work, copy the link into your browser.</p>
		`, d["handle"], d["activationLink"])
	},
	// fullName
	"failedLogin": func(d map[string]string) string {
		return fmt.Sprintf(`
			<h3>Failed login attempt</h3>
			<p>Hello %s, we noticed repeated failed login attempts on your account.</p>
			<p>If this was not you, consider resetting your password.</p>
		`, d["fullName"])
	},
	// fullName
	"lockNotice": func(d map[string]string) string {
		return fmt.Sprintf(`
			<h3>Account lock notice</h3>
			<p>Hello %s, further failed attempts will temporarily lock your account for one hour.</p>
		`, d["fullName"])
	},
	// fullName
	"successfulLogin": func(d map[string]string) string {
		return fmt.Sprintf(`
			<h3>Successful login</h3>
			<p>Hello %s, your account was just signed in to. If this was not you, reset your password immediately.</p>
		`, d["fullName"])
	},
	// handle, otp
	"resetPassword": func(d map[string]string) string {
		return fmt.Sprintf(`
			<h3>Password reset requested</h3>
			<p>Hello %s, use the following one-time code to confirm your password reset: <strong>%s</strong></p>
			<p>The code expires in 3 hours. If you did not request this change, you can ignore this email.</p>
		`, d["handle"], d["otp"])
	},
	// handle
	"resetPasswordSuccess": func(d map[string]string) string {
		return fmt.Sprintf(`
			<h3>Password reset successfully</h3>
			<p>Hello %s, your password has been changed and all previous sessions signed out.</p>
		`, d["handle"])
	},
	// handle
	"dataDeletion": func(d map[string]string) string {
		return fmt.Sprintf(`
			<h3>Data deletion initiated</h3>
			<p>Hello %s, we received your data-deletion request. Your data will be purged after the retention window.</p>
		`, d["handle"])
	},
}
