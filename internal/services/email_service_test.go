package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDryRunSendSkipsDial(t *testing.T) {
	mailer := NewEmailService("localhost", 1025, "", "", "noreply@test", true)

	err := mailer.Send(Mail{
		Address:  "a@x.com",
		Subject:  "Welcome",
		Template: "accountVerification",
		Data:     map[string]string{"handle": "alice", "activationLink": "http://x"},
	})
	require.NoError(t, err)
}

func TestSendRejectsUnknownTemplate(t *testing.T) {
	mailer := NewEmailService("localhost", 1025, "", "", "noreply@test", true)

	err := mailer.Send(Mail{Address: "a@x.com", Template: "nope"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "nope")
}

func TestTemplatesRenderTheirData(t *testing.T) {
	cases := map[string]map[string]string{
		"accountVerification":  {"handle": "alice", "activationLink": "http://x/verify"},
		"failedLogin":          {"fullName": "Alice Doe"},
		"lockNotice":           {"fullName": "Alice Doe"},
		"successfulLogin":      {"fullName": "Alice Doe"},
		"resetPassword":        {"handle": "alice", "otp": "1234567"},
		"resetPasswordSuccess": {"handle": "alice"},
		"dataDeletion":         {"handle": "alice"},
	}
	for name, data := range cases {
		tpl, ok := emailTemplates[name]
		require.True(t, ok, name)
		body := tpl(data)
		for _, v := range data {
			assert.Contains(t, body, v, name)
		}
	}
}
