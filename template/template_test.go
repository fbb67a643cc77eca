package template_test

import (
	"errors"
	"testing"

	"github.com/prilive-com/gobulksms/bd"
	"github.com/prilive-com/gobulksms/template"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRender(t *testing.T) {
	tmpl := template.New("welcome", "Hello {name}, welcome to {brand}!")

	out, err := tmpl.Render(map[string]string{
		"name":  "Rahim",
		"brand": "AcmeCorp",
	})
	require.NoError(t, err)
	assert.Equal(t, "Hello Rahim, welcome to AcmeCorp!", out)
}

func TestRender_RepeatedPlaceholder(t *testing.T) {
	tmpl := template.New("twice", "{code} is your code. Code {code} expires soon.")

	out, err := tmpl.Render(map[string]string{"code": "123456"})
	require.NoError(t, err)
	assert.Equal(t, "123456 is your code. Code 123456 expires soon.", out)
}

func TestRender_MissingVarFails(t *testing.T) {
	tmpl := template.New("welcome", "Hello {name}, welcome to {brand}!")

	_, err := tmpl.Render(map[string]string{"name": "Rahim"})
	require.Error(t, err)

	var verr *bd.ValidationError
	require.True(t, errors.As(err, &verr))
	assert.Contains(t, verr.Message, "brand")
}

func TestRender_NoPlaceholders(t *testing.T) {
	tmpl := template.New("static", "Service maintenance tonight at 11pm.")

	out, err := tmpl.Render(nil)
	require.NoError(t, err)
	assert.Equal(t, "Service maintenance tonight at 11pm.", out)
}

func TestVars(t *testing.T) {
	tmpl := template.New("mixed", "{a} then {b} then {a} again")
	assert.Equal(t, []string{"a", "b"}, tmpl.Vars())
}

func TestOTPTemplate(t *testing.T) {
	out, err := template.OTP.Render(map[string]string{
		"brand": "AcmeCorp",
		"otp":   "482913",
	})
	require.NoError(t, err)
	assert.Equal(t, "Your AcmeCorp OTP is 482913", out)
}
