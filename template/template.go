// Package template renders SMS message templates with {name} style
// placeholders.
package template

import (
	"regexp"
	"strings"

	"github.com/prilive-com/gobulksms/bd"
)

var placeholderRegex = regexp.MustCompile(`\{([a-zA-Z0-9_]+)\}`)

// Template is a named message body with placeholders.
type Template struct {
	Name    string
	Content string
}

// OTP is the default one-time password template.
var OTP = Template{
	Name:    "otp",
	Content: "Your {brand} OTP is {otp}",
}

// New creates a template.
func New(name, content string) Template {
	return Template{Name: name, Content: content}
}

// Vars returns the placeholder names in order of first appearance.
func (t Template) Vars() []string {
	matches := placeholderRegex.FindAllStringSubmatch(t.Content, -1)
	seen := make(map[string]bool, len(matches))
	vars := make([]string, 0, len(matches))
	for _, m := range matches {
		if !seen[m[1]] {
			seen[m[1]] = true
			vars = append(vars, m[1])
		}
	}
	return vars
}

// Render substitutes vars into the template. Every placeholder must
// have a value; a missing one fails with a *bd.ValidationError so a
// half-rendered message never reaches the gateway.
func (t Template) Render(vars map[string]string) (string, error) {
	var missing []string
	rendered := placeholderRegex.ReplaceAllStringFunc(t.Content, func(match string) string {
		name := match[1 : len(match)-1]
		value, ok := vars[name]
		if !ok {
			missing = append(missing, name)
			return match
		}
		return value
	})
	if len(missing) > 0 {
		return "", bd.NewValidationError("template",
			"missing values for "+strings.Join(missing, ", "))
	}
	return rendered, nil
}
