package form

import (
	"html"
	"strings"
	"sync"

	"github.com/microcosm-cc/bluemonday"
)

var (
	textPolicyOnce sync.Once
	textPolicy     *bluemonday.Policy
)

const maxSanitizePasses = 4

// sanitizeText strips any markup from a free-text field, including markup
// written as HTML entities. The result is plain unescaped text; it is escaped
// again when rendered.
func sanitizeText(raw string) string {
	textPolicyOnce.Do(func() {
		textPolicy = bluemonday.StrictPolicy()
	})

	value := strings.TrimSpace(raw)
	for range maxSanitizePasses {
		clean := html.UnescapeString(textPolicy.Sanitize(html.UnescapeString(value)))
		if clean == value {
			break
		}
		value = clean
	}

	return strings.TrimSpace(value)
}
