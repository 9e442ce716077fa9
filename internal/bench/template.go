package bench

import (
	"bytes"
	"math/rand"
	"strings"
	"text/template"

	"github.com/google/uuid"
)

// TemplateEngine renders endpoint bodies so repeated POSTs don't send
// byte-identical payloads. Bodies without template markers pass
// through untouched.
type TemplateEngine struct {
	funcMap template.FuncMap
}

// TemplateData is the per-request execution context.
type TemplateData struct {
	UserID string
	UUID   string
}

func NewTemplateEngine() *TemplateEngine {
	e := &TemplateEngine{}
	e.funcMap = template.FuncMap{
		"randomInt":    randomInt,
		"randomUUID":   randomUUID,
		"randomChoice": randomChoice,
		"uuid":         randomUUID, // alias
	}
	return e
}

// preprocess converts naked variables like {{uuid}} into dot notation
// so users don't have to know Go template syntax.
func (e *TemplateEngine) preprocess(input string) string {
	s := strings.ReplaceAll(input, "{{userID}}", "{{.UserID}}")
	s = strings.ReplaceAll(s, "{{uuid}}", "{{.UUID}}")
	s = strings.ReplaceAll(s, "{{requestID}}", "{{.UUID}}")
	return s
}

// Render executes the body template with data. On any parse or
// execution error the raw body is returned, a malformed template
// should not kill the request loop.
func (e *TemplateEngine) Render(body string, data TemplateData) string {
	if !strings.Contains(body, "{{") {
		return body
	}

	t, err := template.New("body").Funcs(e.funcMap).Parse(e.preprocess(body))
	if err != nil {
		return body
	}

	var buf bytes.Buffer
	if err := t.Execute(&buf, data); err != nil {
		return body
	}
	return buf.String()
}

func randomInt(min, max int) int {
	if max <= min {
		return min
	}
	return rand.Intn(max-min) + min
}

func randomUUID() string {
	return uuid.New().String()
}

func randomChoice(choices ...string) string {
	if len(choices) == 0 {
		return ""
	}
	return choices[rand.Intn(len(choices))]
}
