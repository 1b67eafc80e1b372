// Package web holds the page templates.
package web

import (
	"embed"
	"fmt"
	"html/template"
	"strings"

	"github.com/exactfit/customer-web/internal/timezone"
)

//go:embed templates/*.html
var templatesFS embed.FS

func Funcs() template.FuncMap {
	return template.FuncMap{
		"price": func(amount float64, currency string) string {
			return fmt.Sprintf("%s %s", currency, formatThousands(int64(amount)))
		},
		"stars": func(n int) string {
			if n < 0 {
				n = 0
			}
			return strings.Repeat("★", n) + strings.Repeat("☆", max(0, 5-n))
		},
		"year": func() int { return timezone.Now().Year() },
	}
}

// Templates parses every page into one set whose entry point is "base".
func Templates() (*template.Template, error) {
	return template.New("").Funcs(Funcs()).ParseFS(templatesFS, "templates/*.html")
}

func formatThousands(n int64) string {
	s := fmt.Sprintf("%d", n)
	if n < 0 {
		return "-" + formatThousands(-n)
	}
	var b strings.Builder
	for i, r := range s {
		if i > 0 && (len(s)-i)%3 == 0 {
			b.WriteByte(',')
		}
		b.WriteRune(r)
	}
	return b.String()
}
