package web

import (
	"bytes"
	"embed"
	"html/template"

	"github.com/gofiber/fiber/v2"
)

//go:embed templates/*.html
var templateFS embed.FS

// pages maps a page name to its parsed template set. Each page shares
// the layout and provides its own content block.
var pages = map[string]*template.Template{
	"index": parsePage("index.html"),
	"learn": parsePage("learn.html"),
	"about": parsePage("about.html"),
}

func parsePage(name string) *template.Template {
	return template.Must(template.ParseFS(templateFS, "templates/layout.html", "templates/"+name))
}

// pageData is the payload common to all pages, embedded per page.
type pageData struct {
	Title         string
	Authenticated bool
	Error         string
	Notice        string
}

type indexData struct {
	pageData
	LearnedCount   int
	LearnedEnabled bool
	DocumentURL    string
	ReferenceCount int
}

type learnData struct {
	pageData
	LearnedCount   int
	LearnedEnabled bool
	ChunksAdded    int
}

// render executes the named page into the response.
func (s *Server) render(c *fiber.Ctx, name string, data any) error {
	tmpl, ok := pages[name]
	if !ok {
		return fiber.NewError(fiber.StatusInternalServerError, "unknown page "+name)
	}

	var buf bytes.Buffer
	if err := tmpl.ExecuteTemplate(&buf, "layout.html", data); err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, err.Error())
	}

	c.Set(fiber.HeaderContentType, fiber.MIMETextHTMLCharsetUTF8)
	return c.Send(buf.Bytes())
}
