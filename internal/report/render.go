package report

import (
	"encoding/base64"
	"fmt"
	htmltemplate "html/template"
	"io"
	"strings"
)

var funcs = htmltemplate.FuncMap{
	"pngURI": func(png []byte) htmltemplate.URL {
		return htmltemplate.URL("data:image/png;base64," + base64.StdEncoding.EncodeToString(png))
	},
}

const sectionsTemplate = `{{define "sections"}}{{range .Sections}}
<section id="results-{{.ID}}">
<h3>{{.Heading}}</h3>
{{- range .Blocks}}
{{- if eq .Kind "subheading"}}
<h4>{{.Text}}</h4>
{{- else if eq .Kind "paragraph"}}
<p class="report-text">{{.Text}}</p>
{{- else if eq .Kind "formula"}}
<div class="formula-box">{{.Text}}</div>
{{- else if eq .Kind "highlight"}}
<p class="highlight"><b>{{.Text}}</b></p>
{{- else if eq .Kind "table"}}
<table>
<thead><tr>{{range .Table.Header}}<th>{{.}}</th>{{end}}</tr></thead>
<tbody>
{{- range .Table.Rows}}
<tr>{{range .}}<td>{{.}}</td>{{end}}</tr>
{{- end}}
</tbody>
</table>
{{- else if eq .Kind "code"}}
<pre><code>{{.Text}}</code></pre>
{{- else if eq .Kind "image"}}
<figure><img src="{{pngURI .PNG}}" alt="{{.Text}}" style="max-width: 100%;"><figcaption>{{.Text}}</figcaption></figure>
{{- end}}
{{- end}}
</section>
{{- end}}{{end}}`

const pageTemplate = `{{define "page"}}<!DOCTYPE html>
<html>
<head>
<meta charset="UTF-8">
<title>{{.Title}}</title>
<style>
body { font-family: 'Times New Roman', Times, serif; font-size: 12pt; line-height: 1.8; margin: 40px; color: #2c3e50; }
h1 { font-size: 20pt; text-align: center; margin-bottom: 30px; }
h3 { font-size: 15pt; margin-top: 35pt; border-left: 6px solid #1abc9c; padding-left: 10px; }
h4 { font-size: 13pt; margin-top: 20pt; border-bottom: 1px solid #ddd; padding-bottom: 5px; }
.formula-box { border: 1px solid #aed6f1; padding: 10px 15px; margin: 10px 0; background-color: #f0f8ff; }
table { border-collapse: collapse; width: 100%; margin-bottom: 15px; font-size: 11pt; }
th, td { border: 1px solid #ccc; padding: 8px 10px; text-align: center; }
th { background-color: #eaf4fd; }
pre { background-color: #f4f6f8; padding: 15px; border: 1px solid #e0e0e0; white-space: pre-wrap; font-family: Consolas, 'Courier New', monospace; font-size: 10pt; }
</style>
</head>
<body>
<h1>{{.Title}}</h1>
{{template "sections" .}}
</body>
</html>
{{end}}`

var templates = htmltemplate.Must(htmltemplate.Must(
	htmltemplate.New("report").Funcs(funcs).Parse(sectionsTemplate)).Parse(pageTemplate))

// RenderFragment writes the sections as HTML, for embedding in a page that already exists
func RenderFragment(w io.Writer, doc *Document) error {
	return templates.ExecuteTemplate(w, "sections", doc)
}

// RenderPage writes a complete standalone HTML document
func RenderPage(w io.Writer, doc *Document) error {
	return templates.ExecuteTemplate(w, "page", doc)
}

// RenderText writes the report as plain text for terminals. Images are left out.
func RenderText(w io.Writer, doc *Document) error {
	var b strings.Builder

	fmt.Fprintf(&b, "%s\n%s\n", doc.Title, strings.Repeat("=", len([]rune(doc.Title))))
	for _, s := range doc.Sections {
		fmt.Fprintf(&b, "\n%s\n%s\n", s.Heading, strings.Repeat("-", len([]rune(s.Heading))))
		for _, blk := range s.Blocks {
			switch blk.Kind {
			case Subheading:
				fmt.Fprintf(&b, "\n## %s\n", blk.Text)
			case Formula:
				fmt.Fprintf(&b, "    %s\n", blk.Text)
			case Highlight:
				fmt.Fprintf(&b, "  * %s\n", blk.Text)
			case TableKind:
				writeTextTable(&b, blk.Table)
			case Code:
				fmt.Fprintf(&b, "%s\n", strings.TrimRight(blk.Text, "\n"))
			case Image:
				fmt.Fprintf(&b, "[figure: %s]\n", blk.Text)
			default:
				fmt.Fprintf(&b, "%s\n", blk.Text)
			}
		}
	}

	_, err := io.WriteString(w, b.String())
	return err
}

func writeTextTable(b *strings.Builder, t *Table) {
	widths := make([]int, len(t.Header))
	for i, h := range t.Header {
		widths[i] = len([]rune(h))
	}
	for _, row := range t.Rows {
		for i, cell := range row {
			if i < len(widths) && len([]rune(cell)) > widths[i] {
				widths[i] = len([]rune(cell))
			}
		}
	}

	line := func(cells []string) {
		for i, cell := range cells {
			if i >= len(widths) {
				break
			}
			pad := widths[i] - len([]rune(cell))
			fmt.Fprintf(b, "  %s%s", cell, strings.Repeat(" ", pad))
		}
		b.WriteString("\n")
	}
	line(t.Header)
	for _, row := range t.Rows {
		line(row)
	}
}
