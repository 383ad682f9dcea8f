package rendering

import (
	"fmt"
	"html/template"
	"strings"

	"github.com/jonathan/cv-studio/internal/types"
)

// pageData is the data structure passed to every layout template.
type pageData struct {
	Doc    *types.CVDocument
	Accent string
}

// baseStyle is shared by all layouts. Each layout adds its own rules.
const baseStyle = `
  body { font-family: 'Helvetica Neue', Arial, sans-serif; color: #1f2430; margin: 0; }
  .page { width: 210mm; min-height: 297mm; box-sizing: border-box; padding: 18mm; background: #fff; }
  h1 { font-size: 26pt; margin: 0; }
  h2 { font-size: 12pt; text-transform: uppercase; letter-spacing: 1px; margin: 14pt 0 6pt; }
  .entry { margin-bottom: 8pt; }
  .entry .head { font-weight: 600; }
  .entry .meta { font-size: 9pt; color: #6b7280; }
  .tag { display: inline-block; border-radius: 3px; padding: 2pt 6pt; margin: 0 4pt 4pt 0; font-size: 9pt; color: #fff; }
`

const classicLayout = `<!DOCTYPE html>
<html><head><meta charset="utf-8"><style>` + baseStyle + `
  h1, h2 { color: {{.Accent}}; }
  h2 { border-bottom: 2px solid {{.Accent}}; padding-bottom: 2pt; }
  .tag { background: {{.Accent}}; }
  .contact { font-size: 10pt; color: #374151; margin-top: 4pt; }
</style></head><body><div class="page" id="cv-export-content">
  <h1>{{.Doc.Name}}</h1>
  <div class="contact">{{.Doc.Title}}{{if .Doc.Email}} · {{.Doc.Email}}{{end}}{{if .Doc.Phone}} · {{.Doc.Phone}}{{end}}</div>
  {{if .Doc.Summary}}<h2>Profil</h2><p>{{.Doc.Summary}}</p>{{end}}
  {{if .Doc.Experience}}<h2>Expérience</h2>{{range .Doc.Experience}}
    <div class="entry"><div class="head">{{.DisplayPosition}} — {{.Company}}</div>
    <div class="meta">{{.Period}}</div><div>{{.Description}}</div></div>{{end}}{{end}}
  {{if .Doc.Education}}<h2>Formation</h2>{{range .Doc.Education}}
    <div class="entry"><div class="head">{{.Degree}} — {{.School}}</div>
    <div class="meta">{{.DisplayPeriod}}</div><div>{{.Description}}</div></div>{{end}}{{end}}
  {{if .Doc.Skills}}<h2>Compétences</h2><div>{{range .Doc.Skills}}<span class="tag">{{.}}</span>{{end}}</div>{{end}}
  {{if .Doc.Languages}}<h2>Langues</h2>{{range .Doc.Languages}}
    <div class="entry"><span class="head">{{.DisplayName}}</span> <span class="meta">{{.Level}}</span></div>{{end}}{{end}}
  {{if .Doc.Interests}}<h2>Centres d'intérêt</h2><p>{{join .Doc.Interests ", "}}</p>{{end}}
</div></body></html>`

const sidebarLayout = `<!DOCTYPE html>
<html><head><meta charset="utf-8"><style>` + baseStyle + `
  .page { display: flex; padding: 0; }
  .side { width: 62mm; background: {{.Accent}}; color: #fff; padding: 14mm 8mm; box-sizing: border-box; }
  .side h1 { font-size: 20pt; color: #fff; }
  .side h2 { color: #fff; border-bottom: 1px solid rgba(255,255,255,.5); }
  .main { flex: 1; padding: 14mm 10mm; }
  .main h2 { color: {{.Accent}}; }
  .tag { background: rgba(255,255,255,.25); }
</style></head><body><div class="page" id="cv-export-content">
  <div class="side">
    <h1>{{.Doc.Name}}</h1>
    <p>{{.Doc.Title}}</p>
    {{if .Doc.Email}}<p>{{.Doc.Email}}</p>{{end}}
    {{if .Doc.Phone}}<p>{{.Doc.Phone}}</p>{{end}}
    {{if .Doc.Skills}}<h2>Compétences</h2><div>{{range .Doc.Skills}}<span class="tag">{{.}}</span>{{end}}</div>{{end}}
    {{if .Doc.Languages}}<h2>Langues</h2>{{range .Doc.Languages}}<p>{{.DisplayName}} — {{.Level}}</p>{{end}}{{end}}
  </div>
  <div class="main">
    {{if .Doc.Summary}}<h2>Profil</h2><p>{{.Doc.Summary}}</p>{{end}}
    {{if .Doc.Experience}}<h2>Expérience</h2>{{range .Doc.Experience}}
      <div class="entry"><div class="head">{{.DisplayPosition}} — {{.Company}}</div>
      <div class="meta">{{.Period}}</div><div>{{.Description}}</div></div>{{end}}{{end}}
    {{if .Doc.Education}}<h2>Formation</h2>{{range .Doc.Education}}
      <div class="entry"><div class="head">{{.Degree}} — {{.School}}</div>
      <div class="meta">{{.DisplayPeriod}}</div><div>{{.Description}}</div></div>{{end}}{{end}}
    {{if .Doc.Interests}}<h2>Centres d'intérêt</h2><p>{{join .Doc.Interests ", "}}</p>{{end}}
  </div>
</div></body></html>`

const compactLayout = `<!DOCTYPE html>
<html><head><meta charset="utf-8"><style>` + baseStyle + `
  .page { padding: 12mm; }
  h1 { font-size: 20pt; }
  h2 { font-size: 10pt; color: {{.Accent}}; margin: 8pt 0 4pt; }
  .band { border-top: 3px solid {{.Accent}}; padding-top: 6pt; }
  .entry { margin-bottom: 5pt; font-size: 9.5pt; }
  .tag { background: {{.Accent}}; }
  .cols { display: flex; gap: 10mm; }
  .cols > div { flex: 1; }
</style></head><body><div class="page" id="cv-export-content">
  <h1>{{.Doc.Name}}</h1>
  <div class="meta">{{.Doc.Title}}{{if .Doc.Email}} · {{.Doc.Email}}{{end}}{{if .Doc.Phone}} · {{.Doc.Phone}}{{end}}</div>
  <div class="band">
  {{if .Doc.Summary}}<p>{{.Doc.Summary}}</p>{{end}}
  {{if .Doc.Experience}}<h2>Expérience</h2>{{range .Doc.Experience}}
    <div class="entry"><span class="head">{{.DisplayPosition}}</span>, {{.Company}} <span class="meta">({{.Period}})</span> — {{.Description}}</div>{{end}}{{end}}
  <div class="cols"><div>
  {{if .Doc.Education}}<h2>Formation</h2>{{range .Doc.Education}}
    <div class="entry"><span class="head">{{.Degree}}</span>, {{.School}} <span class="meta">({{.DisplayPeriod}})</span></div>{{end}}{{end}}
  {{if .Doc.Languages}}<h2>Langues</h2>{{range .Doc.Languages}}<div class="entry">{{.DisplayName}} — {{.Level}}</div>{{end}}{{end}}
  </div><div>
  {{if .Doc.Skills}}<h2>Compétences</h2><div>{{range .Doc.Skills}}<span class="tag">{{.}}</span>{{end}}</div>{{end}}
  {{if .Doc.Interests}}<h2>Centres d'intérêt</h2><p>{{join .Doc.Interests ", "}}</p>{{end}}
  </div></div></div>
</div></body></html>`

// layoutSources pairs the registry order with template source text.
var layoutSources = []string{classicLayout, sidebarLayout, compactLayout}

// RenderHTML renders the document with the selected template and accent
// color into a standalone printable page. Field content is escaped by the
// template engine.
func RenderHTML(doc *types.CVDocument, templateIndex, colorIndex int) (string, error) {
	if templateIndex < 0 || templateIndex >= len(layoutSources) {
		return "", &SelectionError{Kind: "template", Index: templateIndex, Count: len(layoutSources)}
	}
	accent, err := ColorAt(colorIndex)
	if err != nil {
		return "", err
	}

	tmpl, err := template.New(templateRegistry[templateIndex].Name).Funcs(template.FuncMap{
		"join": strings.Join,
	}).Parse(layoutSources[templateIndex])
	if err != nil {
		return "", &TemplateError{Message: fmt.Sprintf("failed to parse layout %d", templateIndex), Cause: err}
	}

	var result strings.Builder
	if err := tmpl.Execute(&result, pageData{Doc: doc, Accent: accent.Hex}); err != nil {
		return "", &TemplateError{Message: "failed to execute layout", Cause: err}
	}
	return result.String(), nil
}
