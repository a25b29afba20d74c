package web

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"html/template"
	"log/slog"
	"net/http"
	"strings"

	"github.com/gorilla/csrf"
	"github.com/yuin/goldmark"

	"workshoppass/internal/adapters/sheets"
	"workshoppass/internal/application/orchestrators"
	"workshoppass/internal/application/projections"
	"workshoppass/internal/domain/student"
	"workshoppass/internal/render"
)

// registerRoutes attaches all pass front-end routes to mux.
func registerRoutes(mux *http.ServeMux) {
	mux.HandleFunc("GET /healthz", handleHealthz)
	mux.HandleFunc("GET /pass/{slug}", handlePassPage)
	mux.HandleFunc("GET /pass/{slug}/image.png", handlePassImage)
	mux.HandleFunc("GET /pass/{slug}/pass.pdf", handlePassPDF)
	mux.HandleFunc("POST /pass/{slug}/share", handlePassShare)
	mux.HandleFunc("POST /admin/roster", handleRosterSync)
}

func handleHealthz(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	fmt.Fprintln(w, "ok")
}

// resolveRecord looks up the pass record for the slug in the request path.
func resolveRecord(r *http.Request) (projections.ResolvePassResult, error) {
	return projections.QueryResolvePass(r.Context(),
		projections.ResolvePassQuery{Identifier: r.PathValue("slug")},
		projections.ResolvePassDeps{
			RosterStore:     stores.RosterStore,
			Cache:           resolveCache,
			ClosedRoster:    opts.ClosedRoster,
			RegistrationURL: opts.RegistrationURL,
			DefaultWorkshop: opts.WorkshopTitle,
			BaseURL:         opts.BaseURL,
		})
}

// handlePassPage handles GET /pass/{slug}.
// Renders the pass card page, or the access-denied view when the roster is
// closed and the slug is unknown.
func handlePassPage(w http.ResponseWriter, r *http.Request) {
	res, err := resolveRecord(r)
	if err != nil {
		internalError(w, "pass_resolve_failed", err)
		return
	}

	if res.State == projections.PassNotFound {
		w.WriteHeader(http.StatusNotFound)
		if err := notFoundTmpl.Execute(w, notFoundView{
			Title:           opts.WorkshopTitle,
			RegistrationURL: res.RegistrationURL,
		}); err != nil {
			slog.Error("not_found_render_failed", "error", err.Error())
		}
		return
	}

	view := passView{
		Record:    res.Record,
		Title:     opts.WorkshopTitle,
		Blurb:     renderBlurb(opts.WorkshopBlurb),
		CSRFField: csrf.TemplateField(r),
	}
	if err := passTmpl.Execute(w, view); err != nil {
		slog.Error("pass_page_render_failed", "slug", res.Record.Slug, "error", err.Error())
	}
}

// exportRecord resolves the slug and renders the export artifact under the
// per-slug lock, so a double-submitted download renders once at a time.
func exportRecord(w http.ResponseWriter, r *http.Request, format string) {
	res, err := resolveRecord(r)
	if err != nil {
		internalError(w, "pass_resolve_failed", err)
		return
	}
	if res.State == projections.PassNotFound {
		http.Error(w, "pass not found", http.StatusNotFound)
		return
	}

	lock := slugLock(res.Record.Slug)
	lock.Lock()
	defer lock.Unlock()

	artifact, err := orchestrators.ExecuteDownloadPass(r.Context(),
		orchestrators.DownloadPassInput{
			Record:          res.Record,
			Format:          format,
			IllustrationURL: opts.IllustrationURL,
			Scale:           opts.Scale,
			Brand:           opts.Brand,
		},
		orchestrators.DownloadPassDeps{Images: opts.Images})
	if err != nil {
		internalError(w, "pass_export_failed", err)
		return
	}

	w.Header().Set("Content-Type", artifact.ContentType)
	w.Header().Set("Content-Disposition", `attachment; filename="`+artifact.FileName+`"`)
	w.Write(artifact.Data)
}

// handlePassImage handles GET /pass/{slug}/image.png.
func handlePassImage(w http.ResponseWriter, r *http.Request) {
	exportRecord(w, r, orchestrators.FormatPNG)
}

// handlePassPDF handles GET /pass/{slug}/pass.pdf.
func handlePassPDF(w http.ResponseWriter, r *http.Request) {
	exportRecord(w, r, orchestrators.FormatPDF)
}

// handlePassShare handles POST /pass/{slug}/share.
// Runs the share flow (share, or fall back to caption copy plus download)
// and reports the outcome as JSON. The artifact bytes marshal as base64.
func handlePassShare(w http.ResponseWriter, r *http.Request) {
	res, err := resolveRecord(r)
	if err != nil {
		internalError(w, "pass_resolve_failed", err)
		return
	}
	if res.State == projections.PassNotFound {
		http.Error(w, "pass not found", http.StatusNotFound)
		return
	}

	placement, err := render.ParsePlacement(r.FormValue("placement"))
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	lock := slugLock(res.Record.Slug)
	lock.Lock()
	defer lock.Unlock()

	result, err := orchestrators.ExecuteSharePass(r.Context(),
		orchestrators.SharePassInput{
			Record:          res.Record,
			Placement:       placement,
			IllustrationURL: opts.IllustrationURL,
			Scale:           opts.Scale,
			Brand:           opts.Brand,
		},
		orchestrators.SharePassDeps{
			Images:    opts.Images,
			Captions:  opts.Captions,
			Sharer:    opts.Sharer,
			Clipboard: opts.Clipboard,
		})
	if err != nil {
		internalError(w, "pass_share_failed", err)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(shareResponse{
		Caption:       result.Caption,
		Shared:        result.Shared,
		Canceled:      result.Canceled,
		CaptionCopied: result.CaptionCopied,
		Notices:       result.Notices,
		Download:      result.Download,
	})
}

// shareResponse is the JSON body for POST /pass/{slug}/share.
type shareResponse struct {
	Caption       string                            `json:"caption"`
	Shared        bool                              `json:"shared"`
	Canceled      bool                              `json:"canceled"`
	CaptionCopied bool                              `json:"captionCopied"`
	Notices       []string                          `json:"notices"`
	Download      *orchestrators.DownloadPassResult `json:"download,omitempty"`
}

// handleRosterSync handles POST /admin/roster.
// Accepts a multipart CSV roster export, fills the Slug and Pass URL
// columns, persists records, and returns the per-row report. dry_run=1
// reports without writing anything.
func handleRosterSync(w http.ResponseWriter, r *http.Request) {
	const maxUpload = 2 << 20 // 2 MB is generous for a roster CSV
	if err := r.ParseMultipartForm(maxUpload); err != nil {
		http.Error(w, "request too large or malformed", http.StatusBadRequest)
		return
	}

	file, _, err := r.FormFile("roster")
	if err != nil {
		http.Error(w, "roster file is required", http.StatusBadRequest)
		return
	}
	defer file.Close()

	client, err := sheets.NewFileClientFromReader(file)
	if err != nil {
		http.Error(w, "roster must be valid CSV: "+err.Error(), http.StatusBadRequest)
		return
	}

	dryRun := r.FormValue("dry_run") == "1" || strings.EqualFold(r.FormValue("dry_run"), "true")

	input := orchestrators.SyncRosterInput{
		BaseURL:        opts.BaseURL,
		WorkshopColumn: strings.TrimSpace(r.FormValue("workshop_column")),
		DryRun:         dryRun,
	}
	deps := orchestrators.SyncRosterDeps{Sheet: client}
	if !dryRun {
		deps.RosterStore = stores.RosterStore
	}

	result, err := orchestrators.ExecuteSyncRoster(r.Context(), input, deps)
	if err != nil {
		var ve *orchestrators.SyncRosterValidationError
		if errors.As(err, &ve) {
			http.Error(w, ve.Message, http.StatusBadRequest)
			return
		}
		internalError(w, "roster_sync_failed", err)
		return
	}

	slog.Info("roster_synced",
		"processed", result.Processed,
		"updated", result.Updated,
		"dry_run", result.DryRun,
	)

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(result)
}

// internalError logs the failure and sends a generic 500.
func internalError(w http.ResponseWriter, event string, err error) {
	slog.Error(event, "error", err.Error())
	http.Error(w, "internal error", http.StatusInternalServerError)
}

// renderBlurb converts the workshop blurb Markdown to HTML. Raw HTML in the
// source is escaped by the converter.
func renderBlurb(md string) template.HTML {
	if md == "" {
		return ""
	}
	var buf bytes.Buffer
	if err := goldmark.Convert([]byte(md), &buf); err != nil {
		slog.Error("blurb_render_failed", "error", err.Error())
		return ""
	}
	return template.HTML(buf.String())
}

type passView struct {
	Record    student.Record
	Title     string
	Blurb     template.HTML
	CSRFField template.HTML
}

type notFoundView struct {
	Title           string
	RegistrationURL string
}

var passTmpl = template.Must(template.New("pass").Parse(`<!doctype html>
<html lang="en">
<head>
<meta charset="utf-8">
<meta name="viewport" content="width=device-width, initial-scale=1">
<title>{{.Record.Name}} | {{.Title}}</title>
<style>
body { font-family: system-ui, sans-serif; max-width: 720px; margin: 2rem auto; padding: 0 1rem; }
img.pass { width: 100%; height: auto; border-radius: 12px; box-shadow: 0 4px 16px rgba(0,0,0,.15); }
.actions { display: flex; gap: .75rem; margin: 1rem 0; flex-wrap: wrap; }
.actions a, .actions button { padding: .6rem 1.2rem; border-radius: 8px; border: 1px solid #ccc; background: #fff; text-decoration: none; color: inherit; cursor: pointer; }
.blurb { color: #444; }
</style>
</head>
<body>
<h1>{{.Title}}</h1>
<img class="pass" src="/pass/{{.Record.Slug}}/image.png" alt="Workshop pass for {{.Record.Name}}">
<div class="actions">
<a href="/pass/{{.Record.Slug}}/image.png" download>Download PNG</a>
<a href="/pass/{{.Record.Slug}}/pass.pdf" download>Download PDF</a>
<form method="post" action="/pass/{{.Record.Slug}}/share">{{.CSRFField}}<input type="hidden" name="placement" value="footer"><button type="submit">Share</button></form>
</div>
{{if .Blurb}}<div class="blurb">{{.Blurb}}</div>{{end}}
</body>
</html>
`))

var notFoundTmpl = template.Must(template.New("notfound").Parse(`<!doctype html>
<html lang="en">
<head>
<meta charset="utf-8">
<meta name="viewport" content="width=device-width, initial-scale=1">
<title>Pass not found | {{.Title}}</title>
<style>
body { font-family: system-ui, sans-serif; max-width: 560px; margin: 4rem auto; padding: 0 1rem; text-align: center; }
a.register { display: inline-block; margin-top: 1rem; padding: .6rem 1.2rem; border-radius: 8px; border: 1px solid #ccc; text-decoration: none; color: inherit; }
</style>
</head>
<body>
<h1>We couldn't find your pass</h1>
<p>This link doesn't match anyone on the {{.Title}} roster.</p>
{{if .RegistrationURL}}<a class="register" href="{{.RegistrationURL}}">Register for the workshop</a>{{end}}
</body>
</html>
`))
