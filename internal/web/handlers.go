package web

import (
	"database/sql"
	"net/http"
	"strconv"
	"strings"

	"github.com/ezixen/lzip/internal/config"
	"github.com/ezixen/lzip/internal/dict"
	"github.com/ezixen/lzip/internal/ops"
)

// Handlers contains HTTP route handlers for the web UI.
type Handlers struct {
	db       *sql.DB
	cfg      *config.Config
	renderer *Renderer
}

// HandleTranslate handles GET /translate — the translation form.
func (h *Handlers) HandleTranslate(w http.ResponseWriter, r *http.Request) {
	h.renderer.renderPage(w, "translate", TranslatePageData{
		PageData: PageData{
			Title:   "Translate",
			Version: h.renderer.version,
			Nav:     "translate",
		},
		Direction: "compress",
	})
}

// HandleTranslateSubmit handles POST /translate — run a translation and
// re-render the form with the result.
func (h *Handlers) HandleTranslateSubmit(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		h.renderer.renderError(w, r, err)
		return
	}

	text := r.PostFormValue("text")
	direction := r.PostFormValue("direction")
	aggressive := r.PostFormValue("aggressive") != ""

	data := TranslatePageData{
		PageData: PageData{
			Title:   "Translate",
			Version: h.renderer.version,
			Nav:     "translate",
		},
		Text:       text,
		Direction:  direction,
		Aggressive: aggressive,
	}

	switch direction {
	case "expand":
		result, err := ops.Expand(r.Context(), h.db, h.cfg, ops.ExpandInput{
			Text:   text,
			Source: "web",
		})
		if err != nil {
			h.renderer.renderError(w, r, err)
			return
		}
		data.Expanded = result
	default:
		result, err := ops.Compress(r.Context(), h.db, h.cfg, ops.CompressInput{
			Text:       text,
			Aggressive: &aggressive,
			Source:     "web",
		})
		if err != nil {
			h.renderer.renderError(w, r, err)
			return
		}
		data.Result = result
	}

	h.renderer.renderPage(w, "translate", data)
}

// HandleDictionary handles GET /dictionary — browse operators and symbols.
func (h *Handlers) HandleDictionary(w http.ResponseWriter, r *http.Request) {
	category := strings.TrimSpace(r.URL.Query().Get("category"))

	entries := dict.Entries()
	if category != "" {
		entries = dict.EntriesByCategory(dict.Category(dict.Normalize(category)))
	}

	h.renderer.renderPage(w, "dictionary", DictionaryPageData{
		PageData: PageData{
			Title:   "Dictionary",
			Version: h.renderer.version,
			Nav:     "dictionary",
		},
		Category:   category,
		Categories: dict.Categories,
		Entries:    entries,
		Symbols:    dict.Symbols(),
	})
}

// HandleTemplates handles GET /templates — browse shorthand templates.
func (h *Handlers) HandleTemplates(w http.ResponseWriter, r *http.Request) {
	data := TemplatesPageData{
		PageData: PageData{
			Title:   "Templates",
			Version: h.renderer.version,
			Nav:     "templates",
		},
		Templates: dict.Templates(),
	}

	if name := r.URL.Query().Get("name"); name != "" {
		if tmpl, ok := dict.GetTemplate(name); ok {
			data.Selected = &tmpl
		}
	}

	h.renderer.renderPage(w, "templates", data)
}

// HandleHistory handles GET /history — list recorded translations.
func (h *Handlers) HandleHistory(w http.ResponseWriter, r *http.Request) {
	direction := r.URL.Query().Get("direction")

	result, err := ops.History(r.Context(), h.db, ops.HistoryInput{
		Direction: direction,
		Limit:     parseIntParam(r, "limit", ops.DefaultHistoryLimit),
		Offset:    parseIntParam(r, "offset", 0),
	})
	if err != nil {
		h.renderer.renderError(w, r, err)
		return
	}

	h.renderer.renderPage(w, "history", HistoryPageData{
		PageData: PageData{
			Title:   "History",
			Version: h.renderer.version,
			Nav:     "history",
		},
		Direction:  direction,
		Entries:    result.Entries,
		Pagination: result.Pagination,
	})
}

// HandleHistoryPurge handles POST /history/purge — delete recorded translations.
func (h *Handlers) HandleHistoryPurge(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		h.renderer.renderError(w, r, err)
		return
	}

	input := ops.PurgeInput{}
	if v := r.PostFormValue("older_than_days"); v != "" {
		if days, err := strconv.Atoi(v); err == nil {
			input.OlderThanDays = &days
		}
	}

	if _, err := ops.Purge(r.Context(), h.db, input); err != nil {
		h.renderer.renderError(w, r, err)
		return
	}

	http.Redirect(w, r, "/history", http.StatusSeeOther)
}

// HandleGuide handles GET /guide — the rendered shorthand guide.
func (h *Handlers) HandleGuide(w http.ResponseWriter, r *http.Request) {
	h.renderer.renderPage(w, "guide", GuidePageData{
		PageData: PageData{
			Title:   "Guide",
			Version: h.renderer.version,
			Nav:     "guide",
		},
		RenderedHTML: renderMarkdown(guideMarkdown),
	})
}

// parseIntParam parses an integer query parameter with a fallback default.
func parseIntParam(r *http.Request, name string, def int) int {
	v := r.URL.Query().Get(name)
	if v == "" {
		return def
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return def
	}
	return n
}
