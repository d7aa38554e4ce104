package web

import (
	"bytes"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/annwoerpel/visual-analytics-books/internal/csv"
)

// PageResponse is the page-load payload for one variant.
type PageResponse struct {
	Variant     string           `json:"variant"`
	Rows        []csv.Row        `json:"rows"`
	Diagnostics []csv.Diagnostic `json:"diagnostics,omitempty"`
}

// VariantInfo describes one configured variant.
type VariantInfo struct {
	Name string `json:"name"`
	File string `json:"file"`
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) handleListVariants(w http.ResponseWriter, r *http.Request) {
	out := make([]VariantInfo, 0, len(s.variants))
	for _, name := range s.variants.Names() {
		file, _ := s.variants.File(name)
		out = append(out, VariantInfo{Name: name, File: file})
	}
	writeJSON(w, http.StatusOK, out)
}

func (s *Server) handleLoadPage(w http.ResponseWriter, r *http.Request) {
	name, res, ok := s.loadVariant(w, r)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, PageResponse{
		Variant:     name,
		Rows:        res.Rows,
		Diagnostics: res.Diagnostics,
	})
}

func (s *Server) handleExportPage(w http.ResponseWriter, r *http.Request) {
	name, res, ok := s.loadVariant(w, r)
	if !ok {
		return
	}

	var buf bytes.Buffer
	if err := csv.Write(&buf, res.Header, res.Rows, s.opts.CSVOptions); err != nil {
		respondError(w, r, err)
		return
	}
	w.Header().Set("Content-Type", "text/csv; charset=utf-8")
	w.Header().Set("Content-Disposition", `attachment; filename="`+name+`.csv"`)
	_, _ = w.Write(buf.Bytes())
}

// loadVariant runs the loader for the {variant} URL parameter. It writes the
// error response itself and reports false on failure.
func (s *Server) loadVariant(w http.ResponseWriter, r *http.Request) (string, *csv.Result, bool) {
	name := chi.URLParam(r, "variant")
	file, ok := s.variants.File(name)
	if !ok {
		writeJSON(w, http.StatusNotFound, ErrorResponse{
			Error: "unknown variant " + name,
			Code:  CodeUnknownVariant,
		})
		return "", nil, false
	}

	res, err := s.loader.Load(r.Context(), file)
	if err != nil {
		respondError(w, r, err)
		return "", nil, false
	}
	return name, res, true
}
