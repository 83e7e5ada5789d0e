package web

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/JonMunkholm/routine/internal/core"
	"github.com/JonMunkholm/routine/internal/logging"
	"github.com/JonMunkholm/routine/internal/web/templates"
)

// multipartOverhead allows for form boundaries and headers on top of the
// file itself.
const multipartOverhead = 1 << 20

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

// PreviewResponse is the JSON form of an import session.
type PreviewResponse struct {
	Drafts     []core.TaskDraft  `json:"drafts"`
	Report     core.ImportReport `json:"report"`
	Processing bool              `json:"processing"`
	Stale      bool              `json:"stale"`
	Error      *ErrorResponse    `json:"error,omitempty"`
}

func newPreviewResponse(p core.Preview, lang string) PreviewResponse {
	resp := PreviewResponse{
		Drafts:     p.Drafts,
		Report:     p.Report,
		Processing: p.Processing,
		Stale:      p.Stale,
	}
	if resp.Drafts == nil {
		resp.Drafts = []core.TaskDraft{}
	}
	if p.Err != nil {
		e := newErrorResponse(core.LocalizedMessage(p.Err, lang))
		resp.Error = &e
	}
	return resp
}

// respondPreview writes p as an HTMX fragment or JSON.
func (s *Server) respondPreview(w http.ResponseWriter, r *http.Request, p core.Preview) {
	lang := requestLang(r)
	if isHTMX(r) {
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		if err := templates.ImportPreview(p, lang).Render(r.Context(), w); err != nil {
			slog.Error("render import preview", "error", err)
		}
		return
	}
	writeJSON(w, http.StatusOK, newPreviewResponse(p, lang))
}

// handleImportFile parses an uploaded spreadsheet or CSV file into the
// caller's pending drafts.
func (s *Server) handleImportFile(w http.ResponseWriter, r *http.Request) {
	maxSize := s.service.MaxFileSize()
	r.Body = http.MaxBytesReader(w, r.Body, maxSize+multipartOverhead)

	if err := r.ParseMultipartForm(maxSize); err != nil {
		s.respondBodyError(w, r, err, core.ErrNoFile)
		return
	}
	defer r.MultipartForm.RemoveAll()

	file, header, err := r.FormFile("file")
	if err != nil {
		s.respondError(w, r, fmt.Errorf("%w: %v", core.ErrNoFile, err), http.StatusBadRequest)
		return
	}
	defer file.Close()

	payload, err := io.ReadAll(io.LimitReader(file, maxSize+1))
	if err != nil {
		s.respondError(w, r, fmt.Errorf("%w: %v", core.ErrFileParse, err), http.StatusBadRequest)
		return
	}
	logging.WithFields(r.Context(), "file_name", header.Filename, "bytes", len(payload)).
		Debug("import file received")

	preview, err := s.service.ImportFile(r.Context(), requestUser(r), header.Filename, payload)
	if err != nil {
		s.respondError(w, r, err, statusFor(err))
		return
	}
	s.respondPreview(w, r, preview)
}

// respondBodyError reports a failed body read. Bodies cut off by
// MaxBytesReader are ErrFileTooLarge; anything else wraps fallback.
func (s *Server) respondBodyError(w http.ResponseWriter, r *http.Request, err, fallback error) {
	var tooLarge *http.MaxBytesError
	if errors.As(err, &tooLarge) {
		s.respondError(w, r, fmt.Errorf("%w: %v", core.ErrFileTooLarge, err), http.StatusRequestEntityTooLarge)
		return
	}
	s.respondError(w, r, fmt.Errorf("%w: %v", fallback, err), http.StatusBadRequest)
}

type importTextRequest struct {
	Text string `json:"text"`
}

// handleImportText parses pipe-delimited text from a JSON body or the
// "text" form field.
func (s *Server) handleImportText(w http.ResponseWriter, r *http.Request) {
	maxSize := s.service.MaxFileSize()
	r.Body = http.MaxBytesReader(w, r.Body, maxSize+multipartOverhead)

	var text string
	if sendsJSON(r) {
		var req importTextRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			s.respondBodyError(w, r, err, core.ErrTextParse)
			return
		}
		text = req.Text
	} else {
		if err := r.ParseForm(); err != nil {
			s.respondBodyError(w, r, err, core.ErrTextParse)
			return
		}
		text = r.PostFormValue("text")
	}

	preview, err := s.service.ImportText(r.Context(), requestUser(r), text)
	if err != nil {
		s.respondError(w, r, err, statusFor(err))
		return
	}
	s.respondPreview(w, r, preview)
}

// handleImportPreview returns the caller's pending drafts and last error.
func (s *Server) handleImportPreview(w http.ResponseWriter, r *http.Request) {
	s.respondPreview(w, r, s.service.Preview(requestUser(r)))
}

// handleImportClear discards pending drafts but keeps the session.
func (s *Server) handleImportClear(w http.ResponseWriter, r *http.Request) {
	s.respondPreview(w, r, s.service.Clear(requestUser(r)))
}

// handleImportClose drops the caller's session entirely.
func (s *Server) handleImportClose(w http.ResponseWriter, r *http.Request) {
	s.service.CloseSession(requestUser(r))
	w.WriteHeader(http.StatusNoContent)
}

// handleImportCommit creates a custom task for every pending draft.
func (s *Server) handleImportCommit(w http.ResponseWriter, r *http.Request) {
	result, err := s.service.Commit(r.Context(), requestUser(r))
	if err != nil {
		s.respondError(w, r, err, statusFor(err))
		return
	}

	if isHTMX(r) {
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		w.Header().Set("HX-Trigger", "tasksChanged")
		if err := templates.CommitSummary(result, requestLang(r)).Render(r.Context(), w); err != nil {
			slog.Error("render commit summary", "error", err)
		}
		return
	}
	writeJSON(w, http.StatusOK, result)
}

// handleDownloadTemplate serves the xlsx import template.
func (s *Server) handleDownloadTemplate(w http.ResponseWriter, r *http.Request) {
	data, err := core.TemplateWorkbook()
	if err != nil {
		s.respondError(w, r, err, http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", xlsxContentType)
	w.Header().Set("Content-Disposition", fmt.Sprintf(`attachment; filename="%s"`, core.TemplateFileName))
	w.Header().Set("Content-Length", strconv.Itoa(len(data)))
	w.Write(data)
}

type columnFormat struct {
	Field    string   `json:"field"`
	Required bool     `json:"required"`
	Accepts  []string `json:"accepts"`
}

type formatResponse struct {
	Extensions []string        `json:"extensions"`
	Columns    []columnFormat  `json:"columns"`
	Categories []core.Category `json:"categories"`
	TextLayout []string        `json:"textLayout"`
	MaxBytes   int64           `json:"maxBytes"`
}

// handleImportFormat describes what the import readers accept: file
// extensions, column headers with their synonyms, and the text layouts.
func (s *Server) handleImportFormat(w http.ResponseWriter, r *http.Request) {
	resp := formatResponse{
		Extensions: core.AcceptedExtensions(),
		Categories: core.Categories,
		TextLayout: []string{
			"title | category | start | end",
			"title | description | category | start | end",
		},
		MaxBytes: s.service.MaxFileSize(),
	}
	for _, field := range core.TemplateColumns {
		resp.Columns = append(resp.Columns, columnFormat{
			Field:    field,
			Required: field == core.FieldTitle || field == core.FieldStartTime || field == core.FieldEndTime,
			Accepts:  core.FieldSynonyms(field),
		})
	}
	writeJSON(w, http.StatusOK, resp)
}

type categoryResponse struct {
	Categories []core.Category `json:"categories"`
	Default    core.Category   `json:"default"`
}

// handleListCategories returns the closed category set.
func (s *Server) handleListCategories(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, categoryResponse{
		Categories: core.Categories,
		Default:    core.DefaultCategory,
	})
}

type healthResponse struct {
	Status   string                   `json:"status"`
	Imports  core.ImportLimiterStatus `json:"imports"`
	Sessions int                      `json:"sessions"`
}

// handleHealth reports import capacity and open sessions.
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, healthResponse{
		Status:   "ok",
		Imports:  s.service.Limiter().Status(),
		Sessions: s.service.SessionCount(),
	})
}
