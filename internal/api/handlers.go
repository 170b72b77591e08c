package api

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"path/filepath"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/mwidmer/mdp/internal/doctree"
	"github.com/mwidmer/mdp/internal/lexer"
	"github.com/mwidmer/mdp/internal/query"
	"github.com/mwidmer/mdp/internal/reader"
	"github.com/mwidmer/mdp/internal/render"
	"github.com/mwidmer/mdp/internal/search"
	"github.com/mwidmer/mdp/internal/store"
	"github.com/mwidmer/mdp/internal/tagindex"
	"github.com/mwidmer/mdp/internal/tasks"
	"github.com/mwidmer/mdp/internal/token"
)

// handleUpload accepts a multipart diary upload, parses it and registers it.
func (s *Server) handleUpload(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, s.cfg.MaxUploadBytes+1024*1024)

	if err := r.ParseMultipartForm(8 << 20); err != nil {
		jsonError(w, "invalid multipart form: "+err.Error(), http.StatusBadRequest)
		return
	}
	defer r.MultipartForm.RemoveAll()

	file, header, err := r.FormFile("file")
	if err != nil {
		jsonError(w, "file is required: "+err.Error(), http.StatusBadRequest)
		return
	}
	defer file.Close()

	filename := sanitizeFilename(header.Filename)
	if !reader.IsSupportedExtension(filename) {
		jsonError(w, fmt.Sprintf("unsupported file type: %s", filepath.Ext(filename)), http.StatusBadRequest)
		return
	}

	data, err := io.ReadAll(io.LimitReader(file, s.cfg.MaxUploadBytes+1))
	if err != nil {
		jsonError(w, "failed to read file", http.StatusInternalServerError)
		return
	}
	if int64(len(data)) > s.cfg.MaxUploadBytes {
		jsonError(w, fmt.Sprintf("file exceeds max size (%d bytes)", s.cfg.MaxUploadBytes), http.StatusRequestEntityTooLarge)
		return
	}

	rd, err := reader.ForFile(filename)
	if err != nil {
		jsonError(w, err.Error(), http.StatusBadRequest)
		return
	}
	text, err := rd.Read(bytes.NewReader(data), filename)
	if err != nil {
		jsonError(w, "failed to convert file: "+err.Error(), http.StatusUnprocessableEntity)
		return
	}

	tree := doctree.Build(lexer.Lex(text))
	d := s.store.Put(filename, text, tree)

	ix := tagindex.New(tree)
	s.log.Info("diary uploaded", "id", d.ID, "filename", filename, "sections", len(tree.Sections()))

	writeJSON(w, http.StatusCreated, map[string]any{
		"id":       d.ID,
		"filename": d.Filename,
		"sections": len(tree.Sections()),
		"tags":     ix.Len(),
		"tasks":    len(tasks.Extract(tree)),
	})
}

func (s *Server) handleList(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{"diaries": s.store.List()})
}

func (s *Server) handleDelete(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "diaryID")
	if !s.store.Delete(id) {
		jsonError(w, "diary not found", http.StatusNotFound)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"deleted": id})
}

func (s *Server) handleTags(w http.ResponseWriter, r *http.Request) {
	d, ok := s.diary(w, r)
	if !ok {
		return
	}
	ix := tagindex.New(d.Tree)

	names := ix.Names()
	if r.URL.Query().Get("order") == "count" {
		names = ix.ByCount()
	}

	sections := ix.SectionNodes()
	type tagInfo struct {
		Name     string   `json:"name"`
		Count    int      `json:"count"`
		Sections []string `json:"sections"`
	}
	out := make([]tagInfo, 0, len(names))
	for _, name := range names {
		e, _ := ix.Entry(name)
		info := tagInfo{Name: name, Count: e.Count}
		for _, idx := range ix.Sections(name) {
			info.Sections = append(info.Sections, sections[idx].Token.Text)
		}
		out = append(out, info)
	}
	writeJSON(w, http.StatusOK, map[string]any{"tags": out})
}

func (s *Server) handleTasks(w http.ResponseWriter, r *http.Request) {
	d, ok := s.diary(w, r)
	if !ok {
		return
	}

	list := tasks.Extract(d.Tree)
	switch r.URL.Query().Get("show") {
	case "finished":
		list = tasks.Filter(list, tasks.FilterFinished)
	case "unfinished":
		list = tasks.Filter(list, tasks.FilterUnfinished)
	}
	if r.URL.Query().Get("order") == "urgency" {
		list = tasks.SortByUrgency(list, time.Now())
	}

	type taskInfo struct {
		Status      string `json:"status"`
		Due         string `json:"due,omitempty"`
		Description string `json:"description"`
		Line        int    `json:"line"`
	}
	out := make([]taskInfo, 0, len(list))
	for _, t := range list {
		info := taskInfo{
			Status:      t.Status.String(),
			Description: t.Text,
			Line:        t.Line,
		}
		if t.Status == token.StatusTodoUntil {
			info.Status = "TODO"
			info.Due = t.Due.Format(token.DateLayout)
		}
		out = append(out, info)
	}
	writeJSON(w, http.StatusOK, map[string]any{"tasks": out})
}

func (s *Server) handleSearch(w http.ResponseWriter, r *http.Request) {
	d, ok := s.diary(w, r)
	if !ok {
		return
	}

	q := r.URL.Query()
	var terms []string
	for _, t := range strings.Split(q.Get("q"), ",") {
		if t = strings.TrimSpace(t); t != "" {
			terms = append(terms, t)
		}
	}

	opts := search.Options{Terms: terms}
	if q.Get("mode") == "and" {
		opts.Mode = search.ModeAnd
	}
	if q.Get("order") == "relevance" {
		opts.Order = search.OrderRelevance
	}
	var err error
	if opts.From, err = parseDateParam(q.Get("from")); err != nil {
		jsonError(w, "invalid from date", http.StatusBadRequest)
		return
	}
	if opts.Until, err = parseDateParam(q.Get("until")); err != nil {
		jsonError(w, "invalid until date", http.StatusBadRequest)
		return
	}

	ix := tagindex.New(d.Tree)
	results, err := search.Run(ix, opts)
	if err != nil {
		if errors.Is(err, query.ErrInvalidQuery) {
			jsonError(w, err.Error(), http.StatusBadRequest)
			return
		}
		jsonError(w, "search failed: "+err.Error(), http.StatusInternalServerError)
		return
	}

	type sectionInfo struct {
		Heading  string   `json:"heading"`
		Date     string   `json:"date,omitempty"`
		Matched  []string `json:"matched"`
		Markdown string   `json:"markdown"`
	}
	out := make([]sectionInfo, 0, len(results))
	for _, res := range results {
		info := sectionInfo{
			Heading:  res.Node.Token.Text,
			Matched:  res.Matched,
			Markdown: render.Section(res.Node),
		}
		if res.HasDate {
			info.Date = res.Date.Format(token.DateLayout)
		}
		out = append(out, info)
	}
	writeJSON(w, http.StatusOK, map[string]any{"sections": out})
}

func (s *Server) handleTree(w http.ResponseWriter, r *http.Request) {
	d, ok := s.diary(w, r)
	if !ok {
		return
	}
	debug := r.URL.Query().Get("debug") == "1"
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	fmt.Fprintln(w, render.TreeView(d.Tree, debug))
}

func (s *Server) handleSection(w http.ResponseWriter, r *http.Request) {
	d, ok := s.diary(w, r)
	if !ok {
		return
	}
	date := chi.URLParam(r, "date")

	var node *doctree.Node
	for _, sec := range d.Tree.Sections() {
		if dt, hasDate := sec.Date(); hasDate && dt.Format(token.DateLayout) == date {
			node = sec
			break
		}
	}
	if node == nil {
		jsonError(w, "no section for date "+date, http.StatusNotFound)
		return
	}

	md := render.Section(node)
	if r.URL.Query().Get("format") == "html" {
		html, err := render.HTML(md)
		if err != nil {
			jsonError(w, err.Error(), http.StatusInternalServerError)
			return
		}
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		io.WriteString(w, html)
		return
	}
	w.Header().Set("Content-Type", "text/markdown; charset=utf-8")
	io.WriteString(w, md)
}

// diary resolves the diaryID URL parameter, writing a 404 on miss.
func (s *Server) diary(w http.ResponseWriter, r *http.Request) (*store.Diary, bool) {
	id := chi.URLParam(r, "diaryID")
	d, ok := s.store.Get(id)
	if !ok {
		jsonError(w, "diary not found", http.StatusNotFound)
		return nil, false
	}
	return d, true
}

func parseDateParam(v string) (time.Time, error) {
	if v == "" {
		return time.Time{}, nil
	}
	return time.Parse(token.DateLayout, v)
}

func writeJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	json.NewEncoder(w).Encode(v)
}

func jsonError(w http.ResponseWriter, msg string, code int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	json.NewEncoder(w).Encode(map[string]string{"error": msg})
}

func sanitizeFilename(name string) string {
	name = filepath.Base(name)
	name = strings.ReplaceAll(name, "/", "_")
	name = strings.ReplaceAll(name, "\\", "_")
	name = strings.ReplaceAll(name, "..", "_")
	if name == "" || name == "." {
		name = "unnamed"
	}
	return name
}
