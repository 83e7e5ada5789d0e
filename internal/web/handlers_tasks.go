package web

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/JonMunkholm/routine/internal/core"
)

// handleListTasks returns the caller's custom tasks.
func (s *Server) handleListTasks(w http.ResponseWriter, r *http.Request) {
	tasks, err := s.service.ListTasks(r.Context(), requestUser(r))
	if err != nil {
		s.respondError(w, r, err, statusFor(err))
		return
	}
	if tasks == nil {
		tasks = []core.CustomTask{}
	}
	writeJSON(w, http.StatusOK, tasks)
}

// handleCreateTask creates one task from a JSON object or form fields. The
// row goes through the same validation as imported rows, so column
// synonyms such as start_time are accepted.
func (s *Server) handleCreateTask(w http.ResponseWriter, r *http.Request) {
	row := core.RawRow{}
	if sendsJSON(r) {
		if err := json.NewDecoder(r.Body).Decode(&row); err != nil {
			s.respondError(w, r, core.ValidationError{Field: "body", Message: err.Error()}, http.StatusBadRequest)
			return
		}
	} else {
		if err := r.ParseForm(); err != nil {
			s.respondError(w, r, core.ValidationError{Field: "body", Message: err.Error()}, http.StatusBadRequest)
			return
		}
		for k := range r.PostForm {
			row[k] = r.PostForm.Get(k)
		}
	}

	task, err := s.service.CreateTask(r.Context(), requestUser(r), row)
	if err != nil {
		s.respondError(w, r, err, statusFor(err))
		return
	}
	w.Header().Set("HX-Trigger", "tasksChanged")
	writeJSON(w, http.StatusCreated, task)
}

// handleToggleTask flips a task's completion flag.
func (s *Server) handleToggleTask(w http.ResponseWriter, r *http.Request) {
	task, err := s.service.ToggleTask(r.Context(), requestUser(r), chi.URLParam(r, "id"))
	if err != nil {
		s.respondError(w, r, err, statusFor(err))
		return
	}
	w.Header().Set("HX-Trigger", "tasksChanged")
	writeJSON(w, http.StatusOK, task)
}

// handleDeleteTask removes a task.
func (s *Server) handleDeleteTask(w http.ResponseWriter, r *http.Request) {
	if err := s.service.DeleteTask(r.Context(), requestUser(r), chi.URLParam(r, "id")); err != nil {
		s.respondError(w, r, err, statusFor(err))
		return
	}
	w.Header().Set("HX-Trigger", "tasksChanged")
	w.WriteHeader(http.StatusNoContent)
}

// handleStats returns completion statistics for the caller's tasks.
func (s *Server) handleStats(w http.ResponseWriter, r *http.Request) {
	stats, err := s.service.Stats(r.Context(), requestUser(r))
	if err != nil {
		s.respondError(w, r, err, statusFor(err))
		return
	}
	writeJSON(w, http.StatusOK, stats)
}

// handleListProgress returns progress for ?date=YYYY-MM-DD, default today.
func (s *Server) handleListProgress(w http.ResponseWriter, r *http.Request) {
	progress, err := s.service.Progress(r.Context(), requestUser(r), r.URL.Query().Get("date"))
	if err != nil {
		s.respondError(w, r, err, statusFor(err))
		return
	}
	if progress == nil {
		progress = []core.ActivityProgress{}
	}
	writeJSON(w, http.StatusOK, progress)
}

type progressRequest struct {
	ActivityID string `json:"activityId"`
	Date       string `json:"date"`
	Completed  bool   `json:"completed"`
}

// handleSetProgress records completion of one activity on a date.
func (s *Server) handleSetProgress(w http.ResponseWriter, r *http.Request) {
	var req progressRequest
	if sendsJSON(r) {
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			s.respondError(w, r, core.ValidationError{Field: "body", Message: err.Error()}, http.StatusBadRequest)
			return
		}
	} else {
		req.ActivityID = r.FormValue("activityId")
		req.Date = r.FormValue("date")
		if v := r.FormValue("completed"); v != "" {
			completed, err := strconv.ParseBool(v)
			if err != nil {
				s.respondError(w, r, core.ValidationError{Field: "completed", Value: v, Message: fmt.Sprintf("expected true or false: %v", err)}, http.StatusBadRequest)
				return
			}
			req.Completed = completed
		}
	}

	progress, err := s.service.SetProgress(r.Context(), requestUser(r), req.ActivityID, req.Date, req.Completed)
	if err != nil {
		s.respondError(w, r, err, statusFor(err))
		return
	}
	writeJSON(w, http.StatusOK, progress)
}
