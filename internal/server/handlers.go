package server

import (
	"encoding/json"
	"errors"
	"mime"
	"net/http"

	"github.com/jonathan/job-ledger/internal/pipeline"
	"github.com/jonathan/job-ledger/internal/types"
)

// ExtractRequest is the JSON body accepted by POST /extract.
// The job_text key must be present; its value may be blank.
type ExtractRequest struct {
	JobText *string `json:"job_text" validate:"required"`
}

// ExtractResponse is returned to JSON clients.
type ExtractResponse struct {
	RequestID string          `json:"request_id"`
	Status    string          `json:"status"`
	Record    types.JobRecord `json:"record"`
	Attempts  int             `json:"attempts"`
	Exhausted bool            `json:"exhausted"`
}

type pageData struct {
	JobText string
	Status  string
	Error   string
	Outcome *pipeline.Outcome
}

func (s *Server) handleIndex(w http.ResponseWriter, _ *http.Request) {
	s.renderPage(w, http.StatusOK, pageData{})
}

// handleExtract runs the pipeline for a form submission or a JSON request.
func (s *Server) handleExtract(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, s.maxBodyBytes)
	asJSON := isJSON(r)

	jobText, err := s.readJobText(r, asJSON)
	if err != nil {
		s.fail(w, asJSON, HTTPStatus(err), err, jobText)
		return
	}

	outcome, err := s.processor.Process(r.Context(), jobText)
	if err != nil {
		s.log.Error().Err(err).Msg("pipeline failed")
		s.fail(w, asJSON, HTTPStatus(err), err, jobText)
		return
	}

	if asJSON {
		s.jsonResponse(w, http.StatusOK, ExtractResponse{
			RequestID: outcome.RequestID,
			Status:    outcome.Status,
			Record:    outcome.Record,
			Attempts:  outcome.Attempts,
			Exhausted: outcome.Exhausted,
		})
		return
	}
	s.renderPage(w, http.StatusOK, pageData{Status: outcome.Status, Outcome: outcome})
}

// handleHealth returns server health status
func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	s.jsonResponse(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) readJobText(r *http.Request, asJSON bool) (string, error) {
	var req ExtractRequest
	if asJSON {
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			if tooLarge(err) {
				return "", &ErrBodyTooLarge{Limit: s.maxBodyBytes}
			}
			return "", &ErrValidation{Field: "body", Message: "invalid JSON"}
		}
	} else {
		if err := r.ParseForm(); err != nil {
			if tooLarge(err) {
				return "", &ErrBodyTooLarge{Limit: s.maxBodyBytes}
			}
			return "", &ErrValidation{Field: "body", Message: "invalid form"}
		}
		// A form submission always counts, even with the text area left empty
		text := r.PostFormValue("job_text")
		req.JobText = &text
	}

	if err := s.validator.Struct(req); err != nil {
		return "", fromValidator(err)
	}
	return *req.JobText, nil
}

func (s *Server) fail(w http.ResponseWriter, asJSON bool, status int, err error, jobText string) {
	if asJSON {
		s.errorResponse(w, status, err.Error())
		return
	}
	s.renderPage(w, status, pageData{JobText: jobText, Error: err.Error()})
}

func (s *Server) renderPage(w http.ResponseWriter, status int, data pageData) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	if err := s.page.Execute(w, data); err != nil {
		s.log.Error().Err(err).Msg("failed to render page")
	}
}

func isJSON(r *http.Request) bool {
	mediaType, _, err := mime.ParseMediaType(r.Header.Get("Content-Type"))
	return err == nil && mediaType == "application/json"
}

func tooLarge(err error) bool {
	var maxBytesErr *http.MaxBytesError
	return errors.As(err, &maxBytesErr)
}
