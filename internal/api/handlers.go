package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log"
	"mime/multipart"
	"net/http"
	"strings"

	"github.com/nyayabharat/nyaya-go/internal/router"
	"github.com/nyayabharat/nyaya-go/internal/services/complaint"
	"github.com/nyayabharat/nyaya-go/internal/services/legallens"
	"github.com/nyayabharat/nyaya-go/internal/services/rights"
)

// maxUploadBytes caps multipart uploads held in memory.
const maxUploadBytes = 16 << 20 // 16 MiB

// readUpload extracts the "file" part from a multipart request and
// checks its declared content type against the accepted prefixes.
func readUpload(r *http.Request, accepted ...string) ([]byte, error) {
	if err := r.ParseMultipartForm(maxUploadBytes); err != nil {
		return nil, fmt.Errorf("invalid multipart form: %w", err)
	}

	file, hdr, err := r.FormFile("file")
	if err != nil {
		return nil, errors.New("file field is required")
	}
	defer file.Close()

	if !contentTypeAccepted(hdr, accepted) {
		return nil, fmt.Errorf("unsupported content type %q", hdr.Header.Get("Content-Type"))
	}

	data, err := io.ReadAll(io.LimitReader(file, maxUploadBytes))
	if err != nil {
		return nil, fmt.Errorf("read upload: %w", err)
	}
	return data, nil
}

func contentTypeAccepted(hdr *multipart.FileHeader, accepted []string) bool {
	ct := hdr.Header.Get("Content-Type")
	for _, a := range accepted {
		if strings.HasSuffix(a, "/") {
			if strings.HasPrefix(ct, a) {
				return true
			}
		} else if ct == a {
			return true
		}
	}
	return false
}

// handleDocumentProcess implements POST /api/document/process.
// Accepts an image or PDF upload plus a target language form field.
func (s *Server) handleDocumentProcess(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeJSONError(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}

	data, err := readUpload(r, "image/", "application/pdf")
	if err != nil {
		writeJSONError(w, "Only image or PDF files are supported: "+err.Error(), http.StatusBadRequest)
		return
	}

	language := r.FormValue("language")

	result, err := s.legalLens.ProcessDocument(r.Context(), data, language)
	if err != nil {
		if errors.Is(err, legallens.ErrUnsupportedLanguage) {
			writeJSONError(w, err.Error(), http.StatusBadRequest)
			return
		}
		log.Printf("[API] document processing failed: %v", err)
		writeJSONError(w, "Document processing failed: "+err.Error(), http.StatusInternalServerError)
		return
	}

	writeJSON(w, result)
}

// handleOfficerTranslate implements POST /api/officer/translate.
// Accepts an image upload only.
func (s *Server) handleOfficerTranslate(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeJSONError(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}

	data, err := readUpload(r, "image/")
	if err != nil {
		writeJSONError(w, "Only image files are supported: "+err.Error(), http.StatusBadRequest)
		return
	}

	result, err := s.officer.ProcessVernacularDocument(r.Context(), data)
	if err != nil {
		log.Printf("[API] translation failed: %v", err)
		writeJSONError(w, "Translation failed: "+err.Error(), http.StatusInternalServerError)
		return
	}

	writeJSON(w, result)
}

// voiceComplaintRequest is the JSON body for /api/complaint/voice.
type voiceComplaintRequest struct {
	AudioURL string `json:"audio_url"`
	Language string `json:"language"`
}

// complaintResponse wraps a filed complaint for the caller.
type complaintResponse struct {
	TrackingID      string `json:"tracking_id"`
	Status          string `json:"status"`
	Message         string `json:"message"`
	DepartmentEmail string `json:"department_email,omitempty"`
	Timestamp       string `json:"timestamp,omitempty"`
}

// handleComplaintVoice implements POST /api/complaint/voice.
func (s *Server) handleComplaintVoice(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeJSONError(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}

	var req voiceComplaintRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSONError(w, "invalid JSON", http.StatusBadRequest)
		return
	}
	if req.AudioURL == "" {
		writeJSONError(w, "audio_url is required", http.StatusBadRequest)
		return
	}

	result, err := s.complaints.ProcessVoiceComplaint(r.Context(), req.AudioURL, req.Language)
	if err != nil {
		if errors.Is(err, complaint.ErrUnroutedCategory) {
			writeJSONError(w, err.Error(), http.StatusUnprocessableEntity)
			return
		}
		log.Printf("[API] complaint filing failed: %v", err)
		writeJSONError(w, "Complaint filing failed: "+err.Error(), http.StatusInternalServerError)
		return
	}

	writeJSON(w, complaintResponse{
		TrackingID:      result.TrackingID,
		Status:          string(result.Status),
		Message:         fmt.Sprintf("Complaint filed successfully. Track with ID: %s", result.TrackingID),
		DepartmentEmail: result.DepartmentEmail,
		Timestamp:       result.Timestamp,
	})
}

// legalQueryRequest is the JSON body for /api/rights/query.
type legalQueryRequest struct {
	Question string `json:"question"`
	Language string `json:"language"`
}

// handleRightsQuery implements POST /api/rights/query.
func (s *Server) handleRightsQuery(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeJSONError(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}

	var req legalQueryRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSONError(w, "invalid JSON", http.StatusBadRequest)
		return
	}

	result, err := s.rights.AnswerLegalQuery(r.Context(), req.Question, req.Language)
	if err != nil {
		if errors.Is(err, rights.ErrEmptyQuestion) {
			writeJSONError(w, "question is required", http.StatusBadRequest)
			return
		}
		// ErrNoCitations included: a citation-less legal answer is an
		// internal failure, never a success.
		log.Printf("[API] query processing failed: %v", err)
		writeJSONError(w, "Query processing failed: "+err.Error(), http.StatusInternalServerError)
		return
	}

	writeJSON(w, result)
}

// handleWhatsAppWebhook implements POST /api/whatsapp/webhook.
// The payload is an arbitrary JSON object carrying a "type" tag; the
// router parses it as a tagged union that fails closed.
func (s *Server) handleWhatsAppWebhook(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeJSONError(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}

	var payload map[string]any
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		writeJSONError(w, "invalid JSON", http.StatusBadRequest)
		return
	}

	decision, err := router.RoutePayload(payload)
	if err != nil {
		if errors.Is(err, router.ErrUnrecognizedKind) {
			writeJSONError(w, "unknown message type", http.StatusBadRequest)
			return
		}
		log.Printf("[API] webhook processing failed: %v", err)
		writeJSONError(w, "Webhook processing failed: "+err.Error(), http.StatusInternalServerError)
		return
	}

	// Carry the turn into the contact's session when a sender is named.
	if from, _ := payload["from"].(string); from != "" && s.sessions != nil {
		sc, err := s.sessions.Get(r.Context(), from)
		if err == nil {
			sc["last_service"] = string(decision.Service)
			sc["last_action"] = decision.Action
			if err := s.sessions.Update(r.Context(), from, sc); err != nil {
				log.Printf("[API] session update failed for %s: %v", from, err)
			}
		}
	}

	writeJSON(w, decision)
}
