package httpapi

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/avoronin/docvault/internal/common"
	"github.com/avoronin/docvault/internal/server/models"
)

type credentialsRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type tokenResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
}

type documentCreateRequest struct {
	Title   string `json:"title"`
	Content string `json:"content"`
}

type documentResponse struct {
	ID        string    `json:"id"`
	Title     string    `json:"title"`
	Content   string    `json:"content"`
	OwnerID   string    `json:"owner_id"`
	CreatedAt time.Time `json:"created_at"`
}

type uploadURLResponse struct {
	UploadURL string `json:"upload_url"`
}

type downloadURLResponse struct {
	DownloadURL string `json:"download_url"`
}

func toDocumentResponse(doc *models.Document) documentResponse {
	return documentResponse{
		ID:        doc.ID,
		Title:     doc.Title,
		Content:   doc.Content,
		OwnerID:   doc.OwnerID,
		CreatedAt: doc.CreatedAt,
	}
}

func (s *Server) decode(w http.ResponseWriter, r *http.Request, v any) bool {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		s.writeJSON(r.Context(), w, http.StatusBadRequest, errorResponse{Detail: "Invalid request body"})
		return false
	}
	return true
}

func (s *Server) handleSignup(w http.ResponseWriter, r *http.Request) {
	var req credentialsRequest
	if !s.decode(w, r, &req) {
		return
	}

	token, err := s.users.Signup(r.Context(), req.Username, req.Password)
	if err != nil {
		s.writeError(r.Context(), w, err)
		return
	}

	s.logger.Info(r.Context(), "user registered", "username", req.Username)
	s.writeJSON(r.Context(), w, http.StatusOK, tokenResponse{AccessToken: token, TokenType: "bearer"})
}

func (s *Server) handleLogin(w http.ResponseWriter, r *http.Request) {
	var req credentialsRequest
	if !s.decode(w, r, &req) {
		return
	}

	token, err := s.users.Login(r.Context(), req.Username, req.Password)
	if err != nil {
		// Unknown username and wrong password share one body.
		if errors.Is(err, common.ErrorUnauthorized) {
			s.writeJSON(r.Context(), w, http.StatusUnauthorized, errorResponse{Detail: "Incorrect username or password"})
			return
		}
		s.writeError(r.Context(), w, err)
		return
	}

	s.writeJSON(r.Context(), w, http.StatusOK, tokenResponse{AccessToken: token, TokenType: "bearer"})
}

func (s *Server) handleCreateDocument(w http.ResponseWriter, r *http.Request) {
	owner := userFromContext(r.Context())

	var req documentCreateRequest
	if !s.decode(w, r, &req) {
		return
	}

	doc, err := s.documents.Create(r.Context(), owner, req.Title, req.Content)
	if err != nil {
		s.writeError(r.Context(), w, err)
		return
	}

	s.writeJSON(r.Context(), w, http.StatusOK, toDocumentResponse(doc))
}

func (s *Server) handleGetDocument(w http.ResponseWriter, r *http.Request) {
	owner := userFromContext(r.Context())

	doc, err := s.documents.Get(r.Context(), owner, r.PathValue("id"))
	if err != nil {
		s.writeError(r.Context(), w, err)
		return
	}

	s.writeJSON(r.Context(), w, http.StatusOK, toDocumentResponse(doc))
}

func (s *Server) handleListDocuments(w http.ResponseWriter, r *http.Request) {
	owner := userFromContext(r.Context())

	docs, err := s.documents.ListOwned(r.Context(), owner)
	if err != nil {
		s.writeError(r.Context(), w, err)
		return
	}

	out := make([]documentResponse, 0, len(docs))
	for _, doc := range docs {
		out = append(out, toDocumentResponse(doc))
	}

	s.writeJSON(r.Context(), w, http.StatusOK, out)
}

func (s *Server) handleAttachmentUpload(w http.ResponseWriter, r *http.Request) {
	owner := userFromContext(r.Context())

	url, err := s.documents.AttachmentUploadURL(r.Context(), owner, r.PathValue("id"))
	if err != nil {
		s.writeError(r.Context(), w, err)
		return
	}

	s.writeJSON(r.Context(), w, http.StatusOK, uploadURLResponse{UploadURL: url})
}

func (s *Server) handleAttachmentDownload(w http.ResponseWriter, r *http.Request) {
	owner := userFromContext(r.Context())

	url, err := s.documents.AttachmentDownloadURL(r.Context(), owner, r.PathValue("id"))
	if err != nil {
		s.writeError(r.Context(), w, err)
		return
	}

	s.writeJSON(r.Context(), w, http.StatusOK, downloadURLResponse{DownloadURL: url})
}
