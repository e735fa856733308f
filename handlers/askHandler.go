package handlers

import (
	"encoding/json"
	"log"
	"net/http"
	"strings"

	"github.com/junova144/Eva/models"
	"github.com/junova144/Eva/services/orchestrator"

	"github.com/gorilla/mux"
)

type AskHandler struct {
	service *orchestrator.Service
}

func NewAskHandler(service *orchestrator.Service) *AskHandler {
	return &AskHandler{service: service}
}

func (h *AskHandler) RegisterRoutes(router *mux.Router) {
	router.HandleFunc("/ask", h.Ask).Methods("POST")
	router.HandleFunc("/courses", h.ListCourses).Methods("GET")
}

func (h *AskHandler) Ask(w http.ResponseWriter, r *http.Request) {
	log.Printf("[INFO] Received ask request")

	var req models.AskRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Printf("[ERROR] Failed to decode ask request JSON: %v", err)
		writeErrorResponse(w, http.StatusBadRequest, "Invalid JSON payload")
		return
	}

	if strings.TrimSpace(req.Question) == "" {
		log.Printf("[ERROR] No question provided in ask request")
		writeErrorResponse(w, http.StatusBadRequest, "A question is required")
		return
	}

	if strings.TrimSpace(req.Course) == "" {
		log.Printf("[ERROR] No course provided in ask request")
		writeErrorResponse(w, http.StatusBadRequest, "A course is required")
		return
	}

	answer := h.service.Process(r.Context(), models.Question{
		Text:      req.Question,
		Grade:     req.Grade,
		Course:    req.Course,
		SessionID: req.SessionID,
	})

	log.Printf("[INFO] Ask request completed")
	writeJSONResponse(w, http.StatusOK, models.AskResponse{Answer: answer})
}

func (h *AskHandler) ListCourses(w http.ResponseWriter, r *http.Request) {
	writeJSONResponse(w, http.StatusOK, models.CatalogResponse{
		Grades:  models.AllGrades(),
		Courses: models.AllCourses(),
		Entries: models.Catalog(),
	})
}

func writeJSONResponse(w http.ResponseWriter, statusCode int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	json.NewEncoder(w).Encode(data)
}

func writeErrorResponse(w http.ResponseWriter, statusCode int, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	json.NewEncoder(w).Encode(map[string]string{"error": message})
}
