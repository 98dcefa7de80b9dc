package handlers

import (
	"encoding/json"
	"log"
	"net/http"

	"github.com/fitlog/fitlog/models"
)

// writeJSON отправляет значение v как JSON с указанным статусом.
func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		// Статус уже отправлен
		log.Printf("[Handlers] Ошибка кодирования ответа: %v", err)
	}
}

// writeError отправляет {"error": msg}.
func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, models.StatusResponse{Error: msg})
}

func writeOK(w http.ResponseWriter, status int) {
	writeJSON(w, status, models.StatusResponse{OK: true})
}
