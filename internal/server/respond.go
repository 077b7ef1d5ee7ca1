package server

import (
	"encoding/json"
	"net/http"

	"github.com/dimviana/Gestor-de-Boleto/internal/common"
)

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, err error) {
	writeJSON(w, status, common.NewErrorBody(err))
}
