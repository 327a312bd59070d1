package handler

import (
	"encoding/json"
	"net/http"
	"os"
)

// Handler is the serverless health entry point. It reports the
// storefront's configuration without touching the backend.
func Handler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]interface{}{
		"success": true,
		"service": "shopfront",
		"backend": os.Getenv("SHOPFRONT_API_URL"),
	})
}
