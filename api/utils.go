package api

import (
	"encoding/json"
	"net/http"

	"RevTrackSaas/api/constants"
)

// RespondWithError writes the standard envelope for a failed request.
func RespondWithError(w http.ResponseWriter, status int, errMsg string) {
	w.Header().Set(constants.ContentTypeHeader, constants.ContentTypeJSON)
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(map[string]interface{}{
		"success": false,
		"error":   errMsg,
	})
}

// RespondWithJSON writes a success envelope around the payload.
func RespondWithJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set(constants.ContentTypeHeader, constants.ContentTypeJSON)
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(map[string]interface{}{
		"success": true,
		"data":    payload,
	})
}
