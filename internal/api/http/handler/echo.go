package handler

import (
	"fmt"
	"net/http"
	"strconv"
)

// Echo serves the JSON playground endpoint.
type Echo struct{}

// NewEcho creates an echo handler.
func NewEcho() *Echo {
	return &Echo{}
}

// Post greets back the posted name and age. Anything that is not a
// string name plus numeric age is rejected.
func (h *Echo) Post(w http.ResponseWriter, r *http.Request) {
	var payload map[string]any
	if err := readJSON(r, &payload); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid Payload")
		return
	}

	name, nameOK := payload["name"].(string)
	age, ageOK := payload["age"].(float64)
	if !nameOK || !ageOK {
		writeError(w, http.StatusBadRequest, "Invalid Payload")
		return
	}

	// FormatFloat keeps large ages in plain decimal notation.
	writeJSON(w, http.StatusOK, map[string]string{
		"message": fmt.Sprintf("Hello %s, you are %s years old", name, strconv.FormatFloat(age, 'f', -1, 64)),
	})
}

// Get hints at the expected usage.
func (h *Echo) Get(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"hint": "POST JSON to this endpoint"})
}
