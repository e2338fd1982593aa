package render

import (
	"bytes"
	"encoding/json"
	"fmt"
	"mime"
	"net/http"
	"strings"
)

// WantsHTML reports whether the client asked for an HTML fragment rather
// than JSON.
func WantsHTML(r *http.Request) bool {
	for _, part := range strings.Split(r.Header.Get("Accept"), ",") {
		t, _, err := mime.ParseMediaType(strings.TrimSpace(part))
		if err == nil && t == "text/html" {
			return true
		}
	}
	return false
}

// Respond writes the view in the format negotiated with the client.
func Respond(w http.ResponseWriter, r *http.Request, code int, v View) error {
	var b bytes.Buffer

	if WantsHTML(r) {
		if err := HTML(&b, v); err != nil {
			return err
		}
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
	} else {
		enc := json.NewEncoder(&b)
		enc.SetEscapeHTML(false)
		if err := enc.Encode(v); err != nil {
			return fmt.Errorf("unable to marshal view: %w", err)
		}
		w.Header().Set("Content-Type", "application/json")
	}

	w.WriteHeader(code)
	if _, err := w.Write(b.Bytes()); err != nil {
		return fmt.Errorf("unable to write response: %w", err)
	}
	return nil
}
