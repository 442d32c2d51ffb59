// internal/memegen/server.go
package memegen

import (
	"encoding/json"
	"fmt"
	"net"
	"net/http"
	"os"

	"go.uber.org/zap"
)

// Mock modes, selected with MG_MOCK_MODE.
const (
	MockModeOK        = "ok"
	MockModeDecline   = "decline"
	MockModeMalformed = "malformed"
)

// MockImageURL is the image URL the mock server returns for imageID when
// served from host.
func MockImageURL(host, imageID string) string {
	return fmt.Sprintf("http://%s/instances/%s.jpg", host, imageID)
}

// StartMockServer starts a stand-in for Instance_Create on the given address (e.g. ":0").
// It returns the server instance and the actual listening address.
func StartMockServer(addr string) (*http.Server, string, error) {
	mux := http.NewServeMux()
	mux.HandleFunc("GET "+instanceCreatePath, func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		if q.Get("username") == "" || q.Get("password") == "" {
			http.Error(w, "missing credentials", http.StatusUnauthorized)
			return
		}

		switch os.Getenv("MG_MOCK_MODE") {
		case MockModeDecline:
			http.Error(w, "generation declined", http.StatusBadRequest)
			return
		case MockModeMalformed:
			w.Header().Set("Content-Type", "application/json")
			if err := json.NewEncoder(w).Encode(map[string]any{"success": false, "errorMessage": "no such image"}); err != nil {
				zap.S().Errorw("mock write error", "error", err)
			}
			return
		}

		w.Header().Set("Content-Type", "application/json")
		resp := map[string]any{
			"success": true,
			"result": map[string]any{
				"generatorID":      q.Get("generatorID"),
				"imageID":          q.Get("imageID"),
				"text0":            q.Get("text0"),
				"text1":            q.Get("text1"),
				"instanceImageUrl": MockImageURL(r.Host, q.Get("imageID")),
			},
		}
		if err := json.NewEncoder(w).Encode(resp); err != nil {
			zap.S().Errorw("mock write error", "error", err)
		}
	})

	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return nil, "", fmt.Errorf("mock memegenerator listen: %w", err)
	}
	server := &http.Server{Handler: mux}
	go func() {
		zap.S().Infow("mock memegenerator listening", "address", ln.Addr().String(), "mode", os.Getenv("MG_MOCK_MODE"))
		if err := server.Serve(ln); err != nil && err != http.ErrServerClosed {
			zap.S().Errorw("mock memegenerator error", "error", err)
		}
	}()

	return server, ln.Addr().String(), nil
}
