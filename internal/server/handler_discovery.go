package server

import "net/http"

type endpointInfo struct {
	Path        string   `json:"path"`
	Methods     []string `json:"methods"`
	Description string   `json:"description"`
}

type discoveryResponse struct {
	Name        string         `json:"name"`
	Version     string         `json:"version"`
	Description string         `json:"description"`
	Endpoints   []endpointInfo `json:"endpoints"`
}

func (s *Server) handleDiscovery(w http.ResponseWriter, r *http.Request) {
	reqID := RequestIDFromContext(r.Context())
	respondOK(w, reqID, discoveryResponse{
		Name:        "Lich API",
		Version:     "v1",
		Description: "Lich duty roster planner: deterministic round-robin teacher scheduling with manual overrides",
		Endpoints: []endpointInfo{
			{"/api/v1/teachers", []string{"GET", "POST"}, "Roster management in rotation order"},
			{"/api/v1/teachers/{id}", []string{"GET", "DELETE"}, "Single teacher operations"},
			{"/api/v1/teachers/order", []string{"PUT"}, "Reorder the rotation"},
			{"/api/v1/schedule", []string{"GET"}, "Generated month schedule (?year=&month=)"},
			{"/api/v1/schedule/export", []string{"GET"}, "Download one month as CSV or JSON (?format=)"},
			{"/api/v1/overrides", []string{"GET"}, "List manual overrides by date"},
			{"/api/v1/overrides/{date}", []string{"PUT", "DELETE"}, "Force or clear the assignment for one day"},
			{"/api/v1/colors", []string{"GET"}, "List day color annotations"},
			{"/api/v1/colors/{date}", []string{"PUT", "DELETE"}, "Set or clear a day color"},
			{"/api/v1/settings/start-date", []string{"GET", "PUT", "DELETE"}, "Rotation start date"},
			{"/api/v1/share", []string{"POST"}, "Encode the current state as a share code"},
			{"/api/v1/share/preview", []string{"POST"}, "Decode a share code without importing it"},
			{"/api/v1/share/import", []string{"POST"}, "Replace all state from a share code"},
			{"/api/v1/admin/backup", []string{"POST"}, "Write a state snapshot to the configured backup targets"},
			{"/api/v1/health", []string{"GET"}, "Server health and version"},
		},
	})
}
