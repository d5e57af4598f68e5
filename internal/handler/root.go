package handler

import "net/http"

// HandleRoot answers the API root with a liveness message. Deploy checks
// and the frontend's "is the backend up?" probe both hit this.
func HandleRoot(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, messageResponse{Message: "Collaborative Code Studio API is running"})
}
