package video

import (
	"net/http"

	"solidarity-api/internal/handler/http/auth"
	videoUC "solidarity-api/internal/usecase/video"
)

// Register registers all video routes with the given mux. Reads are
// public; create, update and delete require the admin bearer token.
func Register(mux *http.ServeMux, svc *videoUC.Service, authCfg *auth.Config) {
	authz := auth.Authz(authCfg)

	mux.Handle("GET    /api/videos", ListHandler{svc})
	mux.Handle("GET    /api/videos/", GetHandler{svc})

	mux.Handle("POST   /api/videos", authz(CreateHandler{svc}))
	mux.Handle("PUT    /api/videos/", authz(UpdateHandler{svc}))
	mux.Handle("DELETE /api/videos/", authz(DeleteHandler{svc}))
}
