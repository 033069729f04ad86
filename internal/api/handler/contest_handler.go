package handler

import (
	"encoding/json"
	"net/http"
	"strconv"

	"contesthub/internal/api/middleware"
	"contesthub/internal/app/service"
	"contesthub/internal/common"
	"contesthub/internal/domain/model"

	"github.com/go-chi/chi/v5"
)

type ContestHandler struct {
	contestService *service.ContestService
}

func NewContestHandler(contestService *service.ContestService) *ContestHandler {
	return &ContestHandler{contestService: contestService}
}

// RegisterPublicRoutes binds the browse surface: anyone can search approved
// contests, view one or read the leaderboard.
func (h *ContestHandler) RegisterPublicRoutes(r chi.Router) {
	r.Get("/contests", h.list)
	r.Get("/contests/popular", h.popular)
	r.Get("/contests/slug/{slug}", h.getBySlug)
	r.Get("/contests/{id}", h.getByID)
	r.Get("/leaderboard", h.leaderboard)
}

// RegisterAuthedRoutes binds contest creation and the creator-scoped routes.
func (h *ContestHandler) RegisterAuthedRoutes(r chi.Router) {
	r.Post("/contests", h.create)
	r.Get("/creator/contests", h.listMine)
	r.Patch("/creator/contests/{id}", h.updateMine)
	r.Delete("/creator/contests/{id}", h.deleteMine)
}

// RegisterAdminRoutes binds the moderation surface.
func (h *ContestHandler) RegisterAdminRoutes(r chi.Router) {
	r.Get("/admin/contests", h.listForAdmin)
	r.Patch("/admin/contests/{id}/status", h.setStatus)
	r.Delete("/admin/contests/{id}", h.deleteAny)
}

func (h *ContestHandler) list(w http.ResponseWriter, r *http.Request) {
	q := service.ListContestsQuery{
		Search: r.URL.Query().Get("search"),
		Type:   r.URL.Query().Get("type"),
	}
	q.Page, _ = strconv.Atoi(r.URL.Query().Get("page"))
	q.Limit, _ = strconv.Atoi(r.URL.Query().Get("limit"))

	page, err := h.contestService.List(r.Context(), q)
	if err != nil {
		common.RespondWithError(w, common.HTTPStatusFromError(err), err.Error())
		return
	}
	common.RespondWithJSON(w, http.StatusOK, page)
}

func (h *ContestHandler) popular(w http.ResponseWriter, r *http.Request) {
	contests, err := h.contestService.Popular(r.Context())
	if err != nil {
		common.RespondWithError(w, common.HTTPStatusFromError(err), err.Error())
		return
	}
	common.RespondWithJSON(w, http.StatusOK, contests)
}

func (h *ContestHandler) leaderboard(w http.ResponseWriter, r *http.Request) {
	entries, err := h.contestService.Leaderboard(r.Context())
	if err != nil {
		common.RespondWithError(w, common.HTTPStatusFromError(err), err.Error())
		return
	}
	common.RespondWithJSON(w, http.StatusOK, entries)
}

func (h *ContestHandler) getByID(w http.ResponseWriter, r *http.Request) {
	contest, err := h.contestService.GetByID(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		common.RespondWithError(w, common.HTTPStatusFromError(err), err.Error())
		return
	}
	common.RespondWithJSON(w, http.StatusOK, contest)
}

func (h *ContestHandler) getBySlug(w http.ResponseWriter, r *http.Request) {
	contest, err := h.contestService.GetBySlug(r.Context(), chi.URLParam(r, "slug"))
	if err != nil {
		common.RespondWithError(w, common.HTTPStatusFromError(err), err.Error())
		return
	}
	common.RespondWithJSON(w, http.StatusOK, contest)
}

func (h *ContestHandler) create(w http.ResponseWriter, r *http.Request) {
	email, ok := middleware.GetEmailFromContext(r.Context())
	if !ok {
		common.RespondWithError(w, http.StatusUnauthorized, "Missing user context")
		return
	}

	var req service.CreateContestRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		common.RespondWithError(w, http.StatusBadRequest, "Invalid request payload: "+err.Error())
		return
	}

	contest, err := h.contestService.Create(r.Context(), email, req)
	if err != nil {
		common.RespondWithError(w, common.HTTPStatusFromError(err), err.Error())
		return
	}
	common.RespondWithJSON(w, http.StatusCreated, contest)
}

func (h *ContestHandler) listMine(w http.ResponseWriter, r *http.Request) {
	email, ok := middleware.GetEmailFromContext(r.Context())
	if !ok {
		common.RespondWithError(w, http.StatusUnauthorized, "Missing user context")
		return
	}

	contests, err := h.contestService.ListByCreator(r.Context(), email)
	if err != nil {
		common.RespondWithError(w, common.HTTPStatusFromError(err), err.Error())
		return
	}
	common.RespondWithJSON(w, http.StatusOK, contests)
}

func (h *ContestHandler) updateMine(w http.ResponseWriter, r *http.Request) {
	email, ok := middleware.GetEmailFromContext(r.Context())
	if !ok {
		common.RespondWithError(w, http.StatusUnauthorized, "Missing user context")
		return
	}

	var patch model.ContestPatch
	if err := json.NewDecoder(r.Body).Decode(&patch); err != nil {
		common.RespondWithError(w, http.StatusBadRequest, "Invalid request payload: "+err.Error())
		return
	}

	modified, err := h.contestService.UpdateByCreator(r.Context(), email, chi.URLParam(r, "id"), patch)
	if err != nil {
		common.RespondWithError(w, common.HTTPStatusFromError(err), err.Error())
		return
	}
	common.RespondWithJSON(w, http.StatusOK, map[string]int64{"modifiedCount": modified})
}

func (h *ContestHandler) deleteMine(w http.ResponseWriter, r *http.Request) {
	email, ok := middleware.GetEmailFromContext(r.Context())
	if !ok {
		common.RespondWithError(w, http.StatusUnauthorized, "Missing user context")
		return
	}

	if err := h.contestService.DeleteByCreator(r.Context(), email, chi.URLParam(r, "id")); err != nil {
		common.RespondWithError(w, common.HTTPStatusFromError(err), err.Error())
		return
	}
	common.RespondWithJSON(w, http.StatusOK, map[string]string{"message": "Contest deleted"})
}

func (h *ContestHandler) listForAdmin(w http.ResponseWriter, r *http.Request) {
	q := service.AdminListQuery{
		Status: model.ContestStatus(r.URL.Query().Get("status")),
	}
	q.Page, _ = strconv.Atoi(r.URL.Query().Get("page"))
	q.Limit, _ = strconv.Atoi(r.URL.Query().Get("limit"))

	page, err := h.contestService.ListForAdmin(r.Context(), q)
	if err != nil {
		common.RespondWithError(w, common.HTTPStatusFromError(err), err.Error())
		return
	}
	common.RespondWithJSON(w, http.StatusOK, page)
}

func (h *ContestHandler) setStatus(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Status model.ContestStatus `json:"status"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		common.RespondWithError(w, http.StatusBadRequest, "Invalid request payload: "+err.Error())
		return
	}

	if err := h.contestService.SetStatus(r.Context(), chi.URLParam(r, "id"), req.Status); err != nil {
		common.RespondWithError(w, common.HTTPStatusFromError(err), err.Error())
		return
	}
	common.RespondWithJSON(w, http.StatusOK, map[string]string{"message": "Status updated"})
}

func (h *ContestHandler) deleteAny(w http.ResponseWriter, r *http.Request) {
	if err := h.contestService.Delete(r.Context(), chi.URLParam(r, "id")); err != nil {
		common.RespondWithError(w, common.HTTPStatusFromError(err), err.Error())
		return
	}
	common.RespondWithJSON(w, http.StatusOK, map[string]string{"message": "Contest deleted"})
}
