package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"todo-api-v2/api"
	"todo-api-v2/middleware"
	"todo-api-v2/store"
)

const (
	defaultPerPage = 20
	maxPerPage     = 100
)

// currentUserID pulls the authenticated user id out of the request context.
// The auth middleware guarantees it for every /tasks route; a miss means the
// route was wired without the middleware.
func currentUserID(w http.ResponseWriter, r *http.Request) (int, bool) {
	userID, ok := middleware.UserID(r.Context())
	if !ok {
		log.Println("ERROR: User ID not found in request context")
		respondWithError(w, http.StatusUnauthorized, "Not authenticated")
		return 0, false
	}
	return userID, true
}

// taskID parses the {id} path variable.
func taskID(r *http.Request) (int, error) {
	return strconv.Atoi(mux.Vars(r)["id"])
}

// queryInt reads an integer query parameter, falling back to def when the
// parameter is absent or malformed.
func queryInt(r *http.Request, name string, def int) int {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return def
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return def
	}
	return n
}

// ListTasks handles GET /tasks?page=&per_page=.
func (h *Handlers) ListTasks(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), dbTimeout)
	defer cancel()

	userID, ok := currentUserID(w, r)
	if !ok {
		return
	}

	// Out-of-range paging values are clamped rather than rejected so stale
	// bookmarked URLs keep working.
	page := queryInt(r, "page", 1)
	if page < 1 {
		page = 1
	}
	perPage := queryInt(r, "per_page", defaultPerPage)
	if perPage < 1 {
		perPage = defaultPerPage
	}
	if perPage > maxPerPage {
		perPage = maxPerPage
	}

	tasks, total, err := h.Tasks.List(ctx, userID, page, perPage)
	if err != nil {
		serverError(w, err)
		return
	}
	respondWithJSON(w, http.StatusOK, api.TaskList{Tasks: tasks, Total: total})
}

// CreateTask handles POST /tasks.
func (h *Handlers) CreateTask(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), dbTimeout)
	defer cancel()

	userID, ok := currentUserID(w, r)
	if !ok {
		return
	}

	var req api.TaskCreate
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid request payload")
		return
	}
	defer r.Body.Close()

	if verrs := req.Validate(); verrs != nil {
		respondWithValidationErrors(w, verrs)
		return
	}

	task, err := h.Tasks.Create(ctx, userID, req.Title, req.Description)
	if err != nil {
		serverError(w, err)
		return
	}
	respondWithJSON(w, http.StatusCreated, task)
}

// GetTask handles GET /tasks/{id}. Single-task reads go through the Redis
// cache; everything under the key is already scoped to the owner.
func (h *Handlers) GetTask(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), dbTimeout)
	defer cancel()

	userID, ok := currentUserID(w, r)
	if !ok {
		return
	}
	id, err := taskID(r)
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid task ID")
		return
	}

	if task, hit := h.Cache.Get(ctx, userID, id); hit {
		respondWithJSON(w, http.StatusOK, task)
		return
	}

	task, err := h.Tasks.Get(ctx, userID, id)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			respondWithError(w, http.StatusNotFound, "Task not found")
			return
		}
		serverError(w, err)
		return
	}

	h.Cache.Set(ctx, task)
	respondWithJSON(w, http.StatusOK, task)
}

// UpdateTask handles PATCH /tasks/{id}. Only the fields present in the body
// change; omitted fields keep their values.
func (h *Handlers) UpdateTask(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), dbTimeout)
	defer cancel()

	userID, ok := currentUserID(w, r)
	if !ok {
		return
	}
	id, err := taskID(r)
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid task ID")
		return
	}

	var req api.TaskUpdate
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid request payload")
		return
	}
	defer r.Body.Close()

	if verrs := req.Validate(); verrs != nil {
		respondWithValidationErrors(w, verrs)
		return
	}

	task, err := h.Tasks.Update(ctx, userID, id, req.Title, req.Description)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			respondWithError(w, http.StatusNotFound, "Task not found")
			return
		}
		serverError(w, err)
		return
	}

	h.Cache.Invalidate(ctx, userID, id)
	respondWithJSON(w, http.StatusOK, task)
}

// SetTaskStatus handles PATCH /tasks/{id}/status, the dedicated toggle that
// does not require resending title or description.
func (h *Handlers) SetTaskStatus(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), dbTimeout)
	defer cancel()

	userID, ok := currentUserID(w, r)
	if !ok {
		return
	}
	id, err := taskID(r)
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid task ID")
		return
	}

	var req api.StatusUpdate
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid request payload")
		return
	}
	defer r.Body.Close()

	if verrs := req.Validate(); verrs != nil {
		respondWithValidationErrors(w, verrs)
		return
	}

	task, err := h.Tasks.SetStatus(ctx, userID, id, req.Status)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			respondWithError(w, http.StatusNotFound, "Task not found")
			return
		}
		serverError(w, err)
		return
	}

	h.Cache.Invalidate(ctx, userID, id)
	respondWithJSON(w, http.StatusOK, task)
}

// DeleteTask handles DELETE /tasks/{id}.
func (h *Handlers) DeleteTask(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), dbTimeout)
	defer cancel()

	userID, ok := currentUserID(w, r)
	if !ok {
		return
	}
	id, err := taskID(r)
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid task ID")
		return
	}

	if err := h.Tasks.Delete(ctx, userID, id); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			respondWithError(w, http.StatusNotFound, "Task not found")
			return
		}
		serverError(w, err)
		return
	}

	h.Cache.Invalidate(ctx, userID, id)
	w.WriteHeader(http.StatusNoContent)
}
