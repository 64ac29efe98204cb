package handlers

import (
	"net/http"

	"github.com/gorilla/mux"

	"skilltwin/internal/models"
	"skilltwin/internal/services"
	"skilltwin/internal/utils"
)

type BlogHandler struct {
	blogService services.BlogService
}

func NewBlogHandler(blogService services.BlogService) *BlogHandler {
	return &BlogHandler{blogService: blogService}
}

func (h *BlogHandler) ListBlogs(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	p := models.NewPagination(query.Get("page"), query.Get("limit"))

	page, err := h.blogService.ListBlogs(r.Context(), p)
	if err != nil {
		utils.WriteError(w, err)
		return
	}

	utils.RespondWithJSON(w, http.StatusOK, page)
}

func (h *BlogHandler) GetBlog(w http.ResponseWriter, r *http.Request) {
	blog, err := h.blogService.GetBlog(r.Context(), mux.Vars(r)["idOrSlug"])
	if err != nil {
		utils.WriteError(w, err)
		return
	}

	utils.RespondWithJSON(w, http.StatusOK, blog)
}

func (h *BlogHandler) CreateBlog(w http.ResponseWriter, r *http.Request) {
	var input models.BlogInput
	if err := utils.DecodeAndValidate(w, r, &input); err != nil {
		utils.WriteError(w, err)
		return
	}

	blog, err := h.blogService.CreateBlog(r.Context(), &input)
	if err != nil {
		utils.WriteError(w, err)
		return
	}

	utils.RespondWithJSON(w, http.StatusCreated, blog)
}

func (h *BlogHandler) UpdateBlog(w http.ResponseWriter, r *http.Request) {
	var patch models.BlogUpdate
	if err := utils.DecodeAndValidate(w, r, &patch); err != nil {
		utils.WriteError(w, err)
		return
	}

	blog, err := h.blogService.UpdateBlog(r.Context(), mux.Vars(r)["idOrSlug"], &patch)
	if err != nil {
		utils.WriteError(w, err)
		return
	}

	utils.RespondWithJSON(w, http.StatusOK, blog)
}

func (h *BlogHandler) DeleteBlog(w http.ResponseWriter, r *http.Request) {
	if err := h.blogService.DeleteBlog(r.Context(), mux.Vars(r)["idOrSlug"]); err != nil {
		utils.WriteError(w, err)
		return
	}

	utils.RespondWithJSON(w, http.StatusOK, map[string]string{"message": "Blog deleted successfully"})
}

// AssistBlog drafts an excerpt and tags for an existing post.
func (h *BlogHandler) AssistBlog(w http.ResponseWriter, r *http.Request) {
	assist, err := h.blogService.AssistBlog(r.Context(), mux.Vars(r)["idOrSlug"])
	if err != nil {
		utils.WriteError(w, err)
		return
	}

	utils.RespondWithJSON(w, http.StatusOK, assist)
}
