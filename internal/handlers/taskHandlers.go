package handlers

import (
	"net/http"

	"skilltwin/internal/models"
	"skilltwin/internal/services"
	"skilltwin/internal/utils"
)

type TaskHandler struct {
	taskService services.TaskService
}

func NewTaskHandler(taskService services.TaskService) *TaskHandler {
	return &TaskHandler{taskService: taskService}
}

func (h *TaskHandler) AssignTask(w http.ResponseWriter, r *http.Request) {
	var req models.AssignTaskRequest
	if err := utils.DecodeAndValidate(w, r, &req); err != nil {
		utils.WriteError(w, err)
		return
	}

	task, err := h.taskService.AssignTask(r.Context(), &req)
	if err != nil {
		utils.WriteError(w, err)
		return
	}

	utils.RespondWithJSON(w, http.StatusCreated, task)
}

func (h *TaskHandler) ListTasks(w http.ResponseWriter, r *http.Request) {
	tasks, err := h.taskService.ListTasks(r.Context())
	if err != nil {
		utils.WriteError(w, err)
		return
	}

	utils.RespondWithJSON(w, http.StatusOK, tasks)
}
