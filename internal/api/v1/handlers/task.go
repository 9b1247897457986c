package handlers

import (
	"strconv"

	"taskmanager/internal/repository"
	"taskmanager/internal/service"
	"taskmanager/pkg/logger"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

type taskRequest struct {
	Name         string `json:"name" validate:"required"`
	Description  string `json:"description"`
	TaskStatusID int    `json:"task_status_id" validate:"required"`
	ExecutorID   *int   `json:"executor_id"`
	LabelIDs     []int  `json:"label_ids"`
}

func (h *Handler) CreateTask(c *fiber.Ctx) error {
	principal := principalFromLocals(c)

	var req taskRequest
	if err := c.BodyParser(&req); err != nil {
		logger.ErrorLogger.Error("Bad request in create task", zap.Error(err))
		return badRequest(c, "Bad request")
	}
	if err := validateStruct(req); err != nil {
		return respondError(c, err)
	}

	task, err := h.Tasks.Create(c.UserContext(), principal, service.TaskInput{
		Name:         req.Name,
		Description:  req.Description,
		TaskStatusID: req.TaskStatusID,
		ExecutorID:   req.ExecutorID,
		LabelIDs:     req.LabelIDs,
	})
	if err != nil {
		return respondError(c, err)
	}

	logger.AuditLogger.Info("Task created", zap.Int("task_id", task.ID), zap.Int("author_id", task.Author.ID))
	return respondCreated(c, "Task created successfully", task)
}

func (h *Handler) GetTask(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil {
		return badRequest(c, "Invalid task ID")
	}

	task, err := h.Tasks.GetByID(c.UserContext(), id)
	if err != nil {
		return respondError(c, err)
	}
	return respondOK(c, "Task found", task)
}

// ListTasks returns tasks narrowed by the equality filters in the query
// string: task_status_id, executor_id, label_id, author_id.
func (h *Handler) ListTasks(c *fiber.Ctx) error {
	filter := repository.TaskFilter{
		TaskStatusID: queryIntPtr(c, "task_status_id"),
		ExecutorID:   queryIntPtr(c, "executor_id"),
		LabelID:      queryIntPtr(c, "label_id"),
		AuthorID:     queryIntPtr(c, "author_id"),
	}

	tasks, err := h.Tasks.Find(c.UserContext(), filter)
	if err != nil {
		return respondError(c, err)
	}
	return respondOK(c, "Tasks fetched successfully", tasks)
}

func (h *Handler) UpdateTask(c *fiber.Ctx) error {
	principal := principalFromLocals(c)
	id, err := c.ParamsInt("id")
	if err != nil {
		return badRequest(c, "Invalid task ID")
	}

	var req taskRequest
	if err := c.BodyParser(&req); err != nil {
		logger.ErrorLogger.Error("Bad request in update task", zap.Error(err))
		return badRequest(c, "Bad request")
	}
	if err := validateStruct(req); err != nil {
		return respondError(c, err)
	}

	task, err := h.Tasks.Update(c.UserContext(), principal, id, service.TaskInput{
		Name:         req.Name,
		Description:  req.Description,
		TaskStatusID: req.TaskStatusID,
		ExecutorID:   req.ExecutorID,
		LabelIDs:     req.LabelIDs,
	})
	if err != nil {
		return respondError(c, err)
	}

	logger.AuditLogger.Info("Task updated", zap.Int("task_id", id))
	return respondOK(c, "Task updated successfully", task)
}

func (h *Handler) DeleteTask(c *fiber.Ctx) error {
	principal := principalFromLocals(c)
	id, err := c.ParamsInt("id")
	if err != nil {
		return badRequest(c, "Invalid task ID")
	}

	if err := h.Tasks.Delete(c.UserContext(), principal, id); err != nil {
		return respondError(c, err)
	}

	logger.AuditLogger.Info("Task deleted", zap.Int("task_id", id))
	return respondOK(c, "Task deleted successfully", nil)
}

func queryIntPtr(c *fiber.Ctx, name string) *int {
	raw := c.Query(name)
	if raw == "" {
		return nil
	}
	value, err := strconv.Atoi(raw)
	if err != nil {
		return nil
	}
	return &value
}
