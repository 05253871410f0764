package httpapi

import (
	"strconv"

	"github.com/gofiber/fiber/v2"

	"github.com/runoshun/tally/internal/app"
	"github.com/runoshun/tally/internal/domain"
	"github.com/runoshun/tally/internal/timer"
	"github.com/runoshun/tally/internal/usecase"
	"github.com/runoshun/tally/internal/usecase/shared"
)

type handlers struct {
	c *app.Container
}

// TaskRequest is the body for creating or updating a task.
// On update, omitted fields keep their value.
type TaskRequest struct {
	Name     *string `json:"name"`
	Date     *string `json:"date"`
	Category *string `json:"category"`
}

// TaskResponse is the API view of a task.
type TaskResponse struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Date        string `json:"date"`
	Category    string `json:"category"`
	TimeDisplay string `json:"timeDisplay"`
	TimeSpent   int    `json:"timeSpent"`
	Position    int    `json:"position,omitempty"`
	Done        bool   `json:"done"`
	Running     bool   `json:"running"`
}

// TaskListResponse is the body of GET /tasks.
type TaskListResponse struct {
	Tasks []TaskResponse `json:"tasks"`
	Total int            `json:"total"`
}

// TimerResponse is the API view of a task timer.
type TimerResponse struct {
	ID      string `json:"id"`
	Display string `json:"display"`
	Seconds int    `json:"seconds"`
	Running bool   `json:"running"`
}

// SummaryResponse is the body of GET /summary/:date.
type SummaryResponse struct {
	Date           string         `json:"date"`
	TotalDisplay   string         `json:"totalDisplay"`
	Message        string         `json:"message,omitempty"` // Set when Empty
	Tasks          []TaskResponse `json:"tasks"`
	CompletedCount int            `json:"completedCount"`
	TotalTimeSpent int            `json:"totalTimeSpent"`
	Empty          bool           `json:"empty"`
}

func (h *handlers) toTask(t *domain.Task, position int) TaskResponse {
	st := h.c.Timers().Snapshot(t.ID)
	seconds := t.TimeSpent
	if st.Running {
		seconds = st.Seconds
	}
	return TaskResponse{
		ID:          string(t.ID),
		Name:        t.Name,
		Date:        t.Date,
		Category:    t.Category,
		TimeSpent:   seconds,
		TimeDisplay: domain.FormatDuration(seconds),
		Position:    position,
		Done:        t.Done,
		Running:     st.Running,
	}
}

func toTimer(st timer.State) TimerResponse {
	return TimerResponse{
		ID:      string(st.ID),
		Seconds: st.Seconds,
		Display: st.Display(),
		Running: st.Running,
	}
}

func (h *handlers) health(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{"status": "ok"})
}

// listTasks handles GET /api/v1/tasks?date=&month=&search=&done=
func (h *handlers) listTasks(c *fiber.Ctx) error {
	in := usecase.ListTasksInput{
		Date:   c.Query("date"),
		Month:  c.Query("month"),
		Search: c.Query("search"),
	}
	if raw := c.Query("done"); raw != "" {
		done, err := strconv.ParseBool(raw)
		if err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "done must be true or false")
		}
		in.Done = &done
	}

	out, err := h.c.ListTasksUseCase().Execute(c.UserContext(), in)
	if err != nil {
		return err
	}

	resp := TaskListResponse{Tasks: make([]TaskResponse, 0, len(out.Tasks)), Total: out.Total}
	for _, lt := range out.Tasks {
		resp.Tasks = append(resp.Tasks, h.toTask(lt.Task, lt.Position))
	}
	return c.JSON(resp)
}

// createTask handles POST /api/v1/tasks
func (h *handlers) createTask(c *fiber.Ctx) error {
	var req TaskRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
	}

	out, err := h.c.AddTaskUseCase().Execute(c.UserContext(), usecase.AddTaskInput{
		Name:     deref(req.Name),
		Date:     deref(req.Date),
		Category: deref(req.Category),
	})
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(h.toTask(out.Task, out.Position))
}

// getTask handles GET /api/v1/tasks/:id
func (h *handlers) getTask(c *fiber.Ctx) error {
	task, err := shared.GetTask(c.UserContext(), h.c.Tasks, c.Params("id"))
	if err != nil {
		return err
	}
	return c.JSON(h.toTask(task, 0))
}

// updateTask handles PUT /api/v1/tasks/:id
func (h *handlers) updateTask(c *fiber.Ctx) error {
	var req TaskRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
	}

	out, err := h.c.UpdateTaskUseCase().Execute(c.UserContext(), usecase.UpdateTaskInput{
		Ref:      c.Params("id"),
		Name:     req.Name,
		Date:     req.Date,
		Category: req.Category,
	})
	if err != nil {
		return err
	}
	return c.JSON(h.toTask(out.Task, 0))
}

// deleteTask handles DELETE /api/v1/tasks/:id
func (h *handlers) deleteTask(c *fiber.Ctx) error {
	out, err := h.c.DeleteTaskUseCase().Execute(c.UserContext(), usecase.DeleteTaskInput{Ref: c.Params("id")})
	if err != nil {
		return err
	}
	return c.JSON(h.toTask(out.Task, 0))
}

// toggleTask handles POST /api/v1/tasks/:id/toggle
func (h *handlers) toggleTask(c *fiber.Ctx) error {
	out, err := h.c.ToggleDoneUseCase().Execute(c.UserContext(), usecase.ToggleDoneInput{Ref: c.Params("id")})
	if err != nil {
		return err
	}
	return c.JSON(h.toTask(out.Task, 0))
}

// completeTask handles POST /api/v1/tasks/:id/done
func (h *handlers) completeTask(c *fiber.Ctx) error {
	out, err := h.c.CompleteTaskUseCase().Execute(c.UserContext(), usecase.CompleteTaskInput{Ref: c.Params("id")})
	if err != nil {
		return err
	}
	return c.JSON(h.toTask(out.Task, 0))
}

// showTimer handles GET /api/v1/tasks/:id/timer
func (h *handlers) showTimer(c *fiber.Ctx) error {
	return h.timer(c, usecase.TimerShow)
}

// controlTimer handles POST /api/v1/tasks/:id/timer/{start,stop,reset}
func (h *handlers) controlTimer(c *fiber.Ctx) error {
	action := usecase.TimerAction(c.Params("action"))
	switch action {
	case usecase.TimerStart, usecase.TimerStop, usecase.TimerReset:
	default:
		return fiber.NewError(fiber.StatusNotFound, "unknown timer action "+string(action))
	}
	return h.timer(c, action)
}

func (h *handlers) timer(c *fiber.Ctx, action usecase.TimerAction) error {
	out, err := h.c.TimerControlUseCase().Execute(c.UserContext(), usecase.TimerInput{
		Ref:    c.Params("id"),
		Action: action,
	})
	if err != nil {
		return err
	}
	return c.JSON(toTimer(out.State))
}

// summary handles GET /api/v1/summary/:date
func (h *handlers) summary(c *fiber.Ctx) error {
	out, err := h.c.SummarizeUseCase().Execute(c.UserContext(), usecase.SummarizeInput{Date: c.Params("date")})
	if err != nil {
		return err
	}

	s := out.Summary
	resp := SummaryResponse{
		Date:           s.Date,
		CompletedCount: s.CompletedCount,
		TotalTimeSpent: s.TotalTimeSpent,
		TotalDisplay:   domain.FormatDuration(s.TotalTimeSpent),
		Tasks:          make([]TaskResponse, 0, len(s.Tasks)),
		Empty:          s.Empty(),
	}
	if resp.Empty {
		resp.Message = domain.EmptySummaryNotice
	}
	for _, t := range s.Tasks {
		resp.Tasks = append(resp.Tasks, h.toTask(t, 0))
	}
	return c.JSON(resp)
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
