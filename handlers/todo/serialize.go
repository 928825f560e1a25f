package todo

import (
	"time"

	"github.com/hagwonlab/homework-board/apperr"
	"github.com/hagwonlab/homework-board/model"
	"github.com/hagwonlab/homework-board/services"
)

// TodoResponse is a todo with its owner/assignee ids expanded into embedded
// user objects, resolved against the directory at response time.
type TodoResponse struct {
	ID          uint        `json:"id"`
	Title       string      `json:"title"`
	Description string      `json:"description"`
	Completed   bool        `json:"completed"`
	OwnerID     uint        `json:"owner_id"`
	AssigneeID  *uint       `json:"assignee_id"`
	DueDate     *string     `json:"due_date"`
	CompletedAt *time.Time  `json:"completed_at"`
	Owner       *model.User `json:"owner"`
	Assignee    *model.User `json:"assignee"`
}

// serializeTodo expands the owner and assignee. A user deleted between the
// service call and serialization is emitted as null instead of failing the
// whole response.
func serializeTodo(users *services.UserService, t model.Todo) (*TodoResponse, error) {
	resp := &TodoResponse{
		ID:          t.ID,
		Title:       t.Title,
		Description: t.Description,
		Completed:   t.Completed,
		OwnerID:     t.OwnerID,
		AssigneeID:  t.AssigneeID,
		DueDate:     t.DueDate,
		CompletedAt: t.CompletedAt,
	}

	owner, err := users.GetUser(t.OwnerID)
	if err != nil && !apperr.IsNotFound(err) {
		return nil, err
	}
	resp.Owner = owner

	if t.AssigneeID != nil {
		assignee, err := users.GetUser(*t.AssigneeID)
		if err != nil && !apperr.IsNotFound(err) {
			return nil, err
		}
		resp.Assignee = assignee
	}

	return resp, nil
}

func serializeTodos(users *services.UserService, todos []model.Todo) ([]*TodoResponse, error) {
	out := make([]*TodoResponse, 0, len(todos))
	for _, t := range todos {
		resp, err := serializeTodo(users, t)
		if err != nil {
			return nil, err
		}
		out = append(out, resp)
	}
	return out, nil
}
