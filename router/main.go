package router

import (
	"github.com/gofiber/fiber/v2"
	"github.com/hagwonlab/homework-board/database"
	lookup_handlers "github.com/hagwonlab/homework-board/handlers/lookup"
	todo_handlers "github.com/hagwonlab/homework-board/handlers/todo"
	user_handlers "github.com/hagwonlab/homework-board/handlers/user"
	"github.com/hagwonlab/homework-board/services"
	"github.com/hagwonlab/homework-board/services/placeholder"
	"github.com/hagwonlab/homework-board/utils/middleware"
	"github.com/hagwonlab/homework-board/utils/response"
)

func SetupRoutes(app *fiber.App, store database.Storage, lookupClient *placeholder.Client) {
	// Services
	userService := services.NewUserService(store)
	todoService := services.NewTodoService(store, userService)

	// Identity middleware resolves the asserted X-User-Id into a User once
	// per request
	identity := middleware.NewIdentityMiddleware(userService)

	// Handlers
	userHandler := user_handlers.NewUserHandler(userService)
	todoHandler := todo_handlers.NewTodoHandler(todoService, userService)
	lookupHandler := lookup_handlers.NewLookupHandler(lookupClient)

	// Health check
	app.Get("/health", func(c *fiber.Ctx) error {
		if err := store.HealthCheck(); err != nil {
			return response.InternalServerError(c, "database unreachable")
		}
		return response.SuccessWithMessage(c, "ok", nil)
	})

	api := app.Group("/api")

	// User directory
	users := api.Group("/users")
	users.Get("", userHandler.ListUsers)
	users.Post("", userHandler.CreateUser)
	users.Get("/:id", userHandler.GetUser)

	// Student management
	students := api.Group("/students")
	students.Get("", userHandler.ListStudents)
	students.Post("", identity.Required(), userHandler.CreateStudent)
	students.Delete("/:id", identity.Required(), userHandler.DeleteStudent)

	// Todos (identity required on every route)
	todos := api.Group("/todos", identity.Required())
	todos.Get("", todoHandler.ListTodos)
	todos.Post("", todoHandler.CreateTodo)
	todos.Get("/:id", todoHandler.GetTodo)
	todos.Post("/:id/assign", todoHandler.AssignTodo)
	todos.Put("/:id", todoHandler.ReplaceTodo)
	todos.Patch("/:id", todoHandler.UpdateTodo)
	todos.Delete("/:id", todoHandler.DeleteTodo)

	// Legacy external lookup
	api.Get("/lookup/todos/:id", lookupHandler.GetTodoItem)
}
