package database

import (
	"fmt"
	"log"
	"time"

	"github.com/hagwonlab/homework-board/model"
)

// Seeder inserts example teachers, students, and todos. Seeding is
// idempotent: users are looked up by name and todos by title+owner before
// inserting.
type Seeder struct {
	store Storage
}

// NewSeeder creates a new seeder instance
func NewSeeder(store Storage) *Seeder {
	return &Seeder{store: store}
}

// SeedResult reports what a seeding run actually created.
type SeedResult struct {
	CreatedUsers int
	CreatedTodos int
}

type seedTodo struct {
	title       string
	description string
	assignee    int // index into the student list
	completed   bool
	dueIn       int // days from today
}

// SeedAll inserts the example data set.
func (s *Seeder) SeedAll() (*SeedResult, error) {
	log.Println("Starting database seeding...")

	result := &SeedResult{}

	teacherID, created, err := s.ensureUser("담임 선생님", model.RoleTeacher)
	if err != nil {
		return nil, fmt.Errorf("failed to seed teacher: %w", err)
	}
	if created {
		result.CreatedUsers++
	}

	studentNames := []string{"홍길동", "김민수", "이서연"}
	studentIDs := make([]uint, 0, len(studentNames))
	for _, name := range studentNames {
		id, created, err := s.ensureUser(name, model.RoleStudent)
		if err != nil {
			return nil, fmt.Errorf("failed to seed student %s: %w", name, err)
		}
		if created {
			result.CreatedUsers++
		}
		studentIDs = append(studentIDs, id)
	}

	todos := []seedTodo{
		{title: "수학 숙제", description: "교재 32쪽 문제 풀기", assignee: 0, dueIn: 0},
		{title: "과학 보고서", description: "태양계 자료 조사", assignee: 1, dueIn: 2},
		{title: "국어 일기", description: "주말 활동 일기 작성", assignee: 2, completed: true, dueIn: 1},
	}

	for _, item := range todos {
		existing, err := s.store.FindTodoByTitleAndOwner(item.title, teacherID)
		if err != nil {
			return nil, fmt.Errorf("failed to look up todo %s: %w", item.title, err)
		}
		if existing != nil {
			continue
		}

		dueDate := time.Now().AddDate(0, 0, item.dueIn).Format("2006-01-02")
		var completedAt *time.Time
		if item.completed {
			now := time.Now().UTC().Truncate(time.Second)
			completedAt = &now
		}

		assigneeID := studentIDs[item.assignee]
		if _, err := s.store.CreateTodo(CreateTodoParams{
			Title:       item.title,
			Description: item.description,
			Completed:   item.completed,
			OwnerID:     teacherID,
			AssigneeID:  &assigneeID,
			DueDate:     &dueDate,
			CompletedAt: completedAt,
		}); err != nil {
			return nil, fmt.Errorf("failed to seed todo %s: %w", item.title, err)
		}
		result.CreatedTodos++
	}

	log.Printf("Database seeding completed: %d users, %d todos created",
		result.CreatedUsers, result.CreatedTodos)
	return result, nil
}

func (s *Seeder) ensureUser(name string, role model.Role) (uint, bool, error) {
	existing, err := s.store.FindUserByName(name)
	if err != nil {
		return 0, false, err
	}
	if existing != nil {
		return existing.ID, false, nil
	}

	user, err := s.store.CreateUser(name, role)
	if err != nil {
		return 0, false, err
	}
	return user.ID, true, nil
}
