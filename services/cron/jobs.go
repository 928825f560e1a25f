package cron

import (
	"log"
	"time"

	"github.com/hagwonlab/homework-board/database"
)

// DueTodayDigest logs, per teacher, how many incomplete todos are due today.
// Read-only; the digest is informational.
func (m *CronManager) DueTodayDigest() {
	today := time.Now().Format("2006-01-02")

	todos, err := m.store.ListTodos(database.TodoFilter{})
	if err != nil {
		log.Printf("due_today_digest: failed to list todos: %v", err)
		return
	}

	dueByOwner := make(map[uint]int)
	for _, todo := range todos {
		if todo.Completed || todo.DueDate == nil || *todo.DueDate != today {
			continue
		}
		dueByOwner[todo.OwnerID]++
	}

	if len(dueByOwner) == 0 {
		log.Printf("due_today_digest: nothing due today (%s)", today)
		return
	}

	for ownerID, count := range dueByOwner {
		owner, err := m.store.GetUser(ownerID)
		if err != nil || owner == nil {
			log.Printf("due_today_digest: teacher %d: %d item(s) due today", ownerID, count)
			continue
		}
		log.Printf("due_today_digest: %s: %d item(s) due today", owner.Name, count)
	}
}

// AggregateStatistics logs overall user/todo/completion counts.
func (m *CronManager) AggregateStatistics() {
	userCount, err := m.store.CountUsers()
	if err != nil {
		log.Printf("aggregate_statistics: failed to count users: %v", err)
		return
	}

	todoCount, err := m.store.CountTodos()
	if err != nil {
		log.Printf("aggregate_statistics: failed to count todos: %v", err)
		return
	}

	todos, err := m.store.ListTodos(database.TodoFilter{})
	if err != nil {
		log.Printf("aggregate_statistics: failed to list todos: %v", err)
		return
	}
	completed := 0
	for _, todo := range todos {
		if todo.Completed {
			completed++
		}
	}

	log.Printf("aggregate_statistics: %d users, %d todos, %d completed", userCount, todoCount, completed)
}
