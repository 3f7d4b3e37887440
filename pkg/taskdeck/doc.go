// Package taskdeck provides a Go SDK for the taskdeck task tracker API.
//
// The client keeps the session cookie in a cookie jar, so a successful
// Register or Login authenticates every later call made with the same
// Client.
//
// # Getting Started
//
//	client, err := taskdeck.NewClient(taskdeck.WithBaseURL("http://localhost:3001"))
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	user, err := client.Login(ctx, "alice@example.com", "correct horse")
//
// # Managing Tasks
//
// Create a task:
//
//	task, err := client.CreateTask(ctx, "Buy milk",
//	    taskdeck.WithPriority(taskdeck.PriorityHigh),
//	    taskdeck.WithDueDate(time.Now().Add(24*time.Hour)),
//	)
//
// List tasks with filtering, sorting and paging:
//
//	list, err := client.ListTasks(ctx,
//	    taskdeck.FilterStatus(taskdeck.StatusPending),
//	    taskdeck.Search("milk"),
//	    taskdeck.SortBy(taskdeck.SortByDueDate, taskdeck.SortAsc),
//	    taskdeck.Page(1),
//	    taskdeck.Limit(20),
//	)
//
// Update only some fields; Clear* options send null:
//
//	task, err = client.UpdateTask(ctx, task.ID,
//	    taskdeck.SetStatus(taskdeck.StatusCompleted),
//	    taskdeck.ClearDueDate(),
//	)
//
// # Error Handling
//
// API failures are returned as *Error and can be tested with the Is*
// helpers:
//
//	if taskdeck.IsNotFound(err) {
//	    // the task is gone or belongs to someone else
//	}
//	if taskdeck.IsServerNotRunning(err) {
//	    // nothing is listening at the base URL
//	}
package taskdeck
