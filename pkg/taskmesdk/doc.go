/*
Package taskmesdk holds the wire types of the TaskMe HTTP API and a small Go
client for it.

The server decodes requests into these types and encodes responses from
them, so a client built on this package always matches the running API.

# Client

	c := taskmesdk.NewClient("http://localhost:8000")

	if _, err := c.Register(ctx, taskmesdk.RegisterRequest{
		Username: "alice",
		Email:    "alice@example.com",
		Password: "Passw0rd!",
	}); err != nil {
		return err
	}

	// After the emailed link has been followed:
	login, err := c.Login(ctx, "alice", "Passw0rd!")
	if err != nil {
		return err
	}

	task, err := c.CreateTask(ctx, taskmesdk.TaskCreate{TaskName: "Write report"})

Login stores the bearer token on the client; every later call sends it.

# Errors

Every non-2xx response is returned as *APIError carrying the HTTP status,
the machine readable code and the human readable description:

	var apiErr *taskmesdk.APIError
	if errors.As(err, &apiErr) && apiErr.StatusCode == http.StatusConflict {
		// username or email taken
	}

# Partial updates

TaskUpdate distinguishes "leave unchanged" from "clear" with Nullable:

	upd := taskmesdk.TaskUpdate{
		Description: taskmesdk.Null[string](),
		DueDate:     taskmesdk.Value("2025-07-01"),
	}
*/
package taskmesdk
