// Package taskme holds the OpenAPI document served under /swagger/.
// Regenerate with: swag init -g internal/taskme/http/router.go -o api/taskme
package taskme

import "github.com/swaggo/swag"

const docTemplate = `{
    "schemes": {{ marshal .Schemes }},
    "swagger": "2.0",
    "info": {
        "description": "{{escape .Description}}",
        "title": "{{.Title}}",
        "contact": {
            "name": "AussieBroadWAN Team",
            "url": "https://github.com/aussiebroadwan/taskme"
        },
        "license": {
            "name": "MIT",
            "url": "https://opensource.org/licenses/MIT"
        },
        "version": "{{.Version}}"
    },
    "host": "{{.Host}}",
    "basePath": "{{.BasePath}}",
    "paths": {
        "/": {"get": {"tags": ["Health"], "summary": "API banner", "produces": ["application/json"],
            "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/taskmesdk.MessageResponse"}}}}},
        "/livez": {"get": {"tags": ["Health"], "summary": "Health Check Endpoint", "produces": ["application/json"],
            "responses": {"200": {"description": "status, uptime, version", "schema": {"$ref": "#/definitions/taskmesdk.HealthResponse"}}}}},
        "/readyz": {"get": {"tags": ["Health"], "summary": "Readiness Check Endpoint", "produces": ["application/json"],
            "responses": {
                "200": {"description": "status, uptime, version, checks", "schema": {"$ref": "#/definitions/taskmesdk.HealthResponse"}},
                "503": {"description": "service not ready", "schema": {"$ref": "#/definitions/taskmesdk.HealthResponse"}}}}},

        "/api/v1/auth/register": {"post": {"tags": ["Auth"], "summary": "Register", "consumes": ["application/json"], "produces": ["application/json"],
            "parameters": [{"in": "body", "name": "request", "required": true, "schema": {"$ref": "#/definitions/taskmesdk.RegisterRequest"}}],
            "responses": {
                "201": {"description": "Created", "schema": {"$ref": "#/definitions/taskmesdk.MessageResponse"}},
                "400": {"description": "Weak password or invalid field", "schema": {"$ref": "#/definitions/taskmesdk.ErrorResponse"}},
                "409": {"description": "Username or email already in use", "schema": {"$ref": "#/definitions/taskmesdk.ErrorResponse"}}}}},
        "/api/v1/auth/verify-email": {"get": {"tags": ["Auth"], "summary": "Verify email",
            "parameters": [{"type": "string", "in": "query", "name": "token", "required": true}],
            "responses": {"303": {"description": "Redirect to FRONTEND_URL/login?verified=..."}}}},
        "/api/v1/auth/resend-verification": {"post": {"tags": ["Auth"], "summary": "Resend verification", "consumes": ["application/json"], "produces": ["application/json"],
            "parameters": [{"in": "body", "name": "request", "required": true, "schema": {"$ref": "#/definitions/taskmesdk.ResendVerificationRequest"}}],
            "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/taskmesdk.MessageResponse"}}}}},
        "/api/v1/auth/login": {"post": {"tags": ["Auth"], "summary": "Login", "consumes": ["application/json"], "produces": ["application/json"],
            "parameters": [{"in": "body", "name": "request", "required": true, "schema": {"$ref": "#/definitions/taskmesdk.LoginRequest"}}],
            "responses": {
                "200": {"description": "OK", "schema": {"$ref": "#/definitions/taskmesdk.LoginResponse"}},
                "401": {"description": "Invalid username or password", "schema": {"$ref": "#/definitions/taskmesdk.ErrorResponse"}},
                "403": {"description": "Email not verified", "schema": {"$ref": "#/definitions/taskmesdk.ErrorResponse"}}}}},
        "/api/v1/auth/me": {"get": {"security": [{"BearerAuth": []}], "tags": ["Auth"], "summary": "Current user", "produces": ["application/json"],
            "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/taskmesdk.UserProfile"}}}}},

        "/api/v1/tasks": {
            "get": {"security": [{"BearerAuth": []}], "tags": ["Tasks"], "summary": "List tasks", "produces": ["application/json"],
                "parameters": [
                    {"type": "string", "in": "query", "name": "status"},
                    {"type": "string", "in": "query", "name": "priority"},
                    {"type": "string", "in": "query", "name": "owner"},
                    {"type": "string", "in": "query", "name": "search"},
                    {"type": "string", "in": "query", "name": "sort_by"},
                    {"type": "string", "in": "query", "name": "order"},
                    {"type": "integer", "in": "query", "name": "offset"},
                    {"type": "integer", "in": "query", "name": "limit"}],
                "responses": {"200": {"description": "OK", "schema": {"type": "array", "items": {"$ref": "#/definitions/taskmesdk.Task"}}}}},
            "post": {"security": [{"BearerAuth": []}], "tags": ["Tasks"], "summary": "Create task", "consumes": ["application/json"], "produces": ["application/json"],
                "parameters": [{"in": "body", "name": "request", "required": true, "schema": {"$ref": "#/definitions/taskmesdk.TaskCreate"}}],
                "responses": {"201": {"description": "Created", "schema": {"$ref": "#/definitions/taskmesdk.Task"}}}}},
        "/api/v1/tasks/bulk": {"post": {"security": [{"BearerAuth": []}], "tags": ["Tasks"], "summary": "Create tasks", "consumes": ["application/json"], "produces": ["application/json"],
            "parameters": [{"in": "body", "name": "request", "required": true, "schema": {"type": "array", "items": {"$ref": "#/definitions/taskmesdk.TaskCreate"}}}],
            "responses": {"201": {"description": "Created", "schema": {"type": "array", "items": {"$ref": "#/definitions/taskmesdk.Task"}}}}}},
        "/api/v1/tasks/bulk/delete": {"delete": {"security": [{"BearerAuth": []}], "tags": ["Tasks"], "summary": "Delete tasks", "consumes": ["application/json"], "produces": ["application/json"],
            "parameters": [{"in": "body", "name": "request", "required": true, "schema": {"type": "array", "items": {"type": "integer"}}}],
            "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/taskmesdk.DeleteResponse"}}}}},
        "/api/v1/tasks/all": {"delete": {"security": [{"BearerAuth": []}], "tags": ["Tasks"], "summary": "Delete all tasks", "produces": ["application/json"],
            "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/taskmesdk.DeleteResponse"}}}}},
        "/api/v1/tasks/{id}": {
            "get": {"security": [{"BearerAuth": []}], "tags": ["Tasks"], "summary": "Get task", "produces": ["application/json"],
                "parameters": [{"type": "integer", "in": "path", "name": "id", "required": true}],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/taskmesdk.Task"}},
                    "404": {"description": "Task not found", "schema": {"$ref": "#/definitions/taskmesdk.ErrorResponse"}}}},
            "patch": {"security": [{"BearerAuth": []}], "tags": ["Tasks"], "summary": "Update task", "consumes": ["application/json"], "produces": ["application/json"],
                "parameters": [
                    {"type": "integer", "in": "path", "name": "id", "required": true},
                    {"in": "body", "name": "request", "required": true, "schema": {"$ref": "#/definitions/taskmesdk.TaskUpdate"}}],
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/taskmesdk.Task"}}}},
            "delete": {"security": [{"BearerAuth": []}], "tags": ["Tasks"], "summary": "Delete task", "produces": ["application/json"],
                "parameters": [{"type": "integer", "in": "path", "name": "id", "required": true}],
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/taskmesdk.OKResponse"}}}}},

        "/api/v1/columns": {
            "get": {"security": [{"BearerAuth": []}], "tags": ["Columns"], "summary": "List columns", "produces": ["application/json"],
                "responses": {"200": {"description": "OK", "schema": {"type": "array", "items": {"$ref": "#/definitions/taskmesdk.Column"}}}}},
            "post": {"security": [{"BearerAuth": []}], "tags": ["Columns"], "summary": "Create custom column", "consumes": ["application/json"], "produces": ["application/json"],
                "parameters": [{"in": "body", "name": "request", "required": true, "schema": {"$ref": "#/definitions/taskmesdk.ColumnCreate"}}],
                "responses": {"201": {"description": "Created", "schema": {"$ref": "#/definitions/taskmesdk.Column"}}}}},
        "/api/v1/columns/reorder": {"patch": {"security": [{"BearerAuth": []}], "tags": ["Columns"], "summary": "Reorder columns", "consumes": ["application/json"], "produces": ["application/json"],
            "parameters": [{"in": "body", "name": "request", "required": true, "schema": {"type": "array", "items": {"$ref": "#/definitions/taskmesdk.ColumnPosition"}}}],
            "responses": {"200": {"description": "OK", "schema": {"type": "array", "items": {"$ref": "#/definitions/taskmesdk.Column"}}}}}},
        "/api/v1/columns/{id}": {
            "patch": {"security": [{"BearerAuth": []}], "tags": ["Columns"], "summary": "Update column", "consumes": ["application/json"], "produces": ["application/json"],
                "parameters": [
                    {"type": "integer", "in": "path", "name": "id", "required": true},
                    {"in": "body", "name": "request", "required": true, "schema": {"$ref": "#/definitions/taskmesdk.ColumnUpdate"}}],
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/taskmesdk.Column"}}}},
            "delete": {"security": [{"BearerAuth": []}], "tags": ["Columns"], "summary": "Delete custom column", "produces": ["application/json"],
                "parameters": [{"type": "integer", "in": "path", "name": "id", "required": true}],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/taskmesdk.OKResponse"}},
                    "400": {"description": "Cannot delete core column", "schema": {"$ref": "#/definitions/taskmesdk.ErrorResponse"}}}}},

        "/api/v1/parse": {"post": {"security": [{"BearerAuth": []}], "tags": ["Parse"], "summary": "Parse text into tasks", "consumes": ["application/json"], "produces": ["application/json"],
            "parameters": [{"in": "body", "name": "request", "required": true, "schema": {"$ref": "#/definitions/taskmesdk.ParseRequest"}}],
            "responses": {
                "200": {"description": "OK", "schema": {"$ref": "#/definitions/taskmesdk.ParseResponse"}},
                "400": {"description": "Empty text or unknown provider", "schema": {"$ref": "#/definitions/taskmesdk.ErrorResponse"}},
                "500": {"description": "Provider failure", "schema": {"$ref": "#/definitions/taskmesdk.ErrorResponse"}}}}},
        "/api/v1/export/excel": {"get": {"security": [{"BearerAuth": []}], "tags": ["Export"], "summary": "Export tasks to Excel",
            "produces": ["application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"],
            "parameters": [
                {"type": "string", "in": "query", "name": "ids"},
                {"type": "string", "in": "query", "name": "status"},
                {"type": "string", "in": "query", "name": "priority"},
                {"type": "string", "in": "query", "name": "owner"}],
            "responses": {"200": {"description": "OK", "schema": {"type": "file"}}}}},
        "/api/v1/share": {"post": {"security": [{"BearerAuth": []}], "tags": ["Share"], "summary": "Create share link", "consumes": ["application/json"], "produces": ["application/json"],
            "parameters": [{"in": "body", "name": "request", "required": true, "schema": {"$ref": "#/definitions/taskmesdk.ShareRequest"}}],
            "responses": {
                "201": {"description": "Created", "schema": {"$ref": "#/definitions/taskmesdk.ShareResponse"}},
                "403": {"description": "Some tasks do not belong to you", "schema": {"$ref": "#/definitions/taskmesdk.ErrorResponse"}}}}},
        "/api/v1/share/{token}": {"get": {"tags": ["Share"], "summary": "Read shared tasks", "produces": ["application/json"],
            "parameters": [{"type": "string", "in": "path", "name": "token", "required": true}],
            "responses": {
                "200": {"description": "OK", "schema": {"$ref": "#/definitions/taskmesdk.SharedTasksResponse"}},
                "404": {"description": "Share link not found", "schema": {"$ref": "#/definitions/taskmesdk.ErrorResponse"}},
                "410": {"description": "Share link has expired", "schema": {"$ref": "#/definitions/taskmesdk.ErrorResponse"}}}}},
        "/api/v1/email/notify": {"post": {"security": [{"BearerAuth": []}], "tags": ["Email"], "summary": "Send task notifications", "consumes": ["application/json"], "produces": ["application/json"],
            "parameters": [{"in": "body", "name": "request", "required": true, "schema": {"$ref": "#/definitions/taskmesdk.NotifyRequest"}}],
            "responses": {
                "200": {"description": "OK", "schema": {"$ref": "#/definitions/taskmesdk.NotifyResponse"}},
                "404": {"description": "No tasks found", "schema": {"$ref": "#/definitions/taskmesdk.ErrorResponse"}}}}},
        "/api/v1/events": {"get": {"security": [{"BearerAuth": []}], "tags": ["Events"], "summary": "Live task events",
            "parameters": [{"type": "string", "in": "query", "name": "access_token"}],
            "responses": {"101": {"description": "Switching Protocols"}}}}
    },
    "definitions": {
        "taskmesdk.ErrorResponse": {"type": "object", "properties": {"error": {"type": "string"}, "error_description": {"type": "string"}}},
        "taskmesdk.MessageResponse": {"type": "object", "properties": {"message": {"type": "string"}}},
        "taskmesdk.OKResponse": {"type": "object", "properties": {"ok": {"type": "boolean"}}},
        "taskmesdk.DeleteResponse": {"type": "object", "properties": {"ok": {"type": "boolean"}, "deleted": {"type": "integer"}}},
        "taskmesdk.HealthChecks": {"type": "object", "properties": {"database": {"type": "string"}}},
        "taskmesdk.HealthResponse": {"type": "object", "properties": {
            "status": {"type": "string"}, "uptime": {"type": "string"}, "version": {"type": "string"},
            "checks": {"$ref": "#/definitions/taskmesdk.HealthChecks"}}},
        "taskmesdk.RegisterRequest": {"type": "object", "properties": {"username": {"type": "string"}, "email": {"type": "string"}, "password": {"type": "string"}}},
        "taskmesdk.LoginRequest": {"type": "object", "properties": {"username": {"type": "string"}, "password": {"type": "string"}}},
        "taskmesdk.ResendVerificationRequest": {"type": "object", "properties": {"email": {"type": "string"}}},
        "taskmesdk.UserSummary": {"type": "object", "properties": {"id": {"type": "integer"}, "username": {"type": "string"}, "email": {"type": "string"}}},
        "taskmesdk.LoginResponse": {"type": "object", "properties": {
            "access_token": {"type": "string"}, "token_type": {"type": "string"}, "expires_in": {"type": "integer"},
            "user": {"$ref": "#/definitions/taskmesdk.UserSummary"}}},
        "taskmesdk.UserProfile": {"type": "object", "properties": {
            "id": {"type": "integer"}, "username": {"type": "string"}, "email": {"type": "string"},
            "email_verified": {"type": "boolean"}, "created_at": {"type": "string"}}},
        "taskmesdk.Task": {"type": "object", "properties": {
            "id": {"type": "integer"}, "task_name": {"type": "string"}, "description": {"type": "string"},
            "owner": {"type": "string"}, "email": {"type": "string"}, "start_date": {"type": "string"},
            "due_date": {"type": "string"}, "status": {"type": "string"}, "priority": {"type": "string"},
            "custom_fields": {"type": "string"}, "created_at": {"type": "string"}, "updated_at": {"type": "string"}}},
        "taskmesdk.TaskCreate": {"type": "object", "properties": {
            "task_name": {"type": "string"}, "description": {"type": "string"}, "owner": {"type": "string"},
            "email": {"type": "string"}, "start_date": {"type": "string"}, "due_date": {"type": "string"},
            "status": {"type": "string"}, "priority": {"type": "string"}, "custom_fields": {"type": "object"}}},
        "taskmesdk.TaskUpdate": {"type": "object", "properties": {
            "task_name": {"type": "string"}, "description": {"type": "string"}, "owner": {"type": "string"},
            "email": {"type": "string"}, "start_date": {"type": "string"}, "due_date": {"type": "string"},
            "status": {"type": "string"}, "priority": {"type": "string"}, "custom_fields": {"type": "object"}}},
        "taskmesdk.Column": {"type": "object", "properties": {
            "id": {"type": "integer"}, "field_key": {"type": "string"}, "display_name": {"type": "string"},
            "field_type": {"type": "string"}, "position": {"type": "integer"}, "is_visible": {"type": "boolean"},
            "is_core": {"type": "boolean"}, "is_required": {"type": "boolean"}, "options": {"type": "string"}}},
        "taskmesdk.ColumnCreate": {"type": "object", "properties": {
            "display_name": {"type": "string"}, "field_type": {"type": "string"}, "options": {"type": "array", "items": {"type": "string"}}}},
        "taskmesdk.ColumnUpdate": {"type": "object", "properties": {
            "display_name": {"type": "string"}, "position": {"type": "integer"}, "is_visible": {"type": "boolean"},
            "options": {"type": "array", "items": {"type": "string"}}}},
        "taskmesdk.ColumnPosition": {"type": "object", "properties": {"id": {"type": "integer"}, "position": {"type": "integer"}}},
        "taskmesdk.ParseRequest": {"type": "object", "properties": {"text": {"type": "string"}, "provider": {"type": "string"}, "tone": {"type": "string"}}},
        "taskmesdk.ParsedTask": {"type": "object", "properties": {
            "task_name": {"type": "string"}, "description": {"type": "string"}, "owner": {"type": "string"},
            "email": {"type": "string"}, "start_date": {"type": "string"}, "due_date": {"type": "string"},
            "priority": {"type": "string"}, "custom_fields": {"type": "object"}}},
        "taskmesdk.ParseResponse": {"type": "object", "properties": {"tasks": {"type": "array", "items": {"$ref": "#/definitions/taskmesdk.ParsedTask"}}}},
        "taskmesdk.ShareRequest": {"type": "object", "properties": {"task_ids": {"type": "array", "items": {"type": "integer"}}}},
        "taskmesdk.ShareResponse": {"type": "object", "properties": {"token": {"type": "string"}, "url": {"type": "string"}, "expires_at": {"type": "string"}}},
        "taskmesdk.SharedTasksResponse": {"type": "object", "properties": {
            "tasks": {"type": "array", "items": {"$ref": "#/definitions/taskmesdk.Task"}}, "expires_at": {"type": "string"}}},
        "taskmesdk.NotifyRequest": {"type": "object", "properties": {"task_ids": {"type": "array", "items": {"type": "integer"}}, "message": {"type": "string"}}},
        "taskmesdk.NotifyError": {"type": "object", "properties": {"task_id": {"type": "integer"}, "error": {"type": "string"}}},
        "taskmesdk.NotifyResponse": {"type": "object", "properties": {
            "sent": {"type": "integer"}, "errors": {"type": "array", "items": {"$ref": "#/definitions/taskmesdk.NotifyError"}}}}
    },
    "securityDefinitions": {
        "BearerAuth": {
            "description": "JWT access token. Format: \"Bearer {token}\".",
            "type": "apiKey",
            "name": "Authorization",
            "in": "header"
        }
    }
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it
var SwaggerInfo = &swag.Spec{
	Version:          "0.1.0",
	Host:             "localhost:8000",
	BasePath:         "/",
	Schemes:          []string{"http", "https"},
	Title:            "TaskMe API",
	Description:      "Multi-user task tracker: tasks, configurable columns, natural-language task extraction,\nspreadsheet export, read-only share links and email notifications.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
