package swagger

import "github.com/swaggo/swag"

const docTemplate = `{
    "swagger": "2.0",
    "info": {
        "title": "Timesheet API",
        "description": "Timesheet, leave and task tracking service",
        "version": "1.0.0"
    },
    "basePath": "/",
    "schemes": [
        "http"
    ],
    "tags": [
        {"name": "Auth", "description": "Login and token lifecycle"},
        {"name": "Timesheets", "description": "Timesheet entry workflows"},
        {"name": "Leave", "description": "Leave applications and approvals"},
        {"name": "Tasks", "description": "Epics, tasks and templates"},
        {"name": "Tickets", "description": "Support ticket catalog"},
        {"name": "Activities", "description": "Activity catalog"},
        {"name": "Dashboards", "description": "Aggregated reporting"},
        {"name": "Attachments", "description": "Signed file downloads"}
    ],
    "paths": {
        "/health": {
            "get": {
                "summary": "Health check",
                "responses": {
                    "200": {"description": "OK"}
                }
            }
        },
        "/ready": {
            "get": {
                "summary": "Readiness check",
                "responses": {
                    "200": {"description": "Ready"},
                    "503": {"description": "Database unavailable"}
                }
            }
        },
        "/auth/login": {
            "post": {
                "tags": ["Auth"],
                "summary": "Authenticate with email and password",
                "parameters": [
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/LoginRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/Envelope"}},
                    "401": {"description": "Invalid credentials", "schema": {"$ref": "#/definitions/Envelope"}}
                }
            }
        },
        "/auth/refresh": {
            "post": {
                "tags": ["Auth"],
                "summary": "Rotate a refresh token",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/Envelope"}},
                    "401": {"description": "Expired or revoked token", "schema": {"$ref": "#/definitions/Envelope"}}
                }
            }
        },
        "/auth/logout": {
            "post": {
                "tags": ["Auth"],
                "summary": "Revoke the presented refresh token",
                "responses": {
                    "204": {"description": "No Content"}
                }
            }
        },
        "/auth/me": {
            "get": {
                "tags": ["Auth"],
                "summary": "Current user profile from the access token",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/Envelope"}}
                }
            }
        },
        "/api/v1/timesheet/get_timesheet_entries": {
            "get": {
                "tags": ["Timesheets"],
                "summary": "List timesheet entries",
                "parameters": [
                    {"name": "from_date", "in": "query", "type": "string"},
                    {"name": "to_date", "in": "query", "type": "string"},
                    {"name": "approval_status", "in": "query", "type": "string"},
                    {"name": "user_code", "in": "query", "type": "string"},
                    {"name": "limit", "in": "query", "type": "integer"},
                    {"name": "offset", "in": "query", "type": "integer"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/Envelope"}}
                }
            }
        },
        "/api/v1/timesheet/get_timesheet_entry/{entry_id}": {
            "get": {
                "tags": ["Timesheets"],
                "summary": "Get one timesheet entry",
                "parameters": [
                    {"name": "entry_id", "in": "path", "required": true, "type": "string"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/Envelope"}},
                    "404": {"description": "Not found", "schema": {"$ref": "#/definitions/Envelope"}}
                }
            }
        },
        "/api/v1/timesheet/enter_timesheet": {
            "post": {
                "tags": ["Timesheets"],
                "summary": "Create or update a draft entry, optionally submitting it",
                "consumes": ["multipart/form-data"],
                "parameters": [
                    {"name": "entry_date", "in": "formData", "required": true, "type": "string"},
                    {"name": "hours_worked", "in": "formData", "required": true, "type": "number"},
                    {"name": "description", "in": "formData", "required": true, "type": "string"},
                    {"name": "task_code", "in": "formData", "type": "string"},
                    {"name": "ticket_code", "in": "formData", "type": "string"},
                    {"name": "activity_code", "in": "formData", "type": "string"},
                    {"name": "submit_flag", "in": "formData", "type": "boolean"},
                    {"name": "attachments", "in": "formData", "type": "file"}
                ],
                "responses": {
                    "200": {"description": "Updated", "schema": {"$ref": "#/definitions/Envelope"}},
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/Envelope"}}
                }
            }
        },
        "/api/v1/timesheet/submit_timesheet": {
            "post": {
                "tags": ["Timesheets"],
                "summary": "Submit draft entries for approval",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/Envelope"}},
                    "409": {"description": "Entry not submittable", "schema": {"$ref": "#/definitions/Envelope"}}
                }
            }
        },
        "/api/v1/timesheet/approve_timesheet": {
            "post": {
                "tags": ["Timesheets"],
                "summary": "Approve or reject a submitted entry",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/Envelope"}},
                    "403": {"description": "Not an approver", "schema": {"$ref": "#/definitions/Envelope"}},
                    "409": {"description": "Already finalized", "schema": {"$ref": "#/definitions/Envelope"}}
                }
            }
        },
        "/api/v1/timesheet/get_leave_applications": {
            "get": {
                "tags": ["Leave"],
                "summary": "List leave applications",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/Envelope"}}
                }
            }
        },
        "/api/v1/timesheet/apply_leave": {
            "post": {
                "tags": ["Leave"],
                "summary": "Apply for leave",
                "consumes": ["multipart/form-data"],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/Envelope"}},
                    "409": {"description": "Overlapping application", "schema": {"$ref": "#/definitions/Envelope"}}
                }
            }
        },
        "/api/v1/timesheet/approve_leave": {
            "post": {
                "tags": ["Leave"],
                "summary": "Approve or reject a leave application",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/Envelope"}}
                }
            }
        },
        "/api/v1/timesheet/get_epics": {
            "get": {
                "tags": ["Tasks"],
                "summary": "List epics",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/Envelope"}}
                }
            }
        },
        "/api/v1/timesheet/get_epics/{epic_id}": {
            "get": {
                "tags": ["Tasks"],
                "summary": "Get one epic",
                "parameters": [
                    {"name": "epic_id", "in": "path", "required": true, "type": "string"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/Envelope"}}
                }
            }
        },
        "/api/v1/timesheet/get_tasks": {
            "get": {
                "tags": ["Tasks"],
                "summary": "List tasks",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/Envelope"}}
                }
            }
        },
        "/api/v1/timesheet/get_tasks/available": {
            "get": {
                "tags": ["Tasks"],
                "summary": "List unassigned open tasks for the caller's team",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/Envelope"}}
                }
            }
        },
        "/api/v1/timesheet/get_task/{task_id}": {
            "get": {
                "tags": ["Tasks"],
                "summary": "Get one task",
                "parameters": [
                    {"name": "task_id", "in": "path", "required": true, "type": "string"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/Envelope"}}
                }
            }
        },
        "/api/v1/timesheet/get_subtask/{subtask_id}": {
            "get": {
                "tags": ["Tasks"],
                "summary": "Get one subtask",
                "parameters": [
                    {"name": "subtask_id", "in": "path", "required": true, "type": "string"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/Envelope"}}
                }
            }
        },
        "/api/v1/timesheet/create_task": {
            "post": {
                "tags": ["Tasks"],
                "summary": "Create a task, optionally from a predefined template",
                "parameters": [
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/CreateTaskRequest"}}
                ],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/Envelope"}}
                }
            }
        },
        "/api/v1/timesheet/assign_task_to_self/{task_id}": {
            "post": {
                "tags": ["Tasks"],
                "summary": "Claim an unassigned task",
                "parameters": [
                    {"name": "task_id", "in": "path", "required": true, "type": "string"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/Envelope"}},
                    "409": {"description": "Already claimed", "schema": {"$ref": "#/definitions/Envelope"}}
                }
            }
        },
        "/api/v1/timesheet/delete_task/{epic_id}/{task_id}": {
            "delete": {
                "tags": ["Tasks"],
                "summary": "Delete a task without timesheet references",
                "parameters": [
                    {"name": "epic_id", "in": "path", "required": true, "type": "string"},
                    {"name": "task_id", "in": "path", "required": true, "type": "string"}
                ],
                "responses": {
                    "204": {"description": "No Content"},
                    "409": {"description": "Task is referenced", "schema": {"$ref": "#/definitions/Envelope"}}
                }
            }
        },
        "/api/v1/timesheet/get_predefined_epics": {
            "get": {
                "tags": ["Tasks"],
                "summary": "List predefined task templates",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/Envelope"}}
                }
            }
        },
        "/api/v1/timesheet/get_tickets": {
            "get": {
                "tags": ["Tickets"],
                "summary": "List tickets",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/Envelope"}}
                }
            }
        },
        "/api/v1/timesheet/get_ticket/{ticket_code}": {
            "get": {
                "tags": ["Tickets"],
                "summary": "Get one ticket",
                "parameters": [
                    {"name": "ticket_code", "in": "path", "required": true, "type": "string"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/Envelope"}}
                }
            }
        },
        "/api/v1/timesheet/get_activity": {
            "get": {
                "tags": ["Activities"],
                "summary": "List active activities",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/Envelope"}}
                }
            }
        },
        "/api/v1/timesheet/get_outdoor_activities": {
            "get": {
                "tags": ["Activities"],
                "summary": "List outdoor activities",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/Envelope"}}
                }
            }
        },
        "/api/v1/timesheet/get_dashboard_data": {
            "get": {
                "tags": ["Dashboards"],
                "summary": "Personal dashboard",
                "parameters": [
                    {"name": "from_date", "in": "query", "type": "string"},
                    {"name": "to_date", "in": "query", "type": "string"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/Envelope"}}
                }
            }
        },
        "/api/v1/timesheet/get_team_dashboard_data": {
            "get": {
                "tags": ["Dashboards"],
                "summary": "Team dashboard for approvers",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/Envelope"}},
                    "403": {"description": "Not an approver", "schema": {"$ref": "#/definitions/Envelope"}}
                }
            }
        },
        "/api/v1/timesheet/get_super_admin_dashboard_data": {
            "get": {
                "tags": ["Dashboards"],
                "summary": "Organization-wide dashboard",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/Envelope"}},
                    "403": {"description": "Superadmin only", "schema": {"$ref": "#/definitions/Envelope"}}
                }
            }
        },
        "/api/v1/timesheet/attachments/{token}": {
            "get": {
                "tags": ["Attachments"],
                "summary": "Download an attachment by signed token",
                "produces": ["application/octet-stream"],
                "parameters": [
                    {"name": "token", "in": "path", "required": true, "type": "string"}
                ],
                "responses": {
                    "200": {"description": "File stream"},
                    "401": {"description": "Invalid or expired token", "schema": {"$ref": "#/definitions/Envelope"}}
                }
            }
        }
    },
    "definitions": {
        "LoginRequest": {
            "type": "object",
            "properties": {
                "email": {"type": "string"},
                "password": {"type": "string"}
            }
        },
        "CreateTaskRequest": {
            "type": "object",
            "properties": {
                "epic_code": {"type": "string"},
                "template_id": {"type": "string"},
                "title": {"type": "string"},
                "description": {"type": "string"},
                "estimated_hours": {"type": "number"},
                "start_date": {"type": "string"},
                "priority": {"type": "string"}
            }
        },
        "Meta": {
            "type": "object",
            "properties": {
                "total_count": {"type": "integer"},
                "limit": {"type": "integer"},
                "offset": {"type": "integer"},
                "has_more": {"type": "boolean"},
                "processing_time_ms": {"type": "integer"}
            }
        },
        "Envelope": {
            "type": "object",
            "properties": {
                "success_flag": {"type": "boolean"},
                "status_code": {"type": "integer"},
                "status_message": {"type": "string"},
                "data": {"type": "object"},
                "error_code": {"type": "string"},
                "meta": {"$ref": "#/definitions/Meta"}
            }
        }
    }
}`

type swaggerDoc struct{}

// ReadDoc returns the Swagger document.
func (s *swaggerDoc) ReadDoc() string {
	return docTemplate
}

func init() {
	swag.Register(swag.Name, &swaggerDoc{})
}
