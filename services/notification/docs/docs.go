// Package docs holds the Swagger spec of the notification API.
package docs

import "github.com/swaggo/swag"

const docTemplate = `{
    "schemes": {{ marshal .Schemes }},
    "swagger": "2.0",
    "info": {
        "description": "{{escape .Description}}",
        "title": "{{.Title}}",
        "contact": {},
        "version": "{{.Version}}"
    },
    "host": "{{.Host}}",
    "basePath": "{{.BasePath}}",
    "paths": {
        "/notifications": {
            "get": {
                "security": [{"BearerAuth": []}],
                "description": "Notifications of the authenticated user, newest first",
                "produces": ["application/json"],
                "tags": ["notifications"],
                "summary": "Get user notifications",
                "parameters": [
                    {"type": "boolean", "description": "Only seen (true) or unseen (false) notifications", "name": "seen", "in": "query"},
                    {"type": "integer", "description": "Number of notifications to return (max 100)", "name": "limit", "in": "query"},
                    {"type": "integer", "description": "Offset for pagination", "name": "offset", "in": "query"}
                ],
                "responses": {"200": {"description": "OK"}, "400": {"description": "Bad Request"}, "401": {"description": "Unauthorized"}}
            }
        },
        "/notifications/unseen-count": {
            "get": {
                "security": [{"BearerAuth": []}],
                "produces": ["application/json"],
                "tags": ["notifications"],
                "summary": "Count unseen notifications",
                "responses": {"200": {"description": "OK"}, "401": {"description": "Unauthorized"}}
            }
        },
        "/notifications/seen": {
            "post": {
                "security": [{"BearerAuth": []}],
                "produces": ["application/json"],
                "tags": ["notifications"],
                "summary": "Mark every notification as seen",
                "responses": {"200": {"description": "OK"}, "401": {"description": "Unauthorized"}}
            }
        },
        "/notifications/{id}/seen": {
            "post": {
                "security": [{"BearerAuth": []}],
                "produces": ["application/json"],
                "tags": ["notifications"],
                "summary": "Mark a notification as seen",
                "parameters": [{"type": "string", "description": "Notification ID", "name": "id", "in": "path", "required": true}],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/entity.Notification"}},
                    "401": {"description": "Unauthorized"},
                    "404": {"description": "Not Found"}
                }
            }
        },
        "/notifications/ws": {
            "get": {
                "description": "Upgrades to a WebSocket that receives every new notification as JSON",
                "tags": ["notifications"],
                "summary": "Live notification stream",
                "parameters": [{"type": "string", "description": "JWT access token", "name": "token", "in": "query", "required": true}],
                "responses": {"101": {"description": "Switching Protocols"}, "401": {"description": "Unauthorized"}}
            }
        }
    },
    "definitions": {
        "entity.Notification": {
            "type": "object",
            "properties": {
                "date": {"type": "string"},
                "id": {"type": "string"},
                "post": {"type": "string"},
                "seen": {"type": "boolean"},
                "type": {"type": "string", "enum": ["Like", "Comment", "Bookmark"]},
                "user": {"type": "string"}
            }
        }
    },
    "securityDefinitions": {
        "BearerAuth": {
            "description": "Type \"Bearer\" followed by a space and JWT token.",
            "type": "apiKey",
            "name": "Authorization",
            "in": "header"
        }
    }
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it
var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "localhost:8006",
	BasePath:         "/api/v1",
	Schemes:          []string{},
	Title:            "Notification API",
	Description:      "Like, comment and bookmark notifications for post authors.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
