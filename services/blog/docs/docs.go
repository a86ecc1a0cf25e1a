// Package docs holds the Swagger spec of the blog API.
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
        "/auth/login": {
            "post": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["auth"],
                "summary": "Login user",
                "parameters": [{"in": "body", "name": "request", "required": true, "schema": {"$ref": "#/definitions/http.LoginRequest"}}],
                "responses": {"200": {"description": "OK"}, "400": {"description": "Bad Request"}, "401": {"description": "Unauthorized"}}
            }
        },
        "/users": {
            "post": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["users"],
                "summary": "Register a new user",
                "parameters": [{"in": "body", "name": "request", "required": true, "schema": {"$ref": "#/definitions/http.RegisterRequest"}}],
                "responses": {"201": {"description": "Created"}, "400": {"description": "Bad Request"}, "409": {"description": "Conflict"}}
            }
        },
        "/users/{id}": {
            "get": {
                "produces": ["application/json"],
                "tags": ["users"],
                "summary": "Get user by ID",
                "parameters": [{"type": "string", "name": "id", "in": "path", "required": true}],
                "responses": {"200": {"description": "OK"}, "404": {"description": "Not Found"}}
            }
        },
        "/users/{id}/profile": {
            "get": {
                "produces": ["application/json"],
                "tags": ["profiles"],
                "summary": "Get a user's profile",
                "parameters": [{"type": "string", "name": "id", "in": "path", "required": true}],
                "responses": {"200": {"description": "OK"}, "404": {"description": "Not Found"}}
            }
        },
        "/categories": {
            "get": {
                "produces": ["application/json"],
                "tags": ["categories"],
                "summary": "List categories",
                "parameters": [{"type": "integer", "name": "depth", "in": "query"}],
                "responses": {"200": {"description": "OK"}, "404": {"description": "Empty array when there are no categories"}}
            },
            "post": {
                "produces": ["application/json"],
                "tags": ["categories"],
                "summary": "Create category",
                "security": [{"BearerAuth": []}],
                "responses": {"501": {"description": "Not Implemented"}}
            }
        },
        "/categories/{id}": {
            "get": {
                "produces": ["application/json"],
                "tags": ["categories"],
                "summary": "Get category",
                "parameters": [{"type": "string", "name": "id", "in": "path", "required": true}, {"type": "integer", "name": "depth", "in": "query"}],
                "responses": {"200": {"description": "OK"}, "404": {"description": "Not Found"}}
            },
            "put": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["categories"],
                "summary": "Replace category",
                "security": [{"BearerAuth": []}],
                "parameters": [{"type": "string", "name": "id", "in": "path", "required": true}, {"in": "body", "name": "request", "required": true, "schema": {"$ref": "#/definitions/http.CategoryRequest"}}],
                "responses": {"200": {"description": "OK"}, "400": {"description": "Bad Request"}, "404": {"description": "Not Found"}, "409": {"description": "Conflict"}}
            },
            "patch": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["categories"],
                "summary": "Update category fields",
                "security": [{"BearerAuth": []}],
                "parameters": [{"type": "string", "name": "id", "in": "path", "required": true}, {"in": "body", "name": "request", "required": true, "schema": {"$ref": "#/definitions/http.CategoryRequest"}}],
                "responses": {"200": {"description": "OK"}, "400": {"description": "Bad Request"}, "404": {"description": "Not Found"}, "409": {"description": "Conflict"}}
            },
            "delete": {
                "tags": ["categories"],
                "summary": "Delete category",
                "security": [{"BearerAuth": []}],
                "parameters": [{"type": "string", "name": "id", "in": "path", "required": true}],
                "responses": {"204": {"description": "No Content"}, "404": {"description": "Not Found"}}
            }
        },
        "/categories/slug/{slug}": {
            "get": {
                "produces": ["application/json"],
                "tags": ["categories"],
                "summary": "Get category by slug",
                "parameters": [{"type": "string", "name": "slug", "in": "path", "required": true}, {"type": "integer", "name": "depth", "in": "query"}],
                "responses": {"200": {"description": "OK"}, "404": {"description": "Not Found"}}
            }
        },
        "/posts": {
            "get": {
                "produces": ["application/json"],
                "tags": ["posts"],
                "summary": "List posts",
                "parameters": [
                    {"type": "string", "name": "category", "in": "query"},
                    {"enum": ["Active", "Draft", "Disabled"], "type": "string", "name": "status", "in": "query"},
                    {"type": "string", "name": "user", "in": "query"},
                    {"type": "integer", "name": "limit", "in": "query"},
                    {"type": "integer", "name": "offset", "in": "query"}
                ],
                "responses": {"200": {"description": "OK"}, "400": {"description": "Bad Request"}}
            },
            "post": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["posts"],
                "summary": "Create a new post",
                "security": [{"BearerAuth": []}],
                "parameters": [{"in": "body", "name": "request", "required": true, "schema": {"$ref": "#/definitions/http.PostRequest"}}],
                "responses": {"201": {"description": "Created"}, "400": {"description": "Bad Request"}, "401": {"description": "Unauthorized"}}
            }
        },
        "/posts/{id}/comments": {
            "get": {
                "produces": ["application/json"],
                "tags": ["comments"],
                "summary": "Comment tree of a post",
                "parameters": [{"type": "string", "name": "id", "in": "path", "required": true}],
                "responses": {"200": {"description": "OK"}, "404": {"description": "Not Found"}}
            },
            "post": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["comments"],
                "summary": "Comment on a post",
                "parameters": [{"type": "string", "name": "id", "in": "path", "required": true}, {"in": "body", "name": "request", "required": true, "schema": {"$ref": "#/definitions/http.CommentRequest"}}],
                "responses": {"201": {"description": "Created"}, "400": {"description": "Bad Request"}, "404": {"description": "Not Found"}}
            }
        }
    },
    "definitions": {
        "http.CategoryRequest": {
            "type": "object",
            "properties": {"image": {"type": "string"}, "slug": {"type": "string"}, "title": {"type": "string"}}
        },
        "http.CommentRequest": {
            "type": "object",
            "required": ["comment", "email", "name"],
            "properties": {"comment": {"type": "string"}, "email": {"type": "string"}, "name": {"type": "string"}, "parent": {"type": "string"}}
        },
        "http.LoginRequest": {
            "type": "object",
            "required": ["email", "password"],
            "properties": {"email": {"type": "string"}, "password": {"type": "string"}}
        },
        "http.PostRequest": {
            "type": "object",
            "properties": {
                "category": {"type": "string"},
                "description": {"type": "string"},
                "image": {"type": "string"},
                "status": {"type": "string", "enum": ["Active", "Draft", "Disabled"]},
                "tags": {"type": "string"},
                "title": {"type": "string"}
            }
        },
        "http.RegisterRequest": {
            "type": "object",
            "required": ["email", "password"],
            "properties": {"email": {"type": "string"}, "full_name": {"type": "string"}, "password": {"type": "string", "minLength": 8}, "username": {"type": "string"}}
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
	Host:             "localhost:8080",
	BasePath:         "/api/v1",
	Schemes:          []string{},
	Title:            "Blog API",
	Description:      "Users, profiles, categories, posts, comments and bookmarks.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
