// Package docs registers the OpenAPI document served at /swagger/*any.
// Regenerate with `swag init -g cmd/main.go` after changing handler annotations.
package docs

import "github.com/swaggo/swag"

const docTemplate = `{
    "schemes": {{ marshal .Schemes }},
    "swagger": "2.0",
    "info": {
        "description": "{{escape .Description}}",
        "title": "{{.Title}}",
        "version": "{{.Version}}"
    },
    "host": "{{.Host}}",
    "basePath": "{{.BasePath}}",
    "securityDefinitions": {
        "BearerAuth": {"type": "apiKey", "name": "Authorization", "in": "header"}
    },
    "paths": {
        "/": {
            "get": {"tags": ["system"], "summary": "Root", "produces": ["text/plain"],
                "responses": {"200": {"description": "OK", "schema": {"type": "string"}}}}
        },
        "/health": {
            "get": {"tags": ["system"], "summary": "Health check", "produces": ["application/json"],
                "responses": {"200": {"description": "OK", "schema": {"type": "object", "additionalProperties": {"type": "string"}}}}}
        },
        "/signup": {
            "post": {"tags": ["auth"], "summary": "Register a new account",
                "consumes": ["application/json"], "produces": ["application/json"],
                "parameters": [{"name": "input", "in": "body", "required": true, "schema": {"$ref": "#/definitions/handlers.signUpRequest"}}],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/handlers.envelope"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/handlers.envelope"}},
                    "500": {"description": "Internal Server Error", "schema": {"$ref": "#/definitions/handlers.envelope"}}
                }}
        },
        "/login": {
            "post": {"tags": ["auth"], "summary": "Log in and obtain a session token",
                "consumes": ["application/json"], "produces": ["application/json"],
                "parameters": [{"name": "input", "in": "body", "required": true, "schema": {"$ref": "#/definitions/handlers.loginRequest"}}],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/handlers.loginResponse"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/handlers.envelope"}},
                    "401": {"description": "Unauthorized", "schema": {"$ref": "#/definitions/handlers.envelope"}}
                }}
        },
        "/userinfo": {
            "get": {"tags": ["auth"], "summary": "Current user's profile and balance",
                "security": [{"BearerAuth": []}], "produces": ["application/json"],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/handlers.userResponse"}},
                    "401": {"description": "Unauthorized", "schema": {"$ref": "#/definitions/handlers.envelope"}},
                    "403": {"description": "Forbidden", "schema": {"$ref": "#/definitions/handlers.envelope"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/handlers.envelope"}}
                }}
        },
        "/changepassword": {
            "post": {"tags": ["auth"], "summary": "Change the caller's password",
                "security": [{"BearerAuth": []}], "consumes": ["application/json"], "produces": ["application/json"],
                "parameters": [{"name": "input", "in": "body", "required": true, "schema": {"$ref": "#/definitions/handlers.changePasswordRequest"}}],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/handlers.envelope"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/handlers.envelope"}},
                    "401": {"description": "Unauthorized", "schema": {"$ref": "#/definitions/handlers.envelope"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/handlers.envelope"}}
                }}
        },
        "/api/stickers": {
            "get": {"tags": ["stickers"], "summary": "List all stickers", "produces": ["application/json"],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/handlers.stickersResponse"}},
                    "500": {"description": "Internal Server Error", "schema": {"$ref": "#/definitions/handlers.envelope"}}
                }}
        },
        "/api/user-stickers": {
            "get": {"tags": ["stickers"], "summary": "Stickers owned by the caller",
                "security": [{"BearerAuth": []}], "produces": ["application/json"],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/handlers.stickersResponse"}},
                    "401": {"description": "Unauthorized", "schema": {"$ref": "#/definitions/handlers.envelope"}},
                    "403": {"description": "Forbidden", "schema": {"$ref": "#/definitions/handlers.envelope"}}
                }}
        },
        "/api/upload-sticker": {
            "post": {"tags": ["stickers"], "summary": "Upload a sticker",
                "security": [{"BearerAuth": []}], "consumes": ["multipart/form-data"], "produces": ["application/json"],
                "parameters": [
                    {"type": "string", "description": "sticker name", "name": "name", "in": "formData", "required": true},
                    {"type": "integer", "description": "price in coins", "name": "price", "in": "formData", "required": true},
                    {"type": "file", "description": "sticker image", "name": "image", "in": "formData", "required": true}
                ],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/handlers.uploadResponse"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/handlers.envelope"}},
                    "401": {"description": "Unauthorized", "schema": {"$ref": "#/definitions/handlers.envelope"}},
                    "403": {"description": "Forbidden", "schema": {"$ref": "#/definitions/handlers.envelope"}}
                }}
        },
        "/api/purchase-sticker": {
            "post": {"tags": ["stickers"], "summary": "Buy a sticker with coins",
                "security": [{"BearerAuth": []}], "consumes": ["application/json"], "produces": ["application/json"],
                "parameters": [{"name": "input", "in": "body", "required": true, "schema": {"$ref": "#/definitions/handlers.purchaseRequest"}}],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/handlers.envelope"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/handlers.envelope"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/handlers.envelope"}}
                }}
        },
        "/ws/wallet": {
            "get": {"tags": ["stream"], "summary": "Stream the caller's wallet over a websocket",
                "security": [{"BearerAuth": []}],
                "parameters": [
                    {"type": "string", "description": "push interval, e.g. 2s", "name": "interval", "in": "query"},
                    {"type": "integer", "description": "push interval in milliseconds", "name": "interval_ms", "in": "query"}
                ],
                "responses": {
                    "101": {"description": "Switching Protocols"},
                    "401": {"description": "Unauthorized", "schema": {"$ref": "#/definitions/handlers.envelope"}},
                    "403": {"description": "Forbidden", "schema": {"$ref": "#/definitions/handlers.envelope"}}
                }}
        }
    },
    "definitions": {
        "handlers.envelope": {"type": "object", "properties": {
            "isSuccess": {"type": "boolean"}, "message": {"type": "string"}}},
        "handlers.signUpRequest": {"type": "object", "properties": {
            "name": {"type": "string"}, "userId": {"type": "string"}, "password": {"type": "string"}}},
        "handlers.loginRequest": {"type": "object", "properties": {
            "userId": {"type": "string"}, "password": {"type": "string"}}},
        "handlers.changePasswordRequest": {"type": "object", "properties": {
            "currentPassword": {"type": "string"}, "newPassword": {"type": "string"}}},
        "handlers.purchaseRequest": {"type": "object", "properties": {
            "stickerId": {"type": "integer"}}},
        "handlers.loginResponse": {"type": "object", "properties": {
            "isSuccess": {"type": "boolean"}, "token": {"type": "string"},
            "user": {"$ref": "#/definitions/models.UserSummary"}}},
        "handlers.userResponse": {"type": "object", "properties": {
            "isSuccess": {"type": "boolean"}, "user": {"$ref": "#/definitions/models.UserSummary"}}},
        "handlers.uploadResponse": {"type": "object", "properties": {
            "isSuccess": {"type": "boolean"}, "stickerId": {"type": "integer"}}},
        "handlers.stickersResponse": {"type": "object", "properties": {
            "isSuccess": {"type": "boolean"},
            "stickers": {"type": "array", "items": {"$ref": "#/definitions/models.Sticker"}}}},
        "models.UserSummary": {"type": "object", "properties": {
            "id": {"type": "integer"}, "name": {"type": "string"},
            "userId": {"type": "string"}, "coins": {"type": "integer"}}},
        "models.Sticker": {"type": "object", "properties": {
            "id": {"type": "integer"}, "name": {"type": "string"}, "image": {"type": "string"},
            "user_id": {"type": "string"}, "price": {"type": "integer"}}}
    }
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it
var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "",
	BasePath:         "/",
	Schemes:          []string{},
	Title:            "Sticker Market API",
	Description:      "Sticker upload, listing and purchase with an in-account coin balance.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
