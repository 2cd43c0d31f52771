// Package docs registers the OpenAPI document served under /swagger.
package docs

import "github.com/swaggo/swag"

const docTemplate = `{
    "schemes": {{ marshal .Schemes }},
    "swagger": "2.0",
    "info": {
        "description": "{{escape .Description}}",
        "title": "{{.Title}}",
        "contact": {},
        "license": {
            "name": "MIT",
            "url": "http://opensource.org/licenses/MIT"
        },
        "version": "{{.Version}}"
    },
    "host": "{{.Host}}",
    "basePath": "{{.BasePath}}",
    "paths": {
        "/health": {
            "get": {
                "produces": ["application/json"],
                "tags": ["health"],
                "summary": "Health Check",
                "responses": {"200": {"description": "OK"}}
            }
        },
        "/auth/register": {
            "post": {"tags": ["auth"], "summary": "Register a profile", "responses": {"201": {"description": "Created"}}}
        },
        "/auth/login": {
            "post": {"tags": ["auth"], "summary": "Log in with nickname and PIN", "responses": {"200": {"description": "OK"}}}
        },
        "/competitors": {
            "get": {"tags": ["competitors"], "summary": "List competitors", "responses": {"200": {"description": "OK"}}}
        },
        "/league": {
            "get": {"security": [{"BearerAuth": []}], "tags": ["league"], "summary": "Get the league", "responses": {"200": {"description": "OK"}}},
            "post": {"security": [{"BearerAuth": []}], "tags": ["league"], "summary": "Start a league", "responses": {"201": {"description": "Created"}}}
        },
        "/tournament": {
            "get": {"security": [{"BearerAuth": []}], "tags": ["tournament"], "summary": "Get the tournament", "responses": {"200": {"description": "OK"}}},
            "post": {"security": [{"BearerAuth": []}], "tags": ["tournament"], "summary": "Start a tournament", "responses": {"201": {"description": "Created"}}}
        },
        "/matches": {
            "post": {"security": [{"BearerAuth": []}], "tags": ["matches"], "summary": "Start a match", "responses": {"201": {"description": "Created"}}}
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
	BasePath:         "/",
	Schemes:          []string{},
	Title:            "bab-arcade API",
	Description:      "Tabletop soccer arcade: quick matches, leagues and knockout tournaments.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
