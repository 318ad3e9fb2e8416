// Package docs registers the OpenAPI description served under /swagger.
package docs

import "github.com/swaggo/swag"

const docTemplate = `{
  "swagger": "2.0",
  "info": {
    "title": "{{.Title}}",
    "description": "{{escape .Description}}",
    "version": "{{.Version}}"
  },
  "basePath": "{{.BasePath}}",
  "securityDefinitions": {
    "BearerAuth": {"type": "apiKey", "name": "Authorization", "in": "header"}
  },
  "security": [{"BearerAuth": []}],
  "paths": {
    "/concepts": {"get": {"summary": "List explored concepts", "responses": {"200": {"description": "OK"}}}},
    "/concepts/generate": {"post": {"summary": "Resolve an explanation or quiz", "responses": {"200": {"description": "OK"}, "400": {"description": "Bad request"}, "503": {"description": "Generation not configured"}}}},
    "/concepts/favorite/toggle": {"post": {"summary": "Toggle a favorite", "responses": {"200": {"description": "OK"}}}},
    "/concepts/favorite": {"put": {"summary": "Set a favorite", "responses": {"200": {"description": "OK"}}}},
    "/concepts/quiz-attempts": {"post": {"summary": "Record a quiz answer", "responses": {"200": {"description": "OK"}}}},
    "/streaks": {
      "get": {"summary": "Streak history", "responses": {"200": {"description": "OK"}}},
      "post": {"summary": "Submit a streak", "responses": {"201": {"description": "Created"}}}
    },
    "/games": {"post": {"summary": "Submit a game generation job", "responses": {"202": {"description": "Accepted"}}}},
    "/job/{job_id}": {"get": {"summary": "Poll a generation job", "parameters": [{"name": "job_id", "in": "path", "required": true, "type": "string"}], "responses": {"200": {"description": "OK"}, "403": {"description": "Forbidden"}, "404": {"description": "Not found"}}}},
    "/story/node": {"post": {"summary": "Generate the next story node", "responses": {"200": {"description": "OK"}}}},
    "/profile": {"get": {"summary": "Caller profile", "responses": {"200": {"description": "OK"}}}},
    "/health": {"get": {"summary": "Liveness", "security": [], "responses": {"200": {"description": "OK"}}}}
  }
}`

var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	BasePath:         "/",
	Title:            "Tiny Tutor API",
	Description:      "Explanations, quizzes, streaks and generated mini-games.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
