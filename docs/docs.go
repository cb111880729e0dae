// Package docs registers the OpenAPI description of the risk profile API with swag.
// Regenerate with `swag init` after changing handler annotations.
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
    "paths": {
        "/analysis/risk": {
            "post": {"tags": ["analysis"], "summary": "Compute portfolio risk metrics", "consumes": ["application/json"], "produces": ["application/json"], "responses": {"200": {"description": "OK"}, "400": {"description": "Bad Request"}}}
        },
        "/analysis/concentration": {
            "post": {"tags": ["analysis"], "summary": "Analyze portfolio concentration", "consumes": ["application/json"], "produces": ["application/json"], "responses": {"200": {"description": "OK"}, "400": {"description": "Bad Request"}}}
        },
        "/analysis/holdings/csv": {
            "post": {"tags": ["analysis"], "summary": "Parse a holdings CSV into a portfolio snapshot", "consumes": ["multipart/form-data"], "produces": ["application/json"], "responses": {"200": {"description": "OK"}, "400": {"description": "Bad Request"}}}
        },
        "/scenarios": {
            "get": {"tags": ["analysis"], "summary": "List stress scenarios", "produces": ["application/json"], "responses": {"200": {"description": "OK"}}}
        },
        "/investors/{investor_id}": {
            "get": {"tags": ["investors"], "summary": "Get an investor", "produces": ["application/json"], "parameters": [{"type": "string", "name": "investor_id", "in": "path", "required": true}], "responses": {"200": {"description": "OK"}, "404": {"description": "Not Found"}}},
            "put": {"tags": ["investors"], "summary": "Create or update an investor", "consumes": ["application/json"], "produces": ["application/json"], "parameters": [{"type": "string", "name": "investor_id", "in": "path", "required": true}], "responses": {"200": {"description": "OK"}, "400": {"description": "Bad Request"}}}
        },
        "/investors/{investor_id}/assessments": {
            "post": {"tags": ["investors"], "summary": "Submit a risk questionnaire", "consumes": ["application/json"], "produces": ["application/json"], "parameters": [{"type": "string", "name": "investor_id", "in": "path", "required": true}], "responses": {"201": {"description": "Created"}, "400": {"description": "Bad Request"}, "404": {"description": "Not Found"}}}
        },
        "/investors/{investor_id}/profile": {
            "get": {"tags": ["investors"], "summary": "Get the active risk profile", "produces": ["application/json"], "parameters": [{"type": "string", "name": "investor_id", "in": "path", "required": true}], "responses": {"200": {"description": "OK"}, "404": {"description": "Not Found"}}}
        },
        "/investors/{investor_id}/profiles": {
            "get": {"tags": ["investors"], "summary": "List risk profile history", "produces": ["application/json"], "parameters": [{"type": "string", "name": "investor_id", "in": "path", "required": true}], "responses": {"200": {"description": "OK"}, "404": {"description": "Not Found"}}}
        },
        "/investors/{investor_id}/suitability": {
            "post": {"tags": ["analysis"], "summary": "Evaluate portfolio suitability", "consumes": ["application/json"], "produces": ["application/json"], "parameters": [{"type": "string", "name": "investor_id", "in": "path", "required": true}], "responses": {"200": {"description": "OK"}, "400": {"description": "Bad Request"}, "404": {"description": "Not Found"}}}
        },
        "/investors/{investor_id}/stress-tests": {
            "post": {"tags": ["analysis"], "summary": "Run stress scenarios", "consumes": ["application/json"], "produces": ["application/json"], "parameters": [{"type": "string", "name": "investor_id", "in": "path", "required": true}], "responses": {"200": {"description": "OK"}, "400": {"description": "Bad Request"}, "404": {"description": "Not Found"}}}
        },
        "/investors/{investor_id}/recommendations": {
            "post": {"tags": ["analysis"], "summary": "Generate recommendations", "consumes": ["application/json"], "produces": ["application/json"], "parameters": [{"type": "string", "name": "investor_id", "in": "path", "required": true}], "responses": {"201": {"description": "Created"}, "400": {"description": "Bad Request"}, "404": {"description": "Not Found"}}}
        },
        "/investors/{investor_id}/recommendations/latest": {
            "get": {"tags": ["analysis"], "summary": "Get the latest recommendation bundle", "produces": ["application/json"], "parameters": [{"type": "string", "name": "investor_id", "in": "path", "required": true}], "responses": {"200": {"description": "OK"}, "404": {"description": "Not Found"}}}
        }
    }
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it
var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "",
	BasePath:         "/",
	Schemes:          []string{},
	Title:            "Risk Profile API",
	Description:      "Risk assessment scoring, portfolio risk, concentration, suitability, stress testing and recommendations.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
