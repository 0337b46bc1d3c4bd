package api

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
        "/health": {
            "get": {
                "tags": ["health"],
                "summary": "Health check",
                "produces": ["application/json"],
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/api.APIResponse"}}}
            }
        },
        "/stats": {
            "get": {
                "tags": ["health"],
                "summary": "Record counts per kind",
                "produces": ["application/json"],
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/api.APIResponse"}}}
            }
        },
        "/finances": {
            "get": {
                "tags": ["finances"],
                "summary": "List financial records",
                "produces": ["text/plain"],
                "responses": {"200": {"description": "header plus one row per record", "schema": {"type": "string"}}}
            },
            "post": {
                "tags": ["finances"],
                "summary": "Create a financial record",
                "consumes": ["text/plain"],
                "produces": ["text/plain"],
                "parameters": [{"in": "body", "name": "body", "required": true, "schema": {"type": "string"}}],
                "responses": {
                    "201": {"description": "Created", "schema": {"type": "string"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/api.APIResponse"}}
                }
            }
        },
        "/finances/{id}": {
            "get": {
                "tags": ["finances"],
                "summary": "Get a financial record",
                "produces": ["text/plain"],
                "parameters": [{"in": "path", "name": "id", "type": "string", "required": true}],
                "responses": {
                    "200": {"description": "OK", "schema": {"type": "string"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/api.APIResponse"}}
                }
            },
            "put": {
                "tags": ["finances"],
                "summary": "Update a financial record",
                "consumes": ["text/plain"],
                "produces": ["text/plain"],
                "parameters": [
                    {"in": "path", "name": "id", "type": "string", "required": true},
                    {"in": "body", "name": "body", "required": true, "schema": {"type": "string"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"type": "string"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/api.APIResponse"}}
                }
            },
            "delete": {
                "tags": ["finances"],
                "summary": "Delete a financial record",
                "parameters": [{"in": "path", "name": "id", "type": "string", "required": true}],
                "responses": {
                    "204": {"description": "No Content"},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/api.APIResponse"}}
                }
            }
        },
        "/finances/category/{value}": {
            "get": {
                "tags": ["finances"],
                "summary": "Find financial records by category",
                "produces": ["text/plain"],
                "parameters": [{"in": "path", "name": "value", "type": "string", "required": true}],
                "responses": {"200": {"description": "OK", "schema": {"type": "string"}}}
            }
        },
        "/transport": {
            "get": {
                "tags": ["transport"],
                "summary": "List transport records",
                "produces": ["text/plain"],
                "responses": {"200": {"description": "header plus one row per record", "schema": {"type": "string"}}}
            },
            "post": {
                "tags": ["transport"],
                "summary": "Create a transport record",
                "consumes": ["text/plain"],
                "produces": ["text/plain"],
                "parameters": [{"in": "body", "name": "body", "required": true, "schema": {"type": "string"}}],
                "responses": {
                    "201": {"description": "Created", "schema": {"type": "string"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/api.APIResponse"}}
                }
            }
        },
        "/transport/{id}": {
            "get": {
                "tags": ["transport"],
                "summary": "Get a transport record",
                "produces": ["text/plain"],
                "parameters": [{"in": "path", "name": "id", "type": "string", "required": true}],
                "responses": {
                    "200": {"description": "OK", "schema": {"type": "string"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/api.APIResponse"}}
                }
            },
            "put": {
                "tags": ["transport"],
                "summary": "Update a transport record",
                "consumes": ["text/plain"],
                "produces": ["text/plain"],
                "parameters": [
                    {"in": "path", "name": "id", "type": "string", "required": true},
                    {"in": "body", "name": "body", "required": true, "schema": {"type": "string"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"type": "string"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/api.APIResponse"}}
                }
            },
            "delete": {
                "tags": ["transport"],
                "summary": "Delete a transport record",
                "parameters": [{"in": "path", "name": "id", "type": "string", "required": true}],
                "responses": {
                    "204": {"description": "No Content"},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/api.APIResponse"}}
                }
            }
        },
        "/transport/area/{value}": {
            "get": {
                "tags": ["transport"],
                "summary": "Find transport records by area",
                "produces": ["text/plain"],
                "parameters": [{"in": "path", "name": "value", "type": "string", "required": true}],
                "responses": {"200": {"description": "OK", "schema": {"type": "string"}}}
            }
        },
        "/patient-records": {
            "get": {
                "tags": ["patients"],
                "summary": "Patient records WSDL",
                "produces": ["text/xml"],
                "parameters": [{"in": "query", "name": "wsdl", "type": "string", "required": true, "allowEmptyValue": true}],
                "responses": {"200": {"description": "OK", "schema": {"type": "string"}}}
            },
            "post": {
                "tags": ["patients"],
                "summary": "Patient records SOAP 1.1 endpoint",
                "consumes": ["text/xml"],
                "produces": ["text/xml"],
                "parameters": [{"in": "body", "name": "envelope", "required": true, "schema": {"type": "string"}}],
                "responses": {
                    "200": {"description": "operation response envelope", "schema": {"type": "string"}},
                    "500": {"description": "fault envelope", "schema": {"type": "string"}}
                }
            }
        }
    },
    "definitions": {
        "api.APIResponse": {
            "type": "object",
            "properties": {
                "success": {"type": "boolean"},
                "data": {},
                "error": {"type": "string"}
            }
        }
    }
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it
var SwaggerInfo = &swag.Spec{
	Version:          "1.0.0",
	Host:             "localhost:8080",
	BasePath:         "/",
	Schemes:          []string{},
	Title:            "dataprov API",
	Description:      "Tabular record providers for finance and transport data plus a SOAP patient records service.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
