// Package docs registers the OpenAPI document served under /swagger.
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
        "/log/meal": {
            "post": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["ledger"],
                "summary": "Log a meal",
                "parameters": [
                    {"in": "body", "name": "body", "required": true, "schema": {"$ref": "#/definitions/logMealRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/mealLogged"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/errorResponse"}},
                    "503": {"description": "Service Unavailable", "schema": {"$ref": "#/definitions/errorResponse"}}
                }
            }
        },
        "/log/water": {
            "post": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["ledger"],
                "summary": "Log water intake",
                "parameters": [
                    {"in": "body", "name": "body", "required": true, "schema": {"$ref": "#/definitions/logWaterRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/waterLogged"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/errorResponse"}},
                    "503": {"description": "Service Unavailable", "schema": {"$ref": "#/definitions/errorResponse"}}
                }
            }
        },
        "/users/{user_id}/dashboard": {
            "get": {
                "produces": ["application/json"],
                "tags": ["dashboard"],
                "summary": "Streak and today's totals",
                "parameters": [
                    {"type": "string", "name": "user_id", "in": "path", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/domain.Dashboard"}},
                    "503": {"description": "Service Unavailable", "schema": {"$ref": "#/definitions/errorResponse"}}
                }
            }
        },
        "/users/{user_id}/logs/today": {
            "get": {
                "produces": ["application/json"],
                "tags": ["ledger"],
                "summary": "Today's meals, newest first",
                "parameters": [
                    {"type": "string", "name": "user_id", "in": "path", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"type": "array", "items": {"$ref": "#/definitions/foodLogResponse"}}},
                    "503": {"description": "Service Unavailable", "schema": {"$ref": "#/definitions/errorResponse"}}
                }
            }
        },
        "/users/{user_id}/history": {
            "get": {
                "produces": ["application/json"],
                "tags": ["history"],
                "summary": "Daily totals over a date range",
                "parameters": [
                    {"type": "string", "name": "user_id", "in": "path", "required": true},
                    {"type": "string", "name": "start_date", "in": "query", "description": "YYYY-MM-DD, defaults to end_date minus 6 days"},
                    {"type": "string", "name": "end_date", "in": "query", "description": "YYYY-MM-DD, defaults to today"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/domain.History"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/errorResponse"}}
                }
            }
        }
    },
    "definitions": {
        "errorResponse": {
            "type": "object",
            "properties": {"error": {"type": "string"}}
        },
        "logMealRequest": {
            "type": "object",
            "required": ["user_id", "calories"],
            "properties": {
                "user_id": {"type": "string"},
                "meal_name": {"type": "string"},
                "calories": {"type": "integer", "minimum": 0}
            }
        },
        "logWaterRequest": {
            "type": "object",
            "required": ["user_id", "amount"],
            "properties": {
                "user_id": {"type": "string"},
                "amount": {"type": "integer", "minimum": 1}
            }
        },
        "foodLogResponse": {
            "type": "object",
            "properties": {
                "id": {"type": "string"},
                "meal_name": {"type": "string"},
                "calories": {"type": "integer"},
                "timestamp": {"type": "string", "format": "date-time"}
            }
        },
        "mealLogged": {
            "type": "object",
            "properties": {
                "message": {"type": "string"},
                "new_total": {"type": "integer"},
                "entry": {"$ref": "#/definitions/foodLogResponse"}
            }
        },
        "waterLogged": {
            "type": "object",
            "properties": {
                "message": {"type": "string"},
                "water": {"type": "integer"},
                "calories": {"type": "integer"},
                "date": {"type": "string"}
            }
        },
        "domain.Dashboard": {
            "type": "object",
            "properties": {
                "date": {"type": "string"},
                "streak": {"type": "integer"},
                "longest_streak": {"type": "integer"},
                "water": {"type": "integer"},
                "calories": {"type": "integer"}
            }
        },
        "domain.DaySummary": {
            "type": "object",
            "properties": {
                "date": {"type": "string"},
                "water": {"type": "integer"},
                "calories": {"type": "integer"},
                "logged": {"type": "boolean"}
            }
        },
        "domain.History": {
            "type": "object",
            "properties": {
                "start_date": {"type": "string"},
                "end_date": {"type": "string"},
                "days_logged": {"type": "integer"},
                "total_water": {"type": "integer"},
                "total_calories": {"type": "integer"},
                "average_calories": {"type": "number"},
                "days": {"type": "array", "items": {"$ref": "#/definitions/domain.DaySummary"}}
            }
        }
    }
}`

var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "",
	BasePath:         "/api/v1",
	Schemes:          []string{},
	Title:            "FitHub Ledger API",
	Description:      "Water and calorie ledger with streak tracking",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
