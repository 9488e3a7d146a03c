// Package docs holds the OpenAPI document served under /swagger. It is
// maintained by hand alongside the swag annotations in internal/handlers and
// cmd/server; update both together.
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
        "/health": {
            "get": {
                "description": "Reports storage and database connectivity",
                "produces": ["application/json"],
                "tags": ["health"],
                "summary": "Health check",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/handlers.HealthResponse"}},
                    "503": {"description": "Service Unavailable", "schema": {"$ref": "#/definitions/handlers.HealthResponse"}}
                }
            }
        },
        "/api/v1/seasons": {
            "get": {
                "produces": ["application/json"],
                "tags": ["seasons"],
                "summary": "List seasons",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/handlers.ListSeasonsResponse"}}
                }
            }
        },
        "/api/v1/seasons/{season}/tariffs": {
            "get": {
                "produces": ["application/json"],
                "tags": ["seasons"],
                "summary": "Active tariff table",
                "parameters": [
                    {"enum": ["summer", "spring"], "type": "string", "description": "Season", "name": "season", "in": "path", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/handlers.TariffsResponse"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/handlers.ErrorResponse"}}
                }
            }
        },
        "/api/v1/seasons/{season}/suggestion": {
            "get": {
                "produces": ["application/json"],
                "tags": ["seasons"],
                "summary": "Price suggestion",
                "parameters": [
                    {"enum": ["summer", "spring"], "type": "string", "description": "Season", "name": "season", "in": "path", "required": true},
                    {"type": "string", "description": "Guest count", "name": "people", "in": "query"},
                    {"type": "string", "description": "Nights", "name": "nights", "in": "query"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/quote.Suggestion"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/handlers.ErrorResponse"}}
                }
            }
        },
        "/api/v1/nights": {
            "get": {
                "description": "Malformed or reversed dates yield 0 nights",
                "produces": ["application/json"],
                "tags": ["quotes"],
                "summary": "Nights between dates",
                "parameters": [
                    {"type": "string", "description": "Check-in date (DD/MM/YYYY)", "name": "from", "in": "query", "required": true},
                    {"type": "string", "description": "Check-out date (DD/MM/YYYY)", "name": "to", "in": "query", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/handlers.NightsResponse"}}
                }
            }
        },
        "/api/v1/quotes": {
            "post": {
                "description": "Empty price and discount are filled from the season's active tariff table",
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["quotes"],
                "summary": "Calculate a quote",
                "parameters": [
                    {"description": "Quote form", "name": "form", "in": "body", "required": true, "schema": {"$ref": "#/definitions/quote.Form"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/handlers.QuoteResponse"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/handlers.ErrorResponse"}},
                    "422": {"description": "Unprocessable Entity", "schema": {"$ref": "#/definitions/handlers.ErrorResponse"}}
                }
            }
        },
        "/api/v1/admin/overrides": {
            "get": {
                "security": [{"AdminKey": []}],
                "produces": ["application/json"],
                "tags": ["admin"],
                "summary": "Stored tariff overrides",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/handlers.OverridesResponse"}},
                    "401": {"description": "Unauthorized", "schema": {"$ref": "#/definitions/handlers.ErrorResponse"}}
                }
            }
        },
        "/api/v1/admin/overrides/{season}": {
            "put": {
                "security": [{"AdminKey": []}],
                "description": "Omitted or null lists keep the built-in data; an empty discount list disables long-stay discounts. Send If-Match with the current checksum to guard against concurrent edits.",
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["admin"],
                "summary": "Replace a season override",
                "parameters": [
                    {"enum": ["summer", "spring"], "type": "string", "description": "Season", "name": "season", "in": "path", "required": true},
                    {"description": "Override", "name": "override", "in": "body", "required": true, "schema": {"$ref": "#/definitions/tariff.Override"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/handlers.SaveOverrideResponse"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/handlers.ErrorResponse"}},
                    "412": {"description": "Precondition Failed", "schema": {"$ref": "#/definitions/handlers.ErrorResponse"}}
                }
            },
            "delete": {
                "security": [{"AdminKey": []}],
                "tags": ["admin"],
                "summary": "Reset a season override",
                "parameters": [
                    {"enum": ["summer", "spring"], "type": "string", "description": "Season", "name": "season", "in": "path", "required": true}
                ],
                "responses": {
                    "204": {"description": "No Content"},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/handlers.ErrorResponse"}}
                }
            }
        },
        "/api/v1/admin/tariffs/{season}/export": {
            "get": {
                "security": [{"AdminKey": []}],
                "produces": ["application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"],
                "tags": ["admin"],
                "summary": "Export tariffs to Excel",
                "parameters": [
                    {"enum": ["summer", "spring"], "type": "string", "description": "Season", "name": "season", "in": "path", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"type": "file"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/handlers.ErrorResponse"}}
                }
            }
        },
        "/api/v1/admin/tariffs/{season}/import": {
            "post": {
                "security": [{"AdminKey": []}],
                "description": "Rows that cannot be parsed are reported and skipped. A missing sheet keeps the built-in data for that list.",
                "consumes": ["multipart/form-data"],
                "produces": ["application/json"],
                "tags": ["admin"],
                "summary": "Import tariffs from Excel",
                "parameters": [
                    {"enum": ["summer", "spring"], "type": "string", "description": "Season", "name": "season", "in": "path", "required": true},
                    {"type": "file", "description": "XLSX workbook", "name": "file", "in": "formData", "required": true},
                    {"type": "boolean", "description": "Parse without saving", "name": "dryRun", "in": "query"},
                    {"type": "string", "description": "Checksum the import is based on", "name": "If-Match", "in": "header"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/handlers.ImportResponse"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/handlers.ErrorResponse"}}
                }
            }
        }
    },
    "definitions": {
        "handlers.ErrorResponse": {
            "type": "object",
            "properties": {
                "error": {"type": "string"},
                "fields": {"type": "object", "additionalProperties": {"type": "array", "items": {"type": "string"}}}
            }
        },
        "handlers.HealthResponse": {
            "type": "object",
            "properties": {
                "database": {"type": "string"},
                "status": {"type": "string"},
                "storage": {"type": "string"}
            }
        },
        "handlers.SeasonInfo": {
            "type": "object",
            "properties": {
                "emoji": {"type": "string"},
                "installments": {"type": "array", "items": {"$ref": "#/definitions/quote.Installment"}},
                "label": {"type": "string"},
                "season": {"$ref": "#/definitions/tariff.Season"}
            }
        },
        "handlers.ListSeasonsResponse": {
            "type": "object",
            "properties": {
                "seasons": {"type": "array", "items": {"$ref": "#/definitions/handlers.SeasonInfo"}}
            }
        },
        "handlers.TariffsResponse": {
            "type": "object",
            "properties": {
                "discountMenu": {"type": "array", "items": {"$ref": "#/definitions/tariff.DiscountOption"}},
                "overridden": {"type": "boolean"},
                "table": {"$ref": "#/definitions/tariff.Table"}
            }
        },
        "handlers.NightsResponse": {
            "type": "object",
            "properties": {
                "from": {"type": "string"},
                "nights": {"type": "integer"},
                "to": {"type": "string"}
            }
        },
        "handlers.QuoteDisplay": {
            "type": "object",
            "properties": {
                "discountPercent": {"type": "string"},
                "installments": {"type": "array", "items": {"type": "string"}},
                "pricePerNight": {"type": "string"},
                "totalOriginal": {"type": "string"},
                "totalWithDiscount": {"type": "string"}
            }
        },
        "handlers.QuoteResponse": {
            "type": "object",
            "properties": {
                "display": {"$ref": "#/definitions/handlers.QuoteDisplay"},
                "form": {"description": "Form is the request after table suggestions were applied.", "allOf": [{"$ref": "#/definitions/quote.Form"}]},
                "id": {"type": "string"},
                "result": {"$ref": "#/definitions/quote.Result"},
                "suggestion": {"$ref": "#/definitions/quote.Suggestion"},
                "summary": {"type": "string"}
            }
        },
        "handlers.OverridesResponse": {
            "type": "object",
            "properties": {
                "checksum": {"type": "string"},
                "overrides": {"$ref": "#/definitions/tariff.Overrides"}
            }
        },
        "handlers.SaveOverrideResponse": {
            "type": "object",
            "properties": {
                "checksum": {"type": "string"},
                "season": {"$ref": "#/definitions/tariff.Season"},
                "table": {"$ref": "#/definitions/tariff.Table"},
                "warnings": {"type": "array", "items": {"$ref": "#/definitions/tariff.Warning"}}
            }
        },
        "handlers.ImportResponse": {
            "type": "object",
            "properties": {
                "checksum": {"type": "string"},
                "dryRun": {"type": "boolean"},
                "override": {"$ref": "#/definitions/tariff.Override"},
                "rowErrors": {"type": "array", "items": {"$ref": "#/definitions/spreadsheet.RowError"}},
                "season": {"$ref": "#/definitions/tariff.Season"},
                "table": {"$ref": "#/definitions/tariff.Table"},
                "warnings": {"type": "array", "items": {"$ref": "#/definitions/tariff.Warning"}}
            }
        },
        "quote.Form": {
            "type": "object",
            "properties": {
                "dateFrom": {"type": "string"},
                "dateTo": {"type": "string"},
                "discount": {"type": "number"},
                "nights": {"type": "string"},
                "people": {"type": "string"},
                "pricePerNight": {"type": "string"},
                "season": {"$ref": "#/definitions/tariff.Season"}
            }
        },
        "quote.Installment": {
            "type": "object",
            "properties": {
                "name": {"type": "string"},
                "percent": {"type": "integer"},
                "timing": {"description": "Timing is the customer-facing clause following \"N° pago P%\" in the\nshare text.", "type": "string"}
            }
        },
        "quote.Payment": {
            "type": "object",
            "properties": {
                "amountCents": {"type": "integer"},
                "name": {"type": "string"},
                "percent": {"type": "integer"},
                "timing": {"type": "string"}
            }
        },
        "quote.Result": {
            "type": "object",
            "properties": {
                "balanceCents": {"type": "integer"},
                "depositCents": {"type": "integer"},
                "discount": {"type": "number"},
                "installments": {"type": "array", "items": {"$ref": "#/definitions/quote.Payment"}},
                "nights": {"type": "integer"},
                "people": {"type": "integer"},
                "pricePerNightCents": {"type": "integer"},
                "season": {"$ref": "#/definitions/tariff.Season"},
                "secondPaymentCents": {"type": "integer"},
                "totalOriginalCents": {"type": "integer"},
                "totalWithDiscountCents": {"type": "integer"}
            }
        },
        "quote.Suggestion": {
            "type": "object",
            "properties": {
                "autoApplyDiscount": {"type": "boolean"},
                "bandPeople": {"type": "integer"},
                "hasStayDiscount": {"type": "boolean"},
                "priceText": {"type": "string"},
                "pricePerNightCents": {"type": "integer"},
                "season": {"$ref": "#/definitions/tariff.Season"},
                "stayDiscountPercent": {"type": "integer"}
            }
        },
        "spreadsheet.RowError": {
            "type": "object",
            "properties": {
                "message": {"type": "string"},
                "row": {"type": "integer"},
                "sheet": {"type": "string"}
            }
        },
        "tariff.DiscountOption": {
            "type": "object",
            "properties": {
                "fraction": {"type": "number"},
                "label": {"type": "string"},
                "percent": {"type": "integer"}
            }
        },
        "tariff.LongStayDiscount": {
            "type": "object",
            "properties": {
                "discountPercent": {"type": "integer"},
                "minNights": {"type": "integer"}
            }
        },
        "tariff.Override": {
            "type": "object",
            "properties": {
                "longStayDiscounts": {"type": "array", "items": {"$ref": "#/definitions/tariff.LongStayDiscount"}},
                "peopleBands": {"type": "array", "items": {"$ref": "#/definitions/tariff.PeopleBand"}}
            }
        },
        "tariff.Overrides": {
            "type": "object",
            "properties": {
                "spring": {"$ref": "#/definitions/tariff.Override"},
                "summer": {"$ref": "#/definitions/tariff.Override"}
            }
        },
        "tariff.PeopleBand": {
            "type": "object",
            "properties": {
                "people": {"type": "integer"},
                "pricePerNightCents": {"type": "integer"}
            }
        },
        "tariff.Season": {
            "type": "string",
            "enum": ["summer", "spring"],
            "x-enum-varnames": ["SeasonSummer", "SeasonSpring"]
        },
        "tariff.Table": {
            "type": "object",
            "properties": {
                "longStayDiscounts": {"type": "array", "items": {"$ref": "#/definitions/tariff.LongStayDiscount"}},
                "peopleBands": {"type": "array", "items": {"$ref": "#/definitions/tariff.PeopleBand"}},
                "season": {"$ref": "#/definitions/tariff.Season"}
            }
        },
        "tariff.Warning": {
            "type": "object",
            "properties": {
                "field": {"type": "string"},
                "message": {"type": "string"}
            }
        }
    },
    "securityDefinitions": {
        "AdminKey": {
            "type": "apiKey",
            "name": "X-Admin-API-Key",
            "in": "header"
        }
    }
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it
var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "",
	BasePath:         "/",
	Schemes:          []string{},
	Title:            "Quote Service API",
	Description:      "Booking quotes for seasonal cabin rentals: tariff lookup, quote calculation, share summaries and tariff administration.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
