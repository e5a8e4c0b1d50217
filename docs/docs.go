// Package docs регистрирует swagger-спецификацию REST API для http-swagger.
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
        "/drafts": {
            "post": {
                "produces": ["application/json"],
                "tags": ["drafts"],
                "summary": "Новый черновик заказа",
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/http.DraftResponse"}},
                    "500": {"description": "Internal Server Error", "schema": {"$ref": "#/definitions/http.ErrorResponse"}}
                }
            }
        },
        "/drafts/{draftID}": {
            "get": {
                "produces": ["application/json"],
                "tags": ["drafts"],
                "summary": "Текущее состояние черновика",
                "parameters": [{"type": "string", "description": "ID черновика", "name": "draftID", "in": "path", "required": true}],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/http.DraftResponse"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/http.ErrorResponse"}}
                }
            },
            "delete": {
                "tags": ["drafts"],
                "summary": "Удаление черновика",
                "parameters": [{"type": "string", "description": "ID черновика", "name": "draftID", "in": "path", "required": true}],
                "responses": {
                    "204": {"description": "No Content"},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/http.ErrorResponse"}}
                }
            }
        },
        "/drafts/{draftID}/header": {
            "patch": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["drafts"],
                "summary": "Шапка заказа",
                "parameters": [
                    {"type": "string", "description": "ID черновика", "name": "draftID", "in": "path", "required": true},
                    {"description": "Шапка заказа", "name": "body", "in": "body", "required": true, "schema": {"$ref": "#/definitions/http.UpdateHeaderRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/http.DraftResponse"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/http.ErrorResponse"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/http.ErrorResponse"}}
                }
            }
        },
        "/drafts/{draftID}/lines": {
            "post": {
                "produces": ["application/json"],
                "tags": ["lines"],
                "summary": "Новая пустая строка",
                "parameters": [{"type": "string", "description": "ID черновика", "name": "draftID", "in": "path", "required": true}],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/http.DraftResponse"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/http.ErrorResponse"}}
                }
            }
        },
        "/drafts/{draftID}/lines/{line}": {
            "delete": {
                "produces": ["application/json"],
                "tags": ["lines"],
                "summary": "Удаление строки",
                "parameters": [
                    {"type": "string", "description": "ID черновика", "name": "draftID", "in": "path", "required": true},
                    {"type": "integer", "description": "Номер строки", "name": "line", "in": "path", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/http.DraftResponse"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/http.ErrorResponse"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/http.ErrorResponse"}}
                }
            }
        },
        "/drafts/{draftID}/lines/{line}/product": {
            "put": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["lines"],
                "summary": "Выбор товара в строке",
                "parameters": [
                    {"type": "string", "description": "ID черновика", "name": "draftID", "in": "path", "required": true},
                    {"type": "integer", "description": "Номер строки", "name": "line", "in": "path", "required": true},
                    {"description": "Товар", "name": "body", "in": "body", "required": true, "schema": {"$ref": "#/definitions/http.SelectProductRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/http.DraftResponse"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/http.ErrorResponse"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/http.ErrorResponse"}}
                }
            }
        },
        "/drafts/{draftID}/lines/{line}/quantity": {
            "put": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["lines"],
                "summary": "Количество в строке",
                "description": "Количество больше остатка урезается до остатка с предупреждением. null сбрасывает количество",
                "parameters": [
                    {"type": "string", "description": "ID черновика", "name": "draftID", "in": "path", "required": true},
                    {"type": "integer", "description": "Номер строки", "name": "line", "in": "path", "required": true},
                    {"description": "Количество", "name": "body", "in": "body", "required": true, "schema": {"$ref": "#/definitions/http.SetQuantityRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/http.DraftResponse"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/http.ErrorResponse"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/http.ErrorResponse"}}
                }
            }
        },
        "/drafts/{draftID}/lines/{line}/options": {
            "get": {
                "produces": ["application/json"],
                "tags": ["lines"],
                "summary": "Товары для выбора в строке",
                "parameters": [
                    {"type": "string", "description": "ID черновика", "name": "draftID", "in": "path", "required": true},
                    {"type": "integer", "description": "Номер строки", "name": "line", "in": "path", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"type": "array", "items": {"$ref": "#/definitions/http.ProductOptionResponse"}}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/http.ErrorResponse"}}
                }
            }
        },
        "/drafts/{draftID}/submit": {
            "post": {
                "produces": ["application/json"],
                "tags": ["drafts"],
                "summary": "Оформление заказа",
                "parameters": [{"type": "string", "description": "ID черновика", "name": "draftID", "in": "path", "required": true}],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/http.OrderResponse"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/http.ErrorResponse"}},
                    "422": {"description": "Unprocessable Entity", "schema": {"$ref": "#/definitions/http.ErrorResponse"}}
                }
            }
        },
        "/orders": {
            "get": {
                "produces": ["application/json"],
                "tags": ["orders"],
                "summary": "Список заказов",
                "parameters": [
                    {"type": "integer", "description": "Размер страницы", "name": "limit", "in": "query"},
                    {"type": "integer", "description": "Смещение", "name": "offset", "in": "query"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/http.ListOrdersResponse"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/http.ErrorResponse"}}
                }
            }
        },
        "/orders/{orderID}": {
            "get": {
                "produces": ["application/json"],
                "tags": ["orders"],
                "summary": "Заказ со строками",
                "parameters": [{"type": "integer", "description": "ID заказа", "name": "orderID", "in": "path", "required": true}],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/http.OrderResponse"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/http.ErrorResponse"}}
                }
            },
            "delete": {
                "tags": ["orders"],
                "summary": "Удаление заказа",
                "parameters": [{"type": "integer", "description": "ID заказа", "name": "orderID", "in": "path", "required": true}],
                "responses": {
                    "204": {"description": "No Content"},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/http.ErrorResponse"}}
                }
            }
        },
        "/orders/{orderID}/drafts": {
            "post": {
                "produces": ["application/json"],
                "tags": ["drafts"],
                "summary": "Черновик для редактирования заказа",
                "parameters": [{"type": "integer", "description": "ID заказа", "name": "orderID", "in": "path", "required": true}],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/http.DraftResponse"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/http.ErrorResponse"}}
                }
            }
        },
        "/payment-methods": {
            "get": {
                "produces": ["application/json"],
                "tags": ["payment-methods"],
                "summary": "Активные способы оплаты",
                "responses": {
                    "200": {"description": "OK", "schema": {"type": "array", "items": {"$ref": "#/definitions/http.PaymentMethodResponse"}}}
                }
            }
        }
    },
    "definitions": {
        "http.ErrorResponse": {
            "type": "object",
            "properties": {
                "code": {"type": "integer"},
                "message": {"type": "string"}
            }
        },
        "http.UpdateHeaderRequest": {
            "type": "object",
            "properties": {
                "customer_name": {"type": "string"},
                "phone": {"type": "string"},
                "note": {"type": "string"},
                "payment_method_id": {"type": "integer"},
                "paid_amount": {"type": "string", "example": "100.00"},
                "change_amount": {"type": "string", "example": "28.50"}
            }
        },
        "http.SelectProductRequest": {
            "type": "object",
            "properties": {
                "product_id": {"type": "integer"}
            }
        },
        "http.SetQuantityRequest": {
            "type": "object",
            "properties": {
                "quantity": {"type": "integer"}
            }
        },
        "http.LineResponse": {
            "type": "object",
            "properties": {
                "index": {"type": "integer"},
                "product_id": {"type": "integer"},
                "product_name": {"type": "string"},
                "quantity": {"type": "integer"},
                "unit_price": {"type": "string"},
                "stock": {"type": "integer"},
                "subtotal": {"type": "string"}
            }
        },
        "http.OrderResponse": {
            "type": "object",
            "properties": {
                "id": {"type": "integer"},
                "customer_name": {"type": "string"},
                "phone": {"type": "string"},
                "note": {"type": "string"},
                "payment_method_id": {"type": "integer"},
                "payment_method_name": {"type": "string"},
                "total_price": {"type": "string"},
                "paid_amount": {"type": "string"},
                "change_amount": {"type": "string"},
                "created_at": {"type": "string"},
                "updated_at": {"type": "string"},
                "lines": {"type": "array", "items": {"$ref": "#/definitions/http.LineResponse"}}
            }
        },
        "http.WarningResponse": {
            "type": "object",
            "properties": {
                "kind": {"type": "string"},
                "line": {"type": "integer"},
                "product_id": {"type": "integer"},
                "requested": {"type": "integer"},
                "available": {"type": "integer"},
                "message": {"type": "string"}
            }
        },
        "http.DraftResponse": {
            "type": "object",
            "properties": {
                "id": {"type": "string"},
                "order": {"$ref": "#/definitions/http.OrderResponse"},
                "warnings": {"type": "array", "items": {"$ref": "#/definitions/http.WarningResponse"}},
                "updated_at": {"type": "string"}
            }
        },
        "http.ProductOptionResponse": {
            "type": "object",
            "properties": {
                "id": {"type": "integer"},
                "name": {"type": "string"},
                "category_name": {"type": "string"}
            }
        },
        "http.PaymentMethodResponse": {
            "type": "object",
            "properties": {
                "id": {"type": "integer"},
                "name": {"type": "string"}
            }
        },
        "http.ListOrdersResponse": {
            "type": "object",
            "properties": {
                "orders": {"type": "array", "items": {"$ref": "#/definitions/http.OrderResponse"}},
                "total": {"type": "integer"},
                "limit": {"type": "integer"},
                "offset": {"type": "integer"}
            }
        }
    }
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it
var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "localhost:8080",
	BasePath:         "/api/v1",
	Schemes:          []string{},
	Title:            "Order back-office API",
	Description:      "Редактор заказов: черновики, строки заказа, оформление.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
