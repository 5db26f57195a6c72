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
        "version": "{{.Version}}"
    },
    "host": "{{.Host}}",
    "basePath": "{{.BasePath}}",
    "securityDefinitions": {
        "BearerAuth": {"type": "apiKey", "name": "Authorization", "in": "header"}
    },
    "paths": {
        "/auth/signup": {"post": {"tags": ["auth"], "summary": "Create an account", "responses": {"201": {"description": "Created"}, "400": {"description": "Missing or invalid fields"}, "409": {"description": "User already exists"}}}},
        "/auth/login": {"post": {"tags": ["auth"], "summary": "Issue a bearer token", "responses": {"200": {"description": "OK"}, "401": {"description": "Invalid credentials"}}}},
        "/auth/profile/{email}": {"get": {"tags": ["auth"], "summary": "Read a profile", "security": [{"BearerAuth": []}], "parameters": [{"name": "email", "in": "path", "required": true, "type": "string"}], "responses": {"200": {"description": "OK"}, "404": {"description": "User not found"}}}},
        "/products": {"get": {"tags": ["catalog"], "summary": "List products, newest first", "responses": {"200": {"description": "OK"}}}},
        "/products/{id}": {"get": {"tags": ["catalog"], "summary": "Read a product", "parameters": [{"name": "id", "in": "path", "required": true, "type": "string"}], "responses": {"200": {"description": "OK"}, "404": {"description": "Product not found"}}}},
        "/products/add": {"post": {"tags": ["catalog"], "summary": "Create a product (admin)", "security": [{"BearerAuth": []}], "responses": {"201": {"description": "Created"}, "400": {"description": "Product validation failed"}}}},
        "/products/update/{id}": {"put": {"tags": ["catalog"], "summary": "Update a product (admin)", "security": [{"BearerAuth": []}], "parameters": [{"name": "id", "in": "path", "required": true, "type": "string"}], "responses": {"200": {"description": "OK"}, "404": {"description": "Product not found"}}}},
        "/products/delete/{id}": {"delete": {"tags": ["catalog"], "summary": "Delete a product (admin)", "security": [{"BearerAuth": []}], "parameters": [{"name": "id", "in": "path", "required": true, "type": "string"}], "responses": {"200": {"description": "OK"}, "404": {"description": "Product not found"}}}},
        "/cart/{userId}": {"get": {"tags": ["cart"], "summary": "Fetch the resolved cart", "security": [{"BearerAuth": []}], "parameters": [{"name": "userId", "in": "path", "required": true, "type": "string"}], "responses": {"200": {"description": "OK"}, "403": {"description": "Another user's cart"}}}},
        "/cart/add": {"post": {"tags": ["cart"], "summary": "Add or increment a line", "security": [{"BearerAuth": []}], "responses": {"200": {"description": "OK"}, "400": {"description": "Out of stock, maxQuantity set"}}}},
        "/cart/toggle": {"post": {"tags": ["cart"], "summary": "Remove a line", "security": [{"BearerAuth": []}], "responses": {"200": {"description": "OK"}}}},
        "/cart/quantity": {"put": {"tags": ["cart"], "summary": "Set a line quantity", "security": [{"BearerAuth": []}], "responses": {"200": {"description": "OK"}, "400": {"description": "Out of stock or invalid quantity"}}}},
        "/wishlist/toggle": {"post": {"tags": ["wishlist"], "summary": "Add or remove a product", "security": [{"BearerAuth": []}], "responses": {"200": {"description": "Removed"}, "201": {"description": "Added"}}}},
        "/wishlist/{userId}": {"get": {"tags": ["wishlist"], "summary": "Fetch the resolved wishlist", "security": [{"BearerAuth": []}], "parameters": [{"name": "userId", "in": "path", "required": true, "type": "string"}], "responses": {"200": {"description": "OK"}}}},
        "/orders/place": {"post": {"tags": ["orders"], "summary": "Place an order", "security": [{"BearerAuth": []}], "responses": {"201": {"description": "Created"}, "400": {"description": "Order validation failed"}}}},
        "/orders/addresses": {
            "get": {"tags": ["addresses"], "summary": "List saved addresses, default first", "security": [{"BearerAuth": []}], "responses": {"200": {"description": "OK"}}},
            "post": {"tags": ["addresses"], "summary": "Add an address", "security": [{"BearerAuth": []}], "responses": {"201": {"description": "Created"}, "400": {"description": "Missing required address fields"}}}
        },
        "/orders/addresses/{id}": {"put": {"tags": ["addresses"], "summary": "Update an address", "security": [{"BearerAuth": []}], "parameters": [{"name": "id", "in": "path", "required": true, "type": "string"}], "responses": {"200": {"description": "OK"}, "404": {"description": "Address not found or unauthorized"}}}},
        "/orders/history": {"get": {"tags": ["orders"], "summary": "The caller's orders, newest first", "security": [{"BearerAuth": []}], "responses": {"200": {"description": "OK"}}}},
        "/orders/all": {"get": {"tags": ["orders"], "summary": "Every order (admin)", "security": [{"BearerAuth": []}], "responses": {"200": {"description": "OK"}}}},
        "/orders/update-status/{id}": {"put": {"tags": ["orders"], "summary": "Transition payment status (admin)", "security": [{"BearerAuth": []}], "parameters": [{"name": "id", "in": "path", "required": true, "type": "string"}], "responses": {"200": {"description": "OK"}, "400": {"description": "Invalid status or transition"}, "404": {"description": "Order not found"}}}},
        "/payments": {
            "post": {"tags": ["payments"], "summary": "Record a payment", "security": [{"BearerAuth": []}], "responses": {"201": {"description": "Created"}, "400": {"description": "All fields are required"}}},
            "get": {"tags": ["payments"], "summary": "List payments, newest first (admin)", "security": [{"BearerAuth": []}], "responses": {"200": {"description": "OK"}}}
        },
        "/payments/{id}/status": {"put": {"tags": ["payments"], "summary": "Set a payment status (admin)", "security": [{"BearerAuth": []}], "parameters": [{"name": "id", "in": "path", "required": true, "type": "string"}], "responses": {"200": {"description": "OK"}, "404": {"description": "Payment not found"}}}},
        "/audit/{entityId}": {"get": {"tags": ["audit"], "summary": "Audit trail of an order or payment (admin)", "security": [{"BearerAuth": []}], "parameters": [{"name": "entityId", "in": "path", "required": true, "type": "string"}, {"name": "limit", "in": "query", "type": "integer"}], "responses": {"200": {"description": "OK"}}}}
    }
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it
var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "",
	BasePath:         "/api",
	Schemes:          []string{},
	Title:            "AgriGrow API",
	Description:      "Catalog, cart, wishlist, orders, addresses and payment ledger.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
