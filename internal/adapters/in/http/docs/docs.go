// Package docs holds the Swagger 2.0 description of the marketplace API,
// registered with swag for the /swagger/* route.
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
        "/deliveries": {
            "post": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["deliveries"],
                "summary": "Create a delivery and start courier dispatch",
                "parameters": [
                    {"description": "Delivery to create", "name": "delivery", "in": "body", "required": true, "schema": {"$ref": "#/definitions/http.NewDelivery"}}
                ],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/http.CreatedResponse"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/http.Error"}}
                }
            }
        },
        "/deliveries/active": {
            "get": {
                "produces": ["application/json"],
                "tags": ["deliveries"],
                "summary": "List deliveries that are neither completed nor cancelled",
                "parameters": [
                    {"type": "string", "format": "uuid", "description": "Only deliveries of this courier", "name": "courierId", "in": "query"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"type": "array", "items": {"$ref": "#/definitions/http.Delivery"}}}
                }
            }
        },
        "/deliveries/{id}": {
            "get": {
                "produces": ["application/json"],
                "tags": ["deliveries"],
                "summary": "Get a delivery",
                "parameters": [
                    {"type": "string", "format": "uuid", "description": "Delivery ID", "name": "id", "in": "path", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/http.Delivery"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/http.Error"}}
                }
            }
        },
        "/deliveries/{id}/accept": {
            "post": {
                "consumes": ["application/json"],
                "tags": ["deliveries"],
                "summary": "Accept a pending delivery as a courier",
                "parameters": [
                    {"type": "string", "format": "uuid", "description": "Delivery ID", "name": "id", "in": "path", "required": true},
                    {"description": "Acting courier", "name": "courier", "in": "body", "required": true, "schema": {"$ref": "#/definitions/http.CourierAction"}}
                ],
                "responses": {
                    "204": {"description": "No Content"},
                    "409": {"description": "Conflict", "schema": {"$ref": "#/definitions/http.Error"}}
                }
            }
        },
        "/deliveries/{id}/pickup": {
            "post": {
                "consumes": ["application/json"],
                "tags": ["deliveries"],
                "summary": "Confirm the courier collected the delivery",
                "parameters": [
                    {"type": "string", "format": "uuid", "description": "Delivery ID", "name": "id", "in": "path", "required": true},
                    {"description": "Acting courier", "name": "courier", "in": "body", "required": true, "schema": {"$ref": "#/definitions/http.CourierAction"}}
                ],
                "responses": {
                    "204": {"description": "No Content"},
                    "409": {"description": "Conflict", "schema": {"$ref": "#/definitions/http.Error"}}
                }
            }
        },
        "/deliveries/{id}/transit": {
            "post": {
                "consumes": ["application/json"],
                "tags": ["deliveries"],
                "summary": "Start the trip towards the destination",
                "parameters": [
                    {"type": "string", "format": "uuid", "description": "Delivery ID", "name": "id", "in": "path", "required": true},
                    {"description": "Acting courier", "name": "courier", "in": "body", "required": true, "schema": {"$ref": "#/definitions/http.CourierAction"}}
                ],
                "responses": {
                    "204": {"description": "No Content"},
                    "409": {"description": "Conflict", "schema": {"$ref": "#/definitions/http.Error"}}
                }
            }
        },
        "/deliveries/{id}/complete": {
            "post": {
                "consumes": ["application/json"],
                "tags": ["deliveries"],
                "summary": "Complete a delivery",
                "parameters": [
                    {"type": "string", "format": "uuid", "description": "Delivery ID", "name": "id", "in": "path", "required": true},
                    {"description": "Acting courier", "name": "courier", "in": "body", "required": true, "schema": {"$ref": "#/definitions/http.CourierAction"}}
                ],
                "responses": {
                    "204": {"description": "No Content"},
                    "409": {"description": "Conflict", "schema": {"$ref": "#/definitions/http.Error"}}
                }
            }
        },
        "/deliveries/{id}/cancel": {
            "post": {
                "consumes": ["application/json"],
                "tags": ["deliveries"],
                "summary": "Cancel a delivery",
                "parameters": [
                    {"type": "string", "format": "uuid", "description": "Delivery ID", "name": "id", "in": "path", "required": true},
                    {"description": "Cancellation reason", "name": "reason", "in": "body", "required": true, "schema": {"$ref": "#/definitions/http.CancelDelivery"}}
                ],
                "responses": {
                    "204": {"description": "No Content"},
                    "409": {"description": "Conflict", "schema": {"$ref": "#/definitions/http.Error"}}
                }
            }
        },
        "/couriers": {
            "post": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["couriers"],
                "summary": "Register a courier",
                "parameters": [
                    {"description": "Courier to register", "name": "courier", "in": "body", "required": true, "schema": {"$ref": "#/definitions/http.NewCourier"}}
                ],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/http.CreatedResponse"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/http.Error"}}
                }
            }
        },
        "/couriers/{id}/status": {
            "put": {
                "consumes": ["application/json"],
                "tags": ["couriers"],
                "summary": "Report courier availability and position",
                "parameters": [
                    {"type": "string", "format": "uuid", "description": "Courier ID", "name": "id", "in": "path", "required": true},
                    {"description": "Availability and location", "name": "status", "in": "body", "required": true, "schema": {"$ref": "#/definitions/http.CourierStatus"}}
                ],
                "responses": {
                    "204": {"description": "No Content"},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/http.Error"}}
                }
            }
        },
        "/couriers/{id}/push-token": {
            "put": {
                "consumes": ["application/json"],
                "tags": ["couriers"],
                "summary": "Register the courier's push notification token",
                "parameters": [
                    {"type": "string", "format": "uuid", "description": "Courier ID", "name": "id", "in": "path", "required": true},
                    {"description": "Device token", "name": "token", "in": "body", "required": true, "schema": {"$ref": "#/definitions/http.PushToken"}}
                ],
                "responses": {
                    "204": {"description": "No Content"},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/http.Error"}}
                }
            }
        },
        "/couriers/{id}/organizations/{orgId}": {
            "put": {
                "consumes": ["application/json"],
                "tags": ["couriers"],
                "summary": "Link a courier to an organization or deactivate the link",
                "parameters": [
                    {"type": "string", "format": "uuid", "description": "Courier ID", "name": "id", "in": "path", "required": true},
                    {"type": "string", "format": "uuid", "description": "Organization ID", "name": "orgId", "in": "path", "required": true},
                    {"description": "Link state", "name": "link", "in": "body", "required": true, "schema": {"$ref": "#/definitions/http.EmploymentLink"}}
                ],
                "responses": {
                    "204": {"description": "No Content"},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/http.Error"}}
                }
            }
        },
        "/contracts": {
            "post": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["contracts"],
                "summary": "Contract an organization to serve a client",
                "parameters": [
                    {"description": "Contract to create", "name": "contract", "in": "body", "required": true, "schema": {"$ref": "#/definitions/http.NewClientContract"}}
                ],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/http.CreatedResponse"}},
                    "409": {"description": "Conflict", "schema": {"$ref": "#/definitions/http.Error"}}
                }
            }
        },
        "/zones": {
            "post": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["zones"],
                "summary": "Create a special zone",
                "parameters": [
                    {"description": "Zone to create", "name": "zone", "in": "body", "required": true, "schema": {"$ref": "#/definitions/http.NewSpecialZone"}}
                ],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/http.CreatedResponse"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/http.Error"}}
                }
            }
        },
        "/zones/resolve": {
            "get": {
                "produces": ["application/json"],
                "tags": ["zones"],
                "summary": "Find the special zone that applies to a point",
                "parameters": [
                    {"type": "number", "description": "Latitude", "name": "lat", "in": "query", "required": true},
                    {"type": "number", "description": "Longitude", "name": "lng", "in": "query", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/http.SpecialZone"}},
                    "204": {"description": "No zone contains the point"},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/http.Error"}}
                }
            }
        },
        "/payments": {
            "post": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["payments"],
                "summary": "Open a PIX payment for one or more deliveries",
                "parameters": [
                    {"description": "Payer and deliveries", "name": "payment", "in": "body", "required": true, "schema": {"$ref": "#/definitions/http.NewPayment"}}
                ],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/http.CreatedResponse"}},
                    "409": {"description": "Conflict", "schema": {"$ref": "#/definitions/http.Error"}}
                }
            }
        },
        "/payments/webhook": {
            "post": {
                "description": "Only order.paid confirms the payment; other event types are acknowledged and ignored.",
                "consumes": ["application/json"],
                "tags": ["payments"],
                "summary": "Receive payment gateway events",
                "parameters": [
                    {"description": "Gateway event", "name": "event", "in": "body", "required": true, "schema": {"$ref": "#/definitions/http.PaymentEvent"}}
                ],
                "responses": {
                    "204": {"description": "No Content"},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/http.Error"}}
                }
            }
        },
        "/splits/quote": {
            "get": {
                "produces": ["application/json"],
                "tags": ["payments"],
                "summary": "Preview how an amount is split between courier, organizer and platform",
                "parameters": [
                    {"type": "integer", "description": "Amount in minor units", "name": "amount", "in": "query", "required": true},
                    {"type": "boolean", "description": "Whether an organizer takes a share", "name": "hasOrganizer", "in": "query"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/http.SplitQuote"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/http.Error"}}
                }
            }
        }
    },
    "definitions": {
        "http.Error": {
            "type": "object",
            "properties": {
                "code": {"type": "integer"},
                "message": {"type": "string"}
            }
        },
        "http.Location": {
            "type": "object",
            "properties": {
                "latitude": {"type": "number", "example": -23.5614},
                "longitude": {"type": "number", "example": -46.6559}
            }
        },
        "http.CreatedResponse": {
            "type": "object",
            "properties": {
                "id": {"type": "string", "format": "uuid"}
            }
        },
        "http.NewDelivery": {
            "type": "object",
            "properties": {
                "clientId": {"type": "string", "format": "uuid"},
                "organizerId": {"type": "string", "format": "uuid"},
                "origin": {"$ref": "#/definitions/http.Location"},
                "originAddress": {"type": "string"},
                "destination": {"$ref": "#/definitions/http.Location"},
                "destinationAddress": {"type": "string"},
                "type": {"type": "string", "enum": ["DELIVERY", "RIDE"]},
                "vehicleType": {"type": "string", "enum": ["ANY", "MOTORCYCLE", "CAR"]},
                "totalAmount": {"type": "integer"},
                "shippingFee": {"type": "integer"}
            }
        },
        "http.CourierAction": {
            "type": "object",
            "properties": {
                "courierId": {"type": "string", "format": "uuid"}
            }
        },
        "http.CancelDelivery": {
            "type": "object",
            "properties": {
                "reason": {"type": "string"}
            }
        },
        "http.Delivery": {
            "type": "object",
            "properties": {
                "id": {"type": "string"},
                "clientId": {"type": "string"},
                "organizerId": {"type": "string"},
                "courierId": {"type": "string"},
                "type": {"type": "string"},
                "vehicleType": {"type": "string"},
                "status": {"type": "string"},
                "awaitingPayment": {"type": "boolean"},
                "paymentCompleted": {"type": "boolean"},
                "origin": {"$ref": "#/definitions/http.Location"},
                "originAddress": {"type": "string"},
                "destination": {"$ref": "#/definitions/http.Location"},
                "destinationAddress": {"type": "string"},
                "totalAmount": {"type": "integer"},
                "shippingFee": {"type": "integer"},
                "distanceKm": {"type": "number"},
                "cancellationReason": {"type": "string"},
                "createdAt": {"type": "string"},
                "acceptedAt": {"type": "string"},
                "pickedUpAt": {"type": "string"},
                "inTransitAt": {"type": "string"},
                "completedAt": {"type": "string"},
                "cancelledAt": {"type": "string"}
            }
        },
        "http.NewCourier": {
            "type": "object",
            "properties": {
                "name": {"type": "string"},
                "location": {"$ref": "#/definitions/http.Location"},
                "pushToken": {"type": "string"},
                "organizationId": {"type": "string", "format": "uuid"}
            }
        },
        "http.CourierStatus": {
            "type": "object",
            "properties": {
                "availability": {"type": "string", "enum": ["AVAILABLE", "ON_DELIVERY", "OFFLINE", "SUSPENDED"]},
                "location": {"$ref": "#/definitions/http.Location"}
            }
        },
        "http.PushToken": {
            "type": "object",
            "properties": {
                "token": {"type": "string"}
            }
        },
        "http.EmploymentLink": {
            "type": "object",
            "properties": {
                "active": {"type": "boolean"}
            }
        },
        "http.NewClientContract": {
            "type": "object",
            "properties": {
                "clientId": {"type": "string", "format": "uuid"},
                "organizationId": {"type": "string", "format": "uuid"},
                "primary": {"type": "boolean"}
            }
        },
        "http.NewSpecialZone": {
            "type": "object",
            "properties": {
                "name": {"type": "string"},
                "center": {"$ref": "#/definitions/http.Location"},
                "radiusMeters": {"type": "number"},
                "type": {"type": "string", "enum": ["DANGER", "HIGH_INCOME"]}
            }
        },
        "http.SpecialZone": {
            "type": "object",
            "properties": {
                "id": {"type": "string"},
                "name": {"type": "string"},
                "type": {"type": "string"},
                "center": {"$ref": "#/definitions/http.Location"},
                "radiusMeters": {"type": "number"},
                "distanceMeters": {"type": "number"}
            }
        },
        "http.NewPayment": {
            "type": "object",
            "properties": {
                "payerId": {"type": "string", "format": "uuid"},
                "payerCategory": {"type": "string", "enum": ["CUSTOMER", "CLIENT"]},
                "deliveryIds": {"type": "array", "items": {"type": "string"}}
            }
        },
        "http.PaymentEvent": {
            "type": "object",
            "properties": {
                "id": {"type": "string"},
                "type": {"type": "string", "example": "order.paid"},
                "data": {"$ref": "#/definitions/http.PaymentEventData"}
            }
        },
        "http.PaymentEventData": {
            "type": "object",
            "properties": {
                "id": {"type": "string"},
                "code": {"type": "string"},
                "status": {"type": "string"}
            }
        },
        "http.SplitQuote": {
            "type": "object",
            "properties": {
                "amount": {"type": "integer"},
                "courier": {"type": "integer"},
                "organizer": {"type": "integer"},
                "platform": {"type": "integer"},
                "courierPct": {"type": "number"},
                "organizerPct": {"type": "number"},
                "platformPct": {"type": "number"}
            }
        }
    }
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it.
var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "",
	BasePath:         "/api/v1",
	Schemes:          []string{},
	Title:            "Marketplace API",
	Description:      "Delivery lifecycle, courier dispatch and PIX payments.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
