// Package docs holds the OpenAPI description served under /swagger.
// Keep it in step with the @ annotations on the webapi handlers.
package docs

import "github.com/swaggo/swag"

const docTemplate = `{
    "schemes": {{ marshal .Schemes }},
    "swagger": "2.0",
    "info": {
        "description": "{{escape .Description}}",
        "title": "{{.Title}}",
        "contact": {
            "name": "API Support"
        },
        "version": "{{.Version}}"
    },
    "host": "{{.Host}}",
    "basePath": "{{.BasePath}}",
    "paths": {
        "/me": {
            "get": {
                "security": [{"Bearer": []}],
                "produces": ["application/json"],
                "tags": ["accounts"],
                "summary": "Get the current account",
                "responses": {
                    "200": {"description": "Account fetched", "schema": {"$ref": "#/definitions/common.Response"}},
                    "401": {"description": "Unauthorized", "schema": {"$ref": "#/definitions/common.ProblemDetails"}},
                    "404": {"description": "Account not found", "schema": {"$ref": "#/definitions/common.ProblemDetails"}}
                }
            }
        },
        "/deposits": {
            "post": {
                "security": [{"Bearer": []}],
                "description": "Records a pending deposit through an active payment method. The balance changes only when an admin approves it.",
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["deposits"],
                "summary": "Request a deposit",
                "parameters": [
                    {"description": "Deposit details", "name": "request", "in": "body", "required": true, "schema": {"$ref": "#/definitions/deposit.CreateRequest"}}
                ],
                "responses": {
                    "201": {"description": "Deposit request submitted", "schema": {"$ref": "#/definitions/common.Response"}},
                    "400": {"description": "Invalid request", "schema": {"$ref": "#/definitions/common.ProblemDetails"}},
                    "401": {"description": "Unauthorized", "schema": {"$ref": "#/definitions/common.ProblemDetails"}},
                    "429": {"description": "Too many requests", "schema": {"$ref": "#/definitions/common.ProblemDetails"}},
                    "500": {"description": "Internal server error", "schema": {"$ref": "#/definitions/common.ProblemDetails"}}
                }
            }
        },
        "/withdrawals": {
            "post": {
                "security": [{"Bearer": []}],
                "description": "Holds the amount plus the payment method fee and records a pending withdrawal.",
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["withdrawals"],
                "summary": "Request a withdrawal",
                "parameters": [
                    {"description": "Withdrawal details", "name": "request", "in": "body", "required": true, "schema": {"$ref": "#/definitions/withdrawal.CreateRequest"}}
                ],
                "responses": {
                    "201": {"description": "Withdrawal request submitted", "schema": {"$ref": "#/definitions/common.Response"}},
                    "400": {"description": "Invalid request", "schema": {"$ref": "#/definitions/common.ProblemDetails"}},
                    "401": {"description": "Unauthorized", "schema": {"$ref": "#/definitions/common.ProblemDetails"}},
                    "422": {"description": "Insufficient balance", "schema": {"$ref": "#/definitions/common.ProblemDetails"}},
                    "429": {"description": "Too many requests", "schema": {"$ref": "#/definitions/common.ProblemDetails"}},
                    "500": {"description": "Internal server error", "schema": {"$ref": "#/definitions/common.ProblemDetails"}}
                }
            }
        },
        "/transfers/internal": {
            "post": {
                "security": [{"Bearer": []}],
                "description": "Moves funds to another account number immediately.",
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["transfers"],
                "summary": "Transfer to another user",
                "parameters": [
                    {"description": "Transfer details", "name": "request", "in": "body", "required": true, "schema": {"$ref": "#/definitions/transfer.InternalRequest"}}
                ],
                "responses": {
                    "201": {"description": "Transfer completed", "schema": {"$ref": "#/definitions/common.Response"}},
                    "400": {"description": "Invalid request", "schema": {"$ref": "#/definitions/common.ProblemDetails"}},
                    "401": {"description": "Unauthorized", "schema": {"$ref": "#/definitions/common.ProblemDetails"}},
                    "422": {"description": "Insufficient balance", "schema": {"$ref": "#/definitions/common.ProblemDetails"}},
                    "429": {"description": "Too many requests", "schema": {"$ref": "#/definitions/common.ProblemDetails"}},
                    "500": {"description": "Internal server error", "schema": {"$ref": "#/definitions/common.ProblemDetails"}}
                }
            }
        },
        "/transfers/external": {
            "post": {
                "security": [{"Bearer": []}],
                "description": "Holds the amount for a local or international transfer pending admin processing.",
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["transfers"],
                "summary": "Transfer to an external bank",
                "parameters": [
                    {"description": "Transfer details", "name": "request", "in": "body", "required": true, "schema": {"$ref": "#/definitions/transfer.ExternalRequest"}}
                ],
                "responses": {
                    "201": {"description": "Transfer submitted", "schema": {"$ref": "#/definitions/common.Response"}},
                    "400": {"description": "Invalid request", "schema": {"$ref": "#/definitions/common.ProblemDetails"}},
                    "401": {"description": "Unauthorized", "schema": {"$ref": "#/definitions/common.ProblemDetails"}},
                    "422": {"description": "Insufficient balance", "schema": {"$ref": "#/definitions/common.ProblemDetails"}},
                    "429": {"description": "Too many requests", "schema": {"$ref": "#/definitions/common.ProblemDetails"}},
                    "500": {"description": "Internal server error", "schema": {"$ref": "#/definitions/common.ProblemDetails"}}
                }
            }
        },
        "/transfers/{id}/verify": {
            "post": {
                "security": [{"Bearer": []}],
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["transfers"],
                "summary": "Verify transfer codes",
                "parameters": [
                    {"type": "string", "description": "Transfer ID", "name": "id", "in": "path", "required": true},
                    {"description": "Authorization codes", "name": "request", "in": "body", "required": true, "schema": {"$ref": "#/definitions/transfer.VerifyRequest"}}
                ],
                "responses": {
                    "200": {"description": "Codes verified", "schema": {"$ref": "#/definitions/common.Response"}},
                    "400": {"description": "Invalid request", "schema": {"$ref": "#/definitions/common.ProblemDetails"}},
                    "401": {"description": "Unauthorized", "schema": {"$ref": "#/definitions/common.ProblemDetails"}},
                    "404": {"description": "Transfer not found", "schema": {"$ref": "#/definitions/common.ProblemDetails"}},
                    "429": {"description": "Too many requests", "schema": {"$ref": "#/definitions/common.ProblemDetails"}},
                    "500": {"description": "Internal server error", "schema": {"$ref": "#/definitions/common.ProblemDetails"}}
                }
            }
        },
        "/transfers/{id}/cancel": {
            "post": {
                "security": [{"Bearer": []}],
                "description": "Cancels a pending external transfer and refunds the held amount.",
                "produces": ["application/json"],
                "tags": ["transfers"],
                "summary": "Cancel a pending transfer",
                "parameters": [
                    {"type": "string", "description": "Transfer ID", "name": "id", "in": "path", "required": true}
                ],
                "responses": {
                    "200": {"description": "Transfer cancelled", "schema": {"$ref": "#/definitions/common.Response"}},
                    "400": {"description": "Invalid request", "schema": {"$ref": "#/definitions/common.ProblemDetails"}},
                    "401": {"description": "Unauthorized", "schema": {"$ref": "#/definitions/common.ProblemDetails"}},
                    "404": {"description": "Transfer not found", "schema": {"$ref": "#/definitions/common.ProblemDetails"}},
                    "409": {"description": "Transfer already final", "schema": {"$ref": "#/definitions/common.ProblemDetails"}},
                    "429": {"description": "Too many requests", "schema": {"$ref": "#/definitions/common.ProblemDetails"}},
                    "500": {"description": "Internal server error", "schema": {"$ref": "#/definitions/common.ProblemDetails"}}
                }
            }
        }
    },
    "definitions": {
        "common.ProblemDetails": {
            "type": "object",
            "properties": {
                "type": {"type": "string"},
                "title": {"type": "string"},
                "status": {"type": "integer"},
                "detail": {"type": "string"},
                "instance": {"type": "string"},
                "errors": {}
            }
        },
        "common.Response": {
            "type": "object",
            "properties": {
                "status": {"type": "integer"},
                "message": {"type": "string"},
                "data": {}
            }
        },
        "deposit.CreateRequest": {
            "type": "object",
            "required": ["amount", "payment_method_id"],
            "properties": {
                "amount": {"type": "string", "example": "100.00"},
                "payment_method_id": {"type": "string", "format": "uuid"},
                "proof_image": {"type": "string", "maxLength": 512}
            }
        },
        "withdrawal.CreateRequest": {
            "type": "object",
            "required": ["amount", "payment_method_id"],
            "properties": {
                "amount": {"type": "string", "example": "100.00"},
                "payment_method_id": {"type": "string", "format": "uuid"},
                "payment_details": {"type": "object", "additionalProperties": {"type": "string"}}
            }
        },
        "transfer.InternalRequest": {
            "type": "object",
            "required": ["recipient_account_number", "amount"],
            "properties": {
                "recipient_account_number": {"type": "string", "maxLength": 64},
                "amount": {"type": "string", "example": "100.00"},
                "description": {"type": "string", "maxLength": 512}
            }
        },
        "transfer.Recipient": {
            "type": "object",
            "required": ["account_number", "account_name", "bank_name"],
            "properties": {
                "account_number": {"type": "string", "maxLength": 64},
                "account_name": {"type": "string", "maxLength": 255},
                "bank_name": {"type": "string", "maxLength": 255},
                "bank_code": {"type": "string", "maxLength": 64},
                "country": {"type": "string", "maxLength": 64},
                "swift_code": {"type": "string", "minLength": 8, "maxLength": 11},
                "routing_number": {"type": "string", "maxLength": 64}
            }
        },
        "transfer.ExternalRequest": {
            "type": "object",
            "required": ["type", "recipient", "amount"],
            "properties": {
                "type": {"type": "string", "enum": ["local", "international"]},
                "recipient": {"$ref": "#/definitions/transfer.Recipient"},
                "amount": {"type": "string", "example": "100.00"},
                "description": {"type": "string", "maxLength": 512}
            }
        },
        "transfer.VerifyRequest": {
            "type": "object",
            "properties": {
                "tax_code": {"type": "string", "maxLength": 64},
                "imf_code": {"type": "string", "maxLength": 64},
                "cot_code": {"type": "string", "maxLength": 64}
            }
        }
    },
    "securityDefinitions": {
        "Bearer": {
            "description": "Enter your Bearer token in the format: Bearer {token}",
            "type": "apiKey",
            "name": "Authorization",
            "in": "header"
        }
    }
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it
var SwaggerInfo = &swag.Spec{
	Version:          "1.0.0",
	Host:             "localhost:3000",
	BasePath:         "/",
	Schemes:          []string{},
	Title:            "Bankcore API",
	Description:      "Digital banking ledger: deposits, withdrawals and transfers",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
