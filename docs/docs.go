// Package docs Swagger 文档，与 handler 上的 swag 注解保持一致
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
        "/ask": {
            "post": {
                "description": "把问题作为单条 user 消息转发给 OpenAI chat completions，返回第一个候选回答",
                "consumes": [
                    "application/json"
                ],
                "produces": [
                    "application/json"
                ],
                "tags": [
                    "relay"
                ],
                "summary": "提问",
                "parameters": [
                    {
                        "description": "问题",
                        "name": "request",
                        "in": "body",
                        "required": true,
                        "schema": {
                            "$ref": "#/definitions/model.AskRequest"
                        }
                    }
                ],
                "responses": {
                    "200": {
                        "description": "回答；choices 为空时 answer 为占位文本",
                        "schema": {
                            "$ref": "#/definitions/model.AskResponse"
                        }
                    },
                    "400": {
                        "description": "请求体不合法",
                        "schema": {
                            "$ref": "#/definitions/model.AskResponse"
                        }
                    },
                    "500": {
                        "description": "请求上游失败或上游响应无法解析",
                        "schema": {
                            "$ref": "#/definitions/model.AskResponse"
                        }
                    },
                    "502": {
                        "description": "上游返回非 2xx",
                        "schema": {
                            "$ref": "#/definitions/model.AskResponse"
                        }
                    }
                }
            }
        },
        "/stats": {
            "get": {
                "produces": [
                    "application/json"
                ],
                "tags": [
                    "ops"
                ],
                "summary": "结果计数",
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "$ref": "#/definitions/model.StatsResponse"
                        }
                    },
                    "503": {
                        "description": "未配置 Redis",
                        "schema": {
                            "$ref": "#/definitions/model.AskResponse"
                        }
                    }
                }
            }
        }
    },
    "definitions": {
        "model.AskRequest": {
            "type": "object",
            "required": [
                "question"
            ],
            "properties": {
                "question": {
                    "type": "string",
                    "example": "What is the capital of France?"
                }
            }
        },
        "model.AskResponse": {
            "type": "object",
            "properties": {
                "answer": {
                    "type": "string",
                    "example": "Paris"
                },
                "error": {
                    "type": "string",
                    "example": "OpenAI API error: 429 Too Many Requests"
                }
            }
        },
        "model.StatsResponse": {
            "type": "object",
            "properties": {
                "outcomes": {
                    "type": "object",
                    "additionalProperties": {
                        "type": "integer",
                        "format": "int64"
                    }
                }
            }
        }
    }
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it
var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "",
	BasePath:         "/",
	Schemes:          []string{},
	Title:            "askrelay API",
	Description:      "Relays a question to an OpenAI-compatible chat completions API.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
