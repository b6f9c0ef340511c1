package swagger

import "github.com/swaggo/swag"

const docTemplate = `{
    "swagger": "2.0",
    "info": {
        "title": "LearningFlow API",
        "description": "Study assistant backend: document upload, AI study material, quizzes and reports",
        "version": "1.0.0"
    },
    "basePath": "/",
    "schemes": [
        "http"
    ],
    "tags": [
        {"name": "Authentication", "description": "Accounts and tokens"},
        {"name": "Upload", "description": "Document intake and retrieval"},
        {"name": "Content", "description": "Quizzes, chat and explanations"},
        {"name": "Sessions", "description": "Wrong notes, saved studies and files"},
        {"name": "Reports", "description": "PDF study reports"}
    ],
    "securityDefinitions": {
        "BearerAuth": {"type": "apiKey", "name": "Authorization", "in": "header"}
    },
    "paths": {
        "/health": {
            "get": {
                "summary": "Health check",
                "responses": {
                    "200": {"description": "OK"}
                }
            }
        },
        "/auth/signup": {
            "post": {
                "tags": ["Authentication"],
                "summary": "Register a new account",
                "parameters": [
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/SignupRequest"}}
                ],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "409": {"description": "Email already registered"}
                }
            }
        },
        "/auth/login": {
            "post": {
                "tags": ["Authentication"],
                "summary": "Authenticate user",
                "parameters": [
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/LoginRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "401": {"description": "Invalid credentials"}
                }
            }
        },
        "/auth/me": {
            "get": {
                "tags": ["Authentication"],
                "summary": "Current user profile",
                "security": [{"BearerAuth": []}],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/upload": {
            "post": {
                "tags": ["Upload"],
                "summary": "Upload a document",
                "consumes": ["multipart/form-data"],
                "parameters": [
                    {"name": "file", "in": "formData", "required": true, "type": "file"},
                    {"name": "filename", "in": "formData", "type": "string"},
                    {"name": "category", "in": "formData", "type": "string"}
                ],
                "responses": {
                    "200": {"description": "Study material", "schema": {"$ref": "#/definitions/UploadResult"}},
                    "400": {"description": "Unsupported or empty file"}
                }
            }
        },
        "/uploads/{filename}": {
            "get": {
                "tags": ["Upload"],
                "summary": "Download a stored document",
                "produces": ["application/pdf"],
                "parameters": [
                    {"name": "filename", "in": "path", "required": true, "type": "string"}
                ],
                "responses": {
                    "200": {"description": "File"},
                    "404": {"description": "Not found"}
                }
            }
        },
        "/generate-quiz": {
            "post": {
                "tags": ["Content"],
                "summary": "Generate a quiz",
                "parameters": [
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/GenerateQuizRequest"}}
                ],
                "responses": {
                    "200": {"description": "Quiz", "schema": {"$ref": "#/definitions/QuizData"}}
                }
            }
        },
        "/chat": {
            "post": {
                "tags": ["Content"],
                "summary": "Ask about the document",
                "parameters": [
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/ChatRequest"}}
                ],
                "responses": {
                    "200": {"description": "Answer"}
                }
            }
        },
        "/explain": {
            "post": {
                "tags": ["Content"],
                "summary": "Explain a passage",
                "parameters": [
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/ExplainRequest"}}
                ],
                "responses": {
                    "200": {"description": "Explanation"}
                }
            }
        },
        "/feedback": {
            "post": {
                "tags": ["Content"],
                "summary": "Grade a quiz answer",
                "parameters": [
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/FeedbackRequest"}}
                ],
                "responses": {
                    "200": {"description": "Verdict", "schema": {"$ref": "#/definitions/FeedbackResponse"}}
                }
            }
        },
        "/pdf": {
            "post": {
                "tags": ["Reports"],
                "summary": "Download a study report",
                "produces": ["application/pdf"],
                "parameters": [
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/StudyReport"}}
                ],
                "responses": {
                    "200": {"description": "PDF attachment"}
                }
            }
        },
        "/wrongnotes": {
            "get": {
                "tags": ["Sessions"],
                "summary": "List wrong notes",
                "security": [{"BearerAuth": []}],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            },
            "post": {
                "tags": ["Sessions"],
                "summary": "Record a wrong answer",
                "security": [{"BearerAuth": []}],
                "parameters": [
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/SaveWrongNoteRequest"}}
                ],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/study/save": {
            "post": {
                "tags": ["Sessions"],
                "summary": "Save a study outcome",
                "security": [{"BearerAuth": []}],
                "parameters": [
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/SaveStudyRequest"}}
                ],
                "responses": {
                    "200": {"description": "Saved", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/mypage/files": {
            "get": {
                "tags": ["Sessions"],
                "summary": "List uploaded files",
                "security": [{"BearerAuth": []}],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/mypage/files/{id}": {
            "delete": {
                "tags": ["Sessions"],
                "summary": "Delete an uploaded file",
                "security": [{"BearerAuth": []}],
                "parameters": [
                    {"name": "id", "in": "path", "required": true, "type": "string"}
                ],
                "responses": {
                    "204": {"description": "No Content"}
                }
            }
        }
    },
    "definitions": {
        "SignupRequest": {
            "type": "object",
            "properties": {
                "name": {"type": "string"},
                "email": {"type": "string"},
                "password": {"type": "string"}
            },
            "required": ["name", "email", "password"]
        },
        "LoginRequest": {
            "type": "object",
            "properties": {
                "email": {"type": "string"},
                "password": {"type": "string"}
            },
            "required": ["email", "password"]
        },
        "GenerateQuizRequest": {
            "type": "object",
            "properties": {
                "text": {"type": "string"},
                "quiz_count": {"type": "integer"},
                "quiz_type": {"type": "string", "enum": ["objective", "truefalse", "short"]}
            },
            "required": ["text"]
        },
        "ChatRequest": {
            "type": "object",
            "properties": {
                "question": {"type": "string"},
                "pdfText": {"type": "string"}
            },
            "required": ["question"]
        },
        "ExplainRequest": {
            "type": "object",
            "properties": {
                "text": {"type": "string"}
            },
            "required": ["text"]
        },
        "FeedbackRequest": {
            "type": "object",
            "properties": {
                "question": {"type": "string"},
                "user_answer": {"type": "string"},
                "correct_answer": {"type": "string"}
            },
            "required": ["question", "correct_answer"]
        },
        "FeedbackResponse": {
            "type": "object",
            "properties": {
                "is_correct": {"type": "boolean"},
                "feedback": {"type": "string"}
            }
        },
        "SaveWrongNoteRequest": {
            "type": "object",
            "properties": {
                "session_id": {"type": "string"},
                "question": {"type": "string"},
                "user_answer": {"type": "string"},
                "correct_answer": {"type": "string"},
                "explanation": {"type": "string"}
            },
            "required": ["question", "correct_answer"]
        },
        "SaveStudyRequest": {
            "type": "object",
            "properties": {
                "session_id": {"type": "string"},
                "summary_data": {"type": "object"},
                "quiz_data": {"type": "object"},
                "wrong_notes": {"type": "object"}
            },
            "required": ["session_id"]
        },
        "QuizData": {
            "type": "object",
            "properties": {
                "questions": {
                    "type": "array",
                    "items": {"$ref": "#/definitions/QuizQuestion"}
                }
            }
        },
        "QuizQuestion": {
            "type": "object",
            "properties": {
                "id": {"type": "integer"},
                "question": {"type": "string"},
                "options": {"type": "array", "items": {"type": "string"}},
                "answer": {"type": "string"}
            }
        },
        "UploadResult": {
            "type": "object",
            "properties": {
                "fullSummary": {"type": "array", "items": {"type": "object"}},
                "structuredSummary": {"type": "array", "items": {"type": "object"}},
                "keywords": {"type": "array", "items": {"type": "string"}},
                "expectedQuestions": {"type": "array", "items": {"type": "object"}},
                "quizData": {"$ref": "#/definitions/QuizData"},
                "translatedText": {"type": "string"},
                "pdfUrl": {"type": "string"},
                "pdfText": {"type": "string"},
                "sessionId": {"type": "string"}
            }
        },
        "StudyReport": {
            "type": "object",
            "properties": {
                "summary": {"type": "object"},
                "quiz_results": {"type": "array", "items": {"type": "object"}},
                "wrong_notes": {"type": "object"}
            }
        },
        "APIError": {
            "type": "object",
            "properties": {
                "code": {"type": "string"},
                "message": {"type": "string"},
                "status": {"type": "integer"}
            }
        },
        "ResponseEnvelope": {
            "type": "object",
            "properties": {
                "data": {"type": "object"},
                "error": {"$ref": "#/definitions/APIError"},
                "meta": {"type": "object"}
            }
        }
    }
}`

type swaggerDoc struct{}

// ReadDoc returns the Swagger document.
func (s *swaggerDoc) ReadDoc() string {
	return docTemplate
}

func init() {
	swag.Register(swag.Name, &swaggerDoc{})
}
