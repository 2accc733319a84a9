// Package docs registers the OpenAPI document served under /swagger. The layout
// follows swag's generated output; keep it in sync with the handler annotations
// by hand or regenerate with `swag init -g cmd/main.go`.
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
        "/tournaments": {
            "get": {
                "produces": ["application/json"],
                "tags": ["tournaments"],
                "summary": "List tournaments",
                "parameters": [
                    {"type": "string", "description": "upcoming, in_progress, completed or cancelled", "name": "status", "in": "query"},
                    {"type": "string", "description": "league, knockout or custom", "name": "format", "in": "query"},
                    {"type": "string", "description": "Owner user ID", "name": "owner_id", "in": "query"},
                    {"type": "integer", "description": "Page size (default 20)", "name": "limit", "in": "query"},
                    {"type": "integer", "description": "Offset", "name": "offset", "in": "query"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"type": "object", "additionalProperties": {"type": "array", "items": {"$ref": "#/definitions/models.Tournament"}}}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/errorResponse"}}
                }
            },
            "post": {
                "security": [{"BearerAuth": []}],
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["tournaments"],
                "summary": "Create a tournament",
                "parameters": [
                    {"description": "Tournament", "name": "input", "in": "body", "required": true, "schema": {"$ref": "#/definitions/services.CreateTournamentInput"}}
                ],
                "responses": {
                    "201": {"description": "Created", "schema": {"type": "object", "additionalProperties": {"$ref": "#/definitions/models.Tournament"}}},
                    "401": {"description": "Unauthorized", "schema": {"$ref": "#/definitions/errorResponse"}},
                    "409": {"description": "Conflict", "schema": {"$ref": "#/definitions/errorResponse"}},
                    "422": {"description": "Unprocessable Entity", "schema": {"$ref": "#/definitions/errorResponse"}}
                }
            }
        },
        "/tournaments/{tournamentID}": {
            "get": {
                "produces": ["application/json"],
                "tags": ["tournaments"],
                "summary": "Get a tournament with its teams and matches",
                "parameters": [{"type": "string", "description": "Tournament ID", "name": "tournamentID", "in": "path", "required": true}],
                "responses": {
                    "200": {"description": "OK", "schema": {"type": "object", "additionalProperties": {"$ref": "#/definitions/models.Tournament"}}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/errorResponse"}}
                }
            },
            "put": {
                "security": [{"BearerAuth": []}],
                "description": "Name, description, format and start date can change while the tournament is upcoming. Status may only be set to cancelled.",
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["tournaments"],
                "summary": "Update a tournament",
                "parameters": [
                    {"type": "string", "description": "Tournament ID", "name": "tournamentID", "in": "path", "required": true},
                    {"description": "Changes", "name": "input", "in": "body", "required": true, "schema": {"$ref": "#/definitions/services.UpdateTournamentInput"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"type": "object", "additionalProperties": {"$ref": "#/definitions/models.Tournament"}}},
                    "403": {"description": "Forbidden", "schema": {"$ref": "#/definitions/errorResponse"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/errorResponse"}},
                    "409": {"description": "Conflict", "schema": {"$ref": "#/definitions/errorResponse"}},
                    "422": {"description": "Unprocessable Entity", "schema": {"$ref": "#/definitions/errorResponse"}}
                }
            },
            "delete": {
                "security": [{"BearerAuth": []}],
                "description": "Removes the tournament with its participants and matches. A tournament in progress must be cancelled first.",
                "tags": ["tournaments"],
                "summary": "Delete a tournament",
                "parameters": [{"type": "string", "description": "Tournament ID", "name": "tournamentID", "in": "path", "required": true}],
                "responses": {
                    "204": {"description": "No Content"},
                    "403": {"description": "Forbidden", "schema": {"$ref": "#/definitions/errorResponse"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/errorResponse"}},
                    "409": {"description": "Conflict", "schema": {"$ref": "#/definitions/errorResponse"}}
                }
            }
        },
        "/tournaments/{tournamentID}/invite": {
            "post": {
                "security": [{"BearerAuth": []}],
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["participants"],
                "summary": "Invite a team to an upcoming tournament",
                "parameters": [
                    {"type": "string", "description": "Tournament ID", "name": "tournamentID", "in": "path", "required": true},
                    {"description": "Team", "name": "input", "in": "body", "required": true, "schema": {"$ref": "#/definitions/handlers.inviteTeamRequest"}}
                ],
                "responses": {
                    "201": {"description": "Created", "schema": {"type": "object", "additionalProperties": {"$ref": "#/definitions/models.TournamentTeam"}}},
                    "403": {"description": "Forbidden", "schema": {"$ref": "#/definitions/errorResponse"}},
                    "409": {"description": "Conflict", "schema": {"$ref": "#/definitions/errorResponse"}}
                }
            }
        },
        "/tournaments/{tournamentID}/rsvp": {
            "post": {
                "security": [{"BearerAuth": []}],
                "description": "Only the manager of the invited team may answer. Without teamId the caller's single invited team is used.",
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["participants"],
                "summary": "Accept or decline a tournament invite",
                "parameters": [
                    {"type": "string", "description": "Tournament ID", "name": "tournamentID", "in": "path", "required": true},
                    {"description": "Answer", "name": "input", "in": "body", "required": true, "schema": {"$ref": "#/definitions/handlers.rsvpRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"type": "object", "additionalProperties": {"$ref": "#/definitions/models.TournamentTeam"}}},
                    "403": {"description": "Forbidden", "schema": {"$ref": "#/definitions/errorResponse"}},
                    "409": {"description": "Conflict", "schema": {"$ref": "#/definitions/errorResponse"}}
                }
            }
        },
        "/tournaments/{tournamentID}/generate-fixtures": {
            "post": {
                "security": [{"BearerAuth": []}],
                "description": "League tournaments get a full round-robin; knockout tournaments get their first round.",
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["fixtures"],
                "summary": "Generate the fixture list and start the tournament",
                "parameters": [
                    {"type": "string", "description": "Tournament ID", "name": "tournamentID", "in": "path", "required": true},
                    {"description": "Schedule", "name": "input", "in": "body", "required": true, "schema": {"$ref": "#/definitions/services.GenerateFixturesInput"}}
                ],
                "responses": {
                    "201": {"description": "Created", "schema": {"type": "object", "additionalProperties": {"type": "array", "items": {"$ref": "#/definitions/models.Match"}}}},
                    "403": {"description": "Forbidden", "schema": {"$ref": "#/definitions/errorResponse"}},
                    "409": {"description": "Conflict", "schema": {"$ref": "#/definitions/errorResponse"}},
                    "422": {"description": "Unprocessable Entity", "schema": {"$ref": "#/definitions/errorResponse"}}
                }
            }
        },
        "/tournaments/{tournamentID}/advance": {
            "post": {
                "security": [{"BearerAuth": []}],
                "description": "Draws the next round once every match of the current round is completed, or records the champion after the final.",
                "produces": ["application/json"],
                "tags": ["fixtures"],
                "summary": "Advance a knockout tournament",
                "parameters": [{"type": "string", "description": "Tournament ID", "name": "tournamentID", "in": "path", "required": true}],
                "responses": {
                    "200": {"description": "OK", "schema": {"type": "object", "additionalProperties": {"$ref": "#/definitions/services.AdvanceResult"}}},
                    "409": {"description": "Conflict", "schema": {"$ref": "#/definitions/errorResponse"}}
                }
            }
        },
        "/tournaments/{tournamentID}/matches": {
            "get": {
                "produces": ["application/json"],
                "tags": ["matches"],
                "summary": "List tournament matches in schedule order",
                "parameters": [
                    {"type": "string", "description": "Tournament ID", "name": "tournamentID", "in": "path", "required": true},
                    {"type": "string", "description": "scheduled, completed or cancelled", "name": "status", "in": "query"},
                    {"type": "integer", "description": "Round number", "name": "round", "in": "query"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"type": "object", "additionalProperties": {"type": "array", "items": {"$ref": "#/definitions/models.Match"}}}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/errorResponse"}}
                }
            }
        },
        "/tournaments/{tournamentID}/matches/{matchID}/complete": {
            "post": {
                "security": [{"BearerAuth": []}],
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["matches"],
                "summary": "Submit the final score of a match",
                "parameters": [
                    {"type": "string", "description": "Tournament ID", "name": "tournamentID", "in": "path", "required": true},
                    {"type": "string", "description": "Match ID", "name": "matchID", "in": "path", "required": true},
                    {"description": "Score", "name": "input", "in": "body", "required": true, "schema": {"$ref": "#/definitions/services.CompleteMatchInput"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"type": "object", "additionalProperties": {"$ref": "#/definitions/models.Match"}}},
                    "409": {"description": "Conflict", "schema": {"$ref": "#/definitions/errorResponse"}},
                    "422": {"description": "Unprocessable Entity", "schema": {"$ref": "#/definitions/errorResponse"}}
                }
            }
        },
        "/tournaments/{tournamentID}/matches/{matchID}/cancel": {
            "post": {
                "security": [{"BearerAuth": []}],
                "produces": ["application/json"],
                "tags": ["matches"],
                "summary": "Cancel a scheduled league match",
                "parameters": [
                    {"type": "string", "description": "Tournament ID", "name": "tournamentID", "in": "path", "required": true},
                    {"type": "string", "description": "Match ID", "name": "matchID", "in": "path", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"type": "object", "additionalProperties": {"$ref": "#/definitions/models.Match"}}},
                    "409": {"description": "Conflict", "schema": {"$ref": "#/definitions/errorResponse"}}
                }
            }
        },
        "/tournaments/{tournamentID}/standings": {
            "get": {
                "description": "Ranked by points, goal difference, then goals for.",
                "produces": ["application/json"],
                "tags": ["standings"],
                "summary": "Current standings",
                "parameters": [{"type": "string", "description": "Tournament ID", "name": "tournamentID", "in": "path", "required": true}],
                "responses": {
                    "200": {"description": "OK", "schema": {"type": "object", "additionalProperties": {"type": "array", "items": {"$ref": "#/definitions/models.Standing"}}}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/errorResponse"}}
                }
            }
        }
    },
    "definitions": {
        "errorResponse": {
            "type": "object",
            "properties": {"error": {"type": "string"}}
        },
        "handlers.inviteTeamRequest": {
            "type": "object",
            "properties": {"teamId": {"type": "string"}}
        },
        "handlers.rsvpRequest": {
            "type": "object",
            "properties": {
                "teamId": {"type": "string"},
                "status": {"type": "string", "enum": ["confirmed", "declined"]}
            }
        },
        "services.CreateTournamentInput": {
            "type": "object",
            "properties": {
                "name": {"type": "string"},
                "description": {"type": "string"},
                "format": {"type": "string", "enum": ["league", "knockout", "custom"]},
                "startDate": {"type": "string", "format": "date-time"}
            }
        },
        "services.UpdateTournamentInput": {
            "type": "object",
            "properties": {
                "name": {"type": "string"},
                "description": {"type": "string"},
                "format": {"type": "string", "enum": ["league", "knockout", "custom"]},
                "startDate": {"type": "string", "format": "date-time"},
                "status": {"type": "string", "enum": ["cancelled"]}
            }
        },
        "services.GenerateFixturesInput": {
            "type": "object",
            "properties": {
                "venueId": {"type": "string"},
                "startDate": {"type": "string", "format": "date-time"},
                "daysPerRound": {"type": "integer", "default": 7}
            }
        },
        "services.CompleteMatchInput": {
            "type": "object",
            "properties": {
                "homeScore": {"type": "integer", "minimum": 0},
                "awayScore": {"type": "integer", "minimum": 0}
            }
        },
        "services.AdvanceResult": {
            "type": "object",
            "properties": {
                "stage": {"type": "string"},
                "round": {"type": "integer"},
                "matches": {"type": "array", "items": {"$ref": "#/definitions/models.Match"}},
                "championTeamId": {"type": "string"}
            }
        },
        "models.Tournament": {
            "type": "object",
            "properties": {
                "id": {"type": "string"},
                "name": {"type": "string"},
                "description": {"type": "string"},
                "format": {"type": "string"},
                "status": {"type": "string"},
                "createdById": {"type": "string"},
                "startDate": {"type": "string", "format": "date-time"},
                "venueId": {"type": "string"},
                "fixturesStartAt": {"type": "string", "format": "date-time"},
                "daysPerRound": {"type": "integer"},
                "winnerTeamId": {"type": "string"},
                "teams": {"type": "array", "items": {"$ref": "#/definitions/models.TournamentTeam"}},
                "matches": {"type": "array", "items": {"$ref": "#/definitions/models.Match"}}
            }
        },
        "models.TournamentTeam": {
            "type": "object",
            "properties": {
                "id": {"type": "string"},
                "tournamentId": {"type": "string"},
                "teamId": {"type": "string"},
                "status": {"type": "string"},
                "seed": {"type": "integer"},
                "matchesPlayed": {"type": "integer"},
                "wins": {"type": "integer"},
                "draws": {"type": "integer"},
                "losses": {"type": "integer"},
                "goalsFor": {"type": "integer"},
                "goalsAgainst": {"type": "integer"},
                "goalDifference": {"type": "integer"},
                "points": {"type": "integer"}
            }
        },
        "models.Match": {
            "type": "object",
            "properties": {
                "id": {"type": "string"},
                "tournamentId": {"type": "string"},
                "homeTeamId": {"type": "string"},
                "awayTeamId": {"type": "string"},
                "venueId": {"type": "string"},
                "date": {"type": "string", "format": "date-time"},
                "duration": {"type": "integer"},
                "round": {"type": "integer"},
                "orderInRound": {"type": "integer"},
                "status": {"type": "string"},
                "homeScore": {"type": "integer"},
                "awayScore": {"type": "integer"},
                "completedAt": {"type": "string", "format": "date-time"}
            }
        },
        "models.Standing": {
            "type": "object",
            "properties": {
                "rank": {"type": "integer"},
                "teamId": {"type": "string"},
                "matchesPlayed": {"type": "integer"},
                "wins": {"type": "integer"},
                "draws": {"type": "integer"},
                "losses": {"type": "integer"},
                "goalsFor": {"type": "integer"},
                "goalsAgainst": {"type": "integer"},
                "goalDifference": {"type": "integer"},
                "points": {"type": "integer"}
            }
        }
    },
    "securityDefinitions": {
        "BearerAuth": {
            "type": "apiKey",
            "name": "Authorization",
            "in": "header"
        }
    }
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it
var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "",
	BasePath:         "/api",
	Schemes:          []string{},
	Title:            "Tournament Fixtures API",
	Description:      "Fixture generation, match results and standings for league and knockout tournaments.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
