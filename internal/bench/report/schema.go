package report

// SchemaJSON is the JSON Schema of a report document.
const SchemaJSON = `{
	"$schema": "http://json-schema.org/draft-07/schema#",
	"definitions": {
		"latency": {
			"type": "object",
			"required": ["count", "min", "mean", "p50", "p90", "p99", "max"],
			"properties": {
				"count": { "type": "integer", "minimum": 0 },
				"min": { "type": "integer", "minimum": 0 },
				"mean": { "type": "integer", "minimum": 0 },
				"p50": { "type": "integer", "minimum": 0 },
				"p90": { "type": "integer", "minimum": 0 },
				"p99": { "type": "integer", "minimum": 0 },
				"max": { "type": "integer", "minimum": 0 }
			}
		},
		"kinds": {
			"type": "object",
			"propertyNames": { "enum": ["trapezoid", "rectangle", "square"] }
		}
	},
	"type": "object",
	"required": ["version", "name", "count", "seed", "startTime", "durationSeconds", "verified", "strategies"],
	"properties": {
		"version": { "const": 1 },
		"name": { "type": "string" },
		"description": { "type": "string" },
		"count": { "type": "integer", "minimum": 0 },
		"seed": { "type": "integer" },
		"startTime": { "type": "string", "format": "date-time" },
		"durationSeconds": { "type": "number", "minimum": 0 },
		"verified": { "type": "boolean" },
		"strategies": {
			"type": "array",
			"items": {
				"type": "object",
				"required": ["name", "executor", "label", "durationSeconds", "workers", "tasks", "shapes", "counts", "checksums", "latency"],
				"properties": {
					"name": { "type": "string", "minLength": 1 },
					"executor": { "enum": ["sequential", "threads", "processes", "mixed"] },
					"label": { "type": "string" },
					"durationSeconds": { "type": "number", "minimum": 0 },
					"workers": { "type": "integer", "minimum": 0 },
					"threads": { "type": "integer", "minimum": 0 },
					"tasks": { "type": "integer", "minimum": 0 },
					"shapes": { "type": "integer", "minimum": 0 },
					"shapesPerSecond": { "type": "number", "minimum": 0 },
					"counts": {
						"allOf": [{ "$ref": "#/definitions/kinds" }],
						"additionalProperties": { "type": "integer", "minimum": 0 }
					},
					"checksums": {
						"allOf": [{ "$ref": "#/definitions/kinds" }],
						"additionalProperties": { "type": "number", "minimum": 0 }
					},
					"latency": { "$ref": "#/definitions/latency" },
					"perKind": {
						"allOf": [{ "$ref": "#/definitions/kinds" }],
						"additionalProperties": { "$ref": "#/definitions/latency" }
					}
				}
			}
		}
	}
}`
