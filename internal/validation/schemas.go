package validation

const taskSchema = `{
	"type": "object",
	"required": ["id", "text", "isCompleted", "relevanceScore"],
	"properties": {
		"id": {"type": "string", "minLength": 1},
		"text": {"type": "string"},
		"isCompleted": {"type": "boolean"},
		"relevanceScore": {"type": "integer"},
		"relatedGoalId": {"type": ["string", "null"]},
		"wasManuallyEdited": {"type": "boolean"}
	}
}`

var CreateGoal = MustCompile("goal", `{
	"type": "object",
	"required": ["title"],
	"properties": {
		"title": {"type": "string", "minLength": 1, "maxLength": 200},
		"targetPhrase": {"type": "string", "maxLength": 500},
		"generalDescription": {"type": "string", "maxLength": 2000}
	}
}`)

var GeneratePhrases = MustCompile("phrases", `{
	"type": "object",
	"required": ["title"],
	"properties": {
		"title": {"type": "string"}
	}
}`)

var Analyze = MustCompile("analyze", `{
	"type": "object",
	"properties": {
		"image": {"type": "string"}
	}
}`)

var SaveEntry = MustCompile("entry", `{
	"type": "object",
	"required": ["tasks"],
	"properties": {
		"date": {"type": "string", "pattern": "^\\d{4}-\\d{2}-\\d{2}$"},
		"tasks": {"type": "array", "items": `+taskSchema+`},
		"totalScore": {"type": "number"}
	}
}`)

var ScoreTasks = MustCompile("score", `{
	"type": "object",
	"required": ["tasks"],
	"properties": {
		"tasks": {"type": "array", "items": `+taskSchema+`}
	}
}`)

var TaskPatch = MustCompile("task patch", `{
	"type": "object",
	"additionalProperties": false,
	"properties": {
		"text": {"type": "string"},
		"isCompleted": {"type": "boolean"},
		"relevanceScore": {"type": "integer"},
		"relatedGoalId": {"type": ["string", "null"]}
	}
}`)
