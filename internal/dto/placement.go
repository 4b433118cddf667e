package dto

// SampleRequest holds the query parameters of GET /english-test/questions
type SampleRequest struct {
	Mode  string `query:"mode"`
	Total int    `query:"total"`
	// Limit is the legacy name of Total; when set it wins.
	Limit int `query:"limit"`
}

// QuestionItem is one question as shown to the test-taker
// @Description Question with shuffled options, the correct answer is never exposed
type QuestionItem struct {
	ID       string   `json:"id" example:"01HZX3J6Y8Q2M7W9E4R5T6Y7U8"`
	Question string   `json:"question" example:"She ___ to school every day."`
	Options  []string `json:"options" example:"goes,go,going,gone"`
}

// SampleResponse is the question set of one test
type SampleResponse struct {
	Questions []QuestionItem `json:"questions"`
}

// AnswerItem is one submitted answer
type AnswerItem struct {
	QuestionID string `json:"questionId" example:"01HZX3J6Y8Q2M7W9E4R5T6Y7U8"`
	// QID is the legacy name of QuestionID
	QID      string `json:"qid,omitempty" swaggerignore:"true"`
	Selected string `json:"selected" example:"goes"`
}

// ID returns the question id, falling back to the legacy field.
func (a AnswerItem) ID() string {
	if a.QuestionID != "" {
		return a.QuestionID
	}
	return a.QID
}

// GradeRequest is the body of POST /english-test/grade
// @Description Answers of one test
type GradeRequest struct {
	Answers []AnswerItem `json:"answers"`
}

// EstimatedLevel holds the placement in both schemes
type EstimatedLevel struct {
	Quick3 string `json:"quick3" example:"Intermediate"`
	CEFR6  string `json:"cefr6" example:"B1"`
}

// GradedDetail is the per-question breakdown of a graded test
type GradedDetail struct {
	ID        string  `json:"id"`
	Question  string  `json:"question"`
	Selected  string  `json:"selected"`
	Correct   string  `json:"correct"`
	IsCorrect bool    `json:"isCorrect"`
	Quick3    *string `json:"quick3"`
	Level6    *string `json:"level6"`
}

// GradeMeta exposes the raw per-band tallies
type GradeMeta struct {
	QuickSeen    map[string]int `json:"quick_seen"`
	QuickCorrect map[string]int `json:"quick_correct"`
	CEFRSeen     map[string]int `json:"cefr_seen"`
	CEFRCorrect  map[string]int `json:"cefr_correct"`
}

// GradeResponse is the placement report
// @Description Score, levels and per-question breakdown
type GradeResponse struct {
	Score          float64        `json:"score" example:"75"`
	Correct        int            `json:"correct" example:"9"`
	Total          int            `json:"total" example:"12"`
	EstimatedLevel EstimatedLevel `json:"estimatedLevel"`
	Feedback       string         `json:"feedback"`
	Details        []GradedDetail `json:"details"`
	Meta           GradeMeta      `json:"meta"`
}

// HealthResponse reports the state of the service and its dependencies
type HealthResponse struct {
	Status    string `json:"status" example:"ok"`
	Bank      string `json:"bank" example:"up"`
	Questions int    `json:"questions" example:"240"`
	Cache     string `json:"cache" example:"disabled"`
}

// RootResponse is the body of the root probe
type RootResponse struct {
	OK      bool   `json:"ok"`
	Service string `json:"service"`
	Docs    string `json:"docs"`
	Health  string `json:"health"`
}
