package advisor

import (
	"context"
	"strings"
)

type QueryType string

const (
	LearningPath    QueryType = "LEARNING_PATH"
	GeneralQuestion QueryType = "GENERAL_QUESTION"
	ResponseError   QueryType = "ERROR"
)

// Classification methods, used as a metric label and in logs.
const (
	viaQuestionPattern = "question_pattern"
	viaPathKeyword     = "path_keyword"
	viaModel           = "model"
	viaModelFailure    = "model_failure"
)

// Question patterns are checked first; any hit wins over a path keyword.
var questionPatterns = []string{
	"what is", "what are", "how does", "explain", "define", "describe",
	"why is", "why are", "can you tell me about", "tell me about",
	"difference between", "compare", "vs", "versus", "?", "meaning of",
}

var learningPathKeywords = []string{
	"learning path", "roadmap", "path", "steps to", "become", "how to become",
	"learn to be", "career path", "how do i get started", "journey to", "start learning",
	"how to learn", "how can i learn", "steps for learning", "guide to learning",
}

// Classifier decides whether a query asks for a learning path. Heuristics run
// first; only when neither list matches is the model asked, and any model
// failure falls back to GeneralQuestion.
type Classifier struct {
	gen Generator
}

func NewClassifier(gen Generator) *Classifier {
	return &Classifier{gen: gen}
}

func (c *Classifier) Classify(ctx context.Context, query string) QueryType {
	qt, _ := c.classify(ctx, query)
	return qt
}

func (c *Classifier) classify(ctx context.Context, query string) (QueryType, string) {
	if qt, method, ok := classifyHeuristic(query); ok {
		return qt, method
	}
	if c.gen == nil {
		return GeneralQuestion, viaModelFailure
	}
	out, err := c.gen.Generate(ctx, classificationPrompt(query))
	if err != nil {
		return GeneralQuestion, viaModelFailure
	}
	if strings.Contains(strings.TrimSpace(out), string(LearningPath)) {
		return LearningPath, viaModel
	}
	return GeneralQuestion, viaModel
}

func classifyHeuristic(query string) (QueryType, string, bool) {
	q := strings.ToLower(query)
	for _, p := range questionPatterns {
		if strings.Contains(q, p) {
			return GeneralQuestion, viaQuestionPattern, true
		}
	}
	for _, k := range learningPathKeywords {
		if strings.Contains(q, k) {
			return LearningPath, viaPathKeyword, true
		}
	}
	return "", "", false
}
