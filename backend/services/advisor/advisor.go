// Package advisor answers free-text learning questions through a generative
// model: it classifies the query, builds the matching prompt and normalizes the
// reply into either a step list or a text answer.
package advisor

import (
	"context"
	"errors"
	"strings"

	"learnhub/backend/utils"
)

// Generator is the generative-AI backend. Only Generate performs network I/O.
type Generator interface {
	Generate(ctx context.Context, prompt string) (string, error)
}

type Request struct {
	Query     string
	UserName  string
	Interests []string
	Goals     []string
	Courses   []CourseSummary
}

func (r Request) displayName() string {
	if strings.TrimSpace(r.UserName) == "" {
		return "User"
	}
	return r.UserName
}

type Result struct {
	ResponseType    QueryType
	SuggestedPath   []PathStep
	GeneralResponse *string
	AINotes         string
}

const (
	NotesPathOK       = "Learning path generated successfully by AI."
	NotesAnswerOK     = "AI response to your question generated successfully."
	NotesTextFallback = "AI provided a text response instead of a learning path."
	NotesRawFallback  = "AI response received, but could not be fully structured. The AI suggested the following: "
	NotesUnavailable  = "Could not connect to the AI service or an unexpected error occurred."

	UnavailableMessage = "I'm sorry, but I couldn't process your request at this time. Please try again later or contact support if the issue persists."
)

type Advisor struct {
	gen        Generator
	classifier *Classifier
	log        *utils.Logger
}

// New returns an Advisor; a nil gen leaves it unconfigured.
func New(gen Generator, log *utils.Logger) *Advisor {
	return &Advisor{
		gen:        gen,
		classifier: NewClassifier(gen),
		log:        log.With("service", "Advisor"),
	}
}

// ErrNotConfigured is returned by Advise when no backend is set.
var ErrNotConfigured = errors.New("AI service is not configured")

func (a *Advisor) Configured() bool { return a.gen != nil }

// Advise returns an error only when the backend call for the answer itself
// fails; classification failures degrade to GeneralQuestion.
func (a *Advisor) Advise(ctx context.Context, req Request) (*Result, error) {
	if !a.Configured() {
		return nil, ErrNotConfigured
	}
	queryType, method := a.classifier.classify(ctx, req.Query)
	classificationsTotal.WithLabelValues(method, string(queryType)).Inc()
	a.log.Info("query classified", "type", queryType, "method", method)

	if queryType == LearningPath {
		return a.learningPath(ctx, req)
	}
	return a.generalAnswer(ctx, req)
}

func (a *Advisor) learningPath(ctx context.Context, req Request) (*Result, error) {
	raw, err := a.generate(ctx, learningPathPrompt(req))
	if err != nil {
		return nil, err
	}

	steps, perr := parseLearningPath(raw)
	if perr == nil {
		a.log.Debug("learning path parsed", "steps", len(steps))
		return a.done(&Result{ResponseType: LearningPath, SuggestedPath: steps, AINotes: NotesPathOK}), nil
	}

	a.log.Warn("could not parse learning path", "error", perr, "response_chars", len(raw))
	if looksLikeProse(raw) {
		text := strings.TrimSpace(raw)
		return a.done(&Result{ResponseType: GeneralQuestion, GeneralResponse: &text, AINotes: NotesTextFallback}), nil
	}
	return a.done(&Result{ResponseType: LearningPath, SuggestedPath: rawStep(raw), AINotes: NotesRawFallback}), nil
}

func (a *Advisor) generalAnswer(ctx context.Context, req Request) (*Result, error) {
	raw, err := a.generate(ctx, generalQuestionPrompt(req))
	if err != nil {
		return nil, err
	}
	text := strings.TrimSpace(raw)
	return a.done(&Result{ResponseType: GeneralQuestion, GeneralResponse: &text, AINotes: NotesAnswerOK}), nil
}

func (a *Advisor) generate(ctx context.Context, prompt string) (string, error) {
	out, err := a.gen.Generate(ctx, prompt)
	if err != nil {
		responsesTotal.WithLabelValues(string(ResponseError)).Inc()
		a.log.Error("AI backend call failed", "error", err)
		return "", err
	}
	return out, nil
}

func (a *Advisor) done(res *Result) *Result {
	responsesTotal.WithLabelValues(string(res.ResponseType)).Inc()
	return res
}
