package advisor

import (
	"context"
	"strings"
	"sync"
)

// scriptedGenerator answers classification prompts with label and every other
// prompt with reply.
type scriptedGenerator struct {
	mu       sync.Mutex
	label    string
	labelErr error
	reply    string
	replyErr error
	prompts  []string
}

func (g *scriptedGenerator) Generate(_ context.Context, prompt string) (string, error) {
	g.mu.Lock()
	g.prompts = append(g.prompts, prompt)
	g.mu.Unlock()

	if strings.Contains(prompt, "Respond with ONLY ONE of these exact labels") {
		return g.label, g.labelErr
	}
	return g.reply, g.replyErr
}

func (g *scriptedGenerator) calls() int {
	g.mu.Lock()
	defer g.mu.Unlock()
	return len(g.prompts)
}
