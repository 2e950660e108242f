package dashboard

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/ukydev/tourfleet/internal/store"
)

// Cancelled is the Result error of a delete the operator declined.
const Cancelled = "cancelled"

// Confirmer asks the operator a yes/no question and blocks for the answer.
type Confirmer interface {
	Confirm(prompt string) bool
}

// ConfirmFunc adapts a function to Confirmer.
type ConfirmFunc func(prompt string) bool

func (f ConfirmFunc) Confirm(prompt string) bool { return f(prompt) }

// AlwaysConfirm accepts every prompt.
var AlwaysConfirm Confirmer = ConfirmFunc(func(string) bool { return true })

// PromptConfirmer writes the prompt to Out and reads one line from In.
// Only "y" and "yes" (any case) count as consent; EOF declines.
type PromptConfirmer struct {
	In  io.Reader
	Out io.Writer

	reader *bufio.Reader
}

func (p *PromptConfirmer) Confirm(prompt string) bool {
	if p.reader == nil {
		p.reader = bufio.NewReader(p.In)
	}
	fmt.Fprintf(p.Out, "%s [y/N]: ", prompt)
	line, err := p.reader.ReadString('\n')
	if err != nil && line == "" {
		return false
	}
	switch strings.ToLower(strings.TrimSpace(line)) {
	case "y", "yes":
		return true
	}
	return false
}

// ConfirmDelete runs op only after c confirms prompt. A nil confirmer
// declines.
func ConfirmDelete(c Confirmer, prompt string, op func() store.Result) store.Result {
	if c == nil || !c.Confirm(prompt) {
		return store.Result{Success: false, Error: Cancelled}
	}
	return op()
}
