package verifier

import (
	"context"
	"fmt"

	"github.com/commitment-parties/agent/src/utils/model"
)

// Outcome of checking one participant for one day
type Verdict struct {
	Passed bool

	// Human readable summary of what was checked
	Evidence string
}

// Checks whether a participant met their goal on the given day.
// Implementations return an error when the evidence source is unavailable,
// never a false verdict. Errors leave the day unrecorded so the next cycle
// retries it.
type Verifier interface {
	Family() model.GoalFamily
	Verify(ctx context.Context, pool *model.Pool, participant *model.Participant, day int) (Verdict, error)
}

// Registry of verifiers keyed by goal family
type Registry struct {
	verifiers map[model.GoalFamily]Verifier
}

func NewRegistry() (self *Registry) {
	self = new(Registry)
	self.verifiers = make(map[model.GoalFamily]Verifier)
	return
}

func (self *Registry) Register(v Verifier) *Registry {
	self.verifiers[v.Family()] = v
	return self
}

func (self *Registry) Get(family model.GoalFamily) (v Verifier, err error) {
	v, ok := self.verifiers[family]
	if !ok {
		err = fmt.Errorf("no verifier registered for goal family %s", family)
	}
	return
}
