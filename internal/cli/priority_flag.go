package cli

import (
	"fmt"
	"strings"

	"github.com/alexanderramin/studyslots/internal/domain"
	"github.com/spf13/pflag"
)

// priorityFlag is a pflag.Value that only accepts low, medium or high.
type priorityFlag struct {
	value domain.Priority
}

var _ pflag.Value = (*priorityFlag)(nil)

func (p *priorityFlag) String() string {
	if p.value == "" {
		return string(domain.PriorityMedium)
	}
	return string(p.value)
}

func (p *priorityFlag) Set(s string) error {
	switch v := domain.Priority(strings.ToLower(strings.TrimSpace(s))); v {
	case domain.PriorityLow, domain.PriorityMedium, domain.PriorityHigh:
		p.value = v
		return nil
	}
	return fmt.Errorf("priority must be low, medium or high, got %q", s)
}

func (p *priorityFlag) Type() string { return "priority" }
