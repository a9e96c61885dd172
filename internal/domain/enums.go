package domain

type Priority string

const (
	PriorityLow    Priority = "low"
	PriorityMedium Priority = "medium"
	PriorityHigh   Priority = "high"
)

// ValidPriorities is the canonical set of accepted priority strings.
var ValidPriorities = map[string]bool{
	"low": true, "medium": true, "high": true,
}

// ParsePriority maps a raw string onto a Priority. Unknown or empty values become medium.
func ParsePriority(s string) Priority {
	if ValidPriorities[s] {
		return Priority(s)
	}
	return PriorityMedium
}
