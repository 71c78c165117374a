package gfx

// DebugSeverity is the severity of a validation message.
type DebugSeverity uint32

const (
	SeverityVerbose DebugSeverity = 0x1
	SeverityInfo    DebugSeverity = 0x10
	SeverityWarning DebugSeverity = 0x100
	SeverityError   DebugSeverity = 0x1000
)

func (s DebugSeverity) String() string {
	switch {
	case s&SeverityError != 0:
		return "error"
	case s&SeverityWarning != 0:
		return "warning"
	case s&SeverityInfo != 0:
		return "info"
	case s&SeverityVerbose != 0:
		return "verbose"
	}
	return "unknown"
}

// DebugCategory is the category of a validation message.
type DebugCategory uint32

const (
	CategoryGeneral     DebugCategory = 0x1
	CategoryValidation  DebugCategory = 0x2
	CategoryPerformance DebugCategory = 0x4
)

func (c DebugCategory) String() string {
	switch {
	case c&CategoryValidation != 0:
		return "validation"
	case c&CategoryPerformance != 0:
		return "performance"
	case c&CategoryGeneral != 0:
		return "general"
	}
	return "unknown"
}

// DebugSink receives validation messages. It is write-only.
type DebugSink interface {
	Message(severity DebugSeverity, category DebugCategory, text string)
}

// DebugMessengerCreateInfo selects which messages reach Sink.
type DebugMessengerCreateInfo struct {
	Severities DebugSeverity
	Categories DebugCategory
	Sink       DebugSink
}
