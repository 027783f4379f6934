package ledger

// Sink receives the human readable lines a contract emits while it runs.
type Sink interface {
	Log(line string)
}

type SinkFunc func(line string)

func (f SinkFunc) Log(line string) {
	f(line)
}

// Transcript is a Sink that keeps every line in order.
type Transcript struct {
	Lines []string
}

func (t *Transcript) Log(line string) {
	t.Lines = append(t.Lines, line)
}

// Discard drops every line.
var Discard Sink = SinkFunc(func(string) {})
