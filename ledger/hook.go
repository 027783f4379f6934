package ledger

const OverflowWarning = "Make sure you don't overflow, my friend."

// AfterChange runs after every operation that changes a value, except reset.
// It must be called after the operation has logged its own line.
func AfterChange(sink Sink) {
	sink.Log(OverflowWarning)
}
