package we

import (
	"github.com/rs/zerolog"
)

// Receipt collects the lines a call logs and forwards each to the host logger
// as it arrives.
type Receipt struct {
	log      *zerolog.Logger
	contract ContractId
	method   MethodName
	lines    []string
}

func NewReceipt(log *zerolog.Logger, contract ContractId, method MethodName) *Receipt {
	return &Receipt{log: log, contract: contract, method: method}
}

func (r *Receipt) Log(line string) {
	r.lines = append(r.lines, line)

	if r.log != nil {
		r.log.Info().
			Str("contract", r.contract.String()).
			Str("method", r.method.String()).
			Msg(line)
	}
}

func (r *Receipt) Lines() []string {
	lines := make([]string, len(r.lines))
	copy(lines, r.lines)
	return lines
}
