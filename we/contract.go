package we

import (
	"errors"
	"strings"
	"unicode"
)

type ContractKind string

func (k ContractKind) String() string {
	return string(k)
}

type ContractKinded interface {
	ContractKind() ContractKind
}

func KindOf(state any) ContractKind {
	if kinded, ok := state.(ContractKinded); ok {
		return kinded.ContractKind()
	}

	return ContractKind(NameOf(state))
}

// ContractId addresses the single state slot of one deployed contract.
type ContractId struct {
	Kind ContractKind `json:"kind"`
	Key  string       `json:"key"`
}

// Validate rejects ids that would not address exactly one slot in every
// store. Subject based stores treat * and > as wildcards and reject
// whitespace and empty dot separated tokens.
func (id ContractId) Validate() error {
	if id.Kind == "" {
		return InvalidContractId(id, "missing kind")
	}
	if strings.Contains(id.Kind.String(), ".") {
		return InvalidContractId(id, "kind contains a dot")
	}
	if id.Key == "" {
		return InvalidContractId(id, "missing key")
	}

	for _, part := range []string{id.Kind.String(), id.Key} {
		if strings.ContainsAny(part, "*>") {
			return InvalidContractId(id, "contains a wildcard")
		}
		if strings.IndexFunc(part, func(r rune) bool { return unicode.IsSpace(r) || unicode.IsControl(r) }) >= 0 {
			return InvalidContractId(id, "contains whitespace")
		}
	}

	for _, token := range strings.Split(id.Key, ".") {
		if token == "" {
			return InvalidContractId(id, "key has an empty segment")
		}
	}

	return nil
}

type EncodedContractId string

func (id ContractId) Encode() EncodedContractId {
	return EncodedContractId(strings.Join([]string{id.Kind.String(), id.Key}, "."))
}

func (id ContractId) String() string {
	return id.Encode().String()
}

func (id EncodedContractId) String() string {
	return string(id)
}

func (id EncodedContractId) Decode() (*ContractId, error) {
	separated := strings.Split(string(id), ".")
	if len(separated) < 2 {
		return nil, errors.New("expected . delimiter in contract id")
	}

	return &ContractId{
		Kind: ContractKind(separated[0]),
		Key:  strings.Join(separated[1:], "."),
	}, nil
}
