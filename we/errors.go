package we

import (
	"fmt"
)

type UnexpectedCallError struct {
	Call Call
}

func (e UnexpectedCallError) Error() string {
	return fmt.Sprintf("unexpected call %T", e.Call)
}

func UnexpectedCall(call Call) error {
	return UnexpectedCallError{Call: call}
}

type MethodNotFoundError struct {
	Method MethodName
}

func (e MethodNotFoundError) Error() string {
	return fmt.Sprintf("unknown method: %s", e.Method)
}

func MethodNotFound(method MethodName) MethodNotFoundError {
	return MethodNotFoundError{Method: method}
}

type ContractNotFoundError struct {
	Kind ContractKind
}

func (e ContractNotFoundError) Error() string {
	return fmt.Sprintf("unknown contract: %s", e.Kind)
}

func ContractNotFound(kind ContractKind) ContractNotFoundError {
	return ContractNotFoundError{Kind: kind}
}

type InvalidArgumentsError struct {
	Method MethodName
	Err    error
}

func (e *InvalidArgumentsError) Error() string {
	return fmt.Sprintf("invalid arguments for %s: %v", e.Method, e.Err)
}

func (e *InvalidArgumentsError) Unwrap() error {
	return e.Err
}

func InvalidArguments(method MethodName, err error) error {
	return &InvalidArgumentsError{Method: method, Err: err}
}

type InvalidContractIdError struct {
	Id     ContractId
	Reason string
}

func (e *InvalidContractIdError) Error() string {
	return fmt.Sprintf("invalid contract id %q: %s", e.Id.String(), e.Reason)
}

func InvalidContractId(id ContractId, reason string) error {
	return &InvalidContractIdError{Id: id, Reason: reason}
}
