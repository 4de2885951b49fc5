// Package errs defines the failure kinds surfaced by the wallet core.
// Callers switch on Kind instead of matching error text.
package errs

import (
	"fmt"
	"math/big"

	"github.com/pkg/errors"
)

type Kind int

const (
	KindUnknown Kind = iota
	KindInvalidKeyFormat
	KindInvalidKeyEncoding
	KindInvalidMnemonic
	KindUnsupportedWordCount
	KindEntropy
	KindInvalidArgument
	KindUnknownNetwork
	KindGasEstimationFailed
	KindInsufficientFunds
	KindSubmissionFailed
	KindSigningUnavailable
	KindTransport
	KindNotFound
)

var kindNames = map[Kind]string{
	KindUnknown:              "unknown",
	KindInvalidKeyFormat:     "invalid_key_format",
	KindInvalidKeyEncoding:   "invalid_key_encoding",
	KindInvalidMnemonic:      "invalid_mnemonic",
	KindUnsupportedWordCount: "unsupported_word_count",
	KindEntropy:              "entropy",
	KindInvalidArgument:      "invalid_argument",
	KindUnknownNetwork:       "unknown_network",
	KindGasEstimationFailed:  "gas_estimation_failed",
	KindInsufficientFunds:    "insufficient_funds",
	KindSubmissionFailed:     "submission_failed",
	KindSigningUnavailable:   "signing_unavailable",
	KindTransport:            "transport",
	KindNotFound:             "not_found",
}

func (k Kind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}

	return fmt.Sprintf("kind(%d)", int(k))
}

// Error carries a Kind together with the failed operation and, for
// network-bound failures, the endpoint it was issued against.
type Error struct {
	Kind     Kind
	Op       string
	Endpoint string
	Msg      string
	Err      error
}

func (e *Error) Error() string {
	msg := e.Op
	if e.Msg != "" {
		if msg != "" {
			msg += ": "
		}
		msg += e.Msg
	}
	if e.Endpoint != "" {
		msg += fmt.Sprintf(" (endpoint %s)", e.Endpoint)
	}
	if e.Err != nil {
		if msg != "" {
			msg += ": "
		}
		msg += e.Err.Error()
	}

	return msg
}

func (e *Error) Unwrap() error {
	return e.Err
}

func (e *Error) ErrKind() Kind {
	return e.Kind
}

func New(kind Kind, op string, msg string) error {
	return &Error{Kind: kind, Op: op, Msg: msg}
}

func Newf(kind Kind, op string, format string, args ...any) error {
	return &Error{Kind: kind, Op: op, Msg: fmt.Sprintf(format, args...)}
}

func Wrap(kind Kind, op string, err error) error {
	if err == nil {
		return nil
	}

	return &Error{Kind: kind, Op: op, Err: err}
}

// WrapEndpoint is Wrap for failures of a remote call.
func WrapEndpoint(kind Kind, op string, endpoint string, err error) error {
	if err == nil {
		return nil
	}

	return &Error{Kind: kind, Op: op, Endpoint: endpoint, Err: err}
}

// InsufficientFundsError reports a failed pre-flight balance check.
// Needed is GasLimit*GasPrice plus the transferred native value.
type InsufficientFundsError struct {
	Balance  *big.Int
	Needed   *big.Int
	GasLimit uint64
	GasPrice *big.Int
}

func (e *InsufficientFundsError) Error() string {
	return fmt.Sprintf("insufficient funds: balance %s wei, needed %s wei (gas limit %d, gas price %s wei)",
		e.Balance, e.Needed, e.GasLimit, e.GasPrice)
}

func (e *InsufficientFundsError) ErrKind() Kind {
	return KindInsufficientFunds
}

type kinded interface {
	ErrKind() Kind
}

// KindOf returns the Kind of the outermost classified error in err's chain.
func KindOf(err error) Kind {
	if err == nil {
		return KindUnknown
	}

	var k kinded
	if errors.As(err, &k) {
		return k.ErrKind()
	}

	return KindUnknown
}

func Is(err error, kind Kind) bool {
	return KindOf(err) == kind
}
