package render

import (
	"fmt"

	"github.com/cockroachdb/errors"
	"github.com/vkngwrapper/core/common"
	"github.com/vkngwrapper/core/core1_0"
)

// ErrorKind classifies why bring-up or the frame loop stopped.
type ErrorKind int

const (
	// CapabilityMissing means a required extension, layer, queue family or
	// surface property is absent on this host.
	CapabilityMissing ErrorKind = iota
	// ResourceCreation means the driver rejected a create call.
	ResourceCreation
	// Synchronization means a per-frame call failed or came back with a
	// status other than success. Command buffer reset and recording count
	// as per-frame calls.
	Synchronization
	// IO means shader storage could not be read or held malformed data.
	IO
)

func (k ErrorKind) String() string {
	switch k {
	case CapabilityMissing:
		return "capability missing"
	case ResourceCreation:
		return "resource creation failed"
	case Synchronization:
		return "synchronization failed"
	case IO:
		return "i/o failed"
	}
	return fmt.Sprintf("ErrorKind(%d)", int(k))
}

// noResult marks errors that did not come back from a driver call.
const noResult = core1_0.VKSuccess

// Error carries the failing operation and, when the driver reported one, the
// VkResult. None of these are recoverable; the caller is expected to tear
// the context down and exit.
type Error struct {
	Kind   ErrorKind
	Op     string
	Result common.VkResult
	Err    error
}

func (e *Error) Error() string {
	msg := e.Op + ": " + e.Kind.String()
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	if e.Result != noResult {
		msg += fmt.Sprintf(" (%s)", e.Result)
	}
	return msg
}

func (e *Error) Unwrap() error { return e.Err }

// KindOf reports the ErrorKind of err, if err wraps an *Error.
func KindOf(err error) (ErrorKind, bool) {
	var rerr *Error
	if !errors.As(err, &rerr) {
		return 0, false
	}
	return rerr.Kind, true
}

func capabilityMissing(op, format string, args ...interface{}) error {
	return errors.WithStack(&Error{
		Kind: CapabilityMissing,
		Op:   op,
		Err:  errors.Newf(format, args...),
	})
}

func creationFailed(op string, res common.VkResult, err error) error {
	return errors.WithStack(&Error{
		Kind:   ResourceCreation,
		Op:     op,
		Result: res,
		Err:    err,
	})
}

func syncFailed(op string, res common.VkResult, err error) error {
	return errors.WithStack(&Error{
		Kind:   Synchronization,
		Op:     op,
		Result: res,
		Err:    err,
	})
}

// checkFrameStatus fails on an error and also on non-error statuses such
// as VK_SUBOPTIMAL_KHR or VK_TIMEOUT, since the loop has no recovery path
// for them.
func checkFrameStatus(op string, res common.VkResult, err error) error {
	if err != nil {
		return syncFailed(op, res, err)
	}
	if res != core1_0.VKSuccess {
		return syncFailed(op, res, errors.New("unexpected status"))
	}
	return nil
}

func ioFailed(op string, err error) error {
	return errors.WithStack(&Error{
		Kind: IO,
		Op:   op,
		Err:  err,
	})
}
