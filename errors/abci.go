package errors

// SuccessABCICode declares an ABCI response as successful.
const SuccessABCICode uint32 = 0

// internalABCICode is returned for errors that did not originate from a
// registered root error. Their true code (and message) must not leak to
// the client.
const internalABCICode uint32 = 1

const internalABCILog = "internal error"

// coder is implemented by any error that exposes its ABCI code.
type coder interface {
	ABCICode() uint32
}

// abciCode tests if given error contains an ABCI code and returns the
// value of it if available. This function is testing for the causer
// interface as well and unwraps the error.
func abciCode(err error) uint32 {
	if err == nil {
		return SuccessABCICode
	}

	for {
		if c, ok := err.(coder); ok {
			return c.ABCICode()
		}

		if c, ok := err.(causer); ok {
			err = c.Cause()
		} else {
			return internalABCICode
		}
	}
}

// ABCIInfo returns the ABCI error code and log message that can be
// safely returned to the client. When not in debug mode, any error that
// is not created through this package (ie. does not carry a registered
// error code) is redacted to avoid leaking implementation details.
func ABCIInfo(err error, debug bool) (uint32, string) {
	code := abciCode(err)
	switch {
	case err == nil:
		return code, ""
	case debug:
		return code, err.Error()
	case code == internalABCICode:
		return code, internalABCILog
	case ErrPanic.Is(err):
		// Redact the message as it can contain system information.
		return code, internalABCILog
	default:
		return code, err.Error()
	}
}
