package conversation

import (
	"errors"
	"fmt"
)

// ErrStoreUnavailable marks a failed session or dedup backend call. The
// caller must not assume any state transition occurred when it sees this.
var ErrStoreUnavailable = errors.New("conversation: store unavailable")

func storeErr(op string, err error) error {
	return fmt.Errorf("%w: %s: %v", ErrStoreUnavailable, op, err)
}
