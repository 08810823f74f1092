package ripple

import (
	"encoding/json"

	"github.com/pkg/errors"
)

// DecodePaths parses a caller-supplied raw path set, as produced by a
// previous path discovery, into the protocol path structure.
func DecodePaths(raw string) (paths PathSet, err error) {
	err = json.Unmarshal([]byte(raw), &paths)
	if err != nil {
		err = errors.Wrapf(err, "unable to decode paths: %s", raw)
	}
	return
}
