package machination

import (
	"fmt"

	"fortio.org/safecast"
)

func argIndex(i int) (uint32, error) {
	idx, err := safecast.Conv[uint32](i)
	if err != nil {
		return 0, fmt.Errorf("argument index overflow: %w", err)
	}
	return idx, nil
}
