//go:build !unix && !windows

package files

import "errors"

func (o *Operator) moveToTrash(string) error {
	return errors.New("trash is not supported on this platform")
}
