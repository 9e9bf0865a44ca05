//go:build !unix && !windows

package files

func isCrossDevice(error) bool { return false }

func isBusy(error) bool { return false }
