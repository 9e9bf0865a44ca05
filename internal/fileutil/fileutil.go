package fileutil

import (
	"bytes"
	"crypto/sha256"
	"fmt"
	"io"
	"os"
	"path/filepath"
)

const partialSuffix = ".sift-partial"

// CopyFileVerified copies src to dst and verifies the result by re-reading
// it: sizes and SHA-256 digests must match. The data lands in a temporary
// sibling of dst first and is renamed into place only after verification,
// so an existing dst survives a failed copy. Permission bits and the
// modification time are carried over.
func CopyFileVerified(src, dst string) error {
	srcInfo, err := os.Stat(src)
	if err != nil {
		return fmt.Errorf("stat source: %w", err)
	}
	if srcInfo.IsDir() {
		return fmt.Errorf("copy source %s is a directory", src)
	}

	tmp := PartialPath(dst)
	srcSum, written, err := copyHashed(src, tmp, srcInfo.Mode().Perm())
	if err != nil {
		_ = os.Remove(tmp)
		return err
	}
	if written != srcInfo.Size() {
		_ = os.Remove(tmp)
		return fmt.Errorf("copy size mismatch: source %d bytes, copied %d bytes", srcInfo.Size(), written)
	}

	dstSum, err := hashFile(tmp)
	if err != nil {
		_ = os.Remove(tmp)
		return err
	}
	if !bytes.Equal(srcSum, dstSum) {
		_ = os.Remove(tmp)
		return fmt.Errorf("copy hash mismatch: file corrupted during copy")
	}

	if err := os.Rename(tmp, dst); err != nil {
		_ = os.Remove(tmp)
		return fmt.Errorf("finalize copy: %w", err)
	}
	_ = os.Chtimes(dst, srcInfo.ModTime(), srcInfo.ModTime())
	return nil
}

// copyHashed streams src into a new file at dst, returning the source digest
// and the byte count. dst is synced before it is closed.
func copyHashed(src, dst string, perm os.FileMode) ([]byte, int64, error) {
	in, err := os.Open(src)
	if err != nil {
		return nil, 0, err
	}
	defer in.Close()

	out, err := os.OpenFile(dst, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, perm)
	if err != nil {
		return nil, 0, err
	}
	hasher := sha256.New()
	written, err := io.Copy(out, io.TeeReader(in, hasher))
	if err == nil {
		err = out.Sync()
	}
	if closeErr := out.Close(); err == nil {
		err = closeErr
	}
	if err != nil {
		return nil, 0, err
	}
	return hasher.Sum(nil), written, nil
}

func hashFile(path string) ([]byte, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("reopen copy: %w", err)
	}
	defer f.Close()
	hasher := sha256.New()
	if _, err := io.Copy(hasher, f); err != nil {
		return nil, fmt.Errorf("verify copy: %w", err)
	}
	return hasher.Sum(nil), nil
}

// PartialPath returns the temporary sibling used while copying into dst.
func PartialPath(dst string) string {
	return filepath.Join(filepath.Dir(dst), "."+filepath.Base(dst)+partialSuffix)
}
