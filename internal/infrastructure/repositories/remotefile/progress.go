package remotefile

import (
	"context"
	"io"

	"github.com/rios0rios0/gitpuller/internal/domain/repositories"
)

// chunkSize is how much is copied between progress reports.
const chunkSize = 256 * 1024

// copyWithProgress copies src into dst chunk by chunk, reporting the percentage
// of total written after each chunk. With an unknown total only 100 is reported,
// once the copy finished.
func copyWithProgress(
	ctx context.Context,
	dst io.Writer,
	src io.Reader,
	total int64,
	progress repositories.ProgressFunc,
) error {
	if progress == nil {
		progress = func(int) {}
	}

	buf := make([]byte, chunkSize)
	var written int64
	for {
		if err := ctx.Err(); err != nil {
			return err
		}

		n, readErr := src.Read(buf)
		if n > 0 {
			if _, writeErr := dst.Write(buf[:n]); writeErr != nil {
				return writeErr
			}
			written += int64(n)
			if total > 0 {
				progress(int(min(written*100/total, 100)))
			}
		}
		if readErr == io.EOF {
			break
		}
		if readErr != nil {
			return readErr
		}
	}

	progress(100)
	return nil
}
