package static

import (
	"bytes"
	"io"
)

// buffer reads the entirety of reader into memory so that it can be seeked.
// It is used for files from roots whose files do not implement io.Seeker.
func buffer(reader io.Reader) (io.ReadSeeker, error) {
	data, err := io.ReadAll(reader)
	if err != nil {
		return nil, err
	}

	return bytes.NewReader(data), nil
}
