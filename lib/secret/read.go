// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package secret

import (
	"bufio"
	"bytes"
	"fmt"
	"io"
	"os"
)

// ReadFromPath reads a secret from a file path, or the first line of
// stdin if path is "-". Leading and trailing whitespace is trimmed. The
// caller owns the returned slice and should Zero it when done. Returns
// an error if the source is empty after trimming.
func ReadFromPath(path string, stdin io.Reader) ([]byte, error) {
	var data []byte

	if path == "-" {
		scanner := bufio.NewScanner(stdin)
		if !scanner.Scan() {
			if err := scanner.Err(); err != nil {
				return nil, fmt.Errorf("reading stdin: %w", err)
			}
			return nil, fmt.Errorf("stdin is empty")
		}
		data = bytes.Clone(scanner.Bytes())
	} else {
		var err error
		data, err = os.ReadFile(path)
		if err != nil {
			return nil, err
		}
	}

	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 {
		Zero(data)
		return nil, fmt.Errorf("secret is empty")
	}

	result := bytes.Clone(trimmed)
	Zero(data)
	return result, nil
}
