package cli

import (
	"bufio"
	"errors"
	"io"
	"strings"
)

// readPromptLine reads one line and strips the line terminator. A final line
// without a newline is accepted.
func readPromptLine(reader io.Reader) ([]byte, error) {
	line, err := bufio.NewReader(reader).ReadString('\n')
	if err != nil && !errors.Is(err, io.EOF) {
		return nil, err
	}
	return []byte(strings.TrimRight(line, "\r\n")), nil
}
