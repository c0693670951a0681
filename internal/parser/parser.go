package parser

import (
	"bufio"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/conorfennell/benkyou/internal/domain"
)

const (
	promptPrefix  = "Q:"
	readingPrefix = "R:"
	answerPrefix  = "A:"
)

type state int

const (
	seeking state = iota
	readingPrompt
	readingReading
	readingAnswer
)

// ErrUnsupportedFormat is returned for deck files with an unknown extension.
var ErrUnsupportedFormat = errors.New("unsupported deck file format")

// IsDeckFile reports whether path has an extension ParseFile understands.
func IsDeckFile(path string) bool {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".csv", ".md", ".txt":
		return true
	}
	return false
}

// ParseFile reads a deck file from the given path and extracts its rows.
// CSV files hold prompt,reading,answer rows; markdown and text files hold
// Q:/R:/A: blocks.
func ParseFile(path string) ([]domain.Vocab, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	switch strings.ToLower(filepath.Ext(path)) {
	case ".csv":
		return ParseCSV(file)
	case ".md", ".txt":
		return Parse(file)
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedFormat, path)
	}
}

// ParseCSV reads prompt,reading,answer rows. Rows with fewer than three
// fields are skipped.
func ParseCSV(r io.Reader) ([]domain.Vocab, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true

	var rows []domain.Vocab
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, err
		}
		if len(record) < 3 {
			continue
		}
		rows = append(rows, domain.Vocab{
			Prompt:  strings.TrimSpace(record[0]),
			Reading: strings.TrimSpace(record[1]),
			Answer:  strings.TrimSpace(record[2]),
		})
	}
	return rows, nil
}

// Parse reads Q:/R:/A: blocks from an io.Reader. A block ends at a "---"
// separator or at the next Q: line.
func Parse(r io.Reader) ([]domain.Vocab, error) {
	scanner := bufio.NewScanner(r)
	var rows []domain.Vocab
	var current domain.Vocab
	var block []string
	currentState := seeking

	flushBlock := func() {
		if len(block) == 0 {
			return
		}
		content := strings.TrimSpace(strings.Join(block, "\n"))
		switch currentState {
		case readingPrompt:
			current.Prompt = content
		case readingReading:
			current.Reading = content
		case readingAnswer:
			current.Answer = content
		}
		block = nil
	}

	finishRow := func() {
		flushBlock()
		if current.Prompt != "" {
			rows = append(rows, current)
		}
		current = domain.Vocab{}
		currentState = seeking
	}

	for scanner.Scan() {
		line := scanner.Text()

		if line == "---" {
			finishRow()
			continue
		}

		next, content, ok := cutPrefix(line)
		if !ok {
			if currentState != seeking {
				block = append(block, line)
			}
			continue
		}

		if next == readingPrompt && currentState != seeking {
			finishRow() // A new prompt always starts a new row
		} else {
			flushBlock()
		}
		currentState = next
		block = append(block, content)
	}

	finishRow() // Finish the very last row in the file

	if err := scanner.Err(); err != nil {
		return nil, err
	}

	return rows, nil
}

func cutPrefix(line string) (state, string, bool) {
	for _, p := range []struct {
		prefix string
		state  state
	}{
		{promptPrefix, readingPrompt},
		{readingPrefix, readingReading},
		{answerPrefix, readingAnswer},
	} {
		if rest, ok := strings.CutPrefix(line, p.prefix); ok {
			return p.state, strings.TrimPrefix(rest, " "), true
		}
	}
	return seeking, "", false
}
