package moderation

import (
	"bufio"
	"bytes"
	"embed"
	"io/fs"
	"strings"

	"chat-exchange/errors"
)

//go:embed censored/*
var censoredFS embed.FS

// Wordlist carries the loaded forbidden words plus metadata for logging.
type Wordlist struct {
	Words     []string
	Languages []string
}

// LoadWordlists reads every .txt file under the embedded censored directory.
// Each file is a language dictionary, one word per line; the filename (minus
// extension) names the language. Duplicate words across files collapse.
func LoadWordlists() (*Wordlist, error) {
	entries, err := fs.ReadDir(censoredFS, "censored")
	if err != nil {
		return nil, err
	}

	unique := make(map[string]struct{})
	var languages []string

	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".txt") {
			continue
		}
		languages = append(languages, strings.TrimSuffix(entry.Name(), ".txt"))

		data, err := censoredFS.ReadFile("censored/" + entry.Name())
		if err != nil {
			return nil, err
		}

		// Scanner copes with \n and \r\n line endings alike.
		scanner := bufio.NewScanner(bytes.NewReader(data))
		for scanner.Scan() {
			word := strings.TrimSpace(scanner.Text())
			if word != "" && !strings.HasPrefix(word, "#") {
				unique[word] = struct{}{}
			}
		}
		if err := scanner.Err(); err != nil {
			return nil, err
		}
	}

	if len(unique) == 0 {
		return nil, errors.ErrEmptyWords
	}

	words := make([]string, 0, len(unique))
	for w := range unique {
		words = append(words, w)
	}
	return &Wordlist{Words: words, Languages: languages}, nil
}
