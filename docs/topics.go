// Package docs embeds the tbk documentation topics.
//
// readme.md is the entry point. It indexes every other topic with a line
// "* name: summary", in reading order.
package docs

import (
	"bufio"
	"bytes"
	"embed"
	"fmt"
	"regexp"
	"slices"
	"strings"
)

//go:embed *.md
var files embed.FS

// Readme is the name of the topic indexing all the others.
const Readme = "readme"

// Topic is an entry of the readme index.
type Topic struct {
	Name    string
	Summary string
}

var indexLine = regexp.MustCompile(`^\*\s+([a-z]+):\s*(.*)$`)

// Index returns the topics listed in the readme, in their order.
func Index() ([]Topic, error) {
	content, err := files.ReadFile(Readme + ".md")
	if err != nil {
		return nil, err
	}
	var topics []Topic
	scanner := bufio.NewScanner(bytes.NewReader(content))
	for scanner.Scan() {
		if m := indexLine.FindStringSubmatch(scanner.Text()); m != nil {
			topics = append(topics, Topic{Name: m[1], Summary: strings.TrimSpace(m[2])})
		}
	}
	return topics, scanner.Err()
}

// Names returns the names of the indexed topics.
func Names() []string {
	topics, _ := Index()
	names := make([]string, 0, len(topics))
	for _, t := range topics {
		names = append(names, t.Name)
	}
	return names
}

// Read returns the concatenated content of the named topics. "*" stands for
// every indexed topic in index order, an empty list for the readme.
func Read(names ...string) (string, error) {
	if len(names) == 0 {
		names = []string{Readme}
	}
	var b strings.Builder
	for _, name := range names {
		expanded := []string{name}
		if name == "*" {
			expanded = Names()
		}
		for _, topic := range expanded {
			content, err := files.ReadFile(topic + ".md")
			if err != nil {
				return "", fmt.Errorf("unknown topic %q, want one of %s", topic, strings.Join(append(Names(), Readme), ", "))
			}
			b.Write(content)
			b.WriteString("\n")
		}
	}
	return b.String(), nil
}

// Files returns the name of every embedded topic file, readme excluded.
func Files() []string {
	entries, _ := files.ReadDir(".")
	var names []string
	for _, e := range entries {
		name := strings.TrimSuffix(e.Name(), ".md")
		if name != Readme {
			names = append(names, name)
		}
	}
	slices.Sort(names)
	return names
}
