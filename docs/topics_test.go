package docs

import (
	"bufio"
	"os"
	"regexp"
	"slices"
	"strings"
	"testing"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/text"
)

func TestTopics(t *testing.T) {
	// Every topic listed in readme.md loads, and every topic is listed there.
	file, err := os.Open("readme.md")
	if err != nil {
		t.Fatalf("failed to open readme.md: %v", err)
	}
	defer file.Close()

	var listed []string
	topicRegex := regexp.MustCompile(`^\*\s+([^:]+):.*$`)
	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		if m := topicRegex.FindStringSubmatch(scanner.Text()); len(m) > 1 {
			listed = append(listed, strings.TrimSpace(m[1]))
		}
	}
	if err := scanner.Err(); err != nil {
		t.Fatalf("error scanning readme.md: %v", err)
	}

	for _, topic := range listed {
		if _, err := Topic(topic); err != nil {
			t.Errorf("Topic(%q) error = %v", topic, err)
		}
	}

	all, err := All()
	if err != nil {
		t.Fatalf("All() error = %v", err)
	}
	for _, topic := range all {
		if !slices.Contains(listed, topic) {
			t.Errorf("topic %q is not listed in readme.md", topic)
		}
	}
}

func TestTopic_Unknown(t *testing.T) {
	if _, err := Topic("nope"); err == nil {
		t.Error("Topic(nope) error = nil, want an error")
	}
}

func TestTopics_Star(t *testing.T) {
	got, err := Topics("*")
	if err != nil {
		t.Fatalf("Topics(*) error = %v", err)
	}
	all, _ := All()
	for _, topic := range all {
		content, _ := Topic(topic)
		if !strings.Contains(got, content) {
			t.Errorf("Topics(*) is missing %q", topic)
		}
	}
}

// TestTitles checks that every topic starts with its only level 1 heading.
func TestTitles(t *testing.T) {
	all, err := All()
	if err != nil {
		t.Fatal(err)
	}
	for _, topic := range append(all, Index) {
		t.Run(topic, func(t *testing.T) {
			content, err := Topic(topic)
			if err != nil {
				t.Fatal(err)
			}
			src := []byte(content)
			root := goldmark.DefaultParser().Parse(text.NewReader(src))

			first, ok := root.FirstChild().(*ast.Heading)
			if !ok || first.Level != 1 {
				t.Fatalf("%s.md does not start with a level 1 heading", topic)
			}
			count := 0
			ast.Walk(root, func(n ast.Node, entering bool) (ast.WalkStatus, error) {
				if h, ok := n.(*ast.Heading); ok && entering && h.Level == 1 {
					count++
				}
				return ast.WalkContinue, nil
			})
			if count != 1 {
				t.Errorf("%s.md has %d level 1 headings, want 1", topic, count)
			}
		})
	}
}
