package docs

import (
	"bufio"
	"regexp"
	"strings"
	"testing"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/text"
)

var topicLinkRegex = regexp.MustCompile("`([a-z]+)`:")

// TestTopicsIndexed ensures the index and the topic files stay in sync:
// every topic listed in readme.md loads, and every topic file is listed
// in readme.md.
func TestTopicsIndexed(t *testing.T) {
	index, err := Topic("readme")
	if err != nil {
		t.Fatalf("cannot load the index topic: %v", err)
	}

	listed := make(map[string]bool)
	scanner := bufio.NewScanner(strings.NewReader(index))
	for scanner.Scan() {
		if m := topicLinkRegex.FindStringSubmatch(scanner.Text()); m != nil {
			listed[m[1]] = true
		}
	}

	for name := range listed {
		if _, err := Topic(name); err != nil {
			t.Errorf("readme.md lists %q but it does not load: %v", name, err)
		}
	}

	all, err := All()
	if err != nil {
		t.Fatal(err)
	}
	for _, name := range all {
		if !listed[name] {
			t.Errorf("topic %q is not listed in readme.md", name)
		}
	}
}

func TestTopicsParse(t *testing.T) {
	all, err := All()
	if err != nil {
		t.Fatal(err)
	}
	all = append(all, "readme")

	for _, name := range all {
		t.Run(name, func(t *testing.T) {
			content, err := Topic(name)
			if err != nil {
				t.Fatal(err)
			}
			source := []byte(content)
			root := goldmark.DefaultParser().Parse(text.NewReader(source))
			if !root.HasChildren() {
				t.Errorf("topic %q renders to an empty document", name)
			}
		})
	}
}

func TestTopics_Unknown(t *testing.T) {
	if _, err := Topic("no-such-topic"); err == nil {
		t.Error("unknown topics should be an error")
	}
}

func TestTopics_Star(t *testing.T) {
	content, err := Topics("*")
	if err != nil {
		t.Fatal(err)
	}
	for _, fragment := range []string{"# Liquidity", "# Simulation", "# Policy"} {
		if !strings.Contains(content, fragment) {
			t.Errorf("expanded topics miss %q", fragment)
		}
	}
}
