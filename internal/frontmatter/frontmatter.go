// Package frontmatter reads and patches YAML front matter in Markdown
// notes. Edits go through yaml.v3 nodes so key order, unknown keys and
// quoting survive a round trip, which keeps Obsidian diffs minimal.
package frontmatter

import (
	"bytes"
	"fmt"
	"regexp"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/mhersey/vaultkeeper/internal/core/domain"
)

const delimiter = "---"

// Doc is a Markdown note split into front matter and body.
type Doc struct {
	mapping *yaml.Node
	body    string
	hasFM   bool
}

// Parse splits content into front matter and body. A note without front
// matter parses successfully; the first Set call creates the block.
func Parse(content string) (*Doc, error) {
	fm, body, ok := split(content)
	if !ok {
		return &Doc{body: content}, nil
	}

	var root yaml.Node
	if err := yaml.Unmarshal([]byte(fm), &root); err != nil {
		return nil, fmt.Errorf("parsing front matter: %w", err)
	}

	d := &Doc{body: body, hasFM: true}
	if len(root.Content) > 0 && root.Content[0].Kind == yaml.MappingNode {
		d.mapping = root.Content[0]
	}
	return d, nil
}

// split returns the raw front-matter text and the body. The front matter
// must open the file with "---" on its own line.
func split(content string) (fm, body string, ok bool) {
	trimmed := strings.TrimPrefix(content, "\ufeff")
	if !strings.HasPrefix(trimmed, delimiter+"\n") && !strings.HasPrefix(trimmed, delimiter+"\r\n") {
		return "", "", false
	}

	rest := trimmed[strings.Index(trimmed, "\n")+1:]
	for _, closer := range []string{"\n" + delimiter + "\n", "\n" + delimiter + "\r\n"} {
		if i := strings.Index(rest, closer); i >= 0 {
			return rest[:i+1], rest[i+len(closer):], true
		}
	}
	// Front matter that closes the file with no trailing newline.
	if strings.HasSuffix(rest, "\n"+delimiter) {
		return rest[:len(rest)-len(delimiter)], "", true
	}
	return "", "", false
}

// HasFrontMatter reports whether the note opened with a front-matter block.
func (d *Doc) HasFrontMatter() bool {
	return d.hasFM
}

// Body returns the note content after the front matter.
func (d *Doc) Body() string {
	return d.body
}

// SetBody replaces the note content after the front matter.
func (d *Doc) SetBody(body string) {
	d.body = body
}

// Get returns the scalar value stored under key.
func (d *Doc) Get(key string) (string, bool) {
	v := d.value(key)
	if v == nil || v.Kind != yaml.ScalarNode {
		return "", false
	}
	return v.Value, true
}

// Set stores a scalar value under key, creating the key at the end of the
// block when absent. Existing keys keep their position.
func (d *Doc) Set(key, value string) {
	d.ensureMapping()
	if v := d.value(key); v != nil {
		setScalar(v, value)
		return
	}
	d.mapping.Content = append(d.mapping.Content,
		scalarNode(key), scalarNode(value))
}

// List returns the sequence values stored under key.
func (d *Doc) List(key string) []string {
	v := d.value(key)
	if v == nil || v.Kind != yaml.SequenceNode {
		return nil
	}
	items := make([]string, 0, len(v.Content))
	for _, item := range v.Content {
		items = append(items, item.Value)
	}
	return items
}

// AppendToList adds value to the sequence under key, creating the sequence
// when absent. Returns false when the value is already present.
func (d *Doc) AppendToList(key, value string) bool {
	d.ensureMapping()
	v := d.value(key)
	if v == nil {
		v = &yaml.Node{Kind: yaml.SequenceNode, Tag: "!!seq"}
		d.mapping.Content = append(d.mapping.Content, scalarNode(key), v)
	}
	if v.Kind == yaml.ScalarNode {
		if v.Value == "" {
			// An empty "key:" line parses as a null scalar; promote it.
			*v = yaml.Node{Kind: yaml.SequenceNode, Tag: "!!seq"}
		} else {
			// A scalar value becomes the first element of the sequence.
			first := *v
			*v = yaml.Node{Kind: yaml.SequenceNode, Tag: "!!seq",
				Content: []*yaml.Node{&first}}
		}
	}
	for _, item := range v.Content {
		if item.Value == value {
			return false
		}
	}
	item := scalarNode(value)
	item.Style = yaml.DoubleQuotedStyle
	v.Content = append(v.Content, item)
	return true
}

// Render reassembles the note. A document whose front matter was never
// populated renders as the bare body.
func (d *Doc) Render() (string, error) {
	if d.mapping == nil {
		return d.body, nil
	}

	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(d.mapping); err != nil {
		return "", fmt.Errorf("encoding front matter: %w", err)
	}
	if err := enc.Close(); err != nil {
		return "", fmt.Errorf("encoding front matter: %w", err)
	}

	return delimiter + "\n" + buf.String() + delimiter + "\n" + d.body, nil
}

// RequireKey returns the scalar value under key or ErrPropertyMissing.
func (d *Doc) RequireKey(key string) (string, error) {
	if !d.hasFM && d.mapping == nil {
		return "", fmt.Errorf("%w", domain.ErrNoFrontMatter)
	}
	v, ok := d.Get(key)
	if !ok {
		return "", fmt.Errorf("%w: %s", domain.ErrPropertyMissing, key)
	}
	return v, nil
}

func (d *Doc) ensureMapping() {
	if d.mapping == nil {
		d.mapping = &yaml.Node{Kind: yaml.MappingNode, Tag: "!!map"}
	}
}

// value returns the value node paired with key, or nil.
func (d *Doc) value(key string) *yaml.Node {
	if d.mapping == nil {
		return nil
	}
	for i := 0; i+1 < len(d.mapping.Content); i += 2 {
		if d.mapping.Content[i].Value == key {
			return d.mapping.Content[i+1]
		}
	}
	return nil
}

// isoDate matches the YYYY-MM-DD scalars the vault stores unquoted.
var isoDate = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}$`)

// setScalar stores value on n. SetString tags the node !!str, which makes
// the encoder quote date-shaped values; retagging them as timestamps keeps
// them plain the way Obsidian writes them.
func setScalar(n *yaml.Node, value string) {
	n.SetString(value)
	if isoDate.MatchString(value) {
		n.Tag = "!!timestamp"
	}
}

func scalarNode(value string) *yaml.Node {
	n := &yaml.Node{}
	setScalar(n, value)
	return n
}
