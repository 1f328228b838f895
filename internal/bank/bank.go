// Package bank loads question packs from topic files.
package bank

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/dkaul/quizdeck/internal/game"
	"github.com/dkaul/quizdeck/internal/model"
)

// Pack is one topic file: a named question set, optionally grouped
// under a subject.
type Pack struct {
	Name      model.Text       `json:"name"`
	Subject   model.Text       `json:"subject,omitempty"`
	Icon      string           `json:"icon,omitempty"`
	Questions []model.Question `json:"questions"`
}

// LoadPack reads and validates one topic file.
func LoadPack(path string) (Pack, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return Pack{}, err
	}
	var pack Pack
	if err := json.Unmarshal(raw, &pack); err != nil {
		return Pack{}, fmt.Errorf("failed to decode pack: %w", err)
	}
	if err := ValidatePack(pack); err != nil {
		return Pack{}, err
	}
	return pack, nil
}

// Loader wraps a topic file as the opaque question supplier the engine
// consumes. The file is read when the quiz starts, not before.
func Loader(path string) game.QuestionLoader {
	return func(_ context.Context) ([]model.Question, error) {
		pack, err := LoadPack(path)
		if err != nil {
			return nil, err
		}
		return pack.Questions, nil
	}
}

// ListTopics scans a directory for topic files and returns them sorted
// by topic name.
func ListTopics(dir string) ([]model.Topic, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, err
	}
	var topics []model.Topic
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".json") {
			continue
		}
		path := filepath.Join(dir, entry.Name())
		pack, err := LoadPack(path)
		if err != nil {
			return nil, fmt.Errorf("invalid topic file %s: %w", entry.Name(), err)
		}
		topics = append(topics, model.Topic{Name: pack.Name, File: path})
	}
	sort.Slice(topics, func(i, j int) bool {
		return topics[i].Name.Get("en") < topics[j].Name.Get("en")
	})
	return topics, nil
}

// Subjects groups topic files by subject name. Topics without a
// subject land under General. Custom subjects are appended as-is.
func Subjects(dir string, custom []model.Subject) ([]model.Subject, error) {
	topics, err := ListTopics(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return append([]model.Subject(nil), custom...), nil
		}
		return nil, err
	}

	grouped := map[string]*model.Subject{}
	var order []string
	for _, topic := range topics {
		pack, err := LoadPack(topic.File)
		if err != nil {
			return nil, err
		}
		name := pack.Subject
		if len(name) == 0 {
			name = model.Text{"en": "General"}
		}
		key := name.Get("en")
		subject, ok := grouped[key]
		if !ok {
			subject = &model.Subject{Name: name, Icon: pack.Icon}
			grouped[key] = subject
			order = append(order, key)
		}
		subject.Topics = append(subject.Topics, topic)
	}

	subjects := make([]model.Subject, 0, len(order)+len(custom))
	for _, key := range order {
		subjects = append(subjects, *grouped[key])
	}
	subjects = append(subjects, custom...)
	return subjects, nil
}

// Install validates a pack file and copies it into the topic
// directory. Existing files are only overwritten with force.
func Install(src, dir string, force bool) (string, error) {
	pack, err := LoadPack(src)
	if err != nil {
		return "", err
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("failed to create topic dir: %w", err)
	}
	dst := filepath.Join(dir, slug(pack.Name.Get("en"))+".json")
	if !force {
		if _, err := os.Stat(dst); err == nil {
			return "", fmt.Errorf("topic already exists: %s (use --force to overwrite)", dst)
		} else if !os.IsNotExist(err) {
			return "", fmt.Errorf("failed to stat topic: %w", err)
		}
	}
	raw, err := os.ReadFile(src)
	if err != nil {
		return "", err
	}
	if err := os.WriteFile(dst, raw, 0o644); err != nil {
		return "", fmt.Errorf("failed to write topic: %w", err)
	}
	return dst, nil
}

func slug(name string) string {
	var b strings.Builder
	for _, r := range strings.ToLower(name) {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			b.WriteRune(r)
		case r == ' ', r == '-', r == '_':
			b.WriteByte('-')
		}
	}
	out := strings.Trim(b.String(), "-")
	if out == "" {
		return "topic"
	}
	return out
}
