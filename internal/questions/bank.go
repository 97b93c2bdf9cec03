// Package questions holds the static question bank used by every test attempt.
//
// The bank is loaded once at startup, either from the embedded default or from a
// YAML file, and is read-only afterwards.
package questions

import (
	"bytes"
	_ "embed"
	"errors"
	"fmt"
	"io"
	"os"
	"slices"
	"strings"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"
)

//go:embed questions.yaml
var defaultBank []byte

// Answer key suffixes for the two fields of a bank task.
const (
	VendorSuffix   = ".vendor"
	CategorySuffix = ".gl"
)

// Kind identifies how an answer key is scored.
type Kind int

const (
	KindMultipleChoice Kind = iota + 1
	KindVendor
	KindCategory
)

// MultipleChoice is a question with a fixed set of options and one correct answer.
type MultipleChoice struct {
	ID      string   `yaml:"id" json:"id" validate:"required"`
	Prompt  string   `yaml:"prompt" json:"prompt" validate:"required"`
	Answer  string   `yaml:"answer" json:"-" validate:"required"`
	Options []string `yaml:"options" json:"options" validate:"min=2,dive,required"`
}

// BankTask is a bank transaction the user classifies by vendor and GL category.
// Vendor is stored trimmed and lower-cased.
type BankTask struct {
	ID          string `yaml:"id" json:"id" validate:"required"`
	Description string `yaml:"description" json:"description" validate:"required"`
	Vendor      string `yaml:"vendor" json:"-" validate:"required"`
	GL          string `yaml:"gl" json:"-" validate:"required"`
}

// Bank is the full question set.
type Bank struct {
	MultipleChoice []MultipleChoice `yaml:"multiple_choice" json:"multiple_choice" validate:"dive"`
	BankTasks      []BankTask       `yaml:"bank_tasks" json:"bank_tasks" validate:"dive"`
	GLOptions      []string         `yaml:"gl_options" json:"gl_options" validate:"dive,required"`

	kinds map[string]Kind
}

// Field describes a single answerable key of the bank.
type Field struct {
	Kind Kind
	// MultipleChoice is set for KindMultipleChoice.
	MultipleChoice *MultipleChoice
	// Task is set for KindVendor and KindCategory.
	Task *BankTask
}

// VendorKey returns the answer key for the vendor field of a task.
func VendorKey(taskID string) string { return taskID + VendorSuffix }

// CategoryKey returns the answer key for the GL field of a task.
func CategoryKey(taskID string) string { return taskID + CategorySuffix }

// Default returns the embedded question bank.
func Default() (*Bank, error) {
	return Load(bytes.NewReader(defaultBank))
}

// LoadFile reads a question bank from a YAML file.
func LoadFile(path string) (*Bank, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return Load(f)
}

// Load decodes and validates a YAML question bank.
func Load(r io.Reader) (*Bank, error) {
	var bank Bank
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&bank); err != nil {
		return nil, fmt.Errorf("decode question bank: %w", err)
	}

	for i := range bank.BankTasks {
		bank.BankTasks[i].Vendor = strings.ToLower(strings.TrimSpace(bank.BankTasks[i].Vendor))
	}

	if err := bank.validate(); err != nil {
		return nil, err
	}
	bank.index()
	return &bank, nil
}

func (b *Bank) validate() error {
	if err := validator.New().Struct(b); err != nil {
		return fmt.Errorf("invalid question bank: %w", err)
	}
	if len(b.MultipleChoice) == 0 && len(b.BankTasks) == 0 {
		return errors.New("invalid question bank: no questions")
	}
	if len(b.BankTasks) > 0 && len(b.GLOptions) == 0 {
		return errors.New("invalid question bank: bank tasks require gl_options")
	}

	seen := make(map[string]struct{})
	for _, q := range b.MultipleChoice {
		if err := checkID(q.ID); err != nil {
			return err
		}
		if _, ok := seen[q.ID]; ok {
			return fmt.Errorf("invalid question bank: duplicate id %q", q.ID)
		}
		seen[q.ID] = struct{}{}
		if !slices.Contains(q.Options, q.Answer) {
			return fmt.Errorf("invalid question bank: answer of %q is not one of its options", q.ID)
		}
	}
	for _, task := range b.BankTasks {
		if err := checkID(task.ID); err != nil {
			return err
		}
		if _, ok := seen[task.ID]; ok {
			return fmt.Errorf("invalid question bank: duplicate id %q", task.ID)
		}
		seen[task.ID] = struct{}{}
		if !slices.Contains(b.GLOptions, task.GL) {
			return fmt.Errorf("invalid question bank: gl of %q is not in gl_options", task.ID)
		}
	}
	return nil
}

// checkID rejects ids that could collide with a derived answer key.
func checkID(id string) error {
	if strings.HasSuffix(id, VendorSuffix) || strings.HasSuffix(id, CategorySuffix) {
		return fmt.Errorf("invalid question bank: id %q ends with a reserved suffix", id)
	}
	return nil
}

func (b *Bank) index() {
	b.kinds = make(map[string]Kind, len(b.MultipleChoice)+2*len(b.BankTasks))
	for _, q := range b.MultipleChoice {
		b.kinds[q.ID] = KindMultipleChoice
	}
	for _, task := range b.BankTasks {
		b.kinds[VendorKey(task.ID)] = KindVendor
		b.kinds[CategoryKey(task.ID)] = KindCategory
	}
}

// Lookup resolves an answer key.
func (b *Bank) Lookup(key string) (Field, bool) {
	kind, ok := b.kinds[key]
	if !ok {
		return Field{}, false
	}

	switch kind {
	case KindMultipleChoice:
		for i := range b.MultipleChoice {
			if b.MultipleChoice[i].ID == key {
				return Field{Kind: kind, MultipleChoice: &b.MultipleChoice[i]}, true
			}
		}
	case KindVendor, KindCategory:
		suffix := VendorSuffix
		if kind == KindCategory {
			suffix = CategorySuffix
		}
		id := strings.TrimSuffix(key, suffix)
		for i := range b.BankTasks {
			if b.BankTasks[i].ID == id {
				return Field{Kind: kind, Task: &b.BankTasks[i]}, true
			}
		}
	}
	return Field{}, false
}

// IsGLOption reports whether label is one of the closed set of GL categories.
func (b *Bank) IsGLOption(label string) bool {
	return slices.Contains(b.GLOptions, label)
}
