package plan

import (
	"encoding/json"
	"os"
	"time"

	"github.com/Denizmerty/RenameUtility/pkg/pattern"
)

// RenameOperation is one proposed rename. Operations are immutable once the
// planner emits them; during undo the old and new paths simply swap roles.
type RenameOperation struct {
	OldName     string `json:"old_name"`
	NewName     string `json:"new_name"`
	OldFullPath string `json:"old_full_path"`
	NewFullPath string `json:"new_full_path"`

	// Number is the trailing integer parsed from the original filename,
	// when one existed. It drives the anti-clobber execution ordering.
	Number *int `json:"number,omitempty"`

	// Index is the 1-based position in the manual selection list. It is 0
	// for directory-scan operations.
	Index int `json:"index"`
}

// InputParams is the full configuration for one planning pass. It is a value
// type; every call to Calculate receives its own copy.
type InputParams struct {
	Mode            pattern.Mode `yaml:"mode"`
	TargetDirectory string       `yaml:"target_directory"`

	NamingPattern     string `yaml:"naming_pattern"`
	FindText          string `yaml:"find_text"`
	ReplaceText       string `yaml:"replace_text"`
	FindCaseSensitive bool   `yaml:"find_case_sensitive"`
	FindUseRegex      bool   `yaml:"find_use_regex"`

	CaseConversion pattern.CaseMode `yaml:"case_conversion"`
	Increment      int              `yaml:"increment"`

	FilenamePattern  string `yaml:"filename_pattern"`
	FilterExtensions string `yaml:"filter_extensions"`
	HighestNumber    int    `yaml:"highest_number"`
	LowestNumber     int    `yaml:"lowest_number"`
	RecursiveScan    bool   `yaml:"recursive_scan"`

	ManualFiles []string `yaml:"manual_files,omitempty"`
}

// PotentialOverwrite records a planned rename whose target already exists on
// disk and does not belong to the batch. These are skipped, not errors.
type PotentialOverwrite struct {
	SourceFile string `json:"source_file"`
	TargetFile string `json:"target_file"`
	TargetPath string `json:"target_path"`
}

// OutputResults is the outcome of one planning pass: the ordered plan plus
// five independent diagnostic log streams. Success is false when a fatal
// precondition failed or any item hit an error category; an empty plan with
// no issues is still a success.
type OutputResults struct {
	RenamePlan          []RenameOperation    `json:"rename_plan"`
	MissingSourceFiles  []string             `json:"missing_source_files"`
	PotentialOverwrites []PotentialOverwrite `json:"potential_overwrites"`
	GeneralInfo         []string             `json:"general_info"`
	Warnings            []string             `json:"warnings"`
	Errors              []string             `json:"errors"`
	Success             bool                 `json:"success"`

	// scanSawNoEntries distinguishes an empty directory from an
	// all-filtered one when composing the summary line.
	scanSawNoEntries bool
}

// Batch wraps a computed plan together with the context needed to execute it
// in a later invocation.
type Batch struct {
	BatchID    string            `json:"batch_id"`
	CreatedAt  time.Time         `json:"created_at"`
	Increment  int               `json:"increment"`
	Operations []RenameOperation `json:"operations"`
}

// SaveToFile serializes the batch to a JSON file.
func (b *Batch) SaveToFile(path string) error {
	data, err := json.MarshalIndent(b, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// LoadFromFile deserializes a batch from a JSON file.
func LoadFromFile(path string) (*Batch, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var b Batch
	if err := json.Unmarshal(data, &b); err != nil {
		return nil, err
	}
	return &b, nil
}
