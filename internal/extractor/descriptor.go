package extractor

import (
	"fmt"
	"os"
	"sync"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"
)

var (
	validatorInstance *validator.Validate
	validatorOnce     sync.Once
)

func getValidator() *validator.Validate {
	validatorOnce.Do(func() {
		validatorInstance = validator.New()
	})
	return validatorInstance
}

// DescriptorFile is a hand-written description of AL constructs, used when
// documentation should be produced without scanning source.
type DescriptorFile struct {
	Objects    []*Object    `yaml:"objects" validate:"dive"`
	Procedures []*Procedure `yaml:"procedures" validate:"dive"`
}

// LoadDescriptorFile reads and validates a YAML descriptor file.
func LoadDescriptorFile(path string) (*DescriptorFile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return ParseDescriptors(data)
}

// ParseDescriptors decodes and validates descriptor YAML.
func ParseDescriptors(data []byte) (*DescriptorFile, error) {
	var df DescriptorFile
	if err := yaml.Unmarshal(data, &df); err != nil {
		return nil, fmt.Errorf("failed to decode descriptors: %w", err)
	}
	if err := getValidator().Struct(&df); err != nil {
		return nil, fmt.Errorf("invalid descriptors: %w", err)
	}
	return &df, nil
}
