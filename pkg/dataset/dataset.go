// Package dataset reads and writes measurement sets as YAML, TOML or JSON files, so that a
// run can be reproduced outside the entry form.
package dataset

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v2"

	"github.com/chrissnell/youngslab/internal/constants"
	"github.com/chrissnell/youngslab/internal/validator"
	"github.com/chrissnell/youngslab/pkg/elasticity"
)

// Format names a serialization
type Format string

const (
	FormatYAML Format = "yaml"
	FormatTOML Format = "toml"
	FormatJSON Format = "json"
)

// File is the on-disk shape of a measurement set. Lengths are pointers so that an absent
// key reaches the pipeline as a missing field instead of a zero.
type File struct {
	Name        string    `yaml:"name,omitempty" toml:"name,omitempty" json:"name,omitempty"`
	Diameters   []float64 `yaml:"diameters_mm" toml:"diameters_mm" json:"diameters_mm" validate:"max=6"`
	OpticalPath *float64  `yaml:"optical_path_mm" toml:"optical_path_mm" json:"optical_path_mm"`
	WireLength  *float64  `yaml:"wire_length_mm" toml:"wire_length_mm" json:"wire_length_mm"`
	LeverArm    *float64  `yaml:"lever_arm_mm" toml:"lever_arm_mm" json:"lever_arm_mm"`
	Loading     []float64 `yaml:"loading_mm" toml:"loading_mm" json:"loading_mm" validate:"max=8"`
	Unloading   []float64 `yaml:"unloading_mm" toml:"unloading_mm" json:"unloading_mm" validate:"max=8"`
}

// FormatFromPath picks a format from the file extension
func FormatFromPath(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return FormatYAML, nil
	case ".toml":
		return FormatTOML, nil
	case ".json":
		return FormatJSON, nil
	default:
		return "", fmt.Errorf("unsupported dataset extension %q (use .yaml, .toml or .json)", filepath.Ext(path))
	}
}

// Load reads and validates a dataset file
func Load(path string) (*File, error) {
	format, err := FormatFromPath(path)
	if err != nil {
		return nil, err
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	return Decode(f, format)
}

// Decode parses a dataset in the given format and checks its shape
func Decode(r io.Reader, format Format) (*File, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}

	var file File
	switch format {
	case FormatYAML:
		err = yaml.Unmarshal(data, &file)
	case FormatTOML:
		_, err = toml.Decode(string(data), &file)
	case FormatJSON:
		err = json.Unmarshal(data, &file)
	default:
		return nil, fmt.Errorf("unsupported dataset format %q", format)
	}
	if err != nil {
		return nil, fmt.Errorf("error parsing %s dataset: %w", format, err)
	}

	if err := validator.Validate(&file); err != nil {
		return nil, fmt.Errorf("invalid dataset: %w", err)
	}
	return &file, nil
}

// Encode writes a dataset in the given format
func Encode(w io.Writer, format Format, file *File) error {
	switch format {
	case FormatYAML:
		out, err := yaml.Marshal(file)
		if err != nil {
			return err
		}
		_, err = w.Write(out)
		return err
	case FormatTOML:
		var buf bytes.Buffer
		if err := toml.NewEncoder(&buf).Encode(file); err != nil {
			return err
		}
		_, err := w.Write(buf.Bytes())
		return err
	case FormatJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(file)
	default:
		return fmt.Errorf("unsupported dataset format %q", format)
	}
}

// FromRaw captures a measurement set as a dataset file
func FromRaw(name string, raw elasticity.RawMeasurementSet) *File {
	d, l, b := raw.OpticalPath, raw.WireLength, raw.LeverArm
	return &File{
		Name:        name,
		Diameters:   append([]float64(nil), raw.DiameterTrials...),
		OpticalPath: &d,
		WireLength:  &l,
		LeverArm:    &b,
		Loading:     append([]float64(nil), raw.Loading[:]...),
		Unloading:   append([]float64(nil), raw.Unloading[:]...),
	}
}

// Fields exposes the file as pipeline input. Short reading lists leave the tail rows
// absent, which the pipeline rejects as missing readings.
func (f *File) Fields() elasticity.MapSource {
	fields := elasticity.MapSource{}
	format := func(v float64) string { return strconv.FormatFloat(v, 'f', -1, 64) }

	for i, d := range f.Diameters {
		fields[elasticity.DiameterField(i+1)] = format(d)
	}
	if f.OpticalPath != nil {
		fields[constants.FieldOpticalPath] = format(*f.OpticalPath)
	}
	if f.WireLength != nil {
		fields[constants.FieldWireLength] = format(*f.WireLength)
	}
	if f.LeverArm != nil {
		fields[constants.FieldLeverArm] = format(*f.LeverArm)
	}
	for i, n := range f.Loading {
		fields[elasticity.LoadingField(i)] = format(n)
	}
	for i, n := range f.Unloading {
		fields[elasticity.UnloadingField(i)] = format(n)
	}
	return fields
}
