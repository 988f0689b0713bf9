// Package config loads filter design requests from YAML files, flags and
// the environment.
package config

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"

	"github.com/cwbudde/algo-filterdesign/dsp/filter/design"
)

// FamilyFIR selects the windowed-sinc designer instead of an IIR family.
const FamilyFIR = "fir"

var (
	ErrNoFilters     = errors.New("config: no filters defined")
	ErrBadCutoff     = errors.New("config: cutoff needs one or two frequencies")
	ErrBadStrategy   = errors.New("config: unknown band strategy")
	ErrDuplicateName = errors.New("config: duplicate filter name")
)

// Request is one filter as written in a config file or given on the
// command line.
type Request struct {
	Name          string    `yaml:"name,omitempty" mapstructure:"name"`
	Family        string    `yaml:"family" mapstructure:"family"`
	Kind          string    `yaml:"kind" mapstructure:"kind"`
	Cutoff        []float64 `yaml:"cutoff,flow" mapstructure:"cutoff"`
	SampleRate    float64   `yaml:"sample_rate" mapstructure:"sample_rate"`
	Order         int       `yaml:"order,omitempty" mapstructure:"order"`
	RippleDB      float64   `yaml:"ripple_db,omitempty" mapstructure:"ripple_db"`
	AttenuationDB float64   `yaml:"attenuation_db,omitempty" mapstructure:"attenuation_db"`
	Strategy      string    `yaml:"strategy,omitempty" mapstructure:"strategy"`

	// FIR only.
	Taps   int    `yaml:"taps,omitempty" mapstructure:"taps"`
	Window string `yaml:"window,omitempty" mapstructure:"window"`
}

// File is the top level of a design file. Defaults fill the zero fields
// of every entry in Filters.
type File struct {
	Defaults Request   `yaml:"defaults"`
	Filters  []Request `yaml:"filters"`
}

// LoadFile reads and validates a design file.
func LoadFile(path string) (*File, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("config: reading %s: %w", path, err)
	}

	return Parse(data)
}

// Parse decodes a YAML design file. JSON is accepted as well.
func Parse(data []byte) (*File, error) {
	var f File
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("config: parsing YAML: %w", err)
	}

	if len(f.Filters) == 0 {
		return nil, ErrNoFilters
	}

	seen := make(map[string]bool, len(f.Filters))

	for i := range f.Filters {
		r := f.Filters[i].merge(f.Defaults)
		if r.Name == "" {
			r.Name = fmt.Sprintf("filter%d", i+1)
		}

		if seen[r.Name] {
			return nil, fmt.Errorf("%w: %q", ErrDuplicateName, r.Name)
		}

		seen[r.Name] = true
		f.Filters[i] = r
	}

	return &f, nil
}

// FromViper reads a single request from the keys bound in v.
func FromViper(v *viper.Viper) (Request, error) {
	var r Request
	if err := v.Unmarshal(&r); err != nil {
		return Request{}, fmt.Errorf("config: unable to decode request: %w", err)
	}

	return r, nil
}

// SetDefaults registers the request defaults on v.
func SetDefaults(v *viper.Viper) {
	v.SetDefault("family", design.FamilyButterworth.String())
	v.SetDefault("kind", design.Lowpass.String())
	v.SetDefault("sample_rate", 48000.0)
	v.SetDefault("order", 4)
	v.SetDefault("ripple_db", design.DefaultRippleDB)
	v.SetDefault("attenuation_db", design.DefaultAttenuationDB)
	v.SetDefault("strategy", design.BandCascade.String())
	v.SetDefault("taps", 101)
	v.SetDefault("window", design.WindowHamming.String())
}

// Marshal encodes f as YAML.
func (f *File) Marshal() ([]byte, error) {
	return yaml.Marshal(f)
}

func (r Request) merge(d Request) Request {
	if r.Family == "" {
		r.Family = d.Family
	}

	if r.Kind == "" {
		r.Kind = d.Kind
	}

	if len(r.Cutoff) == 0 {
		r.Cutoff = d.Cutoff
	}

	if r.SampleRate == 0 {
		r.SampleRate = d.SampleRate
	}

	if r.Order == 0 {
		r.Order = d.Order
	}

	if r.RippleDB == 0 {
		r.RippleDB = d.RippleDB
	}

	if r.AttenuationDB == 0 {
		r.AttenuationDB = d.AttenuationDB
	}

	if r.Strategy == "" {
		r.Strategy = d.Strategy
	}

	if r.Taps == 0 {
		r.Taps = d.Taps
	}

	if r.Window == "" {
		r.Window = d.Window
	}

	return r
}

// IsFIR reports whether the request selects the windowed-sinc designer.
func (r Request) IsFIR() bool {
	return strings.EqualFold(strings.TrimSpace(r.Family), FamilyFIR)
}

// Spec resolves the names in r. It is not valid for FIR requests.
func (r Request) Spec() (design.Spec, error) {
	family, err := design.ParseFamily(r.Family)
	if err != nil {
		return design.Spec{}, err
	}

	kind, cutoff, err := r.kindAndCutoff()
	if err != nil {
		return design.Spec{}, err
	}

	return design.Spec{
		Family:        family,
		Kind:          kind,
		Cutoff:        cutoff,
		SampleRate:    r.SampleRate,
		Order:         r.Order,
		RippleDB:      r.RippleDB,
		AttenuationDB: r.AttenuationDB,
	}, nil
}

func (r Request) kindAndCutoff() (design.Kind, design.Cutoff, error) {
	kind, err := design.ParseKind(r.Kind)
	if err != nil {
		return 0, design.Cutoff{}, err
	}

	want := 1
	if kind.IsBand() {
		want = 2
	}

	if len(r.Cutoff) != want {
		return 0, design.Cutoff{}, fmt.Errorf("%w: %v takes %d, got %v", ErrBadCutoff, kind, want, r.Cutoff)
	}

	c := design.Freq(r.Cutoff[0])
	if want == 2 {
		c = design.Band(r.Cutoff[0], r.Cutoff[1])
	}

	return kind, c, nil
}

// Options returns the designer options selected by r.
func (r Request) Options() ([]design.Option, error) {
	switch strings.ToLower(strings.TrimSpace(r.Strategy)) {
	case "", "cascade":
		return []design.Option{design.WithBandStrategy(design.BandCascade)}, nil
	case "transform":
		return []design.Option{design.WithBandStrategy(design.BandTransform)}, nil
	}

	return nil, fmt.Errorf("%w: %q", ErrBadStrategy, r.Strategy)
}

// Design runs the designer selected by r. extra options are applied after
// those of r.
func (r Request) Design(extra ...design.Option) (*design.Result, error) {
	if r.IsFIR() {
		kind, cutoff, err := r.kindAndCutoff()
		if err != nil {
			return nil, err
		}

		win, err := design.ParseWindow(r.Window)
		if err != nil {
			return nil, err
		}

		return design.FIR(kind, cutoff, r.SampleRate, r.Taps, win)
	}

	spec, err := r.Spec()
	if err != nil {
		return nil, err
	}

	opts, err := r.Options()
	if err != nil {
		return nil, err
	}

	return design.Design(spec, append(opts, extra...)...)
}
