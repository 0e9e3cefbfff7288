package main

import (
	"bytes"
	"io"
	"os"

	"github.com/cockroachdb/errors"
	"github.com/spf13/pflag"
	"gopkg.in/yaml.v3"

	"github.com/arloliu/tcoll/collection"
	"github.com/arloliu/tcoll/format"
)

// profile is the YAML description of a collection layout:
//
//	kind: string
//	count-size: 2
//	item-size: 1
//	compact: true
//	big-endian: false
//
// Omitted fields keep their defaults.
type profile struct {
	Kind      string `yaml:"kind"`
	CountSize int    `yaml:"count-size"`
	ItemSize  int    `yaml:"item-size"`
	Compact   *bool  `yaml:"compact"`
	BigEndian bool   `yaml:"big-endian"`
}

func loadProfile(path string) (profile, error) {
	var p profile
	if path == "" {
		return p, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return p, errors.Wrapf(err, "read profile")
	}

	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&p); err != nil && !errors.Is(err, io.EOF) {
		return p, errors.Wrapf(err, "decode profile %s", path)
	}

	return p, nil
}

// layoutFlags names the flags that override a profile. A prefix selects a
// second set, as used for the destination of transcode.
type layoutFlags struct {
	prefix string
}

func (lf layoutFlags) name(n string) string { return lf.prefix + n }

func (lf layoutFlags) register(fs *pflag.FlagSet, usage string) {
	fs.String(lf.name("profile"), "", "YAML layout profile"+usage)
	fs.String(lf.name("kind"), "", "element kind, e.g. int32, string, guid"+usage)
	fs.Int(lf.name("count-size"), 0, "count header width in bytes: 1, 2, 4 or 8"+usage)
	fs.Int(lf.name("item-size"), 0, "length prefix width in bytes: 1, 2, 4 or 8"+usage)
	fs.Bool(lf.name("compact"), true, "use the presence bitmap layout for fixed-width kinds"+usage)
	fs.Bool(lf.name("big-endian"), false, "encode multi-byte fields big-endian"+usage)
}

// resolve merges the profile named by the flags with the flags that were
// set explicitly. Flags win.
func (lf layoutFlags) resolve(fs *pflag.FlagSet) (profile, error) {
	path, err := fs.GetString(lf.name("profile"))
	if err != nil {
		return profile{}, err
	}
	p, err := loadProfile(path)
	if err != nil {
		return profile{}, err
	}

	if fs.Changed(lf.name("kind")) {
		p.Kind, _ = fs.GetString(lf.name("kind"))
	}
	if fs.Changed(lf.name("count-size")) {
		p.CountSize, _ = fs.GetInt(lf.name("count-size"))
	}
	if fs.Changed(lf.name("item-size")) {
		p.ItemSize, _ = fs.GetInt(lf.name("item-size"))
	}
	if fs.Changed(lf.name("compact")) {
		compact, _ := fs.GetBool(lf.name("compact"))
		p.Compact = &compact
	}
	if fs.Changed(lf.name("big-endian")) {
		p.BigEndian, _ = fs.GetBool(lf.name("big-endian"))
	}

	return p, nil
}

// option converts the profile to a single layout option.
func (p profile) option() (collection.Option, error) {
	var opts []collection.Option
	if p.CountSize != 0 {
		size, err := format.ParseSizeEncoding(p.CountSize)
		if err != nil {
			return nil, errors.Wrap(err, "count-size")
		}
		opts = append(opts, collection.WithCountSize(size))
	}
	if p.ItemSize != 0 {
		size, err := format.ParseSizeEncoding(p.ItemSize)
		if err != nil {
			return nil, errors.Wrap(err, "item-size")
		}
		opts = append(opts, collection.WithItemSize(size))
	}
	if p.Compact != nil {
		opts = append(opts, collection.WithCompact(*p.Compact))
	}
	if p.BigEndian {
		opts = append(opts, collection.WithBigEndian())
	}

	return collection.Combine(opts...), nil
}

// open builds the layout the profile describes. fallback supplies the kind
// when the profile names none.
func (p profile) open(fallback format.Kind) (layout, error) {
	kind := fallback
	if p.Kind != "" {
		k, err := format.ParseKind(p.Kind)
		if err != nil {
			return nil, err
		}
		kind = k
	}
	if kind == 0 {
		return nil, errors.New("element kind not set; use --kind or a profile")
	}

	opt, err := p.option()
	if err != nil {
		return nil, err
	}
	params, err := collection.NewParams(opt)
	if err != nil {
		return nil, err
	}

	return openLayout(kind, params)
}
