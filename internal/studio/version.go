package studio

import "fmt"

// Version identifies a source sub-version family. Sub-versions 16 through 19
// share one record layout and differ only in the sequence stride, so they map
// onto one family with the exact sub-version kept alongside.
type Version int

const (
	Version80  Version = 80
	Version121 Version = 121
	Version122 Version = 122
	Version124 Version = 124
	Version125 Version = 125
	Version140 Version = 140
	Version150 Version = 150
	Version160 Version = 160
	Version170 Version = 170
	Version180 Version = 180
	Version190 Version = 190
	Version191 Version = 191
)

// Mapping binds a user-facing version tag to a converter family.
type Mapping struct {
	Tag       string  // version string accepted on the command line
	BatchFlag string  // legacy batch flag spelling, empty for aliases
	Version   Version // converter family and exact sub-version
	HasVG     bool    // geometry sibling uses the older rev2 layout
	Supported bool
}

// Tag table covering every sub-version the format family ever shipped.
// Entries with Supported false are recognized so the error names them
// instead of claiming the tag is unknown.
var mappings = []Mapping{
	{Tag: "8", BatchFlag: "-v8", Version: Version80},

	{Tag: "12.1", BatchFlag: "-v121", Version: Version121, HasVG: true},
	{Tag: "121", Version: Version121, HasVG: true},
	{Tag: "12.2", BatchFlag: "-v122", Version: Version122, HasVG: true},
	{Tag: "122", Version: Version122, HasVG: true},
	{Tag: "12.3", BatchFlag: "-v123", Version: Version122, HasVG: true},
	{Tag: "123", Version: Version122, HasVG: true},
	{Tag: "12.4", BatchFlag: "-v124", Version: Version124, HasVG: true},
	{Tag: "124", Version: Version124, HasVG: true},
	{Tag: "12.5", BatchFlag: "-v125", Version: Version125, HasVG: true},
	{Tag: "125", Version: Version125, HasVG: true},

	{Tag: "13", BatchFlag: "-v13", Version: Version125, HasVG: true},
	{Tag: "13.1", BatchFlag: "-v131", Version: Version125, HasVG: true},
	{Tag: "131", Version: Version125, HasVG: true},

	{Tag: "14", BatchFlag: "-v14", Version: Version140, Supported: true},
	{Tag: "14.1", BatchFlag: "-v141", Version: Version140, Supported: true},
	{Tag: "141", Version: Version140, Supported: true},

	{Tag: "15", BatchFlag: "-v15", Version: Version150, Supported: true},

	{Tag: "16", BatchFlag: "-v16", Version: Version160, Supported: true},
	{Tag: "17", BatchFlag: "-v17", Version: Version170, Supported: true},
	{Tag: "18", BatchFlag: "-v18", Version: Version180, Supported: true},
	{Tag: "19", BatchFlag: "-v19", Version: Version190, Supported: true},

	{Tag: "19.1", BatchFlag: "-v191", Version: Version191, Supported: true},
	{Tag: "191", Version: Version191, Supported: true},
}

// Mappings returns the full tag table in declaration order.
func Mappings() []Mapping {
	return mappings
}

// FindMapping resolves a user-supplied version tag.
func FindMapping(tag string) (Mapping, error) {
	for _, m := range mappings {
		if m.Tag == tag {
			return m, nil
		}
	}
	return Mapping{}, fmt.Errorf("studio: unknown source version %q", tag)
}

// FindMappingByFlag resolves a legacy batch flag like "-v16".
func FindMappingByFlag(flag string) (Mapping, bool) {
	for _, m := range mappings {
		if m.BatchFlag != "" && m.BatchFlag == flag {
			return m, true
		}
	}
	return Mapping{}, false
}
