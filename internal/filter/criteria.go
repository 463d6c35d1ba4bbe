// Package filter narrows the draft set with the dashboard's predicate chain.
package filter

import (
	"net/url"
	"strings"
)

// Criteria is one complete set of filter inputs. Every field is free-form
// text; blank means the predicate is off.
type Criteria struct {
	Year     string `json:"year" yaml:"year"`
	Round    string `json:"round" yaml:"round"`
	Pick     string `json:"pick" yaml:"pick"`
	Team     string `json:"team" yaml:"team"`
	Position string `json:"position" yaml:"position"`
	School   string `json:"school" yaml:"school"`
	Bat      string `json:"bat" yaml:"bat"`
	Throw    string `json:"throw" yaml:"throw"`
	Age      string `json:"age" yaml:"age"`
	Search   string `json:"search" yaml:"search"`

	YearFrom  string `json:"yearFrom" yaml:"year_from"`
	YearTo    string `json:"yearTo" yaml:"year_to"`
	RoundFrom string `json:"roundFrom" yaml:"round_from"`
	RoundTo   string `json:"roundTo" yaml:"round_to"`
	PickFrom  string `json:"pickFrom" yaml:"pick_from"`
	PickTo    string `json:"pickTo" yaml:"pick_to"`
	AgeFrom   string `json:"ageFrom" yaml:"age_from"`
	AgeTo     string `json:"ageTo" yaml:"age_to"`
}

// fields pairs every option name with its slot, in declaration order.
func (c *Criteria) fields() []struct {
	name string
	ptr  *string
} {
	return []struct {
		name string
		ptr  *string
	}{
		{"year", &c.Year}, {"round", &c.Round}, {"pick", &c.Pick}, {"team", &c.Team},
		{"position", &c.Position}, {"school", &c.School}, {"bat", &c.Bat},
		{"throw", &c.Throw}, {"age", &c.Age}, {"search", &c.Search},
		{"yearFrom", &c.YearFrom}, {"yearTo", &c.YearTo},
		{"roundFrom", &c.RoundFrom}, {"roundTo", &c.RoundTo},
		{"pickFrom", &c.PickFrom}, {"pickTo", &c.PickTo},
		{"ageFrom", &c.AgeFrom}, {"ageTo", &c.AgeTo},
	}
}

// Options lists the recognized option names.
func Options() []string {
	var c Criteria
	fs := c.fields()
	out := make([]string, len(fs))
	for i, f := range fs {
		out[i] = f.name
	}
	return out
}

// Active reports whether any predicate is on.
func (c Criteria) Active() bool {
	for _, f := range c.fields() {
		if strings.TrimSpace(*f.ptr) != "" {
			return true
		}
	}
	return false
}

// Normalize returns a copy with every value trimmed. School keeps its raw
// text, since non-HS school matching compares the exact cell.
func (c Criteria) Normalize() Criteria {
	out := c
	for _, f := range out.fields() {
		if f.ptr == &out.School {
			if strings.TrimSpace(out.School) == "" {
				out.School = ""
			}
			continue
		}
		*f.ptr = strings.TrimSpace(*f.ptr)
	}
	return out
}

// Set assigns one option by name. Unknown names report false.
func (c *Criteria) Set(name, v string) bool {
	for _, f := range c.fields() {
		if f.name == name {
			*f.ptr = v
			return true
		}
	}
	return false
}

// FromQuery reads the option names out of URL query parameters.
func FromQuery(q url.Values) Criteria {
	var c Criteria
	for _, f := range c.fields() {
		*f.ptr = q.Get(f.name)
	}
	return c
}

// Query is the inverse of FromQuery; inactive options are omitted.
func (c Criteria) Query() url.Values {
	q := url.Values{}
	for _, f := range c.fields() {
		if strings.TrimSpace(*f.ptr) != "" {
			q.Set(f.name, *f.ptr)
		}
	}
	return q
}
