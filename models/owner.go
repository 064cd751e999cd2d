// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package models

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
)

// UnknownOwner is the storage sentinel for an owner that was reported but
// could not be identified. It lives only at the wire and column boundary;
// in-process code uses the Owner variant below.
const UnknownOwner = "Unknown"

type ownerState int

const (
	ownerNotReported ownerState = iota
	ownerUnknown
	ownerNamed
)

// Owner is the tagged variant for a plot's observed owner:
// not reported at all, reported but unidentified, or a concrete name.
// The zero value is NotReported.
type Owner struct {
	state ownerState
	name  string
}

func OwnerNotReported() Owner      { return Owner{} }
func OwnerUnknown() Owner          { return Owner{state: ownerUnknown} }
func OwnerNamed(name string) Owner { return Owner{state: ownerNamed, name: name} }

// OwnerFromWire maps the wire/column encoding (nil, "Unknown", name) onto
// the variant.
func OwnerFromWire(s *string) Owner {
	switch {
	case s == nil:
		return OwnerNotReported()
	case *s == UnknownOwner:
		return OwnerUnknown()
	default:
		return OwnerNamed(*s)
	}
}

// Reported reports whether any owner observation was made at all.
func (o Owner) Reported() bool { return o.state != ownerNotReported }

// Name returns the owner's name and whether one is known.
func (o Owner) Name() (string, bool) { return o.name, o.state == ownerNamed }

func (o Owner) Equal(other Owner) bool {
	return o.state == other.state && o.name == other.name
}

func (o Owner) String() string {
	switch o.state {
	case ownerUnknown:
		return UnknownOwner
	case ownerNamed:
		return o.name
	default:
		return ""
	}
}

// Scan implements sql.Scanner: NULL means not reported, the UnknownOwner
// sentinel means reported-but-unknown, anything else is a name.
func (o *Owner) Scan(src any) error {
	switch v := src.(type) {
	case nil:
		*o = OwnerNotReported()
	case string:
		*o = OwnerFromWire(&v)
	case []byte:
		s := string(v)
		*o = OwnerFromWire(&s)
	default:
		return fmt.Errorf("cannot scan %T into Owner", src)
	}
	return nil
}

// Value implements driver.Valuer, the inverse of Scan.
func (o Owner) Value() (driver.Value, error) {
	switch o.state {
	case ownerNotReported:
		return nil, nil
	case ownerUnknown:
		return UnknownOwner, nil
	default:
		return o.name, nil
	}
}

type ownerJSON struct {
	State string  `json:"state"`
	Name  *string `json:"name,omitempty"`
}

const (
	ownerStateNotReported = "not_reported"
	ownerStateUnknown     = "unknown"
	ownerStateNamed       = "named"
)

func (o Owner) MarshalJSON() ([]byte, error) {
	out := ownerJSON{State: ownerStateNotReported}
	switch o.state {
	case ownerUnknown:
		out.State = ownerStateUnknown
	case ownerNamed:
		out.State = ownerStateNamed
		out.Name = &o.name
	}
	return json.Marshal(out)
}

func (o *Owner) UnmarshalJSON(data []byte) error {
	var in ownerJSON
	if err := json.Unmarshal(data, &in); err != nil {
		return err
	}
	switch in.State {
	case ownerStateNotReported, "":
		*o = OwnerNotReported()
	case ownerStateUnknown:
		*o = OwnerUnknown()
	case ownerStateNamed:
		if in.Name == nil {
			return fmt.Errorf("owner state %q requires a name", in.State)
		}
		*o = OwnerNamed(*in.Name)
	default:
		return fmt.Errorf("unknown owner state %q", in.State)
	}
	return nil
}
