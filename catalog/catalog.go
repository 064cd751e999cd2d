// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package catalog

import (
	_ "embed"
	"errors"
	"fmt"
	"os"
	"sort"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/fadiatamny/FFXIV-PaissaDB/models"
)

//go:embed data/catalog.yaml
var defaultData []byte

var ErrNotFound = errors.New("not found in catalog")

// Catalog is the static housing reference data: worlds, districts, and
// per-plot metadata. Loaded once at startup, read-only afterwards.
type Catalog struct {
	worlds    []models.World
	districts map[int]districtEntry
	plots     map[plotKey]models.PlotInfo
}

type districtEntry struct {
	district models.District
	numWards int
}

type plotKey struct {
	territoryTypeID int
	plotNumber      int
}

// YAML file shapes

type fileData struct {
	Worlds    []worldData    `yaml:"worlds"`
	Districts []districtData `yaml:"districts"`
}

type worldData struct {
	ID   int    `yaml:"id"`
	Name string `yaml:"name"`
}

type districtData struct {
	ID        int             `yaml:"id"`
	Name      string          `yaml:"name"`
	LandSetID int             `yaml:"land_set_id"`
	NumWards  int             `yaml:"num_wards"`
	Plots     []plotRangeData `yaml:"plots"`
}

// plotRangeData declares one contiguous run of plots sharing a size class
// and base price, e.g. {range: "0-7", size: small, base_price: 3750000}.
type plotRangeData struct {
	Range     string `yaml:"range"`
	Size      string `yaml:"size"`
	BasePrice int    `yaml:"base_price"`
}

// LoadDefault parses the embedded reference data.
func LoadDefault() (*Catalog, error) {
	return parse(defaultData)
}

// LoadFile parses reference data from an external YAML file, for
// deployments that track game patches ahead of a rebuild.
func LoadFile(path string) (*Catalog, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read catalog file: %w", err)
	}
	return parse(raw)
}

func parse(raw []byte) (*Catalog, error) {
	var data fileData
	if err := yaml.Unmarshal(raw, &data); err != nil {
		return nil, fmt.Errorf("failed to parse catalog: %w", err)
	}

	c := &Catalog{
		districts: make(map[int]districtEntry),
		plots:     make(map[plotKey]models.PlotInfo),
	}

	for _, w := range data.Worlds {
		if w.Name == "" {
			return nil, fmt.Errorf("world %d has no name", w.ID)
		}
		c.worlds = append(c.worlds, models.World{ID: w.ID, Name: w.Name})
	}
	sort.Slice(c.worlds, func(i, j int) bool { return c.worlds[i].ID < c.worlds[j].ID })

	for _, d := range data.Districts {
		if _, dup := c.districts[d.ID]; dup {
			return nil, fmt.Errorf("duplicate district id %d", d.ID)
		}
		if d.NumWards <= 0 {
			return nil, fmt.Errorf("district %q: num_wards must be positive", d.Name)
		}
		c.districts[d.ID] = districtEntry{
			district: models.District{ID: d.ID, Name: d.Name, LandSetID: d.LandSetID},
			numWards: d.NumWards,
		}

		for _, pr := range d.Plots {
			lo, hi, err := parseRange(pr.Range)
			if err != nil {
				return nil, fmt.Errorf("district %q: %w", d.Name, err)
			}
			size, err := parseSize(pr.Size)
			if err != nil {
				return nil, fmt.Errorf("district %q: %w", d.Name, err)
			}
			if pr.BasePrice <= 0 {
				return nil, fmt.Errorf("district %q plots %s: base_price must be positive", d.Name, pr.Range)
			}
			for n := lo; n <= hi; n++ {
				k := plotKey{territoryTypeID: d.ID, plotNumber: n}
				if _, dup := c.plots[k]; dup {
					return nil, fmt.Errorf("district %q: plot %d declared twice", d.Name, n)
				}
				c.plots[k] = models.PlotInfo{
					TerritoryTypeID: d.ID,
					PlotNumber:      n,
					HouseSize:       size,
					HouseBasePrice:  pr.BasePrice,
				}
			}
		}
	}

	return c, nil
}

func parseRange(s string) (lo, hi int, err error) {
	lo, hi = -1, -1
	parts := strings.SplitN(s, "-", 2)
	if len(parts) == 2 {
		lo, err = strconv.Atoi(strings.TrimSpace(parts[0]))
		if err == nil {
			hi, err = strconv.Atoi(strings.TrimSpace(parts[1]))
		}
	} else if len(parts) == 1 && parts[0] != "" {
		lo, err = strconv.Atoi(strings.TrimSpace(parts[0]))
		hi = lo
	} else {
		err = errors.New("empty range")
	}
	if err != nil || lo < 0 || hi < lo {
		return 0, 0, fmt.Errorf("invalid plot range %q", s)
	}
	return lo, hi, nil
}

func parseSize(s string) (int, error) {
	switch s {
	case "small":
		return models.HouseSizeSmall, nil
	case "medium":
		return models.HouseSizeMedium, nil
	case "large":
		return models.HouseSizeLarge, nil
	default:
		return 0, fmt.Errorf("unknown house size %q", s)
	}
}

// Lookup resolves static metadata for one (district, plot number) pair.
func (c *Catalog) Lookup(territoryTypeID, plotNumber int) (models.PlotInfo, error) {
	info, ok := c.plots[plotKey{territoryTypeID: territoryTypeID, plotNumber: plotNumber}]
	if !ok {
		return models.PlotInfo{}, ErrNotFound
	}
	return info, nil
}

// District returns the district record for a territory type id.
func (c *Catalog) District(territoryTypeID int) (models.District, error) {
	e, ok := c.districts[territoryTypeID]
	if !ok {
		return models.District{}, ErrNotFound
	}
	return e.district, nil
}

// NumWards returns how many wards the district has.
func (c *Catalog) NumWards(territoryTypeID int) (int, error) {
	e, ok := c.districts[territoryTypeID]
	if !ok {
		return 0, ErrNotFound
	}
	return e.numWards, nil
}

// World returns the world record for an id.
func (c *Catalog) World(id int) (models.World, error) {
	for _, w := range c.worlds {
		if w.ID == id {
			return w, nil
		}
	}
	return models.World{}, ErrNotFound
}

// Worlds returns all known worlds, ordered by id.
func (c *Catalog) Worlds() []models.World {
	out := make([]models.World, len(c.worlds))
	copy(out, c.worlds)
	return out
}

// Districts returns all known districts, ordered by territory type id.
func (c *Catalog) Districts() []models.District {
	out := make([]models.District, 0, len(c.districts))
	for _, e := range c.districts {
		out = append(out, e.district)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

// PlotInfos returns every plot record, ordered by (district, plot number).
func (c *Catalog) PlotInfos() []models.PlotInfo {
	out := make([]models.PlotInfo, 0, len(c.plots))
	for _, info := range c.plots {
		out = append(out, info)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].TerritoryTypeID != out[j].TerritoryTypeID {
			return out[i].TerritoryTypeID < out[j].TerritoryTypeID
		}
		return out[i].PlotNumber < out[j].PlotNumber
	})
	return out
}
