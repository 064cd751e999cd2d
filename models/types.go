package models

// Event types. The column is a plain string rather than a closed enum so
// further packet types (LAND_UPDATE, LAND_SET_MAP, LAND_SET_INITIALIZE)
// can be ingested later without a schema migration.
const (
	EventTypeHousingWardInfo = "HOUSING_WARD_INFO"
)

// House size classes as reported by the game client.
const (
	HouseSizeSmall  = 0
	HouseSizeMedium = 1
	HouseSizeLarge  = 2
)

// MaxHousePrice is the sanity cap on an observed price. The game never
// prices a plot anywhere near this; anything above is a broken client.
const MaxHousePrice = 1<<31 - 1

// Domain types. Plain records with explicit foreign-key fields;
// relationships are resolved by joins, never by live object references.

type World struct {
	ID   int    `json:"id" db:"id"`
	Name string `json:"name" db:"name"`
}

type District struct {
	ID        int    `json:"id" db:"id"` // territory type id
	Name      string `json:"name" db:"name"`
	LandSetID int    `json:"land_set_id" db:"land_set_id"`
}

type PlotInfo struct {
	TerritoryTypeID int `json:"territory_type_id" db:"territory_type_id"`
	PlotNumber      int `json:"plot_number" db:"plot_number"`
	HouseSize       int `json:"house_size" db:"house_size"`
	HouseBasePrice  int `json:"house_base_price" db:"house_base_price"`
}

type Sweeper struct {
	ID       int64  `json:"id" db:"id"`
	Name     string `json:"name" db:"name"`
	WorldID  *int   `json:"world_id" db:"world_id"`
	LastSeen int64  `json:"last_seen" db:"last_seen"` // unix millis
}

// Event is one append-only ingestion fact. Data holds the raw submission
// payload (zstd-compressed at rest) so every derived row can be rebuilt by
// replaying events in timestamp order.
type Event struct {
	ID        int64  `json:"id" db:"id"`
	SweeperID *int64 `json:"sweeper_id" db:"sweeper_id"` // null once the sweeper is deleted
	Timestamp int64  `json:"timestamp" db:"timestamp"`   // unix millis, server-assigned
	EventType string `json:"event_type" db:"event_type"`
	Data      []byte `json:"-" db:"data"`
}

type WardSweep struct {
	ID              int64  `json:"id" db:"id"`
	SweeperID       *int64 `json:"sweeper_id" db:"sweeper_id"`
	WorldID         int    `json:"world_id" db:"world_id"`
	TerritoryTypeID int    `json:"territory_type_id" db:"territory_type_id"`
	EventID         int64  `json:"event_id" db:"event_id"`
	WardNumber      int    `json:"ward_number" db:"ward_number"`
	Timestamp       int64  `json:"timestamp" db:"timestamp"`
}

// Plot is one historical observation of one plot's state at a point in
// time. The table is append-only; "current state" is always the row with
// the highest (timestamp, id) for a plot key, never an update in place.
type Plot struct {
	ID              int64  `json:"id" db:"id"`
	WorldID         int    `json:"world_id" db:"world_id"`
	TerritoryTypeID int    `json:"territory_type_id" db:"territory_type_id"`
	WardNumber      int    `json:"ward_number" db:"ward_number"`
	PlotNumber      int    `json:"plot_number" db:"plot_number"`
	Timestamp       int64  `json:"timestamp" db:"timestamp"`
	SweepID         *int64 `json:"sweep_id" db:"sweep_id"`
	EventID         int64  `json:"event_id" db:"event_id"`
	IsOwned         bool   `json:"is_owned" db:"is_owned"`
	HasBuiltHouse   bool   `json:"has_built_house" db:"has_built_house"`
	HousePrice      *int   `json:"house_price" db:"house_price"`
	Owner           Owner  `json:"owner" db:"owner_name"`
	IsRedundant     bool   `json:"is_redundant" db:"is_redundant"`
}

// StateEquals reports whether the externally observable state tuple of p
// matches o. Identity, timestamps and provenance are ignored.
func (p Plot) StateEquals(o Plot) bool {
	if p.IsOwned != o.IsOwned || p.HasBuiltHouse != o.HasBuiltHouse {
		return false
	}
	if (p.HousePrice == nil) != (o.HousePrice == nil) {
		return false
	}
	if p.HousePrice != nil && *p.HousePrice != *o.HousePrice {
		return false
	}
	return p.Owner.Equal(o.Owner)
}

// Request types

// PlotObservation is one plot's state as reported on the wire. A nil
// OwnerName means the owner was not reported at all; the UnknownOwner
// sentinel means the sweeper saw an owner it could not identify.
type PlotObservation struct {
	PlotNumber    int     `json:"plot_number"`
	IsOwned       bool    `json:"is_owned"`
	HasBuiltHouse bool    `json:"has_built_house"`
	HousePrice    *int    `json:"house_price,omitempty"`
	OwnerName     *string `json:"owner_name,omitempty"`
}

type SweeperIdentity struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

type WardInfoRequest struct {
	WorldID         int               `json:"world_id"`
	TerritoryTypeID int               `json:"territory_type_id"`
	WardNumber      int               `json:"ward_number"`
	Sweeper         SweeperIdentity   `json:"sweeper"`
	Plots           []PlotObservation `json:"plots"`
}

// Response types

type WardInfoResponse struct {
	EventID        int64 `json:"event_id"`
	SweepID        int64 `json:"sweep_id"`
	PlotsInserted  int   `json:"plots_inserted"`
	PlotsRedundant int   `json:"plots_redundant"`
}

// PlotState is the latest-state projection of one plot, with the derived
// devaluation count attached.
type PlotState struct {
	WorldID         int   `json:"world_id"`
	TerritoryTypeID int   `json:"territory_type_id"`
	WardNumber      int   `json:"ward_number"`
	PlotNumber      int   `json:"plot_number"`
	Timestamp       int64 `json:"timestamp"`
	IsOwned         bool  `json:"is_owned"`
	HasBuiltHouse   bool  `json:"has_built_house"`
	HousePrice      *int  `json:"house_price"`
	Owner           Owner `json:"owner"`
	NumDevals       *int  `json:"num_devals"`
}

type WardStateResponse struct {
	WorldID         int         `json:"world_id"`
	TerritoryTypeID int         `json:"territory_type_id"`
	WardNumber      int         `json:"ward_number"`
	Plots           []PlotState `json:"plots"`
}

type PlotHistoryResponse struct {
	WorldID         int    `json:"world_id"`
	TerritoryTypeID int    `json:"territory_type_id"`
	WardNumber      int    `json:"ward_number"`
	PlotNumber      int    `json:"plot_number"`
	History         []Plot `json:"history"`
}

type DeleteResponse struct {
	Deleted string `json:"deleted"` // "event" or "sweeper"
	ID      int64  `json:"id"`
}

// Error response

type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
	Field   string `json:"field,omitempty"`
}
