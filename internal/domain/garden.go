package domain

import "time"

// PlantStatus is the lifecycle state of a plant
type PlantStatus string

const (
	PlantPlanted   PlantStatus = "PLANTED"
	PlantHarvested PlantStatus = "HARVESTED"
)

// GardenPlot is one addressable cell of a user's garden grid
type GardenPlot struct {
	ID             string  `json:"id"`
	UserID         string  `json:"user_id"`
	Row            int     `json:"row"`
	Col            int     `json:"col"`
	CurrentPlantID *string `json:"current_plant_id,omitempty"`
}

// Plant is an instance of a seed placed in a plot. Its stage is derived
// from PlantedAt and never stored.
type Plant struct {
	ID          string      `json:"id"`
	UserID      string      `json:"user_id"`
	PlotID      *string     `json:"plot_id,omitempty"`
	ItemID      int         `json:"item_id"`
	Status      PlantStatus `json:"status"`
	PlantedAt   time.Time   `json:"planted_at"`
	HarvestedAt *time.Time  `json:"harvested_at,omitempty"`
}

// PlotItem is the item summary shown in an occupied grid cell
type PlotItem struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
	Slug string `json:"slug"`
}

// PlotCell is the rendered content of an occupied grid cell
type PlotCell struct {
	PlotID    string      `json:"plot_id"`
	PlantID   string      `json:"plant_id"`
	Item      PlotItem    `json:"item"`
	Status    PlantStatus `json:"status"`
	Stage     int         `json:"stage"`
	PlantedAt time.Time   `json:"planted_at"`
}

// GardenGrid is a size x size matrix; nil cells are empty plots
type GardenGrid struct {
	Size  int           `json:"size"`
	Cells [][]*PlotCell `json:"cells"`
}
