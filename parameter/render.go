package parameter

import "time"

// Terminal sink
const (
	// RenderCellWidth is canvas pixels per terminal column
	RenderCellWidth = 6

	// RenderCellHeight is canvas pixels per terminal row
	RenderCellHeight = 10

	// RenderStatusRows reserves rows below the playfield for the HUD
	RenderStatusRows = 2
)

// Input
const (
	// KeyHoldTimeout synthesizes a release when a key stops repeating
	KeyHoldTimeout = 150 * time.Millisecond
)

// Report
const (
	ReportPlotWidthInch  = 6
	ReportPlotHeightInch = 4
)
