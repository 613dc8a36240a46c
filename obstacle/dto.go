package obstacle

import "github.com/lixenwraith/vi-runner/core"

// catalogDTO is the TOML document layout
type catalogDTO struct {
	Obstacles []typeDTO `toml:"obstacle"`
}

type typeDTO struct {
	Kind          string   `toml:"kind"`
	Width         int      `toml:"width"`
	Height        int      `toml:"height"`
	YPos          []int    `toml:"y_pos"`
	YPosSmall     []int    `toml:"y_pos_small"`
	MinGap        float64  `toml:"min_gap"`
	MinSpeed      float64  `toml:"min_speed"`
	MultipleSpeed float64  `toml:"multiple_speed"`
	SpeedOffset   float64  `toml:"speed_offset"`
	NumFrames     int      `toml:"num_frames"`
	FrameRate     float64  `toml:"frame_rate"`
	Boxes         []boxDTO `toml:"box"`
}

type boxDTO struct {
	X      int `toml:"x"`
	Y      int `toml:"y"`
	Width  int `toml:"width"`
	Height int `toml:"height"`
}

func (d typeDTO) toType() Type {
	t := Type{
		Kind:          d.Kind,
		Width:         d.Width,
		Height:        d.Height,
		YPos:          append([]int(nil), d.YPos...),
		YPosSmall:     append([]int(nil), d.YPosSmall...),
		MinGap:        d.MinGap,
		MinSpeed:      d.MinSpeed,
		MultipleSpeed: d.MultipleSpeed,
		SpeedOffset:   d.SpeedOffset,
		NumFrames:     d.NumFrames,
		FrameRate:     d.FrameRate,
	}
	for _, b := range d.Boxes {
		t.Boxes = append(t.Boxes, core.Box{X: b.X, Y: b.Y, Width: b.Width, Height: b.Height})
	}
	return t
}
