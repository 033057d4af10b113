package tiffexif

import "math"

func math32frombits(u uint32) float32 { return math.Float32frombits(u) }
func math64frombits(u uint64) float64 { return math.Float64frombits(u) }
