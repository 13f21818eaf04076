/*
NAME
  variables.go

DESCRIPTION
  variables.go provides a string-keyed descriptor for every Params field:
  a Name, a type tag, an Update(*Params, string) that parses and applies
  one value, and an optional Validate(*Params) for update-time repairs
  beyond what the whole-struct Validate already does. This mirrors
  revid/config/variables.go's Variables []struct{...} table and gives a
  host property UI the same string-keyed live-update path revid.Config
  exposes, without requiring the host to marshal a whole Params struct
  for a single field change.

LICENSE
  Copyright (C) 2024 the Australian Ocean Lab (AusOcean). All Rights Reserved.

  The Software and all intellectual property rights associated
  therewith, including but not limited to copyrights, trademarks,
  patents, and trade secrets, are and will remain the exclusive
  property of the Australian Ocean Lab (AusOcean).
*/

package stabilize

import (
	"strconv"
)

// Params variable names, for string-keyed lookup via FindVariable.
const (
	KeyEnabled                = "Enabled"
	KeySmoothingRadius        = "SmoothingRadius"
	KeyMaxCorrection          = "MaxCorrection"
	KeyFeatureCount           = "FeatureCount"
	KeyQualityLevel           = "QualityLevel"
	KeyMinDistance            = "MinDistance"
	KeyBlockSize              = "BlockSize"
	KeyUseHarris              = "UseHarris"
	KeyHarrisK                = "HarrisK"
	KeyTrackingErrorThreshold = "TrackingErrorThreshold"
	KeyRansacThresholdMin     = "RansacThresholdMin"
	KeyRansacThresholdMax     = "RansacThresholdMax"
	KeyMinPointSpread         = "MinPointSpread"
	KeyMaxDisplacement        = "MaxDisplacement"
	KeyEdgeMode               = "EdgeMode"
	KeyFrameMotionThreshold   = "FrameMotionThreshold"
)

// Params variable types, in the same vocabulary as revid/config.
const (
	typeBool  = "bool"
	typeInt   = "int"
	typeFloat = "float"
	typeEnum  = "enum:Padding,Crop,Scale"
)

// Variable describes one string-keyed, remotely updatable Params field:
// its name and type, a function that parses a string and applies it to
// a Params, and an optional extra validation step run immediately after
// Update (beyond the range clamping Validate already performs on every
// UpdateParameters call).
type Variable struct {
	Name     string
	Type     string
	Update   func(*Params, string)
	Validate func(*Params)
}

// Variables enumerates every field a host can drive by name, e.g. from a
// property UI or a remote command channel.
var Variables = []Variable{
	{
		Name:   KeyEnabled,
		Type:   typeBool,
		Update: func(p *Params, v string) { p.Enabled = parseBool(v) },
	},
	{
		Name:   KeySmoothingRadius,
		Type:   typeInt,
		Update: func(p *Params, v string) { p.SmoothingRadius = parseInt(v) },
	},
	{
		Name:   KeyMaxCorrection,
		Type:   typeFloat,
		Update: func(p *Params, v string) { p.MaxCorrection = parseFloat(v) },
	},
	{
		Name:   KeyFeatureCount,
		Type:   typeInt,
		Update: func(p *Params, v string) { p.FeatureCount = parseInt(v) },
	},
	{
		Name:   KeyQualityLevel,
		Type:   typeFloat,
		Update: func(p *Params, v string) { p.QualityLevel = parseFloat(v) },
	},
	{
		Name:   KeyMinDistance,
		Type:   typeFloat,
		Update: func(p *Params, v string) { p.MinDistance = parseFloat(v) },
	},
	{
		Name:   KeyBlockSize,
		Type:   typeInt,
		Update: func(p *Params, v string) { p.BlockSize = parseInt(v) },
	},
	{
		Name:   KeyUseHarris,
		Type:   typeBool,
		Update: func(p *Params, v string) { p.UseHarris = parseBool(v) },
	},
	{
		Name:   KeyHarrisK,
		Type:   typeFloat,
		Update: func(p *Params, v string) { p.HarrisK = parseFloat(v) },
	},
	{
		Name:   KeyTrackingErrorThreshold,
		Type:   typeFloat,
		Update: func(p *Params, v string) { p.TrackingErrorThreshold = parseFloat(v) },
	},
	{
		Name:   KeyRansacThresholdMin,
		Type:   typeFloat,
		Update: func(p *Params, v string) { p.RansacThresholdMin = parseFloat(v) },
	},
	{
		Name:   KeyRansacThresholdMax,
		Type:   typeFloat,
		Update: func(p *Params, v string) { p.RansacThresholdMax = parseFloat(v) },
	},
	{
		Name:   KeyMinPointSpread,
		Type:   typeFloat,
		Update: func(p *Params, v string) { p.MinPointSpread = parseFloat(v) },
	},
	{
		Name:   KeyMaxDisplacement,
		Type:   typeFloat,
		Update: func(p *Params, v string) { p.MaxDisplacement = parseFloat(v) },
	},
	{
		Name: KeyEdgeMode,
		Type: typeEnum,
		Update: func(p *Params, v string) {
			switch v {
			case "Padding":
				p.EdgeMode = EdgePadding
			case "Crop":
				p.EdgeMode = EdgeCrop
			case "Scale":
				p.EdgeMode = EdgeScale
			default:
				p.EdgeMode = EdgeMode(-1) // forces Validate to repair to the default.
			}
		},
	},
	{
		Name:   KeyFrameMotionThreshold,
		Type:   typeFloat,
		Update: func(p *Params, v string) { p.FrameMotionThreshold = parseFloat(v) },
	},
}

// FindVariable returns the Variable named name, or ok=false if name is
// not a recognized Params field.
func FindVariable(name string) (v Variable, ok bool) {
	for _, v := range Variables {
		if v.Name == name {
			return v, true
		}
	}
	return Variable{}, false
}

// parseInt parses an int variable value, returning 0 on a malformed
// string; Validate repairs the resulting out-of-range field afterward.
func parseInt(v string) int {
	n, _ := strconv.Atoi(v)
	return n
}

// parseFloat parses a float variable value, returning 0 on a malformed
// string; Validate repairs the resulting out-of-range field afterward.
func parseFloat(v string) float64 {
	f, _ := strconv.ParseFloat(v, 64)
	return f
}

// parseBool parses a bool variable value; anything other than "true"
// (case-sensitive, matching strconv.FormatBool's output) is false.
func parseBool(v string) bool {
	return v == "true"
}
