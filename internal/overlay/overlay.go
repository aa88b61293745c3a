// Package overlay turns a classified hand into the shapes a client draws over
// the camera preview: one polyline per finger and one dot per joint.
package overlay

import (
	"sort"

	"github.com/lucasb-eyer/go-colorful"

	"github.com/ayusman/handcount/internal/detector"
	"github.com/ayusman/handcount/internal/gesture"
)

// Finger and wrist colours.
var (
	fingerColors = map[gesture.Finger]colorful.Color{
		gesture.Index:  {R: 1, G: 0, B: 0},
		gesture.Middle: {R: 1, G: 1, B: 0},
		gesture.Ring:   {R: 0, G: 1, B: 0},
		gesture.Little: {R: 0, G: 0, B: 1},
		gesture.Thumb:  {R: 1, G: 0, B: 1},
	}
	wristColor = colorful.Color{R: 1, G: 0.5, B: 0}
)

// DotSize is the edge length, in layer pixels, of a joint marker.
const DotSize = 10

// Line is the skeleton polyline of one finger.
type Line struct {
	Finger gesture.Finger   `json:"finger"`
	Color  string           `json:"color"`
	Points []detector.Point `json:"points"`
}

// Dot is a single joint marker.
type Dot struct {
	Joint detector.Joint `json:"joint"`
	Color string         `json:"color"`
	Point detector.Point `json:"point"`
	Size  int            `json:"size"`
}

// Skeleton is everything drawn for one hand.
type Skeleton struct {
	Lines []Line `json:"lines"`
	Dots  []Dot  `json:"dots"`
}

// FingerColor returns the hex colour used for f.
func FingerColor(f gesture.Finger) string {
	c, ok := fingerColors[f]
	if !ok {
		return wristColor.Hex()
	}
	return c.Hex()
}

// JointColor returns the hex colour used for j's marker.
func JointColor(j detector.Joint) string {
	f, _, ok := gesture.Locate(j)
	if !ok {
		return wristColor.Hex()
	}
	return FingerColor(f)
}

// Build returns the skeleton for one observed hand. Each finger's line runs
// tip, distal, proximal, base and then to the wrist when it was observed.
// Fingers with no observed joints get no line.
func Build(obs *gesture.Observation) Skeleton {
	var sk Skeleton
	if obs == nil {
		return sk
	}

	wrist, hasWrist := obs.WristPoint()

	for _, f := range gesture.Fingers {
		g := obs.Group(f)
		points := g.Chain()
		if len(points) > 0 {
			if hasWrist {
				points = append(points, wrist)
			}
			sk.Lines = append(sk.Lines, Line{Finger: f, Color: FingerColor(f), Points: points})
		}

		for j, p := range g.Joints {
			sk.Dots = append(sk.Dots, Dot{Joint: j, Color: JointColor(j), Point: p, Size: DotSize})
		}
	}

	if hasWrist {
		sk.Dots = append(sk.Dots, Dot{Joint: detector.Wrist, Color: wristColor.Hex(), Point: wrist, Size: DotSize})
	}

	// Map iteration order is random; keep output stable for clients and tests.
	sort.Slice(sk.Dots, func(i, k int) bool {
		return sk.Dots[i].Joint < sk.Dots[k].Joint
	})

	return sk
}
