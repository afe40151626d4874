package cmd

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"slices"

	"github.com/xwill007/cursor"
)

// Scenario is a scene plus a script, loaded from JSON:
//
//	{
//	  "config":  {"mode": "fuse", "fuse_timeout_ms": 1000},
//	  "objects": [{"id": "play", "tags": ["selectable"], "position": {"z": -3}, "radius": 0.5}],
//	  "steps":   [{"action": "hover", "target": "play"}, {"action": "wait", "ms": 1000}],
//	  "expect":  {"selects": ["play"]}
//	}
type Scenario struct {
	Config  map[string]any `json:"config"`
	Objects []ObjectSpec   `json:"objects"`
	Steps   []cursor.Step  `json:"steps"`
	Expect  *Expectation   `json:"expect,omitempty"`
}

// ObjectSpec describes one scene object.
type ObjectSpec struct {
	ID       string      `json:"id"`
	Name     string      `json:"name,omitempty"`
	Parent   string      `json:"parent,omitempty"`
	Tags     []string    `json:"tags,omitempty"`
	Position cursor.Vec3 `json:"position"`
	// Radius gives the object a hit sphere.
	Radius float64 `json:"radius,omitempty"`
	// Box gives the object an axis-aligned hit box (min, max).
	Box *[2]cursor.Vec3 `json:"box,omitempty"`
	// Seek registers a seek capability that records requests.
	Seek bool `json:"seek,omitempty"`
}

// Expectation is checked after the script ran.
type Expectation struct {
	Selects []string `json:"selects"`
	Seeks   []string `json:"seeks,omitempty"`
}

// LoadScenario reads and validates a scenario file.
func LoadScenario(path string) (*Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read scenario: %w", err)
	}
	return ParseScenario(data)
}

// ParseScenario decodes a scenario.
func ParseScenario(data []byte) (*Scenario, error) {
	var sc Scenario
	if err := json.Unmarshal(data, &sc); err != nil {
		return nil, fmt.Errorf("parse scenario: %w", err)
	}
	if len(sc.Objects) == 0 {
		return nil, errors.New("parse scenario: no objects")
	}
	seen := make(map[string]bool, len(sc.Objects))
	for i, o := range sc.Objects {
		if o.ID == "" {
			return nil, fmt.Errorf("parse scenario: object %d has no id", i)
		}
		if seen[o.ID] {
			return nil, fmt.Errorf("parse scenario: duplicate object id %q", o.ID)
		}
		seen[o.ID] = true
	}
	return &sc, nil
}

// SeekLog collects seek requests made against scenario objects.
type SeekLog struct {
	Requests []cursor.SeekRequest
}

// TargetIDs returns the target of every recorded request.
func (l *SeekLog) TargetIDs() []string {
	ids := make([]string, len(l.Requests))
	for i, r := range l.Requests {
		ids[i] = r.TargetID
	}
	return ids
}

// BuildScene creates the scene described by the scenario. Objects may name
// a parent declared earlier in the list.
func (sc *Scenario) BuildScene() (*cursor.Scene, *SeekLog, error) {
	scene := cursor.NewScene()
	seeks := &SeekLog{}
	byID := make(map[string]*cursor.Object, len(sc.Objects))

	for _, spec := range sc.Objects {
		o := cursor.NewObject(spec.ID, spec.Tags...)
		o.Name = spec.Name
		o.Position = spec.Position
		switch {
		case spec.Box != nil:
			o.HitShape = cursor.HitBox{Min: spec.Box[0], Max: spec.Box[1]}
		case spec.Radius > 0:
			o.HitShape = cursor.HitSphere{Radius: spec.Radius}
		}
		if spec.Seek {
			o.Seeker = cursor.SeekFunc(func(req cursor.SeekRequest) {
				seeks.Requests = append(seeks.Requests, req)
			})
		}

		if spec.Parent == "" {
			scene.Add(o)
		} else {
			parent, ok := byID[spec.Parent]
			if !ok {
				return nil, nil, fmt.Errorf("object %q: unknown parent %q", spec.ID, spec.Parent)
			}
			parent.AddChild(o)
		}
		byID[spec.ID] = o
	}
	return scene, seeks, nil
}

// Check compares the observed selections and seeks with the expectation.
func (e *Expectation) Check(selects, seeks []string) error {
	if e == nil {
		return nil
	}
	if !slices.Equal(e.Selects, selects) && !(len(e.Selects) == 0 && len(selects) == 0) {
		return fmt.Errorf("selects = %v, want %v", selects, e.Selects)
	}
	if e.Seeks != nil && !slices.Equal(e.Seeks, seeks) && !(len(e.Seeks) == 0 && len(seeks) == 0) {
		return fmt.Errorf("seeks = %v, want %v", seeks, e.Seeks)
	}
	return nil
}
