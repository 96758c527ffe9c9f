package cityjson

import (
	"encoding/json"
	"fmt"
	"os"
	"strconv"
)

// City object types this pipeline cares about. Everything else in the
// source file (bridges, vegetation, ...) is ignored.
const (
	TypeBuilding     = "Building"
	TypeBuildingPart = "BuildingPart"
)

// Transform is the quantization transform of a CityJSON file. Vertices are
// stored as integer triples and real-world coordinates are recovered as
// raw*scale + translate.
type Transform struct {
	Scale     [3]float64 `json:"scale"`
	Translate [3]float64 `json:"translate"`
}

// UnmarshalJSON fills in the identity scale and zero translate when the
// transform object omits either vector.
func (t *Transform) UnmarshalJSON(data []byte) error {
	var raw struct {
		Scale     *[3]float64 `json:"scale"`
		Translate *[3]float64 `json:"translate"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return fmt.Errorf("transform: %w", err)
	}
	if raw.Scale != nil {
		t.Scale = *raw.Scale
	} else {
		t.Scale = [3]float64{1, 1, 1}
	}
	if raw.Translate != nil {
		t.Translate = *raw.Translate
	} else {
		t.Translate = [3]float64{0, 0, 0}
	}
	return nil
}

// Apply reconstructs the real-world coordinate of one raw vertex.
func (t Transform) Apply(v []float64) [3]float64 {
	return [3]float64{
		v[0]*t.Scale[0] + t.Translate[0],
		v[1]*t.Scale[1] + t.Translate[1],
		v[2]*t.Scale[2] + t.Translate[2],
	}
}

// LoD is a level-of-detail tag. Files in the wild carry it either as a
// string ("1.2") or a bare number (1.2); both normalize to the string form.
type LoD string

func (l *LoD) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		*l = LoD(s)
		return nil
	}
	var f float64
	if err := json.Unmarshal(data, &f); err != nil {
		return fmt.Errorf("lod tag %s is neither string nor number", data)
	}
	*l = LoD(strconv.FormatFloat(f, 'g', -1, 64))
	return nil
}

// Surface is one entry of a geometry's semantic surface list.
type Surface struct {
	Type string `json:"type"`
}

// Semantics pairs the surfaces of a geometry entry with their
// classification tags.
type Semantics struct {
	Surfaces []Surface `json:"surfaces"`
	Values   any       `json:"values"`
}

// Geometry is one geometry entry of a city object. Boundaries keep the raw
// decoded JSON tree because the nesting depth varies between single rings,
// surface lists and polygons with holes.
type Geometry struct {
	Type       string     `json:"type"`
	LoD        LoD        `json:"lod"`
	Boundaries any        `json:"boundaries"`
	Semantics  *Semantics `json:"semantics,omitempty"`
}

// CityObject is a single object of the CityObjects mapping.
type CityObject struct {
	Type       string         `json:"type"`
	Attributes map[string]any `json:"attributes"`
	Geometry   []Geometry     `json:"geometry"`
}

// Document is the in-memory form of a CityJSON file. The whole file is
// loaded at once; the vertex table is shared by all geometries.
type Document struct {
	Version     string
	CityObjects map[string]*CityObject
	Vertices    [][]float64
	Transform   Transform
}

// Parse decodes a CityJSON document. A file without a CityObjects mapping
// or a vertex table cannot be processed at all, so both are structural
// errors here rather than per-building ones.
func Parse(data []byte) (*Document, error) {
	var raw struct {
		Version     string                 `json:"version"`
		CityObjects map[string]*CityObject `json:"CityObjects"`
		Vertices    [][]float64            `json:"vertices"`
		Transform   *Transform             `json:"transform"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("failed to decode CityJSON: %w", err)
	}
	if raw.CityObjects == nil {
		return nil, fmt.Errorf("CityJSON document has no CityObjects mapping")
	}
	if raw.Vertices == nil {
		return nil, fmt.Errorf("CityJSON document has no vertices table")
	}

	doc := &Document{
		Version:     raw.Version,
		CityObjects: raw.CityObjects,
		Vertices:    raw.Vertices,
	}
	if raw.Transform != nil {
		doc.Transform = *raw.Transform
	} else {
		doc.Transform = Transform{Scale: [3]float64{1, 1, 1}}
	}
	return doc, nil
}

// Load reads and parses a CityJSON file from disk.
func Load(path string) (*Document, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read CityJSON file: %w", err)
	}
	return Parse(data)
}
