// Package catalog reads and writes fitting databases. The same document shape
// is accepted as XML, YAML or JSON.
package catalog

import (
	"encoding/json"
	"encoding/xml"
	"fmt"
	"math"
	"os"
	"path/filepath"
	"strings"

	"github.com/go-logr/logr"
	"go.uber.org/multierr"
	"gopkg.in/yaml.v3"

	"github.com/piwi3910/RoomFit/internal/model"
)

// Format is a catalog file encoding.
type Format string

const (
	FormatXML  Format = "xml"
	FormatYAML Format = "yaml"
	FormatJSON Format = "json"
)

// FormatFromPath picks the format from a file extension.
func FormatFromPath(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".xml":
		return FormatXML, nil
	case ".yaml", ".yml":
		return FormatYAML, nil
	case ".json":
		return FormatJSON, nil
	}
	return "", fmt.Errorf("unsupported catalog file type: %s", filepath.Ext(path))
}

// Document is the serialized form of a fitting database.
type Document struct {
	XMLName       xml.Name       `xml:"fitting_database" json:"-" yaml:"-"`
	FaceTypes     []FaceTypeDoc  `xml:"face_types>face_type" json:"face_types" yaml:"face_types"`
	FittingTypes  []FittingType  `xml:"fitting_types>fitting_type" json:"fitting_types" yaml:"fitting_types"`
	FittingModels []FittingModel `xml:"fitting_models>fitting_model" json:"fitting_models" yaml:"fitting_models"`
}

type FaceTypeDoc struct {
	ID        string     `xml:"face_type_id" json:"face_type_id" yaml:"face_type_id"`
	Relations []Relation `xml:"relations>relation,omitempty" json:"relations,omitempty" yaml:"relations,omitempty"`
}

type Relation struct {
	SupportFaceTypeID string  `xml:"support_face_type_id" json:"support_face_type_id" yaml:"support_face_type_id"`
	Distance          float64 `xml:"distance" json:"distance" yaml:"distance"`
}

type FittingType struct {
	ID    string `xml:"fitting_type_id" json:"fitting_type_id" yaml:"fitting_type_id"`
	Faces []Face `xml:"faces>face" json:"faces" yaml:"faces"`
}

type Face struct {
	Facing     string `xml:"facing" json:"facing" yaml:"facing"`
	FaceTypeID string `xml:"face_type_id" json:"face_type_id" yaml:"face_type_id"`
}

type FittingModel struct {
	ID             string          `xml:"fitting_model_id" json:"fitting_model_id" yaml:"fitting_model_id"`
	FittingTypeID  string          `xml:"fitting_type_id" json:"fitting_type_id" yaml:"fitting_type_id"`
	BoundingBox    BoundingBox     `xml:"bounding_box" json:"bounding_box" yaml:"bounding_box"`
	ClearanceAreas []ClearanceArea `xml:"clearance_areas>clearance_area,omitempty" json:"clearance_areas,omitempty" yaml:"clearance_areas,omitempty"`
}

type BoundingBox struct {
	Width  float64 `xml:"width" json:"width" yaml:"width"`
	Depth  float64 `xml:"depth" json:"depth" yaml:"depth"`
	Height float64 `xml:"height" json:"height" yaml:"height"`
}

type ClearanceArea struct {
	Side                string  `xml:"side" json:"side" yaml:"side"`
	PerpendicularLength float64 `xml:"perpendicular_length" json:"perpendicular_length" yaml:"perpendicular_length"`
}

// Load reads a catalog file, choosing the decoder from the extension.
func Load(path string, log logr.Logger) (*model.Catalog, error) {
	format, err := FormatFromPath(path)
	if err != nil {
		return nil, err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("catalog file not found: %s", path)
		}
		return nil, fmt.Errorf("reading catalog file: %w", err)
	}
	c, err := Parse(data, format)
	if err != nil {
		return nil, fmt.Errorf("loading %s: %w", path, err)
	}
	log.V(1).Info("loaded catalog", "path", path, "format", format,
		"faceTypes", len(c.FaceTypeIDs()), "fittingTypes", len(c.FittingTypeIDs()), "models", len(c.ModelIDs()))
	return c, nil
}

// Parse decodes data and builds a catalog from it.
func Parse(data []byte, format Format) (*model.Catalog, error) {
	doc, err := Decode(data, format)
	if err != nil {
		return nil, err
	}
	return Build(doc)
}

// Decode turns raw bytes into a Document without validating references.
func Decode(data []byte, format Format) (Document, error) {
	var doc Document
	var err error
	switch format {
	case FormatXML:
		err = xml.Unmarshal(data, &doc)
	case FormatYAML:
		err = yaml.Unmarshal(data, &doc)
	case FormatJSON:
		err = json.Unmarshal(data, &doc)
	default:
		return doc, fmt.Errorf("unsupported catalog format %q", format)
	}
	if err != nil {
		return doc, fmt.Errorf("parsing catalog %s: %w", strings.ToUpper(string(format)), err)
	}
	return doc, nil
}

// Build validates a document and creates the catalog. Face types are created
// first so relations may refer to types declared later in the file. Every
// problem found is reported, not only the first.
func Build(doc Document) (*model.Catalog, error) {
	c := model.NewCatalog()
	var errs error

	for _, d := range doc.FaceTypes {
		if _, err := c.AddFaceType(d.ID); err != nil {
			errs = multierr.Append(errs, err)
		}
	}

	for _, d := range doc.FaceTypes {
		ft, ok := c.FaceType(d.ID)
		if !ok {
			continue
		}
		for _, r := range d.Relations {
			support, ok := c.FaceType(r.SupportFaceTypeID)
			if !ok {
				errs = multierr.Append(errs, fmt.Errorf("face type %q: unknown support face type %q", d.ID, r.SupportFaceTypeID))
				continue
			}
			if math.IsNaN(r.Distance) || math.IsInf(r.Distance, 0) {
				errs = multierr.Append(errs, fmt.Errorf("face type %q: relation distance must be finite", d.ID))
				continue
			}
			ft.AddRelation(support, r.Distance)
		}
	}

	for _, d := range doc.FittingTypes {
		var faces []model.Face
		seen := make(map[model.Facing]bool)
		ok := true
		for _, f := range d.Faces {
			facing, err := model.ParseFacing(strings.ToLower(strings.TrimSpace(f.Facing)))
			if err != nil {
				errs = multierr.Append(errs, fmt.Errorf("fitting type %q: %w", d.ID, err))
				ok = false
				continue
			}
			if seen[facing] {
				errs = multierr.Append(errs, fmt.Errorf("fitting type %q: %s face defined twice", d.ID, facing))
				ok = false
				continue
			}
			seen[facing] = true
			ft, found := c.FaceType(f.FaceTypeID)
			if !found {
				errs = multierr.Append(errs, fmt.Errorf("fitting type %q: unknown face type %q", d.ID, f.FaceTypeID))
				ok = false
				continue
			}
			faces = append(faces, model.Face{Facing: facing, Type: ft})
		}
		if !ok {
			continue
		}
		if _, err := c.AddFittingType(d.ID, faces); err != nil {
			errs = multierr.Append(errs, err)
		}
	}

	for _, d := range doc.FittingModels {
		ft, found := c.FittingType(d.FittingTypeID)
		if !found {
			errs = multierr.Append(errs, fmt.Errorf("fitting model %q: unknown fitting type %q", d.ID, d.FittingTypeID))
			continue
		}
		b := d.BoundingBox
		if !(b.Width > 0) || !(b.Depth > 0) || !(b.Height > 0) {
			errs = multierr.Append(errs, fmt.Errorf("fitting model %q: bounding box must be positive, got %gx%gx%g", d.ID, b.Width, b.Depth, b.Height))
			continue
		}
		m := model.NewFittingModel(d.ID, ft, b.Width, b.Depth, b.Height)
		for _, ca := range d.ClearanceAreas {
			side, err := model.ParseFacing(strings.ToLower(strings.TrimSpace(ca.Side)))
			if err != nil {
				errs = multierr.Append(errs, fmt.Errorf("fitting model %q: %w", d.ID, err))
				continue
			}
			if ca.PerpendicularLength > 0 {
				m.SetClearanceArea(side, ca.PerpendicularLength)
			}
		}
		if err := c.AddFittingModel(m); err != nil {
			errs = multierr.Append(errs, err)
		}
	}

	if errs != nil {
		return nil, errs
	}
	return c, nil
}

// Export converts a catalog back into a Document. Built-in face types are
// left out since every catalog has them.
func Export(c *model.Catalog) Document {
	var doc Document
	for _, id := range c.FaceTypeIDs() {
		ft, _ := c.FaceType(id)
		if c.IsStatic(ft) {
			continue
		}
		d := FaceTypeDoc{ID: id}
		for _, r := range ft.Relations {
			d.Relations = append(d.Relations, Relation{SupportFaceTypeID: r.Support.ID, Distance: r.Distance})
		}
		doc.FaceTypes = append(doc.FaceTypes, d)
	}
	for _, id := range c.FittingTypeIDs() {
		ft, _ := c.FittingType(id)
		d := FittingType{ID: id}
		for _, f := range ft.Faces {
			d.Faces = append(d.Faces, Face{Facing: f.Facing.String(), FaceTypeID: f.Type.ID})
		}
		doc.FittingTypes = append(doc.FittingTypes, d)
	}
	for _, id := range c.ModelIDs() {
		m, _ := c.FittingModel(id)
		d := FittingModel{
			ID:            id,
			FittingTypeID: m.Type.ID,
			BoundingBox:   BoundingBox{Width: m.BoundingBox.Width, Depth: m.BoundingBox.Depth, Height: m.BoundingBox.Height},
		}
		for f := model.FacingRight; f <= model.FacingFront; f++ {
			if l := m.ClearanceAreaLength(f); l > 0 {
				d.ClearanceAreas = append(d.ClearanceAreas, ClearanceArea{Side: f.String(), PerpendicularLength: l})
			}
		}
		doc.FittingModels = append(doc.FittingModels, d)
	}
	return doc
}

// Encode serializes a document in the given format.
func Encode(doc Document, format Format) ([]byte, error) {
	switch format {
	case FormatXML:
		data, err := xml.MarshalIndent(doc, "", "  ")
		if err != nil {
			return nil, err
		}
		return append([]byte(xml.Header), append(data, '\n')...), nil
	case FormatYAML:
		return yaml.Marshal(doc)
	case FormatJSON:
		return json.MarshalIndent(doc, "", "  ")
	}
	return nil, fmt.Errorf("unsupported catalog format %q", format)
}

// Save writes a catalog to path in the format implied by its extension.
func Save(path string, c *model.Catalog) error {
	format, err := FormatFromPath(path)
	if err != nil {
		return err
	}
	data, err := Encode(Export(c), format)
	if err != nil {
		return fmt.Errorf("encoding catalog: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("writing catalog file: %w", err)
	}
	return nil
}
