package engine

import (
	"fmt"
	"math/rand"

	"github.com/piwi3910/RoomFit/internal/geom"
	"github.com/piwi3910/RoomFit/internal/model"
)

// session holds the mutable state of one placement request.
type session struct {
	catalog  *model.Catalog
	rng      *rand.Rand
	fittings []*Fitting
	faces    []*ParticularFace
	units    []*PlacementUnit
	diags    []Diagnostic
}

type faceRelation struct {
	face     *ParticularFace
	relation model.SpatialRelation
}

type candidateAttachment struct {
	attacher *ParticularFace
	support  *ParticularFace
	relation model.SpatialRelation
}

func newSession(catalog *model.Catalog, models []*model.FittingModel, rng *rand.Rand) *session {
	s := &session{catalog: catalog, rng: rng}
	s.fittings = make([]*Fitting, len(models))
	for i, m := range models {
		f := newFitting(m, i)
		s.fittings[i] = f
		s.faces = append(s.faces, f.Faces...)
	}
	s.units = make([]*PlacementUnit, len(models))
	for i := range s.fittings {
		s.units[i] = newPlacementUnit(i, s.fittings, i)
	}
	return s
}

func (s *session) report(kind DiagnosticKind, modelID, format string, args ...interface{}) {
	s.diags = append(s.diags, Diagnostic{Kind: kind, FittingModelID: modelID, Message: fmt.Sprintf(format, args...)})
}

func (s *session) unitOf(f *Fitting) *PlacementUnit { return s.units[f.unit] }

// resolve assigns at most one fitting relation and one wall relation per
// fitting, lays attached fittings out against their supports and merges
// them into units.
func (s *session) resolve() {
	var wallRelations []faceRelation
	for _, f := range s.fittings {
		if wr, ok := s.assignRelations(f); ok {
			wallRelations = append(wallRelations, wr)
		}
	}
	s.layOutAll()
	for _, wr := range wallRelations {
		s.unitOf(wr.face.Fitting).AddWallConstraint(wr.face, wr.relation.Distance)
	}
}

// layOutAll applies every committed attachment, supports in registration
// order and their attachers in attachment order.
func (s *session) layOutAll() {
	for _, support := range s.faces {
		for _, a := range support.attachments {
			s.layOut(a.face, support, a.relation)
		}
	}
}

// assignRelations commits one random feasible fitting relation for f and
// returns one random wall relation to register later.
func (s *session) assignRelations(f *Fitting) (faceRelation, bool) {
	var feasible []candidateAttachment
	var walls []faceRelation
	relationCount := 0

	for _, face := range f.Faces {
		if face.Attachments() > 0 {
			// Already a support; moving it would drag its attachers along.
			continue
		}
		for _, rel := range face.Face.Type.Relations {
			if s.catalog.IsStatic(rel.Support) {
				// Door and window supports are recognised but have no effect.
				if rel.Support == s.catalog.Wall() {
					walls = append(walls, faceRelation{face: face, relation: rel})
				}
				continue
			}
			relationCount++
			supports := s.supportFaces(f, rel.Support)
			if len(supports) == 0 {
				continue
			}
			sf := pickLeastReserved(supports, s.rng.Intn(len(supports)))
			if !sf.CanAttachFace(face, rel) {
				sf = pickMostFree(supports, s.rng.Intn(len(supports)))
				if !sf.CanAttachFace(face, rel) {
					continue
				}
			}
			feasible = append(feasible, candidateAttachment{attacher: face, support: sf, relation: rel})
		}
	}

	if len(feasible) > 0 {
		c := feasible[s.rng.Intn(len(feasible))]
		c.support.AttachFace(c.attacher, c.relation)
	} else if relationCount > 0 {
		s.report(DiagUnsatisfiedRelation, f.Model.ID,
			"no support face with capacity for %s %s", f.Model.ID, f.Model.Type.ID)
	}

	if len(walls) == 0 {
		return faceRelation{}, false
	}
	return walls[s.rng.Intn(len(walls))], true
}

// supportFaces lists faces of type t on other fittings that are free to act
// as supports.
func (s *session) supportFaces(attacher *Fitting, t *model.FaceType) []*ParticularFace {
	var out []*ParticularFace
	for _, face := range s.faces {
		if face.Fitting == attacher || face.attachedTo != nil {
			continue
		}
		if face.Face.Type == t {
			out = append(out, face)
		}
	}
	return out
}

// pickLeastReserved scans cyclically from start and keeps the first face
// with the smallest reserved length.
func pickLeastReserved(faces []*ParticularFace, start int) *ParticularFace {
	best := faces[start]
	for i := 1; i < len(faces); i++ {
		f := faces[(start+i)%len(faces)]
		if f.ReservedLength < best.ReservedLength {
			best = f
		}
	}
	return best
}

// pickMostFree scans cyclically from start and keeps the first face with the
// largest free length.
func pickMostFree(faces []*ParticularFace, start int) *ParticularFace {
	best := faces[start]
	for i := 1; i < len(faces); i++ {
		f := faces[(start+i)%len(faces)]
		if f.FreeLength() > best.FreeLength() {
			best = f
		}
	}
	return best
}

// layOut turns the attacher's unit to face the support, moves it to the
// relation distance and merges it into the support's unit.
func (s *session) layOut(attacher, support *ParticularFace, rel model.SpatialRelation) {
	au, su := s.unitOf(attacher.Fitting), s.unitOf(support.Fitting)
	if au == su {
		s.report(DiagAttachmentCycle, attacher.Fitting.Model.ID,
			"%s already moves with %s, attachment skipped", attacher.Fitting.Model.ID, support.Fitting.Model.ID)
		support.placedCount++
		support.filledLength += attacher.SideLength + attacher.SurroundingClearance()
		return
	}
	s.rotateToFace(attacher, support.Direction())
	s.translateToDistance(attacher, support, rel.Distance)
	su.Absorb(au)
}

// rotateToFace turns the attacher's unit about the attacher fitting so the
// face points against direction.
func (s *session) rotateToFace(attacher *ParticularFace, direction geom.Direction) {
	target := direction.Opposite()
	delta := int(target) - int(attacher.Direction())
	s.unitOf(attacher.Fitting).RotateAround(attacher.Fitting.Position, delta)
}

// translateToDistance moves the attacher's unit so the face sits distance in
// front of the support face. Several attachers share the support's free
// length evenly, in attachment order.
func (s *session) translateToDistance(attacher, support *ParticularFace, distance float64) {
	perp := support.Normal().Scale(support.DistanceFromCenter() + distance + attacher.DistanceFromCenter())

	var along geom.Vector2D
	if n := support.Attachments(); n > 1 {
		spacing := (support.SideLength - support.ReservedLength) / float64(n+1)
		trailing := attacher.Fitting.ClearanceInDirection(support.Direction().Add(3))
		offset := -support.SideLength/2 + spacing*float64(support.placedCount+1) +
			support.filledLength + trailing + attacher.SideLength/2
		along = support.AlongFace().Scale(offset)
	}
	support.placedCount++
	support.filledLength += attacher.SideLength + attacher.SurroundingClearance()

	target := support.Fitting.Position.Add(perp).Add(along)
	s.unitOf(attacher.Fitting).Translate(target.Sub(attacher.Fitting.Position))
}

// liveUnits returns the units that still have members, in fitting order.
func (s *session) liveUnits() []*PlacementUnit {
	seen := make(map[int]bool)
	var out []*PlacementUnit
	for _, f := range s.fittings {
		if !seen[f.unit] {
			seen[f.unit] = true
			out = append(out, s.units[f.unit])
		}
	}
	return out
}
